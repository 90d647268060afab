package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hugo-lorenzo-mato/procscope/internal/actions"
	"github.com/hugo-lorenzo-mato/procscope/internal/clip"
	"github.com/hugo-lorenzo-mato/procscope/internal/core"
	"github.com/hugo-lorenzo-mato/procscope/internal/dispatch"
	"github.com/hugo-lorenzo-mato/procscope/internal/proc"
)

// scanDoneMsg delivers a finished catalog scan.
type scanDoneMsg struct {
	procs []core.ProcessInfo
	err   error
}

// dispatchDoneMsg delivers a finished dispatch.
type dispatchDoneMsg struct {
	result *core.ExecutionResult
	err    error
}

// copyDoneMsg delivers the outcome of a clipboard copy.
type copyDoneMsg struct {
	res clip.Result
	err error
}

// Model drives the interactive menu. The session transitions carry the
// menu semantics; the model only adds terminal concerns on top.
type Model struct {
	session    Session
	source     proc.Source
	dispatcher *dispatch.Dispatcher

	spinner     spinner.Model
	filterInput textinput.Model
	filtering   bool
	resultView  viewport.Model

	width   int
	height  int
	ready   bool
	scanErr error
	notice  string // transient line under the footer
	loading bool

	// parent context for dispatches; carries the operator interrupt.
	ctx context.Context
}

// NewModel creates the interactive model.
func NewModel(ctx context.Context, source proc.Source, dispatcher *dispatch.Dispatcher, reg *actions.Registry) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(ColorSecondary)

	ti := textinput.New()
	ti.Placeholder = "filter processes"
	ti.CharLimit = 128
	ti.Width = 40

	return Model{
		session:     NewSession(reg),
		source:      source,
		dispatcher:  dispatcher,
		spinner:     sp,
		filterInput: ti,
		resultView:  viewport.New(80, 20),
		loading:     true,
		ctx:         ctx,
	}
}

// Init starts the first scan.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.scanCmd())
}

func (m Model) scanCmd() tea.Cmd {
	return func() tea.Msg {
		procs, err := m.source.List(m.ctx)
		return scanDoneMsg{procs: procs, err: err}
	}
}

func (m Model) dispatchCmd(target core.ProcessInfo, spec actions.Spec) tea.Cmd {
	return func() tea.Msg {
		res, err := m.dispatcher.Run(m.ctx, target, spec)
		return dispatchDoneMsg{result: res, err: err}
	}
}

func copyCmd(text string) tea.Cmd {
	return func() tea.Msg {
		res, err := clip.WriteAll(text)
		return copyDoneMsg{res: res, err: err}
	}
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resultView.Width = msg.Width
		if msg.Height > 8 {
			m.resultView.Height = msg.Height - 8
		}
		m.ready = true
		return m, nil

	case scanDoneMsg:
		m.loading = false
		if msg.err != nil {
			m.scanErr = msg.err
			return m, nil
		}
		m.scanErr = nil
		m.session = m.session.WithProcesses(msg.procs)
		m.notice = fmt.Sprintf("%d processes", len(msg.procs))
		return m, nil

	case dispatchDoneMsg:
		m.session = m.session.CompleteDispatch(msg.result, msg.err)
		m.resultView.SetContent(m.resultContent())
		m.resultView.GotoTop()
		return m, nil

	case copyDoneMsg:
		if msg.err != nil {
			m.notice = "copy failed: " + msg.err.Error()
		} else if msg.res.Method == clip.MethodFile {
			m.notice = "output written to " + msg.res.FilePath
		} else {
			m.notice = "output copied to clipboard"
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Filter entry captures every key except the ones that leave it.
	if m.filtering {
		switch msg.String() {
		case "enter", "esc":
			m.filtering = false
			m.filterInput.Blur()
			return m, nil
		default:
			var cmd tea.Cmd
			m.filterInput, cmd = m.filterInput.Update(msg)
			m.session = m.session.SetFilter(m.filterInput.Value())
			return m, cmd
		}
	}

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "up", "k":
		m.session = m.session.MoveCursor(-1)
		return m, nil

	case "down", "j":
		m.session = m.session.MoveCursor(1)
		return m, nil

	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		index := int(msg.String()[0] - '1')
		next, err := m.session.SelectIndex(index)
		if err != nil {
			m.notice = noticeFor(err)
			return m, nil
		}
		m.session = next
		m.notice = ""
		return m, nil

	case "enter":
		return m.confirm()

	case "esc":
		m.session = m.session.Back()
		m.notice = ""
		return m, nil

	case "r":
		if m.session.State == StateProcessList {
			m.loading = true
			m.notice = "rescanning..."
			return m, m.scanCmd()
		}
		return m, nil

	case "/":
		if m.session.State == StateProcessList {
			m.filtering = true
			m.filterInput.Focus()
			return m, textinput.Blink
		}
		return m, nil

	case "c":
		if m.session.State == StateResult && m.session.Result != nil {
			return m, copyCmd(m.session.Result.Stdout)
		}
		return m, nil
	}

	// Viewport scrolling on the result screen.
	if m.session.State == StateResult {
		var cmd tea.Cmd
		m.resultView, cmd = m.resultView.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) confirm() (tea.Model, tea.Cmd) {
	switch m.session.State {
	case StateProcessList, StateActionList:
		next, err := m.session.Select()
		if err != nil {
			m.notice = noticeFor(err)
			return m, nil
		}
		m.session = next
		m.notice = ""
		if m.session.State == StateDispatching {
			target := *m.session.Target
			return m, tea.Batch(m.spinner.Tick, m.dispatchCmd(target, m.session.ChosenAction()))
		}
		return m, nil

	case StateResult:
		// Enter returns to the process list for the next round.
		m.session = m.session.Back().Back()
		return m, nil
	}
	return m, nil
}

// View renders the current screen.
func (m Model) View() string {
	if !m.ready {
		return "loading..."
	}

	var b strings.Builder

	switch m.session.State {
	case StateProcessList:
		b.WriteString(m.viewProcessList())
	case StateActionList:
		b.WriteString(m.viewActionList())
	case StateDispatching:
		b.WriteString(m.viewDispatching())
	case StateResult:
		b.WriteString(m.viewResult())
	}

	if m.notice != "" {
		b.WriteString("\n" + HintStyle.Render(m.notice))
	}

	return b.String()
}

func (m Model) viewProcessList() string {
	var b strings.Builder
	b.WriteString(HeaderStyle.Render("procscope — select a process"))
	b.WriteByte('\n')

	if m.scanErr != nil {
		b.WriteString(ErrorStyle.Render("scan failed: " + m.scanErr.Error()))
		b.WriteByte('\n')
		b.WriteString(FooterStyle.Render("r retry · q quit"))
		return b.String()
	}

	if m.loading {
		b.WriteString(m.spinner.View() + " scanning processes\n")
		return b.String()
	}

	if m.filtering || m.session.Filter != "" {
		b.WriteString("  / " + m.filterInput.View() + "\n")
	}

	if len(m.session.Visible) == 0 {
		b.WriteString(ItemStyle.Render("no processes match") + "\n")
	}

	for i, idx := range m.session.Visible {
		p := m.session.Processes[idx]
		tag := CategoryGenericStyle.Render("[gen]")
		if p.Category == core.CategoryJVM {
			tag = CategoryJVMStyle.Render("[jvm]")
		}
		line := fmt.Sprintf("%s %s", tag, truncate(p.Label(), m.width-10))
		if i == m.session.Cursor {
			b.WriteString(SelectedItemStyle.Render("> "+line) + "\n")
		} else {
			b.WriteString(ItemStyle.Render(line) + "\n")
		}
	}

	b.WriteString(FooterStyle.Render("enter select · / filter · r refresh · q quit"))
	return b.String()
}

func (m Model) viewActionList() string {
	var b strings.Builder
	target := m.session.Target
	b.WriteString(HeaderStyle.Render(fmt.Sprintf("actions for pid %d (%s)", target.PID, target.Category)))
	b.WriteByte('\n')

	if len(m.session.Actions) == 0 {
		b.WriteString(ItemStyle.Render("no actions available") + "\n")
	}

	for i, spec := range m.session.Actions {
		line := fmt.Sprintf("%-12s %s", spec.Name, spec.Description)
		if i == m.session.ActionCursor {
			b.WriteString(SelectedItemStyle.Render("> "+line) + "\n")
		} else {
			b.WriteString(ItemStyle.Render(line) + "\n")
		}
	}

	b.WriteString(FooterStyle.Render("enter run · esc back · q quit"))
	return b.String()
}

func (m Model) viewDispatching() string {
	spec := m.session.ChosenAction()
	return fmt.Sprintf("%s running %s against pid %d (timeout %s)\n",
		m.spinner.View(), spec.Name, m.session.Target.PID, m.dispatcher.Timeout())
}

func (m Model) viewResult() string {
	var b strings.Builder

	if err := m.session.DispatchErr; err != nil {
		b.WriteString(ErrorStyle.Render("dispatch failed: "+err.Error()) + "\n")
		if hint := core.HintOf(err); hint != "" {
			b.WriteString(HintStyle.Render(hint) + "\n")
		}
		b.WriteString(FooterStyle.Render("esc back · q quit"))
		return b.String()
	}

	res := m.session.Result
	header := fmt.Sprintf("%s pid %d · exit %d · %s",
		res.Action, res.PID, res.ExitStatus, res.Duration.Round(time.Millisecond))
	if res.ExitStatus == 0 {
		b.WriteString(ResultHeaderStyle.Render(header) + "\n")
	} else {
		b.WriteString(ResultFailedStyle.Render(header) + "\n")
	}

	b.WriteString(m.resultView.View() + "\n")
	b.WriteString(FooterStyle.Render("↑/↓ scroll · c copy · esc back · enter new scan · q quit"))
	return b.String()
}

// resultContent builds the scrollable body of the result screen.
func (m Model) resultContent() string {
	if m.session.DispatchErr != nil || m.session.Result == nil {
		return ""
	}
	res := m.session.Result

	var b strings.Builder
	b.WriteString(res.Stdout)
	if res.Stderr != "" {
		b.WriteString("\n" + StderrStyle.Render("--- stderr ---") + "\n")
		b.WriteString(StderrStyle.Render(res.Stderr))
	}
	return b.String()
}

// noticeFor strips the error envelope for the one-line notice area.
func noticeFor(err error) string {
	var derr *core.DomainError
	if errors.As(err, &derr) {
		return derr.Message
	}
	return err.Error()
}

// truncate shortens a label to max runes. Byte slicing would split
// multi-byte runes in command lines.
func truncate(s string, max int) string {
	if max <= 3 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
