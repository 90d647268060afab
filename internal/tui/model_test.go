package tui

import (
	"context"
	"testing"
	"time"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hugo-lorenzo-mato/procscope/internal/actions"
	"github.com/hugo-lorenzo-mato/procscope/internal/config"
	"github.com/hugo-lorenzo-mato/procscope/internal/core"
	"github.com/hugo-lorenzo-mato/procscope/internal/dispatch"
	"github.com/hugo-lorenzo-mato/procscope/internal/testutil"
)

func newTestModel(src *testutil.FakeSource) Model {
	reg := actions.NewRegistry(config.ToolsConfig{Jstack: "jstack", Jmap: "jmap", Pstack: "pstack"})
	d := dispatch.New(src, time.Second, nil)
	return NewModel(context.Background(), src, d, reg)
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok)
	return model
}

func keyMsg(s string) tea.KeyMsg {
	if len(s) == 1 {
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	}
	panic("unknown key " + s)
}

func TestModel_ScanPopulatesProcessList(t *testing.T) {
	src := testutil.NewFakeSource(testutil.JVMProcess(4821), testutil.GenericProcess(99))
	m := newTestModel(src)

	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	m = update(t, m, scanDoneMsg{procs: src.Procs})

	view := m.View()
	assert.Contains(t, view, "4821")
	assert.Contains(t, view, "[jvm]")
	assert.Contains(t, view, "[gen]")
	assert.Contains(t, view, "2 processes")
}

func TestModel_SelectionFlow(t *testing.T) {
	src := testutil.NewFakeSource(testutil.JVMProcess(4821))
	m := newTestModel(src)

	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	m = update(t, m, scanDoneMsg{procs: src.Procs})
	m = update(t, m, keyMsg("enter"))

	assert.Equal(t, StateActionList, m.session.State)
	assert.Contains(t, m.View(), "actions for pid 4821")
}

func TestModel_ResultViewShowsExitAndStderr(t *testing.T) {
	src := testutil.NewFakeSource(testutil.JVMProcess(4821))
	m := newTestModel(src)

	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	m = update(t, m, scanDoneMsg{procs: src.Procs})
	m = update(t, m, keyMsg("enter")) // select process
	m = update(t, m, keyMsg("enter")) // run jstack
	require.Equal(t, StateDispatching, m.session.State)

	res := &core.ExecutionResult{
		Action:     "jstack",
		PID:        4821,
		ExitStatus: 1,
		Stdout:     "thread dump text",
		Stderr:     "attach failed",
		Duration:   12 * time.Millisecond,
	}
	m = update(t, m, dispatchDoneMsg{result: res})

	view := m.View()
	assert.Contains(t, view, "exit 1")
	assert.Contains(t, view, "thread dump text")
	assert.Contains(t, view, "attach failed")
}

func TestModel_DispatchErrorShowsHint(t *testing.T) {
	src := testutil.NewFakeSource(testutil.JVMProcess(4821))
	m := newTestModel(src)

	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	m = update(t, m, scanDoneMsg{procs: src.Procs})
	m = update(t, m, keyMsg("enter"))
	m = update(t, m, keyMsg("enter"))
	m = update(t, m, dispatchDoneMsg{err: core.ErrSpawnFailed("jstack")})

	view := m.View()
	assert.Contains(t, view, "dispatch failed")
	assert.Contains(t, view, "installed and on PATH")
}

func TestModel_DigitJumpOutOfRangeShowsNotice(t *testing.T) {
	src := testutil.NewFakeSource(testutil.JVMProcess(4821))
	m := newTestModel(src)

	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	m = update(t, m, scanDoneMsg{procs: src.Procs})
	before := m.session.State

	m = update(t, m, keyMsg("9"))

	assert.Equal(t, before, m.session.State)
	assert.Contains(t, m.View(), "out of range")
}

func TestModel_EscReturnsToProcessList(t *testing.T) {
	src := testutil.NewFakeSource(testutil.JVMProcess(4821))
	m := newTestModel(src)

	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	m = update(t, m, scanDoneMsg{procs: src.Procs})
	m = update(t, m, keyMsg("enter"))
	require.Equal(t, StateActionList, m.session.State)

	m = update(t, m, keyMsg("esc"))
	assert.Equal(t, StateProcessList, m.session.State)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 20))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))

	// Multi-byte runes in a command line must not be split mid-rune.
	label := "4821 java -Dname=日本語サーバー -jar app.jar"
	got := truncate(label, 20)
	assert.True(t, utf8.ValidString(got), "truncated label %q is not valid UTF-8", got)
	assert.Equal(t, 20, len([]rune(got)))

	// Below the ellipsis threshold the label passes through untouched.
	assert.Equal(t, "日本語", truncate("日本語", 3))
}
