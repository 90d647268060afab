package tui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/hugo-lorenzo-mato/procscope/internal/actions"
	"github.com/hugo-lorenzo-mato/procscope/internal/core"
	"github.com/hugo-lorenzo-mato/procscope/internal/dispatch"
	"github.com/hugo-lorenzo-mato/procscope/internal/proc"
)

// FallbackMenu drives the same session transitions as the Bubble Tea
// model over a plain numbered prompt, for terminals where the TUI
// cannot run (no TTY, dumb terminals).
type FallbackMenu struct {
	source     proc.Source
	dispatcher *dispatch.Dispatcher
	session    Session
	in         *bufio.Scanner
	out        io.Writer
}

// NewFallbackMenu creates a plain prompt menu.
func NewFallbackMenu(source proc.Source, dispatcher *dispatch.Dispatcher, reg *actions.Registry, in io.Reader, out io.Writer) *FallbackMenu {
	return &FallbackMenu{
		source:     source,
		dispatcher: dispatcher,
		session:    NewSession(reg),
		in:         bufio.NewScanner(in),
		out:        out,
	}
}

// Run loops until the operator quits or input ends.
func (f *FallbackMenu) Run(ctx context.Context) error {
	procs, err := f.source.List(ctx)
	if err != nil {
		return err
	}
	f.session = f.session.WithProcesses(procs)

	for {
		switch f.session.State {
		case StateProcessList:
			done, err := f.stepProcessList(ctx)
			if err != nil {
				return err
			}
			if done {
				return nil
			}
		case StateActionList:
			f.stepActionList()
		case StateDispatching:
			f.stepDispatch(ctx)
		case StateResult:
			f.stepResult()
		}
	}
}

func (f *FallbackMenu) stepProcessList(ctx context.Context) (quit bool, err error) {
	fmt.Fprintf(f.out, "\nProcesses (%d):\n", len(f.session.Visible))
	for i, idx := range f.session.Visible {
		p := f.session.Processes[idx]
		fmt.Fprintf(f.out, "  %3d) [%s] %s\n", i+1, p.Category, p.Label())
	}
	fmt.Fprint(f.out, "Select a process (number), r to refresh, q to quit: ")

	line, ok := f.readLine()
	if !ok {
		return true, nil
	}

	switch line {
	case "q":
		return true, nil
	case "r":
		procs, err := f.source.List(ctx)
		if err != nil {
			return false, err
		}
		f.session = f.session.WithProcesses(procs)
		return false, nil
	}

	index, convErr := strconv.Atoi(line)
	if convErr != nil {
		fmt.Fprintf(f.out, "invalid selection %q\n", line)
		return false, nil
	}

	next, selErr := f.session.SelectIndex(index - 1)
	if selErr != nil {
		fmt.Fprintln(f.out, noticeFor(selErr))
		return false, nil
	}
	f.session, selErr = next.Select()
	if selErr != nil {
		fmt.Fprintln(f.out, noticeFor(selErr))
	}
	return false, nil
}

func (f *FallbackMenu) stepActionList() {
	target := f.session.Target
	fmt.Fprintf(f.out, "\nActions for pid %d (%s):\n", target.PID, target.Category)
	for i, spec := range f.session.Actions {
		fmt.Fprintf(f.out, "  %d) %-12s %s\n", i+1, spec.Name, spec.Description)
	}
	fmt.Fprint(f.out, "Select an action (number), b to go back: ")

	line, ok := f.readLine()
	if !ok || line == "b" {
		f.session = f.session.Back()
		return
	}

	index, err := strconv.Atoi(line)
	if err != nil {
		fmt.Fprintf(f.out, "invalid selection %q\n", line)
		return
	}

	next, selErr := f.session.SelectIndex(index - 1)
	if selErr != nil {
		fmt.Fprintln(f.out, noticeFor(selErr))
		return
	}
	f.session, selErr = next.Select()
	if selErr != nil {
		fmt.Fprintln(f.out, noticeFor(selErr))
	}
}

func (f *FallbackMenu) stepDispatch(ctx context.Context) {
	target := *f.session.Target
	spec := f.session.ChosenAction()
	fmt.Fprintf(f.out, "\nrunning %s against pid %d...\n", spec.Name, target.PID)

	res, err := f.dispatcher.Run(ctx, target, spec)
	f.session = f.session.CompleteDispatch(res, err)
}

func (f *FallbackMenu) stepResult() {
	if err := f.session.DispatchErr; err != nil {
		fmt.Fprintf(f.out, "dispatch failed: %s\n", err)
		if hint := core.HintOf(err); hint != "" {
			fmt.Fprintf(f.out, "hint: %s\n", hint)
		}
	} else {
		res := f.session.Result
		fmt.Fprintf(f.out, "%s pid %d · exit %d · %s\n",
			res.Action, res.PID, res.ExitStatus, res.Duration.Round(time.Millisecond))
		fmt.Fprint(f.out, res.Stdout)
		if res.Stderr != "" {
			fmt.Fprintf(f.out, "--- stderr ---\n%s", res.Stderr)
		}
	}

	// Back to the process list for the next round.
	f.session = f.session.Back().Back()
}

func (f *FallbackMenu) readLine() (string, bool) {
	if !f.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(f.in.Text()), true
}
