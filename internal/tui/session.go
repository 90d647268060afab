package tui

import (
	"github.com/sahilm/fuzzy"

	"github.com/hugo-lorenzo-mato/procscope/internal/actions"
	"github.com/hugo-lorenzo-mato/procscope/internal/core"
)

// State is one step of the interactive loop.
type State int

const (
	// StateProcessList shows the catalog scan.
	StateProcessList State = iota
	// StateActionList shows the actions applicable to the target.
	StateActionList
	// StateDispatching waits for a running dispatch.
	StateDispatching
	// StateResult shows the outcome of the last dispatch.
	StateResult
)

// Session is the pure state machine behind the interactive loop. All
// transitions are value-in, value-out so they can be unit-tested
// without a terminal; the Bubble Tea model and the plain fallback both
// drive the same transitions.
type Session struct {
	State    State
	Registry *actions.Registry

	Processes []core.ProcessInfo
	Filter    string
	Visible   []int // indexes into Processes after filtering
	Cursor    int   // cursor position within Visible

	Target       *core.ProcessInfo
	Actions      []actions.Spec
	ActionCursor int

	Result      *core.ExecutionResult
	DispatchErr error
}

// NewSession creates a session in the process-list state.
func NewSession(reg *actions.Registry) Session {
	return Session{
		State:    StateProcessList,
		Registry: reg,
	}
}

// WithProcesses installs a fresh catalog scan and returns to the
// process list. The filter is re-applied; the cursor is clamped.
func (s Session) WithProcesses(procs []core.ProcessInfo) Session {
	s.Processes = procs
	s.State = StateProcessList
	s.Target = nil
	s.Actions = nil
	return s.applyFilter()
}

// SetFilter narrows the visible process list with fuzzy matching.
func (s Session) SetFilter(query string) Session {
	s.Filter = query
	return s.applyFilter()
}

func (s Session) applyFilter() Session {
	if s.Filter == "" {
		s.Visible = make([]int, len(s.Processes))
		for i := range s.Processes {
			s.Visible[i] = i
		}
	} else {
		labels := make([]string, len(s.Processes))
		for i, p := range s.Processes {
			labels[i] = p.Label()
		}
		matches := fuzzy.Find(s.Filter, labels)
		s.Visible = make([]int, len(matches))
		for i, m := range matches {
			s.Visible[i] = m.Index
		}
	}

	if s.Cursor >= len(s.Visible) {
		s.Cursor = 0
	}
	return s
}

// listSize returns the length of the list the cursor currently lives in.
func (s Session) listSize() int {
	switch s.State {
	case StateActionList:
		return len(s.Actions)
	default:
		return len(s.Visible)
	}
}

// MoveCursor moves the selection, wrapping at both ends.
func (s Session) MoveCursor(delta int) Session {
	size := s.listSize()
	if size == 0 {
		return s
	}

	cursor := s.cursor() + delta
	cursor = ((cursor % size) + size) % size

	switch s.State {
	case StateActionList:
		s.ActionCursor = cursor
	default:
		s.Cursor = cursor
	}
	return s
}

func (s Session) cursor() int {
	if s.State == StateActionList {
		return s.ActionCursor
	}
	return s.Cursor
}

// SelectIndex jumps the cursor to a zero-based index. Out-of-range
// input yields an invalid-selection error and leaves the session
// unchanged.
func (s Session) SelectIndex(index int) (Session, error) {
	size := s.listSize()
	if index < 0 || index >= size {
		return s, core.ErrInvalidSelection(index+1, size)
	}

	switch s.State {
	case StateActionList:
		s.ActionCursor = index
	default:
		s.Cursor = index
	}
	return s, nil
}

// Select confirms the current cursor position and advances the state.
func (s Session) Select() (Session, error) {
	switch s.State {
	case StateProcessList:
		if len(s.Visible) == 0 {
			return s, core.ErrInvalidSelection(1, 0)
		}
		target := s.Processes[s.Visible[s.Cursor]]
		s.Target = &target
		s.Actions = s.Registry.ActionsFor(target.Category)
		s.ActionCursor = 0
		s.State = StateActionList
		return s, nil

	case StateActionList:
		if len(s.Actions) == 0 {
			return s, core.ErrInvalidSelection(1, 0)
		}
		s.State = StateDispatching
		s.Result = nil
		s.DispatchErr = nil
		return s, nil

	default:
		return s, nil
	}
}

// ChosenAction returns the action confirmed by Select. Only meaningful
// in StateDispatching and StateResult.
func (s Session) ChosenAction() actions.Spec {
	if len(s.Actions) == 0 {
		return actions.Spec{}
	}
	return s.Actions[s.ActionCursor]
}

// CompleteDispatch records the dispatch outcome and shows the result.
func (s Session) CompleteDispatch(res *core.ExecutionResult, err error) Session {
	s.State = StateResult
	s.Result = res
	s.DispatchErr = err
	return s
}

// Back steps one level up: action list back to process list, result
// back to the action list so the operator can re-dispatch.
func (s Session) Back() Session {
	switch s.State {
	case StateActionList:
		s.State = StateProcessList
		s.Target = nil
		s.Actions = nil
	case StateResult:
		s.State = StateActionList
		s.Result = nil
		s.DispatchErr = nil
	}
	return s
}
