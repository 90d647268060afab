// Package dispatch runs one diagnostic action against one target
// process and reports a structured result.
package dispatch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/hugo-lorenzo-mato/procscope/internal/actions"
	"github.com/hugo-lorenzo-mato/procscope/internal/core"
	"github.com/hugo-lorenzo-mato/procscope/internal/logging"
	"github.com/hugo-lorenzo-mato/procscope/internal/proc"
)

// State tracks one dispatch through its lifecycle.
type State string

const (
	StateIdle       State = "idle"
	StateValidating State = "validating"
	StateExecuting  State = "executing"
	StateCompleted  State = "completed"
	StateFailed     State = "failed"
)

// Dispatcher executes actions. It holds no mutable state across
// invocations; every Run is independent.
type Dispatcher struct {
	source  proc.Source
	timeout time.Duration
	logger  *logging.Logger
}

// New creates a dispatcher with the given per-dispatch timeout bound.
func New(source proc.Source, timeout time.Duration, logger *logging.Logger) *Dispatcher {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Dispatcher{
		source:  source,
		timeout: timeout,
		logger:  logger,
	}
}

// Timeout returns the configured per-dispatch bound.
func (d *Dispatcher) Timeout() time.Duration {
	return d.timeout
}

// Run executes one action against one process.
//
// The target is re-validated immediately before execution; a process
// that exited since the scan yields a process-gone error instead of a
// confusing tool failure. A non-zero exit of the tool itself is a
// completed result carrying the exit status, not an error.
func (d *Dispatcher) Run(ctx context.Context, target core.ProcessInfo, spec actions.Spec) (*core.ExecutionResult, error) {
	log := d.logger.WithDispatch(uuid.NewString()).WithPID(target.PID).With("action", spec.Name)

	state := StateValidating
	log.Debug("dispatch state", "state", state)

	alive, err := d.source.Exists(ctx, target.PID)
	if err != nil {
		return nil, fmt.Errorf("validating pid %d: %w", target.PID, err)
	}
	if !alive {
		log.Debug("dispatch state", "state", StateFailed)
		return nil, core.ErrProcessGone(target.PID)
	}

	state = StateExecuting
	log.Debug("dispatch state", "state", state)

	start := time.Now()

	var result *core.ExecutionResult
	switch spec.Kind {
	case actions.KindEnviron:
		result, err = d.runEnviron(ctx, target, spec)
	case actions.KindCommand:
		result, err = d.runCommand(ctx, target, spec)
	default:
		err = core.ErrValidation(core.CodeActionUnknown, fmt.Sprintf("unknown action kind %q", spec.Kind))
	}

	if err != nil {
		log.Warn("dispatch failed", "state", StateFailed, "error", err)
		return nil, err
	}

	result.Duration = time.Since(start)
	log.Info("dispatch completed",
		"state", StateCompleted,
		"exit_status", result.ExitStatus,
		"duration", result.Duration.Round(time.Millisecond))
	return result, nil
}

func (d *Dispatcher) runEnviron(ctx context.Context, target core.ProcessInfo, spec actions.Spec) (*core.ExecutionResult, error) {
	vars, err := d.source.ReadEnviron(ctx, target.PID)
	if err != nil {
		return nil, err
	}

	return &core.ExecutionResult{
		Action: spec.Name,
		PID:    target.PID,
		Stdout: proc.FormatEnviron(vars),
	}, nil
}

func (d *Dispatcher) runCommand(ctx context.Context, target core.ProcessInfo, spec actions.Spec) (*core.ExecutionResult, error) {
	argv := spec.Render(target.PID)
	if len(argv) == 0 {
		return nil, core.ErrValidation(core.CodeActionUnknown, "action has an empty command template")
	}

	runCtx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, argv[0], argv[1:]...)
	// Own process group so a timeout or interrupt reaps the whole tree,
	// not just the direct child.
	cmd.SysProcAttr = sysProcAttr()
	cmd.Cancel = func() error { return killGroup(cmd) }

	// stdout and stderr stay separate to preserve downstream fidelity.
	var stdout, stderr bytes.Buffer

	stdoutPipe, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("creating stdout pipe: %w", err)
	}
	stderrPipe, err := cmd.StderrPipe()
	if err != nil {
		_ = stdoutPipe.Close()
		return nil, fmt.Errorf("creating stderr pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		// Binary not found, not executable, permission denied.
		_ = stdoutPipe.Close()
		_ = stderrPipe.Close()
		return nil, core.ErrSpawnFailed(argv[0]).WithCause(err)
	}

	var g errgroup.Group
	g.Go(func() error {
		_, err := io.Copy(&stdout, stdoutPipe)
		return err
	})
	g.Go(func() error {
		_, err := io.Copy(&stderr, stderrPipe)
		return err
	})

	drainErr := g.Wait()
	waitErr := cmd.Wait()

	if runCtx.Err() != nil {
		if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
			return nil, core.ErrDispatchTimeout(spec.Name, d.timeout.Seconds())
		}
		// Operator interrupt; the child group is already killed.
		return nil, runCtx.Err()
	}

	exitStatus := 0
	if waitErr != nil {
		var exitErr *exec.ExitError
		if !errors.As(waitErr, &exitErr) {
			return nil, fmt.Errorf("waiting for %s: %w", argv[0], waitErr)
		}
		// The tool ran and failed on its own terms; surface its output.
		exitStatus = exitErr.ExitCode()
	}

	if drainErr != nil && waitErr == nil {
		return nil, fmt.Errorf("reading %s output: %w", argv[0], drainErr)
	}

	return &core.ExecutionResult{
		Action:     spec.Name,
		PID:        target.PID,
		ExitStatus: exitStatus,
		Stdout:     stdout.String(),
		Stderr:     stderr.String(),
	}, nil
}
