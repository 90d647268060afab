// Package proc enumerates and classifies OS processes. The OS-facing
// surface is the Source interface so the menu and dispatch layers stay
// platform-independent and testable against a fake.
package proc

import (
	"context"

	"github.com/hugo-lorenzo-mato/procscope/internal/core"
)

// Source is the capability interface over the OS process table.
type Source interface {
	// List returns one ProcessInfo per visible process, sorted by pid
	// ascending with no duplicates. Processes that disappear mid-scan or
	// whose metadata is unreadable are skipped, not surfaced as errors;
	// partial results are expected under process churn.
	List(ctx context.Context) ([]core.ProcessInfo, error)

	// Exists re-checks a pid immediately before dispatch.
	Exists(ctx context.Context, pid int32) (bool, error)

	// ReadEnviron reads the process environment block in order,
	// preserving duplicate keys as separate entries.
	ReadEnviron(ctx context.Context, pid int32) ([]core.EnvVar, error)
}
