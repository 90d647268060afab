package core

import (
	"fmt"
	"time"
)

// Category classifies a process by the runtime hosting it. The set is
// closed: every switch over Category must handle all variants so that a
// new runtime category is a compile-time exercise.
type Category string

const (
	// CategoryJVM marks processes launched through a JVM launcher.
	CategoryJVM Category = "jvm"
	// CategoryGeneric marks every other process.
	CategoryGeneric Category = "generic"
	// CategoryAny is only valid on action specs, never on processes.
	CategoryAny Category = "any"
)

// Valid reports whether c is a category a process can carry.
func (c Category) Valid() bool {
	return c == CategoryJVM || c == CategoryGeneric
}

// ProcessInfo is one entry of a catalog scan. Entries are immutable and
// only meaningful at scan time: the pid may be reused the moment the
// process exits.
type ProcessInfo struct {
	PID      int32    `json:"pid"`
	Name     string   `json:"name"`
	Cmdline  string   `json:"cmdline"`
	Category Category `json:"category"`
}

// Label returns a single-line human description of the process.
func (p ProcessInfo) Label() string {
	if p.Cmdline != "" {
		return fmt.Sprintf("%d %s", p.PID, p.Cmdline)
	}
	return fmt.Sprintf("%d %s", p.PID, p.Name)
}

// EnvVar is one KEY=VALUE entry of a process environment block.
// Duplicate keys are legal and kept as separate entries in scan order.
type EnvVar struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// String renders the variable in KEY=VALUE form.
func (e EnvVar) String() string {
	return e.Key + "=" + e.Value
}

// ExecutionResult captures one finished dispatch. A non-zero ExitStatus
// is still a completed dispatch: the operator sees the tool's own error
// text instead of a dispatcher failure.
type ExecutionResult struct {
	Action     string        `json:"action"`
	PID        int32         `json:"pid"`
	ExitStatus int           `json:"exit_status"`
	Stdout     string        `json:"stdout"`
	Stderr     string        `json:"stderr"`
	Duration   time.Duration `json:"duration"`
}
