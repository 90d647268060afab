package config

import "time"

// DefaultDispatchTimeout bounds a single dispatch so a hung target
// cannot hang the tool.
const DefaultDispatchTimeout = 10 * time.Second

// Default tool names, resolved on PATH unless overridden.
const (
	DefaultJstack = "jstack"
	DefaultJmap   = "jmap"
	DefaultPstack = "pstack"
)
