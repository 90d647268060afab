//go:build !linux

package proc

import (
	"context"
	"fmt"

	"github.com/shirou/gopsutil/v3/process"

	"github.com/hugo-lorenzo-mato/procscope/internal/core"
)

// readEnviron falls back to gopsutil where /proc is not available. The
// ordered-pair semantics match the Linux path.
func readEnviron(ctx context.Context, pid int32) ([]core.EnvVar, error) {
	p, err := process.NewProcessWithContext(ctx, pid)
	if err != nil {
		return nil, core.ErrProcessGone(pid)
	}

	entries, err := p.EnvironWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading environ for pid %d: %w", pid, err)
	}

	vars := make([]core.EnvVar, 0, len(entries))
	for _, entry := range entries {
		if entry == "" {
			continue
		}
		vars = append(vars, splitEnvEntry(entry))
	}
	return vars, nil
}
