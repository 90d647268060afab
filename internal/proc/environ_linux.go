//go:build linux

package proc

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/hugo-lorenzo-mato/procscope/internal/core"
)

// readEnviron reads /proc/<pid>/environ directly. No subprocess is
// involved, and order and duplicate keys survive intact.
func readEnviron(_ context.Context, pid int32) ([]core.EnvVar, error) {
	block, err := os.ReadFile(fmt.Sprintf("/proc/%d/environ", pid))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, core.ErrProcessGone(pid)
		}
		return nil, fmt.Errorf("reading environ for pid %d: %w", pid, err)
	}
	return ParseEnvironBlock(block), nil
}
