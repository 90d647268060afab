package proc

import (
	"context"
	"sort"

	"github.com/shirou/gopsutil/v3/process"

	"github.com/hugo-lorenzo-mato/procscope/internal/core"
	"github.com/hugo-lorenzo-mato/procscope/internal/logging"
)

// SystemSource reads the live OS process table through gopsutil.
type SystemSource struct {
	logger *logging.Logger
}

// NewSystemSource creates a catalog source over the OS process table.
func NewSystemSource(logger *logging.Logger) *SystemSource {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &SystemSource{logger: logger}
}

// List scans the process table. Unreadable processes are skipped and
// counted at debug level; the scan only fails when nothing at all can
// be enumerated.
func (s *SystemSource) List(ctx context.Context) ([]core.ProcessInfo, error) {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return nil, core.ErrScanFailed(err)
	}

	infos := make([]core.ProcessInfo, 0, len(procs))
	seen := make(map[int32]bool, len(procs))
	skipped := 0

	for _, p := range procs {
		if seen[p.Pid] {
			continue
		}

		name, err := p.NameWithContext(ctx)
		if err != nil {
			// Exited mid-scan or permission denied; partial results are fine.
			skipped++
			continue
		}

		// Cmdline may be empty (kernel threads) or unreadable; the name
		// alone still identifies the process.
		cmdline, _ := p.CmdlineWithContext(ctx)

		seen[p.Pid] = true
		infos = append(infos, core.ProcessInfo{
			PID:      p.Pid,
			Name:     name,
			Cmdline:  cmdline,
			Category: Classify(name, cmdline),
		})
	}

	if skipped > 0 {
		s.logger.Debug("scan skipped unreadable processes", "skipped", skipped, "listed", len(infos))
	}

	// Stable order so repeated scans are diffable.
	sort.Slice(infos, func(i, j int) bool { return infos[i].PID < infos[j].PID })

	return infos, nil
}

// Exists re-checks a pid against the process table.
func (s *SystemSource) Exists(ctx context.Context, pid int32) (bool, error) {
	return process.PidExistsWithContext(ctx, pid)
}

// ReadEnviron reads the environment block of the target process.
func (s *SystemSource) ReadEnviron(ctx context.Context, pid int32) ([]core.EnvVar, error) {
	return readEnviron(ctx, pid)
}
