// Package testutil provides shared test fakes and helpers.
package testutil

import (
	"context"

	"github.com/hugo-lorenzo-mato/procscope/internal/core"
)

// FakeSource is an in-memory proc.Source for tests.
type FakeSource struct {
	Procs    []core.ProcessInfo
	Environs map[int32][]core.EnvVar
	Dead     map[int32]bool // pids that report as gone on Exists

	ListErr    error
	ExistsErr  error
	EnvironErr error

	ListCalls int
}

// NewFakeSource creates a fake source seeded with processes. All seeded
// pids report alive until marked dead.
func NewFakeSource(procs ...core.ProcessInfo) *FakeSource {
	return &FakeSource{
		Procs:    procs,
		Environs: make(map[int32][]core.EnvVar),
		Dead:     make(map[int32]bool),
	}
}

// MarkDead makes a pid report as gone.
func (f *FakeSource) MarkDead(pid int32) {
	f.Dead[pid] = true
}

// List returns the seeded processes.
func (f *FakeSource) List(_ context.Context) ([]core.ProcessInfo, error) {
	f.ListCalls++
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	out := make([]core.ProcessInfo, len(f.Procs))
	copy(out, f.Procs)
	return out, nil
}

// Exists reports liveness of a seeded pid.
func (f *FakeSource) Exists(_ context.Context, pid int32) (bool, error) {
	if f.ExistsErr != nil {
		return false, f.ExistsErr
	}
	if f.Dead[pid] {
		return false, nil
	}
	for _, p := range f.Procs {
		if p.PID == pid {
			return true, nil
		}
	}
	return false, nil
}

// ReadEnviron returns the seeded environment for a pid.
func (f *FakeSource) ReadEnviron(_ context.Context, pid int32) ([]core.EnvVar, error) {
	if f.EnvironErr != nil {
		return nil, f.EnvironErr
	}
	if f.Dead[pid] {
		return nil, core.ErrProcessGone(pid)
	}
	return f.Environs[pid], nil
}
