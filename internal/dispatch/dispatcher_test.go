package dispatch

import (
	"context"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hugo-lorenzo-mato/procscope/internal/actions"
	"github.com/hugo-lorenzo-mato/procscope/internal/core"
	"github.com/hugo-lorenzo-mato/procscope/internal/testutil"
)

func skipOnWindows(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("test relies on a POSIX shell")
	}
}

func commandSpec(name string, argv ...string) actions.Spec {
	return actions.Spec{
		Name:     name,
		Category: core.CategoryGeneric,
		Kind:     actions.KindCommand,
		Command:  argv,
	}
}

func TestDispatcher_ProcessGone(t *testing.T) {
	src := testutil.NewFakeSource(testutil.GenericProcess(100))
	src.MarkDead(100)
	d := New(src, time.Second, nil)

	_, err := d.Run(context.Background(), testutil.GenericProcess(100), commandSpec("pstack", "true"))

	require.Error(t, err)
	assert.True(t, core.IsCategory(err, core.ErrCatProcessGone))
}

func TestDispatcher_CapturesSeparateStreams(t *testing.T) {
	skipOnWindows(t)
	target := testutil.GenericProcess(100)
	d := New(testutil.NewFakeSource(target), 5*time.Second, nil)

	spec := commandSpec("probe", "sh", "-c", "echo out-{pid}; echo err-{pid} 1>&2")
	res, err := d.Run(context.Background(), target, spec)

	require.NoError(t, err)
	assert.Equal(t, 0, res.ExitStatus)
	assert.Equal(t, "out-100\n", res.Stdout)
	assert.Equal(t, "err-100\n", res.Stderr)
	assert.Equal(t, "probe", res.Action)
	assert.Greater(t, res.Duration, time.Duration(0))
}

func TestDispatcher_NonZeroExitIsCompleted(t *testing.T) {
	skipOnWindows(t)
	target := testutil.GenericProcess(100)
	d := New(testutil.NewFakeSource(target), 5*time.Second, nil)

	spec := commandSpec("probe", "sh", "-c", "echo cannot attach 1>&2; exit 3")
	res, err := d.Run(context.Background(), target, spec)

	require.NoError(t, err, "tool failure is a completed dispatch, not an error")
	assert.Equal(t, 3, res.ExitStatus)
	assert.Equal(t, "cannot attach\n", res.Stderr)
}

func TestDispatcher_SpawnFailed(t *testing.T) {
	target := testutil.GenericProcess(100)
	d := New(testutil.NewFakeSource(target), time.Second, nil)

	spec := commandSpec("probe", "procscope-no-such-binary", "{pid}")
	_, err := d.Run(context.Background(), target, spec)

	require.Error(t, err)
	assert.True(t, core.IsCategory(err, core.ErrCatSpawn))
	assert.Contains(t, core.HintOf(err), "procscope-no-such-binary")
}

func TestDispatcher_Timeout(t *testing.T) {
	skipOnWindows(t)
	target := testutil.GenericProcess(100)
	d := New(testutil.NewFakeSource(target), 150*time.Millisecond, nil)

	start := time.Now()
	_, err := d.Run(context.Background(), target, commandSpec("probe", "sleep", "30"))
	elapsed := time.Since(start)

	require.Error(t, err)
	assert.True(t, core.IsCategory(err, core.ErrCatTimeout))
	// Child terminated and control returned within the bound plus
	// bounded overhead.
	assert.Less(t, elapsed, 5*time.Second)
}

func TestDispatcher_TimeoutKillsWholeGroup(t *testing.T) {
	skipOnWindows(t)
	target := testutil.GenericProcess(100)
	d := New(testutil.NewFakeSource(target), 150*time.Millisecond, nil)

	// The shell spawns a grandchild; group kill must reap it too or
	// Wait would block on the shared stdout pipe.
	spec := commandSpec("probe", "sh", "-c", "sleep 30 & wait")
	start := time.Now()
	_, err := d.Run(context.Background(), target, spec)

	require.Error(t, err)
	assert.True(t, core.IsCategory(err, core.ErrCatTimeout))
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestDispatcher_EnvironAction(t *testing.T) {
	target := testutil.GenericProcess(100)
	src := testutil.NewFakeSource(target)
	src.Environs[100] = []core.EnvVar{
		{Key: "A", Value: "1"},
		{Key: "B", Value: "2"},
		{Key: "A", Value: "3"},
	}
	d := New(src, time.Second, nil)

	spec := actions.Spec{Name: "get_be_vars", Category: core.CategoryGeneric, Kind: actions.KindEnviron}
	res, err := d.Run(context.Background(), target, spec)

	require.NoError(t, err)
	assert.Equal(t, 0, res.ExitStatus)
	assert.Equal(t, "A=1\nB=2\nA=3\n", res.Stdout)
	assert.Empty(t, res.Stderr)
}

func TestDispatcher_EnvironOfDeadProcess(t *testing.T) {
	target := testutil.GenericProcess(100)
	src := testutil.NewFakeSource(target)
	d := New(src, time.Second, nil)

	// Process dies between validation and the environ read: Exists
	// still reports alive, the read itself comes back gone.
	src.EnvironErr = core.ErrProcessGone(100)

	spec := actions.Spec{Name: "get_be_vars", Kind: actions.KindEnviron}
	_, err := d.Run(context.Background(), target, spec)

	require.Error(t, err)
	assert.True(t, core.IsCategory(err, core.ErrCatProcessGone))
}

func TestDispatcher_OperatorInterrupt(t *testing.T) {
	skipOnWindows(t)
	target := testutil.GenericProcess(100)
	d := New(testutil.NewFakeSource(target), 30*time.Second, nil)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(100 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	_, err := d.Run(ctx, target, commandSpec("probe", "sleep", "30"))

	require.Error(t, err)
	assert.False(t, core.IsCategory(err, core.ErrCatTimeout), "cancel is not a timeout")
	assert.Less(t, time.Since(start), 5*time.Second, "interrupt must not leave the dispatch blocked")
}
