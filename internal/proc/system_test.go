package proc

import (
	"context"
	"os"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSystemSource_List(t *testing.T) {
	src := NewSystemSource(nil)

	infos, err := src.List(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, infos, "a live system always has processes")

	seen := make(map[int32]bool, len(infos))
	lastPID := int32(-1)
	for _, info := range infos {
		assert.False(t, seen[info.PID], "duplicate pid %d in one scan", info.PID)
		seen[info.PID] = true

		assert.Greater(t, info.PID, lastPID, "scan not sorted by pid")
		lastPID = info.PID

		assert.True(t, info.Category.Valid(), "pid %d has category %q", info.PID, info.Category)
	}
}

func TestSystemSource_ListContainsSelf(t *testing.T) {
	src := NewSystemSource(nil)

	infos, err := src.List(context.Background())
	require.NoError(t, err)

	self := int32(os.Getpid())
	found := false
	for _, info := range infos {
		if info.PID == self {
			found = true
			break
		}
	}
	assert.True(t, found, "scan should include the test process itself")
}

func TestSystemSource_Exists(t *testing.T) {
	src := NewSystemSource(nil)
	ctx := context.Background()

	alive, err := src.Exists(ctx, int32(os.Getpid()))
	require.NoError(t, err)
	assert.True(t, alive)

	// Pid well above any default pid_max allocation.
	gone, err := src.Exists(ctx, 1<<30)
	require.NoError(t, err)
	assert.False(t, gone)
}

func TestSystemSource_ReadEnvironSelf(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("environ reads are unix-only in this test")
	}

	if len(os.Environ()) == 0 {
		t.Skip("test process has an empty environment")
	}

	// The environ block reflects the environment at process start, so
	// only assert on shape, not on any specific variable.
	src := NewSystemSource(nil)
	vars, err := src.ReadEnviron(context.Background(), int32(os.Getpid()))
	require.NoError(t, err)
	require.NotEmpty(t, vars)

	for _, v := range vars {
		assert.NotEmpty(t, v.Key)
	}
}
