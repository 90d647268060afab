package cmd

import (
	"context"
	"errors"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hugo-lorenzo-mato/procscope/internal/core"
	"github.com/hugo-lorenzo-mato/procscope/internal/testutil"
)

func TestRootCommand(t *testing.T) {
	t.Run("subcommands registered", func(t *testing.T) {
		names := make(map[string]bool)
		for _, c := range rootCmd.Commands() {
			names[c.Name()] = true
		}
		for _, want := range []string{"run", "list", "doctor", "version"} {
			assert.True(t, names[want], "missing subcommand %q", want)
		}
	})

	t.Run("persistent flags", func(t *testing.T) {
		for _, name := range []string{"config", "log-level", "log-format", "no-color", "timeout"} {
			assert.NotNil(t, rootCmd.PersistentFlags().Lookup(name), "missing flag %q", name)
		}
	})
}

func TestRunCommandFlags(t *testing.T) {
	pidFlag := runCmd.Flags().Lookup("pid")
	require.NotNil(t, pidFlag)
	actionFlag := runCmd.Flags().Lookup("action")
	require.NotNil(t, actionFlag)

	// Both flags carry the cobra required annotation.
	assert.Contains(t, pidFlag.Annotations, cobra.BashCompOneRequiredFlag)
	assert.Contains(t, actionFlag.Annotations, cobra.BashCompOneRequiredFlag)
}

func TestFindProcess(t *testing.T) {
	source := testutil.NewFakeSource(
		testutil.JVMProcess(100),
		testutil.GenericProcess(200),
	)
	application := &app{source: source}

	t.Run("known pid", func(t *testing.T) {
		p, err := findProcess(context.Background(), application, 200)
		require.NoError(t, err)
		assert.Equal(t, int32(200), p.PID)
		assert.Equal(t, core.CategoryGeneric, p.Category)
	})

	t.Run("unknown pid is process gone", func(t *testing.T) {
		_, err := findProcess(context.Background(), application, 999)
		require.Error(t, err)
		var derr *core.DomainError
		require.True(t, errors.As(err, &derr))
		assert.Equal(t, core.CodeProcessGone, derr.Code)
	})

	t.Run("scan failure propagates", func(t *testing.T) {
		broken := testutil.NewFakeSource()
		broken.ListErr = errors.New("proc unavailable")
		_, err := findProcess(context.Background(), &app{source: broken}, 1)
		assert.Error(t, err)
	})
}
