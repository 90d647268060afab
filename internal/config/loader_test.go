package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoader_Defaults(t *testing.T) {
	cfg, err := loadFromDir(t, "")
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "auto", cfg.Log.Format)
	assert.Equal(t, 10*time.Second, cfg.DispatchTimeout())
	assert.Equal(t, "jstack", cfg.Tools.Jstack)
	assert.Equal(t, "jmap", cfg.Tools.Jmap)
	assert.Equal(t, "pstack", cfg.Tools.Pstack)
}

func TestLoader_ConfigFile(t *testing.T) {
	cfg, err := loadFromDir(t, `
log:
  level: debug
dispatch:
  timeout: 30s
tools:
  jstack: /opt/jdk/bin/jstack
`)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 30*time.Second, cfg.DispatchTimeout())
	assert.Equal(t, "/opt/jdk/bin/jstack", cfg.Tools.Jstack)
	// Untouched keys keep defaults.
	assert.Equal(t, "jmap", cfg.Tools.Jmap)
}

func TestLoader_EnvOverride(t *testing.T) {
	t.Setenv("PROCSCOPE_LOG_LEVEL", "error")
	t.Setenv("PROCSCOPE_DISPATCH_TIMEOUT", "3s")

	cfg, err := loadFromDir(t, "")
	require.NoError(t, err)

	assert.Equal(t, "error", cfg.Log.Level)
	assert.Equal(t, 3*time.Second, cfg.DispatchTimeout())
}

func TestLoader_MalformedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log: [unclosed"), 0o644))

	_, err := NewLoader().WithConfigFile(path).Load()
	assert.Error(t, err)
}

func TestConfig_DispatchTimeoutFallback(t *testing.T) {
	cfg := &Config{Dispatch: DispatchConfig{Timeout: "not-a-duration"}}
	assert.Equal(t, DefaultDispatchTimeout, cfg.DispatchTimeout())

	cfg = &Config{Dispatch: DispatchConfig{Timeout: "-5s"}}
	assert.Equal(t, DefaultDispatchTimeout, cfg.DispatchTimeout())
}

func TestConfig_YAMLRoundTrip(t *testing.T) {
	cfg := &Config{
		Log:      LogConfig{Level: "debug", Format: "json"},
		UI:       UIConfig{NoColor: true},
		Dispatch: DispatchConfig{Timeout: "30s"},
		Tools:    ToolsConfig{Jstack: "/opt/jdk/bin/jstack", Jmap: "jmap", Pstack: "pstack"},
	}

	out, err := cfg.YAML()
	require.NoError(t, err)

	loaded, err := loadFromDir(t, string(out))
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

// loadFromDir loads config from a temp working directory, writing the
// given YAML as .procscope.yaml when non-empty.
func loadFromDir(t *testing.T, yaml string) (*Config, error) {
	t.Helper()
	dir := t.TempDir()
	if yaml != "" {
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".procscope.yaml"), []byte(yaml), 0o644))
	}

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	return NewLoader().Load()
}
