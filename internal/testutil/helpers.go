package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hugo-lorenzo-mato/procscope/internal/core"
)

// TempFile creates a file with content under dir and returns its path.
func TempFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing temp file: %v", err)
	}
	return path
}

// JVMProcess builds a ProcessInfo shaped like a java service.
func JVMProcess(pid int32) core.ProcessInfo {
	return core.ProcessInfo{
		PID:      pid,
		Name:     "java",
		Cmdline:  "java -jar app.jar",
		Category: core.CategoryJVM,
	}
}

// GenericProcess builds a ProcessInfo shaped like a native daemon.
func GenericProcess(pid int32) core.ProcessInfo {
	return core.ProcessInfo{
		PID:      pid,
		Name:     "backendd",
		Cmdline:  "/usr/sbin/backendd --foreground",
		Category: core.CategoryGeneric,
	}
}
