package proc

import (
	"path"
	"strings"

	"github.com/hugo-lorenzo-mato/procscope/internal/core"
)

// jvmLaunchers are the executable basenames that mark a JVM process.
var jvmLaunchers = map[string]bool{
	"java":  true,
	"javaw": true,
}

// Classify infers the runtime category from the process name and
// command line. A process is a JVM process when its launcher binary is
// a java executable; everything else is generic. A java archive opened
// by some other tool ("vim app.jar") stays generic.
func Classify(name, cmdline string) core.Category {
	if isJVMLauncher(name) {
		return core.CategoryJVM
	}

	fields := strings.Fields(cmdline)
	if len(fields) > 0 && isJVMLauncher(fields[0]) {
		return core.CategoryJVM
	}

	return core.CategoryGeneric
}

func isJVMLauncher(token string) bool {
	token = strings.TrimSpace(token)
	// Normalize Windows separators before splitting the path.
	base := path.Base(strings.ReplaceAll(token, `\`, "/"))
	base = strings.TrimSuffix(base, ".exe")
	return jvmLaunchers[base]
}
