package proc

import (
	"bytes"
	"strings"

	"github.com/hugo-lorenzo-mato/procscope/internal/core"
)

// ParseEnvironBlock splits a NUL-separated environment block into
// ordered KEY=VALUE pairs. Duplicate keys are kept as separate entries;
// some processes legitimately carry them. Entries without '=' (rare,
// but possible in a raw environ block) become a key with empty value.
func ParseEnvironBlock(block []byte) []core.EnvVar {
	vars := make([]core.EnvVar, 0, 32)
	for _, entry := range bytes.Split(block, []byte{0}) {
		if len(entry) == 0 {
			continue
		}
		vars = append(vars, splitEnvEntry(string(entry)))
	}
	return vars
}

func splitEnvEntry(entry string) core.EnvVar {
	key, value, found := strings.Cut(entry, "=")
	if !found {
		return core.EnvVar{Key: entry}
	}
	return core.EnvVar{Key: key, Value: value}
}

// FormatEnviron renders variables one per line in scan order.
func FormatEnviron(vars []core.EnvVar) string {
	var b strings.Builder
	for _, v := range vars {
		b.WriteString(v.String())
		b.WriteByte('\n')
	}
	return b.String()
}
