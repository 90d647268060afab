// Package actions defines the static table of diagnostic actions and
// which process category each applies to.
package actions

import (
	"strconv"
	"strings"

	"github.com/hugo-lorenzo-mato/procscope/internal/config"
	"github.com/hugo-lorenzo-mato/procscope/internal/core"
)

// Kind distinguishes how an action is carried out.
type Kind string

const (
	// KindCommand spawns an external diagnostic binary.
	KindCommand Kind = "command"
	// KindEnviron reads the target environment block in-process.
	KindEnviron Kind = "environ"
)

// PIDPlaceholder marks where the target pid goes in a command template.
const PIDPlaceholder = "{pid}"

// Spec describes one diagnostic action. Specs are static for the
// lifetime of the run and immutable.
type Spec struct {
	Name        string
	Description string
	Category    core.Category // applicable category, or core.CategoryAny
	Kind        Kind
	Command     []string // template tokens, empty for KindEnviron
}

// AppliesTo reports whether the action is offered for a category.
func (s Spec) AppliesTo(cat core.Category) bool {
	return s.Category == core.CategoryAny || s.Category == cat
}

// Render substitutes the target pid into the command template. The
// spec's template is never mutated.
func (s Spec) Render(pid int32) []string {
	argv := make([]string, len(s.Command))
	pidStr := strconv.FormatInt(int64(pid), 10)
	for i, tok := range s.Command {
		argv[i] = strings.ReplaceAll(tok, PIDPlaceholder, pidStr)
	}
	return argv
}

// Registry holds the action table in presentation order.
type Registry struct {
	specs []Spec
}

// NewRegistry builds the canonical action table with the configured
// tool paths.
func NewRegistry(tools config.ToolsConfig) *Registry {
	return &Registry{
		specs: []Spec{
			{
				Name:        "jstack",
				Description: "Thread dump of all JVM threads",
				Category:    core.CategoryJVM,
				Kind:        KindCommand,
				Command:     []string{tools.Jstack, PIDPlaceholder},
			},
			{
				Name:        "jmap",
				Description: "Heap summary (live object histogram)",
				Category:    core.CategoryJVM,
				Kind:        KindCommand,
				Command:     []string{tools.Jmap, "-histo:live", PIDPlaceholder},
			},
			{
				Name:        "pstack",
				Description: "Native stack trace",
				Category:    core.CategoryGeneric,
				Kind:        KindCommand,
				Command:     []string{tools.Pstack, PIDPlaceholder},
			},
			{
				Name:        "get_be_vars",
				Description: "Environment variables of the process",
				Category:    core.CategoryGeneric,
				Kind:        KindEnviron,
			},
		},
	}
}

// ActionsFor returns the ordered actions applicable to a category. An
// unknown category yields an empty list, never an error, so the menu
// degrades to "no actions available".
func (r *Registry) ActionsFor(cat core.Category) []Spec {
	out := make([]Spec, 0, len(r.specs))
	for _, s := range r.specs {
		if s.AppliesTo(cat) {
			out = append(out, s)
		}
	}
	return out
}

// Lookup finds an action by name for non-interactive invocation.
func (r *Registry) Lookup(name string) (Spec, bool) {
	for _, s := range r.specs {
		if s.Name == name {
			return s, true
		}
	}
	return Spec{}, false
}

// Names returns every action name in presentation order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.specs))
	for i, s := range r.specs {
		names[i] = s.Name
	}
	return names
}
