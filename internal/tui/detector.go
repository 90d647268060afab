package tui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Detector determines whether the full TUI and color output can be
// used for this invocation.
type Detector struct {
	noColor bool
}

// NewDetector creates a new output capability detector.
func NewDetector() *Detector {
	return &Detector{}
}

// NoColor disables color output.
func (d *Detector) NoColor(disable bool) *Detector {
	d.noColor = disable
	return d
}

// IsTTY reports whether both ends of the session are terminals. The
// fallback prompt loop is used otherwise.
func (d *Detector) IsTTY() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// ShouldUseColor determines if color should be used.
func (d *Detector) ShouldUseColor() bool {
	if d.noColor {
		return false
	}

	// NO_COLOR convention
	if os.Getenv("NO_COLOR") != "" {
		return false
	}

	if os.Getenv("TERM") == "dumb" {
		return false
	}

	return d.IsTTY()
}

// ApplyColorProfile degrades lipgloss rendering to plain ASCII when
// color is off, so every style in the package renders without escape
// sequences.
func (d *Detector) ApplyColorProfile() {
	if !d.ShouldUseColor() {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}
