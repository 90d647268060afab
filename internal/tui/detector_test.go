package tui

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetector_ShouldUseColor(t *testing.T) {
	t.Run("explicit no-color wins", func(t *testing.T) {
		assert.False(t, NewDetector().NoColor(true).ShouldUseColor())
	})

	t.Run("NO_COLOR convention", func(t *testing.T) {
		t.Setenv("NO_COLOR", "1")
		assert.False(t, NewDetector().ShouldUseColor())
	})

	t.Run("dumb terminal", func(t *testing.T) {
		t.Setenv("NO_COLOR", "")
		t.Setenv("TERM", "dumb")
		assert.False(t, NewDetector().ShouldUseColor())
	})
}

func TestDetector_ApplyColorProfileStripsEscapes(t *testing.T) {
	restore := lipgloss.ColorProfile()
	lipgloss.SetColorProfile(termenv.TrueColor)
	t.Cleanup(func() { lipgloss.SetColorProfile(restore) })

	require.Contains(t, HeaderStyle.Render("procscope"), "\x1b[")

	NewDetector().NoColor(true).ApplyColorProfile()

	for name, style := range map[string]lipgloss.Style{
		"header":   HeaderStyle,
		"selected": SelectedItemStyle,
		"error":    ErrorStyle,
	} {
		assert.NotContains(t, style.Render("procscope"), "\x1b[",
			"style %q must render plain with color disabled", name)
	}
}
