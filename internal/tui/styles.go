package tui

import "github.com/charmbracelet/lipgloss"

// Base styles
var (
	// HeaderStyle is the style for the screen title.
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			MarginBottom(1)

	// FooterStyle is the style for the key-hint footer.
	FooterStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			MarginTop(1)

	// ItemStyle is the style for a list entry.
	ItemStyle = lipgloss.NewStyle().
			Foreground(ColorText).
			PaddingLeft(2)

	// SelectedItemStyle is the style for the entry under the cursor.
	SelectedItemStyle = lipgloss.NewStyle().
				Foreground(ColorText).
				Background(ColorHighlight).
				Bold(true).
				PaddingLeft(2)

	// CategoryJVMStyle tags JVM processes in the list.
	CategoryJVMStyle = lipgloss.NewStyle().
				Foreground(ColorSecondary).
				Bold(true)

	// CategoryGenericStyle tags generic processes in the list.
	CategoryGenericStyle = lipgloss.NewStyle().
				Foreground(ColorTextMuted)

	// ResultHeaderStyle frames the result summary line.
	ResultHeaderStyle = lipgloss.NewStyle().
				Foreground(ColorSuccess).
				Bold(true)

	// ResultFailedStyle frames a non-zero exit summary line.
	ResultFailedStyle = lipgloss.NewStyle().
				Foreground(ColorWarning).
				Bold(true)

	// ErrorStyle renders dispatch errors.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true)

	// HintStyle renders remediation hints under errors.
	HintStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Italic(true)

	// StderrStyle dims the stderr section of a result.
	StderrStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)
)
