package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorCyan = lipgloss.Color("36")
	colorDim  = lipgloss.Color("240")
)

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)
)

// printHeader writes a styled title with an optional dim subtitle.
func printHeader(w io.Writer, title, subtitle string) {
	fmt.Fprintln(w, StyleTitle.Render(title))
	if subtitle != "" {
		fmt.Fprintln(w, StyleDim.Render(subtitle))
	}
	fmt.Fprintln(w)
}
