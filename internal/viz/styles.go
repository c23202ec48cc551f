package viz

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Shared styles, rebuilt by SetTheme
var (
	Title       lipgloss.Style
	Label       lipgloss.Style
	Value       lipgloss.Style
	Subtle      lipgloss.Style
	ErrorStyle  lipgloss.Style
	SuccessMark lipgloss.Style
)

func init() {
	applyTheme(CurrentTheme)
}

func applyTheme(t Theme) {
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Accent).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(t.Muted)
	Label = lipgloss.NewStyle().Foreground(t.Muted)
	Value = lipgloss.NewStyle().Bold(true).Foreground(t.Primary)
	Subtle = lipgloss.NewStyle().Foreground(t.Muted).Italic(true)
	ErrorStyle = lipgloss.NewStyle().Bold(true).Foreground(t.Error)
	SuccessMark = lipgloss.NewStyle().Foreground(t.Success)
}

// KeyValue renders "label  value" with the label padded to width.
func KeyValue(label string, value any, width int) string {
	return Label.Render(fmt.Sprintf("%-*s", width, label)) + " " + Value.Render(fmt.Sprint(value))
}

// FormatTable renders the table as a bracketed, space-separated list,
// wrapping after perLine entries.
func FormatTable(values []int, perLine int) string {
	if perLine <= 0 {
		perLine = len(values)
	}
	width := len(fmt.Sprint(len(values) - 1))

	var b strings.Builder
	b.WriteByte('[')
	for i, v := range values {
		if i > 0 {
			if i%perLine == 0 {
				b.WriteString("\n ")
			} else {
				b.WriteByte(' ')
			}
		}
		fmt.Fprintf(&b, "%*d", width, v)
	}
	b.WriteByte(']')
	return b.String()
}

// ProgressBar renders a progress bar of the given width
func ProgressBar(percent float64, width int) string {
	filled := int(percent * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return SuccessMark.Render(strings.Repeat("█", filled)) + Subtle.Render(strings.Repeat("░", width-filled))
}
