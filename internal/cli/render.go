package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	colorGreen  = lipgloss.Color("#8ec07c")
	colorYellow = lipgloss.Color("#fabd2f")
	colorRed    = lipgloss.Color("#fb4934")
	colorBlue   = lipgloss.Color("#83a598")
	colorDim    = lipgloss.Color("#928374")
	colorFg     = lipgloss.Color("#ebdbb2")
	colorHeader = lipgloss.Color("#fe8019")
)

var (
	styleGreen  = lipgloss.NewStyle().Foreground(colorGreen)
	styleYellow = lipgloss.NewStyle().Foreground(colorYellow)
	styleRed    = lipgloss.NewStyle().Foreground(colorRed)
	styleBlue   = lipgloss.NewStyle().Foreground(colorBlue)
	styleDim    = lipgloss.NewStyle().Foreground(colorDim)
	styleHeader = lipgloss.NewStyle().Foreground(colorHeader).Bold(true)
	styleBold   = lipgloss.NewStyle().Foreground(colorFg).Bold(true)
	styleWarn   = lipgloss.NewStyle().Foreground(colorYellow).Bold(true)
)

// renderTable renders an aligned table with a header separator line. Columns
// are padded to the widest visible cell, measured with lipgloss so ANSI
// styling does not skew the alignment.
func renderTable(headers []string, rows [][]string) string {
	if len(headers) == 0 {
		return ""
	}

	cols := len(headers)
	widths := make([]int, cols)
	for i, h := range headers {
		if w := lipgloss.Width(h); w > widths[i] {
			widths[i] = w
		}
	}
	for _, row := range rows {
		for i := 0; i < cols && i < len(row); i++ {
			if w := lipgloss.Width(row[i]); w > widths[i] {
				widths[i] = w
			}
		}
	}

	const colGap = 2

	var b strings.Builder
	for i, h := range headers {
		b.WriteString(styleHeader.Render(h))
		if i < cols-1 {
			b.WriteString(strings.Repeat(" ", widths[i]-lipgloss.Width(h)+colGap))
		}
	}
	b.WriteString("\n")

	for i, w := range widths {
		b.WriteString(styleDim.Render(strings.Repeat("─", w)))
		if i < cols-1 {
			b.WriteString(strings.Repeat(" ", colGap))
		}
	}
	b.WriteString("\n")

	for _, row := range rows {
		for i := 0; i < cols; i++ {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			pad := widths[i] - lipgloss.Width(cell)
			if pad < 0 {
				pad = 0
			}
			b.WriteString(cell)
			if i < cols-1 {
				b.WriteString(strings.Repeat(" ", pad+colGap))
			}
		}
		b.WriteString("\n")
	}

	return b.String()
}

// sectionHeader renders an underlined section title.
func sectionHeader(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", styleHeader.Render(upper), styleDim.Render(line))
}

func dim(text string) string  { return styleDim.Render(text) }
func bold(text string) string { return styleBold.Render(text) }

// shortAddr abbreviates an SS58 address for table cells.
func shortAddr(addr string) string {
	if len(addr) <= 16 {
		return addr
	}
	return addr[:8] + ".." + addr[len(addr)-6:]
}

// floatCell formats a float with four decimals, the common table precision.
func floatCell(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}

// percentCell formats a fraction as a percentage.
func percentCell(frac float64) string {
	return strconv.FormatFloat(frac*100, 'f', 2, 64) + "%"
}

// yesNo renders a boolean as a colored mark.
func yesNo(v bool) string {
	if v {
		return styleGreen.Render("yes")
	}
	return dim("no")
}

// Metagraph columns are index-aligned but may be shorter than the hotkey
// list; these accessors tolerate short columns instead of panicking.
func stringAt(s []string, i int) string {
	if i < len(s) {
		return s[i]
	}
	return ""
}

func floatAt(s []float64, i int) float64 {
	if i < len(s) {
		return s[i]
	}
	return 0
}

func intAt(s []int, i int) int {
	if i < len(s) {
		return s[i]
	}
	return 0
}

func boolAt(s []bool, i int) bool {
	return i < len(s) && s[i]
}
