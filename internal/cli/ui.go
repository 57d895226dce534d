package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// uiOut receives status output. It is stderr so that documents written
// to stdout stay machine-readable.
var uiOut io.Writer = os.Stderr

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Styles
// =============================================================================

var (
	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleNumber for numeric values.
	StyleNumber = lipgloss.NewStyle().Foreground(colorCyan)

	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleHeader      = lipgloss.NewStyle().Bold(true).Foreground(colorGray).Padding(0, 1)
	styleCell        = lipgloss.NewStyle().Padding(0, 1)
	styleDropped     = lipgloss.NewStyle().Foreground(colorYellow).Padding(0, 1)
)

const (
	iconSuccess = "✓"
	iconInfo    = "›"
	iconArrow   = "→"
)

// =============================================================================
// Status Output
// =============================================================================

// printSuccess prints a success message.
func printSuccess(format string, args ...any) {
	fmt.Fprintln(uiOut, styleIconSuccess.Render(iconSuccess)+" "+fmt.Sprintf(format, args...))
}

// printInfo prints an info/status message.
func printInfo(format string, args ...any) {
	fmt.Fprintln(uiOut, styleIconInfo.Render(iconInfo)+" "+fmt.Sprintf(format, args...))
}

// printDetail prints a detail line (indented).
func printDetail(format string, args ...any) {
	fmt.Fprintln(uiOut, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints a file output line.
func printFile(path string) {
	fmt.Fprintln(uiOut, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(path))
}

// printKeyValue prints a labeled value.
func printKeyValue(key, value string) {
	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(14)
	fmt.Fprintln(uiOut, keyStyle.Render(key)+" "+StyleValue.Render(value))
}

// =============================================================================
// Summary
// =============================================================================

// summaryTable renders before/after counts of a filter run.
func summaryTable(before, after catalogStats) string {
	rows := [][]string{
		{"cores", strconv.Itoa(before.Cores), strconv.Itoa(after.Cores), strconv.Itoa(before.Cores - after.Cores)},
		{"plugins", strconv.Itoa(before.Plugins), strconv.Itoa(after.Plugins), strconv.Itoa(before.Plugins - after.Plugins)},
		{"releases", strconv.Itoa(before.Releases), strconv.Itoa(after.Releases), strconv.Itoa(before.Releases - after.Releases)},
	}
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(StyleDim).
		Headers("", "before", "after", "dropped").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return styleHeader
			case col == 3:
				return styleDropped
			}
			return styleCell
		}).
		Render()
}

// printSummary prints the filter summary.
func printSummary(before, after catalogStats) {
	printSuccess("Filtered catalog: %s plugins, %s releases, %s cores",
		StyleNumber.Render(strconv.Itoa(after.Plugins)),
		StyleNumber.Render(strconv.Itoa(after.Releases)),
		StyleNumber.Render(strconv.Itoa(after.Cores)))
	fmt.Fprintln(uiOut, summaryTable(before, after))
}
