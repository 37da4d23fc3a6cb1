// Package cli provides styled terminal output using lipgloss.
package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	// IncomeColor marks money coming in.
	IncomeColor = lipgloss.Color("#2ECC71")
	// ExpenseColor marks money going out.
	ExpenseColor = lipgloss.Color("#E74C3C")
	// ErrorColor indicates errors or failure messages.
	ErrorColor = lipgloss.Color("#FF6B6B")
	// SubtleColor indicates less prominent UI elements.
	SubtleColor = lipgloss.Color("#666666")

	// TitleStyle is used for section titles.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			MarginBottom(1)

	// IncomeStyle formats income amounts and totals.
	IncomeStyle = lipgloss.NewStyle().
			Foreground(IncomeColor)

	// ExpenseStyle formats expense amounts and totals.
	ExpenseStyle = lipgloss.NewStyle().
			Foreground(ExpenseColor)

	// ErrorStyle formats error messages.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor)

	// SubtleStyle formats less prominent text.
	SubtleStyle = lipgloss.NewStyle().
			Foreground(SubtleColor)

	// BoldStyle makes text bold.
	BoldStyle = lipgloss.NewStyle().
			Bold(true)
)

// RatioBar renders the income/expense proportion indicator: the filled part
// is the income share of total activity. A ratio of 0.5 renders centered,
// which is also what an empty filtered set shows.
func RatioBar(ratio float64, width int) string {
	if width < 2 {
		width = 2
	}
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}

	filled := int(ratio*float64(width) + 0.5)
	if filled > width {
		filled = width
	}

	bar := IncomeStyle.Render(strings.Repeat("█", filled)) +
		ExpenseStyle.Render(strings.Repeat("░", width-filled))
	return bar
}
