package ui

import "github.com/charmbracelet/lipgloss"

// Styles.
var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	symbolStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	gainStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	lossStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	priceStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	volumeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("117")) // light blue
	selectedStyle = lipgloss.NewStyle().Background(lipgloss.Color("237"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
	rangeOnStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("6"))

	sidePanelStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, true, false, false).
			BorderForeground(lipgloss.Color("240")).
			PaddingRight(1)
)

// changeStyle colours a delta: green up, red down, plain when flat.
func changeStyle(pct float64) lipgloss.Style {
	switch {
	case pct > 0:
		return gainStyle
	case pct < 0:
		return lossStyle
	default:
		return lipgloss.NewStyle()
	}
}
