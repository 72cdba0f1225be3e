package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"fitcoach/internal/planning"
)

// Colors
var (
	primaryColor   = lipgloss.Color("#7C3AED") // Purple
	secondaryColor = lipgloss.Color("#10B981") // Green
	warningColor   = lipgloss.Color("#F59E0B") // Amber
	errorColor     = lipgloss.Color("#EF4444") // Red
	mutedColor     = lipgloss.Color("#6B7280") // Gray
	textColor      = lipgloss.Color("#F9FAFB") // Light gray
	lacticColor    = lipgloss.Color("#F97316") // Orange
	alacticColor   = lipgloss.Color("#3B82F6") // Blue
)

// Styles
var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(textColor).
			Background(primaryColor).
			Padding(0, 1).
			MarginBottom(1)

	// Navigation
	navStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			MarginBottom(1)

	navActiveStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor)

	navInactiveStyle = lipgloss.NewStyle().
				Foreground(mutedColor)

	// Cards and boxes
	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(mutedColor).
			Padding(1, 2)

	cardTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			MarginBottom(1)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(secondaryColor)

	mutedStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	// Metrics
	metricLabelStyle = lipgloss.NewStyle().
				Foreground(mutedColor).
				Width(20)

	metricValueStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(textColor)

	// Deficits
	deficitBehindStyle = lipgloss.NewStyle().
				Foreground(warningColor)

	deficitAheadStyle = lipgloss.NewStyle().
				Foreground(secondaryColor)

	// Status
	statusStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			MarginTop(1)

	errorStyle = lipgloss.NewStyle().
			Foreground(errorColor)

	successStyle = lipgloss.NewStyle().
			Foreground(secondaryColor)

	warningStyle = lipgloss.NewStyle().
			Foreground(warningColor)

	// Help
	helpKeyStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Bold(true)

	helpDescStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	// Progress bar
	progressEmptyStyle = lipgloss.NewStyle().
				Foreground(mutedColor)
)

var systemColors = [...]lipgloss.Color{
	planning.Aerobic:          secondaryColor,
	planning.AnaerobicAlactic: alacticColor,
	planning.AnaerobicLactic:  lacticColor,
	planning.Mixed:            primaryColor,
}

// systemStyle colours text by energy system.
func systemStyle(e planning.EnergySystem) lipgloss.Style {
	if !e.Valid() {
		return mutedStyle
	}
	return lipgloss.NewStyle().Bold(true).Foreground(systemColors[e])
}

// RenderMetric renders a label/value pair
func RenderMetric(label, value string) string {
	return lipgloss.JoinHorizontal(
		lipgloss.Left,
		metricLabelStyle.Render(label),
		metricValueStyle.Render(value),
	)
}

// RenderProgressBar renders an ASCII progress bar in the given colour.
// percent is 0-1.
func RenderProgressBar(percent float64, width int, color lipgloss.Color) string {
	filled := int(percent * float64(width))
	filled = max(0, min(filled, width))

	full := lipgloss.NewStyle().Foreground(color)
	return full.Render(strings.Repeat("█", filled)) +
		progressEmptyStyle.Render(strings.Repeat("░", width-filled))
}

// RenderKeyHelp renders a key binding help item
func RenderKeyHelp(key, desc string) string {
	return helpKeyStyle.Render(key) + " " + helpDescStyle.Render(desc)
}

// bulletList renders items as an indented list, or "-" when empty.
func bulletList(items []string) string {
	if len(items) == 0 {
		return "  -"
	}
	lines := make([]string, len(items))
	for i, it := range items {
		lines[i] = "  • " + it
	}
	return strings.Join(lines, "\n")
}
