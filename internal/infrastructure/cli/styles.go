package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/felixgeelhaar/planalyze/pkg/domain/risk"
)

// Styles
var headerStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("#FAFAFA")).
	Background(lipgloss.Color("#7D56F4")).
	PaddingLeft(1).
	PaddingRight(1)

var dimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

var severityLow = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
var severityMedium = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
var severityHigh = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
var severityCritical = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)

var gradeGood = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
var gradeWarn = lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Bold(true)
var gradeBad = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)

func renderSeverity(s risk.Severity) string {
	switch s {
	case risk.SeverityCritical:
		return severityCritical.Render(string(s))
	case risk.SeverityHigh:
		return severityHigh.Render(string(s))
	case risk.SeverityMedium:
		return severityMedium.Render(string(s))
	default:
		return severityLow.Render(string(s))
	}
}

func renderGrade(grade string, score int) string {
	label := fmt.Sprintf("%s (%d/100)", grade, score)
	switch grade {
	case "A", "B":
		return gradeGood.Render(label)
	case "C", "D":
		return gradeWarn.Render(label)
	default:
		return gradeBad.Render(label)
	}
}
