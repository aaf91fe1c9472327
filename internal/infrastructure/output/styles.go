package output

import (
	"github.com/charmbracelet/lipgloss"
)

// Color palette for terminal output. Never use inline lipgloss.Color literals.
var (
	ColorGreenCheck = lipgloss.Color("10")
	ColorYellow     = lipgloss.Color("220")
	ColorBoldRed    = lipgloss.Color("204")
	ColorCyan       = lipgloss.Color("14")
)

var (
	// StyleSuccess styles the final success tag.
	StyleSuccess = lipgloss.NewStyle().Bold(true).Foreground(ColorGreenCheck)

	// StyleFailure styles the final failure tag.
	StyleFailure = lipgloss.NewStyle().Bold(true).Foreground(ColorBoldRed)

	// StylePrompt styles questions asked to the operator.
	StylePrompt = lipgloss.NewStyle().Foreground(ColorYellow)

	// StyleHint styles remediation guidance under a failure.
	StyleHint = lipgloss.NewStyle().Foreground(ColorCyan)
)

// SuccessLine renders "✔ SUCCESS: msg".
func SuccessLine(msg string) string {
	return StyleSuccess.Render("✔ SUCCESS:") + " " + msg
}

// FailureLine renders "✘ FAILURE: msg".
func FailureLine(msg string) string {
	return StyleFailure.Render("✘ FAILURE:") + " " + msg
}

// Prompt renders a question for the operator.
func Prompt(question string) string {
	return StylePrompt.Render(question)
}

// Hint renders remediation guidance.
func Hint(hint string) string {
	return StyleHint.Render(hint)
}
