package ui

import "github.com/charmbracelet/lipgloss"

// ModalStyles are the modal-specific aliases of Styles.
var ModalStyles = struct {
	BoxDefault   lipgloss.Style
	BoxWarning   lipgloss.Style
	BoxCompact   lipgloss.Style
	BoxAI        lipgloss.Style
	Title        lipgloss.Style
	TitleWarning lipgloss.Style
	Label        lipgloss.Style
	Help         lipgloss.Style
	Details      lipgloss.Style
}{
	BoxDefault: Styles.Box,
	BoxWarning: Styles.BoxDanger,
	BoxCompact: Styles.BoxCompact,
	BoxAI: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorHighlight)).
		Padding(1, 2),
	Title:        Styles.Title,
	TitleWarning: Styles.TitleWarning,
	Label:        lipgloss.NewStyle(),
	Help:         Styles.Hint,
	Details:      Styles.Details,
}
