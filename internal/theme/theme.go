package theme

import "github.com/charmbracelet/lipgloss"

// Styles describes reusable Lip Gloss styles shared across the widgets.
type Styles struct {
	Panel              *lipgloss.Style
	PanelTitle         *lipgloss.Style
	Item               *lipgloss.Style
	SelectedItem       *lipgloss.Style
	Placeholder        *lipgloss.Style
	Header             *lipgloss.Style
	Footer             *lipgloss.Style
	Info               *lipgloss.Style
	Error              *lipgloss.Style
	InputLabel         *lipgloss.Style
	InputFrame         *lipgloss.Style
	InputFrameError    *lipgloss.Style
	InputFrameDisabled *lipgloss.Style
	InputHint          *lipgloss.Style
	ToastSuccess       *lipgloss.Style
	ToastError         *lipgloss.Style
	ToastInfo          *lipgloss.Style
	CloseGlyph         *lipgloss.Style
}

var defaultStyles = Styles{
	Panel: ptr(
		lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1),
	),
	PanelTitle: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true),
	),
	Item: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	SelectedItem: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("238")).Bold(true),
	),
	Placeholder: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
	),
	Header: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true),
	),
	Footer: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	),
	Info: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	Error: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	),
	InputLabel: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("250")).Bold(true),
	),
	InputFrame: ptr(
		lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1),
	),
	InputFrameError: ptr(
		lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("196")).Padding(0, 1),
	),
	InputFrameDisabled: ptr(
		lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("236")).Foreground(lipgloss.Color("241")).Padding(0, 1),
	),
	InputHint: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	),
	ToastSuccess: ptr(
		lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("35")).Foreground(lipgloss.Color("255")).Padding(0, 1),
	),
	ToastError: ptr(
		lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("196")).Foreground(lipgloss.Color("255")).Padding(0, 1),
	),
	ToastInfo: ptr(
		lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("33")).Foreground(lipgloss.Color("255")).Padding(0, 1),
	),
	CloseGlyph: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	),
}

// Default exposes the standard style set used across the widgets.
func Default() *Styles {
	return &defaultStyles
}

func ptr(style lipgloss.Style) *lipgloss.Style {
	return &style
}
