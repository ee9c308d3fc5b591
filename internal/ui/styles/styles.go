// Package styles holds the shared lipgloss styles for the trader-ui
// visualizer.
package styles

import "github.com/charmbracelet/lipgloss"

var (
	PrimaryColor     = lipgloss.Color("#7C3AED")
	BuyColor         = lipgloss.Color("#10B981")
	SellColor        = lipgloss.Color("#EF4444")
	BorderColor      = lipgloss.Color("#374151")
	FocusBorderColor = lipgloss.Color("#7C3AED")
	TextColor        = lipgloss.Color("#F9FAFB")
	TextMutedColor   = lipgloss.Color("#6B7280")
)

var (
	PanelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(BorderColor).
		Padding(0, 1)

	FocusedPanelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(FocusBorderColor).
		Padding(0, 1)

	TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(PrimaryColor).
		Padding(0, 1)

	HeaderStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextMutedColor)

	BuyStyle = lipgloss.NewStyle().Bold(true).Foreground(BuyColor)

	SellStyle = lipgloss.NewStyle().Bold(true).Foreground(SellColor)

	MutedStyle = lipgloss.NewStyle().Foreground(TextMutedColor)

	StatusBarStyle = lipgloss.NewStyle().
		Foreground(TextMutedColor).
		Padding(0, 1)

	StatusBarKeyStyle = lipgloss.NewStyle().
		Foreground(PrimaryColor).
		Bold(true)
)

// RenderTitle renders a panel title, highlighted when the panel is
// focused.
func RenderTitle(title string, focused bool) string {
	style := TitleStyle
	if focused {
		style = style.Foreground(FocusBorderColor)
	}
	return style.Render(title)
}
