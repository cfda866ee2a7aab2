package theme

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
)

const (
	Gold     = lipgloss.Color("#f6c84c")
	DeepGold = lipgloss.Color("#9e6b10")
	Ash      = lipgloss.Color("#8a8577")
	Ember    = lipgloss.Color("#e0473d")
	Bone     = lipgloss.Color("#f2efe6")
)

// Styles describes reusable Lip Gloss styles shared across the UI.
type Styles struct {
	Loading           *lipgloss.Style
	Title             *lipgloss.Style
	TitleDark         *lipgloss.Style
	Glitch            [3]*lipgloss.Style
	Copy              *lipgloss.Style
	Nav               *lipgloss.Style
	NavAction         *lipgloss.Style
	Button            *lipgloss.Style
	ButtonFocused     *lipgloss.Style
	ButtonSteady      *lipgloss.Style
	Panel             *lipgloss.Style
	PanelLabel        *lipgloss.Style
	PanelValue        *lipgloss.Style
	PanelWarn         *lipgloss.Style
	Overlay           *lipgloss.Style
	Header            *lipgloss.Style
	Item              *lipgloss.Style
	ItemDetail        *lipgloss.Style
	SelectedItem      *lipgloss.Style
	Filter            *lipgloss.Style
	FilterPrompt      *lipgloss.Style
	FilterPlaceholder *lipgloss.Style
	Footer            *lipgloss.Style
	Error             *lipgloss.Style
}

var defaultStyles = Styles{
	Loading: ptr(
		lipgloss.NewStyle().Foreground(DeepGold).Italic(true),
	),
	Title: ptr(
		lipgloss.NewStyle().Foreground(Gold).Bold(true),
	),
	TitleDark: ptr(
		lipgloss.NewStyle().Foreground(Bone).Bold(true),
	),
	Glitch: [3]*lipgloss.Style{
		ptr(lipgloss.NewStyle().Foreground(Gold).Faint(true)),
		ptr(lipgloss.NewStyle().Foreground(DeepGold).Faint(true)),
		ptr(lipgloss.NewStyle().Foreground(Bone).Faint(true)),
	},
	Copy: ptr(
		lipgloss.NewStyle().Foreground(Ash).Italic(true),
	),
	Nav: ptr(
		lipgloss.NewStyle().Foreground(DeepGold),
	),
	NavAction: ptr(
		lipgloss.NewStyle().Foreground(Gold).Bold(true).Underline(true),
	),
	Button: ptr(
		lipgloss.NewStyle().Foreground(DeepGold).Border(lipgloss.NormalBorder()).BorderForeground(DeepGold).Padding(0, 1),
	),
	ButtonFocused: ptr(
		lipgloss.NewStyle().Foreground(Gold).Border(lipgloss.ThickBorder()).BorderForeground(Gold).Padding(0, 1),
	),
	ButtonSteady: ptr(
		lipgloss.NewStyle().Foreground(Gold).Bold(true).Border(lipgloss.ThickBorder()).BorderForeground(Gold).Padding(0, 1),
	),
	Panel: ptr(
		lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(DeepGold).Padding(0, 1),
	),
	PanelLabel: ptr(
		lipgloss.NewStyle().Foreground(Ash),
	),
	PanelValue: ptr(
		lipgloss.NewStyle().Foreground(Gold),
	),
	PanelWarn: ptr(
		lipgloss.NewStyle().Foreground(Ember),
	),
	Overlay: ptr(
		lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(Ash).Foreground(Ash).Padding(0, 1),
	),
	Header: ptr(
		lipgloss.NewStyle().Foreground(Gold).Bold(true),
	),
	Item: ptr(
		lipgloss.NewStyle().Foreground(Ash),
	),
	ItemDetail: ptr(
		lipgloss.NewStyle().Foreground(DeepGold).Faint(true),
	),
	SelectedItem: ptr(
		lipgloss.NewStyle().Foreground(Gold).Background(lipgloss.Color("236")).Bold(true),
	),
	Filter: ptr(
		lipgloss.NewStyle().Foreground(Gold),
	),
	FilterPrompt: ptr(
		lipgloss.NewStyle().Foreground(DeepGold).Bold(true),
	),
	FilterPlaceholder: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	),
	Footer: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	),
	Error: ptr(
		lipgloss.NewStyle().Foreground(Ember).Bold(true),
	),
}

// Default exposes the standard style set used across the application.
func Default() *Styles {
	return &defaultStyles
}

// Aura returns the backdrop style for an overlay opacity in [0, 1]. Higher
// opacity darkens the backdrop along the 256-colour grey ramp.
func Aura(opacity float64) lipgloss.Style {
	if opacity < 0 {
		opacity = 0
	}
	if opacity > 1 {
		opacity = 1
	}
	shade := 232 + int((1-opacity)*8+0.5)
	return lipgloss.NewStyle().Background(lipgloss.Color(strconv.Itoa(shade)))
}

func ptr(style lipgloss.Style) *lipgloss.Style {
	return &style
}
