package tui

import "github.com/charmbracelet/lipgloss"

// One Dark Pro color palette
var (
	// Background colors
	ColorBgPrimary   = lipgloss.Color("#282C34")
	ColorBgHighlight = lipgloss.Color("#2C313C")

	// Foreground colors
	ColorFgPrimary = lipgloss.Color("#ABB2BF")
	ColorFgMuted   = lipgloss.Color("#636B78")
	ColorFgComment = lipgloss.Color("#5C6370")

	// Syntax colors
	ColorRed     = lipgloss.Color("#E06C75")
	ColorGreen   = lipgloss.Color("#98C379")
	ColorYellow  = lipgloss.Color("#E5C07B")
	ColorBlue    = lipgloss.Color("#61AFEF")
	ColorMagenta = lipgloss.Color("#C678DD")

	// UI colors
	ColorBorder = lipgloss.Color("#3F4451")
)

// Component styles
var (
	// Header style
	HeaderStyle = lipgloss.NewStyle().
			Foreground(ColorRed).
			Bold(true).
			PaddingLeft(1)

	// Rotation warning banner
	BannerStyle = lipgloss.NewStyle().
			Foreground(ColorYellow).
			PaddingLeft(1)

	// Prompt styles
	PromptLabelStyle = lipgloss.NewStyle().
				Foreground(ColorFgMuted).
				PaddingLeft(1)

	PromptTextStyle = lipgloss.NewStyle().
			Foreground(ColorFgPrimary).
			Bold(true)

	// Button styles
	ButtonStyle = lipgloss.NewStyle().
			Foreground(ColorFgPrimary).
			Background(ColorBgHighlight)

	ButtonActiveStyle = lipgloss.NewStyle().
				Foreground(ColorBgPrimary).
				Background(ColorBlue).
				Bold(true)

	DangerButtonStyle = lipgloss.NewStyle().
				Foreground(ColorRed).
				Background(ColorBgHighlight)

	SaveButtonStyle = lipgloss.NewStyle().
			Foreground(ColorGreen).
			Background(ColorBgHighlight).
			Bold(true)

	// Palette popover cursor
	SwatchCursorStyle = lipgloss.NewStyle().
				Foreground(ColorFgPrimary).
				Bold(true)

	// Status bar styles
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(ColorFgMuted).
			PaddingLeft(1).
			PaddingRight(1)

	// Help overlay styles
	HelpStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(1, 2)

	HelpTitleStyle = lipgloss.NewStyle().
			Foreground(ColorBlue).
			Bold(true)

	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(ColorYellow)

	HelpDescStyle = lipgloss.NewStyle().
			Foreground(ColorFgPrimary)

	// Shown in the status bar while a saved drawing replays
	ReplayStyle = lipgloss.NewStyle().
			Foreground(ColorMagenta)

	// Success styles
	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorGreen)

	// Warning styles
	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorYellow)

	// Dimmed/info style for less important messages
	DimStyle = lipgloss.NewStyle().
			Foreground(ColorFgComment)
)
