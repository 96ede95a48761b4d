package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
)

// Adaptive colors, chosen once at startup based on the terminal
// background.
var (
	ColorPrimary   lipgloss.Color
	ColorSecondary lipgloss.Color
	ColorAccent    lipgloss.Color

	ColorSuccess lipgloss.Color
	ColorWarning lipgloss.Color
	ColorError   lipgloss.Color
	ColorInfo    lipgloss.Color

	ColorText      lipgloss.Color
	ColorTextMuted lipgloss.Color
	ColorTextDim   lipgloss.Color
	ColorBorder    lipgloss.Color
	ColorSurface   lipgloss.Color
)

// initializeColors sets up adaptive colors based on terminal background
func initializeColors() {
	// Environment variable override mirrors the glamour style switch
	if os.Getenv("GLAMOUR_STYLE") == "light" {
		setLightThemeColors()
		return
	}
	if os.Getenv("GLAMOUR_STYLE") == "dark" {
		setDarkThemeColors()
		return
	}

	if lipgloss.HasDarkBackground() {
		setDarkThemeColors()
	} else {
		setLightThemeColors()
	}
}

func setDarkThemeColors() {
	ColorPrimary = lipgloss.Color("205")
	ColorSecondary = lipgloss.Color("33")
	ColorAccent = lipgloss.Color("214")

	ColorSuccess = lipgloss.Color("10")
	ColorWarning = lipgloss.Color("11")
	ColorError = lipgloss.Color("9")
	ColorInfo = lipgloss.Color("12")

	ColorText = lipgloss.Color("252")
	ColorTextMuted = lipgloss.Color("244")
	ColorTextDim = lipgloss.Color("240")
	ColorBorder = lipgloss.Color("238")
	ColorSurface = lipgloss.Color("236")
}

func setLightThemeColors() {
	ColorPrimary = lipgloss.Color("125")
	ColorSecondary = lipgloss.Color("24")
	ColorAccent = lipgloss.Color("130")

	ColorSuccess = lipgloss.Color("22")
	ColorWarning = lipgloss.Color("136")
	ColorError = lipgloss.Color("160")
	ColorInfo = lipgloss.Color("24")

	ColorText = lipgloss.Color("232")
	ColorTextMuted = lipgloss.Color("240")
	ColorTextDim = lipgloss.Color("244")
	ColorBorder = lipgloss.Color("248")
	ColorSurface = lipgloss.Color("254")
}

// Component styles
var (
	StyleTitle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true).
			Padding(0, 1)

	StyleText = lipgloss.NewStyle().
			Foreground(ColorText)

	StyleTextMuted = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	StyleTextDim = lipgloss.NewStyle().
			Foreground(ColorTextDim)

	StyleFocusedLabel = lipgloss.NewStyle().
				Foreground(lipgloss.Color("15")).
				Background(ColorSecondary).
				Bold(true).
				Padding(0, 1)

	StyleFormLabel = lipgloss.NewStyle().
			Foreground(ColorText).
			Bold(true)

	StyleSuccess = lipgloss.NewStyle().
			Foreground(ColorSuccess).
			Bold(true).
			Padding(0, 1)

	StyleWarning = lipgloss.NewStyle().
			Foreground(ColorWarning).
			Bold(true).
			Padding(0, 1)

	StyleError = lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true).
			Padding(0, 1)

	StyleInfo = lipgloss.NewStyle().
			Foreground(ColorInfo).
			Bold(true).
			Padding(0, 1)

	// Tag chips sit under each field input.
	StyleTagChip = lipgloss.NewStyle().
			Foreground(ColorText).
			Background(ColorSurface).
			Padding(0, 1).
			MarginRight(1)

	// A tag whose lookup comes up empty under the active filters.
	StyleTagMissing = lipgloss.NewStyle().
			Foreground(ColorError).
			Background(ColorSurface).
			Bold(true).
			Padding(0, 1).
			MarginRight(1)

	StylePreviewPane = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorBorder).
				Padding(0, 1)

	StyleMetadata = lipgloss.NewStyle().
			Foreground(ColorTextDim).
			Padding(0, 1)

	StyleStatusBusy = lipgloss.NewStyle().
			Foreground(ColorInfo).
			Italic(true).
			Padding(0, 1)
)

// CreateStatus renders a status line with semantic coloring.
func CreateStatus(text string, statusType string) string {
	switch statusType {
	case "success":
		return StyleSuccess.Render(text)
	case "warning":
		return StyleWarning.Render(text)
	case "error":
		return StyleError.Render(text)
	case "info":
		return StyleInfo.Render(text)
	default:
		return StyleText.Render(text)
	}
}

// CenterModal places content in the middle of the window.
func CenterModal(content string, width, height int) string {
	return lipgloss.Place(
		width,
		height,
		lipgloss.Center,
		lipgloss.Center,
		content,
	)
}
