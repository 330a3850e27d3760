package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// Colors for the countdown bands and the dark window chrome.
var (
	CountdownGreen  = color.NRGBA{R: 0x00, G: 0xff, B: 0x00, A: 0xff}
	CountdownYellow = color.NRGBA{R: 0xff, G: 0xa5, B: 0x00, A: 0xff}
	CountdownRed    = color.NRGBA{R: 0xff, G: 0x00, B: 0x00, A: 0xff}

	BackgroundColor = color.NRGBA{R: 0x1a, G: 0x12, B: 0x0a, A: 0xff}
	AccentGold      = color.NRGBA{R: 0xff, G: 0xd7, B: 0x00, A: 0xff}
	ParchmentText   = color.NRGBA{R: 0xe8, G: 0xd5, B: 0xb7, A: 0xff}
)

// DarkTheme is the dark fantasy theme for the application window.
type DarkTheme struct {
	fyne.Theme
}

// NewDarkTheme creates a new instance of the dark theme.
func NewDarkTheme() fyne.Theme {
	return &DarkTheme{Theme: theme.DefaultTheme()}
}

// Color forces the dark variant and the custom background.
func (t *DarkTheme) Color(name fyne.ThemeColorName, _ fyne.ThemeVariant) color.Color {
	if name == theme.ColorNameBackground {
		return BackgroundColor
	}
	return t.Theme.Color(name, theme.VariantDark)
}
