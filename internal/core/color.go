package core

// Color represents a foreground color for a screen cell.
// Uses ANSI 256-color codes for terminal compatibility.
type Color uint8

// Palette used by sprites and the HUD.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorDarkGreen
	ColorYellow
	ColorAmber
	ColorBlue
	ColorPurple
	ColorOrange
	ColorGray
	ColorLightGray
	ColorAsphalt
	ColorWhite
	ColorBlack
)
