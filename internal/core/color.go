package core

// Color represents a foreground color for a screen cell.
// The platform maps it onto a terminal palette.
type Color uint8

// Predefined colors for game elements.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
)

// LaneColors gives each lane its own color, left to right.
var LaneColors = [4]Color{ColorBrightGreen, ColorBrightRed, ColorBrightYellow, ColorBrightBlue}
