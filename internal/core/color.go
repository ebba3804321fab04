package core

import "strconv"

// Color represents a foreground color for a screen cell.
// Values map to ANSI 256-color codes; see Code.
type Color uint8

// Basic terminal colors followed by the neon palette.
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

	ColorNeonPink
	ColorNeonCyan
	ColorNeonLime
	ColorNeonViolet
	ColorNeonAmber

	colorCount
)

var ansiCodes = [colorCount]int{
	ColorDefault:       -1,
	ColorRed:           1,
	ColorGreen:         2,
	ColorYellow:        3,
	ColorBlue:          4,
	ColorMagenta:       5,
	ColorCyan:          6,
	ColorWhite:         7,
	ColorBrightRed:     9,
	ColorBrightGreen:   10,
	ColorBrightYellow:  11,
	ColorBrightBlue:    12,
	ColorBrightMagenta: 13,
	ColorBrightCyan:    14,
	ColorBrightWhite:   15,
	ColorOrange:        208,
	ColorGray:          245,
	ColorNeonPink:      198,
	ColorNeonCyan:      51,
	ColorNeonLime:      118,
	ColorNeonViolet:    93,
	ColorNeonAmber:     214,
}

// Code returns the ANSI 256-color code, or "" for the terminal default.
func (c Color) Code() string {
	if c >= colorCount || ansiCodes[c] < 0 {
		return ""
	}
	return strconv.Itoa(ansiCodes[c])
}

// Colors lists every defined color, default first.
func Colors() []Color {
	out := make([]Color, colorCount)
	for i := range out {
		out[i] = Color(i)
	}
	return out
}
