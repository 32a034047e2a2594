package common

import (
	"fmt"
	"image/color"
)

// Side indices used as keys of SideColors. They mirror core.Attacker and core.Defender
// without importing the game packages.
const (
	SideNeutral  = -1
	SideAttacker = 0
	SideDefender = 1
)

// SideColors defines the console color scheme for each side
var SideColors = map[int]color.RGBA{
	SideNeutral:  {120, 120, 120, 255}, // empty cells – gray
	SideAttacker: {200, 50, 50, 255},   // red
	SideDefender: {50, 100, 200, 255},  // blue
}

// ANSIReset restores the terminal's default attributes.
const ANSIReset = "\033[0m"

// ANSIForeground returns the 24-bit foreground escape sequence for c.
func ANSIForeground(c color.Color) string {
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("\033[38;2;%d;%d;%dm", r>>8, g>>8, b>>8)
}

// Colorize wraps s in the escape sequences for side's color.
func Colorize(s string, side int) string {
	c, ok := SideColors[side]
	if !ok {
		c = SideColors[SideNeutral]
	}
	return ANSIForeground(c) + s + ANSIReset
}
