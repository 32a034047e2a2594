package common

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSideColors(t *testing.T) {
	tests := []struct {
		side       int
		name       string
		checkColor func(color.RGBA) bool
	}{
		{
			side: SideNeutral,
			name: "neutral gray",
			checkColor: func(c color.RGBA) bool {
				return c.R == c.G && c.G == c.B && c.R == 120
			},
		},
		{
			side: SideAttacker,
			name: "attacker red",
			checkColor: func(c color.RGBA) bool {
				return c.R > c.G && c.R > c.B
			},
		},
		{
			side: SideDefender,
			name: "defender blue",
			checkColor: func(c color.RGBA) bool {
				return c.B > c.R && c.B > c.G
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, exists := SideColors[tt.side]
			assert.True(t, exists, "color should exist for side %d", tt.side)
			assert.True(t, tt.checkColor(c), "color check failed for side %d", tt.side)
			assert.Equal(t, uint8(255), c.A, "alpha should be 255 (fully opaque)")
		})
	}
	assert.Len(t, SideColors, 3)
}

func TestANSIForeground(t *testing.T) {
	assert.Equal(t, "\033[38;2;200;50;50m", ANSIForeground(SideColors[SideAttacker]))
	assert.Equal(t, "\033[38;2;255;255;255m", ANSIForeground(color.White))
}

func TestColorize(t *testing.T) {
	assert.Equal(t, "\033[38;2;50;100;200mdA9"+ANSIReset, Colorize("dA9", SideDefender))
	assert.Equal(t, Colorize(".", SideNeutral), Colorize(".", 42), "unknown sides fall back to neutral")
}
