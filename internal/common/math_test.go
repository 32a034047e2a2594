package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAbs(t *testing.T) {
	tests := []struct {
		input    int
		expected int
	}{
		{5, 5},
		{-5, 5},
		{0, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, Abs(tt.input))
	}
}

func TestMinMax(t *testing.T) {
	assert.Equal(t, 2, Min(2, 7))
	assert.Equal(t, -3, Min(4, -3))
	assert.Equal(t, 7, Max(2, 7))
	assert.Equal(t, 4, Max(4, -3))
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0, Clamp(-4, 0, 9))
	assert.Equal(t, 9, Clamp(12, 0, 9))
	assert.Equal(t, 5, Clamp(5, 0, 9))
}
