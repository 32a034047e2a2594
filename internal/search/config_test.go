package search

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/AIWargame/internal/game/core"
)

func TestParseMode(t *testing.T) {
	for in, want := range map[string]Mode{
		"minimax":    ModeMinimax,
		"MiniMax":    ModeMinimax,
		"alphabeta":  ModeAlphaBeta,
		"alpha-beta": ModeAlphaBeta,
		"alpha_beta": ModeAlphaBeta,
	} {
		got, err := ParseMode(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseMode("mcts")
	assert.ErrorIs(t, err, core.ErrInvalidConfig)
}

func TestConfig_Validate(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())

	tests := []struct {
		name  string
		mod   func(*Config)
		field string
	}{
		{"mode", func(c *Config) { c.Mode = "" }, "search.mode"},
		{"zero depth", func(c *Config) { c.MaxDepth = 0 }, "search.max_depth"},
		{"negative time", func(c *Config) { c.MaxTime = -time.Second }, "search.max_time"},
		{"heuristic", func(c *Config) { c.Heuristic = "e9" }, "search.heuristic"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DefaultConfig()
			tt.mod(&c)
			var ce *core.ConfigError
			require.True(t, errors.As(c.Validate(), &ce))
			assert.Equal(t, tt.field, ce.Field)
		})
	}
}
