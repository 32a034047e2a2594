package search

import (
	"fmt"
	"strings"
	"time"

	"github.com/mitchelldurbincs/AIWargame/internal/game/core"
	"github.com/mitchelldurbincs/AIWargame/internal/heuristic"
)

// Mode selects the tree search algorithm.
type Mode string

const (
	ModeMinimax   Mode = "minimax"
	ModeAlphaBeta Mode = "alphabeta"
)

// ParseMode accepts "minimax" or "alphabeta" (also "alpha-beta" and "alpha_beta").
func ParseMode(s string) (Mode, error) {
	normalized := strings.NewReplacer("-", "", "_", "").Replace(strings.ToLower(strings.TrimSpace(s)))
	switch Mode(normalized) {
	case ModeMinimax:
		return ModeMinimax, nil
	case ModeAlphaBeta:
		return ModeAlphaBeta, nil
	}
	return "", core.NewConfigError("search.mode", fmt.Sprintf("unknown search mode %q, want minimax or alphabeta", s))
}

// Config controls one search call.
type Config struct {
	Mode      Mode
	MaxDepth  int
	MaxTime   time.Duration // zero means no time budget
	Heuristic heuristic.Kind
}

const (
	DefaultMaxDepth = 4
	DefaultMaxTime  = 5 * time.Second
)

// DefaultConfig returns alpha-beta at depth 4 with a 5 second budget and the e0 heuristic.
func DefaultConfig() Config {
	return Config{
		Mode:      ModeAlphaBeta,
		MaxDepth:  DefaultMaxDepth,
		MaxTime:   DefaultMaxTime,
		Heuristic: heuristic.KindE0,
	}
}

// Validate reports the first invalid setting as a *core.ConfigError.
func (c Config) Validate() error {
	if _, err := ParseMode(string(c.Mode)); err != nil {
		return err
	}
	if c.MaxDepth < 1 {
		return core.NewConfigError("search.max_depth", fmt.Sprintf("must be positive, got %d", c.MaxDepth))
	}
	if c.MaxTime < 0 {
		return core.NewConfigError("search.max_time", fmt.Sprintf("must not be negative, got %s", c.MaxTime))
	}
	if _, err := heuristic.ForKind(c.Heuristic); err != nil {
		return err
	}
	return nil
}
