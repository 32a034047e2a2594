package search

import (
	"context"

	"github.com/mitchelldurbincs/AIWargame/internal/game"
	"github.com/mitchelldurbincs/AIWargame/internal/game/core"
	"github.com/mitchelldurbincs/AIWargame/internal/search/stats"
)

// Result is the outcome of one SuggestMove call.
type Result struct {
	Action core.Action      `json:"action"`
	Score  int              `json:"score"`
	Stats  stats.Statistics `json:"stats"`
}

// Description identifies a strategy in logs, events and traces.
type Description struct {
	Algorithm string
	Heuristic string
	MaxDepth  int
}

// Strategy chooses an action for the side to move. Implementations never modify gs.
type Strategy interface {
	SuggestMove(ctx context.Context, gs *game.GameState) (Result, error)
	Describe() Description
}

var (
	_ Strategy = (*Searcher)(nil)
	_ Strategy = (*RandomMover)(nil)
)
