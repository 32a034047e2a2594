package search

import (
	"context"
	"fmt"
	"time"

	"github.com/mitchelldurbincs/AIWargame/internal/game"
	"github.com/mitchelldurbincs/AIWargame/internal/game/core"
	"github.com/mitchelldurbincs/AIWargame/internal/search/stats"
	"golang.org/x/exp/rand"
)

// AlgorithmRandom is the Description.Algorithm of a RandomMover.
const AlgorithmRandom = "random"

// RandomMover picks uniformly among the legal actions. It is not safe for concurrent use.
type RandomMover struct {
	rng       *rand.Rand
	collector stats.Collector
}

// NewRandomMover seeds a mover; a zero seed draws one from the clock.
func NewRandomMover(seed uint64) *RandomMover {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &RandomMover{
		rng:       rand.New(rand.NewSource(seed)),
		collector: stats.NewCollector(),
	}
}

// SuggestMove implements Strategy. The score is always zero and no evaluations are counted.
func (m *RandomMover) SuggestMove(_ context.Context, gs *game.GameState) (Result, error) {
	m.collector.Start()
	actions := gs.LegalActions()
	if len(actions) == 0 {
		return Result{}, fmt.Errorf("%s to move: %w", gs.CurrentPlayer, core.ErrNoLegalActions)
	}
	m.collector.AddExpansion(0, len(actions))
	return Result{
		Action: actions[m.rng.Intn(len(actions))],
		Stats:  m.collector.Complete(),
	}, nil
}

// Describe implements Strategy.
func (m *RandomMover) Describe() Description {
	return Description{Algorithm: AlgorithmRandom}
}
