package search

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/AIWargame/internal/game"
	"github.com/mitchelldurbincs/AIWargame/internal/game/core"
	"github.com/mitchelldurbincs/AIWargame/internal/game/rules"
	"github.com/mitchelldurbincs/AIWargame/internal/heuristic"
	"github.com/mitchelldurbincs/AIWargame/internal/search/stats"
	"github.com/mitchelldurbincs/AIWargame/internal/testutil"
)

func stateFromRows(t *testing.T, rows ...string) *game.GameState {
	t.Helper()
	return game.NewGameState(testutil.BoardFromRows(t, nil, rows...), 100, rules.PolicyDefender)
}

func cfg(mode Mode, depth int, kind heuristic.Kind) Config {
	return Config{Mode: mode, MaxDepth: depth, Heuristic: kind}
}

func TestSuggestMove_SingleLegalAction(t *testing.T) {
	// A lone attacker AI in the top-left corner can neither move up nor left.
	gs := stateFromRows(t,
		"aA9 . . .",
		". . . .",
		". . . .",
		". . . dA9",
	)
	require.Len(t, gs.LegalActions(), 1)

	for _, mode := range []Mode{ModeMinimax, ModeAlphaBeta} {
		res, err := SuggestMove(context.Background(), gs, cfg(mode, 1, heuristic.KindE0))
		require.NoError(t, err)

		after := gs.Clone()
		after.Apply(res.Action)
		assert.Equal(t, core.SelfDestruct(core.NewCoord(0, 0)), res.Action)
		assert.Equal(t, heuristic.E0(after, core.Attacker), res.Score)
		assert.Equal(t, int64(1), res.Stats.Evaluations)
		assert.Equal(t, []int64{0, 1}, res.Stats.EvaluationsByDepth)
	}
}

func TestSuggestMove_TakesTheWinningAttack(t *testing.T) {
	gs := stateFromRows(t,
		"dA9 aV9 . .",
		". . . .",
		". . . .",
		". . . aA9",
	)
	for _, kind := range heuristic.Kinds() {
		res, err := SuggestMove(context.Background(), gs, cfg(ModeAlphaBeta, 2, kind))
		require.NoError(t, err)
		assert.Equal(t, core.Attack(core.NewCoord(0, 1), core.NewCoord(0, 0)), res.Action, kind)
	}
}

func TestSuggestMove_DefenderMaximizesOwnScore(t *testing.T) {
	gs := stateFromRows(t,
		"dA9 . . .",
		"dV9 aA9 . .",
		". . . .",
		". . . .",
	)
	gs.CurrentPlayer = core.Defender

	res, err := SuggestMove(context.Background(), gs, cfg(ModeMinimax, 1, heuristic.KindE0))
	require.NoError(t, err)
	assert.Equal(t, core.Attack(core.NewCoord(1, 0), core.NewCoord(1, 1)), res.Action)
	assert.Equal(t, rules.MaterialAI+rules.MaterialOther, res.Score)
}

func TestSuggestMove_AlphaBetaMatchesMinimax(t *testing.T) {
	positions := map[string]struct {
		rows     []string
		maxDepth int
	}{
		"duel":    {testutil.DuelRows, 3},
		"opening": {testutil.DefaultStartRows, 2},
		"skirmish": {[]string{
			"dA9 dT9 . .",
			"dF9 aV9 . .",
			". . aP9 .",
			". . . aA9",
		}, 3},
	}

	for name, pos := range positions {
		for _, kind := range heuristic.Kinds() {
			for depth := 1; depth <= pos.maxDepth; depth++ {
				gs := stateFromRows(t, pos.rows...)

				mm, err := SuggestMove(context.Background(), gs, cfg(ModeMinimax, depth, kind))
				require.NoError(t, err)
				ab, err := SuggestMove(context.Background(), gs, cfg(ModeAlphaBeta, depth, kind))
				require.NoError(t, err)

				assert.Equal(t, mm.Score, ab.Score, "%s %s depth %d", name, kind, depth)
				assert.Equal(t, mm.Action, ab.Action, "%s %s depth %d", name, kind, depth)
				assert.LessOrEqual(t, ab.Stats.Evaluations, mm.Stats.Evaluations)
			}
		}
	}
}

func TestSuggestMove_Deterministic(t *testing.T) {
	gs := stateFromRows(t, testutil.DefaultStartRows...)
	c := cfg(ModeAlphaBeta, 3, heuristic.KindE1)

	first, err := SuggestMove(context.Background(), gs, c)
	require.NoError(t, err)
	second, err := SuggestMove(context.Background(), gs, c)
	require.NoError(t, err)

	assert.Equal(t, first.Action, second.Action)
	assert.Equal(t, first.Score, second.Score)
	assert.Equal(t, first.Stats.EvaluationsByDepth, second.Stats.EvaluationsByDepth)
}

func TestSuggestMove_LeavesStateUntouched(t *testing.T) {
	gs := stateFromRows(t, testutil.DefaultStartRows...)
	gs.Apply(core.Move(core.NewCoord(3, 3), core.NewCoord(2, 3)))
	before := gs.Clone()

	_, err := SuggestMove(context.Background(), gs, cfg(ModeMinimax, 2, heuristic.KindE2))
	require.NoError(t, err)
	assert.True(t, before.Equal(gs))
}

func TestSuggestMove_MinimaxCountsEveryLeaf(t *testing.T) {
	gs := stateFromRows(t, testutil.DuelRows...)
	root := gs.LegalActions()

	// Children that end the game are leaves at depth 1; the rest are expanded.
	var terminal, expanded, leaves int64
	for _, a := range root {
		child := gs.Clone()
		child.Apply(a)
		if child.Outcome().IsOver() {
			terminal++
			continue
		}
		expanded++
		leaves += int64(len(child.LegalActions()))
	}
	require.Positive(t, terminal, "the attacker AI can self-destruct")

	res, err := SuggestMove(context.Background(), gs, cfg(ModeMinimax, 2, heuristic.KindE0))
	require.NoError(t, err)
	assert.Equal(t, terminal+leaves, res.Stats.Evaluations)
	assert.Equal(t, []int64{0, terminal, leaves}, res.Stats.EvaluationsByDepth)
	assert.Equal(t, []int64{1, expanded}, res.Stats.NodesByDepth)
	assert.Equal(t, []int64{int64(len(root)), leaves}, res.Stats.ChildrenByDepth)
	assert.InDelta(t, float64(int64(len(root))+leaves)/float64(1+expanded), res.Stats.AverageBranchingFactor(), 1e-9)
	assert.Zero(t, res.Stats.TimedOut)
	assert.Equal(t, 1, res.Stats.Searches)
}

func TestSuggestMove_TimeBudget(t *testing.T) {
	gs := stateFromRows(t, testutil.DefaultStartRows...)
	c := Config{Mode: ModeMinimax, MaxDepth: 8, MaxTime: time.Millisecond, Heuristic: heuristic.KindE0}

	start := time.Now()
	res, err := SuggestMove(context.Background(), gs, c)
	require.NoError(t, err)

	assert.Less(t, time.Since(start), 2*time.Second)
	assert.Equal(t, 1, res.Stats.TimedOut)
	assert.NoError(t, gs.Validate(res.Action), "a timed out search still returns a legal action")
}

func TestSuggestMove_CancelledContext(t *testing.T) {
	gs := stateFromRows(t, testutil.DuelRows...)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := SuggestMove(ctx, gs, cfg(ModeAlphaBeta, 4, heuristic.KindE1))
	require.NoError(t, err)
	assert.Equal(t, gs.LegalActions()[0], res.Action, "only the first action is scored")
	assert.Equal(t, int64(1), res.Stats.Evaluations)
	assert.Equal(t, 1, res.Stats.TimedOut)
}

func TestSuggestMove_NoLegalActions(t *testing.T) {
	gs := stateFromRows(t,
		"dA9 . . .",
		". . . .",
		". . . .",
		". . . .",
	)
	_, err := SuggestMove(context.Background(), gs, DefaultConfig())
	assert.ErrorIs(t, err, core.ErrNoLegalActions)
}

func TestSuggestMove_GameAlreadyOver(t *testing.T) {
	gs := stateFromRows(t, testutil.DuelRows...)
	gs.MaxTurns = 4
	gs.TurnsPlayed = 4

	_, err := SuggestMove(context.Background(), gs, DefaultConfig())
	assert.ErrorIs(t, err, core.ErrGameOver)
}

func TestNewSearcher(t *testing.T) {
	_, err := NewSearcher(Config{Mode: "dfs", MaxDepth: 2, Heuristic: heuristic.KindE0})
	assert.ErrorIs(t, err, core.ErrInvalidConfig)

	s, err := NewSearcher(Config{Mode: "Alpha-Beta", MaxDepth: 3, Heuristic: heuristic.KindE2},
		WithCollector(stats.NewNoCollector()),
		WithLogger(testutil.NopLogger()),
	)
	require.NoError(t, err)
	assert.Equal(t, Description{Algorithm: "alphabeta", Heuristic: "e2", MaxDepth: 3}, s.Describe())

	res, err := s.SuggestMove(context.Background(), stateFromRows(t, testutil.DuelRows...))
	require.NoError(t, err)
	assert.Zero(t, res.Stats.Evaluations, "no-op collector records nothing")
}
