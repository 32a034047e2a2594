// Package search implements depth-limited minimax and alpha-beta search over the game tree.
//
// Every node is explored on a clone of its parent's state, so the state handed to
// SuggestMove is never modified. Actions are tried in generation order and a later action
// only replaces the current best when it scores strictly better, which makes the choice
// deterministic and identical between the two algorithms.
package search

import (
	"context"
	"fmt"

	"github.com/mitchelldurbincs/AIWargame/internal/game"
	"github.com/mitchelldurbincs/AIWargame/internal/game/core"
	"github.com/mitchelldurbincs/AIWargame/internal/heuristic"
	"github.com/mitchelldurbincs/AIWargame/internal/search/stats"
	"github.com/rs/zerolog"
)

// MaxScore bounds every score the search can produce.
const MaxScore = 2_000_000_000

// Searcher runs minimax or alpha-beta with a fixed configuration.
type Searcher struct {
	cfg       Config
	eval      heuristic.Evaluator
	collector stats.Collector
	logger    zerolog.Logger
}

// Option customizes a Searcher.
type Option func(*Searcher)

// WithCollector replaces the default statistics collector.
func WithCollector(c stats.Collector) Option {
	return func(s *Searcher) {
		s.collector = c
	}
}

// WithLogger sets the logger used for search diagnostics.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Searcher) {
		s.logger = logger.With().Str("component", "Search").Logger()
	}
}

// NewSearcher validates cfg and resolves its heuristic.
func NewSearcher(cfg Config, opts ...Option) (*Searcher, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	mode, _ := ParseMode(string(cfg.Mode))
	cfg.Mode = mode

	eval, _ := heuristic.ForKind(cfg.Heuristic)
	s := &Searcher{
		cfg:       cfg,
		eval:      eval,
		collector: stats.NewCollector(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Config returns the searcher's configuration.
func (s *Searcher) Config() Config { return s.cfg }

// Describe implements Strategy.
func (s *Searcher) Describe() Description {
	return Description{
		Algorithm: string(s.cfg.Mode),
		Heuristic: string(s.cfg.Heuristic),
		MaxDepth:  s.cfg.MaxDepth,
	}
}

// SuggestMove picks an action for gs.CurrentPlayer. Running out of time is not an error:
// the best action found so far is returned and Stats.TimedOut is set. Cancelling ctx has
// the same effect. It fails only when the side to move has no legal action or the game
// is already decided.
func (s *Searcher) SuggestMove(ctx context.Context, gs *game.GameState) (Result, error) {
	actions := gs.LegalActions()
	if len(actions) == 0 {
		return Result{}, fmt.Errorf("%s to move: %w", gs.CurrentPlayer, core.ErrNoLegalActions)
	}
	if outcome := gs.Outcome(); outcome.IsOver() {
		return Result{}, core.WrapGameStateError(gs.TurnsPlayed, "suggest move", core.ErrGameOver)
	}

	if s.cfg.MaxTime > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.MaxTime)
		defer cancel()
	}

	s.logger.Debug().
		Str("player", gs.CurrentPlayer.String()).
		Str("mode", string(s.cfg.Mode)).
		Str("heuristic", string(s.cfg.Heuristic)).
		Int("max_depth", s.cfg.MaxDepth).
		Dur("max_time", s.cfg.MaxTime).
		Int("legal_actions", len(actions)).
		Msg("Search started")

	r := &run{
		ctx:       ctx,
		root:      gs.CurrentPlayer,
		maxDepth:  s.cfg.MaxDepth,
		prune:     s.cfg.Mode == ModeAlphaBeta,
		eval:      s.eval,
		collector: s.collector,
	}
	r.collector.Start()
	action, score := r.searchRoot(gs, actions)
	result := Result{Action: action, Score: score, Stats: r.collector.Complete()}

	s.logger.Info().
		Str("player", gs.CurrentPlayer.String()).
		Str("action", action.String()).
		Int("score", score).
		Int64("evaluations", result.Stats.Evaluations).
		Float64("avg_branching", result.Stats.AverageBranchingFactor()).
		Dur("elapsed", result.Stats.Elapsed).
		Bool("timed_out", r.expired).
		Msg("Search completed")

	return result, nil
}

// SuggestMove is a convenience wrapper that builds a Searcher for a single call.
func SuggestMove(ctx context.Context, gs *game.GameState, cfg Config) (Result, error) {
	s, err := NewSearcher(cfg)
	if err != nil {
		return Result{}, err
	}
	return s.SuggestMove(ctx, gs)
}

// run holds the per-call search state.
type run struct {
	ctx       context.Context
	root      core.Player
	maxDepth  int
	prune     bool
	eval      heuristic.Evaluator
	collector stats.Collector
	expired   bool
}

// timeUp is checked once at every node entry. Once the budget is gone it stays gone.
func (r *run) timeUp() bool {
	if !r.expired && r.ctx.Err() != nil {
		r.expired = true
		r.collector.MarkTimedOut()
	}
	return r.expired
}

func (r *run) evaluate(gs *game.GameState, depth int) int {
	r.collector.AddEvaluation(depth)
	return r.eval(gs, r.root)
}

// searchRoot scores every root action and keeps the first one with the best score. The
// root is always the maximizing side and always scores at least its first action.
func (r *run) searchRoot(gs *game.GameState, actions []core.Action) (core.Action, int) {
	r.collector.AddExpansion(0, len(actions))

	alpha, beta := -MaxScore, MaxScore
	bestAction, bestScore := actions[0], -MaxScore
	for i, a := range actions {
		child := gs.Clone()
		child.Apply(a)

		score := r.search(child, 1, alpha, beta)
		if i == 0 || score > bestScore {
			bestAction, bestScore = a, score
		}
		if bestScore > alpha {
			alpha = bestScore
		}
		if r.expired {
			break
		}
	}
	return bestAction, bestScore
}

// search returns the value of gs, which sits at depth below the root, from the root
// player's perspective. With pruning enabled the value is exact only inside (alpha, beta).
func (r *run) search(gs *game.GameState, depth, alpha, beta int) int {
	if depth >= r.maxDepth || r.timeUp() || gs.Outcome().IsOver() {
		return r.evaluate(gs, depth)
	}
	actions := gs.LegalActions()
	if len(actions) == 0 {
		return r.evaluate(gs, depth)
	}
	r.collector.AddExpansion(depth, len(actions))

	maximizing := gs.CurrentPlayer == r.root
	best := MaxScore
	if maximizing {
		best = -MaxScore
	}

	for _, a := range actions {
		child := gs.Clone()
		child.Apply(a)

		score := r.search(child, depth+1, alpha, beta)
		if maximizing {
			if score > best {
				best = score
			}
			if best > alpha {
				alpha = best
			}
		} else {
			if score < best {
				best = score
			}
			if best < beta {
				beta = best
			}
		}

		if r.expired || (r.prune && beta <= alpha) {
			break
		}
	}
	return best
}
