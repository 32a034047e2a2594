// Package match drives a single game from start to finish: it reads human moves, asks
// search strategies for computer moves, prints the board and search summaries, and keeps
// the cumulative search statistics for the whole game.
package match

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/AIWargame/internal/game"
	"github.com/mitchelldurbincs/AIWargame/internal/game/core"
	"github.com/mitchelldurbincs/AIWargame/internal/game/events"
	"github.com/mitchelldurbincs/AIWargame/internal/game/events/subscribers"
	"github.com/mitchelldurbincs/AIWargame/internal/game/rules"
	"github.com/mitchelldurbincs/AIWargame/internal/search"
	"github.com/mitchelldurbincs/AIWargame/internal/search/stats"
	"github.com/mitchelldurbincs/AIWargame/internal/trace"
)

// Match owns one engine and the strategies playing it.
type Match struct {
	opts   Options
	engine *game.Engine
	bus    *events.EventBus
	input  MoveReader
	out    io.Writer
	logger zerolog.Logger

	strategies [2]search.Strategy // nil for human sides
	recorder   *trace.Recorder
	tracePath  string
	cumulative stats.Statistics

	mu            sync.Mutex
	pendingSearch *search.Config
}

// New validates opts, opens the transcript if enabled and starts the game. input may be
// nil when no side is human; out may be nil to discard console output.
func New(ctx context.Context, opts Options, input MoveReader, out io.Writer) (*Match, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	opts.GameType, _ = ParseGameType(string(opts.GameType))
	if input == nil && (opts.GameType.IsHuman(core.Attacker) || opts.GameType.IsHuman(core.Defender)) {
		return nil, fmt.Errorf("game type %s needs a move reader", opts.GameType)
	}
	if out == nil {
		out = io.Discard
	}

	m := &Match{
		opts:   opts,
		input:  input,
		out:    out,
		logger: opts.Logger.With().Str("component", "Match").Logger(),
	}

	gameCfg := opts.Game
	gameCfg.Logger = opts.Logger
	if gameCfg.GameID == "" {
		gameCfg.GameID = uuid.New().String()
	}
	m.bus = gameCfg.EventBus
	if m.bus == nil {
		m.bus = events.NewEventBusWithLogger(opts.Logger)
		gameCfg.EventBus = m.bus
	}
	m.bus.Subscribe(subscribers.NewLoggerSubscriber("match-event-logger", opts.Logger, zerolog.DebugLevel))

	if opts.TraceDir != "" {
		rec, path, err := trace.CreateFileRecorder(opts.TraceDir, m.traceOptions(), gameCfg.GameID, opts.Logger)
		if err != nil {
			return nil, err
		}
		m.recorder, m.tracePath = rec, path
		m.bus.Subscribe(rec)
	}

	engine, err := game.NewEngine(ctx, gameCfg)
	if err != nil {
		m.closeRecorder()
		return nil, err
	}
	m.engine = engine

	for _, p := range []core.Player{core.Attacker, core.Defender} {
		if opts.GameType.IsHuman(p) {
			continue
		}
		s, err := m.newStrategy(p, opts.Search)
		if err != nil {
			m.closeRecorder()
			return nil, err
		}
		m.strategies[p] = s
	}

	m.logger.Info().
		Str("game_id", engine.GameID()).
		Str("game_type", string(opts.GameType)).
		Str("attacker", m.describe(core.Attacker)).
		Str("defender", m.describe(core.Defender)).
		Str("trace", m.tracePath).
		Msg("Match created")
	return m, nil
}

func (m *Match) newStrategy(p core.Player, cfg search.Config) (search.Strategy, error) {
	if m.opts.strategyFor(p) == StrategyRandom {
		seed := m.opts.Seed
		if seed != 0 {
			seed += uint64(p)
		}
		return search.NewRandomMover(seed), nil
	}
	return search.NewSearcher(cfg, search.WithLogger(m.opts.Logger))
}

func (m *Match) traceOptions() trace.Options {
	maxTurns := m.opts.Game.MaxTurns
	if maxTurns == 0 {
		maxTurns = game.DefaultMaxTurns
	}
	policy := m.opts.Game.TurnLimitPolicy
	if policy == "" {
		policy = rules.PolicyDefender
	}
	mode, _ := search.ParseMode(string(m.opts.Search.Mode))
	return trace.Options{
		GameType:        string(m.opts.GameType),
		AlphaBeta:       mode == search.ModeAlphaBeta,
		MaxDepth:        m.opts.Search.MaxDepth,
		MaxTime:         m.opts.Search.MaxTime,
		Heuristic:       string(m.opts.Search.Heuristic),
		MaxTurns:        maxTurns,
		TurnLimitPolicy: string(policy),
	}
}

func (m *Match) describe(p core.Player) string {
	s := m.strategies[p]
	if s == nil {
		return "human"
	}
	d := s.Describe()
	if d.Heuristic == "" {
		return d.Algorithm
	}
	return fmt.Sprintf("%s/%s/depth %d", d.Algorithm, d.Heuristic, d.MaxDepth)
}

// Engine exposes the underlying engine.
func (m *Match) Engine() *game.Engine { return m.engine }

// TracePath is the transcript file, or "" when tracing is disabled.
func (m *Match) TracePath() string { return m.tracePath }

// Strategy returns the strategy playing p, or nil for a human side.
func (m *Match) Strategy(p core.Player) search.Strategy {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.strategies[p]
}

// Statistics returns the search statistics accumulated over every computer move so far.
func (m *Match) Statistics() stats.Statistics {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cumulative.Clone()
}

// UpdateSearch replaces the search settings of computer sides. The change applies from the
// next computer turn; a search already running keeps its settings. Safe to call from a
// config watcher goroutine.
func (m *Match) UpdateSearch(cfg search.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	m.mu.Lock()
	m.pendingSearch = &cfg
	m.mu.Unlock()
	return nil
}

func (m *Match) applyPendingSearch() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.pendingSearch == nil {
		return nil
	}
	cfg := *m.pendingSearch
	m.pendingSearch = nil

	for _, p := range []core.Player{core.Attacker, core.Defender} {
		if m.strategies[p] == nil || m.opts.strategyFor(p) != StrategySearch {
			continue
		}
		s, err := search.NewSearcher(cfg, search.WithLogger(m.opts.Logger))
		if err != nil {
			return err
		}
		m.strategies[p] = s
	}
	m.opts.Search = cfg
	m.logger.Info().
		Str("mode", string(cfg.Mode)).
		Int("max_depth", cfg.MaxDepth).
		Dur("max_time", cfg.MaxTime).
		Str("heuristic", string(cfg.Heuristic)).
		Msg("Search settings reloaded")
	return nil
}

// Play runs turns until the game ends and returns the outcome.
func (m *Match) Play(ctx context.Context) (rules.Outcome, error) {
	for !m.engine.IsGameOver() {
		if _, err := m.PlayTurn(ctx); err != nil {
			return rules.OutcomeNone, err
		}
	}

	outcome := m.engine.IsTerminal()
	fmt.Fprintf(m.out, "\n%s", game.RenderState(m.engine.State(), m.opts.Color))
	if w, ok := outcome.Winner(); ok {
		fmt.Fprintf(m.out, "%s wins in %d turns!\n", w, m.engine.TurnsPlayed())
	} else {
		fmt.Fprintf(m.out, "Draw after %d turns.\n", m.engine.TurnsPlayed())
	}
	if m.hasComputer() {
		m.writeCumulative(m.Statistics())
	}
	return outcome, nil
}

// PlayTurn plays exactly one turn for the side to move and returns the applied action.
func (m *Match) PlayTurn(ctx context.Context) (core.Action, error) {
	if m.engine.IsGameOver() {
		return core.Action{}, core.WrapGameStateError(m.engine.TurnsPlayed(), "play turn", core.ErrGameOver)
	}
	if err := m.applyPendingSearch(); err != nil {
		return core.Action{}, err
	}

	gs := m.engine.State()
	fmt.Fprintf(m.out, "\n%s", game.RenderState(gs, m.opts.Color))

	if m.opts.GameType.IsHuman(gs.CurrentPlayer) {
		return m.humanTurn(ctx, gs)
	}
	return m.computerTurn(ctx, gs)
}

func (m *Match) humanTurn(ctx context.Context, gs *game.GameState) (core.Action, error) {
	for {
		if err := ctx.Err(); err != nil {
			return core.Action{}, err
		}
		line, err := m.input.ReadMove(ctx, gs.CurrentPlayer)
		if err != nil {
			return core.Action{}, fmt.Errorf("reading %s move: %w", gs.CurrentPlayer, err)
		}
		src, dst, err := core.ParseCoordPair(line)
		if err != nil {
			fmt.Fprintf(m.out, "Invalid coordinates: %v\n", err)
			continue
		}

		action := core.InferAction(gs.Board, src, dst)
		if _, err := m.engine.ApplyAction(ctx, action); err != nil {
			if errors.Is(err, core.ErrIllegalAction) {
				fmt.Fprintf(m.out, "The move is not valid (%s). Try again.\n", core.ReasonOf(err))
				continue
			}
			return core.Action{}, err
		}
		fmt.Fprintf(m.out, "%s: %s\n", gs.CurrentPlayer, action)
		return action, nil
	}
}

func (m *Match) computerTurn(ctx context.Context, gs *game.GameState) (core.Action, error) {
	m.mu.Lock()
	strategy := m.strategies[gs.CurrentPlayer]
	m.mu.Unlock()

	res, err := strategy.SuggestMove(ctx, gs)
	if err != nil {
		return core.Action{}, fmt.Errorf("computer %s: %w", gs.CurrentPlayer, err)
	}
	d := strategy.Describe()
	m.bus.Publish(events.NewSearchCompletedEvent(m.engine.GameID(), gs.CurrentPlayer, gs.TurnsPlayed+1,
		res.Action, res.Score, d.Algorithm, d.Heuristic, d.MaxDepth, res.Stats))

	m.mu.Lock()
	m.cumulative.Merge(res.Stats)
	m.mu.Unlock()

	if _, err := m.engine.ApplyAction(ctx, res.Action); err != nil {
		return core.Action{}, fmt.Errorf("computer %s suggested %s: %w", gs.CurrentPlayer, res.Action, err)
	}

	if d.Algorithm == search.AlgorithmRandom {
		fmt.Fprintf(m.out, "Computer %s (random): %s\n", gs.CurrentPlayer, res.Action)
		return res.Action, nil
	}
	fmt.Fprintf(m.out, "Computer %s: %s\n", gs.CurrentPlayer, res.Action)
	fmt.Fprintf(m.out, "Heuristic score: %d\n", res.Score)
	fmt.Fprintf(m.out, "Evals per depth: %s\n", formatCounts(res.Stats.EvaluationsByDepth))
	if res.Stats.TimedOut > 0 {
		fmt.Fprintf(m.out, "Search ran out of time\n")
	}
	fmt.Fprintf(m.out, "Elapsed time: %.2fs\n", res.Stats.Elapsed.Seconds())
	m.writeCumulative(m.Statistics())
	return res.Action, nil
}

func (m *Match) hasComputer() bool {
	return m.strategies[core.Attacker] != nil || m.strategies[core.Defender] != nil
}

func (m *Match) writeCumulative(st stats.Statistics) {
	fmt.Fprintf(m.out, "Cumulative evals: %d\n", st.Evaluations)
	fmt.Fprintf(m.out, "Cumulative evals per depth: %s\n", formatCounts(st.EvaluationsByDepth))
	fmt.Fprintf(m.out, "Cumulative %% evals per depth: %s\n", formatPercents(st.CumulativeEvaluationPercent()))
	fmt.Fprintf(m.out, "Average branching factor: %.1f\n", st.AverageBranchingFactor())
	if eps := st.EvaluationsPerSecond(); eps > 0 {
		fmt.Fprintf(m.out, "Eval perf.: %.1fk/s\n", eps/1000)
	}
}

// Close flushes and closes the transcript, if any.
func (m *Match) Close() error {
	if m.recorder == nil {
		return nil
	}
	err := m.recorder.Close()
	m.recorder = nil
	return err
}

func (m *Match) closeRecorder() {
	if err := m.Close(); err != nil {
		m.logger.Warn().Err(err).Msg("Failed to close trace recorder")
	}
}

// formatCounts renders non-zero per-depth counts as "1:5 2:25".
func formatCounts(xs []int64) string {
	var parts []string
	for d, n := range xs {
		if n > 0 {
			parts = append(parts, fmt.Sprintf("%d:%d", d, n))
		}
	}
	return strings.Join(parts, " ")
}

func formatPercents(xs []float64) string {
	var parts []string
	for d, p := range xs {
		if p > 0 {
			parts = append(parts, fmt.Sprintf("%d:%.1f%%", d, p))
		}
	}
	return strings.Join(parts, " ")
}
