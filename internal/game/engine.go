package game

import (
	"context"
	"time"

	"github.com/mitchelldurbincs/AIWargame/internal/game/core"
	"github.com/mitchelldurbincs/AIWargame/internal/game/events"
	"github.com/mitchelldurbincs/AIWargame/internal/game/rules"
	"github.com/rs/zerolog"
)

// Engine owns the authoritative GameState. It is driven by exactly one turn driver and is
// not safe for concurrent use.
type Engine struct {
	gs           *GameState
	gameID       string
	logger       zerolog.Logger
	eventBus     *events.EventBus
	winCondition *rules.WinConditionChecker
	legalMoves   *rules.LegalMoveCalculator
	turns        *TurnProcessor
	outcome      rules.Outcome
	startTime    time.Time
}

// NewEngine starts a new game from cfg. Configuration problems are returned as
// *core.ConfigError before any turn is played.
func NewEngine(ctx context.Context, cfg GameConfig) (*Engine, error) {
	return NewEngineInitializer(cfg).Initialize(ctx)
}

// GameID returns the unique identifier of this game.
func (e *Engine) GameID() string { return e.gameID }

// EventBus returns the bus the engine publishes to.
func (e *Engine) EventBus() *events.EventBus { return e.eventBus }

// State returns a copy of the authoritative state. Mutating it does not affect the game.
func (e *Engine) State() *GameState { return e.gs.Clone() }

func (e *Engine) CurrentPlayer() core.Player { return e.gs.CurrentPlayer }
func (e *Engine) TurnsPlayed() int           { return e.gs.TurnsPlayed }

// LegalActions lists the legal actions of the side to move, or nothing once the game is over.
func (e *Engine) LegalActions() []core.Action {
	if e.outcome.IsOver() {
		return nil
	}
	return e.legalMoves.LegalActions(e.gs.Board, e.gs.CurrentPlayer)
}

// Validate checks a for the side to move without applying it.
func (e *Engine) Validate(a core.Action) error {
	return e.gs.Validate(a)
}

// ApplyAction validates and commits one action for the side to move. An illegal action
// leaves the state untouched and returns a *core.LegalityError.
func (e *Engine) ApplyAction(ctx context.Context, a core.Action) (core.Effects, error) {
	return e.turns.ProcessAction(ctx, a)
}

// IsTerminal returns the game's outcome, OutcomeNone while play continues.
func (e *Engine) IsTerminal() rules.Outcome { return e.outcome }

// IsGameOver reports whether the game has ended.
func (e *Engine) IsGameOver() bool { return e.outcome.IsOver() }

// Duration is the wall-clock time since the game started.
func (e *Engine) Duration() time.Duration { return time.Since(e.startTime) }

// checkGameOver refreshes the cached outcome and announces the end of the game once.
func (e *Engine) checkGameOver(logger zerolog.Logger) {
	if e.outcome.IsOver() {
		return
	}
	e.outcome = e.winCondition.CheckGameOver(e.gs.Board, e.gs.TurnsPlayed)
	if !e.outcome.IsOver() {
		return
	}
	logger.Info().
		Str("outcome", e.outcome.String()).
		Int("turns_played", e.gs.TurnsPlayed).
		Msg("Game finished")
	e.eventBus.Publish(events.NewGameEndedEvent(e.gameID, e.outcome, e.gs.TurnsPlayed, e.Duration()))
}
