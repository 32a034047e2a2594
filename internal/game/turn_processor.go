package game

import (
	"context"

	"github.com/mitchelldurbincs/AIWargame/internal/game/core"
	"github.com/mitchelldurbincs/AIWargame/internal/game/events"
	"github.com/rs/zerolog"
)

// TurnProcessor handles the orchestration of a single player turn
type TurnProcessor struct {
	engine *Engine
	logger zerolog.Logger
}

// NewTurnProcessor creates a new turn processor
func NewTurnProcessor(engine *Engine) *TurnProcessor {
	return &TurnProcessor{
		engine: engine,
		logger: engine.logger,
	}
}

// ProcessAction executes one complete turn: validation, resolution, bookkeeping and the
// terminal check. Nothing is mutated unless every check passes.
func (tp *TurnProcessor) ProcessAction(ctx context.Context, action core.Action) (core.Effects, error) {
	if err := tp.checkContext(ctx); err != nil {
		return core.Effects{}, err
	}

	if err := tp.validateGameState(); err != nil {
		return core.Effects{}, err
	}

	gs := tp.engine.gs
	player := gs.CurrentPlayer
	turnLogger := tp.logger.With().
		Int("turn", gs.TurnsPlayed+1).
		Str("player", player.String()).
		Logger()

	if err := gs.Validate(action); err != nil {
		tp.rejectAction(turnLogger, player, action, err)
		return core.Effects{}, err
	}

	fx := gs.Apply(action)
	turnLogger.Info().
		Str("action", action.String()).
		Int("health_changes", len(fx.Deltas)).
		Int("units_destroyed", len(fx.Destroyed)).
		Msg("Action applied")

	tp.engine.eventBus.Publish(events.NewActionAppliedEvent(
		tp.engine.gameID,
		player,
		gs.TurnsPlayed,
		action,
		fx.Deltas,
		gs.Board.Clone(),
	))

	tp.engine.checkGameOver(turnLogger)
	return fx, nil
}

// checkContext checks if the context is cancelled
func (tp *TurnProcessor) checkContext(ctx context.Context) error {
	select {
	case <-ctx.Done():
		tp.logger.Warn().
			Err(ctx.Err()).
			Int("turns_played", tp.engine.gs.TurnsPlayed).
			Msg("Turn cancelled or timed out")
		return ctx.Err()
	default:
		return nil
	}
}

// validateGameState ensures the game can receive actions
func (tp *TurnProcessor) validateGameState() error {
	if tp.engine.outcome.IsOver() {
		tp.logger.Warn().
			Int("turns_played", tp.engine.gs.TurnsPlayed).
			Str("outcome", tp.engine.outcome.String()).
			Msg("Attempted to play a turn in a game that is already over")
		return core.WrapGameStateError(tp.engine.gs.TurnsPlayed, "apply action", core.ErrGameOver)
	}
	return nil
}

func (tp *TurnProcessor) rejectAction(logger zerolog.Logger, player core.Player, action core.Action, err error) {
	reason := core.ReasonOf(err)
	logger.Warn().
		Str("action", action.String()).
		Str("reason", string(reason)).
		Msg("Action rejected")
	tp.engine.eventBus.Publish(events.NewActionRejectedEvent(
		tp.engine.gameID,
		player,
		tp.engine.gs.TurnsPlayed,
		action,
		reason,
	))
}
