package game

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mitchelldurbincs/AIWargame/internal/game/events"
	"github.com/mitchelldurbincs/AIWargame/internal/game/rules"
	"github.com/rs/zerolog"
)

// EngineInitializer handles the initialization of a game engine
type EngineInitializer struct {
	config GameConfig
	logger zerolog.Logger
}

// NewEngineInitializer creates a new engine initializer
func NewEngineInitializer(cfg GameConfig) *EngineInitializer {
	logger := cfg.Logger.With().Str("component", "GameEngine").Logger()
	return &EngineInitializer{
		config: cfg,
		logger: logger,
	}
}

// Initialize validates the configuration, places the roster and creates the engine
func (ei *EngineInitializer) Initialize(ctx context.Context) (*Engine, error) {
	select {
	case <-ctx.Done():
		ei.logger.Error().Err(ctx.Err()).Msg("Engine creation cancelled or timed out during initial phase")
		return nil, ctx.Err()
	default:
	}

	ei.setupDefaults()

	if err := ei.config.Validate(); err != nil {
		ei.logger.Error().Err(err).Msg("Invalid game configuration")
		return nil, err
	}

	gs := NewGameState(ei.config.BuildBoard(), ei.config.MaxTurns, ei.config.TurnLimitPolicy)
	engine := ei.createEngine(gs)

	engine.eventBus.Publish(events.NewGameStartedEvent(
		engine.gameID,
		gs.Board.Clone(),
		gs.CurrentPlayer,
		gs.MaxTurns,
		gs.TurnLimitPolicy,
	))

	ei.logger.Info().
		Str("game_id", engine.gameID).
		Int("board_dim", ei.config.BoardDim).
		Int("max_turns", ei.config.MaxTurns).
		Str("turn_limit_policy", string(ei.config.TurnLimitPolicy)).
		Msg("Engine created successfully")

	return engine, nil
}

// setupDefaults fills in the optional settings. Board size and turn limit have no
// implicit default; start from DefaultGameConfig for the standard game.
func (ei *EngineInitializer) setupDefaults() {
	if ei.config.TurnLimitPolicy == "" {
		ei.config.TurnLimitPolicy = rules.PolicyDefender
	}
	if ei.config.GameID == "" {
		ei.config.GameID = uuid.NewString()
	}
	if ei.config.EventBus == nil {
		ei.logger.Debug().Msg("No event bus provided, creating a private one")
		ei.config.EventBus = events.NewEventBusWithLogger(ei.config.Logger)
	}
}

// createEngine creates the engine with all its components
func (ei *EngineInitializer) createEngine(gs *GameState) *Engine {
	logger := ei.logger.With().Str("game_id", ei.config.GameID).Logger()
	engine := &Engine{
		gs:           gs,
		gameID:       ei.config.GameID,
		logger:       logger,
		eventBus:     ei.config.EventBus,
		winCondition: rules.NewWinConditionChecker(logger, gs.MaxTurns, gs.TurnLimitPolicy),
		legalMoves:   rules.NewLegalMoveCalculator(),
		startTime:    time.Now(),
	}
	engine.turns = NewTurnProcessor(engine)
	return engine
}
