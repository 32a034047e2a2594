package subscribers

import (
	"encoding/json"

	"github.com/mitchelldurbincs/AIWargame/internal/game/events"
	"github.com/rs/zerolog"
)

// LoggerSubscriber logs events to structured logs
type LoggerSubscriber struct {
	id              string
	logger          zerolog.Logger
	logLevel        zerolog.Level
	eventTypeFilter map[string]bool // If non-nil, only log these event types
	devMode         bool            // If true, log full event details
}

// NewLoggerSubscriber creates a new logger subscriber
func NewLoggerSubscriber(id string, logger zerolog.Logger, logLevel zerolog.Level) *LoggerSubscriber {
	return &LoggerSubscriber{
		id:       id,
		logger:   logger.With().Str("subscriber", "event_logger").Logger(),
		logLevel: logLevel,
	}
}

// ID returns the subscriber's unique identifier
func (ls *LoggerSubscriber) ID() string {
	return ls.id
}

// SetEventFilter sets which event types to log (nil means log all)
func (ls *LoggerSubscriber) SetEventFilter(eventTypes []string) {
	if len(eventTypes) == 0 {
		ls.eventTypeFilter = nil
		return
	}

	ls.eventTypeFilter = make(map[string]bool)
	for _, eventType := range eventTypes {
		ls.eventTypeFilter[eventType] = true
	}
}

// SetDevMode enables or disables development mode logging
func (ls *LoggerSubscriber) SetDevMode(enabled bool) {
	ls.devMode = enabled
}

// InterestedIn returns true if the subscriber wants to receive this event type
func (ls *LoggerSubscriber) InterestedIn(eventType string) bool {
	if ls.eventTypeFilter == nil {
		return true
	}
	return ls.eventTypeFilter[eventType]
}

// HandleEvent processes an event by logging it
func (ls *LoggerSubscriber) HandleEvent(event events.Event) {
	eventLogger := ls.logger.With().
		Str("event_type", event.Type()).
		Str("game_id", event.GameID()).
		Time("timestamp", event.Timestamp()).
		Logger()

	var logEvent *zerolog.Event
	switch ls.logLevel {
	case zerolog.DebugLevel:
		logEvent = eventLogger.Debug()
	case zerolog.WarnLevel:
		logEvent = eventLogger.Warn()
	case zerolog.ErrorLevel:
		logEvent = eventLogger.Error()
	default:
		logEvent = eventLogger.Info()
	}

	switch e := event.(type) {
	case *events.GameStartedEvent:
		logEvent.
			Str("first_player", e.FirstPlayer.String()).
			Int("max_turns", e.MaxTurns).
			Str("turn_limit_policy", string(e.TurnLimitPolicy))
		if e.Board != nil {
			logEvent.Int("rows", e.Board.Rows).Int("cols", e.Board.Cols)
		}

	case *events.ActionAppliedEvent:
		destroyed := 0
		for _, d := range e.Deltas {
			if d.Destroyed() {
				destroyed++
			}
		}
		logEvent.
			Str("player", e.Player.String()).
			Int("turn", e.Turn).
			Str("action", e.Action.String()).
			Int("health_changes", len(e.Deltas)).
			Int("units_destroyed", destroyed)

	case *events.ActionRejectedEvent:
		logEvent.
			Str("player", e.Player.String()).
			Int("turn", e.Metadata.Turn).
			Str("action", e.Action.String()).
			Str("reason", string(e.Reason))

	case *events.SearchCompletedEvent:
		logEvent.
			Str("player", e.Player.String()).
			Int("turn", e.Metadata.Turn).
			Str("action", e.Action.String()).
			Int("score", e.Score).
			Str("algorithm", e.Algorithm).
			Str("heuristic", e.Heuristic).
			Int("max_depth", e.MaxDepth).
			Int64("evaluations", e.Stats.Evaluations).
			Float64("avg_branching", e.Stats.AverageBranchingFactor()).
			Dur("elapsed", e.Stats.Elapsed).
			Bool("timed_out", e.Stats.TimedOut > 0)

	case *events.GameEndedEvent:
		logEvent.
			Str("outcome", e.Outcome.String()).
			Int("turns_played", e.TurnsPlayed).
			Dur("duration", e.Duration)
	}

	if ls.devMode {
		if jsonData, err := json.Marshal(event); err == nil {
			logEvent.RawJSON("event_data", jsonData)
		}
	}

	logEvent.Msg("Game event")
}
