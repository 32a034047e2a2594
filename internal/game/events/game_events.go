package events

import (
	"time"

	"github.com/mitchelldurbincs/AIWargame/internal/game/core"
	"github.com/mitchelldurbincs/AIWargame/internal/game/rules"
	"github.com/mitchelldurbincs/AIWargame/internal/search/stats"
)

// Event type constants
const (
	TypeGameStarted     = "game.started"
	TypeActionApplied   = "action.applied"
	TypeActionRejected  = "action.rejected"
	TypeSearchCompleted = "search.completed"
	TypeGameEnded       = "game.ended"
)

// GameStartedEvent is published when a new game begins. Board is a private copy of the
// initial position.
type GameStartedEvent struct {
	BaseEvent
	Metadata        EventMetadata
	Board           *core.Board
	FirstPlayer     core.Player
	MaxTurns        int
	TurnLimitPolicy rules.TurnLimitPolicy
}

// NewGameStartedEvent creates a new GameStartedEvent
func NewGameStartedEvent(gameID string, board *core.Board, first core.Player, maxTurns int, policy rules.TurnLimitPolicy) *GameStartedEvent {
	return &GameStartedEvent{
		BaseEvent:       newBase(TypeGameStarted, gameID),
		Metadata:        EventMetadata{Player: first.String()},
		Board:           board,
		FirstPlayer:     first,
		MaxTurns:        maxTurns,
		TurnLimitPolicy: policy,
	}
}

// ActionAppliedEvent is published after an action has been committed to the board.
// Turn is the number of completed turns including this one; Board is a private copy of
// the position after the action.
type ActionAppliedEvent struct {
	BaseEvent
	Metadata EventMetadata
	Player   core.Player
	Turn     int
	Action   core.Action
	Deltas   []core.HealthDelta
	Board    *core.Board
}

// NewActionAppliedEvent creates a new ActionAppliedEvent
func NewActionAppliedEvent(gameID string, player core.Player, turn int, action core.Action, deltas []core.HealthDelta, board *core.Board) *ActionAppliedEvent {
	return &ActionAppliedEvent{
		BaseEvent: newBase(TypeActionApplied, gameID),
		Metadata:  EventMetadata{Turn: turn, Player: player.String()},
		Player:    player,
		Turn:      turn,
		Action:    action,
		Deltas:    deltas,
		Board:     board,
	}
}

// ActionRejectedEvent is published when a submitted action fails validation.
type ActionRejectedEvent struct {
	BaseEvent
	Metadata EventMetadata
	Player   core.Player
	Action   core.Action
	Reason   core.Reason
}

// NewActionRejectedEvent creates a new ActionRejectedEvent
func NewActionRejectedEvent(gameID string, player core.Player, turn int, action core.Action, reason core.Reason) *ActionRejectedEvent {
	return &ActionRejectedEvent{
		BaseEvent: newBase(TypeActionRejected, gameID),
		Metadata:  EventMetadata{Turn: turn, Player: player.String()},
		Player:    player,
		Action:    action,
		Reason:    reason,
	}
}

// SearchCompletedEvent is published when the computer has chosen an action, before
// that action is applied.
type SearchCompletedEvent struct {
	BaseEvent
	Metadata  EventMetadata
	Player    core.Player
	Action    core.Action
	Score     int
	Algorithm string
	Heuristic string
	MaxDepth  int
	Stats     stats.Statistics
}

// NewSearchCompletedEvent creates a new SearchCompletedEvent
func NewSearchCompletedEvent(gameID string, player core.Player, turn int, action core.Action, score int, algorithm, heuristic string, maxDepth int, st stats.Statistics) *SearchCompletedEvent {
	return &SearchCompletedEvent{
		BaseEvent: newBase(TypeSearchCompleted, gameID),
		Metadata:  EventMetadata{Turn: turn, Player: player.String()},
		Player:    player,
		Action:    action,
		Score:     score,
		Algorithm: algorithm,
		Heuristic: heuristic,
		MaxDepth:  maxDepth,
		Stats:     st,
	}
}

// GameEndedEvent is published once when a game reaches a terminal position.
type GameEndedEvent struct {
	BaseEvent
	Metadata    EventMetadata
	Outcome     rules.Outcome
	TurnsPlayed int
	Duration    time.Duration
}

// NewGameEndedEvent creates a new GameEndedEvent
func NewGameEndedEvent(gameID string, outcome rules.Outcome, turnsPlayed int, duration time.Duration) *GameEndedEvent {
	md := EventMetadata{Turn: turnsPlayed}
	if w, ok := outcome.Winner(); ok {
		md.Player = w.String()
	}
	return &GameEndedEvent{
		BaseEvent:   newBase(TypeGameEnded, gameID),
		Metadata:    md,
		Outcome:     outcome,
		TurnsPlayed: turnsPlayed,
		Duration:    duration,
	}
}
