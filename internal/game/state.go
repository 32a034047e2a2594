package game

import (
	"github.com/mitchelldurbincs/AIWargame/internal/game/core"
	"github.com/mitchelldurbincs/AIWargame/internal/game/rules"
)

// GameState is a complete position: the board plus turn bookkeeping. The engine owns
// the authoritative instance; search works on clones.
type GameState struct {
	Board           *core.Board
	CurrentPlayer   core.Player
	TurnsPlayed     int
	MaxTurns        int
	TurnLimitPolicy rules.TurnLimitPolicy
	History         []core.Action
}

// NewGameState wraps board in a fresh state with the attacker to move.
func NewGameState(board *core.Board, maxTurns int, policy rules.TurnLimitPolicy) *GameState {
	if policy == "" {
		policy = rules.PolicyDefender
	}
	return &GameState{
		Board:           board,
		CurrentPlayer:   core.Attacker,
		MaxTurns:        maxTurns,
		TurnLimitPolicy: policy,
	}
}

// Clone returns an independent copy. The history slice is capped so appending to the
// clone never writes into the original's backing array.
func (gs *GameState) Clone() *GameState {
	c := *gs
	c.Board = gs.Board.Clone()
	c.History = gs.History[:len(gs.History):len(gs.History)]
	return &c
}

// Validate checks a for the side to move.
func (gs *GameState) Validate(a core.Action) error {
	return core.Validate(gs.Board, gs.CurrentPlayer, a)
}

// Apply commits a, which the caller must already have validated, and advances the turn:
// TurnsPlayed increments, the side to move flips and a is appended to History.
func (gs *GameState) Apply(a core.Action) core.Effects {
	fx := core.Apply(gs.Board, a)
	gs.TurnsPlayed++
	gs.CurrentPlayer = gs.CurrentPlayer.Opponent()
	gs.History = append(gs.History, a)
	return fx
}

// Outcome reports whether the position is terminal, without logging.
func (gs *GameState) Outcome() rules.Outcome {
	return rules.Terminal(gs.Board, gs.TurnsPlayed, gs.MaxTurns, gs.TurnLimitPolicy)
}

// LegalActions lists the side to move's legal actions in generation order.
func (gs *GameState) LegalActions() []core.Action {
	return rules.LegalActions(gs.Board, gs.CurrentPlayer)
}

// RemainingTurns is how many turns are left before the turn limit, never negative.
func (gs *GameState) RemainingTurns() int {
	if gs.MaxTurns <= 0 || gs.TurnsPlayed >= gs.MaxTurns {
		return 0
	}
	return gs.MaxTurns - gs.TurnsPlayed
}

// Equal compares board contents and bookkeeping, including history.
func (gs *GameState) Equal(other *GameState) bool {
	if other == nil {
		return false
	}
	if gs.CurrentPlayer != other.CurrentPlayer || gs.TurnsPlayed != other.TurnsPlayed ||
		gs.MaxTurns != other.MaxTurns || gs.TurnLimitPolicy != other.TurnLimitPolicy ||
		len(gs.History) != len(other.History) {
		return false
	}
	for i := range gs.History {
		if gs.History[i] != other.History[i] {
			return false
		}
	}
	return gs.Board.Equal(other.Board)
}
