package rules

import "github.com/mitchelldurbincs/AIWargame/internal/game/core"

// actionKinds lists the kinds tried for every source cell, in generation order.
var actionKinds = [...]core.ActionType{
	core.ActionMove,
	core.ActionAttack,
	core.ActionRepair,
	core.ActionSelfDestruct,
}

// LegalMoveCalculator enumerates legal actions for a player.
type LegalMoveCalculator struct{}

// NewLegalMoveCalculator creates a new legal move calculator
func NewLegalMoveCalculator() *LegalMoveCalculator {
	return &LegalMoveCalculator{}
}

// LegalActions returns every legal action for player in the fixed generation order:
// source cells row-major, then Move, Attack, Repair, SelfDestruct, then destinations
// Up, Left, Down, Right. Search tie-breaking depends on this order.
func (lmc *LegalMoveCalculator) LegalActions(board *core.Board, player core.Player) []core.Action {
	var out []core.Action
	lmc.forEach(board, player, func(a core.Action) bool {
		out = append(out, a)
		return true
	})
	return out
}

// CountActions returns how many legal actions player has without allocating them.
func (lmc *LegalMoveCalculator) CountActions(board *core.Board, player core.Player) int {
	n := 0
	lmc.forEach(board, player, func(core.Action) bool {
		n++
		return true
	})
	return n
}

// forEach visits legal actions in generation order until fn returns false.
func (lmc *LegalMoveCalculator) forEach(board *core.Board, player core.Player, fn func(core.Action) bool) {
	for idx, tile := range board.T {
		if !tile.Occupied || tile.Unit.Player != player {
			continue
		}
		src := core.FromIndex(idx, board.Cols)
		for _, kind := range actionKinds {
			if kind == core.ActionSelfDestruct {
				if !fn(core.SelfDestruct(src)) {
					return
				}
				continue
			}
			for _, dst := range src.Adjacent() {
				a := core.Action{Type: kind, Src: src, Dst: dst}
				if core.Validate(board, player, a) != nil {
					continue
				}
				if !fn(a) {
					return
				}
			}
		}
	}
}

// LegalActions is a convenience wrapper around a zero-value calculator.
func LegalActions(board *core.Board, player core.Player) []core.Action {
	return (&LegalMoveCalculator{}).LegalActions(board, player)
}

// CountActions is a convenience wrapper around a zero-value calculator.
func CountActions(board *core.Board, player core.Player) int {
	return (&LegalMoveCalculator{}).CountActions(board, player)
}
