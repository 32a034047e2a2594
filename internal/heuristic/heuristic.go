// Package heuristic holds the static evaluation functions used at the leaves of the game
// tree. Every evaluator is pure and zero-sum: the score for one player is the negation of
// the score for the other, so the search can call it with whichever perspective it needs.
package heuristic

import (
	"fmt"
	"strings"

	"github.com/mitchelldurbincs/AIWargame/internal/game"
	"github.com/mitchelldurbincs/AIWargame/internal/game/core"
	"github.com/mitchelldurbincs/AIWargame/internal/game/rules"
)

// Evaluator scores gs from perspective's point of view; higher is better for perspective.
type Evaluator func(gs *game.GameState, perspective core.Player) int

// Kind names one of the built-in evaluators.
type Kind string

const (
	KindE0 Kind = "e0"
	KindE1 Kind = "e1"
	KindE2 Kind = "e2"
)

// Kinds lists the built-in evaluators in display order.
func Kinds() []Kind {
	return []Kind{KindE0, KindE1, KindE2}
}

// ParseKind accepts "e0", "e1" or "e2" in any case.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	if _, err := ForKind(k); err != nil {
		return "", err
	}
	return k, nil
}

// ForKind resolves k once, at configuration time.
func ForKind(k Kind) (Evaluator, error) {
	switch k {
	case KindE0:
		return E0, nil
	case KindE1:
		return E1, nil
	case KindE2:
		return E2, nil
	default:
		return nil, core.NewConfigError("search.heuristic", fmt.Sprintf("unknown heuristic %q, want e0, e1 or e2", string(k)))
	}
}

// E0 is the material baseline: every unit is worth rules.MaterialOther except the AI,
// which is worth rules.MaterialAI.
func E0(gs *game.GameState, perspective core.Player) int {
	return rules.Material(gs.Board, perspective) - rules.Material(gs.Board, perspective.Opponent())
}

// E1 weighs AI survival and health, total health, unit count and the damage and repair
// each side could deal next turn.
func E1(gs *game.GameState, perspective core.Player) int {
	return e1(gs, perspective)
}

// E2 weighs AI survival and health, damage and repair potential, the remaining turn budget
// and the mobility of the side to move.
func E2(gs *game.GameState, perspective core.Player) int {
	return e2(gs, perspective)
}

var (
	e1 = Weighted(e1Weights)
	e2 = Weighted(e2Weights)
)
