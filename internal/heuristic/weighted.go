package heuristic

import (
	"github.com/mitchelldurbincs/AIWargame/internal/game"
	"github.com/mitchelldurbincs/AIWargame/internal/game/core"
	"github.com/mitchelldurbincs/AIWargame/internal/game/rules"
)

// Weights are the coefficients of a weighted-sum evaluator. Each term except Remaining and
// Mobility is a differential: the perspective's value minus the opponent's.
type Weights struct {
	Outcome     int // decided games: +Outcome for a win, -Outcome for a loss, 0 for a draw
	AIAlive     int
	AIHealth    int
	TotalHealth int
	Units       int
	Damage      int // damage the side's units could deal to adjacent enemies
	Repair      int // health the side's units could restore to adjacent friends
	Remaining   int // turns left; counts for the attacker, against the defender
	Mobility    int // legal actions of the side to move; positive when that is the perspective
}

var (
	e1Weights = Weights{
		Outcome:     1_000_000,
		AIAlive:     10_000,
		AIHealth:    50,
		TotalHealth: 5,
		Units:       20,
		Damage:      3,
		Repair:      1,
	}

	e2Weights = Weights{
		Outcome:   1_000_000,
		AIAlive:   10_000,
		AIHealth:  50,
		Damage:    4,
		Repair:    2,
		Remaining: 1,
		Mobility:  1,
	}
)

// features are the per-side quantities the weighted evaluators combine.
type features struct {
	aiAlive     int
	aiHealth    int
	totalHealth int
	units       int
	damage      int
	repair      int
}

func (f features) minus(o features) features {
	return features{
		aiAlive:     f.aiAlive - o.aiAlive,
		aiHealth:    f.aiHealth - o.aiHealth,
		totalHealth: f.totalHealth - o.totalHealth,
		units:       f.units - o.units,
		damage:      f.damage - o.damage,
		repair:      f.repair - o.repair,
	}
}

// Weighted builds an evaluator from w. Mobility is only computed when its weight is set
// since it requires generating the side to move's actions.
func Weighted(w Weights) Evaluator {
	return func(gs *game.GameState, perspective core.Player) int {
		if w.Outcome != 0 {
			if outcome := gs.Outcome(); outcome.IsOver() {
				winner, ok := outcome.Winner()
				switch {
				case !ok:
					return 0
				case winner == perspective:
					return w.Outcome
				default:
					return -w.Outcome
				}
			}
		}

		d := collect(gs.Board, perspective).minus(collect(gs.Board, perspective.Opponent()))
		score := w.AIAlive*d.aiAlive +
			w.AIHealth*d.aiHealth +
			w.TotalHealth*d.totalHealth +
			w.Units*d.units +
			w.Damage*d.damage +
			w.Repair*d.repair

		if w.Remaining != 0 {
			score += w.Remaining * gs.RemainingTurns() * attackerSign(perspective)
		}
		if w.Mobility != 0 {
			mobility := rules.CountActions(gs.Board, gs.CurrentPlayer)
			if gs.CurrentPlayer != perspective {
				mobility = -mobility
			}
			score += w.Mobility * mobility
		}
		return score
	}
}

func attackerSign(p core.Player) int {
	if p == core.Attacker {
		return 1
	}
	return -1
}

func collect(b *core.Board, p core.Player) features {
	var f features
	for _, pu := range b.Units(p) {
		f.units++
		f.totalHealth += pu.Unit.Health
		if pu.Unit.Type == core.UnitAI {
			f.aiAlive = 1
			f.aiHealth = pu.Unit.Health
		}
		for _, n := range pu.Coord.Adjacent() {
			other, ok := b.Get(n)
			if !ok {
				continue
			}
			if other.Player != p {
				f.damage += b.Tables.DamageAmount(pu.Unit, other)
			} else {
				f.repair += b.Tables.RepairAmount(pu.Unit, other)
			}
		}
	}
	return f
}
