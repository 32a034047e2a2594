package core

import "github.com/mitchelldurbincs/AIWargame/internal/common"

// HealthDelta records one unit's health change caused by an action.
// After == 0 means the unit was removed.
type HealthDelta struct {
	Coord  Coord
	Unit   Unit // unit as it was before the action
	Before int
	After  int
}

// Destroyed reports whether the delta removed the unit from the board.
func (d HealthDelta) Destroyed() bool { return d.After <= 0 }

// Effects summarises what Apply changed.
type Effects struct {
	Deltas    []HealthDelta
	Destroyed []PlacedUnit
}

// Apply performs a on b and returns its effects. The caller must have confirmed the action
// with Validate; Apply does not re-check legality. Every change is computed before the
// board is written so the update is all-or-nothing.
func Apply(b *Board, a Action) Effects {
	switch a.Type {
	case ActionMove:
		u, _ := b.Get(a.Src)
		b.Clear(a.Src)
		b.Set(a.Dst, u)
		return Effects{}
	case ActionAttack:
		return applyAttack(b, a)
	case ActionRepair:
		return applyRepair(b, a)
	case ActionSelfDestruct:
		return applySelfDestruct(b, a)
	}
	return Effects{}
}

// applyAttack resolves combat in both directions in the same step.
func applyAttack(b *Board, a Action) Effects {
	attacker, _ := b.Get(a.Src)
	defender, _ := b.Get(a.Dst)

	toDefender := b.Tables.DamageAmount(attacker, defender)
	toAttacker := b.Tables.DamageAmount(defender, attacker)

	var fx Effects
	fx.add(a.Src, attacker, -toAttacker)
	fx.add(a.Dst, defender, -toDefender)
	fx.commit(b)
	return fx
}

func applyRepair(b *Board, a Action) Effects {
	repairer, _ := b.Get(a.Src)
	target, _ := b.Get(a.Dst)

	var fx Effects
	fx.add(a.Dst, target, b.Tables.RepairAmount(repairer, target))
	fx.commit(b)
	return fx
}

// applySelfDestruct removes the acting unit and deals 2 damage to every occupied
// surrounding cell, friend or foe.
func applySelfDestruct(b *Board, a Action) Effects {
	const blastDamage = 2

	actor, _ := b.Get(a.Src)
	var fx Effects
	for _, c := range a.Src.Surrounding() {
		if u, ok := b.Get(c); ok {
			fx.add(c, u, -blastDamage)
		}
	}
	fx.add(a.Src, actor, -actor.Health)
	fx.commit(b)
	return fx
}

func (fx *Effects) add(c Coord, u Unit, delta int) {
	fx.Deltas = append(fx.Deltas, HealthDelta{
		Coord:  c,
		Unit:   u,
		Before: u.Health,
		After:  common.Clamp(u.Health+delta, 0, MaxHealth),
	})
}

func (fx *Effects) commit(b *Board) {
	for _, d := range fx.Deltas {
		u := d.Unit
		u.Health = d.After
		if d.Destroyed() {
			b.Clear(d.Coord)
			fx.Destroyed = append(fx.Destroyed, PlacedUnit{Coord: d.Coord, Unit: d.Unit})
			continue
		}
		b.Set(d.Coord, u)
	}
}
