package core

// Validate decides whether player may perform a on b. It returns nil for a legal action and
// a *LegalityError naming the first broken rule otherwise. The board is never modified.
func Validate(b *Board, player Player, a Action) error {
	if !b.InBounds(a.Src) {
		return illegal(player, a, ReasonOutOfBounds)
	}
	actor, ok := b.Get(a.Src)
	if !ok {
		return illegal(player, a, ReasonSourceEmpty)
	}
	if actor.Player != player {
		return illegal(player, a, ReasonWrongOwner)
	}

	if a.Type == ActionSelfDestruct {
		if a.Dst != a.Src {
			return illegal(player, a, ReasonNotAdjacent)
		}
		return nil
	}

	if !b.InBounds(a.Dst) {
		return illegal(player, a, ReasonOutOfBounds)
	}
	if a.Src.IsDiagonalTo(a.Dst) {
		return illegal(player, a, ReasonDiagonalNotAllowed)
	}
	if !a.Src.IsAdjacentTo(a.Dst) {
		return illegal(player, a, ReasonNotAdjacent)
	}

	target, occupied := b.Get(a.Dst)
	switch a.Type {
	case ActionMove:
		if occupied {
			return illegal(player, a, ReasonDestinationOccupied)
		}
		if b.Tables.Restricted[actor.Type] {
			if b.IsEngaged(a.Src) {
				return illegal(player, a, ReasonEngagedCannotRetreat)
			}
			if !forwardDirection(player, a.Src.DirectionTo(a.Dst)) {
				return illegal(player, a, ReasonDirectionNotAllowed)
			}
		}
	case ActionAttack:
		if !occupied {
			return illegal(player, a, ReasonDestinationEmpty)
		}
		if target.Player == player {
			return illegal(player, a, ReasonNotOpposing)
		}
	case ActionRepair:
		if !occupied {
			return illegal(player, a, ReasonDestinationEmpty)
		}
		if target.Player != player {
			return illegal(player, a, ReasonNotFriendly)
		}
		if b.Tables.RepairAmount(actor, target) <= 0 {
			return illegal(player, a, ReasonRepairNotApplicable)
		}
	default:
		return illegal(player, a, ReasonNotAdjacent)
	}
	return nil
}

// IsLegal is the boolean form of Validate.
func IsLegal(b *Board, player Player, a Action) bool {
	return Validate(b, player, a) == nil
}

// forwardDirection reports whether a restricted unit of p may step in d.
// The attacker starts bottom-right and advances up or left; the defender the opposite.
func forwardDirection(p Player, d Direction) bool {
	if p == Attacker {
		return d == Up || d == Left
	}
	return d == Down || d == Right
}
