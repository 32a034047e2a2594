package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// legalityBoard builds a 5x5 board:
//
//	   0   1   2   3   4
//	A: .   .   .   .   .
//	B: .   .   dP9 .   .
//	C: .   .   aP9 aV5 .
//	D: .   dT9 .   aA9 .
//	E: .   .   .   .   aF9
func legalityBoard() *Board {
	b := NewBoard(5, 5, nil)
	b.Set(NewCoord(1, 2), NewUnit(Defender, UnitProgram))
	b.Set(NewCoord(2, 2), NewUnit(Attacker, UnitProgram))
	b.Set(NewCoord(2, 3), Unit{Player: Attacker, Type: UnitVirus, Health: 5})
	b.Set(NewCoord(3, 1), NewUnit(Defender, UnitTech))
	b.Set(NewCoord(3, 3), NewUnit(Attacker, UnitAI))
	b.Set(NewCoord(4, 4), NewUnit(Attacker, UnitFirewall))
	return b
}

func TestValidate(t *testing.T) {
	c := NewCoord
	tests := []struct {
		name     string
		player   Player
		action   Action
		expected Reason // "" means legal
	}{
		{"source out of bounds", Attacker, Move(c(5, 0), c(4, 0)), ReasonOutOfBounds},
		{"destination out of bounds", Attacker, Move(c(4, 4), c(4, 5)), ReasonOutOfBounds},
		{"empty source", Attacker, Move(c(0, 0), c(0, 1)), ReasonSourceEmpty},
		{"opponent unit", Attacker, Move(c(3, 1), c(3, 0)), ReasonWrongOwner},
		{"diagonal move", Attacker, Move(c(2, 3), c(1, 4)), ReasonDiagonalNotAllowed},
		{"diagonal attack", Attacker, Attack(c(2, 2), c(3, 1)), ReasonDiagonalNotAllowed},
		{"two cells away", Attacker, Move(c(2, 3), c(0, 3)), ReasonNotAdjacent},
		{"move onto itself", Attacker, Move(c(2, 3), c(2, 3)), ReasonNotAdjacent},
		{"destination occupied", Attacker, Move(c(3, 3), c(2, 3)), ReasonDestinationOccupied},
		{"engaged program cannot retreat", Attacker, Move(c(2, 2), c(2, 1)), ReasonEngagedCannotRetreat},
		{"restricted unit moving backward", Attacker, Move(c(3, 3), c(4, 3)), ReasonDirectionNotAllowed},
		{"restricted unit moving right", Attacker, Move(c(3, 3), c(3, 4)), ReasonDirectionNotAllowed},
		{"restricted unit moving forward", Attacker, Move(c(4, 4), c(4, 3)), ""},
		{"virus moves in any direction", Attacker, Move(c(2, 3), c(2, 4)), ""},
		{"attack empty cell", Attacker, Attack(c(2, 3), c(1, 3)), ReasonDestinationEmpty},
		{"attack friend", Attacker, Attack(c(2, 2), c(2, 3)), ReasonNotOpposing},
		{"attack enemy", Attacker, Attack(c(2, 2), c(1, 2)), ""},
		{"repair enemy", Attacker, Repair(c(2, 2), c(1, 2)), ReasonNotFriendly},
		{"repair empty", Attacker, Repair(c(3, 3), c(3, 2)), ReasonDestinationEmpty},
		{"repair damaged virus with AI", Attacker, Repair(c(3, 3), c(2, 3)), ""},
		{"repair with zero table value", Attacker, Repair(c(2, 3), c(2, 2)), ReasonRepairNotApplicable},
		{"self-destruct", Attacker, SelfDestruct(c(2, 2)), ""},
		{"self-destruct opponent", Defender, SelfDestruct(c(2, 2)), ReasonWrongOwner},
		{"defender tech moves up", Defender, Move(c(3, 1), c(2, 1)), ""},
		{"defender program engaged", Defender, Move(c(1, 2), c(1, 3)), ReasonEngagedCannotRetreat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := legalityBoard()
			before := b.Clone()
			err := Validate(b, tt.player, tt.action)
			if tt.expected == "" {
				assert.NoError(t, err)
				assert.True(t, IsLegal(b, tt.player, tt.action))
			} else {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrIllegalAction))
				assert.Equal(t, tt.expected, ReasonOf(err))
			}
			assert.True(t, before.Equal(b), "validation must not modify the board")
		})
	}
}

func TestValidate_RepairFullHealthIsIllegal(t *testing.T) {
	b := NewBoard(5, 5, nil)
	b.Set(NewCoord(0, 0), NewUnit(Defender, UnitAI))
	b.Set(NewCoord(1, 0), NewUnit(Defender, UnitTech))

	err := Validate(b, Defender, Repair(NewCoord(1, 0), NewCoord(0, 0)))
	require.Error(t, err)
	assert.Equal(t, ReasonRepairNotApplicable, ReasonOf(err))

	b.Set(NewCoord(0, 0), Unit{Player: Defender, Type: UnitAI, Health: 4})
	assert.NoError(t, Validate(b, Defender, Repair(NewCoord(1, 0), NewCoord(0, 0))))
}

func TestValidate_EngagedUnitMayStillAct(t *testing.T) {
	b := legalityBoard()
	src := NewCoord(2, 2)
	require.True(t, b.IsEngaged(src))

	assert.NoError(t, Validate(b, Attacker, Attack(src, NewCoord(1, 2))))
	assert.NoError(t, Validate(b, Attacker, SelfDestruct(src)))
	assert.Equal(t, ReasonEngagedCannotRetreat, ReasonOf(Validate(b, Attacker, Move(src, NewCoord(2, 1)))))
}

func TestLegalityError(t *testing.T) {
	err := Validate(legalityBoard(), Attacker, Move(NewCoord(2, 2), NewCoord(2, 1)))

	var le *LegalityError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, Attacker, le.Player)
	assert.Equal(t, "Attacker: move C2 C1: engaged_cannot_retreat", le.Error())
	assert.Equal(t, Reason(""), ReasonOf(errors.New("other")))
}
