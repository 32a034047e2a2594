package core

import (
	"fmt"

	"github.com/mitchelldurbincs/AIWargame/internal/common"
)

// MaxHealth is the health every unit starts with and the ceiling for repairs.
const MaxHealth = 9

// UnitType identifies one of the fixed unit kinds.
type UnitType int

const (
	UnitAI UnitType = iota
	UnitTech
	UnitVirus
	UnitProgram
	UnitFirewall
	NumUnitTypes = 5
)

var unitTypeNames = [NumUnitTypes]string{"AI", "Tech", "Virus", "Program", "Firewall"}

func (t UnitType) String() string {
	if t < 0 || int(t) >= NumUnitTypes {
		return fmt.Sprintf("UnitType(%d)", int(t))
	}
	return unitTypeNames[t]
}

// Letter is the single upper-case character used in board notation.
func (t UnitType) Letter() byte {
	return t.String()[0]
}

// UnitTypeFromLetter parses the board notation letter of a unit type.
func UnitTypeFromLetter(c byte) (UnitType, bool) {
	for i, name := range unitTypeNames {
		if name[0] == c {
			return UnitType(i), true
		}
	}
	return 0, false
}

// Player is one of the two sides. The attacker always moves first.
type Player int

const (
	Attacker Player = iota
	Defender
)

// Opponent returns the other side.
func (p Player) Opponent() Player {
	if p == Attacker {
		return Defender
	}
	return Attacker
}

func (p Player) String() string {
	switch p {
	case Attacker:
		return "Attacker"
	case Defender:
		return "Defender"
	default:
		return fmt.Sprintf("Player(%d)", int(p))
	}
}

// Letter is the lower-case player prefix used in board notation.
func (p Player) Letter() byte {
	if p == Attacker {
		return 'a'
	}
	return 'd'
}

// ParsePlayer accepts "attacker"/"defender" or their single-letter forms.
func ParsePlayer(s string) (Player, error) {
	switch s {
	case "attacker", "Attacker", "a":
		return Attacker, nil
	case "defender", "Defender", "d":
		return Defender, nil
	}
	return 0, fmt.Errorf("unknown player %q", s)
}

// Unit is a single piece on the board.
type Unit struct {
	Player Player
	Type   UnitType
	Health int
}

// NewUnit creates a unit at full health.
func NewUnit(p Player, t UnitType) Unit {
	return Unit{Player: p, Type: t, Health: MaxHealth}
}

func (u Unit) IsAlive() bool { return u.Health > 0 }

// String renders the unit as e.g. "dA9".
func (u Unit) String() string {
	return fmt.Sprintf("%c%c%d", u.Player.Letter(), u.Type.Letter(), u.Health)
}

// ParseUnit is the inverse of Unit.String.
func ParseUnit(s string) (Unit, error) {
	if len(s) != 3 {
		return Unit{}, fmt.Errorf("invalid unit %q", s)
	}
	p, err := ParsePlayer(s[:1])
	if err != nil {
		return Unit{}, fmt.Errorf("invalid unit %q: %w", s, err)
	}
	t, ok := UnitTypeFromLetter(s[1])
	if !ok {
		return Unit{}, fmt.Errorf("invalid unit %q: unknown type", s)
	}
	h := int(s[2] - '0')
	if h < 1 || h > MaxHealth {
		return Unit{}, fmt.Errorf("invalid unit %q: health out of range", s)
	}
	return Unit{Player: p, Type: t, Health: h}, nil
}

// UnitTables holds the per (type, type) numeric rules plus per-type movement flags.
// Damage[a][b] is what a unit of type a deals to a unit of type b; Repair likewise.
type UnitTables struct {
	Damage [NumUnitTypes][NumUnitTypes]int
	Repair [NumUnitTypes][NumUnitTypes]int
	// Restricted types may only advance toward the enemy side and cannot move while engaged.
	Restricted [NumUnitTypes]bool
}

// DefaultUnitTables returns the standard rules.
func DefaultUnitTables() *UnitTables {
	return &UnitTables{
		Damage: [NumUnitTypes][NumUnitTypes]int{
			{3, 3, 3, 3, 1}, // AI
			{1, 1, 6, 1, 1}, // Tech
			{9, 6, 1, 6, 1}, // Virus
			{3, 3, 3, 3, 1}, // Program
			{1, 1, 1, 1, 1}, // Firewall
		},
		Repair: [NumUnitTypes][NumUnitTypes]int{
			{0, 1, 1, 0, 0}, // AI
			{3, 0, 0, 3, 3}, // Tech
			{0, 0, 0, 0, 0}, // Virus
			{0, 0, 0, 0, 0}, // Program
			{0, 0, 0, 0, 0}, // Firewall
		},
		Restricted: [NumUnitTypes]bool{
			UnitAI:       true,
			UnitProgram:  true,
			UnitFirewall: true,
		},
	}
}

// DamageAmount is the damage src deals to dst, capped by dst's remaining health.
func (tb *UnitTables) DamageAmount(src, dst Unit) int {
	return common.Min(tb.Damage[src.Type][dst.Type], dst.Health)
}

// RepairAmount is the health src restores to dst, capped at MaxHealth.
func (tb *UnitTables) RepairAmount(src, dst Unit) int {
	return common.Min(tb.Repair[src.Type][dst.Type], MaxHealth-dst.Health)
}

// Validate checks the tables hold sane values.
func (tb *UnitTables) Validate() error {
	for a := 0; a < NumUnitTypes; a++ {
		for b := 0; b < NumUnitTypes; b++ {
			if tb.Damage[a][b] < 0 || tb.Damage[a][b] > MaxHealth {
				return NewConfigError("units.damage", fmt.Sprintf("%s vs %s must be between 0 and %d", UnitType(a), UnitType(b), MaxHealth))
			}
			if tb.Repair[a][b] < 0 || tb.Repair[a][b] > MaxHealth {
				return NewConfigError("units.repair", fmt.Sprintf("%s vs %s must be between 0 and %d", UnitType(a), UnitType(b), MaxHealth))
			}
		}
	}
	return nil
}
