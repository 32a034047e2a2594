package core

import (
	"fmt"
	"strings"
)

// ActionType represents the type of action. The declaration order is the generation order.
type ActionType int

const (
	ActionMove ActionType = iota
	ActionAttack
	ActionRepair
	ActionSelfDestruct
)

var actionTypeNames = [...]string{"move", "attack", "repair", "self_destruct"}

func (t ActionType) String() string {
	if t < 0 || int(t) >= len(actionTypeNames) {
		return fmt.Sprintf("ActionType(%d)", int(t))
	}
	return actionTypeNames[t]
}

// ParseActionType is the inverse of ActionType.String.
func ParseActionType(s string) (ActionType, error) {
	for i, name := range actionTypeNames {
		if name == s {
			return ActionType(i), nil
		}
	}
	return 0, fmt.Errorf("unknown action type %q", s)
}

// Action is an immutable value describing one player turn.
// Dst equals Src for self-destruct.
type Action struct {
	Type ActionType
	Src  Coord
	Dst  Coord
}

func Move(src, dst Coord) Action   { return Action{Type: ActionMove, Src: src, Dst: dst} }
func Attack(src, dst Coord) Action { return Action{Type: ActionAttack, Src: src, Dst: dst} }
func Repair(src, dst Coord) Action { return Action{Type: ActionRepair, Src: src, Dst: dst} }
func SelfDestruct(src Coord) Action {
	return Action{Type: ActionSelfDestruct, Src: src, Dst: src}
}

func (a Action) String() string {
	if a.Type == ActionSelfDestruct {
		return fmt.Sprintf("%s %s", a.Type, a.Src)
	}
	return fmt.Sprintf("%s %s %s", a.Type, a.Src, a.Dst)
}

// ParseAction is the inverse of Action.String: "attack B2 C2" or "self_destruct A0".
func ParseAction(s string) (Action, error) {
	fields := strings.Fields(s)
	if len(fields) < 2 {
		return Action{}, fmt.Errorf("invalid action %q", s)
	}
	t, err := ParseActionType(fields[0])
	if err != nil {
		return Action{}, err
	}
	src, err := ParseCoord(fields[1])
	if err != nil {
		return Action{}, fmt.Errorf("invalid action %q: %w", s, err)
	}
	if t == ActionSelfDestruct {
		if len(fields) != 2 {
			return Action{}, fmt.Errorf("invalid action %q: self_destruct takes one cell", s)
		}
		return SelfDestruct(src), nil
	}
	if len(fields) != 3 {
		return Action{}, fmt.Errorf("invalid action %q: %s takes two cells", s, t)
	}
	dst, err := ParseCoord(fields[2])
	if err != nil {
		return Action{}, fmt.Errorf("invalid action %q: %w", s, err)
	}
	return Action{Type: t, Src: src, Dst: dst}, nil
}

// MarshalText encodes the action in its String form.
func (a Action) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText decodes the String form.
func (a *Action) UnmarshalText(text []byte) error {
	parsed, err := ParseAction(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// InferAction resolves a bare coordinate pair into an action based on what occupies dst:
// same cell is a self-destruct, an empty cell a move, an enemy an attack, a friend a repair.
func InferAction(b *Board, src, dst Coord) Action {
	if src == dst {
		return SelfDestruct(src)
	}
	actor, _ := b.Get(src)
	target, ok := b.Get(dst)
	switch {
	case !ok:
		return Move(src, dst)
	case target.Player != actor.Player:
		return Attack(src, dst)
	default:
		return Repair(src, dst)
	}
}
