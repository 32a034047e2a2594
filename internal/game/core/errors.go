package core

import (
	"errors"
	"fmt"
)

var (
	ErrIllegalAction  = errors.New("illegal action")
	ErrInvalidConfig  = errors.New("invalid configuration")
	ErrGameOver       = errors.New("game is over")
	ErrNoLegalActions = errors.New("no legal actions")
)

// Reason identifies which legality rule an action broke.
type Reason string

const (
	ReasonOutOfBounds          Reason = "out_of_bounds"
	ReasonDiagonalNotAllowed   Reason = "diagonal_not_allowed"
	ReasonDestinationOccupied  Reason = "destination_occupied"
	ReasonDestinationEmpty     Reason = "destination_empty"
	ReasonSourceEmpty          Reason = "source_empty"
	ReasonWrongOwner           Reason = "wrong_owner"
	ReasonEngagedCannotRetreat Reason = "engaged_cannot_retreat"
	ReasonDirectionNotAllowed  Reason = "direction_not_allowed"
	ReasonNotAdjacent          Reason = "not_adjacent"
	ReasonNotOpposing          Reason = "not_opposing"
	ReasonNotFriendly          Reason = "not_friendly"
	ReasonRepairNotApplicable  Reason = "repair_not_applicable"
)

// LegalityError reports a rejected action. It matches ErrIllegalAction with errors.Is.
type LegalityError struct {
	Reason Reason
	Action Action
	Player Player
}

func (e *LegalityError) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Player, e.Action, e.Reason)
}

func (e *LegalityError) Is(target error) bool {
	return target == ErrIllegalAction
}

func illegal(p Player, a Action, r Reason) error {
	return &LegalityError{Reason: r, Action: a, Player: p}
}

// ReasonOf extracts the legality reason from err, or "" if err is not a LegalityError.
func ReasonOf(err error) Reason {
	var le *LegalityError
	if errors.As(err, &le) {
		return le.Reason
	}
	return ""
}

// ConfigError reports an invalid setting detected before a game starts.
type ConfigError struct {
	Field   string
	Message string
}

func NewConfigError(field, message string) *ConfigError {
	return &ConfigError{Field: field, Message: message}
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration: %s %s", e.Field, e.Message)
}

func (e *ConfigError) Unwrap() error { return ErrInvalidConfig }

// WrapGameStateError adds turn and phase context to an engine error.
func WrapGameStateError(turn int, phase string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("turn %d: %s: %w", turn, phase, err)
}
