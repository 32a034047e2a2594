package rules

import (
	"fmt"

	"github.com/mitchelldurbincs/AIWargame/internal/game/core"
	"github.com/rs/zerolog"
)

// Outcome is the result of a finished game, or OutcomeNone while play continues.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeAttackerWins
	OutcomeDefenderWins
	OutcomeDraw
)

var outcomeNames = [...]string{"none", "attacker_wins", "defender_wins", "draw"}

func (o Outcome) String() string {
	if o < 0 || int(o) >= len(outcomeNames) {
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
	return outcomeNames[o]
}

// ParseOutcome is the inverse of Outcome.String.
func ParseOutcome(s string) (Outcome, error) {
	for i, name := range outcomeNames {
		if name == s {
			return Outcome(i), nil
		}
	}
	return OutcomeNone, fmt.Errorf("unknown outcome %q", s)
}

// IsOver reports whether the outcome ends the game.
func (o Outcome) IsOver() bool { return o != OutcomeNone }

// Winner returns the winning player, or false for a draw or an unfinished game.
func (o Outcome) Winner() (core.Player, bool) {
	switch o {
	case OutcomeAttackerWins:
		return core.Attacker, true
	case OutcomeDefenderWins:
		return core.Defender, true
	}
	return 0, false
}

// WinsFor returns the outcome in which p wins.
func WinsFor(p core.Player) Outcome {
	if p == core.Attacker {
		return OutcomeAttackerWins
	}
	return OutcomeDefenderWins
}

// TurnLimitPolicy decides the outcome when the turn limit is reached with both AIs alive.
type TurnLimitPolicy string

const (
	// PolicyDefender awards the game to the defender for holding out.
	PolicyDefender TurnLimitPolicy = "defender"
	// PolicyScore awards the game to the side with more material; equal material is a draw.
	PolicyScore TurnLimitPolicy = "score"
	// PolicyDraw declares a draw.
	PolicyDraw TurnLimitPolicy = "draw"
)

// ParseTurnLimitPolicy validates a policy name.
func ParseTurnLimitPolicy(s string) (TurnLimitPolicy, error) {
	switch p := TurnLimitPolicy(s); p {
	case PolicyDefender, PolicyScore, PolicyDraw:
		return p, nil
	case "":
		return PolicyDefender, nil
	}
	return "", core.NewConfigError("game.turn_limit_policy", fmt.Sprintf("unknown policy %q (want defender, score or draw)", s))
}

// Material weights used by the material count.
const (
	MaterialAI    = 9999
	MaterialOther = 3
)

// Material is p's weighted unit count: MaterialAI for the AI and MaterialOther for every other unit.
func Material(b *core.Board, p core.Player) int {
	total := 0
	for _, t := range b.T {
		if !t.Occupied || t.Unit.Player != p {
			continue
		}
		if t.Unit.Type == core.UnitAI {
			total += MaterialAI
		} else {
			total += MaterialOther
		}
	}
	return total
}

// Terminal decides the outcome of a position without logging. A side whose AI is gone
// loses; if both AIs are gone the defender wins. Otherwise the game ends once turnsPlayed
// reaches maxTurns and policy breaks the tie.
func Terminal(b *core.Board, turnsPlayed, maxTurns int, policy TurnLimitPolicy) Outcome {
	attackerAI := b.HasAI(core.Attacker)
	defenderAI := b.HasAI(core.Defender)
	switch {
	case !attackerAI:
		return OutcomeDefenderWins
	case !defenderAI:
		return OutcomeAttackerWins
	case maxTurns > 0 && turnsPlayed >= maxTurns:
		return turnLimitOutcome(b, policy)
	}
	return OutcomeNone
}

func turnLimitOutcome(b *core.Board, policy TurnLimitPolicy) Outcome {
	switch policy {
	case PolicyDraw:
		return OutcomeDraw
	case PolicyScore:
		a, d := Material(b, core.Attacker), Material(b, core.Defender)
		switch {
		case a > d:
			return OutcomeAttackerWins
		case d > a:
			return OutcomeDefenderWins
		}
		return OutcomeDraw
	}
	return OutcomeDefenderWins
}

// WinConditionChecker handles game over detection and winner determination
type WinConditionChecker struct {
	logger   zerolog.Logger
	maxTurns int
	policy   TurnLimitPolicy
}

// NewWinConditionChecker creates a new win condition checker
func NewWinConditionChecker(logger zerolog.Logger, maxTurns int, policy TurnLimitPolicy) *WinConditionChecker {
	if policy == "" {
		policy = PolicyDefender
	}
	return &WinConditionChecker{
		logger:   logger.With().Str("component", "WinConditionChecker").Logger(),
		maxTurns: maxTurns,
		policy:   policy,
	}
}

func (wc *WinConditionChecker) MaxTurns() int           { return wc.maxTurns }
func (wc *WinConditionChecker) Policy() TurnLimitPolicy { return wc.policy }

// CheckGameOver determines whether the game has ended after turnsPlayed completed turns.
func (wc *WinConditionChecker) CheckGameOver(b *core.Board, turnsPlayed int) Outcome {
	wc.logger.Debug().Int("turns_played", turnsPlayed).Msg("Checking game over conditions")

	outcome := Terminal(b, turnsPlayed, wc.maxTurns, wc.policy)
	if !outcome.IsOver() {
		return outcome
	}

	evt := wc.logger.Info().
		Str("outcome", outcome.String()).
		Int("turns_played", turnsPlayed).
		Bool("attacker_ai_alive", b.HasAI(core.Attacker)).
		Bool("defender_ai_alive", b.HasAI(core.Defender))
	if wc.maxTurns > 0 && turnsPlayed >= wc.maxTurns {
		evt = evt.Str("turn_limit_policy", string(wc.policy))
	}
	evt.Msg("Game over")
	return outcome
}
