package match

import (
	"fmt"
	"strings"

	"github.com/mitchelldurbincs/AIWargame/internal/game"
	"github.com/mitchelldurbincs/AIWargame/internal/game/core"
	"github.com/mitchelldurbincs/AIWargame/internal/search"
	"github.com/rs/zerolog"
)

// GameType says which sides are played by a human at the console.
type GameType string

const (
	GameManual   GameType = "manual"   // human vs human
	GameAttacker GameType = "attacker" // human attacker vs computer defender
	GameDefender GameType = "defender" // computer attacker vs human defender
	GameAuto     GameType = "auto"     // computer vs computer
)

// ParseGameType accepts the four game types, case-insensitively.
func ParseGameType(s string) (GameType, error) {
	switch g := GameType(strings.ToLower(strings.TrimSpace(s))); g {
	case GameManual, GameAttacker, GameDefender, GameAuto:
		return g, nil
	}
	return "", core.NewConfigError("game.game_type", fmt.Sprintf("unknown game type %q (want manual, attacker, defender or auto)", s))
}

// IsHuman reports whether p's moves are read from the console.
func (g GameType) IsHuman(p core.Player) bool {
	switch g {
	case GameManual:
		return true
	case GameAttacker:
		return p == core.Attacker
	case GameDefender:
		return p == core.Defender
	}
	return false
}

// StrategyKind picks how a computer-controlled side chooses its moves.
type StrategyKind string

const (
	StrategySearch StrategyKind = "search"
	StrategyRandom StrategyKind = "random"
)

// ParseStrategyKind validates a strategy name. field names the setting in errors.
func ParseStrategyKind(field, s string) (StrategyKind, error) {
	switch k := StrategyKind(strings.ToLower(strings.TrimSpace(s))); k {
	case StrategySearch, StrategyRandom:
		return k, nil
	case "":
		return StrategySearch, nil
	}
	return "", core.NewConfigError(field, fmt.Sprintf("unknown strategy %q (want search or random)", s))
}

// Options configures a Match.
type Options struct {
	Game             game.GameConfig
	GameType         GameType
	Search           search.Config
	AttackerStrategy StrategyKind
	DefenderStrategy StrategyKind
	// Seed feeds random strategies; zero seeds from the clock.
	Seed uint64
	// TraceDir enables the game transcript when non-empty.
	TraceDir string
	// Color enables ANSI colors in the printed board.
	Color  bool
	Logger zerolog.Logger
}

// DefaultOptions is a computer vs computer game with default search settings.
func DefaultOptions() Options {
	return Options{
		Game:             game.DefaultGameConfig(),
		GameType:         GameAuto,
		Search:           search.DefaultConfig(),
		AttackerStrategy: StrategySearch,
		DefenderStrategy: StrategySearch,
	}
}

// Validate checks everything except the game configuration, which the engine validates.
func (o Options) Validate() error {
	if _, err := ParseGameType(string(o.GameType)); err != nil {
		return err
	}
	if _, err := ParseStrategyKind("search.attacker_strategy", string(o.AttackerStrategy)); err != nil {
		return err
	}
	if _, err := ParseStrategyKind("search.defender_strategy", string(o.DefenderStrategy)); err != nil {
		return err
	}
	return o.Search.Validate()
}

func (o Options) strategyFor(p core.Player) StrategyKind {
	k := o.AttackerStrategy
	if p == core.Defender {
		k = o.DefenderStrategy
	}
	if k == "" {
		return StrategySearch
	}
	return StrategyKind(strings.ToLower(string(k)))
}
