package game

import (
	"fmt"

	"github.com/mitchelldurbincs/AIWargame/internal/common"
	"github.com/mitchelldurbincs/AIWargame/internal/game/core"
	"github.com/mitchelldurbincs/AIWargame/internal/game/events"
	"github.com/mitchelldurbincs/AIWargame/internal/game/rules"
	"github.com/rs/zerolog"
)

const (
	MinBoardDim     = 4
	MaxBoardDim     = 16
	DefaultBoardDim = 5
	DefaultMaxTurns = 100
)

// Placement puts one unit on the starting board.
type Placement struct {
	Coord core.Coord
	Unit  core.Unit
}

// GameConfig holds everything needed to start a game. BoardDim and MaxTurns are required;
// the fields marked below fall back to defaults. Anything invalid is reported as a
// *core.ConfigError.
type GameConfig struct {
	BoardDim        int
	MaxTurns        int
	TurnLimitPolicy rules.TurnLimitPolicy
	Tables          *core.UnitTables // nil means core.DefaultUnitTables
	Roster          []Placement      // nil means DefaultRoster(BoardDim)
	GameID          string           // empty means a new UUID
	Logger          zerolog.Logger
	EventBus        *events.EventBus // nil means a private bus
}

// DefaultGameConfig returns the standard 5x5, 100-turn game.
func DefaultGameConfig() GameConfig {
	return GameConfig{
		BoardDim:        DefaultBoardDim,
		MaxTurns:        DefaultMaxTurns,
		TurnLimitPolicy: rules.PolicyDefender,
	}
}

// DefaultRoster places both armies in opposite corners of a dim x dim board: the
// defender top-left, the attacker bottom-right.
func DefaultRoster(dim int) []Placement {
	md := dim - 1
	p := func(row, col int, player core.Player, t core.UnitType) Placement {
		return Placement{Coord: core.NewCoord(row, col), Unit: core.NewUnit(player, t)}
	}
	return []Placement{
		p(0, 0, core.Defender, core.UnitAI),
		p(1, 0, core.Defender, core.UnitTech),
		p(0, 1, core.Defender, core.UnitTech),
		p(2, 0, core.Defender, core.UnitFirewall),
		p(0, 2, core.Defender, core.UnitFirewall),
		p(1, 1, core.Defender, core.UnitProgram),
		p(md, md, core.Attacker, core.UnitAI),
		p(md-1, md, core.Attacker, core.UnitVirus),
		p(md, md-1, core.Attacker, core.UnitVirus),
		p(md-2, md, core.Attacker, core.UnitProgram),
		p(md, md-2, core.Attacker, core.UnitProgram),
		p(md-1, md-1, core.Attacker, core.UnitFirewall),
	}
}

// Validate checks the configuration without applying defaults.
func (c GameConfig) Validate() error {
	if !common.InRange(c.BoardDim, MinBoardDim, MaxBoardDim) {
		return core.NewConfigError("game.board_dim", fmt.Sprintf("must be between %d and %d, got %d", MinBoardDim, MaxBoardDim, c.BoardDim))
	}
	if c.MaxTurns < 1 {
		return core.NewConfigError("game.max_turns", fmt.Sprintf("must be positive, got %d", c.MaxTurns))
	}
	if _, err := rules.ParseTurnLimitPolicy(string(c.TurnLimitPolicy)); err != nil {
		return err
	}
	if c.Tables != nil {
		if err := c.Tables.Validate(); err != nil {
			return err
		}
	}
	if c.Roster != nil {
		return validateRoster(c.Roster, c.BoardDim)
	}
	return nil
}

func validateRoster(roster []Placement, dim int) error {
	seen := make(map[core.Coord]bool, len(roster))
	var ais [2]int
	for _, pl := range roster {
		if !common.IsValidCell(pl.Coord.Row, pl.Coord.Col, dim, dim) {
			return core.NewConfigError("game.roster", fmt.Sprintf("placement %s is off the %dx%d board", pl.Coord, dim, dim))
		}
		if seen[pl.Coord] {
			return core.NewConfigError("game.roster", fmt.Sprintf("cell %s is occupied twice", pl.Coord))
		}
		seen[pl.Coord] = true
		if !common.InRange(pl.Unit.Health, 1, core.MaxHealth) {
			return core.NewConfigError("game.roster", fmt.Sprintf("unit at %s has health %d", pl.Coord, pl.Unit.Health))
		}
		if pl.Unit.Player != core.Attacker && pl.Unit.Player != core.Defender {
			return core.NewConfigError("game.roster", fmt.Sprintf("unit at %s has unknown owner", pl.Coord))
		}
		if pl.Unit.Type < 0 || int(pl.Unit.Type) >= core.NumUnitTypes {
			return core.NewConfigError("game.roster", fmt.Sprintf("unit at %s has unknown type", pl.Coord))
		}
		if pl.Unit.Type == core.UnitAI {
			ais[pl.Unit.Player]++
		}
	}
	for p, n := range ais {
		if n != 1 {
			return core.NewConfigError("game.roster", fmt.Sprintf("%s must have exactly one AI, has %d", core.Player(p), n))
		}
	}
	return nil
}

// BuildBoard creates the starting board for a validated configuration.
func (c GameConfig) BuildBoard() *core.Board {
	board := core.NewBoard(c.BoardDim, c.BoardDim, c.Tables)
	roster := c.Roster
	if roster == nil {
		roster = DefaultRoster(c.BoardDim)
	}
	for _, pl := range roster {
		board.Set(pl.Coord, pl.Unit)
	}
	return board
}
