package trace

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mitchelldurbincs/AIWargame/internal/game"
	"github.com/mitchelldurbincs/AIWargame/internal/game/core"
	"github.com/mitchelldurbincs/AIWargame/internal/game/rules"
)

// ErrInvalidSnapshot is returned when a snapshot cannot be turned back into a state.
var ErrInvalidSnapshot = errors.New("invalid snapshot")

const emptyCell = "."

// Snapshot is the serialized form of a GameState. Board rows use the console notation:
// cells separated by single spaces, "." for an empty cell, otherwise e.g. "dA9".
type Snapshot struct {
	Rows            int           `json:"rows"`
	Cols            int           `json:"cols"`
	Board           []string      `json:"board"`
	CurrentPlayer   string        `json:"current_player"`
	TurnsPlayed     int           `json:"turns_played"`
	MaxTurns        int           `json:"max_turns"`
	TurnLimitPolicy string        `json:"turn_limit_policy"`
	History         []core.Action `json:"history,omitempty"`
}

// SnapshotOf captures gs.
func SnapshotOf(gs *game.GameState) Snapshot {
	return Snapshot{
		Rows:            gs.Board.Rows,
		Cols:            gs.Board.Cols,
		Board:           EncodeBoard(gs.Board),
		CurrentPlayer:   gs.CurrentPlayer.String(),
		TurnsPlayed:     gs.TurnsPlayed,
		MaxTurns:        gs.MaxTurns,
		TurnLimitPolicy: string(gs.TurnLimitPolicy),
		History:         append([]core.Action(nil), gs.History...),
	}
}

// Restore rebuilds the state. A nil tables argument means the default unit tables.
func (s Snapshot) Restore(tables *core.UnitTables) (*game.GameState, error) {
	board, err := DecodeBoard(s.Board, tables)
	if err != nil {
		return nil, err
	}
	if board.Rows != s.Rows || board.Cols != s.Cols {
		return nil, fmt.Errorf("%w: board is %dx%d, header says %dx%d", ErrInvalidSnapshot, board.Rows, board.Cols, s.Rows, s.Cols)
	}
	player, err := core.ParsePlayer(s.CurrentPlayer)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	policy, err := rules.ParseTurnLimitPolicy(s.TurnLimitPolicy)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	if s.TurnsPlayed < 0 || s.MaxTurns < 0 {
		return nil, fmt.Errorf("%w: negative turn counters", ErrInvalidSnapshot)
	}

	gs := game.NewGameState(board, s.MaxTurns, policy)
	gs.CurrentPlayer = player
	gs.TurnsPlayed = s.TurnsPlayed
	gs.History = append([]core.Action(nil), s.History...)
	return gs, nil
}

// EncodeBoard renders each row of b in snapshot notation.
func EncodeBoard(b *core.Board) []string {
	rows := make([]string, b.Rows)
	cells := make([]string, b.Cols)
	for r := 0; r < b.Rows; r++ {
		for c := 0; c < b.Cols; c++ {
			if u, ok := b.Get(core.NewCoord(r, c)); ok {
				cells[c] = u.String()
			} else {
				cells[c] = emptyCell
			}
		}
		rows[r] = strings.Join(cells, " ")
	}
	return rows
}

// DecodeBoard is the inverse of EncodeBoard.
func DecodeBoard(rows []string, tables *core.UnitTables) (*core.Board, error) {
	if len(rows) == 0 || len(rows) > game.MaxBoardDim {
		return nil, fmt.Errorf("%w: %d rows", ErrInvalidSnapshot, len(rows))
	}
	cols := len(strings.Fields(rows[0]))
	if cols == 0 || cols > game.MaxBoardDim {
		return nil, fmt.Errorf("%w: %d columns", ErrInvalidSnapshot, cols)
	}

	board := core.NewBoard(len(rows), cols, tables)
	for r, line := range rows {
		cells := strings.Fields(line)
		if len(cells) != cols {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrInvalidSnapshot, r, len(cells), cols)
		}
		for c, cell := range cells {
			if cell == emptyCell {
				continue
			}
			u, err := core.ParseUnit(cell)
			if err != nil {
				return nil, fmt.Errorf("%w: %s: %v", ErrInvalidSnapshot, core.NewCoord(r, c), err)
			}
			board.Set(core.NewCoord(r, c), u)
		}
	}
	return board, nil
}
