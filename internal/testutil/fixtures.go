package testutil

import (
	"strings"
	"testing"

	"github.com/mitchelldurbincs/AIWargame/internal/game/core"
)

// BoardFromRows builds a square-or-rectangular board from compact notation, one string
// per row with cells separated by spaces: "." for an empty cell, otherwise a unit such as
// "dA9". Tables default when nil.
func BoardFromRows(t testing.TB, tables *core.UnitTables, rows ...string) *core.Board {
	t.Helper()
	if len(rows) == 0 {
		t.Fatalf("BoardFromRows: no rows")
	}
	cols := len(strings.Fields(rows[0]))
	board := core.NewBoard(len(rows), cols, tables)
	for r, line := range rows {
		cells := strings.Fields(line)
		if len(cells) != cols {
			t.Fatalf("BoardFromRows: row %d has %d cells, want %d", r, len(cells), cols)
		}
		for c, cell := range cells {
			if cell == "." {
				continue
			}
			u, err := core.ParseUnit(cell)
			if err != nil {
				t.Fatalf("BoardFromRows: row %d col %d: %v", r, c, err)
			}
			board.Set(core.NewCoord(r, c), u)
		}
	}
	return board
}

// DefaultStartRows is the standard 5x5 opening position in BoardFromRows notation.
var DefaultStartRows = []string{
	"dA9 dT9 dF9 .   .",
	"dT9 dP9 .   .   .",
	"dF9 .   .   .   aP9",
	".   .   .   aF9 aV9",
	".   .   aP9 aV9 aA9",
}

// DuelRows is a sparse 4x4 position with few legal actions, small enough for exhaustive
// search checks at depth 3.
var DuelRows = []string{
	"dA9 .   .   .",
	".   .   .   .",
	".   .   aV9 .",
	".   .   .   aA9",
}
