package game

import (
	"fmt"
	"strings"

	"github.com/mitchelldurbincs/AIWargame/internal/common"
	"github.com/mitchelldurbincs/AIWargame/internal/game/core"
)

// This file contains the console board rendering.

const (
	cellWidth   = 4
	emptySymbol = "."
)

// Board returns a string representation of the current position, with ANSI colors when
// color is true.
func (e *Engine) Board(color bool) string {
	return RenderState(e.gs, color)
}

// RenderState renders the turn header followed by the board.
func RenderState(gs *GameState, color bool) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Next player: %s\n", gs.CurrentPlayer)
	fmt.Fprintf(&sb, "Turns played: %d/%d\n\n", gs.TurnsPlayed, gs.MaxTurns)
	sb.WriteString(RenderBoard(gs.Board, color))
	return sb.String()
}

// RenderBoard draws the grid with row letters and hexadecimal column headers, e.g.
//
//	     0   1   2
//	A: dA9 dT9   .
func RenderBoard(b *core.Board, color bool) string {
	var sb strings.Builder
	sb.Grow((b.Cols*cellWidth + 4) * (b.Rows + 1))

	sb.WriteString("  ")
	for col := 0; col < b.Cols; col++ {
		label := core.NewCoord(0, col).String()[1:]
		sb.WriteString(pad(label))
	}
	sb.WriteString("\n")

	for row := 0; row < b.Rows; row++ {
		sb.WriteString(core.NewCoord(row, 0).String()[:1])
		sb.WriteString(":")
		for col := 0; col < b.Cols; col++ {
			u, ok := b.Get(core.NewCoord(row, col))
			switch {
			case !ok:
				writeCell(&sb, emptySymbol, common.SideNeutral, color)
			default:
				writeCell(&sb, u.String(), int(u.Player), color)
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func writeCell(sb *strings.Builder, symbol string, side int, color bool) {
	cell := pad(symbol)
	if color {
		cell = common.Colorize(cell, side)
	}
	sb.WriteString(cell)
}

func pad(s string) string {
	if len(s) >= cellWidth {
		return s
	}
	return strings.Repeat(" ", cellWidth-len(s)) + s
}
