package core

import (
	"fmt"
	"strings"

	"github.com/mitchelldurbincs/AIWargame/internal/common"
)

const (
	rowLetters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	colDigits  = "0123456789abcdef"
)

// Coord represents a cell position on the board
type Coord struct {
	Row, Col int
}

// NewCoord creates a new coordinate with the given row and column
func NewCoord(row, col int) Coord {
	return Coord{Row: row, Col: col}
}

// FromIndex creates a coordinate from a board array index using row-major ordering
func FromIndex(idx, cols int) Coord {
	return Coord{Row: idx / cols, Col: idx % cols}
}

// IsValid checks if the coordinate is within the given bounds
func (c Coord) IsValid(rows, cols int) bool {
	return c.Row >= 0 && c.Row < rows && c.Col >= 0 && c.Col < cols
}

// ToIndex converts the coordinate to a board array index using row-major ordering
func (c Coord) ToIndex(cols int) int {
	return c.Row*cols + c.Col
}

// IsAdjacentTo checks if this coordinate is orthogonally adjacent to another
func (c Coord) IsAdjacentTo(other Coord) bool {
	dr := common.Abs(c.Row - other.Row)
	dc := common.Abs(c.Col - other.Col)
	return (dr == 1 && dc == 0) || (dr == 0 && dc == 1)
}

// IsDiagonalTo reports whether other differs from c in both row and column.
func (c Coord) IsDiagonalTo(other Coord) bool {
	return c.Row != other.Row && c.Col != other.Col
}

// Direction is an orthogonal step. The declaration order is the generation order.
type Direction int

const (
	Up Direction = iota
	Left
	Down
	Right
)

// Directions lists the orthogonal directions in generation order.
var Directions = [4]Direction{Up, Left, Down, Right}

// DirectionVectors provides coordinate offsets for each direction
var DirectionVectors = [4]Coord{
	Up:    {Row: -1, Col: 0},
	Left:  {Row: 0, Col: -1},
	Down:  {Row: 1, Col: 0},
	Right: {Row: 0, Col: 1},
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Left:
		return "left"
	case Down:
		return "down"
	case Right:
		return "right"
	}
	return "none"
}

// Move returns a new coordinate moved one step in the given direction
func (c Coord) Move(d Direction) Coord {
	v := DirectionVectors[d]
	return Coord{Row: c.Row + v.Row, Col: c.Col + v.Col}
}

// DirectionTo returns the direction from this coordinate to an adjacent coordinate.
// Returns -1 if the coordinates are not adjacent.
func (c Coord) DirectionTo(other Coord) Direction {
	if !c.IsAdjacentTo(other) {
		return -1
	}
	switch {
	case other.Row < c.Row:
		return Up
	case other.Col < c.Col:
		return Left
	case other.Row > c.Row:
		return Down
	default:
		return Right
	}
}

// Adjacent returns the four orthogonal neighbours in generation order, unchecked.
func (c Coord) Adjacent() [4]Coord {
	return [4]Coord{c.Move(Up), c.Move(Left), c.Move(Down), c.Move(Right)}
}

// Surrounding returns the 8 cells around c (orthogonal and diagonal), row-major, unchecked.
func (c Coord) Surrounding() []Coord {
	out := make([]Coord, 0, 8)
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			out = append(out, Coord{Row: c.Row + dr, Col: c.Col + dc})
		}
	}
	return out
}

// String renders the coordinate as row letter and column digit, e.g. "D2".
func (c Coord) String() string {
	r, col := "?", "?"
	if c.Row >= 0 && c.Row < len(rowLetters) {
		r = rowLetters[c.Row : c.Row+1]
	}
	if c.Col >= 0 && c.Col < len(colDigits) {
		col = colDigits[c.Col : c.Col+1]
	}
	return r + col
}

var coordSeparators = strings.NewReplacer(" ", "", ",", "", ".", "", ":", "", ";", "", "-", "", "_", "")

// ParseCoord parses "D2"-style notation.
func ParseCoord(s string) (Coord, error) {
	s = coordSeparators.Replace(strings.TrimSpace(s))
	if len(s) != 2 {
		return Coord{}, fmt.Errorf("invalid coordinate %q", s)
	}
	return parseCoordPair(s[0], s[1])
}

// ParseCoordPair parses "A3 B3"-style notation into a source and destination.
func ParseCoordPair(s string) (Coord, Coord, error) {
	s = coordSeparators.Replace(strings.TrimSpace(s))
	if len(s) != 4 {
		return Coord{}, Coord{}, fmt.Errorf("invalid coordinate pair %q", s)
	}
	src, err := parseCoordPair(s[0], s[1])
	if err != nil {
		return Coord{}, Coord{}, err
	}
	dst, err := parseCoordPair(s[2], s[3])
	if err != nil {
		return Coord{}, Coord{}, err
	}
	return src, dst, nil
}

func parseCoordPair(r, c byte) (Coord, error) {
	row := strings.IndexByte(rowLetters, upper(r))
	col := strings.IndexByte(colDigits, lower(c))
	if row < 0 || col < 0 {
		return Coord{}, fmt.Errorf("invalid coordinate %q", string([]byte{r, c}))
	}
	return Coord{Row: row, Col: col}, nil
}

func upper(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - 'a' + 'A'
	}
	return b
}

func lower(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b - 'A' + 'a'
	}
	return b
}
