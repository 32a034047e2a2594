package core

// Tile represents a single cell on the map.
// Occupied == false means the cell is empty and Unit is meaningless.
type Tile struct {
	Unit     Unit
	Occupied bool
}

// Board is a fixed-size grid with at most one unit per tile.
// Tables is shared read-only between a board and its clones.
type Board struct {
	Rows, Cols int
	T          []Tile // length = Rows*Cols (row-major)
	Tables     *UnitTables
}

func NewBoard(rows, cols int, tables *UnitTables) *Board {
	if tables == nil {
		tables = DefaultUnitTables()
	}
	return &Board{Rows: rows, Cols: cols, T: make([]Tile, rows*cols), Tables: tables}
}

func (b *Board) Idx(c Coord) int { return c.Row*b.Cols + c.Col }

// InBounds checks if coordinates are within board boundaries
func (b *Board) InBounds(c Coord) bool {
	return c.IsValid(b.Rows, b.Cols)
}

// Get returns the unit at c, or false when c is empty or out of bounds.
func (b *Board) Get(c Coord) (Unit, bool) {
	if !b.InBounds(c) {
		return Unit{}, false
	}
	t := b.T[b.Idx(c)]
	return t.Unit, t.Occupied
}

// IsEmpty reports whether an in-bounds cell holds no unit.
func (b *Board) IsEmpty(c Coord) bool {
	return b.InBounds(c) && !b.T[b.Idx(c)].Occupied
}

// Set places u at c. Placing a dead unit clears the cell.
func (b *Board) Set(c Coord, u Unit) {
	if !b.InBounds(c) {
		return
	}
	if !u.IsAlive() {
		b.Clear(c)
		return
	}
	b.T[b.Idx(c)] = Tile{Unit: u, Occupied: true}
}

func (b *Board) Clear(c Coord) {
	if b.InBounds(c) {
		b.T[b.Idx(c)] = Tile{}
	}
}

// Clone returns an independent copy of the grid.
func (b *Board) Clone() *Board {
	nb := &Board{Rows: b.Rows, Cols: b.Cols, T: make([]Tile, len(b.T)), Tables: b.Tables}
	copy(nb.T, b.T)
	return nb
}

// Equal compares dimensions and contents.
func (b *Board) Equal(other *Board) bool {
	if other == nil || b.Rows != other.Rows || b.Cols != other.Cols || len(b.T) != len(other.T) {
		return false
	}
	for i := range b.T {
		if b.T[i] != other.T[i] {
			return false
		}
	}
	return true
}

// PlacedUnit pairs a unit with its position.
type PlacedUnit struct {
	Coord Coord
	Unit  Unit
}

// Units returns the units owned by p in row-major order.
func (b *Board) Units(p Player) []PlacedUnit {
	var out []PlacedUnit
	for i, t := range b.T {
		if t.Occupied && t.Unit.Player == p {
			out = append(out, PlacedUnit{Coord: FromIndex(i, b.Cols), Unit: t.Unit})
		}
	}
	return out
}

// HasAI reports whether p still has its AI on the board.
func (b *Board) HasAI(p Player) bool {
	_, ok := b.FindAI(p)
	return ok
}

// FindAI locates p's AI unit.
func (b *Board) FindAI(p Player) (PlacedUnit, bool) {
	for i, t := range b.T {
		if t.Occupied && t.Unit.Player == p && t.Unit.Type == UnitAI {
			return PlacedUnit{Coord: FromIndex(i, b.Cols), Unit: t.Unit}, true
		}
	}
	return PlacedUnit{}, false
}

// IsEngaged reports whether the unit at c has an orthogonally adjacent enemy.
func (b *Board) IsEngaged(c Coord) bool {
	u, ok := b.Get(c)
	if !ok {
		return false
	}
	for _, n := range c.Adjacent() {
		if other, ok := b.Get(n); ok && other.Player != u.Player {
			return true
		}
	}
	return false
}
