package model

import (
	"fmt"
	"math/rand"
)

func DefaultOptions() Options {
	return Options{
		Cols:     DefaultCols,
		Rows:     DefaultRows,
		TileSize: DefaultTileSize,
		Alphabet: append([]string(nil), DefaultAlphabet...),
	}
}

func (o Options) Validate() error {
	if o.Cols <= 0 {
		return fmt.Errorf("%w: columns must be positive, got %d", ErrInvalidConfig, o.Cols)
	}
	if o.Rows <= 0 {
		return fmt.Errorf("%w: rows must be positive, got %d", ErrInvalidConfig, o.Rows)
	}
	if o.TileSize <= 0 {
		return fmt.Errorf("%w: tile size must be positive, got %d", ErrInvalidConfig, o.TileSize)
	}
	if len(o.Alphabet) == 0 {
		return fmt.Errorf("%w: alphabet is empty", ErrInvalidConfig)
	}
	if len(o.Alphabet) > maxAlphabet {
		return fmt.Errorf("%w: alphabet has %d symbols, at most %d allowed", ErrInvalidConfig, len(o.Alphabet), maxAlphabet)
	}
	seen := make(map[string]struct{}, len(o.Alphabet))
	for _, glyph := range o.Alphabet {
		if glyph == "" || glyph == "." || glyph == MarkedGlyph {
			return fmt.Errorf("%w: glyph %q is reserved", ErrInvalidConfig, glyph)
		}
		if _, dup := seen[glyph]; dup {
			return fmt.Errorf("%w: glyph %q listed twice", ErrInvalidConfig, glyph)
		}
		seen[glyph] = struct{}{}
	}
	return nil
}

// NewGrid builds a grid with every cell drawn at random from the alphabet.
func NewGrid(opts Options, rnd *rand.Rand) (*Grid, error) {
	g, err := newEmptyGrid(opts)
	if err != nil {
		return nil, err
	}
	for c := 0; c < g.Cols; c++ {
		for r := 0; r < g.Rows; r++ {
			g.Matrix[c][r] = Symbol(rnd.Intn(len(g.Alphabet)) + 1)
		}
	}
	g.update()
	return g, nil
}

// NewGridFromRows builds a grid from a row-major symbol layout, as read from a
// board file. Every row must have the same width.
func NewGridFromRows(opts Options, rows [][]Symbol) (*Grid, error) {
	if len(rows) > 0 {
		opts.Rows = len(rows)
		opts.Cols = len(rows[0])
	}
	g, err := newEmptyGrid(opts)
	if err != nil {
		return nil, err
	}
	for r, line := range rows {
		if len(line) != g.Cols {
			return nil, fmt.Errorf("%w: row %d has %d cells, expected %d", ErrBadBoard, r, len(line), g.Cols)
		}
		for c, s := range line {
			if s != Empty && (s == Marked || s == Absent || int(s) > len(g.Alphabet)) {
				return nil, fmt.Errorf("%w: row %d col %d holds invalid symbol %d", ErrBadBoard, r, c, s)
			}
			g.Matrix[c][r] = s
		}
	}
	g.update()
	return g, nil
}

func newEmptyGrid(opts Options) (*Grid, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	matrix := make([][]Symbol, 0, opts.Cols)
	for c := 0; c < opts.Cols; c++ {
		matrix = append(matrix, make([]Symbol, opts.Rows))
	}
	return &Grid{
		Cols:     opts.Cols,
		Rows:     opts.Rows,
		TileSize: opts.TileSize,
		Alphabet: append([]string(nil), opts.Alphabet...),
		Matrix:   matrix,
		State:    TAP_IDLE,
	}, nil
}

// Inside reports whether (col, row) addresses a slot of the grid.
func (g *Grid) Inside(col, row int) bool {
	return col >= 0 && col < g.Cols && row >= 0 && row < g.Rows
}

// CellAt returns the symbol at (col, row) or Absent outside the grid.
func (g *Grid) CellAt(col, row int) Symbol {
	if !g.Inside(col, row) {
		return Absent
	}
	return g.Matrix[col][row]
}

// Neighbors returns the top, right, bottom and left symbols of (col, row).
func (g *Grid) Neighbors(col, row int) [4]Symbol {
	var n [4]Symbol
	n[TOP] = g.CellAt(col, row-1)
	n[RIGHT] = g.CellAt(col+1, row)
	n[BOTTOM] = g.CellAt(col, row+1)
	n[LEFT] = g.CellAt(col-1, row)
	return n
}

func hasNeighbor(n [4]Symbol, s Symbol) bool {
	for _, v := range n {
		if v == s {
			return true
		}
	}
	return false
}

// Glyph returns the text drawn for s.
func (g *Grid) Glyph(s Symbol) string {
	switch {
	case s == Marked:
		return MarkedGlyph
	case s == Empty || s == Absent:
		return ""
	case int(s) <= len(g.Alphabet):
		return g.Alphabet[s-1]
	default:
		return "?"
	}
}

// SymbolOf maps a glyph back to its symbol; ok is false for unknown glyphs.
func (g *Grid) SymbolOf(glyph string) (Symbol, bool) {
	return symbolOf(g.Alphabet, glyph)
}

func symbolOf(alphabet []string, glyph string) (Symbol, bool) {
	for i, a := range alphabet {
		if a == glyph {
			return Symbol(i + 1), true
		}
	}
	return Empty, false
}

// Snapshot is an immutable copy of the grid content, column-major.
type Snapshot [][]Symbol

func (g *Grid) Snapshot() Snapshot {
	s := make(Snapshot, g.Cols)
	for c := range g.Matrix {
		s[c] = append([]Symbol(nil), g.Matrix[c]...)
	}
	return s
}

// Equal is true when both snapshots hold the same symbol in every slot.
func (s Snapshot) Equal(o Snapshot) bool {
	if len(s) != len(o) {
		return false
	}
	for c := range s {
		if len(s[c]) != len(o[c]) {
			return false
		}
		for r := range s[c] {
			if s[c][r] != o[c][r] {
				return false
			}
		}
	}
	return true
}

// Locate translates a pixel position into a cell using the tile size.
func (g *Grid) Locate(x, y int) (col, row int, ok bool) {
	if x < 0 || y < 0 {
		return -1, -1, false
	}
	col, row = x/g.TileSize, y/g.TileSize
	return col, row, g.Inside(col, row)
}

// PositionOf returns the pixel position of the tile in (col, row).
func (g *Grid) PositionOf(col, row int) (x, y int) {
	return col * g.TileSize, row * g.TileSize
}

// Count returns the number of non-empty slots.
func (g *Grid) Count() int {
	n := 0
	for c := range g.Matrix {
		for _, s := range g.Matrix[c] {
			if s != Empty {
				n++
			}
		}
	}
	return n
}
