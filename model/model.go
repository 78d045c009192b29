package model

import (
	"errors"
	"math"
)

// Symbol is the content of one grid slot. Tile symbols are 1..len(alphabet),
// the remaining values are sentinels.
type Symbol uint8

const (
	Empty Symbol = 0
	// Marked flags a cell scheduled for removal; it only exists while a tap
	// pipeline is running.
	Marked Symbol = math.MaxUint8
	// Absent is what queries return for coordinates outside the grid. It is
	// never stored.
	Absent Symbol = math.MaxUint8 - 1

	maxAlphabet = int(Absent) - 1
)

const MarkedGlyph = "✗"

var DefaultAlphabet = []string{"♠", "♥", "♦"}

const (
	DefaultCols     = 6
	DefaultRows     = 10
	DefaultTileSize = 90
)

var (
	ErrInvalidConfig = errors.New("invalid grid configuration")
	ErrBadBoard      = errors.New("malformed board")
)

// IsTile reports whether s is a real tile symbol.
func (s Symbol) IsTile() bool {
	return s != Empty && s != Marked && s != Absent
}

// neighbour order used by Neighbors
const (
	TOP = iota
	RIGHT
	BOTTOM
	LEFT
)

type Point struct {
	Col int `json:"col"`
	Row int `json:"row"`
}

type Options struct {
	Cols, Rows int
	TileSize   int
	Alphabet   []string
}

// Grid is the elimination board. Matrix is column-major: Matrix[col][row],
// with (0,0) at the top-left.
type Grid struct {
	Cols, Rows int
	TileSize   int
	Alphabet   []string
	Matrix     [][]Symbol
	State      TapState

	runs   int
	layout Layout
}
