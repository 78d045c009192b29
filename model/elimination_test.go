package model

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTapColumnTopRegion(t *testing.T) {
	g := board(t, `
		A B B B B B
		A B B B B B
		A B B B B B
		B B B B B B
		B B B B B B
		B B B B B B
		B B B B B B
		B B B B B B
		B B B B B B
		B B B B B B
	`)
	res := g.Tap(0, 1)

	assert.True(t, res.Changed())
	assert.Equal(t, TAP_POSITION_REFRESH, res.Last)
	assert.Equal(t, Symbol(1), res.Symbol)
	assert.ElementsMatch(t, []Point{{0, 0}, {0, 1}, {0, 2}}, res.Removed)
	assert.Equal(t, trim(`
		. B B B B B
		. B B B B B
		. B B B B B
		B B B B B B
		B B B B B B
		B B B B B B
		B B B B B B
		B B B B B B
		B B B B B B
		B B B B B B
	`), g.String())
	assert.Equal(t, TAP_IDLE, g.State)
}

func TestTapWithoutMatchingNeighbourIsNoop(t *testing.T) {
	g := board(t, `
		A B C
		B A B
		C B A
	`)
	before := g.Snapshot()
	for c := 0; c < g.Cols; c++ {
		for r := 0; r < g.Rows; r++ {
			res := g.Tap(c, r)
			assert.False(t, res.Changed(), "c:%d r:%d", c, r)
			assert.Equal(t, TAP_SYMBOL_COMPARED, res.Last)
			assert.True(t, before.Equal(g.Snapshot()))
		}
	}
	assert.Equal(t, 0, g.Layout().Runs)
}

func TestTapOutsideOrOnEmptyIsNoop(t *testing.T) {
	g := board(t, `
		. A
		. A
	`)
	before := g.Snapshot()
	for _, p := range []Point{{0, 0}, {0, 1}, {-1, 0}, {2, 1}, {1, 2}} {
		res := g.Tap(p.Col, p.Row)
		assert.False(t, res.Changed(), "%v", p)
	}
	assert.True(t, before.Equal(g.Snapshot()))
}

func TestTapIgnoredWhileBusy(t *testing.T) {
	g := board(t, `
		A A
		B B
	`)
	g.State = TAP_SETTLING
	res := g.Tap(0, 0)
	assert.False(t, res.Changed())
	assert.Equal(t, TAP_IDLE, res.Last)
	assert.Equal(t, TAP_SETTLING, g.State)
	assert.Equal(t, trim("A A\nB B"), g.String())
}

func TestTapRemovesWholeConnectedRegion(t *testing.T) {
	g := board(t, `
		A A A B
		B B A B
		A A A B
		A B B B
	`)
	res := g.Tap(0, 0)

	assert.Len(t, res.Removed, 8)
	assert.Equal(t, trim(`
		. . . B
		. . . B
		. B . B
		B B B B
	`), g.String())
}

func TestTapFromAnyCellOfRegion(t *testing.T) {
	text := `
		C A A B
		C C A B
		B A A C
	`
	var first string
	for _, p := range []Point{{1, 0}, {2, 0}, {2, 1}, {1, 2}, {2, 2}} {
		g := board(t, text)
		res := g.Tap(p.Col, p.Row)
		assert.Len(t, res.Removed, 5, "%v", p)
		if first == "" {
			first = g.String()
		}
		assert.Equal(t, first, g.String(), "%v", p)
	}
}

func TestDropKeepsOrder(t *testing.T) {
	g := board(t, `
		A .
		. B
		C .
		. .
	`)
	passes := g.Drop()
	assert.Greater(t, passes, 1)
	assert.Equal(t, trim(`
		. .
		. .
		A .
		C B
	`), g.String())

	assert.Equal(t, 1, g.Drop())
}

func TestShiftClosesInteriorColumn(t *testing.T) {
	g := board(t, `
		B A B
		B A C
	`)
	g.Tap(1, 0)
	assert.Equal(t, trim(`
		B B .
		B C .
	`), g.String())
}

func TestShiftFirstColumn(t *testing.T) {
	g := board(t, `
		A B C
		A B C
	`)
	g.Tap(0, 0)
	assert.Equal(t, trim(`
		B C .
		B C .
	`), g.String())
}

func TestShiftLastColumnStaysEmpty(t *testing.T) {
	g := board(t, `
		A B C
		A B C
	`)
	res := g.Tap(2, 1)
	assert.Len(t, res.Removed, 2)
	assert.Equal(t, trim(`
		A B .
		A B .
	`), g.String())
}

func TestShiftSeveralEmptyColumns(t *testing.T) {
	g := board(t, `
		A A B
		A A B
	`)
	g.Tap(1, 1)
	assert.Equal(t, trim(`
		B . .
		B . .
	`), g.String())
	assert.Equal(t, 1, g.Shift())
}

func TestSettledGridIsFixedPoint(t *testing.T) {
	g := board(t, `
		A B C A
		A C C B
		B B A A
	`)
	g.Tap(1, 1)
	settled := g.Snapshot()

	assert.Equal(t, 1, g.ExpandMark(1))
	assert.Equal(t, 1, g.Drop())
	assert.Equal(t, 1, g.Shift())
	assert.True(t, settled.Equal(g.Snapshot()))
}

func TestLayoutRefreshedAfterTap(t *testing.T) {
	g := board(t, `
		A B
		A B
		B B
	`)
	assert.Len(t, g.Layout().Tiles, 6)

	g.Tap(0, 0)
	l := g.Layout()
	assert.Equal(t, 1, l.Runs)
	assert.Equal(t, 2, l.Cols)
	assert.Equal(t, 3, l.Rows)
	require.Len(t, l.Tiles, 4)
	for _, tile := range l.Tiles {
		assert.Equal(t, tile.Col*g.TileSize, tile.X)
		assert.Equal(t, tile.Row*g.TileSize, tile.Y)
		assert.Equal(t, g.CellAt(tile.Col, tile.Row), tile.Symbol)
		assert.Equal(t, "B", tile.Glyph)
	}
}

// reference outcome computed independently of the fixed-point passes
func expectedAfterTap(g *Grid, col, row int) (removed []Point, after Snapshot) {
	s := g.CellAt(col, row)
	after = g.Snapshot()
	if !s.IsTile() || !hasNeighbor(g.Neighbors(col, row), s) {
		return nil, after
	}
	seen := map[Point]bool{{col, row}: true}
	queue := []Point{{col, row}}
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		removed = append(removed, p)
		for _, d := range []Point{{0, -1}, {1, 0}, {0, 1}, {-1, 0}} {
			n := Point{p.Col + d.Col, p.Row + d.Row}
			if !seen[n] && g.CellAt(n.Col, n.Row) == s {
				seen[n] = true
				queue = append(queue, n)
			}
		}
	}
	for _, p := range removed {
		after[p.Col][p.Row] = Empty
	}
	columns := make(Snapshot, 0, g.Cols)
	for c := range after {
		tiles := make([]Symbol, 0, g.Rows)
		for _, v := range after[c] {
			if v != Empty {
				tiles = append(tiles, v)
			}
		}
		if len(tiles) == 0 {
			continue
		}
		column := make([]Symbol, g.Rows-len(tiles), g.Rows)
		columns = append(columns, append(column, tiles...))
	}
	for len(columns) < g.Cols {
		columns = append(columns, make([]Symbol, g.Rows))
	}
	return removed, columns
}

func sortPoints(ps []Point) {
	sort.Slice(ps, func(i, j int) bool {
		if ps[i].Col != ps[j].Col {
			return ps[i].Col < ps[j].Col
		}
		return ps[i].Row < ps[j].Row
	})
}

func TestTapMatchesReference(t *testing.T) {
	for seed := int64(1); seed <= 40; seed++ {
		rnd := rand.New(rand.NewSource(seed))
		opts := Options{
			Cols:     1 + rnd.Intn(8),
			Rows:     1 + rnd.Intn(12),
			TileSize: 10,
			Alphabet: abc[:1+rnd.Intn(3)],
		}
		g, err := NewGrid(opts, rnd)
		require.NoError(t, err)

		for tap := 0; tap < 25; tap++ {
			col, row := rnd.Intn(g.Cols), rnd.Intn(g.Rows)
			wantRemoved, wantAfter := expectedAfterTap(g, col, row)

			res := g.Tap(col, row)

			sortPoints(wantRemoved)
			sortPoints(res.Removed)
			if len(wantRemoved) == 0 {
				assert.Empty(t, res.Removed, "seed:%d tap:%d", seed, tap)
			} else {
				assert.Equal(t, wantRemoved, res.Removed, "seed:%d tap:%d", seed, tap)
			}
			require.True(t, wantAfter.Equal(g.Snapshot()), "seed:%d tap:%d\n%s", seed, tap, g)

			for c := 0; c < g.Cols; c++ {
				for r := 0; r < g.Rows; r++ {
					assert.NotEqual(t, Marked, g.CellAt(c, r))
				}
			}
			assert.Len(t, g.Layout().Tiles, g.Count())
		}
	}
}
