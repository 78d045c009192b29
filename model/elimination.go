package model

import (
	"fmt"

	log "github.com/sirupsen/logrus"
)

type TapState int

const (
	TAP_IDLE TapState = iota
	TAP_SYMBOL_COMPARED
	TAP_MARKING
	TAP_REMOVING
	TAP_SETTLING
	TAP_COMPACTING
	TAP_POSITION_REFRESH
)

func (s TapState) Name() string {
	switch s {
	case TAP_IDLE:
		return "IDLE"
	case TAP_SYMBOL_COMPARED:
		return "SYMBOL_COMPARED"
	case TAP_MARKING:
		return "MARKING"
	case TAP_REMOVING:
		return "REMOVING"
	case TAP_SETTLING:
		return "SETTLING"
	case TAP_COMPACTING:
		return "COMPACTING"
	case TAP_POSITION_REFRESH:
		return "POSITION_REFRESH"
	default:
		return fmt.Sprintf("N/A(%d)", s)
	}
}

// TapResult describes one pipeline run. Removed is empty for a no-op tap.
type TapResult struct {
	Col, Row int
	Symbol   Symbol
	// Last is the furthest state the run reached before returning to idle.
	Last    TapState
	Removed []Point
}

func (t TapResult) Changed() bool {
	return len(t.Removed) > 0
}

// Tap runs the elimination pipeline for the tile in (col, row): the connected
// region of its symbol is removed, the columns settle and empty columns are
// compacted. A tap on a tile without an equal neighbour changes nothing.
func (g *Grid) Tap(col, row int) TapResult {
	res := TapResult{Col: col, Row: row, Symbol: g.CellAt(col, row), Last: TAP_IDLE}
	if g.State != TAP_IDLE {
		log.Warnf("Grid.Tap c:%d r:%d ignored, pipeline in state %s", col, row, g.State.Name())
		return res
	}
	defer func() { g.State = TAP_IDLE }()

	g.State = TAP_SYMBOL_COMPARED
	res.Last = g.State
	if !res.Symbol.IsTile() {
		log.Debugf("Grid.Tap c:%d r:%d no tile", col, row)
		return res
	}
	if !hasNeighbor(g.Neighbors(col, row), res.Symbol) {
		log.Debugf("Grid.Tap c:%d r:%d %s has no matching neighbour", col, row, g.Glyph(res.Symbol))
		return res
	}

	g.State = TAP_MARKING
	g.Mark(col, row)
	markPasses := g.ExpandMark(res.Symbol)

	g.State = TAP_REMOVING
	res.Removed = g.RemoveMarked()

	g.State = TAP_SETTLING
	dropPasses := g.Drop()

	g.State = TAP_COMPACTING
	shiftPasses := g.Shift()

	g.State = TAP_POSITION_REFRESH
	res.Last = g.State
	g.runs++
	g.update()

	log.WithFields(log.Fields{
		"col":     col,
		"row":     row,
		"glyph":   g.Glyph(res.Symbol),
		"removed": len(res.Removed),
		"passes":  fmt.Sprintf("mark:%d drop:%d shift:%d", markPasses, dropPasses, shiftPasses),
	}).Debug("Grid.Tap done")
	return res
}

// Mark flags a single cell for removal.
func (g *Grid) Mark(col, row int) {
	if g.Inside(col, row) {
		g.Matrix[col][row] = Marked
	}
}

// ExpandMark grows the marked area over every cell holding s that touches a
// marked cell, scanning until a full pass changes nothing. It returns the
// number of passes made.
func (g *Grid) ExpandMark(s Symbol) int {
	passes := 0
	for {
		before := g.Snapshot()
		passes++
		for r := 0; r < g.Rows; r++ {
			for c := 0; c < g.Cols; c++ {
				if g.Matrix[c][r] == s && hasNeighbor(g.Neighbors(c, r), Marked) {
					g.Mark(c, r)
				}
			}
		}
		if before.Equal(g.Snapshot()) {
			return passes
		}
	}
}

// RemoveMarked empties every marked cell and returns the cleared slots.
func (g *Grid) RemoveMarked() []Point {
	var removed []Point
	for r := 0; r < g.Rows; r++ {
		for c := 0; c < g.Cols; c++ {
			if g.Matrix[c][r] == Marked {
				g.Matrix[c][r] = Empty
				removed = append(removed, Point{Col: c, Row: r})
			}
		}
	}
	return removed
}

// Drop lets tiles sink one slot at a time into the empty slot below until
// no tile rests on an empty slot. Columns never exchange tiles.
func (g *Grid) Drop() int {
	passes := 0
	for {
		before := g.Snapshot()
		passes++
		for c := 0; c < g.Cols; c++ {
			column := g.Matrix[c]
			for r := g.Rows - 2; r >= 0; r-- {
				if column[r+1] == Empty {
					column[r], column[r+1] = column[r+1], column[r]
				}
			}
		}
		if before.Equal(g.Snapshot()) {
			return passes
		}
	}
}

// Shift swaps every fully empty column with its right neighbour until a pass
// changes nothing. The last column only ever takes part as the right side of
// a swap.
func (g *Grid) Shift() int {
	passes := 0
	for {
		before := g.Snapshot()
		passes++
		for c := 0; c < g.Cols-1; c++ {
			if !g.isWholeColumnEmpty(c) {
				continue
			}
			g.Matrix[c], g.Matrix[c+1] = g.Matrix[c+1], g.Matrix[c]
		}
		if before.Equal(g.Snapshot()) {
			return passes
		}
	}
}

func (g *Grid) isWholeColumnEmpty(col int) bool {
	for _, s := range g.Matrix[col] {
		if s != Empty {
			return false
		}
	}
	return true
}
