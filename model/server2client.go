package model

// Layout is what hosts and inspector watchers see after each pipeline run.
type Layout struct {
	Cols     int        `json:"cols"`
	Rows     int        `json:"rows"`
	TileSize int        `json:"tileSize"`
	Runs     int        `json:"runs"`
	Tiles    []TileView `json:"tiles"`
}

type TileView struct {
	Col    int    `json:"col"`
	Row    int    `json:"row"`
	Symbol Symbol `json:"symbol"`
	Glyph  string `json:"glyph"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
}

// Layout returns the positions computed by the last refresh. The tile slice
// is shared; callers must not modify it.
func (g *Grid) Layout() Layout {
	return g.layout
}

// update re-derives the visual position of every non-empty cell.
func (g *Grid) update() {
	tiles := make([]TileView, 0, g.Cols*g.Rows)
	for r := 0; r < g.Rows; r++ {
		for c := 0; c < g.Cols; c++ {
			s := g.Matrix[c][r]
			if s == Empty {
				continue
			}
			x, y := g.PositionOf(c, r)
			tiles = append(tiles, TileView{
				Col: c, Row: r,
				Symbol: s,
				Glyph:  g.Glyph(s),
				X:      x, Y: y,
			})
		}
	}
	g.layout = Layout{
		Cols:     g.Cols,
		Rows:     g.Rows,
		TileSize: g.TileSize,
		Runs:     g.runs,
		Tiles:    tiles,
	}
}
