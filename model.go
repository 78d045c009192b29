package main

import (
	"image/color"

	"github.com/hajimehoshi/ebiten"
	"github.com/hajimehoshi/ebiten/text"
	"github.com/zucenko/fruitfall/model"
	"golang.org/x/image/font"
)

func HexToF32(u uint32, id int) GameColor {
	b := float64(0xff&u) / 255
	g := float64(0xff&(u>>8)) / 255
	r := float64(0xff&(u>>16)) / 255
	return GameColor{r, g, b, id}
}

type GameColor struct {
	r  float64
	g  float64
	b  float64
	id int
}

var COLORS = []GameColor{
	HexToF32(0xfa3636, 1),
	HexToF32(0xedbc1e, 2),
	HexToF32(0x0abd38, 3),
	HexToF32(0x34fbf6, 4),
	HexToF32(0x321ecc, 5),
	HexToF32(0xcb18dd, 6),
}

func colorOf(s model.Symbol) GameColor {
	return COLORS[int(s-1)%len(COLORS)]
}

// Tile is the sprite of one non-empty cell. It only ever mirrors a
// model.TileView; the grid owns the content.
type Tile struct {
	glyph string
	color GameColor
	x, y  int
	size  int
	Col   int
	Row   int
}

func tilesFromLayout(l model.Layout) []*Tile {
	tiles := make([]*Tile, 0, len(l.Tiles))
	for _, v := range l.Tiles {
		tiles = append(tiles, &Tile{
			glyph: v.Glyph,
			color: colorOf(v.Symbol),
			x:     v.X,
			y:     v.Y,
			size:  l.TileSize,
			Col:   v.Col,
			Row:   v.Row,
		})
	}
	return tiles
}

// Draw draws the tile frame and its glyph centred in the tile.
func (s *Tile) Draw(screen *ebiten.Image, frame *Frame, face font.Face, dx, dy int) {
	inset := s.size / 25
	frame.Draw(screen, s.x+dx+inset, s.y+dy+inset, s.size-2*inset, s.size-2*inset, s.color, .85)

	width := font.MeasureString(face, s.glyph).Round()
	ascent := face.Metrics().Ascent.Round()
	x := s.x + dx + (s.size-width)/2
	y := s.y + dy + (s.size+ascent)/2
	text.Draw(screen, s.glyph, face, x, y, color.White)
}
