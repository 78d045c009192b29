package main

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	log "github.com/sirupsen/logrus"
	"github.com/zucenko/fruitfall/conf"
	"github.com/zucenko/fruitfall/model"
	"github.com/zucenko/fruitfall/server"
)

// a tile is two terminal columns wide so wide glyphs fit
const cellWidth = 2

var COLORS = []tcell.Color{
	tcell.NewHexColor(0xfa3636),
	tcell.NewHexColor(0xedbc1e),
	tcell.NewHexColor(0x0abd38),
	tcell.NewHexColor(0x34fbf6),
	tcell.NewHexColor(0x321ecc),
	tcell.NewHexColor(0xcb18dd),
}

type Game struct {
	screen    tcell.Screen
	config    *conf.Config
	grid      *model.Grid
	inspector *server.Inspector
	sound     *Sound

	pressed bool
	taps    int
	removed int
}

func NewGame(screen tcell.Screen, c *conf.Config, inspector *server.Inspector, sound *Sound) (*Game, error) {
	g := &Game{screen: screen, config: c, inspector: inspector, sound: sound}
	if err := g.deal(); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Game) deal() error {
	grid, err := g.config.NewGrid()
	if err != nil {
		return err
	}
	g.grid = grid
	g.publish()
	return nil
}

func (g *Game) publish() {
	if g.inspector != nil {
		g.inspector.Publish(g.grid.Layout())
	}
}

// cellAt translates a terminal position into a grid cell.
func (g *Game) cellAt(x, y int) (col, row int, ok bool) {
	if x < 0 || y < 0 {
		return -1, -1, false
	}
	col, row = x/cellWidth, y
	return col, row, g.grid.Inside(col, row)
}

func (g *Game) tap(col, row int) {
	res := g.grid.Tap(col, row)
	g.taps++
	if !res.Changed() {
		return
	}
	g.removed += len(res.Removed)
	log.Infof("Game.tap c:%d r:%d removed:%d", col, row, len(res.Removed))
	g.sound.PlayRemoval(len(res.Removed))
	g.publish()
}

// handleEvent returns false when the player quits.
func (g *Game) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch {
		case ev.Key() == tcell.KeyEscape, ev.Key() == tcell.KeyCtrlC:
			return false
		case ev.Key() == tcell.KeyRune && ev.Rune() == 'q':
			return false
		case ev.Key() == tcell.KeyRune && ev.Rune() == 'r':
			if err := g.deal(); err != nil {
				log.Errorf("Game.deal %v", err)
				return false
			}
		}
	case *tcell.EventMouse:
		down := ev.Buttons()&tcell.Button1 != 0
		if down && !g.pressed {
			x, y := ev.Position()
			if col, row, ok := g.cellAt(x, y); ok {
				g.tap(col, row)
			}
		}
		g.pressed = down
	case *tcell.EventResize:
		g.screen.Sync()
	}
	return true
}

func (g *Game) draw() {
	g.screen.Clear()
	for _, tile := range g.grid.Layout().Tiles {
		style := tcell.StyleDefault.Foreground(COLORS[int(tile.Symbol-1)%len(COLORS)])
		runes := []rune(tile.Glyph)
		g.screen.SetContent(tile.Col*cellWidth, tile.Row, runes[0], runes[1:], style)
	}
	status := fmt.Sprintf("taps:%d removed:%d  [q]uit [r]edeal", g.taps, g.removed)
	for i, ch := range []rune(status) {
		g.screen.SetContent(i, g.grid.Rows+1, ch, nil, tcell.StyleDefault)
	}
	g.screen.Show()
}

func (g *Game) run() {
	g.draw()
	for {
		ev := g.screen.PollEvent()
		if ev == nil {
			return
		}
		if !g.handleEvent(ev) {
			return
		}
		g.draw()
	}
}
