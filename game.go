package main

import (
	"context"
	"flag"
	"fmt"
	"image/color"
	"math"
	"os"

	"github.com/hajimehoshi/ebiten"
	"github.com/hajimehoshi/ebiten/ebitenutil"
	"github.com/hajimehoshi/ebiten/inpututil"
	log "github.com/sirupsen/logrus"
	"github.com/zucenko/fruitfall/conf"
	"github.com/zucenko/fruitfall/model"
	"github.com/zucenko/fruitfall/server"
	"golang.org/x/image/font"
)

const statusHeight = 20

// StrokeSource represents a input device to provide strokes.
type StrokeSource interface {
	Position() (int, int)
	IsJustReleased() bool
}

// MouseStrokeSource is a StrokeSource implementation of mouse.
type MouseStrokeSource struct{}

func (m *MouseStrokeSource) Position() (int, int) {
	return ebiten.CursorPosition()
}

func (m *MouseStrokeSource) IsJustReleased() bool {
	return inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft)
}

// TouchStrokeSource is a StrokeSource implementation of touch.
type TouchStrokeSource struct {
	ID int
}

func (t *TouchStrokeSource) Position() (int, int) {
	return ebiten.TouchPosition(t.ID)
}

func (t *TouchStrokeSource) IsJustReleased() bool {
	return inpututil.IsTouchJustReleased(t.ID)
}

// Stroke follows one press until release. A stroke that wanders more than
// half a tile from where it started is cancelled and does not tap.
type Stroke struct {
	source StrokeSource

	initX, initY       int
	currentX, currentY int

	released  bool
	cancelled bool
}

func NewStroke(source StrokeSource) *Stroke {
	cx, cy := source.Position()
	return &Stroke{
		source:   source,
		initX:    cx,
		initY:    cy,
		currentX: cx,
		currentY: cy,
	}
}

func (s *Stroke) Update() {
	if s.released {
		return
	}
	if s.source.IsJustReleased() {
		s.released = true
		return
	}
	s.currentX, s.currentY = s.source.Position()
}

func (s *Stroke) PositionDiff() (int, int) {
	return s.currentX - s.initX, s.currentY - s.initY
}

type GameState int

const (
	IDLE GameState = iota + 1
	ACTING
)

func (s GameState) Name() string {
	switch s {
	case IDLE:
		return "IDLE"
	case ACTING:
		return "ACTING"
	default:
		return fmt.Sprintf("N/A(%d)", s)
	}
}

type Game struct {
	State     GameState
	Grid      *model.Grid
	Frame     *Frame
	Face      font.Face
	config    *conf.Config
	inspector *server.Inspector
	strokes   map[*Stroke]struct{}
	sprites   []*Tile
	taps      int
	removed   int
}

func (g *Game) deal() error {
	grid, err := Load(g.config)
	if err != nil {
		return err
	}
	g.Grid = grid
	g.taps, g.removed = 0, 0
	g.refresh()
	return nil
}

// refresh rebuilds sprites from the grid layout and shares it.
func (g *Game) refresh() {
	layout := g.Grid.Layout()
	g.sprites = tilesFromLayout(layout)
	if g.inspector != nil {
		g.inspector.Publish(layout)
	}
}

func (g *Game) tapAt(x, y int) {
	if g.State != IDLE {
		return
	}
	col, row, ok := g.Grid.Locate(x, y)
	if !ok {
		return
	}
	g.State = ACTING
	defer func() { g.State = IDLE }()

	res := g.Grid.Tap(col, row)
	g.taps++
	if !res.Changed() {
		return
	}
	g.removed += len(res.Removed)
	log.WithFields(log.Fields{"col": col, "row": row, "removed": len(res.Removed)}).Info("Game.tapAt")
	g.refresh()
}

func (g *Game) updateStroke(stroke *Stroke) {
	stroke.Update()
	xDif, yDif := stroke.PositionDiff()
	half := float64(g.Grid.TileSize) / 2
	if math.Abs(float64(xDif)) > half || math.Abs(float64(yDif)) > half {
		stroke.released = true
		stroke.cancelled = true
	}
	if stroke.released && !stroke.cancelled {
		g.tapAt(stroke.initX, stroke.initY)
	}
}

func (g *Game) update(screen *ebiten.Image) error {
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		if err := g.deal(); err != nil {
			return err
		}
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.strokes[NewStroke(&MouseStrokeSource{})] = struct{}{}
	}
	for _, id := range inpututil.JustPressedTouchIDs() {
		g.strokes[NewStroke(&TouchStrokeSource{id})] = struct{}{}
	}
	for s := range g.strokes {
		g.updateStroke(s)
		if s.released {
			delete(g.strokes, s)
		}
	}

	if ebiten.IsDrawingSkipped() {
		return nil
	}

	if err := screen.Fill(color.RGBA{70, 70, 70, 255}); err != nil {
		log.Errorf("Game.update fill %v", err)
	}
	for _, s := range g.sprites {
		s.Draw(screen, g.Frame, g.Face, 0, 0)
	}
	status := fmt.Sprintf("%s taps:%d removed:%d left:%d [R]edeal",
		g.State.Name(), g.taps, g.removed, g.Grid.Count())
	ebitenutil.DebugPrintAt(screen, status, 4, g.Grid.Rows*g.Grid.TileSize+2)
	return nil
}

func main() {
	confPath := flag.String("conf", "", "HCL config file")
	board := flag.String("board", "", "text board to start from, overrides the config")
	fontPath := flag.String("font", "", "TrueType font for tile glyphs")
	flag.Parse()

	c, err := conf.Load(*confPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *board != "" {
		c.Board = *board
	}
	if err := c.SetupLogging(os.Stderr); err != nil {
		log.Fatalln(err)
	}

	game := &Game{
		State:   IDLE,
		config:  c,
		strokes: map[*Stroke]struct{}{},
	}
	if c.InspectAddr != "" {
		game.inspector = server.NewInspector()
		go game.inspector.Loop(context.Background())
		go func() {
			log.Errorf("inspector stopped: %v", game.inspector.ListenAndServe(c.InspectAddr))
		}()
	}
	if err := game.deal(); err != nil {
		log.Fatalf("deal: %v", err)
	}
	size := game.Grid.TileSize
	if game.Face, err = loadFace(*fontPath, float64(size)*.55); err != nil {
		log.Fatalln(err)
	}
	if game.Frame, err = newFrame(float64(size) / 48); err != nil {
		log.Fatalln(err)
	}

	width := game.Grid.Cols * size
	height := game.Grid.Rows*size + statusHeight
	if err := ebiten.Run(game.update, width, height, 1, "fruitfall"); err != nil {
		log.Fatal(err)
	}
}
