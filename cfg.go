package main

import (
	"bytes"
	"fmt"

	"github.com/golang/freetype/truetype"
	"github.com/hajimehoshi/ebiten/ebitenutil"
	log "github.com/sirupsen/logrus"
	"github.com/zucenko/fruitfall/conf"
	"github.com/zucenko/fruitfall/model"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

// Load deals the starting grid. Board files go through ebitenutil so the
// same path works for bundled assets.
func Load(c *conf.Config) (*model.Grid, error) {
	if c.Board == "" {
		return c.NewGrid()
	}
	file, err := ebitenutil.OpenFile(c.Board)
	if err != nil {
		log.Errorf("failed opening board %s: %v", c.Board, err)
		return nil, err
	}
	defer file.Close()
	return model.ReadBoard(file, c.GridOptions())
}

// loadFace reads fontPath when given and falls back to Go Regular.
func loadFace(fontPath string, size float64) (font.Face, error) {
	data := goregular.TTF
	if fontPath != "" {
		file, err := ebitenutil.OpenFile(fontPath)
		if err != nil {
			return nil, fmt.Errorf("open font: %w", err)
		}
		defer file.Close()
		buf := new(bytes.Buffer)
		if _, err := buf.ReadFrom(file); err != nil {
			return nil, fmt.Errorf("read font: %w", err)
		}
		data = buf.Bytes()
	}
	tt, err := truetype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	const dpi = 72
	return truetype.NewFace(tt, &truetype.Options{
		Size:    size,
		DPI:     dpi,
		Hinting: font.HintingFull,
	}), nil
}
