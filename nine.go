package main

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten"
)

const (
	frameSide   = 24
	frameCorner = 6
)

// Frame is a nine-patch: corners keep their size, edges stretch along one
// axis and the centre along both.
type Frame struct {
	image *ebiten.Image
	// source cut lines, outer edge to outer edge
	cuts [4]int
	// corner size on screen relative to the source
	Scale float64
}

// newFrame renders a white rounded square to tint per tile.
func newFrame(scale float64) (*Frame, error) {
	src := image.NewRGBA(image.Rect(0, 0, frameSide, frameSide))
	for x := 0; x < frameSide; x++ {
		for y := 0; y < frameSide; y++ {
			if insideRounded(x, y) {
				src.Set(x, y, color.White)
			}
		}
	}
	img, err := ebiten.NewImageFromImage(src, ebiten.FilterDefault)
	if err != nil {
		return nil, err
	}
	return &Frame{
		image: img,
		cuts:  [4]int{0, frameCorner, frameSide - frameCorner, frameSide},
		Scale: scale,
	}, nil
}

func insideRounded(x, y int) bool {
	cx := clampCorner(x)
	cy := clampCorner(y)
	dx, dy := x-cx, y-cy
	r := frameCorner - 1
	return dx*dx+dy*dy <= r*r
}

// clampCorner returns the nearest coordinate of the inner square.
func clampCorner(v int) int {
	lo, hi := frameCorner-1, frameSide-frameCorner
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Draw stretches the frame over the target rectangle.
func (f *Frame) Draw(screen *ebiten.Image, x, y, width, height int, c GameColor, alpha float64) {
	corner := f.Scale * float64(f.cuts[1]-f.cuts[0])
	targetX := [3]float64{float64(x), float64(x) + corner, float64(x+width) - corner}
	targetY := [3]float64{float64(y), float64(y) + corner, float64(y+height) - corner}
	centre := f.cuts[2] - f.cuts[1]
	scaleX := [3]float64{f.Scale, (targetX[2] - targetX[1]) / float64(centre), f.Scale}
	scaleY := [3]float64{f.Scale, (targetY[2] - targetY[1]) / float64(centre), f.Scale}

	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			patch := image.Rect(f.cuts[i], f.cuts[j], f.cuts[i+1], f.cuts[j+1])
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Scale(scaleX[i], scaleY[j])
			op.GeoM.Translate(targetX[i], targetY[j])
			op.ColorM.Scale(c.r, c.g, c.b, alpha)
			screen.DrawImage(f.image.SubImage(patch).(*ebiten.Image), op)
		}
	}
}
