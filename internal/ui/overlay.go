//go:build ebiten

package ui

import (
	"image/color"
	"math"

	"existon-ca/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

type pairProvider interface {
	EntangledPairs() [][2]int
}

// Overlay draws optional debugging visuals on top of the base simulation,
// currently the nonlocal entanglement links between paired cells.
type Overlay struct {
	sim       core.Sim
	scale     int
	showLinks bool

	pixel *ebiten.Image
}

// NewOverlay constructs a new overlay instance.
func NewOverlay(sim core.Sim, scale int) *Overlay {
	o := &Overlay{sim: sim, scale: scale}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// Update toggles overlay layers from keyboard input.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit1) {
		o.showLinks = !o.showLinks
	}
}

// Draw renders the overlay onto the provided screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	if !o.showLinks {
		return
	}
	provider, ok := o.sim.(pairProvider)
	if !ok {
		return
	}
	size := o.sim.Size()
	if size.W <= 0 || size.H <= 0 {
		return
	}
	scale := o.scale
	if scale <= 0 {
		scale = 1
	}
	half := float64(scale) * 0.5
	tint := color.RGBA{R: 90, G: 200, B: 255, A: 110}
	for _, pair := range provider.EntangledPairs() {
		ax := float64(pair[0]%size.W)*float64(scale) + half
		ay := float64(pair[0]/size.W)*float64(scale) + half
		bx := float64(pair[1]%size.W)*float64(scale) + half
		by := float64(pair[1]/size.W)*float64(scale) + half
		o.drawLine(screen, ax, ay, bx, by, 1, tint)
	}
}

func (o *Overlay) drawLine(screen *ebiten.Image, x1, y1, x2, y2, thickness float64, col color.RGBA) {
	if o.pixel == nil || thickness <= 0 {
		return
	}
	dx := x2 - x1
	dy := y2 - y1
	length := math.Hypot(dx, dy)
	if length <= 1e-4 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(length, thickness)
	op.GeoM.Translate(0, -thickness/2)
	op.GeoM.Rotate(math.Atan2(dy, dx))
	op.GeoM.Translate(x1, y1)
	op.ColorM.Scale(float64(col.R)/255.0, float64(col.G)/255.0, float64(col.B)/255.0, float64(col.A)/255.0)
	screen.DrawImage(o.pixel, op)
}
