package existon

import (
	"image/color"

	"existon-ca/pkg/ga"
	"existon-ca/pkg/trit"
)

// Display bytes pack the classification in the low two bits and, for
// Potential cells, a tint index derived from the three lowest-blade
// coefficients in the bits above. Observed and Operator cells render as
// fixed colors regardless of tint.
const (
	displayClassMask = 0x03
	displayTintShift = 2
	displayTintCount = 27
)

var existonPalette = buildExistonPalette()

// Palette exposes the color palette used for rendering the universe.
func (u *Universe) Palette() []color.RGBA {
	return existonPalette
}

func encodeDisplayValue(class Classification, state ga.Multivector) uint8 {
	blades := ga.Blades(state.P())
	tint := 0
	weight := 9
	for blade := 0; blade < 3; blade++ {
		c := trit.Zero
		if blade < blades {
			c = state.Coefficient(blade)
		}
		tint += weight * int(c+1)
		weight /= 3
	}
	return uint8(class)&displayClassMask | uint8(tint)<<displayTintShift
}

func (u *Universe) rebuildDisplay() {
	for i := range u.display {
		cell := u.cur[i]
		u.display[i] = encodeDisplayValue(cell.Class(), cell.State())
	}
}

func buildExistonPalette() []color.RGBA {
	palette := make([]color.RGBA, displayTintCount<<displayTintShift)
	for i := range palette {
		class := Classification(uint8(i) & displayClassMask)
		tint := i >> displayTintShift
		palette[i] = paletteColorFor(class, tint)
	}
	return palette
}

// paletteColorFor maps a cell to its pixel. Potential cells are the dim
// shifting quantum foam, colored by their scalar, e0 and e1 coefficients;
// Observed cells are bright definite points; Operator cells stand out in
// magenta.
func paletteColorFor(class Classification, tint int) color.RGBA {
	switch class {
	case Observed:
		return color.RGBA{R: 255, G: 255, B: 204, A: 255}
	case Operator:
		return color.RGBA{R: 220, G: 60, B: 220, A: 255}
	default:
		s := tint / 9 % 3
		a := tint / 3 % 3
		b := tint % 3
		return color.RGBA{
			R: uint8(16 + 32*s),
			G: uint8(16 + 32*a),
			B: uint8(16 + 32*b),
			A: 255,
		}
	}
}
