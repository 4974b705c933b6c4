package core

import "image/color"

// Shade offsets each channel of c, saturating at 0 and 255.
// Alpha is left untouched.
func Shade(c color.NRGBA, dr, dg, db int) color.NRGBA {
	return color.NRGBA{
		R: uint8(Clamp(int(c.R)+dr, 0, 255)),
		G: uint8(Clamp(int(c.G)+dg, 0, 255)),
		B: uint8(Clamp(int(c.B)+db, 0, 255)),
		A: c.A,
	}
}

// Fade scales the colour channels and the alpha of c by f in [0, 1].
func Fade(c color.NRGBA, f float64) color.NRGBA {
	f = ClampF(f, 0, 1)
	return color.NRGBA{
		R: uint8(float64(c.R) * f),
		G: uint8(float64(c.G) * f),
		B: uint8(float64(c.B) * f),
		A: uint8(255 * f),
	}
}

// WithAlpha returns c with alpha replaced by a in [0, 1].
func WithAlpha(c color.NRGBA, a float64) color.NRGBA {
	c.A = uint8(255 * ClampF(a, 0, 1))
	return c
}

// Gray returns an opaque gray with the given brightness in [0, 1].
func Gray(brightness float64) color.NRGBA {
	v := uint8(255 * ClampF(brightness, 0, 1))
	return color.NRGBA{R: v, G: v, B: v, A: 255}
}
