package imageutil

import (
	"image"
	"image/color"
	"image/draw"
)

// RGBA memory layout with the red and blue channels swapped, as expected
// by little-endian 24/32 depth X visuals.
type BGRA struct {
	image.RGBA
}

func NewBGRA(r *image.Rectangle) *BGRA {
	u := image.NewRGBA(*r)
	return &BGRA{*u}
}

// BGRAFromImage composes src over a bg filled image of the same bounds
// (origin at zero).
func BGRAFromImage(src image.Image, bg color.Color) *BGRA {
	r := src.Bounds().Sub(src.Bounds().Min)
	u := image.NewRGBA(r)
	draw.Draw(u, r, image.NewUniform(bg), image.Point{}, draw.Src)
	draw.Draw(u, r, src, src.Bounds().Min, draw.Over)
	for i := 0; i+3 < len(u.Pix); i += 4 {
		u.Pix[i], u.Pix[i+2] = u.Pix[i+2], u.Pix[i]
	}
	return &BGRA{*u}
}

func (img *BGRA) Set(x, y int, c color.Color) {
	img.SetRGBA(x, y, RgbaColor(c))
}

func (img *BGRA) SetRGBA(x, y int, c color.RGBA) {
	c.R, c.B = c.B, c.R // flip to keep bgra
	img.RGBA.SetRGBA(x, y, c)
}

func (img *BGRA) At(x, y int) color.Color {
	c := img.RGBA.RGBAAt(x, y)
	c.R, c.B = c.B, c.R // flip to return rgba
	return c
}

//----------

func RgbaColor(c color.Color) color.RGBA {
	if u, ok := c.(color.RGBA); ok {
		return u
	}
	r, g, b, a := c.RGBA()
	return color.RGBA{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8), uint8(a >> 8)}
}

// Ex. usage: x11 glyph cursor colors.
func ColorUint16s(c color.Color) (uint16, uint16, uint16, uint16) {
	r, g, b, a := c.RGBA()
	return uint16(r), uint16(g), uint16(b), uint16(a)
}
