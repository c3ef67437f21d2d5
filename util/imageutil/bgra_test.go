package imageutil

import (
	"image"
	"image/color"
	"testing"
)

func TestBGRASetAt(t *testing.T) {
	r := image.Rect(0, 0, 2, 2)
	img := NewBGRA(&r)
	c := color.RGBA{10, 20, 30, 255}
	img.Set(1, 1, c)
	if got := img.At(1, 1); got != c {
		t.Fatalf("got %v", got)
	}
	// memory layout is bgra
	i := img.PixOffset(1, 1)
	if img.Pix[i] != 30 || img.Pix[i+2] != 10 {
		t.Fatalf("layout: %v", img.Pix[i:i+4])
	}
}

func TestBGRAFromImage(t *testing.T) {
	src := image.NewRGBA(image.Rect(5, 5, 7, 6))
	src.Set(5, 5, color.RGBA{200, 0, 0, 255})
	img := BGRAFromImage(src, color.White)
	if img.Bounds() != image.Rect(0, 0, 2, 1) {
		t.Fatalf("bounds: %v", img.Bounds())
	}
	if got := img.At(0, 0); got != (color.RGBA{200, 0, 0, 255}) {
		t.Fatalf("got %v", got)
	}
	// transparent pixel shows the background
	if got := img.At(1, 0); got != (color.RGBA{255, 255, 255, 255}) {
		t.Fatalf("got %v", got)
	}
}

func TestColorUint16s(t *testing.T) {
	r, g, b, a := ColorUint16s(color.White)
	if r != 0xffff || g != 0xffff || b != 0xffff || a != 0xffff {
		t.Fatalf("%x %x %x %x", r, g, b, a)
	}
}
