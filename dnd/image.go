package dnd

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"os"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	xdraw "golang.org/x/image/draw"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Image is a hint for what to show while dragging. A nil Image means no
// hint. Backends that can't render it ignore it.
type Image interface {
	isImage()
}

// Encoded image bytes (png, jpeg, gif, bmp, tiff, webp).
type RawImage []byte

func (RawImage) isImage() {}

// Path to an encoded image file.
type FilePathImage string

func (FilePathImage) isImage() {}

//----------

func DecodeImage(img Image) (image.Image, error) {
	var r io.Reader
	switch t := img.(type) {
	case nil:
		return nil, fmt.Errorf("decode image: no image")
	case RawImage:
		r = bytes.NewReader(t)
	case FilePathImage:
		f, err := os.Open(string(t))
		if err != nil {
			return nil, fmt.Errorf("decode image: %w", err)
		}
		defer f.Close()
		r = f
	default:
		return nil, fmt.Errorf("decode image: unhandled type %T", img)
	}
	m, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return m, nil
}

// Thumbnail scales img down to fit a max*max square, keeping the aspect
// ratio. Images that already fit are returned unchanged.
func Thumbnail(img image.Image, max int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if max <= 0 || (w <= max && h <= max) {
		return img
	}
	if w >= h {
		h = h * max / w
		w = max
	} else {
		w = w * max / h
		h = max
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
	return dst
}
