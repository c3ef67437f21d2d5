package xdndsrc

import (
	"fmt"
	"image"
	"image/color"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/jmigpin/dragsource/dnd"
	"github.com/jmigpin/dragsource/util/imageutil"
)

// Paints the drag image hint into the source window.
type preview struct {
	conn  *xgb.Conn
	win   xproto.Window
	gctx  xproto.Gcontext
	depth byte

	// decoded image cache
	version int
	img     image.Image
	err     error
}

func newPreview(conn *xgb.Conn, win xproto.Window, screen *xproto.ScreenInfo) (*preview, error) {
	gctx, err := xproto.NewGcontextId(conn)
	if err != nil {
		return nil, err
	}
	c := xproto.CreateGCChecked(conn, gctx, xproto.Drawable(win), 0, nil)
	if err := c.Check(); err != nil {
		return nil, err
	}
	p := &preview{conn: conn, win: win, gctx: gctx, depth: screen.RootDepth, version: -1}
	return p, nil
}

func (p *preview) paint(img dnd.Image, version int, winSize image.Point) error {
	if version != p.version {
		p.version = version
		p.img, p.err = nil, nil
		if img != nil {
			p.img, p.err = dnd.DecodeImage(img)
		}
	}
	if p.err != nil {
		return p.err
	}
	if p.img == nil {
		return nil
	}
	if p.depth != 24 && p.depth != 32 {
		return fmt.Errorf("preview: unsupported depth: %v", p.depth)
	}

	max := winSize.X
	if winSize.Y < max {
		max = winSize.Y
	}
	thumb := dnd.Thumbnail(p.img, max)
	bgra := imageutil.BGRAFromImage(thumb, color.White)

	// center
	sz := bgra.Bounds().Size()
	dst := winSize.Sub(sz).Div(2)
	return p.putImage(bgra, dst)
}

// X max request length = (2^16)*4 bytes, the image is sent in chunks of
// rows.
func (p *preview) putImage(img *imageutil.BGRA, dst image.Point) error {
	r := img.Bounds()
	if r.Empty() {
		return nil
	}
	putImgReqSize := 28
	maxReqSize := (1 << 16) * 4
	rowSize := r.Dx() * 4
	rows := (maxReqSize - putImgReqSize) / rowSize
	if rows < 1 {
		return fmt.Errorf("preview: row too big: %v", r.Dx())
	}

	for minY := r.Min.Y; minY < r.Max.Y; minY += rows {
		h := rows
		if h2 := r.Max.Y - minY; h2 < h {
			h = h2
		}
		i := img.PixOffset(r.Min.X, minY)
		data := img.Pix[i : i+h*img.Stride]
		c := xproto.PutImageChecked(
			p.conn,
			xproto.ImageFormatZPixmap,
			xproto.Drawable(p.win),
			p.gctx,
			uint16(r.Dx()), uint16(h), // width/height
			int16(dst.X), int16(dst.Y+minY-r.Min.Y), // dst x/y
			0, // left pad, must be 0 for ZPixmap format
			p.depth,
			data)
		if err := c.Check(); err != nil {
			return err
		}
	}
	return nil
}
