package wintree

import (
	"image"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
)

// WindowSystem backed by an X connection.
type XWindowSystem struct {
	Conn *xgb.Conn
}

func (xws *XWindowSystem) ChildrenOf(w Window) ([]Window, error) {
	reply, err := xproto.QueryTree(xws.Conn, xproto.Window(w)).Reply()
	if err != nil {
		return nil, err
	}
	u := make([]Window, len(reply.Children))
	for i, c := range reply.Children {
		u[i] = Window(c)
	}
	return u, nil
}

func (xws *XWindowSystem) BoundsOf(w Window) (image.Rectangle, error) {
	// request both before waiting
	attrCookie := xproto.GetWindowAttributes(xws.Conn, xproto.Window(w))
	geomCookie := xproto.GetGeometry(xws.Conn, xproto.Drawable(w))

	attr, err := attrCookie.Reply()
	if err != nil {
		_, _ = geomCookie.Reply()
		return image.Rectangle{}, err
	}
	geom, err := geomCookie.Reply()
	if err != nil {
		return image.Rectangle{}, err
	}
	if attr.MapState != xproto.MapStateViewable {
		return image.Rectangle{}, nil
	}
	// x,y is the outer corner of the border; children are positioned
	// relative to the inside corner
	bw := int(geom.BorderWidth)
	x, y := int(geom.X)+bw, int(geom.Y)+bw
	return image.Rect(x, y, x+int(geom.Width), y+int(geom.Height)), nil
}
