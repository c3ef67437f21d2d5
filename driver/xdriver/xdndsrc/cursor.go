package xdndsrc

import (
	"image/color"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/xcursor"
	"github.com/jmigpin/dragsource/util/imageutil"
)

// https://tronche.com/gui/x/xlib/appendix/b/

// Cursor shown on the source window while dragging (the pointer is
// grabbed by the source window for the whole gesture).
type Feedback int

const (
	FeedbackNone   Feedback = iota // parent window cursor
	FeedbackAccept                 // target accepts the drop
	FeedbackReject                 // target refuses the drop
)

type cursors struct {
	conn    *xgb.Conn
	win     xproto.Window
	m       map[Feedback]xproto.Cursor
	current Feedback
}

func newCursors(conn *xgb.Conn, win xproto.Window) *cursors {
	return &cursors{conn: conn, win: win, m: map[Feedback]xproto.Cursor{}}
}

func (cs *cursors) set(f Feedback) error {
	if f == cs.current {
		return nil
	}
	xc, ok := cs.m[f]
	if !ok {
		xc2, err := cs.load(f)
		if err != nil {
			return err
		}
		cs.m[f] = xc2
		xc = xc2
	}
	cs.current = f
	mask := uint32(xproto.CwCursor)
	values := []uint32{uint32(xc)}
	return xproto.ChangeWindowAttributesChecked(cs.conn, cs.win, mask, values).Check()
}

func (cs *cursors) load(f Feedback) (xproto.Cursor, error) {
	switch f {
	case FeedbackAccept:
		return cs.loadGlyph(xcursor.Fleur, color.Black, color.White)
	case FeedbackReject:
		return cs.loadGlyph(xcursor.XCursor, color.Black, color.White)
	default:
		return xproto.CursorNone, nil
	}
}

func (cs *cursors) loadGlyph(glyph uint16, fg, bg color.Color) (xproto.Cursor, error) {
	fontId, err := xproto.NewFontId(cs.conn)
	if err != nil {
		return 0, err
	}
	cursor, err := xproto.NewCursorId(cs.conn)
	if err != nil {
		return 0, err
	}
	name := "cursor"
	err = xproto.OpenFontChecked(cs.conn, fontId, uint16(len(name)), name).Check()
	if err != nil {
		return 0, err
	}
	defer xproto.CloseFont(cs.conn, fontId)

	ur, ug, ub, _ := imageutil.ColorUint16s(fg)
	vr, vg, vb, _ := imageutil.ColorUint16s(bg)

	// mask glyph is the next one in the cursor font
	err = xproto.CreateGlyphCursorChecked(
		cs.conn, cursor,
		fontId, fontId,
		glyph, glyph+1,
		ur, ug, ub,
		vr, vg, vb).Check()
	if err != nil {
		return 0, err
	}
	return cursor, nil
}
