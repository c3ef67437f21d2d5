package xdndsrc

import (
	"image"
	"log/slog"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/jmigpin/dragsource/driver/xdriver/wintree"
)

// Session implementation talking to the x server.
type xSession struct {
	conn    *xgb.Conn
	root    xproto.Window
	src     xproto.Window
	atoms   *AtomTable
	ws      *wintree.XWindowSystem
	payload *Payload
	cursors *cursors
	logger  *slog.Logger
}

func (s *xSession) WindowPath(rootX, rootY int16) []xproto.Window {
	p := image.Point{int(rootX), int(rootY)}
	path := wintree.LocatePath(s.ws, wintree.Window(s.root), p, wintree.DefaultMaxDepth)
	u := make([]xproto.Window, len(path))
	for i, w := range path {
		u[i] = xproto.Window(w)
	}
	return u
}

func (s *xSession) AwareVersion(w xproto.Window) (uint32, bool) {
	cookie := xproto.GetProperty(
		s.conn,
		false, // delete
		w,
		s.atoms.XdndAware,
		xproto.GetPropertyTypeAny,
		0, // long offset
		1) // long length
	reply, err := cookie.Reply()
	if err != nil {
		// window could have been destroyed meanwhile
		return 0, false
	}
	if reply.Type == xproto.AtomNone || reply.Format != 32 || len(reply.Value) < 4 {
		return 0, false
	}
	return xgb.Get32(reply.Value), true
}

func (s *xSession) ClaimSelection(t xproto.Timestamp) error {
	c := xproto.SetSelectionOwnerChecked(s.conn, s.src, s.atoms.XdndSelection, t)
	return c.Check()
}

func (s *xSession) SendClientMessage(target xproto.Window, typ xproto.Atom, data []uint32) error {
	cme := &xproto.ClientMessageEvent{
		Format: 32,
		Window: target,
		Type:   typ,
		Data:   xproto.ClientMessageDataUnionData32New(data),
	}
	c := xproto.SendEventChecked(
		s.conn,
		false, // propagate
		target,
		xproto.EventMaskNoEvent,
		string(cme.Bytes()))
	return c.Check()
}

func (s *xSession) ServeSelection(ev *xproto.SelectionRequestEvent) error {
	paths, _, _ := s.payload.Get()
	return serveSelection(connSelectionWriter{s.conn}, s.atoms, ev, paths)
}

func (s *xSession) SetFeedback(f Feedback) {
	if err := s.cursors.set(f); err != nil {
		s.logger.Debug("xdnd: set cursor", "err", err)
	}
}
