// Package xdndsrc implements the source side of the XDND protocol.
//
// A Source owns its own connection and a small window. A drag starts when
// the user presses a button on that window and moves the pointer out of
// it: the pointer stays grabbed by the window, so every motion reaches
// the source event loop, which finds the window under the pointer and
// runs the enter/position/status/drop/leave handshake with it.
package xdndsrc

import (
	"encoding/binary"
	"image"
	"log/slog"
	"sync"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/jmigpin/dragsource/dnd"
	"github.com/jmigpin/dragsource/driver/xdriver/wintree"
	"github.com/jmigpin/dragsource/driver/xdriver/wmprotocols"
	"github.com/pkg/errors"
)

type Options struct {
	Display     string // empty uses $DISPLAY
	Title       string
	Size        image.Point
	Logger      *slog.Logger
	Diagnostics dnd.DiagnosticsSink
}

type Source struct {
	conn    *xgb.Conn
	win     xproto.Window
	screen  *xproto.ScreenInfo
	atoms   *AtomTable
	machine *Machine
	preview *preview
	wmp     *wmprotocols.WMP
	payload *Payload
	logger  *slog.Logger
	diag    dnd.DiagnosticsSink
	size    image.Point

	closeMu   sync.Mutex // no requests after the connection is closed
	closeOnce sync.Once
	done      chan struct{}
	loopEnd   chan struct{}
}

func NewSource(opt *Options) (*Source, error) {
	o := *opt
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	if o.Diagnostics == nil {
		o.Diagnostics = dnd.LogDiagnostics(o.Logger)
	}
	if o.Size.X <= 0 || o.Size.Y <= 0 {
		o.Size = image.Point{200, 200}
	}
	if o.Title == "" {
		o.Title = "drag source"
	}

	conn, err := xgb.NewConnDisplay(o.Display)
	if err != nil {
		return nil, &dnd.SetupError{Op: "x connect", Err: errors.Wrap(err, "display "+o.Display)}
	}

	s := &Source{
		conn:    conn,
		payload: &Payload{},
		logger:  o.Logger,
		diag:    o.Diagnostics,
		size:    o.Size,
		done:    make(chan struct{}),
		loopEnd: make(chan struct{}),
	}
	if err := s.initialize(&o); err != nil {
		conn.Close()
		return nil, &dnd.SetupError{Op: "x source window", Err: err}
	}

	go s.eventLoop()

	return s, nil
}

func (s *Source) initialize(o *Options) error {
	si := xproto.Setup(s.conn)
	s.screen = si.DefaultScreen(s.conn)

	atoms, err := NewAtomTable(s.conn)
	if err != nil {
		return errors.Wrap(err, "atoms")
	}
	s.atoms = atoms

	window, err := xproto.NewWindowId(s.conn)
	if err != nil {
		return errors.Wrap(err, "window id")
	}
	s.win = window

	var evMask uint32 = 0 |
		xproto.EventMaskExposure |
		xproto.EventMaskStructureNotify |
		xproto.EventMaskButtonPress |
		xproto.EventMaskButtonRelease |
		xproto.EventMaskPointerMotion |
		xproto.EventMaskEnterWindow |
		xproto.EventMaskLeaveWindow |
		0
	// mask/values order is defined by the protocol
	mask := uint32(xproto.CwBackPixel | xproto.CwEventMask)
	values := []uint32{s.screen.WhitePixel, evMask}

	c1 := xproto.CreateWindowChecked(
		s.conn,
		s.screen.RootDepth,
		s.win,
		s.screen.Root,
		0, 0, uint16(o.Size.X), uint16(o.Size.Y),
		1, // border width
		xproto.WindowClassInputOutput,
		s.screen.RootVisual,
		mask, values)
	if err := c1.Check(); err != nil {
		return errors.Wrap(err, "create window")
	}

	if err := s.setupAwareProperty(); err != nil {
		return errors.Wrap(err, "xdndaware property")
	}
	s.setWindowName(o.Title)

	wmp, err := wmprotocols.NewWMP(s.conn, s.win)
	if err != nil {
		return errors.Wrap(err, "wm protocols")
	}
	s.wmp = wmp

	pv, err := newPreview(s.conn, s.win, s.screen)
	if err != nil {
		return errors.Wrap(err, "preview")
	}
	s.preview = pv

	sess := &xSession{
		conn:    s.conn,
		root:    s.screen.Root,
		src:     s.win,
		atoms:   s.atoms,
		ws:      &wintree.XWindowSystem{Conn: s.conn},
		payload: s.payload,
		cursors: newCursors(s.conn, s.win),
		logger:  s.logger,
	}
	s.machine = NewMachine(s.win, s.atoms, sess, s.diag, s.logger)

	if err := xproto.MapWindowChecked(s.conn, s.win).Check(); err != nil {
		return errors.Wrap(err, "map window")
	}
	return nil
}

// Allow other applications to know this window is dnd aware.
func (s *Source) setupAwareProperty() error {
	data := make([]byte, 4)
	binary.LittleEndian.PutUint32(data, ProtocolVersion)
	cookie := xproto.ChangePropertyChecked(
		s.conn,
		xproto.PropModeReplace,
		s.win,
		s.atoms.XdndAware, // property
		xproto.AtomAtom,   // type
		32,                // format
		1,
		data)
	return cookie.Check()
}

func (s *Source) setWindowName(str string) {
	b := []byte(str)
	_ = xproto.ChangeProperty(
		s.conn,
		xproto.PropModeReplace,
		s.win,
		xproto.AtomWmName,
		xproto.AtomString,
		8, // format
		uint32(len(b)),
		b)
}

//----------

func (s *Source) Window() xproto.Window {
	return s.win
}

// Paths (and image hint) served to drop targets from now on. Safe to
// call from any goroutine.
func (s *Source) SetPayload(paths []string, img dnd.Image) {
	s.payload.Set(paths, img)

	s.closeMu.Lock()
	defer s.closeMu.Unlock()
	select {
	case <-s.done:
		return
	default:
	}
	// generate an expose event to repaint the preview
	_ = xproto.ClearArea(s.conn, true, s.win, 0, 0, 0, 0)
}

// Stops the event loop and closes the connection. Waits for the loop to
// end.
func (s *Source) Close() error {
	s.shutdown()
	<-s.loopEnd
	return nil
}

// Closed when the event loop ends (Close, window closed by the window
// manager, or connection lost).
func (s *Source) Done() <-chan struct{} {
	return s.loopEnd
}

func (s *Source) shutdown() {
	s.closeOnce.Do(func() {
		s.closeMu.Lock()
		defer s.closeMu.Unlock()
		close(s.done)
		s.conn.Close() // unblocks WaitForEvent
	})
}

//----------

func (s *Source) eventLoop() {
	defer close(s.loopEnd)
	for {
		select {
		case <-s.done:
			return
		default:
		}
		ev, xerr := s.conn.WaitForEvent()
		if ev == nil && xerr == nil {
			// connection closed
			return
		}
		if xerr != nil {
			s.diag(dnd.Diagnostic{Op: "x request", Err: xerr})
		}
		if ev != nil {
			s.handleEvent(ev)
		}
	}
}

func (s *Source) handleEvent(ev xgb.Event) {
	switch t := ev.(type) {
	case xproto.ExposeEvent: // region needs paint
		if t.Count == 0 {
			s.paintPreview()
		}
	case xproto.ConfigureNotifyEvent: // window structure (position,size,...)
		s.size = image.Point{int(t.Width), int(t.Height)}
	case xproto.MapNotifyEvent, xproto.ReparentNotifyEvent, xproto.UnmapNotifyEvent:

	case xproto.ButtonPressEvent:
		// gesture start: the pointer is now grabbed by the source window
	case xproto.ButtonReleaseEvent:
		s.machine.OnButtonRelease(&t)
	case xproto.MotionNotifyEvent:
		s.machine.OnMotionNotify(&t)
	case xproto.EnterNotifyEvent:
		s.machine.OnEnterNotify(&t)
	case xproto.LeaveNotifyEvent:
		s.machine.OnLeaveNotify(&t)

	case xproto.SelectionRequestEvent:
		s.machine.OnSelectionRequest(&t)
	case xproto.SelectionClearEvent:
		s.logger.Debug("xdnd: selection ownership lost", "owner-time", t.Time)

	case xproto.ClientMessageEvent:
		if s.wmp.IsDeleteWindow(&t) {
			s.logger.Debug("xdnd: source window closed")
			s.shutdown()
			return
		}
		_ = s.machine.OnClientMessage(&t)

	default:
		s.logger.Debug("xdnd: unhandled event", "ev", ev.String())
	}
}

func (s *Source) paintPreview() {
	_, img, version := s.payload.Get()
	if err := s.preview.paint(img, version, s.size); err != nil {
		s.logger.Debug("xdnd: preview", "err", err)
	}
}
