// Package dragndrop is a minimal XDND drop target. It accepts uri lists
// and reports the dropped paths; the dragsource command uses it to check
// a source end to end.
package dragndrop

import (
	"encoding/binary"
	"image"
	"log/slog"
	"math"
	"sync"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/jmigpin/dragsource/dnd"
	"github.com/jmigpin/dragsource/driver/xdriver/wmprotocols"
	"github.com/jmigpin/dragsource/driver/xdriver/xdndsrc"
	"github.com/pkg/errors"
)

// protocol: https://www.acc.umu.se/~vatten/XDND.html
// explanation with example: http://www.edwardrosten.com/code/dist/x_clipboard-1.1/paste.cc

type Options struct {
	Display string
	Title   string
	Size    image.Point
	Logger  *slog.Logger
	OnDrop  func(paths []string, err error)
}

// Drop target window.
type Target struct {
	conn   *xgb.Conn
	win    xproto.Window
	atoms  *xdndsrc.AtomTable
	wmp    *wmprotocols.WMP
	logger *slog.Logger
	dropFn func([]string, error)

	// protocol output, replaced in tests
	send    func(win xproto.Window, typ xproto.Atom, data []uint32)
	convert func(time xproto.Timestamp)
	fetch   func(ev *xproto.SelectionNotifyEvent) ([]byte, error)

	data DndData

	closeOnce sync.Once
	done      chan struct{}
	loopEnd   chan struct{}
}

func NewTarget(opt *Options) (*Target, error) {
	o := *opt
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	if o.OnDrop == nil {
		o.OnDrop = func([]string, error) {}
	}
	if o.Size.X <= 0 || o.Size.Y <= 0 {
		o.Size = image.Point{200, 200}
	}
	if o.Title == "" {
		o.Title = "drop target"
	}

	conn, err := xgb.NewConnDisplay(o.Display)
	if err != nil {
		return nil, &dnd.SetupError{Op: "x connect", Err: errors.Wrap(err, "display "+o.Display)}
	}
	t := &Target{
		conn:    conn,
		logger:  o.Logger,
		dropFn:  o.OnDrop,
		done:    make(chan struct{}),
		loopEnd: make(chan struct{}),
	}
	if err := t.initialize(&o); err != nil {
		conn.Close()
		return nil, &dnd.SetupError{Op: "x target window", Err: err}
	}
	t.send = t.sendClientMessage
	t.convert = t.convertSelection
	t.fetch = t.extractData
	go t.eventLoop()
	return t, nil
}

func (t *Target) initialize(o *Options) error {
	screen := xproto.Setup(t.conn).DefaultScreen(t.conn)

	atoms, err := xdndsrc.NewAtomTable(t.conn)
	if err != nil {
		return errors.Wrap(err, "atoms")
	}
	t.atoms = atoms

	win, err := xproto.NewWindowId(t.conn)
	if err != nil {
		return errors.Wrap(err, "window id")
	}
	t.win = win

	mask := uint32(xproto.CwBackPixel | xproto.CwEventMask)
	values := []uint32{screen.BlackPixel, xproto.EventMaskStructureNotify}
	c1 := xproto.CreateWindowChecked(
		t.conn,
		screen.RootDepth,
		t.win,
		screen.Root,
		0, 0, uint16(o.Size.X), uint16(o.Size.Y),
		0, // border width
		xproto.WindowClassInputOutput,
		screen.RootVisual,
		mask, values)
	if err := c1.Check(); err != nil {
		return errors.Wrap(err, "create window")
	}

	if err := t.setupWindowProperty(); err != nil {
		return errors.Wrap(err, "xdndaware property")
	}
	name := []byte(o.Title)
	_ = xproto.ChangeProperty(t.conn, xproto.PropModeReplace, t.win,
		xproto.AtomWmName, xproto.AtomString, 8, uint32(len(name)), name)

	wmp, err := wmprotocols.NewWMP(t.conn, t.win)
	if err != nil {
		return errors.Wrap(err, "wm protocols")
	}
	t.wmp = wmp

	return xproto.MapWindowChecked(t.conn, t.win).Check()
}

// Allow other applications to know this program is dnd aware.
func (t *Target) setupWindowProperty() error {
	data := make([]byte, 4)
	binary.LittleEndian.PutUint32(data, xdndsrc.ProtocolVersion)
	cookie := xproto.ChangePropertyChecked(
		t.conn,
		xproto.PropModeReplace, // mode
		t.win,
		t.atoms.XdndAware, // atom
		xproto.AtomAtom,   // type
		32,                // format: xprop says that it should be 32 bit
		1,
		data)
	return cookie.Check()
}

//----------

func (t *Target) Window() xproto.Window {
	return t.win
}

func (t *Target) Done() <-chan struct{} {
	return t.loopEnd
}

func (t *Target) Close() error {
	t.shutdown()
	<-t.loopEnd
	return nil
}

func (t *Target) shutdown() {
	t.closeOnce.Do(func() {
		close(t.done)
		t.conn.Close()
	})
}

//----------

func (t *Target) eventLoop() {
	defer close(t.loopEnd)
	for {
		select {
		case <-t.done:
			return
		default:
		}
		ev, xerr := t.conn.WaitForEvent()
		if ev == nil && xerr == nil {
			return
		}
		if xerr != nil {
			t.logger.Debug("dnd target: x error", "err", xerr)
			continue
		}
		switch u := ev.(type) {
		case xproto.ClientMessageEvent:
			if t.wmp.IsDeleteWindow(&u) {
				t.shutdown()
				return
			}
			t.OnClientMessage(&u)
		case xproto.SelectionNotifyEvent:
			t.OnSelectionNotify(&u)
		}
	}
}

//----------

// Reports false if the message is not part of the protocol.
func (t *Target) OnClientMessage(ev *xproto.ClientMessageEvent) bool {
	if ev.Format != 32 {
		return false
	}
	data := ev.Data.Data32
	switch ev.Type {
	case t.atoms.XdndEnter:
		// first event to happen on a drag and drop
		t.onEnter(data)
	case t.atoms.XdndPosition:
		// after the enter event, it follows many position events
		t.onPosition(data)
	case t.atoms.XdndDrop:
		// drag released
		t.onDrop(data)
	case t.atoms.XdndLeave:
		t.clearData()
	default:
		return false
	}
	return true
}

func (t *Target) onEnter(data []uint32) {
	e, types, more, err := xdndsrc.ParseEnterEvent(data)
	if err != nil {
		t.logger.Debug("dnd target: enter", "err", err)
		return
	}
	t.data = DndData{hasEnter: true}
	t.data.enter.win = e.Source
	t.data.enter.version = e.Version
	if more {
		// only the first three types are looked at (no XdndTypeList)
		t.logger.Debug("dnd target: enter with more than 3 data types")
	}
	for _, typ := range types {
		if typ == t.atoms.TextURIList {
			t.data.enter.uriList = true
		}
	}
}

func (t *Target) onPosition(data []uint32) {
	pe, err := xdndsrc.ParsePositionEvent(data)
	if err != nil || !t.data.hasEnter || pe.Source != t.data.enter.win {
		// position event window must be the same as the enter event
		return
	}
	t.data.hasPosition = true
	accept := t.data.enter.uriList
	u := xdndsrc.StatusEvent{
		Target:        t.win,
		Accept:        accept,
		WantPositions: true,
		Action:        t.atoms.XdndActionCopy,
	}
	t.send(pe.Source, t.atoms.XdndStatus, u.Data32())
}

func (t *Target) onDrop(data []uint32) {
	de, err := xdndsrc.ParseDropEvent(data)
	if err != nil || !t.data.hasPosition || de.Source != t.data.enter.win {
		return
	}
	if !t.data.enter.uriList {
		t.sendFinished(false)
		return
	}
	t.data.hasDrop = true
	t.data.drop.timestamp = de.Time
	t.convert(de.Time)
}

func (t *Target) convertSelection(time xproto.Timestamp) {
	// will get selection-notify event
	_ = xproto.ConvertSelection(
		t.conn,
		t.win,
		t.atoms.XdndSelection,
		t.atoms.TextURIList,
		t.atoms.XdndSelection, // property to receive the data
		time)
}

// Called after a request for data.
func (t *Target) OnSelectionNotify(ev *xproto.SelectionNotifyEvent) {
	if !t.data.hasDrop || ev.Selection != t.atoms.XdndSelection {
		return
	}
	if ev.Property == xproto.AtomNone {
		t.sendFinished(false)
		t.dropFn(nil, errors.New("selection request refused"))
		return
	}
	b, err := t.fetch(ev)
	if err != nil {
		t.sendFinished(false)
		t.dropFn(nil, err)
		return
	}
	paths, err := xdndsrc.ParseURIList(b)
	t.sendFinished(err == nil)
	t.dropFn(paths, err)
}

func (t *Target) extractData(ev *xproto.SelectionNotifyEvent) ([]byte, error) {
	cookie := xproto.GetProperty(
		t.conn,
		true, // delete
		t.win,
		ev.Property,    // property that contains the data
		ev.Target,      // type
		0,              // long offset
		math.MaxUint32) // long length
	reply, err := cookie.Reply()
	if err != nil {
		return nil, err
	}
	return reply.Value, nil
}

//----------

func (t *Target) sendFinished(accepted bool) {
	src := t.data.enter.win
	u := xdndsrc.FinishedEvent{Target: t.win, Accepted: accepted, Action: t.atoms.XdndActionCopy}
	t.send(src, t.atoms.XdndFinished, u.Data32())
	t.clearData()
}

func (t *Target) sendClientMessage(win xproto.Window, typ xproto.Atom, data []uint32) {
	cme := &xproto.ClientMessageEvent{
		Type:   typ,
		Window: win,
		Format: 32,
		Data:   xproto.ClientMessageDataUnionData32New(data),
	}
	err := xproto.SendEventChecked(
		t.conn,
		false, // propagate
		cme.Window,
		xproto.EventMaskNoEvent,
		string(cme.Bytes())).Check()
	if err != nil {
		t.logger.Debug("dnd target: send", "err", err)
	}
}

func (t *Target) clearData() {
	t.data = DndData{}
}

//----------

type DndData struct {
	hasEnter    bool
	hasPosition bool
	hasDrop     bool
	enter       struct {
		win     xproto.Window
		version uint32
		uriList bool
	}
	drop struct {
		timestamp xproto.Timestamp
	}
}
