package dragndrop

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/jmigpin/dragsource/driver/xdriver/xdndsrc"
)

var testAtoms = &xdndsrc.AtomTable{
	XdndAware:      1,
	XdndEnter:      2,
	XdndPosition:   3,
	XdndStatus:     4,
	XdndDrop:       5,
	XdndLeave:      6,
	XdndFinished:   7,
	XdndSelection:  8,
	XdndActionCopy: 9,
	Atom:           10,
	Targets:        11,
	TextURIList:    12,
	TextPlain:      13,
}

const testSrc = xproto.Window(1000)

type sent struct {
	win  xproto.Window
	typ  xproto.Atom
	data []uint32
}

type harness struct {
	t        *Target
	sent     []sent
	converts int
	value    []byte
	fetchErr error
	paths    []string
	dropErr  error
	drops    int
}

func newHarness() *harness {
	h := &harness{}
	h.t = &Target{
		win:    50,
		atoms:  testAtoms,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	h.t.dropFn = func(paths []string, err error) {
		h.paths, h.dropErr = paths, err
		h.drops++
	}
	h.t.send = func(win xproto.Window, typ xproto.Atom, data []uint32) {
		h.sent = append(h.sent, sent{win, typ, data})
	}
	h.t.convert = func(xproto.Timestamp) { h.converts++ }
	h.t.fetch = func(*xproto.SelectionNotifyEvent) ([]byte, error) {
		return h.value, h.fetchErr
	}
	return h
}

func (h *harness) msg(typ xproto.Atom, data []uint32) bool {
	ev := &xproto.ClientMessageEvent{
		Format: 32,
		Type:   typ,
		Data:   xproto.ClientMessageDataUnionData32New(data),
	}
	return h.t.OnClientMessage(ev)
}

func (h *harness) enterPositionDrop(typ xproto.Atom) {
	e := &xdndsrc.EnterEvent{Source: testSrc, Version: 5, Type: typ}
	h.msg(testAtoms.XdndEnter, e.Data32())
	p := &xdndsrc.PositionEvent{Source: testSrc, RootX: 4, RootY: 5, Time: 10, Action: testAtoms.XdndActionCopy}
	h.msg(testAtoms.XdndPosition, p.Data32())
	d := &xdndsrc.DropEvent{Source: testSrc, Time: 10}
	h.msg(testAtoms.XdndDrop, d.Data32())
}

func (h *harness) notify(prop xproto.Atom) {
	h.t.OnSelectionNotify(&xproto.SelectionNotifyEvent{
		Selection: testAtoms.XdndSelection,
		Target:    testAtoms.TextURIList,
		Property:  prop,
	})
}

//----------

func TestDropURIList(t *testing.T) {
	h := newHarness()
	h.value = xdndsrc.URIList([]string{"/tmp/a.txt", "/tmp/b c"})
	h.enterPositionDrop(testAtoms.TextURIList)

	if len(h.sent) != 1 || h.sent[0].typ != testAtoms.XdndStatus || h.sent[0].win != testSrc {
		t.Fatalf("got %+v", h.sent)
	}
	st, err := xdndsrc.ParseStatusEvent(h.sent[0].data)
	if err != nil {
		t.Fatal(err)
	}
	if !st.Accept || !st.WantPositions || st.Target != 50 || st.Action != testAtoms.XdndActionCopy {
		t.Fatalf("got %+v", st)
	}
	if h.converts != 1 {
		t.Fatalf("converts %v", h.converts)
	}

	h.notify(testAtoms.XdndSelection)
	if h.drops != 1 || h.dropErr != nil || len(h.paths) != 2 || h.paths[1] != "/tmp/b c" {
		t.Fatalf("got %v %v", h.paths, h.dropErr)
	}
	last := h.sent[len(h.sent)-1]
	fin, err := xdndsrc.ParseFinishedEvent(last.data)
	if err != nil {
		t.Fatal(err)
	}
	if last.typ != testAtoms.XdndFinished || !fin.Accepted || fin.Action != testAtoms.XdndActionCopy {
		t.Fatalf("got %+v", fin)
	}
	if h.t.data.hasEnter {
		t.Fatal("data not cleared")
	}
}

func TestDropUnsupportedType(t *testing.T) {
	h := newHarness()
	h.enterPositionDrop(testAtoms.TextPlain)

	st, _ := xdndsrc.ParseStatusEvent(h.sent[0].data)
	if st.Accept {
		t.Fatal("accepted unsupported type")
	}
	if h.converts != 0 {
		t.Fatal("requested data")
	}
	last := h.sent[len(h.sent)-1]
	fin, _ := xdndsrc.ParseFinishedEvent(last.data)
	if last.typ != testAtoms.XdndFinished || fin.Accepted || fin.Action != xproto.AtomNone {
		t.Fatalf("got %+v", fin)
	}
}

func TestDropRefused(t *testing.T) {
	h := newHarness()
	h.enterPositionDrop(testAtoms.TextURIList)
	h.notify(xproto.AtomNone)
	if h.drops != 1 || h.dropErr == nil {
		t.Fatalf("got %v %v", h.drops, h.dropErr)
	}

	h = newHarness()
	h.fetchErr = errors.New("bad property")
	h.enterPositionDrop(testAtoms.TextURIList)
	h.notify(testAtoms.XdndSelection)
	if h.drops != 1 || h.dropErr == nil {
		t.Fatalf("got %v %v", h.drops, h.dropErr)
	}
	fin, _ := xdndsrc.ParseFinishedEvent(h.sent[len(h.sent)-1].data)
	if fin.Accepted {
		t.Fatal("finished accepted")
	}
}

func TestOutOfOrder(t *testing.T) {
	h := newHarness()

	// position and drop without enter
	p := &xdndsrc.PositionEvent{Source: testSrc}
	h.msg(testAtoms.XdndPosition, p.Data32())
	d := &xdndsrc.DropEvent{Source: testSrc}
	h.msg(testAtoms.XdndDrop, d.Data32())
	h.notify(testAtoms.XdndSelection)
	if len(h.sent) != 0 || h.converts != 0 || h.drops != 0 {
		t.Fatalf("sent=%v converts=%v drops=%v", h.sent, h.converts, h.drops)
	}

	// position from another source is ignored
	e := &xdndsrc.EnterEvent{Source: testSrc, Version: 5, Type: testAtoms.TextURIList}
	h.msg(testAtoms.XdndEnter, e.Data32())
	p.Source = testSrc + 1
	h.msg(testAtoms.XdndPosition, p.Data32())
	if len(h.sent) != 0 {
		t.Fatalf("got %+v", h.sent)
	}

	// leave clears the exchange
	l := &xdndsrc.LeaveEvent{Source: testSrc}
	h.msg(testAtoms.XdndLeave, l.Data32())
	if h.t.data.hasEnter {
		t.Fatal("leave did not clear")
	}
}

func TestUnknownMessage(t *testing.T) {
	h := newHarness()
	if h.msg(99, make([]uint32, 5)) {
		t.Fatal("handled unknown message")
	}
	ev := &xproto.ClientMessageEvent{Format: 8, Type: testAtoms.XdndEnter}
	if h.t.OnClientMessage(ev) {
		t.Fatal("handled format 8")
	}
}
