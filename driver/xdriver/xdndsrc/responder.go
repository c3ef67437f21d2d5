package xdndsrc

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
	"sync"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/jmigpin/dragsource/dnd"
	"github.com/pkg/errors"
)

// Data served to drop targets. Set by the host (any goroutine), read by
// the source event loop.
type Payload struct {
	mu      sync.Mutex
	paths   []string
	img     dnd.Image
	version int // incremented on each set
}

func (p *Payload) Set(paths []string, img dnd.Image) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.paths = append([]string(nil), paths...)
	p.img = img
	p.version++
}

func (p *Payload) Get() (paths []string, img dnd.Image, version int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.paths, p.img, p.version
}

//----------

// One "file://" uri per path, each terminated by CRLF.
func URIList(paths []string) []byte {
	buf := &bytes.Buffer{}
	for _, p := range paths {
		u := url.URL{Scheme: "file", Path: filepath.ToSlash(p)}
		buf.WriteString(u.String())
		buf.WriteString("\r\n")
	}
	return buf.Bytes()
}

// Inverse of URIList. Lines starting with '#' are comments
// (https://www.rfc-editor.org/rfc/rfc2483#section-5).
func ParseURIList(b []byte) ([]string, error) {
	u := []string{}
	for _, line := range strings.Split(string(b), "\n") {
		line = strings.TrimSuffix(line, "\r")
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		v, err := url.Parse(line)
		if err != nil {
			return nil, err
		}
		if v.Scheme != "file" {
			return nil, fmt.Errorf("uri list: not a file uri: %q", line)
		}
		u = append(u, filepath.FromSlash(v.Path))
	}
	return u, nil
}

//----------

type selectionReply struct {
	property xproto.Atom // xproto.AtomNone: request refused
	typ      xproto.Atom
	format   byte
	data     []byte
}

// Builds the answer to a selection request for the given paths.
func buildSelectionReply(atoms *AtomTable, ev *xproto.SelectionRequestEvent, paths []string) *selectionReply {
	if len(paths) == 0 {
		return &selectionReply{property: xproto.AtomNone}
	}

	// obsolete clients don't set the property, use the target
	// https://tronche.com/gui/x/icccm/sec-2.html#s-2.2
	prop := ev.Property
	if prop == xproto.AtomNone {
		prop = ev.Target
	}

	if ev.Target == atoms.Targets {
		targets := []xproto.Atom{atoms.Targets, atoms.TextURIList, atoms.TextPlain}
		b := make([]byte, 4*len(targets))
		for i, t := range targets {
			binary.LittleEndian.PutUint32(b[i*4:], uint32(t))
		}
		return &selectionReply{property: prop, typ: atoms.Atom, format: 32, data: b}
	}

	// text/uri-list, text/plain and non-standard types all get the list
	return &selectionReply{property: prop, typ: ev.Target, format: 8, data: URIList(paths)}
}

// X requests used to answer a selection request.
type selectionWriter interface {
	writeProperty(win xproto.Window, r *selectionReply) error
	notify(ev *xproto.SelectionNotifyEvent) error
}

// Writes the reply into the requestor property and notifies the
// requestor, echoing the request fields. A failed property write is
// notified as a refusal (property None) and returned.
func serveSelection(w selectionWriter, atoms *AtomTable, ev *xproto.SelectionRequestEvent, paths []string) error {
	r := buildSelectionReply(atoms, ev, paths)

	var werr error
	if r.property != xproto.AtomNone {
		if err := w.writeProperty(ev.Requestor, r); err != nil {
			werr = errors.Wrap(err, "selection property")
			r.property = xproto.AtomNone
		}
	}

	sne := &xproto.SelectionNotifyEvent{
		Requestor: ev.Requestor,
		Selection: ev.Selection,
		Target:    ev.Target,
		Property:  r.property,
		Time:      ev.Time,
	}
	if err := w.notify(sne); err != nil {
		if werr != nil {
			return werr
		}
		return err
	}
	return werr
}

//----------

type connSelectionWriter struct {
	conn *xgb.Conn
}

func (w connSelectionWriter) writeProperty(win xproto.Window, r *selectionReply) error {
	n := uint32(len(r.data))
	if r.format == 32 {
		n /= 4
	}
	c1 := xproto.ChangePropertyChecked(
		w.conn,
		xproto.PropModeReplace,
		win, // requestor window
		r.property,
		r.typ,
		r.format,
		n,
		r.data)
	return c1.Check()
}

func (w connSelectionWriter) notify(ev *xproto.SelectionNotifyEvent) error {
	c2 := xproto.SendEventChecked(
		w.conn,
		false,
		ev.Requestor,
		xproto.EventMaskNoEvent,
		string(ev.Bytes()))
	return c2.Check()
}
