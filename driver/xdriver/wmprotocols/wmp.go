// Package wmprotocols lets the window manager ask a window to close
// instead of killing its client.
package wmprotocols

import (
	"encoding/binary"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/jmigpin/dragsource/driver/xdriver/xutil"
)

// https://tronche.com/gui/x/icccm/sec-4.html#s-4.2.8.1

type Atoms struct {
	WM_PROTOCOLS     xproto.Atom
	WM_DELETE_WINDOW xproto.Atom
}

type WMP struct {
	conn  *xgb.Conn
	win   xproto.Window
	atoms Atoms
}

func NewWMP(conn *xgb.Conn, win xproto.Window) (*WMP, error) {
	wmp := &WMP{conn: conn, win: win}
	if err := xutil.LoadAtoms(conn, &wmp.atoms, false); err != nil {
		return nil, err
	}
	if err := wmp.setupWindowProperty(); err != nil {
		return nil, err
	}
	return wmp, nil
}

func (wmp *WMP) setupWindowProperty() error {
	data := make([]byte, 4)
	binary.LittleEndian.PutUint32(data, uint32(wmp.atoms.WM_DELETE_WINDOW))
	cookie := xproto.ChangePropertyChecked(
		wmp.conn,
		xproto.PropModeAppend, // mode
		wmp.win,
		wmp.atoms.WM_PROTOCOLS, // property
		xproto.AtomAtom,        // type
		32,                     // format: xprop says that it should be 32 bit
		uint32(len(data))/4,
		data)
	return cookie.Check()
}

func (wmp *WMP) IsDeleteWindow(ev *xproto.ClientMessageEvent) bool {
	return isDeleteWindow(&wmp.atoms, ev)
}

func isDeleteWindow(atoms *Atoms, ev *xproto.ClientMessageEvent) bool {
	if ev.Type != atoms.WM_PROTOCOLS || ev.Format != 32 {
		return false
	}
	// first word is the protocol atom
	return xproto.Atom(ev.Data.Data32[0]) == atoms.WM_DELETE_WINDOW
}
