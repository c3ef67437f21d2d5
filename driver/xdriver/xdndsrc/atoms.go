package xdndsrc

import (
	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/jmigpin/dragsource/driver/xdriver/xutil"
)

// Protocol atoms, resolved once per source connection.
type AtomTable struct {
	XdndAware    xproto.Atom
	XdndEnter    xproto.Atom
	XdndPosition xproto.Atom
	XdndStatus   xproto.Atom
	XdndDrop     xproto.Atom
	XdndLeave    xproto.Atom
	XdndFinished xproto.Atom

	XdndSelection  xproto.Atom
	XdndActionCopy xproto.Atom

	Atom        xproto.Atom `loadAtoms:"ATOM"`
	Targets     xproto.Atom `loadAtoms:"TARGETS"`
	TextURIList xproto.Atom `loadAtoms:"text/uri-list"`
	TextPlain   xproto.Atom `loadAtoms:"text/plain"`
}

func NewAtomTable(conn *xgb.Conn) (*AtomTable, error) {
	at := &AtomTable{}
	if err := xutil.LoadAtoms(conn, at, false); err != nil {
		return nil, err
	}
	return at, nil
}
