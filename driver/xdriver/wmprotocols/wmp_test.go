package wmprotocols

import (
	"testing"

	"github.com/BurntSushi/xgb/xproto"
)

func TestIsDeleteWindow(t *testing.T) {
	atoms := &Atoms{WM_PROTOCOLS: 10, WM_DELETE_WINDOW: 11}
	type pair struct {
		typ    xproto.Atom
		format byte
		first  uint32
		want   bool
	}
	pairs := []pair{
		{10, 32, 11, true},
		{10, 32, 12, false},
		{10, 8, 11, false},
		{9, 32, 11, false},
	}
	for _, p := range pairs {
		ev := &xproto.ClientMessageEvent{
			Type:   p.typ,
			Format: p.format,
			Data:   xproto.ClientMessageDataUnionData32New([]uint32{p.first, 0, 0, 0, 0}),
		}
		if got := isDeleteWindow(atoms, ev); got != p.want {
			t.Errorf("%+v: got %v", p, got)
		}
	}
}
