//go:build windows && !xproto

package driver

import (
	"github.com/jmigpin/dragsource/dnd"
	"github.com/jmigpin/dragsource/driver/windriver"
)

func newDragBackend(opt *Options) DragBackend {
	return &winBackend{windriver.NewBackend(opt.Logger)}
}

type winBackend struct {
	b *windriver.Backend
}

func (wb *winBackend) StartDrag(h dnd.WindowHandle, item dnd.DragItem, img dnd.Image) error {
	return wb.b.StartDrag(h, item, img)
}

func (wb *winBackend) ActivateSource() (Responder, error) {
	r, err := wb.b.ActivateSource()
	if err != nil {
		return nil, err
	}
	return r, nil
}
