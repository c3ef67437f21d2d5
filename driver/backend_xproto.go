//go:build !windows || (windows && xproto)

package driver

import (
	"github.com/jmigpin/dragsource/dnd"
	"github.com/jmigpin/dragsource/driver/xdriver"
	"github.com/jmigpin/dragsource/driver/xdriver/xdndsrc"
)

func newDragBackend(opt *Options) DragBackend {
	xb := xdriver.NewBackend(&xdndsrc.Options{
		Display:     opt.Display,
		Title:       opt.Title,
		Size:        opt.Size,
		Logger:      opt.Logger,
		Diagnostics: opt.Diagnostics,
	})
	return &xBackend{xb}
}

type xBackend struct {
	b *xdriver.Backend
}

func (xb *xBackend) StartDrag(h dnd.WindowHandle, item dnd.DragItem, img dnd.Image) error {
	return xb.b.StartDrag(h, item, img)
}

func (xb *xBackend) ActivateSource() (Responder, error) {
	r, err := xb.b.ActivateSource()
	if err != nil {
		return nil, err
	}
	return r, nil
}
