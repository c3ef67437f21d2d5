// Package xdriver is the X11 drag backend.
package xdriver

import (
	"log/slog"
	"os"
	"sync"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/jmigpin/dragsource/dnd"
	"github.com/jmigpin/dragsource/driver/xdriver/xdndsrc"
)

// Running xdnd source, as seen by the backend.
type source interface {
	SetPayload(paths []string, img dnd.Image)
	Done() <-chan struct{}
	Close() error
}

type Backend struct {
	opt       xdndsrc.Options
	newSource func(*xdndsrc.Options) (source, error)

	mu    sync.Mutex
	resp  *Responder
	paths []string
	img   dnd.Image
}

func NewBackend(opt *xdndsrc.Options) *Backend {
	o := *opt
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	if o.Display == "" {
		o.Display = os.Getenv("DISPLAY")
	}
	b := &Backend{opt: o}
	b.newSource = func(opt *xdndsrc.Options) (source, error) {
		return xdndsrc.NewSource(opt)
	}
	return b
}

// No protocol activity: records the payload served by the responder on the
// next gesture.
func (b *Backend) StartDrag(h dnd.WindowHandle, item dnd.DragItem, img dnd.Image) error {
	paths, err := dnd.Paths(item)
	if err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.paths = paths
	b.img = img
	if b.resp != nil && !b.resp.ended() {
		b.resp.src.SetPayload(paths, img)
	}
	b.opt.Logger.Debug("xdnd: payload set", "window", uintptr(h), "paths", len(paths))
	return nil
}

// Starts the xdnd source. Returns the running responder if there is one.
func (b *Backend) ActivateSource() (*Responder, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.resp != nil && !b.resp.ended() {
		return b.resp, nil
	}
	src, err := b.newSource(&b.opt)
	if err != nil {
		return nil, err
	}
	if len(b.paths) > 0 {
		src.SetPayload(b.paths, b.img)
	}
	b.resp = &Responder{b: b, src: src}
	b.opt.Logger.Debug("xdnd: source activated")
	return b.resp, nil
}

//----------

type Responder struct {
	b         *Backend
	src       source
	closeOnce sync.Once
	closeErr  error
}

// Stops the source. The backend can be activated again afterwards.
func (r *Responder) Close() error {
	r.closeOnce.Do(func() {
		r.b.mu.Lock()
		if r.b.resp == r {
			r.b.resp = nil
		}
		r.b.mu.Unlock()
		r.closeErr = r.src.Close()
	})
	return r.closeErr
}

// Ended on its own (window closed, connection lost). Called with the
// backend lock held; clears the backend responder.
func (r *Responder) ended() bool {
	select {
	case <-r.src.Done():
		if r.b.resp == r {
			r.b.resp = nil
		}
		return true
	default:
		return false
	}
}

func (r *Responder) Done() <-chan struct{} {
	return r.src.Done()
}

// Native window of the source.
func (r *Responder) Window() dnd.WindowHandle {
	if w, ok := r.src.(interface{ Window() xproto.Window }); ok {
		return dnd.WindowHandle(w.Window())
	}
	return 0
}
