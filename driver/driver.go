// Package driver selects the drag backend at build time: X11 (xdnd) or,
// on windows, ole.
package driver

import (
	"image"
	"log/slog"

	"github.com/jmigpin/dragsource/dnd"
)

type DragBackend interface {
	// Windows: blocks until the drag ends. X11: records the payload
	// served on the next gesture over the source window.
	StartDrag(h dnd.WindowHandle, item dnd.DragItem, img dnd.Image) error
	// Idempotent while the returned responder is running.
	ActivateSource() (Responder, error)
}

// Running drag source.
type Responder interface {
	Window() dnd.WindowHandle
	// Closed when the source stops by itself. Nil if it never does.
	Done() <-chan struct{}
	Close() error
}

type Options struct {
	Display     string      // X11 display, empty uses $DISPLAY
	Title       string      // X11 source window title
	Size        image.Point // X11 source window size
	Logger      *slog.Logger
	Diagnostics dnd.DiagnosticsSink
}

func NewDragBackend(opt *Options) DragBackend {
	o := *opt
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	if o.Diagnostics == nil {
		o.Diagnostics = dnd.LogDiagnostics(o.Logger)
	}
	return newDragBackend(&o)
}
