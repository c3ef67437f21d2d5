package windriver

import (
	"log/slog"

	"github.com/jmigpin/dragsource/dnd"
)

// Windows drag backend: each StartDrag runs a blocking ole drag loop.
type Backend struct {
	logger *slog.Logger
}

func NewBackend(logger *slog.Logger) *Backend {
	if logger == nil {
		logger = slog.Default()
	}
	return &Backend{logger: logger}
}

// Blocks until the gesture ends. The window handle is informative: ole
// tracks the pointer itself.
func (b *Backend) StartDrag(h dnd.WindowHandle, item dnd.DragItem, img dnd.Image) error {
	paths, err := dnd.Paths(item)
	if err != nil {
		return err
	}
	if img != nil {
		b.logger.Debug("ole: drag image hint not supported")
	}
	b.logger.Debug("ole: start drag", "window", uintptr(h), "paths", len(paths))
	return ost.run(func() error {
		return ostDoDragDrop(paths, b.logger)
	})
}

// Nothing runs in the background on windows.
func (b *Backend) ActivateSource() (*Responder, error) {
	return &Responder{}, nil
}

//----------

type Responder struct{}

func (r *Responder) Close() error {
	return nil
}

func (r *Responder) Done() <-chan struct{} {
	return nil
}

func (r *Responder) Window() dnd.WindowHandle {
	return ConsoleWindow()
}
