// Package dragsource starts native drags of files out of an application:
// ole DoDragDrop on windows, the XDND protocol on X11.
//
// On X11 the host calls SetDragSource once to start the source window and
// StartDrag to set what a gesture over that window drags. On windows
// StartDrag runs the whole drag and returns when it ends.
package dragsource

import (
	"sync"

	"github.com/jmigpin/dragsource/dnd"
	"github.com/jmigpin/dragsource/driver"
)

var (
	mu      sync.Mutex
	opt     driver.Options
	backend driver.DragBackend

	newBackend = driver.NewDragBackend
)

// Sets the backend options. Only effective before the first StartDrag or
// SetDragSource call.
func Configure(o driver.Options) {
	mu.Lock()
	defer mu.Unlock()
	opt = o
}

func getBackend() driver.DragBackend {
	mu.Lock()
	defer mu.Unlock()
	if backend == nil {
		backend = newBackend(&opt)
	}
	return backend
}

//----------

func StartDrag(h dnd.WindowHandle, item dnd.DragItem, img dnd.Image) error {
	return getBackend().StartDrag(h, item, img)
}

// Starts the drag source. Calling it again while the responder is running
// returns the same responder.
func SetDragSource() (driver.Responder, error) {
	return getBackend().ActivateSource()
}
