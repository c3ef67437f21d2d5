package windriver

import (
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"unsafe"

	"github.com/jmigpin/dragsource/dnd"
)

// Functions preceded by "ost" run in the "operating-system-thread".
//
// OLE is initialized per thread (single threaded apartment) so all drags
// run on one locked thread, started on the first drag. The thread and the
// ole runtime live for the rest of the process (no OleUninitialize).
type oleThread struct {
	once    sync.Once
	initErr error
	reqs    chan func()
}

var ost = &oleThread{reqs: make(chan func())}

func (t *oleThread) start() {
	ready := make(chan struct{})
	go func() {
		runtime.LockOSThread()
		t.initErr = ostOleInitialize()
		close(ready)
		if t.initErr != nil {
			return
		}
		for fn := range t.reqs {
			fn()
		}
	}()
	<-ready
}

// Runs fn in the ole thread and waits for it.
func (t *oleThread) run(fn func() error) error {
	t.once.Do(t.start)
	if t.initErr != nil {
		return &dnd.SetupError{Op: "ole initialize", Err: t.initErr}
	}
	ch := make(chan error, 1)
	t.reqs <- func() { ch <- fn() }
	return <-ch
}

func ostOleInitialize() error {
	hr := _OleInitialize(0)
	switch hr {
	case _S_OK, _S_FALSE:
		return nil
	case _RPC_E_CHANGED_MODE:
		return fmt.Errorf("thread already in multithreaded apartment")
	}
	return fmt.Errorf("hresult 0x%x", hr)
}

//----------

// Runs the modal ole drag loop for the paths. Returns when the user drops,
// cancels or presses escape.
func ostDoDragDrop(paths []string, logger *slog.Logger) error {
	b, err := EncodeDropFiles(paths)
	if err != nil {
		return err
	}
	h, err := _GlobalAlloc(_GMEM_FIXED, uintptr(len(b)))
	if err != nil {
		return fmt.Errorf("globalalloc: %w", err)
	}
	// fixed memory: the handle is the pointer
	buf := unsafe.Slice((*byte)(unsafe.Pointer(uintptr(h))), len(b))
	copy(buf, b)

	// the data object owns the block from here on
	do := newComDataObject(h)
	ds := newComDropSource()
	defer ds.release()
	defer do.release()

	effect := uint32(_DROPEFFECT_NONE)
	hr := _DoDragDrop(do.ptr(), ds.ptr(), _DROPEFFECT_COPY, &effect)
	if hresultFailed(hr) {
		return fmt.Errorf("dodragdrop: hresult 0x%x", hr)
	}
	logger.Debug("ole: drag ended",
		"dropped", hr == _DRAGDROP_S_DROP,
		"effect", effect,
		"pinned", objects.len())
	return nil
}

//----------

// Native window of the console, if any.
func ConsoleWindow() dnd.WindowHandle {
	return dnd.WindowHandle(_GetConsoleWindow())
}
