// Package dnd holds the platform independent description of a drag:
// what is being dragged, the optional image hint, and the error and
// diagnostics types shared by the drag backends.
package dnd

import (
	"fmt"
	"path/filepath"
)

// Opaque native window reference supplied by the host toolkit (HWND on
// windows, window id on X11).
type WindowHandle uintptr

//----------

// DragItem is what is being dragged. The only case is Files.
type DragItem interface {
	isDragItem()
}

// Ordered list of file paths.
type Files []string

func (Files) isDragItem() {}

// Abs returns a copy with every path resolved to absolute form.
func (f Files) Abs() (Files, error) {
	if len(f) == 0 {
		return nil, ErrEmptyPayload
	}
	u := make(Files, 0, len(f))
	for _, p := range f {
		if p == "" {
			return nil, fmt.Errorf("files: empty path")
		}
		a, err := filepath.Abs(p)
		if err != nil {
			return nil, fmt.Errorf("files: abs: %w", err)
		}
		u = append(u, a)
	}
	return u, nil
}

//----------

// Paths extracts the absolute paths of a drag item.
func Paths(item DragItem) ([]string, error) {
	switch t := item.(type) {
	case Files:
		u, err := t.Abs()
		if err != nil {
			return nil, err
		}
		return []string(u), nil
	case nil:
		return nil, ErrEmptyPayload
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedItem, item)
	}
}
