// Package wintree finds the window under a screen point.
//
// The X server has no "window at point" request that works across client
// hierarchies, so the tree is walked from the root doing a bounding box
// hit test on each level.
package wintree

import (
	"image"
)

type Window uint32

// Read-only view of the window tree.
type WindowSystem interface {
	// Children in stacking order, bottommost first.
	ChildrenOf(Window) ([]Window, error)
	// Bounds relative to the parent window. Windows that can't be hit
	// (unmapped) report an empty rectangle.
	BoundsOf(Window) (image.Rectangle, error)
}

const DefaultMaxDepth = 64

// Returns the innermost window containing p.
func Locate(ws WindowSystem, root Window, p image.Point) Window {
	path := LocatePath(ws, root, p, DefaultMaxDepth)
	return path[len(path)-1]
}

// Returns the windows containing p, from root to the innermost. The
// result always starts with root. At each level the topmost child
// containing p is chosen. Descent stops at maxDepth levels below root or
// when the children can't be read.
func LocatePath(ws WindowSystem, root Window, p image.Point, maxDepth int) []Window {
	type frame struct {
		win    Window
		origin image.Point // absolute position of win
		depth  int
	}
	path := []Window{}
	stack := []frame{{win: root}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		path = append(path, f.win)

		if f.depth >= maxDepth {
			break
		}
		children, err := ws.ChildrenOf(f.win)
		if err != nil {
			break
		}
		// topmost first
		for i := len(children) - 1; i >= 0; i-- {
			c := children[i]
			r, err := ws.BoundsOf(c)
			if err != nil || r.Empty() {
				continue
			}
			r = r.Add(f.origin)
			if p.In(r) {
				stack = append(stack, frame{c, r.Min, f.depth + 1})
				break
			}
		}
	}
	return path
}
