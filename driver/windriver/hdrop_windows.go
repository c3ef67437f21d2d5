package windriver

import (
	"golang.org/x/sys/windows"
)

// Paths held by an hdrop block, as the shell reads them. Used to verify
// the CF_HDROP blocks built by EncodeDropFiles.
func FilesDropped(hDrop uintptr) []string {
	// http://delphidabbler.com/articles?article=11

	// find the number of files dropped
	res := _DragQueryFileW(hDrop, 0xffffffff, nil, 0)
	n := int(res)
	// find the sizes of the buffers needed
	sizes := make([]int, n)
	for i := 0; i < n; i++ {
		size := _DragQueryFileW(hDrop, uint32(i), nil, 0)
		sizes[i] = int(size)
	}
	// fetch the filenames
	names := make([]string, n)
	for i := 0; i < n; i++ {
		u := make([]uint16, sizes[i]+1) // +1 is the nil terminator
		_ = _DragQueryFileW(hDrop, uint32(i), &u[0], uint32(len(u)))
		names[i] = windows.UTF16ToString(u)
	}
	return names
}
