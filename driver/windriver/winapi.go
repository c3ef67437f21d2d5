//go:build windows

package windriver

//go:generate go run golang.org/x/sys/windows/mkwinsyscall -output zwinapi.go winapi.go

import (
	"golang.org/x/sys/windows"
)

// https://learn.microsoft.com/en-us/windows/win32/api/ole2/nf-ole2-oleinitialize
const (
	_S_FALSE            = 0x1 // already initialized on this thread
	_RPC_E_CHANGED_MODE = 0x80010106
)

var (
	_IID_IUnknown    = windows.GUID{Data1: 0x00000000, Data2: 0x0000, Data3: 0x0000, Data4: [8]byte{0xC0, 0, 0, 0, 0, 0, 0, 0x46}}
	_IID_IDataObject = windows.GUID{Data1: 0x0000010e, Data2: 0x0000, Data3: 0x0000, Data4: [8]byte{0xC0, 0, 0, 0, 0, 0, 0, 0x46}}
	_IID_IDropSource = windows.GUID{Data1: 0x00000121, Data2: 0x0000, Data3: 0x0000, Data4: [8]byte{0xC0, 0, 0, 0, 0, 0, 0, 0x46}}
)

//----------

//sys _GlobalAlloc(uFlags uint32, dwBytes uintptr) (h windows.Handle, err error) = kernel32.GlobalAlloc
//sys _GlobalFree(h windows.Handle) (res windows.Handle) = kernel32.GlobalFree
//sys _GetConsoleWindow() (cH windows.Handle) = kernel32.GetConsoleWindow

//sys _OleInitialize(reserved uintptr) (hr uint32) = ole32.OleInitialize
//sys _DoDragDrop(dataObj uintptr, dropSource uintptr, okEffects uint32, effect *uint32) (hr uint32) = ole32.DoDragDrop

//sys _DragQueryFileW(hDrop uintptr, iFile uint32, lpszFile *uint16, cch uint32) (res uint32) = shell32.DragQueryFileW
