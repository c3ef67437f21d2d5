package windriver

import (
	"sync"
)

// https://learn.microsoft.com/en-us/windows/win32/com/com-error-codes-1
const (
	_S_OK                     = 0x0
	_E_NOTIMPL                = 0x80004001
	_E_NOINTERFACE            = 0x80004002
	_E_POINTER                = 0x80004003
	_E_OUTOFMEMORY            = 0x8007000e
	_DV_E_FORMATETC           = 0x80040064
	_OLE_E_ADVISENOTSUPPORTED = 0x80040003

	_DRAGDROP_S_DROP              = 0x00040100
	_DRAGDROP_S_CANCEL            = 0x00040101
	_DRAGDROP_S_USEDEFAULTCURSORS = 0x00040102
)

const (
	_CF_HDROP         = 15
	_TYMED_HGLOBAL    = 1
	_DVASPECT_CONTENT = 1

	_DROPEFFECT_NONE = 0
	_DROPEFFECT_COPY = 1

	_MK_LBUTTON = 0x0001

	_GMEM_FIXED = 0x0000
)

func hresultFailed(hr uint32) bool {
	return hr&0x80000000 != 0
}

//----------

// https://learn.microsoft.com/en-us/windows/win32/api/objidl/ns-objidl-formatetc
type _FormatEtc struct {
	CfFormat uint16
	Ptd      uintptr // *DVTARGETDEVICE
	DwAspect uint32
	Lindex   int32
	Tymed    uint32
}

// https://learn.microsoft.com/en-us/windows/win32/api/objidl/ns-objidl-ustgmedium-r1
type _StgMedium struct {
	Tymed          uint32
	HGlobal        uintptr // union, only the hglobal case is used
	PUnkForRelease uintptr // *IUnknown
}

//----------

// IDataObject behavior for a single CF_HDROP block. The COM glue
// forwards the vtable calls here.
type dataObject struct {
	hglobal uintptr
	free    func(uintptr) // releases hglobal

	mu    sync.Mutex
	refs  int32
	freed bool
}

func newDataObject(hglobal uintptr, free func(uintptr)) *dataObject {
	return &dataObject{hglobal: hglobal, free: free, refs: 1}
}

func (d *dataObject) addRef() uint32 {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.refs++
	return uint32(d.refs)
}

// Frees the block when the count reaches zero. Returns the new count.
func (d *dataObject) release() uint32 {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.refs > 0 {
		d.refs--
	}
	if d.refs == 0 && !d.freed {
		d.freed = true
		d.free(d.hglobal)
	}
	return uint32(d.refs)
}

func (d *dataObject) queryGetData(f *_FormatEtc) uint32 {
	if f == nil {
		return _E_POINTER
	}
	if !supportedFormat(f) {
		return _DV_E_FORMATETC
	}
	return _S_OK
}

// On success the medium points to the block owned by this object. self
// is handed out as pUnkForRelease (and referenced) so the receiver
// releases the object instead of freeing the block.
func (d *dataObject) getData(f *_FormatEtc, m *_StgMedium, self uintptr) uint32 {
	if f == nil || m == nil {
		return _E_POINTER
	}
	if !supportedFormat(f) {
		return _DV_E_FORMATETC
	}
	m.Tymed = _TYMED_HGLOBAL
	m.HGlobal = d.hglobal
	m.PUnkForRelease = self
	d.addRef()
	return _S_OK
}

func (d *dataObject) getDataHere(f *_FormatEtc, m *_StgMedium) uint32 {
	return _DV_E_FORMATETC
}

func (d *dataObject) getCanonicalFormatEtc(in, out *_FormatEtc) uint32 {
	if out != nil {
		out.Ptd = 0
	}
	return _E_NOTIMPL
}

func (d *dataObject) setData() uint32       { return _E_NOTIMPL }
func (d *dataObject) enumFormatEtc() uint32 { return _E_NOTIMPL }
func (d *dataObject) dAdvise() uint32       { return _OLE_E_ADVISENOTSUPPORTED }
func (d *dataObject) dUnadvise() uint32     { return _OLE_E_ADVISENOTSUPPORTED }
func (d *dataObject) enumDAdvise() uint32   { return _OLE_E_ADVISENOTSUPPORTED }

func supportedFormat(f *_FormatEtc) bool {
	return f.CfFormat == _CF_HDROP &&
		f.Tymed == _TYMED_HGLOBAL &&
		f.DwAspect == _DVASPECT_CONTENT
}

//----------

// IDropSource behavior.
type dropSource struct {
	mu   sync.Mutex
	refs int32
}

func newDropSource() *dropSource {
	return &dropSource{refs: 1}
}

func (s *dropSource) addRef() uint32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refs++
	return uint32(s.refs)
}

func (s *dropSource) release() uint32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.refs > 0 {
		s.refs--
	}
	return uint32(s.refs)
}

func (s *dropSource) queryContinueDrag(escapePressed bool, keyState uint32) uint32 {
	if escapePressed {
		return _DRAGDROP_S_CANCEL
	}
	if keyState&_MK_LBUTTON == 0 {
		return _DRAGDROP_S_DROP
	}
	return _S_OK
}

func (s *dropSource) giveFeedback(effect uint32) uint32 {
	return _DRAGDROP_S_USEDEFAULTCURSORS
}
