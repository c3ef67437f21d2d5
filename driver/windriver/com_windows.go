package windriver

import (
	"sync"
	"unsafe"

	"golang.org/x/sys/windows"
)

// COM objects handed to ole32. The first field of each object is the
// vtable pointer. Objects stay pinned in the registry while ole32 holds a
// reference, and the vtables are built once (callbacks are a limited
// resource).

type _IUnknownVtbl struct {
	QueryInterface uintptr
	AddRef         uintptr
	Release        uintptr
}

type _IDataObjectVtbl struct {
	_IUnknownVtbl
	GetData               uintptr
	GetDataHere           uintptr
	QueryGetData          uintptr
	GetCanonicalFormatEtc uintptr
	SetData               uintptr
	EnumFormatEtc         uintptr
	DAdvise               uintptr
	DUnadvise             uintptr
	EnumDAdvise           uintptr
}

type _IDropSourceVtbl struct {
	_IUnknownVtbl
	QueryContinueDrag uintptr
	GiveFeedback      uintptr
}

//----------

type comDataObject struct {
	vtbl *_IDataObjectVtbl
	d    *dataObject
}

func newComDataObject(hglobal windows.Handle) *comDataObject {
	buildVtbls()
	free := func(h uintptr) {
		_ = _GlobalFree(windows.Handle(h))
	}
	o := &comDataObject{vtbl: dataObjectVtbl, d: newDataObject(uintptr(hglobal), free)}
	objects.pin(unsafe.Pointer(o), o)
	return o
}

func (o *comDataObject) ptr() uintptr {
	return uintptr(unsafe.Pointer(o))
}

func (o *comDataObject) release() uint32 {
	n := o.d.release()
	if n == 0 {
		objects.unpin(unsafe.Pointer(o))
	}
	return n
}

//----------

type comDropSource struct {
	vtbl *_IDropSourceVtbl
	s    *dropSource
}

func newComDropSource() *comDropSource {
	buildVtbls()
	o := &comDropSource{vtbl: dropSourceVtbl, s: newDropSource()}
	objects.pin(unsafe.Pointer(o), o)
	return o
}

func (o *comDropSource) ptr() uintptr {
	return uintptr(unsafe.Pointer(o))
}

func (o *comDropSource) release() uint32 {
	n := o.s.release()
	if n == 0 {
		objects.unpin(unsafe.Pointer(o))
	}
	return n
}

//----------

var (
	vtblOnce       sync.Once
	dataObjectVtbl *_IDataObjectVtbl
	dropSourceVtbl *_IDropSourceVtbl
)

func buildVtbls() {
	vtblOnce.Do(func() {
		dataObjectVtbl = &_IDataObjectVtbl{
			_IUnknownVtbl: _IUnknownVtbl{
				QueryInterface: windows.NewCallback(doQueryInterface),
				AddRef:         windows.NewCallback(doAddRef),
				Release:        windows.NewCallback(doRelease),
			},
			GetData:               windows.NewCallback(doGetData),
			GetDataHere:           windows.NewCallback(doGetDataHere),
			QueryGetData:          windows.NewCallback(doQueryGetData),
			GetCanonicalFormatEtc: windows.NewCallback(doGetCanonicalFormatEtc),
			SetData:               windows.NewCallback(doSetData),
			EnumFormatEtc:         windows.NewCallback(doEnumFormatEtc),
			DAdvise:               windows.NewCallback(doDAdvise),
			DUnadvise:             windows.NewCallback(doDUnadvise),
			EnumDAdvise:           windows.NewCallback(doEnumDAdvise),
		}
		dropSourceVtbl = &_IDropSourceVtbl{
			_IUnknownVtbl: _IUnknownVtbl{
				QueryInterface: windows.NewCallback(dsQueryInterface),
				AddRef:         windows.NewCallback(dsAddRef),
				Release:        windows.NewCallback(dsRelease),
			},
			QueryContinueDrag: windows.NewCallback(dsQueryContinueDrag),
			GiveFeedback:      windows.NewCallback(dsGiveFeedback),
		}
	})
}

//----------

// IDataObject callbacks ("do" prefix).

func doQueryInterface(this *comDataObject, riid *windows.GUID, ppv *uintptr) uintptr {
	if ppv == nil {
		return _E_POINTER
	}
	if riid != nil && (*riid == _IID_IUnknown || *riid == _IID_IDataObject) {
		this.d.addRef()
		*ppv = this.ptr()
		return _S_OK
	}
	*ppv = 0
	return _E_NOINTERFACE
}

func doAddRef(this *comDataObject) uintptr {
	return uintptr(this.d.addRef())
}

func doRelease(this *comDataObject) uintptr {
	return uintptr(this.release())
}

func doGetData(this *comDataObject, f *_FormatEtc, m *_StgMedium) uintptr {
	return uintptr(this.d.getData(f, m, this.ptr()))
}

func doGetDataHere(this *comDataObject, f *_FormatEtc, m *_StgMedium) uintptr {
	return uintptr(this.d.getDataHere(f, m))
}

func doQueryGetData(this *comDataObject, f *_FormatEtc) uintptr {
	return uintptr(this.d.queryGetData(f))
}

func doGetCanonicalFormatEtc(this *comDataObject, in, out *_FormatEtc) uintptr {
	return uintptr(this.d.getCanonicalFormatEtc(in, out))
}

func doSetData(this *comDataObject, f *_FormatEtc, m *_StgMedium, fRelease uintptr) uintptr {
	return uintptr(this.d.setData())
}

func doEnumFormatEtc(this *comDataObject, direction uintptr, ppenum *uintptr) uintptr {
	if ppenum != nil {
		*ppenum = 0
	}
	return uintptr(this.d.enumFormatEtc())
}

func doDAdvise(this *comDataObject, f *_FormatEtc, advf uintptr, sink uintptr, conn *uint32) uintptr {
	return uintptr(this.d.dAdvise())
}

func doDUnadvise(this *comDataObject, conn uintptr) uintptr {
	return uintptr(this.d.dUnadvise())
}

func doEnumDAdvise(this *comDataObject, ppenum *uintptr) uintptr {
	if ppenum != nil {
		*ppenum = 0
	}
	return uintptr(this.d.enumDAdvise())
}

//----------

// IDropSource callbacks ("ds" prefix).

func dsQueryInterface(this *comDropSource, riid *windows.GUID, ppv *uintptr) uintptr {
	if ppv == nil {
		return _E_POINTER
	}
	if riid != nil && (*riid == _IID_IUnknown || *riid == _IID_IDropSource) {
		this.s.addRef()
		*ppv = this.ptr()
		return _S_OK
	}
	*ppv = 0
	return _E_NOINTERFACE
}

func dsAddRef(this *comDropSource) uintptr {
	return uintptr(this.s.addRef())
}

func dsRelease(this *comDropSource) uintptr {
	return uintptr(this.release())
}

func dsQueryContinueDrag(this *comDropSource, escapePressed uintptr, keyState uintptr) uintptr {
	// BOOL is 32 bits
	esc := uint32(escapePressed) != 0
	return uintptr(this.s.queryContinueDrag(esc, uint32(keyState)))
}

func dsGiveFeedback(this *comDropSource, effect uintptr) uintptr {
	return uintptr(this.s.giveFeedback(uint32(effect)))
}

//----------

// Keeps objects referenced by native code reachable.
type registry struct {
	mu sync.Mutex
	m  map[unsafe.Pointer]any
}

var objects = &registry{m: map[unsafe.Pointer]any{}}

func (r *registry) pin(p unsafe.Pointer, v any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.m[p] = v
}

func (r *registry) unpin(p unsafe.Pointer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.m, p)
}

func (r *registry) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.m)
}
