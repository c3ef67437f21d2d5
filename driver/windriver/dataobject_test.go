package windriver

import "testing"

func TestDataObjectFormats(t *testing.T) {
	type pair struct {
		f    _FormatEtc
		want uint32
	}
	ok := _FormatEtc{CfFormat: _CF_HDROP, DwAspect: _DVASPECT_CONTENT, Lindex: -1, Tymed: _TYMED_HGLOBAL}
	pairs := []pair{
		{ok, _S_OK},
		{_FormatEtc{CfFormat: 13, DwAspect: _DVASPECT_CONTENT, Lindex: -1, Tymed: _TYMED_HGLOBAL}, _DV_E_FORMATETC},
		{_FormatEtc{CfFormat: _CF_HDROP, DwAspect: 4, Lindex: -1, Tymed: _TYMED_HGLOBAL}, _DV_E_FORMATETC},
		{_FormatEtc{CfFormat: _CF_HDROP, DwAspect: _DVASPECT_CONTENT, Lindex: -1, Tymed: 4}, _DV_E_FORMATETC},
		{_FormatEtc{CfFormat: _CF_HDROP, DwAspect: _DVASPECT_CONTENT, Lindex: -1, Tymed: _TYMED_HGLOBAL | 4}, _DV_E_FORMATETC},
	}
	freed := 0
	d := newDataObject(0x1234, func(uintptr) { freed++ })
	for i, p := range pairs {
		f := p.f
		if hr := d.queryGetData(&f); hr != p.want {
			t.Errorf("%v: querygetdata: got %x, want %x", i, hr, p.want)
		}
		m := _StgMedium{}
		hr := d.getData(&f, &m, 0x9999)
		if hr != p.want {
			t.Errorf("%v: getdata: got %x, want %x", i, hr, p.want)
		}
		if hr == _S_OK {
			if m.Tymed != _TYMED_HGLOBAL || m.HGlobal != 0x1234 || m.PUnkForRelease != 0x9999 {
				t.Errorf("%v: medium %+v", i, m)
			}
		} else if m != (_StgMedium{}) {
			t.Errorf("%v: medium written on failure: %+v", i, m)
		}
	}
	if hr := d.queryGetData(nil); hr != _E_POINTER {
		t.Fatalf("got %x", hr)
	}
	if freed != 0 {
		t.Fatal("freed while referenced")
	}
}

func TestDataObjectUnimplemented(t *testing.T) {
	d := newDataObject(1, func(uintptr) {})
	f := _FormatEtc{CfFormat: _CF_HDROP, DwAspect: _DVASPECT_CONTENT, Tymed: _TYMED_HGLOBAL}
	out := _FormatEtc{Ptd: 55}
	type pair struct {
		name string
		got  uint32
		want uint32
	}
	pairs := []pair{
		{"getdatahere", d.getDataHere(&f, &_StgMedium{}), _DV_E_FORMATETC},
		{"getcanonical", d.getCanonicalFormatEtc(&f, &out), _E_NOTIMPL},
		{"setdata", d.setData(), _E_NOTIMPL},
		{"enumformatetc", d.enumFormatEtc(), _E_NOTIMPL},
		{"dadvise", d.dAdvise(), _OLE_E_ADVISENOTSUPPORTED},
		{"dunadvise", d.dUnadvise(), _OLE_E_ADVISENOTSUPPORTED},
		{"enumdadvise", d.enumDAdvise(), _OLE_E_ADVISENOTSUPPORTED},
	}
	for _, p := range pairs {
		if p.got != p.want {
			t.Errorf("%v: got %x, want %x", p.name, p.got, p.want)
		}
	}
	if out.Ptd != 0 {
		t.Fatal("ptd not cleared")
	}
}

func TestDataObjectFreeOnce(t *testing.T) {
	freed := []uintptr{}
	d := newDataObject(7, func(h uintptr) { freed = append(freed, h) })

	// a receiver holding the medium keeps the block alive
	f := _FormatEtc{CfFormat: _CF_HDROP, DwAspect: _DVASPECT_CONTENT, Tymed: _TYMED_HGLOBAL}
	m := _StgMedium{}
	if hr := d.getData(&f, &m, 1); hr != _S_OK {
		t.Fatalf("got %x", hr)
	}
	if n := d.release(); n != 1 || len(freed) != 0 {
		t.Fatalf("n=%v freed=%v", n, freed)
	}
	// ReleaseStgMedium
	if n := d.release(); n != 0 {
		t.Fatalf("n=%v", n)
	}
	if len(freed) != 1 || freed[0] != 7 {
		t.Fatalf("freed=%v", freed)
	}
	// extra releases never free again
	d.release()
	if len(freed) != 1 {
		t.Fatalf("freed=%v", freed)
	}
}

//----------

func TestDropSource(t *testing.T) {
	type pair struct {
		escape   bool
		keyState uint32
		want     uint32
	}
	pairs := []pair{
		{true, _MK_LBUTTON, _DRAGDROP_S_CANCEL},
		{true, 0, _DRAGDROP_S_CANCEL},
		{false, 0, _DRAGDROP_S_DROP},
		{false, 0x0004, _DRAGDROP_S_DROP}, // shift, button up
		{false, _MK_LBUTTON, _S_OK},
		{false, _MK_LBUTTON | 0x0008, _S_OK}, // ctrl
	}
	s := newDropSource()
	for _, p := range pairs {
		if hr := s.queryContinueDrag(p.escape, p.keyState); hr != p.want {
			t.Errorf("%+v: got %x", p, hr)
		}
	}
	if hr := s.giveFeedback(_DROPEFFECT_COPY); hr != _DRAGDROP_S_USEDEFAULTCURSORS {
		t.Fatalf("got %x", hr)
	}
	if s.addRef() != 2 || s.release() != 1 || s.release() != 0 {
		t.Fatal("refcount")
	}
}

func TestHResultFailed(t *testing.T) {
	if hresultFailed(_DRAGDROP_S_DROP) || hresultFailed(_S_OK) {
		t.Fatal("success codes")
	}
	if !hresultFailed(_E_OUTOFMEMORY) {
		t.Fatal("failure code")
	}
}
