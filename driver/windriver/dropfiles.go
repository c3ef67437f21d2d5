package windriver

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/jmigpin/dragsource/dnd"
	"golang.org/x/text/encoding/unicode"
)

// DROPFILES struct: pFiles, pt.x, pt.y, fNC, fWide (4 bytes each).
// https://learn.microsoft.com/en-us/windows/win32/api/shlobj_core/ns-shlobj_core-dropfiles
const dropFilesHeaderSize = 20

var utf16le = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

// Encodes the CF_HDROP payload: the DROPFILES header followed by the
// UTF-16LE paths, each null terminated, with an extra null at the end.
func EncodeDropFiles(paths []string) ([]byte, error) {
	if len(paths) == 0 {
		return nil, dnd.ErrEmptyPayload
	}

	buf := &bytes.Buffer{}
	hdr := [5]uint32{
		dropFilesHeaderSize, // pFiles: offset of the file list
		0, 0,                // pt
		0, // fNC
		1, // fWide: unicode
	}
	if err := binary.Write(buf, binary.LittleEndian, hdr); err != nil {
		return nil, err
	}

	enc := utf16le.NewEncoder()
	for _, p := range paths {
		if p == "" {
			return nil, fmt.Errorf("dropfiles: empty path")
		}
		if strings.ContainsRune(p, 0) {
			return nil, fmt.Errorf("dropfiles: path contains nul: %q", p)
		}
		if !utf8.ValidString(p) {
			return nil, fmt.Errorf("dropfiles: path is not valid utf-8: %q", p)
		}
		b, err := enc.Bytes([]byte(p))
		if err != nil {
			return nil, fmt.Errorf("dropfiles: encode: %w", err)
		}
		buf.Write(b)
		buf.Write([]byte{0, 0})
	}
	buf.Write([]byte{0, 0})
	return buf.Bytes(), nil
}

// Inverse of EncodeDropFiles. Only wide (fWide=1) payloads are supported.
func DecodeDropFiles(b []byte) ([]string, error) {
	if len(b) < dropFilesHeaderSize {
		return nil, fmt.Errorf("dropfiles: short header: %v", len(b))
	}
	pFiles := binary.LittleEndian.Uint32(b[0:])
	fWide := binary.LittleEndian.Uint32(b[16:])
	if fWide == 0 {
		return nil, fmt.Errorf("dropfiles: ansi list not supported")
	}
	if int(pFiles) < dropFilesHeaderSize || int(pFiles) > len(b) {
		return nil, fmt.Errorf("dropfiles: bad offset: %v", pFiles)
	}

	dec := utf16le.NewDecoder()
	data := b[pFiles:]
	u := []string{}
	for {
		// find the next 16-bit nul
		i := 0
		for ; i+1 < len(data); i += 2 {
			if data[i] == 0 && data[i+1] == 0 {
				break
			}
		}
		if i+1 >= len(data) {
			return nil, fmt.Errorf("dropfiles: missing terminator")
		}
		if i == 0 {
			// double nul: end of list
			break
		}
		s, err := dec.Bytes(data[:i])
		if err != nil {
			return nil, fmt.Errorf("dropfiles: decode: %w", err)
		}
		u = append(u, string(s))
		data = data[i+2:]
	}
	return u, nil
}
