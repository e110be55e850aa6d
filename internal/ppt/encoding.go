package ppt

import (
	"bytes"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// decodeUTF16LE decodes b as UTF-16LE, stopping at the first embedded NUL
// code unit (spec §4.D test #10): "Hi\x00!" decodes to "Hi", not "Hi\x00!".
func decodeUTF16LE(b []byte) string {
	if n := indexUTF16NUL(b); n >= 0 {
		b = b[:n]
	}
	out, err := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder().Bytes(b)
	if err != nil {
		return ""
	}
	return string(out)
}

// indexUTF16NUL returns the byte offset of the first UTF-16LE NUL code unit
// (0x00 0x00), or -1 if none is found.
func indexUTF16NUL(b []byte) int {
	for i := 0; i+1 < len(b); i += 2 {
		if b[i] == 0 && b[i+1] == 0 {
			return i
		}
	}
	return -1
}

// decodeWin1252 decodes b as Windows-1252, with a NUL byte terminating the
// string early (spec §4.D test #9): "A\x00B" decodes to "A".
func decodeWin1252(b []byte) string {
	if n := bytes.IndexByte(b, 0x00); n >= 0 {
		b = b[:n]
	}
	out, err := charmap.Windows1252.NewDecoder().Bytes(b)
	if err != nil {
		return ""
	}
	return string(out)
}
