package pptx

import "bytes"

// newXMLReader wraps raw zip-entry bytes for encoding/xml.NewDecoder.
func newXMLReader(b []byte) *bytes.Reader {
	return bytes.NewReader(b)
}
