package presentation

import (
	"encoding/base64"
	"strings"
)

// ChunkedBase64EncodeBlock bounds how much raw payload is base64-encoded at
// a time by either parser (spec §9: "use a chunked encoder bounded by a
// fixed block size... never construct a single intermediate string holding
// the raw binary").
const ChunkedBase64EncodeBlock = 48 * 1024 // multiple of 3, keeps chunk boundaries byte-aligned

// ChunkedBase64 base64-encodes payload in ChunkedBase64EncodeBlock-sized
// chunks, concatenating the resulting strings, so no single buffer the size
// of payload is ever duplicated in raw form. Shared by the PPT blip decoder
// and the PPTX media reader so neither holds a second full-size copy of a
// large embedded image/video/audio blob.
func ChunkedBase64(payload []byte) string {
	if len(payload) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.Grow(base64.StdEncoding.EncodedLen(len(payload)))
	for off := 0; off < len(payload); off += ChunkedBase64EncodeBlock {
		end := off + ChunkedBase64EncodeBlock
		if end > len(payload) {
			end = len(payload)
		}
		sb.WriteString(base64.StdEncoding.EncodeToString(payload[off:end]))
	}
	return sb.String()
}

// MediaCategory classifies a MIME type into the coarse media kind stored on
// Media.Type.
func MediaCategory(mime string) string {
	switch {
	case strings.HasPrefix(mime, "image/"):
		return "image"
	case strings.HasPrefix(mime, "video/"):
		return "video"
	case strings.HasPrefix(mime, "audio/"):
		return "audio"
	default:
		return "unknown"
	}
}
