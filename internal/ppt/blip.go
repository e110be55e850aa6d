package ppt

import (
	"fmt"

	"github.com/deckextract/deckextract/internal/presentation"
)

// blipChunkSize mirrors presentation.ChunkedBase64EncodeBlock under the
// local name the rest of this package's tests already use.
const blipChunkSize = presentation.ChunkedBase64EncodeBlock

// handleBlip17 decodes a blip whose body is [uid: 17 bytes][payload], used
// by OfficeArtBlipJPEG/JPEG2/PNG (spec §4.D).
func handleBlip17(state *parserState, body []byte, ext, mime string) {
	if len(body) <= 17 {
		return
	}
	emitBlip(state, body[17:], ext, mime)
}

// handleBlip16 decodes a blip whose body is [uid: 16 bytes][payload], used
// by EMF/WMF/PICT/DIB/TIFF (spec §4.D). Payloads of 100 bytes or fewer are
// ignored.
func handleBlip16(state *parserState, body []byte, ext, mime string) {
	if len(body) <= 16 {
		return
	}
	payload := body[16:]
	if len(payload) <= 100 {
		return
	}
	emitBlip(state, payload, ext, mime)
}

func emitBlip(state *parserState, payload []byte, ext, mime string) {
	idx := state.result.nextBlipIndex()
	state.result.Media = append(state.result.Media, presentation.Media{
		Name:      fmt.Sprintf("image_%d.%s", idx, ext),
		Type:      mimeCategory(mime),
		Size:      len(payload),
		Extension: ext,
		Data:      chunkedBase64(payload),
	})
}

// chunkedBase64 and mimeCategory delegate to the shared presentation-package
// helpers also used by internal/pptx/media.go, so neither parser holds a
// second full-size copy of a large embedded blob in memory.
func chunkedBase64(payload []byte) string {
	return presentation.ChunkedBase64(payload)
}

func mimeCategory(mime string) string {
	return presentation.MediaCategory(mime)
}
