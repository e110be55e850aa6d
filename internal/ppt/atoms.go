package ppt

import (
	"encoding/binary"
	"fmt"

	"github.com/deckextract/deckextract/internal/presentation"
)

// dispatchRecord implements spec §4.D's per-atom handling. Handler panics
// are not expected in normal operation, but any decode error is swallowed
// here (DecodeError, spec §7) by simply skipping the atom rather than
// aborting the walk.
func dispatchRecord(state *parserState, hdr recordHeader, body []byte) {
	defer func() {
		_ = recover() // a malformed atom must never abort the walk (spec §4.C.3)
	}()

	switch hdr.recType {
	case rtTextCharsAtom:
		handleTextCharsAtom(state, body)
	case rtTextBytesAtom:
		handleTextBytesAtom(state, body)
	case rtCString:
		handleCStringAtom(state, body)
	case rtTextHeaderAtom:
		// documentary only (spec §4.D) — nothing to extract.
	case rtDocumentAtom:
		handleDocumentAtom(state, body)
	case officeArtBlipJPEG, officeArtBlipJPEG2:
		handleBlip17(state, body, "jpg", "image/jpeg")
	case officeArtBlipPNG:
		handleBlip17(state, body, "png", "image/png")
	case officeArtBlipEMF:
		handleBlip16(state, body, "emf", "image/emf")
	case officeArtBlipWMF:
		handleBlip16(state, body, "wmf", "image/wmf")
	case officeArtBlipPICT:
		handleBlip16(state, body, "pict", "image/pict")
	case officeArtBlipDIB:
		handleBlip16(state, body, "bmp", "image/bmp")
	case officeArtBlipTIFF:
		handleBlip16(state, body, "tiff", "image/tiff")
	}
}

func handleTextCharsAtom(state *parserState, body []byte) {
	text := presentation.Sanitize(decodeUTF16LE(body))
	if presentation.IsValidText(text) && !presentation.IsSystemString(text) {
		state.result.addText(state.currentSlide, text)
	}
}

func handleTextBytesAtom(state *parserState, body []byte) {
	text := presentation.Sanitize(decodeWin1252(body))
	if presentation.IsValidText(text) && !presentation.IsSystemString(text) {
		state.result.addText(state.currentSlide, text)
	}
}

func handleCStringAtom(state *parserState, body []byte) {
	text := presentation.Sanitize(decodeUTF16LE(body))
	if presentation.IsValidText(text) && !presentation.IsSystemString(text) {
		state.result.addText(state.currentSlide, text)
	}
}

// handleDocumentAtom reads the slide size (EMUs) and records the
// presentation format string (spec §4.D).
func handleDocumentAtom(state *parserState, body []byte) {
	if len(body) < 8 {
		return
	}
	w := int32(binary.LittleEndian.Uint32(body[0:4]))
	h := int32(binary.LittleEndian.Uint32(body[4:8]))
	const emuPerInch = 914400
	wi := float64(w) / emuPerInch
	hi := float64(h) / emuPerInch
	state.result.PresentationFormat = fmt.Sprintf("%.1f x %.1f inches", wi, hi)
}
