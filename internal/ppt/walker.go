package ppt

import "encoding/binary"

// Record type constants relevant to this subset of [MS-PPT] (spec §4.C/D).
const (
	rtDocument           = 0x03E8
	rtDocumentAtom       = 0x03E9
	rtSlide              = 0x03EE
	rtSlideAtom          = 0x03EF
	rtNotes              = 0x03F0
	rtMainMaster         = 0x03F8
	rtSlideListWithText  = 0x0FF0
	rtDrawing            = 0x040C
	rtList               = 0x07D0
	rtEnvironment        = 0x03F2
	rtTextHeaderAtom     = 0x0F9F
	rtTextCharsAtom      = 0x0FA0
	rtTextBytesAtom      = 0x0FA8
	rtCString            = 0x0FBA
	rtDrawingGroup       = 0x040B
	rtFontCollection     = 0x07D5
	rtHeadersFooters     = 0x0FD9
	rtProgTags           = 0x1388

	officeArtDggContainer   = 0xF000
	officeArtBStoreContainer = 0xF001
	officeArtDgContainer     = 0xF002
	officeArtSpgrContainer   = 0xF003
	officeArtSpContainer     = 0xF004
	officeArtClientTextbox   = 0xF00D

	officeArtBlipEMF   = 0xF01A
	officeArtBlipWMF   = 0xF01B
	officeArtBlipPICT  = 0xF01C
	officeArtBlipJPEG  = 0xF01D
	officeArtBlipPNG   = 0xF01E
	officeArtBlipDIB   = 0xF01F
	officeArtBlipTIFF  = 0xF029
	officeArtBlipJPEG2 = 0xF02A
)

// containerTypes lists the recType values that are always containers,
// regardless of recVer (spec §4.C step 2).
var containerTypes = map[uint16]bool{
	rtDocument:               true,
	rtSlide:                  true,
	rtNotes:                  true,
	rtMainMaster:             true,
	rtSlideListWithText:      true,
	rtDrawing:                true,
	rtList:                   true,
	rtEnvironment:            true,
	rtDrawingGroup:           true,
	rtFontCollection:         true,
	rtHeadersFooters:         true,
	rtProgTags:               true,
	officeArtDggContainer:    true,
	officeArtBStoreContainer: true,
	officeArtDgContainer:     true,
	officeArtSpgrContainer:   true,
	officeArtSpContainer:     true,
	officeArtClientTextbox:   true,
}

// recordHeader is the 8-byte little-endian [MS-PPT] record header.
type recordHeader struct {
	recVer      byte
	recInstance uint16
	recType     uint16
	recLen      uint32
}

func parseRecordHeader(b []byte) (recordHeader, bool) {
	if len(b) < 8 {
		return recordHeader{}, false
	}
	verInstance := binary.LittleEndian.Uint16(b[0:2])
	recType := binary.LittleEndian.Uint16(b[2:4])
	recLen := binary.LittleEndian.Uint32(b[4:8])
	return recordHeader{
		recVer:      byte(verInstance & 0x000F),
		recInstance: verInstance >> 4,
		recType:     recType,
		recLen:      recLen,
	}, true
}

func (h recordHeader) isContainer() bool {
	return h.recVer == 0xF || containerTypes[h.recType]
}

// parserState threads the walk's mutable bookkeeping explicitly, rather than
// via closure-captured counters (spec §9's redesign note).
type parserState struct {
	result       *ParseResult
	currentSlide int
	depth        int
	limits       Limits
}

// walk implements spec §4.C's algorithm over the byte region b, which must
// be the full "PowerPoint Document" stream on the outermost call.
func walk(state *parserState, b []byte) {
	limits := state.limits.withDefaults()

	if state.depth > limits.MaxRecursionDepth {
		return
	}

	pos := 0
	count := 0
	for pos+8 <= len(b) {
		count++
		if count > limits.MaxRecordsPerLevel {
			return
		}

		hdr, ok := parseRecordHeader(b[pos:])
		if !ok {
			break
		}

		remaining := len(b) - pos - 8
		if int64(hdr.recLen) > limits.MaxRecordLength || int64(hdr.recLen) > int64(remaining) {
			// ImplausibleRecord (spec §7): resync by one byte.
			pos++
			continue
		}

		bodyStart := pos + 8
		bodyEnd := bodyStart + int(hdr.recLen)
		body := b[bodyStart:bodyEnd]

		dispatchRecord(state, hdr, body)

		if hdr.isContainer() {
			if hdr.recType == rtSlide {
				state.currentSlide++
			}
			state.depth++
			walk(state, body)
			state.depth--
		}

		pos = bodyEnd
	}
}
