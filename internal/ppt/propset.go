package ppt

import (
	"encoding/binary"

	"github.com/deckextract/deckextract/internal/presentation"
)

const (
	vtI4    = 0x03
	vtLPSTR = 0x1E
	vtLPWSTR = 0x1F
)

// summaryInfoFields maps SummaryInformation property IDs to the Metadata
// setter they populate (spec §4.E). Kept in a distinct table from
// docSummaryInfoFields per §9 Open Question 3 — the two FMTIDs do not share
// property-ID meanings.
var summaryInfoFields = map[uint32]func(*presentation.Metadata, string){
	2: func(m *presentation.Metadata, v string) { m.Title = v },
	3: func(m *presentation.Metadata, v string) { m.Subject = v },
	4: func(m *presentation.Metadata, v string) { m.Creator = v },
	5: func(m *presentation.Metadata, v string) { m.Keywords = v },
	6: func(m *presentation.Metadata, v string) { m.Description = v },
	8: func(m *presentation.Metadata, v string) { m.LastModifiedBy = v },
	9: func(m *presentation.Metadata, v string) { m.Revision = v },
	18: func(m *presentation.Metadata, v string) { m.Application = v },
}

var docSummaryInfoStringFields = map[uint32]func(*presentation.Metadata, string){
	2:  func(m *presentation.Metadata, v string) { m.Category = v },
	14: func(m *presentation.Metadata, v string) { m.Manager = v },
	15: func(m *presentation.Metadata, v string) { m.Company = v },
}

var docSummaryInfoIntFields = map[uint32]func(*presentation.Metadata, int){
	4: func(m *presentation.Metadata, v int) { m.TotalSlides = v },
	6: func(m *presentation.Metadata, v int) { m.TotalParagraphs = v },
	7: func(m *presentation.Metadata, v int) { m.TotalWords = v },
}

// defaultMaxPropertiesPerSet is used by the convenience wrappers below and
// by tests that don't care about a caller-tunable cap.
const defaultMaxPropertiesPerSet = 1000

// decodeSummaryInformation parses the \x05SummaryInformation stream into
// Metadata, per spec §4.E. Any decode error leaves already-read fields
// intact (PropertyError, spec §7).
func decodeSummaryInformation(data []byte, meta *presentation.Metadata) {
	decodeSummaryInformationWithLimit(data, meta, defaultMaxPropertiesPerSet)
}

func decodeSummaryInformationWithLimit(data []byte, meta *presentation.Metadata, maxProperties int) {
	decodePropertySet(data, maxProperties, func(id uint32, val propValue) {
		if setter, ok := summaryInfoFields[id]; ok {
			if s, ok := val.asString(); ok {
				setter(meta, s)
			}
		}
	})
}

// decodeDocumentSummaryInformation parses the
// \x05DocumentSummaryInformation stream, per spec §4.E, using its own
// FMTID-scoped property-ID table (§9 Open Question 3).
func decodeDocumentSummaryInformation(data []byte, meta *presentation.Metadata) {
	decodeDocumentSummaryInformationWithLimit(data, meta, defaultMaxPropertiesPerSet)
}

func decodeDocumentSummaryInformationWithLimit(data []byte, meta *presentation.Metadata, maxProperties int) {
	decodePropertySet(data, maxProperties, func(id uint32, val propValue) {
		if setter, ok := docSummaryInfoStringFields[id]; ok {
			if s, ok := val.asString(); ok {
				setter(meta, s)
			}
			return
		}
		if setter, ok := docSummaryInfoIntFields[id]; ok {
			if n, ok := val.asInt(); ok {
				setter(meta, n)
			}
		}
	})
}

type propValue struct {
	kind uint32
	i    int32
	s    string
}

func (v propValue) asString() (string, bool) {
	if v.kind == vtLPSTR || v.kind == vtLPWSTR {
		return v.s, true
	}
	return "", false
}

func (v propValue) asInt() (int, bool) {
	if v.kind == vtI4 {
		return int(v.i), true
	}
	return 0, false
}

// decodePropertySet implements spec §4.E's byte layout: header, first
// property set's section, its (id, offset) pairs, and each property's typed
// value. visit is called once per successfully decoded property; decode
// errors on an individual property just skip that property.
func decodePropertySet(data []byte, maxProperties int, visit func(id uint32, val propValue)) {
	defer func() { _ = recover() }() // any offset/type error aborts this set only (spec §7)

	const headerSize = 2 + 2 + 4 + 16 // ByteOrder, Version, OSVersion, CLSID
	if len(data) < headerSize+4 {
		return
	}
	pos := headerSize

	numPropertySets := binary.LittleEndian.Uint32(data[pos : pos+4])
	pos += 4
	if numPropertySets == 0 || numPropertySets > 100 {
		return
	}

	// Skip FMTID (16 bytes) of the first property set, then read its offset.
	if len(data) < pos+16+4 {
		return
	}
	pos += 16
	sectionOffset := binary.LittleEndian.Uint32(data[pos : pos+4])

	sectionStart := int(sectionOffset)
	if sectionStart < 0 || sectionStart+8 > len(data) {
		return
	}

	if maxProperties <= 0 {
		maxProperties = defaultMaxPropertiesPerSet
	}

	_ = binary.LittleEndian.Uint32(data[sectionStart : sectionStart+4]) // section size, unused
	numProperties := binary.LittleEndian.Uint32(data[sectionStart+4 : sectionStart+8])
	if numProperties > uint32(maxProperties) {
		numProperties = uint32(maxProperties)
	}

	pairsStart := sectionStart + 8
	for i := uint32(0); i < numProperties; i++ {
		off := pairsStart + int(i)*8
		if off+8 > len(data) {
			break
		}
		propID := binary.LittleEndian.Uint32(data[off : off+4])
		propOffset := binary.LittleEndian.Uint32(data[off+4 : off+8])

		val, ok := decodePropertyValue(data, sectionStart+int(propOffset))
		if !ok {
			continue
		}
		visit(propID, val)
	}
}

func decodePropertyValue(data []byte, pos int) (propValue, bool) {
	if pos < 0 || pos+4 > len(data) {
		return propValue{}, false
	}
	typ := binary.LittleEndian.Uint32(data[pos : pos+4])
	pos += 4

	switch typ {
	case vtI4:
		if pos+4 > len(data) {
			return propValue{}, false
		}
		return propValue{kind: vtI4, i: int32(binary.LittleEndian.Uint32(data[pos : pos+4]))}, true

	case vtLPSTR:
		if pos+4 > len(data) {
			return propValue{}, false
		}
		length := int(binary.LittleEndian.Uint32(data[pos : pos+4]))
		pos += 4
		if length < 0 || pos+length > len(data) {
			return propValue{}, false
		}
		return propValue{kind: vtLPSTR, s: decodeWin1252(data[pos : pos+length])}, true

	case vtLPWSTR:
		if pos+4 > len(data) {
			return propValue{}, false
		}
		chars := int(binary.LittleEndian.Uint32(data[pos : pos+4]))
		pos += 4
		byteLen := chars * 2
		if chars < 0 || pos+byteLen > len(data) {
			return propValue{}, false
		}
		return propValue{kind: vtLPWSTR, s: decodeUTF16LE(data[pos : pos+byteLen])}, true

	default:
		return propValue{}, false
	}
}
