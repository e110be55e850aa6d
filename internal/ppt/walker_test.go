package ppt

import (
	"encoding/binary"
	"testing"
)

// record builds a single [MS-PPT] record: 8-byte header plus body.
func record(recVer byte, recInstance uint16, recType uint16, body []byte) []byte {
	out := make([]byte, 8+len(body))
	verInstance := uint16(recVer&0x000F) | (recInstance << 4)
	binary.LittleEndian.PutUint16(out[0:2], verInstance)
	binary.LittleEndian.PutUint16(out[2:4], recType)
	binary.LittleEndian.PutUint32(out[4:8], uint32(len(body)))
	copy(out[8:], body)
	return out
}

func utf16le(s string) []byte {
	out := make([]byte, len(s)*2)
	for i, r := range []byte(s) {
		out[i*2] = r
	}
	return out
}

func TestParseRecordHeaderUnpacksFields(t *testing.T) {
	b := record(0x0, 0x3F2, rtTextCharsAtom, []byte("hi"))
	hdr, ok := parseRecordHeader(b)
	if !ok {
		t.Fatalf("parseRecordHeader failed")
	}
	if hdr.recVer != 0 {
		t.Fatalf("recVer = %d, want 0", hdr.recVer)
	}
	if hdr.recInstance != 0x3F2 {
		t.Fatalf("recInstance = %x, want 3F2", hdr.recInstance)
	}
	if hdr.recType != rtTextCharsAtom {
		t.Fatalf("recType = %x, want %x", hdr.recType, rtTextCharsAtom)
	}
	if hdr.recLen != 2 {
		t.Fatalf("recLen = %d, want 2", hdr.recLen)
	}
}

func TestParseRecordHeaderRejectsShortInput(t *testing.T) {
	if _, ok := parseRecordHeader([]byte{1, 2, 3}); ok {
		t.Fatalf("expected ok=false for short input")
	}
}

func TestIsContainerByRecVerOrType(t *testing.T) {
	container := recordHeader{recVer: 0xF, recType: 0x1234}
	if !container.isContainer() {
		t.Fatalf("recVer 0xF should be a container regardless of recType")
	}
	known := recordHeader{recVer: 0, recType: rtSlide}
	if !known.isContainer() {
		t.Fatalf("rtSlide should be a container")
	}
	atom := recordHeader{recVer: 0, recType: rtTextCharsAtom}
	if atom.isContainer() {
		t.Fatalf("rtTextCharsAtom should not be a container")
	}
}

func TestWalkExtractsTextFromNestedSlideContainer(t *testing.T) {
	textAtom := record(0, 0, rtTextCharsAtom, utf16le("Hello Slide"))
	slide := record(0xF, 0, rtSlide, textAtom)

	state := &parserState{result: newParseResult()}
	walk(state, slide)

	if state.currentSlide != 1 {
		t.Fatalf("currentSlide = %d, want 1", state.currentSlide)
	}
	texts := state.result.SlideTexts[1]
	if len(texts) != 1 || texts[0] != "Hello Slide" {
		t.Fatalf("SlideTexts[1] = %v, want [Hello Slide]", texts)
	}
}

func TestWalkCountsMultipleSlidesInOrder(t *testing.T) {
	slide1 := record(0xF, 0, rtSlide, record(0, 0, rtTextCharsAtom, utf16le("First")))
	slide2 := record(0xF, 0, rtSlide, record(0, 0, rtTextCharsAtom, utf16le("Second")))
	doc := append(append([]byte{}, slide1...), slide2...)

	state := &parserState{result: newParseResult()}
	walk(state, doc)

	if state.currentSlide != 2 {
		t.Fatalf("currentSlide = %d, want 2", state.currentSlide)
	}
	if got := state.result.SlideTexts[1]; len(got) != 1 || got[0] != "First" {
		t.Fatalf("SlideTexts[1] = %v", got)
	}
	if got := state.result.SlideTexts[2]; len(got) != 1 || got[0] != "Second" {
		t.Fatalf("SlideTexts[2] = %v", got)
	}
}

func TestWalkResyncsOnImplausibleRecordLength(t *testing.T) {
	bad := make([]byte, 8)
	binary.LittleEndian.PutUint16(bad[2:4], rtTextCharsAtom)
	binary.LittleEndian.PutUint32(bad[4:8], 0xFFFFFFF0) // far larger than remaining bytes

	good := record(0, 0, rtTextCharsAtom, utf16le("Recovered"))
	buf := append(bad, good...)

	state := &parserState{result: newParseResult()}
	walk(state, buf)

	if len(state.result.GlobalTexts) != 1 || state.result.GlobalTexts[0] != "Recovered" {
		t.Fatalf("GlobalTexts = %v, want [Recovered]", state.result.GlobalTexts)
	}
}

func TestWalkStopsAtMaxRecursionDepth(t *testing.T) {
	// Build a deeply nested chain of rtSlide containers, each wrapping the
	// next; walk must terminate instead of recursing forever.
	inner := record(0, 0, rtTextCharsAtom, utf16le("core"))
	for i := 0; i < DefaultLimits().MaxRecursionDepth+10; i++ {
		inner = record(0xF, 0, rtSlide, inner)
	}

	state := &parserState{result: newParseResult()}
	walk(state, inner)
	// No assertion beyond "returns" — the test's real requirement is
	// termination, enforced implicitly by the test runner's own timeout.
}
