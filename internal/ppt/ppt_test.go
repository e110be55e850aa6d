package ppt

import (
	"testing"
	"time"

	"github.com/deckextract/deckextract/internal/presentation"
)

func TestParsePPTOnNonCompoundDataReturnsDiagnosticPresentation(t *testing.T) {
	noise := []byte("this is not a compound file at all, just plain bytes")
	p := ParsePPT(noise, "noise.ppt", int64(len(noise)), time.Now())

	if p.FileType != "ppt" {
		t.Fatalf("FileType = %q, want ppt", p.FileType)
	}
	if len(p.Slides) == 0 {
		t.Fatalf("expected at least one slide, got none")
	}
	if p.ID == "" {
		t.Fatalf("expected a generated ID")
	}
}

func TestParsePPTNeverPanicsOnRandomBytes(t *testing.T) {
	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("ParsePPT panicked: %v", r)
		}
	}()

	seed := byte(17)
	data := make([]byte, 5000)
	for i := range data {
		seed = seed*31 + 7
		data[i] = seed
	}
	p := ParsePPT(data, "random.ppt", int64(len(data)), time.Now())
	if len(p.Slides) == 0 {
		t.Fatalf("expected at least one slide even for random input")
	}
}

func TestAssembleSlidesPrefersStructuredOverHeuristic(t *testing.T) {
	result := newParseResult()
	result.addText(1, "Title One")
	result.addText(1, "Body One")
	result.GlobalTexts = append(result.GlobalTexts, "Stray")

	slides := assembleSlides(result, DefaultLimits())
	if len(slides) != 1 {
		t.Fatalf("expected 1 structured slide, got %d", len(slides))
	}
	if slides[0].Title != "Title One" {
		t.Fatalf("Title = %q, want %q", slides[0].Title, "Title One")
	}
}

func TestAssembleSlidesFallsBackToHeuristicWhenNoBuckets(t *testing.T) {
	result := newParseResult()
	result.GlobalTexts = []string{"A Title", "some content here"}

	slides := assembleSlides(result, DefaultLimits())
	if len(slides) != 1 {
		t.Fatalf("expected 1 heuristic slide, got %d", len(slides))
	}
}

func TestAssembleSlidesEmptyResultYieldsDiagnosticSlide(t *testing.T) {
	result := newParseResult()
	slides := assembleSlides(result, DefaultLimits())
	if len(slides) != 1 || slides[0].Title != "No Content Found" {
		t.Fatalf("expected diagnostic slide, got %+v", slides)
	}
}

func TestScanUTF16StringsFindsPlausibleRuns(t *testing.T) {
	text := utf16le("Hello from a legacy deck")
	noise := []byte{0xDE, 0xAD, 0xBE, 0xEF, 0x00, 0x01}
	data := append(append([]byte{}, noise...), text...)

	got := scanUTF16Strings(data)
	found := false
	for _, s := range got {
		if s == "Hello from a legacy deck" {
			found = true
		}
	}
	if !found {
		t.Fatalf("scanUTF16Strings = %v, expected to find the embedded text", got)
	}
}

func TestScanUTF16StringsIgnoresShortRuns(t *testing.T) {
	data := utf16le("Hi") // below minScanRunUnits
	got := scanUTF16Strings(data)
	if len(got) != 0 {
		t.Fatalf("expected no strings from a run shorter than the minimum, got %v", got)
	}
}

func TestParsePPTWithLimitsUsesCallerFallbackSlideContentLimit(t *testing.T) {
	noise := []byte("this is not a compound file at all, just plain bytes, long enough to produce several scanned fragments of text across runs")
	limits := DefaultLimits()
	limits.FallbackSlideContentLimit = 1

	p := ParsePPTWithLimits(noise, "noise.ppt", int64(len(noise)), time.Now(), limits)
	if p.FileType != "ppt" {
		t.Fatalf("FileType = %q, want ppt", p.FileType)
	}
	if len(p.Slides) == 0 {
		t.Fatalf("expected at least one slide")
	}
}

func TestDegradedScanReturnsDiagnosticSlideForEmptyInput(t *testing.T) {
	slides := degradedScan(nil, DefaultLimits())
	if len(slides) != 1 || slides[0].Title != "No Content Found" {
		t.Fatalf("expected diagnostic slide, got %+v", slides)
	}
}

func TestWithSlidesSetsDerivedMetadata(t *testing.T) {
	base := presentation.Presentation{FileType: "ppt"}
	slides := []presentation.Slide{
		{SlideNumber: 1, Title: "One two three"},
		{SlideNumber: 2, Title: "Four five"},
	}
	out := withSlides(base, slides)
	if out.Metadata.TotalSlides != 2 {
		t.Fatalf("TotalSlides = %d, want 2", out.Metadata.TotalSlides)
	}
	if out.Metadata.TotalWords != 5 {
		t.Fatalf("TotalWords = %d, want 5", out.Metadata.TotalWords)
	}
}
