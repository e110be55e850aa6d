// Package ppt implements the legacy binary .ppt parser: OLE CFB container,
// [MS-PPT] record walk, atom decoding, and OLE property-set metadata,
// feeding internal/presentation's sanitizer and slide assembler (spec
// §4.A-F). ParsePPT is total: it never panics and never returns an error,
// degrading to a diagnostic or best-effort Presentation instead.
package ppt

import (
	"time"

	"github.com/google/uuid"

	"github.com/deckextract/deckextract/internal/cfb"
	"github.com/deckextract/deckextract/internal/presentation"
)

const (
	streamDocument       = "PowerPoint Document"
	streamSummaryInfo    = "\x05SummaryInformation"
	streamDocSummaryInfo = "\x05DocumentSummaryInformation"
)

// ParsePPT is the sole entry point for legacy .ppt files (spec §6:
// parse_ppt), using DefaultLimits(). It always returns a Presentation,
// falling back to a best-effort degraded scan (spec §7) when the input
// isn't a usable CFB container, and to a single diagnostic slide when
// nothing survives.
func ParsePPT(data []byte, fileName string, fileSize int64, modTime time.Time) presentation.Presentation {
	return ParsePPTWithLimits(data, fileName, fileSize, modTime, DefaultLimits())
}

// ParsePPTWithLimits is ParsePPT with caller-supplied walker/property-set
// bounds and fallback slide-packing size (internal/config surfaces these as
// tunables; see Limits).
func ParsePPTWithLimits(data []byte, fileName string, fileSize int64, modTime time.Time, limits Limits) presentation.Presentation {
	limits = limits.withDefaults()

	base := presentation.Presentation{
		ID:          uuid.NewString(),
		FileName:    fileName,
		FileSize:    fileSize,
		FileType:    "ppt",
		ExtractedAt: time.Now().UTC(),
	}

	container, err := cfb.Open(data)
	if err != nil {
		return withSlides(base, degradedScan(data, limits))
	}

	docStream, ok := container.Find(streamDocument)
	if !ok {
		return withSlides(base, degradedScan(data, limits))
	}

	result := newParseResult()
	func() {
		defer func() { _ = recover() }() // adversarial input must never crash parse (spec §7)
		walk(&parserState{result: result, limits: limits}, docStream)
	}()

	meta := presentation.Metadata{PresentationFormat: result.PresentationFormat}
	if summary, ok := container.Find(streamSummaryInfo); ok {
		decodeSummaryInformationWithLimit(summary, &meta, limits.MaxPropertiesPerSet)
	}
	if docSummary, ok := container.Find(streamDocSummaryInfo); ok {
		decodeDocumentSummaryInformationWithLimit(docSummary, &meta, limits.MaxPropertiesPerSet)
	}

	slides := assembleSlides(result, limits)
	meta.TotalSlides = len(slides)
	meta.TotalWords = presentation.CountWords(slides)

	base.Metadata = meta
	base.Slides = slides
	base.Media = result.Media
	return base
}

// assembleSlides prefers the structured per-slide bucket map populated by
// the record walk; it falls back to the heuristic flat-list assembler when
// no slide boundaries were observed (spec §4.F).
func assembleSlides(result *ParseResult, limits Limits) []presentation.Slide {
	if len(result.SlideTexts) > 0 {
		return presentation.AssembleStructured(result.SlideTexts)
	}

	slides := presentation.AssembleHeuristic(result.GlobalTexts, limits.FallbackSlideContentLimit)
	if len(slides) == 0 {
		return []presentation.Slide{presentation.DiagnosticSlide()}
	}
	return slides
}

// withSlides finalizes base with the given slides and their derived
// metadata, used on both the CFB-open-failure and missing-stream paths.
func withSlides(base presentation.Presentation, slides []presentation.Slide) presentation.Presentation {
	base.Slides = slides
	base.Metadata.TotalSlides = len(slides)
	base.Metadata.TotalWords = presentation.CountWords(slides)
	return base
}

// degradedScan implements spec §7's NotCompound/MissingStream recovery: a
// best-effort scan of the whole buffer for plausible UTF-16LE text runs,
// fed through the same validator and heuristic assembler used for
// record-derived text. It never errors; worst case it yields the
// diagnostic slide.
func degradedScan(data []byte, limits Limits) []presentation.Slide {
	texts := scanUTF16Strings(data)
	slides := presentation.AssembleHeuristic(texts, limits.FallbackSlideContentLimit)
	if len(slides) == 0 {
		return []presentation.Slide{presentation.DiagnosticSlide()}
	}
	return slides
}

// minScanRunUnits is the minimum number of UTF-16 code units a candidate
// run must have before it's worth sanitizing and validating; shorter runs
// are almost never real text.
const minScanRunUnits = 4

// scanUTF16Strings walks data two bytes at a time, collecting runs of
// plausible UTF-16LE text (low byte in 0x09-0x7E, zero high byte)
// terminated by a NUL pair or a non-text code unit, then sanitizing and
// validating each run as an ordinary decoded atom would be (spec §4.F).
func scanUTF16Strings(data []byte) []string {
	var out []string
	var run []byte

	flush := func() {
		if len(run) < minScanRunUnits*2 {
			run = run[:0]
			return
		}
		text := presentation.Sanitize(decodeUTF16LE(run))
		if presentation.IsValidText(text) && !presentation.IsSystemString(text) {
			out = append(out, text)
		}
		run = run[:0]
	}

	for i := 0; i+1 < len(data); i += 2 {
		lo, hi := data[i], data[i+1]
		if hi == 0 && lo >= 0x09 && lo < 0x7F {
			run = append(run, lo, hi)
			continue
		}
		flush()
	}
	flush()

	return out
}
