package presentation

import (
	"fmt"
	"sort"
	"strings"
)

// DefaultFallbackSlideContentLimit is the number of content strings the
// heuristic assembler packs onto one slide before starting a new one. §9
// Open Question 1 flags this as arbitrary; AssembleHeuristic takes it as a
// parameter instead of hard-coding it.
const DefaultFallbackSlideContentLimit = 6

// AssembleStructured builds slides from a per-slide text bucket map keyed by
// 1-based slide index, used when the caller already knows slide boundaries
// (PPT record-driven parsing; the PPTX parser builds its slides itself). Buckets
// are emitted in ascending key order; within a bucket the first string
// becomes the title and the rest become text content.
func AssembleStructured(buckets map[int][]string) []Slide {
	if len(buckets) == 0 {
		return nil
	}

	keys := make([]int, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	slides := make([]Slide, 0, len(keys))
	for i, key := range keys {
		texts := buckets[key]
		slide := Slide{SlideNumber: i + 1}
		if len(texts) > 0 {
			slide.Title = texts[0]
			slide.TextContent = append([]string(nil), texts[1:]...)
		}
		if slide.Title == "" {
			slide.Title = fmt.Sprintf("Slide %d", slide.SlideNumber)
		}
		slides = append(slides, slide)
	}
	return slides
}

// AssembleHeuristic builds slides from a flat, order-preserving list of
// accepted text strings when no structural slide boundary is available. It
// deduplicates case-insensitively, then greedily partitions: the first short
// string (< 100 runes) with no title yet becomes the title, and a slide is
// flushed after contentLimit content entries.
func AssembleHeuristic(texts []string, contentLimit int) []Slide {
	if contentLimit <= 0 {
		contentLimit = DefaultFallbackSlideContentLimit
	}

	deduped := dedupeOrderPreserving(texts)
	if len(deduped) == 0 {
		return nil
	}

	var slides []Slide
	var title string
	var content []string

	flush := func() {
		if title == "" && len(content) == 0 {
			return
		}
		n := len(slides) + 1
		if title == "" {
			title = fmt.Sprintf("Slide %d", n)
		}
		slides = append(slides, Slide{
			SlideNumber: n,
			Title:       title,
			TextContent: append([]string(nil), content...),
		})
		title = ""
		content = nil
	}

	for _, t := range deduped {
		if title == "" && len([]rune(t)) < 100 {
			title = t
			continue
		}
		content = append(content, t)
		if len(content) >= contentLimit {
			flush()
		}
	}
	flush()

	return slides
}

// DiagnosticSlide is the single slide emitted when zero valid text remains.
func DiagnosticSlide() Slide {
	return Slide{
		SlideNumber: 1,
		Title:       "No Content Found",
		TextContent: []string{"Could not extract text from this presentation."},
	}
}

// ErrorSlide is the single user-visible failure-state slide (§7).
func ErrorSlide(message string) Slide {
	return Slide{
		SlideNumber: 1,
		Title:       "Error",
		TextContent: []string{message},
	}
}

// CountWords implements §4.F word counting: whitespace-split non-empty
// tokens across all slide titles and content strings.
func CountWords(slides []Slide) int {
	total := 0
	for _, s := range slides {
		total += len(strings.Fields(s.Title))
		for _, t := range s.TextContent {
			total += len(strings.Fields(t))
		}
	}
	return total
}

func dedupeOrderPreserving(texts []string) []string {
	seen := make(map[string]struct{}, len(texts))
	out := make([]string, 0, len(texts))
	for _, t := range texts {
		key := strings.ToLower(strings.TrimSpace(t))
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, t)
	}
	return out
}
