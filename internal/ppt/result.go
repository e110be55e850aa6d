package ppt

import "github.com/deckextract/deckextract/internal/presentation"

// ParseResult is the record walker's accumulator (spec §4.C): a global text
// list, a per-slide text bucket map, collected blips, and partial metadata
// gathered from DocumentAtom.
type ParseResult struct {
	GlobalTexts        []string
	SlideTexts         map[int][]string
	Media              []presentation.Media
	PresentationFormat string

	blipIndex int
}

func newParseResult() *ParseResult {
	return &ParseResult{SlideTexts: make(map[int][]string)}
}

func (r *ParseResult) addText(slide int, text string) {
	if text == "" {
		return
	}
	r.GlobalTexts = append(r.GlobalTexts, text)
	if slide > 0 {
		r.SlideTexts[slide] = append(r.SlideTexts[slide], text)
	}
}

func (r *ParseResult) nextBlipIndex() int {
	r.blipIndex++
	return r.blipIndex
}
