package office

import (
	"context"
	"os"

	"github.com/deckextract/deckextract/internal/extract"
	"github.com/deckextract/deckextract/internal/ppt"
)

// PPTExtractor adapts the legacy binary deck parser to the Extractor
// interface. Unlike the teacher's office extractors, this one never shells
// out to an external converter: everything is native Go.
type PPTExtractor struct {
	maxBytes int64
	limits   ppt.Limits
}

// NewPPT registers the legacy-deck extractor with the walker/property-set
// bounds and fallback slide-packing size in limits; zero-valued fields fall
// back to ppt.DefaultLimits().
func NewPPT(maxBytes int64, limits ppt.Limits) *PPTExtractor {
	return &PPTExtractor{maxBytes: maxBytes, limits: limits}
}

func (e *PPTExtractor) Name() string       { return "document/ppt" }
func (e *PPTExtractor) MaxFileSize() int64 { return e.maxBytes }
func (e *PPTExtractor) SupportedTypes() []string {
	return []string{"application/vnd.ms-powerpoint"}
}
func (e *PPTExtractor) SupportedExtensions() []string { return []string{".ppt"} }

func (e *PPTExtractor) Extract(ctx context.Context, job extract.Job) (extract.Result, error) {
	select {
	case <-ctx.Done():
		return extract.Result{Success: false}, ctx.Err()
	default:
	}

	data, err := os.ReadFile(job.LocalPath)
	if err != nil {
		msg := err.Error()
		return extract.Result{Success: false, FileType: e.Name(), MIMEType: job.MIMEType, Error: &msg}, err
	}

	info, err := os.Stat(job.LocalPath)
	if err != nil {
		msg := err.Error()
		return extract.Result{Success: false, FileType: e.Name(), MIMEType: job.MIMEType, Error: &msg}, err
	}

	pres := ppt.ParsePPTWithLimits(data, job.FileName, info.Size(), info.ModTime(), e.limits)
	text := summarizePresentation(pres)
	words, chars := extract.BuildCounts(text)

	return extract.Result{
		Success:      true,
		Text:         text,
		Method:       "native",
		FileType:     e.Name(),
		MIMEType:     job.MIMEType,
		Presentation: &pres,
		WordCount:    words,
		CharCount:    chars,
	}, nil
}
