package office

import (
	"context"
	"os"

	"github.com/deckextract/deckextract/internal/extract"
	"github.com/deckextract/deckextract/internal/pptx"
)

// PPTXExtractor adapts the OOXML deck parser to the Extractor interface.
type PPTXExtractor struct {
	maxBytes int64
}

func NewPPTX(maxBytes int64) *PPTXExtractor {
	return &PPTXExtractor{maxBytes: maxBytes}
}

func (e *PPTXExtractor) Name() string       { return "document/pptx" }
func (e *PPTXExtractor) MaxFileSize() int64 { return e.maxBytes }
func (e *PPTXExtractor) SupportedTypes() []string {
	return []string{"application/vnd.openxmlformats-officedocument.presentationml.presentation"}
}
func (e *PPTXExtractor) SupportedExtensions() []string { return []string{".pptx"} }

func (e *PPTXExtractor) Extract(ctx context.Context, job extract.Job) (extract.Result, error) {
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

	pres := pptx.ParsePPTX(data, job.FileName, info.Size(), info.ModTime())
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
