package office

import (
	"fmt"
	"strings"

	"github.com/deckextract/deckextract/internal/presentation"
)

// summarizePresentation flattens a parsed deck into a plain-text outline,
// for callers (the low-cost preview path, plain-text consumers) that want
// readable text rather than the full structured record.
func summarizePresentation(p presentation.Presentation) string {
	var sb strings.Builder

	if p.Metadata.Title != "" {
		sb.WriteString(p.Metadata.Title)
		sb.WriteString("\n\n")
	}

	for _, s := range p.Slides {
		fmt.Fprintf(&sb, "## Slide %d", s.SlideNumber)
		if s.Title != "" {
			fmt.Fprintf(&sb, ": %s", s.Title)
		}
		sb.WriteString("\n")

		for _, t := range s.TextContent {
			sb.WriteString(t)
			sb.WriteString("\n")
		}

		if s.Notes != "" {
			sb.WriteString("\n> Speaker Notes: ")
			sb.WriteString(strings.ReplaceAll(s.Notes, "\n", " "))
			sb.WriteString("\n")
		}

		sb.WriteString("\n")
	}

	return strings.TrimSpace(sb.String())
}
