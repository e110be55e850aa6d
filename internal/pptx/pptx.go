// Package pptx parses modern .pptx presentations: a ZIP container of
// namespace-qualified XML parts (spec §4.B), assembled into the same
// normalized Presentation record internal/ppt produces for legacy .ppt
// files.
package pptx

import (
	"archive/zip"
	"bytes"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/deckextract/deckextract/internal/presentation"
)

// ParsePPTX is the sole entry point for .pptx files (spec §6: parse_pptx).
// It always returns a Presentation; a corrupt or non-ZIP input degrades to
// a single diagnostic slide rather than failing.
func ParsePPTX(data []byte, fileName string, fileSize int64, modTime time.Time) presentation.Presentation {
	base := presentation.Presentation{
		ID:          uuid.NewString(),
		FileName:    fileName,
		FileSize:    fileSize,
		FileType:    "pptx",
		ExtractedAt: time.Now().UTC(),
	}

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		base.Slides = []presentation.Slide{presentation.DiagnosticSlide()}
		base.Metadata.TotalSlides = 1
		return base
	}

	var meta presentation.Metadata
	parseCoreMetadata(zr, &meta)
	parseAppMetadata(zr, &meta)
	base.CustomProperties = parseCustomProperties(zr)

	media := parseMedia(zr)
	mediaByName := make(map[string]presentation.Media, len(media))
	for _, m := range media {
		mediaByName[m.Name] = m
	}

	slideNames := numberedParts(zr, "ppt/slides/slide", ".xml")
	slides := make([]presentation.Slide, 0, len(slideNames))
	for i, name := range slideNames {
		slides = append(slides, buildSlide(zr, name, i+1, mediaByName))
	}
	if len(slides) == 0 {
		slides = []presentation.Slide{presentation.DiagnosticSlide()}
	}

	themeNames := numberedParts(zr, "ppt/theme/theme", ".xml")
	themes := make([]presentation.Theme, 0, len(themeNames))
	for _, name := range themeNames {
		if theme, ok := parseTheme(zr, name); ok {
			themes = append(themes, theme)
		}
	}

	masterNames := numberedParts(zr, "ppt/slideMasters/slideMaster", ".xml")
	masters := make([]string, 0, len(masterNames))
	for i, name := range masterNames {
		masters = append(masters, parseSlideMasterName(zr, name, i+1))
	}

	meta.TotalSlides = len(slides)
	meta.TotalWords = presentation.CountWords(slides)

	base.Metadata = meta
	base.Slides = slides
	base.Media = media
	base.Themes = themes
	base.MasterSlides = masters
	return base
}

// buildSlide assembles one Slide from its slide{n}.xml part, pairing it
// with the matching notesSlide{n}.xml and resolving picture placeholders
// against the already-collected media list (spec §4.B).
func buildSlide(zr *zip.Reader, slideName string, slideNumber int, mediaByName map[string]presentation.Media) presentation.Slide {
	slide := presentation.Slide{SlideNumber: slideNumber}

	b, err := readZipFile(zr, slideName, maxZipEntryBytes)
	if err != nil {
		slide.Title = fmt.Sprintf("Slide %d", slideNumber)
		return slide
	}

	parsed := parseSlideXML(b)
	slide.Title = parsed.Title
	if slide.Title == "" {
		slide.Title = fmt.Sprintf("Slide %d", slideNumber)
	}
	slide.TextContent = parsed.Texts
	slide.Shapes = parsed.Shapes
	slide.Tables = parsed.Tables

	if len(parsed.Images) > 0 {
		rels := parseRelationships(zr, slideName)
		slide.Images = resolveSlideImages(parsed.Images, rels, mediaByName)
	}

	slide.Notes = buildNotes(zr, slideNumber)
	return slide
}

// resolveSlideImages turns the picture placeholders collected while walking
// a slide into real Media references, matching each relationship id's
// target file against the media already read from ppt/media/* (spec §4.B:
// "the actual bytes are resolved later from ppt/media/*").
func resolveSlideImages(placeholders []presentation.Shape, rels map[string]string, mediaByName map[string]presentation.Media) []presentation.Media {
	images := make([]presentation.Media, 0, len(placeholders))
	for _, ph := range placeholders {
		relID := ph.Text
		target, ok := rels[relID]
		if !ok {
			images = append(images, presentation.Media{
				Name: fmt.Sprintf("Image reference: %s", relID),
				Type: "image",
			})
			continue
		}
		if m, ok := mediaByName[path.Base(target)]; ok {
			images = append(images, m)
			continue
		}
		images = append(images, presentation.Media{
			Name: fmt.Sprintf("Image reference: %s", relID),
			Type: "image",
		})
	}
	return images
}

// buildNotes reads notesSlide{n}.xml paired with slide n, filtering pure
// numeric slide-number placeholders and joining the remaining paragraphs
// with newlines (spec §4.B notes handling).
func buildNotes(zr *zip.Reader, slideNumber int) string {
	notesPath := fmt.Sprintf("ppt/notesSlides/notesSlide%d.xml", slideNumber)
	b, err := readZipFile(zr, notesPath, maxZipEntryBytes)
	if err != nil {
		return ""
	}

	paragraphs := parseParagraphedText(b)
	var kept []string
	for _, p := range paragraphs {
		if isNumericPlaceholder(p) {
			continue
		}
		kept = append(kept, p)
	}
	return strings.Join(kept, "\n")
}
