// Package presentation holds the normalized output record produced by both
// the PPTX parser (internal/pptx) and the legacy PPT parser (internal/ppt),
// plus the text-sanitization and slide-assembly logic both parsers share.
package presentation

import "time"

// Presentation is the root entity produced by either parser. It never
// references the source bytes once built, and is immutable thereafter.
type Presentation struct {
	ID               string            `json:"id"`
	FileName         string            `json:"fileName"`
	FileSize         int64             `json:"fileSize"`
	FileType         string            `json:"fileType"` // "ppt" or "pptx"
	ExtractedAt      time.Time         `json:"extractedAt"`
	Metadata         Metadata          `json:"metadata"`
	Slides           []Slide           `json:"slides"`
	Media            []Media           `json:"media"`
	Themes           []Theme           `json:"themes"`
	MasterSlides     []string          `json:"masterSlides"`
	CustomProperties map[string]string `json:"customProperties,omitempty"`
}

// Metadata mirrors docProps/core.xml + app.xml (PPTX) or the OLE property
// sets (PPT). All string fields are optional; counts default to zero.
type Metadata struct {
	Title              string `json:"title,omitempty"`
	Subject            string `json:"subject,omitempty"`
	Creator            string `json:"creator,omitempty"`
	LastModifiedBy     string `json:"lastModifiedBy,omitempty"`
	Created            string `json:"created,omitempty"`
	Modified           string `json:"modified,omitempty"`
	Revision           string `json:"revision,omitempty"`
	Category           string `json:"category,omitempty"`
	Keywords           string `json:"keywords,omitempty"`
	Description        string `json:"description,omitempty"`
	Application        string `json:"application,omitempty"`
	AppVersion         string `json:"appVersion,omitempty"`
	Company            string `json:"company,omitempty"`
	Manager            string `json:"manager,omitempty"`
	Template           string `json:"template,omitempty"`
	PresentationFormat string `json:"presentationFormat,omitempty"`
	TotalSlides        int    `json:"totalSlides"`
	TotalWords         int    `json:"totalWords"`
	TotalParagraphs    int    `json:"totalParagraphs"`
}

// Slide is one slide-sized unit of content, 1-based and monotonic.
type Slide struct {
	SlideNumber int     `json:"slideNumber"`
	Title       string  `json:"title"`
	TextContent []string `json:"textContent"`
	Notes       string  `json:"notes,omitempty"`
	Shapes      []Shape `json:"shapes,omitempty"`
	Images      []Media `json:"images,omitempty"`
	Tables      []Table `json:"tables,omitempty"`
}

// Shape is a single shape on a slide, reduced to its semantic role and text.
type Shape struct {
	Type     string    `json:"type"`
	Text     string    `json:"text"`
	Position *Position `json:"position,omitempty"`
	Size     *Size     `json:"size,omitempty"`
}

// Position and Size are in EMUs, as read from the shape's transform.
type Position struct {
	X int64 `json:"x"`
	Y int64 `json:"y"`
}

type Size struct {
	Width  int64 `json:"width"`
	Height int64 `json:"height"`
}

// Table is a rectangular grid of cell text; Columns == len(Cells[0]).
type Table struct {
	Rows    int        `json:"rows"`
	Columns int        `json:"columns"`
	Cells   [][]string `json:"cells"`
}

// Media is a single blip (image/video/audio) collected during parsing.
type Media struct {
	Name      string `json:"name"`
	Type      string `json:"type"` // "image", "video", "audio", or "unknown"
	Size      int    `json:"size"`
	Extension string `json:"extension"`
	Data      string `json:"data,omitempty"` // base64, omitted when empty
}

// Theme is a PPTX-only theme definition; empty for PPT.
type Theme struct {
	Name   string   `json:"name"`
	Colors []string `json:"colors,omitempty"`
	Fonts  []string `json:"fonts,omitempty"`
}
