package pptx

import (
	"encoding/xml"
	"strconv"
	"strings"

	"github.com/deckextract/deckextract/internal/presentation"
)

// drawingSlide is the intermediate result of walking one slide{n}.xml part,
// before title selection and notes are merged in by the caller.
type drawingSlide struct {
	Title  string
	Texts  []string // paragraph text, title excluded once selected
	Shapes []presentation.Shape
	Images []presentation.Shape // picture placeholders, resolved to real Media later
	Tables []presentation.Table
}

// parseSlideXML walks one ppt/slides/slideN.xml part (spec §4.B). Shapes are
// walked top-level: a <p:sp> shape node yields one Shape with its
// placeholder type and concatenated run text; a <a:tbl> yields a Table; a
// <p:pic> yields an image placeholder carrying its relationship id.
func parseSlideXML(b []byte) drawingSlide {
	dec := xml.NewDecoder(newXMLReader(b))
	var result drawingSlide
	var titleCandidate string
	var firstRunText string

	for {
		tok, err := dec.Token()
		if err != nil {
			break
		}
		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		switch se.Name.Local {
		case "sp":
			shape, isTitle, text := parseShape(dec)
			result.Shapes = append(result.Shapes, shape)

			selectedAsTitle := false
			if isTitle && titleCandidate == "" {
				titleCandidate = strings.TrimSpace(firstLine(text))
				selectedAsTitle = true
			}

			if text != "" {
				if firstRunText == "" {
					firstRunText = firstLine(text)
				}
				// The shape chosen as the title is excluded from TextContent
				// by identity here, not by position, so a body shape that
				// precedes the title shape in document order still keeps
				// its own text.
				if !selectedAsTitle {
					result.Texts = append(result.Texts, paragraphsFrom(text)...)
				}
			}
		case "tbl":
			result.Tables = append(result.Tables, parseTable(dec))
		case "pic":
			if relID := picRelID(dec); relID != "" {
				result.Images = append(result.Images, presentation.Shape{Type: "Picture", Text: relID})
			}
		}
	}

	result.Title = titleCandidate
	if result.Title == "" {
		// No explicit title placeholder: the first shape with text stands in
		// for the title (spec: "if absent, first text run in the slide"),
		// and since it was never excluded above by identity, strip it here
		// by position instead — it is, by construction, Texts[0].
		result.Title = firstRunText
		if result.Title != "" && len(result.Texts) > 0 && result.Texts[0] == result.Title {
			result.Texts = result.Texts[1:]
		}
	}
	return result
}

// parseShape reads one <p:sp>...</p:sp> element (the StartElement has
// already been consumed by the caller), returning the Shape, whether it's a
// title placeholder, and its full concatenated text.
func parseShape(dec *xml.Decoder) (presentation.Shape, bool, string) {
	shapeType := "Shape"
	isTitle := false
	var texts []string
	var pos *presentation.Position
	var size *presentation.Size
	depth := 1

	for depth > 0 {
		tok, err := dec.Token()
		if err != nil {
			break
		}
		switch t := tok.(type) {
		case xml.StartElement:
			depth++
			switch t.Name.Local {
			case "ph":
				if pt := attr(t, "type"); pt != "" {
					shapeType = pt
					if pt == "title" || pt == "ctrTitle" {
						isTitle = true
					}
				}
			case "off":
				pos = &presentation.Position{X: attrInt(t, "x"), Y: attrInt(t, "y")}
			case "ext":
				size = &presentation.Size{Width: attrInt(t, "cx"), Height: attrInt(t, "cy")}
			case "t":
				texts = append(texts, readCharData(dec, &depth))
			}
		case xml.EndElement:
			depth--
		}
	}

	text := strings.TrimSpace(strings.Join(texts, ""))
	return presentation.Shape{Type: shapeType, Text: text, Position: pos, Size: size}, isTitle, text
}

// parseTable reads one <a:tbl>...</a:tbl> element into a rectangular Table
// (spec §4.B: "columns = len(cells[0])").
func parseTable(dec *xml.Decoder) presentation.Table {
	var rows [][]string
	depth := 1

	for depth > 0 {
		tok, err := dec.Token()
		if err != nil {
			break
		}
		switch t := tok.(type) {
		case xml.StartElement:
			depth++
			if t.Name.Local == "tr" {
				rows = append(rows, parseTableRow(dec))
			}
		case xml.EndElement:
			depth--
		}
	}

	maxCols := 0
	for _, row := range rows {
		if len(row) > maxCols {
			maxCols = len(row)
		}
	}
	for i := range rows {
		for len(rows[i]) < maxCols {
			rows[i] = append(rows[i], "")
		}
	}

	return presentation.Table{Rows: len(rows), Columns: maxCols, Cells: rows}
}

func parseTableRow(dec *xml.Decoder) []string {
	var cells []string
	depth := 1

	for depth > 0 {
		tok, err := dec.Token()
		if err != nil {
			break
		}
		switch t := tok.(type) {
		case xml.StartElement:
			depth++
			if t.Name.Local == "tc" {
				cells = append(cells, parseTableCell(dec, &depth))
			}
		case xml.EndElement:
			depth--
		}
	}
	return cells
}

func parseTableCell(dec *xml.Decoder, outerDepth *int) string {
	var texts []string
	localDepth := 1

	for localDepth > 0 {
		tok, err := dec.Token()
		if err != nil {
			break
		}
		switch t := tok.(type) {
		case xml.StartElement:
			localDepth++
			*outerDepth++
			if t.Name.Local == "t" {
				texts = append(texts, readCharData(dec, &localDepth))
				*outerDepth--
			}
		case xml.EndElement:
			localDepth--
			*outerDepth--
		}
	}
	return strings.TrimSpace(strings.Join(texts, " "))
}

// picRelID reads one <p:pic>...</p:pic> element looking for the blip's
// r:embed relationship id.
func picRelID(dec *xml.Decoder) string {
	depth := 1
	relID := ""
	for depth > 0 {
		tok, err := dec.Token()
		if err != nil {
			break
		}
		switch t := tok.(type) {
		case xml.StartElement:
			depth++
			if t.Name.Local == "blip" {
				if id := attr(t, "embed"); id != "" {
					relID = id
				}
			}
		case xml.EndElement:
			depth--
		}
	}
	return relID
}

// readCharData reads character data inside a text element, tracking depth.
func readCharData(dec *xml.Decoder, depth *int) string {
	var sb strings.Builder
	for {
		tok, err := dec.Token()
		if err != nil {
			break
		}
		switch t := tok.(type) {
		case xml.CharData:
			sb.Write(t)
		case xml.StartElement:
			*depth++
		case xml.EndElement:
			*depth--
			return sb.String()
		}
	}
	return sb.String()
}

// parseParagraphedText walks a slide or notes part collecting one string per
// <a:p> paragraph, concatenating its runs with no separator (spec §4.B/notes).
func parseParagraphedText(b []byte) []string {
	dec := xml.NewDecoder(newXMLReader(b))
	var paragraphs []string
	var current []string
	inParagraph := false

	for {
		tok, err := dec.Token()
		if err != nil {
			break
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "p" {
				inParagraph = true
				current = nil
			}
		case xml.CharData:
			if inParagraph {
				if s := string(t); s != "" {
					current = append(current, s)
				}
			}
		case xml.EndElement:
			if t.Name.Local == "p" && inParagraph {
				text := strings.TrimSpace(strings.Join(current, ""))
				if text != "" {
					paragraphs = append(paragraphs, text)
				}
				inParagraph = false
			}
		}
	}
	return paragraphs
}

func paragraphsFrom(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	return []string{text}
}

func firstLine(s string) string {
	for _, line := range strings.Split(s, "\n") {
		if strings.TrimSpace(line) != "" {
			return strings.TrimSpace(line)
		}
	}
	return ""
}

func attr(se xml.StartElement, local string) string {
	for _, a := range se.Attr {
		if a.Name.Local == local {
			return a.Value
		}
	}
	return ""
}

func attrInt(se xml.StartElement, local string) int64 {
	v := attr(se, local)
	if v == "" {
		return 0
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// isNumericPlaceholder reports whether a notes paragraph is a pure-digit
// slide-number placeholder to be filtered (spec §4.B notes handling).
func isNumericPlaceholder(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
