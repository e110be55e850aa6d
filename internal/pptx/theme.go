package pptx

import (
	"archive/zip"
	"encoding/xml"
	"fmt"

	"github.com/deckextract/deckextract/internal/presentation"
)

// parseTheme reads one ppt/theme/themeN.xml part into a Theme record.
// Colors follow "{role}: #RRGGBB"; fonts follow "Major: {typeface}" /
// "Minor: {typeface}" (spec §3 Theme).
func parseTheme(zr *zip.Reader, name string) (presentation.Theme, bool) {
	b, err := readZipFile(zr, name, maxZipEntryBytes)
	if err != nil {
		return presentation.Theme{}, false
	}

	dec := xml.NewDecoder(newXMLReader(b))
	theme := presentation.Theme{}
	var inClrScheme, inFontScheme bool
	var schemeRole string
	var inMajor, inMinor bool

	for {
		tok, err := dec.Token()
		if err != nil {
			break
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "theme":
				if theme.Name == "" {
					theme.Name = attr(t, "name")
				}
			case "clrScheme":
				inClrScheme = true
			case "fontScheme":
				inFontScheme = true
			case "majorFont":
				inMajor = true
			case "minorFont":
				inMinor = true
			case "srgbClr":
				if inClrScheme && schemeRole != "" {
					if val := attr(t, "val"); val != "" {
						theme.Colors = append(theme.Colors, fmt.Sprintf("%s: #%s", schemeRole, val))
					}
					schemeRole = ""
				}
			case "latin":
				if inFontScheme {
					if typeface := attr(t, "typeface"); typeface != "" {
						if inMajor {
							theme.Fonts = append(theme.Fonts, fmt.Sprintf("Major: %s", typeface))
						} else if inMinor {
							theme.Fonts = append(theme.Fonts, fmt.Sprintf("Minor: %s", typeface))
						}
					}
				}
			default:
				if inClrScheme {
					schemeRole = t.Name.Local
				}
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "clrScheme":
				inClrScheme = false
			case "fontScheme":
				inFontScheme = false
			case "majorFont":
				inMajor = false
			case "minorFont":
				inMinor = false
			}
		}
	}

	return theme, true
}

// parseSlideMasterName reads one ppt/slideMasters/slideMasterN.xml part and
// returns the text of its first non-empty paragraph (from any shape, not
// only the title placeholder), or a synthesized name if none exists.
func parseSlideMasterName(zr *zip.Reader, name string, index int) string {
	b, err := readZipFile(zr, name, maxZipEntryBytes)
	if err != nil {
		return fmt.Sprintf("Master %d", index)
	}

	paragraphs := parseParagraphedText(b)
	for _, p := range paragraphs {
		if p != "" {
			return p
		}
	}
	return fmt.Sprintf("Master %d", index)
}
