package pptx

import (
	"archive/zip"
	"encoding/xml"
	"strconv"
	"strings"

	"github.com/deckextract/deckextract/internal/presentation"
)

// parseCoreMetadata reads docProps/core.xml (Dublin Core), grounded on the
// teacher's own core.xml walker, generalized to populate the full Metadata
// record instead of a flat map (spec §4.B).
func parseCoreMetadata(zr *zip.Reader, meta *presentation.Metadata) {
	b, err := readZipFile(zr, "docProps/core.xml", maxZipEntryBytes)
	if err != nil {
		return
	}

	dec := xml.NewDecoder(newXMLReader(b))
	var currentTag string
	for {
		tok, err := dec.Token()
		if err != nil {
			break
		}
		switch t := tok.(type) {
		case xml.StartElement:
			currentTag = t.Name.Local
		case xml.CharData:
			val := strings.TrimSpace(string(t))
			if val == "" {
				continue
			}
			switch currentTag {
			case "title":
				meta.Title = val
			case "subject":
				meta.Subject = val
			case "creator":
				meta.Creator = val
			case "lastModifiedBy":
				meta.LastModifiedBy = val
			case "created":
				meta.Created = val
			case "modified":
				meta.Modified = val
			case "revision":
				meta.Revision = val
			case "category":
				meta.Category = val
			case "keywords":
				meta.Keywords = val
			case "description":
				meta.Description = val
			}
		case xml.EndElement:
			currentTag = ""
		}
	}
}

// parseAppMetadata reads docProps/app.xml, the application name/version and
// slide/word/paragraph counts (spec §4.B).
func parseAppMetadata(zr *zip.Reader, meta *presentation.Metadata) {
	b, err := readZipFile(zr, "docProps/app.xml", maxZipEntryBytes)
	if err != nil {
		return
	}

	dec := xml.NewDecoder(newXMLReader(b))
	var currentTag string
	for {
		tok, err := dec.Token()
		if err != nil {
			break
		}
		switch t := tok.(type) {
		case xml.StartElement:
			currentTag = t.Name.Local
		case xml.CharData:
			val := strings.TrimSpace(string(t))
			if val == "" {
				continue
			}
			switch currentTag {
			case "Application":
				meta.Application = val
			case "AppVersion":
				meta.AppVersion = val
			case "Company":
				meta.Company = val
			case "Manager":
				meta.Manager = val
			case "Template":
				meta.Template = val
			case "Words":
				if n, err := strconv.Atoi(val); err == nil {
					meta.TotalWords = n
				}
			case "Paragraphs":
				if n, err := strconv.Atoi(val); err == nil {
					meta.TotalParagraphs = n
				}
			case "Slides":
				if n, err := strconv.Atoi(val); err == nil {
					meta.TotalSlides = n
				}
			}
		case xml.EndElement:
			currentTag = ""
		}
	}
}

// parseCustomProperties reads docProps/custom.xml's
// <property name="…"><vt:lpwstr>value</vt:lpwstr></property> entries
// (spec §4.B) into a flat name->value map.
func parseCustomProperties(zr *zip.Reader) map[string]string {
	b, err := readZipFile(zr, "docProps/custom.xml", maxZipEntryBytes)
	if err != nil {
		return nil
	}

	dec := xml.NewDecoder(newXMLReader(b))
	out := make(map[string]string)
	var currentName string
	for {
		tok, err := dec.Token()
		if err != nil {
			break
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "property" {
				currentName = attr(t, "name")
			}
		case xml.CharData:
			if currentName == "" {
				continue
			}
			val := strings.TrimSpace(string(t))
			if val == "" {
				continue
			}
			out[currentName] = val
		case xml.EndElement:
			if t.Name.Local == "property" {
				currentName = ""
			}
		}
	}

	if len(out) == 0 {
		return nil
	}
	return out
}
