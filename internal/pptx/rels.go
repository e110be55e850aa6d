package pptx

import (
	"archive/zip"
	"encoding/xml"
	"path"
	"strings"
)

// relsPathFor returns the relationship part name for a given slide part
// name, e.g. "ppt/slides/slide1.xml" -> "ppt/slides/_rels/slide1.xml.rels".
func relsPathFor(partName string) string {
	dir := path.Dir(partName)
	base := path.Base(partName)
	return path.Join(dir, "_rels", base+".rels")
}

// parseRelationships reads a .rels part into a relationship-id -> target
// map, resolving targets relative to the owning part's directory.
func parseRelationships(zr *zip.Reader, partName string) map[string]string {
	relsPath := relsPathFor(partName)
	b, err := readZipFile(zr, relsPath, maxZipEntryBytes)
	if err != nil {
		return nil
	}

	baseDir := path.Dir(partName)
	dec := xml.NewDecoder(newXMLReader(b))
	out := make(map[string]string)
	for {
		tok, err := dec.Token()
		if err != nil {
			break
		}
		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local != "Relationship" {
			continue
		}
		id := attr(se, "Id")
		target := attr(se, "Target")
		if id == "" || target == "" {
			continue
		}
		if strings.HasPrefix(target, "../") || !strings.HasPrefix(target, "/") {
			target = path.Clean(path.Join(baseDir, target))
		} else {
			target = strings.TrimPrefix(target, "/")
		}
		out[id] = target
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
