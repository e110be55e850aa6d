package pptx

import (
	"archive/zip"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
)

// maxZipEntryBytes bounds any single part read out of the archive; a
// presentation with a pathologically large XML part degrades to a missing
// part rather than exhausting memory (spec §4.B: "missing parts degrade
// gracefully to empty outputs").
const maxZipEntryBytes = 200 << 20

// readZipFile reads the named entry, refusing to buffer more than limit
// bytes.
func readZipFile(zr *zip.Reader, name string, limit int64) ([]byte, error) {
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		if int64(f.UncompressedSize64) > limit {
			return nil, fmt.Errorf("pptx: entry %s exceeds %d byte limit", name, limit)
		}
		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		defer rc.Close()
		b, err := io.ReadAll(io.LimitReader(rc, limit+1))
		if err != nil {
			return nil, err
		}
		if int64(len(b)) > limit {
			return nil, fmt.Errorf("pptx: entry %s exceeds %d byte limit", name, limit)
		}
		return b, nil
	}
	return nil, fmt.Errorf("pptx: missing entry %s", name)
}

// numberedParts finds every zip entry matching prefix + "<n>" + suffix and
// returns their names sorted by ascending numeric n (spec §4.B: "ordered by
// numeric n ascending").
func numberedParts(zr *zip.Reader, prefix, suffix string) []string {
	type indexed struct {
		n    int
		name string
	}
	var found []indexed
	for _, f := range zr.File {
		if !strings.HasPrefix(f.Name, prefix) || !strings.HasSuffix(f.Name, suffix) {
			continue
		}
		mid := strings.TrimSuffix(strings.TrimPrefix(f.Name, prefix), suffix)
		n, err := strconv.Atoi(mid)
		if err != nil {
			continue
		}
		found = append(found, indexed{n: n, name: f.Name})
	}
	sort.Slice(found, func(i, j int) bool { return found[i].n < found[j].n })

	names := make([]string, len(found))
	for i, f := range found {
		names[i] = f.name
	}
	return names
}

func mediaParts(zr *zip.Reader) []string {
	var names []string
	for _, f := range zr.File {
		if strings.HasPrefix(f.Name, "ppt/media/") && !f.FileInfo().IsDir() {
			names = append(names, f.Name)
		}
	}
	sort.Strings(names)
	return names
}
