package pptx

import (
	"archive/zip"
	"path"
	"strings"

	"github.com/deckextract/deckextract/internal/presentation"
)

var imageExtensions = map[string]bool{
	"jpg": true, "jpeg": true, "png": true, "gif": true,
	"bmp": true, "tiff": true, "webp": true,
}

var videoExtensions = map[string]bool{
	"mp4": true, "avi": true, "mov": true, "wmv": true, "webm": true,
}

var audioExtensions = map[string]bool{
	"mp3": true, "wav": true, "ogg": true, "wma": true, "m4a": true,
}

// mediaCategory infers Media.Type from a lowercased file extension (spec
// §4.B media handling).
func mediaCategory(ext string) string {
	switch {
	case imageExtensions[ext]:
		return "image"
	case videoExtensions[ext]:
		return "video"
	case audioExtensions[ext]:
		return "audio"
	default:
		return "unknown"
	}
}

// parseMedia reads every ppt/media/* entry and base64-encodes it (spec
// §4.B). Names and order follow zip.mediaParts' sorted listing.
func parseMedia(zr *zip.Reader) []presentation.Media {
	var out []presentation.Media
	for _, name := range mediaParts(zr) {
		b, err := readZipFile(zr, name, maxZipEntryBytes)
		if err != nil {
			continue
		}
		ext := strings.ToLower(strings.TrimPrefix(path.Ext(name), "."))
		media := presentation.Media{
			Name:      path.Base(name),
			Type:      mediaCategory(ext),
			Size:      len(b),
			Extension: ext,
		}
		if len(b) > 0 {
			media.Data = presentation.ChunkedBase64(b)
		}
		out = append(out, media)
	}
	return out
}
