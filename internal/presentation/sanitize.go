package presentation

import (
	"strings"
	"unicode"
)

// Sanitize normalizes line endings, strips C0 controls (except tab/newline),
// collapses whitespace runs, and trims. Idempotent: Sanitize(Sanitize(s)) ==
// Sanitize(s).
func Sanitize(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r == '\t' || r == '\n' {
			b.WriteRune(r)
			continue
		}
		if r < 0x20 {
			continue
		}
		b.WriteRune(r)
	}

	// strings.Fields would collapse whitespace runs but also swallow the
	// newlines we want to keep as paragraph separators, so collapse
	// runs of spaces/tabs line by line instead.
	lines := strings.Split(b.String(), "\n")
	for i, line := range lines {
		lines[i] = strings.Join(strings.Fields(line), " ")
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

var knownGarbagePatterns = []string{
	"root entry",
	"powerpoint document",
	"current user",
	"summaryinformation",
	"documentsummaryinformation",
	"pictures",
	"[content_types]",
	"_rels/",
}

// systemStrings are generic placeholder/font names that leak out of slide
// layouts and should never be treated as real slide content.
var systemStrings = []string{
	"click to edit master title style",
	"click to edit master text styles",
	"second level",
	"third level",
	"fourth level",
	"fifth level",
	"master title",
	"master text",
	"master subtitle",
	"click to edit",
	"arial",
	"times new roman",
	"calibri",
	"tahoma",
	"verdana",
}

// IsSystemString reports whether s is a known placeholder phrase or common
// font name rather than real slide content.
func IsSystemString(s string) bool {
	t := strings.ToLower(strings.TrimSpace(s))
	if t == "" {
		return false
	}
	for _, sys := range systemStrings {
		if t == sys {
			return true
		}
	}
	return isPackageArtifact(t)
}

func isPackageArtifact(lower string) bool {
	for _, p := range knownGarbagePatterns {
		if strings.Contains(lower, p) {
			return true
		}
	}
	if strings.HasPrefix(lower, "pk\x03\x04") || strings.HasPrefix(lower, "pk") && strings.Contains(lower, "\x03\x04") {
		return true
	}
	if strings.HasSuffix(lower, ".xml") || strings.HasSuffix(lower, ".rels") {
		return true
	}
	return false
}

// IsValidText implements the acceptance predicate of spec §4.F.
func IsValidText(s string) bool {
	trimmed := strings.TrimSpace(s)
	runes := []rune(trimmed)
	if len(runes) < 2 {
		return false
	}

	if containsC0(trimmed) {
		return false
	}

	if isPureHex(trimmed) {
		return false
	}
	if isPureDigits(trimmed) {
		return false
	}
	if len(runes) == 1 && isLetter(runes[0]) {
		return false
	}
	if isPackageArtifact(strings.ToLower(trimmed)) {
		return false
	}
	if IsSystemString(trimmed) {
		return false
	}

	var textual, letters, exotic int
	for _, r := range runes {
		if isTextualClass(r) {
			textual++
		}
		if isLetter(r) {
			letters++
		}
		if isExoticHighUnicode(r) {
			exotic++
		}
	}

	n := len(runes)
	if float64(textual)/float64(n) < 0.5 {
		return false
	}
	if letters == 0 {
		return false
	}
	if float64(exotic)/float64(n) >= 0.2 {
		return false
	}

	return true
}

func containsC0(s string) bool {
	for _, r := range s {
		if r < 0x20 && r != '\t' && r != '\n' {
			return true
		}
	}
	return false
}

func isPureDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func isPureHex(s string) bool {
	if len(s) < 4 {
		return false
	}
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'a' && r <= 'f':
		case r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}

func isLetter(r rune) bool {
	return (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || unicode.IsLetter(r)
}

// isTextualClass covers Latin A-Z/a-z, Latin-1 Supplement, Latin Extended
// A/B, digits, common punctuation, Cyrillic, Greek.
func isTextualClass(r rune) bool {
	switch {
	case r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z':
		return true
	case r >= '0' && r <= '9':
		return true
	case r >= 0x00A0 && r <= 0x00FF: // Latin-1 Supplement
		return true
	case r >= 0x0100 && r <= 0x017F: // Latin Extended-A
		return true
	case r >= 0x0180 && r <= 0x024F: // Latin Extended-B
		return true
	case r >= 0x0370 && r <= 0x03FF: // Greek and Coptic
		return true
	case r >= 0x0400 && r <= 0x04FF: // Cyrillic
		return true
	case unicode.IsPunct(r), unicode.IsSpace(r):
		return true
	case strings.ContainsRune(",.!?;:'\"()-–—…/\\@#%&*+=_~`", r):
		return true
	default:
		return false
	}
}

// isExoticHighUnicode covers the ranges the spec calls out as signalling a
// likely UTF-16LE misinterpretation of binary data: Tibetan, CJK, Korean,
// Thai, Arabic, Hebrew, Hangul, Private Use Area.
func isExoticHighUnicode(r rune) bool {
	switch {
	case r >= 0x0F00 && r <= 0x0FFF: // Tibetan
		return true
	case r >= 0x0590 && r <= 0x05FF: // Hebrew
		return true
	case r >= 0x0600 && r <= 0x06FF: // Arabic
		return true
	case r >= 0x0E00 && r <= 0x0E7F: // Thai
		return true
	case r >= 0x3040 && r <= 0x30FF: // Hiragana/Katakana
		return true
	case r >= 0x3400 && r <= 0x4DBF: // CJK Extension A
		return true
	case r >= 0x4E00 && r <= 0x9FFF: // CJK Unified Ideographs
		return true
	case r >= 0xAC00 && r <= 0xD7A3: // Hangul Syllables
		return true
	case r >= 0x1100 && r <= 0x11FF: // Hangul Jamo
		return true
	case r >= 0xE000 && r <= 0xF8FF: // Private Use Area
		return true
	default:
		return false
	}
}
