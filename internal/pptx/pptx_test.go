package pptx

import (
	"archive/zip"
	"bytes"
	"testing"
	"time"
)

const slideNS = `xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships"`

func buildZip(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range files {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}

func TestParsePPTXSingleSlideTitleAndBody(t *testing.T) {
	slide1 := `<?xml version="1.0"?>
<p:sld ` + slideNS + `>
  <p:cSld>
    <p:spTree>
      <p:sp><p:nvSpPr><p:nvPr><p:ph type="title"/></p:nvPr></p:nvSpPr>
        <p:txBody><a:p><a:r><a:t>Hello</a:t></a:r></a:p></p:txBody>
      </p:sp>
      <p:sp><p:nvSpPr><p:nvPr/></p:nvSpPr>
        <p:txBody><a:p><a:r><a:t>World</a:t></a:r></a:p></p:txBody>
      </p:sp>
    </p:spTree>
  </p:cSld>
</p:sld>`

	data := buildZip(t, map[string]string{
		"ppt/slides/slide1.xml": slide1,
	})

	p := ParsePPTX(data, "deck.pptx", int64(len(data)), time.Now())

	if len(p.Slides) != 1 {
		t.Fatalf("expected 1 slide, got %d", len(p.Slides))
	}
	s := p.Slides[0]
	if s.Title != "Hello" {
		t.Fatalf("Title = %q, want %q", s.Title, "Hello")
	}
	if len(s.TextContent) != 1 || s.TextContent[0] != "World" {
		t.Fatalf("TextContent = %v, want [World]", s.TextContent)
	}
	if p.Metadata.TotalSlides != 1 {
		t.Fatalf("TotalSlides = %d, want 1", p.Metadata.TotalSlides)
	}
	if p.Metadata.TotalWords != 2 {
		t.Fatalf("TotalWords = %d, want 2", p.Metadata.TotalWords)
	}
}

func TestParsePPTXTitleShapeAfterBodyShapeStillExcludedFromTextContent(t *testing.T) {
	slide1 := `<?xml version="1.0"?>
<p:sld ` + slideNS + `>
  <p:cSld>
    <p:spTree>
      <p:sp><p:nvSpPr><p:nvPr/></p:nvSpPr>
        <p:txBody><a:p><a:r><a:t>World</a:t></a:r></a:p></p:txBody>
      </p:sp>
      <p:sp><p:nvSpPr><p:nvPr><p:ph type="title"/></p:nvPr></p:nvSpPr>
        <p:txBody><a:p><a:r><a:t>Hello</a:t></a:r></a:p></p:txBody>
      </p:sp>
    </p:spTree>
  </p:cSld>
</p:sld>`

	data := buildZip(t, map[string]string{
		"ppt/slides/slide1.xml": slide1,
	})

	p := ParsePPTX(data, "deck.pptx", int64(len(data)), time.Now())

	if len(p.Slides) != 1 {
		t.Fatalf("expected 1 slide, got %d", len(p.Slides))
	}
	s := p.Slides[0]
	if s.Title != "Hello" {
		t.Fatalf("Title = %q, want %q", s.Title, "Hello")
	}
	if len(s.TextContent) != 1 || s.TextContent[0] != "World" {
		t.Fatalf("TextContent = %v, want [World] (title text must not leak in when the title shape comes second)", s.TextContent)
	}
}

func TestParsePPTXNotesFiltersNumericPlaceholder(t *testing.T) {
	slide1 := `<?xml version="1.0"?>
<p:sld ` + slideNS + `><p:cSld><p:spTree>
  <p:sp><p:nvSpPr><p:nvPr/></p:nvSpPr><p:txBody><a:p><a:r><a:t>Slide One</a:t></a:r></a:p></p:txBody></p:sp>
</p:spTree></p:cSld></p:sld>`
	slide2 := `<?xml version="1.0"?>
<p:sld ` + slideNS + `><p:cSld><p:spTree>
  <p:sp><p:nvSpPr><p:nvPr/></p:nvSpPr><p:txBody><a:p><a:r><a:t>Slide Two</a:t></a:r></a:p></p:txBody></p:sp>
</p:spTree></p:cSld></p:sld>`
	slide3 := `<?xml version="1.0"?>
<p:sld ` + slideNS + `><p:cSld><p:spTree>
  <p:sp><p:nvSpPr><p:nvPr/></p:nvSpPr><p:txBody><a:p><a:r><a:t>Slide Three</a:t></a:r></a:p></p:txBody></p:sp>
</p:spTree></p:cSld></p:sld>`
	notes2 := `<?xml version="1.0"?>
<p:notes ` + slideNS + `><p:cSld><p:spTree>
  <p:sp><p:nvSpPr><p:nvPr/></p:nvSpPr><p:txBody>
    <a:p><a:r><a:t>Speak softly</a:t></a:r></a:p>
    <a:p><a:r><a:t>42</a:t></a:r></a:p>
  </p:txBody></p:sp>
</p:spTree></p:cSld></p:notes>`

	data := buildZip(t, map[string]string{
		"ppt/slides/slide1.xml":             slide1,
		"ppt/slides/slide2.xml":             slide2,
		"ppt/slides/slide3.xml":             slide3,
		"ppt/notesSlides/notesSlide2.xml":   notes2,
	})

	p := ParsePPTX(data, "deck.pptx", int64(len(data)), time.Now())

	if len(p.Slides) != 3 {
		t.Fatalf("expected 3 slides, got %d", len(p.Slides))
	}
	if p.Slides[1].Notes != "Speak softly" {
		t.Fatalf("Slides[1].Notes = %q, want %q", p.Slides[1].Notes, "Speak softly")
	}
}

func TestParsePPTXMediaBase64RoundTrip(t *testing.T) {
	payload := "PNG\x00"
	data := buildZip(t, map[string]string{
		"ppt/slides/slide1.xml": `<?xml version="1.0"?><p:sld ` + slideNS + `><p:cSld><p:spTree></p:spTree></p:cSld></p:sld>`,
		"ppt/media/image1.png":  payload,
	})

	p := ParsePPTX(data, "deck.pptx", int64(len(data)), time.Now())

	if len(p.Media) != 1 {
		t.Fatalf("expected 1 media item, got %d", len(p.Media))
	}
	m := p.Media[0]
	if m.Name != "image1.png" || m.Type != "image" || m.Extension != "png" {
		t.Fatalf("unexpected media %+v", m)
	}
	if m.Size != len(payload) {
		t.Fatalf("Size = %d, want %d", m.Size, len(payload))
	}
}

func TestParsePPTXNonZipDataReturnsDiagnosticPresentation(t *testing.T) {
	p := ParsePPTX([]byte("not a zip file"), "bad.pptx", 14, time.Now())
	if len(p.Slides) != 1 || p.Slides[0].Title != "No Content Found" {
		t.Fatalf("expected diagnostic slide, got %+v", p.Slides)
	}
}

func TestIsNumericPlaceholder(t *testing.T) {
	cases := map[string]bool{
		"42":    true,
		"":      false,
		"4a":    false,
		"  7  ": true,
	}
	for in, want := range cases {
		if got := isNumericPlaceholder(in); got != want {
			t.Fatalf("isNumericPlaceholder(%q) = %v, want %v", in, got, want)
		}
	}
}
