package markdown

import (
	"strings"
	"testing"
)

func TestPublishBasics(t *testing.T) {
	got, err := Publish("# Title\n\nSome **bold** text.")
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if !strings.Contains(got, "<h1") || !strings.Contains(got, "Title") {
		t.Errorf("missing heading: %q", got)
	}
	if !strings.Contains(got, "<strong>bold</strong>") {
		t.Errorf("missing strong: %q", got)
	}
}

func TestPublishTable(t *testing.T) {
	md := "| A | B |\n|---|---|\n| 1 | 2 |"
	got, err := Publish(md)
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if !strings.Contains(got, "<table>") {
		t.Errorf("table extension not active: %q", got)
	}
}

func TestPublishImageFigure(t *testing.T) {
	got, err := Publish("![bir resim](/img/a.png)")
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if !strings.Contains(got, "<figure>") {
		t.Errorf("image not wrapped in figure: %q", got)
	}
	if !strings.Contains(got, `<figcaption>bir resim</figcaption>`) {
		t.Errorf("alt text not used as caption: %q", got)
	}
	if strings.Contains(got, "<p><figure>") || strings.Contains(got, "<p><img") {
		t.Errorf("image-only paragraph should drop the paragraph wrapper: %q", got)
	}
}

func TestPublishImageWithoutAlt(t *testing.T) {
	got, err := Publish("![](/img/a.png)")
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if strings.Contains(got, "<figcaption>") {
		t.Errorf("empty alt should omit the caption: %q", got)
	}
	if !strings.Contains(got, "<figure>") {
		t.Errorf("image still wrapped in figure: %q", got)
	}
}

func TestPublishImageInsideText(t *testing.T) {
	got, err := Publish("before ![alt](/a.png) after")
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}
	// Mixed paragraphs keep their wrapper.
	if !strings.Contains(got, "<p>") {
		t.Errorf("mixed paragraph lost its wrapper: %q", got)
	}
}

func TestPublishEscapesRawHTML(t *testing.T) {
	got, err := Publish("hello <script>alert(1)</script>")
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if strings.Contains(got, "<script>") {
		t.Errorf("raw HTML not neutralized: %q", got)
	}
}
