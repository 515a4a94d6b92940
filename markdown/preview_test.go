package markdown

import (
	"strings"
	"testing"
)

func TestPreviewEscapesHTML(t *testing.T) {
	got := Preview("a <script>alert(1)</script> & more")
	if strings.Contains(got, "<script>") {
		t.Errorf("preview must escape raw HTML: %q", got)
	}
	if !strings.Contains(got, "&lt;script&gt;") {
		t.Errorf("escaped source missing: %q", got)
	}
	if !strings.Contains(got, "&amp; more") {
		t.Errorf("ampersand not escaped: %q", got)
	}
}

func TestPreviewHeadings(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"# Heading 1", "<h1>Heading 1</h1>"},
		{"## Heading 2", "<h2>Heading 2</h2>"},
		{"### Heading 3", "<h3>Heading 3</h3>"},
	}
	for _, tt := range tests {
		got := Preview(tt.input)
		if !strings.Contains(got, tt.expected) {
			t.Errorf("Preview(%q) = %q, want contains %q", tt.input, got, tt.expected)
		}
	}
}

func TestPreviewInline(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"**bold**", "<strong>bold</strong>"},
		{"*italic*", "<em>italic</em>"},
		{"`code`", "<code>code</code>"},
		{"[metin](https://example.com)", `<a href="https://example.com">metin</a>`},
		{"![alt metni](https://example.com/a.png)", `<img src="https://example.com/a.png" alt="alt metni"/>`},
	}
	for _, tt := range tests {
		got := Preview(tt.input)
		if !strings.Contains(got, tt.expected) {
			t.Errorf("Preview(%q) = %q, want contains %q", tt.input, got, tt.expected)
		}
	}
}

func TestPreviewImageBeforeLink(t *testing.T) {
	// The image rule must consume its syntax before the link rule sees it.
	got := Preview("![a](/x.png)")
	if strings.Contains(got, "<a href=") {
		t.Errorf("image rendered as link: %q", got)
	}
}

func TestPreviewCodeBlock(t *testing.T) {
	got := Preview("```\nfmt.Println(\"hi\")\n```")
	if !strings.Contains(got, "<pre><code>") {
		t.Errorf("missing code block: %q", got)
	}
	if !strings.Contains(got, "fmt.Println") {
		t.Errorf("missing code content: %q", got)
	}
}

func TestPreviewBlockquoteAndList(t *testing.T) {
	got := Preview("> bir alıntı")
	if !strings.Contains(got, "<blockquote>bir alıntı</blockquote>") {
		t.Errorf("blockquote: %q", got)
	}
	got = Preview("- birinci\n- ikinci")
	if strings.Count(got, "<li>") != 2 {
		t.Errorf("list items: %q", got)
	}
}

func TestPreviewParagraphBreaks(t *testing.T) {
	got := Preview("first para\n\nsecond para")
	if !strings.Contains(got, "</p><p>") {
		t.Errorf("double newline should split paragraphs: %q", got)
	}
	if !strings.HasPrefix(got, "<p>") {
		t.Errorf("output not wrapped in paragraph: %q", got)
	}
	got = Preview("line one\nline two")
	if !strings.Contains(got, "line one<br/>line two") {
		t.Errorf("single newline should become a break: %q", got)
	}
}
