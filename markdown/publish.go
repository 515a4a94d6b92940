package markdown

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"
)

// engine is the publication renderer: full markdown with table support plus
// the site's presentation rules for images. Stateless, safe for concurrent use.
var engine = goldmark.New(
	goldmark.WithExtensions(extension.Table),
	goldmark.WithParserOptions(parser.WithAutoHeadingID()),
	goldmark.WithRendererOptions(
		renderer.WithNodeRenderers(util.Prioritized(&figureRenderer{}, 100)),
	),
)

// Publish converts stored post content to the HTML served on the public site.
func Publish(md string) (string, error) {
	var buf bytes.Buffer
	if err := engine.Convert([]byte(md), &buf); err != nil {
		return "", fmt.Errorf("markdown publish: %w", err)
	}
	return buf.String(), nil
}

// figureRenderer overrides image and paragraph rendering: every image becomes
// a <figure> whose caption is the alt text, and a paragraph containing only
// an image is not wrapped in <p> so the figure stands on its own.
type figureRenderer struct{}

func (r *figureRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindImage, r.renderImage)
	reg.Register(ast.KindParagraph, r.renderParagraph)
}

func (r *figureRenderer) renderImage(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	img := node.(*ast.Image)
	alt := inlineText(img, source)

	_, _ = w.WriteString(`<figure><img src="`)
	_, _ = w.Write(util.EscapeHTML(util.URLEscape(img.Destination, true)))
	_, _ = w.WriteString(`" alt="`)
	_, _ = w.Write(util.EscapeHTML(alt))
	_, _ = w.WriteString(`">`)
	if len(alt) > 0 {
		_, _ = w.WriteString(`<figcaption>`)
		_, _ = w.Write(util.EscapeHTML(alt))
		_, _ = w.WriteString(`</figcaption>`)
	}
	_, _ = w.WriteString(`</figure>`)
	return ast.WalkSkipChildren, nil
}

func (r *figureRenderer) renderParagraph(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if imageOnly(node) {
		return ast.WalkContinue, nil
	}
	if entering {
		_, _ = w.WriteString("<p>")
	} else {
		_, _ = w.WriteString("</p>\n")
	}
	return ast.WalkContinue, nil
}

// imageOnly reports whether the paragraph's sole child is an image.
func imageOnly(node ast.Node) bool {
	return node.ChildCount() == 1 && node.FirstChild().Kind() == ast.KindImage
}

// inlineText collects the raw text of an inline node's descendants.
func inlineText(node ast.Node, source []byte) []byte {
	var buf bytes.Buffer
	for c := node.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			buf.Write(t.Segment.Value(source))
			continue
		}
		buf.Write(inlineText(c, source))
	}
	return buf.Bytes()
}
