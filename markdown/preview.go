// Package markdown renders authored markdown two ways: a restricted,
// substitution-based preview for the editor pane, and a full publication
// renderer for the public site. The two are deliberately separate pure
// functions; their feature sets differ by design.
package markdown

import (
	"regexp"
	"strings"
)

// The preview grammar is an ordered substitution list, not a markdown parser.
// Headings 1-3, bold, italic, images, links, fenced and inline code,
// blockquotes, unordered list items, and paragraph breaks are supported;
// nested or interacting constructs are not guaranteed to render.
var (
	prevH3        = regexp.MustCompile(`(?m)^### (.*)$`)
	prevH2        = regexp.MustCompile(`(?m)^## (.*)$`)
	prevH1        = regexp.MustCompile(`(?m)^# (.*)$`)
	prevBold      = regexp.MustCompile(`\*\*(.*?)\*\*`)
	prevItalic    = regexp.MustCompile(`\*([^*]+)\*`)
	prevImage     = regexp.MustCompile(`!\[(.*?)\]\((.*?)\)`)
	prevLink      = regexp.MustCompile(`\[(.*?)\]\((.*?)\)`)
	prevCodeBlock = regexp.MustCompile("(?s)```\\n?(.*?)```")
	prevCode      = regexp.MustCompile("`([^`]*)`")
	prevQuote     = regexp.MustCompile(`(?m)^&gt; (.*)$`)
	prevListItem  = regexp.MustCompile(`(?m)^- (.*)$`)
)

// Preview converts md to best-effort HTML for the editor's preview pane.
// The three HTML metacharacters are escaped before any substitution runs, so
// literal markdown source cannot inject markup.
func Preview(md string) string {
	html := md
	html = strings.ReplaceAll(html, "&", "&amp;")
	html = strings.ReplaceAll(html, "<", "&lt;")
	html = strings.ReplaceAll(html, ">", "&gt;")

	html = prevH3.ReplaceAllString(html, "<h3>$1</h3>")
	html = prevH2.ReplaceAllString(html, "<h2>$1</h2>")
	html = prevH1.ReplaceAllString(html, "<h1>$1</h1>")
	html = prevBold.ReplaceAllString(html, "<strong>$1</strong>")
	html = prevItalic.ReplaceAllString(html, "<em>$1</em>")
	html = prevImage.ReplaceAllString(html, `<img src="$2" alt="$1"/>`)
	html = prevLink.ReplaceAllString(html, `<a href="$2">$1</a>`)
	html = prevCodeBlock.ReplaceAllString(html, "<pre><code>$1</code></pre>")
	html = prevCode.ReplaceAllString(html, "<code>$1</code>")
	html = prevQuote.ReplaceAllString(html, "<blockquote>$1</blockquote>")
	html = prevListItem.ReplaceAllString(html, "<li>$1</li>")

	html = strings.ReplaceAll(html, "\n\n", "</p><p>")
	html = strings.ReplaceAll(html, "\n", "<br/>")
	html = "<p>" + html + "</p>"
	html = strings.ReplaceAll(html, "<p></p>", "")
	html = strings.ReplaceAll(html, "<p><br/></p>", "")
	return html
}
