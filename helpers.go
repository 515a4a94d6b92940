package weblog

import (
	"encoding/json"
	"net/url"
	"path"
	"strings"
)

// turkishFold maps the non-ASCII letters that show up in Turkish titles to
// their closest ASCII equivalent. Applied before lowercasing so that İ does
// not decompose into i plus a combining dot.
var turkishFold = map[rune]rune{
	'ğ': 'g', 'Ğ': 'g',
	'ü': 'u', 'Ü': 'u',
	'ş': 's', 'Ş': 's',
	'ı': 'i', 'İ': 'i',
	'ö': 'o', 'Ö': 'o',
	'ç': 'c', 'Ç': 'c',
}

// Slugify converts a display title to a URL-safe slug: fold known diacritics,
// lowercase, collapse every run of characters outside [a-z0-9] into a single
// hyphen, and strip leading/trailing hyphens. Empty input yields an empty
// slug; callers enforce non-empty before persisting.
func Slugify(s string) string {
	var folded strings.Builder
	for _, r := range s {
		if f, ok := turkishFold[r]; ok {
			folded.WriteRune(f)
		} else {
			folded.WriteRune(r)
		}
	}
	s = strings.ToLower(strings.TrimSpace(folded.String()))

	var b strings.Builder
	prev := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			prev = false
		default:
			if !prev && b.Len() > 0 {
				b.WriteByte('-')
				prev = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// IsSlug reports whether s is already in canonical slug form.
func IsSlug(s string) bool {
	return s != "" && Slugify(s) == s
}

const wordsPerMinute = 200

// ReadingTime estimates minutes to read content, counting whitespace-split
// words. Always at least 1 for non-empty content.
func ReadingTime(content string) int {
	words := len(strings.Fields(content))
	if words == 0 {
		return 0
	}
	minutes := (words + wordsPerMinute - 1) / wordsPerMinute
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}

// ExcerptOrFallback returns the excerpt, or the first max runes of content
// when the excerpt is empty. The fallback counts characters, not words; the
// reading-time estimate deliberately uses a separate calculation.
func ExcerptOrFallback(excerpt, content string, max int) string {
	if s := strings.TrimSpace(excerpt); s != "" {
		return s
	}
	runes := []rune(strings.TrimSpace(content))
	if len(runes) <= max {
		return string(runes)
	}
	return strings.TrimSpace(string(runes[:max])) + "…"
}

// BuildURL joins a base URL with path segments, ensuring a trailing slash.
func BuildURL(base string, pathSegments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join(u.Path, path.Join(pathSegments...))
	if len(pathSegments) > 0 && !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u.String()
}

// FilterEmpty removes empty/whitespace-only strings from a slice.
func FilterEmpty(vals []string) []string {
	var out []string
	for _, v := range vals {
		if s := strings.TrimSpace(v); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// PathEscape escapes a string for use in a URL path.
func PathEscape(s string) string {
	return url.PathEscape(s)
}

// WebsiteJsonLD returns a JSON-LD string for a WebSite schema using SiteConfig.
func WebsiteJsonLD(cfg SiteConfig) string {
	data := map[string]interface{}{
		"@context":    "https://schema.org",
		"@type":       "WebSite",
		"name":        cfg.Name,
		"url":         BuildURL(cfg.URL),
		"description": cfg.Description,
	}
	if cfg.Author != "" {
		data["author"] = map[string]string{
			"@type": "Person",
			"name":  cfg.Author,
		}
	}
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}

// BlogPostingJsonLD returns a JSON-LD string for a BlogPosting schema.
func BlogPostingJsonLD(post Post, cfg SiteConfig) string {
	postURL := BuildURL(cfg.URL, "blog", post.Slug)
	data := map[string]interface{}{
		"@context":      "https://schema.org",
		"@type":         "BlogPosting",
		"headline":      post.Title,
		"description":   ExcerptOrFallback(post.Excerpt, post.Content, 160),
		"datePublished": post.CreatedAt,
		"dateModified":  post.UpdatedAt,
		"url":           postURL,
		"mainEntityOfPage": map[string]string{
			"@type": "WebPage",
			"@id":   postURL,
		},
	}
	if post.CoverImage != "" {
		data["image"] = post.CoverImage
	}
	if cfg.Author != "" {
		data["author"] = map[string]string{
			"@type": "Person",
			"name":  cfg.Author,
		}
	}
	if cfg.Name != "" {
		data["publisher"] = map[string]string{
			"@type": "Organization",
			"name":  cfg.Name,
		}
	}
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}
