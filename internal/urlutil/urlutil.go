// Package urlutil holds the URL helpers shared by the importer, the
// sitemap search and the API layer.
package urlutil

import (
	"net/url"
	"regexp"
	"strings"
	"unicode"
)

// Domain returns the lowercased host of a URL without the www prefix, or
// "" when the URL has no host.
func Domain(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Hostname() == "" {
		return ""
	}
	return strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
}

// NormalizeDomain accepts either a bare domain or a full URL and returns
// the lowercased host without the www prefix. Returns "" when the input
// does not look like a domain.
func NormalizeDomain(raw string) string {
	raw = strings.TrimSpace(strings.ToLower(raw))
	if strings.Contains(raw, "://") {
		if u, err := url.Parse(raw); err == nil {
			raw = u.Hostname()
		}
	}
	raw = strings.TrimPrefix(raw, "www.")
	raw = strings.TrimSuffix(raw, "/")
	if raw == "" || strings.ContainsAny(raw, " /") || !strings.Contains(raw, ".") {
		return ""
	}
	return raw
}

// LastSlug returns the last non-empty path segment of a URL, URL-decoded
// when possible.
func LastSlug(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	segments := strings.Split(u.Path, "/")
	for i := len(segments) - 1; i >= 0; i-- {
		if segments[i] != "" {
			if decoded, err := url.PathUnescape(segments[i]); err == nil {
				return decoded
			}
			return segments[i]
		}
	}
	return ""
}

var slugSeparatorRe = regexp.MustCompile(`[-_]+`)

// TitleFromSlug turns a URL slug into a display title: separators become
// spaces and the first letter of every word is uppercased.
func TitleFromSlug(slug string) string {
	spaced := slugSeparatorRe.ReplaceAllString(slug, " ")
	var b strings.Builder
	startOfWord := true
	for _, r := range spaced {
		if startOfWord && unicode.IsLetter(r) {
			b.WriteRune(unicode.ToUpper(r))
		} else {
			b.WriteRune(r)
		}
		startOfWord = !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}
	return b.String()
}
