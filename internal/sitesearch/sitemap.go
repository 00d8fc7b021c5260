// Package sitesearch discovers recipe URLs on supported sites by scanning
// their sitemaps and substring-matching the query against URL slugs. It is
// intentionally not a full-text search: titles are reconstructed from
// slugs, so they are approximate.
package sitesearch

import (
	"context"
	"regexp"
	"strings"

	"github.com/plaugmann/family-meal-planner/internal/observability"
	"github.com/plaugmann/family-meal-planner/internal/urlutil"
)

// Result is one candidate recipe URL. Ephemeral; whether it was already
// imported is computed by the API layer against the recipe store.
type Result struct {
	Title        string `json:"title"`
	URL          string `json:"url"`
	SourceDomain string `json:"sourceDomain"`
}

// Fetcher retrieves sitemap XML. Satisfied by httpx.CollyFetcher.
type Fetcher interface {
	FetchBytes(ctx context.Context, rawURL string) ([]byte, int, error)
}

type sitemapQuery struct {
	query       string
	limit       int
	indexURL    string
	include     func(loc string) bool
	maxSitemaps int
}

var locRe = regexp.MustCompile(`<loc>([^<]+)</loc>`)

// extractLocs pulls <loc> entries out of sitemap XML by text scanning.
// Sitemaps in the wild are messy enough that a strict XML decode loses
// entries a regex keeps.
func extractLocs(xml []byte) []string {
	matches := locRe.FindAllSubmatch(xml, -1)
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, string(m[1]))
	}
	return out
}

func searchFromSitemaps(ctx context.Context, fetcher Fetcher, q sitemapQuery) ([]Result, error) {
	normalizedQuery := strings.ToLower(strings.TrimSpace(q.query))
	if normalizedQuery == "" {
		return nil, nil
	}
	maxSitemaps := q.maxSitemaps
	if maxSitemaps <= 0 {
		maxSitemaps = 1
	}

	indexBody, _, err := fetcher.FetchBytes(ctx, q.indexURL)
	if err != nil {
		return nil, err
	}
	observability.IncPagesCrawled()

	var sitemapURLs []string
	for _, loc := range extractLocs(indexBody) {
		if !q.include(loc) {
			continue
		}
		sitemapURLs = append(sitemapURLs, loc)
		if len(sitemapURLs) >= maxSitemaps {
			break
		}
	}

	var results []Result
	for _, sitemapURL := range sitemapURLs {
		if len(results) >= q.limit {
			break
		}
		body, _, err := fetcher.FetchBytes(ctx, sitemapURL)
		if err != nil {
			return results, err
		}
		observability.IncPagesCrawled()
		for _, loc := range extractLocs(body) {
			if len(results) >= q.limit {
				break
			}
			entry := strings.TrimSpace(loc)
			domain := urlutil.Domain(entry)
			if domain == "" {
				continue
			}
			slug := urlutil.LastSlug(entry)
			if slug == "" {
				continue
			}
			if !strings.Contains(strings.ToLower(slug), normalizedQuery) {
				continue
			}
			results = append(results, Result{
				URL:          entry,
				SourceDomain: domain,
				Title:        urlutil.TitleFromSlug(slug),
			})
		}
	}
	return results, nil
}
