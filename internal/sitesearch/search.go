package sitesearch

import (
	"context"
	"log/slog"
	"strings"
	"sync"
)

// Site describes one supported sitemap integration. Each site publishes a
// different index URL and names its recipe sub-sitemaps differently.
type Site struct {
	Domain      string
	IndexURL    string
	Include     func(loc string) bool
	MaxSitemaps int
}

// DefaultSites are the three integrations the planner currently knows.
// MaxSitemaps stays at 1: only the first matching sub-sitemap is scanned,
// which under-covers large sites.
func DefaultSites() []Site {
	return []Site{
		{
			Domain:   "madbanditten.dk",
			IndexURL: "https://www.madbanditten.dk/sitemap_index.xml",
			Include:  func(loc string) bool { return strings.Contains(loc, "post-sitemap") },
		},
		{
			Domain:   "valdemarsro.dk",
			IndexURL: "https://www.valdemarsro.dk/sitemap_index.xml",
			Include:  func(loc string) bool { return strings.Contains(loc, "post-sitemap") },
		},
		{
			Domain:   "arla.dk",
			IndexURL: "https://www.arla.dk/sitemap.index.xml",
			Include:  func(loc string) bool { return strings.Contains(loc, "RecipeSitemapUrlWriter") },
		},
	}
}

// Searcher runs slug searches across the supported sites.
type Searcher struct {
	fetcher Fetcher
	sites   map[string]Site
}

func NewSearcher(fetcher Fetcher, sites []Site) *Searcher {
	if len(sites) == 0 {
		sites = DefaultSites()
	}
	byDomain := make(map[string]Site, len(sites))
	for _, site := range sites {
		byDomain[site.Domain] = site
	}
	return &Searcher{fetcher: fetcher, sites: byDomain}
}

// Supported reports whether a domain has a sitemap integration.
func (s *Searcher) Supported(domain string) bool {
	_, ok := s.sites[domain]
	return ok
}

// SearchDomain searches one domain. It never fails: unsupported domains and
// crawl errors both degrade to an empty result set, with a logged warning
// for the latter.
func (s *Searcher) SearchDomain(ctx context.Context, domain, query string, limit int) []Result {
	site, ok := s.sites[domain]
	if !ok {
		return nil
	}
	results, err := searchFromSitemaps(ctx, s.fetcher, sitemapQuery{
		query:       query,
		limit:       limit,
		indexURL:    site.IndexURL,
		include:     site.Include,
		maxSitemaps: site.MaxSitemaps,
	})
	if err != nil {
		slog.Warn("site search degraded to empty", "domain", domain, "query", query, "error", err)
	}
	return results
}

// Search fans out over the allowed domains concurrently, giving each domain
// a ceil(limit/len(domains)) share, then concatenates the buckets in domain
// order and truncates to limit.
func (s *Searcher) Search(ctx context.Context, domains []string, query string, limit int) []Result {
	if len(domains) == 0 || limit <= 0 {
		return nil
	}
	perDomain := (limit + len(domains) - 1) / len(domains)
	if perDomain < 1 {
		perDomain = 1
	}

	buckets := make([][]Result, len(domains))
	var wg sync.WaitGroup
	for i, domain := range domains {
		wg.Add(1)
		go func(i int, domain string) {
			defer wg.Done()
			buckets[i] = s.SearchDomain(ctx, domain, query, perDomain)
		}(i, domain)
	}
	wg.Wait()

	var merged []Result
	for _, bucket := range buckets {
		merged = append(merged, bucket...)
	}
	if len(merged) > limit {
		merged = merged[:limit]
	}
	return merged
}
