package observability

import (
	"sync"
	"sync/atomic"
)

type StatsSnapshot struct {
	PagesCrawled      uint64            `json:"pages_crawled"`
	RecipesImported   uint64            `json:"recipes_imported"`
	SearchQueries     uint64            `json:"search_queries"`
	ListsGenerated    uint64            `json:"lists_generated"`
	ErrorsTotal       uint64            `json:"errors_total"`
	ImportsByDomain   map[string]uint64 `json:"imports_by_domain,omitempty"`
	ErrorsByType      map[string]uint64 `json:"errors_by_type,omitempty"`
	ErrorsByComponent map[string]uint64 `json:"errors_by_component,omitempty"`
}

var (
	pagesCrawled    uint64
	recipesImported uint64
	searchQueries   uint64
	listsGenerated  uint64
	errorsTotal     uint64

	statsMu           sync.Mutex
	importsByDomain   = map[string]uint64{}
	errorsByType      = map[string]uint64{}
	errorsByComponent = map[string]uint64{}
)

func IncPagesCrawled() {
	atomic.AddUint64(&pagesCrawled, 1)
}

func IncRecipesImported(domain string) {
	atomic.AddUint64(&recipesImported, 1)
	if domain == "" {
		domain = "unknown"
	}
	statsMu.Lock()
	importsByDomain[domain]++
	statsMu.Unlock()
}

func IncSearchQueries() {
	atomic.AddUint64(&searchQueries, 1)
}

func IncListsGenerated() {
	atomic.AddUint64(&listsGenerated, 1)
}

func IncError(errType, component string) {
	if errType == "" {
		errType = "unknown"
	}
	if component == "" {
		component = "unknown"
	}
	atomic.AddUint64(&errorsTotal, 1)
	statsMu.Lock()
	errorsByType[errType]++
	errorsByComponent[component]++
	statsMu.Unlock()
}

func Snapshot() StatsSnapshot {
	statsMu.Lock()
	importsCopy := copyMap(importsByDomain)
	errorsTypeCopy := copyMap(errorsByType)
	errorsComponentCopy := copyMap(errorsByComponent)
	statsMu.Unlock()

	return StatsSnapshot{
		PagesCrawled:      atomic.LoadUint64(&pagesCrawled),
		RecipesImported:   atomic.LoadUint64(&recipesImported),
		SearchQueries:     atomic.LoadUint64(&searchQueries),
		ListsGenerated:    atomic.LoadUint64(&listsGenerated),
		ErrorsTotal:       atomic.LoadUint64(&errorsTotal),
		ImportsByDomain:   importsCopy,
		ErrorsByType:      errorsTypeCopy,
		ErrorsByComponent: errorsComponentCopy,
	}
}

func copyMap(src map[string]uint64) map[string]uint64 {
	if len(src) == 0 {
		return map[string]uint64{}
	}
	out := make(map[string]uint64, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}
