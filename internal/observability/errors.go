package observability

import (
	"context"
	"errors"
	"net/http"

	"github.com/plaugmann/family-meal-planner/internal/httpx"
	"github.com/plaugmann/family-meal-planner/internal/recipe"
)

const (
	ErrorNetwork   = "network"
	ErrorParsing   = "parsing"
	ErrorRateLimit = "rate_limit"
	ErrorStore     = "store"
	ErrorUnknown   = "unknown"
)

// ClassifyFetchError buckets an import/search failure for the stats
// counters. Parsing errors mean the backend answered with unusable data;
// network errors mean it never answered usefully at all.
func ClassifyFetchError(err error) string {
	if err == nil {
		return ErrorUnknown
	}
	if errors.Is(err, recipe.ErrUnparsable) {
		return ErrorParsing
	}
	var fe *httpx.FetchError
	if errors.As(err, &fe) {
		if fe.Status == http.StatusTooManyRequests {
			return ErrorRateLimit
		}
		return ErrorNetwork
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrorNetwork
	}
	return ErrorUnknown
}
