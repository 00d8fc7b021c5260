package observability

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/plaugmann/family-meal-planner/internal/httpx"
	"github.com/plaugmann/family-meal-planner/internal/recipe"
)

func TestClassifyFetchError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ErrorUnknown},
		{"unparsable", recipe.ErrUnparsable, ErrorParsing},
		{"wrapped unparsable", fmt.Errorf("backend: %w", recipe.ErrUnparsable), ErrorParsing},
		{"rate limited", &httpx.FetchError{Status: http.StatusTooManyRequests}, ErrorRateLimit},
		{"server error", &httpx.FetchError{Status: http.StatusBadGateway}, ErrorNetwork},
		{"transport error", &httpx.FetchError{Err: errors.New("connection refused")}, ErrorNetwork},
		{"deadline", context.DeadlineExceeded, ErrorNetwork},
		{"other", errors.New("boom"), ErrorUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyFetchError(tt.err))
		})
	}
}

func TestSnapshotCounters(t *testing.T) {
	before := Snapshot()

	IncSearchQueries()
	IncListsGenerated()
	IncRecipesImported("example.com")
	IncError(ErrorParsing, "import")

	after := Snapshot()
	assert.Equal(t, before.SearchQueries+1, after.SearchQueries)
	assert.Equal(t, before.ListsGenerated+1, after.ListsGenerated)
	assert.Equal(t, before.RecipesImported+1, after.RecipesImported)
	assert.Equal(t, before.ErrorsTotal+1, after.ErrorsTotal)
	assert.Equal(t, before.ImportsByDomain["example.com"]+1, after.ImportsByDomain["example.com"])
	assert.Equal(t, before.ErrorsByType[ErrorParsing]+1, after.ErrorsByType[ErrorParsing])
}
