package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plaugmann/family-meal-planner/internal/core"
	"github.com/plaugmann/family-meal-planner/internal/recipe"
	"github.com/plaugmann/family-meal-planner/internal/sitesearch"
)

type fakeSource struct {
	parsed *recipe.Parsed
	err    error
}

func (f *fakeSource) Fetch(_ context.Context, url string) (*recipe.Parsed, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := *f.parsed
	out.SourceURL = url
	return &out, nil
}

func newTestServer(source recipe.Source) *Server {
	return NewServer(
		nil,
		core.NewImportService(nil, source),
		nil,
		sitesearch.NewSearcher(nil, nil),
		nil,
		Options{},
	)
}

func postJSON(t *testing.T, srv *Server, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var envelope map[string]errorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	body, ok := envelope["error"]
	require.True(t, ok, "missing error envelope")
	return body
}

func TestParseRecipeSuccess(t *testing.T) {
	srv := newTestServer(&fakeSource{parsed: &recipe.Parsed{
		Title:       "Pasta",
		Servings:    4,
		Ingredients: []string{"400 g pasta"},
		Directions:  []string{"Boil."},
	}})

	rec := postJSON(t, srv, "/api/parse-recipe", `{"url":"https://example.com/pasta"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var payload struct {
		Recipe recipe.Parsed `json:"recipe"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, "Pasta", payload.Recipe.Title)
	assert.Equal(t, "https://example.com/pasta", payload.Recipe.SourceURL)
}

func TestParseRecipeMissingURL(t *testing.T) {
	srv := newTestServer(&fakeSource{})

	rec := postJSON(t, srv, "/api/parse-recipe", `{}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, CodeValidation, decodeError(t, rec).Code)
}

func TestParseRecipeInvalidURL(t *testing.T) {
	srv := newTestServer(&fakeSource{})

	rec := postJSON(t, srv, "/api/parse-recipe", `{"url":"not-a-url"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, CodeValidation, decodeError(t, rec).Code)
}

func TestParseRecipeUnparsable(t *testing.T) {
	srv := newTestServer(&fakeSource{err: recipe.ErrUnparsable})

	rec := postJSON(t, srv, "/api/parse-recipe", `{"url":"https://example.com/broken"}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, CodeImportFailed, decodeError(t, rec).Code)
}

func TestHealth(t *testing.T) {
	srv := newTestServer(&fakeSource{})
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}

func TestLoginRejectsMalformedPin(t *testing.T) {
	srv := newTestServer(&fakeSource{})

	rec := postJSON(t, srv, "/api/auth/login", `{"pin":"12"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, CodeValidation, decodeError(t, rec).Code)
}

func TestValidSourceURL(t *testing.T) {
	assert.True(t, validSourceURL("https://example.com/x"))
	assert.True(t, validSourceURL("http://example.com"))
	assert.False(t, validSourceURL("ftp://example.com"))
	assert.False(t, validSourceURL("not-a-url"))
	assert.False(t, validSourceURL(""))
}
