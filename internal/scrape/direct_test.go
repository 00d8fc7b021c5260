package scrape

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plaugmann/family-meal-planner/internal/httpx"
	"github.com/plaugmann/family-meal-planner/internal/recipe"
)

func servePage(t *testing.T, jsonld string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			http.NotFound(w, r)
			return
		}
		fmt.Fprintf(w, `<html><head><script type="application/ld+json">%s</script></head><body></body></html>`, jsonld)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFetchPlainRecipeNode(t *testing.T) {
	srv := servePage(t, `{
		"@type": "Recipe",
		"name": "Lasagne",
		"image": "https://example.com/lasagne.jpg",
		"recipeYield": "6 servings",
		"recipeIngredient": ["500 g minced beef", "1 onion"],
		"recipeInstructions": [{"@type": "HowToStep", "text": "Brown the beef."}, {"@type": "HowToStep", "text": "Assemble and bake."}]
	}`)

	d := NewDirect(httpx.NewPoliteClient("test-agent"))
	parsed, err := d.Fetch(context.Background(), srv.URL+"/opskrift/lasagne")
	require.NoError(t, err)
	assert.Equal(t, "Lasagne", parsed.Title)
	assert.Equal(t, 6, parsed.Servings)
	assert.Equal(t, "https://example.com/lasagne.jpg", parsed.ImageURL)
	assert.Equal(t, []string{"500 g minced beef", "1 onion"}, parsed.Ingredients)
	assert.Equal(t, []string{"Brown the beef.", "Assemble and bake."}, parsed.Directions)
}

func TestFetchGraphWrappedRecipe(t *testing.T) {
	srv := servePage(t, `{
		"@context": "https://schema.org",
		"@graph": [
			{"@type": "WebPage", "name": "ignored"},
			{
				"@type": ["Recipe", "Thing"],
				"name": "Boller",
				"image": {"@type": "ImageObject", "url": "https://example.com/boller.jpg"},
				"recipeYield": 12,
				"recipeIngredient": ["500 g flour", "1 dl milk"],
				"recipeInstructions": "Knead and bake."
			}
		]
	}`)

	d := NewDirect(httpx.NewPoliteClient("test-agent"))
	parsed, err := d.Fetch(context.Background(), srv.URL+"/boller")
	require.NoError(t, err)
	assert.Equal(t, "Boller", parsed.Title)
	assert.Equal(t, 12, parsed.Servings)
	assert.Equal(t, "https://example.com/boller.jpg", parsed.ImageURL)
	assert.Equal(t, []string{"Knead and bake."}, parsed.Directions)
}

func TestFetchHowToSections(t *testing.T) {
	srv := servePage(t, `{
		"@type": "Recipe",
		"name": "Pie",
		"recipeIngredient": ["1 crust"],
		"recipeInstructions": [{
			"@type": "HowToSection",
			"itemListElement": [
				{"@type": "HowToStep", "text": "Roll the crust."},
				{"@type": "HowToStep", "text": "Fill and bake."}
			]
		}]
	}`)

	d := NewDirect(httpx.NewPoliteClient("test-agent"))
	parsed, err := d.Fetch(context.Background(), srv.URL+"/pie")
	require.NoError(t, err)
	assert.Equal(t, []string{"Roll the crust.", "Fill and bake."}, parsed.Directions)
	// yield missing: default applies
	assert.Equal(t, recipe.DefaultServings, parsed.Servings)
}

func TestFetchNoRecipeNode(t *testing.T) {
	srv := servePage(t, `{"@type": "WebSite", "name": "Just a site"}`)

	d := NewDirect(httpx.NewPoliteClient("test-agent"))
	_, err := d.Fetch(context.Background(), srv.URL+"/about")
	assert.ErrorIs(t, err, recipe.ErrUnparsable)
}

func TestFetchHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			http.NotFound(w, r)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	t.Cleanup(srv.Close)

	d := NewDirect(httpx.NewPoliteClient("test-agent"))
	_, err := d.Fetch(context.Background(), srv.URL+"/missing")
	var fetchErr *httpx.FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, http.StatusNotFound, fetchErr.Status)
}

func TestParseYield(t *testing.T) {
	assert.Equal(t, 4, parseYield("4 servings"))
	assert.Equal(t, 4, parseYield(float64(4)))
	assert.Equal(t, 6, parseYield([]any{"6", "6 portions"}))
	assert.Equal(t, 0, parseYield("serves many"))
	assert.Equal(t, 0, parseYield(nil))
}

func TestStripMarkup(t *testing.T) {
	assert.Equal(t, "Boil the pasta", stripMarkup("<b>Boil</b> the pasta"))
	assert.Equal(t, "Step oneStep two", stripMarkup("Step one<br/>Step two"))
	assert.Equal(t, "plain text", stripMarkup("plain text"))
	assert.Equal(t, "a link", stripMarkup(`a <a href="https://x.dk">link</a>`))
}

func TestFirstImageURL(t *testing.T) {
	assert.Equal(t, "a", firstImageURL("a"))
	assert.Equal(t, "b", firstImageURL([]any{map[string]any{"url": "b"}}))
	assert.Equal(t, "", firstImageURL(42.0))
}
