// Package scrape is a recipe.Source that extracts schema.org/Recipe
// structured data straight from the source page, for running without the
// delegated parsing backend.
package scrape

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/plaugmann/family-meal-planner/internal/httpx"
	"github.com/plaugmann/family-meal-planner/internal/observability"
	"github.com/plaugmann/family-meal-planner/internal/recipe"
)

type Direct struct {
	client *httpx.PoliteClient
}

func NewDirect(client *httpx.PoliteClient) *Direct {
	if client == nil {
		client = httpx.NewPoliteClient(httpx.DefaultUserAgent)
	}
	return &Direct{client: client}
}

// Fetch downloads the page and walks its JSON-LD blocks for a Recipe node.
func (d *Direct) Fetch(ctx context.Context, sourceURL string) (*recipe.Parsed, error) {
	body, err := d.client.GetBody(ctx, sourceURL)
	if err != nil {
		return nil, err
	}
	observability.IncPagesCrawled()

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(body)))
	if err != nil {
		return nil, err
	}

	var found *jsonldRecipe
	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		var payload any
		if err := json.Unmarshal([]byte(s.Text()), &payload); err != nil {
			return true
		}
		if r := findRecipeNode(payload); r != nil {
			found = r
			return false
		}
		return true
	})
	if found == nil {
		return nil, recipe.ErrUnparsable
	}

	return recipe.Finalize(&recipe.Parsed{
		Title:       found.name,
		Servings:    found.servings,
		ImageURL:    found.image,
		Ingredients: found.ingredients,
		Directions:  found.directions,
		SourceURL:   sourceURL,
	})
}

type jsonldRecipe struct {
	name        string
	image       string
	servings    int
	ingredients []string
	directions  []string
}

func findRecipeNode(payload any) *jsonldRecipe {
	switch t := payload.(type) {
	case map[string]any:
		if isRecipeType(t["@type"]) {
			return decodeRecipeNode(t)
		}
		if graph, ok := t["@graph"].([]any); ok {
			for _, item := range graph {
				if r := findRecipeNode(item); r != nil {
					return r
				}
			}
		}
	case []any:
		for _, item := range t {
			if r := findRecipeNode(item); r != nil {
				return r
			}
		}
	}
	return nil
}

func isRecipeType(t any) bool {
	switch v := t.(type) {
	case string:
		return v == "Recipe"
	case []any:
		for _, item := range v {
			if s, ok := item.(string); ok && s == "Recipe" {
				return true
			}
		}
	}
	return false
}

func decodeRecipeNode(node map[string]any) *jsonldRecipe {
	r := &jsonldRecipe{}
	if name, ok := node["name"].(string); ok {
		r.name = stripMarkup(name)
	}
	r.image = firstImageURL(node["image"])
	r.servings = parseYield(node["recipeYield"])
	r.ingredients = stripMarkupAll(stringList(node["recipeIngredient"]))
	r.directions = stripMarkupAll(instructionList(node["recipeInstructions"]))
	return r
}

// stripMarkup flattens inline HTML some sites embed in their JSON-LD text
// values (<br>, links, bold) down to the text content.
func stripMarkup(s string) string {
	if !strings.ContainsRune(s, '<') {
		return s
	}
	tok := html.NewTokenizer(strings.NewReader(s))
	var b strings.Builder
	for {
		switch tok.Next() {
		case html.ErrorToken:
			return b.String()
		case html.TextToken:
			b.Write(tok.Text())
		}
	}
}

func stripMarkupAll(lines []string) []string {
	for i, line := range lines {
		lines[i] = stripMarkup(line)
	}
	return lines
}

func firstImageURL(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case []any:
		for _, item := range t {
			if s := firstImageURL(item); s != "" {
				return s
			}
		}
	case map[string]any:
		if u, ok := t["url"].(string); ok {
			return u
		}
	}
	return ""
}

func parseYield(v any) int {
	switch t := v.(type) {
	case float64:
		return int(t)
	case string:
		// Yields often read "4 servings"; take the leading number.
		fields := strings.Fields(t)
		if len(fields) > 0 {
			if n, err := strconv.Atoi(fields[0]); err == nil {
				return n
			}
		}
	case []any:
		for _, item := range t {
			if n := parseYield(item); n > 0 {
				return n
			}
		}
	}
	return 0
}

func stringList(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	var out []string
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func instructionList(v any) []string {
	switch t := v.(type) {
	case string:
		return []string{t}
	case []any:
		var out []string
		for _, item := range t {
			out = append(out, instructionList(item)...)
		}
		return out
	case map[string]any:
		if steps, ok := t["itemListElement"]; ok {
			return instructionList(steps)
		}
		if text, ok := t["text"].(string); ok {
			return []string{text}
		}
	}
	return nil
}
