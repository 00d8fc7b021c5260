package recipe

import (
	"context"
	"errors"
)

// ErrUnparsable is returned when a backend responded but the payload could
// not be assembled into a complete recipe. Network failures are reported
// separately so callers can tell "no data" from "bad data".
var ErrUnparsable = errors.New("unable to parse recipe data")

// Parsed is the canonical result of fetching a recipe from a source URL.
// It is transient: the import handler persists it as a Recipe row.
type Parsed struct {
	Title       string       `json:"title"`
	Servings    int          `json:"servings"`
	ImageURL    string       `json:"imageUrl,omitempty"`
	Ingredients []string     `json:"ingredients"`
	Parts       []Ingredient `json:"ingredientParts"`
	Directions  []string     `json:"directions"`
	SourceURL   string       `json:"sourceUrl"`
}

// Ingredient is a single ingredient line split by the leading-number
// heuristic. Amount and Unit are nil when the line has no leading number.
type Ingredient struct {
	Raw     string   `json:"raw"`
	Amount  *float64 `json:"amount"`
	Unit    *string  `json:"unit"`
	Product string   `json:"product"`
}

// Source fetches and normalizes a recipe page. Implementations: the
// NoAdsRecipe delegated backend and the direct JSON-LD scraper.
type Source interface {
	Fetch(ctx context.Context, url string) (*Parsed, error)
}

const DefaultServings = 4

// Finalize validates field completeness and derives the ingredient parts.
// An incomplete recipe yields ErrUnparsable rather than a partial result.
func Finalize(p *Parsed) (*Parsed, error) {
	if p.Servings <= 0 {
		p.Servings = DefaultServings
	}
	p.Ingredients = NormalizeLines(p.Ingredients)
	p.Directions = NormalizeLines(p.Directions)
	p.Title = CleanLine(p.Title)
	if p.Title == "" || len(p.Ingredients) == 0 || len(p.Directions) == 0 {
		return nil, ErrUnparsable
	}
	p.Parts = make([]Ingredient, 0, len(p.Ingredients))
	for _, line := range p.Ingredients {
		p.Parts = append(p.Parts, ParseIngredientLine(line))
	}
	return p, nil
}
