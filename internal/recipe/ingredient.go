package recipe

import (
	"regexp"
	"strconv"
	"strings"
)

// Matches an optional leading decimal amount, an optional single-token unit
// and the product remainder. Deliberately not a full quantity grammar:
// multi-word units stay attached to the product.
var ingredientLineRe = regexp.MustCompile(`^(\d+(?:[.,]\d+)?)(?:\s+([^\d\s]+))?\s+(.*)$`)

// ParseIngredientLine splits a raw ingredient line into amount, unit and
// product. Lines without a leading number come back with nil amount/unit
// and the full cleaned line as product.
func ParseIngredientLine(line string) Ingredient {
	cleaned := strings.TrimSpace(whitespaceRe.ReplaceAllString(line, " "))
	m := ingredientLineRe.FindStringSubmatch(cleaned)
	if m == nil {
		return Ingredient{Raw: cleaned, Product: cleaned}
	}

	amount, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", "."), 64)
	ing := Ingredient{Raw: cleaned, Product: cleaned}
	if err == nil {
		ing.Amount = &amount
	}
	if m[2] != "" {
		unit := m[2]
		ing.Unit = &unit
	}
	if product := strings.TrimSpace(m[3]); product != "" {
		ing.Product = product
	}
	return ing
}
