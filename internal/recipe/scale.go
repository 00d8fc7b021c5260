package recipe

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Amount tokens recognized inside free-text lines: mixed numbers ("2 1/2"),
// simple fractions, decimals with comma or dot, and the common vulgar
// fraction glyphs. A trailing "%" is consumed so percentages stay unscaled.
var amountTokenRe = regexp.MustCompile(`(\d+\s+\d+/\d+|\d+/\d+|\d+[.,]?\d*|[¼½¾⅓⅔⅛⅜⅝⅞])%?`)

var vulgarFractions = map[string]float64{
	"¼": 0.25,
	"½": 0.5,
	"¾": 0.75,
	"⅓": 1.0 / 3.0,
	"⅔": 2.0 / 3.0,
	"⅛": 0.125,
	"⅜": 0.375,
	"⅝": 0.625,
	"⅞": 0.875,
}

// ScaleIngredients multiplies every parsed amount by toServings/fromServings,
// rounded to two decimals. Raw, unit and product are untouched, so the raw
// text goes stale unless the caller re-renders from the structured fields.
func ScaleIngredients(items []Ingredient, fromServings, toServings int) []Ingredient {
	if fromServings <= 0 || toServings <= 0 {
		return items
	}
	factor := float64(toServings) / float64(fromServings)
	out := make([]Ingredient, len(items))
	for i, item := range items {
		out[i] = item
		if item.Amount == nil {
			continue
		}
		scaled := math.Round(*item.Amount*factor*100) / 100
		out[i].Amount = &scaled
	}
	return out
}

// ScaleLine rewrites every recognized amount token in a free-text line
// proportionally to the serving ratio. Tokens that fail to parse are left
// in place.
func ScaleLine(line string, fromServings, toServings int) string {
	if fromServings <= 0 || toServings <= 0 || fromServings == toServings {
		return line
	}
	factor := float64(toServings) / float64(fromServings)
	return amountTokenRe.ReplaceAllStringFunc(line, func(match string) string {
		if strings.HasSuffix(match, "%") {
			return match
		}
		amount, ok := parseAmountToken(match)
		if !ok {
			return match
		}
		return formatAmount(amount * factor)
	})
}

func parseAmountToken(token string) (float64, bool) {
	token = strings.TrimSpace(token)

	// Mixed number: whole part plus fraction.
	if parts := strings.Fields(token); len(parts) == 2 {
		first, ok1 := parseAmountToken(parts[0])
		second, ok2 := parseAmountToken(parts[1])
		if !ok1 || !ok2 {
			return 0, false
		}
		return first + second, true
	}

	if v, ok := vulgarFractions[token]; ok {
		return v, true
	}

	if strings.Contains(token, "/") {
		num, den, found := strings.Cut(token, "/")
		if !found {
			return 0, false
		}
		n, errN := strconv.ParseFloat(num, 64)
		d, errD := strconv.ParseFloat(den, 64)
		if errN != nil || errD != nil || d == 0 {
			return 0, false
		}
		return n / d, true
	}

	v, err := strconv.ParseFloat(strings.ReplaceAll(token, ",", "."), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func formatAmount(v float64) string {
	if v == math.Trunc(v) {
		return strconv.FormatFloat(v, 'f', 0, 64)
	}
	rounded := math.Round(v*100) / 100
	return strconv.FormatFloat(rounded, 'f', -1, 64)
}
