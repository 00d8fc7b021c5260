package recipe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScaleLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		from int
		to   int
		want string
	}{
		{"double integer", "400 g pasta", 4, 8, "800 g pasta"},
		{"halve integer", "400 g pasta", 4, 2, "200 g pasta"},
		{"decimal dot", "1.5 dl cream", 4, 8, "3 dl cream"},
		{"decimal comma", "1,5 dl cream", 4, 8, "3 dl cream"},
		{"simple fraction", "1/2 tsp salt", 4, 8, "1 tsp salt"},
		{"mixed number", "2 1/2 dl milk", 4, 8, "5 dl milk"},
		{"vulgar fraction", "½ lemon", 4, 8, "1 lemon"},
		{"third rounds", "⅓ cup sugar", 4, 8, "0.67 cup sugar"},
		{"percent untouched", "cream 38% fat, 2 dl", 4, 8, "cream 38% fat, 4 dl"},
		{"no numbers", "salt and pepper", 4, 8, "salt and pepper"},
		{"same servings no-op", "400 g pasta", 4, 4, "400 g pasta"},
		{"zero from no-op", "400 g pasta", 0, 8, "400 g pasta"},
		{"multiple amounts", "2 carrots and 3 potatoes", 4, 8, "4 carrots and 6 potatoes"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ScaleLine(tt.line, tt.from, tt.to))
		})
	}
}

func TestScaleIngredients(t *testing.T) {
	amount := 400.0
	unit := "g"
	items := []Ingredient{
		{Raw: "400 g pasta", Amount: &amount, Unit: &unit, Product: "pasta"},
		{Raw: "salt", Product: "salt"},
	}

	scaled := ScaleIngredients(items, 4, 6)
	require.Len(t, scaled, 2)
	require.NotNil(t, scaled[0].Amount)
	assert.Equal(t, 600.0, *scaled[0].Amount)
	assert.Nil(t, scaled[1].Amount)

	// Input untouched.
	assert.Equal(t, 400.0, amount)
}

func TestScaleIngredientsInvalidServings(t *testing.T) {
	amount := 100.0
	items := []Ingredient{{Raw: "100 g butter", Amount: &amount, Product: "butter"}}
	assert.Equal(t, items, ScaleIngredients(items, 0, 4))
	assert.Equal(t, items, ScaleIngredients(items, 4, -1))
}

func TestScaleIngredientsRounding(t *testing.T) {
	amount := 1.0
	items := []Ingredient{{Raw: "1 dl cream", Amount: &amount, Product: "cream"}}
	scaled := ScaleIngredients(items, 3, 4)
	require.NotNil(t, scaled[0].Amount)
	assert.Equal(t, 1.33, *scaled[0].Amount)
}

func TestParseAmountToken(t *testing.T) {
	tests := []struct {
		token string
		want  float64
		ok    bool
	}{
		{"2", 2, true},
		{"1.5", 1.5, true},
		{"1,5", 1.5, true},
		{"1/2", 0.5, true},
		{"2 1/2", 2.5, true},
		{"½", 0.5, true},
		{"1/0", 0, false},
		{"abc", 0, false},
	}
	for _, tt := range tests {
		got, ok := parseAmountToken(tt.token)
		assert.Equal(t, tt.ok, ok, tt.token)
		if tt.ok {
			assert.InDelta(t, tt.want, got, 1e-9, tt.token)
		}
	}
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "4", formatAmount(4))
	assert.Equal(t, "0.67", formatAmount(2.0/3.0))
	assert.Equal(t, "1.5", formatAmount(1.5))
}
