package recipe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIngredientLine(t *testing.T) {
	t.Run("amount unit product", func(t *testing.T) {
		ing := ParseIngredientLine("150 g bacon")
		require.NotNil(t, ing.Amount)
		require.NotNil(t, ing.Unit)
		assert.Equal(t, 150.0, *ing.Amount)
		assert.Equal(t, "g", *ing.Unit)
		assert.Equal(t, "bacon", ing.Product)
		assert.Equal(t, "150 g bacon", ing.Raw)
	})

	t.Run("decimal comma amount", func(t *testing.T) {
		ing := ParseIngredientLine("1,5 dl cream")
		require.NotNil(t, ing.Amount)
		assert.Equal(t, 1.5, *ing.Amount)
		assert.Equal(t, "dl", *ing.Unit)
		assert.Equal(t, "cream", ing.Product)
	})

	t.Run("amount without unit", func(t *testing.T) {
		// "2 eggs": the token after the number is the whole remainder,
		// so it becomes the unit and product stays the raw line.
		ing := ParseIngredientLine("2 onions, chopped")
		require.NotNil(t, ing.Amount)
		assert.Equal(t, 2.0, *ing.Amount)
		require.NotNil(t, ing.Unit)
		assert.Equal(t, "onions,", *ing.Unit)
		assert.Equal(t, "chopped", ing.Product)
	})

	t.Run("no leading number", func(t *testing.T) {
		ing := ParseIngredientLine("salt")
		assert.Nil(t, ing.Amount)
		assert.Nil(t, ing.Unit)
		assert.Equal(t, "salt", ing.Product)
		assert.Equal(t, "salt", ing.Raw)
	})

	t.Run("whitespace collapsed into raw", func(t *testing.T) {
		ing := ParseIngredientLine("  400   g   pasta ")
		assert.Equal(t, "400 g pasta", ing.Raw)
		assert.Equal(t, "pasta", ing.Product)
	})

	t.Run("empty line", func(t *testing.T) {
		ing := ParseIngredientLine("")
		assert.Nil(t, ing.Amount)
		assert.Equal(t, "", ing.Product)
	})
}

func TestFinalize(t *testing.T) {
	t.Run("complete recipe", func(t *testing.T) {
		p, err := Finalize(&Parsed{
			Title:       " Pasta &amp; Cheese ",
			Ingredients: []string{"400 g pasta", "", "100 g cheese"},
			Directions:  []string{"Boil.", "Mix."},
		})
		require.NoError(t, err)
		assert.Equal(t, "Pasta & Cheese", p.Title)
		assert.Equal(t, DefaultServings, p.Servings)
		require.Len(t, p.Parts, 2)
		assert.Equal(t, "pasta", p.Parts[0].Product)
	})

	t.Run("missing directions", func(t *testing.T) {
		_, err := Finalize(&Parsed{
			Title:       "Pasta",
			Ingredients: []string{"400 g pasta"},
		})
		assert.ErrorIs(t, err, ErrUnparsable)
	})

	t.Run("blank title", func(t *testing.T) {
		_, err := Finalize(&Parsed{
			Title:       "   ",
			Ingredients: []string{"400 g pasta"},
			Directions:  []string{"Boil."},
		})
		assert.ErrorIs(t, err, ErrUnparsable)
	})

	t.Run("explicit servings kept", func(t *testing.T) {
		p, err := Finalize(&Parsed{
			Title:       "Pasta",
			Servings:    6,
			Ingredients: []string{"400 g pasta"},
			Directions:  []string{"Boil."},
		})
		require.NoError(t, err)
		assert.Equal(t, 6, p.Servings)
	})
}
