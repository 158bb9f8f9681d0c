package recipe

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIngredientBlock(t *testing.T) {
	text := "2 cups Flour\n1 Egg\n\nSalt"

	required, parseErrors := parseIngredientBlock(text)
	assert.Empty(t, parseErrors)
	require.Len(t, required, 3)

	assert.Equal(t, "flour", required[0].Name)
	require.NotNil(t, required[0].Quantity)
	assert.True(t, required[0].Quantity.Equal(decimal.NewFromInt(2)))
	assert.Equal(t, "cups", required[0].Unit)
	assert.Equal(t, "2 cups Flour", required[0].OriginalLine)

	assert.Equal(t, "egg", required[1].Name)
	assert.Equal(t, "", required[1].Unit)

	assert.Equal(t, "salt", required[2].Name)
	assert.Nil(t, required[2].Quantity)
}

func TestParseIngredientBlockEmptyLinesSkipped(t *testing.T) {
	required, parseErrors := parseIngredientBlock("\n   \n2 Eggs\n\n")
	assert.Empty(t, parseErrors)
	require.Len(t, required, 1)
	assert.Equal(t, "eggs", required[0].Name)
}
