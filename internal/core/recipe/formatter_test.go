package recipe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMarkdownRecipesTwoRecipes(t *testing.T) {
	raw := `Here are some ideas for you:

## Simple Omelette
### Ingredients
* 2 Eggs
* 1/2 cup Milk
### Instructions
1. Beat the eggs with the milk.
2. Cook in a pan until set.

## Fried Rice
### Ingredients
- 2 cups Rice
- 1 Egg
### Instructions
1. Fry the rice.
2. Add the egg and stir.`

	recipes := ParseMarkdownRecipes(raw)
	require.Len(t, recipes, 2)

	assert.Equal(t, "Simple Omelette", recipes[0].Title)
	assert.Equal(t, []string{"2 Eggs", "1/2 cup Milk"}, recipes[0].Ingredients)
	assert.Equal(t, []string{
		"Beat the eggs with the milk.",
		"Cook in a pan until set.",
	}, recipes[0].Instructions)

	assert.Equal(t, "Fried Rice", recipes[1].Title)
	assert.Equal(t, []string{"2 cups Rice", "1 Egg"}, recipes[1].Ingredients)
}

func TestParseMarkdownRecipesDiscardsIncomplete(t *testing.T) {
	// 第一份缺 Instructions 段落，捨棄；第二份完整，正常收下
	raw := `## Broken Recipe
### Ingredients
* 1 Egg

## Good Recipe
### Ingredients
* 2 cups Rice
### Instructions
1. Cook the rice.`

	recipes := ParseMarkdownRecipes(raw)
	require.Len(t, recipes, 1)
	assert.Equal(t, "Good Recipe", recipes[0].Title)
}

func TestParseMarkdownRecipesSectionHeadersCaseInsensitive(t *testing.T) {
	raw := `## Toast
### INGREDIENTS
* 2 slices Bread
### instructions
1. Toast the bread.`

	recipes := ParseMarkdownRecipes(raw)
	require.Len(t, recipes, 1)
	assert.Equal(t, []string{"2 slices Bread"}, recipes[0].Ingredients)
	assert.Equal(t, []string{"Toast the bread."}, recipes[0].Instructions)
}

func TestParseMarkdownRecipesPreambleIgnored(t *testing.T) {
	raw := `Sure! Based on your fridge, here are my suggestions.
This text before the first title is ignored.

## Salad
### Ingredients
* 1 Tomato
### Instructions
1. Chop and serve.`

	recipes := ParseMarkdownRecipes(raw)
	require.Len(t, recipes, 1)
	assert.Equal(t, "Salad", recipes[0].Title)
}

func TestParseMarkdownRecipesEmptyInput(t *testing.T) {
	assert.Empty(t, ParseMarkdownRecipes(""))
	assert.Empty(t, ParseMarkdownRecipes("no recipes here at all"))
}

func TestParseInstructionLineStripsOrdinals(t *testing.T) {
	assert.Equal(t, "Mix well.", parseInstructionLine("1. Mix well."))
	assert.Equal(t, "Serve.", parseInstructionLine("2. Serve."))
	assert.Equal(t, "Stir.", parseInstructionLine("* Stir."))
	assert.Equal(t, "Bake.", parseInstructionLine("- Bake."))
}
