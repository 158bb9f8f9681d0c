package inventory

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(v float64) *float64 { return &v }

func decimalPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestMatchSufficientQuantity(t *testing.T) {
	records := []*Record{
		{ID: 1, Name: "Flour", Quantity: floatPtr(5), Unit: "cups"},
	}
	required := []RequiredItem{
		{Name: "flour", Quantity: decimalPtr("2"), Unit: "cups", OriginalLine: "2 cups Flour"},
	}

	plan := Match(required, records)
	require.True(t, plan.Executable())
	require.Len(t, plan.Entries, 1)
	assert.Equal(t, FieldQuantity, plan.Entries[0].Field)
	assert.Same(t, records[0], plan.Entries[0].Record)
}

func TestMatchFallsBackToWeight(t *testing.T) {
	// quantity 欄位單位不合，但 weight 欄位可以扣
	records := []*Record{
		{ID: 1, Name: "butter", Quantity: floatPtr(2), Unit: "sticks", Weight: floatPtr(500), WeightUnit: "g"},
	}
	required := []RequiredItem{
		{Name: "butter", Quantity: decimalPtr("200"), Unit: "g", OriginalLine: "200 g Butter"},
	}

	plan := Match(required, records)
	require.True(t, plan.Executable())
	require.Len(t, plan.Entries, 1)
	assert.Equal(t, FieldWeight, plan.Entries[0].Field)
}

func TestMatchMissingIngredient(t *testing.T) {
	records := []*Record{
		{ID: 1, Name: "flour", Quantity: floatPtr(5), Unit: "cups"},
	}
	required := []RequiredItem{
		{Name: "sugar", Quantity: decimalPtr("1"), Unit: "cup", OriginalLine: "1 cup Sugar"},
	}

	plan := Match(required, records)
	assert.False(t, plan.Executable())
	assert.Equal(t, []string{"1 cup Sugar"}, plan.Missing)
	assert.Empty(t, plan.UnitMismatches)
}

func TestMatchNameOnlyRequirement(t *testing.T) {
	// 只有名稱的需求行，庫存有就算滿足，不扣任何量
	records := []*Record{
		{ID: 1, Name: "salt", Quantity: floatPtr(1), Unit: "box"},
	}
	required := []RequiredItem{
		{Name: "salt", OriginalLine: "Salt"},
	}

	plan := Match(required, records)
	assert.True(t, plan.Executable())
	assert.Empty(t, plan.Entries)
}

func TestMatchCaseInsensitiveNames(t *testing.T) {
	records := []*Record{
		{ID: 1, Name: "Flour", Quantity: floatPtr(5), Unit: "cups"},
	}
	required := []RequiredItem{
		{Name: "flour", Quantity: decimalPtr("1"), Unit: "cups", OriginalLine: "1 cups Flour"},
	}

	plan := Match(required, records)
	assert.True(t, plan.Executable())
	assert.Len(t, plan.Entries, 1)
}

func TestMatchUnitMismatchReported(t *testing.T) {
	records := []*Record{
		{ID: 1, Name: "milk", Quantity: floatPtr(1000), Unit: "ml"},
	}
	required := []RequiredItem{
		{Name: "milk", Quantity: decimalPtr("2"), Unit: "cups", OriginalLine: "2 cups Milk"},
	}

	plan := Match(required, records)
	assert.False(t, plan.Executable())
	require.Len(t, plan.UnitMismatches, 1)
	assert.Contains(t, plan.UnitMismatches[0], "2 cups Milk")
	assert.Contains(t, plan.UnitMismatches[0], "unit mismatch")
	assert.Contains(t, plan.UnitMismatches[0], "1000 ml")
}

func TestMatchUnitSynonymsCompatible(t *testing.T) {
	// "Grams" 與 "g" 折疊後相等
	records := []*Record{
		{ID: 1, Name: "flour", Quantity: floatPtr(500), Unit: "Grams"},
	}
	required := []RequiredItem{
		{Name: "flour", Quantity: decimalPtr("200"), Unit: "g", OriginalLine: "200 g Flour"},
	}

	plan := Match(required, records)
	assert.True(t, plan.Executable())
	assert.Len(t, plan.Entries, 1)
}

func TestMatchMissingUnitIsWildcard(t *testing.T) {
	// 任一方沒有單位時直接比數值
	records := []*Record{
		{ID: 1, Name: "egg", Quantity: floatPtr(6), Unit: ""},
	}
	required := []RequiredItem{
		{Name: "egg", Quantity: decimalPtr("2"), Unit: "", OriginalLine: "2 Eggs"},
	}

	plan := Match(required, records)
	assert.True(t, plan.Executable())
	assert.Len(t, plan.Entries, 1)
}

func TestMatchInsufficientWithoutConflictIsSilent(t *testing.T) {
	// 數量不足但單位相容：不可執行，卻不出現在任何清單
	records := []*Record{
		{ID: 1, Name: "flour", Quantity: floatPtr(1), Unit: "cups"},
	}
	required := []RequiredItem{
		{Name: "flour", Quantity: decimalPtr("5"), Unit: "cups", OriginalLine: "5 cups Flour"},
	}

	plan := Match(required, records)
	assert.Empty(t, plan.Entries)
	assert.Empty(t, plan.Missing)
	assert.Empty(t, plan.UnitMismatches)
	assert.True(t, plan.Executable())
}

func TestMatchDuplicateNamesLastWins(t *testing.T) {
	records := []*Record{
		{ID: 1, Name: "flour", Quantity: floatPtr(1), Unit: "cups"},
		{ID: 2, Name: "Flour", Quantity: floatPtr(10), Unit: "cups"},
	}
	required := []RequiredItem{
		{Name: "flour", Quantity: decimalPtr("5"), Unit: "cups", OriginalLine: "5 cups Flour"},
	}

	plan := Match(required, records)
	require.Len(t, plan.Entries, 1)
	assert.Equal(t, uint(2), plan.Entries[0].Record.ID)
}
