package inventory

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyUpdatesRemaining(t *testing.T) {
	rec := &Record{ID: 1, Name: "flour", Quantity: floatPtr(5), Unit: "cups"}
	entries := []PlanEntry{
		{Record: rec, Amount: decimal.NewFromInt(2), Field: FieldQuantity},
	}

	result := Apply(entries)
	require.Len(t, result.Updated, 1)
	assert.Empty(t, result.Deleted)
	assert.Equal(t, 3.0, *rec.Quantity)
	assert.Equal(t, []string{"flour (new quantity: 3)"}, result.UpdatedSummaries())
}

func TestApplyDeletesAtZero(t *testing.T) {
	rec := &Record{ID: 1, Name: "egg", Quantity: floatPtr(2), Unit: ""}
	entries := []PlanEntry{
		{Record: rec, Amount: decimal.NewFromInt(2), Field: FieldQuantity},
	}

	result := Apply(entries)
	assert.Empty(t, result.Updated)
	require.Len(t, result.Deleted, 1)
	assert.Equal(t, []string{"egg"}, result.DeletedNames())
}

func TestApplyDeletesWholeRecordOnFieldDepletion(t *testing.T) {
	// 扣減欄位歸零時整筆刪除，即使另一個欄位還有剩量
	rec := &Record{ID: 1, Name: "butter", Quantity: floatPtr(2), Unit: "sticks", Weight: floatPtr(500), WeightUnit: "g"}
	entries := []PlanEntry{
		{Record: rec, Amount: decimal.NewFromInt(2), Field: FieldQuantity},
	}

	result := Apply(entries)
	require.Len(t, result.Deleted, 1)
	assert.Same(t, rec, result.Deleted[0])
}

func TestApplyEpsilonResidueCountsAsDepleted(t *testing.T) {
	// 0.3 - 0.1 - 0.1 - 0.1 的浮點殘量不應留下一筆幾乎是零的庫存
	rec := &Record{ID: 1, Name: "vanilla", Quantity: floatPtr(0.3 - 0.1 - 0.1), Unit: "tsp"}
	entries := []PlanEntry{
		{Record: rec, Amount: decimal.NewFromFloat(0.1), Field: FieldQuantity},
	}

	result := Apply(entries)
	assert.Empty(t, result.Updated)
	assert.Len(t, result.Deleted, 1)
}

func TestApplyWeightField(t *testing.T) {
	rec := &Record{ID: 1, Name: "cheese", Weight: floatPtr(300), WeightUnit: "g"}
	entries := []PlanEntry{
		{Record: rec, Amount: decimal.NewFromInt(100), Field: FieldWeight},
	}

	result := Apply(entries)
	require.Len(t, result.Updated, 1)
	assert.Equal(t, FieldWeight, result.Updated[0].Field)
	assert.Equal(t, 200.0, *rec.Weight)
	assert.Equal(t, []string{"cheese (new weight: 200)"}, result.UpdatedSummaries())
}

func TestApplyMultipleEntries(t *testing.T) {
	flour := &Record{ID: 1, Name: "flour", Quantity: floatPtr(5), Unit: "cups"}
	egg := &Record{ID: 2, Name: "egg", Quantity: floatPtr(2), Unit: ""}
	entries := []PlanEntry{
		{Record: flour, Amount: decimal.NewFromInt(2), Field: FieldQuantity},
		{Record: egg, Amount: decimal.NewFromInt(2), Field: FieldQuantity},
	}

	result := Apply(entries)
	assert.Len(t, result.Updated, 1)
	assert.Len(t, result.Deleted, 1)
}
