package quantity

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseQuantity(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string // 期望的數值，空字串表示解析失敗
		unit     string
	}{
		{"整數加單位", "500 g", "500", "g"},
		{"小數加單位", "1.5 kg", "1.5", "kg"},
		{"數字緊貼單位", "330ml", "330", "ml"},
		{"簡單分數", "1/2 cup", "0.5", "cup"},
		{"帶分數", "1 1/2 cups", "1.5", "cups"},
		{"單位大寫折到小寫", "500 G", "500", "g"},
		{"純文字", "abc", "", ""},
		{"只有數字沒單位", "500", "", ""},
		{"分母為零", "2/0 cups", "", ""},
		{"空字串", "", "", ""},
		{"前後空白", "  250 ml  ", "250", "ml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amount, unit := ParseQuantity(tt.input)
			if tt.expected == "" {
				assert.Nil(t, amount)
				assert.Empty(t, unit)
				return
			}
			require.NotNil(t, amount)
			expected, err := decimal.NewFromString(tt.expected)
			require.NoError(t, err)
			assert.True(t, amount.Equal(expected), "got %s, want %s", amount, expected)
			assert.Equal(t, tt.unit, unit)
		})
	}
}

func TestParseQuantityFractionIsExact(t *testing.T) {
	// 1/3 這類無限小數在 decimal 下不應坍縮成 0.333...的截斷誤差後再比較失敗
	amount, unit := ParseQuantity("1/3 cup")
	require.NotNil(t, amount)
	assert.Equal(t, "cup", unit)

	three := decimal.NewFromInt(3)
	assert.True(t, amount.Mul(three).Sub(decimal.NewFromInt(1)).Abs().LessThan(decimal.NewFromFloat(1e-15)))
}

func TestNormalizeUnit(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"g", "g"},
		{"Grams", "g"},
		{"KILOGRAMS", "kg"},
		{"Milliliters", "ml"},
		{"liter", "l"},
		{"Tbsp", "tbsp"}, // 表中沒有的單位轉小寫後原樣返回
		{"cups", "cups"},
		{"", ""},
		{"  ml  ", "ml"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, NormalizeUnit(tt.input), "input %q", tt.input)
	}
}

func TestNormalizeUnitIdempotent(t *testing.T) {
	for _, unit := range []string{"Grams", "kg", "Tbsp", "cups", "Milliliters", ""} {
		once := NormalizeUnit(unit)
		assert.Equal(t, once, NormalizeUnit(once), "input %q", unit)
	}
}
