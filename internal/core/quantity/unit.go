package quantity

import "strings"

// unitSynonyms 單位同義詞表，只做字面折疊，
// 系統任何地方都不做單位之間的換算（g 和 kg 視為不同單位）
var unitSynonyms = map[string]string{
	"g":           "g",
	"gram":        "g",
	"grams":       "g",
	"kg":          "kg",
	"kilogram":    "kg",
	"kilograms":   "kg",
	"ml":          "ml",
	"milliliter":  "ml",
	"milliliters": "ml",
	"l":           "l",
	"liter":       "l",
	"liters":      "l",
}

// NormalizeUnit 將單位折疊為正準形式，表中沒有的單位轉小寫後原樣返回。
// 冪等：NormalizeUnit(NormalizeUnit(x)) == NormalizeUnit(x)
func NormalizeUnit(unit string) string {
	if unit == "" {
		return ""
	}
	lowered := strings.ToLower(strings.TrimSpace(unit))
	if canonical, ok := unitSynonyms[lowered]; ok {
		return canonical
	}
	return lowered
}
