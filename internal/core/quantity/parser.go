package quantity

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// 條碼商品數量欄位常見的三種寫法，依序嘗試，先匹配者優先
var (
	plainPattern       = regexp.MustCompile(`^(\d+(?:\.\d+)?)\s*([a-zA-Z]+)$`)
	fractionPattern    = regexp.MustCompile(`^(\d+)/(\d+)\s*([a-zA-Z]+)$`)
	mixedNumberPattern = regexp.MustCompile(`^(\d+)\s+(\d+)/(\d+)\s*([a-zA-Z]+)$`)
)

// parseStrategy 單一數量解析策略。
// convert 轉換失敗（如分母為零）時回傳 false，繼續嘗試下一個策略
type parseStrategy struct {
	name    string
	pattern *regexp.Regexp
	convert func(groups []string) (decimal.Decimal, bool)
}

var parseStrategies = []parseStrategy{
	{
		name:    "plain",
		pattern: plainPattern,
		convert: func(groups []string) (decimal.Decimal, bool) {
			amount, err := decimal.NewFromString(groups[1])
			if err != nil {
				return decimal.Decimal{}, false
			}
			return amount, true
		},
	},
	{
		name:    "fraction",
		pattern: fractionPattern,
		convert: func(groups []string) (decimal.Decimal, bool) {
			return fractionToDecimal(groups[1], groups[2])
		},
	},
	{
		name:    "mixed",
		pattern: mixedNumberPattern,
		convert: func(groups []string) (decimal.Decimal, bool) {
			whole, err := decimal.NewFromString(groups[1])
			if err != nil {
				return decimal.Decimal{}, false
			}
			frac, ok := fractionToDecimal(groups[2], groups[3])
			if !ok {
				return decimal.Decimal{}, false
			}
			return whole.Add(frac), true
		},
	},
}

// ParseQuantity 解析 "500 g"、"1/2 cup"、"1 1/2 cups" 這類數量字串。
// 解析失敗一律回傳 (nil, "")，不回傳錯誤，由呼叫端決定要不要記 log
func ParseQuantity(text string) (*decimal.Decimal, string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ""
	}

	for _, strategy := range parseStrategies {
		groups := strategy.pattern.FindStringSubmatch(text)
		if groups == nil {
			continue
		}
		amount, ok := strategy.convert(groups)
		if !ok {
			// 數值轉換失敗，視同沒匹配到，換下一個策略
			continue
		}
		unit := strings.ToLower(groups[len(groups)-1])
		return &amount, unit
	}

	return nil, ""
}

// fractionToDecimal 將分子/分母轉為 decimal，分母為零時回傳 false
func fractionToDecimal(numerator, denominator string) (decimal.Decimal, bool) {
	num, err := decimal.NewFromString(numerator)
	if err != nil {
		return decimal.Decimal{}, false
	}
	den, err := decimal.NewFromString(denominator)
	if err != nil {
		return decimal.Decimal{}, false
	}
	if den.IsZero() {
		return decimal.Decimal{}, false
	}
	return num.Div(den), true
}
