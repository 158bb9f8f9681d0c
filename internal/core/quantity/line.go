package quantity

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"fridge-assistant/internal/pkg/common"
)

// 食譜食材行的結構：可選的數量 token（整數、小數、分數、帶分數）、
// 可選的 1~2 個單字的單位，剩下的是名稱
var (
	linePattern     = regexp.MustCompile(`^(\d+(?:\.\d+)?|\d+/\d+|\d+\s+\d+/\d+)?\s*([\w-]+(?:\s+[\w-]+)?)?\s+(.*)$`)
	unitNamePattern = regexp.MustCompile(`^([\w-]+(?:\s+[\w-]+)?)\s+(.*)$`)
)

// ParsedLine 食譜食材行的解析結果
type ParsedLine struct {
	Quantity *decimal.Decimal // 行內沒有數量或數量無法解析時為 nil
	Unit     string           // 正規化後的單位，可能為空
	Name     string           // 小寫化後的食材名稱
	Raw      string           // 原始行，保留給錯誤回報
}

// ParseLine 解析一行食譜食材文字。
//
//	"2 cups Flour" -> (2, "cups", "flour")
//	"1 Egg"        -> (1, "", "egg")
//	"Salt"         -> (nil, "", "salt")
//
// 空白行回傳 nil。數量無法解析時行仍算解析成功，只是 Quantity 為 nil
func ParseLine(line string) *ParsedLine {
	raw := line
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}

	var qty *decimal.Decimal
	unit := ""
	name := line // 預設整行都是名稱

	if groups := linePattern.FindStringSubmatch(line); groups != nil {
		qtyStr, unitStr, nameStr := groups[1], groups[2], groups[3]

		if qtyStr != "" {
			qty = parseQuantityToken(qtyStr, line)
		}
		unit = strings.TrimSpace(unitStr)
		name = strings.TrimSpace(nameStr)
	} else if groups := unitNamePattern.FindStringSubmatch(line); groups != nil {
		// 沒有數量 token 的 "單位 名稱" 形式
		unit = strings.TrimSpace(groups[1])
		name = strings.TrimSpace(groups[2])
	}

	return &ParsedLine{
		Quantity: qty,
		Unit:     NormalizeUnit(unit),
		Name:     strings.ToLower(name),
		Raw:      raw,
	}
}

// parseQuantityToken 解析行首的數量 token，規則同 ParseQuantity 的數值部分。
// 失敗時記一筆警告並回傳 nil，整行不因此作廢
func parseQuantityToken(token, line string) *decimal.Decimal {
	var amount decimal.Decimal
	var ok bool

	switch {
	case strings.Contains(token, " "):
		// 帶分數 "1 1/2"
		parts := strings.Fields(token)
		if len(parts) == 2 {
			whole, err := decimal.NewFromString(parts[0])
			if err == nil {
				var frac decimal.Decimal
				if frac, ok = splitFraction(parts[1]); ok {
					amount = whole.Add(frac)
				}
			}
		}
	case strings.Contains(token, "/"):
		// 簡單分數 "1/2"
		amount, ok = splitFraction(token)
	default:
		var err error
		amount, err = decimal.NewFromString(token)
		ok = err == nil
	}

	if !ok {
		common.LogWarn("無法解析食譜行中的數量",
			zap.String("token", token),
			zap.String("line", line),
		)
		return nil
	}
	return &amount
}

// splitFraction 解析 "a/b" 形式的 token
func splitFraction(token string) (decimal.Decimal, bool) {
	parts := strings.SplitN(token, "/", 2)
	if len(parts) != 2 {
		return decimal.Decimal{}, false
	}
	return fractionToDecimal(parts[0], parts[1])
}
