package inventory

import (
	"fmt"
	"strings"

	"fridge-assistant/internal/core/quantity"
	"fridge-assistant/internal/pkg/common"

	"go.uber.org/zap"
)

// Match 將食譜需求逐項比對庫存快照，產生扣減計畫。
//
// 名稱採嚴格的大小寫不敏感完全比對，不做模糊比對也不做同義詞。
// 有指定數量的需求依優先序嘗試：先看 quantity 欄位，再看 weight 欄位；
// 單位相容的條件是任一方沒有單位、或正規化後相等。
// 兩個欄位都不行時，只有「明確單位衝突」會回報到 UnitMismatches；
// 數量不足但沒有單位衝突的情況不會出現在任何清單中（沿用既有行為，
// 呼叫端因此拿不到這類項目的診斷訊息）
func Match(required []RequiredItem, records []*Record) *Plan {
	plan := &Plan{}

	// 名稱索引，同名時後者覆蓋前者
	index := make(map[string]*Record, len(records))
	for _, rec := range records {
		index[strings.ToLower(rec.Name)] = rec
	}

	for _, item := range required {
		rec, ok := index[item.Name]
		if !ok {
			plan.Missing = append(plan.Missing, item.OriginalLine)
			continue
		}

		// 只有名稱的需求行，庫存有這一筆就算滿足，不產生扣減
		if item.Quantity == nil {
			continue
		}

		// 優先序 1：quantity 欄位
		if rec.Quantity != nil && unitsCompatible(item.Unit, rec.Unit) && *rec.Quantity >= item.Quantity.InexactFloat64() {
			plan.Entries = append(plan.Entries, PlanEntry{Record: rec, Amount: *item.Quantity, Field: FieldQuantity})
			continue
		}

		// 優先序 2：weight 欄位
		if rec.Weight != nil && unitsCompatible(item.Unit, rec.WeightUnit) && *rec.Weight >= item.Quantity.InexactFloat64() {
			plan.Entries = append(plan.Entries, PlanEntry{Record: rec, Amount: *item.Quantity, Field: FieldWeight})
			continue
		}

		// 兩個欄位都扣不了：回報明確的單位衝突，其餘情況靜默略過
		if explicitUnitConflict(item, rec) {
			plan.UnitMismatches = append(plan.UnitMismatches, mismatchMessage(item, rec))
		} else {
			common.LogDebug("需求無法滿足且無單位衝突，略過",
				zap.String("name", item.Name),
				zap.String("line", item.OriginalLine),
			)
		}
	}

	return plan
}

// unitsCompatible 判斷需求單位與庫存欄位單位是否可以直接比較。
// 任一方沒有單位就放行；都有單位時正規化後必須相等（不做換算）
func unitsCompatible(requiredUnit, recordUnit string) bool {
	if requiredUnit == "" || recordUnit == "" {
		return true
	}
	return strings.EqualFold(quantity.NormalizeUnit(requiredUnit), quantity.NormalizeUnit(recordUnit))
}

// explicitUnitConflict 檢查是否存在明確的單位衝突：
// 對 quantity 與 weight 欄位分別檢查，欄位有值、雙方單位都非空、且不相等
func explicitUnitConflict(item RequiredItem, rec *Record) bool {
	if item.Unit == "" {
		return false
	}
	if rec.Quantity != nil && rec.Unit != "" && !unitsCompatible(item.Unit, rec.Unit) {
		return true
	}
	if rec.Weight != nil && rec.WeightUnit != "" && !unitsCompatible(item.Unit, rec.WeightUnit) {
		return true
	}
	return false
}

// mismatchMessage 組出單位衝突訊息，包含 quantity 與 weight 兩欄當下的量
func mismatchMessage(item RequiredItem, rec *Record) string {
	needed := strings.TrimSpace(fmt.Sprintf("%s %s", item.Quantity.String(), item.Unit))
	return fmt.Sprintf("%s (fridge qty:'%s', wt:'%s' / recipe needs:'%s' - unit mismatch)",
		item.OriginalLine,
		fieldAmount(rec.Quantity, rec.Unit),
		fieldAmount(rec.Weight, rec.WeightUnit),
		needed,
	)
}

// fieldAmount 產生 "5 cups" 或 "N/A" 這類的欄位描述
func fieldAmount(value *float64, unit string) string {
	if value == nil {
		return strings.TrimSpace("N/A " + unit)
	}
	return strings.TrimSpace(fmt.Sprintf("%g %s", *value, unit))
}
