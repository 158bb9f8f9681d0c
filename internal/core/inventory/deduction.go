package inventory

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// depletionEpsilon 浮點扣減後的歸零判定界線。
// 扣到只剩表示誤差的殘量（如 1e-10）也視為耗盡
const depletionEpsilon = 1e-9

// Change 一筆就地更新，記住動到的是哪個欄位
type Change struct {
	Record *Record
	Field  Field
}

// Result 扣減摘要，交給持久層在同一筆交易內落盤
type Result struct {
	Updated []Change  // 欄位已就地更新的紀錄
	Deleted []*Record // 因耗盡而整筆移除的紀錄
}

// Apply 依計畫逐筆扣減庫存快照。
//
// 扣減欄位歸零（含浮點誤差）時整筆紀錄刪除——即使另一個欄位還有剩量，
// 這是既定行為。decimal 到 float64 的轉換只發生在這裡的扣減邊界，
// 不做任何進位（誤差交給 depletionEpsilon 吸收）
func Apply(entries []PlanEntry) *Result {
	result := &Result{}

	for _, entry := range entries {
		amount := toStorage(entry.Amount)

		var target *float64
		switch entry.Field {
		case FieldQuantity:
			target = entry.Record.Quantity
		case FieldWeight:
			target = entry.Record.Weight
		}
		if target == nil {
			continue
		}

		remaining := *target - amount
		if depleted(remaining) {
			result.Deleted = append(result.Deleted, entry.Record)
			continue
		}
		*target = remaining
		result.Updated = append(result.Updated, Change{Record: entry.Record, Field: entry.Field})
	}

	return result
}

// toStorage decimal 轉為持久層使用的 float64，全系統唯一的轉換點
func toStorage(d decimal.Decimal) float64 {
	return d.InexactFloat64()
}

// depleted 判斷剩餘量是否視為耗盡
func depleted(remaining float64) bool {
	return remaining <= depletionEpsilon
}

// UpdatedSummaries 產生更新摘要，如 "flour (new quantity: 3)"
func (r *Result) UpdatedSummaries() []string {
	summaries := make([]string, 0, len(r.Updated))
	for _, ch := range r.Updated {
		switch ch.Field {
		case FieldQuantity:
			summaries = append(summaries, fmt.Sprintf("%s (new quantity: %g)", ch.Record.Name, *ch.Record.Quantity))
		case FieldWeight:
			summaries = append(summaries, fmt.Sprintf("%s (new weight: %g)", ch.Record.Name, *ch.Record.Weight))
		}
	}
	return summaries
}

// DeletedNames 回傳因耗盡而移除的食材名稱
func (r *Result) DeletedNames() []string {
	names := make([]string, 0, len(r.Deleted))
	for _, rec := range r.Deleted {
		names = append(names, rec.Name)
	}
	return names
}
