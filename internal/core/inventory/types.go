package inventory

import (
	"github.com/shopspring/decimal"
)

// Field 扣減目標欄位
type Field string

const (
	FieldQuantity Field = "quantity"
	FieldWeight   Field = "weight"
)

// Record 一筆庫存快照，由持久層帶入。
// 核心只操作這份記憶體快照，交易邊界由呼叫端負責
type Record struct {
	ID         uint
	Name       string
	Quantity   *float64 // 數量與重量至少會有一個，建檔時驗證
	Unit       string
	Weight     *float64
	WeightUnit string
}

// RequiredItem 從食譜文字萃取出的需求項目，僅存在於單次請求內
type RequiredItem struct {
	Name         string           // 已小寫化，作為比對鍵
	Quantity     *decimal.Decimal // 行內沒有可解析數量時為 nil
	Unit         string           // 正規化後的單位，可能為空
	OriginalLine string           // 原始行，錯誤回報用
}

// PlanEntry 單筆扣減計畫
type PlanEntry struct {
	Record *Record
	Amount decimal.Decimal
	Field  Field
}

// Plan 比對結果。Missing 或 UnitMismatches 非空時整份計畫不可執行，
// 呼叫端必須整體放棄（不做部分扣減）
type Plan struct {
	Entries        []PlanEntry
	Missing        []string
	UnitMismatches []string
}

// Executable 回報整份計畫是否可以執行
func (p *Plan) Executable() bool {
	return len(p.Missing) == 0 && len(p.UnitMismatches) == 0
}
