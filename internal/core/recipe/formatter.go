package recipe

import (
	"strings"

	"go.uber.org/zap"

	"fridge-assistant/internal/pkg/common"
)

// ParsedRecipe AI 回應中解析出的單份食譜
type ParsedRecipe struct {
	Title        string   `json:"title"`
	Ingredients  []string `json:"ingredients"`
	Instructions []string `json:"instructions"`
}

// section 行解析器目前所在的段落
type section int

const (
	sectionNone section = iota
	sectionIngredients
	sectionInstructions
)

// markdownParser 狀態機：逐行吃 AI 回應的 markdown，
// `## ` 開新食譜、`### ingredients` / `### instructions` 切換段落。
// 出現在段落標頭前的內容行直接忽略，不報錯
type markdownParser struct {
	recipes []ParsedRecipe
	current *ParsedRecipe
	section section
}

// ParseMarkdownRecipes 解析 AI 產生的食譜 markdown。
//
// 預期格式：
//
//	## 食譜標題
//	### Ingredients
//	* 食材
//	### Instructions
//	1. 步驟
//
// 不完整的食譜（缺標題、食材或步驟）個別捨棄並記警告，
// 不會中斷同一份回應中其餘食譜的解析，也永遠不回傳錯誤
func ParseMarkdownRecipes(raw string) []ParsedRecipe {
	p := &markdownParser{}
	for _, line := range strings.Split(strings.TrimSpace(raw), "\n") {
		p.feed(strings.TrimSpace(line))
	}
	// 輸入結束時收尾最後一份食譜
	p.finalize()
	return p.recipes
}

// feed 餵入一行（已去除前後空白）
func (p *markdownParser) feed(line string) {
	if line == "" {
		return
	}

	// 新食譜標題
	if strings.HasPrefix(line, "## ") {
		p.finalize()
		p.current = &ParsedRecipe{Title: strings.TrimSpace(line[3:])}
		p.section = sectionNone
		return
	}

	// 還沒遇到任何標題前的內容一律略過
	if p.current == nil {
		return
	}

	// 段落標頭
	lowered := strings.ToLower(line)
	if strings.HasPrefix(lowered, "### ingredients") {
		p.section = sectionIngredients
		return
	}
	if strings.HasPrefix(lowered, "### instructions") {
		p.section = sectionInstructions
		return
	}

	// 段落內容
	switch p.section {
	case sectionIngredients:
		if item := parseIngredientLine(line); item != "" {
			p.current.Ingredients = append(p.current.Ingredients, item)
		}
	case sectionInstructions:
		if step := parseInstructionLine(line); step != "" {
			p.current.Instructions = append(p.current.Instructions, step)
		}
	}
}

// finalize 驗證並收下正在累積的食譜，不完整的捨棄並記警告
func (p *markdownParser) finalize() {
	if p.current == nil {
		return
	}
	r := *p.current
	p.current = nil

	if r.Title == "" || len(r.Ingredients) == 0 || len(r.Instructions) == 0 {
		common.LogWarn("捨棄不完整的食譜",
			zap.String("title", r.Title),
			zap.Int("ingredients", len(r.Ingredients)),
			zap.Int("instructions", len(r.Instructions)),
		)
		return
	}
	p.recipes = append(p.recipes, r)
}

// parseIngredientLine 去掉前導的 `* ` / `- ` 項目符號
func parseIngredientLine(line string) string {
	if strings.HasPrefix(line, "* ") || strings.HasPrefix(line, "- ") {
		return strings.TrimSpace(line[2:])
	}
	if len(line) > 1 {
		return line
	}
	return ""
}

// parseInstructionLine 去掉前導的項目符號或 "N." 序號
func parseInstructionLine(line string) string {
	if strings.HasPrefix(line, "* ") || strings.HasPrefix(line, "- ") {
		return strings.TrimSpace(line[2:])
	}
	if len(line) > 1 && line[0] >= '0' && line[0] <= '9' && line[1] == '.' {
		_, rest, _ := strings.Cut(line, ".")
		return strings.TrimSpace(rest)
	}
	if len(line) > 1 {
		return line
	}
	return ""
}
