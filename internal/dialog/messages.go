package dialog

import (
	"fmt"
	"strings"

	"github.com/campusnav/hku-mapbot-go/internal/catalog"
	"github.com/campusnav/hku-mapbot-go/internal/resolver"
)

func formatFound(place catalog.Place) string {
	return fmt.Sprintf("✓ 已为您找到：%s（%s）", place.Name, place.Category)
}

func formatNavFailed(name string) string {
	return fmt.Sprintf("⚠ 抱歉，未能在地图上定位到 %s", name)
}

func formatRejected() string {
	return "好的，请重新描述您要找的地点。"
}

func formatUnresolved(query string) string {
	return fmt.Sprintf("抱歉，未能找到与「%s」相关的地点。\n请尝试使用建筑物/部门的官方名称或常用简称。", query)
}

// formatKeywordMenu lists keyword-search candidates with the keyword that
// surfaced each one.
func formatKeywordMenu(query string, candidates []resolver.Candidate) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🔍 根据您的需求「%s」，找到以下相关地点：\n", query)
	for i, c := range candidates {
		keyword := c.MatchedKeyword
		if keyword == "" {
			keyword = "N/A"
		}
		fmt.Fprintf(&b, "  %d. %s (%s) - 匹配关键词: %s\n", i+1, c.Place.Name, c.Place.Category, keyword)
	}
	fmt.Fprintf(&b, "\n请回复数字（1-%d）选择，或回复「否」重新输入。", len(candidates))
	return b.String()
}

// formatSimilarityMenu lists near-miss candidates with their scores and
// asks about the best one.
func formatSimilarityMenu(candidates []resolver.Candidate) string {
	var b strings.Builder
	b.WriteString("未找到完全匹配的结果，以下是最接近的选项：\n")
	for i, c := range candidates {
		fmt.Fprintf(&b, "  %d. %s (%s) - 相似度 %.0f%%\n", i+1, c.Place.Name, c.Place.Category, c.Score*100)
	}
	fmt.Fprintf(&b, "\n请问您要找的是「%s」吗？\n", candidates[0].Place.Name)
	fmt.Fprintf(&b, "回复「1」或「是」选择第一个，「2」-「%d」选择其他选项，「否」重新输入。", len(candidates))
	return b.String()
}
