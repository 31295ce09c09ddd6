// Package content models generated listing copy and the edit/copy surface built on it.
package content

import (
	"regexp"
	"strings"
)

// Generated AI 生成的商品文案；产生后不可变，编辑只作用于副本
// Generated is one AI generation result; it is treated as immutable once produced
type Generated struct {
	Titles         []string `json:"titles"`
	Description    string   `json:"description"`
	BulletPoints   []string `json:"bulletPoints"`
	KeywordsReport string   `json:"keywordsReport"`
}

// IsEmpty 四个字段都为空时返回 true
// IsEmpty reports whether all four fields are empty
func (g Generated) IsEmpty() bool {
	return len(g.Titles) == 0 &&
		g.Description == "" &&
		len(g.BulletPoints) == 0 &&
		g.KeywordsReport == ""
}

// Clone 深拷贝
// Clone returns a deep copy
func (g Generated) Clone() Generated {
	out := g
	out.Titles = append([]string(nil), g.Titles...)
	out.BulletPoints = append([]string(nil), g.BulletPoints...)
	return out
}

// Keywords 将关键词报告拆成列表
// Keywords splits the keyword report on newlines, commas and semicolons
func (g Generated) Keywords() []string {
	return Keywords(g.KeywordsReport)
}

// Paragraphs 按空行拆分描述
// Paragraphs splits the description into blank-line separated paragraphs
func (g Generated) Paragraphs() []string {
	return Paragraphs(g.Description)
}

// Keywords splits a keyword report into trimmed, non-empty entries.
func Keywords(report string) []string {
	fields := strings.FieldsFunc(report, func(r rune) bool {
		return r == '\n' || r == ',' || r == ';'
	})
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

var paragraphBreak = regexp.MustCompile(`\n\s*\n`)

// Paragraphs splits text on blank lines; whitespace-only paragraphs are dropped.
func Paragraphs(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	parts := paragraphBreak.Split(text, -1)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
