package tui

import (
	"fmt"
	"strings"

	"listingcrew/internal/content"
	"listingcrew/internal/i18n"

	"github.com/charmbracelet/glamour"
	"github.com/mattn/go-runewidth"
)

// RenderMarkdown 使用 Glamour 渲染 markdown 文本
// RenderMarkdown renders markdown text using Glamour
func RenderMarkdown(text string, width int) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}
	if width <= 0 {
		width = 80
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return text
	}

	rendered, err := r.Render(text)
	if err != nil {
		return text
	}

	return strings.TrimRight(rendered, "\n")
}

// RenderResult 渲染生成结果的四个部分
// RenderResult renders the four sections of a generated result
func RenderResult(g content.Generated, width int, theme Theme, msgs *i18n.I18n) string {
	var b strings.Builder

	if len(g.Titles) > 0 {
		b.WriteString(theme.HeadingStyle.Render(msgs.T("dash.titles")) + "\n")
		for i, title := range g.Titles {
			b.WriteString(theme.MutedStyle.Render(msgs.T("dash.option", i+1)) + "\n")
			b.WriteString("  " + title + "\n")
		}
		b.WriteString("\n")
	}

	if g.Description != "" {
		b.WriteString(theme.HeadingStyle.Render(msgs.T("dash.description")) + "\n")
		// 段落之间保留空行，让 markdown 分段 / Blank lines keep markdown paragraphs apart
		md := strings.Join(g.Paragraphs(), "\n\n")
		b.WriteString(RenderMarkdown(md, width) + "\n\n")
	}

	if len(g.BulletPoints) > 0 {
		b.WriteString(theme.HeadingStyle.Render(msgs.T("dash.bullets")) + "\n")
		for _, bullet := range g.BulletPoints {
			b.WriteString(content.FormatBullet(bullet) + "\n")
		}
		b.WriteString("\n")
	}

	if kws := g.Keywords(); len(kws) > 0 {
		b.WriteString(theme.HeadingStyle.Render(msgs.T("dash.keywords")) + "\n")
		b.WriteString(wrapChips(kws, width) + "\n")
	}

	return strings.TrimRight(b.String(), "\n")
}

// wrapChips 把关键词按宽度排成多行
// wrapChips lays keywords out as chips wrapped at width
func wrapChips(words []string, width int) string {
	if width <= 0 {
		width = 80
	}
	var lines []string
	line := ""
	for _, w := range words {
		chip := fmt.Sprintf("[%s]", w)
		if line != "" && runewidth.StringWidth(line)+1+runewidth.StringWidth(chip) > width {
			lines = append(lines, line)
			line = ""
		}
		if line != "" {
			line += " "
		}
		line += chip
	}
	if line != "" {
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// truncate 按显示宽度截断，CJK 算两列
// truncate cuts s to width display columns, counting wide runes as two
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	s = strings.ReplaceAll(s, "\n", " ")
	return runewidth.Truncate(s, width, "…")
}
