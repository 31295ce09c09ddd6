package content

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
)

// BulletPrefix 复制要点时的前缀
// BulletPrefix is prepended to each bullet point on export
const BulletPrefix = "• "

// FormatTitles joins titles one per line.
func FormatTitles(titles []string) string {
	return strings.Join(titles, "\n")
}

// FormatBullet prefixes a single bullet point.
func FormatBullet(bullet string) string {
	return BulletPrefix + bullet
}

// FormatBullets prefixes every bullet and joins them one per line.
func FormatBullets(bullets []string) string {
	lines := make([]string, len(bullets))
	for i, b := range bullets {
		lines[i] = FormatBullet(b)
	}
	return strings.Join(lines, "\n")
}

// DescriptionHTML 将描述（Markdown）渲染为 HTML，便于粘贴到店铺编辑器
// DescriptionHTML renders a Markdown description to HTML for storefront editors
func DescriptionHTML(description string) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(description), &buf); err != nil {
		return "", fmt.Errorf("render description html: %w", err)
	}
	return buf.String(), nil
}
