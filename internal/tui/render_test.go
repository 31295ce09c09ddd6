package tui

import (
	"strings"
	"testing"

	"listingcrew/internal/content"
	"listingcrew/internal/i18n"

	"github.com/mattn/go-runewidth"
)

func TestRenderMarkdown_Basic(t *testing.T) {
	input := "# Hello\n\nThis is **bold** text."
	result := RenderMarkdown(input, 80)
	if result == "" {
		t.Fatal("RenderMarkdown returned empty")
	}
	// Glamour 应该渲染了标题 / Glamour should have rendered the heading
	if !strings.Contains(result, "Hello") {
		t.Fatalf("result should contain 'Hello': %q", result)
	}
}

func TestRenderMarkdown_Empty(t *testing.T) {
	if RenderMarkdown("", 80) != "" {
		t.Fatal("empty input should return empty")
	}
	if RenderMarkdown("  ", 80) != "" {
		t.Fatal("whitespace input should return empty")
	}
}

func TestRenderResult_Sections(t *testing.T) {
	g := content.Generated{
		Titles:         []string{"Waterproof Hiking Boots"},
		Description:    "Built for trails.\n\nLight and warm.",
		BulletPoints:   []string{"Breathable lining"},
		KeywordsReport: "boots, hiking\nwaterproof",
	}
	out := RenderResult(g, 80, DarkTheme(), i18n.New("en"))

	for _, want := range []string{
		"Suggested Product Titles", "Option 1", "Waterproof Hiking Boots",
		"Suggested Product Description", "Built for trails.", "Light and warm.",
		"Key Feature Bullet Points", "• Breathable lining",
		"Keywords & SEO Report", "[boots] [hiking] [waterproof]",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
}

func TestRenderResult_SkipsEmptySections(t *testing.T) {
	out := RenderResult(content.Generated{Titles: []string{"Only"}}, 80, DarkTheme(), i18n.New("en"))
	if strings.Contains(out, "Key Feature Bullet Points") || strings.Contains(out, "Keywords & SEO Report") {
		t.Fatalf("empty sections rendered:\n%s", out)
	}
}

func TestWrapChips(t *testing.T) {
	got := wrapChips([]string{"alpha", "beta", "gamma"}, 14)
	want := "[alpha] [beta]\n[gamma]"
	if got != want {
		t.Fatalf("wrapChips=%q want %q", got, want)
	}
	if wrapChips(nil, 10) != "" {
		t.Fatal("no words should render nothing")
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		max   int
	}{
		{"short", 10, 5},
		{"a much longer toast message", 10, 10},
		{"密码至少需要六个字符", 8, 8},
		{"line\nbreak", 20, 10},
	}
	for _, tt := range tests {
		got := truncate(tt.in, tt.width)
		if w := runewidth.StringWidth(got); w > tt.max {
			t.Fatalf("truncate(%q, %d)=%q width %d", tt.in, tt.width, got, w)
		}
		if strings.Contains(got, "\n") {
			t.Fatalf("truncate kept a newline: %q", got)
		}
	}
	if truncate("x", 0) != "" {
		t.Fatal("zero width should be empty")
	}
}
