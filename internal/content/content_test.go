package content

import (
	"reflect"
	"strings"
	"testing"
)

func TestKeywords(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"k1,k2", []string{"k1", "k2"}},
		{"a; b\n c ,, ;", []string{"a", "b", "c"}},
		{"", []string{}},
		{"  \n ", []string{}},
	}
	for _, tt := range tests {
		got := Keywords(tt.in)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Keywords(%q)=%q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParagraphs(t *testing.T) {
	got := Paragraphs("First line\nstill first\n\n  \nSecond\r\n\r\nThird")
	want := []string{"First line\nstill first", "Second", "Third"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Paragraphs=%q, want %q", got, want)
	}
}

func TestGenerated_IsEmpty(t *testing.T) {
	if !(Generated{}).IsEmpty() {
		t.Fatalf("zero value should be empty")
	}
	if !(Generated{Titles: []string{}, BulletPoints: []string{}}).IsEmpty() {
		t.Fatalf("empty slices should be empty")
	}
	if (Generated{KeywordsReport: "k"}).IsEmpty() {
		t.Fatalf("keywords alone is content")
	}
}

func TestGenerated_CloneIsIndependent(t *testing.T) {
	g := Generated{Titles: []string{"A"}, BulletPoints: []string{"B"}}
	c := g.Clone()
	c.Titles[0] = "changed"
	if g.Titles[0] != "A" {
		t.Fatalf("Clone shares the titles slice")
	}
}

func TestFormatters(t *testing.T) {
	if got := FormatTitles([]string{"A", "B"}); got != "A\nB" {
		t.Fatalf("FormatTitles=%q", got)
	}
	if got := FormatBullet("x"); got != "• x" {
		t.Fatalf("FormatBullet=%q", got)
	}
	if got := FormatBullets([]string{"x", "y"}); got != "• x\n• y" {
		t.Fatalf("FormatBullets=%q", got)
	}
	if got := FormatBullets(nil); got != "" {
		t.Fatalf("FormatBullets(nil)=%q", got)
	}
}

func TestDescriptionHTML(t *testing.T) {
	html, err := DescriptionHTML("**Bold** claim\n\nSecond paragraph")
	if err != nil {
		t.Fatalf("DescriptionHTML: %v", err)
	}
	if !strings.Contains(html, "<strong>Bold</strong>") {
		t.Fatalf("missing strong tag: %s", html)
	}
	if strings.Count(html, "<p>") != 2 {
		t.Fatalf("expected two paragraphs: %s", html)
	}
}

func TestTokenizer_Heuristic(t *testing.T) {
	tok := &Tokenizer{fallback: true, encodingName: "cl100k_base"}
	if n := tok.CountText("Hello world"); n <= 0 {
		t.Fatalf("CountText=%d, want > 0", n)
	}
	if n := tok.CountText("你好世界"); n != 6 {
		t.Fatalf("CJK CountText=%d, want 6", n)
	}
	if n := tok.CountText(""); n != 0 {
		t.Fatalf("empty CountText=%d", n)
	}
}

func TestMeasure(t *testing.T) {
	tok := &Tokenizer{fallback: true}
	m := Measure(tok, Generated{
		Titles:         []string{"Great lamp"},
		Description:    "A lamp.",
		BulletPoints:   []string{"Bright"},
		KeywordsReport: "lamp, light",
	})
	if m.Precise {
		t.Fatalf("heuristic measurement should not be precise")
	}
	if m.Titles == 0 || m.Description == 0 || m.Bullets == 0 || m.Keywords == 0 {
		t.Fatalf("all fields should count: %+v", m)
	}
	if m.Total() != m.Titles+m.Description+m.Bullets+m.Keywords {
		t.Fatalf("Total mismatch: %+v", m)
	}
}
