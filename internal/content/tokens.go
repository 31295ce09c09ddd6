package content

import (
	"sync"

	tiktoken "github.com/pkoukk/tiktoken-go"
)

// Tokenizer token 计数器，tiktoken 不可用时回退到启发式
// Tokenizer counts tokens with tiktoken and falls back to a heuristic
type Tokenizer struct {
	encoder      *tiktoken.Tiktoken
	encodingName string
	fallback     bool
	mu           sync.Mutex
}

var (
	defaultTokenizer     *Tokenizer
	defaultTokenizerOnce sync.Once
)

// DefaultTokenizer 返回全局 cl100k_base tokenizer
// DefaultTokenizer returns the shared cl100k_base tokenizer
func DefaultTokenizer() *Tokenizer {
	defaultTokenizerOnce.Do(func() {
		defaultTokenizer = NewTokenizer("cl100k_base")
	})
	return defaultTokenizer
}

// NewTokenizer 创建 tokenizer；离线环境可能没有 BPE 缓存，此时使用启发式
// NewTokenizer creates a tokenizer; offline environments may lack the BPE cache
func NewTokenizer(encodingName string) *Tokenizer {
	t := &Tokenizer{encodingName: encodingName}
	enc, err := tiktoken.GetEncoding(encodingName)
	if err != nil {
		t.fallback = true
		return t
	}
	t.encoder = enc
	return t
}

// HeuristicTokenizer 不加载 BPE 的估算 tokenizer
// HeuristicTokenizer returns a tokenizer that never loads BPE data
func HeuristicTokenizer() *Tokenizer {
	return &Tokenizer{encodingName: "heuristic", fallback: true}
}

// CountText counts tokens in text.
func (t *Tokenizer) CountText(text string) int {
	if text == "" {
		return 0
	}
	if t.fallback {
		return heuristicTokenCount(text)
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.encoder.Encode(text, nil, nil))
}

// IsPrecise reports whether tiktoken is in use.
func (t *Tokenizer) IsPrecise() bool {
	return !t.fallback
}

// Measurement 各字段的 token 数
// Measurement holds per-field token counts of a generation result
type Measurement struct {
	Titles      int
	Description int
	Bullets     int
	Keywords    int
	Precise     bool
}

// Total sums all fields.
func (m Measurement) Total() int {
	return m.Titles + m.Description + m.Bullets + m.Keywords
}

// Measure 统计生成结果的 token 数，按导出格式计数
// Measure counts tokens of each field in its exported form
func Measure(t *Tokenizer, g Generated) Measurement {
	if t == nil {
		t = DefaultTokenizer()
	}
	return Measurement{
		Titles:      t.CountText(FormatTitles(g.Titles)),
		Description: t.CountText(g.Description),
		Bullets:     t.CountText(FormatBullets(g.BulletPoints)),
		Keywords:    t.CountText(g.KeywordsReport),
		Precise:     t.IsPrecise(),
	}
}

// heuristicTokenCount CJK 约 1.5 token/字，其他约 4 字符/token
// heuristicTokenCount estimates ~1.5 tokens per CJK rune and ~0.25 per other rune
func heuristicTokenCount(text string) int {
	if text == "" {
		return 0
	}
	cjk, other := 0, 0
	for _, r := range text {
		if isCJK(r) {
			cjk++
		} else {
			other++
		}
	}
	estimate := int(float64(cjk)*1.5 + float64(other)*0.25)
	if estimate < 1 {
		estimate = 1
	}
	return estimate
}

func isCJK(r rune) bool {
	return (r >= 0x4E00 && r <= 0x9FFF) ||
		(r >= 0x3400 && r <= 0x4DBF) ||
		(r >= 0x3000 && r <= 0x303F) ||
		(r >= 0xFF00 && r <= 0xFFEF) ||
		(r >= 0xAC00 && r <= 0xD7AF)
}
