package i18n

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"golang.org/x/text/language"
)

// I18n 国际化支持
// I18n provides internationalization support
type I18n struct {
	locale   string
	messages map[string]string
	mu       sync.RWMutex
}

// New 创建 i18n 实例
// New creates an i18n instance
func New(locale string) *I18n {
	locale = strings.TrimSpace(locale)
	if locale == "" {
		locale = DetectLocale()
	}
	locale = normalizeLocale(locale)

	i := &I18n{
		locale:   locale,
		messages: make(map[string]string),
	}

	// 先加载英文作为 fallback / Load English as fallback first
	for k, v := range EnMessages {
		i.messages[k] = v
	}

	// 如果是中文，覆盖 / If Chinese, overlay
	if locale == "zh-CN" || locale == "zh" {
		for k, v := range ZhCNMessages {
			i.messages[k] = v
		}
	}

	return i
}

// T 翻译函数 / Translation function
func (i *I18n) T(key string, args ...any) string {
	i.mu.RLock()
	tmpl, ok := i.messages[key]
	i.mu.RUnlock()

	if !ok {
		return key
	}
	if len(args) == 0 {
		return tmpl
	}
	return fmt.Sprintf(tmpl, args...)
}

// Locale 返回当前 locale
// Locale returns current locale
func (i *I18n) Locale() string {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.locale
}

// SetLocale 切换 locale，重新装载消息目录
// SetLocale switches locale in place so holders of this instance see the new catalog
func (i *I18n) SetLocale(locale string) {
	next := New(locale)
	i.mu.Lock()
	i.locale = next.locale
	i.messages = next.messages
	i.mu.Unlock()
}

// Supported 报告 locale 是否有完整目录
// Supported reports whether locale has a full catalog
func Supported(locale string) bool {
	switch normalizeLocale(locale) {
	case "en", "zh-CN":
		return true
	default:
		return false
	}
}

// DetectLocale 自动检测 locale
// DetectLocale auto-detects locale from environment
func DetectLocale() string {
	for _, env := range []string{"LISTINGCREW_LANG", "LANG", "LC_ALL", "LC_MESSAGES"} {
		v := strings.TrimSpace(os.Getenv(env))
		if v == "" {
			continue
		}
		return normalizeLocale(v)
	}
	return "en"
}

// normalizeLocale 把 POSIX 风格 locale 规范为 BCP 47；中文统一为 zh-CN
// normalizeLocale turns POSIX-style locales into BCP 47 tags; any Chinese variant maps to zh-CN
func normalizeLocale(s string) string {
	s = strings.TrimSpace(s)
	// 去掉 .UTF-8 / @euro 等后缀 / Remove .UTF-8 and @modifier suffixes
	if idx := strings.IndexAny(s, ".@"); idx >= 0 {
		s = s[:idx]
	}
	s = strings.ReplaceAll(s, "_", "-")
	if s == "" {
		return "en"
	}

	tag, err := language.Parse(s)
	if err != nil {
		return s
	}
	base, _ := tag.Base()
	switch base.String() {
	case "zh":
		return "zh-CN"
	case "en":
		return "en"
	}
	return tag.String()
}
