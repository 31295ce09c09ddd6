package i18n

import "testing"

func TestNew_English(t *testing.T) {
	i := New("en")
	if i.Locale() != "en" {
		t.Fatalf("Locale()=%q, want en", i.Locale())
	}
	got := i.T("toast.login_success")
	if got != "Successfully logged in!" {
		t.Fatalf("T(toast.login_success)=%q", got)
	}
}

func TestNew_Chinese(t *testing.T) {
	i := New("zh-CN")
	if i.Locale() != "zh-CN" {
		t.Fatalf("Locale()=%q, want zh-CN", i.Locale())
	}
	got := i.T("toast.logout")
	if got != "已退出登录" {
		t.Fatalf("T(toast.logout)=%q, want 已退出登录", got)
	}
}

func TestNew_ChineseFromLang(t *testing.T) {
	i := New("zh_CN.UTF-8")
	if i.Locale() != "zh-CN" {
		t.Fatalf("Locale()=%q, want zh-CN", i.Locale())
	}
}

func TestT_WithArgs(t *testing.T) {
	i := New("en")
	if got := i.T("toast.copied", "All titles"); got != "All titles copied to clipboard!" {
		t.Fatalf("T with args=%q", got)
	}
	if got := i.T("toast.password_short", 6); got != "Password must be at least 6 characters" {
		t.Fatalf("T with int arg=%q", got)
	}
}

func TestT_MissingKey(t *testing.T) {
	i := New("en")
	got := i.T("nonexistent.key")
	if got != "nonexistent.key" {
		t.Fatalf("T missing key=%q, want key itself", got)
	}
}

func TestSetLocale(t *testing.T) {
	i := New("en")
	i.SetLocale("zh-CN")
	if i.Locale() != "zh-CN" {
		t.Fatalf("Locale()=%q after SetLocale", i.Locale())
	}
	if got := i.T("label.description"); got != "描述" {
		t.Fatalf("T(label.description)=%q", got)
	}
	i.SetLocale("en")
	if got := i.T("label.description"); got != "Description" {
		t.Fatalf("T(label.description)=%q after switching back", got)
	}
}

func TestCatalogsHaveSameKeys(t *testing.T) {
	for k := range EnMessages {
		if _, ok := ZhCNMessages[k]; !ok {
			t.Errorf("zh-CN catalog missing %q", k)
		}
	}
	for k := range ZhCNMessages {
		if _, ok := EnMessages[k]; !ok {
			t.Errorf("en catalog missing %q", k)
		}
	}
}

func TestNormalizeLocale(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"en_US.UTF-8", "en"},
		{"zh_CN.UTF-8", "zh-CN"},
		{"zh_TW", "zh-CN"},
		{"en", "en"},
		{"", "en"},
		{"fr_FR", "fr-FR"},
		{"EN-gb", "en"},
		{"zh-Hant-TW", "zh-CN"},
		{"de_DE@euro", "de-DE"},
	}
	for _, tt := range tests {
		got := normalizeLocale(tt.input)
		if got != tt.expected {
			t.Errorf("normalizeLocale(%q)=%q, want %q", tt.input, got, tt.expected)
		}
	}
	if Supported("fr") {
		t.Errorf("fr should not be supported")
	}
	if !Supported("zh_CN.UTF-8") {
		t.Errorf("zh_CN.UTF-8 should be supported")
	}
}
