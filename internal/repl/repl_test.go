package repl

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"listingcrew/internal/api"
	"listingcrew/internal/api/apitest"
	"listingcrew/internal/app"
	"listingcrew/internal/bootstrap"
	"listingcrew/internal/config"
	"listingcrew/internal/content"
	"listingcrew/internal/i18n"
	"listingcrew/internal/storage"
)

func TestLooksLikeURL(t *testing.T) {
	if !looksLikeURL("HTTPS://example.com/p") || !looksLikeURL("http://x.y") {
		t.Fatal("expected http(s) urls to match")
	}
	if looksLikeURL("example.com") || looksLikeURL("/show") {
		t.Fatal("unexpected match")
	}
}

type memClipboard struct{ text string }

func (m *memClipboard) WriteAll(s string) error { m.text = s; return nil }

type replFixture struct {
	srv  *apitest.Server
	core *app.App
	clip *memClipboard
	dir  string
}

func newREPLFixture(t *testing.T) *replFixture {
	t.Helper()
	srv := apitest.New()
	t.Cleanup(srv.Close)

	dir := t.TempDir()
	store, err := storage.NewFileStore(filepath.Join(dir, "credentials.json"))
	if err != nil {
		t.Fatal(err)
	}
	cfg := config.Default()
	cfg.API.BaseURL = srv.URL

	f := &replFixture{srv: srv, clip: &memClipboard{}, dir: dir}
	f.core = app.New(app.Deps{
		Config:    cfg,
		Backend:   api.NewClient(cfg.API),
		Store:     store,
		Clipboard: f.clip,
		Messages:  i18n.New("en"),
		Tokenizer: content.HeuristicTokenizer(),
	})
	t.Cleanup(func() { _ = f.core.Close() })
	return f
}

func (f *replFixture) run(t *testing.T, script string) string {
	t.Helper()
	var out bytes.Buffer
	in := NewBasicLineInput(strings.NewReader(script), &out)
	loop := NewLoop(&bootstrap.BuildResult{App: f.core}, in, &out)
	loop.ProjectDir = f.dir
	loop.color = false
	if err := loop.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	return out.String()
}

func TestREPL_LoginGenerateCopy(t *testing.T) {
	f := newREPLFixture(t)
	f.srv.Script(apitest.PathLogin, apitest.OK(map[string]any{
		"user": map[string]any{"id": "5", "email": "a@b.c", "name": "Ann"}, "token": "srv-token",
	}))
	f.srv.Script(apitest.PathGenerate, apitest.OK(map[string]any{
		"titles":         []string{"A", "B"},
		"description":    "D",
		"bulletPoints":   []string{"B1"},
		"keywordsReport": "k1,k2",
	}))

	out := f.run(t, strings.Join([]string{
		"/login a@b.c",
		"secret1",
		"/whoami",
		"https://example.com/p/1",
		"/keywords",
		"/copy title 2",
		"/tokens",
		"/exit",
	}, "\n") + "\n")

	for _, want := range []string{
		"[success] Successfully logged in!",
		"Signed in as Ann <a@b.c>",
		"Analyzing: https://example.com/p/1",
		"[success] Content generated successfully!",
		"1. A",
		"  - k1",
		"  - k2",
		"[success] Title 2 copied to clipboard!",
		"total=~",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
	if f.clip.text != "B" {
		t.Fatalf("clipboard=%q", f.clip.text)
	}
	if calls := f.srv.Calls(apitest.PathGenerate); len(calls) != 1 || calls[0].Authorization != "Bearer srv-token" {
		t.Fatalf("generate calls=%+v", calls)
	}
}

func TestREPL_EditSave(t *testing.T) {
	f := newREPLFixture(t)
	f.srv.Script(apitest.PathGenerate, apitest.OK(map[string]any{
		"titles": []string{"A"}, "description": "D", "bulletPoints": []string{}, "keywordsReport": "",
	}))

	out := f.run(t, strings.Join([]string{
		"/login demo@x.y",
		"whatever",
		"/generate https://example.com/p/2",
		"/edit",
		"First line",
		"",
		"Second paragraph",
		".",
		"/save",
		"/show",
	}, "\n") + "\n")

	// 未配置登录响应，演示模式回退 / Unscripted login falls back to the demo session
	if !strings.Contains(out, "[success] Successfully logged in!") {
		t.Fatalf("expected demo login:\n%s", out)
	}
	if !strings.Contains(out, "[success] Description updated!") {
		t.Fatalf("expected save toast:\n%s", out)
	}
	snap := f.core.Snapshot()
	if snap.Display.Description != "First line\n\nSecond paragraph" {
		t.Fatalf("description=%q", snap.Display.Description)
	}
	if !strings.Contains(out, "Second paragraph") {
		t.Fatalf("show should print the edited description:\n%s", out)
	}
}

func TestREPL_RequiresSession(t *testing.T) {
	f := newREPLFixture(t)
	out := f.run(t, "/generate https://example.com/p/3\n/show\n/bogus\n")

	for _, want := range []string{"Not signed in", "No generated content yet", "Unknown command: /bogus"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
	if f.srv.Total() != 0 {
		t.Fatalf("backend calls=%d", f.srv.Total())
	}
}

func TestREPL_RegisterMismatch(t *testing.T) {
	f := newREPLFixture(t)
	out := f.run(t, "/register a@b.c\nsecret1\nsecret2\n")
	if !strings.Contains(out, "[error] Passwords do not match") {
		t.Fatalf("output:\n%s", out)
	}
	if f.srv.Count(apitest.PathRegister) != 0 {
		t.Fatal("register must not reach the backend")
	}
}

func TestREPL_LangPersists(t *testing.T) {
	f := newREPLFixture(t)
	out := f.run(t, "/lang zh-CN\n/whoami\n")
	if !strings.Contains(out, "locale: zh-CN") {
		t.Fatalf("output:\n%s", out)
	}
	if !strings.Contains(out, "未登录") {
		t.Fatalf("expected localized output:\n%s", out)
	}
	data, err := os.ReadFile(filepath.Join(f.dir, ".listingcrew", "config.json"))
	if err != nil {
		t.Fatalf("read project config: %v", err)
	}
	if !strings.Contains(string(data), `"locale": "zh-CN"`) {
		t.Fatalf("config=%s", data)
	}
}

func TestRun_NilAppReturnsError(t *testing.T) {
	loop := NewLoop(&bootstrap.BuildResult{}, NewBasicLineInput(strings.NewReader(""), nil), &bytes.Buffer{})
	err := loop.Run(context.Background())
	if err == nil || !strings.Contains(err.Error(), "nil") {
		t.Fatalf("want nil app error, got %v", err)
	}
}

func TestPrintStatusTo_Format(t *testing.T) {
	f := newREPLFixture(t)
	loop := NewLoop(&bootstrap.BuildResult{App: f.core}, NewBasicLineInput(strings.NewReader(""), nil), &bytes.Buffer{})
	loop.color = false

	var buf bytes.Buffer
	loop.printStatusTo(&buf)
	if got := buf.String(); got != "account: - · status: idle\n" {
		t.Fatalf("status line=%q", got)
	}

	if _, err := f.core.Login(context.Background(), "a@b.c", "secret1"); err != nil {
		t.Fatal(err)
	}
	buf.Reset()
	loop.printStatusTo(&buf)
	if !strings.Contains(buf.String(), "account: a@b.c") {
		t.Fatalf("status line=%q", buf.String())
	}
}

func TestFormatResult(t *testing.T) {
	g := content.Generated{
		Titles:         []string{"A", "B"},
		Description:    "P1\n\n\nP2",
		BulletPoints:   []string{"x"},
		KeywordsReport: "k1,k2",
	}
	out := formatResult(g, i18n.New("en").T)
	for _, want := range []string{"== Suggested Product Titles ==", "1. A\n2. B", "P1\n\nP2", "• x", "k1,k2"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
}
