package repl

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"listingcrew/internal/app"
	"listingcrew/internal/config"
	"listingcrew/internal/content"
)

type replCommand struct {
	name string
	help string // i18n key
}

var replCommands = []replCommand{
	{"/help", "cmd.help"},
	{"/login", "cmd.login"},
	{"/register", "cmd.register"},
	{"/logout", "cmd.logout"},
	{"/whoami", "cmd.whoami"},
	{"/generate", "cmd.generate"},
	{"/show", "cmd.show"},
	{"/keywords", "cmd.keywords"},
	{"/tokens", "cmd.tokens"},
	{"/edit", "cmd.edit"},
	{"/save", "cmd.save"},
	{"/cancel", "cmd.cancel"},
	{"/copy", "cmd.copy"},
	{"/lang", "cmd.lang"},
	{"/exit", "cmd.exit"},
}

func (l *Loop) printCommands() {
	msgs := l.App.Messages()
	l.printf("commands:\n")
	for _, c := range replCommands {
		l.printf("  %-10s %s\n", c.name, msgs.T(c.help))
	}
}

// handle 执行一行输入；返回 true 表示退出
// handle runs one input line and reports whether the REPL should exit
func (l *Loop) handle(input string) bool {
	input = strings.TrimSpace(input)
	if input == "" {
		return false
	}
	if !strings.HasPrefix(input, "/") {
		if looksLikeURL(input) {
			l.generate(input)
			return false
		}
		l.printf("%s\n", l.App.Messages().T("repl.unknown", input))
		return false
	}

	parts := strings.Fields(input)
	cmd, args := parts[0], parts[1:]
	msgs := l.App.Messages()

	switch cmd {
	case "/exit", "/quit":
		return true
	case "/help":
		l.printCommands()
	case "/login":
		if len(args) < 1 {
			l.printf("usage: /login <email>\n")
			return false
		}
		password, err := l.in.ReadPassword(msgs.T("repl.password"))
		if err != nil {
			l.printf("read password failed: %v\n", err)
			return false
		}
		_, _ = l.App.Login(l.ctx, args[0], password)
	case "/register":
		if len(args) < 1 {
			l.printf("usage: /register <email>\n")
			return false
		}
		password, err := l.in.ReadPassword(msgs.T("repl.password"))
		if err != nil {
			l.printf("read password failed: %v\n", err)
			return false
		}
		confirm, err := l.in.ReadPassword(msgs.T("repl.confirm"))
		if err != nil {
			l.printf("read password failed: %v\n", err)
			return false
		}
		_, _ = l.App.Register(l.ctx, args[0], password, confirm)
	case "/logout":
		l.App.Logout(l.ctx)
	case "/whoami":
		l.whoami()
	case "/generate":
		if len(args) < 1 {
			l.printf("usage: /generate <url>\n")
			return false
		}
		l.generate(args[0])
	case "/show":
		l.show()
	case "/keywords":
		l.keywords()
	case "/tokens":
		l.tokens()
	case "/edit":
		l.edit()
	case "/save":
		if err := l.App.CommitEdit(); err != nil {
			l.printf("save failed: %v\n", err)
		}
	case "/cancel":
		if err := l.App.CancelEdit(); err != nil {
			l.printf("cancel failed: %v\n", err)
		}
	case "/copy":
		l.copy(args)
	case "/lang":
		l.lang(args)
	default:
		l.printf("%s\n", msgs.T("repl.unknown", cmd))
	}
	return false
}

func (l *Loop) whoami() {
	snap := l.App.Snapshot()
	msgs := l.App.Messages()
	if !snap.Authenticated {
		l.printf("%s\n", msgs.T("repl.not_signed_in"))
		return
	}
	who := snap.Session.Email
	if snap.Session.DisplayName != "" {
		who = fmt.Sprintf("%s <%s>", snap.Session.DisplayName, snap.Session.Email)
	}
	l.printf("%s\n", msgs.T("repl.signed_in_as", who))
}

func (l *Loop) generate(url string) {
	msgs := l.App.Messages()
	l.printf("%s\n", msgs.T("dash.analyzing", url))
	_, err := l.App.Generate(l.ctx, url)
	switch {
	case errors.Is(err, app.ErrNotAuthenticated):
		l.printf("%s\n", msgs.T("repl.not_signed_in"))
	case err == nil:
		l.show()
	}
}

func (l *Loop) show() {
	snap := l.App.Snapshot()
	msgs := l.App.Messages()
	if !snap.HasDisplay {
		l.printf("%s\n", msgs.T("repl.no_result"))
		return
	}
	l.printf("%s", formatResult(snap.Display, msgs.T))
}

// formatResult 纯文本形式的结果
// formatResult renders a result as plain text
func formatResult(g content.Generated, t func(string, ...any) string) string {
	var b strings.Builder
	if len(g.Titles) > 0 {
		b.WriteString("== " + t("dash.titles") + " ==\n")
		for i, title := range g.Titles {
			fmt.Fprintf(&b, "%d. %s\n", i+1, title)
		}
		b.WriteString("\n")
	}
	if g.Description != "" {
		b.WriteString("== " + t("dash.description") + " ==\n")
		b.WriteString(strings.Join(g.Paragraphs(), "\n\n") + "\n\n")
	}
	if len(g.BulletPoints) > 0 {
		b.WriteString("== " + t("dash.bullets") + " ==\n")
		b.WriteString(content.FormatBullets(g.BulletPoints) + "\n\n")
	}
	if g.KeywordsReport != "" {
		b.WriteString("== " + t("dash.keywords") + " ==\n")
		b.WriteString(g.KeywordsReport + "\n")
	}
	return b.String()
}

func (l *Loop) keywords() {
	g, ok := l.result()
	if !ok {
		return
	}
	for _, kw := range g.Keywords() {
		l.printf("  - %s\n", kw)
	}
}

func (l *Loop) tokens() {
	m, ok := l.App.Measure()
	if !ok {
		l.printf("%s\n", l.App.Messages().T("repl.no_result"))
		return
	}
	approx := ""
	if !m.Precise {
		approx = "~"
	}
	l.printf("titles=%d description=%d bullets=%d keywords=%d total=%s%d\n",
		m.Titles, m.Description, m.Bullets, m.Keywords, approx, m.Total())
}

// edit 读多行描述直到单独的 "."，只写入缓冲，需 /save 提交
// edit reads description lines until a lone "." into the buffer; /save commits it
func (l *Loop) edit() {
	msgs := l.App.Messages()
	if err := l.App.BeginEdit(); err != nil {
		l.printf("edit failed: %v\n", err)
		return
	}
	l.printf("%s\n", msgs.T("repl.edit_hint"))
	var lines []string
	for {
		line, err := l.in.ReadLine("| ")
		if err != nil {
			_ = l.App.CancelEdit()
			return
		}
		if strings.TrimSpace(line) == "." {
			break
		}
		lines = append(lines, line)
	}
	if err := l.App.SetEditBuffer(strings.Join(lines, "\n")); err != nil {
		l.printf("edit failed: %v\n", err)
		return
	}
	l.printf("%s\n", msgs.T("repl.edit_pending"))
}

func (l *Loop) copy(args []string) {
	if len(args) < 1 {
		l.printf("%s\n", l.App.Messages().T("cmd.copy"))
		return
	}
	field, ok := content.ParseField(args[0])
	if !ok {
		l.printf("unknown field: %s\n", args[0])
		return
	}
	n := 0
	if field == content.FieldTitle || field == content.FieldBullet {
		if len(args) < 2 {
			l.printf("usage: /copy %s N\n", args[0])
			return
		}
		v, err := strconv.Atoi(args[1])
		if err != nil {
			l.printf("invalid number: %s\n", args[1])
			return
		}
		n = v
	}
	if _, err := l.App.Copy(field, n); err != nil {
		l.printf("copy failed: %v\n", err)
	}
}

func (l *Loop) lang(args []string) {
	if len(args) < 1 {
		l.printf("%s\n", l.App.Messages().T("cmd.lang"))
		return
	}
	if err := l.App.SetLocale(args[0]); err != nil {
		l.printf("%v\n", err)
		return
	}
	if l.ProjectDir != "" {
		if err := config.WriteLocale(l.ProjectDir, l.App.Messages().Locale()); err != nil {
			l.printf("save locale failed: %v\n", err)
		}
	}
	l.printf("locale: %s\n", l.App.Messages().Locale())
}

func (l *Loop) result() (content.Generated, bool) {
	snap := l.App.Snapshot()
	if !snap.HasDisplay {
		l.printf("%s\n", l.App.Messages().T("repl.no_result"))
		return content.Generated{}, false
	}
	return snap.Display, true
}

func looksLikeURL(s string) bool {
	lower := strings.ToLower(s)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}
