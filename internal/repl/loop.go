package repl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"listingcrew/internal/bootstrap"
	"listingcrew/internal/content"
	"listingcrew/internal/notify"

	"github.com/chzyer/readline"
)

const (
	ansiReset = "\x1b[0m"
	ansiDim   = "\x1b[90m"
	ansiRed   = "\x1b[31m"
	ansiGreen = "\x1b[32m"
	ansiCyan  = "\x1b[36m"
)

// Loop 持有 REPL 状态：应用入口、输入源与输出
// Loop holds REPL state: the app facade, the line input and the output
type Loop struct {
	*bootstrap.BuildResult
	// ProjectDir /lang 写入项目配置的目录；空表示不持久化
	// ProjectDir receives the project config written by /lang; empty disables it
	ProjectDir string

	in    LineInput
	ctx   context.Context
	color bool

	mu  sync.Mutex
	out io.Writer
}

// NewLoop builds a REPL loop from a BuildResult.
func NewLoop(res *bootstrap.BuildResult, in LineInput, out io.Writer) *Loop {
	return &Loop{BuildResult: res, in: in, out: out, ctx: context.Background(), color: useColor()}
}

// Run 读取输入直到 /exit 或 EOF
// Run reads input until /exit or EOF
func (l *Loop) Run(ctx context.Context) error {
	if l.BuildResult == nil || l.App == nil {
		return fmt.Errorf("app is nil")
	}
	l.ctx = ctx
	l.App.Subscribe(l.printToast)
	l.printBanner()
	l.printCommands()

	for {
		l.printStatusTo(l.out)
		line, err := l.in.ReadLine("> ")
		if err != nil {
			switch {
			case errors.Is(err, readline.ErrInterrupt):
				l.printf("\n")
				continue
			case errors.Is(err, io.EOF):
				return nil
			default:
				return fmt.Errorf("read input: %w", err)
			}
		}
		if l.handle(line) {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
	}
}

func (l *Loop) printBanner() {
	msgs := l.App.Messages()
	l.printf("%s\n", msgs.T("startup.welcome", l.App.Config().API.BaseURL))
	l.printf("%s\n", msgs.T("startup.repl_mode"))
	if l.App.Snapshot().DemoMode {
		l.printf("%s\n", msgs.T("startup.demo_mode"))
	}
}

// printStatusTo 提示符上方的状态行：账号 · 生成状态 · token
// printStatusTo writes the status line shown above each prompt
func (l *Loop) printStatusTo(w io.Writer) {
	snap := l.App.Snapshot()
	who := "-"
	if snap.Authenticated {
		who = snap.Session.Email
	}
	line := fmt.Sprintf("account: %s · status: %s", who, snap.Generation.Status)
	if m, ok := l.App.Measure(); ok {
		approx := ""
		if !m.Precise {
			approx = "~"
		}
		line += fmt.Sprintf(" · tokens: %s%d", approx, m.Total())
	}
	if snap.EditMode == content.ModeEditing {
		line += " · editing"
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.color {
		_, _ = fmt.Fprintf(w, "%s%s%s\n", ansiDim, line, ansiReset)
	} else {
		_, _ = fmt.Fprintln(w, line)
	}
}

// printToast 只打印新出现的提示，过期不输出
// printToast echoes toasts as they appear; expiry is silent
func (l *Loop) printToast(t notify.Toast, visible bool) {
	if !visible {
		return
	}
	text := fmt.Sprintf("[%s] %s", t.Severity, t.Message)
	if !l.color {
		l.printf("%s\n", text)
		return
	}
	color := ansiCyan
	switch t.Severity {
	case notify.SeveritySuccess:
		color = ansiGreen
	case notify.SeverityError:
		color = ansiRed
	}
	l.printf("%s%s%s\n", color, text, ansiReset)
}

func (l *Loop) printf(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, _ = fmt.Fprintf(l.out, format, args...)
}

func useColor() bool {
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		return false
	}
	if strings.TrimSpace(os.Getenv("LISTINGCREW_NO_COLOR")) != "" {
		return false
	}
	return strings.ToLower(strings.TrimSpace(os.Getenv("TERM"))) != "dumb"
}
