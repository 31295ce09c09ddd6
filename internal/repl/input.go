package repl

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"golang.org/x/term"
)

// LineInput 行输入源：readline 或普通流
// LineInput reads prompted lines and secrets from readline or a plain stream
type LineInput interface {
	ReadLine(prompt string) (string, error)
	ReadPassword(prompt string) (string, error)
	Close() error
}

// BasicLineInput 无行编辑的输入，用于管道与测试
// BasicLineInput reads lines without editing, for pipes and tests
type BasicLineInput struct {
	reader *bufio.Reader
	out    io.Writer
	// fd 为终端描述符时密码不回显；-1 表示普通流
	// fd is the terminal descriptor used to read passwords without echo; -1 for plain streams
	fd int
}

func NewBasicLineInput(in io.Reader, out io.Writer) *BasicLineInput {
	fd := -1
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fd = int(f.Fd())
	}
	return &BasicLineInput{
		reader: bufio.NewReader(in),
		out:    out,
		fd:     fd,
	}
}

func (b *BasicLineInput) ReadLine(prompt string) (string, error) {
	if b.out != nil {
		fmt.Fprint(b.out, prompt)
	}
	line, err := b.reader.ReadString('\n')
	if err != nil {
		if err == io.EOF && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (b *BasicLineInput) ReadPassword(prompt string) (string, error) {
	if b.fd < 0 {
		return b.ReadLine(prompt)
	}
	if b.out != nil {
		fmt.Fprint(b.out, prompt)
	}
	secret, err := term.ReadPassword(b.fd)
	if b.out != nil {
		fmt.Fprintln(b.out)
	}
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(secret), nil
}

func (b *BasicLineInput) Close() error { return nil }

type readlineInput struct {
	instance *readline.Instance
}

func newReadlineInput(historyPath string) (*readlineInput, error) {
	if historyPath != "" {
		if err := os.MkdirAll(filepath.Dir(historyPath), 0o755); err != nil {
			return nil, fmt.Errorf("create history dir: %w", err)
		}
	}
	instance, err := readline.NewEx(&readline.Config{
		Prompt:            "> ",
		HistoryFile:       historyPath,
		HistorySearchFold: true,
		AutoComplete:      newCompleter(),
	})
	if err != nil {
		return nil, err
	}
	return &readlineInput{instance: instance}, nil
}

func (r *readlineInput) ReadLine(prompt string) (string, error) {
	r.instance.SetPrompt(prompt)
	return r.instance.Readline()
}

// ReadPassword 读取不回显的密码，不写入历史
// ReadPassword reads a secret without echo and keeps it out of history
func (r *readlineInput) ReadPassword(prompt string) (string, error) {
	secret, err := r.instance.ReadPassword(prompt)
	if err != nil {
		return "", err
	}
	return string(secret), nil
}

func (r *readlineInput) Close() error {
	if r == nil || r.instance == nil {
		return nil
	}
	return r.instance.Close()
}

// NewLineInput 优先使用 readline，失败时回退到普通输入并返回原因
// NewLineInput prefers readline and falls back to basic input, returning why
func NewLineInput(historyPath string) (LineInput, error) {
	readlineReader, err := newReadlineInput(historyPath)
	if err == nil {
		return readlineReader, nil
	}
	return NewBasicLineInput(os.Stdin, os.Stdout), err
}

func newCompleter() *readline.PrefixCompleter {
	items := make([]readline.PrefixCompleterInterface, 0, len(replCommands))
	for _, c := range replCommands {
		if c.name == "/copy" {
			items = append(items, readline.PcItem(c.name,
				readline.PcItem("titles"), readline.PcItem("title"),
				readline.PcItem("description"), readline.PcItem("html"),
				readline.PcItem("bullets"), readline.PcItem("bullet"),
				readline.PcItem("keywords"),
			))
			continue
		}
		if c.name == "/lang" {
			items = append(items, readline.PcItem(c.name, readline.PcItem("en"), readline.PcItem("zh-CN")))
			continue
		}
		items = append(items, readline.PcItem(c.name))
	}
	return readline.NewPrefixCompleter(items...)
}
