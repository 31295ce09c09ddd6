package content

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"listingcrew/internal/i18n"
	"listingcrew/internal/notify"
)

var (
	// ErrNoResult 当前没有生成结果
	// ErrNoResult is returned when there is no generation result to act on
	ErrNoResult = errors.New("no generated content")
	// ErrNotEditing 不在编辑状态
	// ErrNotEditing is returned by buffer operations outside of editing mode
	ErrNotEditing = errors.New("description is not being edited")
	// ErrIndexOutOfRange 标题或要点序号越界
	// ErrIndexOutOfRange is returned for a title or bullet number that does not exist
	ErrIndexOutOfRange = errors.New("item number out of range")
)

// Notifier 提示出口
// Notifier receives user-visible outcomes
type Notifier interface {
	Show(message string, severity notify.Severity) notify.Toast
}

// Mode 编辑器模式
// Mode is the editor mode
type Mode int

const (
	ModeViewing Mode = iota
	ModeEditing
)

func (m Mode) String() string {
	if m == ModeEditing {
		return "editing"
	}
	return "viewing"
}

// Field 可复制的内容
// Field names a copyable part of the result
type Field int

const (
	FieldTitles Field = iota
	FieldTitle
	FieldDescription
	FieldDescriptionHTML
	FieldBullets
	FieldBullet
	FieldKeywords
)

// ParseField 解析命令行里的复制目标
// ParseField maps a command-line copy target to a Field
func ParseField(s string) (Field, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "titles":
		return FieldTitles, true
	case "title":
		return FieldTitle, true
	case "description", "desc":
		return FieldDescription, true
	case "html":
		return FieldDescriptionHTML, true
	case "bullets":
		return FieldBullets, true
	case "bullet":
		return FieldBullet, true
	case "keywords":
		return FieldKeywords, true
	default:
		return 0, false
	}
}

// Editor 持有当前显示的生成结果副本、描述编辑缓冲与复制动作
// Editor holds the displayed copy of the result, the description edit buffer and copy actions
type Editor struct {
	mu        sync.Mutex
	result    *Generated
	mode      Mode
	buffer    string
	notifier  Notifier
	clipboard Clipboard
	msgs      *i18n.I18n
}

// NewEditor 创建编辑器；clipboard 为 nil 时使用系统剪贴板
// NewEditor creates an Editor; a nil clipboard uses SystemClipboard
func NewEditor(notifier Notifier, clipboard Clipboard, msgs *i18n.I18n) *Editor {
	if clipboard == nil {
		clipboard = SystemClipboard{}
	}
	if msgs == nil {
		msgs = i18n.New("en")
	}
	return &Editor{notifier: notifier, clipboard: clipboard, msgs: msgs}
}

// Load 载入新结果，缓冲区置为描述
// Load installs a new result and seeds the buffer with its description
func (e *Editor) Load(g Generated) {
	e.mu.Lock()
	defer e.mu.Unlock()
	cp := g.Clone()
	e.result = &cp
	e.mode = ModeViewing
	e.buffer = cp.Description
}

// Clear 清空结果与缓冲区
// Clear drops the result and the buffer
func (e *Editor) Clear() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.result = nil
	e.mode = ModeViewing
	e.buffer = ""
}

// Result 返回当前显示的结果
// Result returns the displayed result
func (e *Editor) Result() (Generated, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.result == nil {
		return Generated{}, false
	}
	return e.result.Clone(), true
}

func (e *Editor) Mode() Mode {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.mode
}

func (e *Editor) Buffer() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.buffer
}

// BeginEdit 进入编辑，缓冲区重新取自当前描述
// BeginEdit enters editing mode, re-seeding the buffer from the current description
func (e *Editor) BeginEdit() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.result == nil {
		return ErrNoResult
	}
	e.mode = ModeEditing
	e.buffer = e.result.Description
	return nil
}

// SetBuffer 替换编辑缓冲区
// SetBuffer replaces the edit buffer
func (e *Editor) SetBuffer(text string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.mode != ModeEditing {
		return ErrNotEditing
	}
	e.buffer = text
	return nil
}

// CommitEdit 将缓冲区写回描述并退出编辑
// CommitEdit writes the buffer into the description and leaves editing mode
func (e *Editor) CommitEdit() error {
	e.mu.Lock()
	if e.mode != ModeEditing || e.result == nil {
		e.mu.Unlock()
		return ErrNotEditing
	}
	e.result.Description = e.buffer
	e.mode = ModeViewing
	e.mu.Unlock()

	e.notify(e.msgs.T("toast.description_saved"), notify.SeveritySuccess)
	return nil
}

// CancelEdit 放弃修改
// CancelEdit discards the buffer and leaves editing mode
func (e *Editor) CancelEdit() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.mode != ModeEditing {
		return ErrNotEditing
	}
	e.mode = ModeViewing
	if e.result != nil {
		e.buffer = e.result.Description
	}
	return nil
}

// Toggle 编辑开关：查看→编辑，编辑→提交
// Toggle begins an edit when viewing and commits when editing
func (e *Editor) Toggle() error {
	if e.Mode() == ModeEditing {
		return e.CommitEdit()
	}
	return e.BeginEdit()
}

// Copy 写入剪贴板并提示结果；从不向调用方返回错误
// Copy writes text to the clipboard and reports the outcome as a toast
func (e *Editor) Copy(text, label string) bool {
	if err := e.clipboard.WriteAll(text); err != nil {
		e.notify(e.msgs.T("toast.copy_failed"), notify.SeverityError)
		return false
	}
	e.notify(e.msgs.T("toast.copied", label), notify.SeveritySuccess)
	return true
}

// CopyField 复制结果的某一部分；n 为从 1 开始的标题或要点序号
// CopyField copies one part of the result; n is the 1-based title or bullet number
func (e *Editor) CopyField(field Field, n int) (bool, error) {
	g, ok := e.Result()
	if !ok {
		return false, ErrNoResult
	}
	switch field {
	case FieldTitles:
		return e.Copy(FormatTitles(g.Titles), e.msgs.T("label.all_titles")), nil
	case FieldTitle:
		if n < 1 || n > len(g.Titles) {
			return false, fmt.Errorf("title %d: %w", n, ErrIndexOutOfRange)
		}
		return e.Copy(g.Titles[n-1], e.msgs.T("label.title", n)), nil
	case FieldDescription:
		return e.Copy(g.Description, e.msgs.T("label.description")), nil
	case FieldDescriptionHTML:
		html, err := DescriptionHTML(g.Description)
		if err != nil {
			e.notify(e.msgs.T("toast.copy_failed"), notify.SeverityError)
			return false, nil
		}
		return e.Copy(html, e.msgs.T("label.description_html")), nil
	case FieldBullets:
		return e.Copy(FormatBullets(g.BulletPoints), e.msgs.T("label.bullets")), nil
	case FieldBullet:
		if n < 1 || n > len(g.BulletPoints) {
			return false, fmt.Errorf("bullet %d: %w", n, ErrIndexOutOfRange)
		}
		return e.Copy(FormatBullet(g.BulletPoints[n-1]), e.msgs.T("label.bullet", n)), nil
	case FieldKeywords:
		return e.Copy(g.KeywordsReport, e.msgs.T("label.keywords")), nil
	default:
		return false, fmt.Errorf("unknown copy field %d", field)
	}
}

func (e *Editor) notify(msg string, sev notify.Severity) {
	if e.notifier != nil {
		e.notifier.Show(msg, sev)
	}
}
