// Package notify holds the single-slot toast shown by every view.
package notify

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultDuration 默认自动消失时长
// DefaultDuration is the auto-dismiss delay used when none is configured
const DefaultDuration = 5 * time.Second

// Severity 提示级别
// Severity classifies toast presentation
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityInfo    Severity = "info"
)

// Toast 单条临时提示；ID 标识实例，过期回调只清除自己
// Toast is one ephemeral message; ID identifies the instance its expiry belongs to
type Toast struct {
	ID       string
	Message  string
	Severity Severity
	ShownAt  time.Time
}

// Timer 可停止的定时器
// Timer is a stoppable scheduled callback
type Timer interface {
	Stop() bool
}

// Clock 调度自动消失；测试可注入假时钟
// Clock schedules auto-dismiss; tests inject a manual clock
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

func (systemClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// SystemClock 基于 time 包的时钟
// SystemClock returns the wall-clock implementation
func SystemClock() Clock { return systemClock{} }

// Listener 在提示出现或消失时被调用；visible=false 表示当前无提示
// Listener is called after a toast is shown or cleared; visible=false means the slot is empty
type Listener func(toast Toast, visible bool)

// Center 通知中心：最多一条提示，新提示替换旧提示并重启计时
// Center holds at most one toast; a new toast replaces the old one and restarts the timer
type Center struct {
	mu        sync.Mutex
	clock     Clock
	duration  time.Duration
	current   *Toast
	timer     Timer
	listeners []Listener
}

// New 创建通知中心；duration<=0 时使用默认值，clock 为 nil 时使用系统时钟
// New creates a Center; duration<=0 falls back to DefaultDuration, nil clock uses SystemClock
func New(duration time.Duration, clock Clock) *Center {
	if duration <= 0 {
		duration = DefaultDuration
	}
	if clock == nil {
		clock = SystemClock()
	}
	return &Center{clock: clock, duration: duration}
}

// Subscribe 注册变更监听
// Subscribe registers a change listener
func (c *Center) Subscribe(fn Listener) {
	if fn == nil {
		return
	}
	c.mu.Lock()
	c.listeners = append(c.listeners, fn)
	c.mu.Unlock()
}

// Show 显示提示，替换当前提示并为新实例安排过期
// Show replaces the current toast and schedules expiry for the new instance only
func (c *Center) Show(message string, severity Severity) Toast {
	message = strings.TrimSpace(message)
	if message == "" {
		return Toast{}
	}
	toast := Toast{
		ID:       uuid.NewString(),
		Message:  message,
		Severity: NormalizeSeverity(severity),
	}

	c.mu.Lock()
	toast.ShownAt = c.clock.Now()
	if c.timer != nil {
		c.timer.Stop()
	}
	c.current = &toast
	id := toast.ID
	c.timer = c.clock.AfterFunc(c.duration, func() { c.expire(id) })
	listeners := c.snapshotListeners()
	c.mu.Unlock()

	for _, fn := range listeners {
		fn(toast, true)
	}
	return toast
}

// Current 返回当前提示
// Current returns the live toast, if any
func (c *Center) Current() (Toast, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current == nil {
		return Toast{}, false
	}
	return *c.current, true
}

// Dismiss 手动关闭指定提示；ID 不匹配时不做任何事
// Dismiss clears the toast with the given ID; a mismatched ID is a no-op
func (c *Center) Dismiss(id string) bool {
	return c.clear(id, true)
}

func (c *Center) expire(id string) {
	c.clear(id, false)
}

func (c *Center) clear(id string, stopTimer bool) bool {
	c.mu.Lock()
	if c.current == nil || c.current.ID != id {
		c.mu.Unlock()
		return false
	}
	c.current = nil
	if stopTimer && c.timer != nil {
		c.timer.Stop()
	}
	c.timer = nil
	listeners := c.snapshotListeners()
	c.mu.Unlock()

	for _, fn := range listeners {
		fn(Toast{}, false)
	}
	return true
}

func (c *Center) snapshotListeners() []Listener {
	if len(c.listeners) == 0 {
		return nil
	}
	return append([]Listener(nil), c.listeners...)
}

// NormalizeSeverity 未知级别归为 info
// NormalizeSeverity maps unknown severities to info
func NormalizeSeverity(s Severity) Severity {
	switch Severity(strings.ToLower(strings.TrimSpace(string(s)))) {
	case SeveritySuccess:
		return SeveritySuccess
	case SeverityError:
		return SeverityError
	default:
		return SeverityInfo
	}
}
