// Package generation drives one content generation request at a time.
package generation

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/url"
	"strings"
	"sync"
	"time"

	"listingcrew/internal/api"
	"listingcrew/internal/content"
	"listingcrew/internal/i18n"
	"listingcrew/internal/notify"
)

var (
	ErrEmptyURL   = errors.New("url is empty")
	ErrInvalidURL = errors.New("url is not a valid absolute url")
	// ErrBusy 已有请求在进行中
	// ErrBusy is returned while a request is pending
	ErrBusy = errors.New("generation already in progress")
	// ErrEmptyResult 后端返回 2xx 但四个字段都为空
	// ErrEmptyResult is returned for a 2xx response with all four fields empty
	ErrEmptyResult = errors.New("no content generated")
	// ErrStale 响应到达时请求已被取代（重置或会话变化），结果被丢弃
	// ErrStale is returned when the response arrived for a superseded request or session
	ErrStale = errors.New("generation response discarded")
)

// Generator 后端生成接口
// Generator is the backend generation call
type Generator interface {
	GenerateText(ctx context.Context, token, url string) (content.Generated, error)
}

// Credentials 提供 bearer token 及其会话 epoch
// Credentials supplies the bearer token and the session epoch it belongs to
type Credentials interface {
	Credential() (token string, epoch uint64, ok bool)
}

// ResultSink 接收成功的结果（编辑器）
// ResultSink receives results for display and editing
type ResultSink interface {
	Load(g content.Generated)
	Clear()
}

type Notifier interface {
	Show(message string, severity notify.Severity) notify.Toast
}

type Options struct {
	// Timeout 单次请求超时；0 表示不限
	// Timeout bounds one request; zero means no limit
	Timeout  time.Duration
	Logger   *log.Logger
	Messages *i18n.I18n
}

// Orchestrator 生成状态机：Idle → Pending → Succeeded | Failed
// Orchestrator is the generation state machine
type Orchestrator struct {
	gen      Generator
	creds    Credentials
	sink     ResultSink
	notifier Notifier
	opts     Options

	mu     sync.Mutex
	state  State
	seq    uint64
	cancel context.CancelFunc
}

func New(gen Generator, creds Credentials, sink ResultSink, notifier Notifier, opts Options) *Orchestrator {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard, "", 0)
	}
	if opts.Messages == nil {
		opts.Messages = i18n.New("en")
	}
	return &Orchestrator{gen: gen, creds: creds, sink: sink, notifier: notifier, opts: opts}
}

// State 返回当前状态的副本
// State returns a copy of the current state
func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state.clone()
}

// ValidateURL 去掉首尾空白后要求是带 scheme 和 host 的绝对 URL
// ValidateURL trims raw and requires an absolute URL with scheme and host
func ValidateURL(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", ErrEmptyURL
	}
	u, err := url.Parse(trimmed)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("%q: %w", trimmed, ErrInvalidURL)
	}
	return trimmed, nil
}

// Generate 提交一次生成请求并阻塞到结束；所有结果通过提示反馈
// Generate submits one request and blocks until it settles; outcomes are reported as toasts
func (o *Orchestrator) Generate(ctx context.Context, rawURL string) (State, error) {
	if o.State().Pending() {
		return o.State(), ErrBusy
	}
	target, err := ValidateURL(rawURL)
	if err != nil {
		if errors.Is(err, ErrEmptyURL) {
			o.notify(o.opts.Messages.T("toast.url_empty"), notify.SeverityError)
		} else {
			o.notify(o.opts.Messages.T("toast.url_invalid"), notify.SeverityError)
		}
		return o.State(), err
	}

	token, epoch, _ := o.creds.Credential()

	o.mu.Lock()
	if o.state.Status == StatusPending {
		o.mu.Unlock()
		return o.State(), ErrBusy
	}
	o.seq++
	seq := o.seq
	reqCtx, cancel := context.WithCancel(ctx)
	if o.opts.Timeout > 0 {
		reqCtx, cancel = withTimeout(reqCtx, cancel, o.opts.Timeout)
	}
	o.cancel = cancel
	o.state = State{Status: StatusPending, URL: target}
	o.sink.Clear()
	o.mu.Unlock()

	result, callErr := o.gen.GenerateText(reqCtx, token, target)
	cancel()

	_, currentEpoch, _ := o.creds.Credential()

	o.mu.Lock()
	if seq != o.seq || currentEpoch != epoch {
		// 会话在请求期间变化且未被重置：回到 Idle，否则会一直停在 Pending
		// A session change without Reset still owns the slot and must release it
		if seq == o.seq {
			o.cancel = nil
			o.state = State{}
			o.sink.Clear()
		}
		o.mu.Unlock()
		o.opts.Logger.Printf("generation: discarded response for %s (seq=%d epoch=%d)", target, seq, epoch)
		return o.State(), ErrStale
	}
	o.cancel = nil

	var (
		msg string
		sev = notify.SeverityError
		ret error
	)
	switch {
	case callErr != nil:
		o.state = State{Status: StatusFailed, URL: target}
		if detail, ok := api.DetailOf(callErr); ok {
			msg = detail
		} else if isStatusError(callErr) {
			msg = o.opts.Messages.T("toast.generate_failed")
		} else {
			msg = o.opts.Messages.T("toast.generate_transport")
		}
		ret = fmt.Errorf("generate %s: %w", target, callErr)
	case result.IsEmpty():
		o.state = State{Status: StatusFailed, URL: target}
		msg = o.opts.Messages.T("toast.generate_empty")
		ret = ErrEmptyResult
	default:
		o.state = State{Status: StatusSucceeded, URL: target, Result: result.Clone()}
		o.sink.Load(result)
		msg = o.opts.Messages.T("toast.generate_success")
		sev = notify.SeveritySuccess
	}
	out := o.state.clone()
	o.mu.Unlock()

	if ret != nil {
		o.opts.Logger.Printf("generation: %v", ret)
	}
	o.notify(msg, sev)
	return out, ret
}

// UpdateDescription 写回已提交的描述编辑；仅在 Succeeded 时生效
// UpdateDescription stores a committed description edit in the held result
func (o *Orchestrator) UpdateDescription(description string) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.state.Status != StatusSucceeded {
		return false
	}
	o.state.Result.Description = description
	return true
}

// Reset 取消进行中的请求并回到 Idle；迟到的响应会被丢弃
// Reset cancels any in-flight request and returns to Idle; a late response is discarded
func (o *Orchestrator) Reset() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.seq++
	if o.cancel != nil {
		o.cancel()
		o.cancel = nil
	}
	o.state = State{}
	o.sink.Clear()
}

func withTimeout(parent context.Context, cancelParent context.CancelFunc, d time.Duration) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(parent, d)
	return ctx, func() {
		cancel()
		cancelParent()
	}
}

func isStatusError(err error) bool {
	var se *api.StatusError
	return errors.As(err, &se)
}

func (o *Orchestrator) notify(msg string, sev notify.Severity) {
	if o.notifier != nil {
		o.notifier.Show(msg, sev)
	}
}
