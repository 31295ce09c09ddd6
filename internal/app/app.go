// Package app composes the session, generation, content and notification services.
package app

import (
	"context"
	"errors"
	"io"
	"log"
	"time"

	"listingcrew/internal/auth"
	"listingcrew/internal/config"
	"listingcrew/internal/content"
	"listingcrew/internal/generation"
	"listingcrew/internal/i18n"
	"listingcrew/internal/notify"
	"listingcrew/internal/storage"
)

// ErrNotAuthenticated 未登录时不允许生成
// ErrNotAuthenticated is returned by Generate without a session
var ErrNotAuthenticated = errors.New("not signed in")

// Backend 后端的全部调用
// Backend is every backend call the app makes
type Backend interface {
	auth.Authenticator
	generation.Generator
}

type Deps struct {
	Config    config.Config
	Backend   Backend
	Store     storage.Store
	Clipboard content.Clipboard
	Clock     notify.Clock
	Messages  *i18n.I18n
	Logger    *log.Logger
	Tokenizer *content.Tokenizer
}

// App UI 层唯一入口
// App is the single entry point for user interfaces
type App struct {
	cfg       config.Config
	store     storage.Store
	msgs      *i18n.I18n
	logger    *log.Logger
	tokenizer *content.Tokenizer

	toasts  *notify.Center
	session *auth.Manager
	gen     *generation.Orchestrator
	editor  *content.Editor
}

func New(d Deps) *App {
	if d.Messages == nil {
		d.Messages = i18n.New(d.Config.UI.Locale)
	}
	if d.Logger == nil {
		d.Logger = log.New(io.Discard, "", 0)
	}

	toasts := notify.New(time.Duration(d.Config.Notify.ToastDurationMS)*time.Millisecond, d.Clock)
	editor := content.NewEditor(toasts, d.Clipboard, d.Messages)
	session := auth.NewManager(d.Backend, d.Store, toasts, auth.Options{
		DemoMode:      d.Config.Auth.DemoMode,
		CredentialKey: d.Config.Auth.CredentialKey,
		Logger:        d.Logger,
		Messages:      d.Messages,
	})
	gen := generation.New(d.Backend, session, editor, toasts, generation.Options{
		Timeout:  time.Duration(d.Config.API.GenerateTimeoutMS) * time.Millisecond,
		Logger:   d.Logger,
		Messages: d.Messages,
	})

	return &App{
		cfg:       d.Config,
		store:     d.Store,
		msgs:      d.Messages,
		logger:    d.Logger,
		tokenizer: d.Tokenizer,
		toasts:    toasts,
		session:   session,
		gen:       gen,
		editor:    editor,
	}
}

// Bootstrap 启动时恢复会话
// Bootstrap restores a persisted session
func (a *App) Bootstrap() {
	a.session.Bootstrap()
}

// Login 切换账号时先清掉上一个账号的结果
// Login drops the previous account's results when switching accounts
func (a *App) Login(ctx context.Context, email, password string) (auth.Session, error) {
	_, had := a.session.Current()
	s, err := a.session.Login(ctx, email, password)
	a.afterSignIn(had, err)
	return s, err
}

func (a *App) Register(ctx context.Context, email, password, confirm string) (auth.Session, error) {
	_, had := a.session.Current()
	s, err := a.session.Register(ctx, email, password, confirm)
	a.afterSignIn(had, err)
	return s, err
}

func (a *App) afterSignIn(hadSession bool, err error) {
	if hadSession && err == nil {
		a.gen.Reset()
	}
}

// Logout 先取消进行中的生成并清空结果，再退出会话
// Logout cancels any pending generation and clears results before ending the session
func (a *App) Logout(ctx context.Context) {
	a.gen.Reset()
	a.session.Logout(ctx)
}

// Generate 需要已登录
// Generate requires a session
func (a *App) Generate(ctx context.Context, url string) (generation.State, error) {
	if !a.session.IsAuthenticated() {
		return a.gen.State(), ErrNotAuthenticated
	}
	return a.gen.Generate(ctx, url)
}

func (a *App) BeginEdit() error { return a.editor.BeginEdit() }
func (a *App) SetEditBuffer(s string) error { return a.editor.SetBuffer(s) }
func (a *App) CancelEdit() error { return a.editor.CancelEdit() }

// CommitEdit 保存描述，并写回生成状态中的结果
// CommitEdit saves the description into both the display and the generation result
func (a *App) CommitEdit() error {
	if err := a.editor.CommitEdit(); err != nil {
		return err
	}
	a.syncDescription()
	return nil
}

func (a *App) ToggleEdit() error {
	wasEditing := a.editor.Mode() == content.ModeEditing
	if err := a.editor.Toggle(); err != nil {
		return err
	}
	if wasEditing {
		a.syncDescription()
	}
	return nil
}

func (a *App) syncDescription() {
	if g, ok := a.editor.Result(); ok {
		a.gen.UpdateDescription(g.Description)
	}
}

// Copy 复制结果的一部分到剪贴板
// Copy copies part of the displayed result to the clipboard
func (a *App) Copy(field content.Field, n int) (bool, error) {
	return a.editor.CopyField(field, n)
}

// Subscribe 提示变化时回调
// Subscribe registers a toast change listener
func (a *App) Subscribe(fn notify.Listener) {
	a.toasts.Subscribe(fn)
}

func (a *App) DismissToast(id string) bool {
	return a.toasts.Dismiss(id)
}

// Notify 由 UI 直接显示提示
// Notify shows a toast on behalf of a UI
func (a *App) Notify(message string, severity notify.Severity) {
	a.toasts.Show(message, severity)
}

func (a *App) Messages() *i18n.I18n { return a.msgs }

func (a *App) Config() config.Config { return a.cfg }

// SetLocale 切换界面语言
// SetLocale switches the UI language for every service sharing the catalog
func (a *App) SetLocale(locale string) error {
	if !i18n.Supported(locale) {
		return errors.New("unsupported locale: " + locale)
	}
	a.msgs.SetLocale(locale)
	return nil
}

// Measure 统计当前显示结果的 token 数
// Measure counts tokens of the displayed result
func (a *App) Measure() (content.Measurement, bool) {
	g, ok := a.editor.Result()
	if !ok {
		return content.Measurement{}, false
	}
	return content.Measure(a.tokenizer, g), true
}

// Close 释放存储
// Close releases the credential store
func (a *App) Close() error {
	a.gen.Reset()
	if a.store == nil {
		return nil
	}
	return a.store.Close()
}
