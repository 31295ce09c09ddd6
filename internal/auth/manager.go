// Package auth owns the client session: login, registration, logout and restore on start.
package auth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"sync"
	"unicode/utf8"

	"listingcrew/internal/api"
	"listingcrew/internal/i18n"
	"listingcrew/internal/notify"
)

// MinPasswordLength 注册时密码最少字符数（按 rune 计）
// MinPasswordLength is the minimum registration password length, counted in runes
const MinPasswordLength = 6

var (
	ErrPasswordMismatch = errors.New("passwords do not match")
	ErrPasswordTooShort = fmt.Errorf("password shorter than %d characters", MinPasswordLength)
	// ErrBusy 已有登录/注册请求在进行中
	// ErrBusy is returned while another login or register call is in flight
	ErrBusy = errors.New("authentication already in progress")
)

// Session 已登录用户
// Session is the in-memory proof of authentication
type Session struct {
	ID          string
	Email       string
	DisplayName string
}

// Authenticator 后端认证接口
// Authenticator is the backend side of authentication
type Authenticator interface {
	Login(ctx context.Context, email, password string) (api.AuthResponse, error)
	Register(ctx context.Context, email, password string) (api.AuthResponse, error)
	Logout(ctx context.Context, token string) error
}

// TokenStore 持久化凭据
// TokenStore persists the credential
type TokenStore interface {
	Get(key string) (string, bool, error)
	Put(key, value string) error
	Delete(key string) error
}

// Notifier 提示出口
// Notifier receives user-visible outcomes
type Notifier interface {
	Show(message string, severity notify.Severity) notify.Toast
}

type Options struct {
	// DemoMode 认证失败时回退为本地演示会话
	// DemoMode masks authentication failures with a local demo session
	DemoMode      bool
	CredentialKey string
	Logger        *log.Logger
	Messages      *i18n.I18n
}

// Manager 会话状态机：Unauthenticated ⇄ Authenticated
// Manager is the session state machine
type Manager struct {
	backend  Authenticator
	store    TokenStore
	notifier Notifier
	opts     Options

	mu           sync.Mutex
	session      *Session
	token        string
	epoch        uint64
	loading      bool
	bootstrapped bool
}

func NewManager(backend Authenticator, store TokenStore, notifier Notifier, opts Options) *Manager {
	if strings.TrimSpace(opts.CredentialKey) == "" {
		opts.CredentialKey = "authToken"
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard, "", 0)
	}
	if opts.Messages == nil {
		opts.Messages = i18n.New("en")
	}
	return &Manager{backend: backend, store: store, notifier: notifier, opts: opts}
}

// Bootstrap 启动时调用一次：有持久化凭据则直接恢复会话，不做网络校验
// Bootstrap restores the session from the persisted credential without network validation.
// Store errors are logged and treated as no credential.
func (m *Manager) Bootstrap() {
	m.mu.Lock()
	if m.bootstrapped {
		m.mu.Unlock()
		return
	}
	m.bootstrapped = true
	m.mu.Unlock()

	token, ok, err := m.store.Get(m.opts.CredentialKey)
	if err != nil {
		m.opts.Logger.Printf("auth: read persisted credential: %v", err)
		return
	}
	if !ok || strings.TrimSpace(token) == "" {
		return
	}
	s := restoredSession(token)

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.session != nil {
		return
	}
	m.session = &s
	m.token = token
	m.epoch++
}

// Login 登录；失败时按 DemoMode 回退或报错
// Login signs in; failures fall back to a demo session when DemoMode is on
func (m *Manager) Login(ctx context.Context, email, password string) (Session, error) {
	if err := m.begin(); err != nil {
		return Session{}, err
	}
	defer m.end()

	resp, err := m.backend.Login(ctx, email, password)
	return m.complete(resp, err, email, "login", "toast.login_success", "toast.login_failed")
}

// Register 注册；本地校验失败时不发请求
// Register validates locally first and never calls the backend on a validation failure
func (m *Manager) Register(ctx context.Context, email, password, confirm string) (Session, error) {
	if password != confirm {
		m.notify(m.opts.Messages.T("toast.password_mismatch"), notify.SeverityError)
		return Session{}, ErrPasswordMismatch
	}
	if utf8.RuneCountInString(password) < MinPasswordLength {
		m.notify(m.opts.Messages.T("toast.password_short", MinPasswordLength), notify.SeverityError)
		return Session{}, ErrPasswordTooShort
	}

	if err := m.begin(); err != nil {
		return Session{}, err
	}
	defer m.end()

	resp, err := m.backend.Register(ctx, email, password)
	return m.complete(resp, err, email, "register", "toast.register_success", "toast.register_failed")
}

func (m *Manager) complete(resp api.AuthResponse, err error, email, op, okKey, failKey string) (Session, error) {
	var (
		s     Session
		token string
	)
	switch {
	case err == nil:
		s = Session{ID: resp.User.ID, Email: resp.User.Email, DisplayName: resp.User.Name}
		if s.Email == "" {
			s.Email = email
		}
		token = resp.Token
	case m.opts.DemoMode:
		m.opts.Logger.Printf("auth: %s failed, using demo session: %v", op, err)
		s = Session{ID: demoUserID, Email: email}
		token = DemoToken
	default:
		m.opts.Logger.Printf("auth: %s failed: %v", op, err)
		m.notify(m.opts.Messages.T(failKey), notify.SeverityError)
		return Session{}, fmt.Errorf("%s: %w", op, err)
	}

	m.adopt(s, token)
	m.notify(m.opts.Messages.T(okKey), notify.SeveritySuccess)
	return s, nil
}

func (m *Manager) adopt(s Session, token string) {
	m.mu.Lock()
	m.session = &s
	m.token = token
	m.epoch++
	m.mu.Unlock()

	// 持久化失败不影响内存中的会话 / A persist failure keeps the in-memory session
	if err := m.store.Put(m.opts.CredentialKey, token); err != nil {
		m.opts.Logger.Printf("auth: persist credential: %v", err)
	}
}

// Logout 尽力通知后端，然后无条件清除会话与凭据；从不失败
// Logout notifies the backend best-effort, then always clears the session and credential
func (m *Manager) Logout(ctx context.Context) {
	m.mu.Lock()
	token := m.token
	m.mu.Unlock()

	if token != "" {
		if err := m.backend.Logout(ctx, token); err != nil {
			m.opts.Logger.Printf("auth: logout call failed: %v", err)
		}
	}

	m.mu.Lock()
	m.session = nil
	m.token = ""
	m.epoch++
	m.mu.Unlock()

	if err := m.store.Delete(m.opts.CredentialKey); err != nil {
		m.opts.Logger.Printf("auth: erase credential: %v", err)
	}
	m.notify(m.opts.Messages.T("toast.logout"), notify.SeverityInfo)
}

// Current 返回当前会话
// Current returns the live session, if any
func (m *Manager) Current() (Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.session == nil {
		return Session{}, false
	}
	return *m.session, true
}

func (m *Manager) IsAuthenticated() bool {
	_, ok := m.Current()
	return ok
}

// Loading 登录/注册网络请求进行中
// Loading reports whether a login or register call is in flight
func (m *Manager) Loading() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loading
}

// Epoch 会话版本号，每次会话变化递增
// Epoch is the session version; it increments on every session change
func (m *Manager) Epoch() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.epoch
}

// Credential 原子地返回 token 与其所属的 epoch
// Credential returns the bearer token together with the epoch it belongs to
func (m *Manager) Credential() (string, uint64, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.session == nil {
		return "", m.epoch, false
	}
	return m.token, m.epoch, true
}

func (m *Manager) DemoMode() bool {
	return m.opts.DemoMode
}

func (m *Manager) begin() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loading {
		return ErrBusy
	}
	m.loading = true
	return nil
}

func (m *Manager) end() {
	m.mu.Lock()
	m.loading = false
	m.mu.Unlock()
}

func (m *Manager) notify(msg string, sev notify.Severity) {
	if m.notifier != nil {
		m.notifier.Show(msg, sev)
	}
}
