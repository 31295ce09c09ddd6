package tui

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"listingcrew/internal/app"
	"listingcrew/internal/content"
	"listingcrew/internal/generation"
	"listingcrew/internal/i18n"
	"listingcrew/internal/notify"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// AuthMode 登录表单模式
// AuthMode selects between the sign-in and create-account forms
type AuthMode int

const (
	AuthLogin AuthMode = iota
	AuthRegister
)

const (
	fieldEmail = iota
	fieldPassword
	fieldConfirm
)

// --- Tea Messages ---

// ToastMsg 提示变化（由通知中心回调发送）
// ToastMsg reports that the toast slot changed
type ToastMsg struct{}

type authDoneMsg struct{ err error }

type generateDoneMsg struct {
	state generation.State
	err   error
}

type logoutDoneMsg struct{}

type copyDoneMsg struct {
	ok  bool
	err error
}

// App Bubble Tea 主 Model
// App is the main Bubble Tea model
type App struct {
	// 布局 / Layout
	width  int
	height int

	core *app.App
	ctx  context.Context
	snap app.Snapshot

	// 登录表单 / Auth form
	authMode AuthMode
	fields   [3]textinput.Model
	focus    int
	authBusy bool

	// 工作台 / Dashboard
	url     textinput.Model
	results viewport.Model
	editor  textarea.Model
	spin    spinner.Model
	genBusy bool

	theme Theme
	keys  KeyMap
	msgs  *i18n.I18n
}

// NewApp 创建 TUI 应用
// NewApp creates a new TUI application over the app facade
func NewApp(ctx context.Context, core *app.App) App {
	msgs := core.Messages()

	email := textinput.New()
	email.Placeholder = "you@example.com"
	email.CharLimit = 254
	email.Focus()

	password := textinput.New()
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'
	password.CharLimit = 128

	confirm := password

	url := textinput.New()
	url.Placeholder = msgs.T("dash.url_hint")
	url.CharLimit = 2048
	url.Focus()

	ta := textarea.New()
	ta.ShowLineNumbers = false
	ta.CharLimit = 0

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	a := App{
		core:    core,
		ctx:     ctx,
		fields:  [3]textinput.Model{email, password, confirm},
		url:     url,
		results: viewport.New(80, 10),
		editor:  ta,
		spin:    sp,
		theme:   DarkTheme(),
		keys:    DefaultKeyMap(),
		msgs:    msgs,
	}
	a.refresh()
	return a
}

func (a App) Init() tea.Cmd {
	return textinput.Blink
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.relayout()
		return a, nil

	case ToastMsg:
		a.refresh()
		return a, nil

	case authDoneMsg:
		a.authBusy = false
		a.refresh()
		if a.snap.Authenticated {
			a.resetForm()
			a.syncResults()
		}
		return a, nil

	case generateDoneMsg:
		a.genBusy = false
		a.refresh()
		a.syncResults()
		return a, nil

	case logoutDoneMsg:
		a.refresh()
		a.syncResults()
		a.url.SetValue("")
		return a, nil

	case copyDoneMsg:
		a.refresh()
		return a, nil

	case spinner.TickMsg:
		if !a.genBusy {
			return a, nil
		}
		var cmd tea.Cmd
		a.spin, cmd = a.spin.Update(msg)
		return a, cmd

	case tea.MouseMsg:
		var cmd tea.Cmd
		a.results, cmd = a.results.Update(msg)
		return a, cmd

	case tea.KeyMsg:
		if key.Matches(msg, a.keys.Quit) {
			return a, tea.Quit
		}
		if a.snap.Authenticated {
			return a.updateDashboard(msg)
		}
		return a.updateAuth(msg)
	}

	// 光标闪烁等消息交给当前输入框 / Blink and friends go to the focused input
	var cmd tea.Cmd
	switch {
	case !a.snap.Authenticated:
		a.fields[a.focus], cmd = a.fields[a.focus].Update(msg)
	case a.snap.EditMode == content.ModeEditing:
		a.editor, cmd = a.editor.Update(msg)
	default:
		a.url, cmd = a.url.Update(msg)
	}
	return a, cmd
}

func (a App) updateAuth(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.SwitchAuth):
		if a.authMode == AuthLogin {
			a.authMode = AuthRegister
		} else {
			a.authMode = AuthLogin
		}
		if a.focus >= a.fieldCount() {
			a.focus = a.fieldCount() - 1
		}
		cmd := a.focusField(a.focus)
		return a, cmd

	case key.Matches(msg, a.keys.NextField):
		cmd := a.focusField((a.focus + 1) % a.fieldCount())
		return a, cmd

	case key.Matches(msg, a.keys.PrevField):
		cmd := a.focusField((a.focus + a.fieldCount() - 1) % a.fieldCount())
		return a, cmd

	case key.Matches(msg, a.keys.Submit):
		if a.authBusy {
			return a, nil
		}
		a.authBusy = true
		return a, a.submitAuth()

	case key.Matches(msg, a.keys.Cancel):
		a.dismissToast()
		return a, nil
	}

	var cmd tea.Cmd
	a.fields[a.focus], cmd = a.fields[a.focus].Update(msg)
	return a, cmd
}

func (a App) updateDashboard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.snap.EditMode == content.ModeEditing {
		switch {
		case key.Matches(msg, a.keys.Save):
			err := a.core.SetEditBuffer(a.editor.Value())
			if err == nil {
				err = a.core.CommitEdit()
			}
			if err != nil {
				a.core.Notify(a.msgs.T("toast.save_failed", err), notify.SeverityError)
			}
			a.editor.Blur()
			a.refresh()
			a.syncResults()
			return a, nil
		case key.Matches(msg, a.keys.Cancel):
			// 只会返回 ErrNotEditing：编辑已结束，刷新即可
			// The only error is ErrNotEditing; the refresh below shows the real mode
			if err := a.core.CancelEdit(); err != nil && !errors.Is(err, content.ErrNotEditing) {
				a.core.Notify(err.Error(), notify.SeverityError)
			}
			a.editor.Blur()
			a.refresh()
			return a, nil
		}
		var cmd tea.Cmd
		a.editor, cmd = a.editor.Update(msg)
		return a, cmd
	}

	switch {
	case key.Matches(msg, a.keys.Submit):
		if a.genBusy {
			return a, nil
		}
		a.genBusy = true
		return a, tea.Batch(a.generate(a.url.Value()), a.spin.Tick)

	case key.Matches(msg, a.keys.Edit):
		if a.genBusy || a.core.BeginEdit() != nil {
			return a, nil
		}
		a.refresh()
		a.editor.SetValue(a.snap.EditBuffer)
		cmd := a.editor.Focus()
		return a, cmd

	case key.Matches(msg, a.keys.Logout):
		return a, a.logout()

	case key.Matches(msg, a.keys.Cancel):
		a.dismissToast()
		return a, nil

	case key.Matches(msg, a.keys.CopyTitles):
		return a, a.copy(content.FieldTitles, 0)
	case key.Matches(msg, a.keys.CopyTitle):
		n, _ := strconv.Atoi(strings.TrimPrefix(msg.String(), "alt+"))
		return a, a.copy(content.FieldTitle, n)
	case key.Matches(msg, a.keys.CopyDescription):
		return a, a.copy(content.FieldDescription, 0)
	case key.Matches(msg, a.keys.CopyHTML):
		return a, a.copy(content.FieldDescriptionHTML, 0)
	case key.Matches(msg, a.keys.CopyBullets):
		return a, a.copy(content.FieldBullets, 0)
	case key.Matches(msg, a.keys.CopyKeywords):
		return a, a.copy(content.FieldKeywords, 0)

	case key.Matches(msg, a.keys.ScrollUp, a.keys.ScrollDown, a.keys.PageUp, a.keys.PageDown):
		var cmd tea.Cmd
		a.results, cmd = a.results.Update(msg)
		return a, cmd
	}

	var cmd tea.Cmd
	a.url, cmd = a.url.Update(msg)
	return a, cmd
}

// --- 命令 / Commands ---

func (a App) submitAuth() tea.Cmd {
	core, ctx, mode := a.core, a.ctx, a.authMode
	email := strings.TrimSpace(a.fields[fieldEmail].Value())
	password := a.fields[fieldPassword].Value()
	confirm := a.fields[fieldConfirm].Value()
	return func() tea.Msg {
		var err error
		if mode == AuthRegister {
			_, err = core.Register(ctx, email, password, confirm)
		} else {
			_, err = core.Login(ctx, email, password)
		}
		return authDoneMsg{err: err}
	}
}

func (a App) generate(url string) tea.Cmd {
	core, ctx := a.core, a.ctx
	return func() tea.Msg {
		st, err := core.Generate(ctx, url)
		return generateDoneMsg{state: st, err: err}
	}
}

func (a App) logout() tea.Cmd {
	core, ctx := a.core, a.ctx
	return func() tea.Msg {
		core.Logout(ctx)
		return logoutDoneMsg{}
	}
}

func (a App) copy(field content.Field, n int) tea.Cmd {
	core := a.core
	return func() tea.Msg {
		ok, err := core.Copy(field, n)
		return copyDoneMsg{ok: ok, err: err}
	}
}

// --- 内部方法 / Internal methods ---

func (a *App) refresh() {
	a.snap = a.core.Snapshot()
}

func (a *App) dismissToast() {
	if a.snap.HasToast {
		a.core.DismissToast(a.snap.Toast.ID)
	}
	a.refresh()
}

func (a *App) fieldCount() int {
	if a.authMode == AuthRegister {
		return 3
	}
	return 2
}

func (a *App) focusField(i int) tea.Cmd {
	for j := range a.fields {
		a.fields[j].Blur()
	}
	a.focus = i
	return a.fields[i].Focus()
}

// resetForm 登录成功后清空密码
// resetForm clears the secrets once a session exists
func (a *App) resetForm() {
	a.fields[fieldPassword].SetValue("")
	a.fields[fieldConfirm].SetValue("")
	a.focusField(fieldEmail)
	a.url.Focus()
}

func (a *App) syncResults() {
	if !a.snap.HasDisplay {
		a.results.SetContent("")
		return
	}
	a.results.SetContent(RenderResult(a.snap.Display, a.results.Width, a.theme, a.msgs))
	a.results.GotoTop()
}

func (a *App) relayout() {
	mainWidth, bodyHeight := a.mainSize()

	a.results.Width = mainWidth
	a.results.Height = bodyHeight
	a.syncResults()

	a.url.Width = mainWidth - 4
	a.editor.SetWidth(mainWidth)
	a.editor.SetHeight(bodyHeight - 1)
	for i := range a.fields {
		a.fields[i].Width = 40
	}
}

// Run 启动 Bubble Tea TUI
// Run starts the Bubble Tea TUI application
func Run(ctx context.Context, core *app.App) error {
	m := NewApp(ctx, core)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	// Send 在事件循环忙时会阻塞，提示可能在 Update 内触发
	// Send blocks while the loop is busy, and toasts can fire from inside Update
	core.Subscribe(func(notify.Toast, bool) { go p.Send(ToastMsg{}) })
	_, err := p.Run()
	return err
}
