package tui

import (
	"fmt"
	"strings"

	"listingcrew/internal/content"
	"listingcrew/internal/generation"

	"github.com/charmbracelet/lipgloss"
)

const (
	headerHeight = 1
	urlBoxHeight = 2
	toastHeight  = 1
	statusHeight = 1
)

func (a App) View() string {
	if a.width == 0 || a.height == 0 {
		return "Initializing..."
	}
	if !a.snap.Authenticated {
		return a.viewAuth()
	}
	return a.viewDashboard()
}

func (a App) viewAuth() string {
	title := a.msgs.T("auth.login_title")
	if a.authMode == AuthRegister {
		title = a.msgs.T("auth.register_title")
	}
	labels := []string{a.msgs.T("auth.email"), a.msgs.T("auth.password"), a.msgs.T("auth.confirm")}

	parts := []string{a.theme.TitleStyle.Render(title), ""}
	for i := 0; i < a.fieldCount(); i++ {
		label := a.theme.MutedStyle.Render(labels[i])
		if i == a.focus {
			label = a.theme.FocusLabelStyle.Render(labels[i])
		}
		parts = append(parts, label, a.fields[i].View(), "")
	}
	parts = append(parts, a.theme.MutedStyle.Render(a.msgs.T("auth.switch_hint")))
	if a.authBusy {
		parts = append(parts, a.msgs.T("auth.signing_in"))
	}

	form := a.theme.FormStyle.Render(strings.Join(parts, "\n"))
	bodyHeight := a.height - toastHeight - statusHeight
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	body := lipgloss.Place(a.width, bodyHeight, lipgloss.Center, lipgloss.Center, form)

	return lipgloss.JoinVertical(lipgloss.Left, body, a.renderToast(a.width), a.renderStatusBar(a.width))
}

func (a App) viewDashboard() string {
	mainWidth, bodyHeight := a.mainSize()
	sidebarWidth := a.sidebarWidth()

	header := a.theme.TitleStyle.Render(truncate(" "+a.msgs.T("dash.title"), mainWidth))
	urlBox := a.theme.InputStyle.Width(mainWidth).Render(a.url.View())
	body := lipgloss.NewStyle().Width(mainWidth).Height(bodyHeight).Render(a.renderBody(mainWidth))

	main := lipgloss.JoinVertical(lipgloss.Left, header, urlBox, body)
	if sidebarWidth > 0 {
		sidebar := a.renderSidebar(sidebarWidth, a.height-toastHeight-statusHeight)
		main = lipgloss.JoinHorizontal(lipgloss.Top, main, sidebar)
	}

	return lipgloss.JoinVertical(lipgloss.Left, main, a.renderToast(a.width), a.renderStatusBar(a.width))
}

// --- 渲染方法 / Render methods ---

func (a App) renderBody(width int) string {
	switch {
	case a.snap.EditMode == content.ModeEditing:
		return a.theme.HeadingStyle.Render(a.msgs.T("dash.editing")) + "\n" + a.editor.View()
	case a.genBusy || a.snap.Generation.Pending():
		lines := []string{
			a.spin.View() + " " + a.msgs.T("dash.pending"),
			a.theme.MutedStyle.Render(a.msgs.T("dash.pending_detail")),
		}
		if u := a.snap.Generation.URL; u != "" {
			lines = append(lines, a.theme.MutedStyle.Render(truncate(a.msgs.T("dash.analyzing", u), width)))
		}
		return strings.Join(lines, "\n")
	case a.snap.HasDisplay:
		return a.results.View()
	default:
		return a.theme.MutedStyle.Render("  " + a.msgs.T("dash.empty"))
	}
}

func (a App) renderSidebar(width, height int) string {
	inner := width - 3
	var parts []string

	parts = append(parts, a.theme.TitleStyle.Render(" ListingCrew"))
	parts = append(parts, "")

	// 账号 / Account
	parts = append(parts, a.theme.TitleStyle.Render(" "+a.msgs.T("sidebar.account")))
	if name := a.snap.Session.DisplayName; name != "" {
		parts = append(parts, "  "+truncate(name, inner))
	}
	parts = append(parts, "  "+truncate(a.snap.Session.Email, inner))
	parts = append(parts, "")

	// 模式 / Mode
	parts = append(parts, a.theme.TitleStyle.Render(" "+a.msgs.T("sidebar.mode")))
	mode := a.core.Config().API.BaseURL
	if a.snap.DemoMode {
		mode = a.msgs.T("status.demo") + " · " + mode
	}
	parts = append(parts, "  "+truncate(mode, inner))
	parts = append(parts, "")

	// Tokens
	if m, ok := a.core.Measure(); ok {
		approx := ""
		if !m.Precise {
			approx = "≈"
		}
		parts = append(parts, a.theme.TitleStyle.Render(" "+a.msgs.T("sidebar.tokens")))
		parts = append(parts, fmt.Sprintf("  %s%d", approx, m.Total()))
		parts = append(parts, a.theme.MutedStyle.Render(fmt.Sprintf("  T %d · D %d", m.Titles, m.Description)))
		parts = append(parts, a.theme.MutedStyle.Render(fmt.Sprintf("  B %d · K %d", m.Bullets, m.Keywords)))
	}

	style := a.theme.SidebarStyle.
		Width(width).
		Height(height)

	return style.Render(strings.Join(parts, "\n"))
}

func (a App) renderToast(width int) string {
	if !a.snap.HasToast {
		return ""
	}
	style := a.theme.ToastStyle(a.snap.Toast.Severity)
	return style.Render(truncate(a.snap.Toast.Message, width-2))
}

func (a App) renderStatusBar(width int) string {
	left := " " + a.statusText()
	if a.snap.Authenticated {
		left = fmt.Sprintf(" %s · %s", a.snap.Session.Email, a.statusText())
	}

	help := a.msgs.T("help.auth")
	switch {
	case a.snap.EditMode == content.ModeEditing:
		help = a.msgs.T("help.edit")
	case a.snap.Authenticated:
		help = a.msgs.T("help.dash")
	}
	right := truncate(help, width-lipgloss.Width(left)-3) + " "

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	bar := left + strings.Repeat(" ", gap) + right
	return a.theme.StatusBarStyle.Width(width).Render(bar)
}

func (a App) statusText() string {
	if a.authBusy {
		return a.msgs.T("auth.signing_in")
	}
	if a.genBusy {
		return a.msgs.T("status.pending")
	}
	switch a.snap.Generation.Status {
	case generation.StatusPending:
		return a.msgs.T("status.pending")
	case generation.StatusFailed:
		return a.msgs.T("status.failed")
	case generation.StatusSucceeded:
		return a.msgs.T("status.done")
	default:
		return a.msgs.T("status.ready")
	}
}

func (a App) sidebarWidth() int {
	w := a.width * 25 / 100
	if w < 20 {
		w = 20
	}
	if w > 40 {
		w = 40
	}
	if a.width < 80 {
		w = 0
	}
	return w
}

// mainSize 主区域宽度与结果区高度
// mainSize returns the main column width and the results body height
func (a App) mainSize() (int, int) {
	sidebar := a.sidebarWidth()
	mainWidth := a.width - sidebar
	if sidebar > 0 {
		mainWidth-- // border
	}
	if mainWidth < 10 {
		mainWidth = 10
	}

	bodyHeight := a.height - headerHeight - urlBoxHeight - toastHeight - statusHeight
	if bodyHeight < 3 {
		bodyHeight = 3
	}
	return mainWidth, bodyHeight
}
