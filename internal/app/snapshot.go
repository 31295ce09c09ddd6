package app

import (
	"listingcrew/internal/auth"
	"listingcrew/internal/content"
	"listingcrew/internal/generation"
	"listingcrew/internal/notify"
)

// Snapshot 渲染所需的全部状态
// Snapshot is everything a UI needs to render one frame
type Snapshot struct {
	Authenticated bool
	Session       auth.Session
	AuthLoading   bool
	DemoMode      bool

	Generation generation.State
	// Display 编辑器持有的当前显示结果（含已提交的描述修改）
	// Display is the editor's copy of the result, including committed description edits
	Display    content.Generated
	HasDisplay bool
	EditMode   content.Mode
	EditBuffer string

	Toast    notify.Toast
	HasToast bool
}

func (a *App) Snapshot() Snapshot {
	s := Snapshot{
		AuthLoading: a.session.Loading(),
		DemoMode:    a.session.DemoMode(),
		Generation:  a.gen.State(),
		EditMode:    a.editor.Mode(),
		EditBuffer:  a.editor.Buffer(),
	}
	s.Session, s.Authenticated = a.session.Current()
	s.Display, s.HasDisplay = a.editor.Result()
	s.Toast, s.HasToast = a.toasts.Current()
	return s
}
