package content

import (
	"errors"

	"github.com/atotto/clipboard"
)

// ErrClipboardUnsupported 当前环境没有可用的剪贴板工具
// ErrClipboardUnsupported is returned when no clipboard utility is available
var ErrClipboardUnsupported = errors.New("clipboard not supported on this system")

// Clipboard 系统剪贴板写入接口
// Clipboard writes text to the system clipboard
type Clipboard interface {
	WriteAll(text string) error
}

// SystemClipboard 基于 atotto/clipboard 的实现
// SystemClipboard writes through atotto/clipboard (pbcopy, xclip, xsel, wl-copy, win32)
type SystemClipboard struct{}

func (SystemClipboard) WriteAll(text string) error {
	if clipboard.Unsupported {
		return ErrClipboardUnsupported
	}
	return clipboard.WriteAll(text)
}
