// Package storage persists the session credential across restarts.
package storage

import "errors"

// ErrEmptyKey 键为空
// ErrEmptyKey is returned for a blank key
var ErrEmptyKey = errors.New("storage key is empty")

// Store 键值持久化接口，支持多后端 (SQLite / JSON 文件)
// Store is a small key/value persistence interface with SQLite and JSON file backends
type Store interface {
	// Get 返回值以及是否存在 / Get returns the value and whether it exists
	Get(key string) (string, bool, error)
	Put(key, value string) error
	// Delete 删除不存在的键不算错误 / Deleting a missing key is not an error
	Delete(key string) error
	Close() error
}
