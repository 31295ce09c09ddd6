package storage

import (
	"fmt"
	"os"
	"strings"
)

// MigrateFromJSON 将旧版 JSON 凭据文件迁移到 SQLite；已存在的键不覆盖，成功后删除旧文件
// MigrateFromJSON copies keys from a legacy JSON credential file into SQLite without
// overwriting existing keys, then removes the file
func MigrateFromJSON(jsonPath string, store *SQLiteStore) (int, error) {
	jsonPath = strings.TrimSpace(jsonPath)
	if jsonPath == "" {
		return 0, nil
	}
	if _, err := os.Stat(jsonPath); err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("stat legacy credentials: %w", err)
	}

	values := map[string]string{}
	if err := readJSONFile(jsonPath, &values); err != nil {
		return 0, err
	}

	migrated := 0
	for key, value := range values {
		if strings.TrimSpace(key) == "" {
			continue
		}
		// 检查是否已存在 / Check if already present
		if _, ok, err := store.Get(key); err != nil {
			return migrated, err
		} else if ok {
			continue
		}
		if err := store.Put(key, value); err != nil {
			return migrated, fmt.Errorf("migrate %q: %w", key, err)
		}
		migrated++
	}
	if err := os.Remove(jsonPath); err != nil {
		return migrated, fmt.Errorf("remove legacy credentials: %w", err)
	}
	return migrated, nil
}
