package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// InitProjectConfigScaffold 在当前工作目录下初始化项目级配置模板（./.listingcrew/config.json）。
// InitProjectConfigScaffold writes a project config scaffold (./.listingcrew/config.json) unless one exists.
func InitProjectConfigScaffold(projectDir string) (string, error) {
	dir := filepath.Join(strings.TrimSpace(projectDir), ".listingcrew")
	path := filepath.Join(dir, "config.json")

	info, err := os.Stat(path)
	if err == nil {
		if info.IsDir() {
			return "", fmt.Errorf("project config path is a directory: %s", path)
		}
		return path, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("stat project config: %w", err)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("mkdir .listingcrew: %w", err)
	}
	data, err := json.MarshalIndent(Default(), "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal default config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write project config: %w", err)
	}
	return path, nil
}

// WriteLocale 将 ui.locale 写入项目配置（./.listingcrew/config.json）；保留其他键
// WriteLocale writes ui.locale to the project config (./.listingcrew/config.json), keeping other keys
func WriteLocale(projectDir, locale string) error {
	locale = strings.TrimSpace(locale)
	if locale == "" {
		return errors.New("locale is empty")
	}
	dir := filepath.Join(strings.TrimSpace(projectDir), ".listingcrew")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir .listingcrew: %w", err)
	}
	path := filepath.Join(dir, "config.json")
	var root map[string]any
	if data, err := os.ReadFile(path); err == nil {
		if err := json.Unmarshal(stripJSONComments(data), &root); err != nil {
			root = nil
		}
	}
	if root == nil {
		root = make(map[string]any)
	}
	ui, _ := root["ui"].(map[string]any)
	if ui == nil {
		ui = make(map[string]any)
	}
	ui["locale"] = locale
	root["ui"] = ui
	data, err := json.MarshalIndent(root, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
