package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

type APIConfig struct {
	BaseURL           string `json:"base_url"`
	TimeoutMS         int    `json:"timeout_ms"`
	GenerateTimeoutMS int    `json:"generate_timeout_ms"`
}

type AuthConfig struct {
	// DemoMode 开启时，登录/注册失败会回退为本地演示会话
	// DemoMode makes login/register failures fall back to a local demo session
	DemoMode      bool   `json:"demo_mode"`
	CredentialKey string `json:"credential_key"`
}

type NotifyConfig struct {
	ToastDurationMS int `json:"toast_duration_ms"`
}

type UIConfig struct {
	Mode   string `json:"mode"`
	Locale string `json:"locale"`
}

type StorageConfig struct {
	BaseDir string `json:"base_dir"`
	Backend string `json:"backend"`
	LogFile string `json:"log_file"`
}

type Config struct {
	API     APIConfig     `json:"api"`
	Auth    AuthConfig    `json:"auth"`
	Notify  NotifyConfig  `json:"notify"`
	UI      UIConfig      `json:"ui"`
	Storage StorageConfig `json:"storage"`
}

// fileAPIConfig 指针字段区分"未设置"与显式的 0
// fileAPIConfig uses pointers so an explicit zero is distinguishable from unset
type fileAPIConfig struct {
	BaseURL           string `json:"base_url"`
	TimeoutMS         int    `json:"timeout_ms"`
	GenerateTimeoutMS *int   `json:"generate_timeout_ms"`
}

type fileAuthConfig struct {
	DemoMode      *bool   `json:"demo_mode"`
	CredentialKey *string `json:"credential_key"`
}

type fileConfig struct {
	API     *fileAPIConfig  `json:"api"`
	Auth    *fileAuthConfig `json:"auth"`
	Notify  *NotifyConfig   `json:"notify"`
	UI      *UIConfig       `json:"ui"`
	Storage *StorageConfig  `json:"storage"`
}

const (
	UIModeAuto = "auto"
	UIModeTUI  = "tui"
	UIModeREPL = "repl"

	BackendSQLite = "sqlite"
	BackendFile   = "file"

	DefaultCredentialKey = "authToken"
)

func Default() Config {
	return Config{
		API: APIConfig{
			BaseURL:           "http://localhost:8000",
			TimeoutMS:         30000,
			GenerateTimeoutMS: 120000,
		},
		Auth: AuthConfig{
			DemoMode:      true,
			CredentialKey: DefaultCredentialKey,
		},
		Notify: NotifyConfig{ToastDurationMS: 5000},
		UI:     UIConfig{Mode: UIModeAuto},
		Storage: StorageConfig{
			BaseDir: "~/.listingcrew",
			Backend: BackendSQLite,
		},
	}
}

// Load 按优先级合并配置：默认值 → 全局配置 → 项目配置 → .env → 环境变量
// Load merges config in order: defaults, global file, project file, .env, environment
func Load(path string) (Config, error) {
	cfg := Default()

	for _, globalPath := range globalConfigPaths() {
		if err := mergeFromFile(&cfg, globalPath); err != nil {
			return Config{}, err
		}
	}

	resolvedPath := strings.TrimSpace(path)
	if envPath := strings.TrimSpace(os.Getenv("LISTINGCREW_CONFIG")); envPath != "" && resolvedPath == "" {
		resolvedPath = envPath
	}
	if resolvedPath == "" {
		resolvedPath = findProjectConfigPath()
	}
	if err := mergeFromFile(&cfg, resolvedPath); err != nil {
		return Config{}, err
	}

	if err := loadDotEnv(".env"); err != nil {
		return Config{}, err
	}
	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := normalize(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// DBPath SQLite 数据库路径
// DBPath is the SQLite credential database path
func (c Config) DBPath() string {
	return filepath.Join(c.Storage.BaseDir, "listingcrew.db")
}

// CredentialFile JSON 文件后端路径
// CredentialFile is the JSON file backend path
func (c Config) CredentialFile() string {
	return filepath.Join(c.Storage.BaseDir, "credentials.json")
}

func globalConfigPaths() []string {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}
	return []string{filepath.Join(home, ".listingcrew", "config.json")}
}

func findProjectConfigPath() string {
	candidates := []string{
		"listingcrew.config.json",
		".listingcrew/config.json",
	}
	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			return c
		}
	}
	return ""
}

// loadDotEnv 读取 .env；已存在的环境变量优先
// loadDotEnv reads a .env file without overriding variables already set
func loadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

func mergeFromFile(cfg *Config, path string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil
	}

	resolved, err := expandPath(path)
	if err != nil {
		return fmt.Errorf("expand config path %q: %w", path, err)
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read config %q: %w", resolved, err)
	}

	cleaned := stripJSONComments(data)
	var fileCfg fileConfig
	if err := json.Unmarshal(cleaned, &fileCfg); err != nil {
		return fmt.Errorf("parse config %q: %w", resolved, err)
	}
	applyFileConfig(cfg, fileCfg)
	return nil
}

func applyFileConfig(cfg *Config, fc fileConfig) {
	if fc.API != nil {
		cfg.API = mergeAPI(cfg.API, *fc.API)
	}
	if fc.Auth != nil {
		if fc.Auth.DemoMode != nil {
			cfg.Auth.DemoMode = *fc.Auth.DemoMode
		}
		if fc.Auth.CredentialKey != nil && strings.TrimSpace(*fc.Auth.CredentialKey) != "" {
			cfg.Auth.CredentialKey = *fc.Auth.CredentialKey
		}
	}
	if fc.Notify != nil && fc.Notify.ToastDurationMS > 0 {
		cfg.Notify.ToastDurationMS = fc.Notify.ToastDurationMS
	}
	if fc.UI != nil {
		cfg.UI = mergeUI(cfg.UI, *fc.UI)
	}
	if fc.Storage != nil {
		cfg.Storage = mergeStorage(cfg.Storage, *fc.Storage)
	}
}

// mergeAPI generate_timeout_ms 为 0 时关闭生成超时
// mergeAPI treats an explicit generate_timeout_ms of 0 as "no generation timeout"
func mergeAPI(base APIConfig, override fileAPIConfig) APIConfig {
	if strings.TrimSpace(override.BaseURL) != "" {
		base.BaseURL = override.BaseURL
	}
	if override.TimeoutMS > 0 {
		base.TimeoutMS = override.TimeoutMS
	}
	if override.GenerateTimeoutMS != nil && *override.GenerateTimeoutMS >= 0 {
		base.GenerateTimeoutMS = *override.GenerateTimeoutMS
	}
	return base
}

func mergeUI(base UIConfig, override UIConfig) UIConfig {
	if strings.TrimSpace(override.Mode) != "" {
		base.Mode = override.Mode
	}
	if strings.TrimSpace(override.Locale) != "" {
		base.Locale = override.Locale
	}
	return base
}

func mergeStorage(base StorageConfig, override StorageConfig) StorageConfig {
	if strings.TrimSpace(override.BaseDir) != "" {
		base.BaseDir = override.BaseDir
	}
	if strings.TrimSpace(override.Backend) != "" {
		base.Backend = override.Backend
	}
	if strings.TrimSpace(override.LogFile) != "" {
		base.LogFile = override.LogFile
	}
	return base
}

func normalize(cfg *Config) error {
	def := Default()

	cfg.API.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.API.BaseURL), "/")
	if cfg.API.BaseURL == "" {
		cfg.API.BaseURL = def.API.BaseURL
	}
	if cfg.API.TimeoutMS <= 0 {
		cfg.API.TimeoutMS = def.API.TimeoutMS
	}
	if cfg.API.GenerateTimeoutMS < 0 {
		cfg.API.GenerateTimeoutMS = 0
	}

	cfg.Auth.CredentialKey = strings.TrimSpace(cfg.Auth.CredentialKey)
	if cfg.Auth.CredentialKey == "" {
		cfg.Auth.CredentialKey = DefaultCredentialKey
	}
	if cfg.Notify.ToastDurationMS <= 0 {
		cfg.Notify.ToastDurationMS = def.Notify.ToastDurationMS
	}

	cfg.UI.Mode = strings.ToLower(strings.TrimSpace(cfg.UI.Mode))
	switch cfg.UI.Mode {
	case "":
		cfg.UI.Mode = UIModeAuto
	case UIModeAuto, UIModeTUI, UIModeREPL:
	default:
		return fmt.Errorf("invalid ui.mode %q (want auto, tui or repl)", cfg.UI.Mode)
	}
	cfg.UI.Locale = strings.TrimSpace(cfg.UI.Locale)

	if strings.TrimSpace(cfg.Storage.BaseDir) == "" {
		cfg.Storage.BaseDir = def.Storage.BaseDir
	}
	storageDir, err := expandPath(cfg.Storage.BaseDir)
	if err != nil {
		return err
	}
	cfg.Storage.BaseDir = storageDir

	cfg.Storage.Backend = strings.ToLower(strings.TrimSpace(cfg.Storage.Backend))
	switch cfg.Storage.Backend {
	case "":
		cfg.Storage.Backend = BackendSQLite
	case BackendSQLite, BackendFile:
	default:
		return fmt.Errorf("invalid storage.backend %q (want sqlite or file)", cfg.Storage.Backend)
	}

	if strings.TrimSpace(cfg.Storage.LogFile) == "" {
		cfg.Storage.LogFile = filepath.Join(cfg.Storage.BaseDir, "logs", "listingcrew.log")
	} else {
		logFile, err := expandPath(cfg.Storage.LogFile)
		if err != nil {
			return err
		}
		cfg.Storage.LogFile = logFile
	}
	return nil
}

func expandPath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", nil
	}
	if strings.HasPrefix(path, "~/") || path == "~" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		if path == "~" {
			path = home
		} else {
			path = filepath.Join(home, strings.TrimPrefix(path, "~/"))
		}
	}
	return filepath.Abs(path)
}

func stripJSONComments(data []byte) []byte {
	const (
		stateNormal = iota
		stateString
		stateLineComment
		stateBlockComment
	)

	state := stateNormal
	escaped := false
	out := bytes.Buffer{}

	for i := 0; i < len(data); i++ {
		c := data[i]
		next := byte(0)
		if i+1 < len(data) {
			next = data[i+1]
		}

		switch state {
		case stateNormal:
			if c == '"' {
				state = stateString
				out.WriteByte(c)
				continue
			}
			if c == '/' && next == '/' {
				state = stateLineComment
				i++
				continue
			}
			if c == '/' && next == '*' {
				state = stateBlockComment
				i++
				continue
			}
			out.WriteByte(c)
		case stateString:
			out.WriteByte(c)
			if escaped {
				escaped = false
				continue
			}
			if c == '\\' {
				escaped = true
				continue
			}
			if c == '"' {
				state = stateNormal
			}
		case stateLineComment:
			if c == '\n' {
				state = stateNormal
				out.WriteByte(c)
			}
		case stateBlockComment:
			if c == '*' && next == '/' {
				state = stateNormal
				i++
			}
		}
	}

	return out.Bytes()
}
