package bootstrap

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"listingcrew/internal/api"
	"listingcrew/internal/app"
	"listingcrew/internal/config"
	"listingcrew/internal/content"
	"listingcrew/internal/i18n"
	"listingcrew/internal/notify"
	"listingcrew/internal/storage"
)

// BuildResult 与 UI 无关的构建结果，供 main 选择 TUI 或 REPL
// BuildResult is UI-agnostic; main hands it to the TUI or the REPL
type BuildResult struct {
	App      *app.App
	Store    storage.Store
	Logger   *log.Logger
	Messages *i18n.I18n
	BaseURL  string
	LogPath  string

	logFile io.Closer
}

// Overrides 测试或嵌入时替换系统依赖
// Overrides replaces system dependencies for tests and embedding
type Overrides struct {
	Clipboard content.Clipboard
	Clock     notify.Clock
	Tokenizer *content.Tokenizer
}

// Build 按顺序初始化日志、存储、客户端与服务，并恢复持久化会话；调用方负责 defer result.Close()
// Build initializes logging, storage, client and services in order and restores a persisted
// session; the caller must defer result.Close()
func Build(cfg config.Config, ov Overrides) (*BuildResult, error) {
	logger, logFile, err := openLogger(cfg.Storage.LogFile)
	if err != nil {
		return nil, err
	}

	store, err := openStore(cfg, logger)
	if err != nil {
		_ = logFile.Close()
		return nil, err
	}

	msgs := i18n.New(cfg.UI.Locale)
	client := api.NewClient(cfg.API)

	a := app.New(app.Deps{
		Config:    cfg,
		Backend:   client,
		Store:     store,
		Clipboard: ov.Clipboard,
		Clock:     ov.Clock,
		Messages:  msgs,
		Logger:    logger,
		Tokenizer: ov.Tokenizer,
	})
	a.Bootstrap()
	logger.Printf("started: api=%s backend=%s demo_mode=%v locale=%s",
		client.BaseURL(), cfg.Storage.Backend, cfg.Auth.DemoMode, msgs.Locale())

	return &BuildResult{
		App:      a,
		Store:    store,
		Logger:   logger,
		Messages: msgs,
		BaseURL:  client.BaseURL(),
		LogPath:  cfg.Storage.LogFile,
		logFile:  logFile,
	}, nil
}

// Close 关闭存储与日志文件
// Close releases the store and the log file
func (r *BuildResult) Close() error {
	err := r.App.Close()
	if r.logFile != nil {
		if cerr := r.logFile.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

func openLogger(path string) (*log.Logger, io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return log.New(f, "listingcrew ", log.LstdFlags|log.Lmicroseconds), f, nil
}

func openStore(cfg config.Config, logger *log.Logger) (storage.Store, error) {
	switch cfg.Storage.Backend {
	case config.BackendFile:
		store, err := storage.NewFileStore(cfg.CredentialFile())
		if err != nil {
			return nil, fmt.Errorf("init storage: %w", err)
		}
		return store, nil
	default:
		store, err := storage.NewSQLiteStore(cfg.DBPath())
		if err != nil {
			return nil, fmt.Errorf("init storage: %w", err)
		}
		if migrated, migErr := storage.MigrateFromJSON(cfg.CredentialFile(), store); migErr != nil {
			logger.Printf("migrate legacy credentials: %v", migErr)
		} else if migrated > 0 {
			logger.Printf("migrated %d legacy credential entries into %s", migrated, store.Path())
		}
		return store, nil
	}
}
