package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/caarlos0/env/v11"
)

// envOverrides 环境变量覆盖项；空值表示未设置
// envOverrides holds environment overrides; zero values mean "not set"
type envOverrides struct {
	BaseURL           string `env:"LISTINGCREW_API_BASE_URL"`
	TimeoutMS         int    `env:"LISTINGCREW_API_TIMEOUT_MS"`
	GenerateTimeoutMS *int   `env:"LISTINGCREW_GENERATE_TIMEOUT_MS"`
	DemoMode          string `env:"LISTINGCREW_DEMO_MODE"`
	UIMode            string `env:"LISTINGCREW_UI"`
	Locale            string `env:"LISTINGCREW_LANG"`
	Home              string `env:"LISTINGCREW_HOME"`
	StorageBackend    string `env:"LISTINGCREW_STORAGE_BACKEND"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	var ov envOverrides
	if err := ParseEnv(&ov); err != nil {
		return err
	}
	if v := strings.TrimSpace(ov.BaseURL); v != "" {
		cfg.API.BaseURL = v
	}
	if ov.TimeoutMS < 0 {
		return fmt.Errorf("invalid LISTINGCREW_API_TIMEOUT_MS: %d", ov.TimeoutMS)
	}
	if ov.TimeoutMS > 0 {
		cfg.API.TimeoutMS = ov.TimeoutMS
	}
	if ov.GenerateTimeoutMS != nil {
		if *ov.GenerateTimeoutMS < 0 {
			return fmt.Errorf("invalid LISTINGCREW_GENERATE_TIMEOUT_MS: %d", *ov.GenerateTimeoutMS)
		}
		cfg.API.GenerateTimeoutMS = *ov.GenerateTimeoutMS
	}
	if v := strings.TrimSpace(ov.DemoMode); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid LISTINGCREW_DEMO_MODE: %q", v)
		}
		cfg.Auth.DemoMode = b
	}
	if v := strings.TrimSpace(ov.UIMode); v != "" {
		cfg.UI.Mode = v
	}
	if v := strings.TrimSpace(ov.Locale); v != "" {
		cfg.UI.Locale = v
	}
	if v := strings.TrimSpace(ov.Home); v != "" {
		cfg.Storage.BaseDir = v
	}
	if v := strings.TrimSpace(ov.StorageBackend); v != "" {
		cfg.Storage.Backend = v
	}
	return nil
}
