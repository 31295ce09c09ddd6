package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"listingcrew/internal/bootstrap"
	"listingcrew/internal/config"
	"listingcrew/internal/i18n"
	"listingcrew/internal/repl"
	"listingcrew/internal/tui"

	"golang.org/x/term"
)

func main() {
	var (
		configPath  string
		uiMode      string
		lang        string
		initProject bool
	)
	flag.StringVar(&configPath, "config", "", "Path to config JSON/JSONC")
	flag.StringVar(&uiMode, "ui", "", "User interface: auto, tui or repl")
	flag.StringVar(&lang, "lang", "", "UI language: en or zh-CN")
	flag.BoolVar(&initProject, "init", false, "Write .listingcrew/config.json in the current directory and exit")
	flag.Parse()

	cwd, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "resolve cwd failed: %v\n", err)
		os.Exit(1)
	}

	if initProject {
		path, err := config.InitProjectConfigScaffold(cwd)
		if err != nil {
			fmt.Fprintf(os.Stderr, "init project config failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("project config: %s\n", path)
		return
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config failed: %v\n", err)
		os.Exit(1)
	}
	if err := applyFlags(&cfg, uiMode, lang); err != nil {
		fmt.Fprintf(os.Stderr, "invalid flags: %v\n", err)
		os.Exit(2)
	}

	result, err := bootstrap.Build(cfg, bootstrap.Overrides{})
	if err != nil {
		fmt.Fprintf(os.Stderr, "startup failed: %v\n", err)
		os.Exit(1)
	}
	defer result.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()

	tty := term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
	if resolveUIMode(cfg.UI.Mode, tty) == config.UIModeTUI {
		if err := tui.Run(ctx, result.App); err != nil {
			result.Logger.Printf("tui exited: %v", err)
			fmt.Fprintf(os.Stderr, "tui failed: %v\n", err)
			os.Exit(1)
		}
		return
	}

	inputReader, inputErr := repl.NewLineInput(filepath.Join(cfg.Storage.BaseDir, "repl.history"))
	if inputErr != nil {
		fmt.Fprintf(os.Stderr, "line editor unavailable, fallback to basic input: %v\n", inputErr)
	}
	defer inputReader.Close()

	loop := repl.NewLoop(result, inputReader, os.Stdout)
	loop.ProjectDir = cwd
	if err := loop.Run(ctx); err != nil {
		result.Logger.Printf("repl exited: %v", err)
		fmt.Fprintf(os.Stderr, "\n%v\n", err)
	}
}

// applyFlags 命令行参数覆盖配置
// applyFlags lets command-line flags override the loaded config
func applyFlags(cfg *config.Config, uiMode, lang string) error {
	if v := strings.TrimSpace(uiMode); v != "" {
		switch v {
		case config.UIModeAuto, config.UIModeTUI, config.UIModeREPL:
			cfg.UI.Mode = v
		default:
			return fmt.Errorf("unknown ui mode %q", v)
		}
	}
	if v := strings.TrimSpace(lang); v != "" {
		if !i18n.Supported(v) {
			return fmt.Errorf("unsupported language %q", v)
		}
		cfg.UI.Locale = v
	}
	return nil
}

// resolveUIMode auto 模式下有终端用 TUI，否则 REPL
// resolveUIMode picks the TUI for auto mode on a terminal and the REPL otherwise
func resolveUIMode(mode string, tty bool) string {
	switch mode {
	case config.UIModeTUI:
		if tty {
			return config.UIModeTUI
		}
		return config.UIModeREPL
	case config.UIModeREPL:
		return config.UIModeREPL
	default:
		if tty {
			return config.UIModeTUI
		}
		return config.UIModeREPL
	}
}
