// ABOUTME: CLI entry point for dialog-chat
// ABOUTME: Parses flags, loads config and presets, wires the client, starts the TUI

package main

import (
	"fmt"
	"os"

	// termfix must be imported before any package that imports bubbletea.
	// It sets lipgloss.SetHasDarkBackground(true) in its init(), preventing
	// BubbleTea's tea_init.go from sending OSC 10/11 terminal queries whose
	// async responses leak garbage into the input line.
	_ "github.com/mauromedda/dialogstream-go/internal/termfix"

	"github.com/mauromedda/dialogstream-go/internal/config"
	dlog "github.com/mauromedda/dialogstream-go/internal/log"
	"github.com/mauromedda/dialogstream-go/pkg/dialog"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	args := parseFlags()

	if args.version {
		fmt.Printf("dialog-chat %s (%s) built %s\n", version, commit, date)
		os.Exit(0)
	}

	if err := run(args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args cliArgs) error {
	if args.verbose {
		dlog.SetLevel(dlog.LevelDebug)
	}

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting working directory: %w", err)
	}

	cfg, err := config.Load(cwd)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	applyCLIOverrides(cfg, args)
	cfg.ApplyDefaults()

	if !args.verbose && cfg.LogLevel != "" {
		dlog.SetLevel(dlog.ParseLevel(cfg.LogLevel))
	}

	params, err := resolveSampling(args, cfg)
	if err != nil {
		return err
	}

	client := dialog.NewClient(dialog.ClientOptions{
		BaseURL:          cfg.BaseURL,
		CardPath:         cfg.CardPath,
		CardFallbackPath: cfg.CardFallbackPath,
	})
	session := dialog.NewSession(client)

	dlog.Debug("runtime %s against %s (temperature=%v top_p=%v)",
		session.RuntimeID(), cfg.BaseURL, params.Temperature, params.TopP)

	return runApp(appDeps{
		Client:  client,
		Session: session,
		Params:  params,
		Version: version,
	})
}

// applyCLIOverrides maps CLI flags onto the merged settings. Flags win over
// both config files.
func applyCLIOverrides(cfg *config.Settings, args cliArgs) {
	if args.baseURL != "" {
		cfg.BaseURL = args.baseURL
	}
	if args.preset != "" {
		cfg.Preset = args.preset
	}
	if args.temperature >= 0 {
		cfg.Temperature = args.temperature
	}
	if args.topP >= 0 {
		cfg.TopP = args.topP
	}
}

// resolveSampling determines the effective sampling parameters.
// Priority: explicit flag overrides > named preset > config values.
func resolveSampling(args cliArgs, cfg *config.Settings) (dialog.SamplingParams, error) {
	params := dialog.SamplingParams{
		Temperature: cfg.Temperature,
		TopP:        cfg.TopP,
	}

	if cfg.Preset != "" {
		presets, err := config.LoadPresets(config.GlobalPresetsFile())
		if err != nil {
			return dialog.SamplingParams{}, fmt.Errorf("loading presets: %w", err)
		}
		p, ok := presets[cfg.Preset]
		if !ok {
			return dialog.SamplingParams{}, fmt.Errorf("unknown preset %q", cfg.Preset)
		}
		params.Temperature = p.Temperature
		params.TopP = p.TopP
	}

	// Explicit flags beat the preset.
	if args.temperature >= 0 {
		params.Temperature = args.temperature
	}
	if args.topP >= 0 {
		params.TopP = args.topP
	}

	return params, nil
}
