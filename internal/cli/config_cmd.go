// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// config_cmd.go - "redraft config" prints the resolved configuration.
//
// Command: config
//
// Examples:
//
//	redraft config           Show resolved config (file + env overrides)
//	redraft config --json    Machine-readable output
//	redraft config --path    Print the config file location
package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jeranaias/redraft/internal/config"
)

// HandleConfigCommand prints the resolved configuration.
func HandleConfigCommand(parser *ArgParser) error {
	if parser.BoolFlag("path") {
		path, err := config.ConfigPathTOML()
		if err != nil {
			return err
		}
		fmt.Println(path)
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if parser.BoolFlag("json") {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(cfg)
	}

	fmt.Println("redraft configuration (resolved)")
	fmt.Println()
	fmt.Println("[local]")
	fmt.Printf("  ollama_url    = %s\n", cfg.Local.OllamaURL)
	fmt.Printf("  ollama_model  = %s\n", cfg.Local.OllamaModel)
	fmt.Println()
	fmt.Println("[correction]")
	fmt.Printf("  enabled       = %v\n", cfg.Correction.Enabled)
	fmt.Printf("  quiet_ms      = %d\n", cfg.Correction.QuietMs)
	fmt.Printf("  min_chars     = %d\n", cfg.Correction.MinChars)
	fmt.Printf("  rate_per_sec  = %g\n", cfg.Correction.RatePerSec)
	fmt.Println()
	fmt.Println("[ui]")
	fmt.Printf("  animations      = %v\n", cfg.UI.Animations)
	fmt.Printf("  show_timestamps = %v\n", cfg.UI.ShowTimestamps)
	fmt.Printf("  compact_mode    = %v\n", cfg.UI.CompactMode)
	fmt.Println()
	fmt.Println("[history]")
	fmt.Printf("  enabled           = %v\n", cfg.History.Enabled)
	historyPath, err := cfg.HistoryPath()
	if err == nil {
		fmt.Printf("  path              = %s\n", historyPath)
	}
	fmt.Printf("  max_conversations = %d\n", cfg.History.MaxConversations)
	return nil
}
