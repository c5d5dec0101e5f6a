// redraft - a terminal chat demo with live AI correction suggestions.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/redraft/internal/cli"
	"github.com/jeranaias/redraft/internal/config"
	"github.com/jeranaias/redraft/internal/correction"
	"github.com/jeranaias/redraft/internal/ollama"
	"github.com/jeranaias/redraft/internal/storage"
	"github.com/jeranaias/redraft/internal/ui/chat"
	"github.com/jeranaias/redraft/internal/ui/styles"
)

// Version information (set at build time)
var Version = "0.1.0"

func main() {
	cli.Version = Version

	if handled, code := cli.Execute(os.Args[1:]); handled {
		os.Exit(code)
	}

	if err := runTUI(); err != nil {
		fmt.Fprintf(os.Stderr, "redraft: %v\n", err)
		os.Exit(1)
	}
}

// runTUI wires the collaborators together and runs the Bubble Tea program.
func runTUI() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	config.SetGlobal(cfg)

	theme := styles.NewTheme()

	clientConfig := ollama.DefaultConfig()
	clientConfig.BaseURL = cfg.Local.OllamaURL
	clientConfig.Model = cfg.Local.OllamaModel
	client := ollama.NewClientWithConfig(clientConfig)

	checker := correction.NewChecker(client, correction.Config{
		QuietPeriod: time.Duration(cfg.Correction.QuietMs) * time.Millisecond,
		MinChars:    cfg.Correction.MinChars,
		RatePerSec:  cfg.Correction.RatePerSec,
	})

	var store *storage.HistoryStore
	if cfg.History.Enabled {
		path, err := cfg.HistoryPath()
		if err == nil {
			store, err = storage.Open(path)
			if err != nil {
				// History is a convenience; the chat still works without it.
				fmt.Fprintf(os.Stderr, "redraft: history disabled: %v\n", err)
				store = nil
			} else {
				store.MaxConversations = cfg.History.MaxConversations
				defer store.Close()
			}
		}
	}

	chatModel := chat.New(chat.Options{
		Theme:   theme,
		Config:  cfg,
		Client:  client,
		Checker: checker,
		Store:   store,
	})

	program := tea.NewProgram(chatModel, tea.WithAltScreen())

	// Live config reload: forward watcher updates into the update loop.
	if watcher := startConfigWatcher(); watcher != nil {
		defer watcher.Close()
		go func() {
			for updated := range watcher.Updates() {
				program.Send(chat.ConfigReloadedMsg{Config: updated})
			}
		}()
	}

	_, err = program.Run()
	return err
}

// startConfigWatcher begins watching the config file. A missing file just
// means no live reload.
func startConfigWatcher() *config.Watcher {
	path, err := config.ConfigPathTOML()
	if err != nil {
		return nil
	}
	if _, err := os.Stat(path); err != nil {
		return nil
	}

	watcher, err := config.NewWatcher(path)
	if err != nil {
		return nil
	}
	if err := watcher.Watch(); err != nil {
		watcher.Close()
		return nil
	}
	return watcher
}
