// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides unified configuration loading and management for redraft.
//
// Supports both TOML and JSON configuration formats, with sensible defaults,
// environment variable overrides, and validation.
//
// Configuration file locations (in order of precedence):
//   - ~/.redraft/config.toml
//   - ~/.redraft/config.json
//   - Built-in defaults
//
// A fsnotify-based watcher (see watch.go) re-reads the file when it changes
// so the quiet period and UI settings apply without a restart.
package config
