// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements the redraft command line interface.
//
// The default invocation starts the full-screen TUI (handled in main);
// everything else routes through Execute: `version`, `config`, `help`, and
// `chat`, a plain line-mode REPL for terminals where the TUI is unwelcome.
// The REPL shares the correction pipeline with the TUI: the previous message
// is checked against each new line and a "did you mean" offer is printed.
package cli
