// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"testing"
)

func TestArgParserSubcommand(t *testing.T) {
	parser := NewArgParser([]string{"chat", "--model", "llama3.2:3b"})
	if got := parser.Subcommand(); got != "chat" {
		t.Errorf("Subcommand = %q, want %q", got, "chat")
	}
	if got := parser.Flag("model"); got != "llama3.2:3b" {
		t.Errorf("Flag(model) = %q", got)
	}
}

func TestArgParserFlagForms(t *testing.T) {
	parser := NewArgParser([]string{"config", "--json", "--quiet=false", "--path=~/.redraft/config.toml"})

	if !parser.BoolFlag("json") {
		t.Error("Expected --json to be true")
	}
	if parser.BoolFlag("quiet") {
		t.Error("Expected --quiet=false to be false")
	}
	if got := parser.Flag("path"); got != "~/.redraft/config.toml" {
		t.Errorf("Flag(path) = %q", got)
	}
}

func TestArgParserFlagOrDefault(t *testing.T) {
	parser := NewArgParser([]string{"chat"})
	if got := parser.FlagOrDefault("model", "fallback"); got != "fallback" {
		t.Errorf("FlagOrDefault = %q, want fallback", got)
	}
}

func TestArgParserPositional(t *testing.T) {
	parser := NewArgParser([]string{"chat", "extra"})
	if got := parser.Positional(1); got != "extra" {
		t.Errorf("Positional(1) = %q", got)
	}
	if got := parser.Positional(5); got != "" {
		t.Errorf("Out-of-range positional = %q, want empty", got)
	}
}

func TestArgParserHasFlag(t *testing.T) {
	parser := NewArgParser([]string{"--model", "x", "--json"})
	if !parser.HasFlag("model") || !parser.HasFlag("json") {
		t.Error("HasFlag should find both flag kinds")
	}
	if parser.HasFlag("missing") {
		t.Error("HasFlag found a flag that was never given")
	}
}

func TestExecuteUnknownCommand(t *testing.T) {
	handled, code := Execute([]string{"bogus"})
	if !handled {
		t.Error("Unknown command should be handled (with an error)")
	}
	if code != 2 {
		t.Errorf("Exit code = %d, want 2", code)
	}
}

func TestExecuteNoSubcommand(t *testing.T) {
	handled, _ := Execute(nil)
	if handled {
		t.Error("Empty args should fall through to the TUI")
	}
}
