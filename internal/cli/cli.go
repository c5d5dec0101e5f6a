// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - Command dispatch for the redraft CLI.
package cli

import (
	"fmt"
	"os"
)

// Version is stamped at build time via -ldflags.
var Version = "dev"

// Execute dispatches a subcommand. It returns handled=false when the
// arguments name no subcommand, in which case the caller starts the TUI.
func Execute(args []string) (handled bool, code int) {
	parser := NewArgParser(args)

	switch parser.Subcommand() {
	case "":
		return false, 0

	case "version":
		HandleVersionCommand(parser)
		return true, 0

	case "config":
		if err := HandleConfigCommand(parser); err != nil {
			fmt.Fprintf(os.Stderr, "redraft: %v\n", err)
			return true, 1
		}
		return true, 0

	case "help", "--help", "-h":
		if err := HandleHelpCommand(); err != nil {
			fmt.Fprintf(os.Stderr, "redraft: %v\n", err)
			return true, 1
		}
		return true, 0

	case "chat":
		if err := HandleChatCommand(parser); err != nil {
			fmt.Fprintf(os.Stderr, "redraft: %v\n", err)
			return true, 1
		}
		return true, 0

	case "export":
		if err := HandleExportCommand(parser); err != nil {
			fmt.Fprintf(os.Stderr, "redraft: %v\n", err)
			return true, 1
		}
		return true, 0

	default:
		fmt.Fprintf(os.Stderr, "redraft: unknown command %q (try: redraft help)\n", parser.Subcommand())
		return true, 2
	}
}

// HandleVersionCommand prints the version.
func HandleVersionCommand(parser *ArgParser) {
	if parser.BoolFlag("short") {
		fmt.Println(Version)
		return
	}
	fmt.Printf("redraft %s\n", Version)
}
