// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// help.go - "redraft help" renders usage as markdown on TTYs.
package cli

import (
	"fmt"

	"github.com/charmbracelet/glamour"
)

const usageMarkdown = `# redraft

A terminal chat playground with live AI correction suggestions. While you
type, redraft asks a local Ollama model whether your text corrects the
previous message and offers to rewrite it.

## Usage

    redraft [command] [flags]

Running with no command starts the full-screen TUI.

## Commands

| Command   | Description                                  |
|-----------|----------------------------------------------|
| (none)    | Start the full-screen chat TUI               |
| chat      | Line-mode REPL for plain terminals           |
| config    | Print the resolved configuration             |
| export    | Export a saved conversation (md or json)     |
| version   | Print the version                            |
| help      | Show this help                               |

## TUI keys

| Key    | Action                       |
|--------|------------------------------|
| Enter  | Send message                 |
| Tab    | Accept correction suggestion |
| Esc    | Dismiss suggestion           |
| Ctrl+T | Toggle corrections           |
| Ctrl+L | Clear conversation           |
| Ctrl+C | Quit                         |

## Configuration

Settings live in ` + "`~/.redraft/config.toml`" + ` and reload live while the
TUI runs. Environment overrides: REDRAFT_OLLAMA_URL, REDRAFT_OLLAMA_MODEL,
REDRAFT_QUIET_MS, REDRAFT_CORRECTIONS, REDRAFT_HISTORY_PATH.

Requires a running Ollama instance: ` + "`ollama serve`" + `.
`

// HandleHelpCommand prints usage, rendered with glamour on a TTY and as
// plain markdown otherwise.
func HandleHelpCommand() error {
	if !IsStdoutTTY() {
		fmt.Print(usageMarkdown)
		return nil
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(GetTerminalWidth()),
	)
	if err != nil {
		fmt.Print(usageMarkdown)
		return nil
	}

	out, err := renderer.Render(usageMarkdown)
	if err != nil {
		fmt.Print(usageMarkdown)
		return nil
	}
	fmt.Print(out)
	return nil
}
