// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// export_cmd.go - "redraft export" writes saved conversations to disk.
//
// Command: export
//
// Examples:
//
//	redraft export                    Export the latest conversation as Markdown
//	redraft export --list             List saved conversations
//	redraft export --id conv_abc      Export a specific conversation
//	redraft export --format json      Export as JSON instead of Markdown
//	redraft export --out ./exports    Write into a directory
//	redraft export --no-originals     Omit pre-revision text of edited messages
package cli

import (
	"fmt"

	"github.com/jeranaias/redraft/internal/config"
	"github.com/jeranaias/redraft/internal/export"
	"github.com/jeranaias/redraft/internal/model"
	"github.com/jeranaias/redraft/internal/storage"
	"github.com/jeranaias/redraft/internal/util"
)

// HandleExportCommand handles the "export" command.
func HandleExportCommand(parser *ArgParser) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if !cfg.History.Enabled {
		return fmt.Errorf("history is disabled; nothing to export")
	}

	path, err := cfg.HistoryPath()
	if err != nil {
		return err
	}
	store, err := storage.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open history: %w", err)
	}
	defer store.Close()

	if parser.BoolFlag("list") {
		return listConversations(store)
	}

	var conv *model.Conversation
	if id := parser.Flag("id"); id != "" {
		conv, err = store.Load(id)
	} else {
		conv, err = store.LoadLatest()
	}
	if err != nil {
		return fmt.Errorf("failed to load conversation: %w", err)
	}
	if conv == nil || conv.IsEmpty() {
		return fmt.Errorf("no saved conversations to export")
	}

	opts := export.DefaultOptions()
	opts.OutputDir = parser.FlagOrDefault("out", ".")
	opts.IncludeTimestamps = !parser.BoolFlag("no-timestamps")
	opts.IncludeOriginals = !parser.BoolFlag("no-originals")

	var outPath string
	switch format := parser.FlagOrDefault("format", "md"); format {
	case "md", "markdown":
		outPath, err = export.ToMarkdownFile(conv, opts)
	case "json":
		outPath, err = export.ToJSONFile(conv, opts)
	default:
		return fmt.Errorf("unknown format %q (want md or json)", format)
	}
	if err != nil {
		return err
	}

	fmt.Printf("Exported %s\n", outPath)
	return nil
}

// listConversations prints saved conversation metadata, newest first.
func listConversations(store *storage.HistoryStore) error {
	metas, err := store.ListRecent(20)
	if err != nil {
		return err
	}
	if len(metas) == 0 {
		fmt.Println("No saved conversations.")
		return nil
	}

	for _, meta := range metas {
		fmt.Printf("%s  %-40s  %3d messages  %s\n",
			meta.ID,
			util.TruncateRunes(meta.Title, 40),
			meta.MessageCount,
			meta.UpdatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}
