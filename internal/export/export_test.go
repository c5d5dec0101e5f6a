// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jeranaias/redraft/internal/model"
)

func testConversation() *model.Conversation {
	conv := model.NewConversation()
	conv.Title = "Weekend plans"
	conv.AddUserMessage("lets meet at 5pm")
	conv.AddAssistantMessage("Got it!")
	conv.AddUserMessage("actually 6pm works better")
	return conv
}

func TestMarkdownExportContainsMessages(t *testing.T) {
	conv := testConversation()

	out, err := NewMarkdownExporter(nil).Export(conv)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	md := string(out)

	for _, want := range []string{
		"# Weekend plans",
		"[User]",
		"[Assistant]",
		"lets meet at 5pm",
		"Got it!",
		"generator: redraft",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("Markdown missing %q", want)
		}
	}
}

func TestMarkdownExportShowsRevision(t *testing.T) {
	conv := testConversation()
	first := conv.Messages[0]
	conv.ReplaceMessageContent(first.ID, "let's meet at 6pm")

	out, err := NewMarkdownExporter(nil).Export(conv)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	md := string(out)

	if !strings.Contains(md, "let's meet at 6pm") {
		t.Error("Revised content missing")
	}
	if !strings.Contains(md, "Edited via accepted correction") {
		t.Error("Edit marker missing")
	}
	if !strings.Contains(md, "> Originally:") || !strings.Contains(md, "lets meet at 5pm") {
		t.Error("Original text missing from revision block")
	}
	if !strings.Contains(md, "revised: 1") {
		t.Error("Frontmatter should count revised messages")
	}
}

func TestMarkdownExportWithoutOriginals(t *testing.T) {
	conv := testConversation()
	conv.ReplaceMessageContent(conv.Messages[0].ID, "let's meet at 6pm")

	opts := DefaultOptions()
	opts.IncludeOriginals = false

	out, err := NewMarkdownExporter(opts).Export(conv)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if strings.Contains(string(out), "> Originally:") {
		t.Error("Originals should be omitted when IncludeOriginals is false")
	}
}

func TestMarkdownExportRejectsEmpty(t *testing.T) {
	if _, err := NewMarkdownExporter(nil).Export(nil); err == nil {
		t.Error("Expected error for nil conversation")
	}
	if _, err := NewMarkdownExporter(nil).Export(model.NewConversation()); err == nil {
		t.Error("Expected error for empty conversation")
	}
}

func TestJSONExportRoundTrips(t *testing.T) {
	conv := testConversation()
	conv.ReplaceMessageContent(conv.Messages[0].ID, "let's meet at 6pm")

	out, err := NewJSONExporter(nil).Export(conv)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	var decoded model.Conversation
	if err := json.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("Exported JSON does not parse: %v", err)
	}
	if decoded.ID != conv.ID || len(decoded.Messages) != len(conv.Messages) {
		t.Error("Round-tripped conversation lost data")
	}
	if !decoded.Messages[0].Revised || decoded.Messages[0].Original != "lets meet at 5pm" {
		t.Error("Revision state lost in JSON export")
	}
}

func TestToFileWritesOutput(t *testing.T) {
	conv := testConversation()

	opts := DefaultOptions()
	opts.OutputDir = t.TempDir()

	path, err := ToMarkdownFile(conv, opts)
	if err != nil {
		t.Fatalf("ToMarkdownFile failed: %v", err)
	}
	if filepath.Ext(path) != ".md" {
		t.Errorf("Output extension = %q, want .md", filepath.Ext(path))
	}
	if !strings.Contains(filepath.Base(path), "Weekend_plans") {
		t.Errorf("Filename %q should contain the sanitized title", filepath.Base(path))
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"hello world", "hello_world"},
		{"a/b:c*d", "a-b-c-d"},
		{"", "conversation"},
		{"tabs\tand\nnewlines", "tabs_and_newlines"},
	}
	for _, tt := range tests {
		if got := sanitizeFilename(tt.input); got != tt.want {
			t.Errorf("sanitizeFilename(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
