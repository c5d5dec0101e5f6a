// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view for the redraft TUI.
package chat

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/redraft/internal/correction"
	"github.com/jeranaias/redraft/internal/model"
	"github.com/jeranaias/redraft/internal/ollama"
	"github.com/jeranaias/redraft/internal/storage"
	"github.com/jeranaias/redraft/internal/ui/styles"
)

// =============================================================================
// CORRECTION COMMANDS
// =============================================================================

// correctionTickCmd schedules the quiet-period timer for a pending check.
// The ticket rides along; by the time the tick fires a newer keystroke may
// have made it stale, which the update loop detects via the generation.
func correctionTickCmd(p correction.Pending) tea.Cmd {
	return tea.Tick(p.Delay, func(time.Time) tea.Msg {
		return CorrectionTickMsg{Pending: p}
	})
}

// runCheckCmd issues the correction request in a command goroutine.
func runCheckCmd(checker *correction.Checker, p correction.Pending) tea.Cmd {
	return func() tea.Msg {
		sug, err := checker.Check(p)
		return CorrectionResultMsg{Gen: p.Gen, Suggestion: sug, Err: err}
	}
}

// =============================================================================
// OLLAMA COMMANDS
// =============================================================================

// CheckOllamaCmd probes whether the Ollama service is reachable.
func CheckOllamaCmd(client *ollama.Client) tea.Cmd {
	return func() tea.Msg {
		if client == nil {
			return OllamaStatusMsg{Running: false, Err: ollama.ErrNotRunning}
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		err := client.CheckRunning(ctx)
		return OllamaStatusMsg{Running: err == nil, Err: err}
	}
}

// =============================================================================
// ASSISTANT REPLY
// =============================================================================

// replyDelay simulates the assistant composing a response. Long enough for
// the thinking spinner to be visible, short enough not to drag the demo.
const replyDelay = 900 * time.Millisecond

// cannedReplies cycles acknowledgments for the demo conversation. The
// interesting AI work happens in the correction pipeline, not here.
var cannedReplies = []string{
	"Got it!",
	"Sounds good to me.",
	"Noted. Anything else?",
	"Okay, I'm with you so far.",
	"Makes sense.",
}

// assistantReplyCmd delivers a canned reply after a short delay. The context
// comes from the model's cancelManager so clearing the conversation or
// quitting abandons the reply.
func assistantReplyCmd(ctx context.Context, turn int) tea.Cmd {
	return func() tea.Msg {
		select {
		case <-ctx.Done():
			return AssistantReplyMsg{Err: ctx.Err()}
		case <-time.After(replyDelay):
		}
		return AssistantReplyMsg{Content: cannedReplies[turn%len(cannedReplies)]}
	}
}

// =============================================================================
// HISTORY COMMANDS
// =============================================================================

// saveHistoryCmd persists the conversation snapshot off the update loop.
func saveHistoryCmd(store *storage.HistoryStore, conv *model.Conversation) tea.Cmd {
	if store == nil {
		return nil
	}
	// Snapshot messages so the goroutine does not race later edits.
	snapshot := &model.Conversation{
		ID:        conv.ID,
		Title:     conv.Title,
		CreatedAt: conv.CreatedAt,
		UpdatedAt: conv.UpdatedAt,
	}
	for _, msg := range conv.Messages {
		copied := *msg
		snapshot.Messages = append(snapshot.Messages, &copied)
	}
	return func() tea.Msg {
		return HistorySavedMsg{Err: store.Save(snapshot)}
	}
}

// =============================================================================
// ANIMATION COMMANDS
// =============================================================================

// animationTickCmd schedules the next spring frame.
func animationTickCmd() tea.Cmd {
	return tea.Tick(styles.FrameInterval, func(t time.Time) tea.Msg {
		return AnimationTickMsg{Time: t}
	})
}
