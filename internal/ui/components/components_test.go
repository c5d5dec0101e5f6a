// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for the redraft TUI.
package components

import (
	"strings"
	"testing"
	"time"

	"github.com/jeranaias/redraft/internal/model"
	"github.com/jeranaias/redraft/internal/ui/styles"
)

func testTheme() *styles.Theme {
	return styles.NewTheme()
}

// =============================================================================
// WORD WRAP
// =============================================================================

func TestWordWrap(t *testing.T) {
	tests := []struct {
		name  string
		input string
		width int
		want  string
	}{
		{"fits on one line", "hello world", 20, "hello world"},
		{"wraps at width", "hello world again", 11, "hello world\nagain"},
		{"zero width passthrough", "hello", 0, "hello"},
		{"preserves newlines", "one\ntwo", 20, "one\ntwo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := wordWrap(tt.input, tt.width); got != tt.want {
				t.Errorf("wordWrap(%q, %d) = %q, want %q", tt.input, tt.width, got, tt.want)
			}
		})
	}
}

func TestMaxLineWidth(t *testing.T) {
	if got := maxLineWidth("ab\nabcd\nc"); got != 4 {
		t.Errorf("maxLineWidth = %d, want 4", got)
	}
}

// =============================================================================
// MESSAGE BUBBLES
// =============================================================================

func TestMessageBubbleRendersContent(t *testing.T) {
	msg := &model.Message{
		Role:      model.RoleUser,
		Content:   "hello there",
		Timestamp: time.Now(),
	}
	bubble := NewMessageBubble(msg, testTheme())
	bubble.SetWidth(60)

	view := bubble.View()
	if !strings.Contains(view, "hello there") {
		t.Errorf("Bubble view missing content: %q", view)
	}
	if !strings.Contains(view, "you") {
		t.Errorf("User bubble missing role indicator: %q", view)
	}
}

func TestMessageBubbleRevisedMarker(t *testing.T) {
	msg := &model.Message{
		Role:    model.RoleUser,
		Content: "We are going to the park",
		Revised: true,
	}
	bubble := NewMessageBubble(msg, testTheme())
	bubble.SetWidth(60)

	if !strings.Contains(bubble.View(), "(edited)") {
		t.Error("Revised message should show the edited marker")
	}

	msg.Revised = false
	if strings.Contains(bubble.View(), "(edited)") {
		t.Error("Unrevised message should not show the edited marker")
	}
}

func TestMessageBubbleNilMessage(t *testing.T) {
	bubble := NewMessageBubble(nil, testTheme())
	bubble.SetWidth(60)
	// Must not panic; empty system message renders nothing.
	if got := bubble.View(); got != "" {
		t.Errorf("Nil message rendered %q", got)
	}
}

func TestMessageListEmptyState(t *testing.T) {
	list := NewMessageList(testTheme())
	list.SetWidth(60)

	if !strings.Contains(list.View(), "No messages yet") {
		t.Error("Empty list should render the empty state")
	}
}

func TestMessageListRendersAll(t *testing.T) {
	list := NewMessageList(testTheme())
	list.SetWidth(60)
	list.SetMessages([]*model.Message{
		{ID: "a", Role: model.RoleUser, Content: "first"},
		{ID: "b", Role: model.RoleAssistant, Content: "second"},
	})

	view := list.View()
	for _, want := range []string{"first", "second"} {
		if !strings.Contains(view, want) {
			t.Errorf("List view missing %q", want)
		}
	}
}

// =============================================================================
// SUGGESTION BANNER
// =============================================================================

func TestSuggestionBannerOfferable(t *testing.T) {
	sug := &model.Suggestion{
		MessageID:    "msg_1",
		Original:     "We are going too the park",
		Corrected:    "We are going to the park",
		IsCorrection: true,
	}
	banner := NewSuggestionBanner(sug, testTheme())
	banner.SetWidth(80)

	view := banner.View()
	if !strings.Contains(view, "Did you mean:") {
		t.Errorf("Banner missing title: %q", view)
	}
	if !strings.Contains(view, "We are going to the park") {
		t.Error("Banner missing corrected text")
	}
	if banner.Height() == 0 {
		t.Error("Offerable banner should have nonzero height")
	}
}

func TestSuggestionBannerNotOfferable(t *testing.T) {
	banner := NewSuggestionBanner(nil, testTheme())
	banner.SetWidth(80)
	if got := banner.View(); got != "" {
		t.Errorf("Nil suggestion rendered %q", got)
	}
	if banner.Height() != 0 {
		t.Error("Empty banner should have zero height")
	}

	banner.Suggestion = &model.Suggestion{
		Original:     "fine",
		Corrected:    "fine",
		IsCorrection: false,
	}
	if got := banner.View(); got != "" {
		t.Errorf("Non-correction rendered %q", got)
	}
}

func TestSuggestionBannerEntranceClipsBottom(t *testing.T) {
	sug := &model.Suggestion{
		Original:     "teh park",
		Corrected:    "the park",
		IsCorrection: true,
	}
	banner := NewSuggestionBanner(sug, testTheme())
	banner.SetWidth(80)

	rest := banner.View()
	restLines := strings.Count(rest, "\n") + 1

	banner.EntranceOffset = 2
	sliding := banner.View()
	if strings.Count(sliding, "\n")+1 != restLines {
		t.Errorf("Entrance offset changed total height: %d vs %d",
			strings.Count(sliding, "\n")+1, restLines)
	}
	if !strings.HasPrefix(sliding, "\n\n") {
		t.Error("Sliding banner should be padded from above")
	}
}

// =============================================================================
// SPINNER AND STATUS BAR
// =============================================================================

func TestSpinnerLifecycle(t *testing.T) {
	s := NewSpinner(testTheme())

	if s.View() != "" {
		t.Error("Inactive spinner should render nothing")
	}

	cmd := s.Start()
	if cmd == nil {
		t.Error("Start should return a tick command")
	}
	if !s.IsActive() {
		t.Error("Spinner should be active after Start")
	}
	if !strings.Contains(s.View(), "checking") {
		t.Errorf("Active spinner missing message: %q", s.View())
	}

	s.Stop()
	if s.View() != "" {
		t.Error("Stopped spinner should render nothing")
	}
}

func TestStatusBarView(t *testing.T) {
	bar := NewStatusBar(testTheme())
	bar.SetWidth(120)
	bar.ModelName = "llama3.2:3b"
	bar.CorrectionsOn = true

	view := bar.View()
	for _, want := range []string{"Ready", "llama3.2:3b", "corrections on"} {
		if !strings.Contains(view, want) {
			t.Errorf("Status bar missing %q: %q", want, view)
		}
	}

	bar.Status = StatusError
	bar.LastError = "ollama not running"
	if !strings.Contains(bar.View(), "ollama not running") {
		t.Error("Status bar should surface the last error")
	}
}

func TestStatusBarNarrowWidth(t *testing.T) {
	bar := NewStatusBar(testTheme())
	bar.SetWidth(20)
	// Must not panic on negative gap math.
	if bar.View() == "" {
		t.Error("Narrow status bar should still render something")
	}
}
