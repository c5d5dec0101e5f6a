// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view for the redraft TUI.
package chat

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/redraft/internal/config"
	"github.com/jeranaias/redraft/internal/correction"
	"github.com/jeranaias/redraft/internal/model"
	"github.com/jeranaias/redraft/internal/ollama"
)

// stubBackend returns a fixed correction verdict.
type stubBackend struct {
	result *ollama.CorrectionResult
	err    error
}

func (b *stubBackend) CorrectionCheck(ctx context.Context, prev, typed string) (*ollama.CorrectionResult, error) {
	if b.err != nil {
		return nil, b.err
	}
	return b.result, nil
}

func newTestModel(t *testing.T, backend correction.Backend) Model {
	t.Helper()
	cfg := config.Default()
	checker := correction.NewChecker(backend, correction.Config{
		QuietPeriod: 10 * time.Millisecond,
		MinChars:    3,
		RatePerSec:  1000, // Tests never want throttling.
	})
	m := New(Options{Config: cfg, Checker: checker})
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return updated.(Model)
}

func typeRune(t *testing.T, m Model, r rune) Model {
	t.Helper()
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	return updated.(Model)
}

// =============================================================================
// DEBOUNCE BEHAVIOR
// =============================================================================

func TestTypingSupersedesPendingCheck(t *testing.T) {
	m := newTestModel(t, &stubBackend{})
	prev := m.conversation.AddUserMessage("We are going too the park")

	first, ok := m.checker.Observe(prev, "We are")
	if !ok {
		t.Fatal("First observe should produce a ticket")
	}
	second, ok := m.checker.Observe(prev, "We are going")
	if !ok {
		t.Fatal("Second observe should produce a ticket")
	}

	// The first ticket's timer fires after the second keystroke: dead.
	updated, _ := m.Update(CorrectionTickMsg{Pending: first})
	m = updated.(Model)
	if m.checking {
		t.Error("Stale tick must not start a check")
	}

	updated, cmd := m.Update(CorrectionTickMsg{Pending: second})
	m = updated.(Model)
	if !m.checking {
		t.Error("Current tick should start a check")
	}
	if cmd == nil {
		t.Error("Current tick should issue the check command")
	}
}

func TestStaleResultNeverOverwritesSuggestionState(t *testing.T) {
	m := newTestModel(t, &stubBackend{})
	prev := m.conversation.AddUserMessage("We are going too the park")

	old, _ := m.checker.Observe(prev, "We are going to")
	// A newer keystroke supersedes it before the reply lands.
	current, _ := m.checker.Observe(prev, "We are going to the park")

	stale := model.NewSuggestion(prev.ID, prev.Content, "STALE", true)
	updated, _ := m.Update(CorrectionResultMsg{Gen: old.Gen, Suggestion: stale})
	m = updated.(Model)
	if m.suggestion != nil {
		t.Fatal("Stale result must not set the suggestion")
	}

	fresh := model.NewSuggestion(prev.ID, prev.Content, "We are going to the park", true)
	updated, _ = m.Update(CorrectionResultMsg{Gen: current.Gen, Suggestion: fresh})
	m = updated.(Model)
	if m.suggestion == nil || m.suggestion.Corrected != "We are going to the park" {
		t.Fatal("Current result should set the suggestion")
	}

	// And a stale result arriving after a newer one applies changes nothing.
	updated, _ = m.Update(CorrectionResultMsg{Gen: old.Gen, Suggestion: stale})
	m = updated.(Model)
	if m.suggestion.Corrected != "We are going to the park" {
		t.Error("Late stale result overwrote newer suggestion state")
	}
}

func TestEmptyInputClearsSuggestion(t *testing.T) {
	m := newTestModel(t, &stubBackend{})
	prev := m.conversation.AddUserMessage("hello there")
	m.suggestion = model.NewSuggestion(prev.ID, prev.Content, "hello here", true)

	updated, _ := m.observeKeystroke("", nil)
	m = updated.(Model)
	if m.suggestion != nil {
		t.Error("Emptied input should drop the displayed suggestion")
	}
}

func TestNoPreviousMessageIssuesNoTicket(t *testing.T) {
	m := newTestModel(t, &stubBackend{})

	m = typeRune(t, m, 'h')
	m = typeRune(t, m, 'e')
	m = typeRune(t, m, 'y')

	if m.checking {
		t.Error("No previous message: nothing should be checking")
	}
	if _, ok := m.checker.Observe(m.conversation.GetLastUserMessage(), "hey"); ok {
		t.Error("Observe without a previous message should not issue a ticket")
	}
}

// =============================================================================
// FAILURES ARE SILENT
// =============================================================================

func TestFailedCheckIsSilent(t *testing.T) {
	m := newTestModel(t, &stubBackend{})
	prev := m.conversation.AddUserMessage("hello there")

	p, _ := m.checker.Observe(prev, "hello here")
	m.checking = true

	updated, _ := m.Update(CorrectionResultMsg{Gen: p.Gen, Err: ollama.ErrTimeout})
	m = updated.(Model)
	if m.suggestion != nil {
		t.Error("Failed check must not produce a suggestion")
	}
	if m.checking {
		t.Error("Failed check should stop the checking indicator")
	}
}

func TestNonCorrectionVerdictShowsNothing(t *testing.T) {
	m := newTestModel(t, &stubBackend{})
	prev := m.conversation.AddUserMessage("hello there")

	p, _ := m.checker.Observe(prev, "completely new topic")
	sug := model.NewSuggestion(prev.ID, prev.Content, "", false)
	updated, _ := m.Update(CorrectionResultMsg{Gen: p.Gen, Suggestion: sug})
	m = updated.(Model)
	if m.suggestion != nil {
		t.Error("Non-correction verdict must not be offered")
	}
}

// =============================================================================
// ACCEPT / DISMISS / SEND
// =============================================================================

func TestAcceptAppliesSuggestion(t *testing.T) {
	m := newTestModel(t, &stubBackend{})
	prev := m.conversation.AddUserMessage("We are going too the park")
	m.suggestion = model.NewSuggestion(prev.ID, prev.Content, "We are going to the park", true)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = updated.(Model)

	if m.suggestion != nil {
		t.Error("Accept should clear the suggestion")
	}
	got := m.conversation.GetMessageByID(prev.ID)
	if got.Content != "We are going to the park" {
		t.Errorf("Content = %q, want corrected text", got.Content)
	}
	if !got.Revised {
		t.Error("Accepted correction should mark the message revised")
	}
	if got.Original != "We are going too the park" {
		t.Errorf("Original = %q", got.Original)
	}
}

func TestDismissClearsSuggestionOnly(t *testing.T) {
	m := newTestModel(t, &stubBackend{})
	prev := m.conversation.AddUserMessage("We are going too the park")
	m.suggestion = model.NewSuggestion(prev.ID, prev.Content, "We are going to the park", true)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = updated.(Model)

	if m.suggestion != nil {
		t.Error("Dismiss should clear the suggestion")
	}
	if got := m.conversation.GetMessageByID(prev.ID); got.Content != prev.Content {
		t.Error("Dismiss must not modify the message")
	}
}

func TestSubmitClearsCorrectionState(t *testing.T) {
	m := newTestModel(t, &stubBackend{})
	prev := m.conversation.AddUserMessage("first message")
	m.suggestion = model.NewSuggestion(prev.ID, prev.Content, "first massage", true)
	m.input.SetValue("second message")
	m.lastTyped = "second message"

	genBefore := mustObserveGen(t, &m)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)

	if m.suggestion != nil {
		t.Error("Send should clear the suggestion")
	}
	if m.conversation.MessageCount() != 2 {
		t.Errorf("MessageCount = %d, want 2", m.conversation.MessageCount())
	}
	if m.checker.Current(genBefore) {
		t.Error("Send should invalidate the pending generation")
	}
	if !m.thinking {
		t.Error("Send should start the assistant reply")
	}
}

// mustObserveGen plants a pending check and returns its generation.
func mustObserveGen(t *testing.T, m *Model) uint64 {
	t.Helper()
	p, ok := m.checker.Observe(m.conversation.GetLastUserMessage(), "second message")
	if !ok {
		t.Fatal("Observe should produce a ticket")
	}
	return p.Gen
}

func TestSubmitEmptyInputDoesNothing(t *testing.T) {
	m := newTestModel(t, &stubBackend{})
	m.input.SetValue("   ")

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)
	if m.conversation.MessageCount() != 0 {
		t.Error("Blank submit should not add a message")
	}
}

// =============================================================================
// TOGGLES AND REPLIES
// =============================================================================

func TestToggleCorrectionsOffClearsState(t *testing.T) {
	m := newTestModel(t, &stubBackend{})
	prev := m.conversation.AddUserMessage("hello there")
	m.suggestion = model.NewSuggestion(prev.ID, prev.Content, "hello here", true)
	m.checking = true

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlT})
	m = updated.(Model)

	if m.correctionsOn {
		t.Error("Toggle should disable corrections")
	}
	if m.suggestion != nil || m.checking {
		t.Error("Disabling corrections should clear pipeline state")
	}

	// Keystrokes while disabled never schedule ticks.
	m = typeRune(t, m, 'a')
	m = typeRune(t, m, 'b')
	m = typeRune(t, m, 'c')
	if m.checking {
		t.Error("Disabled corrections should never start checking")
	}
}

func TestAssistantReplyAppendsMessage(t *testing.T) {
	m := newTestModel(t, &stubBackend{})
	m.conversation.AddUserMessage("hi")
	m.thinking = true

	updated, _ := m.Update(AssistantReplyMsg{Content: "Got it!"})
	m = updated.(Model)

	if m.thinking {
		t.Error("Reply should stop the thinking state")
	}
	last := m.conversation.GetLastMessage()
	if last == nil || last.Role != model.RoleAssistant || last.Content != "Got it!" {
		t.Errorf("Unexpected last message: %+v", last)
	}
}

func TestCancelledReplyIsDropped(t *testing.T) {
	m := newTestModel(t, &stubBackend{})
	m.conversation.AddUserMessage("hi")
	m.thinking = true

	updated, _ := m.Update(AssistantReplyMsg{Err: context.Canceled})
	m = updated.(Model)

	if m.conversation.MessageCount() != 1 {
		t.Error("Cancelled reply must not append a message")
	}
}

func TestConfigReloadAdjustsQuietPeriod(t *testing.T) {
	m := newTestModel(t, &stubBackend{})
	cfg := config.Default()
	cfg.Correction.QuietMs = 1200
	cfg.Correction.Enabled = false

	updated, _ := m.Update(ConfigReloadedMsg{Config: cfg})
	m = updated.(Model)

	if m.correctionsOn {
		t.Error("Reload should apply the corrections toggle")
	}
}
