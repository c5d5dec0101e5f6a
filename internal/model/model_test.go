// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations, messages,
// and correction suggestions.
package model

import (
	"strings"
	"testing"
)

// =============================================================================
// MESSAGE TESTS
// =============================================================================

func TestNewMessage(t *testing.T) {
	msg := NewUserMessage("hello")

	if msg.ID == "" {
		t.Error("Expected message to have an ID")
	}
	if !strings.HasPrefix(msg.ID, "msg_") {
		t.Errorf("Expected ID with msg_ prefix, got %q", msg.ID)
	}
	if msg.Role != RoleUser {
		t.Errorf("Expected role user, got %q", msg.Role)
	}
	if msg.Timestamp.IsZero() {
		t.Error("Expected timestamp to be set")
	}
	if msg.Revised {
		t.Error("New message should not be marked revised")
	}
}

func TestMessageRevise(t *testing.T) {
	msg := NewUserMessage("Lets meet at the park")
	msg.Revise("Let's meet at the park")

	if !msg.Revised {
		t.Error("Expected message to be marked revised")
	}
	if msg.Content != "Let's meet at the park" {
		t.Errorf("Expected revised content, got %q", msg.Content)
	}
	if msg.Original != "Lets meet at the park" {
		t.Errorf("Expected original content preserved, got %q", msg.Original)
	}
	if msg.RevisedAt.IsZero() {
		t.Error("Expected RevisedAt to be set")
	}
}

func TestMessageReviseNoOp(t *testing.T) {
	msg := NewUserMessage("same text")
	msg.Revise("same text")

	if msg.Revised {
		t.Error("Revising with identical content should be a no-op")
	}
}

func TestMessagePreview(t *testing.T) {
	tests := []struct {
		name    string
		content string
		maxLen  int
		want    string
	}{
		{"short content unchanged", "hi", 10, "hi"},
		{"long content truncated", "this is a long message", 10, "this is..."},
		{"unicode safe", "héllo wörld with accénts", 10, "héllo w..."},
		{"tiny max", "hello", 2, "he"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := NewUserMessage(tt.content)
			if got := msg.Preview(tt.maxLen); got != tt.want {
				t.Errorf("Preview(%d) = %q, want %q", tt.maxLen, got, tt.want)
			}
		})
	}
}

// =============================================================================
// CONVERSATION TESTS
// =============================================================================

func TestConversationAddMessages(t *testing.T) {
	conv := NewConversation()

	if !conv.IsEmpty() {
		t.Error("New conversation should be empty")
	}

	conv.AddUserMessage("first")
	conv.AddAssistantMessage("reply")
	conv.AddUserMessage("second")

	if conv.MessageCount() != 3 {
		t.Errorf("Expected 3 messages, got %d", conv.MessageCount())
	}
	if conv.Title != "first" {
		t.Errorf("Expected title from first user message, got %q", conv.Title)
	}
}

func TestConversationGetLastUserMessage(t *testing.T) {
	conv := NewConversation()

	if conv.GetLastUserMessage() != nil {
		t.Error("Empty conversation should have no last user message")
	}

	conv.AddUserMessage("first")
	conv.AddAssistantMessage("reply")
	last := conv.AddUserMessage("second")
	conv.AddSystemMessage("note")

	got := conv.GetLastUserMessage()
	if got == nil || got.ID != last.ID {
		t.Errorf("Expected last user message %q, got %+v", last.ID, got)
	}
}

func TestConversationReplaceMessageContent(t *testing.T) {
	conv := NewConversation()
	msg := conv.AddUserMessage("Lets go")

	if !conv.ReplaceMessageContent(msg.ID, "Let's go") {
		t.Fatal("Expected replacement to succeed")
	}
	if msg.Content != "Let's go" {
		t.Errorf("Expected content replaced, got %q", msg.Content)
	}
	if !msg.Revised {
		t.Error("Expected message marked revised")
	}

	if conv.ReplaceMessageContent("msg_missing", "x") {
		t.Error("Replacement of unknown ID should fail")
	}
}

func TestConversationClearHistory(t *testing.T) {
	conv := NewConversation()
	conv.AddUserMessage("one")
	conv.AddUserMessage("two")

	conv.ClearHistory()

	if !conv.IsEmpty() {
		t.Error("Expected conversation to be empty after clear")
	}
}

// =============================================================================
// SUGGESTION TESTS
// =============================================================================

func TestSuggestionOfferable(t *testing.T) {
	tests := []struct {
		name string
		sugg *Suggestion
		want bool
	}{
		{
			"correction with changed text",
			NewSuggestion("msg_1", "Lets go", "Let's go", true),
			true,
		},
		{
			"not a correction",
			NewSuggestion("msg_1", "Lets go", "Let's go", false),
			false,
		},
		{
			"empty corrected text",
			NewSuggestion("msg_1", "Lets go", "   ", true),
			false,
		},
		{
			"corrected equals original",
			NewSuggestion("msg_1", "Let's go", "Let's go ", true),
			false,
		},
		{
			"nil suggestion",
			nil,
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.sugg.Offerable(); got != tt.want {
				t.Errorf("Offerable() = %v, want %v", got, tt.want)
			}
		})
	}
}
