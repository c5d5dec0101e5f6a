// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations, messages,
// and correction suggestions.
package model

import (
	"strings"
	"time"
)

// =============================================================================
// SUGGESTION TYPE
// =============================================================================

// Suggestion is a correction offer for a previously sent message. It is
// produced by the correction checker when the model judges the text being
// typed to be a correction of the prior message.
type Suggestion struct {
	// MessageID identifies the message the correction applies to.
	MessageID string `json:"message_id"`

	// Original is the content of the targeted message when the check ran.
	Original string `json:"original"`

	// Corrected is the replacement text proposed by the model.
	Corrected string `json:"corrected"`

	// IsCorrection reports the model's judgement. A Suggestion with
	// IsCorrection false is never shown to the user.
	IsCorrection bool `json:"is_correction"`

	CreatedAt time.Time `json:"created_at"`
}

// NewSuggestion creates a suggestion for the given message.
func NewSuggestion(messageID, original, corrected string, isCorrection bool) *Suggestion {
	return &Suggestion{
		MessageID:    messageID,
		Original:     original,
		Corrected:    corrected,
		IsCorrection: isCorrection,
		CreatedAt:    time.Now(),
	}
}

// Offerable reports whether the suggestion should be shown to the user.
// A suggestion is not offerable when the model judged the input to be a new
// message, when the corrected text is empty, or when it matches the original.
func (s *Suggestion) Offerable() bool {
	if s == nil || !s.IsCorrection {
		return false
	}
	corrected := strings.TrimSpace(s.Corrected)
	if corrected == "" {
		return false
	}
	return corrected != strings.TrimSpace(s.Original)
}
