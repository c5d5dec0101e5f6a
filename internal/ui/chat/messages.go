// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view for the redraft TUI.
//
// This file defines the Bubble Tea message types used by the chat view:
//   - Correction: quiet-period ticks and check results
//   - Ollama: health check status
//   - Assistant: canned reply delivery
//   - History: async save results
//   - Animation: frame ticks for entrance springs
//   - Config: live-reload notifications
package chat

import (
	"time"

	"github.com/jeranaias/redraft/internal/config"
	"github.com/jeranaias/redraft/internal/correction"
	"github.com/jeranaias/redraft/internal/model"
)

// =============================================================================
// CORRECTION MESSAGES
// =============================================================================

// CorrectionTickMsg fires when a pending check's quiet period has elapsed.
// The embedded ticket carries the generation; the update loop verifies it is
// still current before issuing the request.
type CorrectionTickMsg struct {
	Pending correction.Pending
}

// CorrectionResultMsg delivers the outcome of a correction check. Gen tags
// the result with the generation that produced it so stale replies can be
// discarded without touching suggestion state.
type CorrectionResultMsg struct {
	Gen        uint64
	Suggestion *model.Suggestion
	Err        error
}

// =============================================================================
// OLLAMA MESSAGES
// =============================================================================

// OllamaStatusMsg reports the health probe result.
type OllamaStatusMsg struct {
	Running bool
	Err     error
}

// =============================================================================
// ASSISTANT MESSAGES
// =============================================================================

// AssistantReplyMsg delivers the assistant's reply to a sent message.
type AssistantReplyMsg struct {
	Content string
	Err     error
}

// =============================================================================
// HISTORY MESSAGES
// =============================================================================

// HistorySavedMsg reports an async transcript save.
type HistorySavedMsg struct {
	Err error
}

// =============================================================================
// ANIMATION MESSAGES
// =============================================================================

// AnimationTickMsg drives one frame of the entrance springs.
type AnimationTickMsg struct {
	Time time.Time
}

// =============================================================================
// CONFIG MESSAGES
// =============================================================================

// ConfigReloadedMsg carries a freshly reloaded configuration from the
// fsnotify watcher. Quiet period and UI toggles apply without restart.
type ConfigReloadedMsg struct {
	Config *config.Config
}
