// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view for the redraft TUI.
//
// The Model owns the conversation, the correction checker, and the current
// suggestion offer. The update loop wires keystrokes into the debounce
// pipeline: each edit calls Checker.Observe and schedules a CorrectionTickMsg
// after the quiet period; when the tick arrives still current, the check runs
// in a command goroutine and delivers a CorrectionResultMsg tagged with its
// generation. Stale generations are dropped on arrival so a slow reply can
// never overwrite newer state.
package chat
