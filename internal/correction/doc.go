// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package correction implements the debounced correction-check pipeline.
//
// After each keystroke the UI calls Checker.Observe with the previous sent
// message and the text currently in the input. Observe invalidates any
// pending or in-flight check and, when the input is checkable, hands back a
// Pending ticket carrying a generation number and the quiet-period delay.
// The UI schedules the delay however it likes (redraft uses a Bubble Tea
// tick) and then calls Checker.Check with the ticket.
//
// Check verifies the ticket's generation is still current, issues exactly one
// request to the backend, and re-verifies the generation after the response
// arrives. A stale ticket at either point yields ErrSuperseded and never
// touches suggestion state. Cancellation and backend failures are silent by
// design: the caller discards the suggestion and the UI stays in its
// no-suggestion state.
//
// # Properties
//
//   - A new keystroke before the quiet period elapses invalidates the prior
//     pending check and restarts the delay.
//   - An in-flight check superseded by newer input has its context cancelled
//     and its late result rejected.
//   - Empty input, or the absence of a previous message, issues no request.
package correction
