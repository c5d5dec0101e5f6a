// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for the redraft TUI.
//
// Components are plain view types: the chat model owns all state and hands
// each component what it needs to render. The pieces are:
//
//   - MessageBubble / MessageList: chat transcript bubbles with entrance
//     animation offsets and revised markers
//   - SuggestionBanner: the correction offer shown above the input
//   - Spinner: wraps bubbles/spinner for the checking indicator
//   - StatusBar: bottom bar with connection state and shortcuts
package components
