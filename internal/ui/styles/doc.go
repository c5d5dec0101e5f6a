// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the redraft TUI.
//
// All colors use Lip Gloss AdaptiveColor so the palette adjusts to light and
// dark terminals automatically. The Theme type holds prebuilt styles for
// every component; animations.go supplies easing curves, spinner frame sets,
// and the spring parameters used for message bubble entrances.
package styles
