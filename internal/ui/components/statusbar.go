// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for the redraft TUI.
package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/redraft/internal/ui/styles"
)

// =============================================================================
// STATUS BAR COMPONENT
// =============================================================================

// Status represents the current application status.
type Status int

const (
	StatusReady Status = iota
	StatusChecking
	StatusThinking
	StatusOffline
	StatusError
)

// String returns the display string for the status.
func (s Status) String() string {
	switch s {
	case StatusReady:
		return "Ready"
	case StatusChecking:
		return "Checking..."
	case StatusThinking:
		return "Thinking..."
	case StatusOffline:
		return "Offline"
	case StatusError:
		return "Error"
	default:
		return "Unknown"
	}
}

// Icon returns an ASCII icon for the status.
func (s Status) Icon() string {
	switch s {
	case StatusReady:
		return "[OK]"
	case StatusChecking, StatusThinking:
		return "[.]"
	case StatusOffline:
		return "(-)"
	case StatusError:
		return "[X]"
	default:
		return "?"
	}
}

// StatusBar renders the bottom status bar: connection state, model name,
// correction toggle, and keyboard shortcuts.
type StatusBar struct {
	Status         Status
	ModelName      string
	CorrectionsOn  bool
	Width          int
	ShowShortcuts  bool
	LastError      string

	theme *styles.Theme
}

// NewStatusBar creates a StatusBar.
func NewStatusBar(theme *styles.Theme) *StatusBar {
	return &StatusBar{
		Status:        StatusReady,
		Width:         80,
		ShowShortcuts: true,
		theme:         theme,
	}
}

// SetWidth sets the bar width.
func (sb *StatusBar) SetWidth(width int) {
	sb.Width = width
}

// View renders the status bar.
func (sb *StatusBar) View() string {
	statusStyle := sb.theme.StatusOK
	if sb.Status == StatusError || sb.Status == StatusOffline {
		statusStyle = sb.theme.StatusBad
	}

	left := statusStyle.Render(sb.Status.Icon() + " " + sb.Status.String())
	if sb.Status == StatusError && sb.LastError != "" {
		left += " " + sb.theme.ShortcutDesc.Render(sb.LastError)
	}

	var mid []string
	if sb.ModelName != "" {
		mid = append(mid, sb.theme.ShortcutDesc.Render(sb.ModelName))
	}
	correctionState := "corrections off"
	if sb.CorrectionsOn {
		correctionState = "corrections on"
	}
	mid = append(mid, sb.theme.ShortcutDesc.Render(correctionState))
	middle := strings.Join(mid, sb.theme.ShortcutDesc.Render(" | "))

	right := ""
	if sb.ShowShortcuts {
		right = strings.Join([]string{
			sb.theme.ShortcutKey.Render("enter") + sb.theme.ShortcutDesc.Render(" send"),
			sb.theme.ShortcutKey.Render("tab") + sb.theme.ShortcutDesc.Render(" accept"),
			sb.theme.ShortcutKey.Render("ctrl+t") + sb.theme.ShortcutDesc.Render(" toggle"),
			sb.theme.ShortcutKey.Render("ctrl+c") + sb.theme.ShortcutDesc.Render(" quit"),
		}, "  ")
	}

	// Space the three sections across the width; collapse gracefully when
	// the terminal is narrow.
	gapTotal := sb.Width - lipgloss.Width(left) - lipgloss.Width(middle) - lipgloss.Width(right) - 2
	if gapTotal < 2 {
		return sb.theme.StatusBar.Width(sb.Width).Render(left + "  " + middle)
	}
	leftGap := gapTotal / 2
	rightGap := gapTotal - leftGap

	line := left + strings.Repeat(" ", leftGap) + middle + strings.Repeat(" ", rightGap) + right
	return sb.theme.StatusBar.Width(sb.Width).Render(line)
}
