// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for the redraft TUI.
package components

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/redraft/internal/ui/styles"
)

// =============================================================================
// SPINNER MODEL
// =============================================================================

// Spinner wraps the bubbles spinner with a message label. It drives the
// "checking..." indicator while a correction request is in flight and the
// assistant "thinking" state.
type Spinner struct {
	spinner  spinner.Model
	message  string
	isActive bool

	theme *styles.Theme
}

// NewSpinner creates a spinner using the dots animation.
func NewSpinner(theme *styles.Theme) Spinner {
	s := spinner.New()
	s.Spinner = spinner.Spinner{
		Frames: styles.DotsSpinner.Frames,
		FPS:    styles.DotsSpinner.Duration(),
	}
	s.Style = theme.Spinner
	return Spinner{
		spinner: s,
		message: "checking",
		theme:   theme,
	}
}

// NewThinkingSpinner creates a spinner for the assistant reply state.
func NewThinkingSpinner(theme *styles.Theme) Spinner {
	s := spinner.New()
	s.Spinner = spinner.Spinner{
		Frames: styles.PulseSpinner.Frames,
		FPS:    styles.PulseSpinner.Duration(),
	}
	s.Style = theme.Spinner
	return Spinner{
		spinner: s,
		message: "thinking",
		theme:   theme,
	}
}

// SetMessage sets the text displayed next to the spinner.
func (s *Spinner) SetMessage(msg string) {
	s.message = msg
}

// Start activates the spinner and returns its tick command.
func (s *Spinner) Start() tea.Cmd {
	s.isActive = true
	return s.spinner.Tick
}

// Stop deactivates the spinner.
func (s *Spinner) Stop() {
	s.isActive = false
}

// IsActive reports whether the spinner is running.
func (s *Spinner) IsActive() bool {
	return s.isActive
}

// Update advances the animation on spinner tick messages.
func (s *Spinner) Update(msg tea.Msg) tea.Cmd {
	if !s.isActive {
		return nil
	}
	var cmd tea.Cmd
	s.spinner, cmd = s.spinner.Update(msg)
	return cmd
}

// View renders the spinner with its message, or nothing when inactive.
func (s *Spinner) View() string {
	if !s.isActive {
		return ""
	}
	return s.spinner.View() + " " + s.theme.CheckingText.Render(s.message+"...")
}

// Interval returns the frame duration of the underlying animation.
func (s *Spinner) Interval() time.Duration {
	return s.spinner.Spinner.FPS
}
