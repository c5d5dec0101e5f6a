// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view for the redraft TUI.
package chat

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/redraft/internal/ui/components"
)

// =============================================================================
// VIEW
// =============================================================================

// View renders the full chat screen: header, transcript, suggestion banner,
// activity line, input box, status bar.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 {
		return "starting..."
	}

	sections := []string{
		m.renderHeader(),
		m.viewport.View(),
	}

	if banner := m.renderSuggestion(); banner != "" {
		sections = append(sections, banner)
	}

	sections = append(sections,
		m.renderActivity(),
		m.renderInput(),
		m.statusBar.View(),
	)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// =============================================================================
// SECTIONS
// =============================================================================

func (m Model) renderHeader() string {
	title := m.theme.HeaderTitle.Render("redraft")
	subtitle := m.theme.HeaderSubtitle.Render(m.conversation.Title)

	line := title
	if subtitle != "" {
		line += "  " + subtitle
	}
	return m.theme.Header.Width(m.width).Render(line)
}

func (m Model) renderSuggestion() string {
	if !m.suggestion.Offerable() {
		return ""
	}
	banner := components.NewSuggestionBanner(m.suggestion, m.theme)
	banner.SetWidth(m.width)
	if m.bannerSpring != nil {
		banner.EntranceOffset = m.bannerSpring.Offset()
	}
	return banner.View()
}

// renderActivity keeps one line reserved for whichever spinner is running so
// the layout does not jump when checks start and stop.
func (m Model) renderActivity() string {
	switch {
	case m.checking:
		return " " + m.checkSpinner.View()
	case m.thinking:
		return " " + m.thinkSpinner.View()
	default:
		return strings.Repeat(" ", maxWidth(m.width, 1))
	}
}

func (m Model) renderInput() string {
	return m.theme.InputContainer.Width(m.width - 2).Render(m.input.View())
}

func maxWidth(w, min int) int {
	if w < min {
		return min
	}
	return w
}
