// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for the redraft TUI.
package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/redraft/internal/model"
	"github.com/jeranaias/redraft/internal/ui/styles"
	"github.com/jeranaias/redraft/internal/util"
)

// =============================================================================
// SUGGESTION BANNER COMPONENT
// =============================================================================

// SuggestionBanner renders the correction offer above the input area:
// the original text struck through, the corrected text highlighted, and
// the accept/dismiss key hints.
type SuggestionBanner struct {
	Suggestion *model.Suggestion
	Width      int

	// EntranceOffset shifts the banner down while its reveal spring
	// settles; extra blank lines above keep the layout stable.
	EntranceOffset int

	theme *styles.Theme
}

// NewSuggestionBanner creates a banner for the given suggestion.
func NewSuggestionBanner(sug *model.Suggestion, theme *styles.Theme) *SuggestionBanner {
	return &SuggestionBanner{
		Suggestion: sug,
		Width:      80,
		theme:      theme,
	}
}

// SetWidth sets the available render width.
func (sb *SuggestionBanner) SetWidth(width int) {
	sb.Width = width
}

// Height returns the number of terminal rows the banner occupies,
// including any entrance offset padding. Zero when nothing to offer.
func (sb *SuggestionBanner) Height() int {
	if !sb.Suggestion.Offerable() {
		return 0
	}
	return strings.Count(sb.View(), "\n") + 1
}

// View renders the banner, or an empty string when there is nothing
// worth offering.
func (sb *SuggestionBanner) View() string {
	if !sb.Suggestion.Offerable() {
		return ""
	}

	innerWidth := sb.Width - 6
	if innerWidth < 20 {
		innerWidth = 20
	}

	title := sb.theme.SuggestionTitle.Render("Did you mean:")

	oldLine := sb.theme.SuggestionOldTxt.Render(
		util.TruncateWidth(sb.Suggestion.Original, innerWidth))
	newLine := sb.theme.SuggestionNewTxt.Render(
		util.TruncateWidth(sb.Suggestion.Corrected, innerWidth))

	hints := strings.Join([]string{
		sb.theme.ShortcutKey.Render("tab") + sb.theme.SuggestionKeys.Render(" accept"),
		sb.theme.ShortcutKey.Render("esc") + sb.theme.SuggestionKeys.Render(" dismiss"),
	}, "  ")

	body := lipgloss.JoinVertical(lipgloss.Left, title, oldLine, newLine, hints)
	box := sb.theme.SuggestionBox.Width(minInt(innerWidth+2, sb.Width-2)).Render(body)

	// Slide up from below: render blank rows above, then clip the bottom
	// of the box by the remaining offset.
	if sb.EntranceOffset > 0 {
		lines := strings.Split(box, "\n")
		if sb.EntranceOffset >= len(lines) {
			return ""
		}
		visible := lines[:len(lines)-sb.EntranceOffset]
		padding := strings.Repeat("\n", sb.EntranceOffset)
		return padding + strings.Join(visible, "\n")
	}
	return box
}
