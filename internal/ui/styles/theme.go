// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the redraft TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds all the styled components for the application.
// It detects the terminal's color capability and adjusts accordingly.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	HasTrueColor bool
	ColorProfile termenv.Profile

	// Layout dimensions
	Width  int
	Height int

	// ==========================================================================
	// APPLICATION CONTAINER STYLES
	// ==========================================================================

	App       lipgloss.Style
	Container lipgloss.Style

	// ==========================================================================
	// HEADER STYLES
	// ==========================================================================

	Header         lipgloss.Style
	HeaderTitle    lipgloss.Style
	HeaderSubtitle lipgloss.Style

	// ==========================================================================
	// MESSAGE BUBBLE STYLES
	// ==========================================================================

	UserBubble      lipgloss.Style
	AssistantBubble lipgloss.Style
	SystemBubble    lipgloss.Style
	BubbleTimestamp lipgloss.Style
	RevisedMarker   lipgloss.Style

	// ==========================================================================
	// SUGGESTION BANNER STYLES
	// ==========================================================================

	SuggestionBox    lipgloss.Style
	SuggestionTitle  lipgloss.Style
	SuggestionOldTxt lipgloss.Style
	SuggestionNewTxt lipgloss.Style
	SuggestionKeys   lipgloss.Style

	// ==========================================================================
	// INPUT AREA STYLES
	// ==========================================================================

	InputContainer   lipgloss.Style
	InputPrompt      lipgloss.Style
	InputPlaceholder lipgloss.Style

	// ==========================================================================
	// STATUS BAR STYLES
	// ==========================================================================

	StatusBar    lipgloss.Style
	StatusOK     lipgloss.Style
	StatusBad    lipgloss.Style
	ShortcutKey  lipgloss.Style
	ShortcutDesc lipgloss.Style

	// ==========================================================================
	// SPINNER AND LOADING STYLES
	// ==========================================================================

	Spinner      lipgloss.Style
	CheckingText lipgloss.Style
}

// NewTheme creates a theme after probing the terminal.
func NewTheme() *Theme {
	colorProfile := termenv.ColorProfile()
	t := &Theme{
		IsDark:       termenv.HasDarkBackground(),
		HasTrueColor: colorProfile == termenv.TrueColor,
		ColorProfile: colorProfile,
	}
	t.initStyles()
	return t
}

// SetSize updates the theme's layout dimensions on terminal resize.
func (t *Theme) SetSize(width, height int) {
	t.Width = width
	t.Height = height
}

// initStyles builds every component style from the palette.
func (t *Theme) initStyles() {
	t.App = lipgloss.NewStyle().
		Background(Surface)

	t.Container = lipgloss.NewStyle().
		Padding(0, 1)

	// Header
	t.Header = lipgloss.NewStyle().
		Background(SurfaceDim).
		Padding(0, 2)
	t.HeaderTitle = lipgloss.NewStyle().
		Foreground(Teal).
		Bold(true)
	t.HeaderSubtitle = lipgloss.NewStyle().
		Foreground(TextMuted)

	// Message bubbles
	t.UserBubble = lipgloss.NewStyle().
		Background(UserBubbleBg).
		Foreground(UserBubbleFg).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(UserBubbleBorder).
		Padding(0, 1)
	t.AssistantBubble = lipgloss.NewStyle().
		Background(AssistantBubbleBg).
		Foreground(AssistantBubbleFg).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(AssistantBubbleBorder).
		Padding(0, 1)
	t.SystemBubble = lipgloss.NewStyle().
		Background(SystemBubbleBg).
		Foreground(SystemBubbleFg).
		Padding(0, 1).
		Italic(true)
	t.BubbleTimestamp = lipgloss.NewStyle().
		Foreground(TextMuted)
	t.RevisedMarker = lipgloss.NewStyle().
		Foreground(RevisedMarkerFg).
		Italic(true)

	// Suggestion banner
	t.SuggestionBox = lipgloss.NewStyle().
		Background(SuggestionBg).
		Foreground(SuggestionFg).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(SuggestionBorder).
		Padding(0, 1)
	t.SuggestionTitle = lipgloss.NewStyle().
		Foreground(Indigo).
		Bold(true)
	t.SuggestionOldTxt = lipgloss.NewStyle().
		Foreground(SuggestionOld).
		Strikethrough(true)
	t.SuggestionNewTxt = lipgloss.NewStyle().
		Foreground(SuggestionNew).
		Bold(true)
	t.SuggestionKeys = lipgloss.NewStyle().
		Foreground(TextSecondary)

	// Input area
	t.InputContainer = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 1)
	t.InputPrompt = lipgloss.NewStyle().
		Foreground(Teal).
		Bold(true)
	t.InputPlaceholder = lipgloss.NewStyle().
		Foreground(TextMuted)

	// Status bar
	t.StatusBar = lipgloss.NewStyle().
		Background(SurfaceDim).
		Foreground(TextSecondary).
		Padding(0, 1)
	t.StatusOK = lipgloss.NewStyle().
		Foreground(Emerald)
	t.StatusBad = lipgloss.NewStyle().
		Foreground(Rose)
	t.ShortcutKey = lipgloss.NewStyle().
		Foreground(Teal).
		Bold(true)
	t.ShortcutDesc = lipgloss.NewStyle().
		Foreground(TextMuted)

	// Spinner
	t.Spinner = lipgloss.NewStyle().
		Foreground(Amber)
	t.CheckingText = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)
}
