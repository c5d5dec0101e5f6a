// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for the redraft TUI.
package components

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/jeranaias/redraft/internal/model"
	"github.com/jeranaias/redraft/internal/ui/styles"
)

// =============================================================================
// MESSAGE BUBBLE COMPONENT
// =============================================================================

// MessageBubble renders a single chat message as a styled bubble. User
// messages sit on the right, assistant messages on the left, system notices
// in the center.
type MessageBubble struct {
	Message       *model.Message
	Width         int
	ShowTimestamp bool

	// EntranceOffset shifts the bubble horizontally while its entrance
	// spring settles. Positive values push toward the bubble's edge of
	// the screen; zero means at rest.
	EntranceOffset int

	theme *styles.Theme
}

// NewMessageBubble creates a bubble for msg.
func NewMessageBubble(msg *model.Message, theme *styles.Theme) *MessageBubble {
	if msg == nil {
		msg = &model.Message{Role: model.RoleSystem}
	}
	return &MessageBubble{
		Message:       msg,
		Width:         80,
		ShowTimestamp: true,
		theme:         theme,
	}
}

// SetWidth sets the available render width.
func (b *MessageBubble) SetWidth(width int) {
	b.Width = width
}

// View renders the message bubble.
func (b *MessageBubble) View() string {
	switch b.Message.Role {
	case model.RoleUser:
		return b.renderUserBubble()
	case model.RoleAssistant:
		return b.renderAssistantBubble()
	default:
		return b.renderSystemBubble()
	}
}

// ==========================================================================
// USER BUBBLE - right-aligned
// ==========================================================================

func (b *MessageBubble) renderUserBubble() string {
	content := b.Message.Content
	if content == "" {
		content = "..."
	}

	wrapped := wordWrap(content, b.contentWidth())
	bubbleWidth := minInt(maxLineWidth(wrapped)+4, b.Width-8)

	bubble := b.theme.UserBubble.Width(bubbleWidth).Render(wrapped)

	header := b.renderHeader("you")

	// Right-align, then pull left by the entrance offset so new bubbles
	// slide in from the right edge.
	leftMargin := b.Width - bubbleWidth - 4 + b.EntranceOffset
	if leftMargin < 0 {
		leftMargin = 0
	}
	if leftMargin > b.Width-bubbleWidth-2 {
		leftMargin = maxInt(b.Width-bubbleWidth-2, 0)
	}

	marginStyle := lipgloss.NewStyle().MarginLeft(leftMargin)
	return lipgloss.JoinVertical(lipgloss.Right,
		marginStyle.Render(header),
		marginStyle.Render(bubble))
}

// ==========================================================================
// ASSISTANT BUBBLE - left-aligned
// ==========================================================================

func (b *MessageBubble) renderAssistantBubble() string {
	content := b.Message.Content
	if content == "" {
		content = "..."
	}

	wrapped := wordWrap(content, b.contentWidth())
	bubbleWidth := minInt(maxLineWidth(wrapped)+4, b.Width-8)

	bubble := b.theme.AssistantBubble.Width(bubbleWidth).Render(wrapped)

	header := b.renderHeader("assistant")

	// Assistant bubbles slide in from the left: the offset shrinks the
	// margin from a negative start toward zero, clamped at the edge.
	leftMargin := -b.EntranceOffset
	if leftMargin < 0 {
		leftMargin = 0
	}

	marginStyle := lipgloss.NewStyle().MarginLeft(leftMargin)
	return lipgloss.JoinVertical(lipgloss.Left,
		marginStyle.Render(header),
		marginStyle.Render(bubble))
}

// ==========================================================================
// SYSTEM BUBBLE - centered notice
// ==========================================================================

func (b *MessageBubble) renderSystemBubble() string {
	content := b.Message.Content
	if content == "" {
		return ""
	}

	wrapped := wordWrap(content, b.contentWidth())
	notice := b.theme.SystemBubble.Render(wrapped)

	return lipgloss.NewStyle().
		Width(b.Width).
		Align(lipgloss.Center).
		Render(notice)
}

// ==========================================================================
// SHARED PIECES
// ==========================================================================

// renderHeader builds the "role  timestamp  (edited)" line above a bubble.
func (b *MessageBubble) renderHeader(role string) string {
	roleStyle := lipgloss.NewStyle().
		Foreground(styles.TextMuted).
		Italic(true)

	parts := []string{roleStyle.Render(role)}
	if b.ShowTimestamp && !b.Message.Timestamp.IsZero() {
		parts = append(parts, b.theme.BubbleTimestamp.Render(formatTime(b.Message.Timestamp)))
	}
	if b.Message.Revised {
		parts = append(parts, b.theme.RevisedMarker.Render("(edited)"))
	}
	return strings.Join(parts, " ")
}

func (b *MessageBubble) contentWidth() int {
	w := b.Width - 12
	if w < 20 {
		w = 20
	}
	return w
}

// =============================================================================
// MESSAGE LIST COMPONENT
// =============================================================================

// MessageList renders a conversation's messages as a stack of bubbles.
type MessageList struct {
	Messages       []*model.Message
	Width          int
	ShowTimestamps bool

	// EntranceOffsets maps message ID to the current spring offset of a
	// bubble still animating in. Missing entries render at rest.
	EntranceOffsets map[string]int

	theme *styles.Theme
}

// NewMessageList creates an empty message list.
func NewMessageList(theme *styles.Theme) *MessageList {
	return &MessageList{
		Width:           80,
		ShowTimestamps:  true,
		EntranceOffsets: map[string]int{},
		theme:           theme,
	}
}

// SetMessages sets the messages to display.
func (ml *MessageList) SetMessages(messages []*model.Message) {
	ml.Messages = messages
}

// SetWidth sets the list width.
func (ml *MessageList) SetWidth(width int) {
	ml.Width = width
}

// View renders all messages.
func (ml *MessageList) View() string {
	if len(ml.Messages) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(styles.TextMuted).
			Italic(true).
			Width(ml.Width).
			Align(lipgloss.Center).
			Padding(2, 0)
		return emptyStyle.Render("No messages yet. Say something!")
	}

	var bubbles []string
	for _, msg := range ml.Messages {
		bubble := NewMessageBubble(msg, ml.theme)
		bubble.SetWidth(ml.Width)
		bubble.ShowTimestamp = ml.ShowTimestamps
		if off, ok := ml.EntranceOffsets[msg.ID]; ok {
			bubble.EntranceOffset = off
		}
		bubbles = append(bubbles, bubble.View())
	}
	return strings.Join(bubbles, "\n")
}

// ==========================================================================
// UTILITY FUNCTIONS
// ==========================================================================

// wordWrap wraps text to fit within the specified display width.
func wordWrap(text string, width int) string {
	if width <= 0 {
		return text
	}

	var result strings.Builder
	for lineIdx, line := range strings.Split(text, "\n") {
		if lineIdx > 0 {
			result.WriteString("\n")
		}

		words := strings.Fields(line)
		if len(words) == 0 {
			continue
		}

		current := words[0]
		for _, word := range words[1:] {
			if runewidth.StringWidth(current)+1+runewidth.StringWidth(word) <= width {
				current += " " + word
			} else {
				result.WriteString(current)
				result.WriteString("\n")
				current = word
			}
		}
		result.WriteString(current)
	}
	return result.String()
}

// maxLineWidth returns the display width of the longest line.
func maxLineWidth(text string) int {
	maxWidth := 0
	for _, line := range strings.Split(text, "\n") {
		if w := runewidth.StringWidth(line); w > maxWidth {
			maxWidth = w
		}
	}
	return maxWidth
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// formatTime formats a time as "3:04 PM".
func formatTime(t time.Time) string {
	return t.Format("3:04 PM")
}
