// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view for the redraft TUI.
package chat

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/redraft/internal/ollama"
	"github.com/jeranaias/redraft/internal/ui/components"
	"github.com/jeranaias/redraft/internal/ui/styles"
)

// =============================================================================
// UPDATE LOOP
// =============================================================================

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg), nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case CorrectionTickMsg:
		return m.handleCorrectionTick(msg)

	case CorrectionResultMsg:
		return m.handleCorrectionResult(msg)

	case OllamaStatusMsg:
		return m.handleOllamaStatus(msg), nil

	case AssistantReplyMsg:
		return m.handleAssistantReply(msg)

	case HistorySavedMsg:
		if msg.Err != nil {
			m.lastError = "history: " + msg.Err.Error()
		}
		return m, nil

	case AnimationTickMsg:
		return m.handleAnimationTick()

	case ConfigReloadedMsg:
		return m.handleConfigReload(msg), nil

	case spinner.TickMsg:
		var cmds []tea.Cmd
		if cmd := m.checkSpinner.Update(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
		if cmd := m.thinkSpinner.Update(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// =============================================================================
// RESIZE
// =============================================================================

func (m Model) handleResize(msg tea.WindowSizeMsg) Model {
	m.width = msg.Width
	m.height = msg.Height
	m.theme.SetSize(msg.Width, msg.Height)

	m.viewport.Width = msg.Width
	m.input.Width = msg.Width - 8
	m.statusBar.SetWidth(msg.Width)
	m.messageList.SetWidth(msg.Width - 2)
	m.relayout()
	m.refreshTranscript()
	return m
}

// relayout recomputes the viewport height from the fixed chrome and the
// suggestion banner, which comes and goes.
func (m *Model) relayout() {
	bannerHeight := 0
	if m.suggestion.Offerable() {
		banner := components.NewSuggestionBanner(m.suggestion, m.theme)
		banner.SetWidth(m.width)
		bannerHeight = banner.Height()
	}

	// header(1) + input box(3) + status(1) + spinner line(1)
	h := m.height - 6 - bannerHeight
	if h < 3 {
		h = 3
	}
	m.viewport.Height = h
}

// =============================================================================
// KEYSTROKES
// =============================================================================

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.Quit):
		m.cancelMgr.cancel()
		if m.checker != nil {
			m.checker.Invalidate()
		}
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keyMap.Submit):
		return m.handleSubmit()

	case key.Matches(msg, m.keyMap.Accept):
		return m.handleAccept()

	case key.Matches(msg, m.keyMap.Dismiss):
		return m.handleDismiss()

	case key.Matches(msg, m.keyMap.Toggle):
		return m.handleToggleCorrections()

	case key.Matches(msg, m.keyMap.Clear):
		return m.handleClear()

	case key.Matches(msg, m.keyMap.PageUp):
		m.viewport.HalfViewUp()
		return m, nil

	case key.Matches(msg, m.keyMap.PageDown):
		m.viewport.HalfViewDown()
		return m, nil
	}

	// Everything else edits the input.
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	typed := m.input.Value()
	if typed == m.lastTyped {
		return m, cmd
	}
	m.lastTyped = typed

	return m.observeKeystroke(typed, cmd)
}

// observeKeystroke feeds an input edit into the correction pipeline.
// Observe always bumps the generation, which cancels any pending or
// in-flight check; a new ticket is only issued when the text is worth
// checking.
func (m Model) observeKeystroke(typed string, inputCmd tea.Cmd) (tea.Model, tea.Cmd) {
	cmds := []tea.Cmd{inputCmd}

	// A checking indicator for a superseded check is a lie; stop it now.
	if m.checking {
		m.checking = false
		m.checkSpinner.Stop()
	}

	if strings.TrimSpace(typed) == "" {
		// Emptied input drops the offer along with any pending check.
		m.suggestion = nil
		m.bannerSpring = nil
		m.relayout()
	}

	if m.checker == nil || !m.correctionsOn {
		return m, tea.Batch(cmds...)
	}

	pending, ok := m.checker.Observe(m.conversation.GetLastUserMessage(), typed)
	if ok {
		cmds = append(cmds, correctionTickCmd(pending))
	}
	return m, tea.Batch(cmds...)
}

// =============================================================================
// SEND / ACCEPT / DISMISS
// =============================================================================

func (m Model) handleSubmit() (tea.Model, tea.Cmd) {
	content := strings.TrimSpace(m.input.Value())
	if content == "" {
		return m, nil
	}

	// Sending clears every trace of the correction flow for the old input.
	if m.checker != nil {
		m.checker.Invalidate()
	}
	m.suggestion = nil
	m.bannerSpring = nil
	m.checking = false
	m.checkSpinner.Stop()

	sent := m.conversation.AddUserMessage(content)
	m.input.Reset()
	m.lastTyped = ""

	var cmds []tea.Cmd
	if m.animationsOn {
		m.bubbleSprings[sent.ID] = styles.NewBubbleSpring(bubbleEntranceOffset)
		cmds = append(cmds, m.startAnimation())
	}

	// Kick off the assistant's reply.
	m.cancelMgr.cancel()
	ctx, cancel := context.WithCancel(context.Background())
	m.cancelMgr.setCancelFunc(cancel)
	m.thinking = true
	cmds = append(cmds, m.thinkSpinner.Start(), assistantReplyCmd(ctx, m.replyTurn))
	m.replyTurn++

	if cmd := saveHistoryCmd(m.store, m.conversation); cmd != nil {
		cmds = append(cmds, cmd)
	}

	m.relayout()
	m.refreshTranscript()
	m.viewport.GotoBottom()
	return m, tea.Batch(cmds...)
}

func (m Model) handleAccept() (tea.Model, tea.Cmd) {
	if !m.suggestion.Offerable() {
		return m, nil
	}

	m.conversation.ReplaceMessageContent(m.suggestion.MessageID, m.suggestion.Corrected)
	if m.checker != nil {
		m.checker.Invalidate()
	}
	m.suggestion = nil
	m.bannerSpring = nil
	m.input.Reset()
	m.lastTyped = ""

	var cmds []tea.Cmd
	if cmd := saveHistoryCmd(m.store, m.conversation); cmd != nil {
		cmds = append(cmds, cmd)
	}

	m.relayout()
	m.refreshTranscript()
	return m, tea.Batch(cmds...)
}

func (m Model) handleDismiss() (tea.Model, tea.Cmd) {
	if m.suggestion == nil {
		return m, nil
	}
	m.suggestion = nil
	m.bannerSpring = nil
	if m.checker != nil {
		m.checker.Invalidate()
	}
	m.relayout()
	return m, nil
}

func (m Model) handleToggleCorrections() (tea.Model, tea.Cmd) {
	m.correctionsOn = !m.correctionsOn
	m.statusBar.CorrectionsOn = m.correctionsOn
	if !m.correctionsOn {
		if m.checker != nil {
			m.checker.Invalidate()
		}
		m.suggestion = nil
		m.bannerSpring = nil
		m.checking = false
		m.checkSpinner.Stop()
		m.relayout()
	}
	return m, nil
}

func (m Model) handleClear() (tea.Model, tea.Cmd) {
	m.cancelMgr.cancel()
	m.thinking = false
	m.thinkSpinner.Stop()

	m.conversation.ClearHistory()
	if m.checker != nil {
		m.checker.Invalidate()
	}
	m.suggestion = nil
	m.bannerSpring = nil
	m.checking = false
	m.checkSpinner.Stop()
	m.bubbleSprings = map[string]*styles.EntranceSpring{}
	m.input.Reset()
	m.lastTyped = ""

	var cmds []tea.Cmd
	if cmd := saveHistoryCmd(m.store, m.conversation); cmd != nil {
		cmds = append(cmds, cmd)
	}

	m.relayout()
	m.refreshTranscript()
	return m, tea.Batch(cmds...)
}

// =============================================================================
// CORRECTION PIPELINE
// =============================================================================

func (m Model) handleCorrectionTick(msg CorrectionTickMsg) (tea.Model, tea.Cmd) {
	if m.checker == nil || !m.correctionsOn {
		return m, nil
	}
	// A newer keystroke arrived during the quiet period; this ticket is
	// dead and its timer just expired harmlessly.
	if !m.checker.Current(msg.Pending.Gen) {
		return m, nil
	}

	m.checking = true
	return m, tea.Batch(
		m.checkSpinner.Start(),
		runCheckCmd(m.checker, msg.Pending),
	)
}

func (m Model) handleCorrectionResult(msg CorrectionResultMsg) (tea.Model, tea.Cmd) {
	// Stale results must not touch suggestion state, the spinner included:
	// a newer check may already be in flight.
	if m.checker == nil || !m.checker.Current(msg.Gen) {
		return m, nil
	}

	m.checking = false
	m.checkSpinner.Stop()

	if msg.Err != nil {
		// Failed checks are silent. Connection loss still flips the
		// status bar so the user knows why offers stopped.
		if ollama.IsNotRunning(msg.Err) {
			m.ollamaRunning = false
			m.statusBar.Status = components.StatusOffline
		}
		return m, nil
	}

	if !msg.Suggestion.Offerable() {
		return m, nil
	}

	m.suggestion = msg.Suggestion
	var cmd tea.Cmd
	if m.animationsOn {
		m.bannerSpring = styles.NewBannerSpring(3)
		cmd = m.startAnimation()
	}
	m.relayout()
	return m, cmd
}

// =============================================================================
// COLLABORATOR RESULTS
// =============================================================================

func (m Model) handleOllamaStatus(msg OllamaStatusMsg) Model {
	m.ollamaRunning = msg.Running
	if msg.Running {
		m.statusBar.Status = components.StatusReady
		m.statusBar.LastError = ""
	} else {
		m.statusBar.Status = components.StatusOffline
		if msg.Err != nil {
			m.statusBar.LastError = msg.Err.Error()
		}
	}
	return m
}

func (m Model) handleAssistantReply(msg AssistantReplyMsg) (tea.Model, tea.Cmd) {
	m.thinking = false
	m.thinkSpinner.Stop()
	if msg.Err != nil {
		// Cancelled reply; nothing to show.
		return m, nil
	}

	reply := m.conversation.AddAssistantMessage(msg.Content)

	var cmds []tea.Cmd
	if m.animationsOn {
		m.bubbleSprings[reply.ID] = styles.NewBubbleSpring(bubbleEntranceOffset)
		cmds = append(cmds, m.startAnimation())
	}
	if cmd := saveHistoryCmd(m.store, m.conversation); cmd != nil {
		cmds = append(cmds, cmd)
	}

	m.refreshTranscript()
	m.viewport.GotoBottom()
	return m, tea.Batch(cmds...)
}

// =============================================================================
// ANIMATION
// =============================================================================

// startAnimation begins the frame loop if it is not already running.
func (m *Model) startAnimation() tea.Cmd {
	if m.animating {
		return nil
	}
	m.animating = true
	return animationTickCmd()
}

func (m Model) handleAnimationTick() (tea.Model, tea.Cmd) {
	if !m.animating {
		return m, nil
	}

	active := false
	for id, spring := range m.bubbleSprings {
		spring.Update()
		if spring.Settled() {
			delete(m.bubbleSprings, id)
		} else {
			active = true
		}
	}
	if m.bannerSpring != nil {
		m.bannerSpring.Update()
		if m.bannerSpring.Settled() {
			m.bannerSpring = nil
		} else {
			active = true
		}
	}

	m.refreshTranscript()

	if !active {
		m.animating = false
		return m, nil
	}
	return m, animationTickCmd()
}

// =============================================================================
// CONFIG RELOAD
// =============================================================================

func (m Model) handleConfigReload(msg ConfigReloadedMsg) Model {
	cfg := msg.Config
	if cfg == nil {
		return m
	}

	if m.checker != nil {
		m.checker.SetQuietPeriod(time.Duration(cfg.Correction.QuietMs) * time.Millisecond)
	}
	m.correctionsOn = cfg.Correction.Enabled
	m.statusBar.CorrectionsOn = m.correctionsOn
	m.animationsOn = cfg.UI.Animations
	m.showTimestamps = cfg.UI.ShowTimestamps
	m.messageList.ShowTimestamps = cfg.UI.ShowTimestamps
	if m.client != nil && cfg.Local.OllamaModel != "" {
		m.client.SetModel(cfg.Local.OllamaModel)
		m.statusBar.ModelName = cfg.Local.OllamaModel
	}
	m.refreshTranscript()
	return m
}

// =============================================================================
// TRANSCRIPT RENDERING
// =============================================================================

// refreshTranscript re-renders the message list into the viewport.
func (m *Model) refreshTranscript() {
	offsets := map[string]int{}
	for id, spring := range m.bubbleSprings {
		offsets[id] = spring.Offset()
	}
	m.messageList.EntranceOffsets = offsets
	m.messageList.SetMessages(m.conversation.Messages)
	m.viewport.SetContent(m.messageList.View())
}
