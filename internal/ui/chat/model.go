// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view for the redraft TUI.
package chat

import (
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/redraft/internal/config"
	"github.com/jeranaias/redraft/internal/correction"
	"github.com/jeranaias/redraft/internal/model"
	"github.com/jeranaias/redraft/internal/ollama"
	"github.com/jeranaias/redraft/internal/storage"
	"github.com/jeranaias/redraft/internal/ui/components"
	"github.com/jeranaias/redraft/internal/ui/styles"
)

// =============================================================================
// CHAT MODEL
// =============================================================================

// bubbleEntranceOffset is the starting horizontal offset (columns) for a new
// message bubble's slide-in.
const bubbleEntranceOffset = 16

// Model is the Bubble Tea model for the chat view.
type Model struct {
	// Styling
	theme *styles.Theme

	// Dimensions
	width  int
	height int

	// Conversation state
	conversation *model.Conversation
	suggestion   *model.Suggestion

	// Correction pipeline
	checker       *correction.Checker
	correctionsOn bool
	checking      bool
	lastTyped     string

	// Collaborators
	client *ollama.Client
	store  *storage.HistoryStore

	// Assistant reply state
	thinking  bool
	replyTurn int
	cancelMgr *cancelManager

	// Connection state
	ollamaRunning bool
	lastError     string

	// UI components
	viewport     viewport.Model
	input        textinput.Model
	checkSpinner components.Spinner
	thinkSpinner components.Spinner
	statusBar    *components.StatusBar
	messageList  *components.MessageList
	keyMap       KeyMap

	// Animation state
	bubbleSprings map[string]*styles.EntranceSpring
	bannerSpring  *styles.EntranceSpring
	animating     bool
	animationsOn  bool

	showTimestamps bool
	quitting       bool
}

// Options carries the collaborators the chat view needs.
type Options struct {
	Theme   *styles.Theme
	Config  *config.Config
	Client  *ollama.Client
	Checker *correction.Checker
	Store   *storage.HistoryStore

	// Conversation resumes a stored transcript; nil starts fresh.
	Conversation *model.Conversation
}

// New creates a new chat model.
func New(opts Options) Model {
	theme := opts.Theme
	if theme == nil {
		theme = styles.NewTheme()
	}
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}

	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Type a message..."
	ti.CharLimit = 4096
	ti.PromptStyle = theme.InputPrompt
	ti.PlaceholderStyle = theme.InputPlaceholder
	ti.Focus()

	vp := viewport.New(80, 20)
	vp.SetContent("")

	conv := opts.Conversation
	if conv == nil {
		conv = model.NewConversation()
	}

	list := components.NewMessageList(theme)
	list.ShowTimestamps = cfg.UI.ShowTimestamps

	m := Model{
		theme:          theme,
		conversation:   conv,
		checker:        opts.Checker,
		correctionsOn:  cfg.Correction.Enabled,
		client:         opts.Client,
		store:          opts.Store,
		cancelMgr:      newCancelManager(),
		viewport:       vp,
		input:          ti,
		checkSpinner:   components.NewSpinner(theme),
		thinkSpinner:   components.NewThinkingSpinner(theme),
		statusBar:      components.NewStatusBar(theme),
		messageList:    list,
		keyMap:         DefaultKeyMap(),
		bubbleSprings:  map[string]*styles.EntranceSpring{},
		animationsOn:   cfg.UI.Animations,
		showTimestamps: cfg.UI.ShowTimestamps,
	}
	m.statusBar.CorrectionsOn = m.correctionsOn
	if opts.Client != nil {
		m.statusBar.ModelName = opts.Client.Model()
	}
	return m
}

// Init starts the initial commands: cursor blink and the Ollama health probe.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		CheckOllamaCmd(m.client),
	)
}

// Conversation exposes the transcript, mainly for tests.
func (m Model) Conversation() *model.Conversation {
	return m.conversation
}

// Suggestion exposes the current offer, mainly for tests.
func (m Model) Suggestion() *model.Suggestion {
	return m.suggestion
}
