// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// chat.go - Line-mode chat REPL for redraft.
//
// Command: chat
// Short:   Interactive chat without the full-screen TUI
//
// Examples:
//
//	redraft chat                      Start line-mode chat
//	redraft chat --model llama3.2:3b  Use a specific model
//	redraft chat --no-corrections     Disable the correction pipeline
//
// Interactive commands (during chat):
//
//	/help, /h      Show available commands
//	/clear, /c     Clear conversation history
//	/history       Show conversation so far
//	/quit, /q      Exit chat
//	Ctrl+C, Ctrl+D Exit chat
//
// The REPL runs the same correction pipeline as the TUI, collapsed to line
// granularity: pressing Enter ends the quiet period, so each line is checked
// against the previous message immediately and a "did you mean" offer is
// printed when the model judges it a correction.
package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/peterh/liner"

	"github.com/jeranaias/redraft/internal/config"
	"github.com/jeranaias/redraft/internal/correction"
	"github.com/jeranaias/redraft/internal/model"
	"github.com/jeranaias/redraft/internal/ollama"
	"github.com/jeranaias/redraft/internal/storage"
	"github.com/jeranaias/redraft/internal/ui/styles"
	"github.com/jeranaias/redraft/internal/util"
)

// =============================================================================
// STYLES
// =============================================================================

var (
	promptStyle = lipgloss.NewStyle().
			Foreground(styles.Teal).
			Bold(true)

	infoStyle = lipgloss.NewStyle().
			Foreground(styles.TextSecondary)

	offerStyle = lipgloss.NewStyle().
			Foreground(styles.Indigo).
			Bold(true)

	assistantStyle = lipgloss.NewStyle().
			Foreground(styles.Emerald)

	warningStyle = lipgloss.NewStyle().
			Foreground(styles.Amber)
)

// =============================================================================
// INPUT HISTORY
// =============================================================================

// ChatCLI wraps liner with persistent input history.
type ChatCLI struct {
	line        *liner.State
	historyFile string
}

// NewChatCLI creates a ChatCLI with history loaded from ~/.redraft.
func NewChatCLI() *ChatCLI {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	configDir, err := config.ConfigDir()
	if err != nil {
		configDir = os.TempDir()
	}

	c := &ChatCLI{
		line:        line,
		historyFile: filepath.Join(configDir, "chat_history"),
	}
	c.loadHistory()
	return c
}

func (c *ChatCLI) loadHistory() {
	if f, err := os.Open(c.historyFile); err == nil {
		c.line.ReadHistory(f)
		f.Close()
	}
}

// ReadInput reads one line with history navigation.
func (c *ChatCLI) ReadInput(prompt string) (string, error) {
	input, err := c.line.Prompt(prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(input) != "" {
		c.line.AppendHistory(input)
	}
	return input, nil
}

// Confirm asks a yes/no question, defaulting to no.
func (c *ChatCLI) Confirm(prompt string) bool {
	answer, err := c.line.Prompt(prompt)
	if err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

// Close saves history and releases the terminal.
func (c *ChatCLI) Close() {
	if dir := filepath.Dir(c.historyFile); dir != "" {
		os.MkdirAll(dir, 0700)
	}
	if f, err := os.OpenFile(c.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600); err == nil {
		c.line.WriteHistory(f)
		f.Close()
	}
	c.line.Close()
}

// =============================================================================
// SESSION
// =============================================================================

// chatSession holds the state of a line-mode chat.
type chatSession struct {
	cfg          *config.Config
	client       *ollama.Client
	checker      *correction.Checker
	store        *storage.HistoryStore
	conversation *model.Conversation
	input        *ChatCLI

	correctionsOn bool
	replyTurn     int
	startTime     time.Time
}

// replAcknowledgments mirrors the TUI's canned assistant replies.
var replAcknowledgments = []string{
	"Got it!",
	"Sounds good to me.",
	"Noted. Anything else?",
	"Okay, I'm with you so far.",
	"Makes sense.",
}

// HandleChatCommand handles the "chat" command.
func HandleChatCommand(parser *ArgParser) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	clientConfig := ollama.DefaultConfig()
	clientConfig.BaseURL = cfg.Local.OllamaURL
	clientConfig.Model = parser.FlagOrDefault("model", cfg.Local.OllamaModel)
	client := ollama.NewClientWithConfig(clientConfig)

	checker := correction.NewChecker(client, correction.Config{
		QuietPeriod: time.Duration(cfg.Correction.QuietMs) * time.Millisecond,
		MinChars:    cfg.Correction.MinChars,
		RatePerSec:  cfg.Correction.RatePerSec,
	})

	var store *storage.HistoryStore
	if cfg.History.Enabled {
		if path, err := cfg.HistoryPath(); err == nil {
			if s, err := storage.Open(path); err == nil {
				s.MaxConversations = cfg.History.MaxConversations
				store = s
				defer store.Close()
			}
		}
	}

	session := &chatSession{
		cfg:           cfg,
		client:        client,
		checker:       checker,
		store:         store,
		conversation:  model.NewConversation(),
		input:         NewChatCLI(),
		correctionsOn: cfg.Correction.Enabled && !parser.BoolFlag("no-corrections"),
		startTime:     time.Now(),
	}
	defer session.input.Close()

	fmt.Println()
	fmt.Println(promptStyle.Render("redraft chat"))
	fmt.Printf("%s %s\n", infoStyle.Render("Model:"), client.Model())
	if session.correctionsOn {
		fmt.Println(infoStyle.Render("Corrections on: type a revised version of your last message and redraft will offer to replace it."))
	} else {
		fmt.Println(infoStyle.Render("Corrections off."))
	}
	fmt.Println(infoStyle.Render("Type your message and press Enter. Commands: /help, /quit"))
	fmt.Println()

	for {
		input, err := session.input.ReadInput(promptStyle.Render("you> "))
		if err != nil {
			// Ctrl+C (ErrPromptAborted) or Ctrl+D both end the session.
			fmt.Println()
			fmt.Println(infoStyle.Render("Goodbye!"))
			return nil
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		if strings.HasPrefix(input, "/") {
			if !session.handleSlashCommand(input) {
				fmt.Println(infoStyle.Render("Goodbye!"))
				return nil
			}
			continue
		}
		if strings.EqualFold(input, "exit") || strings.EqualFold(input, "quit") {
			fmt.Println(infoStyle.Render("Goodbye!"))
			return nil
		}

		session.processLine(input)
	}
}

// =============================================================================
// LINE PROCESSING
// =============================================================================

// processLine runs the correction offer, then appends the line (or the
// revision) and prints the assistant acknowledgment.
func (s *chatSession) processLine(line string) {
	if s.maybeOfferCorrection(line) {
		return
	}

	s.conversation.AddUserMessage(line)

	reply := replAcknowledgments[s.replyTurn%len(replAcknowledgments)]
	s.replyTurn++
	s.conversation.AddAssistantMessage(reply)
	fmt.Printf("%s %s\n\n", assistantStyle.Render("assistant>"), reply)

	s.save()
}

// maybeOfferCorrection checks the line against the previous message. It
// returns true when an offer was accepted (the line then replaces the old
// message instead of being sent).
func (s *chatSession) maybeOfferCorrection(line string) bool {
	if !s.correctionsOn {
		return false
	}
	prev := s.conversation.GetLastUserMessage()

	// Enter ends the quiet period in line mode; check immediately.
	pending, ok := s.checker.Observe(prev, line)
	if !ok {
		return false
	}

	sug, err := s.checker.Check(pending)
	if err != nil || !sug.Offerable() {
		// Failed or negative checks are silent, same as the TUI.
		return false
	}

	fmt.Printf("%s %s\n",
		offerStyle.Render("did you mean:"),
		sug.Corrected)
	if !s.input.Confirm(infoStyle.Render("replace previous message? [y/N] ")) {
		return false
	}

	s.conversation.ReplaceMessageContent(sug.MessageID, sug.Corrected)
	fmt.Printf("%s %s\n\n",
		assistantStyle.Render("[revised]"),
		sug.Corrected)
	s.save()
	return true
}

func (s *chatSession) save() {
	if s.store == nil {
		return
	}
	if err := s.store.Save(s.conversation); err != nil {
		fmt.Fprintf(os.Stderr, "%s failed to save history: %v\n",
			warningStyle.Render("[warn]"), err)
	}
}

// =============================================================================
// SLASH COMMANDS
// =============================================================================

// handleSlashCommand processes a slash command; false means exit.
func (s *chatSession) handleSlashCommand(cmd string) bool {
	switch strings.ToLower(strings.Fields(cmd)[0]) {
	case "/help", "/h", "/?":
		s.printHelp()
		return true

	case "/clear", "/c":
		s.conversation.ClearHistory()
		s.checker.Invalidate()
		fmt.Println(infoStyle.Render("[conversation cleared]"))
		return true

	case "/history":
		s.printHistory()
		return true

	case "/quit", "/q", "/exit":
		return false

	default:
		fmt.Println(warningStyle.Render("unknown command (type /help)"))
		return true
	}
}

func (s *chatSession) printHelp() {
	fmt.Println()
	commands := []struct {
		cmd  string
		desc string
	}{
		{"/help, /h", "Show this help"},
		{"/clear, /c", "Clear conversation history"},
		{"/history", "Show conversation so far"},
		{"/quit, /q", "Exit chat"},
	}
	for _, c := range commands {
		fmt.Printf("  %s  %s\n",
			offerStyle.Render(fmt.Sprintf("%-12s", c.cmd)),
			infoStyle.Render(c.desc))
	}
	fmt.Println()
}

func (s *chatSession) printHistory() {
	if s.conversation.IsEmpty() {
		fmt.Println(infoStyle.Render("[no messages yet]"))
		return
	}
	fmt.Println()
	for i, msg := range s.conversation.Messages {
		label := msg.Role.DisplayName()
		text := util.TruncateRunes(strings.ReplaceAll(msg.Content, "\n", " "), 100)
		if msg.Revised {
			text += " " + infoStyle.Render("(edited)")
		}
		fmt.Printf("  %d. %s: %s\n", i+1, label, text)
	}
	fmt.Println()
}
