// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations, messages,
// and correction suggestions.
//
// # Key Types
//
//   - Conversation: Container for a chat session with messages and metadata
//   - Message: Single message with role, content, timestamp, and revision state
//   - Suggestion: A correction offer produced by the checker for a prior message
//   - Role: Message role enumeration (user, assistant, system)
//
// # Usage
//
// Create a conversation and send a message:
//
//	conv := model.NewConversation()
//	msg := conv.AddUserMessage("Lets meet at the park")
//
// Apply an accepted correction:
//
//	conv.ReplaceMessageContent(msg.ID, "Let's meet at the park")
package model
