// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage provides transcript persistence for redraft.
//
// Conversations and their messages are stored in a single SQLite database
// (pure Go driver, no cgo). Accepted corrections are persisted as revisions
// so a replaced message keeps its original text across restarts.
package storage
