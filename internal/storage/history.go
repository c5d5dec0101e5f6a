// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage provides transcript persistence for redraft.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/jeranaias/redraft/internal/model"
)

// =============================================================================
// SCHEMA
// =============================================================================

const schema = `
CREATE TABLE IF NOT EXISTS conversations (
	id         TEXT PRIMARY KEY,
	title      TEXT NOT NULL DEFAULT '',
	created_at INTEGER NOT NULL,
	updated_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS messages (
	id              TEXT PRIMARY KEY,
	conversation_id TEXT NOT NULL REFERENCES conversations(id) ON DELETE CASCADE,
	seq             INTEGER NOT NULL,
	role            TEXT NOT NULL,
	content         TEXT NOT NULL,
	original        TEXT NOT NULL DEFAULT '',
	revised         INTEGER NOT NULL DEFAULT 0,
	revised_at      INTEGER,
	created_at      INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_messages_conversation
	ON messages(conversation_id, seq);
`

// =============================================================================
// HISTORY STORE
// =============================================================================

// HistoryStore persists conversations to SQLite.
type HistoryStore struct {
	db *sql.DB

	// MaxConversations limits stored conversations (0 = unlimited);
	// the oldest by updated_at are pruned on save.
	MaxConversations int
}

// Open opens (creating if needed) the history database at path.
func Open(path string) (*HistoryStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite supports one writer at a time; keep a single connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &HistoryStore{db: db, MaxConversations: 100}, nil
}

// Close releases the database handle.
func (s *HistoryStore) Close() error {
	return s.db.Close()
}

// =============================================================================
// SAVE
// =============================================================================

// Save upserts a conversation and all its messages, then prunes old
// conversations beyond MaxConversations.
func (s *HistoryStore) Save(conv *model.Conversation) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO conversations (id, title, created_at, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET title = excluded.title, updated_at = excluded.updated_at`,
		conv.ID, conv.Title, conv.CreatedAt.UnixMilli(), conv.UpdatedAt.UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to save conversation: %w", err)
	}

	// Replace the message set wholesale; transcripts are small and
	// revisions rewrite earlier rows anyway.
	if _, err := tx.Exec(`DELETE FROM messages WHERE conversation_id = ?`, conv.ID); err != nil {
		return fmt.Errorf("failed to clear messages: %w", err)
	}

	for i, msg := range conv.Messages {
		var revisedAt any
		if msg.Revised {
			revisedAt = msg.RevisedAt.UnixMilli()
		}
		_, err := tx.Exec(`
			INSERT INTO messages (id, conversation_id, seq, role, content, original, revised, revised_at, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			msg.ID, conv.ID, i, msg.Role.String(), msg.Content, msg.Original,
			boolToInt(msg.Revised), revisedAt, msg.Timestamp.UnixMilli())
		if err != nil {
			return fmt.Errorf("failed to save message: %w", err)
		}
	}

	if s.MaxConversations > 0 {
		_, err := tx.Exec(`
			DELETE FROM conversations WHERE id NOT IN (
				SELECT id FROM conversations ORDER BY updated_at DESC LIMIT ?
			)`, s.MaxConversations)
		if err != nil {
			return fmt.Errorf("failed to prune conversations: %w", err)
		}
	}

	return tx.Commit()
}

// =============================================================================
// LOAD
// =============================================================================

// Load retrieves a conversation by ID. Returns sql.ErrNoRows if absent.
func (s *HistoryStore) Load(id string) (*model.Conversation, error) {
	conv := &model.Conversation{ID: id}

	var createdMs, updatedMs int64
	err := s.db.QueryRow(`SELECT title, created_at, updated_at FROM conversations WHERE id = ?`, id).
		Scan(&conv.Title, &createdMs, &updatedMs)
	if err != nil {
		return nil, err
	}
	conv.CreatedAt = time.UnixMilli(createdMs)
	conv.UpdatedAt = time.UnixMilli(updatedMs)

	rows, err := s.db.Query(`
		SELECT id, role, content, original, revised, revised_at, created_at
		FROM messages WHERE conversation_id = ? ORDER BY seq`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load messages: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		msg := &model.Message{}
		var role string
		var revised int
		var revisedAt sql.NullInt64
		var createdAt int64
		if err := rows.Scan(&msg.ID, &role, &msg.Content, &msg.Original, &revised, &revisedAt, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		msg.Role = model.Role(role)
		msg.Revised = revised != 0
		if revisedAt.Valid {
			msg.RevisedAt = time.UnixMilli(revisedAt.Int64)
		}
		msg.Timestamp = time.UnixMilli(createdAt)
		conv.Messages = append(conv.Messages, msg)
	}
	return conv, rows.Err()
}

// LoadLatest retrieves the most recently updated conversation, or nil when
// the store is empty.
func (s *HistoryStore) LoadLatest() (*model.Conversation, error) {
	var id string
	err := s.db.QueryRow(`SELECT id FROM conversations ORDER BY updated_at DESC LIMIT 1`).Scan(&id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return s.Load(id)
}

// =============================================================================
// LISTING AND DELETION
// =============================================================================

// Meta describes a stored conversation for listings.
type Meta struct {
	ID           string
	Title        string
	MessageCount int
	UpdatedAt    time.Time
}

// ListRecent returns metadata for the most recent conversations.
func (s *HistoryStore) ListRecent(limit int) ([]Meta, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(`
		SELECT c.id, c.title, c.updated_at,
		       (SELECT COUNT(*) FROM messages m WHERE m.conversation_id = c.id)
		FROM conversations c ORDER BY c.updated_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list conversations: %w", err)
	}
	defer rows.Close()

	var metas []Meta
	for rows.Next() {
		var m Meta
		var updatedMs int64
		if err := rows.Scan(&m.ID, &m.Title, &updatedMs, &m.MessageCount); err != nil {
			return nil, fmt.Errorf("failed to scan meta: %w", err)
		}
		m.UpdatedAt = time.UnixMilli(updatedMs)
		metas = append(metas, m)
	}
	return metas, rows.Err()
}

// Delete removes a conversation and its messages.
func (s *HistoryStore) Delete(id string) error {
	_, err := s.db.Exec(`DELETE FROM conversations WHERE id = ?`, id)
	return err
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
