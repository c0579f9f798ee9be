// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for chat sessions, messages,
// and staged attachments.
package model

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/parlorchat/parlor-tui/internal/util"
)

// =============================================================================
// FILE ITEM
// =============================================================================

// Upload lifecycle states for a staged attachment.
const (
	FileStatusUploading = "uploading"
	FileStatusDone      = "done"
	FileStatusError     = "error"
)

// FileItem describes an attachment staged for the next outgoing user
// message. It is ephemeral: owned solely by its session and discarded when
// that message is sent.
type FileItem struct {
	UID    string `json:"uid"`
	Name   string `json:"name"`
	Status string `json:"status"`
	URL    string `json:"url,omitempty"`
	Type   string `json:"type,omitempty"`
	Size   int64  `json:"size,omitempty"`
}

// NewFileItem creates a staged attachment descriptor with a generated UID.
func NewFileItem(name string) FileItem {
	return FileItem{
		UID:    uuid.NewString(),
		Name:   name,
		Status: FileStatusUploading,
	}
}

// =============================================================================
// SESSION
// =============================================================================

// Session holds one chat conversation: its ordered message history and the
// attachments staged for the next outgoing user message.
type Session struct {
	// Identity
	ID        string `json:"id"`
	Title     string `json:"title"`
	CreatedAt int64  `json:"createdAt"` // Unix milliseconds
	UpdatedAt int64  `json:"updatedAt"`

	// Messages, in append (= chronological) order
	Messages []Message `json:"messages"`

	// Attachments staged for the next outgoing user message
	FileList []FileItem `json:"fileList"`
}

// NewSession creates a session with a generated ID and current timestamps.
func NewSession(title string) *Session {
	now := time.Now().UnixMilli()
	return &Session{
		ID:        uuid.NewString(),
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
		Messages:  make([]Message, 0),
		FileList:  make([]FileItem, 0),
	}
}

// Append adds a message to the session and bumps UpdatedAt.
func (s *Session) Append(msg Message) {
	s.Messages = append(s.Messages, msg)
	s.touch()
}

// touch bumps UpdatedAt, keeping it monotonically non-decreasing.
func (s *Session) touch() {
	now := time.Now().UnixMilli()
	if now > s.UpdatedAt {
		s.UpdatedAt = now
	}
}

// ClearFileList discards all staged attachments.
func (s *Session) ClearFileList() {
	s.FileList = s.FileList[:0]
}

// LastMessage returns the most recent message, or nil if the session is
// empty.
func (s *Session) LastMessage() *Message {
	if len(s.Messages) == 0 {
		return nil
	}
	return &s.Messages[len(s.Messages)-1]
}

// MessageCount returns the number of messages in the session.
func (s *Session) MessageCount() int {
	return len(s.Messages)
}

// Preview returns a truncated preview string from the first user message.
// Returns empty string if no user messages exist.
func (s *Session) Preview() string {
	for i := range s.Messages {
		msg := &s.Messages[i]
		if msg.Sender == SenderUser && msg.Content != "" {
			return util.TruncateRunes(msg.Content, 80)
		}
	}
	return ""
}

// ContainsText reports whether any message content matches the query,
// case-insensitively.
func (s *Session) ContainsText(query string) bool {
	query = strings.ToLower(query)
	for i := range s.Messages {
		if strings.Contains(strings.ToLower(s.Messages[i].Content), query) {
			return true
		}
	}
	return false
}

// =============================================================================
// SESSION EXPORT
// =============================================================================

// ExportMarkdown exports the session as a Markdown formatted string,
// including metadata, timestamps, and all messages with sender labels.
func (s *Session) ExportMarkdown() string {
	var sb strings.Builder
	sb.WriteString("# " + s.Title + "\n\n")
	sb.WriteString("Created: " + time.UnixMilli(s.CreatedAt).Format(time.RFC3339) + "\n\n")
	sb.WriteString("---\n\n")

	for i := range s.Messages {
		msg := &s.Messages[i]
		label := "**" + msg.Sender.DisplayName() + "**"
		stamp := time.UnixMilli(msg.Timestamp).Format("15:04")
		sb.WriteString(label + " (" + stamp + "):\n\n")
		if msg.IsText() {
			sb.WriteString(msg.Content)
		} else {
			sb.WriteString("[" + string(msg.Type) + "] " + msg.URL)
		}
		sb.WriteString("\n\n---\n\n")
	}

	return sb.String()
}

// ExportJSON exports the session as a pretty-printed JSON byte array.
func (s *Session) ExportJSON() ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}
