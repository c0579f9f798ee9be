// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for chat sessions, messages,
// and staged attachments.
package model

import (
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// SENDER TYPE
// =============================================================================

// Sender identifies who authored a message.
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// String returns the string representation of the sender.
func (s Sender) String() string {
	return string(s)
}

// DisplayName returns a human-readable name for the sender.
func (s Sender) DisplayName() string {
	switch s {
	case SenderUser:
		return "You"
	case SenderBot:
		return "Bot"
	default:
		return string(s)
	}
}

// =============================================================================
// MESSAGE TYPE
// =============================================================================

// MessageType identifies the payload kind of a message.
type MessageType string

const (
	TypeText  MessageType = "text"
	TypeImage MessageType = "image"
	TypeAudio MessageType = "audio"
	TypeVideo MessageType = "video"
)

// =============================================================================
// MESSAGE STATUS
// =============================================================================

// Status tracks the delivery state of a message.
type Status string

const (
	StatusPending   Status = "pending"
	StatusSent      Status = "sent"
	StatusDelivered Status = "delivered"
	StatusRead      Status = "read"
	StatusFailed    Status = "failed"
)

// statusTransitions maps each status to the set it may advance to.
var statusTransitions = map[Status][]Status{
	StatusPending:   {StatusSent, StatusFailed},
	StatusSent:      {StatusDelivered, StatusFailed},
	StatusDelivered: {StatusRead, StatusFailed},
	StatusRead:      {},
	StatusFailed:    {},
}

// CanTransition reports whether a message status may advance to next.
// Terminal states (read, failed) accept no further transitions.
func (s Status) CanTransition(next Status) bool {
	for _, allowed := range statusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// =============================================================================
// MESSAGE
// =============================================================================

// Message represents a single message in a session.
//
// A message is immutable once appended to a session, except for Status,
// which advances through the delivery lifecycle.
type Message struct {
	// Identity
	ID        string      `json:"id"`
	Sender    Sender      `json:"sender"`
	Avatar    string      `json:"avatar"`
	Type      MessageType `json:"type"`
	Timestamp int64       `json:"timestamp"` // Unix milliseconds

	// Delivery state
	Status Status `json:"status,omitempty"`

	// Model tag (bot messages only)
	Model string `json:"model,omitempty"`

	// Text payload
	Content string `json:"content,omitempty"`

	// Media payload (image, audio, video)
	URL       string  `json:"url,omitempty"`
	FileType  string  `json:"fileType,omitempty"`
	FileSize  int64   `json:"fileSize,omitempty"`
	Thumbnail string  `json:"thumbnail,omitempty"` // image preview
	Poster    string  `json:"poster,omitempty"`    // video cover frame
	Duration  float64 `json:"duration,omitempty"`  // seconds, audio/video
	Width     int     `json:"width,omitempty"`
	Height    int     `json:"height,omitempty"`
}

// NewMessage creates a message with a generated ID and current timestamp.
func NewMessage(sender Sender, msgType MessageType) Message {
	return Message{
		ID:        uuid.NewString(),
		Sender:    sender,
		Avatar:    string(sender),
		Type:      msgType,
		Timestamp: time.Now().UnixMilli(),
	}
}

// NewTextMessage creates a text message.
func NewTextMessage(sender Sender, content string) Message {
	msg := NewMessage(sender, TypeText)
	msg.Content = content
	return msg
}

// NewMediaMessage creates an image, audio, or video message pointing at an
// uploaded file URL.
func NewMediaMessage(sender Sender, msgType MessageType, url string) Message {
	msg := NewMessage(sender, msgType)
	msg.URL = url
	return msg
}

// IsText reports whether the message carries a plain-text payload.
func (m *Message) IsText() bool {
	return m.Type == TypeText
}

// IsMedia reports whether the message carries a media payload.
func (m *Message) IsMedia() bool {
	return m.Type == TypeImage || m.Type == TypeAudio || m.Type == TypeVideo
}

// AdvanceStatus applies a delivery status transition if it is valid.
// Returns true if the status changed.
func (m *Message) AdvanceStatus(next Status) bool {
	if m.Status == "" {
		// Unset status only admits the start of the lifecycle.
		if next != StatusPending {
			return false
		}
		m.Status = next
		return true
	}
	if !m.Status.CanTransition(next) {
		return false
	}
	m.Status = next
	return true
}
