// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/parlorchat/parlor-tui/internal/server"
)

// =============================================================================
// MESSAGES
// =============================================================================

// tickMsg drives the simulated playback clock while a preview is open.
type tickMsg time.Time

// tickInterval is the media clock resolution.
const tickInterval = 200 * time.Millisecond

// storeChangedMsg signals that the session store mutated, possibly from
// outside this model.
type storeChangedMsg struct{}

// uploadDoneMsg reports the outcome of a background file upload.
type uploadDoneMsg struct {
	uid  string
	resp *server.UploadResponse
	err  error
}

// botReplyMsg delivers the bot's answer for a previously sent message.
type botReplyMsg struct {
	sessionID string
	replyTo   string // user message ID, advanced to delivered on arrival
	content   string
}

// =============================================================================
// COMMANDS
// =============================================================================

func mediaTick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) waitForStoreChange() tea.Cmd {
	return func() tea.Msg {
		<-m.changes
		return storeChangedMsg{}
	}
}

// uploadFile sends the file at path to the relay in the background.
func (m Model) uploadFile(uid, path string) tea.Cmd {
	uploader := m.uploader
	return func() tea.Msg {
		if uploader == nil {
			return uploadDoneMsg{uid: uid, err: errNoRelay}
		}
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()

		resp, err := uploader.Upload(ctx, path)
		return uploadDoneMsg{uid: uid, resp: resp, err: err}
	}
}

// botReply produces the canned echo answer after a short delay, standing in
// for a real backend.
func botReply(sessionID, replyTo, userText string) tea.Cmd {
	return tea.Tick(600*time.Millisecond, func(time.Time) tea.Msg {
		return botReplyMsg{
			sessionID: sessionID,
			replyTo:   replyTo,
			content:   "You said: " + userText,
		}
	})
}

// errNoRelay is returned when attaching files without a configured relay.
var errNoRelay = &relayError{"no upload relay configured, start one with 'parlor serve'"}

type relayError struct{ msg string }

func (e *relayError) Error() string { return e.msg }
