// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/parlorchat/parlor-tui/internal/model"
	"github.com/parlorchat/parlor-tui/internal/preview"
	"github.com/parlorchat/parlor-tui/internal/server"
)

// seekStep is how far the arrow keys move the playhead, in seconds.
const seekStep = 5.0

// volumeStep is the volume change per keypress, in percent.
const volumeStep = 10

// Update handles all incoming Bubble Tea messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case tea.KeyMsg:
		if m.controller.Visible() {
			return m.handlePreviewKey(msg)
		}
		return m.handleChatKey(msg)

	case tickMsg:
		return m.handleTick()

	case storeChangedMsg:
		m.refreshViewport()
		return m, m.waitForStoreChange()

	case uploadDoneMsg:
		return m.handleUploadDone(msg)

	case botReplyMsg:
		return m.handleBotReply(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// =============================================================================
// LAYOUT
// =============================================================================

func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.theme.SetSize(msg.Width, msg.Height)

	transcriptHeight := msg.Height - chromeHeight(m.attachmentRows())
	if transcriptHeight < 3 {
		transcriptHeight = 3
	}
	m.viewport.Width = m.transcriptWidth()
	m.viewport.Height = transcriptHeight
	m.input.Width = msg.Width - 6

	m.ready = true
	m.refreshViewport()
	return m, nil
}

// =============================================================================
// CHAT KEYS
// =============================================================================

func (m Model) handleChatKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.Quit):
		m.Close()
		return m, tea.Quit

	case key.Matches(msg, m.keyMap.NewSession):
		m.store.CreateSession()
		m.refreshViewport()
		return m, nil

	case key.Matches(msg, m.keyMap.NextSession):
		m.selectAdjacentSession(1)
		return m, nil

	case key.Matches(msg, m.keyMap.PrevSession):
		m.selectAdjacentSession(-1)
		return m, nil

	case key.Matches(msg, m.keyMap.DeleteSession):
		m.store.RemoveSession(m.store.CurrentSessionID())
		m.refreshViewport()
		return m, nil

	case key.Matches(msg, m.keyMap.OpenPreview):
		if media := m.lastMediaMessage(); media != nil {
			m.openPreview(*media)
			return m, mediaTick()
		}
		m.statusMsg = "no media in this chat"
		return m, nil

	case key.Matches(msg, m.keyMap.Attach):
		m.input.SetValue("/attach ")
		m.input.CursorEnd()
		return m, nil

	case key.Matches(msg, m.keyMap.Submit):
		return m.handleSubmit()

	case key.Matches(msg, m.keyMap.Up), key.Matches(msg, m.keyMap.Down),
		key.Matches(msg, m.keyMap.PageUp), key.Matches(msg, m.keyMap.PageDown):
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// selectAdjacentSession moves the active session by delta, wrapping around.
func (m *Model) selectAdjacentSession(delta int) {
	titles := m.store.SessionTitles()
	if len(titles) == 0 {
		return
	}
	idx := m.store.SelectedIndex()
	if idx < 0 {
		idx = 0
	}
	idx = (idx + delta + len(titles)) % len(titles)
	if err := m.store.SelectSession(titles[idx].ID); err == nil {
		m.refreshViewport()
	}
}

func (m Model) handleSubmit() (tea.Model, tea.Cmd) {
	text := strings.TrimSpace(m.input.Value())
	if text == "" {
		return m, nil
	}
	m.input.Reset()
	m.statusMsg = ""

	if rest, ok := strings.CutPrefix(text, "/attach "); ok {
		return m.stageAttachment(strings.TrimSpace(rest))
	}

	msg := model.NewTextMessage(model.SenderUser, text)
	msg.Status = model.StatusPending
	if err := m.store.AddMessage(msg); err != nil {
		m.statusMsg = err.Error()
		return m, nil
	}
	m.store.AdvanceMessageStatus(msg.ID, model.StatusSent)
	m.refreshViewport()

	return m, botReply(m.store.CurrentSessionID(), msg.ID, text)
}

// stageAttachment adds the file to the staged list and starts the upload.
func (m Model) stageAttachment(path string) (tea.Model, tea.Cmd) {
	if path == "" {
		m.statusMsg = "usage: /attach <path>"
		return m, nil
	}

	item := model.NewFileItem(filepath.Base(path))
	m.store.UpdateFileList(append(m.store.CurrentFileList(), item))
	m.refreshViewport()

	return m, m.uploadFile(item.UID, path)
}

// =============================================================================
// PREVIEW KEYS
// =============================================================================

func (m Model) handlePreviewKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Any interaction wakes the controls back up
	m.controller.ShowControlsTemporarily()

	switch {
	case key.Matches(msg, m.keyMap.ClosePreview):
		m.closePreview()
		return m, nil

	case key.Matches(msg, m.keyMap.Quit):
		m.Close()
		return m, tea.Quit
	}

	if m.element == nil {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keyMap.PlayPause):
		m.controller.TogglePlay(m.element)

	case key.Matches(msg, m.keyMap.SeekBack):
		m.element.SetCurrentTime(m.element.CurrentTime() - seekStep)
		m.controller.HandleTimeUpdate(m.element)

	case key.Matches(msg, m.keyMap.SeekForward):
		m.element.SetCurrentTime(m.element.CurrentTime() + seekStep)
		m.controller.HandleTimeUpdate(m.element)

	case key.Matches(msg, m.keyMap.VolumeUp):
		m.controller.HandleVolumeSliderEnter()
		m.controller.HandleVolumeChange(m.controller.State().Volume+volumeStep, m.element)
		m.controller.HandleVolumeSliderLeave()

	case key.Matches(msg, m.keyMap.VolumeDown):
		m.controller.HandleVolumeSliderEnter()
		m.controller.HandleVolumeChange(m.controller.State().Volume-volumeStep, m.element)
		m.controller.HandleVolumeSliderLeave()

	case key.Matches(msg, m.keyMap.Mute):
		m.controller.ToggleMute(m.element)
	}

	return m, nil
}

// =============================================================================
// BACKGROUND EVENTS
// =============================================================================

func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if !m.controller.Visible() {
		return m, nil
	}
	if m.element != nil {
		m.element.Advance(tickInterval.Seconds())
		m.controller.HandleTimeUpdate(m.element)
	}
	return m, mediaTick()
}

func (m Model) handleUploadDone(msg uploadDoneMsg) (tea.Model, tea.Cmd) {
	items := m.store.CurrentFileList()
	for i := range items {
		if items[i].UID != msg.uid {
			continue
		}
		if msg.err != nil {
			items[i].Status = model.FileStatusError
			m.statusMsg = "upload failed: " + msg.err.Error()
			break
		}
		items[i].Status = model.FileStatusDone
		items[i].URL = msg.resp.URL
		items[i].Type = msg.resp.Type
		items[i].Size = msg.resp.Size
		break
	}
	m.store.UpdateFileList(items)

	if msg.err != nil {
		m.refreshViewport()
		return m, nil
	}

	if err := m.store.AddMessage(mediaMessageFor(msg.resp)); err != nil {
		m.statusMsg = err.Error()
	}
	m.refreshViewport()
	return m, nil
}

// mediaMessageFor picks the message type from the uploaded file's
// classification. Files without a renderer become plain link messages.
func mediaMessageFor(resp *server.UploadResponse) model.Message {
	info := preview.FileInfo{URL: resp.URL, Name: resp.Name, Type: resp.Type, Size: resp.Size}

	var msgType model.MessageType
	switch {
	case info.IsImage():
		msgType = model.TypeImage
	case info.IsVideo():
		msgType = model.TypeVideo
	case info.IsAudio():
		msgType = model.TypeAudio
	default:
		msg := model.NewTextMessage(model.SenderUser, resp.Name+" → "+resp.URL)
		msg.Status = model.StatusSent
		return msg
	}

	msg := model.NewMediaMessage(model.SenderUser, msgType, resp.URL)
	msg.Content = resp.Name
	msg.FileType = resp.Type
	msg.FileSize = resp.Size
	msg.Status = model.StatusSent
	return msg
}

func (m Model) handleBotReply(msg botReplyMsg) (tea.Model, tea.Cmd) {
	// Replies land in the session they were asked in. If the user switched
	// chats meanwhile, hop over, append, and hop back. A deleted session
	// drops the reply.
	current := m.store.CurrentSessionID()
	if current != msg.sessionID {
		if err := m.store.SelectSession(msg.sessionID); err != nil {
			return m, nil
		}
		defer func() {
			_ = m.store.SelectSession(current)
			m.refreshViewport()
		}()
	}

	m.store.AdvanceMessageStatus(msg.replyTo, model.StatusDelivered)
	if err := m.store.AddMessage(model.NewTextMessage(model.SenderBot, msg.content)); err != nil {
		m.statusMsg = err.Error()
	}
	m.refreshViewport()
	return m, nil
}
