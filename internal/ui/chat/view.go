// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/parlorchat/parlor-tui/internal/ui/components"
	"github.com/parlorchat/parlor-tui/internal/util"
)

// sidebarWidth is the fixed cell width of the session list column.
const sidebarWidth = 24

// chromeHeight is everything that is not transcript: header, attachment
// rows, the input line with its border, and the status bar.
func chromeHeight(attachmentRows int) int {
	return 1 + attachmentRows + 2 + 1
}

func (m *Model) transcriptWidth() int {
	w := m.width - sidebarWidth - 2
	if w < 20 {
		w = 20
	}
	return w
}

func (m *Model) attachmentRows() int {
	return len(m.store.CurrentFileList())
}

// View renders the complete chat screen.
func (m Model) View() string {
	if !m.ready {
		return "loading..."
	}

	if m.controller.Visible() {
		return m.renderPreviewScreen()
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	main := lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(), m.viewport.View())
	b.WriteString(main)
	b.WriteString("\n")

	attachments := components.NewAttachmentList(m.store.CurrentFileList(), m.theme)
	attachments.Width = m.width
	if view := attachments.View(); view != "" {
		b.WriteString(view)
		b.WriteString("\n")
	}

	b.WriteString(m.theme.InputContainer.Width(m.width - 2).Render(m.input.View()))
	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())

	return b.String()
}

// =============================================================================
// SCREEN PIECES
// =============================================================================

func (m *Model) renderHeader() string {
	title := "untitled"
	if s := m.store.CurrentSession(); s != nil {
		title = s.Title
	}
	brand := m.theme.HeaderBrand.Render("parlor")
	name := m.theme.HeaderTitle.Render(util.TruncateWidth(title, m.width-16))
	return m.theme.Header.Width(m.width).Render(brand + "  " + name)
}

func (m *Model) renderSidebar() string {
	titles := m.store.SessionTitles()
	selected := m.store.SelectedIndex()

	var lines []string
	for i, t := range titles {
		label := util.TruncateWidth(t.Title, sidebarWidth-4)
		if i == selected {
			lines = append(lines, m.theme.SessionItemSelected.Render(label))
		} else {
			lines = append(lines, m.theme.SessionItem.Render(label))
		}
	}
	if len(lines) == 0 {
		lines = append(lines, m.theme.SessionPreview.Render("no chats"))
	}

	return m.theme.Sidebar.
		Width(sidebarWidth).
		Height(m.viewport.Height).
		Render(strings.Join(lines, "\n"))
}

// renderTranscript renders every message of the current session for the
// viewport.
func (m *Model) renderTranscript() string {
	msgs := m.store.CurrentMessages()
	if len(msgs) == 0 {
		return m.theme.SessionPreview.Render("say something to get started")
	}

	var blocks []string
	for i := range msgs {
		bubble := components.NewMessageBubble(&msgs[i], m.theme)
		bubble.SetWidth(m.transcriptWidth())
		bubble.ShowTimestamp = m.uiCfg.ShowTimestamps
		bubble.Markdown = m.uiCfg.MarkdownRendering
		blocks = append(blocks, bubble.View())
	}

	separator := "\n\n"
	if m.uiCfg.CompactMode {
		separator = "\n"
	}
	return strings.Join(blocks, separator)
}

// refreshViewport re-renders the transcript and keeps the view pinned to
// the latest message.
func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}
	atBottom := m.viewport.AtBottom()
	m.viewport.SetContent(m.renderTranscript())
	if atBottom {
		m.viewport.GotoBottom()
	}
}

func (m *Model) renderStatusBar() string {
	if m.statusMsg != "" {
		return m.theme.StatusBar.Width(m.width).Render(m.theme.ErrorStyle.Render(m.statusMsg))
	}

	shortcuts := []string{
		m.theme.ShortcutKey.Render("C-n") + " " + m.theme.ShortcutDesc.Render("new"),
		m.theme.ShortcutKey.Render("Tab") + " " + m.theme.ShortcutDesc.Render("switch"),
		m.theme.ShortcutKey.Render("C-d") + " " + m.theme.ShortcutDesc.Render("delete"),
		m.theme.ShortcutKey.Render("C-p") + " " + m.theme.ShortcutDesc.Render("preview"),
		m.theme.ShortcutKey.Render("C-c") + " " + m.theme.ShortcutDesc.Render("quit"),
	}
	return m.theme.StatusBar.Width(m.width).Render(strings.Join(shortcuts, "  "))
}

// renderPreviewScreen shows the media overlay centered over a dimmed
// backdrop, replacing the transcript while open.
func (m Model) renderPreviewScreen() string {
	overlay := components.NewMediaOverlay(m.controller.CurrentFile(), m.controller.State(), m.theme)
	overlay.Width = m.width - 8

	return lipgloss.Place(
		m.width, m.height,
		lipgloss.Center, lipgloss.Center,
		overlay.View(),
	)
}
