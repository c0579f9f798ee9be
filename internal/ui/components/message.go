// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"path"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/parlorchat/parlor-tui/internal/model"
	"github.com/parlorchat/parlor-tui/internal/preview"
	"github.com/parlorchat/parlor-tui/internal/ui/styles"
	"github.com/parlorchat/parlor-tui/internal/util"
)

// =============================================================================
// MESSAGE BUBBLE COMPONENT
// =============================================================================

// MessageBubble renders a single message as a styled bubble.
type MessageBubble struct {
	Message       *model.Message
	Width         int
	ShowTimestamp bool
	Markdown      bool
	theme         *styles.Theme
}

// NewMessageBubble creates a new MessageBubble.
func NewMessageBubble(msg *model.Message, theme *styles.Theme) *MessageBubble {
	if msg == nil {
		msg = &model.Message{Sender: model.SenderBot}
	}
	return &MessageBubble{
		Message:       msg,
		Width:         80,
		ShowTimestamp: true,
		Markdown:      true,
		theme:         theme,
	}
}

// SetWidth sets the bubble width.
func (b *MessageBubble) SetWidth(width int) {
	b.Width = width
}

// View renders the message bubble.
func (b *MessageBubble) View() string {
	if b.Message.IsMedia() {
		return b.renderMediaBubble()
	}
	switch b.Message.Sender {
	case model.SenderUser:
		return b.renderUserBubble()
	default:
		return b.renderBotBubble()
	}
}

// ==========================================================================
// USER BUBBLE - Blue tones, right-aligned feel
// ==========================================================================

func (b *MessageBubble) renderUserBubble() string {
	content := b.Message.Content
	if content == "" {
		content = "..."
	}

	maxContentWidth := b.Width - 12
	if maxContentWidth < 20 {
		maxContentWidth = 20
	}
	wrappedContent := wordWrap(content, maxContentWidth)
	contentWidth := minInt(maxLineWidth(wrappedContent)+4, b.Width-8)

	bubble := b.theme.UserBubble.Width(contentWidth).Render(wrappedContent)

	header := b.renderHeader(b.Message.Sender.DisplayName())
	if status := b.renderStatus(); status != "" {
		header = header + " " + status
	}

	// Right-align the bubble with a left margin
	leftMargin := b.Width - contentWidth - 4
	if leftMargin < 0 {
		leftMargin = 0
	}
	marginStyle := lipgloss.NewStyle().MarginLeft(leftMargin)

	return lipgloss.JoinVertical(lipgloss.Right,
		marginStyle.Render(header),
		marginStyle.Render(bubble),
	)
}

// ==========================================================================
// BOT BUBBLE - Purple tones, left-aligned, markdown rendered
// ==========================================================================

func (b *MessageBubble) renderBotBubble() string {
	content := b.Message.Content
	if b.Markdown && content != "" {
		content = RenderMarkdown(content)
	}
	if content == "" {
		content = "..."
	}

	maxContentWidth := b.Width - 12
	if maxContentWidth < 20 {
		maxContentWidth = 20
	}
	// Markdown output is already wrapped by the renderer; only wrap plain text.
	if !b.Markdown {
		content = wordWrap(content, maxContentWidth)
	}
	contentWidth := minInt(maxLineWidth(content)+4, b.Width-8)

	bubble := b.theme.BotBubble.Width(contentWidth).Render(content)
	header := b.renderHeader(b.Message.Sender.DisplayName())

	return lipgloss.JoinVertical(lipgloss.Left, header, bubble)
}

// ==========================================================================
// MEDIA BUBBLE - File card with type icon, name, size, duration
// ==========================================================================

func (b *MessageBubble) renderMediaBubble() string {
	name := b.Message.Content
	if name == "" && b.Message.URL != "" {
		name = path.Base(b.Message.URL)
	}
	if name == "" {
		name = "attachment"
	}
	info := &preview.FileInfo{Name: name, Type: b.Message.FileType, URL: b.Message.URL}

	icon := mediaIcon(info)

	nameWidth := b.Width - 20
	if nameWidth < 12 {
		nameWidth = 12
	}
	line := icon + " " + util.TruncateWidth(name, nameWidth)

	var details []string
	if b.Message.FileSize > 0 {
		details = append(details, formatFileSize(b.Message.FileSize))
	}
	if b.Message.Duration > 0 {
		details = append(details, util.FormatMediaTime(b.Message.Duration))
	}
	if b.Message.Width > 0 && b.Message.Height > 0 {
		details = append(details,
			util.IntToString(b.Message.Width)+"x"+util.IntToString(b.Message.Height))
	}

	card := line
	if len(details) > 0 {
		card += "\n" + b.theme.MediaCaption.Render(strings.Join(details, " · "))
	}
	if info.HasRenderer() {
		card += "\n" + b.theme.ShortcutDesc.Render("enter to preview")
	}

	bubbleStyle := b.theme.BotBubble
	header := b.renderHeader(b.Message.Sender.DisplayName())
	if b.Message.Sender == model.SenderUser {
		bubbleStyle = b.theme.UserBubble
		if status := b.renderStatus(); status != "" {
			header = header + " " + status
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, bubbleStyle.Render(card))
}

// ==========================================================================
// SHARED PIECES
// ==========================================================================

func (b *MessageBubble) renderHeader(name string) string {
	header := b.theme.SenderLabel.Render(strings.ToLower(name))
	if b.ShowTimestamp && b.Message.Timestamp > 0 {
		ts := time.UnixMilli(b.Message.Timestamp)
		header += " " + b.theme.Timestamp.Render(formatClock(ts))
	}
	return header
}

// renderStatus renders the delivery indicator for user messages.
func (b *MessageBubble) renderStatus() string {
	switch b.Message.Status {
	case model.StatusPending:
		return b.theme.StatusPending.Render("…")
	case model.StatusSent:
		return b.theme.StatusSent.Render("✓")
	case model.StatusDelivered:
		return b.theme.StatusSent.Render("✓✓")
	case model.StatusRead:
		return b.theme.InfoStyle.Render("✓✓")
	case model.StatusFailed:
		return b.theme.StatusFailed.Render("✗")
	default:
		return ""
	}
}

func mediaIcon(info *preview.FileInfo) string {
	switch {
	case info.IsImage():
		return "🖼"
	case info.IsVideo():
		return "🎬"
	case info.IsAudio():
		return "🎵"
	case info.IsDocument():
		return "📄"
	default:
		return "📎"
	}
}
