// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"
	"time"

	"github.com/parlorchat/parlor-tui/internal/model"
	"github.com/parlorchat/parlor-tui/internal/preview"
	"github.com/parlorchat/parlor-tui/internal/ui/styles"
)

func TestWordWrap(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width int
		want  string
	}{
		{"short line unchanged", "hello world", 20, "hello world"},
		{"wraps at width", "one two three four", 9, "one two\nthree\nfour"},
		{"zero width returns input", "hello", 0, "hello"},
		{"preserves paragraph breaks", "a\n\nb", 10, "a\n\nb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := wordWrap(tt.text, tt.width)
			if got != tt.want {
				t.Errorf("wordWrap(%q, %d) = %q, want %q", tt.text, tt.width, got, tt.want)
			}
		})
	}
}

func TestMaxLineWidth(t *testing.T) {
	if got := maxLineWidth("ab\nabcd\na"); got != 4 {
		t.Errorf("maxLineWidth = %d, want 4", got)
	}
	// Rune count, not byte count
	if got := maxLineWidth("héllo"); got != 5 {
		t.Errorf("maxLineWidth unicode = %d, want 5", got)
	}
}

func TestFormatFileSize(t *testing.T) {
	tests := []struct {
		bytes int64
		want  string
	}{
		{512, "512 B"},
		{2048, "2.00 KB"},
		{5 * 1024 * 1024, "5.00 MB"},
	}

	for _, tt := range tests {
		if got := formatFileSize(tt.bytes); got != tt.want {
			t.Errorf("formatFileSize(%d) = %q, want %q", tt.bytes, got, tt.want)
		}
	}
}

func TestFormatClock(t *testing.T) {
	tests := []struct {
		hour, minute int
		want         string
	}{
		{0, 5, "12:05 AM"},
		{9, 30, "9:30 AM"},
		{12, 0, "12:00 PM"},
		{23, 59, "11:59 PM"},
	}

	for _, tt := range tests {
		ts := time.Date(2025, 6, 1, tt.hour, tt.minute, 0, 0, time.UTC)
		if got := formatClock(ts); got != tt.want {
			t.Errorf("formatClock(%d:%d) = %q, want %q", tt.hour, tt.minute, got, tt.want)
		}
	}
}

func TestMessageBubbleText(t *testing.T) {
	theme := styles.NewTheme()

	userMsg := model.NewTextMessage(model.SenderUser, "hello there")
	bubble := NewMessageBubble(&userMsg, theme)
	bubble.Markdown = false
	out := bubble.View()
	if !strings.Contains(out, "hello there") {
		t.Errorf("user bubble missing content: %q", out)
	}
	if !strings.Contains(out, "you") {
		t.Errorf("user bubble missing sender label: %q", out)
	}

	botMsg := model.NewTextMessage(model.SenderBot, "hi back")
	botBubble := NewMessageBubble(&botMsg, theme)
	botBubble.Markdown = false
	out = botBubble.View()
	if !strings.Contains(out, "hi back") {
		t.Errorf("bot bubble missing content: %q", out)
	}
}

func TestMessageBubbleStatus(t *testing.T) {
	theme := styles.NewTheme()

	msg := model.NewTextMessage(model.SenderUser, "status check")
	msg.Status = model.StatusFailed

	bubble := NewMessageBubble(&msg, theme)
	bubble.Markdown = false
	if !strings.Contains(bubble.View(), "✗") {
		t.Error("failed status indicator not rendered")
	}
}

func TestMessageBubbleMedia(t *testing.T) {
	theme := styles.NewTheme()

	msg := model.NewMediaMessage(model.SenderUser, model.TypeVideo, "http://localhost:3000/uploads/file-1-ab.mp4")
	msg.FileType = "video/mp4"
	msg.FileSize = 2048
	msg.Duration = 65

	bubble := NewMessageBubble(&msg, theme)
	out := bubble.View()
	if !strings.Contains(out, "file-1-ab.mp4") {
		t.Errorf("media bubble missing file name: %q", out)
	}
	if !strings.Contains(out, "01:05") {
		t.Errorf("media bubble missing duration: %q", out)
	}
	if !strings.Contains(out, "enter to preview") {
		t.Errorf("media bubble missing preview hint: %q", out)
	}
}

func TestAttachmentList(t *testing.T) {
	theme := styles.NewTheme()

	if out := NewAttachmentList(nil, theme).View(); out != "" {
		t.Errorf("empty list should render nothing, got %q", out)
	}

	items := []model.FileItem{
		{UID: "1", Name: "report.pdf", Status: model.FileStatusUploading, Size: 1024},
		{UID: "2", Name: "photo.png", Status: model.FileStatusDone},
	}
	out := NewAttachmentList(items, theme).View()
	if !strings.Contains(out, "report.pdf") || !strings.Contains(out, "photo.png") {
		t.Errorf("attachment list missing items: %q", out)
	}
	if !strings.Contains(out, "↑") {
		t.Error("uploading badge not rendered")
	}
	if !strings.Contains(out, "✓") {
		t.Error("done badge not rendered")
	}
}

func TestMediaOverlayVideo(t *testing.T) {
	theme := styles.NewTheme()
	file := &preview.FileInfo{Name: "clip.mp4", Type: "video/mp4"}
	state := preview.MediaState{
		IsPlaying:      true,
		Volume:         80,
		Progress:       50,
		CurrentTimeStr: "00:30",
		DurationStr:    "01:00",
		ShowControls:   true,
	}

	out := NewMediaOverlay(file, state, theme).View()
	if !strings.Contains(out, "clip.mp4") {
		t.Errorf("overlay missing title: %q", out)
	}
	if !strings.Contains(out, "00:30 / 01:00") {
		t.Errorf("overlay missing time readout: %q", out)
	}
	if !strings.Contains(out, "⏸") {
		t.Error("playing state should show pause glyph")
	}
}

func TestMediaOverlayControlsHidden(t *testing.T) {
	theme := styles.NewTheme()
	file := &preview.FileInfo{Name: "clip.mp4", Type: "video/mp4"}
	state := preview.MediaState{
		IsPlaying:      true,
		CurrentTimeStr: "00:30",
		DurationStr:    "01:00",
		ShowControls:   false,
	}

	out := NewMediaOverlay(file, state, theme).View()
	if strings.Contains(out, "00:30 / 01:00") {
		t.Error("hidden controls should suppress the transport row")
	}
}

func TestMediaOverlayImage(t *testing.T) {
	theme := styles.NewTheme()
	file := &preview.FileInfo{Name: "photo.png", Type: "image/png", Size: 4096}

	out := NewMediaOverlay(file, preview.MediaState{}, theme).View()
	if !strings.Contains(out, "photo.png") {
		t.Errorf("overlay missing image name: %q", out)
	}
	if strings.Contains(out, "play/pause") {
		t.Error("image overlay should not show transport shortcuts")
	}
}
