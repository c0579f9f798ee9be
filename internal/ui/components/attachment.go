// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/parlorchat/parlor-tui/internal/model"
	"github.com/parlorchat/parlor-tui/internal/ui/styles"
	"github.com/parlorchat/parlor-tui/internal/util"
)

// =============================================================================
// ATTACHMENT LIST COMPONENT
// =============================================================================

// AttachmentList renders the staged file list shown above the input area.
type AttachmentList struct {
	Items []model.FileItem
	Width int
	theme *styles.Theme
}

// NewAttachmentList creates a new AttachmentList.
func NewAttachmentList(items []model.FileItem, theme *styles.Theme) *AttachmentList {
	return &AttachmentList{
		Items: items,
		Width: 80,
		theme: theme,
	}
}

// View renders the attachment list, one file per line. Returns the empty
// string when no files are staged so the caller can skip the row entirely.
func (a *AttachmentList) View() string {
	if len(a.Items) == 0 {
		return ""
	}

	nameWidth := a.Width - 24
	if nameWidth < 12 {
		nameWidth = 12
	}

	var lines []string
	for _, item := range a.Items {
		badge := a.statusBadge(item.Status)
		line := badge + " " + util.TruncateWidth(item.Name, nameWidth)
		if item.Size > 0 {
			line += " " + a.theme.Timestamp.Render(formatFileSize(item.Size))
		}
		lines = append(lines, a.theme.AttachmentItem.Render(line))
	}

	return strings.Join(lines, "\n")
}

func (a *AttachmentList) statusBadge(status string) string {
	switch status {
	case model.FileStatusUploading:
		return a.theme.AttachmentUploading.Render("↑")
	case model.FileStatusDone:
		return a.theme.AttachmentDone.Render("✓")
	case model.FileStatusError:
		return a.theme.AttachmentFailed.Render("✗")
	default:
		return a.theme.AttachmentItem.Render("·")
	}
}
