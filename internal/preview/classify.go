// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package preview implements the media preview subsystem.
package preview

import "strings"

// =============================================================================
// FILE INFO
// =============================================================================

// FileInfo describes the attachment currently bound to the preview, as
// reported by the upload relay.
type FileInfo struct {
	URL    string `json:"url"`
	Name   string `json:"name"`
	Type   string `json:"type"` // declared MIME type, or a bare extension
	Size   int64  `json:"size"`
	Sender string `json:"sender,omitempty"`
}

// =============================================================================
// CLASSIFICATION
// =============================================================================

// Extension fallback lists per category, used when the declared type is not
// a recognizable MIME prefix. Document matching additionally inspects the
// filename suffix, since office files often arrive with opaque MIME types.
var (
	imageExts    = []string{"jpg", "jpeg", "png", "gif", "webp"}
	videoExts    = []string{"mp4", "webm", "ogg"}
	audioExts    = []string{"mp3", "wav", "ogg"}
	documentExts = []string{"pdf", "doc", "docx", "xls", "xlsx", "ppt", "pptx", "txt"}
)

// IsImage reports whether the file should render with the image previewer.
// Matches image/* MIME types and the jpg/jpeg/png/gif/webp fallbacks.
func (f *FileInfo) IsImage() bool {
	return f.matches("image/", imageExts)
}

// IsVideo reports whether the file should render with the video player.
// Matches video/* MIME types and the mp4/webm/ogg fallbacks.
func (f *FileInfo) IsVideo() bool {
	return f.matches("video/", videoExts)
}

// IsAudio reports whether the file should render with the audio player.
// Matches audio/* MIME types and the mp3/wav/ogg fallbacks.
func (f *FileInfo) IsAudio() bool {
	return f.matches("audio/", audioExts)
}

// IsDocument reports whether the file should render with the document
// viewer. Matches application/* MIME types and a fixed set of document
// extensions on the filename.
func (f *FileInfo) IsDocument() bool {
	if f == nil || f.Type == "" {
		return false
	}
	if strings.HasPrefix(strings.ToLower(f.Type), "application/") {
		return true
	}
	name := strings.ToLower(f.Name)
	for _, ext := range documentExts {
		if strings.HasSuffix(name, "."+ext) {
			return true
		}
	}
	return false
}

// HasRenderer reports whether any preview category matched. A file that
// falls through all four checks has no preview renderer available; that is
// a valid state, not an error.
func (f *FileInfo) HasRenderer() bool {
	return f.IsImage() || f.IsVideo() || f.IsAudio() || f.IsDocument()
}

// matches implements the shared MIME-prefix-or-fallback check. The
// fallback list matches either the bare declared type ("mp4") or the
// filename suffix (".mp4").
func (f *FileInfo) matches(mimePrefix string, exts []string) bool {
	if f == nil || f.Type == "" {
		return false
	}
	declared := strings.ToLower(f.Type)
	if strings.HasPrefix(declared, mimePrefix) {
		return true
	}
	name := strings.ToLower(f.Name)
	for _, ext := range exts {
		if declared == ext || strings.HasSuffix(name, "."+ext) {
			return true
		}
	}
	return false
}
