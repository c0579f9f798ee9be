// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package preview implements the media preview subsystem.
package preview

import "testing"

// =============================================================================
// CLASSIFICATION TESTS
// =============================================================================

func TestFileInfo_Classification(t *testing.T) {
	tests := []struct {
		name     string
		file     FileInfo
		image    bool
		video    bool
		audio    bool
		document bool
	}{
		{
			name:  "png mime",
			file:  FileInfo{Name: "shot", Type: "image/png"},
			image: true,
		},
		{
			name:  "uppercase mime",
			file:  FileInfo{Name: "shot", Type: "IMAGE/PNG"},
			image: true,
		},
		{
			name:  "bare extension type",
			file:  FileInfo{Name: "shot", Type: "webp"},
			image: true,
		},
		{
			name:  "image filename fallback",
			file:  FileInfo{Name: "photo.JPEG", Type: "binary"},
			image: true,
		},
		{
			name:  "video mime",
			file:  FileInfo{Name: "clip", Type: "video/mp4"},
			video: true,
		},
		{
			name:  "audio mime",
			file:  FileInfo{Name: "song", Type: "audio/mpeg"},
			audio: true,
		},
		{
			// ogg sits in both fallback lists; the checks are evaluated
			// independently and exclusivity is not enforced
			name:  "ambiguous ogg extension",
			file:  FileInfo{Name: "track", Type: "ogg"},
			video: true,
			audio: true,
		},
		{
			name:     "pdf application mime",
			file:     FileInfo{Name: "paper", Type: "application/pdf"},
			document: true,
		},
		{
			name:     "docx filename fallback",
			file:     FileInfo{Name: "notes.docx", Type: "stream"},
			document: true,
		},
		{
			name: "unknown mime matches nothing",
			file: FileInfo{Name: "blob.bin", Type: "chemical/x-pdb"},
		},
		{
			name: "empty type matches nothing",
			file: FileInfo{Name: "thing.png", Type: ""},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.file.IsImage(); got != tc.image {
				t.Errorf("IsImage() = %v, want %v", got, tc.image)
			}
			if got := tc.file.IsVideo(); got != tc.video {
				t.Errorf("IsVideo() = %v, want %v", got, tc.video)
			}
			if got := tc.file.IsAudio(); got != tc.audio {
				t.Errorf("IsAudio() = %v, want %v", got, tc.audio)
			}
			if got := tc.file.IsDocument(); got != tc.document {
				t.Errorf("IsDocument() = %v, want %v", got, tc.document)
			}

			wantRenderer := tc.image || tc.video || tc.audio || tc.document
			if got := tc.file.HasRenderer(); got != wantRenderer {
				t.Errorf("HasRenderer() = %v, want %v", got, wantRenderer)
			}
		})
	}
}

func TestFileInfo_NilReceiver(t *testing.T) {
	var f *FileInfo
	if f.IsImage() || f.IsVideo() || f.IsAudio() || f.IsDocument() {
		t.Error("nil file should match no category")
	}
}
