// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
)

// markdownRenderer renders bot message markdown for terminal display.
// USABILITY: Renders markdown responses with syntax highlighting and formatting.
var (
	markdownOnce     sync.Once
	markdownRenderer *glamour.TermRenderer
)

func getMarkdownRenderer() *glamour.TermRenderer {
	markdownOnce.Do(func() {
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(80),
		)
		if err != nil {
			// Fall back to plain text if renderer initialization fails
			markdownRenderer = nil
			return
		}
		markdownRenderer = r
	})
	return markdownRenderer
}

// RenderMarkdown renders markdown content for terminal display.
// Returns the original content if rendering fails or the renderer is
// unavailable.
func RenderMarkdown(content string) string {
	r := getMarkdownRenderer()
	if r == nil {
		return content
	}
	out, err := r.Render(content)
	if err != nil {
		return content
	}
	return strings.TrimRight(out, "\n")
}
