// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/parlorchat/parlor-tui/internal/preview"
	"github.com/parlorchat/parlor-tui/internal/ui/styles"
	"github.com/parlorchat/parlor-tui/internal/util"
)

// =============================================================================
// MEDIA PREVIEW OVERLAY
// =============================================================================

// ProgressBarWidth is the cell width of the seek bar. Hover and click
// offsets are interpreted against this width.
const ProgressBarWidth = 40

// MediaOverlay renders the media preview window: title, transport controls,
// seek bar, and volume readout. Images get a plain card without transport.
type MediaOverlay struct {
	File  *preview.FileInfo
	State preview.MediaState
	Width int
	theme *styles.Theme
}

// NewMediaOverlay creates a new MediaOverlay.
func NewMediaOverlay(file *preview.FileInfo, state preview.MediaState, theme *styles.Theme) *MediaOverlay {
	return &MediaOverlay{
		File:  file,
		State: state,
		Width: 80,
		theme: theme,
	}
}

// View renders the overlay.
func (o *MediaOverlay) View() string {
	if o.File == nil {
		return ""
	}

	nameWidth := o.Width - 16
	if nameWidth < 16 {
		nameWidth = 16
	}
	title := o.theme.MediaTitle.Render(mediaIcon(o.File) + " " + util.TruncateWidth(o.File.Name, nameWidth))

	var rows []string
	rows = append(rows, title)

	switch {
	case o.File.IsImage():
		rows = append(rows, o.renderImageBody())
	case o.File.IsVideo(), o.File.IsAudio():
		rows = append(rows, o.renderPlaybackBody())
	default:
		rows = append(rows, o.theme.MediaCaption.Render("no preview available"))
	}

	rows = append(rows, o.renderFooter())

	return o.theme.MediaOverlay.Render(strings.Join(rows, "\n"))
}

func (o *MediaOverlay) renderImageBody() string {
	var details []string
	if o.File.Size > 0 {
		details = append(details, formatFileSize(o.File.Size))
	}
	if o.File.Type != "" {
		details = append(details, o.File.Type)
	}
	if len(details) == 0 {
		return o.theme.MediaCaption.Render("image")
	}
	return o.theme.MediaCaption.Render(strings.Join(details, " · "))
}

func (o *MediaOverlay) renderPlaybackBody() string {
	var rows []string

	// Transport row only while controls are visible
	if o.State.ShowControls {
		icon := "▶"
		if o.State.IsPlaying {
			icon = "⏸"
		}
		times := o.State.CurrentTimeStr + " / " + o.State.DurationStr
		transport := o.theme.MediaControls.Render(icon) + "  " + o.theme.MediaTime.Render(times)
		rows = append(rows, transport)
	}

	rows = append(rows, o.renderProgressBar())

	if o.State.ShowHoverTime {
		rows = append(rows, o.renderHoverTime())
	}
	if o.State.ShowVolumeSlider {
		rows = append(rows, o.renderVolumeSlider())
	} else if o.State.ShowControls {
		rows = append(rows, o.renderVolumeReadout())
	}

	return strings.Join(rows, "\n")
}

// renderProgressBar draws the seek bar with the played portion filled.
func (o *MediaOverlay) renderProgressBar() string {
	filled := int(o.State.Progress / 100 * float64(ProgressBarWidth))
	if filled < 0 {
		filled = 0
	}
	if filled > ProgressBarWidth {
		filled = ProgressBarWidth
	}

	bar := o.theme.MediaProgressFill.Render(strings.Repeat("━", filled)) +
		o.theme.MediaProgressEmpty.Render(strings.Repeat("─", ProgressBarWidth-filled))
	return bar
}

// renderHoverTime places the hover timestamp under the bar at the hovered
// offset so it lines up with the cell being pointed at.
func (o *MediaOverlay) renderHoverTime() string {
	offset := int(o.State.HoverTimePosition)
	if offset < 0 {
		offset = 0
	}
	if offset > ProgressBarWidth {
		offset = ProgressBarWidth
	}
	label := o.theme.MediaHoverTime.Render(o.State.HoverTime)
	// Keep the label inside the bar span
	maxOffset := ProgressBarWidth - len(o.State.HoverTime)
	if maxOffset < 0 {
		maxOffset = 0
	}
	if offset > maxOffset {
		offset = maxOffset
	}
	return strings.Repeat(" ", offset) + label
}

func (o *MediaOverlay) renderVolumeSlider() string {
	const sliderWidth = 20
	filled := o.State.Volume * sliderWidth / 100
	if filled < 0 {
		filled = 0
	}
	if filled > sliderWidth {
		filled = sliderWidth
	}
	slider := o.theme.MediaProgressFill.Render(strings.Repeat("█", filled)) +
		o.theme.MediaProgressEmpty.Render(strings.Repeat("░", sliderWidth-filled))
	return o.theme.MediaVolume.Render("vol ") + slider + " " +
		o.theme.MediaVolume.Render(util.IntToString(o.State.Volume)+"%")
}

func (o *MediaOverlay) renderVolumeReadout() string {
	if o.State.IsMuted {
		return o.theme.MediaVolume.Render("🔇 muted")
	}
	return o.theme.MediaVolume.Render("🔊 " + util.IntToString(o.State.Volume) + "%")
}

func (o *MediaOverlay) renderFooter() string {
	keys := [][2]string{
		{"esc", "close"},
	}
	if o.File.IsVideo() || o.File.IsAudio() {
		keys = append(keys,
			[2]string{"space", "play/pause"},
			[2]string{"←/→", "seek"},
			[2]string{"+/-", "volume"},
			[2]string{"m", "mute"},
		)
	}

	var parts []string
	for _, k := range keys {
		parts = append(parts, o.theme.ShortcutKey.Render(k[0])+" "+o.theme.ShortcutDesc.Render(k[1]))
	}
	return lipgloss.NewStyle().MarginTop(1).Render(strings.Join(parts, "  "))
}
