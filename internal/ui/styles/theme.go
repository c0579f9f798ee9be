// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds all the styled components for the application.
// It detects the terminal's color capability and adjusts accordingly.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	HasTrueColor bool
	ColorProfile termenv.Profile

	// Layout dimensions
	Width  int
	Height int

	// ==========================================================================
	// APPLICATION CONTAINER STYLES
	// ==========================================================================

	App       lipgloss.Style
	Container lipgloss.Style

	// ==========================================================================
	// HEADER STYLES
	// ==========================================================================

	Header      lipgloss.Style
	HeaderTitle lipgloss.Style
	HeaderBrand lipgloss.Style

	// ==========================================================================
	// SESSION SIDEBAR STYLES
	// ==========================================================================

	Sidebar             lipgloss.Style
	SessionItem         lipgloss.Style
	SessionItemSelected lipgloss.Style
	SessionTitle        lipgloss.Style
	SessionPreview      lipgloss.Style

	// ==========================================================================
	// MESSAGE BUBBLE STYLES
	// ==========================================================================

	UserBubble    lipgloss.Style
	BotBubble     lipgloss.Style
	SenderLabel   lipgloss.Style
	Timestamp     lipgloss.Style
	StatusPending lipgloss.Style
	StatusSent    lipgloss.Style
	StatusFailed  lipgloss.Style
	MediaCaption  lipgloss.Style

	// ==========================================================================
	// INPUT AREA STYLES
	// ==========================================================================

	InputContainer   lipgloss.Style
	InputPrompt      lipgloss.Style
	InputText        lipgloss.Style
	InputPlaceholder lipgloss.Style

	// ==========================================================================
	// ATTACHMENT LIST STYLES
	// ==========================================================================

	AttachmentItem      lipgloss.Style
	AttachmentUploading lipgloss.Style
	AttachmentDone      lipgloss.Style
	AttachmentFailed    lipgloss.Style

	// ==========================================================================
	// MEDIA PREVIEW OVERLAY STYLES
	// ==========================================================================

	MediaOverlay       lipgloss.Style
	MediaTitle         lipgloss.Style
	MediaControls      lipgloss.Style
	MediaTime          lipgloss.Style
	MediaProgressFill  lipgloss.Style
	MediaProgressEmpty lipgloss.Style
	MediaHoverTime     lipgloss.Style
	MediaVolume        lipgloss.Style

	// ==========================================================================
	// STATUS BAR STYLES
	// ==========================================================================

	StatusBar    lipgloss.Style
	ShortcutKey  lipgloss.Style
	ShortcutDesc lipgloss.Style

	// ==========================================================================
	// SEMANTIC STYLES
	// ==========================================================================

	ErrorStyle   lipgloss.Style
	SuccessStyle lipgloss.Style
	InfoStyle    lipgloss.Style
}

// NewTheme creates a new theme with all styles configured.
func NewTheme() *Theme {
	// Detect terminal capabilities
	colorProfile := termenv.ColorProfile()
	hasTrueColor := colorProfile == termenv.TrueColor
	isDark := termenv.HasDarkBackground()

	t := &Theme{
		IsDark:       isDark,
		HasTrueColor: hasTrueColor,
		ColorProfile: colorProfile,
	}

	t.initStyles()
	return t
}

// initStyles initializes all the lip gloss styles.
func (t *Theme) initStyles() {
	// App container
	t.App = lipgloss.NewStyle()
	t.Container = lipgloss.NewStyle().Padding(0, 1)

	// Header
	t.Header = lipgloss.NewStyle().
		Bold(true).
		Foreground(Cyan).
		Background(SurfaceDim).
		Padding(0, 2)

	t.HeaderTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Purple)

	t.HeaderBrand = lipgloss.NewStyle().
		Bold(true).
		Foreground(Cyan)

	// Session sidebar
	t.Sidebar = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderRight(true).
		BorderForeground(Overlay).
		PaddingRight(1)

	t.SessionItem = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Padding(0, 1)

	t.SessionItemSelected = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Background(Overlay).
		Bold(true).
		Padding(0, 1)

	t.SessionTitle = lipgloss.NewStyle().
		Foreground(TextPrimary)

	t.SessionPreview = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	// Message bubbles
	t.UserBubble = lipgloss.NewStyle().
		Foreground(UserBubbleFg).
		Background(UserBubbleBg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(UserBubbleBorder).
		Padding(0, 2).
		MarginLeft(4)

	t.BotBubble = lipgloss.NewStyle().
		Foreground(BotBubbleFg).
		Background(BotBubbleBg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(BotBubbleBorder).
		Padding(0, 2).
		MarginRight(4)

	t.SenderLabel = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextSecondary)

	t.Timestamp = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.StatusPending = lipgloss.NewStyle().
		Foreground(Amber)

	t.StatusSent = lipgloss.NewStyle().
		Foreground(Emerald)

	t.StatusFailed = lipgloss.NewStyle().
		Foreground(Rose).
		Bold(true)

	t.MediaCaption = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	// Input area
	t.InputContainer = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderTop(true).
		BorderForeground(Overlay).
		Padding(0, 1)

	t.InputPrompt = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)

	t.InputText = lipgloss.NewStyle().
		Foreground(TextPrimary)

	t.InputPlaceholder = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	// Attachment list
	t.AttachmentItem = lipgloss.NewStyle().
		Foreground(TextSecondary).
		PaddingLeft(1)

	t.AttachmentUploading = lipgloss.NewStyle().
		Foreground(Amber)

	t.AttachmentDone = lipgloss.NewStyle().
		Foreground(Emerald)

	t.AttachmentFailed = lipgloss.NewStyle().
		Foreground(Rose)

	// Media preview overlay
	t.MediaOverlay = lipgloss.NewStyle().
		Background(MediaBg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Purple).
		Padding(1, 2)

	t.MediaTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextPrimary)

	t.MediaControls = lipgloss.NewStyle().
		Foreground(TextSecondary)

	t.MediaTime = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.MediaProgressFill = lipgloss.NewStyle().
		Foreground(MediaProgress)

	t.MediaProgressEmpty = lipgloss.NewStyle().
		Foreground(MediaProgressTrack)

	t.MediaHoverTime = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)

	t.MediaVolume = lipgloss.NewStyle().
		Foreground(TextSecondary)

	// Status bar
	t.StatusBar = lipgloss.NewStyle().
		Background(SurfaceDim).
		Foreground(TextSecondary).
		Padding(0, 1)

	t.ShortcutKey = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)

	t.ShortcutDesc = lipgloss.NewStyle().
		Foreground(TextMuted)

	// Semantic styles
	t.ErrorStyle = lipgloss.NewStyle().
		Foreground(Rose).
		Bold(true)

	t.SuccessStyle = lipgloss.NewStyle().
		Foreground(Emerald)

	t.InfoStyle = lipgloss.NewStyle().
		Foreground(Cyan)
}

// SetSize updates the stored layout dimensions.
func (t *Theme) SetSize(width, height int) {
	t.Width = width
	t.Height = height
}
