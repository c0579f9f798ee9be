// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package preview implements the media preview subsystem.
package preview

import (
	"math"
	"sync"
	"time"

	"github.com/parlorchat/parlor-tui/internal/util"
)

// =============================================================================
// CONSTANTS
// =============================================================================

const (
	// ControlsHideDelay is the quiet period before the transport controls
	// auto-hide during playback.
	ControlsHideDelay = 3 * time.Second

	// VolumeHideDelay is the quiet period before the volume slider hides
	// after the pointer leaves it.
	VolumeHideDelay = 300 * time.Millisecond

	// DefaultVolume is the initial volume percentage for a fresh target.
	DefaultVolume = 100
)

// =============================================================================
// MEDIA STATE
// =============================================================================

// MediaState mirrors the playback state of the single active preview
// target. Progress stays within 0 to 100 and is held at 0 while the
// duration is unknown.
type MediaState struct {
	IsPlaying bool `json:"isPlaying"`
	IsMuted   bool `json:"isMuted"`

	Volume int `json:"volume"` // percentage 0-100

	CurrentTime float64 `json:"currentTime"` // seconds
	Duration    float64 `json:"duration"`    // seconds
	Progress    float64 `json:"progress"`    // percentage 0-100

	CurrentTimeStr string `json:"currentTimeStr"`
	DurationStr    string `json:"durationStr"`

	ShowControls     bool    `json:"showControls"`
	ShowVolumeSlider bool    `json:"showVolumeSlider"`
	ShowHoverTime    bool    `json:"showHoverTime"`
	HoverTimePosition float64 `json:"hoverTimePosition"` // pixel/cell offset in the bar
	HoverTime        string  `json:"hoverTime"`
}

// defaultMediaState returns the reset state for a fresh preview target.
func defaultMediaState() MediaState {
	return MediaState{
		Volume:         DefaultVolume,
		CurrentTimeStr: "00:00",
		DurationStr:    "00:00",
		ShowControls:   true,
	}
}

// =============================================================================
// CONTROLLER
// =============================================================================

// Controller is the media control store: playback, volume, progress, and
// chrome-visibility state for exactly one active preview target at a time.
type Controller struct {
	mu sync.Mutex

	file    *FileInfo
	visible bool
	state   MediaState

	controlsTimer Debouncer
	volumeTimer   Debouncer

	// Hide delays, overridable in tests.
	controlsHideDelay time.Duration
	volumeHideDelay   time.Duration
}

// NewController creates a controller with no active target.
func NewController() *Controller {
	return &Controller{
		state:             defaultMediaState(),
		controlsHideDelay: ControlsHideDelay,
		volumeHideDelay:   VolumeHideDelay,
	}
}

// Open binds the preview to a file and resets the media state to defaults.
// Any timers armed for a previous target are cancelled first so they can
// never fire against the replacement.
func (c *Controller) Open(file FileInfo) {
	c.controlsTimer.Cancel()
	c.volumeTimer.Cancel()

	c.mu.Lock()
	defer c.mu.Unlock()

	c.file = &file
	c.visible = true
	c.state = defaultMediaState()
}

// ClosePreview clears the active target and hides the preview surface.
// Both outstanding timers are cancelled; without this a timer could fire
// after its element is gone.
func (c *Controller) ClosePreview() {
	c.controlsTimer.Cancel()
	c.volumeTimer.Cancel()

	c.mu.Lock()
	defer c.mu.Unlock()

	c.file = nil
	c.visible = false
	c.state = defaultMediaState()
}

// CurrentFile returns the file bound to the preview, or nil.
func (c *Controller) CurrentFile() *FileInfo {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.file == nil {
		return nil
	}
	file := *c.file
	return &file
}

// Visible reports whether the preview surface is shown.
func (c *Controller) Visible() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.visible
}

// State returns a copy of the current media state.
func (c *Controller) State() MediaState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// =============================================================================
// ELEMENT EVENT HANDLERS
// =============================================================================

// HandleVideoLoaded records the element's duration and seeds its live
// volume from the stored percentage. Entry point from Idle to Loaded.
func (c *Controller) HandleVideoLoaded(el Element) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state.Duration = el.Duration()
	c.state.DurationStr = util.FormatMediaTime(el.Duration())
	el.SetVolume(float64(c.state.Volume) / 100)
}

// HandleTimeUpdate recomputes the current time, its display string, and
// the progress percentage. Called on every native time-update tick.
// A zero or unknown duration clamps progress to 0 rather than dividing.
func (c *Controller) HandleTimeUpdate(el Element) {
	c.mu.Lock()
	defer c.mu.Unlock()

	current := el.CurrentTime()
	c.state.CurrentTime = current
	c.state.CurrentTimeStr = util.FormatMediaTime(current)

	duration := el.Duration()
	if duration > 0 {
		c.state.Progress = clampPercent(current / duration * 100)
	} else {
		c.state.Progress = 0
	}
}

// HandlePlay marks playback active. Driven by the element's play event.
func (c *Controller) HandlePlay() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.IsPlaying = true
}

// HandlePause marks playback inactive. Driven by the element's pause event.
func (c *Controller) HandlePause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.IsPlaying = false
}

// HandleEnded marks playback inactive and zeroes progress, returning the
// target to its replay-ready state.
func (c *Controller) HandleEnded() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state.IsPlaying = false
	c.state.Progress = 0
}

// HandleMediaVolumeChange reconciles state from a native volume-change
// event, covering volume changes not issued through this controller.
// The fractional element volume is rounded to the nearest integer percent.
func (c *Controller) HandleMediaVolumeChange(el Element) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state.Volume = int(math.Round(el.Volume() * 100))
	c.state.IsMuted = el.Muted() || el.Volume() == 0
}

// =============================================================================
// USER COMMANDS
// =============================================================================

// TogglePlay inspects the element's paused flag and issues the opposite
// command. It does not flip IsPlaying itself: the play/pause event handlers
// drive that back, so a rejected command (autoplay policy) cannot drift
// the state.
func (c *Controller) TogglePlay(el Element) {
	if el.Paused() {
		// Rejection surfaces as the absence of a play event.
		_ = el.Play()
	} else {
		el.Pause()
	}
}

// ToggleMute flips the element's mute flag and mirrors it into state.
func (c *Controller) ToggleMute(el Element) {
	el.SetMuted(!el.Muted())

	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.IsMuted = el.Muted()
}

// HandleVolumeChange sets the element volume from a percentage and mirrors
// it into state. Volume 0 is implicitly muted.
func (c *Controller) HandleVolumeChange(volume int, el Element) {
	if volume < 0 {
		volume = 0
	}
	if volume > 100 {
		volume = 100
	}
	el.SetVolume(float64(volume) / 100)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.state.Volume = volume
	c.state.IsMuted = volume == 0
}

// HandleProgressHover converts a pointer's horizontal offset within the
// progress bar to a preview time label and marker position, without
// seeking. A degenerate bar width is ignored.
func (c *Controller) HandleProgressHover(offset, barWidth float64, el Element) {
	if barWidth <= 0 {
		return
	}
	fraction := clampFraction(offset / barWidth)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.state.HoverTimePosition = offset
	c.state.HoverTime = util.FormatMediaTime(fraction * el.Duration())
	c.state.ShowHoverTime = true
}

// HandleProgressClick seeks the element to the time at the pointer's
// fraction of the progress bar and clears the hover-time label.
func (c *Controller) HandleProgressClick(offset, barWidth float64, el Element) {
	if barWidth <= 0 {
		return
	}
	fraction := clampFraction(offset / barWidth)
	el.SetCurrentTime(fraction * el.Duration())

	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.ShowHoverTime = false
}

// =============================================================================
// CHROME VISIBILITY
// =============================================================================

// ShowControlsTemporarily makes the transport controls visible immediately
// and (re)starts the auto-hide debounce. On expiry the controls hide only
// if playback is active, so paused media keeps its controls indefinitely.
func (c *Controller) ShowControlsTemporarily() {
	c.mu.Lock()
	c.state.ShowControls = true
	c.mu.Unlock()

	c.controlsTimer.Schedule(c.controlsHideDelay, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.state.IsPlaying {
			c.state.ShowControls = false
		}
	})
}

// HandleVolumeSliderEnter shows the volume slider and cancels any pending
// hide.
func (c *Controller) HandleVolumeSliderEnter() {
	c.volumeTimer.Cancel()

	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.ShowVolumeSlider = true
}

// HandleVolumeSliderLeave hides the volume slider after a short debounce,
// cancellable by a subsequent enter.
func (c *Controller) HandleVolumeSliderLeave() {
	c.volumeTimer.Schedule(c.volumeHideDelay, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		c.state.ShowVolumeSlider = false
	})
}

// =============================================================================
// HELPERS
// =============================================================================

// clampPercent clamps a percentage to the 0-100 range.
func clampPercent(p float64) float64 {
	if p < 0 || math.IsNaN(p) {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

// clampFraction clamps a fraction to the 0-1 range.
func clampFraction(f float64) float64 {
	if f < 0 || math.IsNaN(f) {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
