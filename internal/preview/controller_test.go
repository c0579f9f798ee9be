// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package preview implements the media preview subsystem.
package preview

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestController returns a controller with millisecond-scale hide
// delays so debounce behavior is observable in tests.
func newTestController() *Controller {
	c := NewController()
	c.controlsHideDelay = 30 * time.Millisecond
	c.volumeHideDelay = 20 * time.Millisecond
	return c
}

// rejectingElement refuses Play commands, like a target bound by an
// autoplay policy.
type rejectingElement struct {
	*SimulatedElement
	playAttempts int
}

func (r *rejectingElement) Play() error {
	r.playAttempts++
	return errPlayRejected
}

var errPlayRejected = &playError{}

type playError struct{}

func (e *playError) Error() string { return "play rejected" }

// =============================================================================
// LIFECYCLE TESTS
// =============================================================================

func TestController_OpenResetsState(t *testing.T) {
	c := NewController()
	el := NewSimulatedElement(120)

	c.Open(FileInfo{Name: "clip.mp4", Type: "video/mp4"})
	c.HandleVideoLoaded(el)
	c.HandlePlay()

	// Opening a new target must reset everything
	c.Open(FileInfo{Name: "other.mp3", Type: "audio/mpeg"})

	state := c.State()
	assert.False(t, state.IsPlaying)
	assert.Equal(t, DefaultVolume, state.Volume)
	assert.Equal(t, float64(0), state.Duration)
	assert.Equal(t, "00:00", state.DurationStr)
	assert.True(t, state.ShowControls)
	require.NotNil(t, c.CurrentFile())
	assert.Equal(t, "other.mp3", c.CurrentFile().Name)
}

func TestController_ClosePreview(t *testing.T) {
	c := NewController()
	c.Open(FileInfo{Name: "clip.mp4", Type: "video/mp4"})

	c.ClosePreview()

	assert.False(t, c.Visible())
	assert.Nil(t, c.CurrentFile())
	assert.Equal(t, defaultMediaState(), c.State())
}

// =============================================================================
// LOADED / TIME UPDATE TESTS
// =============================================================================

func TestController_HandleVideoLoaded(t *testing.T) {
	c := NewController()
	el := NewSimulatedElement(125)
	el.SetVolume(0.3)

	c.HandleVideoLoaded(el)

	state := c.State()
	assert.Equal(t, float64(125), state.Duration)
	assert.Equal(t, "02:05", state.DurationStr)
	// Element volume seeded from the stored percentage
	assert.Equal(t, 1.0, el.Volume())
}

func TestController_HandleTimeUpdate(t *testing.T) {
	c := NewController()
	el := NewSimulatedElement(120)
	el.SetCurrentTime(30)

	c.HandleTimeUpdate(el)

	state := c.State()
	assert.Equal(t, float64(30), state.CurrentTime)
	assert.Equal(t, "00:30", state.CurrentTimeStr)
	assert.Equal(t, float64(25), state.Progress)
}

func TestController_HandleTimeUpdate_ZeroDuration(t *testing.T) {
	c := NewController()
	el := NewSimulatedElement(0)

	c.HandleTimeUpdate(el)

	state := c.State()
	assert.Equal(t, float64(0), state.Progress, "zero duration must clamp progress, not divide")
	assert.False(t, math.IsNaN(state.Progress))
}

// =============================================================================
// TRANSPORT TESTS
// =============================================================================

func TestController_PlayPauseEndedEvents(t *testing.T) {
	c := NewController()

	c.HandlePlay()
	assert.True(t, c.State().IsPlaying)

	c.HandlePause()
	assert.False(t, c.State().IsPlaying)

	c.HandlePlay()
	c.HandleEnded()
	state := c.State()
	assert.False(t, state.IsPlaying)
	assert.Equal(t, float64(0), state.Progress, "ended must zero progress")
}

func TestController_TogglePlay_IssuesCommandOnly(t *testing.T) {
	c := NewController()
	el := NewSimulatedElement(60)

	c.TogglePlay(el)

	assert.False(t, el.Paused(), "paused element should receive a play command")
	assert.False(t, c.State().IsPlaying, "toggle must not flip state; events do that")

	c.TogglePlay(el)
	assert.True(t, el.Paused(), "playing element should receive a pause command")
}

func TestController_TogglePlay_RejectedCommand(t *testing.T) {
	c := NewController()
	el := &rejectingElement{SimulatedElement: NewSimulatedElement(60)}

	c.TogglePlay(el)

	assert.Equal(t, 1, el.playAttempts)
	assert.False(t, c.State().IsPlaying, "rejected play must leave state untouched")
}

// =============================================================================
// VOLUME TESTS
// =============================================================================

func TestController_ToggleMute(t *testing.T) {
	c := NewController()
	el := NewSimulatedElement(60)

	c.ToggleMute(el)
	assert.True(t, el.Muted())
	assert.True(t, c.State().IsMuted)

	c.ToggleMute(el)
	assert.False(t, el.Muted())
	assert.False(t, c.State().IsMuted)
}

func TestController_HandleVolumeChange(t *testing.T) {
	c := NewController()
	el := NewSimulatedElement(60)

	c.HandleVolumeChange(40, el)
	assert.Equal(t, 0.4, el.Volume())
	assert.Equal(t, 40, c.State().Volume)
	assert.False(t, c.State().IsMuted)

	// Volume zero is implicitly muted
	c.HandleVolumeChange(0, el)
	assert.True(t, c.State().IsMuted)

	// Out-of-range input clamps
	c.HandleVolumeChange(250, el)
	assert.Equal(t, 100, c.State().Volume)
}

func TestController_HandleMediaVolumeChange(t *testing.T) {
	c := NewController()
	el := NewSimulatedElement(60)
	el.SetVolume(0.678)

	c.HandleMediaVolumeChange(el)

	assert.Equal(t, 68, c.State().Volume, "fractional volume rounds to nearest percent")
	assert.False(t, c.State().IsMuted)

	el.SetVolume(0)
	c.HandleMediaVolumeChange(el)
	assert.True(t, c.State().IsMuted, "zero element volume reconciles as muted")
}

// =============================================================================
// PROGRESS BAR TESTS
// =============================================================================

func TestController_HandleProgressClick_SeeksToFraction(t *testing.T) {
	c := NewController()
	el := NewSimulatedElement(120)

	// Click at 50% of a 400-unit-wide bar
	c.HandleProgressClick(200, 400, el)

	assert.Equal(t, float64(60), el.CurrentTime())
	assert.False(t, c.State().ShowHoverTime, "click clears the hover label")
}

func TestController_HandleProgressHover_PreviewsWithoutSeeking(t *testing.T) {
	c := NewController()
	el := NewSimulatedElement(120)

	c.HandleProgressHover(100, 400, el)

	state := c.State()
	assert.True(t, state.ShowHoverTime)
	assert.Equal(t, float64(100), state.HoverTimePosition)
	assert.Equal(t, "00:30", state.HoverTime)
	assert.Equal(t, float64(0), el.CurrentTime(), "hover must not seek")
}

func TestController_ProgressBar_DegenerateGeometry(t *testing.T) {
	c := NewController()
	el := NewSimulatedElement(120)

	c.HandleProgressHover(10, 0, el)
	assert.False(t, c.State().ShowHoverTime)

	c.HandleProgressClick(10, 0, el)
	assert.Equal(t, float64(0), el.CurrentTime())

	// Offsets beyond the bar clamp to its ends
	c.HandleProgressClick(500, 400, el)
	assert.Equal(t, float64(120), el.CurrentTime())
}

// =============================================================================
// CHROME VISIBILITY TESTS
// =============================================================================

func TestController_ShowControlsTemporarily_HidesWhilePlaying(t *testing.T) {
	c := newTestController()
	c.HandlePlay()

	c.ShowControlsTemporarily()
	assert.True(t, c.State().ShowControls)

	time.Sleep(60 * time.Millisecond)
	assert.False(t, c.State().ShowControls, "controls should hide after the quiet period")
}

func TestController_ShowControlsTemporarily_PausedStaysVisible(t *testing.T) {
	c := newTestController()
	c.HandlePause()

	c.ShowControlsTemporarily()
	time.Sleep(60 * time.Millisecond)

	assert.True(t, c.State().ShowControls, "paused media keeps controls visible")
}

func TestController_ShowControlsTemporarily_Debounces(t *testing.T) {
	c := newTestController()
	c.HandlePlay()

	// Re-invocation before expiry restarts the timer
	c.ShowControlsTemporarily()
	time.Sleep(20 * time.Millisecond)
	c.ShowControlsTemporarily()
	time.Sleep(20 * time.Millisecond)

	assert.True(t, c.State().ShowControls, "restarted timer should not have fired yet")

	time.Sleep(40 * time.Millisecond)
	assert.False(t, c.State().ShowControls)
}

func TestController_VolumeSliderEnterLeave(t *testing.T) {
	c := newTestController()

	c.HandleVolumeSliderEnter()
	assert.True(t, c.State().ShowVolumeSlider)

	c.HandleVolumeSliderLeave()
	time.Sleep(50 * time.Millisecond)
	assert.False(t, c.State().ShowVolumeSlider)

	// Enter before the hide fires cancels it
	c.HandleVolumeSliderEnter()
	c.HandleVolumeSliderLeave()
	c.HandleVolumeSliderEnter()
	time.Sleep(50 * time.Millisecond)
	assert.True(t, c.State().ShowVolumeSlider)
}

func TestController_ClosePreviewCancelsTimers(t *testing.T) {
	c := newTestController()
	c.HandlePlay()
	c.ShowControlsTemporarily()
	c.HandleVolumeSliderLeave()

	c.ClosePreview()
	time.Sleep(60 * time.Millisecond)

	// Stale fires must not act on the reset state
	state := c.State()
	assert.True(t, state.ShowControls)
	assert.False(t, state.ShowVolumeSlider)
}

// =============================================================================
// DEBOUNCER TESTS
// =============================================================================

func TestDebouncer_ScheduleSupersedes(t *testing.T) {
	var d Debouncer
	fired := make(chan int, 2)

	d.Schedule(20*time.Millisecond, func() { fired <- 1 })
	d.Schedule(20*time.Millisecond, func() { fired <- 2 })

	select {
	case got := <-fired:
		assert.Equal(t, 2, got, "only the superseding callback may fire")
	case <-time.After(200 * time.Millisecond):
		t.Fatal("debounced callback never fired")
	}

	select {
	case <-fired:
		t.Fatal("superseded callback fired")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestDebouncer_Cancel(t *testing.T) {
	var d Debouncer
	fired := make(chan struct{}, 1)

	d.Schedule(20*time.Millisecond, func() { fired <- struct{}{} })
	d.Cancel()

	select {
	case <-fired:
		t.Fatal("cancelled callback fired")
	case <-time.After(60 * time.Millisecond):
	}

	// Cancel with nothing scheduled is a no-op
	d.Cancel()
}

// =============================================================================
// SIMULATED ELEMENT TESTS
// =============================================================================

func TestSimulatedElement_PlaybackLifecycle(t *testing.T) {
	el := NewSimulatedElement(10)
	c := NewController()
	el.SetEvents(Events{
		OnPlay:  c.HandlePlay,
		OnPause: c.HandlePause,
		OnEnded: c.HandleEnded,
	})

	require.NoError(t, el.Play())
	assert.True(t, c.State().IsPlaying, "play event should drive state")

	el.Advance(4)
	c.HandleTimeUpdate(el)
	assert.Equal(t, float64(40), c.State().Progress)

	// Advancing past the end pauses and fires ended
	el.Advance(7)
	assert.True(t, el.Paused())
	assert.False(t, c.State().IsPlaying)
	assert.Equal(t, float64(0), c.State().Progress)

	// Replay restarts from the beginning
	require.NoError(t, el.Play())
	assert.Equal(t, float64(0), el.CurrentTime())
}

func TestSimulatedElement_SeekClamps(t *testing.T) {
	el := NewSimulatedElement(10)

	el.SetCurrentTime(-5)
	assert.Equal(t, float64(0), el.CurrentTime())

	el.SetCurrentTime(25)
	assert.Equal(t, float64(10), el.CurrentTime())
}
