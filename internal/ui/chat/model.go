// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"path"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/parlorchat/parlor-tui/internal/config"
	"github.com/parlorchat/parlor-tui/internal/model"
	"github.com/parlorchat/parlor-tui/internal/preview"
	"github.com/parlorchat/parlor-tui/internal/server"
	"github.com/parlorchat/parlor-tui/internal/store"
	"github.com/parlorchat/parlor-tui/internal/ui/styles"
)

// =============================================================================
// CHAT MODEL
// =============================================================================

// Model is the Bubble Tea model for the chat view.
type Model struct {
	// Styling
	theme *styles.Theme

	// Key bindings
	keyMap KeyMap

	// Conversation state
	store    *store.Store
	uploader *server.Client

	// Media preview
	controller *preview.Controller
	element    *preview.SimulatedElement

	// UI components
	viewport viewport.Model
	input    textinput.Model

	// Dimensions
	width  int
	height int
	ready  bool

	// Preferences
	uiCfg config.UIConfig

	// Store change notifications, delivered as storeChangedMsg
	changes     chan struct{}
	unsubscribe func()

	// Transient status line
	statusMsg string
}

// New creates the chat model. The store must already be loaded; an empty
// store gets its first session created here so the view never starts blank.
func New(st *store.Store, uploader *server.Client, uiCfg config.UIConfig) Model {
	input := textinput.New()
	input.Placeholder = "Type a message, or /attach <path>"
	input.CharLimit = 4000
	input.Focus()

	changes := make(chan struct{}, 1)
	unsubscribe := st.Subscribe(func() {
		select {
		case changes <- struct{}{}:
		default:
		}
	})

	if st.SessionCount() == 0 {
		st.CreateSession()
	}

	return Model{
		theme:       styles.NewTheme(),
		keyMap:      DefaultKeyMap(),
		store:       st,
		uploader:    uploader,
		controller:  preview.NewController(),
		viewport:    viewport.New(0, 0),
		input:       input,
		uiCfg:       uiCfg,
		changes:     changes,
		unsubscribe: unsubscribe,
	}
}

// Init starts the store change listener.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.waitForStoreChange())
}

// Close releases the store subscription.
func (m *Model) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
	}
}

// =============================================================================
// PREVIEW WIRING
// =============================================================================

// openPreview binds the media overlay to a message's file and seeds a
// simulated playback element for it.
func (m *Model) openPreview(msg model.Message) {
	name := msg.Content
	if name == "" && msg.URL != "" {
		name = path.Base(msg.URL)
	}
	file := preview.FileInfo{
		URL:    msg.URL,
		Name:   name,
		Type:   msg.FileType,
		Size:   msg.FileSize,
		Sender: string(msg.Sender),
	}

	m.controller.Open(file)

	if !file.IsVideo() && !file.IsAudio() {
		m.element = nil
		return
	}

	duration := msg.Duration
	if duration <= 0 {
		duration = 60
	}
	el := preview.NewSimulatedElement(duration)
	el.SetEvents(preview.Events{
		OnPlay:  m.controller.HandlePlay,
		OnPause: m.controller.HandlePause,
		OnEnded: m.controller.HandleEnded,
	})
	m.element = el
	m.controller.HandleVideoLoaded(el)
	m.controller.HandleTimeUpdate(el)
}

// closePreview tears the overlay down and drops the element.
func (m *Model) closePreview() {
	m.controller.ClosePreview()
	m.element = nil
}

// lastMediaMessage returns the most recent media message in the current
// session, or nil when there is none.
func (m *Model) lastMediaMessage() *model.Message {
	msgs := m.store.CurrentMessages()
	for i := len(msgs) - 1; i >= 0; i-- {
		if msgs[i].IsMedia() {
			return &msgs[i]
		}
	}
	return nil
}
