// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package store implements the multi-session chat store.
package store

import (
	"encoding/json"
	"log"
	"strings"
	"sync"

	"github.com/parlorchat/parlor-tui/internal/model"
	"github.com/parlorchat/parlor-tui/internal/storage"
	"github.com/parlorchat/parlor-tui/internal/util"
)

// StorageKey is the KV key holding the serialized session list.
const StorageKey = "chat-sessions"

// Greeting is the bot message seeded into every new session.
const Greeting = "Hello! How can I help you today?"

// =============================================================================
// ERRORS
// =============================================================================

// ErrNoActiveSession is returned when a message append is attempted with no
// active session. Use errors.Is(err, ErrNoActiveSession) to check.
var ErrNoActiveSession = &StoreError{Message: "no active session"}

// ErrSessionNotFound is returned when an operation names a session that is
// not present in the store.
var ErrSessionNotFound = &StoreError{Message: "session not found"}

// StoreError represents a session-store error.
type StoreError struct {
	Message string
}

// Error implements the error interface.
func (e *StoreError) Error() string {
	return e.Message
}

// Is implements errors.Is support for comparing store errors.
func (e *StoreError) Is(target error) bool {
	t, ok := target.(*StoreError)
	if !ok {
		return false
	}
	return e.Message == t.Message
}

// =============================================================================
// SESSION STORE
// =============================================================================

// Store owns the session list, the active-session pointer, and persistence.
// All methods are safe for concurrent use, though in practice mutation
// arrives from the single UI event loop.
type Store struct {
	mu sync.Mutex

	kv        storage.KV
	sessions  []*model.Session
	currentID string // empty = no active session

	observers []func()
}

// SessionTitle is the {id, title} pair consumed by the session-list UI.
type SessionTitle struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// New creates a session store backed by kv and restores any persisted
// snapshot. A missing or corrupt snapshot yields an empty store.
func New(kv storage.KV) *Store {
	s := &Store{kv: kv}
	s.load()
	return s
}

// load restores the session list from storage.
func (s *Store) load() {
	raw, ok := s.kv.Get(StorageKey)
	if !ok || raw == "" {
		return
	}

	var sessions []*model.Session
	if err := json.Unmarshal([]byte(raw), &sessions); err != nil {
		// Corrupt snapshot: start empty rather than crash.
		log.Printf("STORE: Discarding malformed persisted state: %v", err)
		return
	}
	s.sessions = sessions
}

// persist serializes the full session list to storage. Write failures are
// logged and swallowed: the in-memory state stays authoritative for the
// current process lifetime.
func (s *Store) persist() {
	data, err := json.Marshal(s.sessions)
	if err != nil {
		log.Printf("STORE: Failed to serialize sessions: %v", err)
		return
	}
	if err := s.kv.Set(StorageKey, string(data)); err != nil {
		log.Printf("STORE: Failed to persist sessions: %v", err)
	}
}

// notify invokes every subscribed observer. Called after each mutation,
// outside the lock, so observers can read views without deadlocking.
func (s *Store) notify(observers []func()) {
	for _, fn := range observers {
		fn()
	}
}

// Subscribe registers a callback invoked after every mutating operation.
// The returned function removes the subscription.
func (s *Store) Subscribe(fn func()) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.observers = append(s.observers, fn)
	index := len(s.observers) - 1
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.observers[index] = nil
	}
}

// snapshotObservers returns the current non-nil observers.
// Callers must hold the lock.
func (s *Store) snapshotObservers() []func() {
	observers := make([]func(), 0, len(s.observers))
	for _, fn := range s.observers {
		if fn != nil {
			observers = append(observers, fn)
		}
	}
	return observers
}

// =============================================================================
// MUTATING OPERATIONS
// =============================================================================

// CreateSession allocates a new session with an auto-numbered title and a
// bot greeting, makes it active, and persists. Returns the new session ID.
func (s *Store) CreateSession() string {
	s.mu.Lock()

	sess := model.NewSession("Chat " + util.IntToString(len(s.sessions)+1))
	greeting := model.NewTextMessage(model.SenderBot, Greeting)
	sess.Append(greeting)

	s.sessions = append(s.sessions, sess)
	s.currentID = sess.ID
	s.persist()

	observers := s.snapshotObservers()
	s.mu.Unlock()

	s.notify(observers)
	return sess.ID
}

// AddMessage appends msg to the active session. If no session is active,
// the store is left untouched and ErrNoActiveSession is returned.
//
// A user-sent text message consumes the session's staged attachments: the
// file list is cleared atomically with the append. User media messages do
// not clear it; the original client only treated text sends as consuming
// the staged files, and that asymmetry is preserved.
func (s *Store) AddMessage(msg model.Message) error {
	s.mu.Lock()

	sess := s.findLocked(s.currentID)
	if sess == nil {
		s.mu.Unlock()
		log.Printf("STORE: Dropping message %s: %v", msg.ID, ErrNoActiveSession)
		return ErrNoActiveSession
	}

	sess.Append(msg)
	if msg.Sender == model.SenderUser && msg.Type == model.TypeText {
		sess.ClearFileList()
	}
	s.persist()

	observers := s.snapshotObservers()
	s.mu.Unlock()

	s.notify(observers)
	return nil
}

// UpdateFileList replaces the active session's staged attachments
// wholesale. A no-op (not an error) when no session is active.
func (s *Store) UpdateFileList(items []model.FileItem) {
	s.mu.Lock()

	sess := s.findLocked(s.currentID)
	if sess == nil {
		s.mu.Unlock()
		return
	}

	sess.FileList = append(sess.FileList[:0], items...)
	s.persist()

	observers := s.snapshotObservers()
	s.mu.Unlock()

	s.notify(observers)
}

// RemoveSession deletes the session with the given ID. A no-op when the ID
// is absent. If the removed session was active, the first remaining session
// in storage order becomes active, or none if the store is empty.
func (s *Store) RemoveSession(id string) {
	s.mu.Lock()

	index := -1
	for i, sess := range s.sessions {
		if sess.ID == id {
			index = i
			break
		}
	}
	if index == -1 {
		s.mu.Unlock()
		return
	}

	wasActive := s.currentID == id
	s.sessions = append(s.sessions[:index], s.sessions[index+1:]...)

	if wasActive {
		s.currentID = ""
		if len(s.sessions) > 0 {
			s.currentID = s.sessions[0].ID
		}
	}
	s.persist()

	observers := s.snapshotObservers()
	s.mu.Unlock()

	s.notify(observers)
}

// SelectSession makes the session with the given ID active.
// Returns ErrSessionNotFound if it is not present.
func (s *Store) SelectSession(id string) error {
	s.mu.Lock()

	if s.findLocked(id) == nil {
		s.mu.Unlock()
		return ErrSessionNotFound
	}
	s.currentID = id

	observers := s.snapshotObservers()
	s.mu.Unlock()

	s.notify(observers)
	return nil
}

// AdvanceMessageStatus applies a delivery-status transition to a message in
// the active session and persists on success. Invalid transitions and
// unknown message IDs are no-ops.
func (s *Store) AdvanceMessageStatus(messageID string, next model.Status) {
	s.mu.Lock()

	sess := s.findLocked(s.currentID)
	if sess == nil {
		s.mu.Unlock()
		return
	}

	changed := false
	for i := range sess.Messages {
		if sess.Messages[i].ID == messageID {
			changed = sess.Messages[i].AdvanceStatus(next)
			break
		}
	}
	if changed {
		s.persist()
	}

	observers := s.snapshotObservers()
	s.mu.Unlock()

	if changed {
		s.notify(observers)
	}
}

// findLocked returns the session with the given ID, or nil.
// Callers must hold the lock.
func (s *Store) findLocked(id string) *model.Session {
	if id == "" {
		return nil
	}
	for _, sess := range s.sessions {
		if sess.ID == id {
			return sess
		}
	}
	return nil
}

// =============================================================================
// DERIVED VIEWS
// =============================================================================

// CurrentSessionID returns the active session's ID, or "" if none.
func (s *Store) CurrentSessionID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentID
}

// CurrentSession returns the active session, or nil if none.
func (s *Store) CurrentSession() *model.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.findLocked(s.currentID)
}

// SessionByID returns a copy of the session with the given ID, or nil.
// ID prefixes are accepted when they match exactly one session.
func (s *Store) SessionByID(id string) *model.Session {
	if id == "" {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if sess := s.findLocked(id); sess != nil {
		copied := *sess
		return &copied
	}

	var match *model.Session
	for _, sess := range s.sessions {
		if strings.HasPrefix(sess.ID, id) {
			if match != nil {
				return nil // ambiguous prefix
			}
			match = sess
		}
	}
	if match == nil {
		return nil
	}
	copied := *match
	return &copied
}

// SessionCount returns the number of sessions in the store.
func (s *Store) SessionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// SessionTitles returns the {id, title} pair for every session, in storage
// order, for the session-list UI.
func (s *Store) SessionTitles() []SessionTitle {
	s.mu.Lock()
	defer s.mu.Unlock()

	titles := make([]SessionTitle, len(s.sessions))
	for i, sess := range s.sessions {
		titles[i] = SessionTitle{ID: sess.ID, Title: sess.Title}
	}
	return titles
}

// CurrentMessages returns the active session's messages, or an empty slice
// if no session is active.
func (s *Store) CurrentMessages() []model.Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.findLocked(s.currentID)
	if sess == nil {
		return []model.Message{}
	}
	msgs := make([]model.Message, len(sess.Messages))
	copy(msgs, sess.Messages)
	return msgs
}

// CurrentFileList returns the active session's staged attachments, or an
// empty slice if no session is active.
func (s *Store) CurrentFileList() []model.FileItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.findLocked(s.currentID)
	if sess == nil {
		return []model.FileItem{}
	}
	items := make([]model.FileItem, len(sess.FileList))
	copy(items, sess.FileList)
	return items
}

// SelectedIndex returns the numeric index of the active session within the
// ordered list, or -1 if none is active.
func (s *Store) SelectedIndex() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, sess := range s.sessions {
		if sess.ID == s.currentID {
			return i
		}
	}
	return -1
}

// Search returns the {id, title} pairs of sessions whose title or message
// content matches the query, case-insensitively. An empty query matches
// every session.
func (s *Store) Search(query string) []SessionTitle {
	s.mu.Lock()
	defer s.mu.Unlock()

	if query == "" {
		titles := make([]SessionTitle, len(s.sessions))
		for i, sess := range s.sessions {
			titles[i] = SessionTitle{ID: sess.ID, Title: sess.Title}
		}
		return titles
	}

	lower := strings.ToLower(query)
	var results []SessionTitle
	for _, sess := range s.sessions {
		if strings.Contains(strings.ToLower(sess.Title), lower) || sess.ContainsText(query) {
			results = append(results, SessionTitle{ID: sess.ID, Title: sess.Title})
		}
	}
	return results
}
