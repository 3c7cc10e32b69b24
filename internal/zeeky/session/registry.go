// Package session multiplexes independent assistant conversations behind
// opaque identifiers for the HTTP gateway.
package session

import (
	"encoding/hex"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/zeekyhq/zeeky/internal/zeeky"
)

// ErrNotFound is returned by Get for identifiers the registry never issued.
var ErrNotFound = errors.New("session not found")

// Session wraps one assistant and serializes access to it. The assistant
// itself does no locking, so two concurrent Chat calls against the same
// session would race on transcript appends.
type Session struct {
	mu        sync.Mutex
	assistant *zeeky.Assistant
}

// Chat forwards to the underlying assistant, one caller at a time.
func (s *Session) Chat(input string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.assistant.Chat(input)
}

// Transcript returns a copy of the conversation so far.
func (s *Session) Transcript() []zeeky.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.assistant.Transcript()
}

// Registry maps opaque session identifiers to live sessions. Identifiers are
// the 16 bytes of a random UUID rendered as 32 lowercase hex characters and
// are never reused. Sessions are never evicted: every created session lives
// until process exit, so the map grows without bound under sustained use.
type Registry struct {
	mu           sync.RWMutex
	sessions     map[string]*Session
	newAssistant func() *zeeky.Assistant
}

// NewRegistry creates an empty registry. newAssistant constructs the
// assistant for each created session.
func NewRegistry(newAssistant func() *zeeky.Assistant) *Registry {
	return &Registry{
		sessions:     make(map[string]*Session),
		newAssistant: newAssistant,
	}
}

// Create generates a fresh identifier, constructs a new session with
// defaults, stores the pair, and returns both. Safe for concurrent use.
func (r *Registry) Create() (string, *Session) {
	sess := &Session{assistant: r.newAssistant()}
	id := newSessionID()

	r.mu.Lock()
	r.sessions[id] = sess
	r.mu.Unlock()

	return id, sess
}

// Get returns the session for the given identifier, or ErrNotFound.
func (r *Registry) Get(id string) (*Session, error) {
	r.mu.RLock()
	sess, ok := r.sessions[id]
	r.mu.RUnlock()

	if !ok {
		return nil, ErrNotFound
	}
	return sess, nil
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

func newSessionID() string {
	u := uuid.New()
	return hex.EncodeToString(u[:])
}
