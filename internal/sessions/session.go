// Package sessions implements the session domain for conclave.
// It provides the mutable conversation aggregate, an in-memory store with
// per-session mutual exclusion, and HTTP handlers for session queries.
package sessions

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// MessageRole identifies the author side of a transcript message.
type MessageRole string

// Transcript message roles.
const (
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
)

// Message is a single immutable transcript entry. Agent carries the panel
// role that produced an assistant message, when one applies.
type Message struct {
	Role    MessageRole `json:"role"`
	Content string      `json:"content"`
	Agent   string      `json:"agent,omitempty"`
}

// Session is the mutable state of one design conversation. All accessors are
// safe for concurrent use; the step engine additionally serializes full steps
// through the store's per-session lock, so reads during a step observe the
// partial progress of that step and nothing else.
type Session struct {
	mu sync.RWMutex

	id                 uuid.UUID
	messages           []Message
	iterationCount     int
	projectVision      string
	currentDebateTopic string
	userFeedback       []string
	pendingHumanReview bool
	docs               []string
	createdAt          time.Time
	updatedAt          time.Time
}

func newSession(id uuid.UUID, topic string) *Session {
	now := time.Now()
	return &Session{
		id:                 id,
		currentDebateTopic: topic,
		createdAt:          now,
		updatedAt:          now,
	}
}

// ID returns the session identifier.
func (s *Session) ID() uuid.UUID {
	return s.id
}

// Append adds a message to the end of the transcript.
func (s *Session) Append(m Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, m)
	s.updatedAt = time.Now()
}

// Transcript returns a copy of the full message transcript.
func (s *Session) Transcript() []Message {
	s.mu.RLock()
	defer s.mu.RUnlock()

	messages := make([]Message, len(s.messages))
	copy(messages, s.messages)
	return messages
}

// Window returns a copy of the last n transcript messages.
func (s *Session) Window(n int) []Message {
	s.mu.RLock()
	defer s.mu.RUnlock()

	start := max(len(s.messages)-n, 0)
	window := make([]Message, len(s.messages)-start)
	copy(window, s.messages[start:])
	return window
}

// Vision returns the confirmed project vision, empty until confirmation.
func (s *Session) Vision() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.projectVision
}

// SetVision stores the confirmed project vision.
func (s *Session) SetVision(v string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.projectVision = v
	s.updatedAt = time.Now()
}

// Iteration returns the number of completed debate rounds.
func (s *Session) Iteration() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.iterationCount
}

// BeginRound increments the iteration counter by one and returns the new
// round number. No other mutation touches the counter.
func (s *Session) BeginRound() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.iterationCount++
	s.updatedAt = time.Now()
	return s.iterationCount
}

// Topic returns the current debate topic.
func (s *Session) Topic() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentDebateTopic
}

// PendingReview reports whether the session is waiting on human feedback.
func (s *Session) PendingReview() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pendingHumanReview
}

// RequestReview marks the session as waiting on human feedback.
func (s *Session) RequestReview() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pendingHumanReview = true
	s.updatedAt = time.Now()
}

// SubmitFeedback consumes a pending review: the raw feedback is recorded,
// the debate topic is retargeted to a bounded prefix of it, and the pending
// flag clears. Returns false without mutation when no review is pending.
func (s *Session) SubmitFeedback(raw string, prefixLimit int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.pendingHumanReview {
		return false
	}

	s.userFeedback = append(s.userFeedback, raw)
	s.currentDebateTopic = "Feedback-driven refinement: " + truncate(raw, prefixLimit)
	s.pendingHumanReview = false
	s.updatedAt = time.Now()
	return true
}

// Docs returns a copy of the generated artifact names.
func (s *Session) Docs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	docs := make([]string, len(s.docs))
	copy(docs, s.docs)
	return docs
}

// SetDocs records the generated artifact names.
func (s *Session) SetDocs(names []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs = names
	s.updatedAt = time.Now()
}

// truncate bounds s to limit characters, never splitting a rune.
func truncate(s string, limit int) string {
	if limit <= 0 {
		return s
	}

	runes := []rune(s)
	if len(runes) > limit {
		return string(runes[:limit])
	}
	return s
}
