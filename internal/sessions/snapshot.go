package sessions

import (
	"time"

	"github.com/google/uuid"
)

// State is a point-in-time copy of a session's full conversational state.
type State struct {
	ProjectVision      string    `json:"projectVision"`
	IterationCount     int       `json:"iterationCount"`
	PendingHumanReview bool      `json:"pendingHumanReview"`
	Docs               []string  `json:"docs"`
	Messages           []Message `json:"messages"`
}

// Summary is the condensed session state returned with every step response.
type Summary struct {
	ProjectVision      string   `json:"projectVision"`
	IterationCount     int      `json:"iterationCount"`
	PendingHumanReview bool     `json:"pendingHumanReview"`
	Docs               []string `json:"docs"`
}

// ListEntry describes one session in a paginated listing.
type ListEntry struct {
	SessionID          uuid.UUID `json:"sessionId"`
	ProjectVision      string    `json:"projectVision"`
	IterationCount     int       `json:"iterationCount"`
	PendingHumanReview bool      `json:"pendingHumanReview"`
	Docs               []string  `json:"docs"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// Snapshot returns a deep copy of the session's state. Repeated calls
// without intervening mutation return identical values.
func (s *Session) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	messages := make([]Message, len(s.messages))
	copy(messages, s.messages)

	docs := make([]string, len(s.docs))
	copy(docs, s.docs)

	return State{
		ProjectVision:      s.projectVision,
		IterationCount:     s.iterationCount,
		PendingHumanReview: s.pendingHumanReview,
		Docs:               docs,
		Messages:           messages,
	}
}

// Summarize returns the condensed session state.
func (s *Session) Summarize() Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	docs := make([]string, len(s.docs))
	copy(docs, s.docs)

	return Summary{
		ProjectVision:      s.projectVision,
		IterationCount:     s.iterationCount,
		PendingHumanReview: s.pendingHumanReview,
		Docs:               docs,
	}
}

func (s *Session) listEntry() ListEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	docs := make([]string, len(s.docs))
	copy(docs, s.docs)

	return ListEntry{
		SessionID:          s.id,
		ProjectVision:      s.projectVision,
		IterationCount:     s.iterationCount,
		PendingHumanReview: s.pendingHumanReview,
		Docs:               docs,
		CreatedAt:          s.createdAt,
		UpdatedAt:          s.updatedAt,
	}
}
