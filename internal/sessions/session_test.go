package sessions_test

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/conclave-hq/conclave/internal/sessions"
)

func newSession(t *testing.T) *sessions.Session {
	t.Helper()
	return newStore().GetOrCreate("")
}

func TestWindow(t *testing.T) {
	session := newSession(t)
	for _, content := range []string{"a", "b", "c", "d"} {
		session.Append(sessions.Message{Role: sessions.RoleUser, Content: content})
	}

	tests := []struct {
		name string
		n    int
		want []string
	}{
		{"smaller than transcript", 2, []string{"c", "d"}},
		{"exact size", 4, []string{"a", "b", "c", "d"}},
		{"larger than transcript", 10, []string{"a", "b", "c", "d"}},
		{"zero", 0, []string{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			window := session.Window(tc.n)
			if len(window) != len(tc.want) {
				t.Fatalf("got %d messages, want %d", len(window), len(tc.want))
			}
			for i, want := range tc.want {
				if window[i].Content != want {
					t.Errorf("message %d: got %q, want %q", i, window[i].Content, want)
				}
			}
		})
	}
}

func TestBeginRound(t *testing.T) {
	session := newSession(t)

	if got := session.BeginRound(); got != 1 {
		t.Errorf("first round: got %d, want 1", got)
	}
	if got := session.BeginRound(); got != 2 {
		t.Errorf("second round: got %d, want 2", got)
	}
	if session.Iteration() != 2 {
		t.Errorf("iteration: got %d, want 2", session.Iteration())
	}
}

func TestSubmitFeedbackWithoutPendingReview(t *testing.T) {
	session := newSession(t)

	if session.SubmitFeedback("ignored", 120) {
		t.Error("feedback without pending review should be rejected")
	}
	if session.Topic() != defaultTopic {
		t.Errorf("topic should be unchanged: got %q", session.Topic())
	}
}

func TestSubmitFeedbackRetargetsTopic(t *testing.T) {
	session := newSession(t)
	session.RequestReview()

	if !session.SubmitFeedback("add offline mode", 120) {
		t.Fatal("feedback with pending review should be consumed")
	}
	if session.PendingReview() {
		t.Error("pending flag should clear")
	}
	if session.Topic() != "Feedback-driven refinement: add offline mode" {
		t.Errorf("topic: got %q", session.Topic())
	}
}

func TestSubmitFeedbackTruncation(t *testing.T) {
	session := newSession(t)
	session.RequestReview()

	long := strings.Repeat("y", 500)
	session.SubmitFeedback(long, 120)

	want := "Feedback-driven refinement: " + strings.Repeat("y", 120)
	if session.Topic() != want {
		t.Errorf("topic length: got %d, want %d", len(session.Topic()), len(want))
	}
}

func TestSubmitFeedbackTruncationKeepsRunesIntact(t *testing.T) {
	session := newSession(t)
	session.RequestReview()

	long := strings.Repeat("é", 500)
	session.SubmitFeedback(long, 120)

	topic := session.Topic()
	if !utf8.ValidString(topic) {
		t.Fatalf("topic contains invalid UTF-8: %q", topic)
	}

	want := "Feedback-driven refinement: " + strings.Repeat("é", 120)
	if topic != want {
		t.Errorf("topic: got %d runes after prefix, want 120",
			utf8.RuneCountInString(strings.TrimPrefix(topic, "Feedback-driven refinement: ")))
	}
}

func TestSnapshotDeepCopy(t *testing.T) {
	session := newSession(t)
	session.Append(sessions.Message{Role: sessions.RoleUser, Content: "hello"})
	session.SetDocs([]string{"requirements.md"})

	snap := session.Snapshot()
	snap.Messages[0].Content = "mutated"
	snap.Docs[0] = "mutated"

	fresh := session.Snapshot()
	if fresh.Messages[0].Content != "hello" {
		t.Error("snapshot messages should be a copy")
	}
	if fresh.Docs[0] != "requirements.md" {
		t.Error("snapshot docs should be a copy")
	}
}

func TestSummarize(t *testing.T) {
	session := newSession(t)
	session.SetVision("A recipe app")
	session.BeginRound()
	session.RequestReview()

	summary := session.Summarize()
	if summary.ProjectVision != "A recipe app" {
		t.Errorf("vision: got %q", summary.ProjectVision)
	}
	if summary.IterationCount != 1 {
		t.Errorf("iteration: got %d, want 1", summary.IterationCount)
	}
	if !summary.PendingHumanReview {
		t.Error("pending review should be set")
	}
}
