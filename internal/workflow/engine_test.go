package workflow_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/conclave-hq/conclave/internal/config"
	"github.com/conclave-hq/conclave/internal/panel"
	"github.com/conclave-hq/conclave/internal/sessions"
	"github.com/conclave-hq/conclave/internal/workflow"
	"github.com/conclave-hq/conclave/pkg/lifecycle"
	"github.com/conclave-hq/conclave/pkg/pagination"
	"github.com/conclave-hq/conclave/pkg/storage"
)

// scriptedCapability routes invocations to a per-role responder so tests can
// drive the orchestrator, debaters, synthesis, and scribe deterministically.
type scriptedCapability struct {
	role    panel.Role
	respond func(role panel.Role, extra string, history []panel.Turn) (string, error)
}

func (c *scriptedCapability) Invoke(ctx context.Context, instructions, extra string, history []panel.Turn) (string, error) {
	return c.respond(c.role, extra, history)
}

type memStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func newMemStorage() *memStorage {
	return &memStorage{objects: make(map[string][]byte)}
}

func (m *memStorage) Start(lc *lifecycle.Coordinator) error { return nil }

func (m *memStorage) Upload(ctx context.Context, key string, reader io.Reader, contentType string) error {
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = data
	return nil
}

func (m *memStorage) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.objects[key]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (m *memStorage) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.objects[key]; !ok {
		return storage.ErrNotFound
	}
	delete(m.objects, key)
	return nil
}

func (m *memStorage) Exists(ctx context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.objects[key]
	return ok, nil
}

func (m *memStorage) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.objects)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testWorkflowConfig() config.WorkflowConfig {
	return config.WorkflowConfig{
		ReviewInterval:      3,
		CompletionThreshold: 9,
		DebateWindow:        6,
		ScribeWindow:        10,
		TopicPrefixLimit:    120,
		DefaultTopic:        "General Architecture and Requirements",
	}
}

func newTestRuntime(t *testing.T, respond func(role panel.Role, extra string, history []panel.Turn) (string, error)) (*workflow.Runtime, *memStorage) {
	t.Helper()

	p, err := panel.Assemble(func(role panel.Role) (panel.Capability, error) {
		return &scriptedCapability{role: role, respond: respond}, nil
	})
	if err != nil {
		t.Fatalf("assemble panel: %v", err)
	}

	store := newMemStorage()
	rt := workflow.NewRuntime(p, store, testWorkflowConfig(), testLogger())
	return rt, store
}

func newTestSession(t *testing.T) *sessions.Session {
	t.Helper()
	store := sessions.NewStore(
		"General Architecture and Requirements",
		pagination.Config{DefaultPageSize: 20, MaxPageSize: 100},
		testLogger(),
	)
	return store.GetOrCreate("")
}

// echoResponder answers with a fixed reply per role; the orchestrator never
// confirms a vision.
func echoResponder(role panel.Role, extra string, history []panel.Turn) (string, error) {
	return fmt.Sprintf("%s speaking", role), nil
}

// confirmingResponder confirms the vision on the first orchestrator turn and
// echoes for everyone else.
func confirmingResponder(vision string) func(panel.Role, string, []panel.Turn) (string, error) {
	return func(role panel.Role, extra string, history []panel.Turn) (string, error) {
		if role == panel.RoleOrchestrator {
			return panel.VisionMarker + " " + vision, nil
		}
		return fmt.Sprintf("%s speaking", role), nil
	}
}

func TestStepAwaitingVision(t *testing.T) {
	rt, _ := newTestRuntime(t, echoResponder)
	session := newTestSession(t)

	result, err := workflow.Step(context.Background(), rt, session, "I want to build something")
	if err != nil {
		t.Fatalf("step failed: %v", err)
	}

	if result.Status != workflow.StatusAwaitingVision {
		t.Errorf("status: got %s, want %s", result.Status, workflow.StatusAwaitingVision)
	}
	if len(result.Events) != 1 {
		t.Fatalf("events: got %d, want 1", len(result.Events))
	}
	if result.Events[0].Node != "orchestrator" {
		t.Errorf("event node: got %s, want orchestrator", result.Events[0].Node)
	}
	if session.Vision() != "" {
		t.Errorf("vision should stay empty, got %q", session.Vision())
	}
	if session.Iteration() != 0 {
		t.Errorf("iteration: got %d, want 0", session.Iteration())
	}
}

func TestStepVisionConfirmedRunsFirstRound(t *testing.T) {
	rt, _ := newTestRuntime(t, confirmingResponder("A collaborative recipe app"))
	session := newTestSession(t)

	result, err := workflow.Step(context.Background(), rt, session, "A recipe app")
	if err != nil {
		t.Fatalf("step failed: %v", err)
	}

	if session.Vision() != "A collaborative recipe app" {
		t.Errorf("vision: got %q", session.Vision())
	}
	if session.Iteration() != 1 {
		t.Errorf("iteration: got %d, want 1", session.Iteration())
	}
	if result.Status != workflow.StatusDebating {
		t.Errorf("status: got %s, want %s", result.Status, workflow.StatusDebating)
	}

	// orchestrator + three debaters + synthesis
	wantNodes := []string{"orchestrator", "debater", "debater", "debater", "synthesis"}
	if len(result.Events) != len(wantNodes) {
		t.Fatalf("events: got %d, want %d", len(result.Events), len(wantNodes))
	}
	for i, want := range wantNodes {
		if result.Events[i].Node != want {
			t.Errorf("event %d node: got %s, want %s", i, result.Events[i].Node, want)
		}
	}

	wantAgents := []string{
		string(panel.RoleArchitect),
		string(panel.RoleProductManager),
		string(panel.RoleQALead),
	}
	for i, want := range wantAgents {
		if result.Events[i+1].Agent != want {
			t.Errorf("debater %d agent: got %s, want %s", i, result.Events[i+1].Agent, want)
		}
		if result.Events[i+1].Iteration != 1 {
			t.Errorf("debater %d iteration: got %d, want 1", i, result.Events[i+1].Iteration)
		}
	}
}

func TestStepReviewGate(t *testing.T) {
	rt, _ := newTestRuntime(t, confirmingResponder("A task tracker"))
	session := newTestSession(t)
	ctx := context.Background()

	statuses := make([]workflow.Status, 0, 3)
	for i := range 3 {
		result, err := workflow.Step(ctx, rt, session, fmt.Sprintf("message %d", i))
		if err != nil {
			t.Fatalf("step %d failed: %v", i, err)
		}
		statuses = append(statuses, result.Status)
	}

	want := []workflow.Status{
		workflow.StatusDebating,
		workflow.StatusDebating,
		workflow.StatusAwaitingFeedback,
	}
	for i, s := range want {
		if statuses[i] != s {
			t.Errorf("step %d status: got %s, want %s", i, statuses[i], s)
		}
	}

	if !session.PendingReview() {
		t.Error("pending review should be set after round 3")
	}
	if session.Iteration() != 3 {
		t.Errorf("iteration: got %d, want 3", session.Iteration())
	}
}

func TestStepFeedbackConsumption(t *testing.T) {
	rt, _ := newTestRuntime(t, confirmingResponder("A task tracker"))
	session := newTestSession(t)
	ctx := context.Background()

	for i := range 3 {
		if _, err := workflow.Step(ctx, rt, session, fmt.Sprintf("message %d", i)); err != nil {
			t.Fatalf("step %d failed: %v", i, err)
		}
	}

	feedback := "Focus on offline support and sync conflict resolution"
	result, err := workflow.Step(ctx, rt, session, feedback)
	if err != nil {
		t.Fatalf("feedback step failed: %v", err)
	}

	if session.PendingReview() {
		t.Error("pending review should clear after feedback")
	}
	wantTopic := "Feedback-driven refinement: " + feedback
	if session.Topic() != wantTopic {
		t.Errorf("topic: got %q, want %q", session.Topic(), wantTopic)
	}
	if session.Iteration() != 4 {
		t.Errorf("iteration: got %d, want 4", session.Iteration())
	}
	if result.Status != workflow.StatusDebating {
		t.Errorf("status: got %s, want %s", result.Status, workflow.StatusDebating)
	}
}

func TestStepFeedbackTopicTruncation(t *testing.T) {
	rt, _ := newTestRuntime(t, confirmingResponder("A task tracker"))
	session := newTestSession(t)
	ctx := context.Background()

	for i := range 3 {
		if _, err := workflow.Step(ctx, rt, session, fmt.Sprintf("message %d", i)); err != nil {
			t.Fatalf("step %d failed: %v", i, err)
		}
	}

	long := strings.Repeat("x", 300)
	if _, err := workflow.Step(ctx, rt, session, long); err != nil {
		t.Fatalf("feedback step failed: %v", err)
	}

	want := "Feedback-driven refinement: " + strings.Repeat("x", 120)
	if session.Topic() != want {
		t.Errorf("topic not truncated to prefix limit: got %d chars", len(session.Topic()))
	}
}

func TestStepCompletion(t *testing.T) {
	rt, store := newTestRuntime(t, confirmingResponder("A task tracker"))
	session := newTestSession(t)
	ctx := context.Background()

	var final *workflow.StepResult
	steps := 0
	for steps < 20 {
		result, err := workflow.Step(ctx, rt, session, fmt.Sprintf("message %d", steps))
		if err != nil {
			t.Fatalf("step %d failed: %v", steps, err)
		}
		steps++
		final = result
		if result.Status == workflow.StatusCompleted {
			break
		}
	}

	// rounds 1-9 with review pauses after 3 and 6: nine steps total
	if steps != 9 {
		t.Errorf("steps to completion: got %d, want 9", steps)
	}
	if session.Iteration() != 9 {
		t.Errorf("iteration: got %d, want 9", session.Iteration())
	}
	if final.Status != workflow.StatusCompleted {
		t.Errorf("status: got %s, want %s", final.Status, workflow.StatusCompleted)
	}

	docs := session.Docs()
	wantDocs := []string{"requirements.md", "architecture.md", "api_specs.md", "implementation_plan.md"}
	if len(docs) != len(wantDocs) {
		t.Fatalf("docs: got %v, want %v", docs, wantDocs)
	}
	for i, want := range wantDocs {
		if docs[i] != want {
			t.Errorf("doc %d: got %s, want %s", i, docs[i], want)
		}
	}

	if store.count() != 4 {
		t.Errorf("stored artifacts: got %d, want 4", store.count())
	}
	for _, name := range wantDocs {
		key := fmt.Sprintf("%s/%s", session.ID(), name)
		ok, err := store.Exists(ctx, key)
		if err != nil || !ok {
			t.Errorf("artifact %s missing", key)
		}
	}

	lastEvent := final.Events[len(final.Events)-1]
	if lastEvent.Node != "scribe" {
		t.Errorf("final event node: got %s, want scribe", lastEvent.Node)
	}
}

func TestStepAfterCompletionStaysCompleted(t *testing.T) {
	rt, _ := newTestRuntime(t, confirmingResponder("A task tracker"))
	session := newTestSession(t)
	ctx := context.Background()

	for range 9 {
		if _, err := workflow.Step(ctx, rt, session, "continue"); err != nil {
			t.Fatalf("step failed: %v", err)
		}
	}

	result, err := workflow.Step(ctx, rt, session, "one more thought")
	if err != nil {
		t.Fatalf("post-completion step failed: %v", err)
	}

	if result.Status != workflow.StatusCompleted {
		t.Errorf("status: got %s, want %s", result.Status, workflow.StatusCompleted)
	}
	if session.Iteration() != 10 {
		t.Errorf("iteration: got %d, want 10", session.Iteration())
	}
	if len(session.Docs()) != 4 {
		t.Errorf("docs should not regenerate: got %d", len(session.Docs()))
	}
}

func TestStepDebaterFailureKeepsPartialProgress(t *testing.T) {
	boom := errors.New("model unavailable")
	calls := 0

	rt, _ := newTestRuntime(t, func(role panel.Role, extra string, history []panel.Turn) (string, error) {
		if role == panel.RoleOrchestrator {
			return panel.VisionMarker + " A task tracker", nil
		}
		calls++
		if role == panel.RoleQALead {
			return "", boom
		}
		return fmt.Sprintf("%s speaking", role), nil
	})
	session := newTestSession(t)

	_, err := workflow.Step(context.Background(), rt, session, "A task tracker")
	if err == nil {
		t.Fatal("expected step failure")
	}
	if !errors.Is(err, boom) {
		t.Errorf("error should wrap cause: %v", err)
	}

	// The round counter and the two successful interventions stay recorded.
	if session.Iteration() != 1 {
		t.Errorf("iteration: got %d, want 1", session.Iteration())
	}

	transcript := session.Transcript()
	agents := make([]string, 0, len(transcript))
	for _, m := range transcript {
		if m.Agent != "" {
			agents = append(agents, m.Agent)
		}
	}
	want := []string{
		string(panel.RoleOrchestrator),
		string(panel.RoleArchitect),
		string(panel.RoleProductManager),
	}
	if len(agents) != len(want) {
		t.Fatalf("agent messages: got %v, want %v", agents, want)
	}
	for i, w := range want {
		if agents[i] != w {
			t.Errorf("agent %d: got %s, want %s", i, agents[i], w)
		}
	}
}

func TestStepDebaterSeesPriorInterventions(t *testing.T) {
	var qaExtra string

	rt, _ := newTestRuntime(t, func(role panel.Role, extra string, history []panel.Turn) (string, error) {
		if role == panel.RoleOrchestrator {
			return panel.VisionMarker + " A task tracker", nil
		}
		if role == panel.RoleQALead {
			qaExtra = extra
		}
		return fmt.Sprintf("%s speaking", role), nil
	})
	session := newTestSession(t)

	if _, err := workflow.Step(context.Background(), rt, session, "A task tracker"); err != nil {
		t.Fatalf("step failed: %v", err)
	}

	if !strings.Contains(qaExtra, "Senior Architect") {
		t.Error("qa-lead should see the architect's intervention")
	}
	if !strings.Contains(qaExtra, "Product Manager") {
		t.Error("qa-lead should see the product manager's intervention")
	}
	if !strings.Contains(qaExtra, "Project Vision: A task tracker") {
		t.Error("round context should carry the project vision")
	}
}

func TestStepRoundContextCarriesCompletedRoundCount(t *testing.T) {
	extras := make([]string, 0, 2)

	rt, _ := newTestRuntime(t, func(role panel.Role, extra string, history []panel.Turn) (string, error) {
		if role == panel.RoleOrchestrator {
			return panel.VisionMarker + " A task tracker", nil
		}
		if role == panel.RoleArchitect {
			extras = append(extras, extra)
		}
		return fmt.Sprintf("%s speaking", role), nil
	})
	session := newTestSession(t)
	ctx := context.Background()

	for i := range 2 {
		if _, err := workflow.Step(ctx, rt, session, fmt.Sprintf("message %d", i)); err != nil {
			t.Fatalf("step %d failed: %v", i, err)
		}
	}

	if len(extras) != 2 {
		t.Fatalf("architect invocations: got %d, want 2", len(extras))
	}
	// The context counts finished rounds, not the round in progress.
	if !strings.Contains(extras[0], "Current Iteration: 0") {
		t.Errorf("first round context should report 0 completed rounds: %q", extras[0])
	}
	if !strings.Contains(extras[1], "Current Iteration: 1") {
		t.Errorf("second round context should report 1 completed round: %q", extras[1])
	}
}
