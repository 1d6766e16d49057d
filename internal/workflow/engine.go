package workflow

import (
	"context"
	"fmt"

	gaoconfig "github.com/JaimeStill/go-agents-orchestration/pkg/config"
	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/conclave-hq/conclave/internal/panel"
	"github.com/conclave-hq/conclave/internal/sessions"
)

// Step advances a session by one workflow step for an incoming user message.
// It builds the state graph (ingest → vision | debate | scribe → resolve),
// executes it, and extracts the StepResult from the final state. Mutations
// applied to the session before a failing node remain in place; the caller
// reports the error and the session is stepped again on the next message.
func Step(ctx context.Context, rt *Runtime, session *sessions.Session, message string) (*StepResult, error) {
	graph, err := buildGraph(rt)
	if err != nil {
		return nil, fmt.Errorf("build graph: %w", err)
	}

	initialState := state.New(nil)
	initialState = initialState.Set(KeySession, session)
	initialState = initialState.Set(KeyMessage, message)
	initialState = initialState.Set(KeyEvents, []Event{})

	finalState, err := graph.Execute(ctx, initialState)
	if err != nil {
		return nil, fmt.Errorf("execute graph: %w", err)
	}

	return extractResult(finalState)
}

func buildGraph(rt *Runtime) (state.StateGraph, error) {
	cfg := gaoconfig.DefaultGraphConfig("conclave-step")
	cfg.Observer = "noop"

	graph, err := state.NewGraph(cfg)
	if err != nil {
		return nil, err
	}

	if err := graph.AddNode("ingest", IngestNode(rt)); err != nil {
		return nil, err
	}

	if err := graph.AddNode("vision", VisionNode(rt)); err != nil {
		return nil, err
	}

	if err := graph.AddNode("debate", DebateNode(rt)); err != nil {
		return nil, err
	}

	if err := graph.AddNode("scribe", ScribeNode(rt)); err != nil {
		return nil, err
	}

	if err := graph.AddNode("resolve", ResolveNode(rt)); err != nil {
		return nil, err
	}

	visionPending := func(s state.State) bool {
		session, err := sessionFrom(s)
		return err == nil && session.Vision() == ""
	}

	docsDue := func(s state.State) bool {
		session, err := sessionFrom(s)
		if err != nil {
			return false
		}
		return session.Vision() != "" &&
			session.Iteration() >= rt.Config.CompletionThreshold &&
			len(session.Docs()) == 0
	}

	debateDue := func(s state.State) bool {
		return !visionPending(s) && !docsDue(s)
	}

	confirmed := func(s state.State) bool {
		val, ok := s.Get(KeyConfirmed)
		if !ok {
			return false
		}
		c, ok := val.(bool)
		return ok && c
	}

	// ingest → vision (no confirmed vision yet)
	if err := graph.AddEdge("ingest", "vision", visionPending); err != nil {
		return nil, err
	}

	// ingest → scribe (documents due but not yet generated)
	if err := graph.AddEdge("ingest", "scribe", docsDue); err != nil {
		return nil, err
	}

	// ingest → debate (vision confirmed, documents not due)
	if err := graph.AddEdge("ingest", "debate", debateDue); err != nil {
		return nil, err
	}

	// vision → debate (vision confirmed this step, first round runs immediately)
	if err := graph.AddEdge("vision", "debate", confirmed); err != nil {
		return nil, err
	}

	// vision → resolve (orchestrator still negotiating)
	if err := graph.AddEdge("vision", "resolve", state.Not(confirmed)); err != nil {
		return nil, err
	}

	// debate → scribe (the completed round crossed the document threshold)
	if err := graph.AddEdge("debate", "scribe", docsDue); err != nil {
		return nil, err
	}

	// debate → resolve (more rounds, or a review pause, remain)
	if err := graph.AddEdge("debate", "resolve", state.Not(docsDue)); err != nil {
		return nil, err
	}

	// scribe → resolve (unconditional)
	if err := graph.AddEdge("scribe", "resolve", nil); err != nil {
		return nil, err
	}

	if err := graph.SetEntryPoint("ingest"); err != nil {
		return nil, err
	}

	if err := graph.SetExitPoint("resolve"); err != nil {
		return nil, err
	}

	return graph, nil
}

func extractResult(s state.State) (*StepResult, error) {
	eventsVal, ok := s.Get(KeyEvents)
	if !ok {
		return nil, fmt.Errorf("missing %s in final state", KeyEvents)
	}

	events, ok := eventsVal.([]Event)
	if !ok {
		return nil, fmt.Errorf("%s is not []Event", KeyEvents)
	}

	statusVal, ok := s.Get(KeyStatus)
	if !ok {
		return nil, fmt.Errorf("missing %s in final state", KeyStatus)
	}

	status, ok := statusVal.(Status)
	if !ok {
		return nil, fmt.Errorf("%s is not Status", KeyStatus)
	}

	return &StepResult{
		Events: events,
		Status: status,
	}, nil
}

func sessionFrom(s state.State) (*sessions.Session, error) {
	val, ok := s.Get(KeySession)
	if !ok {
		return nil, fmt.Errorf("missing %s in state", KeySession)
	}

	session, ok := val.(*sessions.Session)
	if !ok {
		return nil, fmt.Errorf("%s is not *sessions.Session", KeySession)
	}

	return session, nil
}

func messageFrom(s state.State) (string, error) {
	val, ok := s.Get(KeyMessage)
	if !ok {
		return "", fmt.Errorf("missing %s in state", KeyMessage)
	}

	message, ok := val.(string)
	if !ok {
		return "", fmt.Errorf("%s is not string", KeyMessage)
	}

	return message, nil
}

func appendEvent(s state.State, ev Event) state.State {
	var events []Event
	if val, ok := s.Get(KeyEvents); ok {
		if existing, ok := val.([]Event); ok {
			events = existing
		}
	}
	return s.Set(KeyEvents, append(events, ev))
}

func turns(messages []sessions.Message) []panel.Turn {
	converted := make([]panel.Turn, len(messages))
	for i, m := range messages {
		converted[i] = panel.Turn{
			Role:    string(m.Role),
			Content: m.Content,
		}
	}
	return converted
}
