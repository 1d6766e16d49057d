package workflow

import (
	"context"
	"fmt"
	"strings"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/conclave-hq/conclave/internal/panel"
	"github.com/conclave-hq/conclave/internal/sessions"
)

// VisionNode returns a state node that runs the orchestrator against the full
// transcript to negotiate the project vision. When the reply carries the
// confirmation marker, the text after it becomes the session vision and the
// step falls through to the first debate round.
func VisionNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		session, err := sessionFrom(s)
		if err != nil {
			return s, fmt.Errorf("vision: %w", err)
		}

		orchestrator, err := rt.Panel.Member(panel.RoleOrchestrator)
		if err != nil {
			return s, fmt.Errorf("%w: %w", ErrVisionFailed, err)
		}

		history := turns(session.Transcript())

		reply, err := orchestrator.Invoke(ctx, "", history)
		if err != nil {
			return s, fmt.Errorf("%w: %w", ErrVisionFailed, err)
		}

		message := sessions.Message{
			Role:    sessions.RoleAssistant,
			Content: reply,
			Agent:   string(panel.RoleOrchestrator),
		}
		session.Append(message)

		s = appendEvent(s, Event{
			Node:    "orchestrator",
			Message: message,
			Agent:   string(panel.RoleOrchestrator),
		})

		if idx := strings.Index(reply, panel.VisionMarker); idx >= 0 {
			vision := strings.TrimSpace(reply[idx+len(panel.VisionMarker):])
			session.SetVision(vision)
			s = s.Set(KeyConfirmed, true)

			rt.Logger.InfoContext(
				ctx, "vision confirmed",
				"session", session.ID(),
			)
		}

		return s, nil
	})
}
