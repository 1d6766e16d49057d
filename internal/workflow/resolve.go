package workflow

import (
	"context"
	"fmt"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/conclave-hq/conclave/internal/sessions"
)

const reviewPrompt = "The panel pauses for human review. Share feedback on the " +
	"discussion so far and the next debate rounds will focus on it."

// ResolveNode returns the terminal state node. It applies the periodic human
// review pause when a completed round lands on the review cadence, then
// resolves the session to its status for the step response.
func ResolveNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		session, err := sessionFrom(s)
		if err != nil {
			return s, fmt.Errorf("resolve: %w", err)
		}

		iteration := session.Iteration()

		gate := session.Vision() != "" &&
			len(session.Docs()) == 0 &&
			iteration > 0 &&
			iteration%rt.Config.ReviewInterval == 0 &&
			iteration < rt.Config.CompletionThreshold &&
			!session.PendingReview()

		if gate {
			session.RequestReview()

			message := sessions.Message{
				Role:    sessions.RoleAssistant,
				Content: reviewPrompt,
			}
			session.Append(message)

			s = appendEvent(s, Event{
				Node:      "human_review",
				Message:   message,
				Iteration: iteration,
			})

			rt.Logger.InfoContext(
				ctx, "human review requested",
				"session", session.ID(),
				"round", iteration,
			)
		}

		status := resolveStatus(rt, session)
		s = s.Set(KeyStatus, status)

		rt.Logger.InfoContext(
			ctx, "step resolved",
			"session", session.ID(),
			"status", status,
			"round", iteration,
		)

		return s, nil
	})
}

func resolveStatus(rt *Runtime, session *sessions.Session) Status {
	switch {
	case session.Vision() == "":
		return StatusAwaitingVision
	case session.PendingReview():
		return StatusAwaitingFeedback
	case session.Iteration() >= rt.Config.CompletionThreshold && len(session.Docs()) > 0:
		return StatusCompleted
	default:
		return StatusDebating
	}
}
