package workflow

import (
	"context"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/conclave-hq/conclave/internal/sessions"
)

// IngestNode returns a state node that records the incoming user message on
// the transcript. When the session is paused for human review, the message is
// consumed as feedback: it retargets the debate topic and clears the pause so
// the step falls through to the next debate round.
func IngestNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		session, err := sessionFrom(s)
		if err != nil {
			return s, err
		}

		message, err := messageFrom(s)
		if err != nil {
			return s, err
		}

		session.Append(sessions.Message{
			Role:    sessions.RoleUser,
			Content: message,
		})

		if session.SubmitFeedback(message, rt.Config.TopicPrefixLimit) {
			rt.Logger.InfoContext(
				ctx, "feedback consumed",
				"session", session.ID(),
				"topic", session.Topic(),
			)
		}

		return s, nil
	})
}
