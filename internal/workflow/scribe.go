package workflow

import (
	"context"
	"fmt"
	"strings"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/conclave-hq/conclave/internal/panel"
	"github.com/conclave-hq/conclave/internal/sessions"
)

const docContentType = "text/markdown"

// ScribeNode returns a state node that generates the deliverable documents.
// The scribe writes each artifact in sequence from the project vision, the
// artifact brief, and the tail of the debate transcript; generated documents
// are uploaded to artifact storage under the session id.
func ScribeNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		session, err := sessionFrom(s)
		if err != nil {
			return s, fmt.Errorf("scribe: %w", err)
		}

		scribe, err := rt.Panel.Member(panel.RoleScribe)
		if err != nil {
			return s, fmt.Errorf("%w: %w", ErrScribeFailed, err)
		}

		names := make([]string, 0, len(docSpecs))

		for _, spec := range docSpecs {
			extra := fmt.Sprintf(
				"Project Vision: %s\n\nGenerate %s.\nDescription: %s",
				session.Vision(), spec.Name, spec.Description,
			)

			history := turns(session.Window(rt.Config.ScribeWindow))

			content, err := scribe.Invoke(ctx, extra, history)
			if err != nil {
				return s, fmt.Errorf("%w: %s: %w", ErrScribeFailed, spec.Name, err)
			}

			key := fmt.Sprintf("%s/%s", session.ID(), spec.Name)
			if err := rt.Storage.Upload(ctx, key, strings.NewReader(content), docContentType); err != nil {
				return s, fmt.Errorf("%w: upload %s: %w", ErrScribeFailed, spec.Name, err)
			}

			names = append(names, spec.Name)

			rt.Logger.InfoContext(
				ctx, "document generated",
				"session", session.ID(),
				"document", spec.Name,
			)
		}

		session.SetDocs(names)

		message := sessions.Message{
			Role:    sessions.RoleAssistant,
			Content: fmt.Sprintf("Generated project documents: %s", strings.Join(names, ", ")),
			Agent:   string(panel.RoleScribe),
		}
		session.Append(message)

		s = appendEvent(s, Event{
			Node:    "scribe",
			Message: message,
			Agent:   string(panel.RoleScribe),
		})

		return s, nil
	})
}
