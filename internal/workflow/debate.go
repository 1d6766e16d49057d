package workflow

import (
	"context"
	"fmt"
	"strings"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/conclave-hq/conclave/internal/panel"
	"github.com/conclave-hq/conclave/internal/sessions"
)

// DebateNode returns a state node that runs one full debate round: the three
// debaters speak in fixed order, each seeing the round context plus the
// interventions already made this round, then the synthesis facilitator
// condenses the round into agreements, disagreements, and open questions.
func DebateNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		session, err := sessionFrom(s)
		if err != nil {
			return s, fmt.Errorf("debate: %w", err)
		}

		// The round context carries the count of rounds already completed;
		// events carry the number of the round now underway.
		round := session.BeginRound()
		roundContext := fmt.Sprintf(
			"Project Vision: %s\nCurrent Iteration: %d\nCurrent Topic: %s",
			session.Vision(), round-1, session.Topic(),
		)

		rt.Logger.InfoContext(
			ctx, "debate round started",
			"session", session.ID(),
			"round", round,
			"topic", session.Topic(),
		)

		interventions := make([]string, 0, 3)

		for _, debater := range rt.Panel.Debaters() {
			extra := roundContext
			if len(interventions) > 0 {
				extra += "\n\nInterventions so far in this round:\n" +
					strings.Join(interventions, "\n\n")
			}

			history := turns(session.Window(rt.Config.DebateWindow))

			reply, err := debater.Invoke(ctx, extra, history)
			if err != nil {
				return s, fmt.Errorf("%w: %w", ErrDebateFailed, err)
			}

			intervention := fmt.Sprintf("%s: %s", debater.Name, reply)
			interventions = append(interventions, intervention)

			message := sessions.Message{
				Role:    sessions.RoleAssistant,
				Content: fmt.Sprintf("%s\n%s", debater.Name, reply),
				Agent:   string(debater.Role),
			}
			session.Append(message)

			s = appendEvent(s, Event{
				Node:      "debater",
				Message:   message,
				Iteration: round,
				Agent:     string(debater.Role),
			})
		}

		facilitator, err := rt.Panel.Member(panel.RoleSynthesis)
		if err != nil {
			return s, fmt.Errorf("%w: %w", ErrDebateFailed, err)
		}

		extra := roundContext + "\n\nContributions this round:\n\n" +
			strings.Join(interventions, "\n\n")

		summary, err := facilitator.Invoke(ctx, extra, nil)
		if err != nil {
			return s, fmt.Errorf("%w: %w", ErrDebateFailed, err)
		}

		message := sessions.Message{
			Role:    sessions.RoleAssistant,
			Content: fmt.Sprintf("Synthesis of Debate #%d\n%s", round, summary),
			Agent:   string(panel.RoleSynthesis),
		}
		session.Append(message)

		s = appendEvent(s, Event{
			Node:      "synthesis",
			Message:   message,
			Iteration: round,
			Agent:     string(panel.RoleSynthesis),
		})

		return s, nil
	})
}
