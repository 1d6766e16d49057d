package panel

import (
	"context"
	"fmt"
	"maps"
	"strings"

	"github.com/JaimeStill/go-agents/pkg/agent"
	gaconfig "github.com/JaimeStill/go-agents/pkg/config"
)

// New assembles a panel whose capabilities are go-agents chat agents. Every
// role shares the base agent configuration; models maps role ids to per-role
// model name overrides so roles can run on distinct underlying models.
func New(base *gaconfig.AgentConfig, models map[string]string) (*Panel, error) {
	return Assemble(func(role Role) (Capability, error) {
		cfg := cloneAgentConfig(base)
		cfg.Name = string(role)

		if model := models[string(role)]; model != "" {
			cfg.Model.Name = model
		}

		a, err := agent.New(cfg)
		if err != nil {
			return nil, fmt.Errorf("create agent: %w", err)
		}

		return &chatCapability{agent: a}, nil
	})
}

// chatCapability adapts a go-agents chat agent to the Capability contract.
// The instructions, extra context, and role-tagged history are composed into
// a single prompt for the underlying completion call.
type chatCapability struct {
	agent agent.Agent
}

func (c *chatCapability) Invoke(ctx context.Context, instructions, extra string, history []Turn) (string, error) {
	resp, err := c.agent.Chat(ctx, ComposePrompt(instructions, extra, history))
	if err != nil {
		return "", fmt.Errorf("chat call: %w", err)
	}
	return resp.Text(), nil
}

// ComposePrompt builds a capability prompt from role instructions, optional
// extra context, and a role-tagged conversation transcript.
func ComposePrompt(instructions, extra string, history []Turn) string {
	var sb strings.Builder
	sb.WriteString(instructions)

	if extra != "" {
		sb.WriteString("\n\n")
		sb.WriteString(extra)
	}

	if len(history) > 0 {
		sb.WriteString("\n\nConversation so far:")
		for _, turn := range history {
			sb.WriteString("\n\n[")
			sb.WriteString(turn.Role)
			sb.WriteString("]: ")
			sb.WriteString(turn.Content)
		}
	}

	return sb.String()
}

func cloneAgentConfig(base *gaconfig.AgentConfig) *gaconfig.AgentConfig {
	cfg := *base

	if base.Provider != nil {
		provider := *base.Provider
		if base.Provider.Options != nil {
			provider.Options = maps.Clone(base.Provider.Options)
		}
		cfg.Provider = &provider
	}

	if base.Model != nil {
		model := *base.Model
		cfg.Model = &model
	}

	return &cfg
}
