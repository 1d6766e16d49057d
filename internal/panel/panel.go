// Package panel implements the fixed registry of agent roles that drive a
// design conversation: an orchestrator that negotiates the project vision,
// three debate participants, a synthesis facilitator, and a scribe.
package panel

import (
	"context"
	"fmt"
)

// Role identifies a panel member.
type Role string

// Panel roles, in registry order.
const (
	RoleOrchestrator   Role = "orchestrator"
	RoleArchitect      Role = "architect"
	RoleProductManager Role = "product-manager"
	RoleQALead         Role = "qa-lead"
	RoleSynthesis      Role = "synthesis"
	RoleScribe         Role = "scribe"
)

// Turn is one role-tagged entry of conversation history supplied to a
// capability. Role is "user" or "assistant".
type Turn struct {
	Role    string
	Content string
}

// Capability produces text from role instructions, extra context, and a
// bounded conversation history. It wraps an external model call; failures
// propagate and abort the workflow step that issued the invocation.
type Capability interface {
	Invoke(ctx context.Context, instructions, extra string, history []Turn) (string, error)
}

// Member binds a role to its display name, instruction prompt, and capability.
type Member struct {
	Role         Role
	Name         string
	Instructions string

	capability Capability
}

// Invoke runs the member's capability with its bound instructions.
func (m *Member) Invoke(ctx context.Context, extra string, history []Turn) (string, error) {
	content, err := m.capability.Invoke(ctx, m.Instructions, extra, history)
	if err != nil {
		return "", fmt.Errorf("%s: %w", m.Role, err)
	}
	return content, nil
}

// Panel is the fixed ordered registry of agent roles.
type Panel struct {
	members map[Role]*Member
}

// Assemble builds a panel by resolving a capability for each role.
// The resolver is called once per role in registry order.
func Assemble(resolve func(Role) (Capability, error)) (*Panel, error) {
	members := make(map[Role]*Member, len(roles))

	for _, role := range roles {
		capability, err := resolve(role)
		if err != nil {
			return nil, fmt.Errorf("assemble %s: %w", role, err)
		}
		members[role] = &Member{
			Role:         role,
			Name:         names[role],
			Instructions: instructions[role],
			capability:   capability,
		}
	}

	return &Panel{members: members}, nil
}

// Member returns the panel member for a role.
func (p *Panel) Member(role Role) (*Member, error) {
	m, ok := p.members[role]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownRole, role)
	}
	return m, nil
}

// Debaters returns the three debate participants in their fixed speaking order.
func (p *Panel) Debaters() []*Member {
	return []*Member{
		p.members[RoleArchitect],
		p.members[RoleProductManager],
		p.members[RoleQALead],
	}
}

var roles = []Role{
	RoleOrchestrator,
	RoleArchitect,
	RoleProductManager,
	RoleQALead,
	RoleSynthesis,
	RoleScribe,
}

// Roles returns the registry order of panel roles.
func Roles() []Role {
	return roles
}
