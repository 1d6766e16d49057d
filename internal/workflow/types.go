// Package workflow implements the step engine that advances a design
// conversation: vision negotiation with the orchestrator, moderated debate
// rounds, periodic human review pauses, and final document generation.
package workflow

import (
	"github.com/conclave-hq/conclave/internal/sessions"
)

// Status is the conversational phase a session resolves to after a step.
type Status string

// Session statuses in phase order.
const (
	StatusAwaitingVision   Status = "awaiting_vision"
	StatusDebating         Status = "debating"
	StatusAwaitingFeedback Status = "awaiting_feedback"
	StatusCompleted        Status = "completed"
)

// Event records one panel action taken during a step, in execution order.
type Event struct {
	Node      string           `json:"node"`
	Message   sessions.Message `json:"message"`
	Iteration int              `json:"iteration,omitempty"`
	Agent     string           `json:"agent,omitempty"`
}

// StepResult is the outcome of one workflow step: the ordered events the
// step produced and the status the session resolved to.
type StepResult struct {
	Events []Event
	Status Status
}

// State bag keys shared across workflow nodes.
const (
	KeySession   = "session"
	KeyMessage   = "message"
	KeyEvents    = "events"
	KeyConfirmed = "confirmed"
	KeyStatus    = "status"
)

// docSpec names one deliverable artifact and the brief the scribe writes
// it from.
type docSpec struct {
	Name        string
	Description string
}

var docSpecs = []docSpec{
	{
		Name:        "requirements.md",
		Description: "Functional and non-functional requirements derived from the project vision and the debate conclusions, with acceptance criteria.",
	},
	{
		Name:        "architecture.md",
		Description: "System architecture: components, data flow, technology choices, and the trade-offs the panel settled on.",
	},
	{
		Name:        "api_specs.md",
		Description: "API specifications: endpoints, request and response schemas, and error contracts.",
	},
	{
		Name:        "implementation_plan.md",
		Description: "Phased implementation plan with milestones, risks, and testing strategy.",
	},
}
