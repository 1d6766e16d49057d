package api

import (
	"github.com/conclave-hq/conclave/internal/sessions"
	"github.com/conclave-hq/conclave/internal/workflow"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Sessions sessions.System
	Workflow *workflow.Handler
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(runtime *Runtime) *Domain {
	store := sessions.NewStore(
		runtime.Workflow.DefaultTopic,
		runtime.Pagination,
		runtime.Logger,
	)

	engine := workflow.NewRuntime(
		runtime.Panel,
		runtime.Storage,
		runtime.Workflow,
		runtime.Logger,
	)

	return &Domain{
		Sessions: store,
		Workflow: workflow.NewHandler(engine, store, runtime.Logger),
	}
}
