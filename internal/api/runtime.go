package api

import (
	"github.com/conclave-hq/conclave/internal/config"
	"github.com/conclave-hq/conclave/internal/infrastructure"
	"github.com/conclave-hq/conclave/pkg/pagination"
)

// Runtime extends Infrastructure with API-specific configuration.
type Runtime struct {
	*infrastructure.Infrastructure
	Workflow   config.WorkflowConfig
	Pagination pagination.Config
}

// NewRuntime creates an API runtime with a module-scoped logger.
func NewRuntime(cfg *config.Config, infra *infrastructure.Infrastructure) *Runtime {
	return &Runtime{
		Infrastructure: &infrastructure.Infrastructure{
			Lifecycle: infra.Lifecycle,
			Logger:    infra.Logger.With("module", "api"),
			Storage:   infra.Storage,
			Panel:     infra.Panel,
		},
		Workflow:   cfg.Workflow,
		Pagination: cfg.API.Pagination,
	}
}
