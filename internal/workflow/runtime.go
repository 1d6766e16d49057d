package workflow

import (
	"log/slog"

	"github.com/conclave-hq/conclave/internal/config"
	"github.com/conclave-hq/conclave/internal/panel"
	"github.com/conclave-hq/conclave/pkg/storage"
)

// Runtime carries the dependencies workflow nodes need: the assembled agent
// panel, artifact storage for generated documents, the engine bounds, and a
// scoped logger.
type Runtime struct {
	Panel   *panel.Panel
	Storage storage.System
	Config  config.WorkflowConfig
	Logger  *slog.Logger
}

// NewRuntime creates a workflow runtime with a workflow-scoped logger.
func NewRuntime(p *panel.Panel, store storage.System, cfg config.WorkflowConfig, logger *slog.Logger) *Runtime {
	return &Runtime{
		Panel:   p,
		Storage: store,
		Config:  cfg,
		Logger:  logger.With("system", "workflow"),
	}
}
