package config

import (
	"fmt"
	"os"

	gaconfig "github.com/JaimeStill/go-agents/pkg/config"
)

const (
	EnvPanelProviderName = "CONCLAVE_PANEL_PROVIDER_NAME"
	EnvPanelBaseURL      = "CONCLAVE_PANEL_BASE_URL"
	EnvPanelToken        = "CONCLAVE_PANEL_TOKEN"
	EnvPanelAuthType     = "CONCLAVE_PANEL_AUTH_TYPE"
	EnvPanelModelName    = "CONCLAVE_PANEL_MODEL_NAME"
)

// PanelConfig holds the shared go-agents configuration for panel members.
// Agent is the base configuration every role starts from; Models maps role
// ids (orchestrator, architect, product-manager, qa-lead, synthesis, scribe)
// to model name overrides so roles can run on distinct models.
type PanelConfig struct {
	Agent  gaconfig.AgentConfig `toml:"agent"`
	Models map[string]string    `toml:"models"`
}

// Finalize applies the three-phase pattern to the base agent config:
// defaults from go-agents DefaultAgentConfig, environment variable
// overrides, and validation.
func (c *PanelConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *PanelConfig) Merge(overlay *PanelConfig) {
	c.Agent.Merge(&overlay.Agent)

	if overlay.Models != nil {
		if c.Models == nil {
			c.Models = make(map[string]string, len(overlay.Models))
		}
		for role, model := range overlay.Models {
			c.Models[role] = model
		}
	}
}

func (c *PanelConfig) loadDefaults() {
	defaults := gaconfig.DefaultAgentConfig()
	defaults.Merge(&c.Agent)
	c.Agent = defaults

	if c.Agent.Name == "" {
		c.Agent.Name = "panel"
	}
	if c.Models == nil {
		c.Models = make(map[string]string)
	}
}

func (c *PanelConfig) loadEnv() {
	if c.Agent.Provider == nil {
		c.Agent.Provider = &gaconfig.ProviderConfig{}
	}
	if c.Agent.Provider.Options == nil {
		c.Agent.Provider.Options = make(map[string]any)
	}
	if c.Agent.Model == nil {
		c.Agent.Model = &gaconfig.ModelConfig{}
	}

	if v := os.Getenv(EnvPanelProviderName); v != "" {
		c.Agent.Provider.Name = v
	}
	if v := os.Getenv(EnvPanelBaseURL); v != "" {
		c.Agent.Provider.BaseURL = v
	}
	if v := os.Getenv(EnvPanelModelName); v != "" {
		c.Agent.Model.Name = v
	}

	setOption := func(envVar, key string) {
		if v := os.Getenv(envVar); v != "" {
			c.Agent.Provider.Options[key] = v
		}
	}

	setOption(EnvPanelToken, "token")
	setOption(EnvPanelAuthType, "auth_type")
}

func (c *PanelConfig) validate() error {
	if c.Agent.Provider == nil {
		return fmt.Errorf("provider required")
	}
	if c.Agent.Provider.Name == "" {
		return fmt.Errorf("provider name required")
	}
	if c.Agent.Model == nil {
		return fmt.Errorf("model required")
	}
	return nil
}
