package config

import (
	"fmt"
	"os"

	"github.com/conclave-hq/conclave/pkg/middleware"
	"github.com/conclave-hq/conclave/pkg/pagination"
)

const EnvAPIBasePath = "CONCLAVE_API_BASE_PATH"

var corsEnv = &middleware.CORSEnv{
	Enabled:          "CONCLAVE_CORS_ENABLED",
	Origins:          "CONCLAVE_CORS_ORIGINS",
	AllowedMethods:   "CONCLAVE_CORS_ALLOWED_METHODS",
	AllowedHeaders:   "CONCLAVE_CORS_ALLOWED_HEADERS",
	AllowCredentials: "CONCLAVE_CORS_ALLOW_CREDENTIALS",
	MaxAge:           "CONCLAVE_CORS_MAX_AGE",
}

var paginationEnv = &pagination.ConfigEnv{
	DefaultPageSize: "CONCLAVE_PAGINATION_DEFAULT_PAGE_SIZE",
	MaxPageSize:     "CONCLAVE_PAGINATION_MAX_PAGE_SIZE",
}

// APIConfig holds API routing, CORS, and pagination settings.
type APIConfig struct {
	BasePath   string                `toml:"base_path"`
	CORS       middleware.CORSConfig `toml:"cors"`
	Pagination pagination.Config     `toml:"pagination"`
}

// Finalize applies defaults, environment variable overrides, and validation
// for the API config and its nested CORS and pagination configs.
func (c *APIConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.CORS.Finalize(corsEnv); err != nil {
		return fmt.Errorf("cors: %w", err)
	}
	if err := c.Pagination.Finalize(paginationEnv); err != nil {
		return fmt.Errorf("pagination: %w", err)
	}
	return nil
}

// Merge overwrites non-zero fields from overlay across nested configs.
func (c *APIConfig) Merge(overlay *APIConfig) {
	if overlay.BasePath != "" {
		c.BasePath = overlay.BasePath
	}

	c.CORS.Merge(&overlay.CORS)
	c.Pagination.Merge(&overlay.Pagination)
}

func (c *APIConfig) loadDefaults() {
	if c.BasePath == "" {
		c.BasePath = "/api"
	}
}

func (c *APIConfig) loadEnv() {
	if v := os.Getenv(EnvAPIBasePath); v != "" {
		c.BasePath = v
	}
}
