package main

import (
	"encoding/json"
	"net/http"

	"github.com/conclave-hq/conclave/internal/api"
	"github.com/conclave-hq/conclave/internal/config"
	"github.com/conclave-hq/conclave/internal/infrastructure"
	"github.com/conclave-hq/conclave/pkg/middleware"
	"github.com/conclave-hq/conclave/pkg/module"
	"github.com/conclave-hq/conclave/web/ui"
)

type Modules struct {
	API *module.Module
	UI  *module.Module
}

func NewModules(infra *infrastructure.Infrastructure, cfg *config.Config) (*Modules, error) {
	apiModule, err := api.NewModule(cfg, infra)
	if err != nil {
		return nil, err
	}

	uiModule := ui.NewModule("/ui", cfg.API.BasePath)
	uiModule.Use(middleware.Logger(infra.Logger))

	return &Modules{
		API: apiModule,
		UI:  uiModule,
	}, nil
}

func (m *Modules) Mount(router *module.Router) {
	router.Mount(m.API)
	router.Mount(m.UI)
}

func buildRouter(infra *infrastructure.Infrastructure) *module.Router {
	router := module.NewRouter()

	router.HandleNative("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/ui/", http.StatusTemporaryRedirect)
	})

	router.HandleNative("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	router.HandleNative("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if !infra.Lifecycle.Ready() {
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]string{"status": "not ready"})
			return
		}
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{"status": "ready"})
	})

	return router
}
