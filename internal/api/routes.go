package api

import (
	"net/http"

	"github.com/conclave-hq/conclave/pkg/routes"
)

func registerRoutes(mux *http.ServeMux, domain *Domain) {
	routes.Register(
		mux,
		domain.Workflow.Routes(),
		domain.Sessions.Handler().Routes(),
	)
}
