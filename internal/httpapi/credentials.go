package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"slidedeck/pkg/decktypes"
)

// credentialResolver is the part of ConfigurationService the endpoint needs.
type credentialResolver interface {
	Resolve() decktypes.Resolution
}

// HasRequiredKeyRouter sets up the has-required-key route.
func HasRequiredKeyRouter(resolver credentialResolver) http.Handler {
	routes := &credentialRoutes{resolver: resolver}
	r := chi.NewRouter()
	r.Get("/", errorHandler(routes.getHasRequiredKey))
	return r
}

type credentialRoutes struct {
	resolver credentialResolver
}

type hasRequiredKeyResponse struct {
	HasKey bool `json:"hasKey"`
}

// getHasRequiredKey reports whether the active LLM provider's credential is
// configured. It always answers 200; configuration problems yield false.
func (c *credentialRoutes) getHasRequiredKey(w http.ResponseWriter, _ *http.Request) error {
	resolution := c.resolver.Resolve()

	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(hasRequiredKeyResponse{HasKey: resolution.HasKey})
}
