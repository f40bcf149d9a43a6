package httpapi

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"slidedeck/internal/services"
	"slidedeck/pkg/decktypes"
)

// maxLayoutBodySize bounds the size of layout content accepted for validation.
const maxLayoutBodySize = 1 << 20

// LayoutsRouter sets up the layout catalog routes.
func LayoutsRouter(catalog *services.LayoutCatalogService) http.Handler {
	routes := &layoutRoutes{catalog: catalog}
	r := chi.NewRouter()
	r.Get("/", errorHandler(routes.listLayouts))
	r.Get("/{id}", errorHandler(routes.getLayout))
	r.Get("/{id}/defaults", errorHandler(routes.getLayoutDefaults))
	r.Post("/{id}/validate", errorHandler(routes.validateLayout))
	return r
}

type layoutRoutes struct {
	catalog *services.LayoutCatalogService
}

type layoutListResponse struct {
	Layouts []decktypes.LayoutSummary `json:"layouts"`
}

type layoutValidationResponse struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

func (l *layoutRoutes) listLayouts(w http.ResponseWriter, _ *http.Request) error {
	layouts, err := l.catalog.List()
	if err != nil {
		return err
	}
	return json.NewEncoder(w).Encode(layoutListResponse{Layouts: layouts})
}

func (l *layoutRoutes) getLayout(w http.ResponseWriter, r *http.Request) error {
	layout, err := l.catalog.Get(chi.URLParam(r, "id"))
	if err != nil {
		return err
	}
	return json.NewEncoder(w).Encode(layout)
}

// getLayoutDefaults returns the default content of a layout, the values
// applied to fields the generated slide leaves out.
func (l *layoutRoutes) getLayoutDefaults(w http.ResponseWriter, r *http.Request) error {
	defaults, err := l.catalog.Defaults(chi.URLParam(r, "id"))
	if err != nil {
		return err
	}
	return json.NewEncoder(w).Encode(defaults)
}

func (l *layoutRoutes) validateLayout(w http.ResponseWriter, r *http.Request) error {
	id := chi.URLParam(r, "id")
	if _, err := l.catalog.Get(id); err != nil {
		return err
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxLayoutBodySize+1))
	if err != nil {
		return badRequest(fmt.Errorf("failed to read request body: %w", err))
	}
	if len(body) > maxLayoutBodySize {
		return badRequest(fmt.Errorf("request body exceeds %d bytes", maxLayoutBodySize))
	}

	violations, err := l.catalog.Validate(id, body)
	if err != nil {
		return badRequest(err)
	}

	return json.NewEncoder(w).Encode(layoutValidationResponse{
		Valid:  len(violations) == 0,
		Errors: violations,
	})
}
