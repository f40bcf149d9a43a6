package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"slidedeck/internal/version"
)

// HealthcheckRouter sets up the healthcheck route.
func HealthcheckRouter() http.Handler {
	r := chi.NewRouter()
	r.Get("/", getHealthcheck)
	return r
}

func getHealthcheck(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

// VersionRouter sets up the version route.
func VersionRouter() http.Handler {
	r := chi.NewRouter()
	r.Get("/", errorHandler(getVersion))
	return r
}

func getVersion(w http.ResponseWriter, _ *http.Request) error {
	info, err := version.GetInfo()
	if err != nil {
		return err
	}
	return json.NewEncoder(w).Encode(info)
}
