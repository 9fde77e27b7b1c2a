// Package health expone el health check del servicio.
package health

import (
	"net/http"

	"github.com/dropDatabas3/crewmate/internal/http/helpers"
)

// Controller handles health endpoints.
type Controller struct {
	env string
}

// NewController creates a new health Controller.
func NewController(env string) *Controller {
	return &Controller{env: env}
}

// Readyz handles GET /readyz
func (c *Controller) Readyz(w http.ResponseWriter, r *http.Request) {
	helpers.WriteJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"env":    c.env,
	})
}
