// Package installs expone los endpoints HTTP del flujo de instalación de
// Slack: /api/auth-url y /api/oauth-callback.
package installs

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	httperrors "github.com/dropDatabas3/crewmate/internal/http/errors"
	"github.com/dropDatabas3/crewmate/internal/http/helpers"
	svc "github.com/dropDatabas3/crewmate/internal/http/services/installs"
	"github.com/dropDatabas3/crewmate/internal/install"
	"github.com/dropDatabas3/crewmate/internal/observability/logger"
	"github.com/dropDatabas3/crewmate/internal/slack"
)

// Controller handles Slack install endpoints.
type Controller struct {
	service svc.Service
	baseURL string
}

// NewController creates a new install Controller. baseURL, cuando no está
// vacío, fija el origen público en lugar de derivarlo del request.
func NewController(service svc.Service, baseURL string) *Controller {
	return &Controller{service: service, baseURL: baseURL}
}

// AuthURL handles GET /api/auth-url
// Responde {url} con la authorize URL, o 500 con las variables faltantes.
func (c *Controller) AuthURL(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("Controller.AuthURL"))

	origin := helpers.ResolveOrigin(r, c.baseURL)

	u, err := c.service.AuthorizeURL(ctx, origin)
	if err != nil {
		var cfgErr *svc.ConfigError
		if errors.As(err, &cfgErr) {
			httperrors.WriteError(w, httperrors.ErrConfiguration.WithDetail(
				"missing: "+strings.Join(cfgErr.Missing, ", "),
			))
			return
		}
		log.Error("failed to build authorize url", logger.Err(err))
		httperrors.WriteError(w, httperrors.ErrInternalServerError)
		return
	}

	helpers.WriteJSON(w, http.StatusOK, map[string]string{"url": u})
}

// Callback handles GET /api/oauth-callback
// Intercambia el code, persiste la instalación y redirige a la raíz con
// install=success o install=failure&error=<code>.
func (c *Controller) Callback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("Controller.Callback"))

	q := r.URL.Query()
	code := strings.TrimSpace(q.Get("code"))
	state := strings.TrimSpace(q.Get("state"))

	// El usuario canceló la autorización en la pantalla de Slack.
	if denied := strings.TrimSpace(q.Get("error")); denied != "" && code == "" {
		log.Warn("authorization denied", logger.String("error", denied))
		c.redirectFailure(w, r, denied)
		return
	}

	if code == "" {
		http.Error(w, "Missing 'code' parameter", http.StatusBadRequest)
		return
	}

	origin := helpers.ResolveOrigin(r, c.baseURL)

	_, err := c.service.HandleCallback(ctx, code, state, origin)
	if err != nil {
		log.Warn("install callback failed", logger.Err(err))
		c.redirectFailure(w, r, failureCode(err))
		return
	}

	c.redirectSuccess(w, r)
}

// failureCode traduce el error del flujo al código que viaja en el query
// param `error` de la redirección de falla.
func failureCode(err error) string {
	var apiErr *slack.APIError
	switch {
	case errors.As(err, &apiErr):
		return apiErr.Code
	case errors.Is(err, svc.ErrInvalidState):
		return "invalid_state"
	case errors.Is(err, install.ErrIncomplete):
		return "incomplete_installation"
	case errors.Is(err, svc.ErrStoreFailed):
		return "store_error"
	default:
		return "unknown_error"
	}
}

func (c *Controller) redirectSuccess(w http.ResponseWriter, r *http.Request) {
	v := url.Values{}
	v.Set("install", "success")
	http.Redirect(w, r, "/?"+v.Encode(), http.StatusFound)
}

func (c *Controller) redirectFailure(w http.ResponseWriter, r *http.Request, code string) {
	v := url.Values{}
	v.Set("install", "failure")
	v.Set("error", code)
	http.Redirect(w, r, "/?"+v.Encode(), http.StatusFound)
}
