// Package events expone el endpoint de la Events API de Slack. Verifica la
// firma v0 del request, contesta los url_verification challenges y reconoce
// los event_callback con un 200 inmediato.
package events

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/dropDatabas3/crewmate/internal/events"
	httperrors "github.com/dropDatabas3/crewmate/internal/http/errors"
	"github.com/dropDatabas3/crewmate/internal/http/helpers"
	"github.com/dropDatabas3/crewmate/internal/metrics"
	"github.com/dropDatabas3/crewmate/internal/observability/logger"
	"github.com/dropDatabas3/crewmate/internal/store"
)

// maxEventBody limita el body a 1MB. Slack manda eventos chicos.
const maxEventBody = 1 << 20

// Controller handles POST /api/events.
type Controller struct {
	signingSecret string
	store         store.InstallationStore
}

// NewController creates a new events Controller.
func NewController(signingSecret string, st store.InstallationStore) *Controller {
	return &Controller{signingSecret: signingSecret, store: st}
}

// Receive handles POST /api/events
func (c *Controller) Receive(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("Controller.Receive"))

	// Con secreto vacío, una firma HMAC calculada con clave vacía pasa la
	// verificación. Ese request no se puede autenticar, se rechaza.
	if c.signingSecret == "" {
		log.Error("signing secret not configured, rejecting event")
		httperrors.WriteError(w, httperrors.ErrServiceUnavailable.WithDetail("event signing is not configured"))
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxEventBody))
	if err != nil {
		httperrors.WriteError(w, httperrors.ErrBadRequest.WithDetail("unreadable body"))
		return
	}
	defer r.Body.Close()

	ts := r.Header.Get(events.TimestampHeader)
	sig := r.Header.Get(events.SignatureHeader)
	if err := events.VerifySignature(c.signingSecret, ts, sig, body); err != nil {
		log.Warn("signature verification failed", logger.Err(err))
		httperrors.WriteError(w, httperrors.ErrUnauthorized.WithDetail("invalid request signature"))
		return
	}

	var env events.Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		httperrors.WriteError(w, httperrors.ErrInvalidJSON)
		return
	}

	switch env.Type {
	case events.TypeURLVerification:
		helpers.WriteJSON(w, http.StatusOK, map[string]string{"challenge": env.Challenge})

	case events.TypeEventCallback:
		eventType := "unknown"
		if env.Event != nil {
			eventType = env.Event.Type
		}
		metrics.EventsReceived.WithLabelValues(eventType).Inc()

		// La instalación se resuelve solo para confirmar que el workspace
		// sigue instalado; el evento se reconoce igual si no está.
		if _, err := c.store.FetchInstallation(ctx, store.Query{
			TeamID:       env.TeamID,
			EnterpriseID: env.EnterpriseID,
		}); err != nil {
			if store.IsNotFound(err) {
				log.Warn("event from uninstalled workspace", logger.TeamID(env.TeamID))
			} else {
				log.Error("failed to fetch installation", logger.TeamID(env.TeamID), logger.Err(err))
			}
		}

		log.Info("event acknowledged",
			logger.EventType(eventType),
			logger.TeamID(env.TeamID),
			logger.String("event_id", env.EventID),
		)
		w.WriteHeader(http.StatusOK)

	default:
		log.Debug("unhandled envelope type", logger.String("type", env.Type))
		w.WriteHeader(http.StatusOK)
	}
}
