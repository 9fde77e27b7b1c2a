// Package assistant expone los endpoints HTTP de los flujos del asistente.
package assistant

import (
	"errors"
	"net/http"

	httperrors "github.com/dropDatabas3/crewmate/internal/http/errors"
	"github.com/dropDatabas3/crewmate/internal/http/helpers"
	svc "github.com/dropDatabas3/crewmate/internal/http/services/assistant"
	"github.com/dropDatabas3/crewmate/internal/observability/logger"
)

// Controller handles assistant endpoints.
type Controller struct {
	service svc.Service
}

// NewController creates a new assistant Controller.
func NewController(service svc.Service) *Controller {
	return &Controller{service: service}
}

// EmploymentType handles POST /api/assistant/employment-type
func (c *Controller) EmploymentType(w http.ResponseWriter, r *http.Request) {
	var in svc.EmploymentTypeInput
	if !helpers.ReadJSON(w, r, &in) {
		return
	}

	out, err := c.service.IdentifyEmploymentType(r.Context(), in)
	if err != nil {
		c.writeFlowError(w, r, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, out)
}

// Coach handles POST /api/assistant/coach
func (c *Controller) Coach(w http.ResponseWriter, r *http.Request) {
	var in svc.CoachInput
	if !helpers.ReadJSON(w, r, &in) {
		return
	}

	out, err := c.service.Coach(r.Context(), in)
	if err != nil {
		c.writeFlowError(w, r, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, out)
}

// ContextQA handles POST /api/assistant/context-qa
func (c *Controller) ContextQA(w http.ResponseWriter, r *http.Request) {
	var in svc.ContextQAInput
	if !helpers.ReadJSON(w, r, &in) {
		return
	}

	out, err := c.service.ContextQA(r.Context(), in)
	if err != nil {
		c.writeFlowError(w, r, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, out)
}

func (c *Controller) writeFlowError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.From(r.Context()).With(logger.Layer("controller"), logger.Component("assistant"))

	switch {
	case errors.Is(err, svc.ErrUnavailable):
		httperrors.WriteError(w, httperrors.ErrServiceUnavailable.WithDetail("assistant not configured"))
	case errors.Is(err, svc.ErrEmptyInput), errors.Is(err, svc.ErrNoURLs):
		httperrors.WriteError(w, httperrors.ErrMissingFields.WithDetail(err.Error()))
	case errors.Is(err, svc.ErrInvalidReply), errors.Is(err, svc.ErrFlowFailed):
		log.Error("assistant flow failed", logger.Err(err))
		httperrors.WriteError(w, httperrors.ErrUpstreamFailure)
	default:
		log.Error("assistant request failed", logger.Err(err))
		httperrors.WriteError(w, httperrors.ErrInternalServerError)
	}
}
