// Package installs implementa el flujo de instalación OAuth v2 de Slack:
// construcción de la authorize URL y el callback code-for-token.
package installs

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dropDatabas3/crewmate/internal/http/helpers"
	"github.com/dropDatabas3/crewmate/internal/install"
	"github.com/dropDatabas3/crewmate/internal/metrics"
	"github.com/dropDatabas3/crewmate/internal/observability/logger"
	"github.com/dropDatabas3/crewmate/internal/security/statetoken"
	"github.com/dropDatabas3/crewmate/internal/slack"
	"github.com/dropDatabas3/crewmate/internal/store"
	"go.uber.org/zap"
)

// Exchanger intercambia un authorization code por tokens.
type Exchanger interface {
	ExchangeCode(ctx context.Context, code, redirectURI string) (*slack.OAuthV2Response, error)
}

// StateIssuer emite y consume tokens de state anti-CSRF (one-shot).
type StateIssuer interface {
	Issue() (string, error)
	VerifyAndConsume(state string) error
}

// Service defines operations for the Slack install flow.
type Service interface {
	AuthorizeURL(ctx context.Context, origin string) (string, error)
	HandleCallback(ctx context.Context, code, state, origin string) (*install.Installation, error)
}

// Deps contains dependencies for the install service.
type Deps struct {
	Slack    Exchanger
	Store    store.InstallationStore
	States   StateIssuer
	ClientID string
	Scopes   []string

	// MissingConfig enumera variables de entorno requeridas y ausentes.
	// La authorize URL nunca se construye con configuración parcial.
	MissingConfig func() []string
}

type service struct {
	slack    Exchanger
	store    store.InstallationStore
	states   StateIssuer
	clientID string
	scopes   []string
	missing  func() []string
}

// NewService creates a new install Service.
func NewService(deps Deps) Service {
	return &service{
		slack:    deps.Slack,
		store:    deps.Store,
		states:   deps.States,
		clientID: deps.ClientID,
		scopes:   deps.Scopes,
		missing:  deps.MissingConfig,
	}
}

// Service errors
var (
	ErrMissingCode  = fmt.Errorf("code is required")
	ErrInvalidState = fmt.Errorf("state is invalid or already used")
	ErrStoreFailed  = fmt.Errorf("failed to persist installation")
)

// ConfigError indica configuración de Slack incompleta. Missing lleva los
// nombres de las variables de entorno ausentes, para el payload de error.
type ConfigError struct {
	Missing []string
}

func (e *ConfigError) Error() string {
	return "missing Slack configuration: " + strings.Join(e.Missing, ", ")
}

// AuthorizeURL construye la URL de autorización OAuth v2 para el origen dado.
// Emite un state firmado de un solo uso y lo incluye en la URL.
func (s *service) AuthorizeURL(ctx context.Context, origin string) (string, error) {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component("installs"),
		logger.Op("AuthorizeURL"),
	)

	if s.missing != nil {
		if missing := s.missing(); len(missing) > 0 {
			log.Warn("slack configuration incomplete",
				logger.String("missing", strings.Join(missing, ",")),
			)
			return "", &ConfigError{Missing: missing}
		}
	}

	state := ""
	if s.states != nil {
		st, err := s.states.Issue()
		if err != nil {
			log.Error("failed to issue state token", logger.Err(err))
			return "", fmt.Errorf("issue state: %w", err)
		}
		state = st
	}

	redirectURI := helpers.RedirectURI(origin)
	u, err := slack.BuildAuthorizeURL(s.clientID, s.scopes, redirectURI, state)
	if err != nil {
		return "", err
	}

	log.Debug("authorize url built", logger.String("redirect_uri", redirectURI))
	return u, nil
}

// HandleCallback procesa el retorno de Slack: valida el state, intercambia el
// code, arma el registro de instalación y lo persiste. La redirect URI se
// reconstruye del mismo origen que la authorize URL.
func (s *service) HandleCallback(ctx context.Context, code, state, origin string) (*install.Installation, error) {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component("installs"),
		logger.Op("HandleCallback"),
	)

	if strings.TrimSpace(code) == "" {
		return nil, ErrMissingCode
	}

	if s.states != nil {
		if err := s.states.VerifyAndConsume(state); err != nil {
			log.Warn("state validation failed", logger.Err(err))
			metrics.InstallsTotal.WithLabelValues("invalid_state").Inc()
			if errors.Is(err, statetoken.ErrConsumed) {
				return nil, fmt.Errorf("%w: replayed", ErrInvalidState)
			}
			return nil, ErrInvalidState
		}
	}

	start := time.Now()
	resp, err := s.slack.ExchangeCode(ctx, code, helpers.RedirectURI(origin))
	metrics.TokenExchangeDuration.Observe(float64(time.Since(start).Milliseconds()))
	if err != nil {
		log.Warn("token exchange failed", logger.Err(err))
		metrics.InstallsTotal.WithLabelValues("exchange_failed").Inc()
		return nil, err
	}

	inst, err := install.FromOAuthResponse(resp)
	if err != nil {
		log.Warn("installation rejected", logger.Err(err))
		metrics.InstallsTotal.WithLabelValues("incomplete").Inc()
		return nil, err
	}

	if err := s.store.StoreInstallation(ctx, inst); err != nil {
		log.Error("failed to store installation", logger.Err(err))
		metrics.InstallsTotal.WithLabelValues("store_error").Inc()
		return nil, fmt.Errorf("%w: %v", ErrStoreFailed, err)
	}

	// Team o Enterprise pueden faltar individualmente: un install enterprise
	// válido trae solo enterprise.id.
	key, _ := inst.Key()
	fields := []zap.Field{
		logger.String("key", key),
		logger.BotUserID(inst.Bot.UserID),
	}
	if inst.Team != nil {
		fields = append(fields, logger.TeamID(inst.Team.ID))
	}
	if inst.Enterprise != nil {
		fields = append(fields, logger.EnterpriseID(inst.Enterprise.ID))
	}
	log.Info("installation stored", fields...)
	metrics.InstallsTotal.WithLabelValues("success").Inc()
	return inst, nil
}
