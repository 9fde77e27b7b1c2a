// Package server arma el handler HTTP con todas las dependencias cableadas.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dropDatabas3/crewmate/internal/ai"
	"github.com/dropDatabas3/crewmate/internal/cache"
	memcache "github.com/dropDatabas3/crewmate/internal/cache/memory"
	rediscache "github.com/dropDatabas3/crewmate/internal/cache/redis"
	"github.com/dropDatabas3/crewmate/internal/config"
	"github.com/dropDatabas3/crewmate/internal/fetch"
	assistantctrl "github.com/dropDatabas3/crewmate/internal/http/controllers/assistant"
	eventsctrl "github.com/dropDatabas3/crewmate/internal/http/controllers/events"
	healthctrl "github.com/dropDatabas3/crewmate/internal/http/controllers/health"
	installsctrl "github.com/dropDatabas3/crewmate/internal/http/controllers/installs"
	"github.com/dropDatabas3/crewmate/internal/http/router"
	assistantsvc "github.com/dropDatabas3/crewmate/internal/http/services/assistant"
	installsvc "github.com/dropDatabas3/crewmate/internal/http/services/installs"
	"github.com/dropDatabas3/crewmate/internal/metrics"
	"github.com/dropDatabas3/crewmate/internal/observability/logger"
	"github.com/dropDatabas3/crewmate/internal/security/statetoken"
	"github.com/dropDatabas3/crewmate/internal/slack"
	"github.com/dropDatabas3/crewmate/internal/store"
	firestorestore "github.com/dropDatabas3/crewmate/internal/store/firestore"
	memstore "github.com/dropDatabas3/crewmate/internal/store/memory"
	pgstore "github.com/dropDatabas3/crewmate/internal/store/pg"
)

// Build construye el handler raíz y un cleanup que cierra las conexiones.
func Build(ctx context.Context, cfg *config.Config) (http.Handler, func() error, error) {
	log := logger.L().Named("wiring")

	// 1. Cache (state tokens anti-CSRF)
	stateCache, err := buildCache(cfg)
	if err != nil {
		return nil, nil, err
	}

	// 2. Installation store
	st, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() error { return st.Close() }

	// 3. Slack client + state issuer
	slackClient := slack.New(cfg.Slack.ClientID, cfg.Slack.ClientSecret)

	var states installsvc.StateIssuer
	if cfg.Slack.StateSecret != "" {
		states = statetoken.New(cfg.Slack.StateSecret, cfg.Slack.StateTTL, stateCache)
	}

	// 4. Generador de IA (opcional: sin API key el asistente responde 503)
	var gen ai.Generator
	if cfg.AI.APIKey != "" {
		g, err := ai.NewGenAIGenerator(ctx, cfg.AI.APIKey, cfg.AI.Model)
		if err != nil {
			_ = cleanup()
			return nil, nil, fmt.Errorf("init genai: %w", err)
		}
		gen = g
		log.Info("assistant enabled", logger.String("model", cfg.AI.Model))
	} else {
		log.Warn("GENAI_API_KEY not set, assistant endpoints disabled")
	}

	// 5. Services
	installService := installsvc.NewService(installsvc.Deps{
		Slack:         slackClient,
		Store:         st,
		States:        states,
		ClientID:      cfg.Slack.ClientID,
		Scopes:        cfg.Slack.Scopes,
		MissingConfig: cfg.MissingRequired,
	})

	assistantService := assistantsvc.NewService(assistantsvc.Deps{
		Generator: gen,
		Fetcher:   fetch.New(cfg.Fetch.Timeout),
	})

	// 6. Metrics
	if err := metrics.Register(prometheus.DefaultRegisterer); err != nil {
		_ = cleanup()
		return nil, nil, fmt.Errorf("register metrics: %w", err)
	}

	// 7. Controllers + router
	handler := router.New(router.Deps{
		Installs:  installsctrl.NewController(installService, cfg.Server.PublicBaseURL),
		Events:    eventsctrl.NewController(cfg.Slack.SigningSecret, st),
		Assistant: assistantctrl.NewController(assistantService),
		Health:    healthctrl.NewController(cfg.App.Env),
		Metrics:   promhttp.Handler(),
	})

	log.Info("http handler wired",
		logger.String("store", cfg.Store.Driver),
		logger.String("cache", cfg.Cache.Kind),
	)
	return handler, cleanup, nil
}

func buildCache(cfg *config.Config) (cache.Cache, error) {
	switch cfg.Cache.Kind {
	case "redis":
		if cfg.Cache.Redis.Addr == "" {
			return nil, fmt.Errorf("cache kind redis requires REDIS_ADDR")
		}
		return rediscache.New(cfg.Cache.Redis.Addr, cfg.Cache.Redis.DB, cfg.Cache.Redis.Prefix), nil
	case "memory", "":
		ttl, err := time.ParseDuration(cfg.Cache.Memory.DefaultTTL)
		if err != nil {
			return nil, fmt.Errorf("invalid cache memory default_ttl: %w", err)
		}
		return memcache.New(ttl), nil
	default:
		return nil, fmt.Errorf("unknown cache kind %q", cfg.Cache.Kind)
	}
}

func buildStore(ctx context.Context, cfg *config.Config) (store.InstallationStore, error) {
	switch cfg.Store.Driver {
	case "firestore":
		if cfg.Store.Firestore.ProjectID == "" {
			return nil, fmt.Errorf("store driver firestore requires FIRESTORE_PROJECT_ID")
		}
		return firestorestore.New(ctx, cfg.Store.Firestore.ProjectID, cfg.Store.Firestore.Collection)
	case "postgres":
		if cfg.Store.Postgres.DSN == "" {
			return nil, fmt.Errorf("store driver postgres requires STORAGE_DSN")
		}
		return pgstore.New(ctx, cfg.Store.Postgres.DSN)
	case "memory", "":
		return memstore.New(), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}
