// Package router arma el http.Handler del servicio: rutas + middlewares.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	assistantctrl "github.com/dropDatabas3/crewmate/internal/http/controllers/assistant"
	eventsctrl "github.com/dropDatabas3/crewmate/internal/http/controllers/events"
	healthctrl "github.com/dropDatabas3/crewmate/internal/http/controllers/health"
	installsctrl "github.com/dropDatabas3/crewmate/internal/http/controllers/installs"
	mw "github.com/dropDatabas3/crewmate/internal/http/middlewares"
)

// Deps contains all dependencies for the router.
type Deps struct {
	Installs  *installsctrl.Controller
	Events    *eventsctrl.Controller
	Assistant *assistantctrl.Controller
	Health    *healthctrl.Controller

	// Metrics es el handler de /metrics (promhttp). Opcional.
	Metrics http.Handler
}

// New registra todas las rutas y devuelve el handler raíz.
// Orden de middlewares: request-id -> logging -> recover. El request-id va
// primero para que el logging y el recover lo tengan en contexto.
func New(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Group(func(r chi.Router) {
		r.Use(mw.WithRequestID(), mw.WithLogging(), mw.WithRecover())

		r.Route("/api", func(r chi.Router) {
			r.Get("/auth-url", deps.Installs.AuthURL)
			r.Get("/oauth-callback", deps.Installs.Callback)
			r.Post("/events", deps.Events.Receive)

			r.Route("/assistant", func(r chi.Router) {
				r.Post("/employment-type", deps.Assistant.EmploymentType)
				r.Post("/coach", deps.Assistant.Coach)
				r.Post("/context-qa", deps.Assistant.ContextQA)
			})
		})
	})

	// readyz y metrics van por la cadena base, sin logging (muy frecuentes).
	r.Method(http.MethodGet, "/readyz", baseHandler(http.HandlerFunc(deps.Health.Readyz)))
	if deps.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", baseHandler(deps.Metrics))
	}

	return r
}

// baseHandler arma la cadena mínima de infra para endpoints operacionales.
func baseHandler(h http.Handler) http.Handler {
	return mw.Chain(h,
		mw.WithRequestID(),
		mw.WithRecover(),
	)
}
