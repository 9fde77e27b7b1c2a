package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	assistantctrl "github.com/dropDatabas3/crewmate/internal/http/controllers/assistant"
	eventsctrl "github.com/dropDatabas3/crewmate/internal/http/controllers/events"
	healthctrl "github.com/dropDatabas3/crewmate/internal/http/controllers/health"
	installsctrl "github.com/dropDatabas3/crewmate/internal/http/controllers/installs"
	assistantsvc "github.com/dropDatabas3/crewmate/internal/http/services/assistant"
	installsvc "github.com/dropDatabas3/crewmate/internal/http/services/installs"
	"github.com/dropDatabas3/crewmate/internal/slack"
	memstore "github.com/dropDatabas3/crewmate/internal/store/memory"
)

func testHandler() http.Handler {
	installService := installsvc.NewService(installsvc.Deps{
		Slack:    slack.New("123.456", "shh"),
		Store:    memstore.New(),
		ClientID: "123.456",
		Scopes:   []string{"chat:write"},
	})
	return New(Deps{
		Installs:  installsctrl.NewController(installService, ""),
		Events:    eventsctrl.NewController("signing-secret", memstore.New()),
		Assistant: assistantctrl.NewController(assistantsvc.NewService(assistantsvc.Deps{})),
		Health:    healthctrl.NewController("test"),
	})
}

func TestRouter_ReadyzThroughBaseChain(t *testing.T) {
	h := testHandler()

	req := httptest.NewRequest("GET", "http://localhost/readyz", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	// la cadena base corre igual: el request id se genera y expone
	if rec.Header().Get("X-Request-ID") == "" {
		t.Fatalf("missing X-Request-ID header")
	}
}

func TestRouter_APIRoutesRegistered(t *testing.T) {
	h := testHandler()

	req := httptest.NewRequest("GET", "http://localhost/api/auth-url", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d (body: %s)", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "slack.com") {
		t.Fatalf("body = %q", rec.Body.String())
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Fatalf("missing X-Request-ID header")
	}
}

func TestRouter_UnknownRoute(t *testing.T) {
	h := testHandler()

	req := httptest.NewRequest("GET", "http://localhost/nope", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}
