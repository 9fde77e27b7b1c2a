package installs

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	memcache "github.com/dropDatabas3/crewmate/internal/cache/memory"
	svc "github.com/dropDatabas3/crewmate/internal/http/services/installs"
	"github.com/dropDatabas3/crewmate/internal/install"
	"github.com/dropDatabas3/crewmate/internal/security/statetoken"
	"github.com/dropDatabas3/crewmate/internal/slack"
	"github.com/dropDatabas3/crewmate/internal/store"
	memstore "github.com/dropDatabas3/crewmate/internal/store/memory"
)

// fakeExchanger es un spy del exchange code-for-token.
type fakeExchanger struct {
	calls int
	resp  *slack.OAuthV2Response
	err   error

	gotCode        string
	gotRedirectURI string
}

func (f *fakeExchanger) ExchangeCode(_ context.Context, code, redirectURI string) (*slack.OAuthV2Response, error) {
	f.calls++
	f.gotCode = code
	f.gotRedirectURI = redirectURI
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

// spyStore cuenta los upserts sobre un store en memoria.
type spyStore struct {
	store.InstallationStore
	stores int
}

func (s *spyStore) StoreInstallation(ctx context.Context, inst *install.Installation) error {
	s.stores++
	return s.InstallationStore.StoreInstallation(ctx, inst)
}

func okResponse() *slack.OAuthV2Response {
	return &slack.OAuthV2Response{
		OK:          true,
		AppID:       "A1",
		AccessToken: "xoxb-1",
		TokenType:   "bot",
		Scope:       "chat:write",
		BotUserID:   "U1",
		AuthedUser:  slack.AuthedUser{ID: "U9"},
		Team:        &slack.Team{ID: "T1", Name: "Acme"},
	}
}

func newController(ex svc.Exchanger, st store.InstallationStore, states svc.StateIssuer) *Controller {
	service := svc.NewService(svc.Deps{
		Slack:    ex,
		Store:    st,
		States:   states,
		ClientID: "123.456",
		Scopes:   []string{"chat:write"},
	})
	return NewController(service, "")
}

func redirectLocation(t *testing.T, rec *httptest.ResponseRecorder) url.Values {
	t.Helper()
	if rec.Code != http.StatusFound {
		t.Fatalf("status = %d, want 302 (body: %s)", rec.Code, rec.Body.String())
	}
	loc, err := url.Parse(rec.Header().Get("Location"))
	if err != nil {
		t.Fatalf("bad location: %v", err)
	}
	if loc.Path != "/" {
		t.Fatalf("redirect path = %q, want /", loc.Path)
	}
	return loc.Query()
}

func TestCallback_Success(t *testing.T) {
	ex := &fakeExchanger{resp: okResponse()}
	st := &spyStore{InstallationStore: memstore.New()}
	c := newController(ex, st, nil)

	req := httptest.NewRequest("GET", "https://app.example.com/api/oauth-callback?code=abc123", nil)
	rec := httptest.NewRecorder()
	c.Callback(rec, req)

	q := redirectLocation(t, rec)
	if q.Get("install") != "success" {
		t.Fatalf("install = %q, want success", q.Get("install"))
	}
	if ex.gotCode != "abc123" {
		t.Fatalf("exchanged code = %q", ex.gotCode)
	}
	// la redirect URI del exchange se reconstruye del mismo origen
	if ex.gotRedirectURI != "https://app.example.com/api/oauth-callback" {
		t.Fatalf("redirect_uri = %q", ex.gotRedirectURI)
	}

	got, err := st.FetchInstallation(req.Context(), store.Query{TeamID: "T1"})
	if err != nil {
		t.Fatalf("fetch stored installation: %v", err)
	}
	if got.Bot.Token != "xoxb-1" {
		t.Fatalf("stored token = %q", got.Bot.Token)
	}
}

func TestCallback_MissingCode(t *testing.T) {
	ex := &fakeExchanger{resp: okResponse()}
	c := newController(ex, memstore.New(), nil)

	req := httptest.NewRequest("GET", "https://app.example.com/api/oauth-callback", nil)
	rec := httptest.NewRecorder()
	c.Callback(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Missing 'code' parameter") {
		t.Fatalf("body = %q", rec.Body.String())
	}
	// sin code no se habla con Slack
	if ex.calls != 0 {
		t.Fatalf("exchange invoked %d times", ex.calls)
	}
}

func TestCallback_PlatformErrorCodeInRedirect(t *testing.T) {
	ex := &fakeExchanger{err: &slack.APIError{Code: "invalid_code"}}
	st := &spyStore{InstallationStore: memstore.New()}
	c := newController(ex, st, nil)

	req := httptest.NewRequest("GET", "https://app.example.com/api/oauth-callback?code=bad", nil)
	rec := httptest.NewRecorder()
	c.Callback(rec, req)

	q := redirectLocation(t, rec)
	if q.Get("install") != "failure" {
		t.Fatalf("install = %q, want failure", q.Get("install"))
	}
	if q.Get("error") != "invalid_code" {
		t.Fatalf("error = %q, want invalid_code", q.Get("error"))
	}
	if st.stores != 0 {
		t.Fatalf("store invoked on failed exchange")
	}
}

func TestCallback_IncompleteInstallationNotStored(t *testing.T) {
	resp := okResponse()
	resp.BotUserID = ""
	ex := &fakeExchanger{resp: resp}
	st := &spyStore{InstallationStore: memstore.New()}
	c := newController(ex, st, nil)

	req := httptest.NewRequest("GET", "https://app.example.com/api/oauth-callback?code=abc", nil)
	rec := httptest.NewRecorder()
	c.Callback(rec, req)

	q := redirectLocation(t, rec)
	if q.Get("error") != "incomplete_installation" {
		t.Fatalf("error = %q, want incomplete_installation", q.Get("error"))
	}
	if st.stores != 0 {
		t.Fatalf("partial installation reached the store")
	}
}

func TestCallback_StateValidation(t *testing.T) {
	states := statetoken.New("secret", 10*time.Minute, memcache.New(10*time.Minute))
	ex := &fakeExchanger{resp: okResponse()}
	c := newController(ex, memstore.New(), states)

	// state válido emitido por el issuer
	state, err := states.Issue()
	if err != nil {
		t.Fatalf("issue state: %v", err)
	}

	req := httptest.NewRequest("GET", "https://app.example.com/api/oauth-callback?code=abc&state="+url.QueryEscape(state), nil)
	rec := httptest.NewRecorder()
	c.Callback(rec, req)

	if q := redirectLocation(t, rec); q.Get("install") != "success" {
		t.Fatalf("install = %q, want success", q.Get("install"))
	}

	// replay del mismo state
	req = httptest.NewRequest("GET", "https://app.example.com/api/oauth-callback?code=abc&state="+url.QueryEscape(state), nil)
	rec = httptest.NewRecorder()
	c.Callback(rec, req)

	q := redirectLocation(t, rec)
	if q.Get("error") != "invalid_state" {
		t.Fatalf("error = %q, want invalid_state", q.Get("error"))
	}
	if ex.calls != 1 {
		t.Fatalf("exchange invoked on invalid state")
	}
}

func TestCallback_UserDenied(t *testing.T) {
	ex := &fakeExchanger{resp: okResponse()}
	c := newController(ex, memstore.New(), nil)

	req := httptest.NewRequest("GET", "https://app.example.com/api/oauth-callback?error=access_denied", nil)
	rec := httptest.NewRecorder()
	c.Callback(rec, req)

	q := redirectLocation(t, rec)
	if q.Get("install") != "failure" || q.Get("error") != "access_denied" {
		t.Fatalf("query = %v", q)
	}
	if ex.calls != 0 {
		t.Fatalf("exchange invoked on denial")
	}
}

func TestAuthURL_Success(t *testing.T) {
	c := newController(&fakeExchanger{}, memstore.New(), nil)

	req := httptest.NewRequest("GET", "https://app.example.com/api/auth-url", nil)
	rec := httptest.NewRecorder()
	c.AuthURL(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d (body: %s)", rec.Code, rec.Body.String())
	}
	body := rec.Body.String()
	if !strings.Contains(body, "slack.com") || !strings.Contains(body, "oauth") {
		t.Fatalf("body = %q", body)
	}
}

func TestAuthURL_MissingConfig(t *testing.T) {
	service := svc.NewService(svc.Deps{
		Slack: &fakeExchanger{},
		Store: memstore.New(),
		MissingConfig: func() []string {
			return []string{"SLACK_CLIENT_ID", "SLACK_SCOPES"}
		},
	})
	c := NewController(service, "")

	req := httptest.NewRequest("GET", "https://app.example.com/api/auth-url", nil)
	rec := httptest.NewRecorder()
	c.AuthURL(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	body := rec.Body.String()
	// el payload enumera TODAS las variables faltantes
	if !strings.Contains(body, "SLACK_CLIENT_ID") || !strings.Contains(body, "SLACK_SCOPES") {
		t.Fatalf("body = %q", body)
	}
}
