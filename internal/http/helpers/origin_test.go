package helpers

import (
	"net/http/httptest"
	"testing"
)

func TestResolveOrigin_BaseURLWins(t *testing.T) {
	req := httptest.NewRequest("GET", "http://internal:8080/api/auth-url", nil)
	req.Header.Set("X-Forwarded-Host", "proxy.example.com")

	got := ResolveOrigin(req, "https://app.example.com/")
	if got != "https://app.example.com" {
		t.Fatalf("origin = %q", got)
	}
}

func TestResolveOrigin_ForwardedHeaders(t *testing.T) {
	req := httptest.NewRequest("GET", "http://internal:8080/api/auth-url", nil)
	req.Header.Set("X-Forwarded-Proto", "https")
	req.Header.Set("X-Forwarded-Host", "app.example.com")

	if got := ResolveOrigin(req, ""); got != "https://app.example.com" {
		t.Fatalf("origin = %q", got)
	}
}

func TestResolveOrigin_ForwardedListTakesFirst(t *testing.T) {
	req := httptest.NewRequest("GET", "http://internal:8080/x", nil)
	req.Header.Set("X-Forwarded-Proto", "https, http")
	req.Header.Set("X-Forwarded-Host", "edge.example.com, inner.example.com")

	if got := ResolveOrigin(req, ""); got != "https://edge.example.com" {
		t.Fatalf("origin = %q", got)
	}
}

func TestResolveOrigin_PlainHost(t *testing.T) {
	req := httptest.NewRequest("GET", "http://localhost:3000/api/auth-url", nil)
	if got := ResolveOrigin(req, ""); got != "http://localhost:3000" {
		t.Fatalf("origin = %q", got)
	}
}

func TestRedirectURI(t *testing.T) {
	if got := RedirectURI("https://app.example.com"); got != "https://app.example.com/api/oauth-callback" {
		t.Fatalf("redirect uri = %q", got)
	}
}
