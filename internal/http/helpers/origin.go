// Package helpers contiene funciones auxiliares compartidas de la capa HTTP.
// Se reusan en controllers y services para evitar duplicación.
package helpers

import (
	"net/http"
	"strings"
)

// ResolveOrigin determina el origen público del request (scheme + host).
// Priority order:
// 1. baseURL explícito de configuración (deployments detrás de proxies fijos)
// 2. headers X-Forwarded-Proto / X-Forwarded-Host (reverse proxy)
// 3. Host del request, con scheme según TLS
func ResolveOrigin(r *http.Request, baseURL string) string {
	if baseURL != "" {
		return strings.TrimRight(baseURL, "/")
	}

	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if v := r.Header.Get("X-Forwarded-Proto"); v != "" {
		scheme = strings.TrimSpace(strings.Split(v, ",")[0])
	}

	host := r.Host
	if v := r.Header.Get("X-Forwarded-Host"); v != "" {
		host = strings.TrimSpace(strings.Split(v, ",")[0])
	}

	return scheme + "://" + host
}

// RedirectURI construye la redirect URI del callback OAuth para un origen dado.
// Debe coincidir exactamente en la autorización y en el intercambio de código.
func RedirectURI(origin string) string {
	return origin + "/api/oauth-callback"
}
