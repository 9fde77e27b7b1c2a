// Package fetch trae el contenido de páginas web usadas como contexto de
// grounding para el asistente.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dropDatabas3/crewmate/internal/observability/logger"
)

// maxBodyBytes acota cuánto contexto levantamos por página.
const maxBodyBytes = 512 * 1024

// Document es el contenido de una URL, listo para interpolar en un prompt.
type Document struct {
	URL  string
	Text string
}

type Fetcher struct {
	http *http.Client
}

func New(timeout time.Duration) *Fetcher {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Fetcher{http: &http.Client{Timeout: timeout}}
}

// Fetch retorna el cuerpo de la URL como texto.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return "", err
	}
	resp, err := f.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to fetch %s: %s", url, resp.Status)
	}

	b, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// FetchAll fetches every URL. A failed fetch degrades to a placeholder string
// in that document instead of failing the batch; the model is told the page
// could not be loaded and answers from the rest.
func (f *Fetcher) FetchAll(ctx context.Context, urls []string) []Document {
	docs := make([]Document, 0, len(urls))
	for _, u := range urls {
		text, err := f.Fetch(ctx, u)
		if err != nil {
			logger.From(ctx).Warn("context fetch failed",
				logger.String("url", u),
				logger.Err(err),
			)
			text = fmt.Sprintf("Error fetching content from %s.", u)
		}
		docs = append(docs, Document{URL: u, Text: text})
	}
	return docs
}
