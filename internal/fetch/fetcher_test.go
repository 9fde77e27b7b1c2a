package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestFetch_OK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("employee handbook"))
	}))
	defer srv.Close()

	f := New(5 * time.Second)
	text, err := f.Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("fetch err: %v", err)
	}
	if text != "employee handbook" {
		t.Fatalf("text = %q", text)
	}
}

func TestFetch_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	f := New(5 * time.Second)
	if _, err := f.Fetch(context.Background(), srv.URL); err == nil {
		t.Fatalf("expected error on 404")
	}
}

func TestFetchAll_DegradesFailures(t *testing.T) {
	good := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("page content"))
	}))
	defer good.Close()

	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer bad.Close()

	f := New(5 * time.Second)
	docs := f.FetchAll(context.Background(), []string{good.URL, bad.URL})

	if len(docs) != 2 {
		t.Fatalf("docs = %d, want 2", len(docs))
	}
	if docs[0].Text != "page content" {
		t.Fatalf("doc[0] = %q", docs[0].Text)
	}
	// la URL fallida se degrada a placeholder, nunca corta el batch
	if !strings.HasPrefix(docs[1].Text, "Error fetching content from ") {
		t.Fatalf("doc[1] = %q", docs[1].Text)
	}
	if docs[1].URL != bad.URL {
		t.Fatalf("doc[1].URL = %q", docs[1].URL)
	}
}
