package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestFetchReturnsBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>INVOICE_NUMBER</html>"))
	}))
	defer srv.Close()

	f := NewHTTPFetcher(2 * time.Second)
	body, err := f.Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if body != "<html>INVOICE_NUMBER</html>" {
		t.Fatalf("unexpected body %q", body)
	}
}

func TestFetchRejectsNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	f := NewHTTPFetcher(2 * time.Second)
	if _, err := f.Fetch(context.Background(), srv.URL); err == nil {
		t.Fatalf("expected error for non-200 response")
	}
}

func TestFetchRejectsEmptyURL(t *testing.T) {
	f := NewHTTPFetcher(2 * time.Second)
	if _, err := f.Fetch(context.Background(), "  "); err == nil {
		t.Fatalf("expected error for empty url")
	}
}
