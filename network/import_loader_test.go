package network

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCascadeImportLoaderFetchesBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/css")
		w.Write([]byte("body { color: red; }"))
	}))
	defer server.Close()

	client, err := NewClient()
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	loader := NewCascadeImportLoader(NewLoader(client), context.Background())

	text, err := loader.Load(server.URL + "/imported.css")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if text != "body { color: red; }" {
		t.Errorf("Load() = %q", text)
	}
}

func TestCascadeImportLoaderPropagatesHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	client, err := NewClient()
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	loader := NewCascadeImportLoader(NewLoader(client), context.Background())

	if _, err := loader.Load(server.URL + "/missing.css"); err == nil {
		t.Fatal("expected an error for a 404 response")
	}
}

func TestSameOriginOnlyRejectsCrossOrigin(t *testing.T) {
	check := SameOriginOnly("https://example.com/page.html")
	if err := check("https://evil.example/sheet.css", "https://example.com/page.html"); err == nil {
		t.Fatal("expected cross-origin @import to be rejected")
	}
	if err := check("https://example.com/sheet.css", "https://example.com/page.html"); err != nil {
		t.Fatalf("same-origin @import should be allowed, got %v", err)
	}
}
