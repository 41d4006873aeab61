package testutil

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"github.com/wj-stack/NetFlow/internal/api"
	"github.com/wj-stack/NetFlow/internal/metadata"
	"github.com/wj-stack/NetFlow/internal/store"
	"github.com/wj-stack/NetFlow/internal/strategy"
)

// NewTestServer creates a test server with an in-memory store and an
// empty metadata directory.
func NewTestServer(t *testing.T, adminKey string) (*api.Server, *store.MemoryStore, *metadata.Directory) {
	t.Helper()
	memStore := store.NewMemoryStore()
	dir := metadata.NewDirectory()
	server := api.NewServer(memStore, dir, adminKey, 1000, zerolog.Nop())
	return server, memStore, dir
}

// HTTPRequest is a helper for making test HTTP requests.
type HTTPRequest struct {
	Method  string
	Path    string
	Body    string
	Headers map[string]string
}

// Do executes the HTTP request and returns the response recorder.
func (r *HTTPRequest) Do(t *testing.T, handler http.Handler) *httptest.ResponseRecorder {
	t.Helper()
	var body io.Reader
	if r.Body != "" {
		body = bytes.NewBufferString(r.Body)
	}
	req := httptest.NewRequest(r.Method, r.Path, body)
	if r.Body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range r.Headers {
		req.Header.Set(k, v)
	}
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

// SeedStrategies populates the store with test documents.
func SeedStrategies(ctx context.Context, st store.Store, docs []strategy.PolicyDocument) error {
	for _, doc := range docs {
		if err := st.Upsert(ctx, doc); err != nil {
			return err
		}
	}
	return nil
}
