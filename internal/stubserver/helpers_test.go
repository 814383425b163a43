package stubserver

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 10, 9, 10, 30, 0, 0, time.UTC)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	srv, err := NewServer(slog.New(slog.NewTextHandler(io.Discard, nil)),
		WithClock(func() time.Time { return fixedNow }))
	require.NoError(t, err)
	srv.MountRoutes()
	return srv
}

func serve(srv *Server, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}
