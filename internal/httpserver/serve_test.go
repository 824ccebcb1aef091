package httpserver

import (
	"bytes"
	"context"
	"net/http"
	"testing"

	"github.com/andrebq/bolulista/internal/logutil"
	"github.com/rs/zerolog"
	"github.com/steinfletcher/apitest"
	"github.com/stretchr/testify/require"
)

func TestRequestLog(t *testing.T) {
	var buf bytes.Buffer
	ctx := logutil.WithLogger(context.Background(), zerolog.New(&buf))
	var seenInHandler bool
	handler := WithRequestLog(ctx, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logutil.GetOrDefault(r.Context())
		log.Info().Msg("inside handler")
		seenInHandler = true
		w.WriteHeader(http.StatusTeapot)
	}))

	apitest.New().
		Handler(handler).
		Get("/items").
		Header("X-Request-Id", "req-123").
		Expect(t).
		Status(http.StatusTeapot).
		Header("X-Request-Id", "req-123").
		End()

	require.True(t, seenInHandler)
	out := buf.String()
	require.Contains(t, out, `"req.id":"req-123"`)
	require.Contains(t, out, `"message":"inside handler"`)
	require.Contains(t, out, `"res.status":418`)
	require.Contains(t, out, `"req.path":"/items"`)
}

func TestRequestIDIsGenerated(t *testing.T) {
	handler := WithRequestLog(context.Background(), http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	res := apitest.New().
		Handler(handler).
		Get("/").
		Expect(t).
		Status(http.StatusOK).
		End()
	require.NotEmpty(t, res.Response.Header.Get("X-Request-Id"))
}
