package logutil

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/require"
)

func TestContextLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).With().Str("req.id", "abc").Logger()
	ctx := WithLogger(context.Background(), logger)
	l := GetOrDefault(ctx)
	l.Info().Msg("hello")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "abc", entry["req.id"])
	require.Equal(t, "hello", entry["message"])
}

func TestDefaultLogger(t *testing.T) {
	prev := log.Logger
	defer func() { log.Logger = prev }()
	var buf bytes.Buffer
	require.NoError(t, SetupOutput(&buf, "warn", false))
	defer zerolog.SetGlobalLevel(zerolog.TraceLevel)

	l := GetOrDefault(context.Background())
	l.Info().Msg("filtered")
	l.Warn().Msg("kept")
	require.NotContains(t, buf.String(), "filtered")
	require.Contains(t, buf.String(), "kept")
	require.Contains(t, buf.String(), `"service":"bolulista"`)
}

func TestInvalidLevel(t *testing.T) {
	var buf bytes.Buffer
	require.Error(t, SetupOutput(&buf, "loud", false))
}
