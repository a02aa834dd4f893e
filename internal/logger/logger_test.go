package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.TraceLevel) })

	var buf bytes.Buffer
	l := setup(&buf, "warn", "json")

	l.Info().Msg("dropped")
	l.Warn().Str("project_id", "p1").Msg("kept")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "kept", line["message"])
	assert.Equal(t, "p1", line["project_id"])
	assert.Contains(t, line, "time")
}

func TestSetup_UnknownLevel(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.TraceLevel) })

	var buf bytes.Buffer
	setup(&buf, "loud", "text")

	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}
