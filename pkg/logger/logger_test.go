package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit_AttachesServiceFields(t *testing.T) {
	t.Cleanup(Reset)

	var buf bytes.Buffer
	log := Init(Options{Level: "info", Output: &buf, Service: "leave-portal", Env: "test"})
	log.Info().Msg("hello")

	var event map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &event))
	assert.Equal(t, "leave-portal", event["service"])
	assert.Equal(t, "test", event["env"])
	assert.Equal(t, "hello", event["message"])
	assert.NotContains(t, event, "caller")
}

func TestInit_IsSingleton(t *testing.T) {
	t.Cleanup(Reset)

	var first, second bytes.Buffer
	Init(Options{Output: &first})
	Init(Options{Output: &second, Level: "debug"})

	got := Get()
	got.Info().Msg("once")
	assert.NotEmpty(t, first.String())
	assert.Empty(t, second.String())
}

func TestGet_PanicsBeforeInit(t *testing.T) {
	Reset()
	assert.Panics(t, func() { Get() })
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, parseLevel(" DEBUG "))
	assert.Equal(t, zerolog.WarnLevel, parseLevel("warning"))
	assert.Equal(t, zerolog.InfoLevel, parseLevel("bogus"))
}
