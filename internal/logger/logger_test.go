package logger

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]logrus.Level{
		"debug":   logrus.DebugLevel,
		"DEBUG":   logrus.DebugLevel,
		" warn ":  logrus.WarnLevel,
		"warning": logrus.WarnLevel,
		"error":   logrus.ErrorLevel,
		"trace":   logrus.TraceLevel,
		"":        logrus.InfoLevel,
		"bogus":   logrus.InfoLevel,
	}
	for in, want := range cases {
		assert.Equal(t, want, parseLevel(in), "level %q", in)
	}
}

func TestNew_FileOutputRotates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "waxbot.log")
	log := New(Config{Level: "debug", Format: "json", Output: path, MaxSize: 1})

	require.Equal(t, logrus.DebugLevel, log.Level())
	log.WithComponent("test").Info("hello")
	assert.FileExists(t, path)
}

func TestDiscard(t *testing.T) {
	log := Discard()
	assert.NotPanics(t, func() {
		log.WithComponent("test").WithField("k", "v").Error("dropped")
	})
}

func TestContextFields(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: "debug", Format: "json"})
	log.log.SetOutput(&buf)

	log.WithSteamID("765").WithField("component", "engine").Info("steam")
	log.WithRequestID("req-1").Debug("request")

	dec := json.NewDecoder(&buf)
	var first, second map[string]any
	require.NoError(t, dec.Decode(&first))
	require.NoError(t, dec.Decode(&second))

	assert.Equal(t, "765", first["steam_id"])
	assert.Equal(t, "engine", first["component"])
	assert.Equal(t, "req-1", second["request_id"])
	assert.Equal(t, "debug", second["level"])
}
