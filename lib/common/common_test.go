package common

import (
	"bytes"
	"testing"

	"github.com/lni/dragonboat/v4/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want logger.LogLevel
	}{
		{"debug", logger.DEBUG},
		{"INFO", logger.INFO},
		{"warn", logger.WARNING},
		{"warning", logger.WARNING},
		{" error ", logger.ERROR},
	}
	for _, tt := range tests {
		got, err := ParseLogLevel(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseLogLevel("verbose")
	assert.ErrorContains(t, err, "invalid log level: verbose")
}

func TestLoggerFormatAndLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger("typeddb", &buf)

	l.Debugf("hidden %d", 1)
	assert.Empty(t, buf.String())

	l.Infof("Creating db: path=%s", "/tmp/x")
	assert.Contains(t, buf.String(), "INFO  | typeddb         | Creating db: path=/tmp/x")

	buf.Reset()
	l.SetLevel(logger.ERROR)
	l.Warningf("hidden")
	assert.Empty(t, buf.String())
	l.Errorf("shown")
	assert.Contains(t, buf.String(), "ERROR | typeddb         | shown")

	assert.PanicsWithValue(t, "fatal 7", func() {
		l.Panicf("fatal %d", 7)
	})
}

func TestInitLoggersRejectsUnknownLevel(t *testing.T) {
	assert.Error(t, InitLoggers("loud"))
}

func TestInitLoggersTwice(t *testing.T) {
	require.NotPanics(t, func() {
		require.NoError(t, InitLoggers("info"))
		require.NoError(t, InitLoggers("debug"))
		require.NoError(t, InitLoggers("warn"))
	})
}

func TestConfig(t *testing.T) {
	c := &Config{DataDir: "data", Engine: EnginePebble, Sync: true, LogLevel: "info"}
	require.NoError(t, c.Validate())

	out := c.String()
	assert.Contains(t, out, "STORAGE")
	assert.Contains(t, out, "Data Directory        : data")
	assert.Contains(t, out, "Sync Writes           : true")
	assert.Contains(t, out, "LOGGING")

	c.Engine = EngineMaple
	assert.NotContains(t, c.String(), "Sync Writes")

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"empty data dir", func(c *Config) { c.DataDir = "" }},
		{"unknown engine", func(c *Config) { c.Engine = "rocks" }},
		{"unknown log level", func(c *Config) { c.LogLevel = "loud" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bad := &Config{DataDir: "data", Engine: EnginePebble, LogLevel: "info"}
			tt.mutate(bad)
			assert.Error(t, bad.Validate())
		})
	}
}
