package logging

import (
	"os"
	"path/filepath"
	"testing"

	"offplanbot/internal/config"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup(t *testing.T) {
	t.Cleanup(func() {
		logrus.SetLevel(logrus.InfoLevel)
		logrus.SetReportCaller(false)
		logrus.SetOutput(os.Stderr)
	})

	require.NoError(t, Setup(config.LoggingConfig{Level: "debug", Format: "text"}))
	assert.Equal(t, logrus.DebugLevel, logrus.GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, logrus.StandardLogger().Formatter)

	require.NoError(t, Setup(config.LoggingConfig{Level: "warn", Format: "json"}))
	assert.Equal(t, logrus.WarnLevel, logrus.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, logrus.StandardLogger().Formatter)

	assert.Error(t, Setup(config.LoggingConfig{Level: "loud", Format: "json"}))
}

func TestOutput_File(t *testing.T) {
	assert.Equal(t, os.Stdout, Output(config.LoggingConfig{}))

	file := filepath.Join(t.TempDir(), "chat.log")
	w := Output(config.LoggingConfig{File: file, MaxSizeMB: 1})

	_, err := w.Write([]byte("hello\n"))
	require.NoError(t, err)

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Equal(t, "hello\n", string(data))
}
