package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoggerLevel(t *testing.T) {
	assert.Equal(t, logrus.DebugLevel, NewLogger(LoggerOptions{Level: "debug"}).GetLevel())
	assert.Equal(t, logrus.InfoLevel, NewLogger(LoggerOptions{Level: "loud"}).GetLevel())
}

func TestNewLoggerFormat(t *testing.T) {
	_, isJSON := NewLogger(LoggerOptions{Format: "json"}).Formatter.(*logrus.JSONFormatter)
	assert.True(t, isJSON)

	_, isText := NewLogger(LoggerOptions{}).Formatter.(*logrus.TextFormatter)
	assert.True(t, isText)
}

func TestNewLoggerWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "traktmanager.log")
	logger := NewLogger(LoggerOptions{Level: "info", Format: "json", File: path})
	logger.WithField("run_id", "abc").Info("hello")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"run_id":"abc"`)
	assert.Contains(t, string(data), `"msg":"hello"`)
}
