package logger

import (
	"path/filepath"
	"testing"

	"dinein-dashboard/config"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestNewLevelAndFormat(t *testing.T) {
	log := New(config.LogConfig{Level: "DEBUG", Format: "json"})
	assert.Equal(t, logrus.DebugLevel, log.GetLevel())
	_, ok := log.Formatter.(*logrus.JSONFormatter)
	assert.True(t, ok, "expected JSON formatter")
}

func TestNewInvalidLevelFallsBackToInfo(t *testing.T) {
	log := New(config.LogConfig{Level: "loud"})
	assert.Equal(t, logrus.InfoLevel, log.GetLevel())
}

func TestNewWithFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	log := New(config.LogConfig{Level: "info", File: path, MaxSizeMB: 1})
	log.Info("hello")
	assert.FileExists(t, path)
}
