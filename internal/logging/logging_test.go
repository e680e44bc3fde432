package logging

import (
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"animedb/client/internal/config"
)

// Not parallel: mutates the global logger.
func TestConfigure(t *testing.T) {
	t.Cleanup(func() {
		log.SetLevel(log.InfoLevel)
		log.SetFormatter(&log.TextFormatter{})
	})

	require.NoError(t, Configure(config.LogConfig{Level: "DEBUG", Format: "json"}))
	require.Equal(t, log.DebugLevel, log.GetLevel())
	require.IsType(t, &log.JSONFormatter{}, log.StandardLogger().Formatter)

	require.NoError(t, Configure(config.LogConfig{Level: "warn"}))
	require.Equal(t, log.WarnLevel, log.GetLevel())
	require.IsType(t, &log.TextFormatter{}, log.StandardLogger().Formatter)

	require.Error(t, Configure(config.LogConfig{Level: "loud"}))
	require.Error(t, Configure(config.LogConfig{Level: "info", Format: "xml"}))
}
