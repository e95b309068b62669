package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	chdir(t)

	cfg, err := NewConfig()
	require.NoError(t, err)
	require.Equal(t, "json", cfg.Storage.Driver())
	require.Equal(t, "data", cfg.Storage.Dir())
	require.Equal(t, "data/transferdesk.db", cfg.Storage.BoltPath())
	require.False(t, cfg.Logger.Debug())
}

func TestEnvOverride(t *testing.T) {
	chdir(t)
	t.Setenv("TRANSFERDESK_STORAGE_DRIVER", "bolt")
	t.Setenv("TRANSFERDESK_LOGGER_DEBUG", "true")

	cfg, err := NewConfig()
	require.NoError(t, err)
	require.Equal(t, "bolt", cfg.Storage.Driver())
	require.True(t, cfg.Logger.Debug())
}

func TestUnknownDriverRejected(t *testing.T) {
	chdir(t)
	t.Setenv("TRANSFERDESK_STORAGE_DRIVER", "cassandra")

	_, err := NewConfig()
	require.Error(t, err)
}

// chdir moves the test into an empty directory so a developer's local
// config.yaml cannot leak into assertions.
func chdir(t *testing.T) {
	t.Helper()
	t.Chdir(t.TempDir())
}
