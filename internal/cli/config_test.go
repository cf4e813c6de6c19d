package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	c := &Config{
		Version: "v1",
		Server:  "http://localhost:8210",
		JobKey:  "test-key",
	}
	require.NoError(t, SaveConfig(c, path))

	require.NoError(t, LoadConfig(path))
	loaded := GetConfig()
	assert.Equal(t, "http://localhost:8210", loaded.Server)
	assert.Equal(t, "test-key", loaded.JobKey)
}

func TestLoadConfigNormalizesServer(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	err := os.WriteFile(path, []byte("version: v1\nserver: localhost:8210/\n"), 0o600)
	require.NoError(t, err)

	require.NoError(t, LoadConfig(path))
	assert.Equal(t, "http://localhost:8210", GetConfig().Server)
}

func TestLoadConfigRequiresServer(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	err := os.WriteFile(path, []byte("version: v1\n"), 0o600)
	require.NoError(t, err)

	assert.Error(t, LoadConfig(path))
}

func TestLoadConfigMissingFile(t *testing.T) {
	err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
