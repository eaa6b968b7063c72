package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigFromEnvironment(t *testing.T) {
	t.Setenv("SCRAMBLE_SERVER", "http://example.test:9000")
	t.Setenv("SCRAMBLE_TOKEN", "envtok")

	cfg := DefaultConfig()
	assert.Equal(t, "http://example.test:9000", cfg.ServerURL)
	assert.Equal(t, "envtok", cfg.Token)
	assert.Equal(t, "text", cfg.Output)
}

func TestTokenFileRoundTrip(t *testing.T) {
	cfg := &Config{TokenFile: filepath.Join(t.TempDir(), "nested", "token")}

	// Missing file is not an error
	require.NoError(t, cfg.LoadToken())
	assert.Empty(t, cfg.Token)

	require.NoError(t, cfg.SaveToken("sess_abc"))

	info, err := os.Stat(cfg.TokenFile)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	loaded := &Config{TokenFile: cfg.TokenFile}
	require.NoError(t, loaded.LoadToken())
	assert.Equal(t, "sess_abc", loaded.Token)

	require.NoError(t, cfg.ClearToken())
	assert.Empty(t, cfg.Token)
	_, err = os.Stat(cfg.TokenFile)
	assert.True(t, os.IsNotExist(err))

	// Clearing twice is fine
	require.NoError(t, cfg.ClearToken())
}

func TestExplicitTokenWins(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	require.NoError(t, os.WriteFile(path, []byte("filetok\n"), 0600))

	cfg := &Config{Token: "flagtok", TokenFile: path}
	require.NoError(t, cfg.LoadToken())
	assert.Equal(t, "flagtok", cfg.Token)
}
