package cmd

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/eduvantage/internal/config"
)

func runRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestConfigInit(t *testing.T) {
	t.Setenv("EDUVANTAGE_PERSONA", "")
	path := filepath.Join(t.TempDir(), "eduvantage", "config.yaml")

	out, err := runRoot(t, "config", "init", "--config", path, "--persona", "college", "--provider", "openai")
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote "+path)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "college", cfg.Persona)
	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, config.DefaultConfig().Server, cfg.Server)

	_, err = runRoot(t, "config", "init", "--config", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, err = runRoot(t, "config", "init", "--config", path, "--persona", "jee_neet", "--force")
	require.NoError(t, err)
	cfg, err = config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "jee_neet", cfg.Persona)
}

func TestConfigInit_RejectsBadPersona(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	_, err := runRoot(t, "config", "init", "--config", path, "--persona", "kindergarten", "--force=false")
	require.Error(t, err)
	assert.NoFileExists(t, path)
}
