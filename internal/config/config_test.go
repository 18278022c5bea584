package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv(EnvConfig, "")

	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "simulated", c.Generator.Provider)
	assert.Equal(t, "OPENAI_API_KEY", c.Generator.APIKeyEnv)
	assert.Equal(t, 10, c.Wizard.Step)
	assert.Equal(t, 300*time.Millisecond, c.Wizard.Interval)
	assert.True(t, c.Extract.Enabled)
	assert.Equal(t, filepath.Join(c.Data.Dir, "dalil.db"), c.Database.Path)
	assert.Empty(t, c.Trace.Endpoint)
	assert.True(t, c.Trace.Insecure)
}

func TestLoad_FileAndEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[data]
dir = "` + filepath.ToSlash(dir) + `"

[generator]
provider = "openai"
model = "gpt-4.1"

[wizard]
step = 25
interval = "50ms"

[extract]
enabled = false
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	t.Setenv("DALIL_GENERATOR_MODEL", "gpt-4o")

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "openai", c.Generator.Provider)
	assert.Equal(t, "gpt-4o", c.Generator.Model)
	assert.Equal(t, 25, c.Wizard.Step)
	assert.Equal(t, 50*time.Millisecond, c.Wizard.Interval)
	assert.False(t, c.Extract.Enabled)
	assert.Equal(t, filepath.Join(filepath.ToSlash(dir), "dalil.db"), c.Database.Path)
}

func TestLoad_IgnoresRetiredKeys(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := "[ui]\nlanguage = \"ar\"\n\n[wizard]\nstep = 20\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 20, c.Wizard.Step)
}

func TestLoad_ExplicitMissingFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestResolvedAPIKey(t *testing.T) {
	t.Setenv("MY_KEY", "from-env")
	assert.Equal(t, "inline", GeneratorConfig{APIKey: "inline", APIKeyEnv: "MY_KEY"}.ResolvedAPIKey())
	assert.Equal(t, "from-env", GeneratorConfig{APIKeyEnv: "MY_KEY"}.ResolvedAPIKey())
	assert.Equal(t, "", GeneratorConfig{}.ResolvedAPIKey())
}
