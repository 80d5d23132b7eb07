package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"OPENAI_API_KEY", "OPENAI_MODEL", "OPENAI_API_BASE", "TODOIST_API_KEY"} {
		t.Setenv(k, "")
	}
}

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFromPath_TOML(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "appsettings.toml", `
[openai]
api_key = "sk-test"
model = "gpt-4o"

[todoist]
api_key = "td-test"
timeout_seconds = 5

[store]
backend = "sqlite"
sqlite_path = "/tmp/play.db"

[log]
level = "debug"
`)

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, "sk-test", cfg.OpenAI.APIKey)
	assert.Equal(t, "gpt-4o", cfg.OpenAI.Model)
	assert.Equal(t, ConnectorGPT, cfg.OpenAI.Connector)
	assert.Equal(t, 5*time.Second, cfg.Todoist.Timeout())
	assert.Equal(t, "https://api.todoist.com/rest/v2", cfg.Todoist.BaseURL)
	assert.Equal(t, "sqlite", cfg.Store.Options().Backend)
	assert.Equal(t, "/tmp/play.db", cfg.Store.Options().SqlitePath)
	assert.Equal(t, "data", cfg.Store.BasePath)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadFromPath_JSON(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "appsettings.json", `{
		"openai": {"api_key": "sk-json", "connector": "langchaingo"},
		"todoist": {"api_key": "td-json"}
	}`)

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, "sk-json", cfg.OpenAI.APIKey)
	assert.Equal(t, ConnectorLangchaingo, cfg.OpenAI.Connector)
	assert.Equal(t, "gpt-4o-mini", cfg.OpenAI.Model)
	assert.Equal(t, 30*time.Second, cfg.Todoist.Timeout())
}

func TestLoadFromPath_EnvOverrides(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "appsettings.toml", `
[openai]
api_key = "from-file"
model = "gpt-4o"
`)
	t.Setenv("OPENAI_API_KEY", "from-env")
	t.Setenv("OPENAI_MODEL", "gpt-4.1")
	t.Setenv("OPENAI_API_BASE", "http://localhost:8080/v1")
	t.Setenv("TODOIST_API_KEY", "td-env")

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.OpenAI.APIKey)
	assert.Equal(t, "gpt-4.1", cfg.OpenAI.Model)
	assert.Equal(t, "http://localhost:8080/v1", cfg.OpenAI.BaseURL)
	assert.Equal(t, "td-env", cfg.Todoist.APIKey)
}

func TestLoadFromPath_MissingFileUsesEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENAI_API_KEY", "sk")
	t.Setenv("TODOIST_API_KEY", "td")

	cfg, err := LoadFromPath(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, "file", cfg.Store.Backend)
}

func TestLoadFromPath_MissingKeys(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "appsettings.toml", `
[openai]
api_key = "sk"
`)

	_, err := LoadFromPath(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingKey)
	assert.Contains(t, err.Error(), "todoist.api_key")
	assert.NotContains(t, err.Error(), "openai.api_key")
}

func TestLoadFromPath_BadTOML(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "appsettings.toml", `[openai`)

	_, err := LoadFromPath(path)
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrMissingKey))
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		c := Default()
		c.OpenAI.APIKey = "sk"
		c.Todoist.APIKey = "td"
		return c
	}

	require.NoError(t, valid().Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"unknown connector", func(c *Config) { c.OpenAI.Connector = "azure" }, "openai.connector"},
		{"unknown backend", func(c *Config) { c.Store.Backend = "mongo" }, "store.backend"},
		{"postgres without url", func(c *Config) { c.Store.Backend = "postgres" }, "store.postgres_url"},
		{"bad base url", func(c *Config) { c.Todoist.BaseURL = "not a url" }, "todoist.base_url"},
		{"bad log level", func(c *Config) { c.Log.Level = "loud" }, "log.level"},
		{"missing openai key", func(c *Config) { c.OpenAI.APIKey = "" }, "openai.api_key"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			err := c.Validate()
			require.Error(t, err)

			var errs ValidateErrors
			require.True(t, errors.As(err, &errs))
			require.Len(t, errs, 1)
			assert.Equal(t, tt.field, errs[0].Field)
		})
	}
}
