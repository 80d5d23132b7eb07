package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/smallnest/kernelplay/log"
	"github.com/smallnest/kernelplay/store/factory"
)

// ErrMissingKey is returned by Validate when a required secret is empty.
var ErrMissingKey = errors.New("missing required API key")

// Connector names.
const (
	ConnectorGPT         = "gpt"
	ConnectorLangchaingo = "langchaingo"
)

// DefaultPath is the configuration file looked up in the working directory.
const DefaultPath = "appsettings.toml"

// Config is the playground configuration.
type Config struct {
	OpenAI  OpenAIConfig  `toml:"openai" json:"openai"`
	Todoist TodoistConfig `toml:"todoist" json:"todoist"`
	Store   StoreConfig   `toml:"store" json:"store"`
	Log     LogConfig     `toml:"log" json:"log"`
}

// OpenAIConfig selects the chat model.
type OpenAIConfig struct {
	APIKey  string `toml:"api_key" json:"api_key"`
	Model   string `toml:"model" json:"model"`
	BaseURL string `toml:"base_url" json:"base_url"`

	// Connector is "gpt" (go-openai) or "langchaingo" (langchaingo's openai package).
	Connector string `toml:"connector" json:"connector"`
}

// TodoistConfig configures the Todoist REST client.
type TodoistConfig struct {
	APIKey         string `toml:"api_key" json:"api_key"`
	BaseURL        string `toml:"base_url" json:"base_url"`
	TimeoutSeconds int    `toml:"timeout_seconds" json:"timeout_seconds"`
}

// Timeout returns the request timeout as a duration.
func (c TodoistConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// StoreConfig selects the collection store backend.
type StoreConfig struct {
	Backend       string `toml:"backend" json:"backend"`
	BasePath      string `toml:"base_path" json:"base_path"`
	RootKey       string `toml:"root_key" json:"root_key"`
	RedisAddr     string `toml:"redis_addr" json:"redis_addr"`
	RedisPassword string `toml:"redis_password" json:"redis_password"`
	RedisDB       int    `toml:"redis_db" json:"redis_db"`
	RedisPrefix   string `toml:"redis_prefix" json:"redis_prefix"`
	SqlitePath    string `toml:"sqlite_path" json:"sqlite_path"`
	PostgresURL   string `toml:"postgres_url" json:"postgres_url"`
	TableName     string `toml:"table_name" json:"table_name"`
}

// Options converts the section to factory options.
func (c StoreConfig) Options() factory.Options {
	return factory.Options{
		Backend:       c.Backend,
		BasePath:      c.BasePath,
		RootKey:       c.RootKey,
		RedisAddr:     c.RedisAddr,
		RedisPassword: c.RedisPassword,
		RedisDB:       c.RedisDB,
		RedisPrefix:   c.RedisPrefix,
		SqlitePath:    c.SqlitePath,
		PostgresURL:   c.PostgresURL,
		TableName:     c.TableName,
	}
}

// LogConfig sets the log level: debug, info, warn, error or none.
type LogConfig struct {
	Level string `toml:"level" json:"level"`
}

// Default returns a configuration with every optional field set.
func Default() *Config {
	return &Config{
		OpenAI: OpenAIConfig{
			Model:     "gpt-4o-mini",
			Connector: ConnectorGPT,
		},
		Todoist: TodoistConfig{
			BaseURL:        "https://api.todoist.com/rest/v2",
			TimeoutSeconds: 30,
		},
		Store: StoreConfig{
			Backend:     factory.BackendFile,
			BasePath:    "data",
			RedisAddr:   "localhost:6379",
			RedisPrefix: "kernelplay:",
		},
		Log: LogConfig{Level: "info"},
	}
}

// SetDefaults fills in empty fields from Default.
func (c *Config) SetDefaults() {
	d := Default()

	if c.OpenAI.Model == "" {
		c.OpenAI.Model = d.OpenAI.Model
	}
	if c.OpenAI.Connector == "" {
		c.OpenAI.Connector = d.OpenAI.Connector
	}

	if c.Todoist.BaseURL == "" {
		c.Todoist.BaseURL = d.Todoist.BaseURL
	}
	if c.Todoist.TimeoutSeconds <= 0 {
		c.Todoist.TimeoutSeconds = d.Todoist.TimeoutSeconds
	}

	if c.Store.Backend == "" {
		c.Store.Backend = d.Store.Backend
	}
	if c.Store.BasePath == "" {
		c.Store.BasePath = d.Store.BasePath
	}
	if c.Store.RedisAddr == "" {
		c.Store.RedisAddr = d.Store.RedisAddr
	}
	if c.Store.RedisPrefix == "" {
		c.Store.RedisPrefix = d.Store.RedisPrefix
	}

	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
}

// ApplyEnvOverrides replaces values with the OPENAI_* and TODOIST_*
// environment variables when they are set.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		c.OpenAI.APIKey = v
	}
	if v := os.Getenv("OPENAI_MODEL"); v != "" {
		c.OpenAI.Model = v
	}
	if v := os.Getenv("OPENAI_API_BASE"); v != "" {
		c.OpenAI.BaseURL = v
	}
	if v := os.Getenv("TODOIST_API_KEY"); v != "" {
		c.Todoist.APIKey = v
	}
}

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e ValidationError) Unwrap() error {
	return e.Err
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	msgs := make([]string, 0, len(e))
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Unwrap exposes the individual errors to errors.Is.
func (e ValidateErrors) Unwrap() []error {
	out := make([]error, len(e))
	for i, err := range e {
		out[i] = err
	}
	return out
}

// Validate checks required keys and enumerated values.
func (c *Config) Validate() error {
	var errs ValidateErrors

	if c.OpenAI.APIKey == "" {
		errs = append(errs, ValidationError{
			Field:   "openai.api_key",
			Message: "not set (configure it or export OPENAI_API_KEY)",
			Err:     ErrMissingKey,
		})
	}
	if c.Todoist.APIKey == "" {
		errs = append(errs, ValidationError{
			Field:   "todoist.api_key",
			Message: "not set (configure it or export TODOIST_API_KEY)",
			Err:     ErrMissingKey,
		})
	}

	switch c.OpenAI.Connector {
	case ConnectorGPT, ConnectorLangchaingo:
	default:
		errs = append(errs, ValidationError{
			Field:   "openai.connector",
			Message: fmt.Sprintf("invalid connector '%s', must be one of: gpt, langchaingo", c.OpenAI.Connector),
		})
	}

	for field, raw := range map[string]string{"openai.base_url": c.OpenAI.BaseURL, "todoist.base_url": c.Todoist.BaseURL} {
		if raw == "" {
			continue
		}
		if u, err := url.Parse(raw); err != nil || u.Scheme == "" || u.Host == "" {
			errs = append(errs, ValidationError{Field: field, Message: fmt.Sprintf("invalid URL '%s'", raw)})
		}
	}

	switch c.Store.Backend {
	case factory.BackendFile, factory.BackendMemory, factory.BackendRedis, factory.BackendSqlite:
	case factory.BackendPostgres:
		if c.Store.PostgresURL == "" {
			errs = append(errs, ValidationError{Field: "store.postgres_url", Message: "required for the postgres backend"})
		}
	default:
		errs = append(errs, ValidationError{
			Field:   "store.backend",
			Message: fmt.Sprintf("invalid backend '%s', must be one of: file, memory, redis, sqlite, postgres", c.Store.Backend),
		})
	}

	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, ValidationError{Field: "log.level", Message: err.Error()})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// LoadTOML decodes a TOML file into cfg.
func LoadTOML(cfg *Config, path string) error {
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	return nil
}

// LoadJSON decodes a JSON file into cfg.
func LoadJSON(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read JSON file: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to decode JSON file: %w", err)
	}
	return nil
}

// LoadFromPath reads path (JSON when it ends in .json, TOML otherwise),
// applies environment overrides and defaults, and validates the result.
// A missing file is not an error; the environment alone may be enough.
func LoadFromPath(path string) (*Config, error) {
	cfg := &Config{}

	if _, err := os.Stat(path); err == nil {
		if strings.HasSuffix(path, ".json") {
			if err := LoadJSON(cfg, path); err != nil {
				return nil, fmt.Errorf("failed to load JSON config from %s: %w", path, err)
			}
		} else {
			if err := LoadTOML(cfg, path); err != nil {
				return nil, fmt.Errorf("failed to load TOML config from %s: %w", path, err)
			}
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
