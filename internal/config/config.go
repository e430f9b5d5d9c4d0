// Package config loads the optional YAML settings file and merges it with
// environment overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/abhisek/eduvantage/internal/llm"
	"github.com/abhisek/eduvantage/internal/prompt"
)

// Config is the on-disk settings file.
type Config struct {
	Persona string       `yaml:"persona"`
	DBPath  string       `yaml:"db_path,omitempty"`
	Log     LogConfig    `yaml:"log"`
	Server  ServerConfig `yaml:"server"`
	LLM     LLMConfig    `yaml:"llm"`
}

// LogConfig configures zap output.
type LogConfig struct {
	Mode  string `yaml:"mode"`  // dev, prod
	Level string `yaml:"level"` // debug, info, warn, error
	File  string `yaml:"file,omitempty"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr         string   `yaml:"addr"`
	AllowOrigins []string `yaml:"allow_origins"`
}

// LLMConfig overrides the provider settings. Empty fields keep the
// provider defaults.
type LLMConfig struct {
	Provider    string         `yaml:"provider,omitempty"`
	Timeout     string         `yaml:"timeout,omitempty"`
	CacheTTL    string         `yaml:"cache_ttl,omitempty"`
	MaxAttempts int            `yaml:"max_attempts,omitempty"`
	Gemini      ProviderConfig `yaml:"gemini,omitempty"`
	Anthropic   ProviderConfig `yaml:"anthropic,omitempty"`
	OpenAI      ProviderConfig `yaml:"openai,omitempty"`
	OpenRouter  ProviderConfig `yaml:"openrouter,omitempty"`
}

// ProviderConfig is the per-vendor block.
type ProviderConfig struct {
	APIKey  string `yaml:"api_key,omitempty"`
	Model   string `yaml:"model,omitempty"`
	BaseURL string `yaml:"base_url,omitempty"`
}

// DefaultConfig returns the settings used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		Persona: string(prompt.PersonaExam),
		Log: LogConfig{
			Mode:  "dev",
			Level: "info",
		},
		Server: ServerConfig{
			Addr:         "127.0.0.1:8080",
			AllowOrigins: []string{"http://localhost:3000", "http://localhost:5173"},
		},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/eduvantage/config.yaml, falling
// back to ~/.config.
func DefaultPath() (string, error) {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "eduvantage", "config.yaml"), nil
}

// Load reads path over the defaults and applies environment overrides.
// A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration as YAML, creating parent directories.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	// The file may hold API keys.
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("EDUVANTAGE_PERSONA"); v != "" {
		c.Persona = v
	}
	if v := os.Getenv("EDUVANTAGE_DB"); v != "" {
		c.DBPath = v
	}
	if v := os.Getenv("EDUVANTAGE_LOG_FILE"); v != "" {
		c.Log.File = v
	}
	if v := os.Getenv("EDUVANTAGE_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("EDUVANTAGE_ADDR"); v != "" {
		c.Server.Addr = v
	}
}

// Validate checks values that would otherwise fail late.
func (c *Config) Validate() error {
	if _, err := prompt.ParsePersona(c.Persona); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	for name, d := range map[string]string{"llm.timeout": c.LLM.Timeout, "llm.cache_ttl": c.LLM.CacheTTL} {
		if d == "" {
			continue
		}
		if _, err := time.ParseDuration(d); err != nil {
			return fmt.Errorf("config: %s: %w", name, err)
		}
	}
	return nil
}

// PersonaValue returns the parsed persona. Validate has already checked it.
func (c *Config) PersonaValue() prompt.Persona {
	p, err := prompt.ParsePersona(c.Persona)
	if err != nil {
		return prompt.PersonaExam
	}
	return p
}

// ProviderConfig builds the LLM configuration: provider defaults, then the
// file, then EDUVANTAGE_* environment variables.
func (c *Config) ProviderConfig() llm.Config {
	cfg := llm.DefaultConfig()
	f := c.LLM

	if f.Provider != "" {
		cfg.Provider = f.Provider
	}
	if d, err := time.ParseDuration(f.Timeout); err == nil {
		cfg.Timeout = d
	}
	if d, err := time.ParseDuration(f.CacheTTL); err == nil {
		cfg.CacheTTL = d
	}
	if f.MaxAttempts > 0 {
		cfg.Retry.MaxAttempts = f.MaxAttempts
	}

	overlay(&cfg.Gemini.APIKey, f.Gemini.APIKey)
	overlay(&cfg.Gemini.Model, f.Gemini.Model)
	overlay(&cfg.Anthropic.APIKey, f.Anthropic.APIKey)
	overlay(&cfg.Anthropic.Model, f.Anthropic.Model)
	overlay(&cfg.OpenAI.APIKey, f.OpenAI.APIKey)
	overlay(&cfg.OpenAI.Model, f.OpenAI.Model)
	overlay(&cfg.OpenAI.BaseURL, f.OpenAI.BaseURL)
	overlay(&cfg.OpenRouter.APIKey, f.OpenRouter.APIKey)
	overlay(&cfg.OpenRouter.Model, f.OpenRouter.Model)
	overlay(&cfg.OpenRouter.BaseURL, f.OpenRouter.BaseURL)

	llm.ApplyEnv(&cfg)
	return cfg
}

func overlay(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
