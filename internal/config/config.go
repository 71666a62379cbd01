package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/danvoss/stride/internal/llm"
)

// Config is the top-level application configuration, loaded from
// ~/.stride/config.yaml with STRIDE_* environment overrides.
type Config struct {
	DBPath string    `yaml:"db_path"`
	Color  bool      `yaml:"color"`
	LLM    LLMConfig `yaml:"llm"`
}

// LLMConfig mirrors llm.Config in YAML form. Zero values mean "use default".
type LLMConfig struct {
	Enabled    bool   `yaml:"enabled"`
	LogCalls   bool   `yaml:"log_calls"`
	Endpoint   string `yaml:"endpoint"`
	Model      string `yaml:"model"`
	TimeoutMs  int    `yaml:"timeout_ms"`
	MaxRetries int    `yaml:"max_retries"`
}

// Default returns the configuration used when no config file exists.
func Default() Config {
	return Config{
		DBPath: defaultDBPath(),
		Color:  true,
	}
}

// Load reads the config file if present, applies defaults for unset fields,
// then applies environment overrides. A missing file is not an error.
func Load() (Config, error) {
	return LoadFrom(defaultConfigPath())
}

// LoadFrom loads configuration from an explicit path.
func LoadFrom(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnv()
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if cfg.DBPath == "" {
		cfg.DBPath = defaultDBPath()
	}
	cfg.applyEnv()
	return cfg, nil
}

// applyEnv layers environment variables over file values. STRIDE_DB wins over
// the file's db_path; the STRIDE_LLM_* variables win over the llm block.
func (c *Config) applyEnv() {
	if v := os.Getenv("STRIDE_DB"); v != "" {
		c.DBPath = v
	}
	if v := os.Getenv("STRIDE_NO_COLOR"); v != "" {
		c.Color = false
	}
}

// LLMConfig resolves the effective llm.Config: defaults, then file values,
// then STRIDE_LLM_* environment variables.
func (c *Config) LLMConfig() llm.Config {
	base := llm.DefaultConfig()
	if c.LLM.Enabled {
		base.Enabled = true
	}
	if c.LLM.LogCalls {
		base.LogCalls = true
	}
	if c.LLM.Endpoint != "" {
		base.Endpoint = c.LLM.Endpoint
	}
	if c.LLM.Model != "" {
		base.Model = c.LLM.Model
	}
	if c.LLM.TimeoutMs > 0 {
		base.TimeoutMs = c.LLM.TimeoutMs
	}
	if c.LLM.MaxRetries > 0 {
		base.MaxRetries = c.LLM.MaxRetries
	}
	return overlayEnv(base)
}

// overlayEnv applies STRIDE_LLM_* variables on top of a resolved config.
func overlayEnv(base llm.Config) llm.Config {
	env := llm.LoadConfig()
	def := llm.DefaultConfig()
	if env.Enabled != def.Enabled {
		base.Enabled = env.Enabled
	}
	if env.LogCalls != def.LogCalls {
		base.LogCalls = env.LogCalls
	}
	if env.Endpoint != def.Endpoint {
		base.Endpoint = env.Endpoint
	}
	if env.Model != def.Model {
		base.Model = env.Model
	}
	if env.TimeoutMs != def.TimeoutMs {
		base.TimeoutMs = env.TimeoutMs
	}
	if env.MaxRetries != def.MaxRetries {
		base.MaxRetries = env.MaxRetries
	}
	return base
}

func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.yaml"
	}
	return filepath.Join(home, ".stride", "config.yaml")
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "stride.db"
	}
	return filepath.Join(home, ".stride", "stride.db")
}
