package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	APIKey      string  `yaml:"-"`
	Model       string  `yaml:"model"`
	Temperature float64 `yaml:"temperature"`
	MaxTokens   int     `yaml:"max_tokens"`
	Debug       bool    `yaml:"-"`
	Mode        string  `yaml:"-"`
}

// Load reads the optional yaml config file and applies environment overrides on top. The file
// may set model parameters; the API key only ever comes from the environment.
func Load(path string) (*Config, error) {
	cfg := &Config{
		Model:       "gpt-4o",
		Temperature: 0.2,
		MaxTokens:   4096,
	}
	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("error parsing %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("error reading %s: %w", path, err)
	}
	cfg.APIKey = os.Getenv("OPENAI_API_KEY")
	if model := os.Getenv("MODEL"); model != "" {
		cfg.Model = model
	}
	cfg.Debug = os.Getenv("DEBUG") == "1" || os.Getenv("DEBUG") == "true"
	cfg.Mode = os.Getenv("MODE")
	return cfg, nil
}
