package app

import (
	"fmt"
	"os"
	"time"

	yaml "gopkg.in/yaml.v3"

	"github.com/recipesnap/recipesnap/internal/recipe"
)

// FileConfig is the optional single-file YAML configuration schema. Nested
// sections map naturally to the flag and env names.
type FileConfig struct {
	LLM struct {
		BaseURL string   `yaml:"base"`
		Models  []string `yaml:"models"`
		Key     string   `yaml:"key"`
	} `yaml:"llm"`

	Schema string `yaml:"schema"`

	Fetch struct {
		UserAgent string `yaml:"userAgent"`
		Timeout   string `yaml:"timeout"`
	} `yaml:"fetch"`

	Prompt struct {
		MaxChars  int `yaml:"maxChars"`
		MaxTokens int `yaml:"maxTokens"`
	} `yaml:"prompt"`

	SkipScrape bool `yaml:"skipScrape"`
}

// LoadConfigFile reads and parses a YAML config file.
func LoadConfigFile(path string) (*FileConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	var fc FileConfig
	if err := yaml.Unmarshal(b, &fc); err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}
	if fc.Schema != "" {
		if _, err := recipe.ParseSchema(fc.Schema); err != nil {
			return nil, fmt.Errorf("config file %s: %w", path, err)
		}
	}
	if fc.Fetch.Timeout != "" {
		if _, err := time.ParseDuration(fc.Fetch.Timeout); err != nil {
			return nil, fmt.Errorf("config file %s: fetch.timeout: %w", path, err)
		}
	}
	return &fc, nil
}

// Apply copies file values into unset fields of cfg. Values already present
// on cfg (from flags or code) win over the file.
func (fc *FileConfig) Apply(cfg *Config) {
	if fc == nil || cfg == nil {
		return
	}
	if cfg.APIKey == "" {
		cfg.APIKey = fc.LLM.Key
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = fc.LLM.BaseURL
	}
	if len(cfg.Models) == 0 {
		cfg.Models = fc.LLM.Models
	}
	if cfg.Schema == "" && fc.Schema != "" {
		if s, err := recipe.ParseSchema(fc.Schema); err == nil {
			cfg.Schema = s
		}
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = fc.Fetch.UserAgent
	}
	if cfg.FetchTimeout == 0 && fc.Fetch.Timeout != "" {
		if d, err := time.ParseDuration(fc.Fetch.Timeout); err == nil {
			cfg.FetchTimeout = d
		}
	}
	if cfg.MaxPromptChars == 0 {
		cfg.MaxPromptChars = fc.Prompt.MaxChars
	}
	if cfg.MaxOutputTokens == 0 {
		cfg.MaxOutputTokens = fc.Prompt.MaxTokens
	}
	if !cfg.SkipScrape {
		cfg.SkipScrape = fc.SkipScrape
	}
}
