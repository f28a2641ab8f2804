package app

import (
	"os"
	"strings"
	"time"

	"github.com/recipesnap/recipesnap/internal/recipe"
)

// ApplyEnvToConfig populates unset fields of cfg from environment variables.
// Explicit cfg values take precedence over env.
func ApplyEnvToConfig(cfg *Config) {
	if cfg == nil {
		return
	}

	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("LLM_API_KEY")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = os.Getenv("LLM_BASE_URL")
	}
	if len(cfg.Models) == 0 {
		cfg.Models = splitModels(os.Getenv("LLM_MODELS"))
	}

	if cfg.Schema == "" {
		if s, err := recipe.ParseSchema(os.Getenv("RECIPE_SCHEMA")); err == nil {
			cfg.Schema = s
		}
	}

	if cfg.UserAgent == "" {
		cfg.UserAgent = os.Getenv("FETCH_USER_AGENT")
	}
	if cfg.FetchTimeout == 0 {
		if s := os.Getenv("FETCH_TIMEOUT"); s != "" {
			if d, err := time.ParseDuration(s); err == nil {
				cfg.FetchTimeout = d
			}
		}
	}
}

// splitModels parses a comma-separated model list, dropping empty entries.
func splitModels(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
