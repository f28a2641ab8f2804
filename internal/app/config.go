package app

import (
	"time"

	"github.com/recipesnap/recipesnap/internal/recipe"
)

// Config holds runtime configuration for one extractor instance.
type Config struct {
	// LLM endpoint
	APIKey  string
	BaseURL string
	// Models is the preference-ordered fallback list. Empty means the
	// package default list.
	Models []string

	// Schema selects the output shape, see recipe.ParseSchema.
	Schema recipe.Schema

	// Fetch
	UserAgent    string
	FetchTimeout time.Duration

	// Prompt budgeting
	MaxPromptChars  int
	MaxOutputTokens int

	// SkipScrape prompts the model with the URL alone instead of fetching
	// and extracting the page first.
	SkipScrape bool
}
