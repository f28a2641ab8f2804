// Package app wires the fetch → extract → structure → normalize pipeline
// behind a single ExtractRecipe operation.
package app

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/recipesnap/recipesnap/internal/extract"
	"github.com/recipesnap/recipesnap/internal/fetch"
	"github.com/recipesnap/recipesnap/internal/llm"
	"github.com/recipesnap/recipesnap/internal/recipe"
	"github.com/recipesnap/recipesnap/internal/structurer"
)

// ErrMissingAPIKey indicates no credential was supplied either in Config or
// through the LLM_API_KEY environment variable.
var ErrMissingAPIKey = errors.New("missing API key: set LLM_API_KEY or Config.APIKey")

// Extractor runs the extraction pipeline. One instance is stateless across
// calls; concurrent callers should construct their own.
type Extractor struct {
	Config     Config
	Fetcher    *fetch.Client
	Structurer *structurer.Structurer
}

// New validates cfg, layers in environment values, and builds a ready-to-use
// Extractor. The credential is checked here so that a misconfigured caller
// fails before any network activity.
func New(cfg Config) (*Extractor, error) {
	ApplyEnvToConfig(&cfg)
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrMissingAPIKey
	}

	gen := &llm.Generator{
		Client:    llm.NewProvider(cfg.APIKey, cfg.BaseURL),
		Models:    cfg.Models,
		MaxTokens: cfg.MaxOutputTokens,
	}
	return &Extractor{
		Config: cfg,
		Fetcher: &fetch.Client{
			UserAgent: cfg.UserAgent,
			Timeout:   cfg.FetchTimeout,
		},
		Structurer: &structurer.Structurer{
			Generator:      gen,
			Schema:         cfg.Schema,
			MaxPromptChars: cfg.MaxPromptChars,
		},
	}, nil
}

// ExtractRecipe fetches url, reduces the page to candidate text, asks the
// model for a structured answer, and normalizes it into a Record. The only
// errors that escape are fetch and generation failures; a garbled model
// answer still yields a structurally complete record.
func (e *Extractor) ExtractRecipe(ctx context.Context, url string) (recipe.Record, error) {
	log.Info().Str("url", url).Msg("extracting recipe")

	var text string
	if !e.Config.SkipScrape {
		page, err := e.Fetcher.Get(ctx, url)
		if err != nil {
			return recipe.Record{}, err
		}
		text = extract.CandidateText(page, url)
		log.Debug().Int("chars", len(text)).Msg("candidate text extracted")
	}

	completion, err := e.Structurer.Structure(ctx, text, url)
	if err != nil {
		return recipe.Record{}, err
	}
	log.Debug().Str("model", completion.Model).Msg("completion received")

	rec := recipe.Normalize(completion.Text, url)
	if rec.Title != nil {
		log.Info().Str("title", *rec.Title).Msg("recipe extracted")
	} else {
		log.Warn().Str("url", url).Msg("model answer yielded no recipe fields")
	}
	return rec, nil
}
