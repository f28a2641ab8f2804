package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/recipesnap/recipesnap/internal/app"
	"github.com/recipesnap/recipesnap/internal/recipe"
)

func main() {
	// Logging setup
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	// Credentials commonly live in a local .env during manual testing.
	_ = godotenv.Load()

	var (
		pageURL      string
		schemaName   string
		llmBaseURL   string
		llmModels    string
		llmKey       string
		configPath   string
		fetchTimeout time.Duration
		skipScrape   bool
		verbose      bool
	)

	flag.StringVar(&pageURL, "url", "", "Recipe page URL to extract")
	flag.StringVar(&schemaName, "schema", "", "Output schema: appliance or tagged (default appliance)")
	flag.StringVar(&llmBaseURL, "llm.base", os.Getenv("LLM_BASE_URL"), "OpenAI-compatible base URL")
	flag.StringVar(&llmModels, "llm.models", os.Getenv("LLM_MODELS"), "Comma-separated model fallback list")
	flag.StringVar(&llmKey, "llm.key", os.Getenv("LLM_API_KEY"), "API key for the model endpoint")
	flag.StringVar(&configPath, "config", "", "Optional YAML config file")
	flag.DurationVar(&fetchTimeout, "fetch.timeout", 0, "Page fetch timeout (default 12s)")
	flag.BoolVar(&skipScrape, "no-scrape", false, "Skip page fetching and prompt the model with the URL alone")
	flag.BoolVar(&verbose, "v", false, "Verbose logging")
	flag.Parse()

	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	if pageURL == "" {
		pageURL = flag.Arg(0)
	}
	if pageURL == "" {
		log.Fatal().Msg("no URL given: pass -url or a positional argument")
	}

	var schema recipe.Schema
	if schemaName != "" {
		var err error
		schema, err = recipe.ParseSchema(schemaName)
		if err != nil {
			log.Fatal().Err(err).Msg("invalid schema")
		}
	}

	cfg := app.Config{
		APIKey:       llmKey,
		BaseURL:      llmBaseURL,
		Models:       splitList(llmModels),
		Schema:       schema,
		FetchTimeout: fetchTimeout,
		SkipScrape:   skipScrape,
	}
	if configPath != "" {
		fc, err := app.LoadConfigFile(configPath)
		if err != nil {
			log.Fatal().Err(err).Msg("config file")
		}
		fc.Apply(&cfg)
	}

	extractor, err := app.New(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("setup failed")
	}

	rec, err := extractor.ExtractRecipe(context.Background(), pageURL)
	if err != nil {
		log.Fatal().Err(err).Msg("extraction failed")
	}

	out, err := json.MarshalIndent(rec.View(extractor.Config.Schema), "", "  ")
	if err != nil {
		log.Fatal().Err(err).Msg("encode result")
	}
	fmt.Println(string(out))
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
