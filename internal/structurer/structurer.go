// Package structurer builds the fixed instruction sent to the model and
// returns its raw completion. It performs no JSON validation; repairing the
// answer is the normalizer's job.
package structurer

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/recipesnap/recipesnap/internal/llm"
	"github.com/recipesnap/recipesnap/internal/recipe"
)

// DefaultMaxPromptChars bounds how much page text is inlined into the
// instruction, keeping the request under model input limits.
const DefaultMaxPromptChars = 10000

// Structurer turns candidate page text into a raw JSON completion.
type Structurer struct {
	Generator *llm.Generator
	Schema    recipe.Schema
	// MaxPromptChars overrides DefaultMaxPromptChars when positive.
	MaxPromptChars int
}

// Structure prompts the model with the candidate text, or with the URL alone
// when text is empty, and returns the raw completion.
func (s *Structurer) Structure(ctx context.Context, text, sourceURL string) (llm.Completion, error) {
	if s.Generator == nil {
		return llm.Completion{}, fmt.Errorf("structurer not configured")
	}
	return s.Generator.Complete(ctx, s.buildPrompt(text, sourceURL))
}

func (s *Structurer) buildPrompt(text, sourceURL string) string {
	budget := s.MaxPromptChars
	if budget <= 0 {
		budget = DefaultMaxPromptChars
	}
	text = truncate(strings.TrimSpace(text), budget)

	var sb strings.Builder
	if text == "" {
		fmt.Fprintf(&sb, "From the URL: %s, extract the recipe name, the ingredients, and the primary cooking instructions.\n", sourceURL)
	} else {
		sb.WriteString("From the recipe page text below, extract the recipe name, the ingredients, and the primary cooking instructions.\n")
	}

	switch s.Schema {
	case recipe.SchemaTagged:
		writeTaggedContract(&sb)
	default:
		writeApplianceContract(&sb)
	}

	sb.WriteString("\nIgnore all non-recipe content like stories, ads, and comments.\n")
	sb.WriteString("\nImportant:\n")
	sb.WriteString("- Clean up and standardize ingredient measurements\n")
	sb.WriteString("- Make instructions clear and actionable\n")
	sb.WriteString("- Number the instructions if they aren't already numbered\n")
	if s.Schema != recipe.SchemaTagged {
		sb.WriteString("- Only include applianceInstructions if the recipe can be adapted for Instant Pot or Breville Smart Oven\n")
	}
	sb.WriteString("- Return ONLY valid JSON, no other text\n")

	if text != "" {
		sb.WriteString("\nRecipe page text:\n")
		sb.WriteString(text)
	}
	return sb.String()
}

// writeApplianceContract emits the recipeName/instructions shape, including
// the appliance adaptation rules.
func writeApplianceContract(sb *strings.Builder) {
	sb.WriteString("\nAfter extracting the main instructions, analyze them.\n")
	sb.WriteString(`1. If the recipe involves using a pressure cooker, add a set of specific, alternative instructions under the appliance name "Instant Pot" in the "applianceInstructions" field.` + "\n")
	sb.WriteString(`2. If the recipe involves baking or air frying, add a set of specific, alternative instructions under the appliance name "Breville Smart Oven Toaster Pro" in the "applianceInstructions" field.` + "\n")
	sb.WriteString(`If neither of these conditions are met, the "applianceInstructions" field MUST be an empty array [].` + "\n")
	sb.WriteString("\nReturn ONLY a valid JSON object with this exact structure:\n")
	sb.WriteString(`{
  "recipeName": "Recipe Name",
  "ingredients": ["1 cup flour", "2 eggs"],
  "instructions": ["Step 1: ...", "Step 2: ..."],
  "applianceInstructions": [
    {"applianceName": "Instant Pot", "instructions": ["Step 1: ...", "Step 2: ..."]}
  ]
}
`)
}

// writeTaggedContract emits the title/directions shape with cooking time,
// servings, and the four tag categories.
func writeTaggedContract(sb *strings.Builder) {
	sb.WriteString("\nAlso capture the cooking time and the number of servings when the page states them, and categorize the recipe with tags.\n")
	sb.WriteString("\nReturn ONLY a valid JSON object with this exact structure:\n")
	sb.WriteString(`{
  "title": "Recipe Name",
  "ingredients": ["1 cup flour", "2 eggs"],
  "directions": ["Step 1: ...", "Step 2: ..."],
  "cooking_time": "45 minutes",
  "servings": "4",
  "tags": {
    "cuisine": ["Mexican"],
    "main_ingredient": ["beef"],
    "cooking_method": ["braising"],
    "meal_type": ["dinner"]
  }
}
`)
	sb.WriteString("Use null for cooking_time or servings when the page does not state them, and empty arrays for tag categories you cannot determine.\n")
}

// truncate cuts s to at most n bytes without splitting a rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
