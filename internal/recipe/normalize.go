package recipe

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"github.com/kaptinlin/jsonrepair"
)

// jsonSpan matches the first brace-delimited span, across newlines, for
// recovering an object embedded in surrounding prose.
var jsonSpan = regexp.MustCompile(`(?s)\{.*\}`)

// Normalize coerces a raw model completion into a structurally complete
// Record for sourceURL. It strips code fences, parses the payload as JSON
// (repairing it when the model emitted something close to JSON), recovers an
// embedded object when the completion carries extra prose, and falls back to
// the canonical empty record when nothing parseable remains. Missing keys
// are backfilled with defaults and historical key synonyms are resolved.
// Normalize never fails; malformed model output is not an error here.
func Normalize(raw, sourceURL string) Record {
	obj := parseLoose(stripFences(raw))
	if obj == nil {
		return Empty(sourceURL)
	}
	rec := fromLooseMap(obj)
	rec.SourceURL = sourceURL
	return rec
}

// stripFences removes a surrounding triple-backtick fence and an optional
// leading "json" language tag, returning the inner payload.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	parts := strings.Split(s, "```")
	if len(parts) >= 3 {
		s = parts[1]
	} else {
		s = strings.ReplaceAll(s, "```json", "")
		s = strings.ReplaceAll(s, "```", "")
	}
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "json") {
		s = s[len("json"):]
	}
	return strings.TrimSpace(s)
}

// parseLoose attempts to read s as a JSON object, then falls back to the
// first {...} span found inside it. Returns nil when no object can be read.
func parseLoose(s string) map[string]any {
	if m := parseObject(s); m != nil {
		return m
	}
	if span := jsonSpan.FindString(s); span != "" {
		if m := parseObject(span); m != nil {
			return m
		}
	}
	return nil
}

// parseObject tries strict JSON first and retries after a repair pass, since
// models routinely emit trailing commas, single quotes, or unquoted keys.
func parseObject(s string) map[string]any {
	var m map[string]any
	if err := json.Unmarshal([]byte(s), &m); err == nil {
		return m
	}
	repaired, err := jsonrepair.JSONRepair(s)
	if err != nil {
		return nil
	}
	if err := json.Unmarshal([]byte(repaired), &m); err != nil {
		return nil
	}
	return m
}

// fromLooseMap builds a Record from a loosely-typed object, applying
// defaults and key synonyms explicitly. Both output schemas and their
// historical key spellings parse back into the same Record, which is what
// makes Normalize idempotent over its own output.
func fromLooseMap(m map[string]any) Record {
	return Record{
		Title:       optString(pick(m, "title", "recipeName", "name")),
		Ingredients: stringSlice(m["ingredients"]),
		Directions:  stringSlice(pick(m, "directions", "instructions")),
		CookingTime: optString(pick(m, "cooking_time", "cookingTime", "cook_time")),
		Servings:    optString(pick(m, "servings")),
		Tags:        tagsFrom(m["tags"]),
		Appliances:  appliancesFrom(pick(m, "applianceInstructions", "appliance_instructions")),
	}
}

// pick returns the first key present in m with a non-null value.
func pick(m map[string]any, keys ...string) any {
	for _, k := range keys {
		if v, ok := m[k]; ok && v != nil {
			return v
		}
	}
	return nil
}

// optString coerces a scalar into an optional string. Numbers are accepted
// because models sometimes answer `"servings": 4` where a string was asked.
func optString(v any) *string {
	switch t := v.(type) {
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return nil
		}
		return &s
	case float64:
		s := strconv.FormatFloat(t, 'f', -1, 64)
		return &s
	case bool:
		s := strconv.FormatBool(t)
		return &s
	}
	return nil
}

// stringSlice coerces a loose value into a non-nil []string, keeping string
// elements and stringifying numeric ones.
func stringSlice(v any) []string {
	out := []string{}
	items, ok := v.([]any)
	if !ok {
		return out
	}
	for _, item := range items {
		if s := optString(item); s != nil {
			out = append(out, *s)
		}
	}
	return out
}

// tagsFrom reads the tag map, accepting both snake_case and camelCase
// category keys. All four categories come back present.
func tagsFrom(v any) Tags {
	tags := emptyTags()
	m, ok := v.(map[string]any)
	if !ok {
		return tags
	}
	tags.Cuisine = stringSlice(pick(m, "cuisine"))
	tags.MainIngredient = stringSlice(pick(m, "main_ingredient", "mainIngredient"))
	tags.CookingMethod = stringSlice(pick(m, "cooking_method", "cookingMethod"))
	tags.MealType = stringSlice(pick(m, "meal_type", "mealType"))
	return tags
}

// appliancesFrom reads the appliance instruction list, skipping entries that
// are not objects or carry no appliance name.
func appliancesFrom(v any) []Appliance {
	out := []Appliance{}
	items, ok := v.([]any)
	if !ok {
		return out
	}
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		name := optString(pick(m, "applianceName", "appliance_name", "name"))
		if name == nil {
			continue
		}
		out = append(out, Appliance{
			Name:         *name,
			Instructions: stringSlice(m["instructions"]),
		})
	}
	return out
}
