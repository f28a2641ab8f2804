package recipe

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSchema(t *testing.T) {
	for in, want := range map[string]Schema{
		"":          SchemaAppliance,
		"appliance": SchemaAppliance,
		"tagged":    SchemaTagged,
	} {
		got, err := ParseSchema(in)
		require.NoError(t, err, "input %q", in)
		assert.Equal(t, want, got)
	}
	_, err := ParseSchema("bogus")
	assert.Error(t, err)
}

func TestView_ApplianceShape(t *testing.T) {
	title := "Chili"
	rec := Empty("https://example.com/chili")
	rec.Title = &title
	rec.Ingredients = []string{"1 lb beef"}
	rec.Directions = []string{"Simmer."}

	b, err := json.Marshal(rec.View(SchemaAppliance))
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(b, &m))
	assert.Equal(t, "Chili", m["recipeName"])
	assert.Contains(t, m, "instructions")
	assert.Contains(t, m, "applianceInstructions")
	assert.NotContains(t, m, "tags")
	assert.NotContains(t, m, "source_url")
}

func TestView_TaggedShape(t *testing.T) {
	rec := Empty("https://example.com/chili")

	b, err := json.Marshal(rec.View(SchemaTagged))
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(b, &m))
	assert.Contains(t, m, "title")
	assert.Contains(t, m, "directions")
	assert.Contains(t, m, "cooking_time")
	assert.Contains(t, m, "servings")
	assert.Equal(t, "https://example.com/chili", m["source_url"])

	tags, ok := m["tags"].(map[string]any)
	require.True(t, ok)
	for _, key := range []string{"cuisine", "main_ingredient", "cooking_method", "meal_type"} {
		assert.Contains(t, tags, key)
	}
}

func TestEmpty_AllSequencesPresent(t *testing.T) {
	rec := Empty("u")
	assert.NotNil(t, rec.Ingredients)
	assert.NotNil(t, rec.Directions)
	assert.NotNil(t, rec.Appliances)
	assert.NotNil(t, rec.Tags.Cuisine)
	assert.NotNil(t, rec.Tags.MainIngredient)
	assert.NotNil(t, rec.Tags.CookingMethod)
	assert.NotNil(t, rec.Tags.MealType)
	assert.Nil(t, rec.Title)
	assert.Equal(t, "u", rec.SourceURL)
}
