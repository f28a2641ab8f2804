package recipe

import "fmt"

// Schema selects which of the two historical output shapes a record is
// rendered as. Both carry the same underlying Record.
type Schema string

const (
	// SchemaAppliance is the shape with recipeName/instructions and
	// per-appliance alternative instruction sets.
	SchemaAppliance Schema = "appliance"
	// SchemaTagged is the shape with title/directions, cooking time,
	// servings, and categorical tags.
	SchemaTagged Schema = "tagged"
)

// ParseSchema maps a configuration string to a Schema.
func ParseSchema(s string) (Schema, error) {
	switch Schema(s) {
	case SchemaAppliance, SchemaTagged:
		return Schema(s), nil
	case "":
		return SchemaAppliance, nil
	}
	return "", fmt.Errorf("unknown schema %q (want %q or %q)", s, SchemaAppliance, SchemaTagged)
}

// Tags groups category labels attached to a recipe. All four categories are
// always present; an empty category is an empty slice, never nil.
type Tags struct {
	Cuisine        []string `json:"cuisine"`
	MainIngredient []string `json:"main_ingredient"`
	CookingMethod  []string `json:"cooking_method"`
	MealType       []string `json:"meal_type"`
}

func emptyTags() Tags {
	return Tags{
		Cuisine:        []string{},
		MainIngredient: []string{},
		CookingMethod:  []string{},
		MealType:       []string{},
	}
}

// Appliance holds an alternative instruction set for one specific appliance,
// e.g. a pressure-cooker adaptation of the stovetop directions.
type Appliance struct {
	Name         string   `json:"applianceName"`
	Instructions []string `json:"instructions"`
}

// Record is the normalized result of one extraction call. Ingredients and
// Directions are always non-nil; scalar fields are nil when the page or the
// model did not provide them. A Record has no identity beyond the call that
// produced it and is never mutated after construction.
type Record struct {
	Title       *string
	Ingredients []string
	Directions  []string
	CookingTime *string
	Servings    *string
	Tags        Tags
	Appliances  []Appliance
	SourceURL   string
}

// Empty returns the canonical empty record for sourceURL: every sequence
// present and empty, every scalar nil.
func Empty(sourceURL string) Record {
	return Record{
		Ingredients: []string{},
		Directions:  []string{},
		Tags:        emptyTags(),
		Appliances:  []Appliance{},
		SourceURL:   sourceURL,
	}
}

// applianceView is the SchemaAppliance rendering of a Record.
type applianceView struct {
	RecipeName            *string     `json:"recipeName"`
	Ingredients           []string    `json:"ingredients"`
	Instructions          []string    `json:"instructions"`
	ApplianceInstructions []Appliance `json:"applianceInstructions"`
}

// taggedView is the SchemaTagged rendering of a Record.
type taggedView struct {
	Title       *string  `json:"title"`
	Ingredients []string `json:"ingredients"`
	Directions  []string `json:"directions"`
	CookingTime *string  `json:"cooking_time"`
	Servings    *string  `json:"servings"`
	Tags        Tags     `json:"tags"`
	SourceURL   string   `json:"source_url"`
}

// View returns a marshalable shape of the record for the given schema.
// Pass the result to encoding/json.
func (r Record) View(s Schema) any {
	switch s {
	case SchemaTagged:
		return taggedView{
			Title:       r.Title,
			Ingredients: r.Ingredients,
			Directions:  r.Directions,
			CookingTime: r.CookingTime,
			Servings:    r.Servings,
			Tags:        r.Tags,
			SourceURL:   r.SourceURL,
		}
	default:
		return applianceView{
			RecipeName:            r.Title,
			Ingredients:           r.Ingredients,
			Instructions:          r.Directions,
			ApplianceInstructions: r.Appliances,
		}
	}
}
