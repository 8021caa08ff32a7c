package recipe

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePreference(t *testing.T) {
	assert.Equal(t, "gluten free", NormalizePreference("Gluten-Free"))
	assert.Equal(t, "low fat high protein", NormalizePreference("low-fat-high-protein"))
	assert.Equal(t, "", NormalizePreference(""))
}

func TestParseAllergens(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"   ", nil},
		{"Peanut", []string{"peanut"}},
		{" Peanut , SHELLFISH,soy ", []string{"peanut", "shellfish", "soy"}},
		{"milk,,egg,", []string{"milk", "egg"}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseAllergens(tt.in), tt.in)
	}
}

func TestFilterByDiet(t *testing.T) {
	recipes := []Recipe{
		{Title: "A", DietaryLabels: []string{"Vegan", "Gluten-Free"}},
		{Title: "B", DietaryLabels: []string{"Vegetarian"}},
		{Title: "C", DietaryLabels: []string{"gluten free bread"}},
	}

	t.Run("no preference", func(t *testing.T) {
		assert.Equal(t, recipes, FilterByDiet(recipes, ""))
	})

	t.Run("substring match", func(t *testing.T) {
		got := FilterByDiet(recipes, "vegetarian")
		assert.Equal(t, []Recipe{recipes[1]}, got)
	})

	t.Run("hyphen becomes space", func(t *testing.T) {
		got := FilterByDiet(recipes, "Gluten-Free")
		assert.Equal(t, []Recipe{recipes[2]}, got)
	})

	t.Run("advisory when nothing matches", func(t *testing.T) {
		pair := []Recipe{
			{DietaryLabels: []string{"Vegan"}},
			{DietaryLabels: []string{"Keto"}},
		}
		assert.Equal(t, pair, FilterByDiet(pair, "vegetarian"))
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, FilterByDiet(nil, "vegan"))
	})
}

func TestFilterByAllergens(t *testing.T) {
	recipes := []Recipe{
		{Title: "Peanut Soup", Ingredients: []string{"peanuts"}},
		{Title: "Shrimp Pasta", Ingredients: []string{"200g SHRIMP", "pasta"}},
		{Title: "Garden Salad", Ingredients: []string{"lettuce"}},
	}

	assert.Equal(t, recipes, FilterByAllergens(recipes, nil))
	assert.Equal(t, []Recipe{recipes[2]}, FilterByAllergens(recipes, []string{"peanut", "shrimp"}))
	assert.Empty(t, FilterByAllergens(recipes[:1], ParseAllergens("peanut")))
}

func TestFilterByAllergensMatchesAcrossTitleAndIngredients(t *testing.T) {
	recipes := []Recipe{{Title: "Salad", Ingredients: []string{"lettuce"}}}

	assert.Empty(t, FilterByAllergens(recipes, []string{"salad lettuce"}))
}
