package recipe

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	// placeholderIngredient 沒有任何食材時使用的名詞
	placeholderIngredient = "ingredients"

	// indianPreference 唯一會加上料理風格前綴的偏好值
	indianPreference = "indian"
	indianPrefix     = "Indian-Style "

	fallbackTime     = "25-30 minutes"
	fallbackServings = "2-4"
	fallbackLabel    = "Homemade"
)

var pantryStaples = []string{
	"Salt and pepper to taste",
	"2 tbsp cooking oil",
	"Fresh herbs (optional)",
	"Spices as needed",
}

// GenerateFallback 只依使用者的食材與偏好產生備用食譜。
// 相同輸入必定得到相同輸出，且食材為空時仍會產生結果。
func GenerateFallback(ingredients []string, preference string) Recipe {
	main := placeholderIngredient
	if len(ingredients) > 0 && ingredients[0] != "" {
		main = ingredients[0]
	}

	prefix := ""
	if preference == indianPreference {
		prefix = indianPrefix
	}

	featured := ingredients
	if len(featured) > 3 {
		featured = featured[:3]
	}
	featuring := strings.Join(featured, ", ")
	if featuring == "" {
		featuring = placeholderIngredient
	}

	lines := make([]string, 0, len(ingredients)+len(pantryStaples))
	for _, ing := range ingredients {
		lines = append(lines, "1-2 portions "+ing)
	}
	lines = append(lines, pantryStaples...)

	labels := []string{fallbackLabel}
	if preference != "" {
		labels = []string{preference}
	}

	return Recipe{
		Title:            fmt.Sprintf("%s%s Delight", prefix, capitalize(main)),
		Description:      fmt.Sprintf("A delicious homemade %sdish featuring %s and more fresh ingredients.", strings.ToLower(prefix), featuring),
		Ingredients:      lines,
		Instructions:     fallbackInstructions(ingredients, main, preference),
		Time:             fallbackTime,
		DietaryLabels:    labels,
		Category:         defaultCategory,
		Servings:         fallbackServings,
		Image:            "",
		SourceURL:        "",
		SpoonacularScore: 0,
		HealthScore:      0,
	}
}

func fallbackInstructions(ingredients []string, main, preference string) []string {
	combine := "Continue cooking for 5-7 minutes"
	if len(ingredients) > 1 {
		combine = fmt.Sprintf("Add %s and cook for 5-7 minutes", strings.Join(ingredients[1:], ", "))
	}

	spices := "Add herbs and spices to taste"
	if preference == indianPreference {
		spices = "Add Indian spices like turmeric, cumin, or garam masala"
	}

	return []string{
		"Wash and prepare all your fresh ingredients",
		"Heat oil in a large pan or pot over medium heat",
		fmt.Sprintf("Add %s and cook until lightly golden", main),
		combine,
		"Season with salt, pepper, and your favorite spices",
		spices,
		"Cook until all ingredients are tender and well combined",
		"Taste and adjust seasoning as needed",
		"Serve hot and enjoy your homemade creation!",
	}
}

// capitalize 只將第一個字元轉為大寫，其餘保持原樣
func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return cases.Upper(language.English).String(string(r)) + s[size:]
}
