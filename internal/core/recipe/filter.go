package recipe

import (
	"strings"
)

// NormalizePreference 轉小寫並以空白取代連字號，例如 "Gluten-Free" -> "gluten free"
func NormalizePreference(preference string) string {
	return strings.ReplaceAll(strings.ToLower(preference), "-", " ")
}

// ParseAllergens 解析逗號分隔的過敏原，忽略空白項目
func ParseAllergens(allergies string) []string {
	var allergens []string
	for _, token := range strings.Split(allergies, ",") {
		if token = strings.ToLower(strings.TrimSpace(token)); token != "" {
			allergens = append(allergens, token)
		}
	}
	return allergens
}

// FilterByDiet 保留標籤包含偏好字串的食譜。
// 偏好僅供參考：若會過濾掉全部食譜，則原樣回傳。
func FilterByDiet(recipes []Recipe, preference string) []Recipe {
	if preference == "" || len(recipes) == 0 {
		return recipes
	}

	token := NormalizePreference(preference)
	matched := make([]Recipe, 0, len(recipes))
	for _, r := range recipes {
		if hasLabel(r.DietaryLabels, token) {
			matched = append(matched, r)
		}
	}

	if len(matched) == 0 {
		return recipes
	}
	return matched
}

// FilterByAllergens 移除標題或食材包含任何過敏原的食譜，可能回傳空清單
func FilterByAllergens(recipes []Recipe, allergens []string) []Recipe {
	if len(allergens) == 0 {
		return recipes
	}

	safe := make([]Recipe, 0, len(recipes))
	for _, r := range recipes {
		haystack := strings.ToLower(r.Title + " " + strings.Join(r.Ingredients, " "))
		if !containsAny(haystack, allergens) {
			safe = append(safe, r)
		}
	}
	return safe
}

func hasLabel(labels []string, token string) bool {
	for _, label := range labels {
		if strings.Contains(strings.ToLower(label), token) {
			return true
		}
	}
	return false
}

func containsAny(haystack string, needles []string) bool {
	for _, needle := range needles {
		if strings.Contains(haystack, needle) {
			return true
		}
	}
	return false
}
