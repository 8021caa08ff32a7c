package recipe

import (
	"regexp"
	"strconv"
	"strings"

	"smarty-chef/internal/core/spoonacular"
)

const (
	defaultTitle       = "Delicious Recipe"
	defaultDescription = "A delicious recipe made with your selected ingredients."
	defaultCategory    = "Main Course"

	descriptionLimit = 200
	ellipsis         = "..."
)

var (
	markupPattern    = regexp.MustCompile(`<[^>]*>`)
	lineBreakPattern = regexp.MustCompile(`[\r\n]+`)
)

// Normalize 將 Spoonacular 食譜詳情轉為應用程式的食譜格式。
// 每個欄位都有預設值，因此不會失敗；nil 輸入得到全預設值的食譜。
func Normalize(raw *spoonacular.Recipe) Recipe {
	if raw == nil {
		raw = &spoonacular.Recipe{}
	}

	return Recipe{
		Title:            stringOr(raw.Title, defaultTitle),
		Description:      describe(raw.Summary),
		Ingredients:      ingredientLines(raw.ExtendedIngredients),
		Instructions:     instructionSteps(raw.AnalyzedInstructions, raw.Instructions),
		Time:             readyTime(raw.ReadyInMinutes),
		DietaryLabels:    dietaryLabels(raw),
		Category:         category(raw.DishTypes),
		Servings:         formatNumber(raw.Servings),
		Image:            stringOr(raw.Image, ""),
		SourceURL:        stringOr(raw.SourceURL, ""),
		SpoonacularScore: floatOr(raw.SpoonacularScore),
		HealthScore:      floatOr(raw.HealthScore),
	}
}

// ingredientLines 取每個結構化食材的原文；沒有原文的項目略過
func ingredientLines(items []spoonacular.ExtendedIngredient) []string {
	lines := make([]string, 0, len(items))
	for _, item := range items {
		if item.Original == nil {
			continue
		}
		lines = append(lines, *item.Original)
	}
	return lines
}

// instructionSteps 優先使用第一組結構化步驟，否則以換行切分純文字說明
func instructionSteps(sets []spoonacular.InstructionSet, text *string) []string {
	if len(sets) > 0 {
		steps := make([]string, 0, len(sets[0].Steps))
		for _, step := range sets[0].Steps {
			if step.Step == nil {
				continue
			}
			steps = append(steps, *step.Step)
		}
		return steps
	}

	steps := []string{}
	if text == nil {
		return steps
	}
	for _, line := range lineBreakPattern.Split(*text, -1) {
		if line = strings.TrimSpace(line); line != "" {
			steps = append(steps, line)
		}
	}
	return steps
}

// describe 移除摘要中的標籤，截取前 200 個字元並加上省略號
func describe(summary *string) string {
	if summary == nil || *summary == "" {
		return defaultDescription
	}
	text := []rune(markupPattern.ReplaceAllString(*summary, ""))
	if len(text) > descriptionLimit {
		text = text[:descriptionLimit]
	}
	return string(text) + ellipsis
}

// dietaryLabels 依序為飲食旗標、菜餚類型、料理風格；不去重
func dietaryLabels(raw *spoonacular.Recipe) []string {
	flags := []struct {
		set   *bool
		label string
	}{
		{raw.Vegetarian, "Vegetarian"},
		{raw.Vegan, "Vegan"},
		{raw.GlutenFree, "Gluten-Free"},
		{raw.DairyFree, "Dairy-Free"},
		{raw.VeryHealthy, "Healthy"},
	}

	labels := make([]string, 0, len(flags)+len(raw.DishTypes)+len(raw.Cuisines))
	for _, flag := range flags {
		if flag.set != nil && *flag.set {
			labels = append(labels, flag.label)
		}
	}
	for _, tags := range [][]string{raw.DishTypes, raw.Cuisines} {
		for _, tag := range tags {
			if tag != "" {
				labels = append(labels, tag)
			}
		}
	}
	return labels
}

func category(dishTypes []string) string {
	if len(dishTypes) > 0 && dishTypes[0] != "" {
		return dishTypes[0]
	}
	return defaultCategory
}

func readyTime(minutes *float64) string {
	if s := formatNumber(minutes); s != "" {
		return s + " minutes"
	}
	return ""
}

// formatNumber 0 或缺少時回傳空字串
func formatNumber(v *float64) string {
	if v == nil || *v == 0 {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func stringOr(v *string, fallback string) string {
	if v == nil || *v == "" {
		return fallback
	}
	return *v
}

func floatOr(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
