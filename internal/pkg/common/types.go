package common

// Recipe 正規化後的食譜，欄位名稱需與前端約定一致
type Recipe struct {
	Title            string   `json:"title"`
	Description      string   `json:"description"`
	Ingredients      []string `json:"ingredients"`
	Instructions     []string `json:"instructions"`
	Time             string   `json:"time"`
	DietaryLabels    []string `json:"dietary_labels"`
	Category         string   `json:"category"`
	Servings         string   `json:"servings"`
	Image            string   `json:"image"`
	SourceURL        string   `json:"sourceUrl"`
	SpoonacularScore float64  `json:"spoonacularScore"`
	HealthScore      float64  `json:"healthScore"`
}

// GenerateRecipeRequest 依食材產生食譜的請求
type GenerateRecipeRequest struct {
	Ingredients       []string `json:"ingredients"`       // 已選食材
	DietaryPreference string   `json:"dietaryPreference"` // 飲食偏好，如 vegetarian、gluten-free
	Allergies         string   `json:"allergies"`         // 逗號分隔的過敏原
}

// GenerateRecipeResponse 食譜回應，apiSource 區分外部來源或備用食譜
type GenerateRecipeResponse struct {
	Recipes        []Recipe `json:"recipes"`
	APISource      string   `json:"apiSource"`
	TotalFound     *int     `json:"totalFound,omitempty"`
	AfterFiltering *int     `json:"afterFiltering,omitempty"`
	Error          string   `json:"error,omitempty"`
	Message        string   `json:"message,omitempty"`
}

// API 來源
const (
	APISourceSpoonacular = "Spoonacular"
	APISourceFallback    = "Fallback"
)
