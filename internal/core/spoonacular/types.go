package spoonacular

// Candidate findByIngredients 回傳的輕量候選食譜
type Candidate struct {
	ID                    int64   `json:"id"`
	Title                 string  `json:"title"`
	Image                 string  `json:"image"`
	UsedIngredientCount   int     `json:"usedIngredientCount"`
	MissedIngredientCount int     `json:"missedIngredientCount"`
	Likes                 float64 `json:"likes"`
}

// Recipe /recipes/{id}/information 的回應。
// 外部資料的每個欄位都可能缺少或為 null，因此一律使用指標或可為 nil 的切片。
type Recipe struct {
	ID                   *int64               `json:"id"`
	Title                *string              `json:"title"`
	Summary              *string              `json:"summary"`
	ExtendedIngredients  []ExtendedIngredient `json:"extendedIngredients"`
	AnalyzedInstructions []InstructionSet     `json:"analyzedInstructions"`
	Instructions         *string              `json:"instructions"`
	ReadyInMinutes       *float64             `json:"readyInMinutes"`
	Servings             *float64             `json:"servings"`
	Vegetarian           *bool                `json:"vegetarian"`
	Vegan                *bool                `json:"vegan"`
	GlutenFree           *bool                `json:"glutenFree"`
	DairyFree            *bool                `json:"dairyFree"`
	VeryHealthy          *bool                `json:"veryHealthy"`
	DishTypes            []string             `json:"dishTypes"`
	Cuisines             []string             `json:"cuisines"`
	Image                *string              `json:"image"`
	SourceURL            *string              `json:"sourceUrl"`
	SpoonacularScore     *float64             `json:"spoonacularScore"`
	HealthScore          *float64             `json:"healthScore"`
}

// ExtendedIngredient 結構化食材，original 為完整原文（含份量）
type ExtendedIngredient struct {
	ID       *int64   `json:"id"`
	Name     *string  `json:"name"`
	Original *string  `json:"original"`
	Amount   *float64 `json:"amount"`
	Unit     *string  `json:"unit"`
}

// InstructionSet 結構化步驟組
type InstructionSet struct {
	Name  *string           `json:"name"`
	Steps []InstructionStep `json:"steps"`
}

// InstructionStep 單一步驟
type InstructionStep struct {
	Number *int    `json:"number"`
	Step   *string `json:"step"`
}

// Status 外部 API 連線檢查結果
type Status struct {
	Connected  bool   `json:"connected"`
	StatusCode int    `json:"statusCode,omitempty"`
	DailyLimit string `json:"dailyLimit,omitempty"`
	Error      string `json:"error,omitempty"`
}
