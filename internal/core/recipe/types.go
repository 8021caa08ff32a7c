package recipe

import (
	"errors"

	"smarty-chef/internal/pkg/common"
)

// Recipe 正規化後的食譜
type Recipe = common.Recipe

// Query 一次食譜解析的輸入
type Query struct {
	Ingredients       []string
	DietaryPreference string
	Allergies         string // 逗號分隔
}

// Resolution 解析結果。Reason 為 nil 表示來自外部來源；
// 否則 Recipes 只有一筆備用食譜，Reason 說明降級原因。
type Resolution struct {
	Recipes        []Recipe
	Source         string
	Reason         error
	TotalFound     int
	AfterFiltering int
}

// IsFallback 是否為備用食譜
func (r *Resolution) IsFallback() bool {
	return r.Source == common.APISourceFallback
}

// Response 轉換為 API 回應格式
func (r *Resolution) Response() common.GenerateRecipeResponse {
	resp := common.GenerateRecipeResponse{
		Recipes:   r.Recipes,
		APISource: r.Source,
	}

	if !r.IsFallback() {
		resp.TotalFound = common.IntPtr(r.TotalFound)
		resp.AfterFiltering = common.IntPtr(r.AfterFiltering)
		return resp
	}

	var ce *common.CustomError
	if !errors.As(r.Reason, &ce) {
		if r.Reason != nil {
			resp.Error = r.Reason.Error()
		}
		return resp
	}

	resp.Message = ce.Message
	switch ce.Code {
	case common.ErrCodeSourceUnavailable:
		resp.Error = ce.Error()
	case common.ErrCodeDetailFetchFailed:
		resp.TotalFound = common.IntPtr(r.TotalFound)
	case common.ErrCodeAllFilteredOut:
		resp.TotalFound = common.IntPtr(r.TotalFound)
		resp.AfterFiltering = common.IntPtr(r.AfterFiltering)
	}
	return resp
}
