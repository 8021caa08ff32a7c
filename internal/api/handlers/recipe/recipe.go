package recipe

import (
	"context"
	"errors"
	"net/http"
	"strings"

	recipeService "smarty-chef/internal/core/recipe"
	"smarty-chef/internal/pkg/common"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Resolver 食譜解析服務
type Resolver interface {
	Resolve(ctx context.Context, q recipeService.Query) (*recipeService.Resolution, error)
}

// Handler 食譜處理器
type Handler struct {
	resolver Resolver
}

// NewHandler 創建食譜處理器
func NewHandler(resolver Resolver) *Handler {
	return &Handler{resolver: resolver}
}

// HandleGenerateRecipe 依食材、飲食偏好與過敏原產生食譜。
// 外部來源失敗時仍回應 200，由 apiSource 與 message 區分。
func (h *Handler) HandleGenerateRecipe(c *gin.Context) {
	reqID := requestid.Get(c)
	if reqID == "" {
		reqID = common.GenerateUUID()
	}

	var req common.GenerateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.LogWarn("食譜請求格式錯誤",
			zap.String("request_id", reqID),
			zap.Error(err),
		)
		rejectInput(c)
		return
	}

	ingredients := cleanIngredients(req.Ingredients)
	if len(ingredients) == 0 {
		rejectInput(c)
		return
	}

	common.LogInfo("收到食譜請求",
		zap.String("request_id", reqID),
		zap.Strings("ingredients", ingredients),
		zap.String("dietary_preference", req.DietaryPreference),
		zap.String("allergies", req.Allergies),
	)

	res, err := h.resolver.Resolve(c.Request.Context(), recipeService.Query{
		Ingredients:       ingredients,
		DietaryPreference: req.DietaryPreference,
		Allergies:         req.Allergies,
	})
	if err != nil {
		if errors.Is(err, common.ErrInvalidInput) {
			rejectInput(c)
			return
		}
		common.LogError("食譜解析失敗",
			zap.String("request_id", reqID),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   common.ErrInternalError.Message,
			"code":    common.ErrInternalError.Code,
			"recipes": []common.Recipe{},
		})
		return
	}

	c.JSON(http.StatusOK, res.Response())
}

// cleanIngredients 移除空白項目，其餘保持原樣與順序
func cleanIngredients(in []string) []string {
	out := make([]string, 0, len(in))
	for _, ing := range in {
		if strings.TrimSpace(ing) != "" {
			out = append(out, ing)
		}
	}
	return out
}

func rejectInput(c *gin.Context) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error":   common.ErrInvalidInput.Message,
		"recipes": []common.Recipe{},
	})
}
