package recipe

import (
	"context"
	"errors"
	"time"

	"smarty-chef/internal/core/spoonacular"
	"smarty-chef/internal/infrastructure/metrics"
	"smarty-chef/internal/pkg/common"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Source 食譜來源，由 spoonacular.Client 實作
type Source interface {
	SearchByIngredients(ctx context.Context, ingredients []string) ([]spoonacular.Candidate, error)
	RecipeInformation(ctx context.Context, id int64) (*spoonacular.Recipe, error)
}

// Service 食譜解析服務，本身不保存跨請求狀態
type Service struct {
	source      Source
	detailLimit int
	metrics     *metrics.Metrics
}

// NewService 創建食譜解析服務；detailLimit 為取得詳情的候選數上限
func NewService(source Source, detailLimit int, m *metrics.Metrics) *Service {
	if detailLimit <= 0 {
		detailLimit = 5
	}
	return &Service{
		source:      source,
		detailLimit: detailLimit,
		metrics:     m,
	}
}

// Resolve 搜尋、取得詳情、正規化並過濾食譜。
// 除了食材為空回傳 ErrInvalidInput 外，所有失敗都降級為一筆備用食譜。
func (s *Service) Resolve(ctx context.Context, q Query) (*Resolution, error) {
	if len(q.Ingredients) == 0 {
		return nil, common.ErrInvalidInput
	}

	start := time.Now()
	res := s.resolve(ctx, q)

	reason := ""
	if res.IsFallback() {
		var ce *common.CustomError
		if errors.As(res.Reason, &ce) {
			reason = ce.Code
		}
	}
	s.metrics.ObserveResolution(res.Source, reason, len(res.Recipes))
	common.LogInfo("食譜解析完成",
		zap.String("api_source", res.Source),
		zap.String("reason", reason),
		zap.Int("total_found", res.TotalFound),
		zap.Int("after_filtering", res.AfterFiltering),
		zap.Duration("duration", time.Since(start)),
	)
	return res, nil
}

func (s *Service) resolve(ctx context.Context, q Query) *Resolution {
	candidates, err := s.source.SearchByIngredients(ctx, q.Ingredients)
	if err != nil {
		common.LogWarn("食譜搜尋失敗，使用備用食譜", zap.Error(err))
		return s.fallback(q, asReason(err, common.ErrSourceUnavailable), 0)
	}
	if len(candidates) == 0 {
		return s.fallback(q, common.ErrNoMatches, 0)
	}
	total := len(candidates)

	recipes := s.fetchDetails(ctx, candidates)
	if len(recipes) == 0 {
		return s.fallback(q, common.ErrDetailFetchFailed, total)
	}

	recipes = FilterByDiet(recipes, q.DietaryPreference)
	recipes = FilterByAllergens(recipes, ParseAllergens(q.Allergies))
	if len(recipes) == 0 {
		return s.fallback(q, common.ErrAllFilteredOut, total)
	}

	return &Resolution{
		Recipes:        recipes,
		Source:         common.APISourceSpoonacular,
		TotalFound:     total,
		AfterFiltering: len(recipes),
	}
}

// fetchDetails 並行取得前 detailLimit 個候選的詳情。
// 每個任務皆回傳 nil，單一失敗不會取消其他任務；結果依候選順序排列。
func (s *Service) fetchDetails(ctx context.Context, candidates []spoonacular.Candidate) []Recipe {
	if len(candidates) > s.detailLimit {
		candidates = candidates[:s.detailLimit]
	}

	slots := make([]*Recipe, len(candidates))
	var g errgroup.Group
	for i, c := range candidates {
		i, c := i, c
		g.Go(func() error {
			raw, err := s.source.RecipeInformation(ctx, c.ID)
			if err != nil {
				common.LogWarn("食譜詳情取得失敗，略過",
					zap.Int64("recipe_id", c.ID),
					zap.Error(err),
				)
				return nil
			}
			r := Normalize(raw)
			slots[i] = &r
			return nil
		})
	}
	_ = g.Wait()

	recipes := make([]Recipe, 0, len(slots))
	for _, r := range slots {
		if r != nil {
			recipes = append(recipes, *r)
		}
	}
	s.metrics.IncDetailFailures(len(slots) - len(recipes))
	return recipes
}

func (s *Service) fallback(q Query, reason error, total int) *Resolution {
	return &Resolution{
		Recipes:    []Recipe{GenerateFallback(q.Ingredients, q.DietaryPreference)},
		Source:     common.APISourceFallback,
		Reason:     reason,
		TotalFound: total,
	}
}

// asReason 確保降級原因帶有對應的錯誤代碼
func asReason(err error, kind *common.CustomError) error {
	if errors.Is(err, kind) {
		return err
	}
	return kind.Wrap(err)
}
