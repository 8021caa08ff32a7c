package spoonacular

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"smarty-chef/internal/core/cache"
	"smarty-chef/internal/infrastructure/config"
	"smarty-chef/internal/infrastructure/metrics"
	"smarty-chef/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const (
	endpointSearch = "findByIngredients"
	endpointDetail = "information"
	endpointRandom = "random"

	// ingredientSeparator findByIngredients 要求的食材分隔符
	ingredientSeparator = ",+"

	quotaHeader = "X-RateLimit-Requests-Remaining"
)

// Client Spoonacular API 客戶端
type Client struct {
	config  config.SpoonacularConfig
	client  *resty.Client
	cache   cache.Store
	metrics *metrics.Metrics
}

// NewClient 創建 Spoonacular 客戶端；store 與 m 可為 nil
func NewClient(cfg config.SpoonacularConfig, store cache.Store, m *metrics.Metrics) *Client {
	client := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout).
		SetHeader("Accept", "application/json").
		SetQueryParam("apiKey", cfg.APIKey).
		SetLogger(restyLogger{secret: cfg.APIKey})

	return &Client{
		config:  cfg,
		client:  client,
		cache:   store,
		metrics: m,
	}
}

// HasAPIKey 是否已設定 API Key
func (c *Client) HasAPIKey() bool {
	return c.config.APIKey != ""
}

// SearchByIngredients 依食材搜尋候選食譜，保留來源排序
func (c *Client) SearchByIngredients(ctx context.Context, ingredients []string) ([]Candidate, error) {
	start := time.Now()
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"ingredients":  strings.Join(ingredients, ingredientSeparator),
			"number":       strconv.Itoa(c.config.SearchNumber),
			"ranking":      strconv.Itoa(c.config.Ranking),
			"ignorePantry": strconv.FormatBool(c.config.IgnorePantry),
		}).
		Get("/recipes/findByIngredients")
	if err != nil {
		err = fmt.Errorf("Spoonacular search failed: %w", c.sanitize(err))
		c.observe(endpointSearch, "error", 0, start, err)
		return nil, common.ErrSourceUnavailable.Wrap(err)
	}
	if !resp.IsSuccess() {
		err = fmt.Errorf("Spoonacular search failed: %s", resp.Status())
		c.observe(endpointSearch, statusOutcome(resp.StatusCode()), resp.StatusCode(), start, err)
		return nil, common.ErrSourceUnavailable.Wrap(err)
	}

	var candidates []Candidate
	if err := common.ParseJSONBytes(resp.Body(), &candidates); err != nil {
		err = fmt.Errorf("Spoonacular search returned invalid JSON: %w", err)
		c.observe(endpointSearch, "decode_error", resp.StatusCode(), start, err)
		return nil, common.ErrSourceUnavailable.Wrap(err)
	}

	c.observe(endpointSearch, "ok", resp.StatusCode(), start, nil)
	common.LogInfo("Spoonacular 搜尋完成",
		zap.Strings("ingredients", ingredients),
		zap.Int("found", len(candidates)),
	)
	return candidates, nil
}

// RecipeInformation 取得單一食譜詳情（不含營養資訊）
func (c *Client) RecipeInformation(ctx context.Context, id int64) (*Recipe, error) {
	key := fmt.Sprintf("spoonacular:recipe:%d", id)
	if c.cache != nil {
		if data, ok := c.cache.Get(ctx, key); ok {
			var recipe Recipe
			if err := common.ParseJSONBytes(data, &recipe); err == nil {
				c.metrics.ObserveCache("hit")
				return &recipe, nil
			}
			common.LogWarn("快取內容無法解析，改為重新取得", zap.String("鍵", key))
		}
		c.metrics.ObserveCache("miss")
	}

	start := time.Now()
	resp, err := c.client.R().
		SetContext(ctx).
		SetPathParam("id", strconv.FormatInt(id, 10)).
		SetQueryParam("includeNutrition", "false").
		Get("/recipes/{id}/information")
	if err != nil {
		err = fmt.Errorf("Spoonacular recipe %d failed: %w", id, c.sanitize(err))
		c.observe(endpointDetail, "error", 0, start, err)
		return nil, common.ErrDetailFetchFailed.Wrap(err)
	}
	if !resp.IsSuccess() {
		err = fmt.Errorf("Spoonacular recipe %d failed: %s", id, resp.Status())
		c.observe(endpointDetail, statusOutcome(resp.StatusCode()), resp.StatusCode(), start, err)
		return nil, common.ErrDetailFetchFailed.Wrap(err)
	}

	var recipe Recipe
	if err := common.ParseJSONBytes(resp.Body(), &recipe); err != nil {
		err = fmt.Errorf("Spoonacular recipe %d returned invalid JSON: %w", id, err)
		c.observe(endpointDetail, "decode_error", resp.StatusCode(), start, err)
		return nil, common.ErrDetailFetchFailed.Wrap(err)
	}
	c.observe(endpointDetail, "ok", resp.StatusCode(), start, nil)

	if c.cache != nil {
		if err := c.cache.Set(ctx, key, resp.Body()); err != nil {
			common.LogWarn("快取寫入失敗", zap.String("鍵", key), zap.Error(err))
		}
	}

	return &recipe, nil
}

// Status 以隨機食譜端點檢查連線與剩餘額度
func (c *Client) Status(ctx context.Context) Status {
	start := time.Now()
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParam("number", "1").
		Get("/recipes/random")
	if err != nil {
		err = c.sanitize(err)
		c.observe(endpointRandom, "error", 0, start, err)
		return Status{Connected: false, Error: err.Error()}
	}

	outcome := "ok"
	if !resp.IsSuccess() {
		outcome = statusOutcome(resp.StatusCode())
	}
	c.observe(endpointRandom, outcome, resp.StatusCode(), start, nil)

	limit := resp.Header().Get(quotaHeader)
	if limit == "" {
		limit = "Unknown"
	}
	return Status{
		Connected:  resp.IsSuccess(),
		StatusCode: resp.StatusCode(),
		DailyLimit: limit,
	}
}

// Close 關閉閒置連線
func (c *Client) Close() error {
	c.client.GetClient().CloseIdleConnections()
	return nil
}

func (c *Client) observe(endpoint, outcome string, status int, start time.Time, err error) {
	duration := time.Since(start)
	c.metrics.ObserveUpstream(endpoint, outcome, duration)
	common.LogUpstreamCall(endpoint, status, duration, err)
}

func statusOutcome(code int) string {
	return "status_" + strconv.Itoa(code)
}

// sanitize 移除錯誤訊息中的請求網址；網址帶有 apiKey 查詢參數
func (c *Client) sanitize(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		path := ""
		if u, perr := url.Parse(urlErr.URL); perr == nil {
			path = u.Path
		}
		return fmt.Errorf("%s %q: %w", urlErr.Op, path, urlErr.Err)
	}
	if c.config.APIKey != "" && strings.Contains(err.Error(), c.config.APIKey) {
		return errors.New(redact(err.Error(), c.config.APIKey))
	}
	return err
}

func redact(s, secret string) string {
	if secret == "" {
		return s
	}
	return strings.ReplaceAll(s, secret, "****")
}

// restyLogger 將 resty 的內部日誌導向 zap，並遮蔽 API Key
type restyLogger struct {
	secret string
}

func (l restyLogger) Errorf(format string, v ...interface{}) {
	common.LogError(redact(fmt.Sprintf(format, v...), l.secret))
}

func (l restyLogger) Warnf(format string, v ...interface{}) {
	common.LogWarn(redact(fmt.Sprintf(format, v...), l.secret))
}

func (l restyLogger) Debugf(format string, v ...interface{}) {
	common.LogDebug(redact(fmt.Sprintf(format, v...), l.secret))
}
