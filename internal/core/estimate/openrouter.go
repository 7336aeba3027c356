package estimate

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"nutrition-tracker/internal/core/estimate/cache"
	"nutrition-tracker/internal/infrastructure/config"
	"nutrition-tracker/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// OpenRouterService 以 OpenRouter 模型估算營養素
// 回傳的營養素已按請求的份量換算為絕對值
type OpenRouterService struct {
	config *config.Config
	client *resty.Client
	cache  cache.Store
}

// NewOpenRouterService 創建估算服務；cacheStore 可為 nil（不使用快取）
func NewOpenRouterService(cfg *config.Config, cacheStore cache.Store) *OpenRouterService {
	client := resty.New().
		SetBaseURL("https://openrouter.ai/api/v1").
		SetTimeout(cfg.OpenRouter.Timeout).
		SetHeader("Authorization", fmt.Sprintf("Bearer %s", cfg.OpenRouter.APIKey)).
		SetHeader("HTTP-Referer", "https://nutrition-tracker.com").
		SetHeader("X-Title", "Nutrition Tracker")

	return &OpenRouterService{
		config: cfg,
		client: client,
		cache:  cacheStore,
	}
}

// Estimate 估算指定食物與份量的營養素
// 模型回應缺欄位、非數值或傳輸失敗都視為同一種失敗，由呼叫端決定後續
func (s *OpenRouterService) Estimate(ctx context.Context, name string, servingGrams float64) (common.MacroProfile, error) {
	cacheKey := fmt.Sprintf("%s:%.1f", strings.ToLower(name), servingGrams)

	// 檢查快取
	if s.cache != nil {
		if val, err := s.cache.Get(ctx, cacheKey); err == nil && val != "" {
			var macros common.MacroProfile
			if err := common.ParseJSON(val, &macros); err == nil {
				return macros, nil
			}
		}
	}

	prompt := fmt.Sprintf(`Return only JSON with keys: Calories, Protein, Carbohydrates, Fats.
Food: %s
Serving Size: %.0fg`, name, servingGrams)

	// 構建請求
	req := map[string]interface{}{
		"model": s.config.OpenRouter.Model,
		"messages": []map[string]interface{}{
			{
				"role":    "user",
				"content": prompt,
			},
		},
		"max_tokens": s.config.OpenRouter.MaxTokens,
	}

	// 發送請求
	start := time.Now()
	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(req).
		Post("/chat/completions")
	common.LogEstimateCall(name, servingGrams, time.Since(start), err)

	if err != nil {
		return common.MacroProfile{}, fmt.Errorf("failed to send request to OpenRouter: %w", err)
	}

	if resp.StatusCode() != http.StatusOK {
		return common.MacroProfile{}, fmt.Errorf("OpenRouter API returned error: %s", resp.String())
	}

	// 解析回應
	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}

	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return common.MacroProfile{}, fmt.Errorf("failed to parse OpenRouter response: %w", err)
	}

	if len(result.Choices) == 0 {
		return common.MacroProfile{}, fmt.Errorf("no choices in OpenRouter response")
	}

	macros, err := parseMacros(result.Choices[0].Message.Content)
	if err != nil {
		common.LogError("估算回應格式錯誤",
			zap.String("食物", name),
			zap.Error(err),
		)
		return common.MacroProfile{}, err
	}

	// 寫入快取；失敗不影響本次結果
	if s.cache != nil {
		if data, err := common.ToJSON(macros); err == nil {
			_ = s.cache.Set(ctx, cacheKey, data)
		}
	}

	return macros, nil
}

// parseMacros 從模型回應內容取出營養素
// 四個欄位缺一不可，且不得為負值
func parseMacros(content string) (common.MacroProfile, error) {
	raw := common.QuoteJSONKeys(common.ExtractJSONObject(content))

	var out struct {
		Calories *float64 `json:"calories"`
		Protein  *float64 `json:"protein"`
		Carbs    *float64 `json:"carbohydrates"`
		Fat      *float64 `json:"fats"`
	}
	if err := common.ParseJSON(raw, &out); err != nil {
		return common.MacroProfile{}, fmt.Errorf("invalid macro JSON: %w", err)
	}

	if out.Calories == nil || out.Protein == nil || out.Carbs == nil || out.Fat == nil {
		return common.MacroProfile{}, fmt.Errorf("missing macro fields in response")
	}
	if *out.Calories < 0 || *out.Protein < 0 || *out.Carbs < 0 || *out.Fat < 0 {
		return common.MacroProfile{}, fmt.Errorf("negative macro value in response")
	}

	return common.MacroProfile{
		Calories: *out.Calories,
		Protein:  *out.Protein,
		Carbs:    *out.Carbs,
		Fat:      *out.Fat,
	}, nil
}
