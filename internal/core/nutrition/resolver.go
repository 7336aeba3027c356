package nutrition

import (
	"context"
	"errors"
	"fmt"

	"nutrition-tracker/internal/core/food"
	"nutrition-tracker/internal/pkg/common"

	"go.uber.org/zap"
)

// Source 營養素的解析來源
type Source string

const (
	SourceReference Source = "reference" // 參考資料表命中
	SourceEstimated Source = "estimated" // 估算服務
)

// FailureReason 單一食物解析失敗的原因
type FailureReason string

const (
	// ReasonEstimateUnavailable 估算服務無法使用（傳輸、逾時或回應格式錯誤）
	ReasonEstimateUnavailable FailureReason = "estimation_service_unavailable"
	// ReasonPersistenceFailed 寫入營養日誌失敗；由呼叫端在持久化階段改判
	ReasonPersistenceFailed FailureReason = "persistence_failed"
)

// ErrNoUsableMention 整段文字擷取不到任何可用的食物提及
var ErrNoUsableMention = errors.New("no usable food mention found")

// ResolvedItem 解析成功的食物與其絕對營養素
type ResolvedItem struct {
	Mention food.Mention        `json:"mention"`
	Macros  common.MacroProfile `json:"macros"`
	Source  Source              `json:"source"`
}

// ResolutionFailure 解析失敗的食物與原因
type ResolutionFailure struct {
	Mention food.Mention  `json:"mention"`
	Reason  FailureReason `json:"reason"`
}

// Estimator 外部營養估算服務
// 回傳的營養素已按指定份量換算為絕對值；任何異常一律以 error 表示
type Estimator interface {
	Estimate(ctx context.Context, name string, servingGrams float64) (common.MacroProfile, error)
}

// Pipeline 食物文字解析管線
// 兩張資料表載入後唯讀，多個請求可併行共用，無需加鎖
type Pipeline struct {
	reference Table
	servings  food.ServingTable
	estimator Estimator
	threshold float64
}

// NewPipeline 創建解析管線
func NewPipeline(reference Table, servings food.ServingTable, estimator Estimator, threshold float64) *Pipeline {
	return &Pipeline{
		reference: reference,
		servings:  servings,
		estimator: estimator,
		threshold: threshold,
	}
}

// ExtractAndResolve 解析自由文字並逐一換算營養素
// 兩個輸出切片都維持文字中的首次出現順序
// 單一食物失敗不會中斷整批；只有完全擷取不到提及時回傳 ErrNoUsableMention
func (p *Pipeline) ExtractAndResolve(ctx context.Context, text string) ([]ResolvedItem, []ResolutionFailure, error) {
	mentions := p.ExtractMentions(text)
	if len(mentions) == 0 {
		return nil, nil, ErrNoUsableMention
	}

	var resolved []ResolvedItem
	var failures []ResolutionFailure

	for _, mention := range mentions {
		item, err := p.Resolve(ctx, mention)
		if err != nil {
			// 估算失敗是此處唯一的失敗來源；不重試，單次失敗即定案
			common.LogWarn("食物解析失敗",
				zap.String("食物", mention.Name),
				zap.Float64("份量", mention.ServingGrams),
				zap.Error(err),
			)
			failures = append(failures, ResolutionFailure{
				Mention: mention,
				Reason:  ReasonEstimateUnavailable,
			})
			continue
		}
		resolved = append(resolved, item)
	}

	return resolved, failures, nil
}

// ExtractMentions 擷取、換算份量並去重，不做營養素解析
func (p *Pipeline) ExtractMentions(text string) []food.Mention {
	raws := food.Extract(text)

	mentions := make([]food.Mention, 0, len(raws))
	for _, raw := range raws {
		mention := food.EstimateServing(raw, p.servings)
		// 份量必為正值；"0 bananas" 之類的提及直接丟棄
		if mention.ServingGrams <= 0 {
			continue
		}
		mentions = append(mentions, mention)
	}

	return food.Deduplicate(mentions)
}

// Resolve 解析單一食物提及：先查參考資料表，未命中再呼叫估算服務
// 資料表命中時按份量線性換算每 100g 的營養素並四捨五入到兩位
func (p *Pipeline) Resolve(ctx context.Context, mention food.Mention) (ResolvedItem, error) {
	if key, ok := p.reference.Match(mention.Name, p.threshold); ok {
		common.LogDebug("參考資料表命中",
			zap.String("食物", mention.Name),
			zap.String("比對結果", key),
		)
		return ResolvedItem{
			Mention: mention,
			Macros:  p.reference[key].Scale(mention.ServingGrams),
			Source:  SourceReference,
		}, nil
	}

	macros, err := p.estimator.Estimate(ctx, mention.Name, mention.ServingGrams)
	if err != nil {
		return ResolvedItem{}, fmt.Errorf("estimate %q: %w", mention.Name, err)
	}

	return ResolvedItem{
		Mention: mention,
		Macros:  macros,
		Source:  SourceEstimated,
	}, nil
}
