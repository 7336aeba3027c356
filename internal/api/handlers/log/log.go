package log

import (
	"errors"
	"net/http"
	"time"

	"nutrition-tracker/internal/core/food"
	"nutrition-tracker/internal/core/nutrition"
	"nutrition-tracker/internal/pkg/common"
	"nutrition-tracker/internal/storage"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler 營養日誌處理器
type Handler struct {
	pipeline *nutrition.Pipeline
	store    *storage.SQLiteStore
}

// NewHandler 創建營養日誌處理器
func NewHandler(pipeline *nutrition.Pipeline, store *storage.SQLiteStore) *Handler {
	return &Handler{
		pipeline: pipeline,
		store:    store,
	}
}

// TextLogRequest 自由文字記錄請求
// text: 例如 "2 bananas 100g chicken breast 2 tbsp oil"
type TextLogRequest struct {
	Text string `json:"text" binding:"required"`
}

// LoggedItem 成功記錄的食物
type LoggedItem struct {
	Name         string              `json:"name"`         // 去重與比對用的名稱
	DisplayName  string              `json:"display_name"` // 含單位註記的顯示名稱
	ServingGrams float64             `json:"serving_grams"`
	Macros       common.MacroProfile `json:"macros"`
	Source       nutrition.Source    `json:"source"`
}

// FailedItem 失敗的食物與原因
type FailedItem struct {
	Name   string                  `json:"name"`
	Reason nutrition.FailureReason `json:"reason"`
}

// TextLogResponse 自由文字記錄回應
// 成功與失敗分列；total_calories 只統計成功寫入的部分
type TextLogResponse struct {
	Items         []LoggedItem `json:"items"`
	Failures      []FailedItem `json:"failures"`
	TotalCalories float64      `json:"total_calories"`
}

// HandleTextLog 處理 /log/text 自由文字記錄 API
func (h *Handler) HandleTextLog(c *gin.Context) {
	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = common.GenerateUUID()
		c.Header("X-Request-ID", requestID)
	}

	var req TextLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.LogError("請求格式無效",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	common.LogInfo("開始處理自由文字記錄",
		zap.String("request_id", requestID),
		zap.Int("text_length", len(req.Text)),
	)

	resolved, failures, err := h.pipeline.ExtractAndResolve(c.Request.Context(), req.Text)
	if err != nil {
		if errors.Is(err, nutrition.ErrNoUsableMention) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Couldn't identify any food items. Try: '2 bananas 100g chicken'",
				"code":  "NO_FOOD_RECOGNIZED",
			})
			return
		}
		common.LogError("文字解析失敗",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process text"})
		return
	}

	response := TextLogResponse{
		Items:    make([]LoggedItem, 0, len(resolved)),
		Failures: make([]FailedItem, 0, len(failures)),
	}

	// 逐筆寫入營養日誌；寫入失敗者改列為 persistence_failed
	for _, item := range resolved {
		if err := h.recordItem(c, item); err != nil {
			common.LogError("寫入營養日誌失敗",
				zap.Error(err),
				zap.String("request_id", requestID),
				zap.String("食物", item.Mention.Name),
			)
			response.Failures = append(response.Failures, FailedItem{
				Name:   item.Mention.DisplayName,
				Reason: nutrition.ReasonPersistenceFailed,
			})
			continue
		}
		response.Items = append(response.Items, LoggedItem{
			Name:         item.Mention.Name,
			DisplayName:  item.Mention.DisplayName,
			ServingGrams: item.Mention.ServingGrams,
			Macros:       item.Macros,
			Source:       item.Source,
		})
		response.TotalCalories += item.Macros.Calories
	}
	response.TotalCalories = common.Round2(response.TotalCalories)

	for _, failure := range failures {
		response.Failures = append(response.Failures, FailedItem{
			Name:   failure.Mention.DisplayName,
			Reason: failure.Reason,
		})
	}

	common.LogInfo("自由文字記錄完成",
		zap.String("request_id", requestID),
		zap.Int("成功", len(response.Items)),
		zap.Int("失敗", len(response.Failures)),
		zap.Float64("總熱量", response.TotalCalories),
	)

	c.JSON(http.StatusOK, response)
}

// FoodLogRequest 單一食物記錄請求（名稱 + 克數）
type FoodLogRequest struct {
	Name         string  `json:"name" binding:"required"`
	ServingGrams float64 `json:"serving_grams" binding:"required,gt=0"`
}

// FoodLogResponse 單一食物記錄回應
type FoodLogResponse struct {
	Name         string              `json:"name"`
	ServingGrams float64             `json:"serving_grams"`
	Macros       common.MacroProfile `json:"macros"`
	Source       nutrition.Source    `json:"source"`
}

// HandleFoodLog 處理 /log/food 單一食物記錄 API
func (h *Handler) HandleFoodLog(c *gin.Context) {
	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = common.GenerateUUID()
		c.Header("X-Request-ID", requestID)
	}

	var req FoodLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.LogError("請求格式無效",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	// 清理食物名稱
	name := food.CleanFoodName(req.Name)
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Food name is empty after cleanup",
			"code":  "NO_FOOD_RECOGNIZED",
		})
		return
	}

	mention := food.Mention{
		Name:         name,
		ServingGrams: req.ServingGrams,
		DisplayName:  name,
	}

	item, err := h.pipeline.Resolve(c.Request.Context(), mention)
	if err != nil {
		common.LogError("食物解析失敗",
			zap.Error(err),
			zap.String("request_id", requestID),
			zap.String("食物", name),
		)
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "Could not find nutrition data for this food",
			"code":  "ESTIMATE_SERVICE_ERROR",
		})
		return
	}

	if err := h.recordItem(c, item); err != nil {
		common.LogError("寫入營養日誌失敗",
			zap.Error(err),
			zap.String("request_id", requestID),
			zap.String("食物", name),
		)
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "Failed to record entry",
			"code":  "PERSISTENCE_ERROR",
		})
		return
	}

	common.LogInfo("食物記錄完成",
		zap.String("request_id", requestID),
		zap.String("食物", name),
		zap.Float64("份量", item.Mention.ServingGrams),
		zap.String("來源", string(item.Source)),
	)

	c.JSON(http.StatusOK, FoodLogResponse{
		Name:         item.Mention.DisplayName,
		ServingGrams: item.Mention.ServingGrams,
		Macros:       item.Macros,
		Source:       item.Source,
	})
}

// TodaySummaryResponse 今日彙總回應
type TodaySummaryResponse struct {
	Entries         int     `json:"entries"`
	TotalCalories   float64 `json:"total_calories"`
	AverageCalories float64 `json:"average_calories"`
	TotalProtein    float64 `json:"total_protein"`
	TotalCarbs      float64 `json:"total_carbohydrates"`
	TotalFat        float64 `json:"total_fats"`
}

// HandleTodaySummary 處理 /log/today 今日彙總 API
func (h *Handler) HandleTodaySummary(c *gin.Context) {
	summary, err := h.store.TodaySummary(c.Request.Context())
	if err != nil {
		common.LogError("查詢今日彙總失敗",
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch today's summary"})
		return
	}

	response := TodaySummaryResponse{
		Entries:       summary.Entries,
		TotalCalories: common.Round2(summary.TotalCalories),
		TotalProtein:  common.Round2(summary.TotalProtein),
		TotalCarbs:    common.Round2(summary.TotalCarbs),
		TotalFat:      common.Round2(summary.TotalFat),
	}
	if summary.Entries > 0 {
		response.AverageCalories = common.Round2(summary.TotalCalories / float64(summary.Entries))
	}

	c.JSON(http.StatusOK, response)
}

// recordItem 寫入一筆營養日誌
func (h *Handler) recordItem(c *gin.Context, item nutrition.ResolvedItem) error {
	return h.store.Record(c.Request.Context(), storage.Entry{
		ID:           common.GenerateUUID(),
		Name:         item.Mention.DisplayName,
		ServingGrams: item.Mention.ServingGrams,
		Macros:       item.Macros,
		Source:       string(item.Source),
		LoggedAt:     time.Now(),
	})
}
