package log

import (
	"net/http"

	"nutrition-tracker/internal/core/profile"
	"nutrition-tracker/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BMRRequest 基礎代謝率計算請求
type BMRRequest struct {
	Age      int     `json:"age" binding:"required,gt=0"`
	Gender   string  `json:"gender" binding:"required"`
	WeightKg float64 `json:"weight_kg" binding:"required,gt=0"`
	HeightCm float64 `json:"height_cm" binding:"required,gt=0"`
	Activity string  `json:"activity"`
}

// BMRResponse 基礎代謝率計算回應
type BMRResponse struct {
	BMR                float64 `json:"bmr"`
	ActivityLevel      string  `json:"activity_level"`
	TotalDailyCalories float64 `json:"total_daily_calories"`
}

// HandleBMR 處理 /bmr 計算 API
func HandleBMR(c *gin.Context) {
	var req BMRRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.LogError("請求格式無效",
			zap.Error(err),
		)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	activityLevel := profile.NormalizeActivityLevel(req.Activity)
	bmr := profile.CalculateBMR(req.Gender, req.WeightKg, req.HeightCm, req.Age)
	total := profile.CalculateTotalCalories(bmr, activityLevel)

	common.LogInfo("BMR 計算完成",
		zap.Int("age", req.Age),
		zap.String("activity", activityLevel),
		zap.Float64("bmr", bmr),
	)

	c.JSON(http.StatusOK, BMRResponse{
		BMR:                common.Round2(bmr),
		ActivityLevel:      activityLevel,
		TotalDailyCalories: common.Round2(total),
	})
}
