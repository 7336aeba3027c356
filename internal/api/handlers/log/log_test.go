package log

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nutrition-tracker/internal/core/food"
	"nutrition-tracker/internal/core/nutrition"
	"nutrition-tracker/internal/pkg/common"
	"nutrition-tracker/internal/storage"
)

type estimatorFunc func(ctx context.Context, name string, servingGrams float64) (common.MacroProfile, error)

func (f estimatorFunc) Estimate(ctx context.Context, name string, servingGrams float64) (common.MacroProfile, error) {
	return f(ctx, name, servingGrams)
}

func newTestHandler(t *testing.T, estimator nutrition.Estimator) *Handler {
	t.Helper()

	reference := nutrition.Table{
		"chicken breast": {Calories: 165, Protein: 31, Carbs: 0, Fat: 3.6},
		"banana":         {Calories: 89, Protein: 1.1, Carbs: 22.8, Fat: 0.3},
	}
	pipeline := nutrition.NewPipeline(reference, food.DefaultServingTable(), estimator, 0.85)

	store, err := storage.NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return NewHandler(pipeline, store)
}

func failingEstimator() nutrition.Estimator {
	return estimatorFunc(func(ctx context.Context, name string, servingGrams float64) (common.MacroProfile, error) {
		return common.MacroProfile{}, errors.New("service unavailable")
	})
}

func performJSON(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func newTestRouter(h *Handler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/log/text", h.HandleTextLog)
	router.POST("/log/food", h.HandleFoodLog)
	router.GET("/log/today", h.HandleTodaySummary)
	router.POST("/bmr", HandleBMR)
	return router
}

func TestHandleTextLog(t *testing.T) {
	h := newTestHandler(t, failingEstimator())
	router := newTestRouter(h)

	w := performJSON(router, http.MethodPost, "/log/text", `{"text": "2 bananas 100g chicken breast"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp TextLogResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	require.Len(t, resp.Items, 2)
	assert.Empty(t, resp.Failures)

	// 維持文字中的首見順序：克數規則在前
	assert.Equal(t, "Chicken Breast", resp.Items[0].Name)
	assert.Equal(t, 100.0, resp.Items[0].ServingGrams)
	assert.Equal(t, nutrition.SourceReference, resp.Items[0].Source)
	assert.Equal(t, "Bananas", resp.Items[1].Name)
	assert.Equal(t, 240.0, resp.Items[1].ServingGrams)

	// 165 + 89*2.4
	assert.InDelta(t, 378.6, resp.TotalCalories, 1e-6)
}

func TestHandleTextLogPartialFailure(t *testing.T) {
	h := newTestHandler(t, failingEstimator())
	router := newTestRouter(h)

	// durian 不在參考表，估算又故障，列入 failures 但不影響其他食物
	w := performJSON(router, http.MethodPost, "/log/text", `{"text": "100g chicken breast 1 durian"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp TextLogResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	require.Len(t, resp.Items, 1)
	assert.Equal(t, "Chicken Breast", resp.Items[0].Name)

	require.Len(t, resp.Failures, 1)
	assert.Equal(t, "Durian", resp.Failures[0].Name)
	assert.Equal(t, nutrition.ReasonEstimateUnavailable, resp.Failures[0].Reason)

	// 總熱量只統計成功的部分
	assert.InDelta(t, 165, resp.TotalCalories, 1e-6)
}

func TestHandleTextLogNoFoodRecognized(t *testing.T) {
	h := newTestHandler(t, failingEstimator())
	router := newTestRouter(h)

	w := performJSON(router, http.MethodPost, "/log/text", `{"text": "hello how are you"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "NO_FOOD_RECOGNIZED", resp["code"])
	assert.Contains(t, resp["error"], "2 bananas 100g chicken")
}

func TestHandleTextLogInvalidBody(t *testing.T) {
	h := newTestHandler(t, failingEstimator())
	router := newTestRouter(h)

	assert.Equal(t, http.StatusBadRequest, performJSON(router, http.MethodPost, "/log/text", `{}`).Code)
	assert.Equal(t, http.StatusBadRequest, performJSON(router, http.MethodPost, "/log/text", `not json`).Code)
}

func TestHandleFoodLog(t *testing.T) {
	h := newTestHandler(t, failingEstimator())
	router := newTestRouter(h)

	w := performJSON(router, http.MethodPost, "/log/food", `{"name": "chicken breast", "serving_grams": 150}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp FoodLogResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Chicken Breast", resp.Name)
	assert.Equal(t, 150.0, resp.ServingGrams)
	assert.InDelta(t, 247.5, resp.Macros.Calories, 1e-6)
	assert.Equal(t, nutrition.SourceReference, resp.Source)
}

func TestHandleFoodLogEstimateUnavailable(t *testing.T) {
	h := newTestHandler(t, failingEstimator())
	router := newTestRouter(h)

	w := performJSON(router, http.MethodPost, "/log/food", `{"name": "durian", "serving_grams": 100}`)
	require.Equal(t, http.StatusServiceUnavailable, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ESTIMATE_SERVICE_ERROR", resp["code"])
}

func TestHandleTodaySummary(t *testing.T) {
	h := newTestHandler(t, failingEstimator())
	router := newTestRouter(h)

	w := performJSON(router, http.MethodPost, "/log/text", `{"text": "2 bananas 100g chicken breast"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/log/today", nil)
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp TodaySummaryResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Entries)
	assert.InDelta(t, 378.6, resp.TotalCalories, 1e-6)
	assert.InDelta(t, 189.3, resp.AverageCalories, 1e-6)
}

func TestHandleBMR(t *testing.T) {
	h := newTestHandler(t, failingEstimator())
	router := newTestRouter(h)

	w := performJSON(router, http.MethodPost, "/bmr",
		`{"age": 30, "gender": "male", "weight_kg": 70, "height_cm": 175, "activity": "moderately active"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp BMRResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.InDelta(t, 1701.85, resp.BMR, 0.01)
	assert.Equal(t, "moderate", resp.ActivityLevel)
	assert.InDelta(t, 2637.86, resp.TotalDailyCalories, 0.01)
}

func TestHandleBMRInvalid(t *testing.T) {
	h := newTestHandler(t, failingEstimator())
	router := newTestRouter(h)

	assert.Equal(t, http.StatusBadRequest, performJSON(router, http.MethodPost, "/bmr", `{"age": -1}`).Code)
}
