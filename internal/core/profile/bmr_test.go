package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateBMR(t *testing.T) {
	t.Run("男性", func(t *testing.T) {
		// 66.47 + 13.75*70 + 5.003*175 - 6.755*30
		bmr := CalculateBMR("male", 70, 175, 30)
		assert.InDelta(t, 1701.845, bmr, 1e-6)
	})

	t.Run("女性", func(t *testing.T) {
		// 655.1 + 9.563*60 + 1.85*165 - 4.676*25
		bmr := CalculateBMR("female", 60, 165, 25)
		assert.InDelta(t, 1417.23, bmr, 1e-6)
	})

	t.Run("性別大小寫不敏感", func(t *testing.T) {
		assert.Equal(t, CalculateBMR("male", 70, 175, 30), CalculateBMR("Male", 70, 175, 30))
	})

	t.Run("非 male 一律按女性公式", func(t *testing.T) {
		assert.Equal(t, CalculateBMR("female", 60, 165, 25), CalculateBMR("other", 60, 165, 25))
	})
}

func TestCalculateTotalCalories(t *testing.T) {
	tests := []struct {
		level    string
		expected float64
	}{
		{"sedentary", 1200},
		{"light", 1375},
		{"moderate", 1550},
		{"active", 1725},
		{"extra", 1900},
		{"unknown", 1200},
		{"", 1200},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			assert.InDelta(t, tt.expected, CalculateTotalCalories(1000, tt.level), 1e-9)
		})
	}
}

func TestNormalizeActivityLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"sedentary", "sedentary"},
		{"Lightly active", "light"},
		{"moderately active", "moderate"},
		{"very active", "active"},
		{"couch potato", "sedentary"},
		// "extra active" 先命中 "active"，關鍵字走訪順序決定結果
		{"extra active", "active"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeActivityLevel(tt.input))
		})
	}
}
