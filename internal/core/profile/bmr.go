package profile

import "strings"

// 活動係數
var activityFactors = map[string]float64{
	"sedentary": 1.2,
	"light":     1.375,
	"moderate":  1.55,
	"active":    1.725,
	"extra":     1.9,
}

// CalculateBMR 以 Harris-Benedict 公式計算基礎代謝率
// 體重單位 kg、身高單位 cm
func CalculateBMR(gender string, weightKg, heightCm float64, age int) float64 {
	if strings.EqualFold(gender, "male") {
		return 66.47 + (13.75 * weightKg) + (5.003 * heightCm) - (6.755 * float64(age))
	}
	return 655.1 + (9.563 * weightKg) + (1.85 * heightCm) - (4.676 * float64(age))
}

// CalculateTotalCalories 以活動係數換算每日總熱量需求
// 未知的活動程度按久坐計
func CalculateTotalCalories(bmr float64, activityLevel string) float64 {
	factor, ok := activityFactors[strings.ToLower(activityLevel)]
	if !ok {
		factor = 1.2
	}
	return bmr * factor
}

// NormalizeActivityLevel 從使用者輸入中找出活動程度關鍵字
func NormalizeActivityLevel(input string) string {
	lowered := strings.ToLower(input)
	for _, level := range []string{"sedentary", "light", "moderate", "active", "extra"} {
		if strings.Contains(lowered, level) {
			return level
		}
	}
	return "sedentary"
}
