package common

import (
	"fmt"
	"math"
)

// MacroProfile 巨量營養素組成
// 參考資料表中代表每 100g 的含量，解析結果中代表換算後的絕對值
type MacroProfile struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbohydrates"`
	Fat      float64 `json:"fats"`
}

// Round2 四捨五入到小數點後兩位
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Scale 將每 100g 的營養素換算為指定份量的絕對值
// 恆等式：scaled.Calories == Round2(base.Calories * servingGrams / 100)
func (m MacroProfile) Scale(servingGrams float64) MacroProfile {
	factor := servingGrams / 100
	return MacroProfile{
		Calories: Round2(m.Calories * factor),
		Protein:  Round2(m.Protein * factor),
		Carbs:    Round2(m.Carbs * factor),
		Fat:      Round2(m.Fat * factor),
	}
}

// IsZero 檢查是否為空的營養素組成
func (m MacroProfile) IsZero() bool {
	return m.Calories == 0 && m.Protein == 0 && m.Carbs == 0 && m.Fat == 0
}

// FormatMacros 格式化營養素（用於日誌與回應訊息）
func FormatMacros(m MacroProfile) string {
	return fmt.Sprintf("熱量 %.2f kcal、蛋白質 %.2fg、碳水 %.2fg、脂肪 %.2fg",
		m.Calories, m.Protein, m.Carbs, m.Fat)
}
