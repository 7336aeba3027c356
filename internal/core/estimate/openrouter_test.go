package estimate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nutrition-tracker/internal/pkg/common"
)

func TestParseMacros(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected common.MacroProfile
	}{
		{
			"標準回應",
			`{"Calories": 89, "Protein": 1.1, "Carbohydrates": 22.8, "Fats": 0.3}`,
			common.MacroProfile{Calories: 89, Protein: 1.1, Carbs: 22.8, Fat: 0.3},
		},
		{
			"鍵未加引號",
			`{Calories: 89, Protein: 1.1, Carbohydrates: 22.8, Fats: 0.3}`,
			common.MacroProfile{Calories: 89, Protein: 1.1, Carbs: 22.8, Fat: 0.3},
		},
		{
			"小寫鍵",
			`{"calories": 52, "protein": 0.3, "carbohydrates": 13.8, "fats": 0.2}`,
			common.MacroProfile{Calories: 52, Protein: 0.3, Carbs: 13.8, Fat: 0.2},
		},
		{
			"JSON 前後夾帶說明文字",
			"Here is the nutrition data:\n{\"Calories\": 100, \"Protein\": 5, \"Carbohydrates\": 10, \"Fats\": 2}\nHope this helps!",
			common.MacroProfile{Calories: 100, Protein: 5, Carbs: 10, Fat: 2},
		},
		{
			"markdown 圍欄",
			"```json\n{\"Calories\": 100, \"Protein\": 5, \"Carbohydrates\": 10, \"Fats\": 2}\n```",
			common.MacroProfile{Calories: 100, Protein: 5, Carbs: 10, Fat: 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			macros, err := parseMacros(tt.content)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, macros)
		})
	}
}

func TestParseMacrosInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"缺少欄位", `{"Calories": 89, "Protein": 1.1, "Carbohydrates": 22.8}`},
		{"負值", `{"Calories": -5, "Protein": 1, "Carbohydrates": 1, "Fats": 1}`},
		{"非數值", `{"Calories": "a lot", "Protein": 1, "Carbohydrates": 1, "Fats": 1}`},
		{"非 JSON", "I cannot estimate that food."},
		{"空字串", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseMacros(tt.content)
			assert.Error(t, err)
		})
	}
}
