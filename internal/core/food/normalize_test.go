package food

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanFoodName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"簡單名稱", "chicken breast", "Chicken Breast"},
		{"移除數字", "100 chicken breast", "Chicken Breast"},
		{"移除小數", "1.5 rice", "Rice"},
		{"移除單位贅字", "100 g of rice", "Rice"},
		{"移除 pieces", "2 pieces of bread", "Bread"},
		{"移除 grams", "50 grams chicken", "Chicken"},
		{"連接詞", "rice and beans with sauce", "Rice Beans Sauce"},
		{"多餘空白", "  olive   oil  ", "Olive Oil"},
		{"全部被清掉", "100 g of the", ""},
		{"空字串", "", ""},
		{"保留其餘大小寫", "BBQ sauce", "BBQ Sauce"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanFoodName(tt.input))
		})
	}
}

func TestCleanFoodNameStopWordsAreWholeWords(t *testing.T) {
	// "grapes" 內含 "g"、"granola" 內含 "gram"，不應被截斷
	assert.Equal(t, "Grapes", CleanFoodName("grapes"))
	assert.Equal(t, "Granola", CleanFoodName("granola"))
	assert.Equal(t, "Graham Crackers", CleanFoodName("graham crackers"))
}
