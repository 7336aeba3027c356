package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRound2(t *testing.T) {
	tests := []struct {
		input    float64
		expected float64
	}{
		{1.005, 1.0}, // 1.005 的二進位表示略小於 1.005
		{1.015, 1.01},
		{2.675, 2.67},
		{247.5, 247.5},
		{0, 0},
		{-1.555, -1.55}, // -1.555 × 100 略大於 -155.5
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, Round2(tt.input), "Round2(%v)", tt.input)
	}
}

func TestMacroProfileScale(t *testing.T) {
	per100g := MacroProfile{Calories: 165, Protein: 31, Carbs: 0, Fat: 3.6}

	t.Run("等量", func(t *testing.T) {
		assert.Equal(t, per100g, per100g.Scale(100))
	})

	t.Run("放大", func(t *testing.T) {
		scaled := per100g.Scale(150)
		assert.Equal(t, MacroProfile{Calories: 247.5, Protein: 46.5, Carbs: 0, Fat: 5.4}, scaled)
	})

	t.Run("縮小", func(t *testing.T) {
		scaled := per100g.Scale(50)
		assert.Equal(t, MacroProfile{Calories: 82.5, Protein: 15.5, Carbs: 0, Fat: 1.8}, scaled)
	})

	t.Run("零份量", func(t *testing.T) {
		assert.True(t, per100g.Scale(0).IsZero())
	})
}

func TestMacroProfileJSONTags(t *testing.T) {
	data := `{"calories": 89, "protein": 1.1, "carbohydrates": 22.8, "fats": 0.3}`
	var m MacroProfile
	require.NoError(t, ParseJSON(data, &m))
	assert.Equal(t, MacroProfile{Calories: 89, Protein: 1.1, Carbs: 22.8, Fat: 0.3}, m)
}
