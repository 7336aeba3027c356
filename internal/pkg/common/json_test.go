package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuoteJSONKeys(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"未加引號的鍵", `{Calories: 89, Protein: 1.1}`, `{"Calories": 89, "Protein": 1.1}`},
		{"已加引號不變", `{"Calories": 89}`, `{"Calories": 89}`},
		{"字串值不受影響", `{"note": "eat: more"}`, `{"note": "eat: more"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, QuoteJSONKeys(tt.input))
		})
	}
}

func TestExtractJSONObject(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"純物件", `{"a": 1}`, `{"a": 1}`},
		{"前後夾帶文字", `sure: {"a": 1} done`, `{"a": 1}`},
		{"markdown 圍欄", "```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"無物件時原樣回傳", "no json here", "no json here"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExtractJSONObject(tt.input))
		})
	}
}

func TestParseJSONRejectsTrailingData(t *testing.T) {
	var v map[string]interface{}
	assert.Error(t, ParseJSON(`{"a": 1} {"b": 2}`, &v))
	assert.NoError(t, ParseJSON(`{"a": 1}`, &v))
}

func TestParseJSONStrict(t *testing.T) {
	var v struct {
		Name string `json:"name"`
	}
	assert.NoError(t, ParseJSONStrict(`{"name": "x"}`, &v))
	assert.Error(t, ParseJSONStrict(`{"name": "x", "extra": 1}`, &v))
}
