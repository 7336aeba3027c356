package food

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	numberPattern     = regexp.MustCompile(`\d+\.?\d*\s*`)
	stopWordPattern   = regexp.MustCompile(`(?i)\b(pieces|piece|g|grams|gram|of|the|and|with)\b`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// CleanFoodName 清理食物名稱：移除數字、單位與贅字，並將每個字首字母大寫
// 若清理後沒有剩餘字詞則回傳空字串
func CleanFoodName(name string) string {
	cleaned := numberPattern.ReplaceAllString(name, "")
	cleaned = stopWordPattern.ReplaceAllString(cleaned, "")
	cleaned = strings.TrimSpace(whitespacePattern.ReplaceAllString(cleaned, " "))
	if cleaned == "" {
		return ""
	}

	words := strings.Split(cleaned, " ")
	for i, word := range words {
		words[i] = capitalize(word)
	}
	return strings.Join(words, " ")
}

// capitalize 首字母大寫，其餘字母保持原樣
func capitalize(word string) string {
	runes := []rune(word)
	if len(runes) == 0 {
		return word
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
