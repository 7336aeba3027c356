package food

import (
	"regexp"
	"strconv"
	"strings"
)

// 三組規則互相獨立，各自掃描完整文字，重疊的擷取交由去重階段收斂。
// 不在正則層做互斥；這是刻意保留的行為，請勿改成嚴格的優先序文法。
var (
	// "100g chicken breast"
	gramPattern = regexp.MustCompile(`(\d+)\s*g\s*([a-zA-Z][a-zA-Z\s]*)`)
	// "2 bananas"
	countPattern = regexp.MustCompile(`(\d+)\s+([a-zA-Z][a-zA-Z\s]*)`)
	// "2 tbsp olive oil"
	unitPattern = regexp.MustCompile(`(\d+)\s*(tbsp|tsp|tablespoon|teaspoon)\s+([a-zA-Z\s]+)`)
)

// Extract 從自由文字擷取候選食物提及
// 輸出順序固定為：克數規則、數量規則、容量規則；規則內依出現位置排序
func Extract(text string) []RawMention {
	lowered := strings.ToLower(text)
	var mentions []RawMention

	for _, match := range gramPattern.FindAllStringSubmatch(lowered, -1) {
		grams, err := strconv.ParseFloat(match[1], 64)
		if err != nil {
			continue
		}
		name := CleanFoodName(match[2])
		if name == "" {
			continue
		}
		mentions = append(mentions, RawMention{
			Phrase:   name,
			Quantity: grams,
			Kind:     QuantityGrams,
		})
	}

	for _, match := range countPattern.FindAllStringSubmatch(lowered, -1) {
		quantity, err := strconv.ParseFloat(match[1], 64)
		if err != nil {
			continue
		}
		name := CleanFoodName(match[2])
		if name == "" {
			continue
		}
		mentions = append(mentions, RawMention{
			Phrase:   name,
			Quantity: quantity,
			Kind:     QuantityCount,
		})
	}

	for _, match := range unitPattern.FindAllStringSubmatch(lowered, -1) {
		quantity, err := strconv.ParseFloat(match[1], 64)
		if err != nil {
			continue
		}
		name := CleanFoodName(match[3])
		if name == "" {
			continue
		}
		mentions = append(mentions, RawMention{
			Phrase:   name,
			Quantity: quantity,
			Kind:     QuantityVolume,
			Unit:     shortVolumeUnit(match[2]),
		})
	}

	return mentions
}

// shortVolumeUnit 長寫單位一律轉為縮寫
func shortVolumeUnit(unit string) VolumeUnit {
	switch unit {
	case "tbsp", "tablespoon":
		return UnitTbsp
	default:
		return UnitTsp
	}
}
