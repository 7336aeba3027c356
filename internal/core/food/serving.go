package food

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// 每單位換算克數
const (
	gramsPerTbsp = 14
	gramsPerTsp  = 5

	// 查無標準份量時的單件預設克數
	defaultServingGrams = 100
)

// ServingTable 標準份量表：小寫食物名稱（含單複數變體）→ 單件克數
// 行程啟動時載入一次，之後唯讀
type ServingTable map[string]float64

// DefaultServingTable 內建的常見食物標準份量
func DefaultServingTable() ServingTable {
	return ServingTable{
		"banana": 120, "bananas": 120,
		"apple": 182, "apples": 182,
		"orange": 131, "oranges": 131,
		"egg": 50, "eggs": 50,
		"slice bread": 28, "bread": 28,
		"chicken breast": 100, "chicken": 100,
		"rice": 100, "white rice": 100, "brown rice": 100,
		"pasta": 100, "spaghetti": 100,
		"ice cream": 66, "vanilla ice cream": 66, "icecream": 66,
		"milk": 240, "water": 240,
		"coffee": 240, "tea": 240,
	}
}

// LoadServingTable 從 JSON 檔載入標準份量表，檔案缺少時回傳內建預設
func LoadServingTable(path string) (ServingTable, error) {
	if path == "" {
		return DefaultServingTable(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultServingTable(), nil
		}
		return nil, fmt.Errorf("failed to read serving table: %w", err)
	}

	var table ServingTable
	if err := json.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("failed to parse serving table: %w", err)
	}
	return table, nil
}

// Lookup 查詢單件克數，會同時嘗試單數與複數鍵
func (t ServingTable) Lookup(name string) (float64, bool) {
	key := strings.ToLower(name)
	if grams, ok := t[key]; ok {
		return grams, true
	}
	// 複數變體
	if grams, ok := t[key+"s"]; ok {
		return grams, true
	}
	if singular := strings.TrimSuffix(key, "s"); singular != key {
		if grams, ok := t[singular]; ok {
			return grams, true
		}
	}
	return 0, false
}

// EstimateServing 將候選提及換算為帶克數的食物提及
func EstimateServing(raw RawMention, table ServingTable) Mention {
	switch raw.Kind {
	case QuantityGrams:
		return Mention{
			Name:         raw.Phrase,
			ServingGrams: raw.Quantity,
			DisplayName:  raw.Phrase,
		}
	case QuantityVolume:
		multiplier := float64(gramsPerTsp)
		if raw.Unit == UnitTbsp {
			multiplier = gramsPerTbsp
		}
		return Mention{
			Name:         raw.Phrase,
			ServingGrams: raw.Quantity * multiplier,
			DisplayName:  fmt.Sprintf("%s (%s)", raw.Phrase, raw.Unit),
		}
	default: // QuantityCount
		perUnit, ok := table.Lookup(raw.Phrase)
		if !ok {
			perUnit = defaultServingGrams
		}
		return Mention{
			Name:         raw.Phrase,
			ServingGrams: raw.Quantity * perUnit,
			DisplayName:  raw.Phrase,
		}
	}
}
