package nutrition

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"nutrition-tracker/internal/pkg/common"

	"go.uber.org/zap"
)

// Table 參考食物資料表：食物名稱 → 每 100g 營養素
// 行程啟動時載入一次，之後唯讀；更新檔案需重啟
type Table map[string]common.MacroProfile

// LoadTable 從 JSON 檔載入參考資料表
// 檔案不存在時回傳空表；此時所有食物都會走估算服務，不視為錯誤
func LoadTable(path string) (Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			common.LogWarn("參考食物資料表不存在，將全部改用估算服務",
				zap.String("path", path),
			)
			return Table{}, nil
		}
		return nil, fmt.Errorf("failed to read reference table: %w", err)
	}

	var table Table
	if err := json.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("failed to parse reference table: %w", err)
	}

	common.LogInfo("參考食物資料表已載入",
		zap.String("path", path),
		zap.Int("entries", len(table)),
	)
	return table, nil
}

// Match 以模糊比對找出資料表中最接近的食物名稱
// 只回傳相似度達門檻的單一最佳結果
// 以排序後的鍵做走訪，同分時取字典序較小者，保證結果可重現
func (t Table) Match(name string, threshold float64) (string, bool) {
	target := strings.ToLower(name)

	keys := make([]string, 0, len(t))
	for key := range t {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var bestKey string
	bestScore := -1.0
	for _, key := range keys {
		score := Similarity(target, strings.ToLower(key))
		if score > bestScore {
			bestKey, bestScore = key, score
		}
	}

	if bestScore >= threshold && bestKey != "" {
		return bestKey, true
	}
	return "", false
}
