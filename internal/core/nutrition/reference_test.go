package nutrition

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nutrition-tracker/internal/pkg/common"
)

func testTable() Table {
	return Table{
		"chicken breast": {Calories: 165, Protein: 31, Carbs: 0, Fat: 3.6},
		"banana":         {Calories: 89, Protein: 1.1, Carbs: 22.8, Fat: 0.3},
		"white rice":     {Calories: 130, Protein: 2.7, Carbs: 28.2, Fat: 0.3},
	}
}

func TestTableMatch(t *testing.T) {
	table := testTable()

	t.Run("精確命中", func(t *testing.T) {
		key, ok := table.Match("Chicken Breast", 0.85)
		require.True(t, ok)
		assert.Equal(t, "chicken breast", key)
	})

	t.Run("近似命中", func(t *testing.T) {
		key, ok := table.Match("Bananas", 0.85)
		require.True(t, ok)
		assert.Equal(t, "banana", key)
	})

	t.Run("低於門檻", func(t *testing.T) {
		_, ok := table.Match("Tofu", 0.85)
		assert.False(t, ok)
	})

	t.Run("空表", func(t *testing.T) {
		_, ok := Table{}.Match("Banana", 0.85)
		assert.False(t, ok)
	})
}

// 門檻是含等號的下界：相似度恰為 0.85 時須命中
func TestTableMatchThresholdInclusive(t *testing.T) {
	table := Table{
		"abcdefghijklmnopqxyz": {Calories: 1},
	}
	key, ok := table.Match("abcdefghijklmnopqrst", 0.85)
	require.True(t, ok)
	assert.Equal(t, "abcdefghijklmnopqxyz", key)

	_, ok = table.Match("abcdefghijklmnopqrst", 0.86)
	assert.False(t, ok)
}

// 同分時取字典序較小的鍵，結果與 map 走訪順序無關
func TestTableMatchDeterministicTieBreak(t *testing.T) {
	table := Table{
		"abd": {Calories: 2},
		"abc": {Calories: 1},
	}
	for i := 0; i < 20; i++ {
		key, ok := table.Match("ab", 0.8)
		require.True(t, ok)
		assert.Equal(t, "abc", key)
	}
}

func TestLoadTable(t *testing.T) {
	t.Run("檔案不存在時回傳空表", func(t *testing.T) {
		table, err := LoadTable(filepath.Join(t.TempDir(), "missing.json"))
		require.NoError(t, err)
		require.NotNil(t, table)
		assert.Empty(t, table)
	})

	t.Run("正常載入", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "foods.json")
		content := `{"banana": {"calories": 89, "protein": 1.1, "carbohydrates": 22.8, "fats": 0.3}}`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		table, err := LoadTable(path)
		require.NoError(t, err)
		require.Len(t, table, 1)
		assert.Equal(t, common.MacroProfile{Calories: 89, Protein: 1.1, Carbs: 22.8, Fat: 0.3}, table["banana"])
	})

	t.Run("格式錯誤回傳錯誤", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, os.WriteFile(path, []byte(`[1,2,3]`), 0o644))

		_, err := LoadTable(path)
		assert.Error(t, err)
	})
}
