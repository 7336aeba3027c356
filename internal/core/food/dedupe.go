package food

import "unicode/utf8"

// 短於 2 個字元的名稱視為雜訊
const minNameLength = 2

// Deduplicate 以正規化名稱收斂重複的提及，保留首次出現者
// 後出現的同名提及直接捨棄，份量不做合併或加總
func Deduplicate(mentions []Mention) []Mention {
	seen := make(map[string]struct{}, len(mentions))
	var distinct []Mention

	for _, m := range mentions {
		if utf8.RuneCountInString(m.Name) < minNameLength {
			continue
		}
		if _, ok := seen[m.Name]; ok {
			continue
		}
		seen[m.Name] = struct{}{}
		distinct = append(distinct, m)
	}

	return distinct
}
