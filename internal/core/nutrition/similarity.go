package nutrition

// Similarity 計算兩字串的相似度，範圍 0~1
// 演算法：找出所有最長共同片段後，matched*2 / (len(a)+len(b))
// 與 Python difflib 的 ratio 相同，讓 0.85 門檻保持原本的語意
func Similarity(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	total := len(ra) + len(rb)
	if total == 0 {
		return 1
	}
	matched := totalMatching(ra, rb, 0, len(ra), 0, len(rb))
	return 2 * float64(matched) / float64(total)
}

// totalMatching 遞迴統計共同片段的總長度：
// 先找最長共同片段，再分別處理其左右兩側
func totalMatching(a, b []rune, alo, ahi, blo, bhi int) int {
	i, j, size := longestMatch(a, b, alo, ahi, blo, bhi)
	if size == 0 {
		return 0
	}
	return size +
		totalMatching(a, b, alo, i, blo, j) +
		totalMatching(a, b, i+size, ahi, j+size, bhi)
}

// longestMatch 在 a[alo:ahi] 與 b[blo:bhi] 中找最長共同片段
// 回傳片段在 a、b 中的起點與長度
func longestMatch(a, b []rune, alo, ahi, blo, bhi int) (int, int, int) {
	// b 中每個字元的出現位置
	b2j := make(map[rune][]int)
	for j := blo; j < bhi; j++ {
		b2j[b[j]] = append(b2j[b[j]], j)
	}

	besti, bestj, bestsize := alo, blo, 0
	// j2len[j]：以 b[j] 結尾、同時以 a 目前位置結尾的共同片段長度
	j2len := make(map[int]int)
	for i := alo; i < ahi; i++ {
		newj2len := make(map[int]int)
		for _, j := range b2j[a[i]] {
			k := j2len[j-1] + 1
			newj2len[j] = k
			if k > bestsize {
				besti, bestj, bestsize = i-k+1, j-k+1, k
			}
		}
		j2len = newj2len
	}

	return besti, bestj, bestsize
}
