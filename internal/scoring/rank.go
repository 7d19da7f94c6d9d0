package scoring

import "sort"

// Rank сортирует по TotalScore по убыванию, равные остаются в исходном порядке. Вход не меняется.
func Rank(scores []CVScore) []CVScore {
	ranked := make([]CVScore, len(scores))
	copy(ranked, scores)

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].TotalScore > ranked[j].TotalScore
	})
	return ranked
}
