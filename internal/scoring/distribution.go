package scoring

import "sort"

// TestKind 区分前测与后测
type TestKind string

const (
	PreTest  TestKind = "pre"
	PostTest TestKind = "post"
)

func (k TestKind) pick(r Record) *SubScore {
	if k == PostTest {
		return r.Post
	}
	return r.Pre
}

// minDistributionSample 少于该人数时不给出分布
const minDistributionSample = 2

// CategoryShare 某一等级的人数与占比
type CategoryShare struct {
	Category Category `json:"category"`
	Count    int      `json:"count"`
	Percent  int      `json:"percent"`
}

// PerformanceDistribution 统计六个等级的人数占比。
// 样本少于两人时所有占比为 0。
func PerformanceDistribution(records []Record, kind TestKind, total int) []CategoryShare {
	counts := make(map[Category]int, len(categoryLabels))
	for _, r := range records {
		counts[Evaluate(kind.pick(r), total).Category]++
	}
	shares := make([]CategoryShare, 0, len(categoryLabels))
	n := len(records)
	for _, c := range Categories() {
		share := CategoryShare{Category: c, Count: counts[c]}
		if n >= minDistributionSample {
			share.Percent = roundInt(float64(counts[c]) / float64(n) * 100)
		}
		shares = append(shares, share)
	}
	return shares
}

// Stars 把总分映射为 0-5 星
func Stars(totalScore, ceiling int) int {
	if ceiling <= 0 {
		return 0
	}
	return roundInt(float64(totalScore) / float64(ceiling) * 5)
}

// OutOfTen 把 20 分制总分折算为 10 分制
func OutOfTen(totalScore int) int {
	return roundInt(float64(totalScore) / 2)
}

// TopPerformers 后测总分从高到低，只包含后测大于 0 的学员
func TopPerformers(records []Record, n int) []Record {
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if r.postTotal() > 0 {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].postTotal() > out[j].postTotal() })
	return limit(out, n)
}

// ForMonitoring 后测总分从低到高，未参加后测按 0 分
func ForMonitoring(records []Record, n int) []Record {
	out := append([]Record(nil), records...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].postTotal() < out[j].postTotal() })
	return limit(out, n)
}

func limit(records []Record, n int) []Record {
	if n >= 0 && len(records) > n {
		return records[:n]
	}
	return records
}
