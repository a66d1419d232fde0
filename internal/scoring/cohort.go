package scoring

// DefaultPassThreshold 后测总分达到该值视为通过（满分 20）
const DefaultPassThreshold = 7

// Record 聚合时使用的学员视图，Pre/Post 为 nil 表示尚未参加对应测验
type Record struct {
	ID      string
	GroupID string
	Pre     *SubScore
	Post    *SubScore
}

// Eligible 前测与后测都存在且总分均大于 0 时才参与提升率统计
func (r Record) Eligible() bool {
	return r.Pre != nil && r.Post != nil && r.Pre.Total() > 0 && r.Post.Total() > 0
}

// Improvement 该学员的提升百分比，不满足条件时 ok 为 false
func (r Record) Improvement() (int, bool) {
	if !r.Eligible() {
		return 0, false
	}
	return Improvement(r.Pre.Total(), r.Post.Total()), true
}

func (r Record) postTotal() int {
	if r.Post == nil {
		return 0
	}
	return r.Post.Total()
}

// AverageImprovement 合格学员提升率的算术平均，没有合格学员时为 0
func AverageImprovement(records []Record) int {
	sum, n := 0, 0
	for _, r := range records {
		if imp, ok := r.Improvement(); ok {
			sum += imp
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return roundInt(float64(sum) / float64(n))
}

// AveragePreScore 已有前测成绩的平均总分，保留一位小数
func AveragePreScore(records []Record) float64 {
	return roundTo(meanTotal(records, func(r Record) *SubScore { return r.Pre }), 1)
}

// AveragePostScore 已有后测成绩的平均总分，保留一位小数
func AveragePostScore(records []Record) float64 {
	return roundTo(meanTotal(records, func(r Record) *SubScore { return r.Post }), 1)
}

// AveragePreScoreInt 同 AveragePreScore，取整用于内部比较
func AveragePreScoreInt(records []Record) int {
	return roundInt(meanTotal(records, func(r Record) *SubScore { return r.Pre }))
}

// AveragePostScoreInt 同 AveragePostScore，取整用于内部比较
func AveragePostScoreInt(records []Record) int {
	return roundInt(meanTotal(records, func(r Record) *SubScore { return r.Post }))
}

func meanTotal(records []Record, pick func(Record) *SubScore) float64 {
	sum, n := 0, 0
	for _, r := range records {
		if s := pick(r); s != nil {
			sum += s.Total()
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

// PassRate 全部学员中后测总分 >= threshold 的比例（整数百分比）。
// 没有后测成绩的学员按 0 分计入分母。
func PassRate(records []Record, threshold int) int {
	if len(records) == 0 {
		return 0
	}
	passed := 0
	for _, r := range records {
		if r.postTotal() >= threshold {
			passed++
		}
	}
	return roundInt(float64(passed) / float64(len(records)) * 100)
}

// MostImproved 提升率最高的合格学员；并列时保留先出现者
func MostImproved(records []Record) (Record, bool) {
	var (
		best    Record
		bestImp int
		found   bool
	)
	for _, r := range records {
		imp, ok := r.Improvement()
		if !ok {
			continue
		}
		if !found || imp > bestImp {
			best, bestImp, found = r, imp, true
		}
	}
	return best, found
}

// ActiveCount 合格学员数量
func ActiveCount(records []Record) int {
	n := 0
	for _, r := range records {
		if r.Eligible() {
			n++
		}
	}
	return n
}

// CohortSummary 一组学员的汇总数据，不落库
type CohortSummary struct {
	Total              int     `json:"total"`
	Active             int     `json:"active"`
	Inactive           int     `json:"inactive"`
	AverageImprovement int     `json:"averageImprovement"`
	AveragePreScore    float64 `json:"averagePreScore"`
	AveragePostScore   float64 `json:"averagePostScore"`
	PassRate           int     `json:"passRate"`
	MostImprovedID     string  `json:"mostImprovedId,omitempty"`
	MostImprovement    int     `json:"mostImprovement"`
}

// Summarize 一次性计算 CohortSummary
func Summarize(records []Record, passThreshold int) CohortSummary {
	active := ActiveCount(records)
	summary := CohortSummary{
		Total:              len(records),
		Active:             active,
		Inactive:           len(records) - active,
		AverageImprovement: AverageImprovement(records),
		AveragePreScore:    AveragePreScore(records),
		AveragePostScore:   AveragePostScore(records),
		PassRate:           PassRate(records, passThreshold),
	}
	if best, ok := MostImproved(records); ok {
		summary.MostImprovedID = best.ID
		summary.MostImprovement, _ = best.Improvement()
	}
	return summary
}
