package scoring

import "sort"

// 家庭月收入区间，数值越大资源越充足
var incomeLevels = map[string]int{
	"₱10,000 and below": 1,
	"₱10,001–15,000":    2,
	"₱15,001–20,000":    3,
	"₱20,001–25,000":    4,
	"₱25,001 and above": 5,
}

// IncomeBrackets 按等级顺序返回所有收入区间
func IncomeBrackets() []string {
	out := make([]string, len(incomeLevels))
	for label, level := range incomeLevels {
		out[level-1] = label
	}
	return out
}

// IncomeLevel 未知区间按最低档处理
func IncomeLevel(bracket string) int {
	if lvl, ok := incomeLevels[bracket]; ok {
		return lvl
	}
	return 1
}

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

func (p Priority) rank() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	default:
		return 1
	}
}

// Recommendation 推荐的家庭任务
type Recommendation struct {
	Task
	Priority Priority `json:"priority"`
	Category string   `json:"category"`
}

// Recommend 根据前测两项得分与家庭收入生成家庭任务，高优先级在前。
// 任务依次分配到第 (i%8)+1 周、第 1 季度。
func Recommend(pattern, numbers int, incomeBracket string) []Recommendation {
	pattern, numbers = nonNegative(pattern), nonNegative(numbers)
	recs := make([]Recommendation, 0, 5)
	add := func(title, details string, p Priority, category string) {
		recs = append(recs, Recommendation{
			Task:     Task{Title: title, Details: details, Status: TaskNotDone},
			Priority: p,
			Category: category,
		})
	}

	switch {
	case pattern < 5:
		add("Basic Pattern Recognition", "Practice identifying simple patterns in sequences. Start with basic shapes and colors.", PriorityHigh, "pattern")
	case pattern < 8:
		add("Intermediate Pattern Practice", "Work on more complex patterns and sequences. Include number patterns.", PriorityMedium, "pattern")
	default:
		add("Advanced Pattern Challenges", "Tackle complex pattern recognition and prediction exercises.", PriorityLow, "pattern")
	}

	switch {
	case numbers < 5:
		add("Basic Number Operations", "Practice basic addition and subtraction with visual aids.", PriorityHigh, "numbers")
	case numbers < 8:
		add("Intermediate Number Work", "Practice mental math and quick calculations.", PriorityMedium, "numbers")
	default:
		add("Advanced Number Challenges", "Complex problem-solving with numbers and word problems.", PriorityLow, "numbers")
	}

	if IncomeLevel(incomeBracket) >= 4 {
		add("Technology-Enhanced Learning", "Use educational apps and online resources for interactive learning.", PriorityMedium, "technology")
	} else {
		add("Low-Cost Learning Activities", "Use household items and free resources for hands-on learning.", PriorityHigh, "practical")
	}

	if diff := pattern - numbers; diff > 3 || diff < -3 {
		add("Balanced Skill Development", "Focus on the weaker area while maintaining strength in the stronger area.", PriorityHigh, "mixed")
	}
	if pattern+numbers < 8 {
		add("Foundation Building", "Build basic mathematical concepts and confidence through simple activities.", PriorityHigh, "remedial")
	}

	sort.SliceStable(recs, func(i, j int) bool { return recs[i].Priority.rank() > recs[j].Priority.rank() })
	for i := range recs {
		recs[i].Week = i%DefaultWeekCount + 1
		recs[i].Quarter = 1
	}
	return recs
}
