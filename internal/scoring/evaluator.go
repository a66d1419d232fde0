package scoring

import (
	"encoding/json"
	"fmt"
)

// DefaultTestTotal 前测/后测满分（图形规律 10 分 + 数字 10 分）
const DefaultTestTotal = 20

// SubScore 两个测评维度的答对题数
type SubScore struct {
	Pattern int `json:"pattern"`
	Numbers int `json:"numbers"`
}

// Total 返回总分，负数按 0 处理
func (s SubScore) Total() int {
	return nonNegative(s.Pattern) + nonNegative(s.Numbers)
}

// Category 熟练度等级，按顺序递增
type Category int

const (
	NotYetTaken Category = iota
	Intervention
	ForConsolidation
	ForEnhancement
	Proficient
	HighlyProficient
)

var categoryLabels = [...]string{
	NotYetTaken:      "Not Yet Taken",
	Intervention:     "Intervention",
	ForConsolidation: "For Consolidation",
	ForEnhancement:   "For Enhancement",
	Proficient:       "Proficient",
	HighlyProficient: "Highly Proficient",
}

// Categories 按顺序列出全部等级
func Categories() []Category {
	return []Category{NotYetTaken, Intervention, ForConsolidation, ForEnhancement, Proficient, HighlyProficient}
}

func (c Category) String() string {
	if c < NotYetTaken || c > HighlyProficient {
		return "Unknown"
	}
	return categoryLabels[c]
}

func (c Category) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

func (c *Category) UnmarshalJSON(data []byte) error {
	var label string
	if err := json.Unmarshal(data, &label); err != nil {
		return err
	}
	parsed, err := ParseCategory(label)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ParseCategory 根据标签解析等级
func ParseCategory(label string) (Category, error) {
	for i, l := range categoryLabels {
		if l == label {
			return Category(i), nil
		}
	}
	return NotYetTaken, fmt.Errorf("unknown proficiency category %q", label)
}

// CategoryFor 按百分比划分等级，区间左闭右开，100 归入最高档
func CategoryFor(percent float64) Category {
	switch {
	case percent < 25:
		return Intervention
	case percent < 50:
		return ForConsolidation
	case percent < 75:
		return ForEnhancement
	case percent < 85:
		return Proficient
	default:
		return HighlyProficient
	}
}

// Evaluation 单次测验的评估结果
type Evaluation struct {
	TotalScore int      `json:"totalScore"`
	Percent    float64  `json:"percent"`
	Category   Category `json:"category"`
}

// Evaluate 计算总分、百分比与等级。
// 未作答、两项均为 0 或满分为 0 时统一视为 Not Yet Taken。
func Evaluate(score *SubScore, total int) Evaluation {
	if score == nil || total <= 0 {
		return Evaluation{Category: NotYetTaken}
	}
	totalScore := score.Total()
	if totalScore == 0 {
		return Evaluation{Category: NotYetTaken}
	}
	percent := float64(totalScore) / float64(total) * 100
	return Evaluation{
		TotalScore: totalScore,
		Percent:    percent,
		Category:   CategoryFor(percent),
	}
}

func nonNegative(v int) int {
	if v < 0 {
		return 0
	}
	return v
}
