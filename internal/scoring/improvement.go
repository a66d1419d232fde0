package scoring

import (
	"fmt"
	"math"
)

// Improvement 计算前测到后测的提升百分比（四舍五入，远离零）。
// 前测为 0 时：后测大于 0 记为 100，否则为 0。
func Improvement(preTotal, postTotal int) int {
	if preTotal == 0 {
		if postTotal > 0 {
			return 100
		}
		return 0
	}
	return roundInt(float64(postTotal-preTotal) / float64(preTotal) * 100)
}

// FormatImprovement 供展示层使用："+N%"、"-N%" 或 "0%"
func FormatImprovement(p int) string {
	switch {
	case p > 0:
		return fmt.Sprintf("+%d%%", p)
	case p < 0:
		return fmt.Sprintf("-%d%%", -p)
	default:
		return "0%"
	}
}

// math.Round 即为远离零的四舍五入
func roundInt(v float64) int {
	return int(math.Round(v))
}

func roundTo(v float64, places int) float64 {
	pow := math.Pow(10, float64(places))
	return math.Round(v*pow) / pow
}
