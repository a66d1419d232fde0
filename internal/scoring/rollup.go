package scoring

// GroupStat 单个分组（通常是某位老师名下的所有班级）的统计
type GroupStat struct {
	GroupID            string `json:"groupId"`
	Learners           int    `json:"learners"`
	Active             int    `json:"active"`
	AverageImprovement int    `json:"averageImprovement"`
}

// HasActive 分组内至少有一名合格学员
func (g GroupStat) HasActive() bool {
	return g.Active > 0
}

// GroupRollup 管理端的分组汇总
type GroupRollup struct {
	Groups             []GroupStat `json:"groups"`
	ActiveGroups       int         `json:"activeGroups"`
	InactiveGroups     int         `json:"inactiveGroups"`
	AverageImprovement int         `json:"averageImprovement"`
	MostImprovedGroup  string      `json:"mostImprovedGroup,omitempty"`
}

// RollupByGroup 按 groupIDs 顺序汇总记录；未出现在记录中的分组也会列出。
// 整体平均只统计有合格学员的分组。
func RollupByGroup(groupIDs []string, records []Record) GroupRollup {
	byGroup := make(map[string][]Record, len(groupIDs))
	for _, r := range records {
		byGroup[r.GroupID] = append(byGroup[r.GroupID], r)
	}

	rollup := GroupRollup{Groups: make([]GroupStat, 0, len(groupIDs))}
	sum := 0
	var best *GroupStat
	for _, id := range groupIDs {
		rs := byGroup[id]
		stat := GroupStat{
			GroupID:            id,
			Learners:           len(rs),
			Active:             ActiveCount(rs),
			AverageImprovement: AverageImprovement(rs),
		}
		rollup.Groups = append(rollup.Groups, stat)
		if !stat.HasActive() {
			rollup.InactiveGroups++
			continue
		}
		rollup.ActiveGroups++
		sum += stat.AverageImprovement
		if best == nil || stat.AverageImprovement > best.AverageImprovement {
			s := stat
			best = &s
		}
	}
	if rollup.ActiveGroups > 0 {
		rollup.AverageImprovement = roundInt(float64(sum) / float64(rollup.ActiveGroups))
	}
	if best != nil {
		rollup.MostImprovedGroup = best.GroupID
	}
	return rollup
}
