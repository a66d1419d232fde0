package model

import (
	"mathtatag_backend/internal/scoring"
)

// HomeTask 家长在家陪孩子完成的任务，按周、季度排布
// swagger:model HomeTask
type HomeTask struct {
	BaseModel
	GuardianID uint               `gorm:"index;not null" json:"guardianId"`
	LearnerID  string             `gorm:"size:36;index" json:"learnerId"`
	Position   int                `gorm:"default:0" json:"position"`
	Title      string             `gorm:"size:255;not null" json:"title"`
	Details    string             `gorm:"type:text" json:"details"`
	Objective  string             `gorm:"type:text" json:"objective"`
	Status     scoring.TaskStatus `gorm:"type:enum('notdone','ongoing','done');default:'notdone'" json:"status"`
	PreRating  *int               `json:"preRating"`
	PostRating *int               `json:"postRating"`
	Week       int                `gorm:"default:1" json:"week"`
	Quarter    int                `gorm:"default:1" json:"quarter"`
	Priority   string             `gorm:"size:10" json:"priority,omitempty"`
	Category   string             `gorm:"size:30" json:"category,omitempty"`
}

func (HomeTask) TableName() string {
	return "home_tasks"
}

// ScoringTask 转换为计分层视图
func (t *HomeTask) ScoringTask() scoring.Task {
	return scoring.Task{
		Title:      t.Title,
		Details:    t.Details,
		Objective:  t.Objective,
		Status:     t.Status,
		PreRating:  t.PreRating,
		PostRating: t.PostRating,
		Week:       t.Week,
		Quarter:    t.Quarter,
	}
}

// Apply 用计分层结果覆盖任务内容（整条替换）
func (t *HomeTask) Apply(st scoring.Task) {
	t.Title = st.Title
	t.Details = st.Details
	t.Objective = st.Objective
	t.Status = st.Status
	t.PreRating = st.PreRating
	t.PostRating = st.PostRating
	t.Week = st.Week
	t.Quarter = st.Quarter
}

// ApplyContent 只覆盖内容与排期，状态和评分保持不变
func (t *HomeTask) ApplyContent(st scoring.Task) {
	t.Title = st.Title
	t.Details = st.Details
	t.Objective = st.Objective
	t.Week = st.Week
	t.Quarter = st.Quarter
}

func ScoringTasks(tasks []*HomeTask) []scoring.Task {
	out := make([]scoring.Task, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.ScoringTask())
	}
	return out
}
