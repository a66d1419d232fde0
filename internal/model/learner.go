package model

import (
	"strconv"
	"time"

	"mathtatag_backend/internal/scoring"
)

// Learner 学员；PreScore/PostScore 为空表示尚未参加对应测验，各自只写入一次
// swagger:model Learner
type Learner struct {
	UUIDBase
	Nickname    string            `gorm:"size:100;not null" json:"nickname"`
	ClassroomID uint              `gorm:"index;not null" json:"classroomId"`
	GuardianID  *uint             `gorm:"index" json:"guardianId,omitempty"`
	PreScore    *scoring.SubScore `gorm:"serializer:json;type:json" json:"preScore,omitempty"`
	PostScore   *scoring.SubScore `gorm:"serializer:json;type:json" json:"postScore,omitempty"`
	PreTakenAt  *time.Time        `json:"preTakenAt,omitempty"`
	PostTakenAt *time.Time        `json:"postTakenAt,omitempty"`
}

func (Learner) TableName() string {
	return "learners"
}

// Record 转换为计分层视图，GroupID 为班级 ID
func (l *Learner) Record() scoring.Record {
	return scoring.Record{
		ID:      l.ID,
		GroupID: strconv.FormatUint(uint64(l.ClassroomID), 10),
		Pre:     l.PreScore,
		Post:    l.PostScore,
	}
}

// Records 批量转换；groupOf 非空时用它覆盖分组
func Records(learners []*Learner, groupOf func(*Learner) string) []scoring.Record {
	out := make([]scoring.Record, 0, len(learners))
	for _, l := range learners {
		r := l.Record()
		if groupOf != nil {
			r.GroupID = groupOf(l)
		}
		out = append(out, r)
	}
	return out
}
