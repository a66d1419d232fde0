package model

// Classroom 老师名下的班级
// swagger:model Classroom
type Classroom struct {
	BaseModel
	Name      string `gorm:"size:100;not null" json:"name"`
	School    string `gorm:"size:150" json:"school,omitempty"`
	TeacherID uint   `gorm:"index;not null" json:"teacherId"`
}

func (Classroom) TableName() string {
	return "classrooms"
}
