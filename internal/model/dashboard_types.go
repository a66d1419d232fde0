package model

import "mathtatag_backend/internal/scoring"

// LearnerEvaluation 单个学员的前测/后测评估
type LearnerEvaluation struct {
	LearnerID   string             `json:"learnerId"`
	Nickname    string             `json:"nickname"`
	Pre         scoring.Evaluation `json:"pre"`
	Post        scoring.Evaluation `json:"post"`
	Improvement *int               `json:"improvement,omitempty"` // 仅前后测均有效时给出
	PreStars    int                `json:"preStars"`
	PostStars   int                `json:"postStars"`
}

// ClassCard 老师看板上的班级卡片
type ClassCard struct {
	ClassroomID        uint    `json:"classroomId"`
	Name               string  `json:"name"`
	Learners           int     `json:"learners"`
	Active             int     `json:"active"`
	AverageImprovement int     `json:"averageImprovement"`
	AveragePreScore    float64 `json:"averagePreScore"`
	AveragePostScore   float64 `json:"averagePostScore"`
	PrePercent         int     `json:"prePercent"`  // 平均前测占满分百分比
	PostPercent        int     `json:"postPercent"` // 平均后测占满分百分比
	PreOutOfTen        int     `json:"preOutOfTen"` // 卡片上的 “/10” 平均分
	PostOutOfTen       int     `json:"postOutOfTen"`
}

// TeacherDashboard 老师首页
type TeacherDashboard struct {
	TotalClasses       int         `json:"totalClasses"`
	TotalLearners      int         `json:"totalLearners"`
	AverageImprovement int         `json:"averageImprovement"`
	Classes            []ClassCard `json:"classes"`
}

// ClassDashboard 班级详情
type ClassDashboard struct {
	Classroom        Classroom               `json:"classroom"`
	Summary          scoring.CohortSummary   `json:"summary"`
	PreDistribution  []scoring.CategoryShare `json:"preDistribution"`
	PostDistribution []scoring.CategoryShare `json:"postDistribution"`
	TopPerformers    []LearnerEvaluation     `json:"topPerformers"`
	ForMonitoring    []LearnerEvaluation     `json:"forMonitoring"`
	Learners         []LearnerEvaluation     `json:"learners"`
}

// TeacherOverview 管理端的老师行
type TeacherOverview struct {
	TeacherID          uint   `json:"teacherId"`
	Name               string `json:"name"`
	Email              string `json:"email"`
	School             string `json:"school,omitempty"`
	Classes            int    `json:"classes"`
	Learners           int    `json:"learners"`
	ActiveLearners     int    `json:"activeLearners"`
	AverageImprovement int    `json:"averageImprovement"`
}

// AdminDashboard 管理端首页
type AdminDashboard struct {
	TotalTeachers       int                   `json:"totalTeachers"`
	TotalClasses        int                   `json:"totalClasses"`
	TotalLearners       int                   `json:"totalLearners"`
	ActiveTeachers      int                   `json:"activeTeachers"`
	InactiveTeachers    int                   `json:"inactiveTeachers"`
	AverageImprovement  int                   `json:"averageImprovement"`
	MostImprovedTeacher *TeacherOverview      `json:"mostImprovedTeacher,omitempty"`
	Summary             scoring.CohortSummary `json:"summary"`
	Teachers            []TeacherOverview     `json:"teachers"`
}

// GuardianOverview 老师查看的家长列表行
type GuardianOverview struct {
	GuardianID      uint   `json:"guardianId"`
	GuardianName    string `json:"guardianName"`
	LearnerID       string `json:"learnerId"`
	LearnerNickname string `json:"learnerNickname"`
	HouseholdIncome string `json:"householdIncome,omitempty"`
	PreStars        int    `json:"preStars"`
	PostStars       int    `json:"postStars"`
	ProgressPercent int    `json:"progressPercent"`
}

// ParentDashboard 家长首页
type ParentDashboard struct {
	Learner         LearnerEvaluation `json:"learner"`
	Quarter         int               `json:"quarter"`
	OverallProgress int               `json:"overallProgress"`
	QuarterProgress int               `json:"quarterProgress"`
	WeeklyProgress  []int             `json:"weeklyProgress"`
	Tasks           []*HomeTask       `json:"tasks"`
}
