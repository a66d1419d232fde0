package service

import (
	"context"
	"time"

	"mathtatag_backend/internal/model"
	"mathtatag_backend/internal/scoring"
)

// 服务层依赖的存储接口，由 repository 包中的 gorm 实现满足

type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id uint) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByIDs(ctx context.Context, ids []uint) ([]*model.User, error)
	FindByRole(ctx context.Context, role model.UserRole) ([]*model.User, error)
	Update(ctx context.Context, user *model.User) error
	TouchLastLogin(ctx context.Context, id uint, at time.Time) error
}

type ClassroomStore interface {
	Create(ctx context.Context, classroom *model.Classroom) error
	FindByID(ctx context.Context, id uint) (*model.Classroom, error)
	FindByTeacher(ctx context.Context, teacherID uint) ([]*model.Classroom, error)
	FindByTeacherAndName(ctx context.Context, teacherID uint, name string) (*model.Classroom, error)
	FindAll(ctx context.Context) ([]*model.Classroom, error)
}

type LearnerStore interface {
	Create(ctx context.Context, learner *model.Learner) error
	FindByID(ctx context.Context, id string) (*model.Learner, error)
	FindByClassroom(ctx context.Context, classroomID uint) ([]*model.Learner, error)
	FindByClassrooms(ctx context.Context, classroomIDs []uint) ([]*model.Learner, error)
	FindAll(ctx context.Context) ([]*model.Learner, error)
	FindByGuardian(ctx context.Context, guardianID uint) (*model.Learner, error)
	SetGuardian(ctx context.Context, learnerID string, guardianID uint) error
	RecordScore(ctx context.Context, learnerID string, kind scoring.TestKind, score scoring.SubScore, at time.Time) (bool, error)
}

type HomeTaskStore interface {
	FindByID(ctx context.Context, id uint) (*model.HomeTask, error)
	FindByGuardian(ctx context.Context, guardianID uint) ([]*model.HomeTask, error)
	FindByGuardians(ctx context.Context, guardianIDs []uint) ([]*model.HomeTask, error)
	Save(ctx context.Context, task *model.HomeTask) error
	ReplaceForGuardian(ctx context.Context, guardianID uint, tasks []*model.HomeTask) error
}

// Cache 看板缓存
type Cache interface {
	Get(ctx context.Context, key string, dst interface{}) (bool, error)
	Set(ctx context.Context, key string, v interface{}) error
	Invalidate(ctx context.Context) error
}

// Actor 发起请求的用户
type Actor struct {
	UserID uint
	Role   model.UserRole
}

func (a Actor) IsAdmin() bool {
	return a.Role == model.Admin
}
