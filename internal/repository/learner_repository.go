package repository

import (
	"context"
	"time"

	"mathtatag_backend/internal/model"
	"mathtatag_backend/internal/scoring"

	"gorm.io/gorm"
)

type LearnerRepository struct {
	DB *gorm.DB
}

func NewLearnerRepository(db *gorm.DB) *LearnerRepository {
	return &LearnerRepository{DB: db}
}

func (r *LearnerRepository) Create(ctx context.Context, learner *model.Learner) error {
	return r.DB.WithContext(ctx).Create(learner).Error
}

func (r *LearnerRepository) FindByID(ctx context.Context, id string) (*model.Learner, error) {
	var learner model.Learner
	err := r.DB.WithContext(ctx).Where("id = ?", id).First(&learner).Error
	return &learner, err
}

func (r *LearnerRepository) FindByClassroom(ctx context.Context, classroomID uint) ([]*model.Learner, error) {
	var learners []*model.Learner
	err := r.DB.WithContext(ctx).Where("classroom_id = ?", classroomID).Order("created_at ASC").Find(&learners).Error
	return learners, err
}

func (r *LearnerRepository) FindByClassrooms(ctx context.Context, classroomIDs []uint) ([]*model.Learner, error) {
	var learners []*model.Learner
	if len(classroomIDs) == 0 {
		return learners, nil
	}
	err := r.DB.WithContext(ctx).Where("classroom_id IN ?", classroomIDs).Order("created_at ASC").Find(&learners).Error
	return learners, err
}

func (r *LearnerRepository) FindAll(ctx context.Context) ([]*model.Learner, error) {
	var learners []*model.Learner
	err := r.DB.WithContext(ctx).Order("created_at ASC").Find(&learners).Error
	return learners, err
}

// FindByGuardian 家长名下的学员，一个家长对应一名学员
func (r *LearnerRepository) FindByGuardian(ctx context.Context, guardianID uint) (*model.Learner, error) {
	var learner model.Learner
	err := r.DB.WithContext(ctx).Where("guardian_id = ?", guardianID).Order("created_at ASC").First(&learner).Error
	return &learner, err
}

func (r *LearnerRepository) SetGuardian(ctx context.Context, learnerID string, guardianID uint) error {
	return r.DB.WithContext(ctx).Model(&model.Learner{}).
		Where("id = ?", learnerID).
		Update("guardian_id", guardianID).
		Error
}

// RecordScore 仅在对应成绩为空时写入，返回是否写入成功
func (r *LearnerRepository) RecordScore(ctx context.Context, learnerID string, kind scoring.TestKind, score scoring.SubScore, at time.Time) (bool, error) {
	scoreCol, takenCol := "pre_score", "pre_taken_at"
	if kind == scoring.PostTest {
		scoreCol, takenCol = "post_score", "post_taken_at"
	}

	learner := model.Learner{}
	field, taken := &learner.PreScore, &learner.PreTakenAt
	if kind == scoring.PostTest {
		field, taken = &learner.PostScore, &learner.PostTakenAt
	}
	*field, *taken = &score, &at

	res := r.DB.WithContext(ctx).Model(&model.Learner{}).
		Where("id = ? AND "+scoreCol+" IS NULL", learnerID).
		Select(scoreCol, takenCol).
		Updates(&learner)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
