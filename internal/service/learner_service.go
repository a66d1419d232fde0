package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"mathtatag_backend/internal/model"
	"mathtatag_backend/internal/scoring"
	"mathtatag_backend/internal/util"
	"mathtatag_backend/pkg/logger"
	"mathtatag_backend/pkg/monitoring"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type LearnerService struct {
	LearnerRepo   LearnerStore
	ClassroomRepo ClassroomStore
	UserRepo      UserStore
	Cache         Cache
	Settings      *ScoringSettings
	// now 测试中可替换
	now func() time.Time
}

func NewLearnerService(learnerRepo LearnerStore, classroomRepo ClassroomStore, userRepo UserStore, cache Cache, settings *ScoringSettings) *LearnerService {
	return &LearnerService{
		LearnerRepo:   learnerRepo,
		ClassroomRepo: classroomRepo,
		UserRepo:      userRepo,
		Cache:         cache,
		Settings:      settings,
		now:           time.Now,
	}
}

// Enroll 将学员加入班级，成绩为空
func (s *LearnerService) Enroll(ctx context.Context, actor Actor, classroomID uint, nickname string) (*model.Learner, error) {
	if _, err := authorizeClassroom(ctx, s.ClassroomRepo, actor, classroomID); err != nil {
		return nil, err
	}
	learner := &model.Learner{
		Nickname:    strings.TrimSpace(nickname),
		ClassroomID: classroomID,
	}
	if err := s.LearnerRepo.Create(ctx, learner); err != nil {
		return nil, err
	}
	invalidate(ctx, s.Cache)
	return learner, nil
}

func (s *LearnerService) ListByClassroom(ctx context.Context, actor Actor, classroomID uint) ([]*model.Learner, error) {
	if _, err := authorizeClassroom(ctx, s.ClassroomRepo, actor, classroomID); err != nil {
		return nil, err
	}
	return s.LearnerRepo.FindByClassroom(ctx, classroomID)
}

// Get 读取学员并校验老师对所在班级的权限
func (s *LearnerService) Get(ctx context.Context, actor Actor, learnerID string) (*model.Learner, error) {
	learner, err := s.LearnerRepo.FindByID(ctx, learnerID)
	if err != nil {
		return nil, mapNotFound(err, util.ErrLearnerNotFound)
	}
	if _, err := authorizeClassroom(ctx, s.ClassroomRepo, actor, learner.ClassroomID); err != nil {
		return nil, err
	}
	return learner, nil
}

// RecordScore 录入前测或后测，每项只能录入一次
func (s *LearnerService) RecordScore(ctx context.Context, actor Actor, learnerID string, kind scoring.TestKind, score scoring.SubScore) (*model.Learner, error) {
	if !validSubScore(score) {
		return nil, util.ErrInvalidSubScore
	}
	learner, err := s.Get(ctx, actor, learnerID)
	if err != nil {
		return nil, err
	}

	ok, err := s.LearnerRepo.RecordScore(ctx, learnerID, kind, score, s.now())
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, util.ErrScoreAlreadyRecorded
	}

	eval := scoring.Evaluate(&score, s.Settings.Get().TestTotal)
	monitoring.ObserveScore(string(kind), eval.Category.String())
	logger.Log.Info("Score recorded",
		zap.String("learnerID", learnerID),
		zap.String("kind", string(kind)),
		zap.Int("total", eval.TotalScore),
		zap.String("category", eval.Category.String()))

	invalidate(ctx, s.Cache)
	return s.LearnerRepo.FindByID(ctx, learner.ID)
}

// LinkGuardian 将家长账号关联到学员
func (s *LearnerService) LinkGuardian(ctx context.Context, actor Actor, learnerID, guardianEmail string) (*model.Learner, error) {
	learner, err := s.Get(ctx, actor, learnerID)
	if err != nil {
		return nil, err
	}
	guardian, err := s.UserRepo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(guardianEmail)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}
	if guardian.Role != model.Parent {
		return nil, util.ErrPermissionDenied
	}
	if err := s.LearnerRepo.SetGuardian(ctx, learner.ID, guardian.ID); err != nil {
		return nil, err
	}
	learner.GuardianID = &guardian.ID
	invalidate(ctx, s.Cache)
	return learner, nil
}

func validSubScore(s scoring.SubScore) bool {
	return s.Pattern >= 0 && s.Pattern <= util.MaxSectionScore &&
		s.Numbers >= 0 && s.Numbers <= util.MaxSectionScore
}
