package service

import (
	"context"

	"mathtatag_backend/internal/model"
	"mathtatag_backend/internal/scoring"
	"mathtatag_backend/internal/util"
	"mathtatag_backend/pkg/logger"
	"mathtatag_backend/pkg/monitoring"

	"go.uber.org/zap"
)

type TaskService struct {
	TaskRepo    HomeTaskStore
	LearnerRepo LearnerStore
	UserRepo    UserStore
	Recommender *RecommendationService
	Cache       Cache
}

func NewTaskService(taskRepo HomeTaskStore, learnerRepo LearnerStore, userRepo UserStore, recommender *RecommendationService, cache Cache) *TaskService {
	return &TaskService{
		TaskRepo:    taskRepo,
		LearnerRepo: learnerRepo,
		UserRepo:    userRepo,
		Recommender: recommender,
		Cache:       cache,
	}
}

func (s *TaskService) List(ctx context.Context, guardianID uint) ([]*model.HomeTask, error) {
	return s.TaskRepo.FindByGuardian(ctx, guardianID)
}

// Generate 按学员前测与家庭收入生成任务。已有任务且 regenerate 为 false 时直接返回现有任务
func (s *TaskService) Generate(ctx context.Context, guardianID uint, regenerate bool) ([]*model.HomeTask, error) {
	existing, err := s.TaskRepo.FindByGuardian(ctx, guardianID)
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 && !regenerate {
		return existing, nil
	}

	learner, err := s.LearnerRepo.FindByGuardian(ctx, guardianID)
	if err != nil {
		return nil, mapNotFound(err, util.ErrNoGuardian)
	}
	guardian, err := s.UserRepo.FindByID(ctx, guardianID)
	if err != nil {
		return nil, mapNotFound(err, util.ErrUserNotFound)
	}

	var pattern, numbers int
	if learner.PreScore != nil {
		pattern, numbers = learner.PreScore.Pattern, learner.PreScore.Numbers
	}

	recs := s.Recommender.Recommend(ctx, pattern, numbers, guardian.HouseholdIncome)
	tasks := make([]*model.HomeTask, 0, len(recs))
	for _, rec := range recs {
		t := &model.HomeTask{
			LearnerID: learner.ID,
			Priority:  string(rec.Priority),
			Category:  rec.Category,
		}
		t.Apply(rec.Task)
		tasks = append(tasks, t)
	}

	if err := s.TaskRepo.ReplaceForGuardian(ctx, guardianID, tasks); err != nil {
		return nil, err
	}
	logger.Log.Info("Home tasks generated", zap.Uint("guardianID", guardianID), zap.Int("count", len(tasks)))
	invalidate(ctx, s.Cache)
	return tasks, nil
}

// Advance 家长提交评分推进任务状态
func (s *TaskService) Advance(ctx context.Context, guardianID, taskID uint, rating int) (*model.HomeTask, error) {
	task, err := s.owned(ctx, guardianID, taskID)
	if err != nil {
		return nil, err
	}

	from := task.Status
	next, err := scoring.AdvanceStatus(task.ScoringTask(), rating)
	if err != nil {
		return nil, err
	}
	task.Apply(next)
	if err := s.TaskRepo.Save(ctx, task); err != nil {
		return nil, err
	}

	monitoring.ObserveTaskTransition(string(from), string(task.Status))
	invalidate(ctx, s.Cache)
	return task, nil
}

// Replace 整条覆盖任务内容与排期，后写者生效。
// 状态和评分只能通过 Advance 改变：请求中给出且与现值不同时返回 ErrTaskStatusLocked
func (s *TaskService) Replace(ctx context.Context, guardianID, taskID uint, update scoring.Task) (*model.HomeTask, error) {
	task, err := s.owned(ctx, guardianID, taskID)
	if err != nil {
		return nil, err
	}

	check := update
	if check.Status == "" {
		check.Status = task.Status
	}
	if err := validateTask(check); err != nil {
		return nil, err
	}
	if changesLifecycle(task, update) {
		return nil, util.ErrTaskStatusLocked
	}

	task.ApplyContent(update)
	if err := s.TaskRepo.Save(ctx, task); err != nil {
		return nil, err
	}
	invalidate(ctx, s.Cache)
	return task, nil
}

func (s *TaskService) owned(ctx context.Context, guardianID, taskID uint) (*model.HomeTask, error) {
	task, err := s.TaskRepo.FindByID(ctx, taskID)
	if err != nil {
		return nil, mapNotFound(err, util.ErrTaskNotFound)
	}
	if task.GuardianID != guardianID {
		return nil, util.ErrTaskNotFound
	}
	return task, nil
}

// changesLifecycle 请求显式给出的状态或评分与现值不一致
func changesLifecycle(current *model.HomeTask, update scoring.Task) bool {
	if update.Status != "" && update.Status != current.Status {
		return true
	}
	if update.PreRating != nil && !sameRating(update.PreRating, current.PreRating) {
		return true
	}
	return update.PostRating != nil && !sameRating(update.PostRating, current.PostRating)
}

func sameRating(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func validateTask(t scoring.Task) error {
	if t.Week < util.MinWeek || t.Week > util.MaxWeek || t.Quarter < util.MinQuarter || t.Quarter > util.MaxQuarter {
		return util.ErrInvalidSchedule
	}
	if !t.Status.Valid() {
		return util.ErrInvalidTaskStatus
	}
	for _, r := range []*int{t.PreRating, t.PostRating} {
		if r != nil && (*r < scoring.MinRating || *r > scoring.MaxRating) {
			return scoring.ErrInvalidRating
		}
	}
	return nil
}
