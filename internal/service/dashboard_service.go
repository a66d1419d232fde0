package service

import (
	"context"
	"fmt"
	"math"

	"mathtatag_backend/internal/model"
	"mathtatag_backend/internal/scoring"
	"mathtatag_backend/internal/util"
	"mathtatag_backend/pkg/logger"
	"mathtatag_backend/pkg/monitoring"
	"mathtatag_backend/pkg/tracing"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

type DashboardService struct {
	UserRepo      UserStore
	ClassroomRepo ClassroomStore
	LearnerRepo   LearnerStore
	TaskRepo      HomeTaskStore
	Cache         Cache
	Settings      *ScoringSettings
}

func NewDashboardService(userRepo UserStore, classroomRepo ClassroomStore, learnerRepo LearnerStore, taskRepo HomeTaskStore, cache Cache, settings *ScoringSettings) *DashboardService {
	return &DashboardService{
		UserRepo:      userRepo,
		ClassroomRepo: classroomRepo,
		LearnerRepo:   learnerRepo,
		TaskRepo:      taskRepo,
		Cache:         cache,
		Settings:      settings,
	}
}

// Admin 全部老师的汇总；老师分组只统计有合格学员的老师
func (s *DashboardService) Admin(ctx context.Context) (*model.AdminDashboard, error) {
	ctx, span := tracing.StartSpan(ctx, "dashboard.admin")
	var err error
	defer func() { tracing.EndSpan(span, err) }()

	var out model.AdminDashboard
	if cached(ctx, s.Cache, "admin", &out) {
		return &out, nil
	}

	teachers, err := s.UserRepo.FindByRole(ctx, model.Teacher)
	if err != nil {
		return nil, err
	}
	classrooms, err := s.ClassroomRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	learners, err := s.LearnerRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	teacherOf := make(map[uint]uint, len(classrooms))
	classCount := make(map[uint]int)
	for _, c := range classrooms {
		teacherOf[c.ID] = c.TeacherID
		classCount[c.TeacherID]++
	}
	records := model.Records(learners, func(l *model.Learner) string {
		return util.FormatUint(teacherOf[l.ClassroomID])
	})

	ids := make([]string, 0, len(teachers))
	for _, t := range teachers {
		ids = append(ids, util.FormatUint(t.ID))
	}
	rollup := scoring.RollupByGroup(ids, records)

	settings := s.Settings.Get()
	out = model.AdminDashboard{
		TotalTeachers:      len(teachers),
		TotalClasses:       len(classrooms),
		TotalLearners:      len(learners),
		ActiveTeachers:     rollup.ActiveGroups,
		InactiveTeachers:   rollup.InactiveGroups,
		AverageImprovement: rollup.AverageImprovement,
		Summary:            scoring.Summarize(records, settings.PassThreshold),
		Teachers:           make([]model.TeacherOverview, 0, len(teachers)),
	}
	for i, t := range teachers {
		stat := rollup.Groups[i]
		row := model.TeacherOverview{
			TeacherID:          t.ID,
			Name:               t.Name,
			Email:              t.Email,
			School:             t.School,
			Classes:            classCount[t.ID],
			Learners:           stat.Learners,
			ActiveLearners:     stat.Active,
			AverageImprovement: stat.AverageImprovement,
		}
		out.Teachers = append(out.Teachers, row)
		if stat.GroupID == rollup.MostImprovedGroup {
			best := row
			out.MostImprovedTeacher = &best
		}
	}

	store(ctx, s.Cache, "admin", &out)
	return &out, nil
}

// Teacher 老师名下所有班级的卡片
func (s *DashboardService) Teacher(ctx context.Context, teacherID uint) (*model.TeacherDashboard, error) {
	key := fmt.Sprintf("teacher:%d", teacherID)
	var out model.TeacherDashboard
	if cached(ctx, s.Cache, key, &out) {
		return &out, nil
	}

	classrooms, err := s.ClassroomRepo.FindByTeacher(ctx, teacherID)
	if err != nil {
		return nil, err
	}
	classIDs := make([]uint, 0, len(classrooms))
	for _, c := range classrooms {
		classIDs = append(classIDs, c.ID)
	}
	learners, err := s.LearnerRepo.FindByClassrooms(ctx, classIDs)
	if err != nil {
		return nil, err
	}

	records := model.Records(learners, nil)
	byClass := make(map[string][]scoring.Record, len(classrooms))
	for _, r := range records {
		byClass[r.GroupID] = append(byClass[r.GroupID], r)
	}

	total := s.Settings.Get().TestTotal
	out = model.TeacherDashboard{
		TotalClasses:       len(classrooms),
		TotalLearners:      len(learners),
		AverageImprovement: scoring.AverageImprovement(records),
		Classes:            make([]model.ClassCard, 0, len(classrooms)),
	}
	for _, c := range classrooms {
		rs := byClass[util.FormatUint(c.ID)]
		avgPre, avgPost := scoring.AveragePreScore(rs), scoring.AveragePostScore(rs)
		out.Classes = append(out.Classes, model.ClassCard{
			ClassroomID:        c.ID,
			Name:               c.Name,
			Learners:           len(rs),
			Active:             scoring.ActiveCount(rs),
			AverageImprovement: scoring.AverageImprovement(rs),
			AveragePreScore:    avgPre,
			AveragePostScore:   avgPost,
			PrePercent:         percentOf(avgPre, total),
			PostPercent:        percentOf(avgPost, total),
			PreOutOfTen:        scoring.OutOfTen(scoring.AveragePreScoreInt(rs)),
			PostOutOfTen:       scoring.OutOfTen(scoring.AveragePostScoreInt(rs)),
		})
	}

	store(ctx, s.Cache, key, &out)
	return &out, nil
}

// Class 班级详情：汇总、等级分布、优秀与需关注名单、学员评估
func (s *DashboardService) Class(ctx context.Context, actor Actor, classroomID uint) (*model.ClassDashboard, error) {
	ctx, span := tracing.StartSpan(ctx, "dashboard.class", attribute.Int64("classroom.id", int64(classroomID)))
	var err error
	defer func() { tracing.EndSpan(span, err) }()

	classroom, err := authorizeClassroom(ctx, s.ClassroomRepo, actor, classroomID)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("class:%d", classroomID)
	var out model.ClassDashboard
	if cached(ctx, s.Cache, key, &out) {
		return &out, nil
	}

	learners, err := s.LearnerRepo.FindByClassroom(ctx, classroomID)
	if err != nil {
		return nil, err
	}

	settings := s.Settings.Get()
	records := model.Records(learners, nil)
	evals := make(map[string]model.LearnerEvaluation, len(learners))
	all := make([]model.LearnerEvaluation, 0, len(learners))
	for _, l := range learners {
		e := evaluateLearner(l, settings.TestTotal)
		evals[l.ID] = e
		all = append(all, e)
	}
	pick := func(rs []scoring.Record) []model.LearnerEvaluation {
		list := make([]model.LearnerEvaluation, 0, len(rs))
		for _, r := range rs {
			list = append(list, evals[r.ID])
		}
		return list
	}

	out = model.ClassDashboard{
		Classroom:        *classroom,
		Summary:          scoring.Summarize(records, settings.PassThreshold),
		PreDistribution:  scoring.PerformanceDistribution(records, scoring.PreTest, settings.TestTotal),
		PostDistribution: scoring.PerformanceDistribution(records, scoring.PostTest, settings.TestTotal),
		TopPerformers:    pick(scoring.TopPerformers(records, settings.TopCount)),
		ForMonitoring:    pick(scoring.ForMonitoring(records, settings.TopCount)),
		Learners:         all,
	}

	store(ctx, s.Cache, key, &out)
	return &out, nil
}

// Guardians 班级内已关联家长的学员及其家庭任务进度
func (s *DashboardService) Guardians(ctx context.Context, actor Actor, classroomID uint) ([]model.GuardianOverview, error) {
	if _, err := authorizeClassroom(ctx, s.ClassroomRepo, actor, classroomID); err != nil {
		return nil, err
	}
	learners, err := s.LearnerRepo.FindByClassroom(ctx, classroomID)
	if err != nil {
		return nil, err
	}

	guardianIDs := make([]uint, 0, len(learners))
	for _, l := range learners {
		if l.GuardianID != nil {
			guardianIDs = append(guardianIDs, *l.GuardianID)
		}
	}
	guardians, err := s.UserRepo.FindByIDs(ctx, guardianIDs)
	if err != nil {
		return nil, err
	}
	tasks, err := s.TaskRepo.FindByGuardians(ctx, guardianIDs)
	if err != nil {
		return nil, err
	}

	byID := make(map[uint]*model.User, len(guardians))
	for _, g := range guardians {
		byID[g.ID] = g
	}
	tasksOf := make(map[uint][]*model.HomeTask)
	for _, t := range tasks {
		tasksOf[t.GuardianID] = append(tasksOf[t.GuardianID], t)
	}

	total := s.Settings.Get().TestTotal
	out := make([]model.GuardianOverview, 0, len(guardianIDs))
	for _, l := range learners {
		if l.GuardianID == nil {
			continue
		}
		g, ok := byID[*l.GuardianID]
		if !ok {
			continue
		}
		e := evaluateLearner(l, total)
		out = append(out, model.GuardianOverview{
			GuardianID:      g.ID,
			GuardianName:    g.Name,
			LearnerID:       l.ID,
			LearnerNickname: l.Nickname,
			HouseholdIncome: g.HouseholdIncome,
			PreStars:        e.PreStars,
			PostStars:       e.PostStars,
			ProgressPercent: scoring.OverallProgress(model.ScoringTasks(tasksOf[g.ID])),
		})
	}
	return out, nil
}

// Parent 家长首页；quarter 超出 1-4 时按第 1 季度
func (s *DashboardService) Parent(ctx context.Context, guardianID uint, quarter int) (*model.ParentDashboard, error) {
	learner, err := s.LearnerRepo.FindByGuardian(ctx, guardianID)
	if err != nil {
		return nil, mapNotFound(err, util.ErrNoGuardian)
	}
	tasks, err := s.TaskRepo.FindByGuardian(ctx, guardianID)
	if err != nil {
		return nil, err
	}
	if quarter < util.MinQuarter || quarter > util.MaxQuarter {
		quarter = util.MinQuarter
	}

	settings := s.Settings.Get()
	st := model.ScoringTasks(tasks)
	return &model.ParentDashboard{
		Learner:         evaluateLearner(learner, settings.TestTotal),
		Quarter:         quarter,
		OverallProgress: scoring.OverallProgress(st),
		QuarterProgress: scoring.QuarterProgress(st, quarter),
		WeeklyProgress:  scoring.WeeklyProgress(st, quarter, settings.WeekCount),
		Tasks:           tasks,
	}, nil
}

func evaluateLearner(l *model.Learner, total int) model.LearnerEvaluation {
	pre := scoring.Evaluate(l.PreScore, total)
	post := scoring.Evaluate(l.PostScore, total)
	e := model.LearnerEvaluation{
		LearnerID: l.ID,
		Nickname:  l.Nickname,
		Pre:       pre,
		Post:      post,
		PreStars:  scoring.Stars(pre.TotalScore, total),
		PostStars: scoring.Stars(post.TotalScore, total),
	}
	if imp, ok := l.Record().Improvement(); ok {
		e.Improvement = &imp
	}
	return e
}

func percentOf(avg float64, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(avg / float64(total) * 100))
}

// 缓存读写失败只记录日志，不影响请求

func cached(ctx context.Context, c Cache, key string, dst interface{}) bool {
	if c == nil {
		return false
	}
	hit, err := c.Get(ctx, key, dst)
	if err != nil {
		logger.Log.Warn("Dashboard cache read failed", zap.String("key", key), zap.Error(err))
		return false
	}
	monitoring.ObserveCache(hit)
	return hit
}

func store(ctx context.Context, c Cache, key string, v interface{}) {
	if c == nil {
		return
	}
	if err := c.Set(ctx, key, v); err != nil {
		logger.Log.Warn("Dashboard cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func invalidate(ctx context.Context, c Cache) {
	if c == nil {
		return
	}
	if err := c.Invalidate(ctx); err != nil {
		logger.Log.Warn("Dashboard cache invalidation failed", zap.Error(err))
	}
}
