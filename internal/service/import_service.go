package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"mathtatag_backend/internal/importer"
	"mathtatag_backend/internal/model"
	"mathtatag_backend/internal/scoring"
	"mathtatag_backend/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// 导入时没有邮箱的家长使用占位邮箱，账号保持禁用直到老师关联真实邮箱
const importedEmailDomain = "import.mathtatag.local"

type ImportResult struct {
	Classrooms int      `json:"classrooms"`
	Guardians  int      `json:"guardians"`
	Learners   int      `json:"learners"`
	// Matched 已存在（同班同昵称）而未重复创建的学生数
	Matched    int      `json:"matched"`
	Tasks      int      `json:"tasks"`
	Warnings   []string `json:"warnings,omitempty"`
}

type ImportService struct {
	UserRepo      UserStore
	ClassroomRepo ClassroomStore
	LearnerRepo   LearnerStore
	TaskRepo      HomeTaskStore
	Cache         Cache
}

func NewImportService(userRepo UserStore, classroomRepo ClassroomStore, learnerRepo LearnerStore, taskRepo HomeTaskStore, cache Cache) *ImportService {
	return &ImportService{
		UserRepo:      userRepo,
		ClassroomRepo: classroomRepo,
		LearnerRepo:   learnerRepo,
		TaskRepo:      taskRepo,
		Cache:         cache,
	}
}

// Import 将旧系统导出的数据导入到指定老师名下
func (s *ImportService) Import(ctx context.Context, teacherID uint, raw []byte) (*ImportResult, error) {
	doc, err := importer.Parse(raw)
	if err != nil {
		return nil, err
	}
	result := &ImportResult{}
	defer invalidate(ctx, s.Cache)

	classIDs := make(map[string]uint, len(doc.Classes))
	for _, c := range doc.Classes {
		classroom, err := s.ClassroomRepo.FindByTeacherAndName(ctx, teacherID, c.Name)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			classroom = &model.Classroom{Name: c.Name, School: c.School, TeacherID: teacherID}
			if err := s.ClassroomRepo.Create(ctx, classroom); err != nil {
				return result, fmt.Errorf("create classroom %s: %w", c.ExternalID, err)
			}
			result.Classrooms++
		} else if err != nil {
			return result, err
		}
		classIDs[c.ExternalID] = classroom.ID
	}

	guardianIDs := make(map[string]uint, len(doc.Parents))
	for _, p := range doc.Parents {
		id, created, err := s.ensureGuardian(ctx, p)
		if err != nil {
			return result, fmt.Errorf("import guardian %s: %w", p.ExternalID, err)
		}
		guardianIDs[p.ExternalID] = id
		if created {
			result.Guardians++
		}
	}

	learnerIDs := make(map[string]string, len(doc.Learners))
	now := time.Now()
	for _, l := range doc.Learners {
		classroomID, ok := classIDs[l.ClassID]
		if !ok {
			result.Warnings = append(result.Warnings, fmt.Sprintf("learner %s: unknown class %q, skipped", l.ExternalID, l.ClassID))
			continue
		}
		pre := s.checkedScore(result, l.ExternalID, "pre", l.Pre)
		post := s.checkedScore(result, l.ExternalID, "post", l.Post)
		gid, hasGuardian := guardianIDs[l.ParentID]

		existing, err := s.findLearner(ctx, classroomID, l.Nickname)
		if err != nil {
			return result, fmt.Errorf("find learner %s: %w", l.ExternalID, err)
		}
		if existing != nil {
			if err := s.mergeLearner(ctx, existing, pre, post, gid, hasGuardian, now); err != nil {
				return result, fmt.Errorf("merge learner %s: %w", l.ExternalID, err)
			}
			learnerIDs[l.ExternalID] = existing.ID
			result.Matched++
			continue
		}

		learner := &model.Learner{
			Nickname:    l.Nickname,
			ClassroomID: classroomID,
			PreScore:    pre,
			PostScore:   post,
		}
		if learner.PreScore != nil {
			learner.PreTakenAt = &now
		}
		if learner.PostScore != nil {
			learner.PostTakenAt = &now
		}
		if hasGuardian {
			learner.GuardianID = &gid
		}
		if err := s.LearnerRepo.Create(ctx, learner); err != nil {
			return result, fmt.Errorf("create learner %s: %w", l.ExternalID, err)
		}
		learnerIDs[l.ExternalID] = learner.ID
		result.Learners++
	}

	for _, p := range doc.Parents {
		if len(p.Tasks) == 0 {
			continue
		}
		tasks := make([]*model.HomeTask, 0, len(p.Tasks))
		for i, t := range p.Tasks {
			checked, ok := checkedTask(result, p.ExternalID, i, t)
			if !ok {
				continue
			}
			ht := &model.HomeTask{LearnerID: learnerIDs[p.LearnerID]}
			ht.Apply(checked)
			tasks = append(tasks, ht)
		}
		// 全部无效时保留原有任务
		if len(tasks) == 0 {
			continue
		}
		if err := s.TaskRepo.ReplaceForGuardian(ctx, guardianIDs[p.ExternalID], tasks); err != nil {
			return result, fmt.Errorf("import tasks for %s: %w", p.ExternalID, err)
		}
		result.Tasks += len(tasks)
	}

	logger.Log.Info("Records imported",
		zap.Uint("teacherID", teacherID),
		zap.Int("classrooms", result.Classrooms),
		zap.Int("guardians", result.Guardians),
		zap.Int("learners", result.Learners),
		zap.Int("tasks", result.Tasks),
		zap.Int("warnings", len(result.Warnings)))
	return result, nil
}

func (s *ImportService) ensureGuardian(ctx context.Context, p importer.ParentRecord) (uint, bool, error) {
	email := strings.ToLower(strings.TrimSpace(p.Email))
	placeholder := email == ""
	if placeholder {
		email = strings.ToLower(p.ExternalID) + "@" + importedEmailDomain
	}

	existing, err := s.UserRepo.FindByEmail(ctx, email)
	if err == nil {
		return existing.ID, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, false, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(uuid.NewString()), bcrypt.DefaultCost)
	if err != nil {
		return 0, false, err
	}
	name := p.Name
	if name == "" {
		name = p.ExternalID
	}
	user := &model.User{
		Name:            name,
		Email:           email,
		Password:        string(hash),
		Role:            model.Parent,
		Contact:         p.Contact,
		HouseholdIncome: p.HouseholdIncome,
		Disabled:        placeholder,
	}
	if err := s.UserRepo.Create(ctx, user); err != nil {
		return 0, false, err
	}
	return user.ID, true, nil
}

// checkedScore 超出 0-10 的成绩丢弃并记录警告
func (s *ImportService) checkedScore(result *ImportResult, learnerID, kind string, score *scoring.SubScore) *scoring.SubScore {
	if score == nil || validSubScore(*score) {
		return score
	}
	result.Warnings = append(result.Warnings, fmt.Sprintf("learner %s: %s score %d/%d out of range, dropped", learnerID, kind, score.Pattern, score.Numbers))
	return nil
}

// findLearner 按班级与昵称查找已导入的学生，未找到返回 nil
func (s *ImportService) findLearner(ctx context.Context, classroomID uint, nickname string) (*model.Learner, error) {
	learners, err := s.LearnerRepo.FindByClassroom(ctx, classroomID)
	if err != nil {
		return nil, err
	}
	for _, l := range learners {
		if strings.EqualFold(strings.TrimSpace(l.Nickname), strings.TrimSpace(nickname)) {
			return l, nil
		}
	}
	return nil, nil
}

// mergeLearner 只补齐尚未记录的成绩和家长，已有数据不覆盖
func (s *ImportService) mergeLearner(ctx context.Context, l *model.Learner, pre, post *scoring.SubScore, guardianID uint, hasGuardian bool, at time.Time) error {
	for _, item := range []struct {
		kind  scoring.TestKind
		score *scoring.SubScore
	}{{scoring.PreTest, pre}, {scoring.PostTest, post}} {
		if item.score == nil {
			continue
		}
		if _, err := s.LearnerRepo.RecordScore(ctx, l.ID, item.kind, *item.score, at); err != nil {
			return err
		}
	}
	if hasGuardian && l.GuardianID == nil {
		return s.LearnerRepo.SetGuardian(ctx, l.ID, guardianID)
	}
	return nil
}

// checkedTask 排期或评分越界的任务丢弃；状态与评分不一致时按评分修正。均记录警告
func checkedTask(result *ImportResult, parentID string, idx int, t scoring.Task) (scoring.Task, bool) {
	if t.PreRating == nil && t.PostRating != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("parent %s task %d: post rating without pre rating, dropped", parentID, idx))
		return t, false
	}
	if err := validateTask(t); err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("parent %s task %d: %v, dropped", parentID, idx, err))
		return t, false
	}
	if derived := scoring.DeriveStatus(t.PreRating, t.PostRating); derived != t.Status {
		result.Warnings = append(result.Warnings, fmt.Sprintf("parent %s task %d: status %s does not match ratings, set to %s", parentID, idx, t.Status, derived))
		t.Status = derived
	}
	return t, true
}
