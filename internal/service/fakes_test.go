package service

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"
	"time"

	"mathtatag_backend/internal/config"
	"mathtatag_backend/internal/model"
	"mathtatag_backend/internal/scoring"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type fakeUsers struct {
	mu     sync.Mutex
	nextID uint
	byID   map[uint]*model.User
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byID: map[uint]*model.User{}}
}

func (f *fakeUsers) Create(_ context.Context, u *model.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	u.ID = f.nextID
	cp := *u
	f.byID[u.ID] = &cp
	return nil
}

func (f *fakeUsers) FindByID(_ context.Context, id uint) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsers) FindByEmail(_ context.Context, email string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUsers) FindByIDs(_ context.Context, ids []uint) ([]*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*model.User
	for _, id := range ids {
		if u, ok := f.byID[id]; ok {
			cp := *u
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeUsers) FindByRole(_ context.Context, role model.UserRole) ([]*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*model.User
	for _, u := range f.byID {
		if u.Role == role {
			cp := *u
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeUsers) Update(_ context.Context, u *model.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *u
	f.byID[u.ID] = &cp
	return nil
}

func (f *fakeUsers) TouchLastLogin(_ context.Context, id uint, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.byID[id]; ok {
		u.LastLogin = at
	}
	return nil
}

type fakeClassrooms struct {
	nextID uint
	byID   map[uint]*model.Classroom
}

func newFakeClassrooms() *fakeClassrooms {
	return &fakeClassrooms{byID: map[uint]*model.Classroom{}}
}

func (f *fakeClassrooms) Create(_ context.Context, c *model.Classroom) error {
	f.nextID++
	c.ID = f.nextID
	cp := *c
	f.byID[c.ID] = &cp
	return nil
}

func (f *fakeClassrooms) FindByID(_ context.Context, id uint) (*model.Classroom, error) {
	c, ok := f.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *c
	return &cp, nil
}

func (f *fakeClassrooms) list(keep func(*model.Classroom) bool) []*model.Classroom {
	var out []*model.Classroom
	for _, c := range f.byID {
		if keep(c) {
			cp := *c
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (f *fakeClassrooms) FindByTeacher(_ context.Context, teacherID uint) ([]*model.Classroom, error) {
	return f.list(func(c *model.Classroom) bool { return c.TeacherID == teacherID }), nil
}

func (f *fakeClassrooms) FindByTeacherAndName(_ context.Context, teacherID uint, name string) (*model.Classroom, error) {
	found := f.list(func(c *model.Classroom) bool { return c.TeacherID == teacherID && c.Name == name })
	if len(found) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return found[0], nil
}

func (f *fakeClassrooms) FindAll(_ context.Context) ([]*model.Classroom, error) {
	return f.list(func(*model.Classroom) bool { return true }), nil
}

type fakeLearners struct {
	mu      sync.Mutex
	ordered []*model.Learner
}

func newFakeLearners() *fakeLearners {
	return &fakeLearners{}
}

func (f *fakeLearners) Create(_ context.Context, l *model.Learner) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	cp := *l
	f.ordered = append(f.ordered, &cp)
	return nil
}

func (f *fakeLearners) find(id string) *model.Learner {
	for _, l := range f.ordered {
		if l.ID == id {
			return l
		}
	}
	return nil
}

func (f *fakeLearners) FindByID(_ context.Context, id string) (*model.Learner, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	l := f.find(id)
	if l == nil {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *l
	return &cp, nil
}

func (f *fakeLearners) filter(keep func(*model.Learner) bool) []*model.Learner {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*model.Learner
	for _, l := range f.ordered {
		if keep(l) {
			cp := *l
			out = append(out, &cp)
		}
	}
	return out
}

func (f *fakeLearners) FindByClassroom(_ context.Context, classroomID uint) ([]*model.Learner, error) {
	return f.filter(func(l *model.Learner) bool { return l.ClassroomID == classroomID }), nil
}

func (f *fakeLearners) FindByClassrooms(_ context.Context, ids []uint) ([]*model.Learner, error) {
	set := map[uint]bool{}
	for _, id := range ids {
		set[id] = true
	}
	return f.filter(func(l *model.Learner) bool { return set[l.ClassroomID] }), nil
}

func (f *fakeLearners) FindAll(_ context.Context) ([]*model.Learner, error) {
	return f.filter(func(*model.Learner) bool { return true }), nil
}

func (f *fakeLearners) FindByGuardian(_ context.Context, guardianID uint) (*model.Learner, error) {
	found := f.filter(func(l *model.Learner) bool { return l.GuardianID != nil && *l.GuardianID == guardianID })
	if len(found) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return found[0], nil
}

func (f *fakeLearners) SetGuardian(_ context.Context, learnerID string, guardianID uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	l := f.find(learnerID)
	if l == nil {
		return gorm.ErrRecordNotFound
	}
	l.GuardianID = &guardianID
	return nil
}

func (f *fakeLearners) RecordScore(_ context.Context, learnerID string, kind scoring.TestKind, score scoring.SubScore, at time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	l := f.find(learnerID)
	if l == nil {
		return false, nil
	}
	field, taken := &l.PreScore, &l.PreTakenAt
	if kind == scoring.PostTest {
		field, taken = &l.PostScore, &l.PostTakenAt
	}
	if *field != nil {
		return false, nil
	}
	*field, *taken = &score, &at
	return true, nil
}

type fakeTasks struct {
	mu     sync.Mutex
	nextID uint
	byID   map[uint]*model.HomeTask
}

func newFakeTasks() *fakeTasks {
	return &fakeTasks{byID: map[uint]*model.HomeTask{}}
}

func (f *fakeTasks) FindByID(_ context.Context, id uint) (*model.HomeTask, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *t
	return &cp, nil
}

func (f *fakeTasks) FindByGuardians(_ context.Context, ids []uint) ([]*model.HomeTask, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	set := map[uint]bool{}
	for _, id := range ids {
		set[id] = true
	}
	var out []*model.HomeTask
	for _, t := range f.byID {
		if set[t.GuardianID] {
			cp := *t
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].GuardianID != out[j].GuardianID {
			return out[i].GuardianID < out[j].GuardianID
		}
		return out[i].Position < out[j].Position
	})
	return out, nil
}

func (f *fakeTasks) FindByGuardian(ctx context.Context, guardianID uint) ([]*model.HomeTask, error) {
	return f.FindByGuardians(ctx, []uint{guardianID})
}

func (f *fakeTasks) Save(_ context.Context, t *model.HomeTask) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *t
	f.byID[t.ID] = &cp
	return nil
}

func (f *fakeTasks) ReplaceForGuardian(_ context.Context, guardianID uint, tasks []*model.HomeTask) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, t := range f.byID {
		if t.GuardianID == guardianID {
			delete(f.byID, id)
		}
	}
	for i, t := range tasks {
		f.nextID++
		t.ID = f.nextID
		t.GuardianID = guardianID
		t.Position = i
		cp := *t
		f.byID[t.ID] = &cp
	}
	return nil
}

// fakeCache 以 JSON 保存，行为与 redis 实现一致
type fakeCache struct {
	mu            sync.Mutex
	entries       map[string][]byte
	invalidations int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string][]byte{}}
}

func (c *fakeCache) Get(_ context.Context, key string, dst interface{}) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	data, ok := c.entries[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(data, dst)
}

func (c *fakeCache) Set(_ context.Context, key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.entries[key] = data
	c.mu.Unlock()
	return nil
}

func (c *fakeCache) Invalidate(context.Context) error {
	c.mu.Lock()
	c.entries = map[string][]byte{}
	c.invalidations++
	c.mu.Unlock()
	return nil
}

// env 组装一套使用内存存储的服务
type env struct {
	users      *fakeUsers
	classrooms *fakeClassrooms
	learners   *fakeLearners
	tasks      *fakeTasks
	cache      *fakeCache
	settings   *ScoringSettings
}

func newEnv() *env {
	return &env{
		users:      newFakeUsers(),
		classrooms: newFakeClassrooms(),
		learners:   newFakeLearners(),
		tasks:      newFakeTasks(),
		cache:      newFakeCache(),
		settings:   NewScoringSettings(config.ScoringConfig{}),
	}
}

func (e *env) learnerService() *LearnerService {
	return NewLearnerService(e.learners, e.classrooms, e.users, e.cache, e.settings)
}

func (e *env) dashboardService() *DashboardService {
	return NewDashboardService(e.users, e.classrooms, e.learners, e.tasks, e.cache, e.settings)
}

func (e *env) taskService() *TaskService {
	return NewTaskService(e.tasks, e.learners, e.users, NewRecommendationService(nil), e.cache)
}

func (e *env) addUser(role model.UserRole, name, email string) *model.User {
	u := &model.User{Name: name, Email: email, Role: role}
	_ = e.users.Create(context.Background(), u)
	return u
}

func (e *env) addClassroom(teacherID uint, name string) *model.Classroom {
	c := &model.Classroom{Name: name, TeacherID: teacherID}
	_ = e.classrooms.Create(context.Background(), c)
	return c
}

func (e *env) addLearner(classroomID uint, nickname string, pre, post *scoring.SubScore) *model.Learner {
	l := &model.Learner{Nickname: nickname, ClassroomID: classroomID, PreScore: pre, PostScore: post}
	_ = e.learners.Create(context.Background(), l)
	return l
}

func sub(pattern, numbers int) *scoring.SubScore {
	return &scoring.SubScore{Pattern: pattern, Numbers: numbers}
}

func scoringConfig(total, pass int) config.ScoringConfig {
	return config.ScoringConfig{TestTotal: total, PassThreshold: pass}
}

func stringsReader(s string) *strings.Reader {
	return strings.NewReader(s)
}
