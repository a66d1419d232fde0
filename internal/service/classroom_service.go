package service

import (
	"context"
	"strings"

	"mathtatag_backend/internal/model"
	"mathtatag_backend/internal/util"
)

type ClassroomService struct {
	ClassroomRepo ClassroomStore
	Cache         Cache
}

func NewClassroomService(classroomRepo ClassroomStore, cache Cache) *ClassroomService {
	return &ClassroomService{ClassroomRepo: classroomRepo, Cache: cache}
}

func (s *ClassroomService) Create(ctx context.Context, teacherID uint, name, school string) (*model.Classroom, error) {
	classroom := &model.Classroom{
		Name:      strings.TrimSpace(name),
		School:    strings.TrimSpace(school),
		TeacherID: teacherID,
	}
	if err := s.ClassroomRepo.Create(ctx, classroom); err != nil {
		return nil, err
	}
	invalidate(ctx, s.Cache)
	return classroom, nil
}

func (s *ClassroomService) ListByTeacher(ctx context.Context, teacherID uint) ([]*model.Classroom, error) {
	return s.ClassroomRepo.FindByTeacher(ctx, teacherID)
}

// Authorize 读取班级并校验归属，管理员可访问任意班级
func (s *ClassroomService) Authorize(ctx context.Context, actor Actor, classroomID uint) (*model.Classroom, error) {
	return authorizeClassroom(ctx, s.ClassroomRepo, actor, classroomID)
}

func authorizeClassroom(ctx context.Context, repo ClassroomStore, actor Actor, classroomID uint) (*model.Classroom, error) {
	classroom, err := repo.FindByID(ctx, classroomID)
	if err != nil {
		return nil, mapNotFound(err, util.ErrClassroomNotFound)
	}
	if !actor.IsAdmin() && classroom.TeacherID != actor.UserID {
		return nil, util.ErrPermissionDenied
	}
	return classroom, nil
}
