package repository

import (
	"context"

	"mathtatag_backend/internal/model"

	"gorm.io/gorm"
)

type ClassroomRepository struct {
	DB *gorm.DB
}

func NewClassroomRepository(db *gorm.DB) *ClassroomRepository {
	return &ClassroomRepository{DB: db}
}

func (r *ClassroomRepository) Create(ctx context.Context, classroom *model.Classroom) error {
	return r.DB.WithContext(ctx).Create(classroom).Error
}

func (r *ClassroomRepository) FindByID(ctx context.Context, id uint) (*model.Classroom, error) {
	var classroom model.Classroom
	err := r.DB.WithContext(ctx).First(&classroom, id).Error
	return &classroom, err
}

func (r *ClassroomRepository) FindByTeacher(ctx context.Context, teacherID uint) ([]*model.Classroom, error) {
	var classrooms []*model.Classroom
	err := r.DB.WithContext(ctx).Where("teacher_id = ?", teacherID).Order("id ASC").Find(&classrooms).Error
	return classrooms, err
}

// FindByTeacherAndName 导入时用于去重
func (r *ClassroomRepository) FindByTeacherAndName(ctx context.Context, teacherID uint, name string) (*model.Classroom, error) {
	var classroom model.Classroom
	err := r.DB.WithContext(ctx).Where("teacher_id = ? AND name = ?", teacherID, name).First(&classroom).Error
	return &classroom, err
}

func (r *ClassroomRepository) FindAll(ctx context.Context) ([]*model.Classroom, error) {
	var classrooms []*model.Classroom
	err := r.DB.WithContext(ctx).Order("id ASC").Find(&classrooms).Error
	return classrooms, err
}
