package repository

import (
	"context"

	"mathtatag_backend/internal/model"

	"gorm.io/gorm"
)

type HomeTaskRepository struct {
	DB *gorm.DB
}

func NewHomeTaskRepository(db *gorm.DB) *HomeTaskRepository {
	return &HomeTaskRepository{DB: db}
}

func (r *HomeTaskRepository) FindByID(ctx context.Context, id uint) (*model.HomeTask, error) {
	var task model.HomeTask
	err := r.DB.WithContext(ctx).First(&task, id).Error
	return &task, err
}

func (r *HomeTaskRepository) FindByGuardian(ctx context.Context, guardianID uint) ([]*model.HomeTask, error) {
	var tasks []*model.HomeTask
	err := r.DB.WithContext(ctx).Where("guardian_id = ?", guardianID).Order("position ASC, id ASC").Find(&tasks).Error
	return tasks, err
}

func (r *HomeTaskRepository) FindByGuardians(ctx context.Context, guardianIDs []uint) ([]*model.HomeTask, error) {
	var tasks []*model.HomeTask
	if len(guardianIDs) == 0 {
		return tasks, nil
	}
	err := r.DB.WithContext(ctx).Where("guardian_id IN ?", guardianIDs).Order("guardian_id ASC, position ASC").Find(&tasks).Error
	return tasks, err
}

// Save 整条覆盖，后写者生效
func (r *HomeTaskRepository) Save(ctx context.Context, task *model.HomeTask) error {
	return r.DB.WithContext(ctx).Save(task).Error
}

// ReplaceForGuardian 在事务中删除旧任务并写入新任务列表
func (r *HomeTaskRepository) ReplaceForGuardian(ctx context.Context, guardianID uint, tasks []*model.HomeTask) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("guardian_id = ?", guardianID).Delete(&model.HomeTask{}).Error; err != nil {
			return err
		}
		if len(tasks) == 0 {
			return nil
		}
		for i, t := range tasks {
			t.GuardianID = guardianID
			t.Position = i
		}
		return tx.Create(&tasks).Error
	})
}
