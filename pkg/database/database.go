package database

import (
	"fmt"

	"mathtatag_backend/internal/config"
	"mathtatag_backend/internal/model"
	applog "mathtatag_backend/pkg/logger"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig, mode string) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	logLevel := logger.Warn
	if mode == "debug" {
		logLevel = logger.Info
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, err
	}

	applog.Log.Info("Database connection established", zap.String("host", cfg.Host), zap.String("db", cfg.DBName))
	return db, nil
}

// Migrate 建表
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&model.User{},
		&model.Classroom{},
		&model.Learner{},
		&model.HomeTask{},
	)
	if err != nil {
		return err
	}
	applog.Log.Info("Database migration completed")
	return nil
}

// SeedAdmin 没有管理员时创建默认管理员账号
func SeedAdmin(db *gorm.DB, cfg config.AdminConfig) error {
	if cfg.Email == "" || cfg.Password == "" {
		return nil
	}

	var count int64
	if err := db.Model(&model.User{}).Where("role = ?", model.Admin).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := &model.User{
		Name:     "Administrator",
		Email:    cfg.Email,
		Password: string(hash),
		Role:     model.Admin,
	}
	if err := db.Create(admin).Error; err != nil {
		return err
	}
	applog.Log.Info("Default admin account created", zap.String("email", cfg.Email))
	return nil
}
