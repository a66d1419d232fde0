package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"mathtatag_backend/internal/config"
	"mathtatag_backend/internal/model"
	"mathtatag_backend/internal/util"
	"mathtatag_backend/pkg/logger"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	UserRepo UserStore
	Cache    Cache
	Cfg      *config.Config
}

func NewAuthService(userRepo UserStore, cache Cache, cfg *config.Config) *AuthService {
	return &AuthService{
		UserRepo: userRepo,
		Cache:    cache,
		Cfg:      cfg,
	}
}

// RegisterParent 家长自助注册
func (s *AuthService) RegisterParent(ctx context.Context, user *model.User) error {
	user.Role = model.Parent
	return s.register(ctx, user)
}

// CreateTeacher 仅管理员调用
func (s *AuthService) CreateTeacher(ctx context.Context, user *model.User) error {
	user.Role = model.Teacher
	return s.register(ctx, user)
}

func (s *AuthService) register(ctx context.Context, user *model.User) error {
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	_, err := s.UserRepo.FindByEmail(ctx, user.Email)
	if err == nil {
		return util.ErrEmailRegistered
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.Password = string(hashedPassword)
	if err := s.UserRepo.Create(ctx, user); err != nil {
		return err
	}
	logger.Log.Info("User registered", zap.Uint("userID", user.ID), zap.String("role", string(user.Role)))
	// 看板中的教师数与家长概览随之变化
	invalidate(ctx, s.Cache)
	return nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	user, err := s.UserRepo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, util.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, util.ErrInvalidCredentials
	}
	if user.Disabled {
		return "", nil, util.ErrAccountDisabled
	}

	token, err := util.GenerateJWT(user, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
	if err != nil {
		return "", nil, err
	}

	now := time.Now()
	if err := s.UserRepo.TouchLastLogin(ctx, user.ID, now); err != nil {
		logger.Log.Warn("Failed to update last login", zap.Uint("userID", user.ID), zap.Error(err))
	}
	user.LastLogin = now
	return token, user, nil
}

func (s *AuthService) ListTeachers(ctx context.Context) ([]*model.User, error) {
	return s.UserRepo.FindByRole(ctx, model.Teacher)
}

func (s *AuthService) GetUser(ctx context.Context, id uint) (*model.User, error) {
	user, err := s.UserRepo.FindByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, util.ErrUserNotFound)
	}
	return user, nil
}

// UpdateProfile 家长更新联系方式与家庭收入区间
func (s *AuthService) UpdateProfile(ctx context.Context, id uint, name, contact, income string) (*model.User, error) {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	if name != "" {
		user.Name = name
	}
	if contact != "" {
		user.Contact = contact
	}
	if income != "" {
		user.HouseholdIncome = income
	}
	if err := s.UserRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	invalidate(ctx, s.Cache)
	return user, nil
}
