package model

import (
	"time"
)

type UserRole string

const (
	Admin   UserRole = "admin"
	Teacher UserRole = "teacher"
	Parent  UserRole = "parent"
)

// swagger:model User
type User struct {
	BaseModel
	Name     string   `gorm:"size:100;not null" json:"name"`
	Email    string   `gorm:"size:100;unique;not null" json:"email"`
	Password string   `gorm:"size:100;not null" json:"-"`
	Role     UserRole `gorm:"type:enum('admin','teacher','parent');default:'parent'" json:"role"`
	School   string   `gorm:"size:150" json:"school,omitempty"`
	Contact  string   `gorm:"size:50" json:"contact,omitempty"`
	// 家长填写的家庭月收入区间，用于家庭任务推荐
	HouseholdIncome string    `gorm:"size:50" json:"householdIncome,omitempty"`
	Disabled        bool      `gorm:"default:false" json:"disabled"`
	LastLogin       time.Time `gorm:"default:CURRENT_TIMESTAMP(3)" json:"lastLogin"`
}

func (User) TableName() string {
	return "users"
}
