package models

import (
	"time"

	"github.com/angelmondragon/taskplanner-backend/pkg/enums"
)

// User represents the canonical identity entity. Besides credentials it
// carries the last assignment values an admin wrote for the user, which
// seed the next day's planner template.
type User struct {
	UID          string     `gorm:"column:uid;type:text;primaryKey"`
	Email        string     `gorm:"type:text;not null;uniqueIndex"`
	Name         string     `gorm:"column:name;not null"`
	PasswordHash string     `gorm:"column:password_hash;not null"`
	Role         enums.Role `gorm:"type:text;not null;default:'user'"`

	AssignWebsite string `gorm:"column:assign_website;not null;default:''"`
	TaskAssignNo  string `gorm:"column:task_assign_no;not null;default:''"`
	OtherTasks    string `gorm:"column:other_tasks;not null;default:''"`

	IsActive    bool       `gorm:"column:is_active;not null;default:true"`
	LastLoginAt *time.Time `gorm:"column:last_login_at"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
