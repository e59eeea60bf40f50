package models

import (
	"time"

	"github.com/google/uuid"
)

// Task is one user's planner entry for one calendar day. The pair
// (user_id, date) is unique; saves for an existing day update the row
// in place instead of inserting a sibling.
type Task struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID string    `gorm:"column:user_id;type:text;not null;uniqueIndex:idx_tasks_user_date,priority:1"`
	Date   string    `gorm:"column:date;type:text;not null;uniqueIndex:idx_tasks_user_date,priority:2"`

	OwnerName string `gorm:"column:owner_name;not null;default:''"`
	Planner   string `gorm:"column:planner;not null;default:''"`
	Status    string `gorm:"column:status;not null;default:'Pending'"`

	AssignWebsite string `gorm:"column:assign_website;not null;default:''"`
	TaskAssignNo  string `gorm:"column:task_assign_no;not null;default:''"`
	OtherTasks    string `gorm:"column:other_tasks;not null;default:''"`
	TaskUpdates   string `gorm:"column:task_updates;not null;default:''"`
	Additional    string `gorm:"column:additional;not null;default:''"`
	Note          string `gorm:"column:note;not null;default:''"`

	TotalPagesDone int `gorm:"column:total_pages_done;not null;default:0"`

	CreatedAt *time.Time `gorm:"column:created_at"`
	UpdatedAt *time.Time `gorm:"column:updated_at"`
}
