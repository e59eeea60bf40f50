package users

import (
	"strings"
	"time"

	"github.com/angelmondragon/taskplanner-backend/pkg/db/models"
	"github.com/angelmondragon/taskplanner-backend/pkg/enums"
)

// UserDTO is the transport shape that omits the stored credential.
type UserDTO struct {
	UID           string     `json:"uid"`
	Email         string     `json:"email"`
	Name          string     `json:"name"`
	Role          enums.Role `json:"role"`
	AssignWebsite string     `json:"assign_website"`
	TaskAssignNo  string     `json:"task_assign_no"`
	OtherTasks    string     `json:"other_tasks"`
	IsActive      bool       `json:"is_active"`
	LastLoginAt   *time.Time `json:"last_login_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// CreateUserDTO holds the data required by the repo to persist a new account.
type CreateUserDTO struct {
	UID          string
	Email        string
	Name         string
	PasswordHash string
	Role         enums.Role
	IsActive     *bool
}

// AssignmentDefaults carries the sticky assignment fields an admin may
// overwrite on a user. Nil fields are left untouched.
type AssignmentDefaults struct {
	AssignWebsite *string
	TaskAssignNo  *string
	OtherTasks    *string
}

func (d AssignmentDefaults) changes() map[string]any {
	out := map[string]any{}
	if d.AssignWebsite != nil {
		out["assign_website"] = *d.AssignWebsite
	}
	if d.TaskAssignNo != nil {
		out["task_assign_no"] = *d.TaskAssignNo
	}
	if d.OtherTasks != nil {
		out["other_tasks"] = *d.OtherTasks
	}
	return out
}

func FromModel(u *models.User) *UserDTO {
	if u == nil {
		return nil
	}

	return &UserDTO{
		UID:           u.UID,
		Email:         u.Email,
		Name:          u.Name,
		Role:          u.Role,
		AssignWebsite: u.AssignWebsite,
		TaskAssignNo:  u.TaskAssignNo,
		OtherTasks:    u.OtherTasks,
		IsActive:      u.IsActive,
		LastLoginAt:   u.LastLoginAt,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}

func (c CreateUserDTO) ToModel() *models.User {
	isActive := true
	if c.IsActive != nil {
		isActive = *c.IsActive
	}

	role := c.Role
	if role == "" {
		role = enums.RoleUser
	}

	return &models.User{
		UID:          c.UID,
		Email:        NormalizeEmail(c.Email),
		Name:         c.Name,
		PasswordHash: c.PasswordHash,
		Role:         role,
		IsActive:     isActive,
	}
}

// NormalizeEmail lower-cases and trims an address. Emails are unique per
// account and always stored in this form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
