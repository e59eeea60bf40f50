package admin

import (
	"github.com/angelmondragon/taskplanner-backend/internal/users"
	"github.com/angelmondragon/taskplanner-backend/pkg/db/models"
)

// TaskFilter narrows the cross-user task listing.
type TaskFilter struct {
	Date   string
	UserID string
	Limit  int
}

// UpdateTaskRequest is the admin task payload. The field set is closed;
// unknown keys are rejected when the body is decoded. Absent fields leave
// stored values untouched.
type UpdateTaskRequest struct {
	OwnerName      *string `json:"owner_name,omitempty"`
	Planner        *string `json:"planner,omitempty"`
	Status         *string `json:"status,omitempty"`
	AssignWebsite  *string `json:"assign_website,omitempty"`
	TaskAssignNo   *string `json:"task_assign_no,omitempty"`
	OtherTasks     *string `json:"other_tasks,omitempty"`
	TaskUpdates    *string `json:"task_updates,omitempty"`
	Additional     *string `json:"additional,omitempty"`
	Note           *string `json:"note,omitempty"`
	TotalPagesDone *int    `json:"total_pages_done,omitempty" validate:"omitempty,gte=0"`
}

// CreateUserRequest carries the account fields for admin user creation.
type CreateUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name" validate:"required"`
}

// CreateUserResponse reports the generated uid alongside the new account.
type CreateUserResponse struct {
	UID  string         `json:"uid"`
	User *users.UserDTO `json:"user"`
}

// ResetPasswordRequest carries the replacement credential.
type ResetPasswordRequest struct {
	Password string `json:"password" validate:"required,min=6"`
}

func (req UpdateTaskRequest) changes() map[string]any {
	out := map[string]any{}
	if req.OwnerName != nil {
		out["owner_name"] = *req.OwnerName
	}
	if req.Planner != nil {
		out["planner"] = *req.Planner
	}
	if req.Status != nil {
		out["status"] = *req.Status
	}
	if req.AssignWebsite != nil {
		out["assign_website"] = *req.AssignWebsite
	}
	if req.TaskAssignNo != nil {
		out["task_assign_no"] = *req.TaskAssignNo
	}
	if req.OtherTasks != nil {
		out["other_tasks"] = *req.OtherTasks
	}
	if req.TaskUpdates != nil {
		out["task_updates"] = *req.TaskUpdates
	}
	if req.Additional != nil {
		out["additional"] = *req.Additional
	}
	if req.Note != nil {
		out["note"] = *req.Note
	}
	if req.TotalPagesDone != nil {
		out["total_pages_done"] = *req.TotalPagesDone
	}
	return out
}

func (req UpdateTaskRequest) applyTo(task *models.Task) {
	if req.OwnerName != nil {
		task.OwnerName = *req.OwnerName
	}
	if req.Planner != nil {
		task.Planner = *req.Planner
	}
	if req.Status != nil {
		task.Status = *req.Status
	}
	if req.AssignWebsite != nil {
		task.AssignWebsite = *req.AssignWebsite
	}
	if req.TaskAssignNo != nil {
		task.TaskAssignNo = *req.TaskAssignNo
	}
	if req.OtherTasks != nil {
		task.OtherTasks = *req.OtherTasks
	}
	if req.TaskUpdates != nil {
		task.TaskUpdates = *req.TaskUpdates
	}
	if req.Additional != nil {
		task.Additional = *req.Additional
	}
	if req.Note != nil {
		task.Note = *req.Note
	}
	if req.TotalPagesDone != nil {
		task.TotalPagesDone = *req.TotalPagesDone
	}
}

// stickyDefaults extracts the assignment fields that propagate back onto
// the owning user as template seeds for future days.
func (req UpdateTaskRequest) stickyDefaults() users.AssignmentDefaults {
	return users.AssignmentDefaults{
		AssignWebsite: req.AssignWebsite,
		TaskAssignNo:  req.TaskAssignNo,
		OtherTasks:    req.OtherTasks,
	}
}

func (req UpdateTaskRequest) hasStickyDefaults() bool {
	return req.AssignWebsite != nil || req.TaskAssignNo != nil || req.OtherTasks != nil
}
