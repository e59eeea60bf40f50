package tasks

import (
	"time"

	"github.com/angelmondragon/taskplanner-backend/pkg/db/models"
)

// Task status values by creation path: rows persisted through a user save
// start as Pending, while the today-template and rows synthesized on a
// user's behalf start as Not Started.
const (
	StatusPending    = "Pending"
	StatusNotStarted = "Not Started"
)

// TaskDTO is the transport shape for a single planner entry. Timestamps are
// omitted on templates, which never touched the store.
type TaskDTO struct {
	UserID         string     `json:"user_id"`
	OwnerName      string     `json:"owner_name"`
	Date           string     `json:"date"`
	Planner        string     `json:"planner"`
	Status         string     `json:"status"`
	AssignWebsite  string     `json:"assign_website"`
	TaskAssignNo   string     `json:"task_assign_no"`
	OtherTasks     string     `json:"other_tasks"`
	TaskUpdates    string     `json:"task_updates"`
	Additional     string     `json:"additional"`
	Note           string     `json:"note"`
	TotalPagesDone int        `json:"total_pages_done"`
	CreatedAt      *time.Time `json:"created_at,omitempty"`
	UpdatedAt      *time.Time `json:"updated_at,omitempty"`
}

// DayResponse reports whether a planner entry exists for the requested day.
// The exists flag is authoritative; clients must not infer existence from
// the task field, which carries a form-filling template on a miss.
type DayResponse struct {
	Exists bool     `json:"exists"`
	Task   *TaskDTO `json:"task"`
}

// SaveTaskRequest is the user-facing save payload. Every field is optional;
// absent fields leave the stored values untouched.
type SaveTaskRequest struct {
	Date           *string `json:"date,omitempty"`
	Status         *string `json:"status,omitempty"`
	AssignWebsite  *string `json:"assign_website,omitempty"`
	TaskAssignNo   *string `json:"task_assign_no,omitempty"`
	OtherTasks     *string `json:"other_tasks,omitempty"`
	TaskUpdates    *string `json:"task_updates,omitempty"`
	Additional     *string `json:"additional,omitempty"`
	Note           *string `json:"note,omitempty"`
	TotalPagesDone *int    `json:"total_pages_done,omitempty" validate:"omitempty,gte=0"`
}

func FromModel(task *models.Task) *TaskDTO {
	if task == nil {
		return nil
	}

	return &TaskDTO{
		UserID:         task.UserID,
		OwnerName:      task.OwnerName,
		Date:           task.Date,
		Planner:        task.Planner,
		Status:         task.Status,
		AssignWebsite:  task.AssignWebsite,
		TaskAssignNo:   task.TaskAssignNo,
		OtherTasks:     task.OtherTasks,
		TaskUpdates:    task.TaskUpdates,
		Additional:     task.Additional,
		Note:           task.Note,
		TotalPagesDone: task.TotalPagesDone,
		CreatedAt:      task.CreatedAt,
		UpdatedAt:      task.UpdatedAt,
	}
}

// FromModels converts a result set, always returning a non-nil slice.
func FromModels(tasks []models.Task) []TaskDTO {
	out := make([]TaskDTO, 0, len(tasks))
	for i := range tasks {
		out = append(out, *FromModel(&tasks[i]))
	}
	return out
}

// OwnerName resolves the display name stamped onto a user's planner rows.
func OwnerName(user *models.User) string {
	if user == nil {
		return "Unknown"
	}
	if user.Name != "" {
		return user.Name
	}
	if user.Email != "" {
		return user.Email
	}
	return "Unknown"
}
