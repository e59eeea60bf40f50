package tasks

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/taskplanner-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/taskplanner-backend/pkg/errors"
)

const (
	defaultHistoryLimit = 30
	maxHistoryLimit     = 100
)

type taskRepository interface {
	FindByUserAndDate(ctx context.Context, uid, date string) (*models.Task, error)
	FindPrevious(ctx context.Context, uid, before string) (*models.Task, error)
	ListByUser(ctx context.Context, uid string, limit int) ([]models.Task, error)
	Upsert(ctx context.Context, candidate *models.Task, updates map[string]any) error
}

// Service exposes the planner operations available to an ordinary user.
type Service interface {
	Today(ctx context.Context, user *models.User, date string) (*DayResponse, error)
	Previous(ctx context.Context, user *models.User, before string) (*DayResponse, error)
	Save(ctx context.Context, user *models.User, req SaveTaskRequest) (*TaskDTO, error)
	History(ctx context.Context, user *models.User, limit int) ([]TaskDTO, error)
}

type service struct {
	repo taskRepository
}

// NewService builds a task service backed by the provided repository.
func NewService(repo taskRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("task repository required")
	}
	return &service{repo: repo}, nil
}

// Today returns the caller's entry for the requested day, defaulting to the
// current UTC date. When no row exists the response carries a non-persisted
// template seeded from the user's sticky assignment defaults so clients can
// pre-fill the day's form.
func (s *service) Today(ctx context.Context, user *models.User, date string) (*DayResponse, error) {
	if user == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "missing user context")
	}

	target, err := resolveDay(date)
	if err != nil {
		return nil, err
	}

	task, err := s.repo.FindByUserAndDate(ctx, user.UID, target)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &DayResponse{Exists: false, Task: templateFor(user, target)}, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load task")
	}
	return &DayResponse{Exists: true, Task: FromModel(task)}, nil
}

// Previous returns the caller's most recent entry strictly before the given
// day (default today). A miss is reported plainly; no template applies.
func (s *service) Previous(ctx context.Context, user *models.User, before string) (*DayResponse, error) {
	if user == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "missing user context")
	}

	target, err := resolveDay(before)
	if err != nil {
		return nil, err
	}

	task, err := s.repo.FindPrevious(ctx, user.UID, target)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &DayResponse{Exists: false, Task: nil}, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load previous task")
	}
	return &DayResponse{Exists: true, Task: FromModel(task)}, nil
}

// Save upserts the caller's entry for the payload's day (default today).
// Fields present in the payload overwrite stored values; absent fields are
// untouched. The write is a single atomic create-or-update keyed on
// (user_id, date), so concurrent saves for the same day cannot produce
// duplicate rows.
func (s *service) Save(ctx context.Context, user *models.User, req SaveTaskRequest) (*TaskDTO, error) {
	if user == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "missing user context")
	}
	if req.TotalPagesDone != nil && *req.TotalPagesDone < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "total_pages_done must not be negative")
	}

	target := Today()
	if req.Date != nil && strings.TrimSpace(*req.Date) != "" {
		normalized, err := NormalizeDay(*req.Date)
		if err != nil {
			return nil, err
		}
		target = normalized
	}

	now := time.Now().UTC()
	updates := req.changes()
	updates["updated_at"] = now

	candidate := &models.Task{
		ID:        uuid.New(),
		UserID:    user.UID,
		Date:      target,
		OwnerName: OwnerName(user),
		Planner:   DayName(target),
		Status:    StatusPending,
		CreatedAt: &now,
		UpdatedAt: &now,
	}
	req.applyTo(candidate)

	if err := s.repo.Upsert(ctx, candidate, updates); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save task")
	}

	saved, err := s.repo.FindByUserAndDate(ctx, user.UID, target)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load saved task")
	}
	return FromModel(saved), nil
}

// History returns up to limit entries for the caller, newest day first.
// Out-of-range limits fall back to the defaults rather than failing; the
// HTTP layer rejects them before reaching here.
func (s *service) History(ctx context.Context, user *models.User, limit int) ([]TaskDTO, error) {
	if user == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "missing user context")
	}
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}

	rows, err := s.repo.ListByUser(ctx, user.UID, limit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list history")
	}
	return FromModels(rows), nil
}

func resolveDay(value string) (string, error) {
	if strings.TrimSpace(value) == "" {
		return Today(), nil
	}
	return NormalizeDay(value)
}

func templateFor(user *models.User, date string) *TaskDTO {
	return &TaskDTO{
		UserID:        user.UID,
		OwnerName:     OwnerName(user),
		Date:          date,
		Planner:       DayName(date),
		Status:        StatusNotStarted,
		AssignWebsite: user.AssignWebsite,
		TaskAssignNo:  user.TaskAssignNo,
		OtherTasks:    user.OtherTasks,
	}
}

func (req SaveTaskRequest) changes() map[string]any {
	out := map[string]any{}
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

func (req SaveTaskRequest) applyTo(task *models.Task) {
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
