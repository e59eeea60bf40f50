package admin

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/taskplanner-backend/internal/export"
	"github.com/angelmondragon/taskplanner-backend/internal/tasks"
	"github.com/angelmondragon/taskplanner-backend/internal/users"
	"github.com/angelmondragon/taskplanner-backend/pkg/config"
	"github.com/angelmondragon/taskplanner-backend/pkg/db/models"
	"github.com/angelmondragon/taskplanner-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/taskplanner-backend/pkg/errors"
	"github.com/angelmondragon/taskplanner-backend/pkg/security"
)

const (
	defaultListLimit  = 100
	maxListLimit      = 500
	minPasswordLength = 6
)

type taskRepository interface {
	FindByUserAndDate(ctx context.Context, uid, date string) (*models.Task, error)
	List(ctx context.Context, filter tasks.ListFilter) ([]models.Task, error)
	Upsert(ctx context.Context, candidate *models.Task, updates map[string]any) error
	Delete(ctx context.Context, uid, date string) error
}

type userRepository interface {
	Create(ctx context.Context, dto users.CreateUserDTO) (*models.User, error)
	FindByUID(ctx context.Context, uid string) (*models.User, error)
	ListExcludingRole(ctx context.Context, role enums.Role) ([]models.User, error)
	Delete(ctx context.Context, uid string) error
	UpdatePasswordHash(ctx context.Context, uid, hash string) error
	UpdateAssignmentDefaults(ctx context.Context, uid string, defaults users.AssignmentDefaults) error
}

// Service exposes the privileged operations behind the admin routes.
type Service interface {
	ListTasks(ctx context.Context, filter TaskFilter) ([]tasks.TaskDTO, error)
	UpsertTask(ctx context.Context, uid, date string, req UpdateTaskRequest) (*tasks.TaskDTO, error)
	DeleteTask(ctx context.Context, uid, date string) error
	CreateUser(ctx context.Context, req CreateUserRequest) (*CreateUserResponse, error)
	ListUsers(ctx context.Context) ([]users.UserDTO, error)
	DeleteUser(ctx context.Context, uid string) error
	ResetPassword(ctx context.Context, uid string, req ResetPasswordRequest) error
	ExportTasks(ctx context.Context, date string) (*export.File, error)
}

type service struct {
	tasks       taskRepository
	users       userRepository
	passwordCfg config.PasswordConfig
}

// ServiceParams bundles the dependencies required to build an admin service.
type ServiceParams struct {
	TaskRepo       taskRepository
	UserRepo       userRepository
	PasswordConfig config.PasswordConfig
}

// NewService constructs an admin service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.TaskRepo == nil {
		return nil, fmt.Errorf("task repository is required")
	}
	if params.UserRepo == nil {
		return nil, fmt.Errorf("user repository is required")
	}
	return &service{
		tasks:       params.TaskRepo,
		users:       params.UserRepo,
		passwordCfg: params.PasswordConfig,
	}, nil
}

// ListTasks queries every user's entries, newest day first, with optional
// day and owner filters.
func (s *service) ListTasks(ctx context.Context, filter TaskFilter) ([]tasks.TaskDTO, error) {
	date := ""
	if filter.Date != "" {
		normalized, err := tasks.NormalizeDay(filter.Date)
		if err != nil {
			return nil, err
		}
		date = normalized
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	rows, err := s.tasks.List(ctx, tasks.ListFilter{
		Date:   date,
		UserID: filter.UserID,
		Limit:  limit,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list tasks")
	}
	return tasks.FromModels(rows), nil
}

// UpsertTask merges the payload into the entry for (uid, date), creating it
// when absent. Creation requires the target user to exist, since the fresh
// row is synthesized from their defaults; a merge onto an existing row does
// not, so entries can still be edited after their owner is deleted. Any
// assignment fields in the payload are written back onto the user as new
// sticky defaults.
func (s *service) UpsertTask(ctx context.Context, uid, date string, req UpdateTaskRequest) (*tasks.TaskDTO, error) {
	day, err := tasks.NormalizeDay(date)
	if err != nil {
		return nil, err
	}
	if req.TotalPagesDone != nil && *req.TotalPagesDone < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "total_pages_done must not be negative")
	}

	existing, err := s.tasks.FindByUserAndDate(ctx, uid, day)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load task")
	}

	now := time.Now().UTC()
	var candidate *models.Task
	if existing != nil {
		row := *existing
		candidate = &row
	} else {
		owner, userErr := s.users.FindByUID(ctx, uid)
		if userErr != nil {
			if typed := pkgerrors.As(userErr); typed != nil && typed.Code() == pkgerrors.CodeNotFound {
				return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
			}
			return nil, userErr
		}
		candidate = newTaskForUser(owner, day, now)
	}
	req.applyTo(candidate)
	candidate.UpdatedAt = &now

	updates := req.changes()
	updates["updated_at"] = now

	if err := s.tasks.Upsert(ctx, candidate, updates); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save task")
	}

	if req.hasStickyDefaults() {
		if err := s.users.UpdateAssignmentDefaults(ctx, uid, req.stickyDefaults()); err != nil {
			return nil, err
		}
	}

	saved, err := s.tasks.FindByUserAndDate(ctx, uid, day)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load saved task")
	}
	return tasks.FromModel(saved), nil
}

// DeleteTask hard-removes one entry.
func (s *service) DeleteTask(ctx context.Context, uid, date string) error {
	day, err := tasks.NormalizeDay(date)
	if err != nil {
		return err
	}

	if err := s.tasks.Delete(ctx, uid, day); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "task not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete task")
	}
	return nil
}

// CreateUser provisions a new ordinary account with a locally generated
// uid and a hashed credential.
func (s *service) CreateUser(ctx context.Context, req CreateUserRequest) (*CreateUserResponse, error) {
	if len(req.Password) < minPasswordLength {
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	}

	hash, err := security.HashPassword(req.Password, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	user, err := s.users.Create(ctx, users.CreateUserDTO{
		UID:          uuid.NewString(),
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: hash,
		Role:         enums.RoleUser,
	})
	if err != nil {
		return nil, err
	}

	return &CreateUserResponse{
		UID:  user.UID,
		User: users.FromModel(user),
	}, nil
}

// ListUsers returns every non-admin account.
func (s *service) ListUsers(ctx context.Context) ([]users.UserDTO, error) {
	rows, err := s.users.ListExcludingRole(ctx, enums.RoleAdmin)
	if err != nil {
		return nil, err
	}

	out := make([]users.UserDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *users.FromModel(&rows[i]))
	}
	return out, nil
}

// DeleteUser removes the account. Planner entries are left untouched so
// history remains exportable.
func (s *service) DeleteUser(ctx context.Context, uid string) error {
	return s.users.Delete(ctx, uid)
}

// ResetPassword replaces a user's credential with a hash of the supplied
// password.
func (s *service) ResetPassword(ctx context.Context, uid string, req ResetPasswordRequest) error {
	if len(req.Password) < minPasswordLength {
		return pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	}

	hash, err := security.HashPassword(req.Password, s.passwordCfg)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}
	return s.users.UpdatePasswordHash(ctx, uid, hash)
}

// ExportTasks renders all entries, optionally filtered to one day, into
// the fixed-column CSV layout. An empty result set is a not-found, matching
// the listing the admin screen shows before offering the download.
func (s *service) ExportTasks(ctx context.Context, date string) (*export.File, error) {
	day := ""
	if date != "" {
		normalized, err := tasks.NormalizeDay(date)
		if err != nil {
			return nil, err
		}
		day = normalized
	}

	rows, err := s.tasks.List(ctx, tasks.ListFilter{Date: day})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list tasks")
	}
	if len(rows) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no tasks found")
	}

	filename := fmt.Sprintf("tasks_all_%s.csv", tasks.Today())
	if day != "" {
		filename = fmt.Sprintf("tasks_%s.csv", day)
	}

	file, err := export.TasksCSV(filename, rows)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "render export")
	}
	return file, nil
}

func newTaskForUser(user *models.User, date string, now time.Time) *models.Task {
	return &models.Task{
		ID:            uuid.New(),
		UserID:        user.UID,
		Date:          date,
		OwnerName:     tasks.OwnerName(user),
		Planner:       tasks.DayName(date),
		Status:        tasks.StatusNotStarted,
		AssignWebsite: user.AssignWebsite,
		TaskAssignNo:  user.TaskAssignNo,
		OtherTasks:    user.OtherTasks,
		CreatedAt:     &now,
		UpdatedAt:     &now,
	}
}
