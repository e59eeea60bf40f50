package users

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/angelmondragon/taskplanner-backend/pkg/db"
	"github.com/angelmondragon/taskplanner-backend/pkg/db/models"
	"github.com/angelmondragon/taskplanner-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/taskplanner-backend/pkg/errors"
)

// Repository exposes user-account persistence. It returns typed errors
// rather than raw GORM sentinels: the access gate consumes it directly and
// branches on error codes without knowing about the storage layer.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a users repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new account. A duplicate email surfaces as a validation
// error so callers can report it without inspecting constraint names.
func (r *Repository) Create(ctx context.Context, dto CreateUserDTO) (*models.User, error) {
	user := dto.ToModel()
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "email already registered")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create user")
	}
	return user, nil
}

// FindByUID loads a user by their stable identifier.
func (r *Repository) FindByUID(ctx context.Context, uid string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "uid = ?", uid).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}
	return &user, nil
}

// FindByEmail retrieves the user matching the provided email. Input is
// normalized the same way addresses are stored.
func (r *Repository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).
		Where("email = ?", NormalizeEmail(email)).
		First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}
	return &user, nil
}

// ListExcludingRole returns all accounts whose role differs from the given
// one, ordered by email for stable output.
func (r *Repository) ListExcludingRole(ctx context.Context, role enums.Role) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).
		Where("role <> ?", role).
		Order("email ASC").
		Find(&users).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list users")
	}
	return users, nil
}

// Delete removes the account with the given uid. Task rows are left in
// place so historical entries stay exportable.
func (r *Repository) Delete(ctx context.Context, uid string) error {
	tx := r.db.WithContext(ctx).Where("uid = ?", uid).Delete(&models.User{})
	if tx.Error != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, tx.Error, "delete user")
	}
	if tx.RowsAffected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
	}
	return nil
}

// UpdatePasswordHash replaces the stored credential for the given uid.
func (r *Repository) UpdatePasswordHash(ctx context.Context, uid, hash string) error {
	tx := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("uid = ?", uid).
		Update("password_hash", hash)
	if tx.Error != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, tx.Error, "update password")
	}
	if tx.RowsAffected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
	}
	return nil
}

// UpdateLastLogin refreshes the user's last_login_at timestamp without
// touching updated_at.
func (r *Repository) UpdateLastLogin(ctx context.Context, uid string, at time.Time) error {
	if err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("uid = ?", uid).
		UpdateColumn("last_login_at", at).Error; err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update last login")
	}
	return nil
}

// UpdateAssignmentDefaults writes the provided sticky assignment values onto
// the user so they seed future planner templates. A missing user is not an
// error here: the write-back is a side effect of task edits, and the task
// itself may outlive its owner.
func (r *Repository) UpdateAssignmentDefaults(ctx context.Context, uid string, defaults AssignmentDefaults) error {
	changes := defaults.changes()
	if len(changes) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("uid = ?", uid).
		Updates(changes).Error; err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update assignment defaults")
	}
	return nil
}
