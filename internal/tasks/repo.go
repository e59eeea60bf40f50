package tasks

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/angelmondragon/taskplanner-backend/pkg/db/models"
)

// Repository handles planner-entry persistence. One row exists per
// (user_id, date); Upsert relies on that compound key to stay atomic under
// concurrent saves.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to task operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListFilter narrows cross-user task queries.
type ListFilter struct {
	Date   string
	UserID string
	Limit  int
}

// FindByUserAndDate loads the single entry for a user and day.
func (r *Repository) FindByUserAndDate(ctx context.Context, uid, date string) (*models.Task, error) {
	var task models.Task
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND date = ?", uid, date).
		First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// FindPrevious returns the user's most recent entry strictly before the
// given day.
func (r *Repository) FindPrevious(ctx context.Context, uid, before string) (*models.Task, error) {
	var task models.Task
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND date < ?", uid, before).
		Order("date DESC").
		First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// ListByUser returns up to limit entries for one user, newest day first.
func (r *Repository) ListByUser(ctx context.Context, uid string, limit int) ([]models.Task, error) {
	var tasks []models.Task
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", uid).
		Order("date DESC").
		Limit(limit).
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// List returns entries across all users, newest day first, with optional
// day and user filters. A non-positive limit returns everything, which the
// export path relies on.
func (r *Repository) List(ctx context.Context, filter ListFilter) ([]models.Task, error) {
	q := r.db.WithContext(ctx).Model(&models.Task{})
	if filter.Date != "" {
		q = q.Where("date = ?", filter.Date)
	}
	if filter.UserID != "" {
		q = q.Where("user_id = ?", filter.UserID)
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}

	var tasks []models.Task
	if err := q.Order("date DESC, user_id ASC").Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// Upsert atomically creates the candidate row or, when the (user_id, date)
// key already exists, applies only the update assignments. The candidate
// carries creation-time defaults that must not clobber an existing row, so
// the two field sets are deliberately separate.
func (r *Repository) Upsert(ctx context.Context, candidate *models.Task, updates map[string]any) error {
	assignments := make(map[string]any, len(updates))
	for column, value := range updates {
		assignments[column] = value
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "date"}},
			DoUpdates: clause.Assignments(assignments),
		}).
		Create(candidate).Error
}

// Delete hard-removes one entry, reporting gorm.ErrRecordNotFound when the
// key did not match a row.
func (r *Repository) Delete(ctx context.Context, uid, date string) error {
	tx := r.db.WithContext(ctx).
		Where("user_id = ? AND date = ?", uid, date).
		Delete(&models.Task{})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
