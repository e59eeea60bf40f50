package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"go.uber.org/multierr"
	"gorm.io/gorm"

	"github.com/angelmondragon/taskplanner-backend/internal/tasks"
	"github.com/angelmondragon/taskplanner-backend/internal/users"
	"github.com/angelmondragon/taskplanner-backend/pkg/config"
	"github.com/angelmondragon/taskplanner-backend/pkg/db"
	"github.com/angelmondragon/taskplanner-backend/pkg/db/models"
	"github.com/angelmondragon/taskplanner-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/taskplanner-backend/pkg/errors"
	"github.com/angelmondragon/taskplanner-backend/pkg/logger"
	"github.com/angelmondragon/taskplanner-backend/pkg/migrate"
	"github.com/angelmondragon/taskplanner-backend/pkg/security"
)

// Demo account the frontend walkthrough logs in with.
const (
	seedEmail    = "mohit1234@gmail.com"
	seedName     = "Mohit Test"
	seedPassword = "password123"
	seedDays     = 3
)

var seedStatuses = []string{"Completed", "In Progress", "Pending"}

var seedWebsites = []string{"FleetRabbit", "HeavyVehicleInspection", "Oxmaint"}

var seedTopics = []string{"SEO", "Competitors", "Keywords"}

func main() {
	logg := logger.New(logger.Options{ServiceName: "seed"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "seed",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":   cfg.App.Env,
		"email": seedEmail,
	})

	userRepo := users.NewRepository(dbClient.DB())
	taskRepo := tasks.NewRepository(dbClient.DB())

	user, err := ensureUser(ctx, logg, userRepo, cfg)
	if err != nil {
		logg.Error(ctx, "failed to ensure seed user", err)
		os.Exit(1)
	}

	inserted, err := seedPastTasks(ctx, logg, taskRepo, user)
	if err != nil {
		logg.Error(ctx, "seeding finished with failures", err)
		os.Exit(1)
	}

	logg.Info(logg.WithField(ctx, "inserted", inserted), "seeding complete")
}

// ensureUser looks up the demo account by email and creates it when absent.
// An existing account is reused as is, password included.
func ensureUser(ctx context.Context, logg *logger.Logger, repo *users.Repository, cfg *config.Config) (*models.User, error) {
	user, err := repo.FindByEmail(ctx, seedEmail)
	if err == nil {
		logg.Info(logg.WithField(ctx, "uid", user.UID), "found existing seed user")
		return user, nil
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		return nil, err
	}

	hash, err := security.HashPassword(seedPassword, cfg.Password)
	if err != nil {
		return nil, fmt.Errorf("hash seed password: %w", err)
	}

	user, err = repo.Create(ctx, users.CreateUserDTO{
		UID:          uuid.NewString(),
		Email:        seedEmail,
		Name:         seedName,
		PasswordHash: hash,
		Role:         enums.RoleUser,
	})
	if err != nil {
		return nil, err
	}

	logg.Info(logg.WithField(ctx, "uid", user.UID), "created seed user")
	return user, nil
}

// seedPastTasks writes one mock planner entry per day for the three days
// before today, skipping days that already have a row. Failures on one day
// do not stop the others.
func seedPastTasks(ctx context.Context, logg *logger.Logger, repo *tasks.Repository, user *models.User) (int, error) {
	now := time.Now().UTC()

	var errs error
	inserted := 0
	for offset := 1; offset <= seedDays; offset++ {
		day := now.AddDate(0, 0, -offset).Format(tasks.DateLayout)
		dayCtx := logg.WithField(ctx, "date", day)

		_, err := repo.FindByUserAndDate(ctx, user.UID, day)
		if err == nil {
			logg.Info(dayCtx, "task already exists, skipping")
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			errs = multierr.Append(errs, fmt.Errorf("check task for %s: %w", day, err))
			continue
		}

		task := mockTask(user, day, offset, now)
		if err := repo.Upsert(ctx, task, map[string]any{"updated_at": now}); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("insert task for %s: %w", day, err))
			continue
		}

		logg.Info(dayCtx, "inserted mock task")
		inserted++
	}

	return inserted, errs
}

func mockTask(user *models.User, day string, offset int, now time.Time) *models.Task {
	return &models.Task{
		ID:             uuid.New(),
		UserID:         user.UID,
		Date:           day,
		OwnerName:      tasks.OwnerName(user),
		Planner:        tasks.DayName(day),
		Status:         seedStatuses[rand.Intn(len(seedStatuses))],
		AssignWebsite:  seedWebsites[rand.Intn(len(seedWebsites))],
		TaskAssignNo:   fmt.Sprintf("%d pages", rand.Intn(11)+5),
		OtherTasks:     "Research on " + seedTopics[rand.Intn(len(seedTopics))],
		TaskUpdates:    fmt.Sprintf("Worked on %s. Updated meta tags and content structure. Reference: https://example.com/doc-%d", day, offset),
		Additional:     "None",
		TotalPagesDone: rand.Intn(10) + 3,
		CreatedAt:      &now,
		UpdatedAt:      &now,
	}
}
