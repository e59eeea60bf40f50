package routes

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/taskplanner-backend/api/controllers"
	"github.com/angelmondragon/taskplanner-backend/api/middleware"
	adminsvc "github.com/angelmondragon/taskplanner-backend/internal/admin"
	"github.com/angelmondragon/taskplanner-backend/internal/auth"
	tasksvc "github.com/angelmondragon/taskplanner-backend/internal/tasks"
	"github.com/angelmondragon/taskplanner-backend/pkg/config"
	"github.com/angelmondragon/taskplanner-backend/pkg/db"
	"github.com/angelmondragon/taskplanner-backend/pkg/db/models"
	"github.com/angelmondragon/taskplanner-backend/pkg/logger"
	"github.com/angelmondragon/taskplanner-backend/pkg/metrics"
	"github.com/angelmondragon/taskplanner-backend/pkg/redis"
)

type userResolver interface {
	FindByUID(ctx context.Context, uid string) (*models.User, error)
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	httpMetrics *metrics.HTTPMetrics,
	gatherer prometheus.Gatherer,
	database db.Pinger,
	redisClient *redis.Client,
	usersRepo userResolver,
	authService auth.Service,
	taskService tasksvc.Service,
	adminService adminsvc.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
		middleware.CORS(),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	loginLimiter := middleware.AuthRateLimit(loginPolicy, nil, logg)
	if redisClient != nil {
		loginLimiter = middleware.AuthRateLimit(loginPolicy, redisClient, logg)
	}

	var cachePinger redis.Pinger
	if redisClient != nil {
		cachePinger = redisClient
	}

	r.Get("/health", controllers.Health(cfg))
	r.Get("/health/ready", controllers.HealthReady(cfg, logg, database, cachePinger))
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	r.Route("/api", func(r chi.Router) {
		r.With(loginLimiter).Post("/login", controllers.AuthLogin(authService, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, usersRepo, logg))

			r.Get("/me", controllers.Me(logg))

			r.Route("/tasks", func(r chi.Router) {
				r.Use(middleware.RequireAnyRole(logg, "user", "admin"))
				r.Get("/today", controllers.TaskToday(taskService, logg))
				r.Get("/previous", controllers.TaskPrevious(taskService, logg))
				r.Post("/save", controllers.TaskSave(taskService, logg))
				r.Get("/history", controllers.TaskHistory(taskService, logg))
			})

			r.Route("/admin", func(r chi.Router) {
				r.Use(middleware.RequireRole("admin", logg))
				r.Get("/tasks", controllers.AdminListTasks(adminService, logg))
				r.Put("/task/{user_id}/{date}", controllers.AdminUpsertTask(adminService, logg))
				r.Delete("/task/{user_id}/{date}", controllers.AdminDeleteTask(adminService, logg))
				r.Post("/create-user", controllers.AdminCreateUser(adminService, logg))
				r.Get("/users", controllers.AdminListUsers(adminService, logg))
				r.Delete("/user/{uid}", controllers.AdminDeleteUser(adminService, logg))
				r.Put("/user/{uid}/password", controllers.AdminResetPassword(adminService, logg))
				r.Get("/export/tasks", controllers.AdminExportTasks(adminService, logg))
			})
		})
	})

	return r
}
