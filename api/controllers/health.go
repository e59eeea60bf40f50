package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/angelmondragon/taskplanner-backend/api/responses"
	"github.com/angelmondragon/taskplanner-backend/pkg/config"
	"github.com/angelmondragon/taskplanner-backend/pkg/db"
	pkgerrors "github.com/angelmondragon/taskplanner-backend/pkg/errors"
	"github.com/angelmondragon/taskplanner-backend/pkg/logger"
	"github.com/angelmondragon/taskplanner-backend/pkg/redis"
)

const readyProbeTimeout = 5 * time.Second

func Health(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-TaskPlanner-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "ok"})
	}
}

// HealthReady probes the backing stores. The cache probe reports disabled
// when Redis is not configured; the database is always required.
func HealthReady(cfg *config.Config, logg *logger.Logger, database db.Pinger, cache redis.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-TaskPlanner-Env", cfg.App.Env)
		if database == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "readiness probes not configured"))
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), readyProbeTimeout)
		defer cancel()

		checks := map[string]string{"database": "up", "cache": "disabled"}
		failed := false

		if err := database.Ping(ctx); err != nil {
			checks["database"] = "down"
			failed = true
		}
		if cache != nil {
			checks["cache"] = "up"
			if err := cache.Ping(ctx); err != nil {
				checks["cache"] = "down"
				failed = true
			}
		}

		if failed {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.New(pkgerrors.CodeDependency, "dependency probes failed").WithDetails(checks))
			return
		}
		responses.WriteSuccess(w, map[string]any{"status": "ready", "checks": checks})
	}
}
