package controllers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/taskplanner-backend/api/responses"
	"github.com/angelmondragon/taskplanner-backend/api/validators"
	adminsvc "github.com/angelmondragon/taskplanner-backend/internal/admin"
	pkgerrors "github.com/angelmondragon/taskplanner-backend/pkg/errors"
	"github.com/angelmondragon/taskplanner-backend/pkg/logger"
)

const adminListMaxLimit = 500

// AdminListTasks returns tasks across all workers with optional filters.
// The user filter query key is `user` to match the frontend contract.
func AdminListTasks(svc adminsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "admin service unavailable"))
			return
		}

		date, err := validators.ParseQueryDate(r, "date")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", 0, 0, adminListMaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filter := adminsvc.TaskFilter{
			Date:   date,
			UserID: strings.TrimSpace(r.URL.Query().Get("user")),
			Limit:  limit,
		}

		tasks, err := svc.ListTasks(r.Context(), filter)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, tasks)
	}
}

// AdminUpsertTask creates or edits any worker's task for a day.
func AdminUpsertTask(svc adminsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "admin service unavailable"))
			return
		}

		uid, date, err := taskPathParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload adminsvc.UpdateTaskRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		task, err := svc.UpsertTask(r.Context(), uid, date, payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if logg != nil {
			logCtx := logg.WithField(r.Context(), "target_user", uid)
			logg.Info(logg.WithTaskDate(logCtx, date), "admin.task.upserted")
		}

		responses.WriteSuccess(w, task)
	}
}

// AdminDeleteTask removes one worker's task for a day.
func AdminDeleteTask(svc adminsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "admin service unavailable"))
			return
		}

		uid, date, err := taskPathParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteTask(r.Context(), uid, date); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, nil)
	}
}

// AdminExportTasks streams the task table as a CSV attachment.
func AdminExportTasks(svc adminsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "admin service unavailable"))
			return
		}

		date, err := validators.ParseQueryDate(r, "date")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		file, err := svc.ExportTasks(r.Context(), date)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		w.Header().Set("Content-Type", file.ContentType)
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", file.Filename))
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(file.Data); err != nil && logg != nil {
			logg.Error(r.Context(), "export.write", err)
		}
	}
}

func taskPathParams(r *http.Request) (string, string, error) {
	uid := strings.TrimSpace(chi.URLParam(r, "user_id"))
	if uid == "" {
		return "", "", pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}

	date, err := validators.ParseDate("date", chi.URLParam(r, "date"))
	if err != nil {
		return "", "", err
	}

	return uid, date, nil
}
