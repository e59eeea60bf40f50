package controllers

import (
	"net/http"

	"github.com/angelmondragon/taskplanner-backend/api/responses"
	"github.com/angelmondragon/taskplanner-backend/api/validators"
	"github.com/angelmondragon/taskplanner-backend/internal/auth"
	pkgerrors "github.com/angelmondragon/taskplanner-backend/pkg/errors"
	"github.com/angelmondragon/taskplanner-backend/pkg/logger"
)

// AuthLogin exchanges worker credentials for a bearer token.
func AuthLogin(svc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		var payload auth.LoginRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Login(r.Context(), payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		w.Header().Set("X-TaskPlanner-Token", result.AccessToken)
		responses.WriteSuccess(w, result)
	}
}
