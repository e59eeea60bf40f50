package controllers

import (
	"net/http"

	"github.com/angelmondragon/taskplanner-backend/api/middleware"
	"github.com/angelmondragon/taskplanner-backend/api/responses"
	pkgerrors "github.com/angelmondragon/taskplanner-backend/pkg/errors"
	"github.com/angelmondragon/taskplanner-backend/pkg/logger"
)

// Me echoes the identity resolved by the access gate.
func Me(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := middleware.UserFromContext(r.Context())
		if user == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing"))
			return
		}

		responses.WriteSuccess(w, map[string]string{
			"uid":   user.UID,
			"email": user.Email,
			"role":  string(user.Role),
		})
	}
}
