package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/angelmondragon/taskplanner-backend/api/responses"
	pkgAuth "github.com/angelmondragon/taskplanner-backend/pkg/auth"
	"github.com/angelmondragon/taskplanner-backend/pkg/config"
	"github.com/angelmondragon/taskplanner-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/taskplanner-backend/pkg/errors"
	"github.com/angelmondragon/taskplanner-backend/pkg/logger"
)

type userResolver interface {
	FindByUID(ctx context.Context, uid string) (*models.User, error)
}

// Auth validates a bearer token, resolves the account it names, and seeds
// the request context with the user record. A token whose user has since
// been deleted is rejected even if the signature is still valid.
func Auth(cfg config.JWTConfig, users userResolver, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if users == nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "user resolver not configured"))
				return
			}

			raw := strings.TrimSpace(r.Header.Get("Authorization"))
			if raw == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			token := raw
			if strings.HasPrefix(strings.ToLower(token), "bearer ") {
				token = strings.TrimSpace(token[7:])
			}
			if token == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			claims, err := pkgAuth.ParseAccessToken(cfg, token)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, verifyMessage(err)))
				return
			}

			user, err := users.FindByUID(r.Context(), claims.UserID)
			if err != nil {
				if typed := pkgerrors.As(err); typed != nil && typed.Code() == pkgerrors.CodeNotFound {
					responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "user not found"))
					return
				}
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolve user"))
				return
			}

			if !user.IsActive {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "account disabled"))
				return
			}

			ctx := WithUser(r.Context(), user)

			if logg != nil {
				ctx = logg.WithUserID(ctx, user.UID)
				ctx = logg.WithActorRole(ctx, string(user.Role))
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func verifyMessage(err error) string {
	var verr *pkgAuth.VerifyError
	if errors.As(err, &verr) && verr.Kind == pkgAuth.VerifyExpired {
		return "token expired"
	}
	return "invalid token"
}
