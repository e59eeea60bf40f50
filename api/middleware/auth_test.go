package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/angelmondragon/taskplanner-backend/pkg/auth"
	"github.com/angelmondragon/taskplanner-backend/pkg/config"
	"github.com/angelmondragon/taskplanner-backend/pkg/db/models"
	"github.com/angelmondragon/taskplanner-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/taskplanner-backend/pkg/errors"
)

func TestAuthRejectsMissingToken(t *testing.T) {
	cfg := config.JWTConfig{Secret: "secret", Issuer: "issuer", ExpirationMinutes: 10}
	handler := Auth(cfg, stubUserResolver{user: activeUser()}, nil)(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestAuthRejectsInvalidToken(t *testing.T) {
	cfg := config.JWTConfig{Secret: "secret", Issuer: "issuer", ExpirationMinutes: 10}
	handler := Auth(cfg, stubUserResolver{user: activeUser()}, nil)(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer invalid")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestAuthRejectsExpiredToken(t *testing.T) {
	cfg := config.JWTConfig{Secret: "secret", Issuer: "issuer", ExpirationMinutes: 10}
	token := mintTestToken(t, cfg, time.Now().Add(-time.Hour))
	handler := Auth(cfg, stubUserResolver{user: activeUser()}, nil)(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestAuthAllowsValidToken(t *testing.T) {
	cfg := config.JWTConfig{Secret: "secret", Issuer: "issuer", ExpirationMinutes: 60}
	token := mintTestToken(t, cfg, time.Now())

	var captured struct {
		user *models.User
		role string
	}
	handler := Auth(cfg, stubUserResolver{user: activeUser()}, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured.user = UserFromContext(r.Context())
		captured.role = RoleFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if captured.user == nil || captured.user.UID != "user-abc" {
		t.Fatalf("expected resolved user in context, got %+v", captured.user)
	}
	if captured.role != string(enums.RoleUser) {
		t.Fatalf("expected role user got %s", captured.role)
	}
}

func TestAuthRejectsDeletedUser(t *testing.T) {
	cfg := config.JWTConfig{Secret: "secret", Issuer: "issuer", ExpirationMinutes: 60}
	token := mintTestToken(t, cfg, time.Now())
	resolver := stubUserResolver{err: pkgerrors.New(pkgerrors.CodeNotFound, "user not found")}
	handler := Auth(cfg, resolver, nil)(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for deleted user got %d", resp.Code)
	}
}

func TestAuthRejectsInactiveUser(t *testing.T) {
	cfg := config.JWTConfig{Secret: "secret", Issuer: "issuer", ExpirationMinutes: 60}
	token := mintTestToken(t, cfg, time.Now())
	user := activeUser()
	user.IsActive = false
	handler := Auth(cfg, stubUserResolver{user: user}, nil)(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for inactive user got %d", resp.Code)
	}
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func activeUser() *models.User {
	return &models.User{
		UID:      "user-abc",
		Email:    "worker@example.com",
		Name:     "Worker",
		Role:     enums.RoleUser,
		IsActive: true,
	}
}

func mintTestToken(t *testing.T, cfg config.JWTConfig, issuedAt time.Time) string {
	t.Helper()
	payload := auth.AccessTokenPayload{
		UserID: "user-abc",
		Email:  "worker@example.com",
		Role:   enums.RoleUser,
	}
	token, err := auth.MintAccessToken(cfg, issuedAt, payload)
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

type stubUserResolver struct {
	user *models.User
	err  error
}

func (s stubUserResolver) FindByUID(ctx context.Context, uid string) (*models.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.user, nil
}
