package auth

import (
	"context"
	"testing"
	"time"

	pkgAuth "github.com/angelmondragon/taskplanner-backend/pkg/auth"
	"github.com/angelmondragon/taskplanner-backend/pkg/config"
	"github.com/angelmondragon/taskplanner-backend/pkg/db/models"
	"github.com/angelmondragon/taskplanner-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/taskplanner-backend/pkg/errors"
	"github.com/angelmondragon/taskplanner-backend/pkg/security"
)

func TestServiceLoginIssuesToken(t *testing.T) {
	password := "worker-secret"
	user := &models.User{
		UID:          "user-1",
		Email:        "worker@example.com",
		Name:         "Worker One",
		PasswordHash: mustHashPassword(t, password),
		Role:         enums.RoleUser,
		IsActive:     true,
	}
	cfg := testJWTConfig()

	repo := &stubUserRepo{user: user}
	svc := buildTestService(t, repo, cfg)

	resp, err := svc.Login(context.Background(), LoginRequest{
		Email:    "  Worker@Example.com ",
		Password: password,
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	claims, err := pkgAuth.ParseAccessToken(cfg, resp.AccessToken)
	if err != nil {
		t.Fatalf("parse access token: %v", err)
	}
	if claims.UserID != "user-1" {
		t.Fatalf("expected uid claim user-1, got %s", claims.UserID)
	}
	if claims.Email != "worker@example.com" {
		t.Fatalf("expected email claim, got %s", claims.Email)
	}
	if claims.Role != enums.RoleUser {
		t.Fatalf("expected user role claim, got %s", claims.Role)
	}

	if resp.User == nil || resp.User.UID != "user-1" {
		t.Fatalf("expected user in response, got %+v", resp.User)
	}
	if resp.User.LastLoginAt == nil {
		t.Fatal("expected last login to be recorded")
	}
	if !repo.lastLoginSet {
		t.Fatal("expected last login write-through")
	}
}

func TestServiceLoginWrongPassword(t *testing.T) {
	user := &models.User{
		UID:          "user-1",
		Email:        "worker@example.com",
		PasswordHash: mustHashPassword(t, "right"),
		Role:         enums.RoleUser,
		IsActive:     true,
	}
	svc := buildTestService(t, &stubUserRepo{user: user}, testJWTConfig())

	_, err := svc.Login(context.Background(), LoginRequest{Email: user.Email, Password: "wrong"})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestServiceLoginUnknownEmail(t *testing.T) {
	repo := &stubUserRepo{err: pkgerrors.New(pkgerrors.CodeNotFound, "user not found")}
	svc := buildTestService(t, repo, testJWTConfig())

	_, err := svc.Login(context.Background(), LoginRequest{Email: "ghost@example.com", Password: "x"})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
	if typed := pkgerrors.As(err); typed.Message() != invalidCredentialsMessage {
		t.Fatalf("unknown email must not be distinguishable, got %q", typed.Message())
	}
}

func TestServiceLoginDisabledAccount(t *testing.T) {
	password := "secret"
	user := &models.User{
		UID:          "user-1",
		Email:        "off@example.com",
		PasswordHash: mustHashPassword(t, password),
		Role:         enums.RoleUser,
		IsActive:     false,
	}
	svc := buildTestService(t, &stubUserRepo{user: user}, testJWTConfig())

	_, err := svc.Login(context.Background(), LoginRequest{Email: user.Email, Password: password})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized for disabled account, got %v", err)
	}
}

func TestServiceLoginEmptyCredentials(t *testing.T) {
	svc := buildTestService(t, &stubUserRepo{}, testJWTConfig())

	_, err := svc.Login(context.Background(), LoginRequest{Email: "   ", Password: ""})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized for empty credentials, got %v", err)
	}
}

func TestNewServiceRequiresUserRepo(t *testing.T) {
	if _, err := NewService(ServiceParams{JWTConfig: testJWTConfig()}); err == nil {
		t.Fatal("expected error creating service without user repo")
	}
}

func buildTestService(t *testing.T, repo userRepository, cfg config.JWTConfig) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{UserRepo: repo, JWTConfig: cfg})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "secret",
		Issuer:            "taskplanner",
		ExpirationMinutes: 30,
	}
}

func mustHashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := security.HashPassword(password, config.PasswordConfig{})
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return hash
}

type stubUserRepo struct {
	user *models.User
	err  error

	lastLoginSet bool
}

func (s *stubUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.user == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
	}
	return s.user, nil
}

func (s *stubUserRepo) UpdateLastLogin(ctx context.Context, uid string, at time.Time) error {
	if s.user != nil && s.user.UID == uid {
		s.lastLoginSet = true
	}
	return nil
}
