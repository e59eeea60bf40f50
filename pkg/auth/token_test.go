package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/angelmondragon/taskplanner-backend/pkg/config"
	"github.com/angelmondragon/taskplanner-backend/pkg/enums"
)

func TestMintAndParseAccessToken(t *testing.T) {
	cfg := config.JWTConfig{
		Secret:            "secret",
		Issuer:            "taskplanner",
		ExpirationMinutes: 30,
	}
	now := time.Now().UTC()

	payload := AccessTokenPayload{
		UserID: "user-abc",
		Email:  "worker@example.com",
		Role:   enums.RoleUser,
	}

	token, err := MintAccessToken(cfg, now, payload)
	if err != nil {
		t.Fatalf("mint access token: %v", err)
	}

	claims, err := ParseAccessToken(cfg, token)
	if err != nil {
		t.Fatalf("parse access token: %v", err)
	}

	if claims.UserID != "user-abc" {
		t.Fatalf("expected uid user-abc, got %s", claims.UserID)
	}
	if claims.Email != "worker@example.com" {
		t.Fatalf("email not preserved, got %s", claims.Email)
	}
	if claims.Role != enums.RoleUser {
		t.Fatalf("unexpected role %s", claims.Role)
	}

	// RegisteredClaims is embedded, so access fields directly.
	if claims.Issuer != cfg.Issuer {
		t.Fatalf("expected issuer %s, got %s", cfg.Issuer, claims.Issuer)
	}
	if claims.ID == "" {
		t.Fatal("expected a jti to be assigned")
	}

	exp := now.Add(time.Duration(cfg.ExpirationMinutes) * time.Minute)
	diff := claims.ExpiresAt.Sub(exp)
	if diff < 0 {
		diff = -diff
	}
	if diff >= time.Second {
		t.Fatalf("expected exp roughly %v, got %v (diff %v)", exp.UTC(), claims.ExpiresAt.UTC(), diff)
	}
}

func TestParseAccessTokenInvalidSignature(t *testing.T) {
	cfg := config.JWTConfig{
		Secret:            "secret",
		Issuer:            "taskplanner",
		ExpirationMinutes: 10,
	}
	now := time.Now()
	payload := AccessTokenPayload{
		UserID: "user-abc",
		Role:   enums.RoleUser,
	}

	token, err := MintAccessToken(cfg, now, payload)
	if err != nil {
		t.Fatalf("mint access token: %v", err)
	}

	otherCfg := cfg
	otherCfg.Secret = "different"
	_, err = ParseAccessToken(otherCfg, token)
	if err == nil {
		t.Fatal("expected invalid signature error")
	}
	var verr *VerifyError
	if !errors.As(err, &verr) || verr.Kind != VerifyInvalid {
		t.Fatalf("expected invalid kind, got %v", err)
	}
}

func TestParseAccessTokenExpired(t *testing.T) {
	cfg := config.JWTConfig{
		Secret:            "secret",
		Issuer:            "taskplanner",
		ExpirationMinutes: 15,
	}
	now := time.Now().Add(-time.Hour)
	payload := AccessTokenPayload{
		UserID: "user-abc",
		Role:   enums.RoleAdmin,
	}

	token, err := MintAccessToken(cfg, now, payload)
	if err != nil {
		t.Fatalf("mint access token: %v", err)
	}

	_, err = ParseAccessToken(cfg, token)
	if err == nil {
		t.Fatal("expected expiration error")
	}
	var verr *VerifyError
	if !errors.As(err, &verr) || verr.Kind != VerifyExpired {
		t.Fatalf("expected expired kind, got %v", err)
	}
}

func TestParseAccessTokenGarbage(t *testing.T) {
	cfg := config.JWTConfig{
		Secret:            "secret",
		Issuer:            "taskplanner",
		ExpirationMinutes: 15,
	}

	_, err := ParseAccessToken(cfg, "definitely-not-a-jwt")
	if err == nil {
		t.Fatal("expected malformed token error")
	}
	var verr *VerifyError
	if !errors.As(err, &verr) || verr.Kind != VerifyMalformed {
		t.Fatalf("expected malformed kind, got %v", err)
	}
}

func TestMintAccessTokenInvalidPayload(t *testing.T) {
	cfg := config.JWTConfig{
		Secret:            "secret",
		Issuer:            "taskplanner",
		ExpirationMinutes: 5,
	}
	now := time.Now()

	if _, err := MintAccessToken(cfg, now, AccessTokenPayload{UserID: "u", Role: ""}); err == nil {
		t.Fatal("expected invalid role error")
	}
	if _, err := MintAccessToken(cfg, now, AccessTokenPayload{UserID: " ", Role: enums.RoleUser}); err == nil {
		t.Fatal("expected missing user id error")
	}
}
