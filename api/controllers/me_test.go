package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/angelmondragon/taskplanner-backend/api/middleware"
	"github.com/angelmondragon/taskplanner-backend/pkg/db/models"
	"github.com/angelmondragon/taskplanner-backend/pkg/enums"
)

func TestMeReturnsIdentity(t *testing.T) {
	handler := Me(nil)

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req = req.WithContext(middleware.WithUser(req.Context(), &models.User{
		UID:   "worker-1",
		Email: "worker@example.com",
		Role:  enums.RoleUser,
	}))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}

	var envelope struct {
		Data map[string]string `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data["uid"] != "worker-1" {
		t.Fatalf("unexpected uid %s", envelope.Data["uid"])
	}
	if envelope.Data["email"] != "worker@example.com" {
		t.Fatalf("unexpected email %s", envelope.Data["email"])
	}
	if envelope.Data["role"] != "user" {
		t.Fatalf("unexpected role %s", envelope.Data["role"])
	}
}

func TestMeMissingContext(t *testing.T) {
	handler := Me(nil)

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", rec.Code)
	}
}
