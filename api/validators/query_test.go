package validators

import (
	"net/http/httptest"
	"testing"
)

func TestParseQueryInt(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/tasks/history?limit=42", nil)
	got, err := ParseQueryInt(r, "limit", 30, 1, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 42 {
		t.Fatalf("expected 42, got %d", got)
	}

	r = httptest.NewRequest("GET", "/api/tasks/history", nil)
	got, err = ParseQueryInt(r, "limit", 30, 1, 100)
	if err != nil {
		t.Fatalf("unexpected error for default: %v", err)
	}
	if got != 30 {
		t.Fatalf("expected default 30, got %d", got)
	}

	r = httptest.NewRequest("GET", "/api/tasks/history?limit=0", nil)
	if _, err := ParseQueryInt(r, "limit", 30, 1, 100); err == nil {
		t.Fatal("expected out of range error")
	}

	r = httptest.NewRequest("GET", "/api/tasks/history?limit=abc", nil)
	if _, err := ParseQueryInt(r, "limit", 30, 1, 100); err == nil {
		t.Fatal("expected numeric error")
	}
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("date", " 2025-03-14 ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "2025-03-14" {
		t.Fatalf("expected canonical date, got %q", got)
	}

	if _, err := ParseDate("date", "14-03-2025"); err == nil {
		t.Fatal("expected format error")
	}
	if _, err := ParseDate("date", "2025-13-40"); err == nil {
		t.Fatal("expected invalid calendar date error")
	}
	if _, err := ParseDate("date", ""); err == nil {
		t.Fatal("expected required error")
	}
}

func TestParseQueryDateOptional(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/admin/tasks", nil)
	got, err := ParseQueryDate(r, "date")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "" {
		t.Fatalf("expected empty date, got %q", got)
	}

	r = httptest.NewRequest("GET", "/api/admin/tasks?date=2025-03-14", nil)
	got, err = ParseQueryDate(r, "date")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "2025-03-14" {
		t.Fatalf("unexpected date %q", got)
	}

	r = httptest.NewRequest("GET", "/api/admin/tasks?date=bogus", nil)
	if _, err := ParseQueryDate(r, "date"); err == nil {
		t.Fatal("expected format error")
	}
}
