package tasks

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/taskplanner-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/taskplanner-backend/pkg/errors"
)

func TestNewServiceRequiresRepo(t *testing.T) {
	if _, err := NewService(nil); err == nil {
		t.Fatal("expected error creating service without repo")
	}
}

func TestTodayReturnsExistingRow(t *testing.T) {
	now := time.Now().UTC()
	stub := &stubTaskRepo{
		task: &models.Task{
			ID:        uuid.New(),
			UserID:    "u1",
			Date:      "2025-03-14",
			Status:    "Completed",
			CreatedAt: &now,
		},
	}
	svc := mustService(t, stub)

	res, err := svc.Today(context.Background(), plannerUser(), "2025-03-14")
	if err != nil {
		t.Fatalf("today: %v", err)
	}
	if !res.Exists {
		t.Fatal("expected exists=true for stored row")
	}
	if res.Task == nil || res.Task.Status != "Completed" {
		t.Fatalf("expected stored status, got %+v", res.Task)
	}
}

func TestTodaySynthesizesTemplateOnMiss(t *testing.T) {
	stub := &stubTaskRepo{findErr: gorm.ErrRecordNotFound}
	svc := mustService(t, stub)

	user := plannerUser()
	user.Name = ""
	user.AssignWebsite = "https://example.org"
	user.TaskAssignNo = "T-9"
	user.OtherTasks = "standup notes"

	res, err := svc.Today(context.Background(), user, "2025-03-14")
	if err != nil {
		t.Fatalf("today: %v", err)
	}
	if res.Exists {
		t.Fatal("expected exists=false on miss")
	}
	tpl := res.Task
	if tpl == nil {
		t.Fatal("expected template task on miss")
	}
	if tpl.Status != StatusNotStarted {
		t.Fatalf("expected template status %q, got %q", StatusNotStarted, tpl.Status)
	}
	if tpl.Planner != "Friday" {
		t.Fatalf("expected weekday planner, got %q", tpl.Planner)
	}
	if tpl.OwnerName != user.Email {
		t.Fatalf("expected email fallback owner, got %q", tpl.OwnerName)
	}
	if tpl.AssignWebsite != "https://example.org" || tpl.TaskAssignNo != "T-9" || tpl.OtherTasks != "standup notes" {
		t.Fatalf("expected sticky defaults copied, got %+v", tpl)
	}
	if tpl.CreatedAt != nil || tpl.UpdatedAt != nil {
		t.Fatal("expected template to carry no timestamps")
	}
}

func TestTodayRejectsBadDate(t *testing.T) {
	svc := mustService(t, &stubTaskRepo{})

	_, err := svc.Today(context.Background(), plannerUser(), "14-03-2025")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestPreviousMissHasNoTemplate(t *testing.T) {
	stub := &stubTaskRepo{prevErr: gorm.ErrRecordNotFound}
	svc := mustService(t, stub)

	res, err := svc.Previous(context.Background(), plannerUser(), "2025-03-14")
	if err != nil {
		t.Fatalf("previous: %v", err)
	}
	if res.Exists {
		t.Fatal("expected exists=false")
	}
	if res.Task != nil {
		t.Fatalf("expected nil task on miss, got %+v", res.Task)
	}
}

func TestPreviousReturnsStoredRow(t *testing.T) {
	stub := &stubTaskRepo{prev: &models.Task{UserID: "u1", Date: "2025-03-12"}}
	svc := mustService(t, stub)

	res, err := svc.Previous(context.Background(), plannerUser(), "")
	if err != nil {
		t.Fatalf("previous: %v", err)
	}
	if !res.Exists || res.Task == nil || res.Task.Date != "2025-03-12" {
		t.Fatalf("expected stored previous row, got %+v", res.Task)
	}
	if stub.prevBefore != Today() {
		t.Fatalf("expected default cutoff of today, got %q", stub.prevBefore)
	}
}

func TestSaveBuildsCandidateAndPartialUpdates(t *testing.T) {
	merged := &models.Task{UserID: "u1", Date: "2025-03-14", Status: "Completed", TotalPagesDone: 5}
	stub := &stubTaskRepo{task: merged}
	svc := mustService(t, stub)

	date := "2025-03-14"
	status := "Completed"
	pages := 5
	dto, err := svc.Save(context.Background(), plannerUser(), SaveTaskRequest{
		Date:           &date,
		Status:         &status,
		TotalPagesDone: &pages,
	})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if dto.Status != "Completed" || dto.TotalPagesDone != 5 {
		t.Fatalf("expected merged row returned, got %+v", dto)
	}

	if stub.gotCandidate == nil {
		t.Fatal("expected upsert candidate")
	}
	if stub.gotCandidate.ID == uuid.Nil {
		t.Fatal("expected candidate id to be generated")
	}
	if stub.gotCandidate.Planner != "Friday" {
		t.Fatalf("expected weekday planner on candidate, got %q", stub.gotCandidate.Planner)
	}
	if stub.gotCandidate.OwnerName != "Worker One" {
		t.Fatalf("expected owner name from user, got %q", stub.gotCandidate.OwnerName)
	}
	if stub.gotCandidate.Status != "Completed" {
		t.Fatalf("expected payload overlaid on candidate, got %q", stub.gotCandidate.Status)
	}
	if stub.gotCandidate.CreatedAt == nil {
		t.Fatal("expected candidate creation timestamp")
	}

	if _, ok := stub.gotUpdates["status"]; !ok {
		t.Fatal("expected status in update set")
	}
	if _, ok := stub.gotUpdates["total_pages_done"]; !ok {
		t.Fatal("expected total_pages_done in update set")
	}
	if _, ok := stub.gotUpdates["updated_at"]; !ok {
		t.Fatal("expected updated_at to always be refreshed")
	}
	if _, ok := stub.gotUpdates["note"]; ok {
		t.Fatal("absent fields must not be updated")
	}
	if _, ok := stub.gotUpdates["date"]; ok {
		t.Fatal("the key itself must not appear in the update set")
	}
}

func TestSaveDefaultsToToday(t *testing.T) {
	stub := &stubTaskRepo{task: &models.Task{UserID: "u1", Date: Today()}}
	svc := mustService(t, stub)

	if _, err := svc.Save(context.Background(), plannerUser(), SaveTaskRequest{}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if stub.gotCandidate.Date != Today() {
		t.Fatalf("expected today's date, got %q", stub.gotCandidate.Date)
	}
	if stub.gotCandidate.Status != StatusPending {
		t.Fatalf("expected pending default, got %q", stub.gotCandidate.Status)
	}
}

func TestSaveRejectsNegativePages(t *testing.T) {
	svc := mustService(t, &stubTaskRepo{})

	pages := -1
	_, err := svc.Save(context.Background(), plannerUser(), SaveTaskRequest{TotalPagesDone: &pages})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestSaveRejectsBadDate(t *testing.T) {
	svc := mustService(t, &stubTaskRepo{})

	date := "2025/03/14"
	_, err := svc.Save(context.Background(), plannerUser(), SaveTaskRequest{Date: &date})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestHistoryClampsLimit(t *testing.T) {
	stub := &stubTaskRepo{history: []models.Task{{UserID: "u1", Date: "2025-03-14"}}}
	svc := mustService(t, stub)

	if _, err := svc.History(context.Background(), plannerUser(), 0); err != nil {
		t.Fatalf("history: %v", err)
	}
	if stub.listLimit != 30 {
		t.Fatalf("expected default limit 30, got %d", stub.listLimit)
	}

	if _, err := svc.History(context.Background(), plannerUser(), 500); err != nil {
		t.Fatalf("history: %v", err)
	}
	if stub.listLimit != 100 {
		t.Fatalf("expected cap at 100, got %d", stub.listLimit)
	}
}

func mustService(t *testing.T, repo taskRepository) Service {
	t.Helper()
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func plannerUser() *models.User {
	return &models.User{
		UID:      "u1",
		Email:    "worker@example.com",
		Name:     "Worker One",
		IsActive: true,
	}
}

type stubTaskRepo struct {
	task       *models.Task
	findErr    error
	prev       *models.Task
	prevErr    error
	history    []models.Task
	historyErr error
	upsertErr  error

	gotCandidate *models.Task
	gotUpdates   map[string]any
	prevBefore   string
	listLimit    int
}

func (s *stubTaskRepo) FindByUserAndDate(ctx context.Context, uid, date string) (*models.Task, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	if s.task == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return s.task, nil
}

func (s *stubTaskRepo) FindPrevious(ctx context.Context, uid, before string) (*models.Task, error) {
	s.prevBefore = before
	if s.prevErr != nil {
		return nil, s.prevErr
	}
	if s.prev == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return s.prev, nil
}

func (s *stubTaskRepo) ListByUser(ctx context.Context, uid string, limit int) ([]models.Task, error) {
	s.listLimit = limit
	return s.history, s.historyErr
}

func (s *stubTaskRepo) Upsert(ctx context.Context, candidate *models.Task, updates map[string]any) error {
	s.gotCandidate = candidate
	s.gotUpdates = updates
	return s.upsertErr
}
