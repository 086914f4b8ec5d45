package notifications

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

type testRepo struct {
	byID map[string]Notification
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Notification{}}
}

func (r *testRepo) Create(ctx context.Context, n Notification) error {
	if n.ID == "" {
		return errors.New("repo: id required")
	}
	if _, ok := r.byID[n.ID]; ok {
		return errors.New("repo: already exists")
	}
	r.byID[n.ID] = n
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Notification, error) {
	n, ok := r.byID[id]
	if !ok {
		return Notification{}, ErrNotFound
	}
	return n, nil
}

func (r *testRepo) ListByUser(ctx context.Context, userID string) ([]Notification, error) {
	out := make([]Notification, 0)
	for _, n := range r.byID {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *testRepo) Update(ctx context.Context, n Notification) error {
	if _, ok := r.byID[n.ID]; !ok {
		return ErrNotFound
	}
	r.byID[n.ID] = n
	return nil
}

// -------------------------
// Tests
// -------------------------

func TestService_Create_DefaultsUnread(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	now := time.Date(2025, 12, 22, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	n, err := svc.Create(context.Background(), CreateInput{
		UserID:     "user-1",
		Message:    "New adoption request for your pet Milo",
		Link:       "/pets/pet-1",
		AdoptionID: "adoption-1",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if n.Read {
		t.Fatalf("expected new notification unread")
	}
	if n.CreatedAt != now {
		t.Fatalf("expected CreatedAt=now")
	}
	if n.ID == "" {
		t.Fatalf("expected generated id")
	}
}

func TestService_Create_RequiresUserAndMessage(t *testing.T) {
	svc := NewService(newTestRepo())

	if _, err := svc.Create(context.Background(), CreateInput{Message: "hi"}); err != ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput without user, got %v", err)
	}
	if _, err := svc.Create(context.Background(), CreateInput{UserID: "user-1"}); err != ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput without message, got %v", err)
	}
}

func TestService_ListFor_NewestFirst(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	base := time.Date(2025, 12, 22, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		ts := base.Add(time.Duration(i) * time.Minute)
		svc.now = func() time.Time { return ts }
		if _, err := svc.Create(context.Background(), CreateInput{
			UserID:  "user-1",
			Message: "msg",
		}); err != nil {
			t.Fatalf("Create error: %v", err)
		}
	}

	// Otro usuario, no debe aparecer
	svc.now = func() time.Time { return base }
	if _, err := svc.Create(context.Background(), CreateInput{UserID: "user-2", Message: "other"}); err != nil {
		t.Fatalf("Create error: %v", err)
	}

	items, err := svc.ListFor(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("ListFor error: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("expected 3 notifications, got %d", len(items))
	}
	for i := 1; i < len(items); i++ {
		if items[i].CreatedAt.After(items[i-1].CreatedAt) {
			t.Fatalf("expected newest-first order")
		}
	}
}

func TestService_MarkRead_Idempotent(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	n, err := svc.Create(context.Background(), CreateInput{UserID: "user-1", Message: "msg"})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	first, err := svc.MarkRead(context.Background(), n.ID, "user-1")
	if err != nil {
		t.Fatalf("MarkRead #1 error: %v", err)
	}
	if !first.Read {
		t.Fatalf("expected read=true")
	}

	// idempotente: la segunda pasada no es error y sigue read=true
	second, err := svc.MarkRead(context.Background(), n.ID, "user-1")
	if err != nil {
		t.Fatalf("MarkRead #2 error: %v", err)
	}
	if !second.Read {
		t.Fatalf("expected read=true on second call")
	}
}

func TestService_MarkRead_Forbidden(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	n, err := svc.Create(context.Background(), CreateInput{UserID: "user-1", Message: "msg"})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	_, err = svc.MarkRead(context.Background(), n.ID, "user-2")
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	got, _ := repo.GetByID(context.Background(), n.ID)
	if got.Read {
		t.Fatalf("expected notification untouched")
	}
}

func TestService_MarkRead_NotFound(t *testing.T) {
	svc := NewService(newTestRepo())

	_, err := svc.MarkRead(context.Background(), "no-such-id", "user-1")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestService_Notify_DelegatesToCreate(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	if err := svc.Notify(context.Background(), "user-1", "msg", "/pets/p", "adoption-1"); err != nil {
		t.Fatalf("Notify error: %v", err)
	}

	items, _ := svc.ListFor(context.Background(), "user-1")
	if len(items) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(items))
	}
	if items[0].AdoptionID != "adoption-1" {
		t.Fatalf("expected adoption reference, got %q", items[0].AdoptionID)
	}
}
