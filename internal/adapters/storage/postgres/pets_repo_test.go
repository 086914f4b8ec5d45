package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"pet-adoption-market/internal/domain/pets"

	"github.com/DATA-DOG/go-sqlmock"
)

var petRows = []string{
	"id", "owner_user_id",
	"name", "type", "breed", "age", "description",
	"image_url", "image_key", "status",
	"created_at", "updated_at",
}

func TestPetsRepo_UpdateStatusIf_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("UPDATE pets SET status = (.+) WHERE id = (.+) AND status = (.+)").
		WithArgs("pet-1", "available", "pending").
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewPetsRepo(db)
	if err := repo.UpdateStatusIf(context.Background(), "pet-1", pets.StatusAvailable, pets.StatusPending); err != nil {
		t.Fatalf("expected success, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPetsRepo_UpdateStatusIf_Conflict(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	now := time.Now()

	mock.ExpectExec("UPDATE pets SET status = (.+) WHERE id = (.+) AND status = (.+)").
		WithArgs("pet-1", "available", "pending").
		WillReturnResult(sqlmock.NewResult(0, 0))

	// El pet existe pero con otro status: carrera perdida.
	mock.ExpectQuery("SELECT (.+) FROM pets WHERE id = ").
		WithArgs("pet-1").
		WillReturnRows(sqlmock.NewRows(petRows).AddRow(
			"pet-1", "owner-1",
			"Milo", "dog", "mixed", 3, "friendly dog",
			"", "", "pending",
			now, now,
		))

	repo := NewPetsRepo(db)
	err = repo.UpdateStatusIf(context.Background(), "pet-1", pets.StatusAvailable, pets.StatusPending)
	if err != pets.ErrConflict {
		t.Fatalf("expected ErrConflict, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPetsRepo_UpdateStatusIf_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("UPDATE pets SET status = (.+) WHERE id = (.+) AND status = (.+)").
		WithArgs("pet-missing", "available", "pending").
		WillReturnResult(sqlmock.NewResult(0, 0))

	mock.ExpectQuery("SELECT (.+) FROM pets WHERE id = ").
		WithArgs("pet-missing").
		WillReturnError(sql.ErrNoRows)

	repo := NewPetsRepo(db)
	err = repo.UpdateStatusIf(context.Background(), "pet-missing", pets.StatusAvailable, pets.StatusPending)
	if err != pets.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPetsRepo_GetByID_ScansStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	now := time.Now()

	mock.ExpectQuery("SELECT (.+) FROM pets WHERE id = ").
		WithArgs("pet-1").
		WillReturnRows(sqlmock.NewRows(petRows).AddRow(
			"pet-1", "owner-1",
			"Luna", "cat", "siamese", 2, "calm cat",
			"https://cdn/img.jpg", "img-key", "available",
			now, now,
		))

	repo := NewPetsRepo(db)
	p, err := repo.GetByID(context.Background(), "pet-1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if p.Name != "Luna" || p.Type != pets.TypeCat || p.Status != pets.StatusAvailable {
		t.Fatalf("unexpected pet %+v", p)
	}
	if p.ImageURL != "https://cdn/img.jpg" {
		t.Fatalf("unexpected image url %q", p.ImageURL)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPetsRepo_ListByStatus_ExcludesOwner(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	now := time.Now()

	mock.ExpectQuery("SELECT (.+) FROM pets WHERE status = (.+) AND owner_user_id <> ").
		WithArgs("available", "owner-1").
		WillReturnRows(sqlmock.NewRows(petRows).AddRow(
			"pet-2", "owner-2",
			"Rex", "dog", "beagle", 5, "loud dog",
			"", "", "available",
			now, now,
		))

	repo := NewPetsRepo(db)
	out, err := repo.ListByStatus(context.Background(), pets.StatusAvailable, "owner-1")
	if err != nil {
		t.Fatalf("ListByStatus: %v", err)
	}
	if len(out) != 1 || out[0].ID != "pet-2" {
		t.Fatalf("unexpected result %+v", out)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPetsRepo_Delete_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("DELETE FROM pets WHERE id = ").
		WithArgs("pet-missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewPetsRepo(db)
	if err := repo.Delete(context.Background(), "pet-missing"); err != pets.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
