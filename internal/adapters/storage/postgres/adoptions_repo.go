package postgres

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"pet-adoption-market/internal/domain/adoptions"
)

type AdoptionsRepo struct {
	db *sql.DB
}

func NewAdoptionsRepo(db *sql.DB) *AdoptionsRepo {
	return &AdoptionsRepo{db: db}
}

const adoptionColumns = `
	id, pet_id, adopter_user_id, status,
	created_at, updated_at, approved_at
`

func (r *AdoptionsRepo) Create(ctx context.Context, a adoptions.Request) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO adoptions (`+adoptionColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
	`,
		a.ID,
		a.PetID,
		a.AdopterUserID,
		string(a.Status),
		a.CreatedAt,
		a.UpdatedAt,
		toNullTime(a.ApprovedAt),
	)
	return err
}

func (r *AdoptionsRepo) GetByID(ctx context.Context, id string) (adoptions.Request, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return adoptions.Request{}, adoptions.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT `+adoptionColumns+`
		FROM adoptions
		WHERE id = $1
	`, id)

	a, err := scanAdoption(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return adoptions.Request{}, adoptions.ErrNotFound
		}
		return adoptions.Request{}, err
	}
	return a, nil
}

func (r *AdoptionsRepo) FindPendingFor(ctx context.Context, petID, adopterUserID string) (adoptions.Request, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+adoptionColumns+`
		FROM adoptions
		WHERE pet_id = $1 AND adopter_user_id = $2 AND status = $3
		LIMIT 1
	`, petID, adopterUserID, string(adoptions.StatusPending))

	a, err := scanAdoption(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return adoptions.Request{}, adoptions.ErrNotFound
		}
		return adoptions.Request{}, err
	}
	return a, nil
}

func (r *AdoptionsRepo) ListByAdopter(ctx context.Context, adopterUserID string) ([]adoptions.Request, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+adoptionColumns+`
		FROM adoptions
		WHERE adopter_user_id = $1
		ORDER BY created_at ASC
	`, adopterUserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectAdoptions(rows)
}

func (r *AdoptionsRepo) ListByPetIDs(ctx context.Context, petIDs []string) ([]adoptions.Request, error) {
	if len(petIDs) == 0 {
		return []adoptions.Request{}, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+adoptionColumns+`
		FROM adoptions
		WHERE pet_id = ANY($1)
		ORDER BY created_at ASC
	`, petIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectAdoptions(rows)
}

func (r *AdoptionsRepo) ListAll(ctx context.Context) ([]adoptions.Request, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+adoptionColumns+`
		FROM adoptions
		ORDER BY created_at ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectAdoptions(rows)
}

// UpdateStatusIf: CAS sobre el status; approved además estampa approved_at.
func (r *AdoptionsRepo) UpdateStatusIf(ctx context.Context, id string, expected, next adoptions.Status, now time.Time) error {
	var approvedAt sql.NullTime
	if next == adoptions.StatusApproved {
		approvedAt = sql.NullTime{Time: now, Valid: true}
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE adoptions
		SET status = $3,
		    updated_at = $4,
		    approved_at = COALESCE($5, approved_at)
		WHERE id = $1 AND status = $2
	`, id, string(expected), string(next), now, approvedAt)
	if err != nil {
		return err
	}

	n, _ := res.RowsAffected()
	if n > 0 {
		return nil
	}

	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}
	return adoptions.ErrConflict
}

func scanAdoption(row rowScanner) (adoptions.Request, error) {
	var a adoptions.Request
	var status string
	var approvedAt sql.NullTime
	if err := row.Scan(
		&a.ID,
		&a.PetID,
		&a.AdopterUserID,
		&status,
		&a.CreatedAt,
		&a.UpdatedAt,
		&approvedAt,
	); err != nil {
		return adoptions.Request{}, err
	}
	a.Status = adoptions.Status(status)
	if approvedAt.Valid {
		t := approvedAt.Time
		a.ApprovedAt = &t
	}
	return a, nil
}

func collectAdoptions(rows *sql.Rows) ([]adoptions.Request, error) {
	out := make([]adoptions.Request, 0)
	for rows.Next() {
		a, err := scanAdoption(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func toNullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{Valid: false}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
