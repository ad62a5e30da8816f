// Package history keeps a local record of bookings confirmed through this
// client. It is entirely optional: without a configured database the
// recorder is a no-op and the wizard behaves the same.
package history

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/cirogiorgini/turnero-client/internal/db"
)

type Record struct {
	ID          uuid.UUID
	BranchID    string
	BranchName  string
	Barber      string
	Date        string // YYYY-MM-DD
	Slot        string
	ClientName  string
	ClientEmail string
	ClientPhone string
	CreatedAt   time.Time
}

// Recorder is what the booking surfaces depend on.
type Recorder interface {
	Record(ctx context.Context, r Record) error
	Recent(ctx context.Context, limit int) ([]Record, error)
}

// Store is the Postgres-backed recorder.
type Store struct {
	db *db.DB
}

// NewStore opens the store and applies pending migrations.
func NewStore(ctx context.Context, d *db.DB) (*Store, error) {
	if err := migrateUp(ctx, d); err != nil {
		return nil, err
	}
	return &Store{db: d}, nil
}

func (s *Store) Record(ctx context.Context, r Record) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return s.db.Exec(ctx, `
INSERT INTO bookings(id, branch_id, branch_name, barber, booking_date, slot, client_name, client_email, client_phone)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		r.ID, r.BranchID, r.BranchName, r.Barber, r.Date, r.Slot, r.ClientName, r.ClientEmail, r.ClientPhone)
}

func (s *Store) Recent(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(ctx, `
SELECT id, branch_id, branch_name, barber, booking_date::text, slot, client_name, client_email, client_phone, created_at
FROM bookings
ORDER BY created_at DESC
LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.ID, &r.BranchID, &r.BranchName, &r.Barber, &r.Date, &r.Slot,
			&r.ClientName, &r.ClientEmail, &r.ClientPhone, &r.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Noop is used when no DATABASE_URL is configured.
type Noop struct{}

func (Noop) Record(context.Context, Record) error { return nil }

func (Noop) Recent(context.Context, int) ([]Record, error) { return nil, nil }

// FromDraft builds a Record out of the confirmed wizard draft fields.
func FromDraft(branchID, branchName, barber, date, slot, name, email, phone string) Record {
	return Record{
		ID:          uuid.New(),
		BranchID:    branchID,
		BranchName:  branchName,
		Barber:      barber,
		Date:        date,
		Slot:        slot,
		ClientName:  name,
		ClientEmail: email,
		ClientPhone: phone,
	}
}
