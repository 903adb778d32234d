package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/phbpx/leadgate"
)

// lib/pq errorCodeNames
// https://github.com/lib/pq/blob/master/error.go#L178
const invalidTextRepresentation = "22P02"

const leadColumns = `id, email, created_at, approved`

type LeadStore struct {
	db  *sql.DB
	now func() time.Time
}

func NewLeadStore(db *sql.DB) *LeadStore {
	return &LeadStore{
		db:  db,
		now: func() time.Time { return time.Now().UTC() },
	}
}

// UpsertByEmail relies on the unique constraint on email. The no-op update
// on conflict makes RETURNING yield the existing row untouched.
func (ls *LeadStore) UpsertByEmail(ctx context.Context, email string) (leadgate.Lead, error) {
	query := `
	INSERT INTO leads (
		id, email, created_at, approved
	) VALUES (
		$1, $2, $3, false
	)
	ON CONFLICT (email) DO UPDATE SET email = leads.email
	RETURNING ` + leadColumns

	row := ls.db.QueryRowContext(ctx, query, uuid.NewString(), email, ls.now())

	lead, err := scanLead(row)
	if err != nil {
		return leadgate.Lead{}, fmt.Errorf("upserting lead: %w", err)
	}
	return lead, nil
}

func (ls *LeadStore) FindByID(ctx context.Context, id string) (leadgate.Lead, error) {
	query := `
	SELECT ` + leadColumns + `
	FROM leads
	WHERE id=$1`

	lead, err := scanLead(ls.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return leadgate.Lead{}, mapErr(err)
	}
	return lead, nil
}

func (ls *LeadStore) List(ctx context.Context) ([]leadgate.Lead, error) {
	query := `
	SELECT ` + leadColumns + `
	FROM leads
	ORDER BY created_at DESC, id DESC`

	rows, err := ls.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing leads: %w", err)
	}
	defer rows.Close()

	leads := []leadgate.Lead{}
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning lead: %w", err)
		}
		leads = append(leads, lead)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing leads: %w", err)
	}

	return leads, nil
}

func (ls *LeadStore) UpdateApproved(ctx context.Context, id string, approved bool) (leadgate.Lead, error) {
	query := `
	UPDATE leads
	SET approved=$2
	WHERE id=$1
	RETURNING ` + leadColumns

	lead, err := scanLead(ls.db.QueryRowContext(ctx, query, id, approved))
	if err != nil {
		return leadgate.Lead{}, mapErr(err)
	}
	return lead, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanLead(s scanner) (leadgate.Lead, error) {
	var lead leadgate.Lead
	err := s.Scan(
		&lead.ID,
		&lead.Email,
		&lead.CreatedAt,
		&lead.Approved,
	)
	lead.CreatedAt = lead.CreatedAt.UTC()
	return lead, err
}

// mapErr turns "no such row" into the domain error. A malformed uuid can
// never match a row, so it is reported the same way.
func mapErr(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return leadgate.ErrLeadNotFound
	}
	var pqerr *pq.Error
	if errors.As(err, &pqerr) && pqerr.Code == invalidTextRepresentation {
		return leadgate.ErrLeadNotFound
	}
	return err
}
