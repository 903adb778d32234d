package leadgate

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var (
	ErrLeadNotFound = errors.New("lead not found")
)

// ValidationError reports input the caller can correct.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// IsValidationError reports whether err is, or wraps, a ValidationError.
func IsValidationError(err error) bool {
	var verr ValidationError
	return errors.As(err, &verr)
}

// Lead is an email address waiting for, or granted, access to the download.
// Approved is the only field that changes after creation.
type Lead struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	Approved  bool      `json:"approved"`
}

// Status returns the lifecycle state name of the lead.
func (l Lead) Status() string {
	if l.Approved {
		return "approved"
	}
	return "pending"
}

// LeadStore is the persistence contract for leads.
type LeadStore interface {
	// UpsertByEmail returns the lead registered for email, creating a pending
	// one if none exists. An existing lead is never modified.
	UpsertByEmail(ctx context.Context, email string) (Lead, error)
	FindByID(ctx context.Context, id string) (Lead, error)
	// List returns every lead, newest first.
	List(ctx context.Context) ([]Lead, error)
	UpdateApproved(ctx context.Context, id string, approved bool) (Lead, error)
}

// LeadService is the set of operations exposed to the HTTP layer.
type LeadService interface {
	Create(ctx context.Context, email string) (Lead, error)
	List(ctx context.Context) ([]Lead, error)
	GetByID(ctx context.Context, id string) (Lead, error)
	SetApproved(ctx context.Context, id string, approved bool) (Lead, error)
}
