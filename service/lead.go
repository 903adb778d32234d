// Package service implements the lead lifecycle on top of a LeadStore.
package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/phbpx/leadgate"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

// One "@" with a dot somewhere after it. Not a full RFC 5322 check.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Hooks are optional callbacks fired after a successful state change.
type Hooks struct {
	Created         func(lead leadgate.Lead)
	ApprovalChanged func(lead leadgate.Lead)
}

type Lead struct {
	store leadgate.LeadStore
	log   *otelzap.SugaredLogger
	hooks Hooks
}

func NewLead(store leadgate.LeadStore, log *otelzap.SugaredLogger, hooks Hooks) *Lead {
	return &Lead{
		store: store,
		log:   log,
		hooks: hooks,
	}
}

// NormalizeEmail trims and lower-cases an address, then checks its shape.
func NormalizeEmail(email string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return "", leadgate.ValidationError{Field: "email", Message: "is required"}
	}
	if !emailPattern.MatchString(email) {
		return "", leadgate.ValidationError{Field: "email", Message: "is invalid"}
	}
	return strings.ToLower(email), nil
}

// Create registers email as a pending lead. Submitting an address that is
// already registered returns the existing lead as it is.
func (s *Lead) Create(ctx context.Context, email string) (leadgate.Lead, error) {
	ctx, span := otel.GetTracerProvider().Tracer("").Start(ctx, "service.lead.create")
	defer span.End()

	email, err := NormalizeEmail(email)
	if err != nil {
		return leadgate.Lead{}, err
	}

	lead, err := s.store.UpsertByEmail(ctx, email)
	if err != nil {
		return leadgate.Lead{}, fmt.Errorf("create lead: %w", err)
	}
	span.SetAttributes(attribute.String("lead.id", lead.ID))

	s.log.Ctx(ctx).Infow("lead registered", "lead_id", lead.ID, "status", lead.Status())
	if s.hooks.Created != nil {
		s.hooks.Created(lead)
	}

	return lead, nil
}

// List returns every lead, newest first. There is no pagination.
func (s *Lead) List(ctx context.Context) ([]leadgate.Lead, error) {
	ctx, span := otel.GetTracerProvider().Tracer("").Start(ctx, "service.lead.list")
	defer span.End()

	leads, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list leads: %w", err)
	}
	span.SetAttributes(attribute.Int("lead.count", len(leads)))

	return leads, nil
}

func (s *Lead) GetByID(ctx context.Context, id string) (leadgate.Lead, error) {
	ctx, span := otel.GetTracerProvider().Tracer("").Start(ctx, "service.lead.get")
	defer span.End()

	if err := checkID(id); err != nil {
		return leadgate.Lead{}, err
	}

	lead, err := s.store.FindByID(ctx, id)
	if err != nil {
		return leadgate.Lead{}, fmt.Errorf("get lead: %w", err)
	}

	return lead, nil
}

// SetApproved moves a lead between pending and approved. Either direction is
// allowed.
func (s *Lead) SetApproved(ctx context.Context, id string, approved bool) (leadgate.Lead, error) {
	ctx, span := otel.GetTracerProvider().Tracer("").Start(ctx, "service.lead.set_approved")
	span.SetAttributes(attribute.Bool("lead.approved", approved))
	defer span.End()

	if err := checkID(id); err != nil {
		return leadgate.Lead{}, err
	}

	lead, err := s.store.UpdateApproved(ctx, id, approved)
	if err != nil {
		return leadgate.Lead{}, fmt.Errorf("set approved: %w", err)
	}

	s.log.Ctx(ctx).Infow("lead approval changed", "lead_id", lead.ID, "status", lead.Status())
	if s.hooks.ApprovalChanged != nil {
		s.hooks.ApprovalChanged(lead)
	}

	return lead, nil
}

// checkID rejects a missing id. Ids that are not UUIDs cannot name a lead.
func checkID(id string) error {
	if strings.TrimSpace(id) == "" {
		return leadgate.ValidationError{Field: "id", Message: "is required"}
	}
	if _, err := uuid.Parse(id); err != nil {
		return leadgate.ErrLeadNotFound
	}
	return nil
}
