// Package leadtest provides an in-memory LeadStore for tests.
package leadtest

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/phbpx/leadgate"
)

// MemStore keeps leads in maps. Each created lead gets a creation time one
// second after the previous one, so ordering is deterministic.
type MemStore struct {
	mu      sync.Mutex
	byID    map[string]leadgate.Lead
	byEmail map[string]string
	clock   time.Time
	failing error
}

func NewMemStore() *MemStore {
	return &MemStore{
		byID:    map[string]leadgate.Lead{},
		byEmail: map[string]string{},
		clock:   time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

// Fail makes UpsertByEmail and List return err until called again with nil.
func (s *MemStore) Fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failing = err
}

func (s *MemStore) UpsertByEmail(_ context.Context, email string) (leadgate.Lead, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failing != nil {
		return leadgate.Lead{}, s.failing
	}
	if id, ok := s.byEmail[email]; ok {
		return s.byID[id], nil
	}
	s.clock = s.clock.Add(time.Second)
	lead := leadgate.Lead{ID: uuid.NewString(), Email: email, CreatedAt: s.clock}
	s.byID[lead.ID] = lead
	s.byEmail[email] = lead.ID
	return lead, nil
}

func (s *MemStore) FindByID(_ context.Context, id string) (leadgate.Lead, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	lead, ok := s.byID[id]
	if !ok {
		return leadgate.Lead{}, leadgate.ErrLeadNotFound
	}
	return lead, nil
}

func (s *MemStore) List(_ context.Context) ([]leadgate.Lead, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failing != nil {
		return nil, s.failing
	}
	leads := []leadgate.Lead{}
	for _, l := range s.byID {
		leads = append(leads, l)
	}
	sort.Slice(leads, func(i, j int) bool { return leads[i].CreatedAt.After(leads[j].CreatedAt) })
	return leads, nil
}

func (s *MemStore) UpdateApproved(_ context.Context, id string, approved bool) (leadgate.Lead, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	lead, ok := s.byID[id]
	if !ok {
		return leadgate.Lead{}, leadgate.ErrLeadNotFound
	}
	lead.Approved = approved
	s.byID[id] = lead
	return lead, nil
}
