package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phbpx/leadgate"
	"github.com/phbpx/leadgate/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap/zaptest"
)

type MockLeadStore struct {
	mock.Mock
}

func (m *MockLeadStore) UpsertByEmail(ctx context.Context, email string) (leadgate.Lead, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(leadgate.Lead), args.Error(1)
}

func (m *MockLeadStore) FindByID(ctx context.Context, id string) (leadgate.Lead, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(leadgate.Lead), args.Error(1)
}

func (m *MockLeadStore) List(ctx context.Context) ([]leadgate.Lead, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]leadgate.Lead), args.Error(1)
}

func (m *MockLeadStore) UpdateApproved(ctx context.Context, id string, approved bool) (leadgate.Lead, error) {
	args := m.Called(ctx, id, approved)
	return args.Get(0).(leadgate.Lead), args.Error(1)
}

func newService(t *testing.T, store leadgate.LeadStore, hooks service.Hooks) *service.Lead {
	return service.NewLead(store, otelzap.New(zaptest.NewLogger(t)).Sugar(), hooks)
}

func TestNormalizeEmail(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		valid bool
	}{
		{"plain", "a@b.com", "a@b.com", true},
		{"trimmed", "  a@b.com\t", "a@b.com", true},
		{"lower cased", "Someone@Gmail.COM", "someone@gmail.com", true},
		{"subdomain", "x@mail.example.org", "x@mail.example.org", true},
		{"empty", "", "", false},
		{"whitespace only", "   ", "", false},
		{"no at", "ab.com", "", false},
		{"no dot after at", "a@bcom", "", false},
		{"two ats", "a@b@c.com", "", false},
		{"inner space", "a b@c.com", "", false},
		{"trailing dot only", "a@b.", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := service.NormalizeEmail(tt.input)
			if !tt.valid {
				require.Error(t, err)
				assert.True(t, leadgate.IsValidationError(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLead_Create(t *testing.T) {
	ctx := context.Background()
	existing := leadgate.Lead{
		ID:        uuid.NewString(),
		Email:     "a@b.com",
		CreatedAt: time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
		Approved:  true,
	}

	t.Run("delegates normalized email to upsert", func(t *testing.T) {
		store := new(MockLeadStore)
		store.On("UpsertByEmail", mock.Anything, "a@b.com").Return(existing, nil)

		var created []leadgate.Lead
		svc := newService(t, store, service.Hooks{
			Created: func(l leadgate.Lead) { created = append(created, l) },
		})

		lead, err := svc.Create(ctx, " A@B.com ")
		require.NoError(t, err)
		assert.Equal(t, existing, lead)
		assert.Len(t, created, 1)
		store.AssertExpectations(t)
	})

	t.Run("invalid email never reaches store", func(t *testing.T) {
		store := new(MockLeadStore)
		svc := newService(t, store, service.Hooks{})

		for _, email := range []string{"", "   ", "nope", "a@b"} {
			_, err := svc.Create(ctx, email)
			assert.True(t, leadgate.IsValidationError(err), email)
		}
		store.AssertNotCalled(t, "UpsertByEmail", mock.Anything, mock.Anything)
	})

	t.Run("store failure is wrapped", func(t *testing.T) {
		boom := errors.New("connection refused")
		store := new(MockLeadStore)
		store.On("UpsertByEmail", mock.Anything, "a@b.com").Return(leadgate.Lead{}, boom)
		svc := newService(t, store, service.Hooks{})

		_, err := svc.Create(ctx, "a@b.com")
		assert.ErrorIs(t, err, boom)
		assert.False(t, leadgate.IsValidationError(err))
	})
}

func TestLead_GetByID(t *testing.T) {
	ctx := context.Background()
	id := uuid.NewString()

	t.Run("found", func(t *testing.T) {
		store := new(MockLeadStore)
		store.On("FindByID", mock.Anything, id).Return(leadgate.Lead{ID: id, Email: "a@b.com"}, nil)
		svc := newService(t, store, service.Hooks{})

		lead, err := svc.GetByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, id, lead.ID)
		assert.False(t, lead.Approved)
	})

	t.Run("missing id", func(t *testing.T) {
		svc := newService(t, new(MockLeadStore), service.Hooks{})
		_, err := svc.GetByID(ctx, "")
		assert.True(t, leadgate.IsValidationError(err))
	})

	t.Run("malformed id is not found", func(t *testing.T) {
		store := new(MockLeadStore)
		svc := newService(t, store, service.Hooks{})
		_, err := svc.GetByID(ctx, "123")
		assert.ErrorIs(t, err, leadgate.ErrLeadNotFound)
		store.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})

	t.Run("unknown id", func(t *testing.T) {
		store := new(MockLeadStore)
		store.On("FindByID", mock.Anything, id).Return(leadgate.Lead{}, leadgate.ErrLeadNotFound)
		svc := newService(t, store, service.Hooks{})

		_, err := svc.GetByID(ctx, id)
		assert.ErrorIs(t, err, leadgate.ErrLeadNotFound)
	})
}

func TestLead_SetApproved(t *testing.T) {
	ctx := context.Background()
	id := uuid.NewString()

	t.Run("approve", func(t *testing.T) {
		store := new(MockLeadStore)
		store.On("UpdateApproved", mock.Anything, id, true).Return(leadgate.Lead{ID: id, Approved: true}, nil)

		var changed int
		svc := newService(t, store, service.Hooks{
			ApprovalChanged: func(leadgate.Lead) { changed++ },
		})

		lead, err := svc.SetApproved(ctx, id, true)
		require.NoError(t, err)
		assert.True(t, lead.Approved)
		assert.Equal(t, "approved", lead.Status())
		assert.Equal(t, 1, changed)
	})

	t.Run("revoke is permitted", func(t *testing.T) {
		store := new(MockLeadStore)
		store.On("UpdateApproved", mock.Anything, id, false).Return(leadgate.Lead{ID: id}, nil)
		svc := newService(t, store, service.Hooks{})

		lead, err := svc.SetApproved(ctx, id, false)
		require.NoError(t, err)
		assert.Equal(t, "pending", lead.Status())
	})

	t.Run("unknown id", func(t *testing.T) {
		var changed int
		store := new(MockLeadStore)
		store.On("UpdateApproved", mock.Anything, id, true).Return(leadgate.Lead{}, leadgate.ErrLeadNotFound)
		svc := newService(t, store, service.Hooks{
			ApprovalChanged: func(leadgate.Lead) { changed++ },
		})

		_, err := svc.SetApproved(ctx, id, true)
		assert.ErrorIs(t, err, leadgate.ErrLeadNotFound)
		assert.Zero(t, changed)
	})

	t.Run("missing id", func(t *testing.T) {
		svc := newService(t, new(MockLeadStore), service.Hooks{})
		_, err := svc.SetApproved(ctx, " ", true)
		assert.True(t, leadgate.IsValidationError(err))
	})
}

func TestLead_List(t *testing.T) {
	ctx := context.Background()
	t1 := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	leads := []leadgate.Lead{
		{ID: "3", CreatedAt: t1.Add(2 * time.Hour)},
		{ID: "2", CreatedAt: t1.Add(time.Hour)},
		{ID: "1", CreatedAt: t1},
	}

	store := new(MockLeadStore)
	store.On("List", mock.Anything).Return(leads, nil).Once()
	store.On("List", mock.Anything).Return(nil, errors.New("down")).Once()
	svc := newService(t, store, service.Hooks{})

	got, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, leads, got)

	_, err = svc.List(ctx)
	assert.Error(t, err)
}
