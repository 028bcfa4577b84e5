package dashboard

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"pixelcraft/internal/domain"
	"pixelcraft/internal/repository"
)

type MockQuoteStore struct{ mock.Mock }

func (m *MockQuoteStore) List(ctx context.Context, f repository.QuoteFilter, limit, offset int) ([]domain.Quote, int64, error) {
	args := m.Called(ctx, f, limit, offset)
	return args.Get(0).([]domain.Quote), args.Get(1).(int64), args.Error(2)
}

func (m *MockQuoteStore) GetByID(ctx context.Context, id string) (*domain.Quote, error) {
	args := m.Called(ctx, id)
	if q := args.Get(0); q != nil {
		return q.(*domain.Quote), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockQuoteStore) UpdateStatus(ctx context.Context, id string, status domain.QuoteStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *MockQuoteStore) CountByStatus(ctx context.Context) (map[string]int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(map[string]int64), args.Error(1)
}

func (m *MockQuoteStore) CountByPriority(ctx context.Context) (map[string]int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(map[string]int64), args.Error(1)
}

type MockLeadStore struct{ mock.Mock }

func (m *MockLeadStore) List(ctx context.Context, limit, offset int) ([]domain.Lead, int64, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]domain.Lead), args.Get(1).(int64), args.Error(2)
}

func (m *MockLeadStore) GetByID(ctx context.Context, id string) (*domain.Lead, error) {
	args := m.Called(ctx, id)
	if l := args.Get(0); l != nil {
		return l.(*domain.Lead), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockMessageStore struct{ mock.Mock }

func (m *MockMessageStore) List(ctx context.Context, limit, offset int) ([]domain.ContactMessage, int64, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]domain.ContactMessage), args.Get(1).(int64), args.Error(2)
}

func TestService_GetQuoteAttachesLead(t *testing.T) {
	quotes := new(MockQuoteStore)
	leads := new(MockLeadStore)
	svc := NewService(quotes, leads, new(MockMessageStore))

	q := &domain.Quote{ID: "q1", LeadID: "l1"}
	lead := &domain.Lead{ID: "l1", Email: "jo@example.com"}
	quotes.On("GetByID", mock.Anything, "q1").Return(q, nil)
	leads.On("GetByID", mock.Anything, "l1").Return(lead, nil)

	got, err := svc.GetQuote(context.Background(), "q1")
	require.NoError(t, err)
	require.NotNil(t, got.Lead)
	assert.Equal(t, "jo@example.com", got.Lead.Email)
}

func TestService_GetQuoteLeadLookupFailureIsNotFatal(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	prev := zap.L()
	zap.ReplaceGlobals(zap.New(core))
	defer zap.ReplaceGlobals(prev)

	quotes := new(MockQuoteStore)
	leads := new(MockLeadStore)
	svc := NewService(quotes, leads, new(MockMessageStore))

	quotes.On("GetByID", mock.Anything, "q1").Return(&domain.Quote{ID: "q1", LeadID: "l1"}, nil)
	leads.On("GetByID", mock.Anything, "l1").Return(nil, assert.AnError)

	got, err := svc.GetQuote(context.Background(), "q1")
	require.NoError(t, err)
	assert.Nil(t, got.Lead)

	// Store trouble must be visible in the logs, not swallowed.
	assert.Equal(t, 1, logs.FilterMessage("lead lookup failed for quote view").Len())
}

func TestService_UpdateQuoteStatus(t *testing.T) {
	quotes := new(MockQuoteStore)
	svc := NewService(quotes, new(MockLeadStore), new(MockMessageStore))

	quotes.On("UpdateStatus", mock.Anything, "q1", domain.QuoteWon).Return(nil)
	assert.NoError(t, svc.UpdateQuoteStatus(context.Background(), "q1", domain.QuoteWon))

	err := svc.UpdateQuoteStatus(context.Background(), "q1", domain.QuoteStatus("archived"))
	assert.ErrorIs(t, err, ErrUnknownStatus)
	quotes.AssertNumberOfCalls(t, "UpdateStatus", 1)
}

func TestService_Stats(t *testing.T) {
	quotes := new(MockQuoteStore)
	svc := NewService(quotes, new(MockLeadStore), new(MockMessageStore))

	quotes.On("CountByStatus", mock.Anything).Return(map[string]int64{"new": 4, "won": 1}, nil)
	quotes.On("CountByPriority", mock.Anything).Return(map[string]int64{"urgent": 2}, nil)

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(4), stats.ByStatus["new"])
	assert.Equal(t, int64(2), stats.ByPriority["urgent"])
}
