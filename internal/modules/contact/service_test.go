package contact

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"pixelcraft/internal/domain"
	"pixelcraft/internal/notify"
)

type MockMessageStore struct{ mock.Mock }

func (m *MockMessageStore) Create(ctx context.Context, c *domain.ContactMessage) error {
	return m.Called(ctx, c).Error(0)
}

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) DispatchContact(ev notify.ContactEvent) {
	m.Called(ev)
}

func validRequest() *ContactRequest {
	return &ContactRequest{
		Name:    "Jo Smith",
		Email:   "jo@example.com",
		Subject: "Video project",
		Message: "We need a short promo video for a product launch next quarter.",
	}
}

func TestSubmit_StoresAndDispatches(t *testing.T) {
	store := new(MockMessageStore)
	notifier := new(MockNotifier)
	svc := NewService(store, notifier)

	var stored *domain.ContactMessage
	store.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		stored = args.Get(1).(*domain.ContactMessage)
	}).Return(nil)
	notifier.On("DispatchContact", mock.Anything).Return()

	details := svc.Submit(context.Background(), validRequest(), "203.0.113.9", "curl/8")
	assert.Nil(t, details)

	require.NotNil(t, stored)
	assert.Equal(t, "jo@example.com", stored.Email)
	assert.Equal(t, "203.0.113.9", stored.IPAddress)
	notifier.AssertCalled(t, "DispatchContact", mock.Anything)
}

func TestSubmit_ValidationErrorsCollected(t *testing.T) {
	svc := NewService(new(MockMessageStore), new(MockNotifier))

	details := svc.Submit(context.Background(), &ContactRequest{Email: "not-an-email", Message: "short"}, "", "")
	require.NotNil(t, details)
	assert.Contains(t, details, "name")
	assert.Contains(t, details, "email")
	assert.Contains(t, details, "message")
}

func TestSubmit_StoreFailureStillSucceeds(t *testing.T) {
	store := new(MockMessageStore)
	notifier := new(MockNotifier)
	svc := NewService(store, notifier)

	store.On("Create", mock.Anything, mock.Anything).Return(assert.AnError)
	notifier.On("DispatchContact", mock.Anything).Return()

	details := svc.Submit(context.Background(), validRequest(), "", "")
	assert.Nil(t, details)
	notifier.AssertCalled(t, "DispatchContact", mock.Anything)
}

func TestSubmit_NilStoreDispatchesOnly(t *testing.T) {
	notifier := new(MockNotifier)
	svc := NewService(nil, notifier)

	notifier.On("DispatchContact", mock.Anything).Return()

	details := svc.Submit(context.Background(), validRequest(), "", "")
	assert.Nil(t, details)
	notifier.AssertCalled(t, "DispatchContact", mock.Anything)
}
