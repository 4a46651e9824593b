package vending

import (
	"context"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/rolevend/rolevend/pkg/audit"
	"github.com/rolevend/rolevend/pkg/authority"
	"github.com/rolevend/rolevend/pkg/model"
	"github.com/rolevend/rolevend/pkg/vending/store"
)

// MockSessionStore implements store.SessionStore for testing using testify/mock
type MockSessionStore struct {
	mock.Mock
}

func (m *MockSessionStore) CreateSession(ctx context.Context, session *model.RoleSession) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockSessionStore) GetSession(ctx context.Context, projectID, sessionID string) (*model.RoleSession, error) {
	args := m.Called(ctx, projectID, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.RoleSession), args.Error(1)
}

func (m *MockSessionStore) UpdateStatus(ctx context.Context, update store.StatusUpdate) error {
	args := m.Called(ctx, update)
	return args.Error(0)
}

func (m *MockSessionStore) QueryByRequester(ctx context.Context, requesterID string, status *model.SessionStatus) ([]model.RoleSession, error) {
	args := m.Called(ctx, requesterID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.RoleSession), args.Error(1)
}

func (m *MockSessionStore) QueryExpired(ctx context.Context, asOf time.Time) ([]model.RoleSession, error) {
	args := m.Called(ctx, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.RoleSession), args.Error(1)
}

func (m *MockSessionStore) DeleteSession(ctx context.Context, projectID, sessionID string) error {
	args := m.Called(ctx, projectID, sessionID)
	return args.Error(0)
}

// MockAuthority implements authority.Authority for testing using testify/mock
type MockAuthority struct {
	mock.Mock
}

func (m *MockAuthority) ProvisionRole(ctx context.Context, input authority.ProvisionInput) (string, error) {
	args := m.Called(ctx, input)
	return args.String(0), args.Error(1)
}

func (m *MockAuthority) ExchangeForCredentials(ctx context.Context, roleRef, correlationToken, sessionName string, durationSeconds int32) (*model.Credentials, error) {
	args := m.Called(ctx, roleRef, correlationToken, sessionName, durationSeconds)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Credentials), args.Error(1)
}

func (m *MockAuthority) DecommissionRole(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}

// MockNotifier implements notify.Notifier for testing using testify/mock
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Notify(ctx context.Context, topic, subject string, payload map[string]string) error {
	args := m.Called(ctx, topic, subject, payload)
	return args.Error(0)
}

// recordingSink captures submitted audit events for assertions.
type recordingSink struct {
	mu     sync.Mutex
	events []audit.Event
}

func (s *recordingSink) Submit(event audit.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
}

func (s *recordingSink) Events() []audit.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]audit.Event(nil), s.events...)
}
