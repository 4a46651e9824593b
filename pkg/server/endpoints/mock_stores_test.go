package endpoints

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rolevend/rolevend/pkg/audit"
	"github.com/rolevend/rolevend/pkg/authority"
	"github.com/rolevend/rolevend/pkg/config"
	"github.com/rolevend/rolevend/pkg/model"
	"github.com/rolevend/rolevend/pkg/policy"
	"github.com/rolevend/rolevend/pkg/server"
	"github.com/rolevend/rolevend/pkg/server/middleware"
	"github.com/rolevend/rolevend/pkg/vending"
	"github.com/rolevend/rolevend/pkg/vending/store"
)

var testSigningKey = []byte("test-signing-key")

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

// MockTemplateStore implements store.TemplateStore for testing using testify/mock
type MockTemplateStore struct {
	mock.Mock
}

func (m *MockTemplateStore) GetTemplate(ctx context.Context, tier model.PermissionTier) (*model.PolicyTemplate, error) {
	args := m.Called(ctx, tier)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PolicyTemplate), args.Error(1)
}

func (m *MockTemplateStore) PutTemplate(ctx context.Context, tmpl *model.PolicyTemplate) error {
	args := m.Called(ctx, tmpl)
	return args.Error(0)
}

type serverFixture struct {
	srv      *server.Server
	sessions *MockSessionStore
	auth     *MockAuthority
	tmpls    *MockTemplateStore
}

func testServerConfig() config.Config {
	cfg := config.Default()
	cfg.AccountID = "123456789012"
	cfg.MFARequired = false
	cfg.AllowedNetworks = nil
	return cfg
}

// newServerFixture builds a server wired against mocks, with all endpoints
// registered.
func newServerFixture(t *testing.T) *serverFixture {
	t.Helper()

	f := &serverFixture{
		sessions: &MockSessionStore{},
		auth:     &MockAuthority{},
		tmpls:    &MockTemplateStore{},
	}

	logger := audit.NewLogger()
	logger.SetWriter(io.Discard)

	vendor, err := vending.NewVendor(
		testServerConfig(),
		f.sessions,
		policy.NewRenderer(nil),
		f.auth,
		audit.NewSink(logger, nil),
	)
	require.NoError(t, err)

	authn := middleware.NewAuthenticator(testSigningKey)
	f.srv = server.NewServer(vendor, f.tmpls, authn, testServerConfig())
	RegisterAll(f.srv)
	return f
}

// bearerToken mints a valid token for requests in tests.
func bearerToken(t *testing.T, requesterID string) string {
	t.Helper()
	authn := middleware.NewAuthenticator(testSigningKey)
	token, err := authn.IssueToken(requesterID, "Engineering", true, time.Hour)
	require.NoError(t, err)
	return "Bearer " + token
}
