package endpoints

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rolevend/rolevend/pkg/model"
	"github.com/rolevend/rolevend/pkg/vending/store"
)

func testActiveSession() *model.RoleSession {
	now := time.Now().UTC().Truncate(time.Second)
	return &model.RoleSession{
		ProjectID:   "proj",
		SessionID:   "11112222-3333-4444-5555-666677778888",
		RequesterID: "alice",
		RoleRef:     "arn:aws:iam::123456789012:role/temp-role-proj-11112222",
		Tier:        model.TierDeveloper,
		RequestedAt: now,
		ExpiresAt:   now.Add(time.Hour),
		Status:      model.StatusActive,
		Metadata:    model.RequestMetadata{CorrelationToken: "corrtoken"},
	}
}

func TestCreateSessionEndpoint(t *testing.T) {
	f := newServerFixture(t)

	f.sessions.On("CreateSession", mock.Anything, mock.Anything).Return(nil)
	f.auth.On("ProvisionRole", mock.Anything, mock.Anything).Return("arn:aws:iam::123456789012:role/temp-role-proj-x", nil)
	f.sessions.On("UpdateStatus", mock.Anything, mock.Anything).Return(nil)

	body := `{"tier": "developer", "duration_hours": 4, "justification": "debugging ingest failures"}`
	req := httptest.NewRequest("POST", "/projects/proj/sessions", strings.NewReader(body))
	req.Header.Set("Authorization", bearerToken(t, "alice"))
	w := httptest.NewRecorder()

	f.srv.Router.ServeHTTP(w, req)

	require.Equal(t, 201, w.Code, w.Body.String())

	var session model.RoleSession
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &session))
	assert.Equal(t, "proj", session.ProjectID)
	assert.Equal(t, "alice", session.RequesterID)
	assert.Equal(t, model.StatusActive, session.Status)
	assert.NotEmpty(t, session.RoleRef)
}

func TestCreateSessionEndpointRejectsShortJustification(t *testing.T) {
	f := newServerFixture(t)

	body := `{"tier": "developer", "duration_hours": 4, "justification": "short"}`
	req := httptest.NewRequest("POST", "/projects/proj/sessions", strings.NewReader(body))
	req.Header.Set("Authorization", bearerToken(t, "alice"))
	w := httptest.NewRecorder()

	f.srv.Router.ServeHTTP(w, req)

	assert.Equal(t, 422, w.Code)
	f.sessions.AssertNotCalled(t, "CreateSession", mock.Anything, mock.Anything)
}

func TestCreateSessionEndpointRequiresAuth(t *testing.T) {
	f := newServerFixture(t)

	req := httptest.NewRequest("POST", "/projects/proj/sessions", strings.NewReader(`{}`))
	w := httptest.NewRecorder()

	f.srv.Router.ServeHTTP(w, req)

	assert.Equal(t, 401, w.Code)
}

func TestGetStatusEndpoint(t *testing.T) {
	f := newServerFixture(t)
	session := testActiveSession()

	f.sessions.On("GetSession", mock.Anything, "proj", session.SessionID).Return(session, nil)

	req := httptest.NewRequest("GET", "/projects/proj/sessions/"+session.SessionID, nil)
	req.Header.Set("Authorization", bearerToken(t, "alice"))
	w := httptest.NewRecorder()

	f.srv.Router.ServeHTTP(w, req)

	require.Equal(t, 200, w.Code)

	var view model.SessionView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	assert.Equal(t, session.SessionID, view.SessionID)
	assert.Equal(t, model.StatusActive, view.Status)
	assert.Positive(t, view.TimeRemaining)
}

func TestGetStatusEndpointNotFound(t *testing.T) {
	f := newServerFixture(t)

	f.sessions.On("GetSession", mock.Anything, "proj", "missing").Return(nil, store.ErrSessionNotFound)

	req := httptest.NewRequest("GET", "/projects/proj/sessions/missing", nil)
	req.Header.Set("Authorization", bearerToken(t, "alice"))
	w := httptest.NewRecorder()

	f.srv.Router.ServeHTTP(w, req)

	assert.Equal(t, 404, w.Code)
}

func TestRevokeEndpoint(t *testing.T) {
	f := newServerFixture(t)
	session := testActiveSession()

	f.sessions.On("GetSession", mock.Anything, "proj", session.SessionID).Return(session, nil)
	f.sessions.On("UpdateStatus", mock.Anything, mock.Anything).Return(nil)
	f.auth.On("DecommissionRole", mock.Anything, session.RoleName()).Return(nil)

	req := httptest.NewRequest("DELETE", "/projects/proj/sessions/"+session.SessionID, nil)
	req.Header.Set("Authorization", bearerToken(t, "alice"))
	w := httptest.NewRecorder()

	f.srv.Router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	f.auth.AssertExpectations(t)
}

func TestRevokeEndpointConflict(t *testing.T) {
	f := newServerFixture(t)
	session := testActiveSession()
	session.Status = model.StatusExpired

	f.sessions.On("GetSession", mock.Anything, "proj", session.SessionID).Return(session, nil)

	req := httptest.NewRequest("DELETE", "/projects/proj/sessions/"+session.SessionID, nil)
	req.Header.Set("Authorization", bearerToken(t, "alice"))
	w := httptest.NewRecorder()

	f.srv.Router.ServeHTTP(w, req)

	assert.Equal(t, 409, w.Code)
}

func TestListSessionsEndpoint(t *testing.T) {
	f := newServerFixture(t)
	session := testActiveSession()

	status := model.StatusActive
	f.sessions.On("QueryByRequester", mock.Anything, "alice", &status).Return([]model.RoleSession{*session}, nil)

	req := httptest.NewRequest("GET", "/sessions?status=active", nil)
	req.Header.Set("Authorization", bearerToken(t, "alice"))
	w := httptest.NewRecorder()

	f.srv.Router.ServeHTTP(w, req)

	require.Equal(t, 200, w.Code)

	var parsed struct {
		Sessions []model.SessionView `json:"sessions"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &parsed))
	require.Len(t, parsed.Sessions, 1)
	assert.Equal(t, session.SessionID, parsed.Sessions[0].SessionID)
}

func TestListSessionsEndpointBadStatus(t *testing.T) {
	f := newServerFixture(t)

	req := httptest.NewRequest("GET", "/sessions?status=bogus", nil)
	req.Header.Set("Authorization", bearerToken(t, "alice"))
	w := httptest.NewRecorder()

	f.srv.Router.ServeHTTP(w, req)

	assert.Equal(t, 400, w.Code)
}
