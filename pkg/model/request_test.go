package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRoleRequest(t *testing.T) {
	req, err := NewRoleRequest("data-pipeline", "alice", TierDeveloper, 4, "debugging ingest failures")
	require.NoError(t, err)
	assert.Equal(t, "data-pipeline", req.ProjectID)
	assert.Equal(t, "alice", req.RequesterID)
	assert.Equal(t, 4*time.Hour, req.Duration)
	assert.Empty(t, req.CorrelationToken)
}

func TestNewRoleRequestRejections(t *testing.T) {
	tests := []struct {
		name          string
		projectID     string
		requesterID   string
		duration      int
		justification string
		wantErr       error
	}{
		{"missing project", "", "alice", 4, "debugging ingest failures", ErrMissingProjectID},
		{"missing requester", "proj", "", 4, "debugging ingest failures", ErrMissingRequesterID},
		{"duration too short", "proj", "alice", 0, "debugging ingest failures", ErrDurationOutOfRange},
		{"duration too long", "proj", "alice", 37, "debugging ingest failures", ErrDurationOutOfRange},
		{"justification too short", "proj", "alice", 4, "because", ErrJustificationTooShort},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRoleRequest(tt.projectID, tt.requesterID, TierDeveloper, tt.duration, tt.justification)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestDeriveCorrelationToken(t *testing.T) {
	now := time.Date(2025, 8, 1, 10, 30, 0, 0, time.UTC)

	token := DeriveCorrelationToken("proj", "alice", now)
	assert.Len(t, token, 16)

	// Stable within the hour bucket.
	assert.Equal(t, token, DeriveCorrelationToken("proj", "alice", now.Add(20*time.Minute)))

	// Rotates across hour buckets, and differs per requester.
	assert.NotEqual(t, token, DeriveCorrelationToken("proj", "alice", now.Add(time.Hour)))
	assert.NotEqual(t, token, DeriveCorrelationToken("proj", "bob", now))
}
