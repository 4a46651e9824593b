package store

import (
	"context"
	"errors"
	"time"

	"github.com/rolevend/rolevend/pkg/model"
)

// ErrSessionNotFound is returned when a session doesn't exist.
var ErrSessionNotFound = errors.New("session not found")

// ErrStaleStatus is returned by a conditional status update whose expected
// prior status no longer matches. It signals a concurrent modification; the
// caller must not retry blindly.
var ErrStaleStatus = errors.New("session status changed concurrently")

// StatusUpdate describes one conditional status transition. The transition
// applies only if the stored status still equals ExpectedPrior; two
// operations racing on the same session cannot both succeed.
type StatusUpdate struct {
	ProjectID     string
	SessionID     string
	NewStatus     model.SessionStatus
	ExpectedPrior model.SessionStatus

	// RoleRef, when non-empty, is recorded alongside the transition
	// (provisioning binds the role reference as the session goes ACTIVE).
	RoleRef string
}

// SessionStore abstracts durable session persistence. All consistency the
// lifecycle manager relies on comes from UpdateStatus's conditional
// semantics; the store must apply it as a single atomic per-key update.
type SessionStore interface {
	// CreateSession persists a new session record.
	CreateSession(ctx context.Context, session *model.RoleSession) error

	// GetSession retrieves a session by its (project, session id) key.
	// Returns ErrSessionNotFound if it doesn't exist.
	GetSession(ctx context.Context, projectID, sessionID string) (*model.RoleSession, error)

	// UpdateStatus applies a conditional status transition. Returns
	// ErrSessionNotFound if the key doesn't exist and ErrStaleStatus if the
	// stored status differs from the expected prior status.
	UpdateStatus(ctx context.Context, update StatusUpdate) error

	// QueryByRequester lists sessions for a requester, optionally filtered
	// by status.
	QueryByRequester(ctx context.Context, requesterID string, status *model.SessionStatus) ([]model.RoleSession, error)

	// QueryExpired lists non-terminal sessions whose expiry has passed as of
	// the given instant. Already-terminal sessions are excluded, which is
	// what makes the expiry sweep idempotent.
	QueryExpired(ctx context.Context, asOf time.Time) ([]model.RoleSession, error)

	// DeleteSession physically removes a session record. Administrative
	// only; normal lifecycle never deletes.
	DeleteSession(ctx context.Context, projectID, sessionID string) error
}
