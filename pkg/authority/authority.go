// Package authority defines the credential-issuing authority interface: the
// external service that exchanges a scoped trust/permission policy for a
// provisioned role and, later, time-limited secret credentials.
package authority

import (
	"context"
	"errors"

	"github.com/rolevend/rolevend/pkg/model"
)

// ErrRoleAlreadyExists is returned when provisioning is retried against a
// role name that already exists. Role names embed the session id, so this
// only happens on a replayed provisioning attempt; the caller must fail
// cleanly rather than double-provision.
var ErrRoleAlreadyExists = errors.New("role already exists")

// Error wraps a downstream authority failure and records whether it is a
// retryable transport condition or a permanent rejection.
type Error struct {
	Op        string
	Retryable bool
	Err       error
}

func (e *Error) Error() string {
	return "authority: " + e.Op + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// ProvisionInput carries everything needed to materialize a role: the trust
// document (who may assume), the policy document (what it may do), the
// permission boundary (the hard ceiling), identification tags, and the
// maximum assumption window.
type ProvisionInput struct {
	Name               string
	Description        string
	TrustDocument      string
	PolicyDocument     string
	BoundaryDocument   string
	Tags               map[string]string
	MaxDurationSeconds int32
}

// Authority provisions roles and exchanges them for temporary credentials.
type Authority interface {
	// ProvisionRole creates the role and attaches the policy and boundary.
	// Returns the bound role reference. Returns ErrRoleAlreadyExists
	// (wrapped) if the name is taken.
	ProvisionRole(ctx context.Context, input ProvisionInput) (string, error)

	// ExchangeForCredentials assumes the role and returns time-boxed
	// credentials. The correlation token must match the trust document's
	// external id condition.
	ExchangeForCredentials(ctx context.Context, roleRef, correlationToken, sessionName string, durationSeconds int32) (*model.Credentials, error)

	// DecommissionRole tears down a provisioned role and its attachments.
	// Idempotent: a role that is already gone is not an error.
	DecommissionRole(ctx context.Context, name string) error
}
