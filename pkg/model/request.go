package model

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"
)

// Global request bounds. Tier-specific maxima are enforced by the vending
// validator on top of these.
const (
	MinDurationHours = 1
	MaxDurationHours = 36

	MinJustificationLength = 10
)

var (
	ErrMissingProjectID      = errors.New("project id is required")
	ErrMissingRequesterID    = errors.New("requester id is required")
	ErrDurationOutOfRange    = fmt.Errorf("duration must be between %d and %d hours", MinDurationHours, MaxDurationHours)
	ErrJustificationTooShort = fmt.Errorf("justification must be at least %d characters", MinJustificationLength)
)

// RoleRequest is the input value object for a temporary role grant. Build it
// with NewRoleRequest so the construction invariants (global duration bounds,
// justification length) hold for every request the validator ever sees.
type RoleRequest struct {
	ProjectID     string         `json:"project_id"`
	RequesterID   string         `json:"requester_id"`
	Tier          PermissionTier `json:"tier"`
	Duration      time.Duration  `json:"duration_hours"`
	Justification string         `json:"justification"`

	// SourceAddress is the requester's network origin, when known.
	SourceAddress string `json:"source_address,omitempty"`
	MFAUsed       bool   `json:"mfa_used"`

	// CorrelationToken binds the session to one authorized assumption of the
	// provisioned role. Derived from the request when the caller leaves it
	// empty.
	CorrelationToken string `json:"correlation_token,omitempty"`
}

// NewRoleRequest validates the construction invariants and returns the
// request. Tier-specific duration caps, MFA and origin checks are the
// validator's job; nothing here mutates state.
func NewRoleRequest(projectID, requesterID string, tier PermissionTier, durationHours int, justification string) (*RoleRequest, error) {
	if projectID == "" {
		return nil, ErrMissingProjectID
	}
	if requesterID == "" {
		return nil, ErrMissingRequesterID
	}
	if durationHours < MinDurationHours || durationHours > MaxDurationHours {
		return nil, ErrDurationOutOfRange
	}
	if len(justification) < MinJustificationLength {
		return nil, ErrJustificationTooShort
	}

	return &RoleRequest{
		ProjectID:     projectID,
		RequesterID:   requesterID,
		Tier:          tier,
		Duration:      time.Duration(durationHours) * time.Hour,
		Justification: justification,
	}, nil
}

// DeriveCorrelationToken produces a deterministic opaque token for a
// project/requester pair. The hour bucket makes tokens rotate without any
// stored state.
func DeriveCorrelationToken(projectID, requesterID string, now time.Time) string {
	bucket := now.UTC().Unix() / 3600
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s:%s:%d", projectID, requesterID, bucket)))
	return hex.EncodeToString(sum[:])[:16]
}
