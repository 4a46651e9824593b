package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// RequestMetadata is the free-form request context captured on the session
// record. Stored as a jsonb column.
type RequestMetadata struct {
	CorrelationToken string `json:"correlation_token,omitempty"`
	SourceAddress    string `json:"source_address,omitempty"`
	MFAUsed          bool   `json:"mfa_used"`
	Justification    string `json:"justification,omitempty"`
}

// Value implements the driver Valuer interface.
func (m RequestMetadata) Value() (driver.Value, error) {
	return json.Marshal(m)
}

// Scan implements the Scanner interface.
func (m *RequestMetadata) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	b, ok := value.([]byte)
	if !ok {
		s, ok := value.(string)
		if !ok {
			return fmt.Errorf("request metadata is not a byte slice")
		}
		b = []byte(s)
	}
	return json.Unmarshal(b, m)
}

// RoleSession tracks one grant of temporary access from request through
// expiry or revocation. Keyed by (project id, session id); owned by the
// lifecycle manager and mutated only through status transitions.
type RoleSession struct {
	ProjectID   string         `gorm:"column:project_id;primaryKey" json:"project_id"`
	SessionID   string         `gorm:"column:session_id;primaryKey" json:"session_id"`
	RequesterID string         `gorm:"column:requester_id" json:"requester_id"`
	RoleRef     string         `gorm:"column:role_ref" json:"role_ref"`
	Tier        PermissionTier `gorm:"column:tier;type:text" json:"tier"`
	RequestedAt time.Time      `gorm:"column:requested_at" json:"requested_at"`
	ExpiresAt   time.Time      `gorm:"column:expires_at" json:"expires_at"`
	Status      SessionStatus  `gorm:"column:status;type:text" json:"status"`

	Metadata RequestMetadata `gorm:"column:metadata;type:jsonb" json:"metadata"`
}

func (RoleSession) TableName() string {
	return "role_sessions"
}

// NewRoleSession creates a PENDING session for a validated request. RoleRef
// stays empty until provisioning completes.
func NewRoleSession(req *RoleRequest, now time.Time) *RoleSession {
	now = now.UTC().Truncate(time.Second)
	return &RoleSession{
		ProjectID:   req.ProjectID,
		SessionID:   uuid.NewString(),
		RequesterID: req.RequesterID,
		Tier:        req.Tier,
		RequestedAt: now,
		ExpiresAt:   now.Add(req.Duration),
		Status:      StatusPending,
		Metadata: RequestMetadata{
			CorrelationToken: req.CorrelationToken,
			SourceAddress:    req.SourceAddress,
			MFAUsed:          req.MFAUsed,
			Justification:    req.Justification,
		},
	}
}

// RoleName returns the deterministic name of the role provisioned for this
// session. Embedding the session id prefix keeps names unique per grant and
// lets orphaned roles be traced back to their session.
func (s *RoleSession) RoleName() string {
	return fmt.Sprintf("temp-role-%s-%s", s.ProjectID, shortID(s.SessionID))
}

// DefaultSessionName is the assumed-role session name used when the caller
// does not supply one.
func (s *RoleSession) DefaultSessionName() string {
	return "temp-role-" + shortID(s.SessionID)
}

func shortID(sessionID string) string {
	if len(sessionID) > 8 {
		return sessionID[:8]
	}
	return sessionID
}

// Expired reports whether the session's expiry instant has passed.
func (s *RoleSession) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

// TimeRemaining returns the remaining lifetime, floored at zero.
func (s *RoleSession) TimeRemaining(now time.Time) time.Duration {
	if remaining := s.ExpiresAt.Sub(now); remaining > 0 {
		return remaining
	}
	return 0
}

// View renders the session as the read-only status view returned by the API.
func (s *RoleSession) View(now time.Time) SessionView {
	return SessionView{
		SessionID:     s.SessionID,
		ProjectID:     s.ProjectID,
		RequesterID:   s.RequesterID,
		Tier:          s.Tier,
		Status:        s.Status,
		RequestedAt:   s.RequestedAt,
		ExpiresAt:     s.ExpiresAt,
		TimeRemaining: int64(s.TimeRemaining(now).Seconds()),
	}
}

// SessionView is the status view shape for getStatus and listSessions.
type SessionView struct {
	SessionID     string         `json:"session_id"`
	ProjectID     string         `json:"project_id"`
	RequesterID   string         `json:"requester_id"`
	Tier          PermissionTier `json:"tier"`
	Status        SessionStatus  `json:"status"`
	RequestedAt   time.Time      `json:"requested_at"`
	ExpiresAt     time.Time      `json:"expires_at"`
	TimeRemaining int64          `json:"time_remaining_seconds"`
}
