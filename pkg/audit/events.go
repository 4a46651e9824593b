package audit

import (
	"fmt"
	"strconv"

	"github.com/rolevend/rolevend/pkg/model"
)

// sessionData builds the common structured-data block all lifecycle events
// share.
func sessionData(projectID, sessionID, requesterID, correlationID string) map[string]map[string]string {
	return map[string]map[string]string{
		SDIDSubject: {
			"project":   projectID,
			"session":   sessionID,
			"requester": requesterID,
		},
		SDIDAction: {
			"correlation": correlationID,
		},
	}
}

func result(success bool) string {
	if success {
		return "success"
	}
	return "failure"
}

// RequestedEvent records a role request attempt, successful or not.
type RequestedEvent struct {
	ProjectID       string
	SessionID       string
	RequesterID     string
	CorrelationID   string
	Tier            model.PermissionTier
	DurationSeconds int64
	SourceAddress   string
	MFAUsed         bool
	Success         bool
	ErrorDetail     string
}

func (e RequestedEvent) MessageID() string { return "role-request" }

func (e RequestedEvent) Message() string {
	if e.Success {
		return fmt.Sprintf("%s was granted a %s role on project %s", e.RequesterID, e.Tier, e.ProjectID)
	}
	msg := fmt.Sprintf("%s was denied a %s role on project %s", e.RequesterID, e.Tier, e.ProjectID)
	if e.ErrorDetail != "" {
		msg += ": " + e.ErrorDetail
	}
	return msg
}

func (e RequestedEvent) Severity() Severity {
	if e.Success {
		return SeverityInfo
	}
	return SeverityWarning
}

func (e RequestedEvent) Facility() int { return FacilityAuthPriv }

func (e RequestedEvent) StructuredData() map[string]map[string]string {
	sd := sessionData(e.ProjectID, e.SessionID, e.RequesterID, e.CorrelationID)
	sd[SDIDAction]["operation"] = "ROLE_REQUESTED"
	sd[SDIDAction]["result"] = result(e.Success)
	sd[SDIDAction]["tier"] = e.Tier.String()
	sd[SDIDAction]["duration"] = strconv.FormatInt(e.DurationSeconds, 10)
	sd[SDIDClient] = map[string]string{
		"mfa": strconv.FormatBool(e.MFAUsed),
	}
	if e.SourceAddress != "" {
		sd[SDIDClient]["ip"] = e.SourceAddress
	}
	return sd
}

// AssumedEvent records a credential issue attempt against an active session.
type AssumedEvent struct {
	ProjectID     string
	SessionID     string
	RequesterID   string
	CorrelationID string
	Tier          model.PermissionTier
	SessionName   string
	Success       bool
	ErrorDetail   string
}

func (e AssumedEvent) MessageID() string { return "role-assume" }

func (e AssumedEvent) Message() string {
	if e.Success {
		return fmt.Sprintf("%s assumed session %s as %s", e.RequesterID, e.SessionID, e.SessionName)
	}
	msg := fmt.Sprintf("%s failed to assume session %s", e.RequesterID, e.SessionID)
	if e.ErrorDetail != "" {
		msg += ": " + e.ErrorDetail
	}
	return msg
}

func (e AssumedEvent) Severity() Severity {
	if e.Success {
		return SeverityInfo
	}
	return SeverityWarning
}

func (e AssumedEvent) Facility() int { return FacilityAuthPriv }

func (e AssumedEvent) StructuredData() map[string]map[string]string {
	sd := sessionData(e.ProjectID, e.SessionID, e.RequesterID, e.CorrelationID)
	sd[SDIDAction]["operation"] = "ROLE_ASSUMED"
	sd[SDIDAction]["result"] = result(e.Success)
	sd[SDIDAction]["tier"] = e.Tier.String()
	if e.SessionName != "" {
		sd[SDIDSubject]["session_name"] = e.SessionName
	}
	return sd
}

// RevokedEvent records an explicit revocation attempt.
type RevokedEvent struct {
	ProjectID     string
	SessionID     string
	RequesterID   string
	CorrelationID string
	Tier          model.PermissionTier
	Success       bool
	ErrorDetail   string
}

func (e RevokedEvent) MessageID() string { return "role-revoke" }

func (e RevokedEvent) Message() string {
	if e.Success {
		return fmt.Sprintf("session %s for %s was revoked", e.SessionID, e.RequesterID)
	}
	msg := fmt.Sprintf("failed to revoke session %s for %s", e.SessionID, e.RequesterID)
	if e.ErrorDetail != "" {
		msg += ": " + e.ErrorDetail
	}
	return msg
}

func (e RevokedEvent) Severity() Severity {
	// Break-glass revocations page someone either way; keep them loud.
	if e.Tier == model.TierBreakGlass {
		return SeverityNotice
	}
	if e.Success {
		return SeverityInfo
	}
	return SeverityWarning
}

func (e RevokedEvent) Facility() int { return FacilityAuthPriv }

func (e RevokedEvent) StructuredData() map[string]map[string]string {
	sd := sessionData(e.ProjectID, e.SessionID, e.RequesterID, e.CorrelationID)
	sd[SDIDAction]["operation"] = "ROLE_REVOKED"
	sd[SDIDAction]["result"] = result(e.Success)
	sd[SDIDAction]["tier"] = e.Tier.String()
	return sd
}

// ExpiredEvent records a sweep transition of a stale session to EXPIRED.
type ExpiredEvent struct {
	ProjectID     string
	SessionID     string
	RequesterID   string
	CorrelationID string
	Tier          model.PermissionTier
	Success       bool
	ErrorDetail   string
}

func (e ExpiredEvent) MessageID() string { return "role-expire" }

func (e ExpiredEvent) Message() string {
	if e.Success {
		return fmt.Sprintf("session %s for %s expired", e.SessionID, e.RequesterID)
	}
	msg := fmt.Sprintf("failed to expire session %s for %s", e.SessionID, e.RequesterID)
	if e.ErrorDetail != "" {
		msg += ": " + e.ErrorDetail
	}
	return msg
}

func (e ExpiredEvent) Severity() Severity {
	if e.Success {
		return SeverityInfo
	}
	return SeverityWarning
}

func (e ExpiredEvent) Facility() int { return FacilityAuthPriv }

func (e ExpiredEvent) StructuredData() map[string]map[string]string {
	sd := sessionData(e.ProjectID, e.SessionID, e.RequesterID, e.CorrelationID)
	sd[SDIDAction]["operation"] = "ROLE_EXPIRED"
	sd[SDIDAction]["result"] = result(e.Success)
	sd[SDIDAction]["tier"] = e.Tier.String()
	return sd
}
