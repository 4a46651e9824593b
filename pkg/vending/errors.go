package vending

import "fmt"

// ValidationReason discriminates why a request was rejected before any state
// change. Callers branch on the reason, not the message.
type ValidationReason string

const (
	// ReasonTierDuration means the requested duration exceeds the tier's
	// hard ceiling.
	ReasonTierDuration ValidationReason = "tier-duration-exceeded"

	// ReasonMFARequired means the deployment requires multi-factor
	// authentication and the request did not carry it.
	ReasonMFARequired ValidationReason = "mfa-required"

	// ReasonOriginDenied means the request's source address is outside the
	// allowed networks, is missing, or is unparsable. Origin checks fail
	// closed.
	ReasonOriginDenied ValidationReason = "origin-denied"
)

// ValidationError rejects a request before any session record exists. The
// request can be corrected and resubmitted.
type ValidationError struct {
	Reason ValidationReason
	Detail string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid request (%s): %s", e.Reason, e.Detail)
}

// NotFoundError reports a lookup against a session that doesn't exist.
type NotFoundError struct {
	ProjectID string
	SessionID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("session %s/%s not found", e.ProjectID, e.SessionID)
}

// ConflictError refuses a lifecycle transition because the session is not in
// a state that permits it, or because a concurrent operation won the race.
// The session record is unchanged by the refused operation.
type ConflictError struct {
	Op     string
	Status string
	Detail string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s refused for session in status %s: %s", e.Op, e.Status, e.Detail)
}

// AdapterError wraps a downstream failure (store or credential authority).
// Retryable distinguishes transient transport conditions from permanent
// rejections.
type AdapterError struct {
	Op        string
	Retryable bool
	Err       error
}

func (e *AdapterError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *AdapterError) Unwrap() error {
	return e.Err
}
