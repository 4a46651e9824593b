package vending

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/rolevend/rolevend/pkg/audit"
	"github.com/rolevend/rolevend/pkg/authority"
	"github.com/rolevend/rolevend/pkg/config"
	"github.com/rolevend/rolevend/pkg/model"
	"github.com/rolevend/rolevend/pkg/notify"
	"github.com/rolevend/rolevend/pkg/policy"
	"github.com/rolevend/rolevend/pkg/vending/store"
)

// AWS caps role session duration at 12 hours; grants longer than that are
// served through repeated credential issuance against the same role.
const (
	minRoleSessionSeconds = 3600
	maxRoleSessionSeconds = 43200
)

// Vendor is the role-session lifecycle manager. It owns every status
// transition a session ever makes: request admission and provisioning
// (PENDING to ACTIVE or FAILED), credential issuance against ACTIVE
// sessions, revocation, and the expiry sweep. All writes go through the
// session store's conditional update, so two operations racing on one
// session cannot both win.
type Vendor struct {
	sessions  store.SessionStore
	renderer  *policy.Renderer
	validator *Validator
	authority authority.Authority
	sink      audit.Sink
	notifier  notify.Notifier
	cfg       config.Config

	// now is injected for tests; time.Now otherwise.
	now func() time.Time
}

// Option adjusts a Vendor at construction time.
type Option func(*Vendor)

// WithClock overrides the vendor's time source.
func WithClock(now func() time.Time) Option {
	return func(v *Vendor) { v.now = now }
}

// WithNotifier attaches an alert notifier. Without one, break-glass alerts
// are logged and dropped.
func WithNotifier(n notify.Notifier) Option {
	return func(v *Vendor) { v.notifier = n }
}

// NewVendor wires the lifecycle manager. The renderer, store, authority and
// audit sink are required.
func NewVendor(
	cfg config.Config,
	sessions store.SessionStore,
	renderer *policy.Renderer,
	auth authority.Authority,
	sink audit.Sink,
	options ...Option,
) (*Vendor, error) {
	validator, err := NewValidator(cfg)
	if err != nil {
		return nil, err
	}

	v := &Vendor{
		sessions:  sessions,
		renderer:  renderer,
		validator: validator,
		authority: auth,
		sink:      sink,
		cfg:       cfg,
		now:       time.Now,
	}
	for _, opt := range options {
		opt(v)
	}
	return v, nil
}

// RequestRole admits a request, persists a PENDING session, provisions the
// role, and transitions the session to ACTIVE (or FAILED when provisioning
// is unrecoverable). Every attempt is audited, success or not.
func (v *Vendor) RequestRole(ctx context.Context, req *model.RoleRequest) (*model.RoleSession, error) {
	now := v.now().UTC()

	if err := v.validator.Validate(req); err != nil {
		v.sink.Submit(audit.RequestedEvent{
			ProjectID:       req.ProjectID,
			RequesterID:     req.RequesterID,
			Tier:            req.Tier,
			DurationSeconds: int64(req.Duration.Seconds()),
			SourceAddress:   req.SourceAddress,
			MFAUsed:         req.MFAUsed,
			Success:         false,
			ErrorDetail:     err.Error(),
		})
		return nil, err
	}

	if req.CorrelationToken == "" {
		req.CorrelationToken = model.DeriveCorrelationToken(req.ProjectID, req.RequesterID, now)
	}

	session := model.NewRoleSession(req, now)
	if err := v.sessions.CreateSession(ctx, session); err != nil {
		return nil, &AdapterError{Op: "create session", Err: err}
	}

	roleRef, err := v.provision(ctx, session)

	event := audit.RequestedEvent{
		ProjectID:       session.ProjectID,
		SessionID:       session.SessionID,
		RequesterID:     session.RequesterID,
		CorrelationID:   session.Metadata.CorrelationToken,
		Tier:            session.Tier,
		DurationSeconds: int64(req.Duration.Seconds()),
		SourceAddress:   req.SourceAddress,
		MFAUsed:         req.MFAUsed,
		Success:         err == nil,
	}
	if err != nil {
		event.ErrorDetail = err.Error()
	}
	v.sink.Submit(event)

	if err != nil {
		v.markFailed(ctx, session)
		return nil, err
	}

	if updateErr := v.sessions.UpdateStatus(ctx, store.StatusUpdate{
		ProjectID:     session.ProjectID,
		SessionID:     session.SessionID,
		NewStatus:     model.StatusActive,
		ExpectedPrior: model.StatusPending,
		RoleRef:       roleRef,
	}); updateErr != nil {
		// The role exists but the record refused to activate. Tear the
		// role down so nothing assumable is left dangling.
		if decomErr := v.authority.DecommissionRole(ctx, session.RoleName()); decomErr != nil {
			log.Printf("session %s: decommission after failed activation: %v", session.SessionID, decomErr)
		}
		v.markFailed(ctx, session)
		return nil, &AdapterError{Op: "activate session", Err: updateErr}
	}

	session.Status = model.StatusActive
	session.RoleRef = roleRef

	if session.Tier == model.TierBreakGlass {
		v.alert(ctx, "Break-glass access activated", session, "activated")
	}
	return session, nil
}

// provision renders the three policy documents and asks the authority for a
// role. Returns the bound role reference.
func (v *Vendor) provision(ctx context.Context, session *model.RoleSession) (string, error) {
	variables := map[string]string{
		"projectId":   session.ProjectID,
		"requesterId": session.RequesterID,
		"accountId":   v.cfg.AccountID,
		"region":      v.cfg.Region,
	}

	permissions, err := v.renderer.Render(ctx, session.Tier, variables)
	if err != nil {
		return "", fmt.Errorf("render permissions: %w", err)
	}

	boundary, err := policy.Boundary(session.Tier)
	if err != nil {
		return "", fmt.Errorf("render boundary: %w", err)
	}

	trust, err := policy.RenderTrust(policy.TrustParams{
		AccountID:        v.cfg.AccountID,
		CorrelationToken: session.Metadata.CorrelationToken,
		AllowedGroups:    v.cfg.AllowedDepartments,
		AllowedNetworks:  v.cfg.AllowedNetworks,
		MFARequired:      v.cfg.MFARequired,
	})
	if err != nil {
		return "", fmt.Errorf("render trust: %w", err)
	}

	roleRef, err := v.authority.ProvisionRole(ctx, authority.ProvisionInput{
		Name:             session.RoleName(),
		Description:      fmt.Sprintf("Temporary %s access for %s (session %s)", session.Tier, session.RequesterID, session.SessionID),
		TrustDocument:    trust,
		PolicyDocument:   permissions,
		BoundaryDocument: boundary,
		Tags: map[string]string{
			"Project":   session.ProjectID,
			"Requester": session.RequesterID,
			"Tier":      session.Tier.String(),
			"SessionId": session.SessionID,
			"ManagedBy": "rolevend",
		},
		MaxDurationSeconds: roleSessionSeconds(session.ExpiresAt.Sub(session.RequestedAt)),
	})
	if err != nil {
		return "", wrapAuthorityError("provision role", err)
	}
	return roleRef, nil
}

// IssueCredentials exchanges an ACTIVE session for time-boxed credentials.
// The credential window never outlives the session: it is the smaller of
// the configured ceiling and the time remaining. A session found expired
// here is transitioned to EXPIRED and refused.
func (v *Vendor) IssueCredentials(ctx context.Context, projectID, sessionID, sessionName string) (*model.Credentials, error) {
	now := v.now().UTC()

	session, err := v.getSession(ctx, projectID, sessionID)
	if err != nil {
		return nil, err
	}

	if session.Status != model.StatusActive {
		detail := "credentials are only issued against active sessions"
		v.auditAssumeRefused(session, sessionName, detail)
		return nil, &ConflictError{
			Op:     "issue credentials",
			Status: session.Status.String(),
			Detail: detail,
		}
	}

	if session.Expired(now) {
		v.expireSession(ctx, session)
		v.auditAssumeRefused(session, sessionName, "session expired")
		return nil, &ConflictError{
			Op:     "issue credentials",
			Status: model.StatusExpired.String(),
			Detail: "session expired",
		}
	}

	if sessionName == "" {
		sessionName = session.DefaultSessionName()
	}

	seconds := int32(v.cfg.CredentialTTLCeiling)
	if remaining := int32(session.TimeRemaining(now).Seconds()); remaining < seconds {
		seconds = remaining
	}
	if seconds < 900 {
		// STS refuses durations under 15 minutes; issue the floor and let
		// expiry cut the session off.
		seconds = 900
	}

	creds, err := v.authority.ExchangeForCredentials(ctx, session.RoleRef, session.Metadata.CorrelationToken, sessionName, seconds)

	event := audit.AssumedEvent{
		ProjectID:     session.ProjectID,
		SessionID:     session.SessionID,
		RequesterID:   session.RequesterID,
		CorrelationID: session.Metadata.CorrelationToken,
		Tier:          session.Tier,
		SessionName:   sessionName,
		Success:       err == nil,
	}
	if err != nil {
		event.ErrorDetail = err.Error()
	}
	v.sink.Submit(event)

	if err != nil {
		return nil, wrapAuthorityError("exchange credentials", err)
	}
	return creds, nil
}

// auditAssumeRefused records an issuance attempt refused before it ever
// reached the authority, so the audit trail covers every call.
func (v *Vendor) auditAssumeRefused(session *model.RoleSession, sessionName, detail string) {
	v.sink.Submit(audit.AssumedEvent{
		ProjectID:     session.ProjectID,
		SessionID:     session.SessionID,
		RequesterID:   session.RequesterID,
		CorrelationID: session.Metadata.CorrelationToken,
		Tier:          session.Tier,
		SessionName:   sessionName,
		Success:       false,
		ErrorDetail:   detail,
	})
}

// GetStatus returns the read-only view of a session.
func (v *Vendor) GetStatus(ctx context.Context, projectID, sessionID string) (*model.SessionView, error) {
	session, err := v.getSession(ctx, projectID, sessionID)
	if err != nil {
		return nil, err
	}
	view := session.View(v.now().UTC())
	return &view, nil
}

// ListSessions lists a requester's sessions, optionally filtered by status.
func (v *Vendor) ListSessions(ctx context.Context, requesterID string, status *model.SessionStatus) ([]model.SessionView, error) {
	sessions, err := v.sessions.QueryByRequester(ctx, requesterID, status)
	if err != nil {
		return nil, &AdapterError{Op: "list sessions", Err: err}
	}

	now := v.now().UTC()
	views := make([]model.SessionView, 0, len(sessions))
	for i := range sessions {
		views = append(views, sessions[i].View(now))
	}
	return views, nil
}

// Revoke cuts an ACTIVE session off ahead of its expiry. Terminal sessions
// refuse revocation; so does a session whose status changes under us. The
// provisioned role is torn down best-effort after the record transitions.
func (v *Vendor) Revoke(ctx context.Context, projectID, sessionID string) error {
	session, err := v.getSession(ctx, projectID, sessionID)
	if err != nil {
		return err
	}

	if session.Status != model.StatusActive {
		return &ConflictError{
			Op:     "revoke",
			Status: session.Status.String(),
			Detail: "only active sessions can be revoked",
		}
	}

	err = v.sessions.UpdateStatus(ctx, store.StatusUpdate{
		ProjectID:     projectID,
		SessionID:     sessionID,
		NewStatus:     model.StatusRevoked,
		ExpectedPrior: model.StatusActive,
	})

	event := audit.RevokedEvent{
		ProjectID:     session.ProjectID,
		SessionID:     session.SessionID,
		RequesterID:   session.RequesterID,
		CorrelationID: session.Metadata.CorrelationToken,
		Tier:          session.Tier,
		Success:       err == nil,
	}
	if err != nil {
		event.ErrorDetail = err.Error()
	}
	v.sink.Submit(event)

	if err != nil {
		if errors.Is(err, store.ErrStaleStatus) {
			return &ConflictError{
				Op:     "revoke",
				Status: session.Status.String(),
				Detail: "session status changed concurrently",
			}
		}
		return &AdapterError{Op: "revoke", Err: err}
	}

	v.decommission(ctx, session)

	if session.Tier == model.TierBreakGlass {
		v.alert(ctx, "Break-glass access revoked", session, "revoked")
	}
	return nil
}

// SweepExpired transitions every overdue non-terminal session to EXPIRED and
// tears its role down. One stubborn session never stops the sweep; the
// conditional update makes concurrent sweeps converge on a single
// transition per session. Returns the number of sessions expired.
func (v *Vendor) SweepExpired(ctx context.Context) (int, error) {
	now := v.now().UTC()

	overdue, err := v.sessions.QueryExpired(ctx, now)
	if err != nil {
		return 0, &AdapterError{Op: "query expired", Err: err}
	}

	expired := 0
	for i := range overdue {
		if v.expireSession(ctx, &overdue[i]) {
			expired++
		}
	}
	return expired, nil
}

// expireSession transitions one session to EXPIRED from whatever
// non-terminal status it holds and decommissions its role. Reports whether
// this call won the transition.
func (v *Vendor) expireSession(ctx context.Context, session *model.RoleSession) bool {
	err := v.sessions.UpdateStatus(ctx, store.StatusUpdate{
		ProjectID:     session.ProjectID,
		SessionID:     session.SessionID,
		NewStatus:     model.StatusExpired,
		ExpectedPrior: session.Status,
	})
	if errors.Is(err, store.ErrStaleStatus) || errors.Is(err, store.ErrSessionNotFound) {
		// Someone else already moved it; nothing left to do here.
		log.Printf("session %s: expire skipped, already transitioned elsewhere", session.SessionID)
		return false
	}

	event := audit.ExpiredEvent{
		ProjectID:     session.ProjectID,
		SessionID:     session.SessionID,
		RequesterID:   session.RequesterID,
		CorrelationID: session.Metadata.CorrelationToken,
		Tier:          session.Tier,
		Success:       err == nil,
	}
	if err != nil {
		event.ErrorDetail = err.Error()
		v.sink.Submit(event)
		log.Printf("session %s: expire: %v", session.SessionID, err)
		return false
	}
	v.sink.Submit(event)

	v.decommission(ctx, session)
	return true
}

// markFailed transitions a PENDING session to FAILED. FAILED is terminal;
// a retried request gets a fresh session id.
func (v *Vendor) markFailed(ctx context.Context, session *model.RoleSession) {
	if err := v.sessions.UpdateStatus(ctx, store.StatusUpdate{
		ProjectID:     session.ProjectID,
		SessionID:     session.SessionID,
		NewStatus:     model.StatusFailed,
		ExpectedPrior: model.StatusPending,
	}); err != nil {
		log.Printf("session %s: mark failed: %v", session.SessionID, err)
	}
	session.Status = model.StatusFailed
}

// decommission tears down the provisioned role best-effort. The session
// record is already terminal at this point; a teardown failure is logged
// for the operator, not surfaced to the caller.
func (v *Vendor) decommission(ctx context.Context, session *model.RoleSession) {
	if session.RoleRef == "" {
		return
	}
	if err := v.authority.DecommissionRole(ctx, session.RoleName()); err != nil {
		log.Printf("session %s: decommission role %s: %v", session.SessionID, session.RoleName(), err)
	}
}

// alert sends a break-glass notification. Delivery is best-effort; the
// lifecycle transition already happened and is not rolled back over a
// notification failure.
func (v *Vendor) alert(ctx context.Context, subject string, session *model.RoleSession, action string) {
	if v.notifier == nil || v.cfg.NotificationTopic == "" {
		log.Printf("session %s: break-glass %s (no notifier configured)", session.SessionID, action)
		return
	}
	err := v.notifier.Notify(ctx, v.cfg.NotificationTopic, subject, map[string]string{
		"alert_type": "break_glass",
		"action":     action,
		"user":       session.RequesterID,
		"project":    session.ProjectID,
		"session_id": session.SessionID,
		"expires_at": session.ExpiresAt.Format(time.RFC3339),
		"timestamp":  v.now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		log.Printf("session %s: break-glass notification: %v", session.SessionID, err)
	}
}

func (v *Vendor) getSession(ctx context.Context, projectID, sessionID string) (*model.RoleSession, error) {
	session, err := v.sessions.GetSession(ctx, projectID, sessionID)
	if errors.Is(err, store.ErrSessionNotFound) {
		return nil, &NotFoundError{ProjectID: projectID, SessionID: sessionID}
	}
	if err != nil {
		return nil, &AdapterError{Op: "get session", Err: err}
	}
	return session, nil
}

// wrapAuthorityError lifts an authority failure into the vending error
// taxonomy, preserving retryability.
func wrapAuthorityError(op string, err error) error {
	var authErr *authority.Error
	if errors.As(err, &authErr) {
		return &AdapterError{Op: op, Retryable: authErr.Retryable, Err: err}
	}
	return &AdapterError{Op: op, Err: err}
}

func roleSessionSeconds(d time.Duration) int32 {
	seconds := int32(d.Seconds())
	if seconds < minRoleSessionSeconds {
		return minRoleSessionSeconds
	}
	if seconds > maxRoleSessionSeconds {
		return maxRoleSessionSeconds
	}
	return seconds
}
