package gorm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/rolevend/rolevend/pkg/model"
	"github.com/rolevend/rolevend/pkg/vending/store"
)

// Ensure SessionStore implements store.SessionStore
var _ store.SessionStore = (*SessionStore)(nil)

// SessionStore implements store.SessionStore on Postgres via GORM.
type SessionStore struct {
	db *gorm.DB
}

// NewSessionStore creates a new SessionStore.
func NewSessionStore(db *gorm.DB) *SessionStore {
	return &SessionStore{db: db}
}

// CreateSession persists a new session record.
func (s *SessionStore) CreateSession(ctx context.Context, session *model.RoleSession) error {
	if err := s.db.WithContext(ctx).Create(session).Error; err != nil {
		return fmt.Errorf("create session %s/%s: %w", session.ProjectID, session.SessionID, err)
	}
	return nil
}

// GetSession retrieves a session by its (project, session id) key.
func (s *SessionStore) GetSession(ctx context.Context, projectID, sessionID string) (*model.RoleSession, error) {
	var session model.RoleSession
	tx := s.db.WithContext(ctx).
		Where("project_id = ? AND session_id = ?", projectID, sessionID).
		First(&session)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, store.ErrSessionNotFound
		}
		return nil, tx.Error
	}
	return &session, nil
}

// UpdateStatus applies a conditional status transition. The WHERE clause on
// the prior status makes the transition a single atomic compare-and-set;
// zero rows affected means either the key is gone or someone else won the
// race.
func (s *SessionStore) UpdateStatus(ctx context.Context, update store.StatusUpdate) error {
	changes := map[string]interface{}{"status": update.NewStatus}
	if update.RoleRef != "" {
		changes["role_ref"] = update.RoleRef
	}

	tx := s.db.WithContext(ctx).
		Model(&model.RoleSession{}).
		Where("project_id = ? AND session_id = ? AND status = ?",
			update.ProjectID, update.SessionID, update.ExpectedPrior).
		Updates(changes)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		if _, err := s.GetSession(ctx, update.ProjectID, update.SessionID); err != nil {
			return err
		}
		return store.ErrStaleStatus
	}
	return nil
}

// QueryByRequester lists sessions for a requester, newest first.
func (s *SessionStore) QueryByRequester(ctx context.Context, requesterID string, status *model.SessionStatus) ([]model.RoleSession, error) {
	query := s.db.WithContext(ctx).
		Where("requester_id = ?", requesterID).
		Order("requested_at desc")
	if status != nil {
		query = query.Where("status = ?", *status)
	}

	var sessions []model.RoleSession
	if err := query.Find(&sessions).Error; err != nil {
		return nil, err
	}
	return sessions, nil
}

// QueryExpired lists non-terminal sessions whose expiry has passed.
func (s *SessionStore) QueryExpired(ctx context.Context, asOf time.Time) ([]model.RoleSession, error) {
	var sessions []model.RoleSession
	err := s.db.WithContext(ctx).
		Where("expires_at < ? AND status IN ?",
			asOf, []model.SessionStatus{model.StatusPending, model.StatusActive}).
		Order("expires_at asc").
		Find(&sessions).Error
	if err != nil {
		return nil, err
	}
	return sessions, nil
}

// DeleteSession physically removes a session record.
func (s *SessionStore) DeleteSession(ctx context.Context, projectID, sessionID string) error {
	tx := s.db.WithContext(ctx).
		Where("project_id = ? AND session_id = ?", projectID, sessionID).
		Delete(&model.RoleSession{})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return store.ErrSessionNotFound
	}
	return nil
}
