package gorm

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/rolevend/rolevend/pkg/model"
	"github.com/rolevend/rolevend/pkg/vending/store"
)

// Ensure TemplateStore implements store.TemplateStore
var _ store.TemplateStore = (*TemplateStore)(nil)

// TemplateStore implements store.TemplateStore on Postgres via GORM.
type TemplateStore struct {
	db *gorm.DB
}

// NewTemplateStore creates a new TemplateStore.
func NewTemplateStore(db *gorm.DB) *TemplateStore {
	return &TemplateStore{db: db}
}

// GetTemplate retrieves the template stored for a tier.
func (s *TemplateStore) GetTemplate(ctx context.Context, tier model.PermissionTier) (*model.PolicyTemplate, error) {
	var tmpl model.PolicyTemplate
	tx := s.db.WithContext(ctx).Where("tier = ?", tier).First(&tmpl)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, store.ErrTemplateNotFound
		}
		return nil, tx.Error
	}
	return &tmpl, nil
}

// PutTemplate stores or replaces the template for its tier.
func (s *TemplateStore) PutTemplate(ctx context.Context, template *model.PolicyTemplate) error {
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "tier"}},
			UpdateAll: true,
		}).
		Create(template).Error
}
