package store

import (
	"context"
	"errors"

	"github.com/rolevend/rolevend/pkg/model"
)

// ErrTemplateNotFound is returned when no template is stored for a tier.
// Callers fall back to the compiled-in tier default.
var ErrTemplateNotFound = errors.New("policy template not found")

// TemplateStore abstracts policy template storage.
type TemplateStore interface {
	// GetTemplate retrieves the template for a tier. Returns
	// ErrTemplateNotFound if none is stored.
	GetTemplate(ctx context.Context, tier model.PermissionTier) (*model.PolicyTemplate, error)

	// PutTemplate stores or replaces the template for its tier.
	PutTemplate(ctx context.Context, template *model.PolicyTemplate) error
}
