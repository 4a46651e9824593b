// Package s3 provides a blob-bucket implementation of the template store.
// Templates live at templates/<tier>.json, which keeps them editable with
// ordinary object tooling.
package s3

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"github.com/rolevend/rolevend/pkg/model"
	"github.com/rolevend/rolevend/pkg/vending/store"
)

// Client is the subset of the S3 API the template store uses.
type Client interface {
	GetObject(ctx context.Context, params *awss3.GetObjectInput, optFns ...func(*awss3.Options)) (*awss3.GetObjectOutput, error)
	PutObject(ctx context.Context, params *awss3.PutObjectInput, optFns ...func(*awss3.Options)) (*awss3.PutObjectOutput, error)
}

// Ensure TemplateStore implements store.TemplateStore
var _ store.TemplateStore = (*TemplateStore)(nil)

// TemplateStore implements store.TemplateStore against an object bucket.
type TemplateStore struct {
	client Client
	bucket string
}

// NewTemplateStore creates a bucket-backed template store.
func NewTemplateStore(client Client, bucket string) *TemplateStore {
	return &TemplateStore{client: client, bucket: bucket}
}

func templateKey(tier model.PermissionTier) string {
	return fmt.Sprintf("templates/%s.json", tier)
}

// GetTemplate retrieves the template object for a tier.
func (s *TemplateStore) GetTemplate(ctx context.Context, tier model.PermissionTier) (*model.PolicyTemplate, error) {
	out, err := s.client.GetObject(ctx, &awss3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(templateKey(tier)),
	})
	if err != nil {
		if isNotFound(err) {
			return nil, store.ErrTemplateNotFound
		}
		return nil, fmt.Errorf("fetch template %s: %w", templateKey(tier), err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("read template %s: %w", templateKey(tier), err)
	}

	var tmpl model.PolicyTemplate
	if err := json.Unmarshal(data, &tmpl); err != nil {
		return nil, fmt.Errorf("decode template %s: %w", templateKey(tier), err)
	}
	return &tmpl, nil
}

// PutTemplate stores or replaces the template object for its tier.
func (s *TemplateStore) PutTemplate(ctx context.Context, template *model.PolicyTemplate) error {
	data, err := json.MarshalIndent(template, "", "  ")
	if err != nil {
		return err
	}

	_, err = s.client.PutObject(ctx, &awss3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(templateKey(template.Tier)),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("store template %s: %w", templateKey(template.Tier), err)
	}
	return nil
}

func isNotFound(err error) bool {
	var noKey *types.NoSuchKey
	if errors.As(err, &noKey) {
		return true
	}
	var apiErr smithy.APIError
	return errors.As(err, &apiErr) && apiErr.ErrorCode() == "NotFound"
}
