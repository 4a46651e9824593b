// Package awsiam implements the credential authority against AWS IAM and
// STS. Roles are created with the trust document, an inline access policy
// and a managed permissions-boundary policy; credentials come from
// sts:AssumeRole with the session's correlation token as the external id.
package awsiam

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/iam"
	iamtypes "github.com/aws/aws-sdk-go-v2/service/iam/types"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/aws/smithy-go"

	"github.com/rolevend/rolevend/pkg/authority"
	"github.com/rolevend/rolevend/pkg/model"
)

// inlinePolicyName is the name of the inline access policy attached to every
// vended role.
const inlinePolicyName = "TemporaryAccessPolicy"

// IAMClient is the subset of the IAM API the authority uses.
type IAMClient interface {
	CreateRole(ctx context.Context, params *iam.CreateRoleInput, optFns ...func(*iam.Options)) (*iam.CreateRoleOutput, error)
	PutRolePolicy(ctx context.Context, params *iam.PutRolePolicyInput, optFns ...func(*iam.Options)) (*iam.PutRolePolicyOutput, error)
	DeleteRolePolicy(ctx context.Context, params *iam.DeleteRolePolicyInput, optFns ...func(*iam.Options)) (*iam.DeleteRolePolicyOutput, error)
	DeleteRole(ctx context.Context, params *iam.DeleteRoleInput, optFns ...func(*iam.Options)) (*iam.DeleteRoleOutput, error)
	CreatePolicy(ctx context.Context, params *iam.CreatePolicyInput, optFns ...func(*iam.Options)) (*iam.CreatePolicyOutput, error)
	DeletePolicy(ctx context.Context, params *iam.DeletePolicyInput, optFns ...func(*iam.Options)) (*iam.DeletePolicyOutput, error)
}

// STSClient is the subset of the STS API the authority uses.
type STSClient interface {
	AssumeRole(ctx context.Context, params *sts.AssumeRoleInput, optFns ...func(*sts.Options)) (*sts.AssumeRoleOutput, error)
}

// Ensure Authority implements authority.Authority
var _ authority.Authority = (*Authority)(nil)

// Authority is the AWS-backed credential authority.
type Authority struct {
	iam       IAMClient
	sts       STSClient
	accountID string
}

// Config configures the AWS authority.
type Config struct {
	Region    string
	AccountID string

	// Static credentials for the authority's own identity. Empty means the
	// default credential chain.
	AccessKeyID     string
	SecretAccessKey string
	SessionToken    string
}

// New creates an authority from the default AWS credential chain.
func New(ctx context.Context, cfg Config) (*Authority, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, cfg.SessionToken),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	return NewWithClients(iam.NewFromConfig(awsCfg), sts.NewFromConfig(awsCfg), cfg.AccountID), nil
}

// NewWithClients creates an authority with explicit API clients.
func NewWithClients(iamClient IAMClient, stsClient STSClient, accountID string) *Authority {
	return &Authority{iam: iamClient, sts: stsClient, accountID: accountID}
}

// ProvisionRole creates the boundary policy, the role, and the inline access
// policy, in that order. A partially provisioned role (policy attach failed)
// is torn down before returning so a later sweep doesn't find orphans.
func (a *Authority) ProvisionRole(ctx context.Context, input authority.ProvisionInput) (string, error) {
	boundaryARN, err := a.createBoundary(ctx, input)
	if err != nil {
		return "", err
	}

	tags := make([]iamtypes.Tag, 0, len(input.Tags))
	for key, value := range input.Tags {
		tags = append(tags, iamtypes.Tag{Key: aws.String(key), Value: aws.String(value)})
	}

	_, err = a.iam.CreateRole(ctx, &iam.CreateRoleInput{
		RoleName:                 aws.String(input.Name),
		AssumeRolePolicyDocument: aws.String(input.TrustDocument),
		Description:              aws.String(input.Description),
		MaxSessionDuration:       aws.Int32(input.MaxDurationSeconds),
		PermissionsBoundary:      aws.String(boundaryARN),
		Tags:                     tags,
	})
	if err != nil {
		_, _ = a.iam.DeletePolicy(ctx, &iam.DeletePolicyInput{PolicyArn: aws.String(boundaryARN)})
		if isAlreadyExists(err) {
			return "", &authority.Error{Op: "create role", Err: fmt.Errorf("%w: %s", authority.ErrRoleAlreadyExists, input.Name)}
		}
		return "", wrap("create role", err)
	}

	_, err = a.iam.PutRolePolicy(ctx, &iam.PutRolePolicyInput{
		RoleName:       aws.String(input.Name),
		PolicyName:     aws.String(inlinePolicyName),
		PolicyDocument: aws.String(input.PolicyDocument),
	})
	if err != nil {
		_, _ = a.iam.DeleteRole(ctx, &iam.DeleteRoleInput{RoleName: aws.String(input.Name)})
		_, _ = a.iam.DeletePolicy(ctx, &iam.DeletePolicyInput{PolicyArn: aws.String(boundaryARN)})
		return "", wrap("attach role policy", err)
	}

	return a.roleARN(input.Name), nil
}

func (a *Authority) createBoundary(ctx context.Context, input authority.ProvisionInput) (string, error) {
	out, err := a.iam.CreatePolicy(ctx, &iam.CreatePolicyInput{
		PolicyName:     aws.String(boundaryName(input.Name)),
		PolicyDocument: aws.String(input.BoundaryDocument),
		Description:    aws.String("Permission boundary for " + input.Name),
	})
	if err != nil {
		if isAlreadyExists(err) {
			return "", &authority.Error{Op: "create boundary", Err: fmt.Errorf("%w: %s", authority.ErrRoleAlreadyExists, input.Name)}
		}
		return "", wrap("create boundary", err)
	}
	return aws.ToString(out.Policy.Arn), nil
}

// ExchangeForCredentials assumes the role with the correlation token as the
// external id.
func (a *Authority) ExchangeForCredentials(ctx context.Context, roleRef, correlationToken, sessionName string, durationSeconds int32) (*model.Credentials, error) {
	input := &sts.AssumeRoleInput{
		RoleArn:         aws.String(roleRef),
		RoleSessionName: aws.String(sessionName),
		DurationSeconds: aws.Int32(durationSeconds),
	}
	if correlationToken != "" {
		input.ExternalId = aws.String(correlationToken)
	}

	out, err := a.sts.AssumeRole(ctx, input)
	if err != nil {
		return nil, wrap("assume role", err)
	}

	return &model.Credentials{
		AccessKeyID:     aws.ToString(out.Credentials.AccessKeyId),
		SecretAccessKey: aws.ToString(out.Credentials.SecretAccessKey),
		SessionToken:    aws.ToString(out.Credentials.SessionToken),
		Expiration:      aws.ToTime(out.Credentials.Expiration),
		RoleRef:         roleRef,
		SessionName:     sessionName,
	}, nil
}

// DecommissionRole removes the inline policy, the role, and the boundary
// policy. Missing pieces are skipped so the teardown is idempotent.
func (a *Authority) DecommissionRole(ctx context.Context, name string) error {
	_, err := a.iam.DeleteRolePolicy(ctx, &iam.DeleteRolePolicyInput{
		RoleName:   aws.String(name),
		PolicyName: aws.String(inlinePolicyName),
	})
	if err != nil && !isNotFound(err) {
		return wrap("detach role policy", err)
	}

	_, err = a.iam.DeleteRole(ctx, &iam.DeleteRoleInput{RoleName: aws.String(name)})
	if err != nil && !isNotFound(err) {
		return wrap("delete role", err)
	}

	_, err = a.iam.DeletePolicy(ctx, &iam.DeletePolicyInput{
		PolicyArn: aws.String(a.policyARN(boundaryName(name))),
	})
	if err != nil && !isNotFound(err) {
		return wrap("delete boundary", err)
	}
	return nil
}

func (a *Authority) roleARN(name string) string {
	return fmt.Sprintf("arn:aws:iam::%s:role/%s", a.accountID, name)
}

func (a *Authority) policyARN(name string) string {
	return fmt.Sprintf("arn:aws:iam::%s:policy/%s", a.accountID, name)
}

func boundaryName(roleName string) string {
	return roleName + "-boundary"
}

func wrap(op string, err error) error {
	return &authority.Error{Op: op, Retryable: isRetryable(err), Err: err}
}

func isAlreadyExists(err error) bool {
	var exists *iamtypes.EntityAlreadyExistsException
	return errors.As(err, &exists)
}

func isNotFound(err error) bool {
	var missing *iamtypes.NoSuchEntityException
	return errors.As(err, &missing)
}

// isRetryable classifies throttling, timeouts and server faults as
// retryable; everything else is a permanent rejection.
func isRetryable(err error) bool {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "Throttling", "ThrottlingException", "RequestTimeout", "ServiceUnavailable", "InternalFailure":
			return true
		}
		return apiErr.ErrorFault() == smithy.FaultServer
	}
	var timeout interface{ Timeout() bool }
	return errors.As(err, &timeout) && timeout.Timeout()
}
