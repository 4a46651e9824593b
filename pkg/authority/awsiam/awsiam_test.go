package awsiam

import (
	"context"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/iam"
	iamtypes "github.com/aws/aws-sdk-go-v2/service/iam/types"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	ststypes "github.com/aws/aws-sdk-go-v2/service/sts/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rolevend/rolevend/pkg/authority"
)

// fakeIAM records calls and fails selected operations.
type fakeIAM struct {
	createPolicyErr error
	createRoleErr   error
	putPolicyErr    error
	deleteErr       error

	createdPolicies     []string
	createdRoles        []*iam.CreateRoleInput
	attachedPolicies    []string
	deletedPolicies     []string
	deletedRoles        []string
	deletedRolePolicies []string
}

func (f *fakeIAM) CreatePolicy(ctx context.Context, params *iam.CreatePolicyInput, optFns ...func(*iam.Options)) (*iam.CreatePolicyOutput, error) {
	if f.createPolicyErr != nil {
		return nil, f.createPolicyErr
	}
	name := aws.ToString(params.PolicyName)
	f.createdPolicies = append(f.createdPolicies, name)
	return &iam.CreatePolicyOutput{
		Policy: &iamtypes.Policy{Arn: aws.String("arn:aws:iam::123456789012:policy/" + name)},
	}, nil
}

func (f *fakeIAM) CreateRole(ctx context.Context, params *iam.CreateRoleInput, optFns ...func(*iam.Options)) (*iam.CreateRoleOutput, error) {
	if f.createRoleErr != nil {
		return nil, f.createRoleErr
	}
	f.createdRoles = append(f.createdRoles, params)
	return &iam.CreateRoleOutput{}, nil
}

func (f *fakeIAM) PutRolePolicy(ctx context.Context, params *iam.PutRolePolicyInput, optFns ...func(*iam.Options)) (*iam.PutRolePolicyOutput, error) {
	if f.putPolicyErr != nil {
		return nil, f.putPolicyErr
	}
	f.attachedPolicies = append(f.attachedPolicies, aws.ToString(params.PolicyName))
	return &iam.PutRolePolicyOutput{}, nil
}

func (f *fakeIAM) DeleteRolePolicy(ctx context.Context, params *iam.DeleteRolePolicyInput, optFns ...func(*iam.Options)) (*iam.DeleteRolePolicyOutput, error) {
	f.deletedRolePolicies = append(f.deletedRolePolicies, aws.ToString(params.PolicyName))
	if f.deleteErr != nil {
		return nil, f.deleteErr
	}
	return &iam.DeleteRolePolicyOutput{}, nil
}

func (f *fakeIAM) DeleteRole(ctx context.Context, params *iam.DeleteRoleInput, optFns ...func(*iam.Options)) (*iam.DeleteRoleOutput, error) {
	f.deletedRoles = append(f.deletedRoles, aws.ToString(params.RoleName))
	if f.deleteErr != nil {
		return nil, f.deleteErr
	}
	return &iam.DeleteRoleOutput{}, nil
}

func (f *fakeIAM) DeletePolicy(ctx context.Context, params *iam.DeletePolicyInput, optFns ...func(*iam.Options)) (*iam.DeletePolicyOutput, error) {
	f.deletedPolicies = append(f.deletedPolicies, aws.ToString(params.PolicyArn))
	if f.deleteErr != nil {
		return nil, f.deleteErr
	}
	return &iam.DeletePolicyOutput{}, nil
}

// fakeSTS returns canned credentials and records the assume input.
type fakeSTS struct {
	err      error
	lastCall *sts.AssumeRoleInput
}

func (f *fakeSTS) AssumeRole(ctx context.Context, params *sts.AssumeRoleInput, optFns ...func(*sts.Options)) (*sts.AssumeRoleOutput, error) {
	f.lastCall = params
	if f.err != nil {
		return nil, f.err
	}
	return &sts.AssumeRoleOutput{
		Credentials: &ststypes.Credentials{
			AccessKeyId:     aws.String("AKIAEXAMPLE"),
			SecretAccessKey: aws.String("secret"),
			SessionToken:    aws.String("token"),
			Expiration:      aws.Time(time.Date(2025, 8, 1, 11, 0, 0, 0, time.UTC)),
		},
	}, nil
}

func provisionInput() authority.ProvisionInput {
	return authority.ProvisionInput{
		Name:               "temp-role-proj-11112222",
		Description:        "Temporary developer access",
		TrustDocument:      `{"Version": "2012-10-17"}`,
		PolicyDocument:     `{"Version": "2012-10-17"}`,
		BoundaryDocument:   `{"Version": "2012-10-17"}`,
		Tags:               map[string]string{"Project": "proj"},
		MaxDurationSeconds: 14400,
	}
}

func TestProvisionRole(t *testing.T) {
	iamFake := &fakeIAM{}
	auth := NewWithClients(iamFake, &fakeSTS{}, "123456789012")

	roleRef, err := auth.ProvisionRole(context.Background(), provisionInput())
	require.NoError(t, err)
	assert.Equal(t, "arn:aws:iam::123456789012:role/temp-role-proj-11112222", roleRef)

	// Boundary policy first, then the role bound to it, then the inline policy.
	require.Equal(t, []string{"temp-role-proj-11112222-boundary"}, iamFake.createdPolicies)
	require.Len(t, iamFake.createdRoles, 1)
	role := iamFake.createdRoles[0]
	assert.Equal(t, "temp-role-proj-11112222", aws.ToString(role.RoleName))
	assert.Equal(t, "arn:aws:iam::123456789012:policy/temp-role-proj-11112222-boundary", aws.ToString(role.PermissionsBoundary))
	assert.Equal(t, int32(14400), aws.ToInt32(role.MaxSessionDuration))
	assert.Equal(t, []string{inlinePolicyName}, iamFake.attachedPolicies)
	assert.Empty(t, iamFake.deletedRoles)
}

func TestProvisionRoleAlreadyExists(t *testing.T) {
	iamFake := &fakeIAM{
		createRoleErr: &iamtypes.EntityAlreadyExistsException{Message: aws.String("role exists")},
	}
	auth := NewWithClients(iamFake, &fakeSTS{}, "123456789012")

	_, err := auth.ProvisionRole(context.Background(), provisionInput())
	assert.ErrorIs(t, err, authority.ErrRoleAlreadyExists)

	// The boundary created before the collision is cleaned up.
	assert.Equal(t, []string{"arn:aws:iam::123456789012:policy/temp-role-proj-11112222-boundary"}, iamFake.deletedPolicies)
}

func TestProvisionRolePolicyAttachFailureRollsBack(t *testing.T) {
	iamFake := &fakeIAM{
		putPolicyErr: &smithy.GenericAPIError{Code: "MalformedPolicyDocument", Fault: smithy.FaultClient},
	}
	auth := NewWithClients(iamFake, &fakeSTS{}, "123456789012")

	_, err := auth.ProvisionRole(context.Background(), provisionInput())
	var authErr *authority.Error
	require.ErrorAs(t, err, &authErr)
	assert.False(t, authErr.Retryable)

	// Nothing assumable survives a partial provision.
	assert.Equal(t, []string{"temp-role-proj-11112222"}, iamFake.deletedRoles)
	assert.Equal(t, []string{"arn:aws:iam::123456789012:policy/temp-role-proj-11112222-boundary"}, iamFake.deletedPolicies)
}

func TestProvisionRoleThrottlingIsRetryable(t *testing.T) {
	iamFake := &fakeIAM{
		createRoleErr: &smithy.GenericAPIError{Code: "Throttling", Fault: smithy.FaultClient},
	}
	auth := NewWithClients(iamFake, &fakeSTS{}, "123456789012")

	_, err := auth.ProvisionRole(context.Background(), provisionInput())
	var authErr *authority.Error
	require.ErrorAs(t, err, &authErr)
	assert.True(t, authErr.Retryable)
}

func TestDecommissionRoleIdempotent(t *testing.T) {
	iamFake := &fakeIAM{
		deleteErr: &iamtypes.NoSuchEntityException{Message: aws.String("gone")},
	}
	auth := NewWithClients(iamFake, &fakeSTS{}, "123456789012")

	// Everything is already gone; both passes succeed.
	require.NoError(t, auth.DecommissionRole(context.Background(), "temp-role-proj-11112222"))
	require.NoError(t, auth.DecommissionRole(context.Background(), "temp-role-proj-11112222"))

	assert.Len(t, iamFake.deletedRolePolicies, 2)
	assert.Len(t, iamFake.deletedRoles, 2)
	assert.Len(t, iamFake.deletedPolicies, 2)
}

func TestDecommissionRoleSurfacesRealFailures(t *testing.T) {
	iamFake := &fakeIAM{
		deleteErr: &smithy.GenericAPIError{Code: "ServiceUnavailable", Fault: smithy.FaultServer},
	}
	auth := NewWithClients(iamFake, &fakeSTS{}, "123456789012")

	err := auth.DecommissionRole(context.Background(), "temp-role-proj-11112222")
	var authErr *authority.Error
	require.ErrorAs(t, err, &authErr)
	assert.True(t, authErr.Retryable)
}

func TestExchangeForCredentials(t *testing.T) {
	stsFake := &fakeSTS{}
	auth := NewWithClients(&fakeIAM{}, stsFake, "123456789012")

	creds, err := auth.ExchangeForCredentials(context.Background(),
		"arn:aws:iam::123456789012:role/temp-role-proj-11112222",
		"corrtoken12345", "temp-role-11112222", 1800)
	require.NoError(t, err)

	assert.Equal(t, "AKIAEXAMPLE", creds.AccessKeyID)
	assert.Equal(t, "secret", creds.SecretAccessKey)
	assert.Equal(t, "token", creds.SessionToken)
	assert.Equal(t, "temp-role-11112222", creds.SessionName)

	require.NotNil(t, stsFake.lastCall)
	assert.Equal(t, "corrtoken12345", aws.ToString(stsFake.lastCall.ExternalId))
	assert.Equal(t, int32(1800), aws.ToInt32(stsFake.lastCall.DurationSeconds))
}
