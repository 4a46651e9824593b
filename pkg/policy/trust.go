package policy

import "fmt"

// TrustParams are the inputs to a trust document: who may assume the
// provisioned role and under what conditions.
type TrustParams struct {
	// AccountID is the account whose principals may assume the role.
	AccountID string

	// CorrelationToken is the external id a caller must present; it binds
	// the role to one authorized assumption path.
	CorrelationToken string

	// AllowedGroups restricts assumption to principals tagged with one of
	// these department values.
	AllowedGroups []string

	// AllowedNetworks restricts assumption to these source CIDR ranges.
	AllowedNetworks []string

	// MFARequired adds a maximum authentication age condition.
	MFARequired bool
}

// maxAuthAgeSeconds is the MFA freshness window in the trust condition.
const maxAuthAgeSeconds = "3600"

// RenderTrust builds the trust document granting assume permission to a
// single external token holder, scoped by group membership and source
// network, with an MFA age condition when required.
func RenderTrust(params TrustParams) (string, error) {
	condition := map[string]map[string]any{
		"StringEquals": {
			"sts:ExternalId": params.CorrelationToken,
		},
		"IpAddress": {
			"aws:SourceIp": params.AllowedNetworks,
		},
	}
	if len(params.AllowedGroups) > 0 {
		condition["StringEquals"]["aws:PrincipalTag/Department"] = params.AllowedGroups
	}
	if params.MFARequired {
		condition["NumericLessThan"] = map[string]any{
			"aws:MultiFactorAuthAge": maxAuthAgeSeconds,
		}
	}

	doc := Document{
		Version: DocumentVersion,
		Statement: []Statement{
			{
				Effect: "Allow",
				Principal: map[string]string{
					"AWS": fmt.Sprintf("arn:aws:iam::%s:root", params.AccountID),
				},
				Action:    StringList{"sts:AssumeRole"},
				Condition: condition,
			},
		},
	}
	return doc.JSON()
}
