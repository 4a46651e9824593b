package policy

import (
	"fmt"

	"github.com/rolevend/rolevend/pkg/model"
)

// selfEscalationDenies are the actions no vended role may perform on itself:
// role and policy mutation plus key deletion. The admin boundary includes
// them; without this deny set a role could widen its own permissions.
var selfEscalationDenies = StringList{
	"iam:CreateRole",
	"iam:DeleteRole",
	"iam:AttachRolePolicy",
	"iam:DetachRolePolicy",
	"iam:PutRolePolicy",
	"iam:DeleteRolePolicy",
	"iam:PutRolePermissionsBoundary",
	"iam:DeleteRolePermissionsBoundary",
	"kms:DeleteKey",
	"kms:ScheduleKeyDeletion",
}

// boundaries is the exhaustive tier-to-boundary table. It is generated
// independently of the template system: boundaries are the hard ceiling, not
// something operators edit.
var boundaries = map[model.PermissionTier]Document{
	model.TierReadOnly: {
		Version: DocumentVersion,
		Statement: []Statement{
			{
				Effect: "Allow",
				Action: StringList{
					"s3:GetObject",
					"s3:ListBucket",
					"ec2:Describe*",
					"iam:Get*",
					"iam:List*",
				},
				Resource: StringList{"*"},
			},
			{
				Effect: "Deny",
				Action: StringList{
					"iam:*",
					"s3:PutObject",
					"s3:DeleteObject",
					"ec2:Modify*",
					"ec2:Create*",
					"ec2:Delete*",
				},
				Resource: StringList{"*"},
			},
		},
	},
	model.TierDeveloper: {
		Version: DocumentVersion,
		Statement: []Statement{
			{
				Effect: "Allow",
				Action: StringList{
					"s3:*",
					"ec2:*",
					"lambda:*",
					"iam:Get*",
					"iam:List*",
					"iam:PassRole",
				},
				Resource: StringList{"*"},
			},
			{
				Effect:   "Deny",
				Action:   selfEscalationDenies,
				Resource: StringList{"*"},
			},
		},
	},
	model.TierAdmin: {
		Version: DocumentVersion,
		Statement: []Statement{
			{
				Effect:   "Allow",
				Action:   StringList{"*"},
				Resource: StringList{"*"},
			},
			{
				Effect: "Deny",
				Action: append(StringList{
					"iam:DeleteAccountPasswordPolicy",
					"iam:DeleteAccountAlias",
					"organizations:LeaveOrganization",
					"organizations:DeleteOrganization",
				}, selfEscalationDenies...),
				Resource: StringList{"*"},
			},
		},
	},
	model.TierBreakGlass: {
		Version: DocumentVersion,
		Statement: []Statement{
			{
				Effect:   "Allow",
				Action:   StringList{"*"},
				Resource: StringList{"*"},
			},
		},
	},
}

// Boundary returns the tier's permission-boundary document. The boundary is
// always attached alongside the rendered policy and is the actual security
// backstop.
func Boundary(tier model.PermissionTier) (string, error) {
	doc, ok := boundaries[tier]
	if !ok {
		return "", fmt.Errorf("no permission boundary for tier %s", tier)
	}
	return doc.JSON()
}
