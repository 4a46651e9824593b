package policy

import "github.com/rolevend/rolevend/pkg/model"

// defaultTemplates are the compiled-in per-tier templates used when the
// template store has nothing for a tier. A request must never fail solely
// because a template is missing.
//
// The break-glass default is intentionally wide open: break-glass exists for
// emergencies, and its 1 hour ceiling plus mandatory alerting are the
// controls, not the policy document.
var defaultTemplates = map[model.PermissionTier]model.PolicyTemplate{
	model.TierReadOnly: {
		Tier:      model.TierReadOnly,
		Name:      "read-only-default",
		Variables: model.StringList{"projectId"},
		Version:   "1.0",
		Content: `{
    "Version": "2012-10-17",
    "Statement": [
        {
            "Effect": "Allow",
            "Action": [
                "s3:GetObject",
                "s3:ListBucket"
            ],
            "Resource": [
                "arn:aws:s3:::${projectId}-*",
                "arn:aws:s3:::${projectId}-*/*"
            ]
        },
        {
            "Effect": "Allow",
            "Action": [
                "ec2:Describe*",
                "iam:Get*",
                "iam:List*"
            ],
            "Resource": "*"
        }
    ]
}`,
	},
	model.TierDeveloper: {
		Tier:      model.TierDeveloper,
		Name:      "developer-default",
		Variables: model.StringList{"projectId"},
		Version:   "1.0",
		Content: `{
    "Version": "2012-10-17",
    "Statement": [
        {
            "Effect": "Allow",
            "Action": [
                "s3:*"
            ],
            "Resource": [
                "arn:aws:s3:::${projectId}-*",
                "arn:aws:s3:::${projectId}-*/*"
            ]
        },
        {
            "Effect": "Allow",
            "Action": [
                "ec2:*",
                "lambda:*",
                "iam:Get*",
                "iam:List*",
                "iam:PassRole"
            ],
            "Resource": "*"
        }
    ]
}`,
	},
	model.TierAdmin: {
		Tier:    model.TierAdmin,
		Name:    "admin-default",
		Version: "1.0",
		Content: `{
    "Version": "2012-10-17",
    "Statement": [
        {
            "Effect": "Allow",
            "Action": "*",
            "Resource": "*"
        }
    ]
}`,
	},
	model.TierBreakGlass: {
		Tier:    model.TierBreakGlass,
		Name:    "break-glass-default",
		Version: "1.0",
		Content: `{
    "Version": "2012-10-17",
    "Statement": [
        {
            "Effect": "Allow",
            "Action": "*",
            "Resource": "*"
        }
    ]
}`,
	},
}

// DefaultTemplate returns a copy of the compiled-in template for a tier.
func DefaultTemplate(tier model.PermissionTier) (model.PolicyTemplate, bool) {
	tmpl, ok := defaultTemplates[tier]
	return tmpl, ok
}
