package model

import "time"

//go:generate go run github.com/dmarkham/enumer -type PermissionTier -trimprefix Tier -transform kebab -json -sql -text -output tier.gen.go
type PermissionTier int

const (
	TierReadOnly PermissionTier = iota
	TierDeveloper
	TierAdmin
	TierBreakGlass
)

// tierLimits is the exhaustive tier table. Adding a tier means adding a row
// here and regenerating the enum; there is no runtime registry.
var tierLimits = map[PermissionTier]struct {
	maxDuration time.Duration
	description string
}{
	TierReadOnly:   {36 * time.Hour, "Read-only access to storage, compute and identity metadata"},
	TierDeveloper:  {8 * time.Hour, "Full access to storage, compute and functions (no identity mutation)"},
	TierAdmin:      {8 * time.Hour, "Full account access minus self-escalation"},
	TierBreakGlass: {1 * time.Hour, "Unrestricted emergency access (always alerts)"},
}

// MaxDuration returns the hard ceiling on session duration for the tier.
func (t PermissionTier) MaxDuration() time.Duration {
	return tierLimits[t].maxDuration
}

// Description returns a short human-readable summary of the tier's scope.
func (t PermissionTier) Description() string {
	return tierLimits[t].description
}
