package vending

import (
	"fmt"
	"net"

	"github.com/rolevend/rolevend/pkg/config"
	"github.com/rolevend/rolevend/pkg/model"
)

// Validator applies the deployment's admission policy to role requests:
// tier duration ceilings, MFA presence, and source network restrictions.
// It never mutates the request and never touches stores.
type Validator struct {
	mfaRequired bool
	allowedNets []*net.IPNet
}

// NewValidator builds a validator from deployment configuration. Returns an
// error if any configured network range does not parse; a half-configured
// origin policy must not admit anything.
func NewValidator(cfg config.Config) (*Validator, error) {
	v := &Validator{mfaRequired: cfg.MFARequired}
	for _, cidr := range cfg.AllowedNetworks {
		_, ipNet, err := net.ParseCIDR(cidr)
		if err != nil {
			return nil, fmt.Errorf("allowed network %q: %w", cidr, err)
		}
		v.allowedNets = append(v.allowedNets, ipNet)
	}
	return v, nil
}

// Validate admits or rejects a constructed request. Construction invariants
// (non-empty ids, global bounds, justification length) are the model's job;
// everything here is deployment policy.
func (v *Validator) Validate(req *model.RoleRequest) error {
	if req.Duration > req.Tier.MaxDuration() {
		return &ValidationError{
			Reason: ReasonTierDuration,
			Detail: fmt.Sprintf("tier %s allows at most %s, requested %s",
				req.Tier, req.Tier.MaxDuration(), req.Duration),
		}
	}

	if v.mfaRequired && !req.MFAUsed {
		return &ValidationError{
			Reason: ReasonMFARequired,
			Detail: "request was not authenticated with MFA",
		}
	}

	// The origin check only applies when the request carries a source
	// address; requests arriving without one are not subject to it.
	if req.SourceAddress != "" && len(v.allowedNets) > 0 {
		if err := v.checkOrigin(req.SourceAddress); err != nil {
			return err
		}
	}
	return nil
}

// checkOrigin fails closed on a present address: one that does not parse is
// denied outright, not just one outside the allowed ranges.
func (v *Validator) checkOrigin(source string) error {
	ip := net.ParseIP(source)
	if ip == nil {
		return &ValidationError{
			Reason: ReasonOriginDenied,
			Detail: fmt.Sprintf("source address %q is not a valid IP", source),
		}
	}
	for _, ipNet := range v.allowedNets {
		if ipNet.Contains(ip) {
			return nil
		}
	}
	return &ValidationError{
		Reason: ReasonOriginDenied,
		Detail: fmt.Sprintf("source address %s is outside the allowed networks", ip),
	}
}
