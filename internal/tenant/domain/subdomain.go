package domain

import (
	"strings"

	"github.com/gosimple/slug"
)

// NormalizeOrganizationName lower-cases the organization name and strips
// everything except letters and digits. "Acme Realty" becomes "acmerealty".
func NormalizeOrganizationName(name string) string {
	normalized := slug.Make(strings.TrimSpace(name))
	// slug keeps separators; hostnames keep only letters and digits.
	return strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			return r
		}
		return -1
	}, normalized)
}

// DeriveSubdomain builds the tenant's subdomain from its organization name
// and the configured suffix. The result is deterministic, so redelivered
// webhooks always collide on the same unique value.
func DeriveSubdomain(organizationName, suffix string) string {
	return NormalizeOrganizationName(organizationName) + "." + strings.Trim(suffix, ".")
}
