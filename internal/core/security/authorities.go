package security

import (
	"slices"
	"time"

	"github.com/examplews/greeting-service/internal/core/domain"
)

// AuthorityResolver flattens an account's roles into authority tokens.
type AuthorityResolver struct {
	clock func() time.Time
}

// NewAuthorityResolver grants every assigned role regardless of its
// effectiveness window.
func NewAuthorityResolver() *AuthorityResolver {
	return &AuthorityResolver{}
}

// NewEffectiveAuthorityResolver only grants roles effective at clock().
func NewEffectiveAuthorityResolver(clock func() time.Time) *AuthorityResolver {
	if clock == nil {
		clock = time.Now
	}
	return &AuthorityResolver{clock: clock}
}

// Resolve returns the sorted, de-duplicated role codes of account. A nil
// account or one without roles yields an empty slice.
func (r *AuthorityResolver) Resolve(account *domain.Account) []string {
	if account == nil || len(account.Roles) == 0 {
		return []string{}
	}

	var now time.Time
	if r.clock != nil {
		now = r.clock()
	}

	codes := make([]string, 0, len(account.Roles))
	for _, role := range account.Roles {
		if role.Code == "" {
			continue
		}
		if r.clock != nil && !role.IsEffective(now) {
			continue
		}
		codes = append(codes, role.Code)
	}
	slices.Sort(codes)
	return slices.Compact(codes)
}
