package domain

import "time"

// Well-known role codes.
const (
	RoleUser     = "USER"
	RoleAdmin    = "ADMIN"
	RoleSysadmin = "SYSADMIN"
)

// Role is a named, time-windowed authority grant.
type Role struct {
	ID          string     `json:"id"`
	Code        string     `json:"code"`
	Label       string     `json:"label"`
	Ordinal     int        `json:"ordinal"`
	EffectiveAt time.Time  `json:"effective_at"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
}

// EntityID implements Identified.
func (r Role) EntityID() string { return r.ID }

// IsEffective reports whether the role is valid at now:
// EffectiveAt <= now and (ExpiresAt unset or now < ExpiresAt).
func (r Role) IsEffective(now time.Time) bool {
	if now.Before(r.EffectiveAt) {
		return false
	}
	return r.ExpiresAt == nil || now.Before(*r.ExpiresAt)
}
