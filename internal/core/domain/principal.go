package domain

import "slices"

// Principal is the immutable result of a successful authentication. It only
// lives for the duration of one request's authorization decision.
type Principal struct {
	username    string
	authorities []string
}

// NewPrincipal copies and sorts authorities so the principal cannot be
// mutated through the caller's slice.
func NewPrincipal(username string, authorities []string) Principal {
	a := slices.Clone(authorities)
	slices.Sort(a)
	return Principal{username: username, authorities: slices.Compact(a)}
}

func (p Principal) Username() string { return p.username }

// Authorities returns a copy of the granted authority tokens, sorted.
func (p Principal) Authorities() []string { return slices.Clone(p.authorities) }

// HasAuthority reports whether the principal was granted authority.
func (p Principal) HasAuthority(authority string) bool {
	_, found := slices.BinarySearch(p.authorities, authority)
	return found
}
