package security

import (
	"fmt"
	"path"
	"strings"

	"github.com/examplews/greeting-service/internal/core/domain"
)

// Rule requires Authority for every path under Prefix.
type Rule struct {
	Prefix    string
	Authority string
}

// Verdict is the outcome of an access decision.
type Verdict string

const (
	Allow               Verdict = "allow"
	DenyUnauthenticated Verdict = "unauthenticated"
	DenyForbidden       Verdict = "forbidden"
)

// Decision explains an access decision. Rule is only meaningful when Matched.
type Decision struct {
	Verdict Verdict
	Rule    Rule
	Matched bool
}

func (d Decision) Allowed() bool { return d.Verdict == Allow }

// DefaultRules protects the application API and the management endpoints.
func DefaultRules() []Rule {
	return []Rule{
		{Prefix: "/api/", Authority: domain.RoleUser},
		{Prefix: "/actuators/", Authority: domain.RoleSysadmin},
	}
}

// AccessPolicy is an ordered list of prefix rules. The first matching rule
// applies; paths matching none fall through to the default.
type AccessPolicy struct {
	rules        []Rule
	defaultAllow bool
}

// NewAccessPolicy validates and normalises rules, keeping their order.
func NewAccessPolicy(defaultAllow bool, rules ...Rule) (*AccessPolicy, error) {
	normalised := make([]Rule, 0, len(rules))
	for i, r := range rules {
		if !strings.HasPrefix(r.Prefix, "/") {
			return nil, fmt.Errorf("access rule %d: prefix %q must start with /", i, r.Prefix)
		}
		if strings.TrimSpace(r.Authority) == "" {
			return nil, fmt.Errorf("access rule %d: authority is required", i)
		}
		p := path.Clean(r.Prefix)
		if p != "/" {
			p += "/"
		}
		normalised = append(normalised, Rule{Prefix: p, Authority: r.Authority})
	}
	return &AccessPolicy{rules: normalised, defaultAllow: defaultAllow}, nil
}

// Rules returns a copy of the rules in evaluation order.
func (p *AccessPolicy) Rules() []Rule {
	out := make([]Rule, len(p.rules))
	copy(out, p.rules)
	return out
}

// Match returns the first rule whose prefix covers requestPath. The path is
// cleaned first so dot segments and doubled slashes cannot skip a rule.
func (p *AccessPolicy) Match(requestPath string) (Rule, bool) {
	clean := cleanPath(requestPath)
	for _, r := range p.rules {
		if r.Prefix == "/" || clean+"/" == r.Prefix || strings.HasPrefix(clean, r.Prefix) {
			return r, true
		}
	}
	return Rule{}, false
}

// Authorize decides whether principal may access requestPath. A nil
// principal is anonymous.
func (p *AccessPolicy) Authorize(requestPath string, principal *domain.Principal) Decision {
	rule, ok := p.Match(requestPath)
	if !ok {
		if p.defaultAllow {
			return Decision{Verdict: Allow}
		}
		if principal == nil {
			return Decision{Verdict: DenyUnauthenticated}
		}
		return Decision{Verdict: DenyForbidden}
	}

	switch {
	case principal == nil:
		return Decision{Verdict: DenyUnauthenticated, Rule: rule, Matched: true}
	case !principal.HasAuthority(rule.Authority):
		return Decision{Verdict: DenyForbidden, Rule: rule, Matched: true}
	}
	return Decision{Verdict: Allow, Rule: rule, Matched: true}
}

// RequiresAuthentication reports whether requestPath can only be reached
// with credentials.
func (p *AccessPolicy) RequiresAuthentication(requestPath string) bool {
	_, ok := p.Match(requestPath)
	return ok || !p.defaultAllow
}

// AuthorizeAll decides over every form a request path can take, such as the
// decoded path and the escaped path the router matches. Any denial wins.
func (p *AccessPolicy) AuthorizeAll(requestPaths []string, principal *domain.Principal) Decision {
	var allowed Decision
	for i, rp := range requestPaths {
		d := p.Authorize(rp, principal)
		if !d.Allowed() {
			return d
		}
		if i == 0 || (d.Matched && !allowed.Matched) {
			allowed = d
		}
	}
	if len(requestPaths) == 0 {
		return p.Authorize("/", principal)
	}
	return allowed
}

// RequiresAuthenticationAny reports whether any of requestPaths needs
// credentials.
func (p *AccessPolicy) RequiresAuthenticationAny(requestPaths []string) bool {
	for _, rp := range requestPaths {
		if p.RequiresAuthentication(rp) {
			return true
		}
	}
	return len(requestPaths) == 0 && p.RequiresAuthentication("/")
}

func cleanPath(p string) string {
	if p == "" {
		return "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return path.Clean(p)
}
