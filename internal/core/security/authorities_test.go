package security

import (
	"slices"
	"testing"
	"time"

	"github.com/examplews/greeting-service/internal/core/domain"
)

func TestAuthorityResolver_Resolve(t *testing.T) {
	r := NewAuthorityResolver()

	acct := &domain.Account{Roles: []domain.Role{
		{Code: "USER"}, {Code: "ADMIN"}, {Code: "USER"}, {Code: ""},
	}}
	got := r.Resolve(acct)
	if !slices.Equal(got, []string{"ADMIN", "USER"}) {
		t.Fatalf("unexpected authorities: %v", got)
	}
}

func TestAuthorityResolver_Empty(t *testing.T) {
	r := NewAuthorityResolver()
	for _, acct := range []*domain.Account{nil, {}, {Roles: []domain.Role{}}} {
		got := r.Resolve(acct)
		if got == nil || len(got) != 0 {
			t.Fatalf("expected empty non-nil slice, got %#v", got)
		}
	}
}

func TestAuthorityResolver_IgnoresWindowByDefault(t *testing.T) {
	past := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	acct := &domain.Account{Roles: []domain.Role{
		{Code: "USER", EffectiveAt: past, ExpiresAt: &past},
	}}
	if got := NewAuthorityResolver().Resolve(acct); !slices.Equal(got, []string{"USER"}) {
		t.Fatalf("unfiltered resolver should grant expired role, got %v", got)
	}
}

func TestEffectiveAuthorityResolver_FiltersWindow(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	expired := now.Add(-time.Hour)
	acct := &domain.Account{Roles: []domain.Role{
		{Code: "USER", EffectiveAt: now.Add(-48 * time.Hour)},
		{Code: "ADMIN", EffectiveAt: now.Add(-48 * time.Hour), ExpiresAt: &expired},
		{Code: "SYSADMIN", EffectiveAt: now.Add(time.Hour)},
		{Code: "EDGE", EffectiveAt: now.Add(-time.Hour), ExpiresAt: &now},
	}}

	r := NewEffectiveAuthorityResolver(func() time.Time { return now })
	if got := r.Resolve(acct); !slices.Equal(got, []string{"USER"}) {
		t.Fatalf("expected only USER, got %v", got)
	}
}
