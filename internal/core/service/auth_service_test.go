package service

import (
	"context"
	"errors"
	"slices"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/examplews/greeting-service/internal/core/domain"
	"github.com/examplews/greeting-service/internal/core/security"
)

var testEncoder = security.NewPasswordEncoder(bcrypt.MinCost)

func mustHash(t *testing.T, plain string) string {
	t.Helper()
	h, err := testEncoder.Hash(plain)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	return h
}

func newJoe(t *testing.T) *domain.Account {
	return domain.NewAccount("joe", mustHash(t, "secret"), []domain.Role{{Code: domain.RoleUser}})
}

func newAuthService(repo *stubAccountRepo) *AuthService {
	return NewAuthService(repo, testEncoder, security.NewAuthorityResolver(), zerolog.Nop())
}

func TestAuthService_Authenticate_Success(t *testing.T) {
	svc := newAuthService(newStubAccountRepo(newJoe(t)))

	p, err := svc.Authenticate(context.Background(), "joe", "secret")
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if p.Username() != "joe" {
		t.Fatalf("unexpected username %q", p.Username())
	}
	if !slices.Equal(p.Authorities(), []string{"USER"}) {
		t.Fatalf("unexpected authorities %v", p.Authorities())
	}
}

func TestAuthService_Authenticate_BadCredentials(t *testing.T) {
	svc := newAuthService(newStubAccountRepo(newJoe(t)))

	_, err := svc.Authenticate(context.Background(), "joe", "wrong")
	if !errors.Is(err, domain.ErrBadCredentials) {
		t.Fatalf("expected ErrBadCredentials, got %v", err)
	}
	if !errors.Is(err, domain.ErrAuthenticationFailed) {
		t.Fatalf("expected generic authentication failure")
	}
}

func TestAuthService_Authenticate_NotFound(t *testing.T) {
	repo := newStubAccountRepo(newJoe(t))
	svc := newAuthService(repo)

	_, err := svc.Authenticate(context.Background(), "nobody", "x")
	if !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
	if !errors.Is(err, domain.ErrAuthenticationFailed) {
		t.Fatalf("not found must collapse to the generic failure")
	}

	before := repo.lookups
	if _, err := svc.Authenticate(context.Background(), "", "x"); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound for blank username, got %v", err)
	}
	if repo.lookups != before {
		t.Fatalf("blank username must not hit the store")
	}
}

// countingVerifier records which hashes Authenticate compared against.
type countingVerifier struct {
	*security.PasswordEncoder
	compared []string
}

func (v *countingVerifier) Verify(plain, storedHash string) bool {
	v.compared = append(v.compared, storedHash)
	return v.PasswordEncoder.Verify(plain, storedHash)
}

func TestAuthService_Authenticate_UnknownUserStillHashes(t *testing.T) {
	verifier := &countingVerifier{PasswordEncoder: testEncoder}
	joe := newJoe(t)
	svc := NewAuthService(newStubAccountRepo(joe), verifier, nil, zerolog.Nop())

	for _, username := range []string{"nobody", ""} {
		verifier.compared = nil
		if _, err := svc.Authenticate(context.Background(), username, "secret"); !errors.Is(err, domain.ErrAccountNotFound) {
			t.Fatalf("%q: expected ErrAccountNotFound, got %v", username, err)
		}
		if len(verifier.compared) != 1 {
			t.Fatalf("%q: expected one password comparison, got %d", username, len(verifier.compared))
		}
		if h := verifier.compared[0]; h == "" || h == joe.Password {
			t.Fatalf("%q: expected comparison against the decoy hash, got %q", username, h)
		}
	}

	verifier.compared = nil
	if _, err := svc.Authenticate(context.Background(), "joe", "wrong"); !errors.Is(err, domain.ErrBadCredentials) {
		t.Fatalf("expected ErrBadCredentials, got %v", err)
	}
	if len(verifier.compared) != 1 || verifier.compared[0] != joe.Password {
		t.Fatalf("known user must compare against the stored hash, got %v", verifier.compared)
	}
}

func TestAuthService_Authenticate_NoAuthorities(t *testing.T) {
	for _, roles := range [][]domain.Role{nil, {}, {{Code: ""}}} {
		acct := domain.NewAccount("joe", mustHash(t, "secret"), roles)
		svc := newAuthService(newStubAccountRepo(acct))

		if _, err := svc.Authenticate(context.Background(), "joe", "secret"); !errors.Is(err, domain.ErrNoAuthorities) {
			t.Fatalf("roles %v: expected ErrNoAuthorities, got %v", roles, err)
		}
	}
}

func TestAuthService_Authenticate_SingleFlag(t *testing.T) {
	cases := []struct {
		name string
		mut  func(a *domain.Account)
		want error
	}{
		{"disabled", func(a *domain.Account) { a.Enabled = false }, domain.ErrAccountDisabled},
		{"expired", func(a *domain.Account) { a.Expired = true }, domain.ErrAccountExpired},
		{"locked", func(a *domain.Account) { a.Locked = true }, domain.ErrAccountLocked},
		{"credentials expired", func(a *domain.Account) { a.CredentialsExpired = true }, domain.ErrCredentialsExpired},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			acct := newJoe(t)
			tc.mut(acct)
			svc := newAuthService(newStubAccountRepo(acct))

			_, err := svc.Authenticate(context.Background(), "joe", "secret")
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestAuthService_Authenticate_CheckOrder(t *testing.T) {
	allFlags := func(a *domain.Account) {
		a.Enabled = false
		a.Expired = true
		a.Locked = true
		a.CredentialsExpired = true
	}

	cases := []struct {
		name     string
		password string
		roles    []domain.Role
		mut      func(a *domain.Account)
		want     error
	}{
		{"bad password beats no roles and flags", "wrong", nil, allFlags, domain.ErrBadCredentials},
		{"no roles beats flags", "secret", nil, allFlags, domain.ErrNoAuthorities},
		{"disabled beats expired", "secret", []domain.Role{{Code: "USER"}}, allFlags, domain.ErrAccountDisabled},
		{"expired beats locked", "secret", []domain.Role{{Code: "USER"}}, func(a *domain.Account) {
			a.Expired, a.Locked, a.CredentialsExpired = true, true, true
		}, domain.ErrAccountExpired},
		{"locked beats credentials expired", "secret", []domain.Role{{Code: "USER"}}, func(a *domain.Account) {
			a.Locked, a.CredentialsExpired = true, true
		}, domain.ErrAccountLocked},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			acct := domain.NewAccount("joe", mustHash(t, "secret"), tc.roles)
			tc.mut(acct)
			svc := newAuthService(newStubAccountRepo(acct))

			_, err := svc.Authenticate(context.Background(), "joe", tc.password)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestAuthService_Authenticate_MalformedHash(t *testing.T) {
	acct := domain.NewAccount("joe", "not-a-bcrypt-hash", []domain.Role{{Code: "USER"}})
	svc := newAuthService(newStubAccountRepo(acct))

	if _, err := svc.Authenticate(context.Background(), "joe", "not-a-bcrypt-hash"); !errors.Is(err, domain.ErrBadCredentials) {
		t.Fatalf("expected ErrBadCredentials, got %v", err)
	}
}

func TestAuthService_Authenticate_StoreUnavailable(t *testing.T) {
	repo := newStubAccountRepo()
	repo.findErr = errStoreDown
	svc := newAuthService(repo)

	_, err := svc.Authenticate(context.Background(), "joe", "secret")
	if !errors.Is(err, errStoreDown) {
		t.Fatalf("expected store error, got %v", err)
	}
	if errors.Is(err, domain.ErrAuthenticationFailed) {
		t.Fatalf("store outage must not look like an authentication failure")
	}
}

func TestAuthService_Authenticate_EffectiveRolesOnly(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	expired := now.Add(-time.Minute)
	acct := domain.NewAccount("joe", mustHash(t, "secret"), []domain.Role{
		{Code: "USER", EffectiveAt: now.AddDate(-1, 0, 0), ExpiresAt: &expired},
	})

	lenient := newAuthService(newStubAccountRepo(acct))
	if _, err := lenient.Authenticate(context.Background(), "joe", "secret"); err != nil {
		t.Fatalf("unfiltered resolver should authenticate: %v", err)
	}

	strict := NewAuthService(newStubAccountRepo(acct), testEncoder,
		security.NewEffectiveAuthorityResolver(func() time.Time { return now }), zerolog.Nop())
	if _, err := strict.Authenticate(context.Background(), "joe", "secret"); !errors.Is(err, domain.ErrNoAuthorities) {
		t.Fatalf("expected ErrNoAuthorities with only expired roles, got %v", err)
	}
}
