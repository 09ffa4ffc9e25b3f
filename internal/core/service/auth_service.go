package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/examplews/greeting-service/internal/core/domain"
	"github.com/examplews/greeting-service/internal/core/ports"
	"github.com/examplews/greeting-service/internal/core/security"
)

// CredentialVerifier compares a presented secret with a stored one-way hash.
// Hash is used once, at construction, to produce the decoy hash verified
// when no account matches.
type CredentialVerifier interface {
	Verify(plain, storedHash string) bool
	Hash(plain string) (string, error)
}

const decoyPassword = "decoy-password-never-assigned"

// AuthService turns presented credentials into an immutable principal.
type AuthService struct {
	accounts ports.AccountRepository
	verifier CredentialVerifier
	resolver *security.AuthorityResolver
	decoy    string
	log      zerolog.Logger
}

func NewAuthService(
	accounts ports.AccountRepository,
	verifier CredentialVerifier,
	resolver *security.AuthorityResolver,
	log zerolog.Logger,
) *AuthService {
	if resolver == nil {
		resolver = security.NewAuthorityResolver()
	}
	decoy, err := verifier.Hash(decoyPassword)
	if err != nil {
		log.Warn().Err(err).Msg("decoy hash unavailable, unknown usernames answer faster")
	}
	return &AuthService{accounts: accounts, verifier: verifier, resolver: resolver, decoy: decoy, log: log}
}

// Authenticate runs the checks in a fixed order and stops at the first
// failure: lookup, secret, authorities, disabled, expired, locked,
// credentials expired. Every failure wraps domain.ErrAuthenticationFailed;
// a credential store outage does not and is returned wrapped as is.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (domain.Principal, error) {
	if username == "" {
		s.verifier.Verify(password, s.decoy)
		return domain.Principal{}, domain.ErrAccountNotFound
	}

	account, err := s.accounts.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			// Same hashing cost as a wrong password.
			s.verifier.Verify(password, s.decoy)
			return domain.Principal{}, domain.ErrAccountNotFound
		}
		return domain.Principal{}, fmt.Errorf("authenticate: load account: %w", err)
	}

	if !s.verifier.Verify(password, account.Password) {
		return domain.Principal{}, domain.ErrBadCredentials
	}

	authorities := s.resolver.Resolve(account)
	if len(authorities) == 0 {
		return domain.Principal{}, domain.ErrNoAuthorities
	}

	switch {
	case !account.Enabled:
		return domain.Principal{}, domain.ErrAccountDisabled
	case account.Expired:
		return domain.Principal{}, domain.ErrAccountExpired
	case account.Locked:
		return domain.Principal{}, domain.ErrAccountLocked
	case account.CredentialsExpired:
		return domain.Principal{}, domain.ErrCredentialsExpired
	}

	s.log.Debug().
		Str("username", account.Username).
		Strs("authorities", authorities).
		Msg("principal authenticated")

	return domain.NewPrincipal(account.Username, authorities), nil
}
