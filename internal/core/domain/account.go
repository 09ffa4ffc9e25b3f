package domain

import "time"

// Account is a credential-bearing identity with status flags and assigned roles.
// Password always holds a one-way hash once the account has been stored.
type Account struct {
	ID                 string    `json:"id"`
	Username           string    `json:"username"`
	Password           string    `json:"-"`
	Enabled            bool      `json:"enabled"`
	CredentialsExpired bool      `json:"credentials_expired"`
	Expired            bool      `json:"expired"`
	Locked             bool      `json:"locked"`
	Roles              []Role    `json:"roles"`
	CreatedAt          time.Time `json:"created_at"`
}

// EntityID implements Identified.
func (a Account) EntityID() string { return a.ID }

// NewAccount returns an account with the default flags: enabled, not
// expired, not locked, credentials valid.
func NewAccount(username, passwordHash string, roles []Role) *Account {
	return &Account{
		Username: username,
		Password: passwordHash,
		Enabled:  true,
		Roles:    roles,
	}
}
