package domain

import "time"

// AuthOutcomeSuccess labels an authentication attempt that produced a principal.
const AuthOutcomeSuccess = "success"

// AuthEvent records one authentication attempt for the internal audit trail.
// Outcome is AuthOutcomeSuccess or a FailureReason label.
type AuthEvent struct {
	Username  string
	Outcome   string
	Path      string
	RemoteIP  string
	Timestamp time.Time
}
