package domain

import (
	"reflect"
	"time"

	"github.com/google/uuid"
)

// Identified is implemented by every record that has a persistence identifier.
type Identified interface {
	EntityID() string
}

// SameEntity reports whether a and b denote the same stored record: same
// concrete type and same non-empty identifier. Records without an
// identifier are never equal, not even to themselves.
func SameEntity(a, b Identified) bool {
	if a == nil || b == nil {
		return false
	}
	if reflect.TypeOf(a) != reflect.TypeOf(b) {
		return false
	}
	ida, idb := a.EntityID(), b.EntityID()
	if ida == "" || idb == "" {
		return false
	}
	return ida == idb
}

// Audit carries the transactional metadata shared by mutable entities.
type Audit struct {
	ReferenceID string     `json:"reference_id" bson:"reference_id"`
	Version     int        `json:"version" bson:"version"`
	CreatedBy   string     `json:"created_by" bson:"created_by"`
	CreatedAt   time.Time  `json:"created_at" bson:"created_at"`
	UpdatedBy   string     `json:"updated_by,omitempty" bson:"updated_by,omitempty"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty" bson:"updated_at,omitempty"`
}

// StampCreate fills creation metadata. An empty actor is rejected with
// ErrMissingPrincipal and leaves the audit untouched.
func (a *Audit) StampCreate(actor string, now time.Time) error {
	if actor == "" {
		return ErrMissingPrincipal
	}
	if a.ReferenceID == "" {
		a.ReferenceID = uuid.NewString()
	}
	a.CreatedBy = actor
	a.CreatedAt = now.UTC()
	return nil
}

// StampUpdate fills update metadata. An empty actor is rejected with
// ErrMissingPrincipal and leaves the audit untouched.
func (a *Audit) StampUpdate(actor string, now time.Time) error {
	if actor == "" {
		return ErrMissingPrincipal
	}
	ts := now.UTC()
	a.UpdatedBy = actor
	a.UpdatedAt = &ts
	return nil
}
