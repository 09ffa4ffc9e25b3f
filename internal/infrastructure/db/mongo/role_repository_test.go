package mongo

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestEffectiveFilter(t *testing.T) {
	loc := time.FixedZone("X", -5*3600)
	now := time.Date(2024, 6, 1, 7, 0, 0, 0, loc)

	f := effectiveFilter(now)

	eff, ok := f["effective_at"].(bson.M)
	if !ok {
		t.Fatalf("missing effective_at clause: %#v", f)
	}
	lte, ok := eff["$lte"].(time.Time)
	if !ok || !lte.Equal(now) || lte.Location() != time.UTC {
		t.Fatalf("unexpected $lte: %#v", eff["$lte"])
	}

	or, ok := f["$or"].(bson.A)
	if !ok || len(or) != 2 {
		t.Fatalf("expected two-branch $or, got %#v", f["$or"])
	}
	if open, ok := or[0].(bson.M); !ok || open["expires_at"] != nil {
		t.Fatalf("first branch must match unset expires_at: %#v", or[0])
	}
	gt := or[1].(bson.M)["expires_at"].(bson.M)["$gt"].(time.Time)
	if !gt.Equal(now) {
		t.Fatalf("expires_at must be strictly after now, got %s", gt)
	}
}

func TestMongoRole_ToDomain(t *testing.T) {
	oid := primitive.NewObjectID()
	exp := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	r := mongoRole{ID: oid, Code: "USER", Ordinal: 2, EffectiveAt: time.Unix(0, 0), ExpiresAt: &exp}.toDomain()

	if r.ID != oid.Hex() || r.Code != "USER" || r.Ordinal != 2 {
		t.Fatalf("unexpected role %+v", r)
	}
	if r.ExpiresAt == nil || !r.ExpiresAt.Equal(exp) {
		t.Fatalf("expires_at not carried over")
	}
	if (mongoRole{Code: "ADMIN"}).toDomain().ExpiresAt != nil {
		t.Fatalf("unset expires_at must stay nil")
	}
}
