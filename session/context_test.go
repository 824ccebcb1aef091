package session

import (
	"context"
	"testing"
)

func TestIdentityContext(t *testing.T) {
	if id := FromContext(context.Background()); !id.IsZero() {
		t.Fatalf("empty context should have no identity, got %v", id)
	}
	ctx := WithIdentity(context.Background(), Identity{UserID: "u1"})
	if id := FromContext(ctx); id.UserID != "u1" {
		t.Fatalf("unexpected identity %v", id)
	}
}
