package database

import (
	"context"
	"reflect"
	"testing"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestPermissions(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)

	has, err := db.HasPermission(ctx, "u1", "games.battle")
	if err != nil || has {
		t.Fatalf("fresh db: has = %v, err = %v", has, err)
	}

	for _, node := range []string{"games.battle", "admin.perm", "games.battle"} {
		if err := db.GrantPermission(ctx, "u1", node); err != nil {
			t.Fatalf("grant %s: %v", node, err)
		}
	}
	has, err = db.HasPermission(ctx, "u1", "games.battle")
	if err != nil || !has {
		t.Fatalf("after grant: has = %v, err = %v", has, err)
	}
	if has, _ := db.HasPermission(ctx, "u2", "games.battle"); has {
		t.Fatalf("grant leaked to another user")
	}

	nodes, err := db.ListPermissions(ctx, "u1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if want := []string{"admin.perm", "games.battle"}; !reflect.DeepEqual(nodes, want) {
		t.Fatalf("nodes = %v, want %v", nodes, want)
	}

	if err := db.RevokePermission(ctx, "u1", "games.battle"); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	if has, _ := db.HasPermission(ctx, "u1", "games.battle"); has {
		t.Fatalf("permission still present after revoke")
	}
}

func TestListPermissionsEmpty(t *testing.T) {
	nodes, err := newTestDB(t).ListPermissions(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(nodes) != 0 {
		t.Fatalf("nodes = %v, want none", nodes)
	}
}
