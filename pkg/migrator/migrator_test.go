package migrator

import (
	"context"
	"testing"
	"testing/fstest"
	"time"
)

func TestUp_GivesUpOnUnreachableDatabase(t *testing.T) {
	fsys := fstest.MapFS{
		"migrations/000001_init.up.sql": {Data: []byte("SELECT 1;")},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := Up(ctx, fsys, "migrations", "postgres://u:p@127.0.0.1:1/db?sslmode=disable&connect_timeout=1", Options{Attempts: 2, Delay: 10 * time.Millisecond})
	if err == nil {
		t.Fatal("expected an error for an unreachable database")
	}
}

func TestUp_StopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Up(ctx, fstest.MapFS{}, "migrations", "postgres://u:p@127.0.0.1:1/db?sslmode=disable", Options{Attempts: 5, Delay: time.Hour})
	if err == nil {
		t.Fatal("expected an error for a cancelled context")
	}
}
