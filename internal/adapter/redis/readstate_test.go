package redis

import (
	"context"
	"strings"
	"testing"
	"time"

	goredis "github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

func TestReadKey(t *testing.T) {
	id := uuid.MustParse("6f1c2a8e-3b7d-4c1e-9a55-2d0f8b7e4c11")
	if got := readKey(id); got != "alerts:read:6f1c2a8e-3b7d-4c1e-9a55-2d0f8b7e4c11" {
		t.Fatalf("readKey = %q", got)
	}
}

func TestReadState_UnreachableServer(t *testing.T) {
	client := goredis.NewClient(&goredis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	s := NewReadState(client, 0)
	ctx := context.Background()

	if _, err := s.ReadIDs(ctx, uuid.New()); err == nil || !strings.Contains(err.Error(), "read alert ids") {
		t.Fatalf("ReadIDs error = %v", err)
	}
	if err := s.MarkRead(ctx, uuid.New(), "1"); err == nil {
		t.Fatal("MarkRead must fail without a server")
	}
	if err := s.MarkRead(ctx, uuid.New()); err != nil {
		t.Fatalf("MarkRead with no ids = %v, want nil", err)
	}
}
