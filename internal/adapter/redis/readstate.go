package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/Temutjin2k/batoda/pkg/metrics"
	goredis "github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

const serviceName = "redis"

// ReadState keeps each passenger's read alert ids in a Redis set.
type ReadState struct {
	client *goredis.Client
	ttl    time.Duration // zero keeps the sets forever
}

func NewReadState(client *goredis.Client, ttl time.Duration) *ReadState {
	return &ReadState{client: client, ttl: ttl}
}

func readKey(passengerID uuid.UUID) string {
	return "alerts:read:" + passengerID.String()
}

func (s *ReadState) ReadIDs(ctx context.Context, passengerID uuid.UUID) (ids []string, err error) {
	start := time.Now()
	defer func() { metrics.RecordDatabaseQuery(serviceName, "smembers", err, time.Since(start)) }()

	ids, err = s.client.SMembers(ctx, readKey(passengerID)).Result()
	if err != nil {
		return nil, fmt.Errorf("read alert ids: %w", err)
	}
	return ids, nil
}

func (s *ReadState) MarkRead(ctx context.Context, passengerID uuid.UUID, alertIDs ...string) (err error) {
	if len(alertIDs) == 0 {
		return nil
	}

	start := time.Now()
	defer func() { metrics.RecordDatabaseQuery(serviceName, "sadd", err, time.Since(start)) }()

	members := make([]any, len(alertIDs))
	for i, id := range alertIDs {
		members[i] = id
	}

	key := readKey(passengerID)
	_, err = s.client.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		pipe.SAdd(ctx, key, members...)
		if s.ttl > 0 {
			pipe.Expire(ctx, key, s.ttl)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("store alert ids: %w", err)
	}
	return nil
}
