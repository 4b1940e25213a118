package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/Temutjin2k/batoda/pkg/trm"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ReadState persists which alerts a passenger has opened.
type ReadState struct {
	db  *pgxpool.Pool
	trm trm.TxManager
}

func NewReadState(db *pgxpool.Pool, trm trm.TxManager) *ReadState {
	return &ReadState{db: db, trm: trm}
}

func (s *ReadState) ReadIDs(ctx context.Context, passengerID uuid.UUID) (ids []string, err error) {
	defer observe("list_alert_reads", time.Now(), &err)

	rows, err := TxorDB(ctx, s.db).Query(ctx,
		`SELECT alert_id FROM alert_reads WHERE passenger_id = $1`, passengerID)
	if err != nil {
		return nil, fmt.Errorf("query alert reads: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// MarkRead stores all ids or none of them.
func (s *ReadState) MarkRead(ctx context.Context, passengerID uuid.UUID, alertIDs ...string) error {
	start := time.Now()
	err := s.trm.Do(ctx, func(ctx context.Context) error {
		for _, id := range alertIDs {
			_, err := TxorDB(ctx, s.db).Exec(ctx, `
				INSERT INTO alert_reads (passenger_id, alert_id)
				VALUES ($1, $2)
				ON CONFLICT DO NOTHING`, passengerID, id)
			if err != nil {
				return fmt.Errorf("insert alert read %s: %w", id, err)
			}
		}
		return nil
	})
	observe("mark_alerts_read", start, &err)
	return err
}
