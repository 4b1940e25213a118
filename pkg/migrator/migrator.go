package migrator

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq"
)

// Options controls how long Up waits for the database to accept connections.
type Options struct {
	Attempts int
	Delay    time.Duration
}

var DefaultOptions = Options{Attempts: 10, Delay: 3 * time.Second}

// Up waits for the database at dsn and applies every migration found in dir
// of fsys. An already migrated database is not an error.
func Up(ctx context.Context, fsys fs.FS, dir, dsn string, opts Options) error {
	if err := waitForDB(ctx, dsn, opts); err != nil {
		return err
	}

	src, err := iofs.New(fsys, dir)
	if err != nil {
		return fmt.Errorf("open migrations: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", src, dsn)
	if err != nil {
		return fmt.Errorf("could not start migrations: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration failed: %w", err)
	}
	return nil
}

func waitForDB(ctx context.Context, dsn string, opts Options) error {
	if opts.Attempts <= 0 {
		opts.Attempts = 1
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	for i := 0; ; i++ {
		if err = db.PingContext(ctx); err == nil {
			return nil
		}
		if i+1 >= opts.Attempts {
			return fmt.Errorf("database not ready after %d attempts: %w", opts.Attempts, err)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(opts.Delay):
		}
	}
}
