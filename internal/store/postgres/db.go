package postgres

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// ErrNoDatabaseURL is returned by Open when the postgres store is selected
// without a connection string.
var ErrNoDatabaseURL = errors.New("database url is empty")

const pingTimeout = 5 * time.Second

// PoolConfig bounds the connection pool. Zero fields keep the database/sql
// defaults.
type PoolConfig struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// LogValue lets the pool settings be logged as one group.
func (p PoolConfig) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("max_open_conns", p.MaxOpenConns),
		slog.Int("max_idle_conns", p.MaxIdleConns),
		slog.Duration("conn_max_lifetime", p.ConnMaxLifetime),
		slog.Duration("conn_max_idle_time", p.ConnMaxIdleTime),
	)
}

func (p PoolConfig) apply(db *sql.DB) {
	if p.MaxOpenConns > 0 {
		db.SetMaxOpenConns(p.MaxOpenConns)
	}
	if p.MaxIdleConns > 0 {
		db.SetMaxIdleConns(p.MaxIdleConns)
	}
	if p.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(p.ConnMaxLifetime)
	}
	if p.ConnMaxIdleTime > 0 {
		db.SetConnMaxIdleTime(p.ConnMaxIdleTime)
	}
}

// Open connects through the pgx stdlib driver and checks the server answers
// before handing back a bun handle.
func Open(ctx context.Context, databaseURL string, pool PoolConfig) (*bun.DB, error) {
	if databaseURL == "" {
		return nil, ErrNoDatabaseURL
	}
	sqlDB, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	pool.apply(sqlDB)

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return bun.NewDB(sqlDB, pgdialect.New()), nil
}

func Close(db *bun.DB) error {
	if db == nil {
		return nil
	}
	return db.Close()
}

// Migrate applies the embedded goose migrations and returns how many ran.
func Migrate(ctx context.Context, db *bun.DB) (int, error) {
	fsys, err := migrations()
	if err != nil {
		return 0, err
	}
	provider, err := goose.NewProvider(goose.DialectPostgres, db.DB, fsys)
	if err != nil {
		return 0, fmt.Errorf("goose provider: %w", err)
	}
	results, err := provider.Up(ctx)
	if err != nil {
		return 0, fmt.Errorf("apply migrations: %w", err)
	}
	return len(results), nil
}

func migrations() (fs.FS, error) {
	return fs.Sub(migrationsFS, "migrations")
}
