package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/wirahusada/portal-backend/internal/config"
	"github.com/wirahusada/portal-backend/internal/pkg/helpers"
	"github.com/wirahusada/portal-backend/internal/pkg/logger"
)

// DBTX is satisfied by both *pgxpool.Pool and pgx.Tx, so repositories can run
// the same statements inside or outside a transaction.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresDB is one named connection pool
type PostgresDB struct {
	Name string
	Pool *pgxpool.Pool
}

// NewPostgresDB creates a new PostgreSQL connection pool
func NewPostgresDB(name string, cfg config.DatabaseConfig) (*PostgresDB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	poolConfig, err := pgxpool.ParseConfig(cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("failed to parse pgxpool config for %s: %w", name, err)
	}

	if cfg.MaxConns > 0 {
		poolConfig.MaxConns = int32(cfg.MaxConns)
	}
	if cfg.MinConns > 0 {
		poolConfig.MinConns = int32(cfg.MinConns)
	}
	poolConfig.MaxConnLifetime = helpers.ParseDuration(cfg.ConnMaxLifetime, time.Hour)
	poolConfig.ConnConfig.Tracer = NewQueryTracer(name, logger.Get())

	poolConfig.BeforeAcquire = func(ctx context.Context, conn *pgx.Conn) bool {
		if err := conn.Ping(ctx); err != nil {
			logger.Warn().Err(err).Str("pool", name).Msg("Unhealthy connection detected")
			return false
		}
		return true
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s connection pool: %w", name, err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to establish %s connection: %w", name, err)
	}

	return &PostgresDB{Name: name, Pool: pool}, nil
}

// Close closes the pool
func (db *PostgresDB) Close() {
	if db != nil && db.Pool != nil {
		db.Pool.Close()
	}
}

// SQLDB exposes the pool through database/sql for tools that need it
func (db *PostgresDB) SQLDB() *sql.DB {
	return stdlib.OpenDBFromPool(db.Pool)
}

// TransactionFn is a function that executes within a transaction
type TransactionFn func(ctx context.Context, tx pgx.Tx) error

// Transactor begins transactions on a pool
type Transactor interface {
	WithTransaction(ctx context.Context, fn TransactionFn) error
}

// WithTransaction runs fn inside a transaction, committing when it returns nil
func (db *PostgresDB) WithTransaction(ctx context.Context, fn TransactionFn) error {
	return RunInTx(ctx, db.Pool, fn)
}

// TxBeginner is the subset of *pgxpool.Pool used to open a transaction
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// RunInTx begins a transaction on b and runs fn in it. The transaction is
// rolled back when fn fails or panics.
func RunInTx(ctx context.Context, b TxBeginner, fn TransactionFn) error {
	_, hasDeadline := ctx.Deadline()
	if !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
	}

	tx, err := b.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if r := recover(); r != nil {
			_ = tx.Rollback(ctx)
			panic(r)
		}
	}()

	if err := fn(ctx, tx); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			logger.Error().Err(rbErr).Msg("Failed to rollback transaction")
			return fmt.Errorf("error: %v, rollback error: %w", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// Databases holds the three pools the portal reads from
type Databases struct {
	SSO    *PostgresDB
	WIS    *PostgresDB
	WISMON *PostgresDB
}

// Connect opens all three pools, closing any already opened on failure
func Connect(cfg *config.Config) (*Databases, error) {
	dbs := &Databases{}

	var err error
	if dbs.SSO, err = NewPostgresDB("sso", cfg.Databases.SSO); err != nil {
		return nil, err
	}
	if dbs.WIS, err = NewPostgresDB("wis", cfg.Databases.WIS); err != nil {
		dbs.Close()
		return nil, err
	}
	if dbs.WISMON, err = NewPostgresDB("wismon", cfg.Databases.WISMON); err != nil {
		dbs.Close()
		return nil, err
	}

	logger.Info().Msg("Connected to sso, wis and wismon databases")
	return dbs, nil
}

// Pinger is implemented by *pgxpool.Pool
type Pinger interface {
	Ping(ctx context.Context) error
}

// Pingers returns the pools keyed by name for health reporting
func (d *Databases) Pingers() map[string]Pinger {
	out := make(map[string]Pinger, 3)
	for _, p := range []*PostgresDB{d.SSO, d.WIS, d.WISMON} {
		if p != nil && p.Pool != nil {
			out[p.Name] = p.Pool
		}
	}
	return out
}

// Close closes every open pool
func (d *Databases) Close() {
	d.SSO.Close()
	d.WIS.Close()
	d.WISMON.Close()
}
