// Package db provides the PostgreSQL plumbing used by the slug stores.
//
// It wraps [github.com/jackc/pgx/v5/pgxpool] for connection pooling and
// [github.com/pressly/goose/v3] for migrations.
//
// # Usage
//
//	pool, err := db.Connect(ctx, db.Config{
//		ConnectionString: os.Getenv("DATABASE_CONN_URL"),
//		RetryAttempts:    3,
//		RetryInterval:    2 * time.Second,
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer pool.Close()
//
//	if err := db.Migrate(ctx, pool, store.Migrations, "", logger); err != nil {
//		log.Fatal(err)
//	}
//
// Config carries env tags, so an env parser can fill it:
//
//	DATABASE_CONN_URL           - PostgreSQL connection URL (required)
//	DATABASE_MAX_OPEN_CONNS     - Maximum open connections (default: 10)
//	DATABASE_MIN_CONNS          - Minimum idle connections (default: 2)
//	DATABASE_HEALTHCHECK_PERIOD - Health check interval (default: 1m)
//	DATABASE_MAX_CONN_IDLE_TIME - Maximum connection idle time (default: 10m)
//	DATABASE_MAX_CONN_LIFETIME  - Maximum connection lifetime (default: 30m)
//	DATABASE_RETRY_ATTEMPTS     - Connection retry attempts (default: 3)
//	DATABASE_RETRY_INTERVAL     - Base retry interval (default: 5s)
//	DATABASE_MIGRATIONS_TABLE   - Migrations table name (default: schema_migrations)
//
// # Transactions
//
// WithTx commits when fn succeeds and rolls back on error or panic:
//
//	err := db.WithTx(ctx, pool, func(tx pgx.Tx) error {
//		_, err := tx.Exec(ctx, "UPDATE slugged_records SET name = $1 WHERE id = $2", name, id)
//		return err
//	})
//
// # Unique Constraints
//
// Slug resolution is not atomic with the insert that follows it, so the
// unique index is the final arbiter. IsUniqueViolation recognizes its error:
//
//	if db.IsUniqueViolation(err, "slugged_records_slug_live_idx") {
//		// resolve again and retry
//	}
//
// # Error Handling
//
// Sentinel errors are joined with the underlying cause using [errors.Join]:
//
//   - [ErrFailedToParseDBConfig] - Invalid connection string format
//   - [ErrFailedToOpenDBConnection] - Connection failed after all retries
//   - [ErrHealthcheckFailed] - Database ping failed
//   - [ErrSetDialect] - Migration dialect configuration error
//   - [ErrApplyMigrations] - Migration execution failed
package db
