package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dmitrymomot/slimak/pkg/db"
	"github.com/dmitrymomot/slimak/pkg/slug"
)

// DBTX is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx, so a store can
// run inside a transaction started with db.WithTx.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Postgres stores records in a PostgreSQL table created by Migrations.
//
// The table's unique index must agree with the Matching strategy:
// "slugged_records" indexes lower(slug) for CaseInsensitive, while
// "slugged_records_cs" indexes slug for CaseSensitive.
type Postgres struct {
	saver
	db      DBTX
	queries queries
}

type queries struct {
	exists          string
	insert          string
	update          string
	softDelete      string
	hardDelete      string
	find            string
	findWithDeleted string
}

// NewPostgres creates a store over conn. It returns ErrInvalidName when the
// configured table name is empty or malformed.
func NewPostgres(conn DBTX, opts ...Option) (*Postgres, error) {
	o := newOptions(opts)

	table, err := quoteTable(o.table)
	if err != nil {
		return nil, err
	}

	return &Postgres{
		saver:   saver{o},
		db:      conn,
		queries: buildQueries(table, o.policy),
	}, nil
}

// quoteTable sanitizes an optionally schema-qualified table name.
func quoteTable(name string) (string, error) {
	parts := strings.Split(name, ".")
	if len(parts) > 2 {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	for _, p := range parts {
		if strings.TrimSpace(p) == "" {
			return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
		}
	}
	return pgx.Identifier(parts).Sanitize(), nil
}

func buildQueries(table string, p Policy) queries {
	match := p.Matching.Predicate("slug", "$1")

	existsScope := " AND deleted_at IS NULL"
	if p.IncludeDeleted {
		existsScope = ""
	}

	const columns = "id, name, COALESCE(slug, ''), deleted_at"

	return queries{
		exists: fmt.Sprintf(
			"SELECT EXISTS (SELECT 1 FROM %s WHERE %s AND id <> $2%s)",
			table, match, existsScope,
		),
		insert: fmt.Sprintf(
			"INSERT INTO %s (id, name, slug, deleted_at) VALUES ($1, $2, NULLIF($3, ''), $4)",
			table,
		),
		update: fmt.Sprintf(
			"UPDATE %s SET name = $2, slug = NULLIF($3, ''), deleted_at = $4 WHERE id = $1",
			table,
		),
		softDelete: fmt.Sprintf(
			"UPDATE %s SET deleted_at = now() WHERE id = $1 AND deleted_at IS NULL RETURNING deleted_at",
			table,
		),
		hardDelete: fmt.Sprintf("DELETE FROM %s WHERE id = $1", table),
		find: fmt.Sprintf(
			"SELECT %s FROM %s WHERE %s AND deleted_at IS NULL ORDER BY created_at LIMIT 1",
			columns, table, match,
		),
		findWithDeleted: fmt.Sprintf(
			"SELECT %s FROM %s WHERE %s ORDER BY deleted_at IS NOT NULL, created_at LIMIT 1",
			columns, table, match,
		),
	}
}

func (p *Postgres) Policy() Policy {
	return p.policy
}

func (p *Postgres) Save(ctx context.Context, rec *Record) error {
	return p.save(ctx, rec, p.exists, p.persist)
}

func (p *Postgres) exists(ctx context.Context, candidate string, self uuid.UUID) (bool, error) {
	var found bool
	if err := p.db.QueryRow(ctx, p.queries.exists, candidate, self).Scan(&found); err != nil {
		return false, err
	}
	return found, nil
}

func (p *Postgres) persist(ctx context.Context, rec *Record) error {
	if rec.Persisted() {
		tag, err := p.db.Exec(ctx, p.queries.update, rec.ID, rec.Name, rec.Slug, rec.DeletedAt)
		if err != nil {
			return conflictErr(err)
		}
		if tag.RowsAffected() == 0 {
			return ErrNotFound
		}
		return nil
	}

	id := uuid.New()
	if _, err := p.db.Exec(ctx, p.queries.insert, id, rec.Name, rec.Slug, rec.DeletedAt); err != nil {
		return conflictErr(err)
	}
	rec.ID = id
	return nil
}

func conflictErr(err error) error {
	if db.IsUniqueViolation(err) {
		return errors.Join(ErrConflict, err)
	}
	return err
}

func (p *Postgres) Delete(ctx context.Context, rec *Record) error {
	if !p.policy.SoftDelete {
		tag, err := p.db.Exec(ctx, p.queries.hardDelete, rec.ID)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return ErrNotFound
		}
		slug.Clear(rec)
		return nil
	}

	var deletedAt time.Time
	if err := p.db.QueryRow(ctx, p.queries.softDelete, rec.ID).Scan(&deletedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	slug.Clear(rec)
	rec.DeletedAt = &deletedAt
	return nil
}

func (p *Postgres) FindBySlug(ctx context.Context, s string) (Record, error) {
	return p.find(ctx, p.queries.find, s)
}

func (p *Postgres) FindBySlugWithDeleted(ctx context.Context, s string) (Record, error) {
	return p.find(ctx, p.queries.findWithDeleted, s)
}

func (p *Postgres) find(ctx context.Context, query, s string) (Record, error) {
	var rec Record
	err := p.db.QueryRow(ctx, query, s).Scan(&rec.ID, &rec.Name, &rec.Slug, &rec.DeletedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Record{}, ErrNotFound
	}
	if err != nil {
		return Record{}, err
	}
	return rec, nil
}

var _ Repository = (*Postgres)(nil)
