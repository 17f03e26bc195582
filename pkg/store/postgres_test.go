package store_test

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/slimak/pkg/db"
	"github.com/dmitrymomot/slimak/pkg/store"
)

// MockDBTX is a mock implementation of store.DBTX.
type MockDBTX struct {
	mock.Mock
}

func (m *MockDBTX) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	ret := m.Called(ctx, sql, args)
	return ret.Get(0).(pgconn.CommandTag), ret.Error(1)
}

func (m *MockDBTX) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return m.Called(ctx, sql, args).Get(0).(pgx.Row)
}

// MockRow is a mock implementation of pgx.Row.
type MockRow struct {
	mock.Mock
}

func (m *MockRow) Scan(dest ...any) error {
	return m.Called(dest).Error(0)
}

// MockTx is a mock pgx.Tx whose queries go to db.
type MockTx struct {
	pgx.Tx
	mock.Mock
	db *MockDBTX
}

func (m *MockTx) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return m.db.Exec(ctx, sql, args...)
}

func (m *MockTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return m.db.QueryRow(ctx, sql, args...)
}

func (m *MockTx) Commit(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockTx) Rollback(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type beginFunc func(ctx context.Context) (pgx.Tx, error)

func (f beginFunc) Begin(ctx context.Context) (pgx.Tx, error) { return f(ctx) }

// row returns a row scanning vals into its destinations, in order.
func row(vals ...any) *MockRow {
	r := &MockRow{}
	r.On("Scan", mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		dest := args.Get(0).([]any)
		for i, v := range vals {
			reflect.ValueOf(dest[i]).Elem().Set(reflect.ValueOf(v))
		}
	})
	return r
}

func rowErr(err error) *MockRow {
	r := &MockRow{}
	r.On("Scan", mock.Anything).Return(err)
	return r
}

// sqlLike matches a statement starting with prefix and containing every fragment.
func sqlLike(prefix string, fragments ...string) any {
	return mock.MatchedBy(func(sql string) bool {
		if !strings.HasPrefix(sql, prefix) {
			return false
		}
		for _, f := range fragments {
			if !strings.Contains(sql, f) {
				return false
			}
		}
		return true
	})
}

// argAt matches query arguments whose i-th value equals want.
func argAt(i int, want any) any {
	return mock.MatchedBy(func(args []any) bool {
		return len(args) > i && args[i] == want
	})
}

func tag(s string) pgconn.CommandTag {
	return pgconn.NewCommandTag(s)
}

func uniqueViolation() error {
	return &pgconn.PgError{Code: "23505", ConstraintName: "slugged_records_slug_live_idx"}
}

const existsSQL = `SELECT EXISTS (SELECT 1 FROM "slugged_records"`

func TestNewPostgres_TableName(t *testing.T) {
	t.Parallel()

	conn := &MockDBTX{}
	for _, name := range []string{"", ".", "a.b.c", "public. "} {
		_, err := store.NewPostgres(conn, store.WithTable(name))
		assert.ErrorIs(t, err, store.ErrInvalidName, "table %q", name)
	}

	_, err := store.NewPostgres(conn, store.WithTable("public.articles"))
	assert.NoError(t, err)
	conn.AssertNotCalled(t, "Exec", mock.Anything, mock.Anything, mock.Anything)
}

func TestPostgres_SaveInsert(t *testing.T) {
	t.Parallel()

	conn := &MockDBTX{}
	conn.On("QueryRow", mock.Anything,
		sqlLike(existsSQL, "lower(slug) = lower($1)", "id <> $2", "deleted_at IS NULL"),
		argAt(0, "slug-test"),
	).Return(row(true)).Once()
	conn.On("QueryRow", mock.Anything, sqlLike(existsSQL), argAt(0, "slug-test-1")).
		Return(row(false)).Once()
	conn.On("Exec", mock.Anything, sqlLike(`INSERT INTO "slugged_records"`), mock.MatchedBy(func(args []any) bool {
		return len(args) == 4 && args[1] == "Slug Test" && args[2] == "slug-test-1"
	})).Return(tag("INSERT 0 1"), nil).Once()

	repo, err := store.NewPostgres(conn)
	require.NoError(t, err)

	rec := &store.Record{Name: "Slug Test"}
	require.NoError(t, repo.Save(t.Context(), rec))
	assert.Equal(t, "slug-test-1", rec.Slug)
	assert.True(t, rec.Persisted())
	conn.AssertExpectations(t)
}

func TestPostgres_ExistsQueryFollowsPolicy(t *testing.T) {
	t.Parallel()

	conn := &MockDBTX{}
	// Tombstones count as collisions, so the query has no deleted_at filter.
	conn.On("QueryRow", mock.Anything,
		`SELECT EXISTS (SELECT 1 FROM "slugged_records_cs" WHERE slug = $1 AND id <> $2)`,
		argAt(0, "slug-test"),
	).Return(row(false)).Once()
	conn.On("Exec", mock.Anything, sqlLike(`INSERT INTO "slugged_records_cs"`), mock.Anything).
		Return(tag("INSERT 0 1"), nil).Once()

	repo, err := store.NewPostgres(conn,
		store.WithTable("slugged_records_cs"),
		store.WithMatching(store.CaseSensitive),
		store.WithSoftDelete(),
	)
	require.NoError(t, err)
	require.NoError(t, repo.Save(t.Context(), &store.Record{Name: "Slug Test"}))
	conn.AssertExpectations(t)
}

func TestPostgres_SaveRetriesOnConflict(t *testing.T) {
	t.Parallel()

	conn := &MockDBTX{}
	conn.On("QueryRow", mock.Anything, sqlLike(existsSQL), argAt(0, "slug-test")).
		Return(row(false)).Once()
	// A concurrent save wrote the same slug between the check and the insert.
	conn.On("Exec", mock.Anything, sqlLike("INSERT"), argAt(2, "slug-test")).
		Return(pgconn.CommandTag{}, uniqueViolation()).Once()
	conn.On("QueryRow", mock.Anything, sqlLike(existsSQL), argAt(0, "slug-test")).
		Return(row(true)).Once()
	conn.On("QueryRow", mock.Anything, sqlLike(existsSQL), argAt(0, "slug-test-1")).
		Return(row(false)).Once()
	conn.On("Exec", mock.Anything, sqlLike("INSERT"), argAt(2, "slug-test-1")).
		Return(tag("INSERT 0 1"), nil).Once()

	repo, err := store.NewPostgres(conn)
	require.NoError(t, err)

	rec := &store.Record{Name: "Slug Test"}
	require.NoError(t, repo.Save(t.Context(), rec))
	assert.Equal(t, "slug-test-1", rec.Slug)
	conn.AssertExpectations(t)
	conn.AssertNumberOfCalls(t, "Exec", 2)
}

func TestPostgres_SaveGivesUpAfterMaxAttempts(t *testing.T) {
	t.Parallel()

	conn := &MockDBTX{}
	conn.On("QueryRow", mock.Anything, sqlLike(existsSQL), argAt(0, "slug-test")).
		Return(row(false)).Times(2)
	conn.On("Exec", mock.Anything, sqlLike("INSERT"), mock.Anything).
		Return(pgconn.CommandTag{}, uniqueViolation()).Times(2)

	repo, err := store.NewPostgres(conn, store.WithMaxAttempts(2))
	require.NoError(t, err)

	rec := &store.Record{Name: "Slug Test"}
	err = repo.Save(t.Context(), rec)
	assert.ErrorIs(t, err, store.ErrConflict)
	assert.True(t, db.IsUniqueViolation(err))
	assert.Equal(t, "", rec.Slug)
	assert.False(t, rec.Persisted())
	conn.AssertExpectations(t)
}

func TestPostgres_UpdateKeepsCallerSlug(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	conn := &MockDBTX{}
	conn.On("Exec", mock.Anything, sqlLike(`UPDATE "slugged_records" SET name`), argAt(0, id)).
		Return(pgconn.CommandTag{}, uniqueViolation()).Once()

	repo, err := store.NewPostgres(conn)
	require.NoError(t, err)

	rec := &store.Record{ID: id, Name: "Renamed", Slug: "taken"}
	err = repo.Save(t.Context(), rec)
	assert.ErrorIs(t, err, store.ErrConflict)
	assert.Equal(t, "taken", rec.Slug)

	// No retry for a caller-supplied slug.
	conn.AssertExpectations(t)
	conn.AssertNotCalled(t, "QueryRow", mock.Anything, mock.Anything, mock.Anything)
}

func TestPostgres_UpdateMissingRow(t *testing.T) {
	t.Parallel()

	conn := &MockDBTX{}
	conn.On("Exec", mock.Anything, sqlLike("UPDATE"), mock.Anything).
		Return(tag("UPDATE 0"), nil).Once()

	repo, err := store.NewPostgres(conn)
	require.NoError(t, err)

	err = repo.Save(t.Context(), &store.Record{ID: uuid.New(), Name: "Ghost", Slug: "ghost"})
	assert.ErrorIs(t, err, store.ErrNotFound)
	conn.AssertExpectations(t)
}

func TestPostgres_ExistsErrorPropagates(t *testing.T) {
	t.Parallel()

	boom := errors.New("connection reset")
	conn := &MockDBTX{}
	conn.On("QueryRow", mock.Anything, sqlLike(existsSQL), mock.Anything).
		Return(rowErr(boom)).Once()

	repo, err := store.NewPostgres(conn)
	require.NoError(t, err)

	rec := &store.Record{Name: "Slug Test"}
	assert.ErrorIs(t, repo.Save(t.Context(), rec), boom)
	assert.Equal(t, "", rec.Slug)
	conn.AssertExpectations(t)
	conn.AssertNotCalled(t, "Exec", mock.Anything, mock.Anything, mock.Anything)
}

func TestPostgres_Delete(t *testing.T) {
	t.Parallel()

	t.Run("hard", func(t *testing.T) {
		t.Parallel()

		id := uuid.New()
		conn := &MockDBTX{}
		conn.On("Exec", mock.Anything, sqlLike(`DELETE FROM "slugged_records" WHERE id = $1`), argAt(0, id)).
			Return(tag("DELETE 1"), nil).Once()
		conn.On("Exec", mock.Anything, sqlLike("DELETE"), argAt(0, id)).
			Return(tag("DELETE 0"), nil).Once()

		repo, err := store.NewPostgres(conn)
		require.NoError(t, err)

		rec := &store.Record{ID: id, Name: "Slug Test", Slug: "slug-test"}
		require.NoError(t, repo.Delete(t.Context(), rec))
		assert.Equal(t, "", rec.Slug)
		assert.Nil(t, rec.DeletedAt)

		assert.ErrorIs(t, repo.Delete(t.Context(), rec), store.ErrNotFound)
		conn.AssertExpectations(t)
	})

	t.Run("soft", func(t *testing.T) {
		t.Parallel()

		deletedAt := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
		conn := &MockDBTX{}
		conn.On("QueryRow", mock.Anything, sqlLike("UPDATE", "SET deleted_at = now()", "RETURNING deleted_at"), mock.Anything).
			Return(row(deletedAt)).Once()
		conn.On("QueryRow", mock.Anything, sqlLike("UPDATE"), mock.Anything).
			Return(rowErr(pgx.ErrNoRows)).Once()

		repo, err := store.NewPostgres(conn, store.WithSoftDelete())
		require.NoError(t, err)

		rec := &store.Record{ID: uuid.New(), Name: "Slug Test", Slug: "slug-test"}
		require.NoError(t, repo.Delete(t.Context(), rec))
		assert.Equal(t, "", rec.Slug)
		require.NotNil(t, rec.DeletedAt)
		assert.True(t, deletedAt.Equal(*rec.DeletedAt))

		assert.ErrorIs(t, repo.Delete(t.Context(), rec), store.ErrNotFound)
		conn.AssertExpectations(t)
	})
}

func TestPostgres_Find(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	deletedAt := time.Now()
	conn := &MockDBTX{}
	conn.On("QueryRow", mock.Anything,
		sqlLike("SELECT id, name, COALESCE(slug, '')", "deleted_at IS NULL ORDER BY created_at LIMIT 1"),
		argAt(0, "slug-test"),
	).Return(row(id, "Slug Test", "slug-test", (*time.Time)(nil))).Once()
	conn.On("QueryRow", mock.Anything,
		sqlLike("SELECT", "ORDER BY deleted_at IS NOT NULL, created_at LIMIT 1"),
		argAt(0, "slug-test"),
	).Return(row(id, "Slug Test", "slug-test", &deletedAt)).Once()
	conn.On("QueryRow", mock.Anything, sqlLike("SELECT"), argAt(0, "doesnt-exist")).
		Return(rowErr(pgx.ErrNoRows)).Times(2)

	repo, err := store.NewPostgres(conn)
	require.NoError(t, err)

	rec, err := repo.FindBySlug(t.Context(), "slug-test")
	require.NoError(t, err)
	assert.Equal(t, id, rec.ID)
	assert.Nil(t, rec.DeletedAt)

	rec, err = repo.FindBySlugWithDeleted(t.Context(), "slug-test")
	require.NoError(t, err)
	assert.NotNil(t, rec.DeletedAt)

	_, err = repo.FindBySlug(t.Context(), "doesnt-exist")
	assert.ErrorIs(t, err, store.ErrNotFound)

	first, err := store.FirstBySlug(t.Context(), repo, "doesnt-exist")
	require.NoError(t, err)
	assert.Nil(t, first)
	conn.AssertExpectations(t)
}

func TestPostgres_InsideTransaction(t *testing.T) {
	t.Parallel()

	t.Run("commit", func(t *testing.T) {
		t.Parallel()

		conn := &MockDBTX{}
		conn.On("QueryRow", mock.Anything, sqlLike(existsSQL), argAt(0, "slug-test")).
			Return(row(false)).Once()
		conn.On("Exec", mock.Anything, sqlLike("INSERT"), argAt(2, "slug-test")).
			Return(tag("INSERT 0 1"), nil).Once()
		tx := &MockTx{db: conn}
		tx.On("Commit", mock.Anything).Return(nil).Once()

		rec := &store.Record{Name: "Slug Test"}
		err := db.WithTx(t.Context(), beginFunc(func(context.Context) (pgx.Tx, error) { return tx, nil }),
			func(tx pgx.Tx) error {
				repo, err := store.NewPostgres(tx)
				if err != nil {
					return err
				}
				return repo.Save(t.Context(), rec)
			})

		require.NoError(t, err)
		assert.Equal(t, "slug-test", rec.Slug)
		conn.AssertExpectations(t)
		tx.AssertExpectations(t)
		tx.AssertNotCalled(t, "Rollback", mock.Anything)
	})

	t.Run("rollback on conflict", func(t *testing.T) {
		t.Parallel()

		conn := &MockDBTX{}
		conn.On("Exec", mock.Anything, sqlLike("UPDATE"), argAt(2, "taken")).
			Return(pgconn.CommandTag{}, uniqueViolation()).Once()
		tx := &MockTx{db: conn}
		tx.On("Rollback", mock.Anything).Return(nil).Once()

		err := db.WithTx(t.Context(), beginFunc(func(context.Context) (pgx.Tx, error) { return tx, nil }),
			func(tx pgx.Tx) error {
				repo, err := store.NewPostgres(tx)
				if err != nil {
					return err
				}
				return repo.Save(t.Context(), &store.Record{ID: uuid.New(), Name: "Taken", Slug: "taken"})
			})

		assert.ErrorIs(t, err, store.ErrConflict)
		conn.AssertExpectations(t)
		tx.AssertExpectations(t)
		tx.AssertNotCalled(t, "Commit", mock.Anything)
	})
}
