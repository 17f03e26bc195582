package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/slimak/pkg/slug"
)

// Memory is an in-process Repository. It enforces the same unique constraint
// as the Postgres schema: no two live rows share a slug.
type Memory struct {
	saver
	rows map[uuid.UUID]memRow
	seq  uint64
	now  func() time.Time
	mu   sync.RWMutex
}

// memRow keeps the insertion order, the in-memory stand-in for created_at.
type memRow struct {
	Record
	seq uint64
}

// NewMemory creates an empty in-memory store.
func NewMemory(opts ...Option) *Memory {
	return &Memory{
		saver: saver{newOptions(opts)},
		rows:  make(map[uuid.UUID]memRow),
		now:   time.Now,
	}
}

func (m *Memory) Policy() Policy {
	return m.policy
}

func (m *Memory) Save(ctx context.Context, rec *Record) error {
	return m.save(ctx, rec, m.exists, m.persist)
}

func (m *Memory) exists(_ context.Context, candidate string, self uuid.UUID) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for id, row := range m.rows {
		if id == self || !m.policy.counts(row.Record) {
			continue
		}
		if row.Slug != "" && m.policy.Matching.Equal(row.Slug, candidate) {
			return true, nil
		}
	}
	return false, nil
}

func (m *Memory) persist(_ context.Context, rec *Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := rec.ID
	var seq uint64
	if id != uuid.Nil {
		prev, ok := m.rows[id]
		if !ok {
			return ErrNotFound
		}
		seq = prev.seq
	} else {
		id = uuid.New()
		m.seq++
		seq = m.seq
	}

	if rec.Slug != "" && rec.DeletedAt == nil {
		for otherID, row := range m.rows {
			if otherID == id || row.DeletedAt != nil {
				continue
			}
			if m.policy.Matching.Equal(row.Slug, rec.Slug) {
				return ErrConflict
			}
		}
	}

	rec.ID = id
	m.rows[id] = memRow{Record: *rec, seq: seq}
	return nil
}

func (m *Memory) Delete(_ context.Context, rec *Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	row, ok := m.rows[rec.ID]
	if !ok || row.DeletedAt != nil {
		return ErrNotFound
	}

	slug.Clear(rec)
	if !m.policy.SoftDelete {
		delete(m.rows, rec.ID)
		return nil
	}

	now := m.now()
	row.DeletedAt = &now
	m.rows[rec.ID] = row
	rec.DeletedAt = &now
	return nil
}

func (m *Memory) FindBySlug(_ context.Context, s string) (Record, error) {
	return m.find(s, false)
}

func (m *Memory) FindBySlugWithDeleted(_ context.Context, s string) (Record, error) {
	return m.find(s, true)
}

func (m *Memory) find(s string, withDeleted bool) (Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	// Live rows win over tombstones holding the same slug, then the oldest
	// row wins.
	var found *memRow
	for _, row := range m.rows {
		if row.Slug == "" || !m.policy.Matching.Equal(row.Slug, s) {
			continue
		}
		if row.DeletedAt != nil && !withDeleted {
			continue
		}
		if found == nil || before(row, *found) {
			found = &row
		}
	}
	if found == nil {
		return Record{}, ErrNotFound
	}
	return found.Record, nil
}

func before(a, b memRow) bool {
	if (a.DeletedAt == nil) != (b.DeletedAt == nil) {
		return a.DeletedAt == nil
	}
	return a.seq < b.seq
}

var _ Repository = (*Memory)(nil)
