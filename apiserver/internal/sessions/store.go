package sessions

import (
	"context"
	"sync"
	"time"

	"github.com/krancour/memberadmin"
	"github.com/krancour/memberadmin/internal/table"
)

const sessionType = "Session"

// Table is a table session hosted by the API server. Its Manager is not safe
// for concurrent use, so every operation on it must be performed via Do.
type Table struct {
	memberadmin.ObjectMeta
	LoadError string
	manager   *table.Manager
	mu        sync.Mutex
	// expires is only read or written by a Store while it holds its own lock.
	expires time.Time
}

// Do invokes the provided function with exclusive access to the Table's
// Manager.
func (t *Table) Do(fn func(*table.Manager) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return fn(t.manager)
}

// Store is an interface for components that implement Table persistence
// concerns.
type Store interface {
	// Create stores a new Table. An *ErrConflict is returned if a Table with the
	// same ID is already stored.
	Create(context.Context, *Table) error
	// Get retrieves a Table by ID or returns an *ErrNotFound. Tables that have
	// expired are not found.
	Get(context.Context, string) (*Table, error)
	// Delete removes a Table by ID or returns an *ErrNotFound.
	Delete(context.Context, string) error
}

type memoryStore struct {
	tables   map[string]*Table
	tablesMu sync.Mutex
	ttl      time.Duration
	now      func() time.Time
}

// NewMemoryStore returns a Store that keeps Tables in memory. Nothing it
// holds survives a restart. A Table that goes unused for longer than the
// provided TTL expires and is discarded. A TTL of zero means Tables never
// expire.
func NewMemoryStore(ttl time.Duration) Store {
	return &memoryStore{
		tables: map[string]*Table{},
		ttl:    ttl,
		now:    time.Now,
	}
}

func (m *memoryStore) Create(_ context.Context, t *Table) error {
	m.tablesMu.Lock()
	defer m.tablesMu.Unlock()
	m.sweep()
	if _, ok := m.tables[t.ID]; ok {
		return memberadmin.NewErrConflict(
			sessionType,
			t.ID,
			"A session with this ID already exists.",
		)
	}
	m.touch(t)
	m.tables[t.ID] = t
	return nil
}

func (m *memoryStore) Get(_ context.Context, id string) (*Table, error) {
	m.tablesMu.Lock()
	defer m.tablesMu.Unlock()
	t, ok := m.tables[id]
	if !ok {
		return nil, memberadmin.NewErrNotFound(sessionType, id)
	}
	if m.expired(t) {
		delete(m.tables, id)
		return nil, memberadmin.NewErrNotFound(sessionType, id)
	}
	m.touch(t)
	return t, nil
}

func (m *memoryStore) Delete(_ context.Context, id string) error {
	m.tablesMu.Lock()
	defer m.tablesMu.Unlock()
	t, ok := m.tables[id]
	if !ok || m.expired(t) {
		delete(m.tables, id)
		return memberadmin.NewErrNotFound(sessionType, id)
	}
	delete(m.tables, id)
	return nil
}

// touch pushes the expiry of the provided Table out by one TTL.
func (m *memoryStore) touch(t *Table) {
	if m.ttl > 0 {
		t.expires = m.now().Add(m.ttl)
	}
}

func (m *memoryStore) expired(t *Table) bool {
	return m.ttl > 0 && m.now().After(t.expires)
}

// sweep discards every expired Table.
func (m *memoryStore) sweep() {
	for id, t := range m.tables {
		if m.expired(t) {
			delete(m.tables, id)
		}
	}
}
