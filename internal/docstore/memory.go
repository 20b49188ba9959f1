package docstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore provides an in-memory implementation of Store, one map per
// collection. It assigns IDs and server timestamps the way the hosted
// document database would.
type MemoryStore struct {
	mu          sync.Mutex
	collections map[string]map[string]map[string]any
	now         func() time.Time
}

// NewMemoryStore instantiates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		collections: map[string]map[string]map[string]any{},
		now:         time.Now,
	}
}

// SetClock overrides the timestamp source. Intended for tests.
func (m *MemoryStore) SetClock(now func() time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = now
}

func (m *MemoryStore) collection(name string) map[string]map[string]any {
	col, ok := m.collections[name]
	if !ok {
		col = map[string]map[string]any{}
		m.collections[name] = col
	}
	return col
}

// GetByID fetches a single document by ID.
func (m *MemoryStore) GetByID(_ context.Context, collection, id string) (Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	fields, ok := m.collection(collection)[id]
	if !ok {
		return Document{}, ErrNotFound
	}
	return Document{ID: id, Fields: cloneFields(fields)}, nil
}

// Create inserts a new document and returns its server-assigned ID.
func (m *MemoryStore) Create(_ context.Context, collection string, fields map[string]any) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := uuid.NewString()
	doc := cloneFields(fields)
	now := m.now()
	doc[FieldCreatedAt] = now
	doc[FieldUpdatedAt] = now
	m.collection(collection)[id] = doc
	return id, nil
}

// UpdateByID merges the given fields into an existing document.
func (m *MemoryStore) UpdateByID(_ context.Context, collection, id string, fields map[string]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	doc, ok := m.collection(collection)[id]
	if !ok {
		return ErrNotFound
	}
	for k, v := range fields {
		doc[k] = v
	}
	doc[FieldUpdatedAt] = m.now()
	return nil
}

// Query returns up to limit documents ordered by the named field.
func (m *MemoryStore) Query(_ context.Context, collection, orderBy string, desc bool, limit int) ([]Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	col := m.collection(collection)
	docs := make([]Document, 0, len(col))
	for id, fields := range col {
		docs = append(docs, Document{ID: id, Fields: cloneFields(fields)})
	}

	sort.SliceStable(docs, func(i, j int) bool {
		if desc {
			return fieldLess(docs[j].Fields[orderBy], docs[i].Fields[orderBy])
		}
		return fieldLess(docs[i].Fields[orderBy], docs[j].Fields[orderBy])
	})

	if limit > 0 && len(docs) > limit {
		docs = docs[:limit]
	}
	return docs, nil
}

// DeleteByID removes a document from a collection.
func (m *MemoryStore) DeleteByID(_ context.Context, collection, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	col := m.collection(collection)
	if _, ok := col[id]; !ok {
		return ErrNotFound
	}
	delete(col, id)
	return nil
}

func cloneFields(fields map[string]any) map[string]any {
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		out[k] = v
	}
	return out
}

// fieldLess orders the field types the store actually holds: timestamps,
// numbers and strings. Missing values sort first.
func fieldLess(a, b any) bool {
	switch av := a.(type) {
	case time.Time:
		bv, ok := b.(time.Time)
		return ok && av.Before(bv)
	case int:
		return fieldLess(float64(av), b)
	case float64:
		switch bv := b.(type) {
		case float64:
			return av < bv
		case int:
			return av < float64(bv)
		}
		return false
	case string:
		bv, ok := b.(string)
		return ok && av < bv
	case nil:
		return b != nil
	}
	return false
}
