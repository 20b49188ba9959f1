package docstore

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrNotFound is returned when a document with the given ID is not found.
var ErrNotFound = errors.New("document not found")

// Field names the store manages itself on every document.
const (
	FieldCreatedAt = "createdAt"
	FieldUpdatedAt = "updatedAt"
)

// Document is a schemaless record as stored in a collection. Fields holds
// the document body; ID is assigned by the store on creation.
type Document struct {
	ID     string
	Fields map[string]any
}

// String returns the string value under key, or "" when absent.
func (d Document) String(key string) string {
	s, _ := d.Fields[key].(string)
	return s
}

// Int returns the integer value under key, accepting int or float64.
func (d Document) Int(key string) int {
	switch v := d.Fields[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return 0
}

// Float returns the numeric value under key, accepting float64 or int.
func (d Document) Float(key string) float64 {
	switch v := d.Fields[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	}
	return 0
}

// Time returns the time value under key, or the zero time when absent.
func (d Document) Time(key string) time.Time {
	t, _ := d.Fields[key].(time.Time)
	return t
}

// Store is the generic CRUD interface over a document database. Each call is
// an independent remote operation; there is no multi-document transaction.
type Store interface {
	// GetByID fetches one document. Returns ErrNotFound when absent.
	GetByID(ctx context.Context, collection, id string) (Document, error)

	// Create inserts a new document with a server-assigned ID and
	// createdAt/updatedAt timestamps, returning the new ID.
	Create(ctx context.Context, collection string, fields map[string]any) (string, error)

	// UpdateByID merges fields into an existing document and refreshes
	// its updatedAt timestamp. Returns ErrNotFound when absent.
	UpdateByID(ctx context.Context, collection, id string, fields map[string]any) error

	// Query returns up to limit documents ordered by the named field.
	Query(ctx context.Context, collection, orderBy string, desc bool, limit int) ([]Document, error)

	// DeleteByID removes a document. Returns ErrNotFound when absent.
	DeleteByID(ctx context.Context, collection, id string) error
}

// RemoteError wraps a failure reported by the backing store. Callers
// propagate it unchanged; no retry policy exists at this layer.
type RemoteError struct {
	Op  string
	Err error
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("docstore: %s: %v", e.Op, e.Err)
}

func (e *RemoteError) Unwrap() error { return e.Err }
