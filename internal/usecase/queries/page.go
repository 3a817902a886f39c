package queries

import (
	"time"

	"github.com/google/uuid"
)

// Keyset is the seek position handed to read stores. Stores return up to Limit+1 rows
// so the caller can tell whether another page exists.
type Keyset struct {
	AfterCreatedAt *time.Time
	AfterID        *uuid.UUID
	Limit          int
}

func newKeyset(after *Cursor, limit int) (Keyset, error) {
	ts, id, err := KeysetAfter(after)
	if err != nil {
		return Keyset{}, err
	}
	return Keyset{AfterCreatedAt: ts, AfterID: id, Limit: ValidateLimit(limit)}, nil
}

func paginate[T any](rows []T, limit int, key func(T) (time.Time, uuid.UUID)) *Page[T] {
	if len(rows) <= limit {
		return &Page[T]{Items: rows}
	}
	items := rows[:limit]
	t, id := key(items[len(items)-1])
	return &Page[T]{Items: items, Next: &Cursor{After: EncodeAfterCursor(t, id)}}
}
