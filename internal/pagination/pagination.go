// Package pagination holds the two paging envelopes shared by every feed
// query: the offset-counted Paginated pair and the keyset CursorPage.
package pagination

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidArgument marks a request that is rejected before any query
// executes: a negative offset or limit, or a malformed identifier.
var ErrInvalidArgument = errors.New("invalid argument")

// Paginated is the offset-style response envelope. TotalCount reflects the
// full matching set before skip/limit, taken from the same query execution
// that produced Page.
type Paginated[T any] struct {
	TotalCount int64 `json:"totalCount"`
	Page       []T   `json:"page"`
}

// NewPaginated builds an offset envelope, normalizing a nil page to an empty
// slice so callers always serialize an array.
func NewPaginated[T any](totalCount int64, page []T) Paginated[T] {
	if page == nil {
		page = []T{}
	}
	return Paginated[T]{TotalCount: totalCount, Page: page}
}

// Cursor marks the last row the caller has seen, in canonical
// (createdAt desc, id desc) order.
type Cursor struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
}

// CursorPage is the keyset-style response envelope. HasNext is true iff at
// least one row exists beyond the returned page.
type CursorPage[T any] struct {
	HasNext bool `json:"hasNext"`
	Page    []T  `json:"page"`
}

// NewCursorPage builds a keyset envelope, normalizing a nil page.
func NewCursorPage[T any](hasNext bool, page []T) CursorPage[T] {
	if page == nil {
		page = []T{}
	}
	return CursorPage[T]{HasNext: hasNext, Page: page}
}

// ValidateRange rejects negative offset or limit with ErrInvalidArgument.
func ValidateRange(offset, limit int64) error {
	if offset < 0 {
		return fmt.Errorf("offset %d: %w", offset, ErrInvalidArgument)
	}
	if limit < 0 {
		return fmt.Errorf("limit %d: %w", limit, ErrInvalidArgument)
	}
	return nil
}

// ValidateLimit rejects a negative limit with ErrInvalidArgument.
func ValidateLimit(limit int64) error {
	if limit < 0 {
		return fmt.Errorf("limit %d: %w", limit, ErrInvalidArgument)
	}
	return nil
}

// SliceOffset applies the [offset, offset+limit) window to an in-memory
// result set. Callers validate the range first; this only clamps against the
// slice bounds.
func SliceOffset[T any](rows []T, offset, limit int64) []T {
	if offset >= int64(len(rows)) {
		return []T{}
	}
	end := offset + limit
	if end > int64(len(rows)) {
		end = int64(len(rows))
	}
	return rows[offset:end]
}
