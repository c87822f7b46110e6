// Package pagination implements opaque keyset cursors over auto-increment
// identifiers. Every list endpoint fetches limit+1 rows ordered by id and
// builds the page from the surplus.
package pagination

import (
	"encoding/base64"
	"strconv"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// ClampLimit bounds a requested page size to [1, MaxLimit], substituting the
// default for zero or negative values.
func ClampLimit(limit int) int {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

// ParseLimit reads a raw query value; anything non-numeric falls back to the
// default before clamping.
func ParseLimit(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return DefaultLimit
	}
	return ClampLimit(n)
}

// EncodeCursor turns a record identifier into an opaque cursor.
func EncodeCursor(id int) string {
	return base64.StdEncoding.EncodeToString([]byte(strconv.Itoa(id)))
}

// DecodeCursor reverses EncodeCursor. Malformed or empty input never errors:
// it reports false, which callers treat as "start from the beginning".
func DecodeCursor(cursor string) (int, bool) {
	if cursor == "" {
		return 0, false
	}
	raw, err := base64.StdEncoding.DecodeString(cursor)
	if err != nil {
		return 0, false
	}
	id, err := strconv.Atoi(string(raw))
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

type PageInfo struct {
	NextCursor  string `json:"nextCursor,omitempty"`
	HasNextPage bool   `json:"hasNextPage"`
	Limit       int    `json:"limit"`
}

type Page[T any] struct {
	Data     []T      `json:"data"`
	PageInfo PageInfo `json:"pageInfo"`
}

// BuildPage assembles a page from rows fetched with limit+1. The surplus row,
// if present, is dropped and signals a next page; the cursor always encodes
// the identifier of the last row actually returned.
func BuildPage[T any](items []T, limit int, id func(T) int) Page[T] {
	hasNext := len(items) > limit
	if hasNext {
		items = items[:limit]
	}
	page := Page[T]{
		Data:     items,
		PageInfo: PageInfo{HasNextPage: hasNext, Limit: limit},
	}
	if hasNext && len(items) > 0 {
		page.PageInfo.NextCursor = EncodeCursor(id(items[len(items)-1]))
	}
	return page
}
