// Package ident provides identifiers tagged with the kind of entity they
// refer to. IDs of different kinds are distinct types, so a player ID can
// never be compared with or passed in place of a match ID.
package ident

import (
	"encoding/json"
	"strconv"
	"sync/atomic"
)

// ID is an opaque identifier for an entity of kind K.
// K is only a marker and is never instantiated.
type ID[K any] struct {
	value uint32
}

// FromValue rebuilds an ID from its underlying value.
// Only persistence layers should need this; new IDs come from an Allocator.
func FromValue[K any](v uint32) ID[K] {
	return ID[K]{value: v}
}

// Parse reads a decimal ID as produced by String
func Parse[K any](s string) (ID[K], error) {
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return ID[K]{}, err
	}
	return ID[K]{value: uint32(v)}, nil
}

// Value returns the underlying number
func (id ID[K]) Value() uint32 {
	return id.value
}

// String returns the decimal form of the ID
func (id ID[K]) String() string {
	return strconv.FormatUint(uint64(id.value), 10)
}

// Compare returns -1, 0 or +1 depending on whether id sorts before, equal to
// or after other.
func (id ID[K]) Compare(other ID[K]) int {
	switch {
	case id.value < other.value:
		return -1
	case id.value > other.value:
		return 1
	default:
		return 0
	}
}

// Less reports whether id sorts before other
func (id ID[K]) Less(other ID[K]) bool {
	return id.value < other.value
}

// MarshalJSON encodes the ID as a bare number
func (id ID[K]) MarshalJSON() ([]byte, error) {
	return json.Marshal(id.value)
}

// UnmarshalJSON decodes a bare number
func (id *ID[K]) UnmarshalJSON(data []byte) error {
	return json.Unmarshal(data, &id.value)
}

// Allocator hands out IDs of kind K. The first ID is 0 and every call
// returns the previous value plus one. Safe for concurrent use.
type Allocator[K any] struct {
	next atomic.Uint32
}

// NewAllocator creates an allocator starting at 0
func NewAllocator[K any]() *Allocator[K] {
	return &Allocator[K]{}
}

// ResumeAllocator creates an allocator whose first ID is next.
// Used when reattaching to a store that already holds IDs below next.
func ResumeAllocator[K any](next uint32) *Allocator[K] {
	a := &Allocator[K]{}
	a.next.Store(next)
	return a
}

// Next allocates a fresh ID
func (a *Allocator[K]) Next() ID[K] {
	return ID[K]{value: a.next.Add(1) - 1}
}

// Peek returns the value the next call to Next will return
func (a *Allocator[K]) Peek() uint32 {
	return a.next.Load()
}
