// Package keyedstore provides a fixed-size chaining hash table keyed by int.
//
// The bucket count is chosen at construction and never changes. There is no
// rehashing: a table sized too small, or a hasher that sends every key to the
// same bucket, degrades Remove and Lookup to a linear scan. Callers that size
// the table up front rely on this, so growth must not be added here.
package keyedstore

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// Hasher maps a key to a non-negative value; the store reduces it modulo the
// bucket count.
type Hasher func(key int) uint64

// IdentityHash uses the key itself, so consecutive ids land in consecutive
// buckets and iteration order follows the ids.
func IdentityHash(key int) uint64 {
	if key < 0 {
		return uint64(-(key + 1)) + 1
	}
	return uint64(key)
}

// XXHash spreads keys with xxhash over the key's little-endian bytes.
func XXHash(key int) uint64 {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], uint64(key))
	return xxhash.Sum64(b[:])
}

type entry[V any] struct {
	key   int
	value V
}

// Store is a chaining hash table from int keys to values of type V.
// Insertion order within a bucket is append order. Store is not safe for
// concurrent use.
type Store[V any] struct {
	buckets [][]entry[V]
	hash    Hasher
	count   int
}

// Option configures a Store.
type Option func(*options)

type options struct {
	hash Hasher
}

// WithHasher replaces the default IdentityHash.
func WithHasher(h Hasher) Option {
	return func(o *options) {
		if h != nil {
			o.hash = h
		}
	}
}

// New creates a store with a fixed number of buckets (at least one).
func New[V any](buckets int, opts ...Option) *Store[V] {
	if buckets < 1 {
		buckets = 1
	}

	o := options{hash: IdentityHash}
	for _, opt := range opts {
		opt(&o)
	}

	return &Store[V]{
		buckets: make([][]entry[V], buckets),
		hash:    o.hash,
	}
}

func (s *Store[V]) slot(key int) int {
	return int(s.hash(key) % uint64(len(s.buckets)))
}

// Insert appends the pair to its bucket. Duplicate keys are not detected:
// inserting the same key twice stores two entries, and Lookup/Remove only
// ever see the first one. Avoiding that is the caller's job.
func (s *Store[V]) Insert(key int, value V) {
	i := s.slot(key)
	s.buckets[i] = append(s.buckets[i], entry[V]{key: key, value: value})
	s.count++
}

// Remove deletes the first entry with the key and reports whether one existed.
func (s *Store[V]) Remove(key int) bool {
	i := s.slot(key)
	bucket := s.buckets[i]
	for j, e := range bucket {
		if e.key == key {
			s.buckets[i] = append(bucket[:j:j], bucket[j+1:]...)
			s.count--
			return true
		}
	}
	return false
}

// Lookup returns the value of the first entry with the key.
func (s *Store[V]) Lookup(key int) (V, bool) {
	for _, e := range s.buckets[s.slot(key)] {
		if e.key == key {
			return e.value, true
		}
	}
	var zero V
	return zero, false
}

// Contains reports whether the key is present.
func (s *Store[V]) Contains(key int) bool {
	_, ok := s.Lookup(key)
	return ok
}

// Len returns the number of live entries.
func (s *Store[V]) Len() int { return s.count }

// Buckets returns the fixed bucket count.
func (s *Store[V]) Buckets() int { return len(s.buckets) }

// Keys returns every key in bucket order, then insertion order within a
// bucket. The order is not sorted and may change after mutation.
func (s *Store[V]) Keys() []int {
	out := make([]int, 0, s.count)
	for _, bucket := range s.buckets {
		for _, e := range bucket {
			out = append(out, e.key)
		}
	}
	return out
}

// Values returns every value in the same order as Keys.
func (s *Store[V]) Values() []V {
	out := make([]V, 0, s.count)
	for _, bucket := range s.buckets {
		for _, e := range bucket {
			out = append(out, e.value)
		}
	}
	return out
}
