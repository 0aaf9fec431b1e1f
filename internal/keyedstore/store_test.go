package keyedstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	name string
}

func TestStoreInsertLookupRoundTrip(t *testing.T) {
	s := New[*record](10)
	want := &record{name: "target"}
	s.Insert(7, want)

	// Unrelated keys landing in other buckets must not disturb the lookup.
	for k := 20; k < 26; k++ {
		s.Insert(k, &record{name: "filler"})
	}

	got, ok := s.Lookup(7)
	require.True(t, ok)
	assert.Same(t, want, got)
	assert.Equal(t, 7, s.Len())
}

func TestStoreLookupMissIsAbsent(t *testing.T) {
	s := New[string](4)
	v, ok := s.Lookup(99)
	assert.False(t, ok)
	assert.Equal(t, "", v)
}

func TestStoreRemoveThenLookup(t *testing.T) {
	s := New[string](4)
	s.Insert(1, "a")
	s.Insert(5, "b") // same bucket as 1

	v, ok := s.Lookup(5)
	require.True(t, ok)
	require.Equal(t, "b", v)

	assert.True(t, s.Remove(1))
	_, ok = s.Lookup(1)
	assert.False(t, ok)
	assert.False(t, s.Remove(1), "second remove finds nothing")
	assert.Equal(t, 1, s.Len())

	v, ok = s.Lookup(5)
	require.True(t, ok)
	assert.Equal(t, "b", v)
}

// Duplicate inserts are a known sharp edge: both entries are kept and only
// the first is visible to Lookup until it is removed.
func TestStoreDuplicateInsertKeepsBothEntries(t *testing.T) {
	s := New[string](3)
	s.Insert(2, "first")
	s.Insert(2, "second")

	assert.Equal(t, 2, s.Len())
	v, _ := s.Lookup(2)
	assert.Equal(t, "first", v)

	require.True(t, s.Remove(2))
	v, ok := s.Lookup(2)
	require.True(t, ok)
	assert.Equal(t, "second", v)
}

func TestStoreKeysFollowBucketThenInsertionOrder(t *testing.T) {
	s := New[int](3)
	for _, k := range []int{4, 3, 1, 7, 2} {
		s.Insert(k, k*10)
	}

	// buckets: 0 -> [3], 1 -> [4, 1, 7], 2 -> [2]
	assert.Equal(t, []int{3, 4, 1, 7, 2}, s.Keys())
	assert.Equal(t, []int{30, 40, 10, 70, 20}, s.Values())
}

func TestStoreSingleBucketDegradesButStaysCorrect(t *testing.T) {
	s := New[int](0)
	require.Equal(t, 1, s.Buckets())

	for k := 0; k < 50; k++ {
		s.Insert(k, k)
	}
	for k := 0; k < 50; k += 2 {
		require.True(t, s.Remove(k))
	}

	assert.Equal(t, 25, s.Len())
	for k := 0; k < 50; k++ {
		assert.Equal(t, k%2 == 1, s.Contains(k), "key %d", k)
	}
	assert.Equal(t, 1, s.Buckets(), "no growth")
}

func TestStoreXXHasher(t *testing.T) {
	s := New[string](8, WithHasher(XXHash))
	for k := 1; k <= 40; k++ {
		s.Insert(k, "v")
	}

	assert.Equal(t, 40, s.Len())
	assert.ElementsMatch(t, rangeInts(1, 40), s.Keys())
	for k := 1; k <= 40; k++ {
		assert.True(t, s.Contains(k))
	}
}

func TestIdentityHashNegativeKeys(t *testing.T) {
	s := New[string](5)
	s.Insert(-3, "neg")
	s.Insert(-1, "neg1")

	v, ok := s.Lookup(-3)
	require.True(t, ok)
	assert.Equal(t, "neg", v)
	assert.True(t, s.Remove(-1))
}

func rangeInts(from, to int) []int {
	out := make([]int, 0, to-from+1)
	for i := from; i <= to; i++ {
		out = append(out, i)
	}
	return out
}
