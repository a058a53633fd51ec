package ordered

import (
	"cmp"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

type pair struct {
	key   string
	count int
}

func comparePair(a, b pair) int {
	if c := cmp.Compare(a.key, b.key); c != 0 {
		return c
	}
	return cmp.Compare(a.count, b.count)
}

func equalPair(a, b pair) bool { return a.key == b.key }

func newInts() *List[int] {
	return New(cmp.Compare[int], func(a, b int) bool { return a == b })
}

func TestInsertKeepsAscendingOrder(t *testing.T) {
	l := newInts()
	for _, v := range []int{5, 1, 4, 1, 3} {
		l.Insert(v)
	}
	assert.Equal(t, []int{1, 1, 3, 4, 5}, l.Items())
	assert.Equal(t, 5, l.Len())
	assert.Equal(t, 1, l.At(0))
	assert.Equal(t, 5, l.At(4))
}

func TestInsertPlacesEqualElementsAfterExisting(t *testing.T) {
	l := New(comparePair, equalPair)
	l.Insert(pair{"b", 1})
	l.Insert(pair{"a", 7})
	l.Insert(pair{"a", 7})
	l.Insert(pair{"a", 2})

	assert.Equal(t, []pair{{"a", 2}, {"a", 7}, {"a", 7}, {"b", 1}}, l.Items())
}

func TestRemoveUsesEqualityNotOrder(t *testing.T) {
	l := New(comparePair, equalPair)
	l.Insert(pair{"football", 10})
	l.Insert(pair{"tennis", 3})

	// Same key, different count: still the same element under equality.
	removed := l.Remove(pair{"football", 0})
	require.True(t, removed)
	assert.Equal(t, []pair{{"tennis", 3}}, l.Items())

	assert.False(t, l.Remove(pair{"golf", 1}), "removing an absent element is a no-op")
	assert.Equal(t, 1, l.Len())
}

func TestContainsAndIndex(t *testing.T) {
	l := New(comparePair, equalPair)
	l.Insert(pair{"b", 1})
	l.Insert(pair{"a", 1})

	assert.True(t, l.Contains(pair{"a", 99}))
	assert.False(t, l.Contains(pair{"c", 1}))
	assert.Equal(t, 1, l.Index(pair{"b", 0}))
	assert.Equal(t, -1, l.Index(pair{"z", 0}))
}

func TestFind(t *testing.T) {
	l := newInts()
	l.Insert(10)
	l.Insert(20)

	got, ok := l.Find(func(v int) bool { return v > 15 })
	require.True(t, ok)
	assert.Equal(t, 20, got)

	_, ok = l.Find(func(v int) bool { return v > 100 })
	assert.False(t, ok)
}

func TestAllStopsEarly(t *testing.T) {
	l := newInts()
	for _, v := range []int{3, 2, 1} {
		l.Insert(v)
	}

	var seen []int
	for i, v := range l.All() {
		seen = append(seen, v)
		if i == 1 {
			break
		}
	}
	assert.Equal(t, []int{1, 2}, seen)
}

func TestItemsReturnsCopy(t *testing.T) {
	l := New(cmp.Compare[int], func(a, b int) bool { return a == b }, WithCapacity[int](4))
	l.Insert(2)
	l.Insert(1)

	items := l.Items()
	items[0] = 100
	assert.Equal(t, 1, l.At(0))
}

func TestProperty_InsertAnyOrderYieldsSorted(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		values := rapid.SliceOf(rapid.IntRange(-50, 50)).Draw(t, "values")

		l := newInts()
		for _, v := range values {
			l.Insert(v)
		}

		got := l.Items()
		if !slices.IsSorted(got) {
			t.Fatalf("list not sorted: %v", got)
		}
		want := slices.Clone(values)
		slices.Sort(want)
		if !slices.Equal(got, want) {
			t.Fatalf("got %v, want %v", got, want)
		}
	})
}

func TestProperty_RemoveThenInsertRestoresPosition(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		values := rapid.SliceOfN(rapid.IntRange(0, 20), 1, 30).Draw(t, "values")

		l := newInts()
		for _, v := range values {
			l.Insert(v)
		}
		before := l.Items()

		victim := rapid.SampledFrom(values).Draw(t, "victim")
		if !l.Remove(victim) {
			t.Fatalf("remove(%d) reported absent", victim)
		}
		l.Insert(victim)

		if after := l.Items(); !slices.Equal(before, after) {
			t.Fatalf("order changed: before %v, after %v", before, after)
		}
	})
}
