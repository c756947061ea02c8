package hashmap

import (
	"reflect"
	"testing"
	"time"

	"github.com/bonami/collections/arrlist"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"jsouthworth.net/go/dyn"
)

func TestMapProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	properties := gopter.NewProperties(parameters)
	properties.Property("m.Assoc(k,v).At(k) == v",
		prop.ForAll(
			func(k string, v int) bool {
				return Empty().Assoc(k, v).At(k) == v
			},
			gen.Identifier(),
			gen.Int(),
		))
	properties.Property("last wins: New(k,a,k,b).At(k) == b",
		prop.ForAll(
			func(k string, a, b int) bool {
				return New(k, a, k, b).At(k) == b
			},
			gen.Identifier(),
			gen.Int(),
			gen.Int(),
		))
	properties.Property("Assoc leaves the original unchanged",
		prop.ForAll(
			func(k string, a, b int) bool {
				m := New(k, a)
				m.Assoc(k, b)
				return m.At(k) == a
			},
			gen.Identifier(),
			gen.Int(),
			gen.Int(),
		))
	properties.Property("Delete removes the key",
		prop.ForAll(
			func(k string, v int) bool {
				m := New(k, v).Delete(k)
				return !m.Contains(k) && m.Length() == 0
			},
			gen.Identifier(),
			gen.Int(),
		))
	properties.Property("concat is right-biased",
		prop.ForAll(
			func(k string, a, b int) bool {
				m := New(k, a).Concat(New(k, b))
				return m.At(k) == b && m.Length() == 1
			},
			gen.Identifier(),
			gen.Int(),
			gen.Int(),
		))
	properties.Property("equality ignores insertion order",
		prop.ForAll(
			func(k1, k2 string, a, b int) bool {
				if k1 == k2 {
					return true
				}
				return New(k1, a, k2, b).Equal(New(k2, b, k1, a))
			},
			gen.Identifier(),
			gen.Identifier(),
			gen.Int(),
			gen.Int(),
		))
	properties.Property("m.Concat(m) equals m",
		prop.ForAll(
			func(k string, v int) bool {
				m := New(k, v)
				return m.Concat(m).Equal(m)
			},
			gen.Identifier(),
			gen.Int(),
		))
	properties.TestingRun(t)
}

func TestLastWinsKeepsPosition(t *testing.T) {
	m := New("a", 1, "b", 2, "a", 3)
	if !m.Keys().Equal(arrlist.New("a", "b")) {
		t.Fatalf("overwrite moved the slot: %v", m.Keys())
	}
	if !m.Values().Equal(arrlist.New(3, 2)) {
		t.Fatalf("overwrite lost the late value: %v", m.Values())
	}
}

func TestStructuralKeys(t *testing.T) {
	m := New([]interface{}{1, 2}, "a")
	if m.At([]interface{}{1, 2}) != "a" {
		t.Fatal("structurally equal slice should find the entry")
	}
	if m.Contains([]interface{}{2, 1}) {
		t.Fatal("different slice should not find the entry")
	}
	key := m.Keys().Head()
	if !reflect.DeepEqual(key, []interface{}{1, 2}) {
		t.Fatalf("original key should be recoverable, got %v", key)
	}
}

func TestHiddenStateKeys(t *testing.T) {
	t1 := time.Unix(0, 1)
	t2 := time.Unix(0, 2)
	m := New(t1, "a", t2, "b")
	if m.Length() != 2 {
		t.Fatalf("distinct times should be distinct keys, got %d entries", m.Length())
	}
	if m.At(t1) != "a" || m.At(t2) != "b" {
		t.Fatal("lookup by an equal time should find its own entry")
	}
}

func TestGetVariants(t *testing.T) {
	m := New("a", 1)
	if m.Get("a").GetUnsafe() != 1 {
		t.Fatal("Get should find the value")
	}
	if m.Get("b").IsDefined() {
		t.Fatal("Get on a missing key should be None")
	}
	if m.GetOrElse("b", 42) != 42 {
		t.Fatal("GetOrElse should fall back")
	}
	defer func() {
		if recover() != ErrKeyNotFound {
			t.Fatal("At on a missing key should panic with ErrKeyNotFound")
		}
	}()
	m.At("b")
}

func TestMapAndMapKeys(t *testing.T) {
	m := New("a", 1, "b", 2)
	doubled := m.Map(func(v, _ interface{}) interface{} {
		return v.(int) * 2
	})
	if !doubled.Equal(arrlist.New(2, 4)) {
		t.Fatalf("Map should produce values in order: %v", doubled)
	}
	constant := m.MapKeys(func(_ interface{}) interface{} { return "k" })
	if constant.Length() != 1 || constant.At("k") != 2 {
		t.Fatalf("MapKeys collisions should resolve last-wins: %v", constant)
	}
}

func TestFilterAndWithout(t *testing.T) {
	m := New("a", 1, "b", 2, "c", 3)
	odd := m.Filter(func(v, _ interface{}) bool {
		return v.(int)%2 == 1
	})
	if !odd.Keys().Equal(arrlist.New("a", "c")) {
		t.Fatalf("Filter should keep order: %v", odd)
	}
	noB := m.FilterKeys(func(k interface{}) bool { return k != "b" })
	if noB.Contains("b") || noB.Length() != 2 {
		t.Fatalf("FilterKeys failed: %v", noB)
	}
	if !m.WithoutKeys(arrlist.New("a", "c")).Keys().Equal(arrlist.New("b")) {
		t.Fatal("WithoutKeys failed")
	}
	if !m.Minus([]interface{}{"missing"}).Equal(m) {
		t.Fatal("Minus with absent keys should be identity")
	}
}

func TestGetByKeys(t *testing.T) {
	m := New("a", 1, "b", 2, "c", 3)
	proj := m.GetByKeys(arrlist.New("c", "missing", "a"))
	if !proj.Keys().Equal(arrlist.New("c", "a")) {
		t.Fatalf("projection should follow the keys' order and skip absences: %v", proj)
	}
}

func TestSort(t *testing.T) {
	m := New("b", 2, "c", 1, "a", 3)
	if !m.SortKeys().Keys().Equal(arrlist.New("a", "b", "c")) {
		t.Fatal("SortKeys should use the natural comparison by default")
	}
	if !m.SortValues().Values().Equal(arrlist.New(1, 2, 3)) {
		t.Fatal("SortValues should use the natural comparison by default")
	}
	desc := m.SortKeys(func(a, b interface{}) int {
		return dyn.Compare(b, a)
	})
	if !desc.Keys().Equal(arrlist.New("c", "b", "a")) {
		t.Fatal("SortKeys should honor the supplied comparator")
	}
}

func TestSortStability(t *testing.T) {
	m := New("a", 1, "b", 2, "c", 3, "d", 4)
	byParity := func(a, b interface{}) int {
		return a.(int)%2 - b.(int)%2
	}
	if !m.SortValues(byParity).Keys().Equal(arrlist.New("b", "d", "a", "c")) {
		t.Fatal("equal-ranked entries should keep their insertion order")
	}
	same := func(a, b interface{}) int { return 0 }
	if !m.SortKeys(same).Keys().Equal(arrlist.New("a", "b", "c", "d")) {
		t.Fatal("a constant comparator should leave the order unchanged")
	}
}

func TestWithoutKeysInput(t *testing.T) {
	m := New("a", 1, "b", 2)
	if !m.WithoutKeys(nil).Equal(m) {
		t.Fatal("removing no keys should be identity")
	}
	defer func() {
		if recover() == nil {
			t.Fatal("a non-sequenceable keys argument should panic")
		}
	}()
	m.WithoutKeys("a")
}

func TestChunk(t *testing.T) {
	m := New("a", 1, "b", 2, "c", 3)
	chunks := m.Chunk(2)
	if chunks.Length() != 2 {
		t.Fatalf("expected 2 chunks, got %d", chunks.Length())
	}
	first := chunks.At(0).(*Map)
	last := chunks.At(1).(*Map)
	if first.Length() != 2 || last.Length() != 1 {
		t.Fatal("chunks should split 2/1")
	}
	if !last.Keys().Equal(arrlist.New("c")) {
		t.Fatal("chunking should preserve order")
	}
	defer func() {
		if recover() != ErrChunkSize {
			t.Fatal("Chunk(0) should panic with ErrChunkSize")
		}
	}()
	m.Chunk(0)
}

func TestReduce(t *testing.T) {
	m := New("a", 1, "b", 2, "c", 3)
	sum := m.Reduce(func(acc, v, _ interface{}) interface{} {
		return acc.(int) + v.(int)
	}, 0)
	if sum != 6 {
		t.Fatalf("expected 6, got %v", sum)
	}
}

func TestGroupBy(t *testing.T) {
	words := arrlist.New("apple", "avocado", "banana", "blueberry", "cherry")
	byLetter := GroupBy(words, func(w string) string {
		return w[:1]
	})
	if byLetter.Length() != 3 {
		t.Fatalf("expected 3 groups, got %d", byLetter.Length())
	}
	if !byLetter.Keys().Equal(arrlist.New("a", "b", "c")) {
		t.Fatal("groups should appear in order of first occurrence")
	}
	a := byLetter.At("a").(*arrlist.List)
	if !a.Equal(arrlist.New("apple", "avocado")) {
		t.Fatalf("bucket should keep original element order: %v", a)
	}
}

func TestIndex(t *testing.T) {
	type user struct {
		ID   int
		Name string
	}
	users := arrlist.New(
		user{1, "ann"},
		user{2, "bob"},
		user{1, "late ann"},
	)
	byID := Index(users, func(u user) int { return u.ID })
	if byID.Length() != 2 {
		t.Fatalf("expected 2 entries, got %d", byID.Length())
	}
	if byID.At(1).(user).Name != "late ann" {
		t.Fatal("Index should be last-wins")
	}
}

func TestFromShapes(t *testing.T) {
	native := From(map[string]int{"a": 1, "b": 2})
	if native.Length() != 2 || native.At("a") != 1 {
		t.Fatalf("From native map failed: %v", native)
	}
	entries := From([]Entry{NewEntry("a", 1), NewEntry("a", 2)})
	if entries.Length() != 1 || entries.At("a") != 2 {
		t.Fatal("From entries should apply last-wins")
	}
	roundTrip := From(native.Entries())
	if !roundTrip.Equal(native) {
		t.Fatal("Entries should round-trip through From")
	}
}

func TestSeqOrder(t *testing.T) {
	m := New("a", 1, "b", 2)
	s := m.Seq()
	if e := s.First().(Entry); e.Key() != "a" || e.Value() != 1 {
		t.Fatal("Seq should start at the first insertion")
	}
	if e := s.Next().First().(Entry); e.Key() != "b" {
		t.Fatal("Seq should follow insertion order")
	}
	if s.Next().Next() != nil {
		t.Fatal("Seq should end")
	}
}

func TestMapAsKey(t *testing.T) {
	inner1 := New("a", 1, "b", 2)
	inner2 := New("b", 2, "a", 1)
	outer := New(inner1, "found")
	if outer.At(inner2) != "found" {
		t.Fatal("equal maps should be interchangeable as keys")
	}
}
