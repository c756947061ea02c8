package hashmap // import "github.com/bonami/collections/hashmap"

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/bonami/collections/arrlist"
	"github.com/bonami/collections/hashkey"
	"github.com/bonami/collections/option"
	"jsouthworth.net/go/dyn"
	"jsouthworth.net/go/seq"
)

// ErrKeyNotFound is the panic value of At for a missing key.
var ErrKeyNotFound = errors.New("key not found")

// ErrChunkSize is the panic value of Chunk when size < 1.
var ErrChunkSize = errors.New("chunk size must be at least 1")

var errOddElements = errors.New("must supply an even number of elements")
var errRangeSig = errors.New("Range requires a function: func(k kT, v vT) bool or func(k kT, v vT)")

// Entry is a map entry. Each entry consists of a key and value.
type Entry interface {
	Key() interface{}
	Value() interface{}
}

// NewEntry returns an Entry pairing key with value.
func NewEntry(key, value interface{}) Entry {
	return entry{k: key, v: value}
}

// Map is an immutable map. It stores, per structural hash token, both
// the key of record and the value, so the original key can always be
// recovered. Operations on Map return new maps leaving the receiver
// unchanged.
type Map struct {
	order []hashkey.Key
	keys  map[hashkey.Key]interface{}
	vals  map[hashkey.Key]interface{}
}

var empty = Map{
	keys: map[hashkey.Key]interface{}{},
	vals: map[hashkey.Key]interface{}{},
}

// Empty returns the empty map.
func Empty() *Map {
	return &empty
}

// New converts a list of elements to a map by associating them
// pairwise. New will panic if the number of elements is not even.
func New(elems ...interface{}) *Map {
	if len(elems)%2 != 0 {
		panic(errOddElements)
	}
	b := newBuilder(len(elems) / 2)
	for i := 0; i < len(elems); i += 2 {
		b.assoc(elems[i], elems[i+1])
	}
	return b.build()
}

// From will convert many different go types to an immutable map.
//
// *Map:
//    Returned directly as it is already immutable.
// map[interface{}]interface{}:
//    Converted by looping over the map and associating each entry.
// []Entry:
//    The entries are associated in order; later entries with
//    structurally equal keys overwrite earlier ones.
// *arrlist.List, seq.Seqable, seq.Sequence:
//    Each element must be an Entry; they are associated in order.
// []interface{}:
//    The elements are passed to New.
// map[kT]vT:
//    Reflection is used to loop over the entries of the map.
// []T:
//    Reflection is used to convert the slice and pass it to New.
func From(value interface{}) *Map {
	switch v := value.(type) {
	case nil:
		return Empty()
	case *Map:
		return v
	case map[interface{}]interface{}:
		b := newBuilder(len(v))
		for key, val := range v {
			b.assoc(key, val)
		}
		return b.build()
	case []Entry:
		b := newBuilder(len(v))
		for _, e := range v {
			b.assoc(e.Key(), e.Value())
		}
		return b.build()
	case *arrlist.List:
		return fromSequence(v.Seq())
	case seq.Seqable:
		return fromSequence(v.Seq())
	case seq.Sequence:
		return fromSequence(v)
	case []interface{}:
		return New(v...)
	default:
		return mapFromReflection(value)
	}
}

// FromEntries builds a map from a slice of entries, keeping the first
// insertion position and last value on duplicate keys like New.
func FromEntries(entries []Entry) *Map {
	b := newBuilder(len(entries))
	for _, e := range entries {
		b.assoc(e.Key(), e.Value())
	}
	return b.build()
}

func fromSequence(coll seq.Sequence) *Map {
	b := newBuilder(0)
	for ; coll != nil; coll = coll.Next() {
		e := coll.First().(Entry)
		b.assoc(e.Key(), e.Value())
	}
	return b.build()
}

func mapFromReflection(value interface{}) *Map {
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Map:
		b := newBuilder(v.Len())
		for _, key := range v.MapKeys() {
			b.assoc(key.Interface(), v.MapIndex(key).Interface())
		}
		return b.build()
	case reflect.Slice, reflect.Array:
		sl := make([]interface{}, v.Len())
		for i := 0; i < v.Len(); i++ {
			sl[i] = v.Index(i).Interface()
		}
		return New(sl...)
	default:
		return Empty()
	}
}

// GroupBy partitions the list into a map from fn-derived group keys
// to lists of elements. Each element is appended, in original order,
// to the bucket its key selects; buckets appear in order of first
// occurrence.
func GroupBy(coll *arrlist.List, fn interface{}) *Map {
	b := newBuilder(0)
	coll.Range(func(_ int, v interface{}) {
		group := dyn.Apply(fn, v)
		h := hashkey.Of(group)
		bucket, ok := b.vals[h]
		if !ok {
			b.assoc(group, arrlist.New(v))
			return
		}
		b.assoc(group, bucket.(*arrlist.List).Append(v))
	})
	return b.build()
}

// Index builds a map with one entry per element, keyed by fn of the
// element. Later elements with structurally equal keys overwrite
// earlier ones, per the map's last-wins policy.
func Index(coll *arrlist.List, fn interface{}) *Map {
	b := newBuilder(coll.Length())
	coll.Range(func(_ int, v interface{}) {
		b.assoc(dyn.Apply(fn, v), v)
	})
	return b.build()
}

// Get returns the value associated with the key as an Option.
func (m *Map) Get(key interface{}) option.Option {
	return option.FromFind(m.Find(key))
}

// GetOrElse returns the value associated with the key, or fallback
// when the key is absent.
func (m *Map) GetOrElse(key, fallback interface{}) interface{} {
	v, ok := m.Find(key)
	if !ok {
		return fallback
	}
	return v
}

// At returns the value associated with the key. It is the unsafe
// accessor: a missing key panics with ErrKeyNotFound. Use Get or
// GetOrElse for the safe variants.
func (m *Map) At(key interface{}) interface{} {
	v, ok := m.Find(key)
	if !ok {
		panic(ErrKeyNotFound)
	}
	return v
}

// Find will return the value for a key if it exists in the map and
// whether the key exists in the map. For non-nil values, exists will
// always be true.
func (m *Map) Find(key interface{}) (value interface{}, exists bool) {
	v, ok := m.vals[hashkey.Of(key)]
	return v, ok
}

// Contains will test if the key exists in the map.
func (m *Map) Contains(key interface{}) bool {
	_, ok := m.vals[hashkey.Of(key)]
	return ok
}

// EntryAt returns the entry (key of record, value pair) for the key.
// If one is not found, nil is returned.
func (m *Map) EntryAt(key interface{}) Entry {
	h := hashkey.Of(key)
	v, ok := m.vals[h]
	if !ok {
		return nil
	}
	return entry{k: m.keys[h], v: v}
}

// Assoc associates a value with a key in a new map. When the key is
// already present the new key and value replace the old ones but the
// entry keeps its original position in iteration order.
func (m *Map) Assoc(key, value interface{}) *Map {
	b := m.toBuilder()
	b.assoc(key, value)
	return b.build()
}

// Delete removes a key and associated value from the map.
func (m *Map) Delete(key interface{}) *Map {
	h := hashkey.Of(key)
	if _, ok := m.vals[h]; !ok {
		return m
	}
	b := newBuilder(m.Length() - 1)
	for _, oh := range m.order {
		if oh == h {
			continue
		}
		b.assoc(m.keys[oh], m.vals[oh])
	}
	return b.build()
}

// WithoutKey is Delete under the name used by the bulk variants.
func (m *Map) WithoutKey(key interface{}) *Map {
	return m.Delete(key)
}

// WithoutKeys removes every key in keys, which may be anything
// sequenceable (list, slice, seq.Sequence). Keys absent from the map
// are ignored; a non-sequenceable keys argument panics.
func (m *Map) WithoutKeys(keys interface{}) *Map {
	drop := make(map[hashkey.Key]bool)
	for s := seqOf(keys); s != nil; s = s.Next() {
		drop[hashkey.Of(s.First())] = true
	}
	b := newBuilder(0)
	for _, h := range m.order {
		if drop[h] {
			continue
		}
		b.assoc(m.keys[h], m.vals[h])
	}
	return b.build()
}

// Minus is an alias for WithoutKeys.
func (m *Map) Minus(keys interface{}) *Map {
	return m.WithoutKeys(keys)
}

// GetByKeys projects the map onto the given keys, preserving the
// order of keys and silently skipping keys absent from the map.
func (m *Map) GetByKeys(keys interface{}) *Map {
	b := newBuilder(0)
	for s := seqOf(keys); s != nil; s = s.Next() {
		key := s.First()
		h := hashkey.Of(key)
		if v, ok := m.vals[h]; ok {
			b.assoc(m.keys[h], v)
		}
	}
	return b.build()
}

// Keys returns the keys of record as a list, in insertion order.
func (m *Map) Keys() *arrlist.List {
	out := make([]interface{}, 0, m.Length())
	for _, h := range m.order {
		out = append(out, m.keys[h])
	}
	return arrlist.From(out)
}

// Values returns the values as a list, in insertion order.
func (m *Map) Values() *arrlist.List {
	out := make([]interface{}, 0, m.Length())
	for _, h := range m.order {
		out = append(out, m.vals[h])
	}
	return arrlist.From(out)
}

// Entries returns the entries as a list, in insertion order.
func (m *Map) Entries() *arrlist.List {
	out := make([]interface{}, 0, m.Length())
	for _, h := range m.order {
		out = append(out, entry{k: m.keys[h], v: m.vals[h]})
	}
	return arrlist.From(out)
}

// Map applies fn(value, key) to every entry in insertion order and
// returns the list of results. Transforming values keeps the keys
// out of play on purpose; transforming keys needs MapKeys, which can
// reintroduce collisions.
func (m *Map) Map(fn interface{}) *arrlist.List {
	out := make([]interface{}, 0, m.Length())
	for _, h := range m.order {
		out = append(out, dyn.Apply(fn, m.vals[h], m.keys[h]))
	}
	return arrlist.From(out)
}

// MapKeys rekeys the map with fn(key). Keys colliding after the
// transform are resolved last-wins, like construction.
func (m *Map) MapKeys(fn interface{}) *Map {
	b := newBuilder(m.Length())
	for _, h := range m.order {
		b.assoc(dyn.Apply(fn, m.keys[h]), m.vals[h])
	}
	return b.build()
}

// Filter keeps the entries for which fn(value, key) returns true,
// preserving iteration order.
func (m *Map) Filter(fn interface{}) *Map {
	b := newBuilder(0)
	for _, h := range m.order {
		if dyn.Apply(fn, m.vals[h], m.keys[h]).(bool) {
			b.assoc(m.keys[h], m.vals[h])
		}
	}
	return b.build()
}

// FilterKeys keeps the entries whose key satisfies fn, preserving
// iteration order.
func (m *Map) FilterKeys(fn interface{}) *Map {
	b := newBuilder(0)
	for _, h := range m.order {
		if dyn.Apply(fn, m.keys[h]).(bool) {
			b.assoc(m.keys[h], m.vals[h])
		}
	}
	return b.build()
}

// Concat returns the right-biased union of the two maps: entries of
// other overwrite entries of m with structurally equal keys, while
// slots keep the position of their first insertion.
func (m *Map) Concat(other *Map) *Map {
	b := m.toBuilder()
	for _, h := range other.order {
		b.assoc(other.keys[h], other.vals[h])
	}
	return b.build()
}

// SortKeys returns the map reordered by comparing keys with the
// supplied comparator. The sort is stable. When no comparator is
// given the natural three-way comparison dyn.Compare is used.
func (m *Map) SortKeys(cmp ...func(a, b interface{}) int) *Map {
	compare := dyn.Compare
	if len(cmp) > 0 {
		compare = cmp[0]
	}
	return m.sortBy(func(i, j hashkey.Key) bool {
		return compare(m.keys[i], m.keys[j]) < 0
	})
}

// SortValues returns the map reordered by comparing values with the
// supplied comparator. The sort is stable. When no comparator is
// given the natural three-way comparison dyn.Compare is used.
func (m *Map) SortValues(cmp ...func(a, b interface{}) int) *Map {
	compare := dyn.Compare
	if len(cmp) > 0 {
		compare = cmp[0]
	}
	return m.sortBy(func(i, j hashkey.Key) bool {
		return compare(m.vals[i], m.vals[j]) < 0
	})
}

func (m *Map) sortBy(less func(i, j hashkey.Key) bool) *Map {
	order := make([]hashkey.Key, len(m.order))
	copy(order, m.order)
	sort.SliceStable(order, func(i, j int) bool {
		return less(order[i], order[j])
	})
	return &Map{order: order, keys: m.keys, vals: m.vals}
}

// Chunk partitions the entries, in order, into maps of the given
// size; the last chunk may be smaller. Chunk panics with ErrChunkSize
// if size < 1.
func (m *Map) Chunk(size int) *arrlist.List {
	if size < 1 {
		panic(ErrChunkSize)
	}
	var chunks []interface{}
	b := newBuilder(size)
	for i, h := range m.order {
		b.assoc(m.keys[h], m.vals[h])
		if (i+1)%size == 0 {
			chunks = append(chunks, b.build())
			b = newBuilder(size)
		}
	}
	if len(b.order) > 0 {
		chunks = append(chunks, b.build())
	}
	return arrlist.From(chunks)
}

// Reduce left-folds the entries in iteration order with
// fn(acc, value, key).
func (m *Map) Reduce(fn interface{}, init interface{}) interface{} {
	res := init
	for _, h := range m.order {
		res = dyn.Apply(fn, res, m.vals[h], m.keys[h])
	}
	return res
}

// Equal tests if two maps are Equal by comparing the entries of each.
// Iteration order does not participate: maps holding the same keys
// and equal values are equal however they were built. Equal
// implements the Equaler which allows for deep comparisons when there
// are maps of maps.
func (m *Map) Equal(o interface{}) bool {
	other, ok := o.(*Map)
	if !ok {
		return ok
	}
	if m.Length() != other.Length() {
		return false
	}
	for h, v := range m.vals {
		ov, ok := other.vals[h]
		if !ok || !dyn.Equal(ov, v) {
			return false
		}
	}
	return true
}

// HashKey implements hashkey.Hasher so maps can be used as map keys
// with value semantics. The token is order-independent, matching
// Equal.
func (m *Map) HashKey() hashkey.Key {
	parts := make([]hashkey.Key, 0, m.Length()*2)
	sorted := make([]hashkey.Key, len(m.order))
	copy(sorted, m.order)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].String() < sorted[j].String()
	})
	for _, h := range sorted {
		parts = append(parts, h, hashkey.Of(m.vals[h]))
	}
	return hashkey.Composite("hmap", parts...)
}

// Length returns the number of entries in the map.
func (m *Map) Length() int {
	if m == nil {
		return 0
	}
	return len(m.order)
}

// IsEmpty reports whether the map has no entries.
func (m *Map) IsEmpty() bool {
	return m.Length() == 0
}

// Range will loop over the entries in the Map and call 'do' on each
// entry in insertion order. The 'do' function may be of many types:
//
// func(key, value interface{}) bool:
//    Takes empty interfaces and returns if the loop should continue.
// func(key, value interface{}):
//    Takes empty interfaces.
// func(entry Entry) bool, func(entry Entry):
//    Take the Entry type, avoiding unpacking when not necessary.
// func(k kT, v vT) bool, func(k kT, v vT):
//    Typed variants, called with reflection; panic if the types are
//    incorrect.
// Range will panic if passed anything not matching these signatures.
func (m *Map) Range(do interface{}) {
	fn := genRangeFunc(do)
	for _, h := range m.order {
		if !fn(entry{k: m.keys[h], v: m.vals[h]}) {
			return
		}
	}
}

func genRangeFunc(do interface{}) func(Entry) bool {
	switch fn := do.(type) {
	case func(key, value interface{}) bool:
		return func(entry Entry) bool {
			return fn(entry.Key(), entry.Value())
		}
	case func(key, value interface{}):
		return func(entry Entry) bool {
			fn(entry.Key(), entry.Value())
			return true
		}
	case func(e Entry) bool:
		return fn
	case func(e Entry):
		return func(entry Entry) bool {
			fn(entry)
			return true
		}
	default:
		rv := reflect.ValueOf(do)
		if rv.Kind() != reflect.Func {
			panic(errRangeSig)
		}
		rt := rv.Type()
		if rt.NumIn() != 2 || rt.NumOut() > 1 {
			panic(errRangeSig)
		}
		if rt.NumOut() == 1 &&
			rt.Out(0).Kind() != reflect.Bool {
			panic(errRangeSig)
		}
		return func(entry Entry) bool {
			out := dyn.Apply(do, entry.Key(), entry.Value())
			if out != nil {
				return out.(bool)
			}
			return true
		}
	}
}

// Seq returns a sequence of Entry corresponding to the map's entries
// in insertion order.
func (m *Map) Seq() seq.Sequence {
	if m.Length() == 0 {
		return nil
	}
	return &mapSequence{m: m}
}

// String returns a string representation of the map.
func (m *Map) String() string {
	var b strings.Builder
	fmt.Fprint(&b, "{ ")
	m.Range(func(entry Entry) {
		fmt.Fprintf(&b, "%s ", entry)
	})
	fmt.Fprint(&b, "}")
	return b.String()
}

// Apply takes an arbitrary number of arguments and returns the value
// found at the first argument, or nil when absent. Apply allows map
// to be called as a function by the 'dyn' library.
func (m *Map) Apply(args ...interface{}) interface{} {
	v, _ := m.Find(args[0])
	return v
}

// AsNative returns the map converted to a go native map type.
// Insertion order is necessarily lost.
func (m *Map) AsNative() map[interface{}]interface{} {
	out := make(map[interface{}]interface{}, m.Length())
	m.Range(func(key, val interface{}) {
		out[key] = val
	})
	return out
}

func seqOf(keys interface{}) seq.Sequence {
	switch v := keys.(type) {
	case nil:
		return nil
	case seq.Seqable:
		return v.Seq()
	case seq.Sequence:
		return v
	default:
		switch reflect.ValueOf(keys).Kind() {
		case reflect.Slice, reflect.Array:
			return arrlist.From(keys).Seq()
		}
		panic(fmt.Errorf("cannot build a key sequence from %T: %v", keys, keys))
	}
}

// builder accumulates entries during construction. It is the only
// mutable stage a map ever has and is never visible to callers; every
// constructor finishes with build before the map escapes.
type builder struct {
	order []hashkey.Key
	keys  map[hashkey.Key]interface{}
	vals  map[hashkey.Key]interface{}
}

func newBuilder(sizeHint int) *builder {
	return &builder{
		keys: make(map[hashkey.Key]interface{}, sizeHint),
		vals: make(map[hashkey.Key]interface{}, sizeHint),
	}
}

func (m *Map) toBuilder() *builder {
	b := newBuilder(m.Length())
	b.order = append(b.order, m.order...)
	for h, k := range m.keys {
		b.keys[h] = k
	}
	for h, v := range m.vals {
		b.vals[h] = v
	}
	return b
}

// assoc is last-wins: an existing slot keeps its position but takes
// the new key of record and value.
func (b *builder) assoc(key, value interface{}) {
	h := hashkey.Of(key)
	if _, ok := b.vals[h]; !ok {
		b.order = append(b.order, h)
	}
	b.keys[h] = key
	b.vals[h] = value
}

func (b *builder) build() *Map {
	if len(b.order) == 0 {
		return Empty()
	}
	return &Map{order: b.order, keys: b.keys, vals: b.vals}
}

type entry struct {
	k, v interface{}
}

func (e entry) Key() interface{} {
	return e.k
}

func (e entry) Value() interface{} {
	return e.v
}

func (e entry) String() string {
	return fmt.Sprintf("[%v %v]", e.k, e.v)
}

func (e entry) Equal(o interface{}) bool {
	other, ok := o.(Entry)
	return ok &&
		dyn.Equal(e.k, other.Key()) &&
		dyn.Equal(e.v, other.Value())
}

type mapSequence struct {
	m   *Map
	idx int
}

func (s *mapSequence) First() interface{} {
	h := s.m.order[s.idx]
	return entry{k: s.m.keys[h], v: s.m.vals[h]}
}

func (s *mapSequence) Next() seq.Sequence {
	if s.idx+1 >= s.m.Length() {
		return nil
	}
	return &mapSequence{m: s.m, idx: s.idx + 1}
}

func (s *mapSequence) String() string {
	return seq.ConvertToString(s)
}
