// Package arrlist implements an immutable, materialized ordered
// sequence indexable by integer offset. Operations return modified
// copies of the original list; the original is never changed.
package arrlist // import "github.com/bonami/collections/arrlist"

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/bonami/collections/hashkey"
	"github.com/bonami/collections/option"
	"jsouthworth.net/go/dyn"
	"jsouthworth.net/go/seq"
)

// ErrOutOfBounds is the panic value of unsafe positional access
// outside the list.
var ErrOutOfBounds = errors.New("out of bounds")

// ErrChunkSize is the panic value of Chunk when size < 1.
var ErrChunkSize = errors.New("chunk size must be at least 1")

var errRangeSig = errors.New("Range requires a function: func(v vT) bool or func(v vT)")
var errNotList = errors.New("Bind function must return a *List")

var empty = List{}

// List is an immutable materialized sequence. Two lists are equal iff
// they have the same length and pairwise equal elements in order.
type List struct {
	items []interface{}
}

// Empty returns the empty list.
func Empty() *List {
	return &empty
}

// New converts a list of elements to an immutable list.
func New(elems ...interface{}) *List {
	if len(elems) == 0 {
		return Empty()
	}
	items := make([]interface{}, len(elems))
	copy(items, elems)
	return &List{items: items}
}

// From will convert many go types to an immutable list.
//
// *List:
//    Returned directly as it is already immutable.
// []interface{}:
//    New is called with the elements.
// seq.Seqable:
//    Seq is called on the value and the list is built from the resulting sequence.
// seq.Sequence:
//    The list is built from the sequence. Care should be taken to provide finite sequences or the list will grow without bound.
// []T:
//    The slice is converted to a list using reflection.
func From(value interface{}) *List {
	switch v := value.(type) {
	case nil:
		return Empty()
	case *List:
		return v
	case []interface{}:
		return New(v...)
	case seq.Seqable:
		return listFromSequence(v.Seq())
	case seq.Sequence:
		return listFromSequence(v)
	default:
		return listFromReflection(value)
	}
}

func listFromSequence(coll seq.Sequence) *List {
	var items []interface{}
	for ; coll != nil; coll = coll.Next() {
		items = append(items, coll.First())
	}
	if items == nil {
		return Empty()
	}
	return &List{items: items}
}

func listFromReflection(value interface{}) *List {
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Slice, reflect.Array:
		items := make([]interface{}, v.Len())
		for i := 0; i < v.Len(); i++ {
			items[i] = v.Index(i).Interface()
		}
		return &List{items: items}
	default:
		return Empty()
	}
}

// At returns the element at the supplied index. It will panic with
// ErrOutOfBounds if the index is outside the list.
func (l *List) At(i int) interface{} {
	if i < 0 || i >= l.Length() {
		panic(ErrOutOfBounds)
	}
	return l.items[i]
}

// Find returns the value at the supplied index and if that index was
// in bounds for the list. Out of bounds access does not panic but
// returns (nil, false). idx must be an int.
func (l *List) Find(idx interface{}) (interface{}, bool) {
	i := idx.(int)
	if i < 0 || i >= l.Length() {
		return nil, false
	}
	return l.items[i], true
}

// Get is the Option-returning variant of At.
func (l *List) Get(i int) option.Option {
	return option.FromFind(l.Find(i))
}

// Head returns the first element, panicking with ErrOutOfBounds on an
// empty list.
func (l *List) Head() interface{} {
	return l.At(0)
}

// HeadOption returns the first element, or None on an empty list.
func (l *List) HeadOption() option.Option {
	return l.Get(0)
}

// Last returns the final element, panicking with ErrOutOfBounds on an
// empty list.
func (l *List) Last() interface{} {
	return l.At(l.Length() - 1)
}

// LastOption returns the final element, or None on an empty list.
func (l *List) LastOption() option.Option {
	return l.Get(l.Length() - 1)
}

// Append will extend the list with the value as the new last element,
// returning a new list.
func (l *List) Append(value interface{}) *List {
	if l == nil {
		return New(value)
	}
	items := make([]interface{}, l.Length()+1)
	copy(items, l.items)
	items[l.Length()] = value
	return &List{items: items}
}

// Conj will extend the list with the value as the new last element.
// Conj implements a generic mechanism for building collections.
func (l *List) Conj(elem interface{}) interface{} {
	return l.Append(elem)
}

// Concat returns a list holding the elements of l followed by the
// elements of other.
func (l *List) Concat(other *List) *List {
	if other.Length() == 0 {
		return l
	}
	if l.Length() == 0 {
		return other
	}
	items := make([]interface{}, 0, l.Length()+other.Length())
	items = append(items, l.items...)
	items = append(items, other.items...)
	return &List{items: items}
}

// Map applies fn to every element in order and returns the list of
// results. fn is applied with dyn.Apply so typed functions work.
func (l *List) Map(fn interface{}) *List {
	if l.Length() == 0 {
		return Empty()
	}
	items := make([]interface{}, l.Length())
	for i, v := range l.items {
		items[i] = dyn.Apply(fn, v)
	}
	return &List{items: items}
}

// FlatMap applies fn to every element and concatenates the results in
// order. Every result must be sequenceable (a *List, a slice, a
// seq.Seqable or a seq.Sequence); FlatMap panics identifying the
// offending element otherwise.
func (l *List) FlatMap(fn interface{}) *List {
	var items []interface{}
	for _, v := range l.items {
		items = append(items, expand(dyn.Apply(fn, v))...)
	}
	if items == nil {
		return Empty()
	}
	return &List{items: items}
}

// Flatten expects every element to itself be sequenceable and
// concatenates them, panicking identifying the offending element if
// one is not.
func (l *List) Flatten() *List {
	var items []interface{}
	for _, v := range l.items {
		items = append(items, expand(v)...)
	}
	if items == nil {
		return Empty()
	}
	return &List{items: items}
}

func expand(v interface{}) []interface{} {
	switch e := v.(type) {
	case *List:
		return e.items
	case []interface{}:
		return e
	case seq.Seqable:
		return From(e.Seq()).items
	case seq.Sequence:
		return listFromSequence(e).items
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		return listFromReflection(v).items
	}
	panic(fmt.Errorf("cannot flatten element of type %T: %v", v, v))
}

// Filter returns the elements for which pred returns true, in order.
func (l *List) Filter(pred interface{}) *List {
	var items []interface{}
	for _, v := range l.items {
		if dyn.Apply(pred, v).(bool) {
			items = append(items, v)
		}
	}
	if items == nil {
		return Empty()
	}
	return &List{items: items}
}

// Take returns the first n elements, or the whole list when it is
// shorter than n.
func (l *List) Take(n int) *List {
	if n <= 0 {
		return Empty()
	}
	if n >= l.Length() {
		return l
	}
	return New(l.items[:n]...)
}

// Drop returns the list without its first n elements.
func (l *List) Drop(n int) *List {
	if n <= 0 {
		return l
	}
	if n >= l.Length() {
		return Empty()
	}
	return New(l.items[n:]...)
}

// TakeWhile returns the longest prefix of elements for which pred
// returns true.
func (l *List) TakeWhile(pred interface{}) *List {
	for i, v := range l.items {
		if !dyn.Apply(pred, v).(bool) {
			return l.Take(i)
		}
	}
	return l
}

// DropWhile returns the list without the longest prefix of elements
// for which pred returns true.
func (l *List) DropWhile(pred interface{}) *List {
	for i, v := range l.items {
		if !dyn.Apply(pred, v).(bool) {
			return l.Drop(i)
		}
	}
	return Empty()
}

// Reverse returns the list in reverse order.
func (l *List) Reverse() *List {
	n := l.Length()
	if n < 2 {
		return l
	}
	items := make([]interface{}, n)
	for i, v := range l.items {
		items[n-1-i] = v
	}
	return &List{items: items}
}

// Sort returns the list sorted by the supplied comparator. The sort
// is stable. When no comparator is given the natural three-way
// comparison dyn.Compare is used.
func (l *List) Sort(cmp ...func(a, b interface{}) int) *List {
	if l.Length() < 2 {
		return l
	}
	compare := dyn.Compare
	if len(cmp) > 0 {
		compare = cmp[0]
	}
	items := make([]interface{}, l.Length())
	copy(items, l.items)
	sort.SliceStable(items, func(i, j int) bool {
		return compare(items[i], items[j]) < 0
	})
	return &List{items: items}
}

// Chunk partitions the list, in order, into lists of the given size;
// the last chunk may be smaller. Chunk panics with ErrChunkSize if
// size < 1.
func (l *List) Chunk(size int) *List {
	if size < 1 {
		panic(ErrChunkSize)
	}
	if l.Length() == 0 {
		return Empty()
	}
	var chunks []interface{}
	for i := 0; i < l.Length(); i += size {
		end := i + size
		if end > l.Length() {
			end = l.Length()
		}
		chunks = append(chunks, New(l.items[i:end]...))
	}
	return &List{items: chunks}
}

// Unique removes structurally-equal duplicates. The earliest
// occurrence keeps its position but carries the value of the latest
// structurally-equal occurrence, mirroring the map's last-wins policy.
func (l *List) Unique() *List {
	return l.UniqueBy(func(v interface{}) interface{} { return v })
}

// UniqueBy removes elements whose fn-derived keys are structurally
// equal, with the same position and value rules as Unique.
func (l *List) UniqueBy(fn interface{}) *List {
	if l.Length() < 2 {
		return l
	}
	slots := make(map[hashkey.Key]int, l.Length())
	var items []interface{}
	for _, v := range l.items {
		k := hashkey.Of(dyn.Apply(fn, v))
		if at, ok := slots[k]; ok {
			items[at] = v
			continue
		}
		slots[k] = len(items)
		items = append(items, v)
	}
	return &List{items: items}
}

// Reduce left-folds the list in order. fn is applied with dyn.Apply
// so typed functions work.
func (l *List) Reduce(fn interface{}, init interface{}) interface{} {
	res := init
	for _, v := range l.items {
		res = dyn.Apply(fn, res, v)
	}
	return res
}

// Range calls the passed in function on each element of the list.
// The function passed in may be of many types:
//
// func(index int, value interface{}) bool:
//    Takes the index and a value of any type and returns if the loop should continue.
// func(index int, value interface{}):
//    Takes the index and a value of any type.
// func(index int, value T) bool, func(index int, value T):
//    Typed variants, called with reflection; panic if T is incorrect.
// Range will panic if passed anything that doesn't match one of these
// signatures.
func (l *List) Range(do interface{}) {
	cont := true
	fn := genRangeFunc(do)
	for i := 0; i < l.Length() && cont; i++ {
		cont = fn(i, l.items[i])
	}
}

func genRangeFunc(do interface{}) func(int, interface{}) bool {
	switch fn := do.(type) {
	case func(idx int, value interface{}) bool:
		return fn
	case func(idx int, value interface{}):
		return func(idx int, value interface{}) bool {
			fn(idx, value)
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
		return func(idx int, value interface{}) bool {
			out := dyn.Apply(do, idx, value)
			if out != nil {
				return out.(bool)
			}
			return true
		}
	}
}

// Length returns the number of elements in the list.
func (l *List) Length() int {
	if l == nil {
		return 0
	}
	return len(l.items)
}

// IsEmpty reports whether the list has no elements.
func (l *List) IsEmpty() bool {
	return l.Length() == 0
}

// Equal compares each value of the list to determine if the list is
// equal to the one passed in.
func (l *List) Equal(o interface{}) bool {
	other, ok := o.(*List)
	if !ok {
		return false
	}
	if l.Length() != other.Length() {
		return false
	}
	for i, v := range l.items {
		if !dyn.Equal(other.items[i], v) {
			return false
		}
	}
	return true
}

// HashKey implements hashkey.Hasher so lists can be used as map keys
// with value semantics.
func (l *List) HashKey() hashkey.Key {
	parts := make([]hashkey.Key, l.Length())
	for i, v := range l.items {
		parts[i] = hashkey.Of(v)
	}
	return hashkey.Composite("list", parts...)
}

// AsNative will return a go native slice of the values contained
// within.
func (l *List) AsNative() []interface{} {
	out := make([]interface{}, l.Length())
	copy(out, l.items)
	return out
}

// Seq returns a seq.Sequence that will traverse the list.
func (l *List) Seq() seq.Sequence {
	if l.Length() == 0 {
		return nil
	}
	return &listSequence{list: l}
}

// String converts the list to a string representation.
func (l *List) String() string {
	var b strings.Builder
	fmt.Fprint(&b, "[ ")
	for _, v := range l.items {
		fmt.Fprintf(&b, "%v ", v)
	}
	fmt.Fprint(&b, "]")
	return b.String()
}

// Apply takes an arbitrary number of arguments and returns the value
// At the first argument. Apply allows list to be called as a function
// by the 'dyn' library.
func (l *List) Apply(args ...interface{}) interface{} {
	idx := args[0].(int)
	return l.At(idx)
}

// Of, FMap and Bind implement the generic applicative protocol used
// by the monad package. Bind concatenates, so the derived ap/product
// compute the full cartesian combination with the left side varying
// slower; an empty list is the zero element.

func (l *List) Of(v interface{}) interface{} {
	return New(v)
}

func (l *List) FMap(fn interface{}) interface{} {
	return l.Map(fn)
}

func (l *List) Bind(fn func(interface{}) interface{}) interface{} {
	var items []interface{}
	for _, v := range l.items {
		out, ok := fn(v).(*List)
		if !ok {
			panic(errNotList)
		}
		items = append(items, out.items...)
	}
	if items == nil {
		return Empty()
	}
	return &List{items: items}
}

type listSequence struct {
	list *List
	idx  int
}

func (s *listSequence) First() interface{} {
	return s.list.items[s.idx]
}

func (s *listSequence) Next() seq.Sequence {
	if s.idx+1 >= s.list.Length() {
		return nil
	}
	return &listSequence{list: s.list, idx: s.idx + 1}
}

func (s *listSequence) String() string {
	return seq.ConvertToString(s)
}
