// Package lazy implements a suspension-based sequence pipeline.
// Constructing a Seq or staging a combinator on one never touches the
// underlying producer; elements are produced only when a consumer
// pulls them, so pipelines may be infinite. A consumer cancels a
// pipeline simply by not pulling further, which is always safe since
// staged pipelines hold no external resources.
//
// A Seq is restartable when its producer can be run again from the
// start; each factory documents whether the sequences it builds are
// restartable. Iterating a non-restartable sequence a second time
// yields whatever the shared producer has left, usually nothing.
package lazy // import "github.com/bonami/collections/lazy"

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/bonami/collections/arrlist"
	"github.com/bonami/collections/option"
	"jsouthworth.net/go/dyn"
	"jsouthworth.net/go/seq"
)

// ErrNoElement is the panic value of Head and Last on an empty
// sequence.
var ErrNoElement = errors.New("sequence has no element")

// ErrChunkSize is the panic value of Chunk when size < 1.
var ErrChunkSize = errors.New("chunk size must be at least 1")

var errNotSeq = errors.New("Bind function must return a *Seq")

// Iterator produces the next element and whether one was produced.
// Once it returns false it returns false forever.
type Iterator func() (interface{}, bool)

// Seq is a lazily evaluated sequence of values.
type Seq struct {
	gen func() Iterator
}

// Suspend wraps a generator of iterators. Each iteration of the
// returned Seq calls gen once; the Seq is as restartable as gen is.
func Suspend(gen func() Iterator) *Seq {
	return &Seq{gen: gen}
}

// New returns a restartable sequence over the given elements.
func New(elems ...interface{}) *Seq {
	return Suspend(func() Iterator {
		i := 0
		return func() (interface{}, bool) {
			if i >= len(elems) {
				return nil, false
			}
			v := elems[i]
			i++
			return v, true
		}
	})
}

// From converts many go types to a lazy sequence. Sequences built
// from immutable inputs (*Seq, *arrlist.List, seq.Seqable,
// seq.Sequence, slices) are restartable.
func From(value interface{}) *Seq {
	switch v := value.(type) {
	case nil:
		return New()
	case *Seq:
		return v
	case *arrlist.List:
		return Suspend(func() Iterator {
			i := 0
			return func() (interface{}, bool) {
				if i >= v.Length() {
					return nil, false
				}
				e := v.At(i)
				i++
				return e, true
			}
		})
	case []interface{}:
		return New(v...)
	case seq.Seqable:
		return fromSequence(v.Seq)
	case seq.Sequence:
		return fromSequence(func() seq.Sequence { return v })
	default:
		rv := reflect.ValueOf(value)
		switch rv.Kind() {
		case reflect.Slice, reflect.Array:
			return From(arrlist.From(value))
		}
		panic(fmt.Errorf("cannot build a sequence from %T: %v", value, value))
	}
}

func fromSequence(root func() seq.Sequence) *Seq {
	return Suspend(func() Iterator {
		s := root()
		return func() (interface{}, bool) {
			if s == nil {
				return nil, false
			}
			v := s.First()
			s = s.Next()
			return v, true
		}
	})
}

// FromIterator wraps an already-running producer. The resulting
// sequence is single-pass: every iteration shares it, so a second
// iteration yields only what the first left unconsumed.
func FromIterator(it Iterator) *Seq {
	return Suspend(func() Iterator { return it })
}

// Range returns a restartable sequence of integers from start
// (inclusive) to end (exclusive).
func Range(start, end int) *Seq {
	return RangeBy(start, end, 1)
}

// RangeBy is Range with an explicit step. A zero or backwards step
// yields an empty sequence.
func RangeBy(start, end, step int) *Seq {
	return Suspend(func() Iterator {
		i := start
		return func() (interface{}, bool) {
			if step <= 0 || i >= end {
				return nil, false
			}
			v := i
			i += step
			return v, true
		}
	})
}

// Fill returns a restartable sequence of n copies of v.
func Fill(n int, v interface{}) *Seq {
	return Suspend(func() Iterator {
		i := 0
		return func() (interface{}, bool) {
			if i >= n {
				return nil, false
			}
			i++
			return v, true
		}
	})
}

// Repeat returns an infinite restartable sequence of v.
func Repeat(v interface{}) *Seq {
	return Suspend(func() Iterator {
		return func() (interface{}, bool) { return v, true }
	})
}

// Iterate returns the infinite restartable sequence v, fn(v),
// fn(fn(v)), ...
func Iterate(v interface{}, fn interface{}) *Seq {
	return Suspend(func() Iterator {
		next := v
		return func() (interface{}, bool) {
			out := next
			next = dyn.Apply(fn, next)
			return out, true
		}
	})
}

// Iterator starts one iteration of the sequence and returns its
// producer.
func (s *Seq) Iterator() Iterator {
	return s.gen()
}

// Map stages fn over the sequence. fn is applied with dyn.Apply when
// elements are pulled, never at staging time.
func (s *Seq) Map(fn interface{}) *Seq {
	return Suspend(func() Iterator {
		it := s.gen()
		return func() (interface{}, bool) {
			v, ok := it()
			if !ok {
				return nil, false
			}
			return dyn.Apply(fn, v), true
		}
	})
}

// Filter stages a predicate over the sequence.
func (s *Seq) Filter(pred interface{}) *Seq {
	return Suspend(func() Iterator {
		it := s.gen()
		return func() (interface{}, bool) {
			for {
				v, ok := it()
				if !ok {
					return nil, false
				}
				if dyn.Apply(pred, v).(bool) {
					return v, true
				}
			}
		}
	})
}

// FlatMap stages fn over the sequence and flattens each result into
// the output. Every result must be sequenceable (a *Seq, a
// *arrlist.List, a slice, a seq.Seqable or a seq.Sequence); pulling a
// non-sequenceable result panics identifying the offending element.
func (s *Seq) FlatMap(fn interface{}) *Seq {
	return Suspend(func() Iterator {
		it := s.gen()
		var cur Iterator
		return func() (interface{}, bool) {
			for {
				if cur != nil {
					v, ok := cur()
					if ok {
						return v, true
					}
					cur = nil
				}
				v, ok := it()
				if !ok {
					return nil, false
				}
				cur = From(dyn.Apply(fn, v)).gen()
			}
		}
	})
}

// Flatten expects every element to itself be sequenceable and stages
// their concatenation, panicking identifying the offending element
// when one is not.
func (s *Seq) Flatten() *Seq {
	return s.FlatMap(func(v interface{}) interface{} { return v })
}

// Zip pairs this sequence with other, stopping silently at the
// shorter of the two.
func (s *Seq) Zip(other *Seq) *Seq {
	return Suspend(func() Iterator {
		left := s.gen()
		right := other.gen()
		return func() (interface{}, bool) {
			a, ok := left()
			if !ok {
				return nil, false
			}
			b, ok := right()
			if !ok {
				return nil, false
			}
			return arrlist.Pair{First: a, Second: b}, true
		}
	})
}

// Scan stages a prefix reduction: each input element produces one
// output, the accumulator after folding that element in. The output
// has the same cardinality as the input.
func (s *Seq) Scan(fn interface{}, init interface{}) *Seq {
	return Suspend(func() Iterator {
		it := s.gen()
		acc := init
		return func() (interface{}, bool) {
			v, ok := it()
			if !ok {
				return nil, false
			}
			acc = dyn.Apply(fn, acc, v)
			return acc, true
		}
	})
}

// Take stages truncation to the first n elements.
func (s *Seq) Take(n int) *Seq {
	return Suspend(func() Iterator {
		it := s.gen()
		remaining := n
		return func() (interface{}, bool) {
			if remaining <= 0 {
				return nil, false
			}
			remaining--
			return it()
		}
	})
}

// TakeWhile stages truncation at the first element for which pred
// returns false.
func (s *Seq) TakeWhile(pred interface{}) *Seq {
	return Suspend(func() Iterator {
		it := s.gen()
		done := false
		return func() (interface{}, bool) {
			if done {
				return nil, false
			}
			v, ok := it()
			if !ok || !dyn.Apply(pred, v).(bool) {
				done = true
				return nil, false
			}
			return v, true
		}
	})
}

// Drop stages skipping the first n elements.
func (s *Seq) Drop(n int) *Seq {
	return Suspend(func() Iterator {
		it := s.gen()
		dropped := false
		return func() (interface{}, bool) {
			if !dropped {
				dropped = true
				for i := 0; i < n; i++ {
					if _, ok := it(); !ok {
						return nil, false
					}
				}
			}
			return it()
		}
	})
}

// DropWhile stages skipping the longest prefix of elements for which
// pred returns true.
func (s *Seq) DropWhile(pred interface{}) *Seq {
	return Suspend(func() Iterator {
		it := s.gen()
		dropping := true
		return func() (interface{}, bool) {
			for {
				v, ok := it()
				if !ok {
					return nil, false
				}
				if dropping && dyn.Apply(pred, v).(bool) {
					continue
				}
				dropping = false
				return v, true
			}
		}
	})
}

// Chunk stages partitioning into eager lists of the given size; the
// last chunk may be smaller. Each chunk is materialized when pulled
// but the chunk stream itself stays lazy. Chunk panics with
// ErrChunkSize if size < 1.
func (s *Seq) Chunk(size int) *Seq {
	if size < 1 {
		panic(ErrChunkSize)
	}
	return Suspend(func() Iterator {
		it := s.gen()
		return func() (interface{}, bool) {
			chunk := make([]interface{}, 0, size)
			for len(chunk) < size {
				v, ok := it()
				if !ok {
					break
				}
				chunk = append(chunk, v)
			}
			if len(chunk) == 0 {
				return nil, false
			}
			return arrlist.New(chunk...), true
		}
	})
}

// Concat stages this sequence followed by other.
func (s *Seq) Concat(other *Seq) *Seq {
	return Suspend(func() Iterator {
		it := s.gen()
		var rest Iterator
		return func() (interface{}, bool) {
			if rest == nil {
				v, ok := it()
				if ok {
					return v, true
				}
				rest = other.gen()
			}
			return rest()
		}
	})
}

// Append stages a single element after the sequence.
func (s *Seq) Append(v interface{}) *Seq {
	return s.Concat(New(v))
}

// Head pulls at most one element and returns it, panicking with
// ErrNoElement on an empty sequence. Head is cheap even on infinite
// sequences.
func (s *Seq) Head() interface{} {
	v, ok := s.gen()()
	if !ok {
		panic(ErrNoElement)
	}
	return v
}

// HeadOption pulls at most one element. It is the Option-returning
// variant of Head.
func (s *Seq) HeadOption() option.Option {
	return option.FromFind(s.gen()())
}

// Last consumes the whole sequence and returns the final element,
// panicking with ErrNoElement when there is none. Last does not
// terminate on an infinite sequence.
func (s *Seq) Last() interface{} {
	v := s.LastOption()
	if v.IsEmpty() {
		panic(ErrNoElement)
	}
	return v.GetUnsafe()
}

// LastOption consumes the whole sequence. It does not terminate on an
// infinite sequence.
func (s *Seq) LastOption() option.Option {
	it := s.gen()
	out := option.None()
	for {
		v, ok := it()
		if !ok {
			return out
		}
		out = option.Some(v)
	}
}

// Reduce left-folds the sequence, consuming it entirely.
func (s *Seq) Reduce(fn interface{}, init interface{}) interface{} {
	it := s.gen()
	res := init
	for {
		v, ok := it()
		if !ok {
			return res
		}
		res = dyn.Apply(fn, res, v)
	}
}

// ToList materializes the sequence into an eager list, consuming it
// entirely.
func (s *Seq) ToList() *arrlist.List {
	return arrlist.From(s.Seq())
}

// AsNative materializes the sequence into a go native slice.
func (s *Seq) AsNative() []interface{} {
	return s.ToList().AsNative()
}

// Seq returns a seq.Sequence view of one iteration. Building the view
// pulls the first element; the remaining pulls happen as the view is
// walked.
func (s *Seq) Seq() seq.Sequence {
	return sequenceFromIterator(s.gen())
}

// Of, FMap and Bind implement the generic applicative protocol used
// by the monad package. Bind concatenates lazily, so the derived
// ap/product compute the full cartesian combination with the left
// side varying slower; an empty sequence is the zero element.

func (s *Seq) Of(v interface{}) interface{} {
	return New(v)
}

func (s *Seq) FMap(fn interface{}) interface{} {
	return s.Map(fn)
}

func (s *Seq) Bind(fn func(interface{}) interface{}) interface{} {
	return s.FlatMap(func(v interface{}) interface{} {
		out, ok := fn(v).(*Seq)
		if !ok {
			panic(errNotSeq)
		}
		return out
	})
}

type lazySequence struct {
	first interface{}
	it    Iterator
	next  seq.Sequence
	done  bool
}

func sequenceFromIterator(it Iterator) seq.Sequence {
	v, ok := it()
	if !ok {
		return nil
	}
	return &lazySequence{first: v, it: it}
}

func (s *lazySequence) First() interface{} {
	return s.first
}

func (s *lazySequence) Next() seq.Sequence {
	if !s.done {
		s.next = sequenceFromIterator(s.it)
		s.done = true
	}
	return s.next
}

func (s *lazySequence) String() string {
	return seq.ConvertToString(s)
}
