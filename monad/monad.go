// Package monad implements the applicative and monadic combinators
// shared by every container in this module: Ap, Product, Lift,
// Traverse and Sequence are written once against a small structural
// protocol and reused with each container's own semantics.
//
// The protocol is the Value interface. Its methods return interface{}
// so the container packages satisfy it structurally, the same way
// collections expose Conj(elem interface{}) interface{} as a generic
// building mechanism. option.Option, result.Result, *arrlist.List and
// *lazy.Seq all implement Value.
//
// Each container brings its own zero: None and Failure short-circuit
// the whole combination, while an empty sequence yields an empty
// result. Sequences combine as the full cartesian product with the
// left side varying slower, not element-wise.
package monad // import "github.com/bonami/collections/monad"

import (
	"errors"

	"github.com/bonami/collections/arrlist"
	"github.com/bonami/collections/option"
	"github.com/bonami/collections/result"
	"jsouthworth.net/go/dyn"
	"jsouthworth.net/go/seq"
)

var errLiftArity = errors.New("Lift requires at least one container argument")

// Pair is the two-field product produced by Product and Zip. It lives
// with the eager list so the containers can use it without importing
// this package.
type Pair = arrlist.Pair

// Value is the generic applicative/monad protocol. Of lifts a plain
// value into the same container as the receiver; FMap maps a function
// (applied with dyn.Apply) over the contents; Bind maps a function
// that itself returns a container of the same variant. Returning a
// container of the wrong variant from a Bind function is a
// programming error and panics in the container.
type Value interface {
	Of(v interface{}) interface{}
	FMap(fn interface{}) interface{}
	Bind(fn func(interface{}) interface{}) interface{}
}

// Ap applies a contained function to a contained value in the same
// container: Ap(ff, fa) is ff.Bind(f => fa.FMap(a => f(a))).
func Ap(ff, fa Value) Value {
	return ff.Bind(func(f interface{}) interface{} {
		return fa.FMap(func(a interface{}) interface{} {
			return dyn.Apply(f, a)
		})
	}).(Value)
}

// Product pairs the values of two containers:
// a.Bind(x => b.FMap(y => (x, y))).
func Product(a, b Value) Value {
	return a.Bind(func(x interface{}) interface{} {
		return b.FMap(func(y interface{}) interface{} {
			return arrlist.Pair{First: x, Second: y}
		})
	}).(Value)
}

// Lift turns an ordinary function into one accepting containers and
// returning a container, built by repeated Ap starting from a pure
// curried form of fn. The function's arity is the number of
// containers supplied at the call site; calling a lifted function
// with no arguments panics.
func Lift(fn interface{}) func(args ...Value) Value {
	return func(args ...Value) Value {
		if len(args) == 0 {
			panic(errLiftArity)
		}
		acc := args[0].Of(curry(fn, len(args), nil)).(Value)
		for _, a := range args {
			acc = Ap(acc, a)
		}
		return acc
	}
}

func curry(fn interface{}, arity int, collected []interface{}) func(interface{}) interface{} {
	return func(x interface{}) interface{} {
		args := make([]interface{}, len(collected)+1)
		copy(args, collected)
		args[len(collected)] = x
		if len(args) == arity {
			return dyn.Apply(fn, args...)
		}
		return curry(fn, arity, args)
	}
}

// Traverse left-folds items, applying fn to each and combining the
// resulting containers into one container of an eager list, in order.
// proto names the container variant: any value of the right type
// works, including None or an empty list, since only its Of is used.
// items may be anything seq.Seq understands (lists, slices, maps,
// sequences).
func Traverse(proto Value, items interface{}, fn func(interface{}) Value) Value {
	acc := proto.Of(arrlist.Empty()).(Value)
	for s := seq.Seq(items); s != nil; s = s.Next() {
		c := fn(s.First())
		appender := acc.FMap(func(l interface{}) interface{} {
			list := l.(*arrlist.List)
			return func(v interface{}) interface{} {
				return list.Append(v)
			}
		}).(Value)
		acc = Ap(appender, c)
	}
	return acc
}

// Sequence flips a collection of containers into a container of an
// eager list: Sequence is Traverse with the identity function.
func Sequence(proto Value, containers interface{}) Value {
	return Traverse(proto, containers, func(v interface{}) Value {
		return v.(Value)
	})
}

// TraverseOption is Traverse specialized to Option: any None yielded
// by fn makes the whole result None.
func TraverseOption(items interface{}, fn interface{}) option.Option {
	return Traverse(option.None(), items, func(v interface{}) Value {
		return dyn.Apply(fn, v).(option.Option)
	}).(option.Option)
}

// SequenceOption flips a collection of Options into an Option of a
// list, None if any element is None.
func SequenceOption(options interface{}) option.Option {
	return Sequence(option.None(), options).(option.Option)
}

// TraverseResult is Traverse specialized to Result: the first Failure
// yielded by fn short-circuits the whole result to that Failure.
func TraverseResult(items interface{}, fn interface{}) result.Result {
	return Traverse(result.Success(nil), items, func(v interface{}) Value {
		return dyn.Apply(fn, v).(result.Result)
	}).(result.Result)
}

// SequenceResult flips a collection of Results into a Result of a
// list, keeping the first Failure encountered.
func SequenceResult(results interface{}) result.Result {
	return Sequence(result.Success(nil), results).(result.Result)
}
