// Package result provides a fallible computation value. A Result is
// either a Success holding a value or a Failure holding an error.
//
// The defining guarantee is that constructing or transforming a Result
// never lets a panic escape its own boundary: FromCallable, Map,
// FlatMap and the Recover family absorb panics raised by the supplied
// function and re-express them as Failure.
package result // import "github.com/bonami/collections/result"

import (
	"errors"
	"fmt"

	"github.com/bonami/collections/arrlist"
	"github.com/bonami/collections/hashkey"
	"github.com/bonami/collections/option"
	multierror "github.com/hashicorp/go-multierror"
	"jsouthworth.net/go/dyn"
)

var errUnknownFailure = errors.New("unknown failure")
var errNotResult = errors.New("FlatMap function must return a Result")

// Result holds the outcome of a computation that can fail. The zero
// value is Success(nil).
type Result struct {
	value interface{}
	err   error
}

// Success returns a successful Result holding v.
func Success(v interface{}) Result {
	return Result{value: v}
}

// Failure returns a failed Result. A nil err is normalized so a
// Failure is always distinguishable from a Success.
func Failure(err error) Result {
	if err == nil {
		err = errUnknownFailure
	}
	return Result{err: err}
}

// FromCallable applies fn to args and captures the outcome. A panic
// raised by fn becomes a Failure; otherwise the returned value is
// wrapped in a Success. fn is applied with dyn.Apply so typed
// functions work.
func FromCallable(fn interface{}, args ...interface{}) Result {
	v, err := protect(func() interface{} {
		return dyn.Apply(fn, args...)
	})
	if err != nil {
		return Failure(err)
	}
	return Success(v)
}

// FromOption converts an Option into a Result, supplying err as the
// failure for None.
func FromOption(o option.Option, err error) Result {
	if o.IsEmpty() {
		return Failure(err)
	}
	return Success(o.GetUnsafe())
}

// IsSuccess reports whether the Result holds a value.
func (r Result) IsSuccess() bool {
	return r.err == nil
}

// IsFailure reports whether the Result holds an error.
func (r Result) IsFailure() bool {
	return r.err != nil
}

// Map applies fn to the held value. Mapping a Failure is identity. A
// panic raised by fn becomes a Failure rather than propagating.
func (r Result) Map(fn interface{}) Result {
	if r.err != nil {
		return r
	}
	v, err := protect(func() interface{} {
		return dyn.Apply(fn, r.value)
	})
	if err != nil {
		return Failure(err)
	}
	return Success(v)
}

// FlatMap applies fn, which must return a Result, to the held value.
// A panic raised inside fn becomes a Failure; fn returning anything
// but a Result is a programming error and panics.
func (r Result) FlatMap(fn interface{}) Result {
	if r.err != nil {
		return r
	}
	v, err := protect(func() interface{} {
		return dyn.Apply(fn, r.value)
	})
	if err != nil {
		return Failure(err)
	}
	out, ok := v.(Result)
	if !ok {
		panic(errNotResult)
	}
	return out
}

// Recover turns a Failure into a Success by applying fn to the error.
// If fn itself panics, the outcome is a Failure holding the new
// error. Recovering a Success is identity.
func (r Result) Recover(fn interface{}) Result {
	if r.err == nil {
		return r
	}
	v, err := protect(func() interface{} {
		return dyn.Apply(fn, r.err)
	})
	if err != nil {
		return Failure(err)
	}
	return Success(v)
}

// RecoverIf applies Recover only when pred matches the error;
// otherwise the original Failure passes through unchanged.
func (r Result) RecoverIf(pred interface{}, fn interface{}) Result {
	if r.err == nil || !dyn.Apply(pred, r.err).(bool) {
		return r
	}
	return r.Recover(fn)
}

// RecoverWithIf is RecoverIf for recovery functions that themselves
// return a Result.
func (r Result) RecoverWithIf(pred interface{}, fn interface{}) Result {
	if r.err == nil || !dyn.Apply(pred, r.err).(bool) {
		return r
	}
	v, err := protect(func() interface{} {
		return dyn.Apply(fn, r.err)
	})
	if err != nil {
		return Failure(err)
	}
	out, ok := v.(Result)
	if !ok {
		panic(errNotResult)
	}
	return out
}

// GetOrElse returns the held value, or fallback on Failure.
func (r Result) GetOrElse(fallback interface{}) interface{} {
	if r.err != nil {
		return fallback
	}
	return r.value
}

// GetUnsafe returns the held value and panics with the contained
// error on Failure. It is the explicit unsafe exit; combinators never
// raise it.
func (r Result) GetUnsafe() interface{} {
	if r.err != nil {
		panic(r.err)
	}
	return r.value
}

// Error returns the contained error as an Option.
func (r Result) Error() option.Option {
	if r.err == nil {
		return option.None()
	}
	return option.Some(r.err)
}

// ToOption discards the error, mapping Failure to None.
func (r Result) ToOption() option.Option {
	if r.err != nil {
		return option.None()
	}
	return option.Some(r.value)
}

// CombineAll gathers every Result. If all succeed it returns a
// Success holding the list of values in order; otherwise it returns a
// single Failure aggregating every error encountered. Unlike
// monad.Sequence it does not short-circuit on the first Failure.
func CombineAll(results ...Result) Result {
	var merr *multierror.Error
	values := make([]interface{}, 0, len(results))
	for _, r := range results {
		if r.err != nil {
			merr = multierror.Append(merr, r.err)
			continue
		}
		values = append(values, r.value)
	}
	if err := merr.ErrorOrNil(); err != nil {
		return Failure(err)
	}
	return Success(arrlist.From(values))
}

// Equal tests two Results for structural equality. Successes compare
// values via dyn.Equal; Failures compare by error message.
func (r Result) Equal(other interface{}) bool {
	v, ok := other.(Result)
	if !ok {
		return false
	}
	if (r.err == nil) != (v.err == nil) {
		return false
	}
	if r.err != nil {
		return r.err == v.err || r.err.Error() == v.err.Error()
	}
	return dyn.Equal(r.value, v.value)
}

// HashKey implements hashkey.Hasher so Results can be used as map
// keys with value semantics.
func (r Result) HashKey() hashkey.Key {
	if r.err != nil {
		return hashkey.Composite("failure", hashkey.Of(r.err.Error()))
	}
	return hashkey.Composite("success", hashkey.Of(r.value))
}

func (r Result) String() string {
	if r.err != nil {
		return fmt.Sprintf("Failure(%v)", r.err)
	}
	return fmt.Sprintf("Success(%v)", r.value)
}

// Of, FMap and Bind implement the generic applicative protocol used
// by the monad package.

func (r Result) Of(v interface{}) interface{} {
	return Success(v)
}

func (r Result) FMap(fn interface{}) interface{} {
	return r.Map(fn)
}

func (r Result) Bind(fn func(interface{}) interface{}) interface{} {
	if r.err != nil {
		return r
	}
	v, err := protect(func() interface{} {
		return fn(r.value)
	})
	if err != nil {
		return Failure(err)
	}
	out, ok := v.(Result)
	if !ok {
		panic(errNotResult)
	}
	return out
}

func protect(f func() interface{}) (v interface{}, err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = e
				return
			}
			err = fmt.Errorf("%v", r)
		}
	}()
	return f(), nil
}
