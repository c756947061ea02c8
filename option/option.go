// Package option provides an immutable optional value. An Option is
// either present (Some) or absent (None); the zero value is None.
package option // import "github.com/bonami/collections/option"

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/bonami/collections/hashkey"
	"jsouthworth.net/go/dyn"
)

// ErrValueNotPresent is the panic value of GetUnsafe on None.
var ErrValueNotPresent = errors.New("value is not present")

var errNotOption = errors.New("FlatMap function must return an Option")

var noneKey = hashkey.Composite("none")

// Option holds either a single value or nothing. Operations on an
// Option return derived Options and never modify the receiver.
type Option struct {
	value   interface{}
	present bool
}

// Some returns a present Option holding v. Some(nil) is a present
// Option whose value is nil; use FromNilable to map nil to None.
func Some(v interface{}) Option {
	return Option{value: v, present: true}
}

// None returns the absent Option.
func None() Option {
	return Option{}
}

// FromFind adapts Go's comma-ok convention. FromFind(m.Find(k))
// yields Some of the found value or None.
func FromFind(v interface{}, ok bool) Option {
	if !ok {
		return None()
	}
	return Some(v)
}

// FromNilable returns None when v is nil (including typed nil
// pointers) and Some(v) otherwise.
func FromNilable(v interface{}) Option {
	if v == nil {
		return None()
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.Interface:
		if rv.IsNil() {
			return None()
		}
	}
	return Some(v)
}

// IsDefined reports whether the Option holds a value.
func (o Option) IsDefined() bool {
	return o.present
}

// IsEmpty reports whether the Option is None.
func (o Option) IsEmpty() bool {
	return !o.present
}

// Map applies fn to the held value. Mapping None is None. fn is
// applied with dyn.Apply so typed functions work.
func (o Option) Map(fn interface{}) Option {
	if !o.present {
		return o
	}
	return Some(dyn.Apply(fn, o.value))
}

// Filter keeps the value only if pred returns true for it.
func (o Option) Filter(pred interface{}) Option {
	if !o.present {
		return o
	}
	if dyn.Apply(pred, o.value).(bool) {
		return o
	}
	return None()
}

// FlatMap applies fn, which must return an Option, to the held value.
// FlatMap on None is None. A fn returning anything but an Option is a
// programming error and panics.
func (o Option) FlatMap(fn interface{}) Option {
	if !o.present {
		return o
	}
	out, ok := dyn.Apply(fn, o.value).(Option)
	if !ok {
		panic(errNotOption)
	}
	return out
}

// GetOrElse returns the held value, or fallback on None.
func (o Option) GetOrElse(fallback interface{}) interface{} {
	if !o.present {
		return fallback
	}
	return o.value
}

// OrElse returns the Option itself when present, otherwise other.
func (o Option) OrElse(other Option) Option {
	if o.present {
		return o
	}
	return other
}

// GetUnsafe returns the held value and panics with ErrValueNotPresent
// on None. It is the explicit unsafe exit; combinators never raise it.
func (o Option) GetUnsafe() interface{} {
	if !o.present {
		panic(ErrValueNotPresent)
	}
	return o.value
}

// Equal tests two Options for structural equality. None equals only
// None; present values compare via dyn.Equal.
func (o Option) Equal(other interface{}) bool {
	v, ok := other.(Option)
	if !ok {
		return false
	}
	if o.present != v.present {
		return false
	}
	return !o.present || dyn.Equal(o.value, v.value)
}

// HashKey implements hashkey.Hasher so Options can be used as map
// keys with value semantics.
func (o Option) HashKey() hashkey.Key {
	if !o.present {
		return noneKey
	}
	return hashkey.Composite("some", hashkey.Of(o.value))
}

func (o Option) String() string {
	if !o.present {
		return "None"
	}
	return fmt.Sprintf("Some(%v)", o.value)
}

// Of, FMap and Bind implement the generic applicative protocol used
// by the monad package. They mirror Some, Map and FlatMap but return
// interface{} so any container can be driven through one interface.

func (o Option) Of(v interface{}) interface{} {
	return Some(v)
}

func (o Option) FMap(fn interface{}) interface{} {
	return o.Map(fn)
}

func (o Option) Bind(fn func(interface{}) interface{}) interface{} {
	if !o.present {
		return o
	}
	out, ok := fn(o.value).(Option)
	if !ok {
		panic(errNotOption)
	}
	return out
}
