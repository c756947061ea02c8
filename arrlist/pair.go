package arrlist

import (
	"fmt"

	"github.com/bonami/collections/hashkey"
	"jsouthworth.net/go/dyn"
)

// Pair is an ordered couple of values, produced by zipping and by the
// monad package's Product.
type Pair struct {
	First  interface{}
	Second interface{}
}

// Equal tests pairs for structural equality of both positions.
func (p Pair) Equal(o interface{}) bool {
	other, ok := o.(Pair)
	return ok &&
		dyn.Equal(p.First, other.First) &&
		dyn.Equal(p.Second, other.Second)
}

// HashKey implements hashkey.Hasher so pairs can be used as map keys
// with value semantics.
func (p Pair) HashKey() hashkey.Key {
	return hashkey.Composite("pair",
		hashkey.Of(p.First), hashkey.Of(p.Second))
}

func (p Pair) String() string {
	return fmt.Sprintf("(%v %v)", p.First, p.Second)
}
