package option

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"
)

func TestFunctorLaws(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	properties := gopter.NewProperties(parameters)
	identity := func(v interface{}) interface{} { return v }
	f := func(v int) int { return v + 1 }
	g := func(v int) int { return v * 2 }
	properties.Property("map identity == identity",
		prop.ForAll(
			func(a int) bool {
				return Some(a).Map(identity).Equal(Some(a)) &&
					None().Map(identity).Equal(None())
			},
			gen.Int(),
		))
	properties.Property("map composes",
		prop.ForAll(
			func(a int) bool {
				return Some(a).Map(f).Map(g).
					Equal(Some(a).Map(func(v int) int { return g(f(v)) }))
			},
			gen.Int(),
		))
	properties.TestingRun(t)
}

func TestMonadLaws(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	properties := gopter.NewProperties(parameters)
	f := func(v int) Option { return Some(v + 1) }
	g := func(v int) Option { return Some(v * 2) }
	properties.Property("left identity: Some(x).FlatMap(f) == f(x)",
		prop.ForAll(
			func(a int) bool {
				return Some(a).FlatMap(f).Equal(f(a))
			},
			gen.Int(),
		))
	properties.Property("right identity: m.FlatMap(Some) == m",
		prop.ForAll(
			func(a int) bool {
				m := Some(a)
				return m.FlatMap(Some).Equal(m) &&
					None().FlatMap(Some).Equal(None())
			},
			gen.Int(),
		))
	properties.Property("associativity",
		prop.ForAll(
			func(a int) bool {
				m := Some(a)
				return m.FlatMap(f).FlatMap(g).Equal(
					m.FlatMap(func(v int) Option {
						return f(v).FlatMap(g)
					}))
			},
			gen.Int(),
		))
	properties.TestingRun(t)
}

func TestShortCircuit(t *testing.T) {
	calls := 0
	out := None().
		Map(func(v interface{}) interface{} { calls++; return v }).
		Filter(func(v interface{}) bool { calls++; return true }).
		FlatMap(func(v interface{}) Option { calls++; return Some(v) })
	require.True(t, out.IsEmpty())
	require.Zero(t, calls, "combinators must not run on None")
}

func TestFilter(t *testing.T) {
	even := func(v int) bool { return v%2 == 0 }
	require.True(t, Some(2).Filter(even).IsDefined())
	require.True(t, Some(3).Filter(even).IsEmpty())
}

func TestExits(t *testing.T) {
	require.Equal(t, 1, Some(1).GetOrElse(9))
	require.Equal(t, 9, None().GetOrElse(9))
	require.Equal(t, 1, Some(1).GetUnsafe())
	require.PanicsWithValue(t, ErrValueNotPresent, func() { None().GetUnsafe() })
	require.True(t, None().OrElse(Some(2)).Equal(Some(2)))
	require.True(t, Some(1).OrElse(Some(2)).Equal(Some(1)))
}

func TestFlatMapContract(t *testing.T) {
	require.Panics(t, func() {
		Some(1).FlatMap(func(v int) int { return v })
	}, "a FlatMap function not returning an Option is a programming error")
}

func TestZeroValueIsNone(t *testing.T) {
	var o Option
	require.True(t, o.IsEmpty())
	require.True(t, o.Equal(None()))
}

func TestSomeNilIsPresent(t *testing.T) {
	require.True(t, Some(nil).IsDefined())
	require.True(t, FromNilable(nil).IsEmpty())
	var p *int
	require.True(t, FromNilable(p).IsEmpty())
	v := 1
	require.True(t, FromNilable(&v).IsDefined())
}

func TestHashKey(t *testing.T) {
	require.Equal(t, Some(1).HashKey(), Some(1).HashKey())
	require.Equal(t, None().HashKey(), None().HashKey())
	require.NotEqual(t, Some(1).HashKey(), None().HashKey())
	require.NotEqual(t, Some(1).HashKey(), Some(2).HashKey())
}

func TestString(t *testing.T) {
	require.Equal(t, "Some(1)", Some(1).String())
	require.Equal(t, "None", None().String())
}
