// Package hashkey derives deterministic, equality-comparable key tokens
// from arbitrary values. Two values that are structurally equal produce
// the same Key, which is what lets the map packages use nested slices,
// maps, records and domain objects as keys with value semantics instead
// of reference identity.
package hashkey // import "github.com/bonami/collections/hashkey"

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"jsouthworth.net/go/hash"
	"jsouthworth.net/go/seq"
)

// Hasher is the capability a value implements to supply its own key
// token. Containers in this module (options, results, lists, maps)
// implement Hasher so they can be used as map keys with value
// semantics; domain types may do the same.
type Hasher interface {
	HashKey() Key
}

type keyKind uint8

const (
	kindStructural keyKind = iota
	kindIdentity
)

// Key is an opaque key token. Keys are comparable and may be used
// directly as native map keys. A Key is either structural (derived
// from the value's contents) or identity (derived from the value's
// run-time identity); identity keys are only deterministic within a
// single process run.
type Key struct {
	kind  keyKind
	token string
}

// Of returns the key token for v. Of is total and deterministic: it
// never fails, and within one process run the same value always yields
// the same token. The policy, in priority order:
//
//  1. Values implementing Hasher supply their own token.
//  2. Slices, arrays, native maps, records (structs whose fields are
//     all exported) and Seqable collections produce a composite token
//     from their parts, recursively, so structurally equal nested
//     values collide on purpose.
//  3. Primitives use a canonical textual encoding. Numbers and
//     booleans share tokens with their string renderings:
//     Of(1) == Of("1") and Of(true) == Of("true"). This mirrors
//     native array key coercion and is an accepted, documented quirk,
//     not a bug.
//  4. Anything else (pointers, functions, channels, structs hiding
//     unexported state) falls back to an identity token: the key is
//     only stable within a single process run unless the type
//     implements Hasher.
//
// Of reads the value's state at call time. Mutating a value after
// hashing it desynchronizes any map it is a key of; keys must not
// mutate while held.
func Of(v interface{}) Key {
	if v == nil {
		return Key{kind: kindStructural, token: "nil"}
	}
	if h, ok := v.(Hasher); ok {
		return h.HashKey()
	}
	switch val := v.(type) {
	case bool:
		return Key{kind: kindStructural, token: strconv.FormatBool(val)}
	case string:
		return Key{kind: kindStructural, token: val}
	case int:
		return Key{kind: kindStructural, token: strconv.FormatInt(int64(val), 10)}
	case int8:
		return Key{kind: kindStructural, token: strconv.FormatInt(int64(val), 10)}
	case int16:
		return Key{kind: kindStructural, token: strconv.FormatInt(int64(val), 10)}
	case int32:
		return Key{kind: kindStructural, token: strconv.FormatInt(int64(val), 10)}
	case int64:
		return Key{kind: kindStructural, token: strconv.FormatInt(val, 10)}
	case uint:
		return Key{kind: kindStructural, token: strconv.FormatUint(uint64(val), 10)}
	case uint8:
		return Key{kind: kindStructural, token: strconv.FormatUint(uint64(val), 10)}
	case uint16:
		return Key{kind: kindStructural, token: strconv.FormatUint(uint64(val), 10)}
	case uint32:
		return Key{kind: kindStructural, token: strconv.FormatUint(uint64(val), 10)}
	case uint64:
		return Key{kind: kindStructural, token: strconv.FormatUint(val, 10)}
	case uintptr:
		return Key{kind: kindStructural, token: strconv.FormatUint(uint64(val), 10)}
	case float32:
		return Key{kind: kindStructural, token: strconv.FormatFloat(float64(val), 'g', -1, 32)}
	case float64:
		return Key{kind: kindStructural, token: strconv.FormatFloat(val, 'g', -1, 64)}
	case seq.Seqable:
		return ofSequence(val.Seq())
	case seq.Sequence:
		return ofSequence(val)
	default:
		return ofReflection(v)
	}
}

// Composite returns a structural token combining the given parts in
// order. Hasher implementations use Composite to tag and combine their
// contents; the tag keeps tokens of different container shapes from
// colliding with each other or with plain slices.
func Composite(tag string, parts ...Key) Key {
	kind := kindStructural
	var b strings.Builder
	b.WriteString(tag)
	b.WriteByte('(')
	for _, p := range parts {
		if p.kind == kindIdentity {
			kind = kindIdentity
		}
		writePart(&b, p.token)
	}
	b.WriteByte(')')
	return Key{kind: kind, token: b.String()}
}

func ofSequence(s seq.Sequence) Key {
	var parts []Key
	for ; s != nil; s = s.Next() {
		parts = append(parts, Of(s.First()))
	}
	return Composite("seq", parts...)
}

func ofReflection(v interface{}) Key {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		parts := make([]Key, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			parts[i] = Of(rv.Index(i).Interface())
		}
		return Composite("arr", parts...)
	case reflect.Map:
		return ofNativeMap(rv)
	case reflect.Struct:
		return ofStruct(rv)
	case reflect.Ptr, reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return identityKey(rv.Pointer())
	default:
		return Key{
			kind:  kindStructural,
			token: fmt.Sprintf("%T:%v", v, v),
		}
	}
}

// Native map iteration order is unspecified, so entry tokens are
// sorted by key token to keep the composite deterministic.
func ofNativeMap(rv reflect.Value) Key {
	entries := make([]Key, 0, rv.Len()*2)
	keys := rv.MapKeys()
	type pair struct{ k, v Key }
	pairs := make([]pair, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, pair{
			k: Of(k.Interface()),
			v: Of(rv.MapIndex(k).Interface()),
		})
	}
	sort.Slice(pairs, func(i, j int) bool {
		return pairs[i].k.token < pairs[j].k.token
	})
	for _, p := range pairs {
		entries = append(entries, p.k, p.v)
	}
	return Composite("map", entries...)
}

// Only structs with all fields exported hash as open records. A
// struct hiding unexported state is an opaque object: its token is
// taken from the full printed state, which can include pointer
// addresses, so it is identity-tagged and stable only within a run.
func ofStruct(rv reflect.Value) Key {
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		if rt.Field(i).PkgPath != "" { // unexported
			return Key{
				kind:  kindIdentity,
				token: fmt.Sprintf("%#v", rv.Interface()),
			}
		}
	}
	parts := make([]Key, 0, rt.NumField()*2)
	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)
		parts = append(parts,
			Key{kind: kindStructural, token: f.Name},
			Of(rv.Field(i).Interface()))
	}
	return Composite("rec", parts...)
}

func identityKey(p uintptr) Key {
	return Key{
		kind:  kindIdentity,
		token: strconv.FormatUint(uint64(p), 16),
	}
}

func writePart(b *strings.Builder, token string) {
	b.WriteString(strconv.Itoa(len(token)))
	b.WriteByte(':')
	b.WriteString(token)
}

// IsStructural reports whether the key was derived from the value's
// contents rather than its run-time identity.
func (k Key) IsStructural() bool {
	return k.kind == kindStructural
}

// Hash returns a seeded hash of the key for consumers that bucket by
// uintptr hashes.
func (k Key) Hash() uintptr {
	return hash.Any(k.token, uintptr(k.kind))
}

// Equal tests key equality. It exists so keys compare correctly when
// routed through dyn.Equal.
func (k Key) Equal(o interface{}) bool {
	other, ok := o.(Key)
	return ok && k == other
}

func (k Key) String() string {
	if k.kind == kindIdentity {
		return "#id:" + k.token
	}
	return k.token
}
