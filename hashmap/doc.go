// Package hashmap implements an immutable map keyed by structural
// hash tokens. Any value usable with hashkey.Of can be a key, with
// value-based equality rather than reference identity. That includes
// scalars, nested slices and maps, records, and values implementing
// hashkey.Hasher.
//
// Iteration follows first-insertion order. When two keys collide
// under structural equality the later entry's key and value win, but
// the slot keeps the position of its first insertion.
//
// A note about value equality. To override the default go equality
// operator for values in this map, implement the
// Equal(other interface{}) bool function for the type. Otherwise '=='
// will be used with all its restrictions.
package hashmap
