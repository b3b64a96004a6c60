package caret

import (
	"math/big"
	"slices"

	"github.com/emirpasic/gods/v2/maps/linkedhashmap"
)

// ============================================================================
// Values
// ============================================================================
//
// A document decodes to a tree of four value kinds. The set is closed: every
// consumer switches over Number, Text, List and Map and nothing else. Values
// are immutable once built, so a constant referenced many times may share
// one underlying tree without any reference observing another.

// Kind identifies the variant of a Value.
type Kind int

const (
	KindNumber Kind = iota
	KindText
	KindList
	KindMap
)

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindText:
		return "text"
	case KindList:
		return "list"
	case KindMap:
		return "map"
	default:
		return "unknown"
	}
}

// Value is a node of a decoded document: Number, Text, List or Map.
type Value interface {
	Kind() Kind
	isValue()
}

// Number is a non-negative integer of arbitrary size.
type Number struct {
	n *big.Int
}

// NewNumber returns a Number holding a copy of n.
func NewNumber(n *big.Int) Number {
	return Number{n: new(big.Int).Set(n)}
}

// NumberFromUint64 returns a Number holding u.
func NumberFromUint64(u uint64) Number {
	return Number{n: new(big.Int).SetUint64(u)}
}

func (Number) Kind() Kind { return KindNumber }
func (Number) isValue()   {}

// BigInt returns a copy of the number.
func (n Number) BigInt() *big.Int {
	if n.n == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(n.n)
}

// Uint64 returns the number and whether it fits in a uint64.
func (n Number) Uint64() (uint64, bool) {
	if n.n == nil {
		return 0, true
	}
	return n.n.Uint64(), n.n.IsUint64()
}

func (n Number) String() string {
	if n.n == nil {
		return "0"
	}
	return n.n.String()
}

// Text is the raw content of a string literal.
type Text string

func (Text) Kind() Kind { return KindText }
func (Text) isValue()   {}

// List is an ordered sequence of values.
type List struct {
	items []Value
}

// NewList returns a List of the given items.
func NewList(items ...Value) List {
	return List{items: slices.Clone(items)}
}

func (List) Kind() Kind { return KindList }
func (List) isValue()   {}

// Len returns the number of items.
func (l List) Len() int { return len(l.items) }

// At returns the i-th item.
func (l List) At(i int) Value { return l.items[i] }

// Values returns a copy of the items.
func (l List) Values() []Value {
	if l.items == nil {
		return []Value{}
	}
	return slices.Clone(l.items)
}

// MapEntry is one key/value pair of a Map.
type MapEntry struct {
	Key   string
	Value Value
}

// Map is a mapping from names to values that remembers insertion order.
// Setting a key that is already present replaces its value but keeps the
// key at its original position.
type Map struct {
	m *linkedhashmap.Map[string, Value]
}

// NewMap returns a Map of the given entries, applied in order.
func NewMap(entries ...MapEntry) Map {
	m := Map{m: linkedhashmap.New[string, Value]()}
	for _, e := range entries {
		m.put(e.Key, e.Value)
	}
	return m
}

func (Map) Kind() Kind { return KindMap }
func (Map) isValue()   {}

func (m Map) put(key string, v Value) {
	m.m.Put(key, v)
}

// Len returns the number of keys.
func (m Map) Len() int {
	if m.m == nil {
		return 0
	}
	return m.m.Size()
}

// Get returns the value stored under key.
func (m Map) Get(key string) (Value, bool) {
	if m.m == nil {
		return nil, false
	}
	return m.m.Get(key)
}

// Keys returns the keys in insertion order.
func (m Map) Keys() []string {
	if m.m == nil {
		return []string{}
	}
	return m.m.Keys()
}

// Entries returns the key/value pairs in insertion order.
func (m Map) Entries() []MapEntry {
	entries := make([]MapEntry, 0, m.Len())
	m.Each(func(key string, v Value) {
		entries = append(entries, MapEntry{Key: key, Value: v})
	})
	return entries
}

// Each calls f for every entry in insertion order.
func (m Map) Each(f func(key string, v Value)) {
	if m.m == nil {
		return
	}
	m.m.Each(f)
}

// ============================================================================
// Comparison and Conversion
// ============================================================================

// Equal reports whether a and b are structurally identical. Map keys must
// appear in the same order.
func Equal(a, b Value) bool {
	switch a := a.(type) {
	case Number:
		b, ok := b.(Number)
		return ok && a.BigInt().Cmp(b.BigInt()) == 0
	case Text:
		b, ok := b.(Text)
		return ok && a == b
	case List:
		b, ok := b.(List)
		if !ok || a.Len() != b.Len() {
			return false
		}
		for i := range a.items {
			if !Equal(a.items[i], b.items[i]) {
				return false
			}
		}
		return true
	case Map:
		b, ok := b.(Map)
		if !ok || a.Len() != b.Len() {
			return false
		}
		ae, be := a.Entries(), b.Entries()
		for i := range ae {
			if ae[i].Key != be[i].Key || !Equal(ae[i].Value, be[i].Value) {
				return false
			}
		}
		return true
	case nil:
		return b == nil
	default:
		return false
	}
}

// ToAny converts v to plain Go values:
//   - Number -> *big.Int
//   - Text -> string
//   - List -> []any
//   - Map -> map[string]any (order is lost)
func ToAny(v Value) any {
	switch v := v.(type) {
	case Number:
		return v.BigInt()
	case Text:
		return string(v)
	case List:
		out := make([]any, 0, v.Len())
		for _, item := range v.items {
			out = append(out, ToAny(item))
		}
		return out
	case Map:
		out := make(map[string]any, v.Len())
		v.Each(func(key string, item Value) {
			out[key] = ToAny(item)
		})
		return out
	default:
		return nil
	}
}
