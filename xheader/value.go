// Package xheader implements the typed, JSON-shaped tree used for MiniSEED
// v3 extra headers, addressed by RFC 6901 JSON Pointers.
//
// Objects preserve insertion order so that a round trip of decode, get/set,
// and re-encode produces byte-stable output: two trees built through the
// same sequence of Set calls serialize identically regardless of Go's
// randomized map iteration order.
package xheader

import "strconv"

// Kind discriminates the variant held by a Value.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

// Value is a single node of an extra-header tree: a tagged variant over
// JSON's null, boolean, number, string, array, and object types.
//
// Numbers preserve whether they were constructed/parsed as an integer so
// that round-tripping "3" does not become "3.0" in the serialized form.
type Value struct {
	kind   Kind
	b      bool
	f      float64
	i      int64
	isInt  bool
	s      string
	arr    []Value
	obj    *object
}

// object is an insertion-order-preserving string-keyed map.
type object struct {
	keys []string
	vals map[string]Value
}

func newObject() *object {
	return &object{vals: make(map[string]Value)}
}

func (o *object) get(key string) (Value, bool) {
	v, ok := o.vals[key]
	return v, ok
}

func (o *object) set(key string, v Value) {
	if _, exists := o.vals[key]; !exists {
		o.keys = append(o.keys, key)
	}
	o.vals[key] = v
}

func (o *object) delete(key string) bool {
	if _, exists := o.vals[key]; !exists {
		return false
	}
	delete(o.vals, key)
	for i, k := range o.keys {
		if k == key {
			o.keys = append(o.keys[:i], o.keys[i+1:]...)
			break
		}
	}

	return true
}

func (o *object) clone() *object {
	c := newObject()
	for _, k := range o.keys {
		c.set(k, o.vals[k].Clone())
	}

	return c
}

// Null returns a null Value.
func Null() Value { return Value{kind: KindNull} }

// Bool returns a boolean Value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Number returns a floating-point number Value.
func Number(f float64) Value { return Value{kind: KindNumber, f: f} }

// Int returns an integer number Value, serialized without a decimal point.
func Int(i int64) Value { return Value{kind: KindNumber, i: i, isInt: true, f: float64(i)} }

// String returns a string Value.
func String(s string) Value { return Value{kind: KindString, s: s} }

// Array returns an array Value containing items in order.
func Array(items ...Value) Value {
	return Value{kind: KindArray, arr: append([]Value{}, items...)}
}

// Object returns an empty object Value. Use Tree.Set to populate it via a
// pointer path, or Value.SetKey for direct construction.
func Object() Value {
	return Value{kind: KindObject, obj: newObject()}
}

// SetKey inserts or replaces key in an object Value in place. It panics if
// the receiver is not an object; use Object() to construct one first.
func (v *Value) SetKey(key string, val Value) {
	if v.kind != KindObject {
		panic("xheader: SetKey on non-object Value")
	}
	v.obj.set(key, val)
}

// Kind returns the value's variant tag.
func (v Value) Kind() Kind { return v.kind }

// Bool returns the boolean payload; only meaningful when Kind() == KindBool.
func (v Value) Bool() bool { return v.b }

// Float64 returns the numeric payload; only meaningful when Kind() == KindNumber.
func (v Value) Float64() float64 { return v.f }

// Int64 returns the integer payload and whether the number was stored as an
// integer; only meaningful when Kind() == KindNumber.
func (v Value) Int64() (int64, bool) { return v.i, v.isInt }

// Str returns the string payload; only meaningful when Kind() == KindString.
func (v Value) Str() string { return v.s }

// Len returns the number of elements for an array or object Value, 0 otherwise.
func (v Value) Len() int {
	switch v.kind {
	case KindArray:
		return len(v.arr)
	case KindObject:
		return len(v.obj.keys)
	default:
		return 0
	}
}

// Index returns the i'th element of an array Value.
func (v Value) Index(i int) Value { return v.arr[i] }

// Keys returns an object Value's keys in insertion order.
func (v Value) Keys() []string {
	if v.kind != KindObject {
		return nil
	}

	return append([]string{}, v.obj.keys...)
}

// Field returns the named field of an object Value.
func (v Value) Field(key string) (Value, bool) {
	if v.kind != KindObject {
		return Value{}, false
	}

	return v.obj.get(key)
}

// Equal reports deep structural equality between two Values.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}

	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == other.b
	case KindNumber:
		return v.f == other.f && v.isInt == other.isInt
	case KindString:
		return v.s == other.s
	case KindArray:
		if len(v.arr) != len(other.arr) {
			return false
		}
		for i := range v.arr {
			if !v.arr[i].Equal(other.arr[i]) {
				return false
			}
		}

		return true
	case KindObject:
		if len(v.obj.keys) != len(other.obj.keys) {
			return false
		}
		for _, k := range v.obj.keys {
			a, _ := v.obj.get(k)
			b, ok := other.obj.get(k)
			if !ok || !a.Equal(b) {
				return false
			}
		}

		return true
	default:
		return false
	}
}

// Clone returns a deep copy of v.
func (v Value) Clone() Value {
	switch v.kind {
	case KindArray:
		c := make([]Value, len(v.arr))
		for i, e := range v.arr {
			c[i] = e.Clone()
		}

		return Value{kind: KindArray, arr: c}
	case KindObject:
		return Value{kind: KindObject, obj: v.obj.clone()}
	default:
		return v
	}
}

func formatNumber(v Value) string {
	if v.isInt {
		return strconv.FormatInt(v.i, 10)
	}

	return strconv.FormatFloat(v.f, 'g', -1, 64)
}
