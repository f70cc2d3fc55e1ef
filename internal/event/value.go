// Package event reads hook events and models them as ordered JSON values.
package event

import "encoding/json"

// Kind identifies which variant a Value holds.
type Kind uint8

const (
	Null Kind = iota
	Bool
	Number
	String
	Array
	Object
)

func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case Bool:
		return "bool"
	case Number:
		return "number"
	case String:
		return "string"
	case Array:
		return "array"
	case Object:
		return "object"
	default:
		return "invalid"
	}
}

// Member is one key/value pair of an object.
type Member struct {
	Key   string
	Value Value
}

// Value is a JSON value. The zero Value is null.
//
// Objects keep their members in input order so a record written to the
// log has the same key order as the event that produced it.
type Value struct {
	kind    Kind
	boolean bool
	text    string // string contents or number literal
	elems   []Value
	members []Member
}

// NullValue returns a null value.
func NullValue() Value { return Value{} }

// BoolValue returns a boolean value.
func BoolValue(b bool) Value { return Value{kind: Bool, boolean: b} }

// NumberValue returns a number holding the literal n verbatim.
func NumberValue(n json.Number) Value { return Value{kind: Number, text: string(n)} }

// StringValue returns a string value.
func StringValue(s string) Value { return Value{kind: String, text: s} }

// ArrayValue returns an array of the given elements.
func ArrayValue(elems ...Value) Value {
	if elems == nil {
		elems = []Value{}
	}
	return Value{kind: Array, elems: elems}
}

// ObjectValue returns an object of the given members. A repeated key keeps
// its first position and takes the value of its last occurrence.
func ObjectValue(members ...Member) Value {
	out := make([]Member, 0, len(members))
	index := make(map[string]int, len(members))
	for _, m := range members {
		if i, ok := index[m.Key]; ok {
			out[i].Value = m.Value
			continue
		}
		index[m.Key] = len(out)
		out = append(out, m)
	}
	return Value{kind: Object, members: out}
}

func (v Value) Kind() Kind { return v.kind }

func (v Value) IsNull() bool { return v.kind == Null }

// Bool returns the boolean held by v, or false if v is not a Bool.
func (v Value) Bool() bool { return v.kind == Bool && v.boolean }

// Str returns the string held by v, or "" if v is not a String.
func (v Value) Str() string {
	if v.kind != String {
		return ""
	}
	return v.text
}

// Number returns the number literal held by v, or "" if v is not a Number.
func (v Value) Number() json.Number {
	if v.kind != Number {
		return ""
	}
	return json.Number(v.text)
}

// Elems returns the elements of an array. The slice must not be modified.
func (v Value) Elems() []Value {
	if v.kind != Array {
		return nil
	}
	return v.elems
}

// Members returns the members of an object in order. The slice must not be
// modified.
func (v Value) Members() []Member {
	if v.kind != Object {
		return nil
	}
	return v.members
}

// Get looks up key in an object.
func (v Value) Get(key string) (Value, bool) {
	for _, m := range v.Members() {
		if m.Key == key {
			return m.Value, true
		}
	}
	return Value{}, false
}

// Len returns the number of elements or members, 0 for scalars.
func (v Value) Len() int {
	switch v.kind {
	case Array:
		return len(v.elems)
	case Object:
		return len(v.members)
	}
	return 0
}

// Equal reports whether v and o are structurally identical, including
// member order.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case Null:
		return true
	case Bool:
		return v.boolean == o.boolean
	case Number, String:
		return v.text == o.text
	case Array:
		if len(v.elems) != len(o.elems) {
			return false
		}
		for i := range v.elems {
			if !v.elems[i].Equal(o.elems[i]) {
				return false
			}
		}
		return true
	case Object:
		if len(v.members) != len(o.members) {
			return false
		}
		for i := range v.members {
			if v.members[i].Key != o.members[i].Key || !v.members[i].Value.Equal(o.members[i].Value) {
				return false
			}
		}
		return true
	}
	return false
}
