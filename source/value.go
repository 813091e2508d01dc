package source

import (
	"maps"
	"slices"
	"strconv"
	"strings"
)

// Kind identifies which member of the [Value] union is populated.
type Kind uint8

const (
	KindText Kind = iota // text
	KindBool             // bool
	KindList             // list
	KindMap              // map
)

// String returns the lower-case name of the kind.
func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindBool:
		return "bool"
	case KindList:
		return "list"
	case KindMap:
		return "map"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Value is a typed variable value: exactly one of text, boolean, ordered list
// of values, or mapping of names to values.
//
// The zero Value is the empty text. Values are immutable; constructors copy
// their arguments and accessors return copies.
type Value struct {
	kind Kind
	text string
	flag bool
	list []Value
	dict map[string]Value
}

// Text returns a text value.
func Text(s string) Value { return Value{kind: KindText, text: s} }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, flag: b} }

// List returns a list value holding a copy of elems.
func List(elems ...Value) Value {
	return Value{kind: KindList, list: slices.Clone(elems)}
}

// Map returns a mapping value holding a copy of m.
// A nil m yields an empty mapping.
func Map(m map[string]Value) Value {
	d := maps.Clone(m)
	if d == nil {
		d = map[string]Value{}
	}

	return Value{kind: KindMap, dict: d}
}

// Kind reports which member of the union v holds.
func (v Value) Kind() Kind { return v.kind }

// AsText returns the text held by v and true if v is a text value.
func (v Value) AsText() (string, bool) { return v.text, v.kind == KindText }

// AsBool returns the boolean held by v and true if v is a boolean value.
func (v Value) AsBool() (bool, bool) { return v.flag, v.kind == KindBool }

// AsList returns a copy of the elements held by v and true if v is a list.
func (v Value) AsList() ([]Value, bool) {
	if v.kind != KindList {
		return nil, false
	}

	return slices.Clone(v.list), true
}

// AsMap returns a copy of the entries held by v and true if v is a mapping.
func (v Value) AsMap() (map[string]Value, bool) {
	if v.kind != KindMap {
		return nil, false
	}

	return maps.Clone(v.dict), true
}

// Len returns the number of elements of a list or entries of a mapping,
// the length in bytes of a text, and 1 for a boolean.
func (v Value) Len() int {
	switch v.kind {
	case KindList:
		return len(v.list)
	case KindMap:
		return len(v.dict)
	case KindBool:
		return 1
	default:
		return len(v.text)
	}
}

// Index returns the i'th element of a list value.
// It returns false if v is not a list or i is out of range.
func (v Value) Index(i int) (Value, bool) {
	if v.kind != KindList || i < 0 || i >= len(v.list) {
		return Value{}, false
	}

	return v.list[i], true
}

// Lookup returns the entry named key of a mapping value.
func (v Value) Lookup(key string) (Value, bool) {
	if v.kind != KindMap {
		return Value{}, false
	}

	e, ok := v.dict[key]

	return e, ok
}

// Keys returns the sorted entry names of a mapping value, or nil.
func (v Value) Keys() []string {
	if v.kind != KindMap {
		return nil
	}

	return slices.Sorted(maps.Keys(v.dict))
}

// Equal reports whether v and w hold the same kind and contents.
func (v Value) Equal(w Value) bool {
	if v.kind != w.kind {
		return false
	}

	switch v.kind {
	case KindBool:
		return v.flag == w.flag

	case KindList:
		return slices.EqualFunc(v.list, w.list, Value.Equal)

	case KindMap:
		return maps.EqualFunc(v.dict, w.dict, Value.Equal)

	default:
		return v.text == w.text
	}
}

// Native converts v to plain Go values: string, bool, []any, or
// map[string]any.
func (v Value) Native() any {
	switch v.kind {
	case KindBool:
		return v.flag

	case KindList:
		out := make([]any, len(v.list))
		for i, e := range v.list {
			out[i] = e.Native()
		}

		return out

	case KindMap:
		out := make(map[string]any, len(v.dict))
		for k, e := range v.dict {
			out[k] = e.Native()
		}

		return out

	default:
		return v.text
	}
}

// String renders v in the delimited form it would be read from: lists are
// joined with ",", mappings with ";" and "=" in key order.
func (v Value) String() string {
	var sb strings.Builder

	v.writeTo(&sb)

	return sb.String()
}

func (v Value) writeTo(sb *strings.Builder) {
	switch v.kind {
	case KindBool:
		sb.WriteString(strconv.FormatBool(v.flag))

	case KindList:
		for i, e := range v.list {
			if i > 0 {
				sb.WriteByte(',')
			}

			e.writeTo(sb)
		}

	case KindMap:
		for i, k := range v.Keys() {
			if i > 0 {
				sb.WriteByte(';')
			}

			sb.WriteString(k)
			sb.WriteByte('=')
			v.dict[k].writeTo(sb)
		}

	default:
		sb.WriteString(v.text)
	}
}
