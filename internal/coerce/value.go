// Package coerce converts loosely typed option values into the typed values
// the rest of the generator works with.
//
// Options reach the generator from command lines, parsets and callers that
// pass either a single path or a list, and booleans spelled as strings.
// Value is the tagged union of those shapes; the conversion functions switch
// on its Kind and report ErrTypeKind or ErrValueKind from the domain package.
package coerce

import "strconv"

// Kind identifies the shape held by a Value.
type Kind int

// Available value kinds.
const (
	KindNull Kind = iota
	KindString
	KindList
	KindBool
	KindNumber
)

// String returns the kind name used in error messages.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindString:
		return "string"
	case KindList:
		return "list"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Value is a loosely typed option value. The zero Value is Null.
type Value struct {
	kind Kind
	str  string
	list []string
	b    bool
	num  float64
}

// Null returns the absent value.
func Null() Value {
	return Value{kind: KindNull}
}

// String wraps a string.
func String(s string) Value {
	return Value{kind: KindString, str: s}
}

// List wraps a list of strings. The slice is copied.
func List(items ...string) Value {
	cp := make([]string, len(items))
	copy(cp, items)
	return Value{kind: KindList, list: cp}
}

// Bool wraps a boolean.
func Bool(b bool) Value {
	return Value{kind: KindBool, b: b}
}

// Number wraps a number.
func Number(f float64) Value {
	return Value{kind: KindNumber, num: f}
}

// Kind returns the shape of the value.
func (v Value) Kind() Kind {
	return v.kind
}

// IsNull reports whether the value is absent.
func (v Value) IsNull() bool {
	return v.kind == KindNull
}

// FromArgs builds a Value from repeated command-line arguments:
// none is Null, one is a String (which may itself be a bracketed list),
// more than one is a List.
func FromArgs(args []string) Value {
	switch len(args) {
	case 0:
		return Null()
	case 1:
		return String(args[0])
	default:
		return List(args...)
	}
}
