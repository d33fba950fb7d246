// Package json provides the JSON document model used on the wire: a tree of
// immutable Values produced by a Builder.
//
// A Builder is the only way to obtain a Value, whether by parsing text or by
// constructing nodes directly, and every Value it hands out remains valid for
// the Builder's lifetime. Handlers therefore hold borrowed Values; nothing
// needs to be copied while a message is being dispatched.
//
// Numbers keep their lexical class: integers that fit int64 are I64, larger
// non-negative integers are U64, and everything else is F64. Serialisation
// preserves the class, so an F64 always renders with a fraction ("42.0") and
// parses back to an F64.
package json

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/tidwall/pretty"
)

// Kind identifies the type of a Value.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindI64
	KindU64
	KindF64
	KindString
	KindArray
	KindObject
)

// String returns the lowercase kind name.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindI64:
		return "i64"
	case KindU64:
		return "u64"
	case KindF64:
		return "f64"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	}
	return "unknown"
}

// Member is a single object member.
type Member struct {
	Name  string
	Value *Value
}

// Value is one node of a JSON document. Values are created by a Builder and
// are immutable afterwards.
type Value struct {
	kind Kind

	b bool
	i int64
	u uint64
	f float64
	s string

	elems   []*Value
	members []Member
	index   map[string]int
}

// Kind reports the node's type.
func (v *Value) Kind() Kind { return v.kind }

func (v *Value) kindErr(want string) error {
	return fmt.Errorf("JSON value is not %s", want)
}

// Null returns nil if the value is null, or an error otherwise.
func (v *Value) Null() error {
	if v.kind != KindNull {
		return v.kindErr("null")
	}
	return nil
}

// Bool returns the boolean payload.
func (v *Value) Bool() (bool, error) {
	if v.kind != KindBool {
		return false, v.kindErr("a bool")
	}
	return v.b, nil
}

// I64 returns the signed integer payload.
func (v *Value) I64() (int64, error) {
	if v.kind != KindI64 {
		return 0, v.kindErr("an i64")
	}
	return v.i, nil
}

// U64 returns the unsigned integer payload.
func (v *Value) U64() (uint64, error) {
	if v.kind != KindU64 {
		return 0, v.kindErr("a u64")
	}
	return v.u, nil
}

// F64 returns the floating point payload.
func (v *Value) F64() (float64, error) {
	if v.kind != KindF64 {
		return 0, v.kindErr("an f64")
	}
	return v.f, nil
}

// Str returns the string payload.
func (v *Value) Str() (string, error) {
	if v.kind != KindString {
		return "", v.kindErr("a string")
	}
	return v.s, nil
}

// Index returns the i'th element of an array.
func (v *Value) Index(i int) (*Value, error) {
	if v.kind != KindArray {
		return nil, v.kindErr("an array")
	}
	if i < 0 || i >= len(v.elems) {
		return nil, fmt.Errorf("JSON array index %d out of bounds", i)
	}
	return v.elems[i], nil
}

// Get returns the named member of an object.
func (v *Value) Get(name string) (*Value, error) {
	if v.kind != KindObject {
		return nil, v.kindErr("an object")
	}
	if i, ok := v.index[name]; ok {
		return v.members[i].Value, nil
	}
	return nil, fmt.Errorf("JSON object has no member '%s'", name)
}

// Has reports whether the value is an object with the named member.
func (v *Value) Has(name string) bool {
	if v.kind != KindObject {
		return false
	}
	_, ok := v.index[name]
	return ok
}

// Count returns the number of array elements or object members, and 0 for
// all other kinds.
func (v *Value) Count() int {
	switch v.kind {
	case KindArray:
		return len(v.elems)
	case KindObject:
		return len(v.members)
	}
	return 0
}

// MemberNames returns the member names of an object in document order.
func (v *Value) MemberNames() ([]string, error) {
	if v.kind != KindObject {
		return nil, v.kindErr("an object")
	}
	names := make([]string, len(v.members))
	for i, m := range v.members {
		names[i] = m.Name
	}
	return names, nil
}

// JSON returns the canonical compact serialisation of the value.
func (v *Value) JSON() string {
	var sb strings.Builder
	v.writeJSON(&sb)
	return sb.String()
}

// Pretty returns an indented rendering, for traces and debugging.
func (v *Value) Pretty() string {
	return string(pretty.Pretty([]byte(v.JSON())))
}

func (v *Value) writeJSON(sb *strings.Builder) {
	switch v.kind {
	case KindNull:
		sb.WriteString("null")
	case KindBool:
		if v.b {
			sb.WriteString("true")
		} else {
			sb.WriteString("false")
		}
	case KindI64:
		sb.WriteString(strconv.FormatInt(v.i, 10))
	case KindU64:
		sb.WriteString(strconv.FormatUint(v.u, 10))
	case KindF64:
		writeFloat(sb, v.f)
	case KindString:
		writeString(sb, v.s)
	case KindArray:
		sb.WriteByte('[')
		for i, e := range v.elems {
			if i > 0 {
				sb.WriteByte(',')
			}
			e.writeJSON(sb)
		}
		sb.WriteByte(']')
	case KindObject:
		sb.WriteByte('{')
		for i, m := range v.members {
			if i > 0 {
				sb.WriteByte(',')
			}
			writeString(sb, m.Name)
			sb.WriteByte(':')
			m.Value.writeJSON(sb)
		}
		sb.WriteByte('}')
	}
}

// writeFloat renders f so that the text always parses back as F64: the
// shortest representation, with ".0" inserted (before any exponent) when it
// has no fraction of its own.
func writeFloat(sb *strings.Builder, f float64) {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.Contains(s, ".") {
		if e := strings.IndexAny(s, "eE"); e >= 0 {
			s = s[:e] + ".0" + s[e:]
		} else {
			s += ".0"
		}
	}
	sb.WriteString(s)
}

const hexDigits = "0123456789abcdef"

// writeString renders s as a JSON string literal.
func writeString(sb *strings.Builder, s string) {
	sb.WriteByte('"')
	start := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 0x20 && c != '"' && c != '\\' {
			continue
		}
		sb.WriteString(s[start:i])
		switch c {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		case '\b':
			sb.WriteString(`\b`)
		case '\f':
			sb.WriteString(`\f`)
		default:
			sb.WriteString(`\u00`)
			sb.WriteByte(hexDigits[c>>4])
			sb.WriteByte(hexDigits[c&0xf])
		}
		start = i + 1
	}
	sb.WriteString(s[start:])
	sb.WriteByte('"')
}

// ErrInvalidJSON is returned by Builder.Parse for malformed input.
var ErrInvalidJSON = errors.New("invalid JSON")
