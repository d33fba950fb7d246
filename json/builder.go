package json

import (
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// Builder creates Values, either by parsing JSON text or node by node. Every
// Value returned by a Builder stays valid until the Builder is released;
// nothing ties distinct Values to each other, so parsing and construction
// may be interleaved freely.
type Builder struct {
	// The arena keeps construction cumulative: nodes handed out by this
	// builder are reachable from here for its whole lifetime.
	arena []*Value
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

func (b *Builder) alloc(v Value) *Value {
	n := &v
	b.arena = append(b.arena, n)
	return n
}

// Parse parses JSON text into a Value tree.
func (b *Builder) Parse(text string) (*Value, error) {
	if !gjson.Valid(text) {
		return nil, ErrInvalidJSON
	}
	return b.fromResult(gjson.Parse(text)), nil
}

// fromResult converts a parsed gjson node into an arena Value.
func (b *Builder) fromResult(r gjson.Result) *Value {
	switch r.Type {
	case gjson.Null:
		return b.Null()
	case gjson.True:
		return b.Bool(true)
	case gjson.False:
		return b.Bool(false)
	case gjson.String:
		return b.String(r.Str)
	case gjson.Number:
		return b.number(r.Raw)
	default:
		if r.IsArray() {
			var elems []*Value
			r.ForEach(func(_, e gjson.Result) bool {
				elems = append(elems, b.fromResult(e))
				return true
			})
			return b.Array(elems)
		}
		var members []Member
		r.ForEach(func(k, e gjson.Result) bool {
			members = append(members, Member{Name: k.Str, Value: b.fromResult(e)})
			return true
		})
		return b.Object(members)
	}
}

// number classifies a numeric literal: I64 when it fits a signed 64-bit
// integer, U64 for larger non-negative integers, F64 otherwise.
func (b *Builder) number(raw string) *Value {
	if !strings.ContainsAny(raw, ".eE") {
		if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
			return b.I64(i)
		}
		if u, err := strconv.ParseUint(raw, 10, 64); err == nil {
			return b.U64(u)
		}
	}
	f, _ := strconv.ParseFloat(raw, 64)
	return b.F64(f)
}

// Null returns a null Value.
func (b *Builder) Null() *Value {
	return b.alloc(Value{kind: KindNull})
}

// Bool returns a boolean Value.
func (b *Builder) Bool(v bool) *Value {
	return b.alloc(Value{kind: KindBool, b: v})
}

// I64 returns a signed integer Value.
func (b *Builder) I64(v int64) *Value {
	return b.alloc(Value{kind: KindI64, i: v})
}

// U64 returns an unsigned integer Value.
func (b *Builder) U64(v uint64) *Value {
	return b.alloc(Value{kind: KindU64, u: v})
}

// F64 returns a floating point Value.
func (b *Builder) F64(v float64) *Value {
	return b.alloc(Value{kind: KindF64, f: v})
}

// String returns a string Value.
func (b *Builder) String(v string) *Value {
	return b.alloc(Value{kind: KindString, s: v})
}

// Array returns an array Value over elems. The slice is copied.
func (b *Builder) Array(elems []*Value) *Value {
	return b.alloc(Value{kind: KindArray, elems: append([]*Value(nil), elems...)})
}

// Object returns an object Value over members. The slice is copied and
// member order is preserved; a repeated name keeps every entry (in Count,
// MemberNames and JSON), and Get and Has resolve it to the last one.
func (b *Builder) Object(members []Member) *Value {
	v := Value{
		kind:    KindObject,
		members: append([]Member(nil), members...),
		index:   make(map[string]int, len(members)),
	}
	for i, m := range v.members {
		v.index[m.Name] = i
	}
	return b.alloc(v)
}
