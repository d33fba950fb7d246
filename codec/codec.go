// Package codec maps Go payload types to and from the wire JSON document
// model. A Codec pairs an encode and a decode function for one payload type;
// combinators lift element codecs over slices, string-keyed maps, pairs,
// optionals and unions, and small helpers assemble the field-wise codecs of
// message types.
//
// Union decoding is ordered: alternatives are tried in declaration order and
// the first that decodes wins. LSP leans on that priority for non-disjoint
// unions such as integer | string.
package codec

import (
	"errors"
	"fmt"
	"math"

	"github.com/lspwire/lspwire/json"
)

// Codec holds the encode/decode pair for payload type T. Encode builds a
// Value owned by the given Builder; Decode fills *out from a Value and
// reports a kind or shape mismatch as an error.
type Codec[T any] struct {
	Encode func(b *json.Builder, v T) (*json.Value, error)
	Decode func(v *json.Value, out *T) error
}

// Null is the payload type of the JSON null leaf.
type Null struct{}

// NullCodec encodes and decodes the JSON null literal.
var NullCodec = Codec[Null]{
	Encode: func(b *json.Builder, _ Null) (*json.Value, error) {
		return b.Null(), nil
	},
	Decode: func(v *json.Value, _ *Null) error {
		return v.Null()
	},
}

// Bool encodes and decodes JSON booleans.
var Bool = Codec[bool]{
	Encode: func(b *json.Builder, v bool) (*json.Value, error) {
		return b.Bool(v), nil
	},
	Decode: func(v *json.Value, out *bool) error {
		got, err := v.Bool()
		if err != nil {
			return err
		}
		*out = got
		return nil
	},
}

// Integer encodes and decodes the LSP integer type (signed 32-bit).
var Integer = Codec[int32]{
	Encode: func(b *json.Builder, v int32) (*json.Value, error) {
		return b.I64(int64(v)), nil
	},
	Decode: func(v *json.Value, out *int32) error {
		switch v.Kind() {
		case json.KindI64:
			i, _ := v.I64()
			if i < math.MinInt32 || i > math.MaxInt32 {
				return fmt.Errorf("JSON number %d out of range for integer", i)
			}
			*out = int32(i)
			return nil
		case json.KindU64:
			u, _ := v.U64()
			if u > math.MaxInt32 {
				return fmt.Errorf("JSON number %d out of range for integer", u)
			}
			*out = int32(u)
			return nil
		default:
			_, err := v.I64()
			return err
		}
	},
}

// Uinteger encodes and decodes the LSP uinteger type (unsigned 32-bit).
var Uinteger = Codec[uint32]{
	Encode: func(b *json.Builder, v uint32) (*json.Value, error) {
		return b.I64(int64(v)), nil
	},
	Decode: func(v *json.Value, out *uint32) error {
		switch v.Kind() {
		case json.KindI64:
			i, _ := v.I64()
			if i < 0 || i > math.MaxUint32 {
				return fmt.Errorf("JSON number %d out of range for uinteger", i)
			}
			*out = uint32(i)
			return nil
		case json.KindU64:
			u, _ := v.U64()
			if u > math.MaxUint32 {
				return fmt.Errorf("JSON number %d out of range for uinteger", u)
			}
			*out = uint32(u)
			return nil
		default:
			_, err := v.U64()
			return err
		}
	},
}

// Decimal encodes and decodes the LSP decimal type. Any JSON number decodes;
// the encoded form always carries a fraction.
var Decimal = Codec[float64]{
	Encode: func(b *json.Builder, v float64) (*json.Value, error) {
		return b.F64(v), nil
	},
	Decode: func(v *json.Value, out *float64) error {
		switch v.Kind() {
		case json.KindF64:
			f, _ := v.F64()
			*out = f
		case json.KindI64:
			i, _ := v.I64()
			*out = float64(i)
		case json.KindU64:
			u, _ := v.U64()
			*out = float64(u)
		default:
			_, err := v.F64()
			return err
		}
		return nil
	},
}

// String encodes and decodes JSON strings.
var String = Codec[string]{
	Encode: func(b *json.Builder, v string) (*json.Value, error) {
		return b.String(v), nil
	},
	Decode: func(v *json.Value, out *string) error {
		got, err := v.Str()
		if err != nil {
			return err
		}
		*out = got
		return nil
	},
}

var (
	errNotArray  = errors.New("JSON value is not an array")
	errNotObject = errors.New("JSON value is not an object")
)

// RequireObject fails unless v is an object. Message-type decoders call this
// first so that a struct whose fields are all optional still rejects null or
// scalar input.
func RequireObject(v *json.Value) error {
	if v.Kind() != json.KindObject {
		return errNotObject
	}
	return nil
}
