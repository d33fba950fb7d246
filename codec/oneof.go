package codec

import (
	"errors"

	"github.com/lspwire/lspwire/json"
)

// ErrNoUnionMatch reports that none of a union's alternatives decoded.
var ErrNoUnionMatch = errors.New("no types matched the OneOf")

// ErrEmptyUnion reports an encode of a union holding no value.
var ErrEmptyUnion = errors.New("OneOf has no value")

// OneOf2 is a tagged union over two alternatives with an implicit empty
// state. Payloads sit behind owned pointers for the same recursion reason as
// Optional. The zero value is empty.
//
// Value returns the held alternative as an any (or nil when empty); a type
// switch over it is the visiting idiom:
//
//	switch t := u.Value().(type) {
//	case int32:  ...
//	case string: ...
//	}
type OneOf2[A, B any] struct {
	a *A
	b *B
}

// SetA stores an A, displacing any held value.
func (o *OneOf2[A, B]) SetA(v A) { *o = OneOf2[A, B]{a: &v} }

// SetB stores a B, displacing any held value.
func (o *OneOf2[A, B]) SetB(v B) { *o = OneOf2[A, B]{b: &v} }

// A returns the held A, or nil when the union holds something else.
func (o OneOf2[A, B]) A() *A { return o.a }

// B returns the held B, or nil when the union holds something else.
func (o OneOf2[A, B]) B() *B { return o.b }

// Empty reports whether nothing is held.
func (o OneOf2[A, B]) Empty() bool { return o.a == nil && o.b == nil }

// Reset empties the union.
func (o *OneOf2[A, B]) Reset() { *o = OneOf2[A, B]{} }

// Value returns the held value, or nil when empty.
func (o OneOf2[A, B]) Value() any {
	switch {
	case o.a != nil:
		return *o.a
	case o.b != nil:
		return *o.b
	}
	return nil
}

// Union2 lifts two alternative codecs over OneOf2. Decode tries A before B;
// declaration order is the tie-breaker for values both alternatives accept.
func Union2[A, B any](ca Codec[A], cb Codec[B]) Codec[OneOf2[A, B]] {
	return Codec[OneOf2[A, B]]{
		Encode: func(b *json.Builder, v OneOf2[A, B]) (*json.Value, error) {
			switch {
			case v.a != nil:
				return ca.Encode(b, *v.a)
			case v.b != nil:
				return cb.Encode(b, *v.b)
			}
			return nil, ErrEmptyUnion
		},
		Decode: func(v *json.Value, out *OneOf2[A, B]) error {
			var a A
			if ca.Decode(v, &a) == nil {
				out.SetA(a)
				return nil
			}
			var bb B
			if cb.Decode(v, &bb) == nil {
				out.SetB(bb)
				return nil
			}
			return ErrNoUnionMatch
		},
	}
}

// OneOf3 is the three-alternative analogue of OneOf2.
type OneOf3[A, B, C any] struct {
	a *A
	b *B
	c *C
}

// SetA stores an A, displacing any held value.
func (o *OneOf3[A, B, C]) SetA(v A) { *o = OneOf3[A, B, C]{a: &v} }

// SetB stores a B, displacing any held value.
func (o *OneOf3[A, B, C]) SetB(v B) { *o = OneOf3[A, B, C]{b: &v} }

// SetC stores a C, displacing any held value.
func (o *OneOf3[A, B, C]) SetC(v C) { *o = OneOf3[A, B, C]{c: &v} }

// A returns the held A, or nil.
func (o OneOf3[A, B, C]) A() *A { return o.a }

// B returns the held B, or nil.
func (o OneOf3[A, B, C]) B() *B { return o.b }

// C returns the held C, or nil.
func (o OneOf3[A, B, C]) C() *C { return o.c }

// Empty reports whether nothing is held.
func (o OneOf3[A, B, C]) Empty() bool { return o.a == nil && o.b == nil && o.c == nil }

// Reset empties the union.
func (o *OneOf3[A, B, C]) Reset() { *o = OneOf3[A, B, C]{} }

// Value returns the held value, or nil when empty.
func (o OneOf3[A, B, C]) Value() any {
	switch {
	case o.a != nil:
		return *o.a
	case o.b != nil:
		return *o.b
	case o.c != nil:
		return *o.c
	}
	return nil
}

// Union3 lifts three alternative codecs over OneOf3, trying them in order.
func Union3[A, B, C any](ca Codec[A], cb Codec[B], cc Codec[C]) Codec[OneOf3[A, B, C]] {
	return Codec[OneOf3[A, B, C]]{
		Encode: func(b *json.Builder, v OneOf3[A, B, C]) (*json.Value, error) {
			switch {
			case v.a != nil:
				return ca.Encode(b, *v.a)
			case v.b != nil:
				return cb.Encode(b, *v.b)
			case v.c != nil:
				return cc.Encode(b, *v.c)
			}
			return nil, ErrEmptyUnion
		},
		Decode: func(v *json.Value, out *OneOf3[A, B, C]) error {
			var a A
			if ca.Decode(v, &a) == nil {
				out.SetA(a)
				return nil
			}
			var bb B
			if cb.Decode(v, &bb) == nil {
				out.SetB(bb)
				return nil
			}
			var c C
			if cc.Decode(v, &c) == nil {
				out.SetC(c)
				return nil
			}
			return ErrNoUnionMatch
		},
	}
}
