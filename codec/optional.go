package codec

import (
	"errors"

	"github.com/lspwire/lspwire/json"
)

// Optional is a nullable box holding at most one T behind an owned pointer.
// The indirection lets mutually recursive payload types (a workspace edit
// holds document changes which hold edits again) declare optional fields of
// each other without laying the whole cycle out inline.
//
// The zero Optional is empty. Two Optionals compare equal under
// reflect.DeepEqual when both are empty or both hold equal values.
type Optional[T any] struct {
	v *T
}

// Some returns an Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{v: &v}
}

// Get returns the held value and whether one is present.
func (o Optional[T]) Get() (T, bool) {
	if o.v == nil {
		var zero T
		return zero, false
	}
	return *o.v, true
}

// Ptr returns a pointer to the held value, or nil when empty.
func (o Optional[T]) Ptr() *T { return o.v }

// IsSet reports whether a value is present.
func (o Optional[T]) IsSet() bool { return o.v != nil }

// Set stores v, replacing any held value.
func (o *Optional[T]) Set(v T) { o.v = &v }

// Clear empties the box.
func (o *Optional[T]) Clear() { o.v = nil }

// OrNew returns a pointer to the held value, allocating a zero T first when
// empty. Decoders use it to fill the payload in place.
func (o *Optional[T]) OrNew() *T {
	if o.v == nil {
		o.v = new(T)
	}
	return o.v
}

// ErrEmptyOptional reports an encode of an empty Optional. Absent fields are
// the containing object codec's concern; by the time an Optional itself is
// encoded it must hold a value.
var ErrEmptyOptional = errors.New("optional has no value")

// Opt lifts an element codec over Optional. Decode always fills the box;
// Encode requires it to be non-empty.
func Opt[T any](elem Codec[T]) Codec[Optional[T]] {
	return Codec[Optional[T]]{
		Encode: func(b *json.Builder, v Optional[T]) (*json.Value, error) {
			p := v.Ptr()
			if p == nil {
				return nil, ErrEmptyOptional
			}
			return elem.Encode(b, *p)
		},
		Decode: func(v *json.Value, out *Optional[T]) error {
			return elem.Decode(v, out.OrNew())
		},
	}
}
