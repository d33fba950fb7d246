package codec

import (
	"errors"
	"sort"

	"github.com/lspwire/lspwire/json"
)

// ErrTupleLength reports an array whose length differs from the tuple arity.
var ErrTupleLength = errors.New("JSON array does not match tuple length")

// Slice lifts an element codec over []T. Decode requires an array and
// replaces *out with a slice of matching length; the first element failure
// aborts and propagates.
func Slice[T any](elem Codec[T]) Codec[[]T] {
	return Codec[[]T]{
		Encode: func(b *json.Builder, v []T) (*json.Value, error) {
			elems := make([]*json.Value, len(v))
			for i, e := range v {
				ev, err := elem.Encode(b, e)
				if err != nil {
					return nil, err
				}
				elems[i] = ev
			}
			return b.Array(elems), nil
		},
		Decode: func(v *json.Value, out *[]T) error {
			if v.Kind() != json.KindArray {
				return errNotArray
			}
			n := v.Count()
			decoded := make([]T, n)
			for i := 0; i < n; i++ {
				ev, err := v.Index(i)
				if err != nil {
					return err
				}
				if err := elem.Decode(ev, &decoded[i]); err != nil {
					return err
				}
			}
			*out = decoded
			return nil
		},
	}
}

// StringMap lifts a value codec over map[string]T. Encoded members are
// emitted in sorted key order so output is deterministic; decode accepts any
// member order.
func StringMap[T any](elem Codec[T]) Codec[map[string]T] {
	return Codec[map[string]T]{
		Encode: func(b *json.Builder, v map[string]T) (*json.Value, error) {
			keys := make([]string, 0, len(v))
			for k := range v {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			members := make([]json.Member, 0, len(keys))
			for _, k := range keys {
				mv, err := elem.Encode(b, v[k])
				if err != nil {
					return nil, err
				}
				members = append(members, json.Member{Name: k, Value: mv})
			}
			return b.Object(members), nil
		},
		Decode: func(v *json.Value, out *map[string]T) error {
			if err := RequireObject(v); err != nil {
				return err
			}
			names, err := v.MemberNames()
			if err != nil {
				return err
			}
			decoded := make(map[string]T, len(names))
			for _, name := range names {
				mv, err := v.Get(name)
				if err != nil {
					return err
				}
				var e T
				if err := elem.Decode(mv, &e); err != nil {
					return err
				}
				decoded[name] = e
			}
			*out = decoded
			return nil
		},
	}
}

// Tuple2 is a two-element heterogeneous tuple, encoded as a JSON array of
// exactly two positional elements.
type Tuple2[A, B any] struct {
	First  A
	Second B
}

// Pair lifts two element codecs over Tuple2.
func Pair[A, B any](ca Codec[A], cb Codec[B]) Codec[Tuple2[A, B]] {
	return Codec[Tuple2[A, B]]{
		Encode: func(b *json.Builder, v Tuple2[A, B]) (*json.Value, error) {
			first, err := ca.Encode(b, v.First)
			if err != nil {
				return nil, err
			}
			second, err := cb.Encode(b, v.Second)
			if err != nil {
				return nil, err
			}
			return b.Array([]*json.Value{first, second}), nil
		},
		Decode: func(v *json.Value, out *Tuple2[A, B]) error {
			if v.Kind() != json.KindArray {
				return errNotArray
			}
			if v.Count() != 2 {
				return ErrTupleLength
			}
			first, err := v.Index(0)
			if err != nil {
				return err
			}
			if err := ca.Decode(first, &out.First); err != nil {
				return err
			}
			second, err := v.Index(1)
			if err != nil {
				return err
			}
			return cb.Decode(second, &out.Second)
		},
	}
}

// Member decodes the required member name of obj into out.
func Member[T any](obj *json.Value, name string, c Codec[T], out *T) error {
	mv, err := obj.Get(name)
	if err != nil {
		return err
	}
	return c.Decode(mv, out)
}

// OptMember decodes the member name of obj into out when present, and
// leaves out empty when the member is absent. Absence handling lives here,
// in the containing-object codec, not in Optional itself.
func OptMember[T any](obj *json.Value, name string, c Codec[T], out *Optional[T]) error {
	if !obj.Has(name) {
		out.Clear()
		return nil
	}
	mv, err := obj.Get(name)
	if err != nil {
		return err
	}
	return c.Decode(mv, out.OrNew())
}

// ObjectBuilder accumulates encoded members for one object literal,
// latching the first error so field adds can be chained without checks.
type ObjectBuilder struct {
	b       *json.Builder
	members []json.Member
	err     error
}

// NewObject starts an object literal on b.
func NewObject(b *json.Builder) *ObjectBuilder {
	return &ObjectBuilder{b: b}
}

// Add encodes v under name.
func Add[T any](ob *ObjectBuilder, name string, c Codec[T], v T) {
	if ob.err != nil {
		return
	}
	mv, err := c.Encode(ob.b, v)
	if err != nil {
		ob.err = err
		return
	}
	ob.members = append(ob.members, json.Member{Name: name, Value: mv})
}

// AddOpt encodes v under name when it holds a value, and emits nothing
// otherwise.
func AddOpt[T any](ob *ObjectBuilder, name string, c Codec[T], v Optional[T]) {
	if p := v.Ptr(); p != nil {
		Add(ob, name, c, *p)
	}
}

// Value finishes the object.
func (ob *ObjectBuilder) Value() (*json.Value, error) {
	if ob.err != nil {
		return nil, ob.err
	}
	return ob.b.Object(ob.members), nil
}
