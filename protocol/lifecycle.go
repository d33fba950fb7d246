package protocol

import (
	"github.com/lspwire/lspwire/codec"
	"github.com/lspwire/lspwire/json"
	"github.com/lspwire/lspwire/session"
)

// InitializedParams is the (empty) payload of the initialized notification.
type InitializedParams struct{}

var initializedParamsCodec = codec.Codec[InitializedParams]{
	Encode: func(b *json.Builder, _ InitializedParams) (*json.Value, error) {
		return codec.NewObject(b).Value()
	},
	Decode: func(v *json.Value, _ *InitializedParams) error {
		return codec.RequireObject(v)
	},
}

// InitializedInfo is the initialized notification descriptor.
var InitializedInfo = session.NotificationInfo[InitializedParams]{
	Method: "initialized",
	Params: &initializedParamsCodec,
}

// ShutdownInfo is the shutdown request descriptor: no params, a null
// result, no declared failure type.
var ShutdownInfo = session.RequestInfo[codec.Null, codec.Null, codec.Null]{
	Method: "shutdown",
	Result: codec.NullCodec,
}

// ExitInfo is the exit notification descriptor.
var ExitInfo = session.NotificationInfo[codec.Null]{
	Method: "exit",
}

// CancelParams identifies the request to cancel. Ids are integer-or-string,
// integer first.
type CancelParams struct {
	ID codec.OneOf2[int32, string]
}

var cancelParamsCodec = codec.Codec[CancelParams]{
	Encode: func(b *json.Builder, p CancelParams) (*json.Value, error) {
		ob := codec.NewObject(b)
		codec.Add(ob, "id", codec.Union2(codec.Integer, codec.String), p.ID)
		return ob.Value()
	},
	Decode: func(v *json.Value, out *CancelParams) error {
		if err := codec.RequireObject(v); err != nil {
			return err
		}
		return codec.Member(v, "id", codec.Union2(codec.Integer, codec.String), &out.ID)
	},
}

// CancelRequestInfo is the $/cancelRequest notification descriptor.
// Cancellation is a plain message here; it routes through normal dispatch.
var CancelRequestInfo = session.NotificationInfo[CancelParams]{
	Method: "$/cancelRequest",
	Params: &cancelParamsCodec,
}
