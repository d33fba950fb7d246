package protocol

import (
	"fmt"

	"github.com/lspwire/lspwire/codec"
	"github.com/lspwire/lspwire/json"
)

// JSON-RPC and LSP error codes.
const (
	CodeParseError     int32 = -32700
	CodeInvalidRequest int32 = -32600
	CodeMethodNotFound int32 = -32601
	CodeInvalidParams  int32 = -32602
	CodeInternalError  int32 = -32603

	CodeServerNotInitialized int32 = -32002
	CodeUnknownErrorCode     int32 = -32001
	CodeRequestCancelled     int32 = -32800
	CodeContentModified      int32 = -32801
	CodeServerCancelled      int32 = -32802
	CodeRequestFailed        int32 = -32803
)

// ResponseError is the standard JSON-RPC error payload. Catalogue requests
// without a bespoke failure type use it as their declared failure.
type ResponseError struct {
	Code    int32
	Message string
}

// Error implements the error interface.
func (e ResponseError) Error() string {
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}

var responseErrorCodec = codec.Codec[ResponseError]{
	Encode: func(b *json.Builder, e ResponseError) (*json.Value, error) {
		ob := codec.NewObject(b)
		codec.Add(ob, "code", codec.Integer, e.Code)
		codec.Add(ob, "message", codec.String, e.Message)
		return ob.Value()
	},
	Decode: func(v *json.Value, out *ResponseError) error {
		if err := codec.RequireObject(v); err != nil {
			return err
		}
		if err := codec.Member(v, "code", codec.Integer, &out.Code); err != nil {
			return err
		}
		return codec.Member(v, "message", codec.String, &out.Message)
	},
}
