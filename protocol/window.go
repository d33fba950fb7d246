package protocol

import (
	"github.com/lspwire/lspwire/codec"
	"github.com/lspwire/lspwire/json"
	"github.com/lspwire/lspwire/session"
)

// ShowDocumentParams asks the client to display a resource.
type ShowDocumentParams struct {
	URI       DocumentURI
	External  codec.Optional[bool]
	TakeFocus codec.Optional[bool]
	Selection codec.Optional[Range]
}

var showDocumentParamsCodec = codec.Codec[ShowDocumentParams]{
	Encode: func(b *json.Builder, p ShowDocumentParams) (*json.Value, error) {
		ob := codec.NewObject(b)
		codec.Add(ob, "uri", uriCodec, p.URI)
		codec.AddOpt(ob, "external", codec.Bool, p.External)
		codec.AddOpt(ob, "takeFocus", codec.Bool, p.TakeFocus)
		codec.AddOpt(ob, "selection", rangeCodec, p.Selection)
		return ob.Value()
	},
	Decode: func(v *json.Value, out *ShowDocumentParams) error {
		if err := codec.RequireObject(v); err != nil {
			return err
		}
		if err := codec.Member(v, "uri", uriCodec, &out.URI); err != nil {
			return err
		}
		if err := codec.OptMember(v, "external", codec.Bool, &out.External); err != nil {
			return err
		}
		if err := codec.OptMember(v, "takeFocus", codec.Bool, &out.TakeFocus); err != nil {
			return err
		}
		return codec.OptMember(v, "selection", rangeCodec, &out.Selection)
	},
}

// ShowDocumentResult reports whether the client displayed the resource.
type ShowDocumentResult struct {
	Success bool
}

var showDocumentResultCodec = codec.Codec[ShowDocumentResult]{
	Encode: func(b *json.Builder, r ShowDocumentResult) (*json.Value, error) {
		ob := codec.NewObject(b)
		codec.Add(ob, "success", codec.Bool, r.Success)
		return ob.Value()
	},
	Decode: func(v *json.Value, out *ShowDocumentResult) error {
		if err := codec.RequireObject(v); err != nil {
			return err
		}
		return codec.Member(v, "success", codec.Bool, &out.Success)
	},
}

// WindowShowDocumentInfo is the window/showDocument request descriptor.
var WindowShowDocumentInfo = session.RequestInfo[ShowDocumentParams, ShowDocumentResult, ResponseError]{
	Method: "window/showDocument",
	Params: &showDocumentParamsCodec,
	Result: showDocumentResultCodec,
	Error:  &responseErrorCodec,
}
