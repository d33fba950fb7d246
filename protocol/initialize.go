package protocol

import (
	"github.com/lspwire/lspwire/codec"
	"github.com/lspwire/lspwire/json"
	"github.com/lspwire/lspwire/session"
)

// ClientInfo names the connecting editor or tool.
type ClientInfo struct {
	Name    string
	Version codec.Optional[string]
}

// ServerInfo names the language server.
type ServerInfo struct {
	Name    string
	Version codec.Optional[string]
}

var clientInfoCodec = codec.Codec[ClientInfo]{
	Encode: func(b *json.Builder, c ClientInfo) (*json.Value, error) {
		ob := codec.NewObject(b)
		codec.Add(ob, "name", codec.String, c.Name)
		codec.AddOpt(ob, "version", codec.String, c.Version)
		return ob.Value()
	},
	Decode: func(v *json.Value, out *ClientInfo) error {
		if err := codec.RequireObject(v); err != nil {
			return err
		}
		if err := codec.Member(v, "name", codec.String, &out.Name); err != nil {
			return err
		}
		return codec.OptMember(v, "version", codec.String, &out.Version)
	},
}

var serverInfoCodec = codec.Codec[ServerInfo]{
	Encode: func(b *json.Builder, s ServerInfo) (*json.Value, error) {
		ob := codec.NewObject(b)
		codec.Add(ob, "name", codec.String, s.Name)
		codec.AddOpt(ob, "version", codec.String, s.Version)
		return ob.Value()
	},
	Decode: func(v *json.Value, out *ServerInfo) error {
		if err := codec.RequireObject(v); err != nil {
			return err
		}
		if err := codec.Member(v, "name", codec.String, &out.Name); err != nil {
			return err
		}
		return codec.OptMember(v, "version", codec.String, &out.Version)
	},
}

// InitializeParams is the payload of the initialize request.
type InitializeParams struct {
	ProcessID        codec.OneOf2[int32, codec.Null]
	ClientInfo       codec.Optional[ClientInfo]
	Locale           codec.Optional[string]
	RootPath         codec.Optional[codec.OneOf2[string, codec.Null]]
	RootURI          codec.OneOf2[DocumentURI, codec.Null]
	Capabilities     ClientCapabilities
	Trace            codec.Optional[TraceValue]
	WorkspaceFolders codec.Optional[codec.OneOf2[[]WorkspaceFolder, codec.Null]]
}

var initializeParamsCodec = codec.Codec[InitializeParams]{
	Encode: func(b *json.Builder, p InitializeParams) (*json.Value, error) {
		ob := codec.NewObject(b)
		codec.Add(ob, "processId", codec.Union2(codec.Integer, codec.NullCodec), p.ProcessID)
		codec.AddOpt(ob, "clientInfo", clientInfoCodec, p.ClientInfo)
		codec.AddOpt(ob, "locale", codec.String, p.Locale)
		codec.AddOpt(ob, "rootPath", codec.Union2(codec.String, codec.NullCodec), p.RootPath)
		codec.Add(ob, "rootUri", codec.Union2(uriCodec, codec.NullCodec), p.RootURI)
		codec.Add(ob, "capabilities", clientCapabilitiesCodec, p.Capabilities)
		codec.AddOpt(ob, "trace", traceValueCodec, p.Trace)
		codec.AddOpt(ob, "workspaceFolders",
			codec.Union2(codec.Slice(workspaceFolderCodec), codec.NullCodec), p.WorkspaceFolders)
		return ob.Value()
	},
	Decode: func(v *json.Value, out *InitializeParams) error {
		if err := codec.RequireObject(v); err != nil {
			return err
		}
		if err := codec.Member(v, "processId", codec.Union2(codec.Integer, codec.NullCodec), &out.ProcessID); err != nil {
			return err
		}
		if err := codec.OptMember(v, "clientInfo", clientInfoCodec, &out.ClientInfo); err != nil {
			return err
		}
		if err := codec.OptMember(v, "locale", codec.String, &out.Locale); err != nil {
			return err
		}
		if err := codec.OptMember(v, "rootPath", codec.Union2(codec.String, codec.NullCodec), &out.RootPath); err != nil {
			return err
		}
		if err := codec.Member(v, "rootUri", codec.Union2(uriCodec, codec.NullCodec), &out.RootURI); err != nil {
			return err
		}
		if err := codec.Member(v, "capabilities", clientCapabilitiesCodec, &out.Capabilities); err != nil {
			return err
		}
		if err := codec.OptMember(v, "trace", traceValueCodec, &out.Trace); err != nil {
			return err
		}
		return codec.OptMember(v, "workspaceFolders",
			codec.Union2(codec.Slice(workspaceFolderCodec), codec.NullCodec), &out.WorkspaceFolders)
	},
}

// InitializeResult is the successful response of the initialize request.
type InitializeResult struct {
	Capabilities ServerCapabilities
	ServerInfo   codec.Optional[ServerInfo]
}

var initializeResultCodec = codec.Codec[InitializeResult]{
	Encode: func(b *json.Builder, r InitializeResult) (*json.Value, error) {
		ob := codec.NewObject(b)
		codec.Add(ob, "capabilities", serverCapabilitiesCodec, r.Capabilities)
		codec.AddOpt(ob, "serverInfo", serverInfoCodec, r.ServerInfo)
		return ob.Value()
	},
	Decode: func(v *json.Value, out *InitializeResult) error {
		if err := codec.RequireObject(v); err != nil {
			return err
		}
		if err := codec.Member(v, "capabilities", serverCapabilitiesCodec, &out.Capabilities); err != nil {
			return err
		}
		return codec.OptMember(v, "serverInfo", serverInfoCodec, &out.ServerInfo)
	},
}

// InitializeError is the typed failure of the initialize request.
type InitializeError struct {
	// Retry tells the client whether re-sending initialize may succeed.
	Retry bool
}

var initializeErrorCodec = codec.Codec[InitializeError]{
	Encode: func(b *json.Builder, e InitializeError) (*json.Value, error) {
		ob := codec.NewObject(b)
		codec.Add(ob, "retry", codec.Bool, e.Retry)
		return ob.Value()
	},
	Decode: func(v *json.Value, out *InitializeError) error {
		if err := codec.RequireObject(v); err != nil {
			return err
		}
		return codec.Member(v, "retry", codec.Bool, &out.Retry)
	},
}

// InitializeInfo is the initialize request descriptor.
var InitializeInfo = session.RequestInfo[InitializeParams, InitializeResult, InitializeError]{
	Method: "initialize",
	Params: &initializeParamsCodec,
	Result: initializeResultCodec,
	Error:  &initializeErrorCodec,
}
