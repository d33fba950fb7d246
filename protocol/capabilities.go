package protocol

import (
	"github.com/lspwire/lspwire/codec"
	"github.com/lspwire/lspwire/json"
)

// ClientCapabilities is the subset of client capability announcements this
// catalogue models. Unknown members of the wire object are ignored on
// decode, so a full-fat client announcement decodes cleanly.
type ClientCapabilities struct {
	Workspace    codec.Optional[WorkspaceClientCapabilities]
	TextDocument codec.Optional[TextDocumentClientCapabilities]
	Window       codec.Optional[WindowClientCapabilities]
}

// WorkspaceClientCapabilities announces workspace-level client features.
type WorkspaceClientCapabilities struct {
	ApplyEdit        codec.Optional[bool]
	Configuration    codec.Optional[bool]
	WorkspaceFolders codec.Optional[bool]
}

// TextDocumentClientCapabilities announces text-document client features.
type TextDocumentClientCapabilities struct {
	Synchronization codec.Optional[TextDocumentSyncClientCapabilities]
	Hover           codec.Optional[HoverClientCapabilities]
}

// TextDocumentSyncClientCapabilities announces sync-related client features.
type TextDocumentSyncClientCapabilities struct {
	DynamicRegistration codec.Optional[bool]
	WillSave            codec.Optional[bool]
	WillSaveWaitUntil   codec.Optional[bool]
	DidSave             codec.Optional[bool]
}

// HoverClientCapabilities announces hover-related client features.
type HoverClientCapabilities struct {
	DynamicRegistration codec.Optional[bool]
	ContentFormat       codec.Optional[[]MarkupKind]
}

// WindowClientCapabilities announces window-related client features.
type WindowClientCapabilities struct {
	WorkDoneProgress codec.Optional[bool]
}

var workspaceClientCapabilitiesCodec = codec.Codec[WorkspaceClientCapabilities]{
	Encode: func(b *json.Builder, c WorkspaceClientCapabilities) (*json.Value, error) {
		ob := codec.NewObject(b)
		codec.AddOpt(ob, "applyEdit", codec.Bool, c.ApplyEdit)
		codec.AddOpt(ob, "configuration", codec.Bool, c.Configuration)
		codec.AddOpt(ob, "workspaceFolders", codec.Bool, c.WorkspaceFolders)
		return ob.Value()
	},
	Decode: func(v *json.Value, out *WorkspaceClientCapabilities) error {
		if err := codec.RequireObject(v); err != nil {
			return err
		}
		if err := codec.OptMember(v, "applyEdit", codec.Bool, &out.ApplyEdit); err != nil {
			return err
		}
		if err := codec.OptMember(v, "configuration", codec.Bool, &out.Configuration); err != nil {
			return err
		}
		return codec.OptMember(v, "workspaceFolders", codec.Bool, &out.WorkspaceFolders)
	},
}

var textDocumentSyncClientCapabilitiesCodec = codec.Codec[TextDocumentSyncClientCapabilities]{
	Encode: func(b *json.Builder, c TextDocumentSyncClientCapabilities) (*json.Value, error) {
		ob := codec.NewObject(b)
		codec.AddOpt(ob, "dynamicRegistration", codec.Bool, c.DynamicRegistration)
		codec.AddOpt(ob, "willSave", codec.Bool, c.WillSave)
		codec.AddOpt(ob, "willSaveWaitUntil", codec.Bool, c.WillSaveWaitUntil)
		codec.AddOpt(ob, "didSave", codec.Bool, c.DidSave)
		return ob.Value()
	},
	Decode: func(v *json.Value, out *TextDocumentSyncClientCapabilities) error {
		if err := codec.RequireObject(v); err != nil {
			return err
		}
		if err := codec.OptMember(v, "dynamicRegistration", codec.Bool, &out.DynamicRegistration); err != nil {
			return err
		}
		if err := codec.OptMember(v, "willSave", codec.Bool, &out.WillSave); err != nil {
			return err
		}
		if err := codec.OptMember(v, "willSaveWaitUntil", codec.Bool, &out.WillSaveWaitUntil); err != nil {
			return err
		}
		return codec.OptMember(v, "didSave", codec.Bool, &out.DidSave)
	},
}

var hoverClientCapabilitiesCodec = codec.Codec[HoverClientCapabilities]{
	Encode: func(b *json.Builder, c HoverClientCapabilities) (*json.Value, error) {
		ob := codec.NewObject(b)
		codec.AddOpt(ob, "dynamicRegistration", codec.Bool, c.DynamicRegistration)
		codec.AddOpt(ob, "contentFormat", codec.Slice(markupKindCodec), c.ContentFormat)
		return ob.Value()
	},
	Decode: func(v *json.Value, out *HoverClientCapabilities) error {
		if err := codec.RequireObject(v); err != nil {
			return err
		}
		if err := codec.OptMember(v, "dynamicRegistration", codec.Bool, &out.DynamicRegistration); err != nil {
			return err
		}
		return codec.OptMember(v, "contentFormat", codec.Slice(markupKindCodec), &out.ContentFormat)
	},
}

var windowClientCapabilitiesCodec = codec.Codec[WindowClientCapabilities]{
	Encode: func(b *json.Builder, c WindowClientCapabilities) (*json.Value, error) {
		ob := codec.NewObject(b)
		codec.AddOpt(ob, "workDoneProgress", codec.Bool, c.WorkDoneProgress)
		return ob.Value()
	},
	Decode: func(v *json.Value, out *WindowClientCapabilities) error {
		if err := codec.RequireObject(v); err != nil {
			return err
		}
		return codec.OptMember(v, "workDoneProgress", codec.Bool, &out.WorkDoneProgress)
	},
}

var textDocumentClientCapabilitiesCodec = codec.Codec[TextDocumentClientCapabilities]{
	Encode: func(b *json.Builder, c TextDocumentClientCapabilities) (*json.Value, error) {
		ob := codec.NewObject(b)
		codec.AddOpt(ob, "synchronization", textDocumentSyncClientCapabilitiesCodec, c.Synchronization)
		codec.AddOpt(ob, "hover", hoverClientCapabilitiesCodec, c.Hover)
		return ob.Value()
	},
	Decode: func(v *json.Value, out *TextDocumentClientCapabilities) error {
		if err := codec.RequireObject(v); err != nil {
			return err
		}
		if err := codec.OptMember(v, "synchronization", textDocumentSyncClientCapabilitiesCodec, &out.Synchronization); err != nil {
			return err
		}
		return codec.OptMember(v, "hover", hoverClientCapabilitiesCodec, &out.Hover)
	},
}

var clientCapabilitiesCodec = codec.Codec[ClientCapabilities]{
	Encode: func(b *json.Builder, c ClientCapabilities) (*json.Value, error) {
		ob := codec.NewObject(b)
		codec.AddOpt(ob, "workspace", workspaceClientCapabilitiesCodec, c.Workspace)
		codec.AddOpt(ob, "textDocument", textDocumentClientCapabilitiesCodec, c.TextDocument)
		codec.AddOpt(ob, "window", windowClientCapabilitiesCodec, c.Window)
		return ob.Value()
	},
	Decode: func(v *json.Value, out *ClientCapabilities) error {
		if err := codec.RequireObject(v); err != nil {
			return err
		}
		if err := codec.OptMember(v, "workspace", workspaceClientCapabilitiesCodec, &out.Workspace); err != nil {
			return err
		}
		if err := codec.OptMember(v, "textDocument", textDocumentClientCapabilitiesCodec, &out.TextDocument); err != nil {
			return err
		}
		return codec.OptMember(v, "window", windowClientCapabilitiesCodec, &out.Window)
	},
}

// TextDocumentSyncKind selects how document changes are synced.
type TextDocumentSyncKind int32

const (
	SyncNone        TextDocumentSyncKind = 0
	SyncFull        TextDocumentSyncKind = 1
	SyncIncremental TextDocumentSyncKind = 2
)

var textDocumentSyncKindCodec = integerCodec[TextDocumentSyncKind]()

// TextDocumentSyncOptions is the structured form of the sync capability.
type TextDocumentSyncOptions struct {
	OpenClose codec.Optional[bool]
	Change    codec.Optional[TextDocumentSyncKind]
}

var textDocumentSyncOptionsCodec = codec.Codec[TextDocumentSyncOptions]{
	Encode: func(b *json.Builder, o TextDocumentSyncOptions) (*json.Value, error) {
		ob := codec.NewObject(b)
		codec.AddOpt(ob, "openClose", codec.Bool, o.OpenClose)
		codec.AddOpt(ob, "change", textDocumentSyncKindCodec, o.Change)
		return ob.Value()
	},
	Decode: func(v *json.Value, out *TextDocumentSyncOptions) error {
		if err := codec.RequireObject(v); err != nil {
			return err
		}
		if err := codec.OptMember(v, "openClose", codec.Bool, &out.OpenClose); err != nil {
			return err
		}
		return codec.OptMember(v, "change", textDocumentSyncKindCodec, &out.Change)
	},
}

// HoverOptions is the structured form of the hover capability.
type HoverOptions struct {
	WorkDoneProgress codec.Optional[bool]
}

var hoverOptionsCodec = codec.Codec[HoverOptions]{
	Encode: func(b *json.Builder, o HoverOptions) (*json.Value, error) {
		ob := codec.NewObject(b)
		codec.AddOpt(ob, "workDoneProgress", codec.Bool, o.WorkDoneProgress)
		return ob.Value()
	},
	Decode: func(v *json.Value, out *HoverOptions) error {
		if err := codec.RequireObject(v); err != nil {
			return err
		}
		return codec.OptMember(v, "workDoneProgress", codec.Bool, &out.WorkDoneProgress)
	},
}

// ServerCapabilities is the subset of server capability announcements this
// catalogue models.
type ServerCapabilities struct {
	// The union's declaration order matters: a structured sync options
	// object is preferred over the bare kind number.
	TextDocumentSync   codec.Optional[codec.OneOf2[TextDocumentSyncOptions, TextDocumentSyncKind]]
	HoverProvider      codec.Optional[codec.OneOf2[bool, HoverOptions]]
	DefinitionProvider codec.Optional[bool]
}

var serverCapabilitiesCodec = codec.Codec[ServerCapabilities]{
	Encode: func(b *json.Builder, c ServerCapabilities) (*json.Value, error) {
		ob := codec.NewObject(b)
		codec.AddOpt(ob, "textDocumentSync",
			codec.Union2(textDocumentSyncOptionsCodec, textDocumentSyncKindCodec), c.TextDocumentSync)
		codec.AddOpt(ob, "hoverProvider", codec.Union2(codec.Bool, hoverOptionsCodec), c.HoverProvider)
		codec.AddOpt(ob, "definitionProvider", codec.Bool, c.DefinitionProvider)
		return ob.Value()
	},
	Decode: func(v *json.Value, out *ServerCapabilities) error {
		if err := codec.RequireObject(v); err != nil {
			return err
		}
		if err := codec.OptMember(v, "textDocumentSync",
			codec.Union2(textDocumentSyncOptionsCodec, textDocumentSyncKindCodec), &out.TextDocumentSync); err != nil {
			return err
		}
		if err := codec.OptMember(v, "hoverProvider",
			codec.Union2(codec.Bool, hoverOptionsCodec), &out.HoverProvider); err != nil {
			return err
		}
		return codec.OptMember(v, "definitionProvider", codec.Bool, &out.DefinitionProvider)
	},
}
