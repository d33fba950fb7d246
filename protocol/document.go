package protocol

import (
	"github.com/lspwire/lspwire/codec"
	"github.com/lspwire/lspwire/json"
	"github.com/lspwire/lspwire/session"
)

// DidOpenTextDocumentParams is the payload of textDocument/didOpen.
type DidOpenTextDocumentParams struct {
	TextDocument TextDocumentItem
}

var didOpenParamsCodec = codec.Codec[DidOpenTextDocumentParams]{
	Encode: func(b *json.Builder, p DidOpenTextDocumentParams) (*json.Value, error) {
		ob := codec.NewObject(b)
		codec.Add(ob, "textDocument", textDocumentItemCodec, p.TextDocument)
		return ob.Value()
	},
	Decode: func(v *json.Value, out *DidOpenTextDocumentParams) error {
		if err := codec.RequireObject(v); err != nil {
			return err
		}
		return codec.Member(v, "textDocument", textDocumentItemCodec, &out.TextDocument)
	},
}

// TextDocumentDidOpenInfo is the textDocument/didOpen notification descriptor.
var TextDocumentDidOpenInfo = session.NotificationInfo[DidOpenTextDocumentParams]{
	Method: "textDocument/didOpen",
	Params: &didOpenParamsCodec,
}

// TextDocumentContentChangeEvent describes one content change: either an
// incremental edit of a range or, when Range is absent, the full new text.
type TextDocumentContentChangeEvent struct {
	Range       codec.Optional[Range]
	RangeLength codec.Optional[uint32]
	Text        string
}

var contentChangeEventCodec = codec.Codec[TextDocumentContentChangeEvent]{
	Encode: func(b *json.Builder, e TextDocumentContentChangeEvent) (*json.Value, error) {
		ob := codec.NewObject(b)
		codec.AddOpt(ob, "range", rangeCodec, e.Range)
		codec.AddOpt(ob, "rangeLength", codec.Uinteger, e.RangeLength)
		codec.Add(ob, "text", codec.String, e.Text)
		return ob.Value()
	},
	Decode: func(v *json.Value, out *TextDocumentContentChangeEvent) error {
		if err := codec.RequireObject(v); err != nil {
			return err
		}
		if err := codec.OptMember(v, "range", rangeCodec, &out.Range); err != nil {
			return err
		}
		if err := codec.OptMember(v, "rangeLength", codec.Uinteger, &out.RangeLength); err != nil {
			return err
		}
		return codec.Member(v, "text", codec.String, &out.Text)
	},
}

// DidChangeTextDocumentParams is the payload of textDocument/didChange.
type DidChangeTextDocumentParams struct {
	TextDocument   VersionedTextDocumentIdentifier
	ContentChanges []TextDocumentContentChangeEvent
}

var didChangeParamsCodec = codec.Codec[DidChangeTextDocumentParams]{
	Encode: func(b *json.Builder, p DidChangeTextDocumentParams) (*json.Value, error) {
		ob := codec.NewObject(b)
		codec.Add(ob, "textDocument", versionedTextDocumentIdentifierCodec, p.TextDocument)
		codec.Add(ob, "contentChanges", codec.Slice(contentChangeEventCodec), p.ContentChanges)
		return ob.Value()
	},
	Decode: func(v *json.Value, out *DidChangeTextDocumentParams) error {
		if err := codec.RequireObject(v); err != nil {
			return err
		}
		if err := codec.Member(v, "textDocument", versionedTextDocumentIdentifierCodec, &out.TextDocument); err != nil {
			return err
		}
		return codec.Member(v, "contentChanges", codec.Slice(contentChangeEventCodec), &out.ContentChanges)
	},
}

// TextDocumentDidChangeInfo is the textDocument/didChange notification descriptor.
var TextDocumentDidChangeInfo = session.NotificationInfo[DidChangeTextDocumentParams]{
	Method: "textDocument/didChange",
	Params: &didChangeParamsCodec,
}

// DidCloseTextDocumentParams is the payload of textDocument/didClose.
type DidCloseTextDocumentParams struct {
	TextDocument TextDocumentIdentifier
}

var didCloseParamsCodec = codec.Codec[DidCloseTextDocumentParams]{
	Encode: func(b *json.Builder, p DidCloseTextDocumentParams) (*json.Value, error) {
		ob := codec.NewObject(b)
		codec.Add(ob, "textDocument", textDocumentIdentifierCodec, p.TextDocument)
		return ob.Value()
	},
	Decode: func(v *json.Value, out *DidCloseTextDocumentParams) error {
		if err := codec.RequireObject(v); err != nil {
			return err
		}
		return codec.Member(v, "textDocument", textDocumentIdentifierCodec, &out.TextDocument)
	},
}

// TextDocumentDidCloseInfo is the textDocument/didClose notification descriptor.
var TextDocumentDidCloseInfo = session.NotificationInfo[DidCloseTextDocumentParams]{
	Method: "textDocument/didClose",
	Params: &didCloseParamsCodec,
}

// DiagnosticSeverity grades a diagnostic.
type DiagnosticSeverity int32

const (
	SeverityError       DiagnosticSeverity = 1
	SeverityWarning     DiagnosticSeverity = 2
	SeverityInformation DiagnosticSeverity = 3
	SeverityHint        DiagnosticSeverity = 4
)

var diagnosticSeverityCodec = integerCodec[DiagnosticSeverity]()

// Diagnostic is one reported problem. Code is integer-or-string, integer
// first, as the wire uses both.
type Diagnostic struct {
	Range    Range
	Severity codec.Optional[DiagnosticSeverity]
	Code     codec.Optional[codec.OneOf2[int32, string]]
	Source   codec.Optional[string]
	Message  string
}

var diagnosticCodec = codec.Codec[Diagnostic]{
	Encode: func(b *json.Builder, d Diagnostic) (*json.Value, error) {
		ob := codec.NewObject(b)
		codec.Add(ob, "range", rangeCodec, d.Range)
		codec.AddOpt(ob, "severity", diagnosticSeverityCodec, d.Severity)
		codec.AddOpt(ob, "code", codec.Union2(codec.Integer, codec.String), d.Code)
		codec.AddOpt(ob, "source", codec.String, d.Source)
		codec.Add(ob, "message", codec.String, d.Message)
		return ob.Value()
	},
	Decode: func(v *json.Value, out *Diagnostic) error {
		if err := codec.RequireObject(v); err != nil {
			return err
		}
		if err := codec.Member(v, "range", rangeCodec, &out.Range); err != nil {
			return err
		}
		if err := codec.OptMember(v, "severity", diagnosticSeverityCodec, &out.Severity); err != nil {
			return err
		}
		if err := codec.OptMember(v, "code", codec.Union2(codec.Integer, codec.String), &out.Code); err != nil {
			return err
		}
		if err := codec.OptMember(v, "source", codec.String, &out.Source); err != nil {
			return err
		}
		return codec.Member(v, "message", codec.String, &out.Message)
	},
}

// PublishDiagnosticsParams is the payload of textDocument/publishDiagnostics.
type PublishDiagnosticsParams struct {
	URI         DocumentURI
	Version     codec.Optional[int32]
	Diagnostics []Diagnostic
}

var publishDiagnosticsParamsCodec = codec.Codec[PublishDiagnosticsParams]{
	Encode: func(b *json.Builder, p PublishDiagnosticsParams) (*json.Value, error) {
		ob := codec.NewObject(b)
		codec.Add(ob, "uri", uriCodec, p.URI)
		codec.AddOpt(ob, "version", codec.Integer, p.Version)
		codec.Add(ob, "diagnostics", codec.Slice(diagnosticCodec), p.Diagnostics)
		return ob.Value()
	},
	Decode: func(v *json.Value, out *PublishDiagnosticsParams) error {
		if err := codec.RequireObject(v); err != nil {
			return err
		}
		if err := codec.Member(v, "uri", uriCodec, &out.URI); err != nil {
			return err
		}
		if err := codec.OptMember(v, "version", codec.Integer, &out.Version); err != nil {
			return err
		}
		return codec.Member(v, "diagnostics", codec.Slice(diagnosticCodec), &out.Diagnostics)
	},
}

// TextDocumentPublishDiagnosticsInfo is the publishDiagnostics notification descriptor.
var TextDocumentPublishDiagnosticsInfo = session.NotificationInfo[PublishDiagnosticsParams]{
	Method: "textDocument/publishDiagnostics",
	Params: &publishDiagnosticsParamsCodec,
}

// HoverParams is the payload of textDocument/hover.
type HoverParams struct {
	TextDocument TextDocumentIdentifier
	Position     Position
}

var hoverParamsCodec = codec.Codec[HoverParams]{
	Encode: func(b *json.Builder, p HoverParams) (*json.Value, error) {
		ob := codec.NewObject(b)
		codec.Add(ob, "textDocument", textDocumentIdentifierCodec, p.TextDocument)
		codec.Add(ob, "position", positionCodec, p.Position)
		return ob.Value()
	},
	Decode: func(v *json.Value, out *HoverParams) error {
		if err := codec.RequireObject(v); err != nil {
			return err
		}
		if err := codec.Member(v, "textDocument", textDocumentIdentifierCodec, &out.TextDocument); err != nil {
			return err
		}
		return codec.Member(v, "position", positionCodec, &out.Position)
	},
}

// Hover is the hover payload: markup contents and an optional highlight
// range.
type Hover struct {
	Contents codec.OneOf2[MarkupContent, string]
	Range    codec.Optional[Range]
}

var hoverCodec = codec.Codec[Hover]{
	Encode: func(b *json.Builder, h Hover) (*json.Value, error) {
		ob := codec.NewObject(b)
		codec.Add(ob, "contents", codec.Union2(markupContentCodec, codec.String), h.Contents)
		codec.AddOpt(ob, "range", rangeCodec, h.Range)
		return ob.Value()
	},
	Decode: func(v *json.Value, out *Hover) error {
		if err := codec.RequireObject(v); err != nil {
			return err
		}
		if err := codec.Member(v, "contents", codec.Union2(markupContentCodec, codec.String), &out.Contents); err != nil {
			return err
		}
		return codec.OptMember(v, "range", rangeCodec, &out.Range)
	},
}

// HoverResult is hover-or-null.
type HoverResult = codec.OneOf2[Hover, codec.Null]

// TextDocumentHoverInfo is the textDocument/hover request descriptor.
var TextDocumentHoverInfo = session.RequestInfo[HoverParams, HoverResult, ResponseError]{
	Method: "textDocument/hover",
	Params: &hoverParamsCodec,
	Result: codec.Union2(hoverCodec, codec.NullCodec),
	Error:  &responseErrorCodec,
}
