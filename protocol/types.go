// Package protocol carries the LSP message catalogue: the payload types,
// their field-wise codecs, and the request/notification descriptors the
// session dispatches on.
//
// The catalogue is a working subset of LSP 3.17 — lifecycle, text document
// sync, diagnostics, hover and window messages — built entirely from the
// codec combinators, so extending it is a matter of declaring a type, its
// codec and a descriptor value.
package protocol

import (
	"github.com/lspwire/lspwire/codec"
	"github.com/lspwire/lspwire/json"
)

// DocumentURI identifies a resource, typically a file:// URI.
type DocumentURI string

// Position in a text document, zero-based. Character offsets count UTF-16
// code units per the LSP base spec; see PositionMapper for conversions.
type Position struct {
	Line      uint32
	Character uint32
}

// Range in a text document: start ≤ end, end exclusive.
type Range struct {
	Start Position
	End   Position
}

// Location is a range inside a resource.
type Location struct {
	URI   DocumentURI
	Range Range
}

// TextDocumentIdentifier names a text document.
type TextDocumentIdentifier struct {
	URI DocumentURI
}

// VersionedTextDocumentIdentifier names a specific version of a document.
type VersionedTextDocumentIdentifier struct {
	TextDocumentIdentifier
	Version int32
}

// TextDocumentItem transfers a document from client to server.
type TextDocumentItem struct {
	URI        DocumentURI
	LanguageID string
	Version    int32
	Text       string
}

// TextEdit is a textual change applicable to a document.
type TextEdit struct {
	Range   Range
	NewText string
}

// WorkspaceFolder is one root of the client's workspace.
type WorkspaceFolder struct {
	URI  DocumentURI
	Name string
}

// MarkupKind describes the format of human-readable content.
type MarkupKind string

const (
	MarkupKindPlainText MarkupKind = "plaintext"
	MarkupKindMarkdown  MarkupKind = "markdown"
)

// MarkupContent is human-readable text with a declared format.
type MarkupContent struct {
	Kind  MarkupKind
	Value string
}

// TraceValue controls server trace verbosity.
type TraceValue string

const (
	TraceOff      TraceValue = "off"
	TraceMessages TraceValue = "messages"
	TraceVerbose  TraceValue = "verbose"
)

// stringCodec builds the codec for a string-backed named type.
func stringCodec[T ~string]() codec.Codec[T] {
	return codec.Codec[T]{
		Encode: func(b *json.Builder, v T) (*json.Value, error) {
			return b.String(string(v)), nil
		},
		Decode: func(v *json.Value, out *T) error {
			s, err := v.Str()
			if err != nil {
				return err
			}
			*out = T(s)
			return nil
		},
	}
}

// integerCodec builds the codec for an int32-backed named type.
func integerCodec[T ~int32]() codec.Codec[T] {
	return codec.Codec[T]{
		Encode: func(b *json.Builder, v T) (*json.Value, error) {
			return codec.Integer.Encode(b, int32(v))
		},
		Decode: func(v *json.Value, out *T) error {
			var i int32
			if err := codec.Integer.Decode(v, &i); err != nil {
				return err
			}
			*out = T(i)
			return nil
		},
	}
}

var (
	uriCodec        = stringCodec[DocumentURI]()
	markupKindCodec = stringCodec[MarkupKind]()
	traceValueCodec = stringCodec[TraceValue]()
)

var positionCodec = codec.Codec[Position]{
	Encode: func(b *json.Builder, p Position) (*json.Value, error) {
		ob := codec.NewObject(b)
		codec.Add(ob, "line", codec.Uinteger, p.Line)
		codec.Add(ob, "character", codec.Uinteger, p.Character)
		return ob.Value()
	},
	Decode: func(v *json.Value, out *Position) error {
		if err := codec.RequireObject(v); err != nil {
			return err
		}
		if err := codec.Member(v, "line", codec.Uinteger, &out.Line); err != nil {
			return err
		}
		return codec.Member(v, "character", codec.Uinteger, &out.Character)
	},
}

var rangeCodec = codec.Codec[Range]{
	Encode: func(b *json.Builder, r Range) (*json.Value, error) {
		ob := codec.NewObject(b)
		codec.Add(ob, "start", positionCodec, r.Start)
		codec.Add(ob, "end", positionCodec, r.End)
		return ob.Value()
	},
	Decode: func(v *json.Value, out *Range) error {
		if err := codec.RequireObject(v); err != nil {
			return err
		}
		if err := codec.Member(v, "start", positionCodec, &out.Start); err != nil {
			return err
		}
		return codec.Member(v, "end", positionCodec, &out.End)
	},
}

var locationCodec = codec.Codec[Location]{
	Encode: func(b *json.Builder, l Location) (*json.Value, error) {
		ob := codec.NewObject(b)
		codec.Add(ob, "uri", uriCodec, l.URI)
		codec.Add(ob, "range", rangeCodec, l.Range)
		return ob.Value()
	},
	Decode: func(v *json.Value, out *Location) error {
		if err := codec.RequireObject(v); err != nil {
			return err
		}
		if err := codec.Member(v, "uri", uriCodec, &out.URI); err != nil {
			return err
		}
		return codec.Member(v, "range", rangeCodec, &out.Range)
	},
}

var textDocumentIdentifierCodec = codec.Codec[TextDocumentIdentifier]{
	Encode: func(b *json.Builder, t TextDocumentIdentifier) (*json.Value, error) {
		ob := codec.NewObject(b)
		codec.Add(ob, "uri", uriCodec, t.URI)
		return ob.Value()
	},
	Decode: func(v *json.Value, out *TextDocumentIdentifier) error {
		if err := codec.RequireObject(v); err != nil {
			return err
		}
		return codec.Member(v, "uri", uriCodec, &out.URI)
	},
}

var versionedTextDocumentIdentifierCodec = codec.Codec[VersionedTextDocumentIdentifier]{
	Encode: func(b *json.Builder, t VersionedTextDocumentIdentifier) (*json.Value, error) {
		ob := codec.NewObject(b)
		codec.Add(ob, "uri", uriCodec, t.URI)
		codec.Add(ob, "version", codec.Integer, t.Version)
		return ob.Value()
	},
	Decode: func(v *json.Value, out *VersionedTextDocumentIdentifier) error {
		if err := codec.RequireObject(v); err != nil {
			return err
		}
		if err := codec.Member(v, "uri", uriCodec, &out.URI); err != nil {
			return err
		}
		return codec.Member(v, "version", codec.Integer, &out.Version)
	},
}

var textDocumentItemCodec = codec.Codec[TextDocumentItem]{
	Encode: func(b *json.Builder, t TextDocumentItem) (*json.Value, error) {
		ob := codec.NewObject(b)
		codec.Add(ob, "uri", uriCodec, t.URI)
		codec.Add(ob, "languageId", codec.String, t.LanguageID)
		codec.Add(ob, "version", codec.Integer, t.Version)
		codec.Add(ob, "text", codec.String, t.Text)
		return ob.Value()
	},
	Decode: func(v *json.Value, out *TextDocumentItem) error {
		if err := codec.RequireObject(v); err != nil {
			return err
		}
		if err := codec.Member(v, "uri", uriCodec, &out.URI); err != nil {
			return err
		}
		if err := codec.Member(v, "languageId", codec.String, &out.LanguageID); err != nil {
			return err
		}
		if err := codec.Member(v, "version", codec.Integer, &out.Version); err != nil {
			return err
		}
		return codec.Member(v, "text", codec.String, &out.Text)
	},
}

var textEditCodec = codec.Codec[TextEdit]{
	Encode: func(b *json.Builder, t TextEdit) (*json.Value, error) {
		ob := codec.NewObject(b)
		codec.Add(ob, "range", rangeCodec, t.Range)
		codec.Add(ob, "newText", codec.String, t.NewText)
		return ob.Value()
	},
	Decode: func(v *json.Value, out *TextEdit) error {
		if err := codec.RequireObject(v); err != nil {
			return err
		}
		if err := codec.Member(v, "range", rangeCodec, &out.Range); err != nil {
			return err
		}
		return codec.Member(v, "newText", codec.String, &out.NewText)
	},
}

var workspaceFolderCodec = codec.Codec[WorkspaceFolder]{
	Encode: func(b *json.Builder, w WorkspaceFolder) (*json.Value, error) {
		ob := codec.NewObject(b)
		codec.Add(ob, "uri", uriCodec, w.URI)
		codec.Add(ob, "name", codec.String, w.Name)
		return ob.Value()
	},
	Decode: func(v *json.Value, out *WorkspaceFolder) error {
		if err := codec.RequireObject(v); err != nil {
			return err
		}
		if err := codec.Member(v, "uri", uriCodec, &out.URI); err != nil {
			return err
		}
		return codec.Member(v, "name", codec.String, &out.Name)
	},
}

var markupContentCodec = codec.Codec[MarkupContent]{
	Encode: func(b *json.Builder, m MarkupContent) (*json.Value, error) {
		ob := codec.NewObject(b)
		codec.Add(ob, "kind", markupKindCodec, m.Kind)
		codec.Add(ob, "value", codec.String, m.Value)
		return ob.Value()
	},
	Decode: func(v *json.Value, out *MarkupContent) error {
		if err := codec.RequireObject(v); err != nil {
			return err
		}
		if err := codec.Member(v, "kind", markupKindCodec, &out.Kind); err != nil {
			return err
		}
		return codec.Member(v, "value", codec.String, &out.Value)
	},
}
