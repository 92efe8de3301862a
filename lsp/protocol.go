// Package lsp defines the Language Server Protocol wire types this server
// speaks, plus the dispatch plumbing (Server interface, serverDispatch,
// ServerHandler middleware) that routes decoded rpc.Request values to
// them.
package lsp

import (
	"encoding/json"
	"net/url"
	"strings"

	"github.com/swiftls/swiftls/position"
)

// DocumentURI is a client-supplied document identifier, normally a
// "file://" URL.
type DocumentURI string

// URIFromPath builds a file:// DocumentURI from a filesystem path.
func URIFromPath(path string) DocumentURI {
	if strings.HasPrefix(path, "file://") {
		return DocumentURI(path)
	}
	u := url.URL{Scheme: "file", Path: path}
	return DocumentURI(u.String())
}

// Path extracts the filesystem path from a file:// URI, or returns the raw
// string unchanged if it isn't one.
func (u DocumentURI) Path() string {
	parsed, err := url.Parse(string(u))
	if err != nil || parsed.Scheme != "file" {
		return string(u)
	}
	return parsed.Path
}

// Position is the wire shape of an LSP position: 0-based line and UTF-16
// code-unit column.
type Position struct {
	Line      uint32 `json:"line"`
	Character uint32 `json:"character"`
}

// Range is a half-open span of Positions.
type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// ToInternal converts a wire Position to the position package's type.
func (p Position) ToInternal() position.Position {
	return position.Position{Line: p.Line, UTF16Col: p.Character}
}

// FromInternal converts a position package Position to its wire shape.
func FromInternal(p position.Position) Position {
	return Position{Line: p.Line, Character: p.UTF16Col}
}

// ToInternal converts a wire Range to the position package's type.
func (r Range) ToInternal() position.Range {
	return position.Range{Start: r.Start.ToInternal(), End: r.End.ToInternal()}
}

// RangeFromInternal converts a position package Range to its wire shape.
func RangeFromInternal(r position.Range) Range {
	return Range{Start: FromInternal(r.Start), End: FromInternal(r.End)}
}

type TextDocumentIdentifier struct {
	URI DocumentURI `json:"uri"`
}

type VersionedTextDocumentIdentifier struct {
	TextDocumentIdentifier
	Version int32 `json:"version"`
}

type TextDocumentItem struct {
	URI        DocumentURI `json:"uri"`
	LanguageID string      `json:"languageId"`
	Version    int32       `json:"version"`
	Text       string      `json:"text"`
}

type TextDocumentPositionParams struct {
	TextDocument TextDocumentIdentifier `json:"textDocument"`
	Position     Position               `json:"position"`
}

type Location struct {
	URI   DocumentURI `json:"uri"`
	Range Range       `json:"range"`
}

type TextEdit struct {
	Range   Range  `json:"range"`
	NewText string `json:"newText"`
}

type WorkspaceEdit struct {
	Changes map[DocumentURI][]TextEdit `json:"changes,omitempty"`
}

// LSPAny stands in for the "any" type used throughout the protocol for
// untyped client/server data.
type LSPAny = json.RawMessage
