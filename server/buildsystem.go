package server

import "github.com/swiftls/swiftls/lsp"

// BuildSystem is the external collaborator that supplies per-file compiler
// arguments. It is consulted for every native request that benefits from
// build context; a nil/false result simply means the request is issued
// without extra arguments.
type BuildSystem interface {
	Settings(uri lsp.DocumentURI, language string) ([]string, bool)
}

// NoBuildSystem never has settings for anything. It is the default
// collaborator when none is wired in.
type NoBuildSystem struct{}

func (NoBuildSystem) Settings(lsp.DocumentURI, string) ([]string, bool) { return nil, false }
