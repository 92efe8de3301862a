package lsp

import (
	"encoding/json"
	"fmt"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

// SemanticRefactorCommandID is the reserved suffix identifying a
// SemanticRefactorCommand among workspace/executeCommand invocations.
const SemanticRefactorCommandID = CommandPrefix + "semantic.refactor.command"

// SemanticRefactorCommand is the canonical server-side command: it carries
// everything a code action needs to re-issue the semantic-refactor request
// that produced it, once the client executes it.
type SemanticRefactorCommand struct {
	Title        string                 `json:"title"`
	ActionString string                 `json:"actionString"`
	Line         uint32                 `json:"line"`
	Column       uint32                 `json:"column"`
	Length       uint32                 `json:"length"`
	TextDocument TextDocumentIdentifier `json:"textDocument"`
}

// AsCommand serializes the receiver into the single-dictionary-argument
// Command envelope every server command uses.
func (r SemanticRefactorCommand) AsCommand() (Command, error) {
	raw, err := json.Marshal(r)
	if err != nil {
		return Command{}, fmt.Errorf("marshaling refactor command fields: %w", err)
	}
	s := &structpb.Struct{}
	if err := protojson.Unmarshal(raw, s); err != nil {
		return Command{}, fmt.Errorf("converting refactor command to struct: %w", err)
	}
	return Command{
		Title:     r.Title,
		CommandID: SemanticRefactorCommandID,
		Arguments: []*structpb.Value{structpb.NewStructValue(s)},
	}, nil
}

// DecodeSemanticRefactorCommand attempts to decode cmd as a
// SemanticRefactorCommand. It fails (ok=false) if cmd's identifier doesn't
// match, its first argument isn't a dictionary, or the dictionary doesn't
// match the command's schema — any of which means "not this command",
// never an error to propagate.
func DecodeSemanticRefactorCommand(cmd Command) (SemanticRefactorCommand, bool) {
	var zero SemanticRefactorCommand
	if cmd.CommandID != SemanticRefactorCommandID {
		return zero, false
	}
	s, ok := cmd.FirstArgumentStruct()
	if !ok {
		return zero, false
	}
	raw, err := protojson.Marshal(s)
	if err != nil {
		return zero, false
	}
	var out SemanticRefactorCommand
	if err := json.Unmarshal(raw, &out); err != nil {
		return zero, false
	}
	return out, true
}
