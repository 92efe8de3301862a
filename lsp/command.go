package lsp

import (
	"encoding/json"
	"fmt"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

// CommandPrefix is the reserved identifier prefix for server-handled
// commands. A command whose identifier carries this prefix is never
// forwarded anywhere else; it is decoded and executed in-process.
const CommandPrefix = "swift.lsp."

// Command is the LSP Command shape: a title, a command identifier, and an
// opaque list of JSON-ish arguments. Argument values are backed by
// structpb.Value so that arbitrary {null, bool, number, string, array,
// object} trees — including nested nulls — round-trip through JSON
// unchanged.
type Command struct {
	Title     string
	CommandID string
	Arguments []*structpb.Value
}

type commandWire struct {
	Title     string            `json:"title,omitempty"`
	Command   string            `json:"command"`
	Arguments []json.RawMessage `json:"arguments,omitempty"`
}

func (c Command) MarshalJSON() ([]byte, error) {
	w := commandWire{Title: c.Title, Command: c.CommandID}
	for _, arg := range c.Arguments {
		raw, err := protojson.Marshal(arg)
		if err != nil {
			return nil, fmt.Errorf("marshaling command argument: %w", err)
		}
		w.Arguments = append(w.Arguments, raw)
	}
	return json.Marshal(w)
}

func (c *Command) UnmarshalJSON(data []byte) error {
	var w commandWire
	if err := json.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("unmarshaling command: %w", err)
	}
	c.Title, c.CommandID = w.Title, w.Command
	c.Arguments = nil
	for _, raw := range w.Arguments {
		v := &structpb.Value{}
		if err := protojson.Unmarshal(raw, v); err != nil {
			return fmt.Errorf("unmarshaling command argument: %w", err)
		}
		c.Arguments = append(c.Arguments, v)
	}
	return nil
}

// IsServerCommand reports whether id carries the reserved server-command
// prefix.
func IsServerCommand(id string) bool {
	return len(id) >= len(CommandPrefix) && id[:len(CommandPrefix)] == CommandPrefix
}

// FirstArgumentStruct returns the command's first argument as a
// *structpb.Struct, which every server command's serialized form requires.
func (c Command) FirstArgumentStruct() (*structpb.Struct, bool) {
	if len(c.Arguments) == 0 {
		return nil, false
	}
	s := c.Arguments[0].GetStructValue()
	if s == nil {
		return nil, false
	}
	return s, true
}

type ExecuteCommandParams struct {
	Command   string            `json:"command"`
	Arguments []*structpb.Value `json:"arguments,omitempty"`
}

func (p ExecuteCommandParams) MarshalJSON() ([]byte, error) {
	return Command{CommandID: p.Command, Arguments: p.Arguments}.MarshalJSON()
}

func (p *ExecuteCommandParams) UnmarshalJSON(data []byte) error {
	var c Command
	if err := c.UnmarshalJSON(data); err != nil {
		return err
	}
	p.Command, p.Arguments = c.CommandID, c.Arguments
	return nil
}
