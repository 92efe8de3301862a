package lsp

type MessageType uint32

const (
	MessageError   MessageType = 1
	MessageWarning MessageType = 2
	MessageInfo    MessageType = 3
	MessageLog     MessageType = 4
	MessageDebug   MessageType = 5
)

type LogMessageParams struct {
	MessageType MessageType `json:"type"`
	Message     string      `json:"message"`
}

type ShowMessageParams struct {
	MessageType MessageType `json:"type"`
	Message     string      `json:"message"`
}
