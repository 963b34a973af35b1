package core

// CommandKind describes what the client wants to do.
type CommandKind int

const (
	// CommandSetIdentity declares the connection's username and room.
	CommandSetIdentity CommandKind = iota
	// CommandSendMessage delivers a chat message to room peers.
	CommandSendMessage
)

// Command represents an action requested by a client.
type Command struct {
	Kind     CommandKind
	Username string
	Room     string
	Text     string
}
