package proto

import "encoding/json"

// Inbound is the envelope for messages coming from the client.
type Inbound struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

const (
	InboundTypeSetIdentity = "setIdentity"
	InboundTypeSendMessage = "sendMessage"

	OutboundTypeEvent = "event"

	EventConnected     = "connected"
	EventLoggedIn      = "loggedIn"
	EventNewConnection = "newConnection"
	EventMessage       = "message"
)

// SetIdentityData declares the connection's username and room.
type SetIdentityData struct {
	Username string `json:"username"`
	Room     string `json:"room"`
}

// ChatMessage is the wire shape of a chat message. SocketID is the
// sending connection's id, stable across transit.
type ChatMessage struct {
	Text      string `json:"text"`
	Sender    string `json:"sender"`
	SocketID  string `json:"socketId"`
	Timestamp int64  `json:"timestamp"`
}

// SendMessageData is a chat message from the client, addressed to a room.
type SendMessageData struct {
	Message ChatMessage `json:"message"`
	Room    string      `json:"room"`
}

// Outbound is the envelope for messages sent to the client. Lifecycle
// and presence events carry no data.
type Outbound struct {
	Type  string `json:"type"`
	Event string `json:"event,omitempty"`
	Data  any    `json:"data,omitempty"`
}

// EventMessageData is the payload of a message event, re-broadcast to
// same-room connections with the same shape the sender used.
type EventMessageData struct {
	Message ChatMessage `json:"message"`
	Room    string      `json:"room"`
}

// OnlineUser is one presence directory entry.
type OnlineUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Room     string `json:"room"`
}

// OnlineUsersResponse is the body of GET /online-users.
type OnlineUsersResponse struct {
	OnlineUsers []OnlineUser `json:"onlineUsers"`
}
