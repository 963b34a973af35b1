package core

// EventKind is a notification the core emits to clients.
type EventKind int

const (
	// EventConnected confirms channel establishment, once per connection.
	EventConnected EventKind = iota
	// EventLoggedIn confirms identity assignment to the identifying connection.
	EventLoggedIn
	// EventNewConnection signals that presence changed. It carries no
	// payload; receivers re-query the presence snapshot.
	EventNewConnection
	// EventMessage carries a chat message to same-room connections.
	EventMessage
)

// Event is sent to clients to describe what happened in the system.
type Event struct {
	Kind    EventKind
	Message Message
}
