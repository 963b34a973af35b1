package core

// Message is the domain model for a chat message.
type Message struct {
	Text      string
	Sender    string
	OriginID  string
	Timestamp int64 // milliseconds since epoch
	Room      string
}
