package core

// Client is one live connection as seen by the core layer.
// Name and Room stay empty until an identity is assigned; only the
// hub goroutine writes them.
type Client struct {
	ID       string
	Name     string
	Room     string
	Commands chan *Command
	Events   chan *Event

	done chan struct{}
}

// NewClient constructs a client with initialized channels.
func NewClient(id string) *Client {
	return &Client{
		ID:       id,
		Commands: make(chan *Command, 8),
		Events:   make(chan *Event, 8),
		done:     make(chan struct{}),
	}
}

// Identified reports whether the connection has a resolved identity.
func (c *Client) Identified() bool {
	return c.Name != ""
}
