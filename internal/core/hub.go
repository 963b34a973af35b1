package core

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Hub coordinates all connections. It is the sole writer of the
// presence directory and the sole emitter of lifecycle and broadcast
// events; every mutation happens on the Run goroutine.
type Hub struct {
	log      *zerolog.Logger
	dir      *Directory
	registry *Registry

	register   chan *Client
	unregister chan *Client
	commands   chan clientCommand

	clients map[string]*Client

	now func() time.Time
}

type clientCommand struct {
	client *Client
	cmd    *Command
}

// NewHub constructs a hub serving the given room label set.
func NewHub(rooms []string, logger *zerolog.Logger) *Hub {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	dir := NewDirectory()
	return &Hub{
		log:        logger,
		dir:        dir,
		registry:   NewRegistry(rooms, dir),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		commands:   make(chan clientCommand),
		clients:    make(map[string]*Client),
		now:        time.Now,
	}
}

// Directory exposes the presence directory for snapshot queries.
func (h *Hub) Directory() *Directory {
	return h.dir
}

// RegisterClient hands a new connection to the hub.
func (h *Hub) RegisterClient(c *Client) {
	h.register <- c
}

// UnregisterClient removes a connection. Safe to call more than once
// per connection; duplicate loss signals are absorbed.
func (h *Hub) UnregisterClient(c *Client) {
	h.unregister <- c
}

// Run processes registrations, disconnects, and client commands until
// the context is cancelled.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case c := <-h.register:
			h.handleRegister(ctx, c)
		case c := <-h.unregister:
			h.handleUnregister(c)
		case cc := <-h.commands:
			h.handleCommand(cc.client, cc.cmd)
		case <-ctx.Done():
			return
		}
	}
}

func (h *Hub) handleRegister(ctx context.Context, c *Client) {
	h.clients[c.ID] = c
	go h.pump(ctx, c)
	h.send(c, &Event{Kind: EventConnected})
	h.log.Debug().Str("client_id", c.ID).Msg("client registered")
}

// pump forwards one client's commands into the hub loop so that all
// state changes stay serialized on the Run goroutine.
func (h *Hub) pump(ctx context.Context, c *Client) {
	for {
		select {
		case cmd := <-c.Commands:
			select {
			case h.commands <- clientCommand{client: c, cmd: cmd}:
			case <-c.done:
				return
			case <-ctx.Done():
				return
			}
		case <-c.done:
			return
		case <-ctx.Done():
			return
		}
	}
}

func (h *Hub) handleUnregister(c *Client) {
	if _, ok := h.clients[c.ID]; !ok {
		return
	}
	delete(h.clients, c.ID)
	h.dir.Remove(c.ID)
	close(c.done)
	close(c.Events)
	h.log.Info().Str("client_id", c.ID).Str("user", c.Name).Msg("client disconnected")
}

func (h *Hub) handleCommand(c *Client, cmd *Command) {
	if _, ok := h.clients[c.ID]; !ok {
		// Raced with a disconnect; the connection is already gone.
		return
	}
	switch cmd.Kind {
	case CommandSetIdentity:
		h.handleSetIdentity(c, cmd)
	case CommandSendMessage:
		h.handleSendMessage(c, cmd)
	default:
		h.log.Debug().Str("client_id", c.ID).Int("kind", int(cmd.Kind)).Msg("unknown command ignored")
	}
}

// handleSetIdentity runs the two-phase identity protocol: the identity
// must be recorded before any presence signal is emitted, so no peer
// ever observes a presence change for an unresolved connection.
func (h *Hub) handleSetIdentity(c *Client, cmd *Command) {
	p, err := h.registry.Assign(c.ID, cmd.Username, cmd.Room)
	if err != nil {
		// Protocol violation or bad identity: ignore, no event.
		h.log.Debug().Str("client_id", c.ID).Err(err).Msg("identity rejected")
		return
	}
	c.Name = p.Username
	c.Room = p.Room
	h.send(c, &Event{Kind: EventLoggedIn})

	// Presence signals are global: every other identified connection is
	// told to re-query, regardless of room.
	for _, other := range h.clients {
		if other.ID == c.ID || !other.Identified() {
			continue
		}
		h.send(other, &Event{Kind: EventNewConnection})
	}
	h.log.Info().Str("client_id", c.ID).Str("user", p.Username).Str("room", p.Room).Msg("identity assigned")
}

func (h *Hub) handleSendMessage(c *Client, cmd *Command) {
	if !c.Identified() {
		h.log.Debug().Str("client_id", c.ID).Msg("message from unidentified connection ignored")
		return
	}
	room := cmd.Room
	if room == "" {
		room = c.Room
	}
	msg := Message{
		Text:      cmd.Text,
		Sender:    c.Name,
		OriginID:  c.ID,
		Timestamp: h.now().UnixMilli(),
		Room:      room,
	}
	h.broadcast(msg, c.ID)
}

// broadcast delivers a message to every identified connection in the
// message's room, excluding the given connection id.
func (h *Hub) broadcast(msg Message, excludeID string) {
	for _, c := range h.clients {
		if c.ID == excludeID || !c.Identified() || c.Room != msg.Room {
			continue
		}
		h.send(c, &Event{Kind: EventMessage, Message: msg})
	}
}

// send enqueues an event without blocking the hub loop. Slow consumers
// drop events; delivery is best-effort and unacknowledged.
func (h *Hub) send(c *Client, ev *Event) {
	select {
	case c.Events <- ev:
	default:
		h.log.Warn().Str("client_id", c.ID).Int("kind", int(ev.Kind)).Msg("event dropped, slow consumer")
	}
}
