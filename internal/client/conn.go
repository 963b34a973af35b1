package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/rs/zerolog"

	"roomwire/internal/proto"
)

// Conn is the client side of the event channel. It reads server events,
// dispatches them into the State, and pulls presence snapshots over
// HTTP when signalled to.
type Conn struct {
	state   *State
	log     *zerolog.Logger
	baseURL string
	httpc   *http.Client
	ws      *websocket.Conn
	updates chan struct{}
}

// Dial connects to the coordinator at the given http(s) base URL.
func Dial(ctx context.Context, baseURL string, state *State, logger *zerolog.Logger) (*Conn, error) {
	baseURL = strings.TrimRight(baseURL, "/")
	wsURL := strings.Replace(baseURL, "http", "ws", 1) + "/ws"

	ws, _, err := websocket.Dial(ctx, wsURL, nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", wsURL, err)
	}

	return &Conn{
		state:   state,
		log:     logger,
		baseURL: baseURL,
		httpc:   &http.Client{Timeout: 10 * time.Second},
		ws:      ws,
		updates: make(chan struct{}, 1),
	}, nil
}

// Updates signals after every state change. A signal following a
// transition to PhaseDisconnected is the last one.
func (c *Conn) Updates() <-chan struct{} {
	return c.updates
}

// Run reads server events until the connection drops or the context is
// cancelled. Each event kind has exactly one handler; the dispatch
// table is installed once for the connection's lifetime.
func (c *Conn) Run(ctx context.Context) error {
	defer c.ws.Close(websocket.StatusNormalClosure, "closing")

	handlers := map[string]func(json.RawMessage){
		proto.EventConnected: func(json.RawMessage) {
			c.state.HandleConnected()
		},
		proto.EventLoggedIn: func(json.RawMessage) {
			c.state.HandleLoggedIn()
			c.refreshPresence()
		},
		proto.EventNewConnection: func(json.RawMessage) {
			// Payload-free signal: always re-fetch the full snapshot.
			c.refreshPresence()
		},
		proto.EventMessage: func(data json.RawMessage) {
			var payload proto.EventMessageData
			if err := json.Unmarshal(data, &payload); err != nil {
				c.log.Warn().Err(err).Msg("bad message payload")
				return
			}
			c.state.HandleMessage(payload.Message)
		},
	}

	for {
		var envelope struct {
			Type  string          `json:"type"`
			Event string          `json:"event"`
			Data  json.RawMessage `json:"data"`
		}
		if err := wsjson.Read(ctx, c.ws, &envelope); err != nil {
			c.state.HandleDisconnected()
			c.signal()
			return err
		}
		handler, ok := handlers[envelope.Event]
		if !ok {
			c.log.Debug().Str("event", envelope.Event).Msg("unhandled event")
			continue
		}
		handler(envelope.Data)
		c.signal()
	}
}

// SetIdentity declares the username and room for this connection.
func (c *Conn) SetIdentity(ctx context.Context, username, room string) error {
	c.state.SetIdentity(username, room)
	data, err := json.Marshal(proto.SetIdentityData{Username: username, Room: c.state.Room()})
	if err != nil {
		return err
	}
	return wsjson.Write(ctx, c.ws, proto.Inbound{Type: proto.InboundTypeSetIdentity, Data: data})
}

// SendMessage appends the message locally, then emits it to the room.
func (c *Conn) SendMessage(ctx context.Context, text string) error {
	msg := c.state.AppendLocal(text)
	c.signal()
	data, err := json.Marshal(proto.SendMessageData{Message: msg, Room: c.state.Room()})
	if err != nil {
		return err
	}
	return wsjson.Write(ctx, c.ws, proto.Inbound{Type: proto.InboundTypeSendMessage, Data: data})
}

// refreshPresence pulls the presence snapshot in the background.
// Overlapping fetches may complete out of order; the sequence guard in
// State keeps only the newest.
func (c *Conn) refreshPresence() {
	seq := c.state.NextFetchSeq()
	go func() {
		resp, err := c.httpc.Get(c.baseURL + "/online-users")
		if err != nil {
			c.state.QueryFailed(err)
			c.log.Warn().Err(err).Msg("presence query failed")
			c.signal()
			return
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			c.state.QueryFailed(fmt.Errorf("presence query: status %d", resp.StatusCode))
			c.signal()
			return
		}
		var body proto.OnlineUsersResponse
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			c.state.QueryFailed(err)
			c.signal()
			return
		}
		if c.state.ApplySnapshot(seq, body.OnlineUsers) {
			c.signal()
		}
	}()
}

func (c *Conn) signal() {
	select {
	case c.updates <- struct{}{}:
	default:
	}
}
