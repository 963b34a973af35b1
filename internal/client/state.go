package client

import (
	"sync"
	"time"

	"roomwire/internal/proto"
)

// Phase is the connection's client-side lifecycle state.
type Phase int

const (
	PhaseDisconnected Phase = iota
	PhaseConnected
	PhaseAuthenticated
)

// State is the per-connection projection of server events: login
// status, the online-user list, and the chat history. All methods are
// safe for concurrent use; history appends always transform the
// current value under the lock, never one captured earlier.
type State struct {
	mu       sync.Mutex
	phase    Phase
	username string
	room     string
	history  []proto.ChatMessage
	online   []proto.OnlineUser

	issuedSeq  uint64
	appliedSeq uint64
	queryErr   error
}

// NewState constructs a disconnected state for the given room.
func NewState(username, room string) *State {
	return &State{username: username, room: room}
}

// Phase returns the current lifecycle phase.
func (s *State) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// Username returns the declared display name.
func (s *State) Username() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.username
}

// Room returns the chosen room label.
func (s *State) Room() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.room
}

// SetIdentity records the identity about to be declared.
func (s *State) SetIdentity(username, room string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.username = username
	if room != "" {
		s.room = room
	}
}

// HandleConnected marks the channel as established.
func (s *State) HandleConnected() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase == PhaseDisconnected {
		s.phase = PhaseConnected
	}
}

// HandleLoggedIn marks the identity as confirmed by the server.
func (s *State) HandleLoggedIn() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.phase = PhaseAuthenticated
}

// HandleDisconnected marks the channel as lost.
func (s *State) HandleDisconnected() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.phase = PhaseDisconnected
}

// HandleMessage appends a message received from a room peer.
func (s *State) HandleMessage(m proto.ChatMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = append(s.history, m)
}

// AppendLocal appends the client's own message to history before it is
// sent; the server never echoes a sender's message back. Returns the
// message in wire shape.
func (s *State) AppendLocal(text string) proto.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	m := proto.ChatMessage{
		Text:      text,
		Sender:    s.username,
		Timestamp: time.Now().UnixMilli(),
	}
	s.history = append(s.history, m)
	return m
}

// History returns a copy of the chat history.
func (s *State) History() []proto.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]proto.ChatMessage, len(s.history))
	copy(out, s.history)
	return out
}

// NextFetchSeq issues a sequence number for a presence query.
// Overlapping queries are allowed; the sequence decides which
// completion wins.
func (s *State) NextFetchSeq() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.issuedSeq++
	return s.issuedSeq
}

// ApplySnapshot installs a completed presence query result. A stale
// completion (issued before one already applied) is dropped, so
// out-of-order completions never clobber a newer snapshot. Snapshots
// replace the list wholesale; partial results are never merged.
func (s *State) ApplySnapshot(seq uint64, users []proto.OnlineUser) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if seq <= s.appliedSeq {
		return false
	}
	s.appliedSeq = seq
	s.online = users
	s.queryErr = nil
	return true
}

// QueryFailed records a failed presence query. The previous online
// list stays in place, stale.
func (s *State) QueryFailed(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queryErr = err
}

// QueryError returns the error of the most recent failed presence
// query, cleared by the next applied snapshot.
func (s *State) QueryError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queryErr
}

// Online returns a copy of the last applied presence snapshot.
func (s *State) Online() []proto.OnlineUser {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]proto.OnlineUser, len(s.online))
	copy(out, s.online)
	return out
}

// RoomPeers returns the online users sharing this client's room. The
// server's snapshot is global; the room filter is applied here.
func (s *State) RoomPeers() []proto.OnlineUser {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]proto.OnlineUser, 0, len(s.online))
	for _, u := range s.online {
		if u.Room == s.room {
			out = append(out, u)
		}
	}
	return out
}
