package client

import (
	"errors"
	"sync"
	"testing"

	"roomwire/internal/proto"
)

func TestPhaseTransitions(t *testing.T) {
	s := NewState("alice", "blue")
	if s.Phase() != PhaseDisconnected {
		t.Fatalf("fresh state should be disconnected, got %v", s.Phase())
	}
	s.HandleConnected()
	if s.Phase() != PhaseConnected {
		t.Fatalf("expected connected, got %v", s.Phase())
	}
	s.HandleLoggedIn()
	if s.Phase() != PhaseAuthenticated {
		t.Fatalf("expected authenticated, got %v", s.Phase())
	}
	s.HandleDisconnected()
	if s.Phase() != PhaseDisconnected {
		t.Fatalf("expected disconnected, got %v", s.Phase())
	}
}

// History appends must transform the current value at append time; a
// value captured when the handler was installed would drop messages.
func TestHistoryAppendsNeverDrop(t *testing.T) {
	s := NewState("alice", "blue")

	const n = 100
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.HandleMessage(proto.ChatMessage{Text: "peer", Sender: "bob"})
		}()
	}
	wg.Wait()
	s.AppendLocal("mine")

	if got := len(s.History()); got != n+1 {
		t.Fatalf("history dropped messages: got %d, want %d", got, n+1)
	}
}

func TestAppendLocalStampsSender(t *testing.T) {
	s := NewState("alice", "blue")
	m := s.AppendLocal("hello")
	if m.Sender != "alice" || m.Text != "hello" || m.Timestamp == 0 {
		t.Fatalf("unexpected local message: %+v", m)
	}
	history := s.History()
	if len(history) != 1 || history[0] != m {
		t.Fatalf("local echo not appended: %+v", history)
	}
}

// Two presence signals may trigger overlapping queries; the snapshot of
// the last-issued query wins even when completions arrive out of order.
func TestOverlappingPresenceQueriesLastWins(t *testing.T) {
	s := NewState("alice", "blue")

	seq1 := s.NextFetchSeq()
	seq2 := s.NextFetchSeq()

	if !s.ApplySnapshot(seq2, []proto.OnlineUser{{ID: "b", Username: "bob", Room: "blue"}}) {
		t.Fatal("newest snapshot rejected")
	}
	if s.ApplySnapshot(seq1, []proto.OnlineUser{{ID: "a", Username: "alice", Room: "blue"}}) {
		t.Fatal("stale snapshot applied over a newer one")
	}

	online := s.Online()
	if len(online) != 1 || online[0].Username != "bob" {
		t.Fatalf("expected last query's result, got %+v", online)
	}
}

func TestQueryFailureLeavesListStale(t *testing.T) {
	s := NewState("alice", "blue")

	seq := s.NextFetchSeq()
	s.ApplySnapshot(seq, []proto.OnlineUser{{ID: "a", Username: "alice", Room: "blue"}})

	s.QueryFailed(errors.New("boom"))
	if s.QueryError() == nil {
		t.Fatal("query error not recorded")
	}
	if online := s.Online(); len(online) != 1 || online[0].Username != "alice" {
		t.Fatalf("failed query disturbed the stale list: %+v", online)
	}

	// The next successful snapshot clears the error.
	s.ApplySnapshot(s.NextFetchSeq(), nil)
	if s.QueryError() != nil {
		t.Fatal("query error survived a successful snapshot")
	}
}

func TestRoomPeersFiltersByRoom(t *testing.T) {
	s := NewState("alice", "blue")
	s.ApplySnapshot(s.NextFetchSeq(), []proto.OnlineUser{
		{ID: "a", Username: "alice", Room: "blue"},
		{ID: "b", Username: "bob", Room: "red"},
		{ID: "c", Username: "carol", Room: "blue"},
	})

	peers := s.RoomPeers()
	if len(peers) != 2 || peers[0].Username != "alice" || peers[1].Username != "carol" {
		t.Fatalf("unexpected room peers: %+v", peers)
	}
}
