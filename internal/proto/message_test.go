package proto

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestChatMessageRoundTrip(t *testing.T) {
	original := SendMessageData{
		Message: ChatMessage{
			Text:      "hi there",
			Sender:    "alice",
			SocketID:  "conn-1",
			Timestamp: 1700000000123,
		},
		Room: "blue",
	}

	raw, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(raw), `"socketId"`) {
		t.Fatalf("origin id field not named socketId on the wire: %s", raw)
	}

	var decoded SendMessageData
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded != original {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", decoded, original)
	}
}

func TestOutboundEnvelopeShape(t *testing.T) {
	out := Outbound{Type: OutboundTypeEvent, Event: EventNewConnection}
	raw, err := json.Marshal(out)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	// Presence signals are payload-free.
	if strings.Contains(string(raw), `"data"`) {
		t.Fatalf("payload-free event serialized a data field: %s", raw)
	}
}
