package http

import (
	"encoding/json"

	"roomwire/internal/core"
	"roomwire/internal/proto"
)

// inboundToCommand maps a wire envelope to a core command. A nil
// command with a nil error means the inbound is ignored: unknown types
// and shape violations get no reply and no state change.
func inboundToCommand(inbound proto.Inbound) (*core.Command, error) {
	switch inbound.Type {
	case proto.InboundTypeSetIdentity:
		var data proto.SetIdentityData
		if err := json.Unmarshal(inbound.Data, &data); err != nil {
			return nil, err
		}
		return &core.Command{
			Kind:     core.CommandSetIdentity,
			Username: data.Username,
			Room:     data.Room,
		}, nil
	case proto.InboundTypeSendMessage:
		var data proto.SendMessageData
		if err := json.Unmarshal(inbound.Data, &data); err != nil {
			return nil, err
		}
		// Sender, origin id, and timestamp are restamped by the hub;
		// only the text and target room come from the wire.
		return &core.Command{
			Kind: core.CommandSendMessage,
			Room: data.Room,
			Text: data.Message.Text,
		}, nil
	default:
		return nil, nil
	}
}

func outboundFromEvent(event *core.Event) proto.Outbound {
	switch event.Kind {
	case core.EventConnected:
		return proto.Outbound{Type: proto.OutboundTypeEvent, Event: proto.EventConnected}
	case core.EventLoggedIn:
		return proto.Outbound{Type: proto.OutboundTypeEvent, Event: proto.EventLoggedIn}
	case core.EventNewConnection:
		return proto.Outbound{Type: proto.OutboundTypeEvent, Event: proto.EventNewConnection}
	case core.EventMessage:
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: proto.EventMessage,
			Data: proto.EventMessageData{
				Message: proto.ChatMessage{
					Text:      event.Message.Text,
					Sender:    event.Message.Sender,
					SocketID:  event.Message.OriginID,
					Timestamp: event.Message.Timestamp,
				},
				Room: event.Message.Room,
			},
		}
	default:
		return proto.Outbound{Type: proto.OutboundTypeEvent}
	}
}
