package http

import (
	"github.com/vkosarev/roomchat-server/internal/core"
	"github.com/vkosarev/roomchat-server/internal/proto"
)

// inboundToCommand maps a parsed client frame to a core command. A nil
// command means the frame is dropped: unknown types and frames missing a
// required field never produce output and never close the connection.
func inboundToCommand(inbound proto.Inbound) *core.Command {
	switch inbound.Type {
	case proto.InboundTypeCreate:
		if inbound.Username == "" {
			return nil
		}
		return &core.Command{
			Kind: core.CommandCreateRoom,
			Name: inbound.Username,
		}
	case proto.InboundTypeJoin:
		if inbound.Username == "" {
			return nil
		}
		// An empty or unknown roomCode falls through to the registry
		// lookup, which answers with the room-not-found error.
		return &core.Command{
			Kind: core.CommandJoinRoom,
			Room: inbound.RoomCode,
			Name: inbound.Username,
		}
	case proto.InboundTypeChat:
		return &core.Command{
			Kind: core.CommandSendChat,
			Text: inbound.Message,
		}
	case proto.InboundTypeGetUsers:
		return &core.Command{Kind: core.CommandListUsers}
	case proto.InboundTypeTyping:
		// The sender's identity comes from its connection, not from the
		// inbound user field.
		return &core.Command{
			Kind:   core.CommandTyping,
			Active: inbound.Active,
		}
	default:
		return nil
	}
}

// outboundFromEvent maps a core event to its wire form.
func outboundFromEvent(event *core.Event) any {
	switch event.Kind {
	case core.EventRoomCreated:
		return proto.RoomCreated{
			Type:     proto.OutboundTypeRoomCreated,
			RoomCode: event.Room,
		}
	case core.EventJoined:
		return proto.Joined{
			Type:     proto.OutboundTypeJoined,
			RoomCode: event.Room,
		}
	case core.EventSystem:
		return proto.System{
			Type:    proto.OutboundTypeSystem,
			Message: event.Text,
		}
	case core.EventChat:
		return proto.Chat{
			Type:    proto.OutboundTypeChat,
			User:    event.User,
			Message: event.Text,
		}
	case core.EventUsers:
		return proto.Users{
			Type:  proto.OutboundTypeUsers,
			Users: event.Users,
		}
	case core.EventTyping:
		return proto.Typing{
			Type:   proto.OutboundTypeTyping,
			User:   event.User,
			Active: event.Active,
		}
	case core.EventError:
		msg := "internal error"
		if event.Error != nil {
			msg = event.Error.Message
		}
		return proto.ErrorMessage{
			Type:    proto.OutboundTypeError,
			Message: msg,
		}
	default:
		return nil
	}
}
