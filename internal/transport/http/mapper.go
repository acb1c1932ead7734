package http

import (
	"encoding/json"

	"github.com/vovakirdan/standup-server/internal/core"
	"github.com/vovakirdan/standup-server/internal/proto"
)

// applyInbound decodes an inbound envelope and runs it against the hub.
// A non-nil result is a protocol error the client got wrong; domain-level
// misuse (speaking out of turn, stale rooms) is silently absorbed by the
// core and produces nothing here.
func applyInbound(hub *core.Hub, client *core.Client, inbound proto.Inbound) *proto.Error {
	switch inbound.Type {
	case proto.InboundTypeRequestSpeak:
		hub.RequestSpeak(client)
	case proto.InboundTypeStartSpeaking:
		hub.StartSpeaking(client)
	case proto.InboundTypeEndSpeaking:
		hub.EndSpeaking(client)
	case proto.InboundTypeAudioStream:
		var data proto.AudioData
		if err := json.Unmarshal(inbound.Data, &data); err != nil {
			return &proto.Error{Code: proto.ErrCodeBadRequest, Msg: "malformed audio payload"}
		}
		if len(data.Audio) == 0 {
			return &proto.Error{Code: proto.ErrCodeBadRequest, Msg: "audio is required"}
		}
		hub.Relay(client, data.Audio)
	case proto.InboundTypeSendReaction:
		var data proto.ReactionData
		if err := json.Unmarshal(inbound.Data, &data); err != nil {
			return &proto.Error{Code: proto.ErrCodeBadRequest, Msg: "malformed reaction payload"}
		}
		if data.Reaction == "" {
			return &proto.Error{Code: proto.ErrCodeBadRequest, Msg: "reaction is required"}
		}
		hub.SendReaction(client, data.Reaction)
	case proto.InboundTypeToggleMute:
		hub.ToggleMute(client)
	default:
		return &proto.Error{Code: proto.ErrCodeInvalidMessage, Msg: "unknown message type"}
	}
	return nil
}

func outboundFromEvent(event *core.Event) proto.Outbound {
	switch event.Kind {
	case core.EventRoomInfo:
		return outboundEvent(proto.EventNameRoomInfo, proto.EventRoomInfo{
			RoomID:        event.Info.RoomID,
			UserName:      event.Info.UserName,
			QueuePosition: optionalInt(event.Info.QueuePosition),
			TotalUsers:    event.Info.TotalUsers,
		})
	case core.EventRoomUpdate:
		return outboundEvent(proto.EventNameRoomUpdate, proto.EventRoomUpdate{
			TotalUsers:     event.Update.TotalUsers,
			CurrentSpeaker: optionalName(event.Update.CurrentSpeaker),
			SpeakerQueue:   event.Update.SpeakerQueue,
		})
	case core.EventQueueUpdate:
		return outboundEvent(proto.EventNameQueueUpdate, proto.EventQueueUpdate{
			Position: event.Queue.Position,
		})
	case core.EventSpeakingStatus:
		return outboundEvent(proto.EventNameSpeakingStatus, proto.EventSpeakingStatus{
			Speaker:   event.Speaking.Speaker,
			StartTime: event.Speaking.StartTime,
		})
	case core.EventSpeakingEnded:
		return outboundEvent(proto.EventNameSpeakingEnded, proto.EventSpeakingEnded{
			NextSpeaker:  optionalName(event.Ended.NextSpeaker),
			BreakEndTime: event.Ended.BreakEndTime,
		})
	case core.EventAudioFrame:
		return outboundEvent(proto.EventNameAudioStream, proto.EventAudioStream{
			Audio:   event.Frame.Audio,
			Speaker: event.Frame.Speaker,
		})
	case core.EventReaction:
		return outboundEvent(proto.EventNameReaction, proto.EventReaction{
			User:     event.Reaction.User,
			Reaction: event.Reaction.Reaction,
		})
	case core.EventMuteStatus:
		return outboundEvent(proto.EventNameMuteStatus, proto.EventMuteStatus{
			IsMuted: event.Mute.IsMuted,
		})
	default:
		return proto.Outbound{Type: proto.OutboundTypeEvent}
	}
}

func outboundEvent(name string, data any) proto.Outbound {
	return proto.Outbound{
		Type:  proto.OutboundTypeEvent,
		Event: name,
		Data:  data,
	}
}

// optionalInt maps the core's zero sentinel to JSON null.
func optionalInt(v int) *int {
	if v == 0 {
		return nil
	}
	return &v
}

// optionalName maps the core's empty-string sentinel to JSON null.
func optionalName(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}
