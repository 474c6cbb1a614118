package http

import (
	"encoding/json"
	"fmt"

	"github.com/worldsync/worldsync-server/internal/core"
	"github.com/worldsync/worldsync-server/internal/proto"
)

func inboundToCommand(inbound proto.Inbound) (*core.Command, error) {
	if len(inbound.Data) == 0 {
		return nil, fmt.Errorf("%w: missing data", core.ErrMalformedIntent)
	}

	switch inbound.Type {
	case proto.InboundTypeMove:
		var move proto.MoveData
		if err := json.Unmarshal(inbound.Data, &move); err != nil {
			return nil, fmt.Errorf("%w: %v", core.ErrMalformedIntent, err)
		}
		return &core.Command{
			Kind:     core.CommandMove,
			Position: coreVec3(move.Position),
			Rotation: coreVec3(move.Rotation),
		}, nil

	case proto.InboundTypeCreateObject:
		var create proto.CreateObjectData
		if err := json.Unmarshal(inbound.Data, &create); err != nil {
			return nil, fmt.Errorf("%w: %v", core.ErrMalformedIntent, err)
		}
		cmd := &core.Command{
			Kind:       core.CommandCreateObject,
			ObjectKind: core.ObjectKind(create.Type),
			Position:   coreVec3(create.Position),
		}
		if create.Size != nil {
			cmd.Size = coreVec3(*create.Size)
		}
		if create.Color != nil {
			cmd.Color = *create.Color
		}
		return cmd, nil

	case proto.InboundTypeRemoveObject:
		var objectID string
		if err := json.Unmarshal(inbound.Data, &objectID); err != nil {
			return nil, fmt.Errorf("%w: %v", core.ErrMalformedIntent, err)
		}
		if objectID == "" {
			return nil, fmt.Errorf("%w: empty object id", core.ErrMalformedIntent)
		}
		return &core.Command{
			Kind:     core.CommandRemoveObject,
			ObjectID: objectID,
		}, nil

	case proto.InboundTypeChatMessage:
		var text string
		if err := json.Unmarshal(inbound.Data, &text); err != nil {
			return nil, fmt.Errorf("%w: %v", core.ErrMalformedIntent, err)
		}
		return &core.Command{
			Kind: core.CommandChat,
			Text: text,
		}, nil

	default:
		return nil, fmt.Errorf("%w: unknown type %q", core.ErrMalformedIntent, inbound.Type)
	}
}

func outboundFromEvent(event *core.Event) proto.Outbound {
	switch event.Kind {
	case core.EventInit:
		return proto.Outbound{
			Type: proto.OutboundTypeInit,
			Data: proto.InitData{
				PlayerID: event.PlayerID,
				World: proto.WorldData{
					SpawnPoint: protoVec3(event.SpawnPoint),
					Objects:    protoObjects(event.Objects),
				},
				Players: protoPlayers(event.Players),
			},
		}
	case core.EventPlayerJoined:
		return proto.Outbound{
			Type: proto.OutboundTypePlayerJoined,
			Data: protoPlayer(*event.Player),
		}
	case core.EventPlayerMoved:
		return proto.Outbound{
			Type: proto.OutboundTypePlayerMoved,
			Data: proto.PlayerMovedData{
				ID:       event.PlayerID,
				Position: protoVec3(event.Position),
				Rotation: protoVec3(event.Rotation),
			},
		}
	case core.EventObjectCreated:
		return proto.Outbound{
			Type: proto.OutboundTypeObjectCreated,
			Data: protoObject(*event.Object),
		}
	case core.EventObjectRemoved:
		return proto.Outbound{
			Type: proto.OutboundTypeObjectRemoved,
			Data: event.ObjectID,
		}
	case core.EventChatMessage:
		return proto.Outbound{
			Type: proto.OutboundTypeChatMessage,
			Data: protoChat(*event.Chat),
		}
	case core.EventPlayerLeft:
		return proto.Outbound{
			Type: proto.OutboundTypePlayerLeft,
			Data: event.PlayerID,
		}
	case core.EventChatHistory:
		history := make([]proto.ChatMessageData, 0, len(event.History))
		for _, msg := range event.History {
			history = append(history, protoChat(msg))
		}
		return proto.Outbound{
			Type: proto.OutboundTypeChatHistory,
			Data: history,
		}
	default:
		return proto.Outbound{Type: "event"}
	}
}

func coreVec3(v proto.Vec3) core.Vec3 {
	return core.Vec3{X: v.X, Y: v.Y, Z: v.Z}
}

func protoVec3(v core.Vec3) proto.Vec3 {
	return proto.Vec3{X: v.X, Y: v.Y, Z: v.Z}
}

func protoPlayer(p core.Player) proto.Player {
	return proto.Player{
		ID:       p.ID,
		Username: p.Username,
		Position: protoVec3(p.Position),
		Rotation: protoVec3(p.Rotation),
		Health:   p.Health,
		Color:    p.Color,
	}
}

func protoPlayers(players []core.Player) []proto.Player {
	out := make([]proto.Player, 0, len(players))
	for _, p := range players {
		out = append(out, protoPlayer(p))
	}
	return out
}

func protoObject(o core.GameObject) proto.GameObject {
	return proto.GameObject{
		ID:       o.ID,
		Type:     string(o.Kind),
		Position: protoVec3(o.Position),
		Size:     protoVec3(o.Size),
		Color:    o.Color,
		Owner:    o.Owner,
	}
}

func protoObjects(objects []core.GameObject) []proto.GameObject {
	out := make([]proto.GameObject, 0, len(objects))
	for _, o := range objects {
		out = append(out, protoObject(o))
	}
	return out
}

func protoChat(m core.ChatMessage) proto.ChatMessageData {
	return proto.ChatMessageData{
		PlayerID:  m.PlayerID,
		Username:  m.Username,
		Message:   m.Text,
		Timestamp: m.Timestamp,
	}
}
